package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/coinbase/cb-sigma-go/pkg/sigma"
	"github.com/coinbase/cb-sigma-go/pkg/sigma/group"
	"github.com/coinbase/cb-sigma-go/pkg/sigma/schnorr"
	"github.com/coinbase/cb-sigma-go/pkg/sigma/stack"
)

// benchResult summarises the runs for one ring size.
type benchResult struct {
	Clauses    int
	Height     int
	Prove      time.Duration
	Verify     time.Duration
	ProofBytes int
}

func (a *app) benchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bench",
		Short: "Measure prove and verify time across ring sizes",
		Long: `Run --iterations proofs for every power-of-two ring size from 4 up to
--clauses, spread over --workers goroutines. Each run draws from its own
random stream. With --chart the results are also written as an HTML chart.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			results, err := a.runBench(cmd.Context())
			if err != nil {
				return err
			}
			if err := printBench(cmd.OutOrStdout(), results); err != nil {
				return err
			}
			if a.cfg.ChartPath == "" {
				return nil
			}
			f, err := os.Create(a.cfg.ChartPath)
			if err != nil {
				return fmt.Errorf("create chart: %w", err)
			}
			defer f.Close()
			if err := renderBenchChart(f, results); err != nil {
				return fmt.Errorf("render chart: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "chart: %s\n", a.cfg.ChartPath)
			return nil
		},
	}
}

// benchSizes returns 4, 8, ... up to the padded size of clauses.
func benchSizes(clauses int) []int {
	var sizes []int
	n := 4
	for {
		sizes = append(sizes, n)
		if n >= clauses {
			return sizes
		}
		n *= 2
	}
}

func (a *app) runBench(ctx context.Context) ([]benchResult, error) {
	var results []benchResult
	for _, n := range benchSizes(a.cfg.Clauses) {
		r, err := a.benchSize(ctx, n)
		if err != nil {
			return nil, fmt.Errorf("bench %d clauses: %w", n, err)
		}
		a.logger.InfoContext(ctx, "bench size complete", "clauses", r.Clauses, "prove", r.Prove, "verify", r.Verify)
		results = append(results, r)
	}
	return results, nil
}

func (a *app) benchSize(ctx context.Context, n int) (benchResult, error) {
	rng := a.rng(fmt.Sprintf("bench/%d/setup", n))
	inner := schnorr.New()
	s, err := stack.New(inner, n)
	if err != nil {
		return benchResult{}, err
	}
	pp, err := s.Setup(rng)
	if err != nil {
		return benchResult{}, err
	}
	ring := make([]sigma.Statement, n)
	secrets := make([]*group.Scalar, n)
	for i := range ring {
		y, x, err := inner.KeyGen(rng)
		if err != nil {
			return benchResult{}, err
		}
		ring[i], secrets[i] = y, x
	}
	stmt, err := s.NewStatement(pp, ring)
	if err != nil {
		return benchResult{}, err
	}

	prove := make([]time.Duration, a.cfg.Iterations)
	verify := make([]time.Duration, a.cfg.Iterations)
	sizes := make([]int, a.cfg.Iterations)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Workers)
	for it := 0; it < a.cfg.Iterations; it++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			runRng := a.rng(fmt.Sprintf("bench/%d/run/%d", n, it))
			index := it % n
			wit, err := s.NewWitness(secrets[index], index)
			if err != nil {
				return err
			}
			start := time.Now()
			tr, err := sigma.Run(ctx, s, stmt, wit, runRng)
			if err != nil {
				return err
			}
			prove[it] = time.Since(start)
			start = time.Now()
			if !sigma.VerifyTranscript(s, stmt, tr) {
				return fmt.Errorf("run %d: proof rejected", it)
			}
			verify[it] = time.Since(start)
			sizes[it] = sigma.Size(tr.A, tr.Z)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return benchResult{}, err
	}
	for _, x := range secrets {
		x.Zeroize()
	}

	return benchResult{
		Clauses:    n,
		Height:     s.Height(),
		Prove:      mean(prove),
		Verify:     mean(verify),
		ProofBytes: sizes[0],
	}, nil
}

func mean(ds []time.Duration) time.Duration {
	var total time.Duration
	for _, d := range ds {
		total += d
	}
	return total / time.Duration(len(ds))
}

func printBench(w io.Writer, results []benchResult) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "clauses\theight\tprove\tverify\tproof bytes")
	for _, r := range results {
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\t%d\n", r.Clauses, r.Height, r.Prove.Round(time.Microsecond), r.Verify.Round(time.Microsecond), r.ProofBytes)
	}
	return tw.Flush()
}
