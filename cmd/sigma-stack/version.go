package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coinbase/cb-sigma-go/pkg/sigma"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the module and wire format versions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "cb-sigma-go %s (wire format v%d)\n", sigma.ModuleVersion(), sigma.WireVersion)
			return nil
		},
	}
}
