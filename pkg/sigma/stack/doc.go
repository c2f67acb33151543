// Package stack compiles a Sigma protocol into an OR-proof over many of its
// statements by self-stacking.
//
// A Stacker wraps a Stackable protocol S and proves knowledge of a witness for
// one of 2^q statements of S without revealing which. The prover runs S only on
// the real clause and commits to the vector of first messages with a
// partially-binding commitment that binds the real slot. After the challenge
// arrives the prover answers the real clause, derives the first message of
// every other clause with the simulator of S, and equivocates the commitment
// opening to the completed vector. One third message of S is shared by every
// clause, so the proof size is that of S plus the commitment material, which
// grows logarithmically with the clause count.
//
// Stacker is itself Stackable, so stacks nest. Tower builds such nestings at
// runtime and routes statements and witnesses through them.
//
//	s, _ := stack.New(schnorr.New(), 4)
//	pp, _ := s.Setup(rand.Reader)
//	stmt, _ := s.NewStatement(pp, []sigma.Statement{y0, y1, y2, y3})
//	wit, _ := s.NewWitness(x2, 2)
//	tr, _ := sigma.Run(ctx, s, stmt, wit, rand.Reader)
//	ok := sigma.VerifyTranscript(s, stmt, tr)
package stack
