// Package session runs a Sigma protocol interactively between a prover and a
// verifier that exchange encoded messages over a Transport.
//
// The prover sends the encoded first message, receives a 32-byte challenge,
// sends the encoded third message and finally receives a one-byte verdict from
// the verifier. Message lengths are fixed by the statement, so frames carry no
// length prefixes beyond what the Transport provides.
//
//	net := mocknet.New()
//	pe := net.Endpoint(session.RoleProver, session.RoleVerifier)
//	ve := net.Endpoint(session.RoleVerifier, session.RoleProver)
//
//	go func() { errc <- session.Prove(ctx, pe, p, stmt, wit, rand.Reader) }()
//	ok, err := session.Verify(ctx, ve, p, stmt, rand.Reader)
//
// Implement Transport over a real network for deployments; mocknet is for
// tests and examples.
package session
