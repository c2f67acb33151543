// Package mocknet provides an in-memory session.Transport for tests and
// examples.
//
// Frames between each ordered pair of roles are sequenced, so delivery is
// reliable and ordered, and Send and Receive honour context cancellation.
// There is no encryption, authentication or latency simulation.
//
//	net := mocknet.New()
//	prover := net.Endpoint(session.RoleProver, session.RoleVerifier)
//	verifier := net.Endpoint(session.RoleVerifier, session.RoleProver)
package mocknet
