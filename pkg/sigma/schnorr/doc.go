// Package schnorr implements the discrete-logarithm Schnorr protocol as a
// Stackable Sigma protocol.
//
// The statement is a point Y and the witness a scalar x with Y = x·G. The prover
// sends A = r·G, receives c and answers z = r + c·x; the verifier checks
// z·G == A + c·Y. Given any (c, z) the extended simulator recovers the unique
// accepting first message A = z·G - c·Y.
package schnorr
