// Package fiatshamir turns any Stackable Sigma protocol into a signature
// scheme.
//
// The challenge is the BLAKE2b-512 digest of the encoded first message
// followed by the signed message, reduced modulo the group order. A signature
// is the encoded first message followed by the encoded third message; the
// lengths of both are fixed by the statement, so no length prefixes are used.
package fiatshamir
