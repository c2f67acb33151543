// Package group provides the prime-order group used by every protocol in this
// module: secp256k1 points and scalars modulo the group order.
//
// Points and scalars are immutable values. Arithmetic methods return fresh
// values and never mutate their receivers, so they can be shared freely between
// protocol messages and reused across tree slots.
//
// # Encoding
//
// Scalars encode as 32 canonical big-endian bytes. Points encode as 33-byte SEC1
// compressed form; the identity encodes as 33 zero bytes. Both types satisfy the
// message contract of package sigma (Size and Encode).
//
// # Hashing
//
// HashToScalar reduces a BLAKE2b-512 digest modulo the group order. HashToPoint
// maps bytes to a point with unknown discrete logarithm using try-and-increment,
// which is what padding statements and label-derived parameters rely on.
//
// Arithmetic uses the variable-time routines of btcec; side-channel hardening of
// secret-dependent operations is the group library's concern.
package group
