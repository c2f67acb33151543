// Package binding implements partially-binding vector commitments from
// discrete logarithms.
//
// A partially-binding commitment to a vector is binding on exactly one slot,
// chosen by the committer and hidden from everyone else, and equivocable on all
// others: the holder of the equivocation key can later open those slots to
// different messages without changing the commitment value.
//
// # HalfBinding
//
// HalfParams implements the 1-of-2 scheme. A commit key is a single point g1;
// the second slot uses g2 = g1 + g0. Depending on the side, exactly one of g1
// and g2 is h·e for a trapdoor e known to the key holder, which makes that slot
// perfectly hiding and equivocable while the other stays binding. Both kinds of
// key are distributed identically.
//
// # QBinding
//
// The 1-of-2^q scheme nests HalfBinding in a binary tree of depth q. Each level
// commits to the two commitments produced by the level below, and both halves of
// a level share the lower levels' commit key and randomness. PublicParams,
// CommitKey, EquivKey and Randomness keep one entry per level, base level first;
// every level above appends its entry at the tail.
//
// BindingIndex names the binding leaf. Its outer side selects the half that
// contains the binding leaf at the current level and its inner index descends
// one level.
//
// Precondition violations (a height below 2, a vector of the wrong length, keys
// of mismatched height) are programming errors and panic.
package binding
