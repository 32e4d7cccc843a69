// Package match ranks cached repositories against a typed query.
//
// A repository whose case-folded name starts with the case-folded query is
// an exact match. Every other repository is scored with a token-set ratio
// and kept as a fuzzy match when the score exceeds Threshold. Exact matches
// come first in cache order, followed by fuzzy matches by descending score.
// Equal scores keep cache order; there is no secondary key.
//
// Search is a pure function and is safe for concurrent use on a shared,
// read-only slice of repositories.
package match
