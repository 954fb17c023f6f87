// Package checks provides the small, pure predicates that compiled
// validators execute at run time: string blankness and whitespace tests,
// rune-counted lengths, generic ordered range comparisons, size bounds for
// strings and collections, and membership tests.
//
// The package holds no state and performs no allocation beyond what the
// inputs require, so every function is safe for concurrent use. Decimal and
// temporal comparisons get dedicated helpers because decimal.Decimal and
// time.Time do not satisfy the Ordered constraint.
//
// # Usage
//
//	if !checks.SizeWithin(checks.RuneLen(code), 5, 10) {
//	    // too short or too long
//	}
//
// String lengths are counted in runes, not bytes, so multi-byte characters
// count once.
package checks
