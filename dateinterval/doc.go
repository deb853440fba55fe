// Package dateinterval parses "nX" tenor tokens (a count, a unit letter,
// and an optional roll-rule flag) and applies them to a base date.
// IMM-style roll rules (I: quarterly IMM, J: monthly IMM, T: third
// Friday) follow standard futures/swap roll-date conventions.
package dateinterval
