// Package diag defines the diagnostic model shared by the lexer, the
// declaration processor and the driver.
//
// Two kinds of failure exist in the front end:
//
//   - User input errors (undeclared names, redeclarations, malformed
//     declarations) are Diagnostics. Phases emit them through a Reporter and
//     keep going; the driver decides whether the unit failed.
//   - Internal invariant violations (a nil handle appended to a catalog, a
//     payload slot read under the wrong storage class) abort through Fatal,
//     which panics with *FatalError. The driver recovers it at the top,
//     removes any partial output artifact and exits non-zero.
//
// Package diag performs no IO; rendering lives in internal/diagfmt.
package diag
