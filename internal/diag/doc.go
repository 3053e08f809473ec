// Package diag defines the diagnostic model shared by every phase of the
// front end.
//
// Producers (lexer, parser, index, resolver) never format or print. They
// report through the Reporter interface; the driver collects everything in a
// Bag and hands it to internal/diagfmt for rendering.
//
// # Data model
//
// Diagnostic carries a Severity, a numeric Code with a stable string form
// (LEX1001, SYN2001, SEM3003, ...), a short Message, the Primary span and
// optional Notes that point at related places ("declared here").
//
// # Codes
//
// Codes are grouped by range:
//
//	1000-1999  lexer
//	2000-2999  parser
//	3000-3999  semantic resolution
//	4000-4999  IO
//	5000-5999  project / manifest
//
// Numbers are stable once published; retire codes instead of reusing them.
//
// # Fatal vs recoverable
//
// Everything a user can cause is a diagnostic. Internal invariant violations
// (entering a scope for a node that was never indexed, resolving a node twice)
// are programming errors and panic instead.
package diag
