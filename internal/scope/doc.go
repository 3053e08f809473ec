// Package scope implements the Program → Class → Method lexical chain used by
// the resolver. A Scope is owned by one resolver and passed explicitly; the
// index and syntax arenas it reads are shared and read-only.
//
// Misuse of enter/leave is an internal bug and panics. Failed lookups are
// returned as ok=false and turned into diagnostics by the caller.
package scope
