// Package sema resolves names and types of a parsed program.
//
// Resolution runs in two phases over all units: definitions (field, parameter
// and return types) and then method bodies in declaration order. Results are
// written into the tables of Result keyed by syntax node IDs; the syntax tree
// itself is never modified.
//
// Literals are desugared into a two-level instance: the wrapper class (Int,
// Char, String) constructed from its native class, which holds the raw value.
package sema
