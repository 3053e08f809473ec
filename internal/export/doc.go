// Package export builds the codegen-facing snapshot of a resolved program and
// stores it as msgpack (.lri files).
package export
