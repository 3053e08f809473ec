// Package prelude holds the built-in classes every program is resolved against.
package prelude

import (
	_ "embed"
)

// FileName is the virtual path the prelude is registered under.
const FileName = "<prelude>/prelude.lil"

//go:embed prelude.lil
var src []byte

// Source returns a copy of the prelude text.
func Source() []byte {
	return append([]byte(nil), src...)
}

// Well-known class names used by literal desugaring and type inference.
const (
	IntClass          = "Int"
	CharClass         = "Char"
	StringClass       = "String"
	NativeIntClass    = "Native__Int"
	NativeCharClass   = "Native__Char"
	NativeStringClass = "Native__String"
	NativeVoidClass   = "Native__Void"
)
