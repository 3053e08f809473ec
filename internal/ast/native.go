package ast

import "strings"

const (
	// NativeClassPrefix marks classes mapped directly to machine representations.
	NativeClassPrefix = "Native__"
	// NativeCallPrefix marks methods that are runtime boundary calls.
	NativeCallPrefix = "native__"
)

// IsNativeClassName reports whether a class name carries the native marker.
func IsNativeClassName(name string) bool {
	return strings.HasPrefix(name, NativeClassPrefix)
}

// IsNativeCallName reports whether a method name carries the native call marker.
func IsNativeCallName(name string) bool {
	return strings.HasPrefix(name, NativeCallPrefix)
}
