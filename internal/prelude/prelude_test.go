package prelude

import (
	"strings"
	"testing"
)

func TestPreludeDeclaresWellKnownClasses(t *testing.T) {
	text := string(Source())
	for _, name := range []string{IntClass, CharClass, StringClass, NativeIntClass, NativeCharClass, NativeStringClass, NativeVoidClass} {
		if !strings.Contains(text, "class "+name+"\n") && !strings.Contains(text, "class "+name+"(") {
			t.Fatalf("prelude does not declare %s", name)
		}
	}
}

func TestSourceReturnsCopy(t *testing.T) {
	a := Source()
	a[0] = 'X'
	if Source()[0] == 'X' {
		t.Fatalf("Source must not expose the embedded buffer")
	}
}
