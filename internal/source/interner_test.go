package source

import (
	"sync"
	"testing"
)

func TestInternerStableIDs(t *testing.T) {
	in := NewInterner()
	a := in.Intern("Int")
	b := in.Intern("String")
	if a == b || a == NoStringID {
		t.Fatalf("unexpected ids %d %d", a, b)
	}
	if again := in.Intern("Int"); again != a {
		t.Fatalf("re-intern changed id: %d != %d", again, a)
	}
	if s := in.MustLookup(b); s != "String" {
		t.Fatalf("lookup: %q", s)
	}
	if !a.IsValid() || NoStringID.IsValid() {
		t.Fatalf("IsValid must be false only for NoStringID")
	}
	if id := in.Intern(""); id != NoStringID {
		t.Fatalf("empty string must map to NoStringID, got %d", id)
	}
	if _, ok := in.Find("Char"); ok {
		t.Fatalf("Find must not intern")
	}
	if in.Len() != 3 {
		t.Fatalf("expected 3 entries, got %d", in.Len())
	}
}

func TestInternerConcurrent(t *testing.T) {
	in := NewInterner()
	names := []string{"a", "b", "c", "d", "e"}
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, n := range names {
				in.Intern(n)
			}
		}()
	}
	wg.Wait()
	if in.Len() != len(names)+1 {
		t.Fatalf("expected %d entries, got %d", len(names)+1, in.Len())
	}
}
