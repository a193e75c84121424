package regfile

import (
	"testing"

	"sysyrv/src/ir"
)

func TestAllocFillsPoolInOrder(t *testing.T) {
	f := New([]string{"a", "b"})
	name1, ok := f.Alloc(ir.Handle(0))
	if !ok || name1 != "a" {
		t.Fatalf("Alloc(0) = (%q, %v), want (a, true)", name1, ok)
	}
	name2, ok := f.Alloc(ir.Handle(1))
	if !ok || name2 != "b" {
		t.Fatalf("Alloc(1) = (%q, %v), want (b, true)", name2, ok)
	}
	if f.BusyCount() != 2 {
		t.Errorf("BusyCount() = %d, want 2", f.BusyCount())
	}
}

func TestAllocFailsWhenExhausted(t *testing.T) {
	f := New([]string{"a"})
	f.Alloc(ir.Handle(0))
	if _, ok := f.Alloc(ir.Handle(1)); ok {
		t.Fatalf("Alloc() on an exhausted pool reported ok = true")
	}
}

func TestFreeReleasesOnlyMatchingOwner(t *testing.T) {
	f := New([]string{"a"})
	f.Alloc(ir.Handle(0))
	f.Free(ir.Handle(1)) // no-op: register 0 is owned by handle 0, not 1
	if f.BusyCount() != 1 {
		t.Errorf("BusyCount() after freeing a non-owning handle = %d, want 1", f.BusyCount())
	}
	f.Free(ir.Handle(0))
	if f.BusyCount() != 0 {
		t.Errorf("BusyCount() after freeing the owning handle = %d, want 0", f.BusyCount())
	}
}
