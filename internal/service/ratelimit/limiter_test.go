package ratelimit

import "testing"

func TestAllowConsumesCapacity(t *testing.T) {
	l := New()
	for i := 0; i < 3; i++ {
		if !l.Allow("k", 3, 0) {
			t.Fatalf("call %d should be allowed", i)
		}
	}
	if l.Allow("k", 3, 0) {
		t.Fatal("capacity exhausted, should be denied")
	}
}

func TestAllowKeysAreIndependent(t *testing.T) {
	l := New()
	if !l.Allow("a", 1, 0) {
		t.Fatal("first key should be allowed")
	}
	if l.Allow("a", 1, 0) {
		t.Fatal("first key exhausted")
	}
	if !l.Allow("b", 1, 0) {
		t.Fatal("second key has its own bucket")
	}
}
