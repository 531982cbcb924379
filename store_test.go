// Copyright 2024 Blotter Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package blotter

import "testing"

func TestHandleStoreHandlesStartAtOne(t *testing.T) {
	s := NewHandleStore[ComponentId, int]()
	h := s.Insert(42)
	if h == 0 {
		t.Fatalf("first handle = 0, want nonzero")
	}
}

func TestHandleStorePointerStableAcrossOtherInserts(t *testing.T) {
	s := NewHandleStore[ComponentId, int]()
	a := s.Insert(1)
	pa, _ := s.Get(a)
	for i := 0; i < 10; i++ {
		s.Insert(i)
	}
	if *pa != 1 {
		t.Fatalf("pointer to a's item changed after unrelated inserts: got %d, want 1", *pa)
	}
}

func TestHandleStoreRemoveIdempotent(t *testing.T) {
	s := NewHandleStore[ComponentId, int]()
	a := s.Insert(1)
	if !s.Remove(a) {
		t.Fatalf("first Remove should report true")
	}
	if s.Remove(a) {
		t.Fatalf("second Remove should report false")
	}
	if _, ok := s.Get(a); ok {
		t.Fatalf("Get after Remove should report false")
	}
}

func TestDenseStoreRemoveRename(t *testing.T) {
	s := NewDenseStore[int]()
	a := s.Insert(10)
	b := s.Insert(20)
	c := s.Insert(30)

	rename, ok := s.Remove(a)
	if !ok {
		t.Fatalf("Remove(a) = false, want true")
	}
	if rename.Src != c {
		t.Fatalf("Rename.Src = %d, want %d (the last element gets swapped in)", rename.Src, c)
	}
	if rename.Dest != a {
		t.Fatalf("Rename.Dest = %d, want %d", rename.Dest, a)
	}

	got, ok := s.Get(a)
	if !ok || *got != 30 {
		t.Fatalf("Get(a) after swap-remove = %v, %v, want 30, true", got, ok)
	}
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if _, ok := s.Get(b); !ok {
		t.Fatalf("Get(b) should still be live")
	}
}

func TestDenseStoreRemoveLastIsNoRename(t *testing.T) {
	s := NewDenseStore[int]()
	a := s.Insert(10)
	rename, ok := s.Remove(a)
	if !ok {
		t.Fatalf("Remove(a) = false, want true")
	}
	if rename.Src != rename.Dest {
		t.Fatalf("Rename = %+v, want Src == Dest for removing the last element", rename)
	}
}
