// Copyright 2024 Blotter Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package blotter

// HandleStore is a stable-handle store: Insert returns an opaque handle
// that remains valid and refers to the same item until Remove, removed
// handles are never re-issued, and Range visits only live items. Insert,
// Get and Remove are O(1). It backs the component and wire stores, so
// that other parts of the sandbox (a peg's wire set, a net's peg set) can
// hold a handle across arbitrary further edits without it dangling or
// silently aliasing a different, later item.
//
// Handles are issued starting at 1 so the zero value of H is never live;
// ComponentId relies on this to let 0 double as "no parent" on the wire.
type HandleStore[H ~uint32, T any] struct {
	items map[H]*T
	next  H
}

// NewHandleStore returns an empty store.
func NewHandleStore[H ~uint32, T any]() *HandleStore[H, T] {
	return &HandleStore[H, T]{items: make(map[H]*T)}
}

// Insert stores item and returns its handle.
func (s *HandleStore[H, T]) Insert(item T) H {
	s.next++
	h := s.next
	v := item
	s.items[h] = &v
	return h
}

// Get returns a pointer to the live item at h, or (nil, false) if h does
// not name a live item. The pointer remains valid until h is removed.
func (s *HandleStore[H, T]) Get(h H) (*T, bool) {
	v, ok := s.items[h]
	return v, ok
}

// Remove deletes h's item, if any, and retires the handle. It is
// idempotent: removing an already-absent or never-issued handle is a
// no-op that returns false.
func (s *HandleStore[H, T]) Remove(h H) bool {
	if _, ok := s.items[h]; !ok {
		return false
	}
	delete(s.items, h)
	return true
}

// Len returns the number of live items.
func (s *HandleStore[H, T]) Len() int { return len(s.items) }

// Range calls fn for every live item, in unspecified order, stopping
// early if fn returns false.
func (s *HandleStore[H, T]) Range(fn func(h H, item *T) bool) {
	for h, v := range s.items {
		if !fn(h, v) {
			return
		}
	}
}

// Rename describes a net-store swap-remove: any external index pointing
// at Src must be rewritten to Dest. Src == Dest means no rewrite is
// needed (the removed slot was already the last one).
type Rename struct {
	Src, Dest NetId
}

// DenseStore is a dense-indexed store with rename: Insert returns a
// compact index in [0, n), and Remove swap-removes, moving the last
// element into the freed slot and reporting the resulting Rename so every
// external reference to the moved element can be updated. It backs the
// net store, so NetId values round-trip through the file's int32
// circuit_state_id field without holes.
type DenseStore[T any] struct {
	items []T
}

// NewDenseStore returns an empty store.
func NewDenseStore[T any]() *DenseStore[T] {
	return &DenseStore[T]{}
}

// Insert appends item and returns its (currently last) index.
func (s *DenseStore[T]) Insert(item T) NetId {
	s.items = append(s.items, item)
	return NetId(len(s.items) - 1)
}

// Get returns a pointer to the item at id, or (nil, false) if id is out
// of range. The pointer is invalidated by any subsequent Insert or
// Remove, unlike HandleStore's handles — callers must look the id up
// again after mutating the store.
func (s *DenseStore[T]) Get(id NetId) (*T, bool) {
	idx := int(id)
	if idx < 0 || idx >= len(s.items) {
		return nil, false
	}
	return &s.items[idx], true
}

// Remove swap-removes the item at id, returning the Rename callers must
// apply to every index pointing at the moved element. Removing an
// out-of-range id is a no-op returning (Rename{}, false).
func (s *DenseStore[T]) Remove(id NetId) (Rename, bool) {
	idx := int(id)
	if idx < 0 || idx >= len(s.items) {
		return Rename{}, false
	}
	lastIdx := len(s.items) - 1
	lastID := NetId(lastIdx)
	if idx != lastIdx {
		s.items[idx] = s.items[lastIdx]
	}
	var zero T
	s.items[lastIdx] = zero
	s.items = s.items[:lastIdx]
	return Rename{Src: lastID, Dest: id}, true
}

// Len returns the number of live items, equivalently the exclusive upper
// bound of the dense [0, Len()) index range.
func (s *DenseStore[T]) Len() int { return len(s.items) }

// Range calls fn for every item in ascending index order, stopping early
// if fn returns false.
func (s *DenseStore[T]) Range(fn func(id NetId, item *T) bool) {
	for i := range s.items {
		if !fn(NetId(i), &s.items[i]) {
			return
		}
	}
}
