// Copyright 2024 Blotter Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package blotter

import "testing"

// Scenario 1: an output wired to an input does not merge nets.
func TestScenarioOutputWireDoesNotMergeNets(t *testing.T) {
	s := NewSandbox()
	a := s.AddComponent(ComponentBuilder{NumOutputs: 1})
	b := s.AddComponent(ComponentBuilder{NumInputs: 1})
	aOut := pegAddrFor(a, false, 0)
	bIn := pegAddrFor(b, true, 0)

	if got := s.NumNets(); got != 2 {
		t.Fatalf("NumNets before wire = %d, want 2", got)
	}
	bPegBefore, _ := s.lookupPeg(bIn)
	bNetBefore := bPegBefore.NetID

	wid, err := s.AddWire(aOut, bIn, 0)
	if err != nil {
		t.Fatalf("AddWire: %v", err)
	}

	if got := s.NumNets(); got != 2 {
		t.Fatalf("NumNets after wire = %d, want 2 (output wiring must not merge)", got)
	}
	bPeg, _ := s.lookupPeg(bIn)
	if bPeg.NetID != bNetBefore {
		t.Fatalf("B.in0 net changed from %d to %d", bNetBefore, bPeg.NetID)
	}
	aPeg, _ := s.lookupPeg(aOut)
	wire, _ := s.Wire(wid)
	if wire.NetID != aPeg.NetID {
		t.Fatalf("wire net %d != A.out0 net %d", wire.NetID, aPeg.NetID)
	}
}

// Scenario 2: two inputs wired together merge into one net.
func TestScenarioTwoInputsMerge(t *testing.T) {
	s := NewSandbox()
	b := s.AddComponent(ComponentBuilder{NumInputs: 1})
	c := s.AddComponent(ComponentBuilder{NumInputs: 1})
	bIn := pegAddrFor(b, true, 0)
	cIn := pegAddrFor(c, true, 0)

	wid, err := s.AddWire(bIn, cIn, 0)
	if err != nil {
		t.Fatalf("AddWire: %v", err)
	}
	if got := s.NumNets(); got != 1 {
		t.Fatalf("NumNets after merge = %d, want 1", got)
	}
	bPeg, _ := s.lookupPeg(bIn)
	cPeg, _ := s.lookupPeg(cIn)
	if bPeg.NetID != cPeg.NetID {
		t.Fatalf("B.in0 net %d != C.in0 net %d", bPeg.NetID, cPeg.NetID)
	}
	wire, _ := s.Wire(wid)
	if wire.NetID != bPeg.NetID {
		t.Fatalf("wire net %d != merged net %d", wire.NetID, bPeg.NetID)
	}
}

// Scenario 3: wiring an output into an already-merged input net leaves the
// input net's identity unchanged; the wire takes the output's net.
func TestScenarioOutputIntoMergedInputNet(t *testing.T) {
	s := NewSandbox()
	b := s.AddComponent(ComponentBuilder{NumInputs: 1})
	c := s.AddComponent(ComponentBuilder{NumInputs: 1})
	bIn := pegAddrFor(b, true, 0)
	cIn := pegAddrFor(c, true, 0)
	if _, err := s.AddWire(bIn, cIn, 0); err != nil {
		t.Fatalf("AddWire(b,c): %v", err)
	}
	mergedBefore, _ := s.lookupPeg(bIn)
	mergedNetBefore := mergedBefore.NetID

	a := s.AddComponent(ComponentBuilder{NumOutputs: 1})
	aOut := pegAddrFor(a, false, 0)
	aNetBefore, _ := s.lookupPeg(aOut)

	wid, err := s.AddWire(aOut, bIn, 0)
	if err != nil {
		t.Fatalf("AddWire(a,b): %v", err)
	}
	wire, _ := s.Wire(wid)
	if wire.NetID != aNetBefore.NetID {
		t.Fatalf("wire net %d != A.out0 net %d", wire.NetID, aNetBefore.NetID)
	}
	mergedAfter, _ := s.lookupPeg(bIn)
	if mergedAfter.NetID != mergedNetBefore {
		t.Fatalf("B-C net changed from %d to %d after wiring an output in", mergedNetBefore, mergedAfter.NetID)
	}
	cPeg, _ := s.lookupPeg(cIn)
	if cPeg.NetID != mergedNetBefore {
		t.Fatalf("C.in0 net %d no longer matches B-C net %d", cPeg.NetID, mergedNetBefore)
	}
}

// Scenario 4: removing the middle wire of a four-input chain splits it into
// two nets, increasing the net count by exactly one.
func TestScenarioChainSplitOnMiddleWireRemoval(t *testing.T) {
	s := NewSandbox()
	in1 := s.AddComponent(ComponentBuilder{NumInputs: 1})
	in2 := s.AddComponent(ComponentBuilder{NumInputs: 1})
	in3 := s.AddComponent(ComponentBuilder{NumInputs: 1})
	in4 := s.AddComponent(ComponentBuilder{NumInputs: 1})
	p1, p2 := pegAddrFor(in1, true, 0), pegAddrFor(in2, true, 0)
	p3, p4 := pegAddrFor(in3, true, 0), pegAddrFor(in4, true, 0)

	if _, err := s.AddWire(p1, p2, 0); err != nil {
		t.Fatalf("AddWire(1,2): %v", err)
	}
	midWire, err := s.AddWire(p2, p3, 0)
	if err != nil {
		t.Fatalf("AddWire(2,3): %v", err)
	}
	if _, err := s.AddWire(p3, p4, 0); err != nil {
		t.Fatalf("AddWire(3,4): %v", err)
	}
	if got := s.NumNets(); got != 1 {
		t.Fatalf("NumNets after chain = %d, want 1", got)
	}

	before := s.NumNets()
	s.RemoveWire(midWire)
	after := s.NumNets()
	if after != before+1 {
		t.Fatalf("NumNets after split = %d, want %d", after, before+1)
	}

	peg1, _ := s.lookupPeg(p1)
	peg2, _ := s.lookupPeg(p2)
	peg3, _ := s.lookupPeg(p3)
	peg4, _ := s.lookupPeg(p4)
	if peg1.NetID != peg2.NetID {
		t.Fatalf("in1, in2 should share a net after split")
	}
	if peg3.NetID != peg4.NetID {
		t.Fatalf("in3, in4 should share a net after split")
	}
	if peg1.NetID == peg3.NetID {
		t.Fatalf("in1..2 and in3..4 should be on different nets after split")
	}
}

func TestAddWireRejectsTwoOutputs(t *testing.T) {
	s := NewSandbox()
	a := s.AddComponent(ComponentBuilder{NumOutputs: 1})
	b := s.AddComponent(ComponentBuilder{NumOutputs: 1})
	_, err := s.AddWire(pegAddrFor(a, false, 0), pegAddrFor(b, false, 0), 0)
	if err != ErrInvalidPegAddress {
		t.Fatalf("AddWire(two outputs) = %v, want ErrInvalidPegAddress", err)
	}
}

func TestAddWireIsIdempotent(t *testing.T) {
	s := NewSandbox()
	a := s.AddComponent(ComponentBuilder{NumInputs: 1})
	b := s.AddComponent(ComponentBuilder{NumInputs: 1})
	pa, pb := pegAddrFor(a, true, 0), pegAddrFor(b, true, 0)
	w1, err := s.AddWire(pa, pb, 0)
	if err != nil {
		t.Fatalf("AddWire: %v", err)
	}
	w2, err := s.AddWire(pa, pb, 0)
	if err != nil {
		t.Fatalf("AddWire (again): %v", err)
	}
	if w1 != w2 {
		t.Fatalf("AddWire on existing pair returned a new wire %d, want %d", w2, w1)
	}
	if s.wires.Len() != 1 {
		t.Fatalf("wire store has %d entries, want 1", s.wires.Len())
	}
}

func TestRemoveWireAndRemoveComponentAreIdempotent(t *testing.T) {
	s := NewSandbox()
	a := s.AddComponent(ComponentBuilder{NumInputs: 1})
	b := s.AddComponent(ComponentBuilder{NumInputs: 1})
	wid, _ := s.AddWire(pegAddrFor(a, true, 0), pegAddrFor(b, true, 0), 0)

	s.RemoveWire(wid)
	s.RemoveWire(wid) // must not panic or error

	s.RemoveComponent(a)
	s.RemoveComponent(a) // must not panic or error
	if _, ok := s.Component(a); ok {
		t.Fatalf("component a should be gone")
	}
}

func TestRemoveComponentCascadesToChildrenAndWires(t *testing.T) {
	s := NewSandbox()
	parent := s.AddComponent(ComponentBuilder{})
	child := s.AddComponent(ComponentBuilder{NumInputs: 1, Parent: &parent})
	other := s.AddComponent(ComponentBuilder{NumInputs: 1})
	wid, err := s.AddWire(pegAddrFor(child, true, 0), pegAddrFor(other, true, 0), 0)
	if err != nil {
		t.Fatalf("AddWire: %v", err)
	}

	s.RemoveComponent(parent)

	if _, ok := s.Component(parent); ok {
		t.Fatalf("parent should be removed")
	}
	if _, ok := s.Component(child); ok {
		t.Fatalf("child should be removed with its parent")
	}
	if _, ok := s.Wire(wid); ok {
		t.Fatalf("wire incident to the removed child should be gone")
	}
	otherPeg, _ := s.lookupPeg(pegAddrFor(other, true, 0))
	if len(otherPeg.Wires) != 0 {
		t.Fatalf("other's peg should have no incident wires left, got %d", len(otherPeg.Wires))
	}
}

func TestNetCompactness(t *testing.T) {
	s := NewSandbox()
	for i := 0; i < 5; i++ {
		s.AddComponent(ComponentBuilder{NumInputs: 1, NumOutputs: 1})
	}
	seen := make(map[NetId]bool)
	s.RangeNets(func(id NetId, _ *NetInfo) bool {
		seen[id] = true
		return true
	})
	for i := 0; i < s.NumNets(); i++ {
		if !seen[NetId(i)] {
			t.Fatalf("net id %d missing from the dense [0, %d) range", i, s.NumNets())
		}
	}
}
