// Copyright 2024 Blotter Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package blotter

// WireInfo is a live connection between two pegs.
type WireInfo struct {
	A, B     PegAddress
	NetID    NetId
	Rotation float32
}

// findWireBetween returns the existing wire connecting a and b, if any,
// so AddWire can honor idempotence (rule 2).
func (s *Sandbox) findWireBetween(a, b PegAddress) (WireId, bool) {
	pa, ok := s.lookupPeg(a)
	if !ok {
		return 0, false
	}
	for wid := range pa.Wires {
		w, ok := s.wires.Get(wid)
		if !ok {
			continue
		}
		if (w.A == a && w.B == b) || (w.A == b && w.B == a) {
			return wid, true
		}
	}
	return 0, false
}

// AddWire connects a and b with a new wire, or returns the existing wire
// between them unchanged (rule 2's idempotence). It fails with
// ErrInvalidPegAddress if both endpoints are outputs or either is
// unresolvable, validating before any mutation.
func (s *Sandbox) AddWire(a, b PegAddress, rotation float32) (WireId, error) {
	if !a.IsInput && !b.IsInput {
		return 0, ErrInvalidPegAddress
	}
	if _, ok := s.lookupPeg(a); !ok {
		return 0, ErrInvalidPegAddress
	}
	if _, ok := s.lookupPeg(b); !ok {
		return 0, ErrInvalidPegAddress
	}
	if existing, ok := s.findWireBetween(a, b); ok {
		return existing, nil
	}
	return s.insertWire(a, b, rotation, nil)
}

// insertWire is the shared wire-creation path used by both AddWire and
// the file deserializer (serialize.go), which additionally requires both
// endpoints of an input-to-input wire to already be on the file's declared
// circuit_state_id. A wire with an output endpoint takes that output's net
// and is not checked against the declared id.
func (s *Sandbox) insertWire(a, b PegAddress, rotation float32, declaredNet *NetId) (WireId, error) {
	pa, ok := s.lookupPeg(a)
	if !ok {
		return 0, ErrInvalidPegAddress
	}
	pb, ok := s.lookupPeg(b)
	if !ok {
		return 0, ErrInvalidPegAddress
	}

	if !a.IsInput && !b.IsInput {
		return 0, ErrInvalidPegAddress
	}

	// Validated against the pegs' net ids as they stand before this wire
	// has any effect, since unifyNets below mutates pa.NetID/pb.NetID in
	// place on a merge and the check would otherwise be trivially true.
	// An input wired to an output keeps its own net, so only input-to-input
	// wires are checked.
	if declaredNet != nil && a.IsInput && b.IsInput {
		if pa.NetID != *declaredNet {
			return 0, invalidSavef("wire endpoint net mismatch: declared %d, peg is on %d", *declaredNet, pa.NetID)
		}
		if pb.NetID != *declaredNet {
			return 0, invalidSavef("wire endpoint net mismatch: declared %d, peg is on %d", *declaredNet, pb.NetID)
		}
	}

	var netID NetId
	switch {
	case a.IsInput && b.IsInput:
		netID = s.unifyNets(pa.NetID, pb.NetID)
	case !a.IsInput:
		netID = pa.NetID
	default:
		netID = pb.NetID
	}

	wid := s.wires.Insert(WireInfo{A: a, B: b, NetID: netID, Rotation: rotation})
	pa.Wires[wid] = struct{}{}
	pb.Wires[wid] = struct{}{}
	if net, ok := s.nets.Get(netID); ok {
		net.Wires[wid] = struct{}{}
	}
	return wid, nil
}

// unifyNets merges the smaller of netA/netB into the larger by Size()
// (rule 3) and returns the surviving net id. netA == netB is the no-op
// case (the wire's two endpoints were already on the same net).
func (s *Sandbox) unifyNets(netA, netB NetId) NetId {
	if netA == netB {
		return netA
	}
	na, _ := s.nets.Get(netA)
	nb, _ := s.nets.Get(netB)

	small, large := netA, netB
	if na.Size() > nb.Size() {
		small, large = netB, netA
	}

	smallNet, _ := s.nets.Get(small)
	largeNet, _ := s.nets.Get(large)
	for wid := range smallNet.Wires {
		if w, ok := s.wires.Get(wid); ok {
			w.NetID = large
		}
		largeNet.Wires[wid] = struct{}{}
	}
	for addr := range smallNet.Pegs {
		if peg, ok := s.lookupPeg(addr); ok {
			peg.NetID = large
		}
		largeNet.Pegs[addr] = struct{}{}
	}

	rename := s.removeNet(small)
	if rename.Src == large {
		large = rename.Dest
	}
	return large
}

// RemoveWire removes id, if it exists (rule 6's idempotence), tearing
// down its peg/net cross-references first and then running the
// connectivity split check (rule 4).
func (s *Sandbox) RemoveWire(id WireId) {
	s.removeWireInternal(id)
}

func (s *Sandbox) removeWireInternal(id WireId) {
	w, ok := s.wires.Get(id)
	if !ok {
		return
	}
	a, b, netID := w.A, w.B, w.NetID
	s.wires.Remove(id)

	if pa, ok := s.lookupPeg(a); ok {
		delete(pa.Wires, id)
	}
	if pb, ok := s.lookupPeg(b); ok {
		delete(pb.Wires, id)
	}
	if net, ok := s.nets.Get(netID); ok {
		delete(net.Wires, id)
	}

	pa, aLive := s.lookupPeg(a)
	pb, bLive := s.lookupPeg(b)
	if !aLive || !bLive {
		return // an endpoint is gone: a nested component removal, no split.
	}
	if pa.NetID != pb.NetID {
		return // wire spanned an output and an input: no split.
	}
	s.maybeSplitNet(pa.NetID, a, b)
}

// maybeSplitNet runs a BFS from a over netID's wire graph; if b is
// unreachable, it allocates a fresh net and reassigns every peg and wire
// reachable from a to it (rule 4). The wire between a and b has already
// been removed by the time this runs.
func (s *Sandbox) maybeSplitNet(netID NetId, a, b PegAddress) {
	visitedPegs := map[PegAddress]struct{}{a: {}}
	visitedWires := map[WireId]struct{}{}
	queue := []PegAddress{a}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		curPeg, ok := s.lookupPeg(cur)
		if !ok {
			continue
		}
		for wid := range curPeg.Wires {
			if _, seen := visitedWires[wid]; seen {
				continue
			}
			w, ok := s.wires.Get(wid)
			if !ok || w.NetID != netID {
				continue
			}
			visitedWires[wid] = struct{}{}
			other := w.A
			if other == cur {
				other = w.B
			}
			if _, seen := visitedPegs[other]; !seen {
				visitedPegs[other] = struct{}{}
				queue = append(queue, other)
			}
		}
	}

	if _, reached := visitedPegs[b]; reached {
		return
	}

	newNetID := s.makeNet()
	if s.netStates.Test(uint(netID)) {
		s.netStates.Set(uint(newNetID))
	}

	net, ok := s.nets.Get(netID)
	if !ok {
		return
	}
	newNet, ok := s.nets.Get(newNetID)
	if !ok {
		return
	}
	for addr := range visitedPegs {
		if peg, ok := s.lookupPeg(addr); ok {
			peg.NetID = newNetID
		}
		newNet.Pegs[addr] = struct{}{}
		delete(net.Pegs, addr)
	}
	for wid := range visitedWires {
		if w, ok := s.wires.Get(wid); ok {
			w.NetID = newNetID
		}
		newNet.Wires[wid] = struct{}{}
		delete(net.Wires, wid)
	}
}
