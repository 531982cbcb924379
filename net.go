// Copyright 2024 Blotter Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package blotter

import "github.com/bits-and-blooms/bitset"

// NetInfo is a maximal set of pegs and wires that share electrical state
// under the connection rules in wire.go. A net never has a Size() of
// zero: the moment the last peg or wire referencing it is removed, the
// net itself is removed by removeNet.
type NetInfo struct {
	Wires map[WireId]struct{}
	Pegs  map[PegAddress]struct{}
}

// Size is the net's live reference count across both its wires and pegs.
func (n *NetInfo) Size() int { return len(n.Wires) + len(n.Pegs) }

func newNetInfo() NetInfo {
	return NetInfo{Wires: map[WireId]struct{}{}, Pegs: map[PegAddress]struct{}{}}
}

// makeNet and removeNet are the only two places allowed to mutate s.nets:
// funneling every net-store mutation through them keeps s.netStates (the
// parallel on/off bitset) in lockstep, including across the dense store's
// swap-remove renames.
func (s *Sandbox) makeNet() NetId {
	id := s.nets.Insert(newNetInfo())
	s.netStates.Clear(uint(id))
	return id
}

// removeNet removes id, whose pegs and wires must already have been
// detached or moved to another net, and reports the
// resulting Rename (Src == Dest if id was already the last net). Any live
// NetId variable a caller is holding that might equal Rename.Src must be
// corrected to Rename.Dest after this call.
func (s *Sandbox) removeNet(id NetId) Rename {
	rename, ok := s.nets.Remove(id)
	if !ok {
		return Rename{Src: id, Dest: id}
	}
	if rename.Src != rename.Dest {
		on := s.netStates.Test(uint(rename.Src))
		if on {
			s.netStates.Set(uint(rename.Dest))
		} else {
			s.netStates.Clear(uint(rename.Dest))
		}
		if moved, ok := s.nets.Get(rename.Dest); ok {
			for wid := range moved.Wires {
				if w, ok := s.wires.Get(wid); ok {
					w.NetID = rename.Dest
				}
			}
			for addr := range moved.Pegs {
				if peg, ok := s.lookupPeg(addr); ok {
					peg.NetID = rename.Dest
				}
			}
		}
	}
	s.netStates.Clear(uint(rename.Src))
	return rename
}

// packWorldCircuitStates packs the first n bits of bs into the exact
// LSB-first byte layout the wire format requires, rounded up to a byte
// boundary. It is deliberately independent of bitset.BitSet's own
// []uint64 word layout, which the format does not expose.
func packWorldCircuitStates(bs *bitset.BitSet, n int) []byte {
	out := make([]byte, (n+7)/8)
	for i := 0; i < n; i++ {
		if bs.Test(uint(i)) {
			out[i/8] |= 1 << uint(i%8)
		}
	}
	return out
}

// unpackWorldCircuitStates is the inverse of packWorldCircuitStates: it
// returns a bitset with 8*len(data) bits set from data's LSB-first byte
// layout.
func unpackWorldCircuitStates(data []byte) *bitset.BitSet {
	bs := bitset.New(uint(len(data)) * 8)
	for i, b := range data {
		for bit := 0; bit < 8; bit++ {
			if b&(1<<uint(bit)) != 0 {
				bs.Set(uint(i*8 + bit))
			}
		}
	}
	return bs
}

// subassemblyOnStates returns the sorted-ascending list of live net ids
// whose bit is on, for SubassemblyCircuitStates serialization.
func subassemblyOnStates(bs *bitset.BitSet, n int) []int32 {
	var out []int32
	for i := 0; i < n; i++ {
		if bs.Test(uint(i)) {
			out = append(out, int32(i))
		}
	}
	return out
}
