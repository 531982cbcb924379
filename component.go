// Copyright 2024 Blotter Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package blotter

// PegInfo is one input or output terminal's live state: the net it
// currently belongs to, and the set of wires incident on it.
type PegInfo struct {
	NetID NetId
	Wires map[WireId]struct{}
}

func newPegInfo(net NetId) PegInfo {
	return PegInfo{NetID: net, Wires: map[WireId]struct{}{}}
}

// ComponentInfo is a placed component's live state.
type ComponentInfo struct {
	TypeID     uint16
	Parent     *ComponentId
	Position   [3]int32
	Rotation   [4]float32
	Children   map[ComponentId]struct{}
	Inputs     []PegInfo
	Outputs    []PegInfo
	CustomData []byte
}

// ComponentBuilder describes a component to be added to a Sandbox.
// NumInputs and NumOutputs determine how many fresh singleton nets
// AddComponent allocates.
type ComponentBuilder struct {
	TypeID     uint16
	Parent     *ComponentId
	Position   [3]int32
	Rotation   [4]float32
	NumInputs  int
	NumOutputs int
	CustomData []byte
}

// pegAddrFor builds the sandbox-level PegAddress naming one peg of id.
// ComponentAddress here holds id's own uint32 value, not an on-disk
// address — the two addressing schemes share PegAddress's shape but are
// never mixed: on-disk addresses only exist transiently during
// serialize.go's traversal.
func pegAddrFor(id ComponentId, isInput bool, idx int32) PegAddress {
	return PegAddress{IsInput: isInput, ComponentAddress: uint32(id), PegIndex: idx}
}

// AddComponent places a new component and allocates one fresh singleton
// net per peg (rule 1 of net maintenance). It never fails: an invalid
// Parent (naming no live component) is treated the same as no parent,
// since the spec defines no error path for AddComponent.
func (s *Sandbox) AddComponent(b ComponentBuilder) ComponentId {
	info := ComponentInfo{
		TypeID:     b.TypeID,
		Parent:     b.Parent,
		Position:   b.Position,
		Rotation:   b.Rotation,
		Children:   make(map[ComponentId]struct{}),
		Inputs:     make([]PegInfo, b.NumInputs),
		Outputs:    make([]PegInfo, b.NumOutputs),
		CustomData: b.CustomData,
	}
	id := s.components.Insert(info)
	comp, _ := s.components.Get(id)

	for i := range comp.Inputs {
		netID := s.makeNet()
		comp.Inputs[i] = newPegInfo(netID)
		net, _ := s.nets.Get(netID)
		net.Pegs[pegAddrFor(id, true, int32(i))] = struct{}{}
	}
	for i := range comp.Outputs {
		netID := s.makeNet()
		comp.Outputs[i] = newPegInfo(netID)
		net, _ := s.nets.Get(netID)
		net.Pegs[pegAddrFor(id, false, int32(i))] = struct{}{}
	}

	if b.Parent != nil {
		if parent, ok := s.components.Get(*b.Parent); ok {
			parent.Children[id] = struct{}{}
			return id
		}
		comp.Parent = nil
	}
	s.rootComponents[id] = struct{}{}
	return id
}

// lookupPeg resolves a sandbox-level PegAddress to its live PegInfo.
func (s *Sandbox) lookupPeg(addr PegAddress) (*PegInfo, bool) {
	comp, ok := s.components.Get(ComponentId(addr.ComponentAddress))
	if !ok || addr.PegIndex < 0 {
		return nil, false
	}
	idx := int(addr.PegIndex)
	if addr.IsInput {
		if idx >= len(comp.Inputs) {
			return nil, false
		}
		return &comp.Inputs[idx], true
	}
	if idx >= len(comp.Outputs) {
		return nil, false
	}
	return &comp.Outputs[idx], true
}

// removePegFromNet detaches addr from netID's peg set and removes the net
// itself if that was its last reference (rule 5).
func (s *Sandbox) removePegFromNet(netID NetId, addr PegAddress) {
	net, ok := s.nets.Get(netID)
	if !ok {
		return
	}
	delete(net.Pegs, addr)
	if net.Size() == 0 {
		s.removeNet(netID)
	}
}

// RemoveComponent removes id and, recursively, every descendant of id
// (rule 5). Every wire incident to any peg of any removed component is
// removed first (each triggering its own split check), then each peg is
// detached from its net, then id is detached from its parent's children
// set (or the root set). Removing a non-existent id is a no-op (rule 6).
func (s *Sandbox) RemoveComponent(id ComponentId) {
	comp, ok := s.components.Get(id)
	if !ok {
		return
	}

	children := make([]ComponentId, 0, len(comp.Children))
	for c := range comp.Children {
		children = append(children, c)
	}
	for _, c := range children {
		s.RemoveComponent(c)
	}

	for i := range comp.Inputs {
		s.removeIncidentWires(&comp.Inputs[i])
	}
	for i := range comp.Outputs {
		s.removeIncidentWires(&comp.Outputs[i])
	}

	for i := range comp.Inputs {
		s.removePegFromNet(comp.Inputs[i].NetID, pegAddrFor(id, true, int32(i)))
	}
	for i := range comp.Outputs {
		s.removePegFromNet(comp.Outputs[i].NetID, pegAddrFor(id, false, int32(i)))
	}

	if comp.Parent != nil {
		if parent, ok := s.components.Get(*comp.Parent); ok {
			delete(parent.Children, id)
		}
	} else {
		delete(s.rootComponents, id)
	}

	s.components.Remove(id)
}

func (s *Sandbox) removeIncidentWires(peg *PegInfo) {
	ids := make([]WireId, 0, len(peg.Wires))
	for w := range peg.Wires {
		ids = append(ids, w)
	}
	for _, w := range ids {
		s.removeWireInternal(w)
	}
}
