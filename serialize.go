// Copyright 2024 Blotter Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package blotter

import "sort"

// ToBlotterFile walks s into a BlotterFileV6, allocating on-disk component
// addresses with a deterministic pre-order traversal rooted at
// s.RootComponents(): every component is written after its parent, so a
// child's Parent address is always already assigned by the time the child
// itself is visited. Address 0 is reserved for "no parent" and is never
// handed out as a component's own address, so addresses start at 1.
//
// gameVersion and saveType are not part of a Sandbox's own state — a
// Sandbox is format-version-agnostic and can be saved as either a world or
// a subassembly regardless of how it was loaded — so the caller supplies
// them explicitly.
func ToBlotterFile(s *Sandbox, gameVersion [4]int32, saveType SaveType) *BlotterFileV6 {
	addrOf := make(map[ComponentId]uint32, s.components.Len())
	var components []ComponentV6
	next := uint32(1)

	var visit func(id ComponentId)
	visit = func(id ComponentId) {
		comp, ok := s.Component(id)
		if !ok {
			return
		}
		myAddr := next
		next++
		addrOf[id] = myAddr

		var parentAddr uint32
		if comp.Parent != nil {
			parentAddr = addrOf[*comp.Parent]
		}

		components = append(components, ComponentV6{
			Address:    myAddr,
			Parent:     parentAddr,
			TypeID:     comp.TypeID,
			Position:   comp.Position,
			Rotation:   comp.Rotation,
			Inputs:     pegsToInputs(comp.Inputs),
			Outputs:    pegsToOutputs(comp.Outputs),
			CustomData: comp.CustomData,
		})

		children := make([]ComponentId, 0, len(comp.Children))
		for c := range comp.Children {
			children = append(children, c)
		}
		sort.Slice(children, func(i, j int) bool { return children[i] < children[j] })
		for _, c := range children {
			visit(c)
		}
	}

	roots := s.RootComponents()
	sort.Slice(roots, func(i, j int) bool { return roots[i] < roots[j] })
	for _, r := range roots {
		visit(r)
	}

	var wires []Wire
	s.RangeWires(func(_ WireId, w *WireInfo) bool {
		wires = append(wires, Wire{
			Start:          remapPegToFile(w.A, addrOf),
			End:            remapPegToFile(w.B, addrOf),
			CircuitStateID: int32(w.NetID),
			Rotation:       w.Rotation,
		})
		return true
	})
	sort.Slice(wires, func(i, j int) bool { return wireLess(wires[i], wires[j]) })

	return &BlotterFileV6{
		GameVersion:    gameVersion,
		SaveType:       saveType,
		Mods:           s.Mods(),
		ComponentTypes: s.ComponentTypes(),
		Components:     components,
		Wires:          wires,
		CircuitStates:  buildCircuitStates(s, saveType),
	}
}

func pegsToInputs(pegs []PegInfo) []Input {
	out := make([]Input, len(pegs))
	for i, p := range pegs {
		out[i] = Input{CircuitStateID: int32(p.NetID)}
	}
	return out
}

func pegsToOutputs(pegs []PegInfo) []Output {
	out := make([]Output, len(pegs))
	for i, p := range pegs {
		out[i] = Output{CircuitStateID: int32(p.NetID)}
	}
	return out
}

// remapPegToFile rewrites addr's ComponentAddress from a sandbox
// ComponentId to the on-disk address assigned to it by ToBlotterFile's
// traversal.
func remapPegToFile(addr PegAddress, addrOf map[ComponentId]uint32) PegAddress {
	addr.ComponentAddress = addrOf[ComponentId(addr.ComponentAddress)]
	return addr
}

func wireLess(a, b Wire) bool {
	if a.Start.ComponentAddress != b.Start.ComponentAddress {
		return a.Start.ComponentAddress < b.Start.ComponentAddress
	}
	if a.Start.PegIndex != b.Start.PegIndex {
		return a.Start.PegIndex < b.Start.PegIndex
	}
	if a.End.ComponentAddress != b.End.ComponentAddress {
		return a.End.ComponentAddress < b.End.ComponentAddress
	}
	return a.End.PegIndex < b.End.PegIndex
}

func buildCircuitStates(s *Sandbox, saveType SaveType) CircuitStates {
	n := s.NumNets()
	switch saveType {
	case SaveTypeSubassembly:
		return SubassemblyCircuitStates{OnStates: subassemblyOnStates(s.netStates, n)}
	default:
		return WorldCircuitStates{Bytes: packWorldCircuitStates(s.netStates, n)}
	}
}

// FromBlotterFile builds a Sandbox from a decoded, already-migrated
// version-6 file, failing with ErrInvalidSave if any Parent, peg
// CircuitStateID or wire endpoint fails to resolve. Net ids are
// pre-allocated densely in file order from f.CircuitStates (for a
// subassembly save, extended up to the highest circuit_state_id any peg or
// wire references) before any component is inserted, so that component
// and wire records can declare net ids by reference the way the file
// itself does. Once every wire is in, nets that no peg or wire references
// are removed, so the loaded sandbox holds no empty nets.
func FromBlotterFile(f *BlotterFileV6) (*Sandbox, error) {
	s := newSandboxWithMeta(f.Mods, f.ComponentTypes)

	numNets, err := preallocateNets(s, f.CircuitStates)
	if err != nil {
		return nil, err
	}
	if _, ok := f.CircuitStates.(SubassemblyCircuitStates); ok {
		for _, c := range f.Components {
			for _, in := range c.Inputs {
				numNets = max(numNets, int(in.CircuitStateID)+1)
			}
			for _, out := range c.Outputs {
				numNets = max(numNets, int(out.CircuitStateID)+1)
			}
		}
		for _, w := range f.Wires {
			numNets = max(numNets, int(w.CircuitStateID)+1)
		}
		for s.nets.Len() < numNets {
			s.makeNet()
		}
	}

	addrToID := make(map[uint32]ComponentId, len(f.Components))
	for _, c := range f.Components {
		id, err := addComponentFromFile(s, c, addrToID, numNets)
		if err != nil {
			return nil, err
		}
		addrToID[c.Address] = id
	}

	for _, w := range f.Wires {
		if err := addWireFromFile(s, w, addrToID, numNets); err != nil {
			return nil, err
		}
	}

	for i := s.nets.Len() - 1; i >= 0; i-- {
		if net, _ := s.nets.Get(NetId(i)); net.Size() == 0 {
			s.removeNet(NetId(i))
		}
	}

	logger.Infof("loaded sandbox: %d components, %d wires, %d nets", len(f.Components), len(f.Wires), s.NumNets())
	return s, nil
}

// preallocateNets creates one net per bit of a WorldCircuitStates, or one
// per id up to the highest on-state of a SubassemblyCircuitStates, sets
// each net's on/off state, and reports how many nets it created.
func preallocateNets(s *Sandbox, cs CircuitStates) (int, error) {
	switch v := cs.(type) {
	case WorldCircuitStates:
		n := len(v.Bytes) * 8
		for i := 0; i < n; i++ {
			s.makeNet()
		}
		bs := unpackWorldCircuitStates(v.Bytes)
		for i := 0; i < n; i++ {
			s.SetNetOn(NetId(i), bs.Test(uint(i)))
		}
		return n, nil
	case SubassemblyCircuitStates:
		n := 0
		for _, id := range v.OnStates {
			if id < 0 {
				return 0, invalidSavef("negative circuit_state_id %d in subassembly on-states", id)
			}
			if int(id)+1 > n {
				n = int(id) + 1
			}
		}
		for i := 0; i < n; i++ {
			s.makeNet()
		}
		for _, id := range v.OnStates {
			s.SetNetOn(NetId(id), true)
		}
		return n, nil
	default:
		return 0, invalidSavef("unknown circuit states variant %T", cs)
	}
}

// addComponentFromFile inserts a component whose pegs are wired directly
// to the net ids c declares, instead of AddComponent's one-fresh-net-per-
// peg allocation: c.Inputs/c.Outputs name nets that FromBlotterFile has
// already created (through preallocateNets and, for a subassembly save,
// its extension up to the highest referenced circuit_state_id).
func addComponentFromFile(s *Sandbox, c ComponentV6, addrToID map[uint32]ComponentId, numNets int) (ComponentId, error) {
	var parent *ComponentId
	if c.Parent != 0 {
		id, ok := addrToID[c.Parent]
		if !ok {
			return 0, invalidSavef("component %d references unknown parent address %d", c.Address, c.Parent)
		}
		parent = &id
	}

	info := ComponentInfo{
		TypeID:     c.TypeID,
		Parent:     parent,
		Position:   c.Position,
		Rotation:   c.Rotation,
		Children:   make(map[ComponentId]struct{}),
		Inputs:     make([]PegInfo, len(c.Inputs)),
		Outputs:    make([]PegInfo, len(c.Outputs)),
		CustomData: c.CustomData,
	}

	for i, in := range c.Inputs {
		netID, err := resolveFileNetID(s, in.CircuitStateID, numNets)
		if err != nil {
			return 0, invalidSavef("component %d input %d: %v", c.Address, i, err)
		}
		info.Inputs[i] = newPegInfo(netID)
	}
	for i, out := range c.Outputs {
		netID, err := resolveFileNetID(s, out.CircuitStateID, numNets)
		if err != nil {
			return 0, invalidSavef("component %d output %d: %v", c.Address, i, err)
		}
		info.Outputs[i] = newPegInfo(netID)
	}

	id := s.components.Insert(info)
	comp, _ := s.components.Get(id)

	for i := range comp.Inputs {
		net, _ := s.nets.Get(comp.Inputs[i].NetID)
		net.Pegs[pegAddrFor(id, true, int32(i))] = struct{}{}
	}
	for i := range comp.Outputs {
		net, _ := s.nets.Get(comp.Outputs[i].NetID)
		net.Pegs[pegAddrFor(id, false, int32(i))] = struct{}{}
	}

	if parent != nil {
		p, _ := s.components.Get(*parent)
		p.Children[id] = struct{}{}
	} else {
		s.rootComponents[id] = struct{}{}
	}
	return id, nil
}

// resolveFileNetID validates a circuit_state_id read from a peg record
// against the nets preallocateNets already created.
func resolveFileNetID(s *Sandbox, declared int32, numNets int) (NetId, error) {
	if declared < 0 || int(declared) >= numNets {
		return 0, invalidSavef("circuit_state_id %d out of range [0, %d)", declared, numNets)
	}
	return NetId(declared), nil
}

// addWireFromFile resolves w's file-space endpoints to sandbox pegs and
// inserts it through insertWire, constraining the result to w's declared
// net id.
func addWireFromFile(s *Sandbox, w Wire, addrToID map[uint32]ComponentId, numNets int) error {
	a, err := remapPegFromFile(w.Start, addrToID)
	if err != nil {
		return err
	}
	b, err := remapPegFromFile(w.End, addrToID)
	if err != nil {
		return err
	}
	netID, err := resolveFileNetID(s, w.CircuitStateID, numNets)
	if err != nil {
		return invalidSavef("wire from %+v to %+v: %v", w.Start, w.End, err)
	}
	_, err = s.insertWire(a, b, w.Rotation, &netID)
	return err
}

func remapPegFromFile(addr PegAddress, addrToID map[uint32]ComponentId) (PegAddress, error) {
	id, ok := addrToID[addr.ComponentAddress]
	if !ok {
		return PegAddress{}, invalidSavef("wire references unknown component address %d", addr.ComponentAddress)
	}
	addr.ComponentAddress = uint32(id)
	return addr, nil
}
