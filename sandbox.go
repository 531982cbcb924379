// Copyright 2024 Blotter Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package blotter

import "github.com/bits-and-blooms/bitset"

// Sandbox is a mutable, in-memory editor model: components, pegs, wires
// and nets, with the connectivity invariant (every set of electrically
// connected pegs and wires belongs to exactly one net) maintained across
// every AddComponent/RemoveComponent/AddWire/RemoveWire call. A Sandbox is
// not safe for concurrent mutation from more than one goroutine.
type Sandbox struct {
	components *HandleStore[ComponentId, ComponentInfo]
	wires      *HandleStore[WireId, WireInfo]
	nets       *DenseStore[NetInfo]
	netStates  *bitset.BitSet

	rootComponents map[ComponentId]struct{}
	componentTypes []ComponentType
	mods           []ModInfo
}

// NewSandbox returns an empty sandbox with no mods or component types
// registered.
func NewSandbox() *Sandbox {
	return newSandboxWithMeta(nil, nil)
}

func newSandboxWithMeta(mods []ModInfo, types []ComponentType) *Sandbox {
	return &Sandbox{
		components:     NewHandleStore[ComponentId, ComponentInfo](),
		wires:          NewHandleStore[WireId, WireInfo](),
		nets:           NewDenseStore[NetInfo](),
		netStates:      bitset.New(0),
		rootComponents: make(map[ComponentId]struct{}),
		componentTypes: types,
		mods:           mods,
	}
}

// Component returns the live component named by id, if any.
func (s *Sandbox) Component(id ComponentId) (*ComponentInfo, bool) {
	return s.components.Get(id)
}

// Wire returns the live wire named by id, if any.
func (s *Sandbox) Wire(id WireId) (*WireInfo, bool) {
	return s.wires.Get(id)
}

// Net returns the live net named by id, if any.
func (s *Sandbox) Net(id NetId) (*NetInfo, bool) {
	return s.nets.Get(id)
}

// NumNets returns the number of live nets; NetId values are dense in
// [0, NumNets()).
func (s *Sandbox) NumNets() int {
	return s.nets.Len()
}

// IsNetOn reports net id's on/off state.
func (s *Sandbox) IsNetOn(id NetId) bool {
	return s.netStates.Test(uint(id))
}

// SetNetOn sets net id's on/off state.
func (s *Sandbox) SetNetOn(id NetId, on bool) {
	if on {
		s.netStates.Set(uint(id))
	} else {
		s.netStates.Clear(uint(id))
	}
}

// RootComponents returns the ids of every component with no parent.
func (s *Sandbox) RootComponents() []ComponentId {
	out := make([]ComponentId, 0, len(s.rootComponents))
	for id := range s.rootComponents {
		out = append(out, id)
	}
	return out
}

// RangeComponents calls fn for every live component, in unspecified
// order, stopping early if fn returns false.
func (s *Sandbox) RangeComponents(fn func(ComponentId, *ComponentInfo) bool) {
	s.components.Range(fn)
}

// RangeWires calls fn for every live wire, in unspecified order, stopping
// early if fn returns false.
func (s *Sandbox) RangeWires(fn func(WireId, *WireInfo) bool) {
	s.wires.Range(fn)
}

// RangeNets calls fn for every live net in ascending NetId order, stopping
// early if fn returns false.
func (s *Sandbox) RangeNets(fn func(NetId, *NetInfo) bool) {
	s.nets.Range(fn)
}

// ComponentTypes returns the sandbox's numeric-id-to-text-id mapping, as
// loaded from a file or set by FromBlotterFile.
func (s *Sandbox) ComponentTypes() []ComponentType {
	return s.componentTypes
}

// Mods returns the sandbox's mod list.
func (s *Sandbox) Mods() []ModInfo {
	return s.mods
}

// SetComponentTypes replaces the sandbox's numeric-id-to-text-id mapping.
func (s *Sandbox) SetComponentTypes(types []ComponentType) {
	s.componentTypes = types
}

// SetMods replaces the sandbox's mod list.
func (s *Sandbox) SetMods(mods []ModInfo) {
	s.mods = mods
}
