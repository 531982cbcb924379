// Copyright 2024 Blotter Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package blotter

import "io"

// saveVersionV5 is the oldest supported save-version byte.
const saveVersionV5 = 5

// ComponentV5 is a placed component as of save version 5. Position is in
// meters as a float triple; Migrate converts it to V6's integer
// millimeters.
type ComponentV5 struct {
	Address    uint32
	Parent     uint32
	TypeID     uint16
	Position   [3]float32
	Rotation   [4]float32
	Inputs     []Input
	Outputs    []Output
	CustomData []byte
}

func readComponentV5(r io.Reader) (ComponentV5, error) {
	var c ComponentV5
	var err error
	if c.Address, err = readU32(r); err != nil {
		return c, err
	}
	if c.Parent, err = readU32(r); err != nil {
		return c, err
	}
	if c.TypeID, err = readU16(r); err != nil {
		return c, err
	}
	for i := range c.Position {
		if c.Position[i], err = readF32(r); err != nil {
			return c, err
		}
	}
	for i := range c.Rotation {
		if c.Rotation[i], err = readF32(r); err != nil {
			return c, err
		}
	}
	if c.Inputs, err = readInputs(r); err != nil {
		return c, err
	}
	if c.Outputs, err = readOutputs(r); err != nil {
		return c, err
	}
	if c.CustomData, err = readCustomData(r); err != nil {
		return c, err
	}
	return c, nil
}

func (c ComponentV5) write(w io.Writer) error {
	if err := writeU32(w, c.Address); err != nil {
		return err
	}
	if err := writeU32(w, c.Parent); err != nil {
		return err
	}
	if err := writeU16(w, c.TypeID); err != nil {
		return err
	}
	for _, p := range c.Position {
		if err := writeF32(w, p); err != nil {
			return err
		}
	}
	for _, rot := range c.Rotation {
		if err := writeF32(w, rot); err != nil {
			return err
		}
	}
	if err := writeInputs(w, c.Inputs); err != nil {
		return err
	}
	if err := writeOutputs(w, c.Outputs); err != nil {
		return err
	}
	return writeCustomData(w, c.CustomData)
}

// BlotterFileV5 is the complete, decoded contents of a version-5 save.
type BlotterFileV5 struct {
	GameVersion    [4]int32
	SaveType       SaveType
	Mods           []ModInfo
	ComponentTypes []ComponentType
	Components     []ComponentV5
	Wires          []Wire
	CircuitStates  CircuitStates
}

func (*BlotterFileV5) isBlotterFile() {}

// Version reports the on-disk save-version byte this value was read from,
// or would be written with.
func (*BlotterFileV5) Version() byte { return saveVersionV5 }

// readAfterSaveVersionV5 decodes the body of a version-5 save; the header
// and version byte have already been consumed by Read.
func readAfterSaveVersionV5(r io.Reader) (*BlotterFileV5, error) {
	f := &BlotterFileV5{}
	var err error

	if f.GameVersion, err = readI32Array4(r); err != nil {
		return nil, err
	}
	if f.SaveType, err = readSaveType(r); err != nil {
		return nil, err
	}

	numComponents, err := readSeqLen(r)
	if err != nil {
		return nil, err
	}
	numWires, err := readSeqLen(r)
	if err != nil {
		return nil, err
	}

	if f.Mods, err = readMods(r); err != nil {
		return nil, err
	}
	if f.ComponentTypes, err = readComponentTypes(r); err != nil {
		return nil, err
	}

	f.Components = make([]ComponentV5, numComponents)
	for i := range f.Components {
		if f.Components[i], err = readComponentV5(r); err != nil {
			return nil, err
		}
	}

	f.Wires = make([]Wire, numWires)
	for i := range f.Wires {
		if f.Wires[i], err = readWire(r); err != nil {
			return nil, err
		}
	}

	if f.CircuitStates, err = readCircuitStates(r, f.SaveType); err != nil {
		return nil, err
	}

	if err := readMagic(r, footerMagic); err != nil {
		return nil, err
	}
	return f, nil
}

// Write emits the complete version-5 save, including header, version byte
// and footer, in the fixed §4.2 body order.
func (f *BlotterFileV5) Write(w io.Writer) error {
	if err := writeMagic(w, headerMagic); err != nil {
		return err
	}
	if err := writeU8(w, saveVersionV5); err != nil {
		return err
	}
	if err := writeI32Array4(w, f.GameVersion); err != nil {
		return err
	}
	if err := writeSaveType(w, f.SaveType); err != nil {
		return err
	}
	if err := writeSeqLen(w, len(f.Components)); err != nil {
		return err
	}
	if err := writeSeqLen(w, len(f.Wires)); err != nil {
		return err
	}
	if err := writeMods(w, f.Mods); err != nil {
		return err
	}
	if err := writeComponentTypes(w, f.ComponentTypes); err != nil {
		return err
	}
	for _, c := range f.Components {
		if err := c.write(w); err != nil {
			return err
		}
	}
	for _, wr := range f.Wires {
		if err := wr.write(w); err != nil {
			return err
		}
	}
	if err := writeCircuitStates(w, f.SaveType, f.CircuitStates); err != nil {
		return err
	}
	return writeMagic(w, footerMagic)
}
