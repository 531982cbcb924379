// Copyright 2024 Blotter Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package blotter

import "io"

// SaveType distinguishes a full world save from a subassembly (a partial
// save meant to be pasted), which changes how circuit states are encoded.
type SaveType uint8

const (
	// SaveTypeWorld is a complete world save; circuit states are a dense
	// bit-packed vector.
	SaveTypeWorld SaveType = 1
	// SaveTypeSubassembly is a partial, pasteable save; circuit states are
	// a sparse list of the nets that are on.
	SaveTypeSubassembly SaveType = 2
)

func readSaveType(r io.Reader) (SaveType, error) {
	b, err := readU8(r)
	if err != nil {
		return 0, err
	}
	switch SaveType(b) {
	case SaveTypeWorld, SaveTypeSubassembly:
		return SaveType(b), nil
	default:
		return 0, invalidSavef("unknown save_type byte %d", b)
	}
}

func writeSaveType(w io.Writer, st SaveType) error {
	switch st {
	case SaveTypeWorld, SaveTypeSubassembly:
		return writeU8(w, uint8(st))
	default:
		return invalidSavef("unknown save_type %d", st)
	}
}

// ModInfo identifies one mod that contributed content to the save.
type ModInfo struct {
	ModID      string
	ModVersion [4]int32
}

func readModInfo(r io.Reader) (ModInfo, error) {
	var m ModInfo
	id, err := readString(r)
	if err != nil {
		return m, err
	}
	ver, err := readI32Array4(r)
	if err != nil {
		return m, err
	}
	m.ModID, m.ModVersion = id, ver
	return m, nil
}

func (m ModInfo) write(w io.Writer) error {
	if err := writeString(w, m.ModID); err != nil {
		return err
	}
	return writeI32Array4(w, m.ModVersion)
}

// ComponentType maps a numeric tag, compact and valid only within a single
// file, to a stable text identifier.
type ComponentType struct {
	NumericID uint16
	TextID    string
}

func readComponentType(r io.Reader) (ComponentType, error) {
	var ct ComponentType
	id, err := readU16(r)
	if err != nil {
		return ct, err
	}
	text, err := readString(r)
	if err != nil {
		return ct, err
	}
	ct.NumericID, ct.TextID = id, text
	return ct, nil
}

func (ct ComponentType) write(w io.Writer) error {
	if err := writeU16(w, ct.NumericID); err != nil {
		return err
	}
	return writeString(w, ct.TextID)
}

// PegAddress names one input or output terminal on a placed component by
// the component's on-disk address and the peg's index within its side
// (inputs and outputs are indexed separately, starting at zero).
type PegAddress struct {
	IsInput          bool
	ComponentAddress uint32
	PegIndex         int32
}

func readPegAddress(r io.Reader) (PegAddress, error) {
	var p PegAddress
	b, err := readU8(r)
	if err != nil {
		return p, err
	}
	switch b {
	case 0:
		p.IsInput = false
	case 1:
		p.IsInput = true
	default:
		return p, invalidSavef("unknown peg-type byte %d", b)
	}
	addr, err := readU32(r)
	if err != nil {
		return p, err
	}
	idx, err := readI32(r)
	if err != nil {
		return p, err
	}
	p.ComponentAddress, p.PegIndex = addr, idx
	return p, nil
}

func (p PegAddress) write(w io.Writer) error {
	var b uint8
	if p.IsInput {
		b = 1
	}
	if err := writeU8(w, b); err != nil {
		return err
	}
	if err := writeU32(w, p.ComponentAddress); err != nil {
		return err
	}
	return writeI32(w, p.PegIndex)
}

// Input is an input peg's saved state: the id of the net it belongs to.
type Input struct {
	CircuitStateID int32
}

// Output is an output peg's saved state: the id of the net it belongs to.
type Output struct {
	CircuitStateID int32
}

func readInput(r io.Reader) (Input, error) {
	v, err := readI32(r)
	return Input{CircuitStateID: v}, err
}

func (in Input) write(w io.Writer) error { return writeI32(w, in.CircuitStateID) }

func readOutput(r io.Reader) (Output, error) {
	v, err := readI32(r)
	return Output{CircuitStateID: v}, err
}

func (out Output) write(w io.Writer) error { return writeI32(w, out.CircuitStateID) }

// Wire connects two pegs and carries the net id both sides agreed on at
// save time, plus a purely cosmetic rotation.
type Wire struct {
	Start, End     PegAddress
	CircuitStateID int32
	Rotation       float32
}

func readWire(r io.Reader) (Wire, error) {
	var w Wire
	start, err := readPegAddress(r)
	if err != nil {
		return w, err
	}
	end, err := readPegAddress(r)
	if err != nil {
		return w, err
	}
	csid, err := readI32(r)
	if err != nil {
		return w, err
	}
	rot, err := readF32(r)
	if err != nil {
		return w, err
	}
	w.Start, w.End, w.CircuitStateID, w.Rotation = start, end, csid, rot
	return w, nil
}

func (w Wire) write(out io.Writer) error {
	if err := w.Start.write(out); err != nil {
		return err
	}
	if err := w.End.write(out); err != nil {
		return err
	}
	if err := writeI32(out, w.CircuitStateID); err != nil {
		return err
	}
	return writeF32(out, w.Rotation)
}

// CircuitStates is the tagged on/off record for every net in the file. It
// is implemented by WorldCircuitStates and SubassemblyCircuitStates.
type CircuitStates interface {
	saveType() SaveType
	write(w io.Writer) error
}

// WorldCircuitStates is a dense, bit-packed on/off vector: bit i of Bytes
// is net i's state, LSB-first within each byte. len(Bytes) is rounded up
// to a byte boundary and is independent of the actual live net count.
type WorldCircuitStates struct {
	Bytes []byte
}

func (WorldCircuitStates) saveType() SaveType { return SaveTypeWorld }

func (cs WorldCircuitStates) write(w io.Writer) error {
	if err := writeSeqLen(w, len(cs.Bytes)); err != nil {
		return err
	}
	if len(cs.Bytes) == 0 {
		return nil
	}
	_, err := w.Write(cs.Bytes)
	return ioError("write circuit state bytes", err)
}

// SubassemblyCircuitStates is the sparse "which nets are on" list used by
// pasteable subassembly saves.
type SubassemblyCircuitStates struct {
	OnStates []int32
}

func (SubassemblyCircuitStates) saveType() SaveType { return SaveTypeSubassembly }

func (cs SubassemblyCircuitStates) write(w io.Writer) error {
	if err := writeSeqLen(w, len(cs.OnStates)); err != nil {
		return err
	}
	for _, id := range cs.OnStates {
		if err := writeI32(w, id); err != nil {
			return err
		}
	}
	return nil
}

// readCircuitStates decodes the circuit-states block appropriate to st.
func readCircuitStates(r io.Reader, st SaveType) (CircuitStates, error) {
	switch st {
	case SaveTypeWorld:
		n, err := readSeqLen(r)
		if err != nil {
			return nil, err
		}
		b, err := readBytes(r, n)
		if err != nil {
			return nil, err
		}
		return WorldCircuitStates{Bytes: b}, nil
	case SaveTypeSubassembly:
		n, err := readSeqLen(r)
		if err != nil {
			return nil, err
		}
		ids := make([]int32, n)
		for i := range ids {
			v, err := readI32(r)
			if err != nil {
				return nil, err
			}
			ids[i] = v
		}
		return SubassemblyCircuitStates{OnStates: ids}, nil
	default:
		return nil, invalidSavef("unknown save_type %d", st)
	}
}

// writeCircuitStates writes cs, failing if its variant doesn't match st.
func writeCircuitStates(w io.Writer, st SaveType, cs CircuitStates) error {
	if cs.saveType() != st {
		return invalidSavef("save_type %d does not match circuit_states variant %T", st, cs)
	}
	return cs.write(w)
}

// readMods decodes the i32-length-prefixed ModInfo sequence.
func readMods(r io.Reader) ([]ModInfo, error) {
	n, err := readSeqLen(r)
	if err != nil {
		return nil, err
	}
	mods := make([]ModInfo, n)
	for i := range mods {
		m, err := readModInfo(r)
		if err != nil {
			return nil, err
		}
		mods[i] = m
	}
	return mods, nil
}

func writeMods(w io.Writer, mods []ModInfo) error {
	if err := writeSeqLen(w, len(mods)); err != nil {
		return err
	}
	for _, m := range mods {
		if err := m.write(w); err != nil {
			return err
		}
	}
	return nil
}

// readComponentTypes decodes the i32-length-prefixed ComponentType sequence.
func readComponentTypes(r io.Reader) ([]ComponentType, error) {
	n, err := readSeqLen(r)
	if err != nil {
		return nil, err
	}
	types := make([]ComponentType, n)
	for i := range types {
		ct, err := readComponentType(r)
		if err != nil {
			return nil, err
		}
		types[i] = ct
	}
	return types, nil
}

func writeComponentTypes(w io.Writer, types []ComponentType) error {
	if err := writeSeqLen(w, len(types)); err != nil {
		return err
	}
	for _, ct := range types {
		if err := ct.write(w); err != nil {
			return err
		}
	}
	return nil
}

// readInputs/readOutputs decode the i32-length-prefixed peg-state
// sequences embedded in a Component record.
func readInputs(r io.Reader) ([]Input, error) {
	n, err := readSeqLen(r)
	if err != nil {
		return nil, err
	}
	in := make([]Input, n)
	for i := range in {
		v, err := readInput(r)
		if err != nil {
			return nil, err
		}
		in[i] = v
	}
	return in, nil
}

func writeInputs(w io.Writer, in []Input) error {
	if err := writeSeqLen(w, len(in)); err != nil {
		return err
	}
	for _, v := range in {
		if err := v.write(w); err != nil {
			return err
		}
	}
	return nil
}

func readOutputs(r io.Reader) ([]Output, error) {
	n, err := readSeqLen(r)
	if err != nil {
		return nil, err
	}
	out := make([]Output, n)
	for i := range out {
		v, err := readOutput(r)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func writeOutputs(w io.Writer, out []Output) error {
	if err := writeSeqLen(w, len(out)); err != nil {
		return err
	}
	for _, v := range out {
		if err := v.write(w); err != nil {
			return err
		}
	}
	return nil
}

// readCustomData decodes the optional trailing byte blob on a Component: a
// length of -1 means no data, otherwise the length is an explicit
// (possibly zero) byte count.
func readCustomData(r io.Reader) ([]byte, error) {
	n, err := readI32(r)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, nil
	}
	return readBytes(r, int(n))
}

func writeCustomData(w io.Writer, data []byte) error {
	if data == nil {
		return writeI32(w, -1)
	}
	if err := writeI32(w, int32(len(data))); err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	_, err := w.Write(data)
	return ioError("write custom data", err)
}
