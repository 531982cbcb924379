// Copyright 2024 Blotter Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package blotter

import (
	"bytes"
	"errors"
	"testing"
)

func minimalV5() *BlotterFileV5 {
	return &BlotterFileV5{
		GameVersion:    [4]int32{0, 9, 0, 0},
		SaveType:       SaveTypeWorld,
		Mods:           nil,
		ComponentTypes: nil,
		Components:     nil,
		Wires:          nil,
		CircuitStates:  WorldCircuitStates{Bytes: []byte{}},
	}
}

func minimalV6() *BlotterFileV6 {
	return &BlotterFileV6{
		GameVersion:    [4]int32{1, 0, 0, 0},
		SaveType:       SaveTypeWorld,
		Mods:           nil,
		ComponentTypes: nil,
		Components:     nil,
		Wires:          nil,
		CircuitStates:  WorldCircuitStates{Bytes: []byte{}},
	}
}

func TestV5RoundTrip(t *testing.T) {
	want := minimalV5()
	want.Mods = []ModInfo{{ModID: "base", ModVersion: [4]int32{1, 0, 0, 0}}}
	want.ComponentTypes = []ComponentType{{NumericID: 1, TextID: "and_gate"}}
	want.Components = []ComponentV5{{
		Address:  1,
		Parent:   0,
		TypeID:   1,
		Position: [3]float32{1.5, -2.25, 0},
		Rotation: [4]float32{0, 0, 0, 1},
		Inputs:   []Input{{CircuitStateID: 0}},
		Outputs:  []Output{{CircuitStateID: 1}},
	}}
	want.CircuitStates = WorldCircuitStates{Bytes: []byte{0x03}}

	var buf bytes.Buffer
	if err := want.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	gotV5, ok := got.(*BlotterFileV5)
	if !ok {
		t.Fatalf("Read returned %T, want *BlotterFileV5", got)
	}

	var reencoded bytes.Buffer
	if err := gotV5.Write(&reencoded); err != nil {
		t.Fatalf("re-Write: %v", err)
	}

	var original bytes.Buffer
	want.Write(&original)
	if !bytes.Equal(original.Bytes(), reencoded.Bytes()) {
		t.Fatalf("round trip not byte-identical:\n got  %x\n want %x", reencoded.Bytes(), original.Bytes())
	}
}

func TestV6RoundTrip(t *testing.T) {
	want := minimalV6()
	want.Components = []ComponentV6{{
		Address:  1,
		Parent:   0,
		TypeID:   2,
		Position: [3]int32{1000, -2000, 0},
		Rotation: [4]float32{0, 0, 0, 1},
		Inputs:   nil,
		Outputs:  nil,
	}}

	var buf bytes.Buffer
	if err := want.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	gotV6, ok := got.(*BlotterFileV6)
	if !ok {
		t.Fatalf("Read returned %T, want *BlotterFileV6", got)
	}
	if gotV6.Components[0].Position != want.Components[0].Position {
		t.Fatalf("Position = %v, want %v", gotV6.Components[0].Position, want.Components[0].Position)
	}
}

func TestReadUnknownVersion(t *testing.T) {
	var buf bytes.Buffer
	writeMagic(&buf, headerMagic)
	writeU8(&buf, 99)

	_, err := Read(&buf)
	var verr *IncompatibleVersionError
	if !errors.As(err, &verr) {
		t.Fatalf("Read(version 99) = %v, want *IncompatibleVersionError", err)
	}
	if verr.Version != 99 {
		t.Fatalf("IncompatibleVersionError.Version = %d, want 99", verr.Version)
	}
}
