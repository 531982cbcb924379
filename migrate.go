// Copyright 2024 Blotter Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package blotter

import "math"

// Migrate converts f to the newest version (currently V6), total and
// id-preserving: every field other than Component.Position is carried over
// byte-identical. Migrate on a value already at the newest version is the
// identity.
func Migrate(f BlotterFile) *BlotterFileV6 {
	switch v := f.(type) {
	case *BlotterFileV6:
		return v
	case *BlotterFileV5:
		return migrateV5ToV6(v)
	default:
		assertf(false, "unrecognized BlotterFile implementation %T", f)
		return nil
	}
}

func migrateV5ToV6(f *BlotterFileV5) *BlotterFileV6 {
	logger.Infof("migrating save from v5 to v6: %d components, %d wires", len(f.Components), len(f.Wires))
	out := &BlotterFileV6{
		GameVersion:    f.GameVersion,
		SaveType:       f.SaveType,
		Mods:           f.Mods,
		ComponentTypes: f.ComponentTypes,
		Wires:          f.Wires,
		CircuitStates:  f.CircuitStates,
		Components:     make([]ComponentV6, len(f.Components)),
	}
	for i, c := range f.Components {
		out.Components[i] = ComponentV6{
			Address:    c.Address,
			Parent:     c.Parent,
			TypeID:     c.TypeID,
			Position:   migratePosition(c.Position),
			Rotation:   c.Rotation,
			Inputs:     c.Inputs,
			Outputs:    c.Outputs,
			CustomData: c.CustomData,
		}
	}
	return out
}

// migratePosition converts a V5 meter position to V6 millimeters by
// IEEE-754 multiply followed by truncation toward zero, saturating to
// math.MinInt32/math.MaxInt32 on overflow. The multiply itself must happen
// in float32: widening to float64 first would round the product to a
// different, more precise value than the single-precision multiply produces,
// which can truncate to a different millimeter integer when the true product
// sits within a ULP of a boundary. Go's float-to-int conversion is itself
// implementation-defined for out-of-range inputs, so the saturation bounds
// are checked on the (now float64, for comparison against math.MaxInt32)
// product, not after converting.
func migratePosition(p [3]float32) [3]int32 {
	const conversionFactor float32 = 1000
	var out [3]int32
	for i, v := range p {
		out[i] = truncToInt32Saturating(float64(v * conversionFactor))
	}
	return out
}

func truncToInt32Saturating(v float64) int32 {
	trunc := math.Trunc(v)
	switch {
	case trunc <= math.MinInt32:
		return math.MinInt32
	case trunc >= math.MaxInt32:
		return math.MaxInt32
	default:
		return int32(trunc)
	}
}
