// Copyright 2024 Blotter Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package blotter

import (
	"bytes"
	"math"
	"testing"
)

// Scenario 5: a minimal V5 file with empty mods/components/wires and a
// zero-byte World circuit-state vector is read, migrated, written as V6,
// and re-parses as a version-6 save.
func TestMigrateMinimalV5ToV6RoundTrip(t *testing.T) {
	v5 := minimalV5()

	var buf bytes.Buffer
	if err := v5.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}

	read, err := Read(&buf)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	v6 := Migrate(read)
	if v6.Version() != saveVersionV6 {
		t.Fatalf("Version() = %d, want %d", v6.Version(), saveVersionV6)
	}

	var out bytes.Buffer
	if err := v6.Write(&out); err != nil {
		t.Fatalf("Write v6: %v", err)
	}
	reread, err := Read(&out)
	if err != nil {
		t.Fatalf("Read v6: %v", err)
	}
	if reread.Version() != saveVersionV6 {
		t.Fatalf("reread.Version() = %d, want %d", reread.Version(), saveVersionV6)
	}
}

func TestMigratePositionConversion(t *testing.T) {
	v5 := minimalV5()
	v5.Components = []ComponentV5{{
		Address:  1,
		Position: [3]float32{1.5, -2.25, 0.5},
	}}
	v6 := migrateV5ToV6(v5)
	want := [3]int32{1500, -2250, 500}
	if v6.Components[0].Position != want {
		t.Fatalf("Position = %v, want %v", v6.Components[0].Position, want)
	}
}

// This component's Y position, multiplied by 1000, lands within a float32
// ULP of an integer boundary (-77892.99774169922 in float64-exact precision,
// -77893.0 once the multiply itself runs in float32, as the source format
// requires). A migratePosition that upconverts to float64 before multiplying
// truncates to the wrong millimeter value here.
func TestMigratePositionConversionULPBoundary(t *testing.T) {
	v5 := minimalV5()
	v5.Components = []ComponentV5{{
		Address:  1,
		Position: [3]float32{0, -77.89299774169922, 0},
	}}
	v6 := migrateV5ToV6(v5)
	want := [3]int32{0, -77893, 0}
	if v6.Components[0].Position != want {
		t.Fatalf("Position = %v, want %v", v6.Components[0].Position, want)
	}
}

func TestMigrateIdempotentOnNewest(t *testing.T) {
	v6 := minimalV6()
	first := Migrate(v6)
	second := Migrate(first)
	if first != second {
		t.Fatalf("Migrate on a V6 value should be the identity pointer")
	}
}

func TestTruncToInt32SaturatingOverflow(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want int32
	}{
		{"over max", math.MaxInt32 * 10.0, math.MaxInt32},
		{"under min", math.MinInt32 * 10.0, math.MinInt32},
		{"truncates toward zero", 2.9, 2},
		{"truncates toward zero negative", -2.9, -2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncToInt32Saturating(tt.in); got != tt.want {
				t.Errorf("truncToInt32Saturating(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
