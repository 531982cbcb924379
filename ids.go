// Copyright 2024 Blotter Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package blotter

// ComponentId, WireId and NetId are opaque, internally-allocated
// identifiers, disjoint from the on-disk uint32 addresses assigned by the
// serializer. They are distinct types so the three id spaces can never be
// mixed up at compile time.
//
// ComponentId is nonzero by construction (see HandleStore.Insert): the
// zero value is reserved so it can double as Component.Parent's "no
// parent" marker on the wire without a separate optional-ness bit.
type (
	ComponentId uint32
	WireId      uint32
	NetId       uint32
)
