// Copyright 2024 Blotter Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package blotter

// Version is the module's own release version, distinct from the on-disk
// save-version byte Read/Write negotiate.
const Version = "0.1.0"
