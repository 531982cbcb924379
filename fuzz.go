// Copyright 2024 Blotter Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package blotter

import "bytes"

// Fuzz is a libFuzzer/go-fuzz-style corpus entry point: decode, migrate,
// and re-encode arbitrary bytes, returning 1 to keep interesting inputs in
// the corpus. It never panics on malformed input — Read and Write return
// ordinary errors for that — so any panic this turns up is a genuine bug.
func Fuzz(data []byte) int {
	bf, err := Read(bytes.NewReader(data))
	if err != nil {
		return 0
	}
	latest := Migrate(bf)
	var out bytes.Buffer
	if err := latest.Write(&out); err != nil {
		return 0
	}
	return 1
}
