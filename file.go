// Copyright 2024 Blotter Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package blotter

import (
	"bufio"
	"bytes"
	"io"
)

// BlotterFile is a decoded save of any supported version. It is a closed,
// two-case tagged union: the concrete type behind the interface is always
// *BlotterFileV5 or *BlotterFileV6. Use a type switch (or Migrate, to
// normalize to the newest version first) to get at version-specific
// fields.
type BlotterFile interface {
	isBlotterFile()

	// Version reports the on-disk save-version byte.
	Version() byte

	// Write emits this value in its own version's wire format, including
	// header, version byte and footer.
	Write(w io.Writer) error
}

// Read consumes a complete save from r: the 16-byte header, a one-byte
// save-version, and the version's body and footer. The returned
// BlotterFile preserves whichever version was found; unrecognized version
// bytes produce an *IncompatibleVersionError.
func Read(r io.Reader) (BlotterFile, error) {
	switch r.(type) {
	case *bytes.Reader, *bufio.Reader:
		// Already buffered or in-memory; don't wrap again.
	default:
		r = bufio.NewReader(r)
	}

	if err := readMagic(r, headerMagic); err != nil {
		return nil, err
	}
	version, err := readU8(r)
	if err != nil {
		return nil, err
	}
	switch version {
	case saveVersionV5:
		return readAfterSaveVersionV5(r)
	case saveVersionV6:
		return readAfterSaveVersionV6(r)
	default:
		return nil, &IncompatibleVersionError{Version: version}
	}
}
