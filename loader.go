// Copyright 2024 Blotter Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package blotter

import (
	"bytes"
	"io"
	"os"

	mmap "github.com/edsrzf/mmap-go"
)

// LoadFile memory-maps the save at path and decodes it, avoiding a full
// read() copy of the file into a []byte. Component.CustomData and every string
// field are copied out of the mapped region while decoding (readBytes and
// readString both allocate fresh slices), so it is always safe to Close
// the returned closer immediately after LoadFile returns; nothing in the
// decoded BlotterFile aliases the mapping.
func LoadFile(path string) (BlotterFile, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, ioError("open", err)
	}
	defer f.Close()

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, nil, ioError("mmap", err)
	}

	bf, err := Read(bytes.NewReader(data))
	if err != nil {
		data.Unmap()
		return nil, nil, err
	}
	return bf, &mmapCloser{data}, nil
}

type mmapCloser struct {
	data mmap.MMap
}

func (c *mmapCloser) Close() error {
	return c.data.Unmap()
}
