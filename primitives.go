// Copyright 2024 Blotter Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package blotter

import (
	"encoding/binary"
	"io"
	"math"
	"unicode/utf8"
)

// magicLen is the width, in bytes, of the header and footer markers that
// frame every save file.
const magicLen = 16

var (
	headerMagic = [magicLen]byte{'L', 'o', 'g', 'i', 'c', ' ', 'W', 'o', 'r', 'l', 'd', ' ', 's', 'a', 'v', 'e'}
	footerMagic = [magicLen]byte{'r', 'e', 'd', 's', 't', 'o', 'n', 'e', ' ', 's', 'u', 'x', ' ', 'l', 'o', 'l'}
)

func readU8(r io.Reader) (uint8, error) {
	var buf [1]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, ioError("read u8", err)
	}
	return buf[0], nil
}

func writeU8(w io.Writer, v uint8) error {
	_, err := w.Write([]byte{v})
	return ioError("write u8", err)
}

func readU16(r io.Reader) (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, ioError("read u16", err)
	}
	return binary.LittleEndian.Uint16(buf[:]), nil
}

func writeU16(w io.Writer, v uint16) error {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], v)
	_, err := w.Write(buf[:])
	return ioError("write u16", err)
}

func readU32(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, ioError("read u32", err)
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func writeU32(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return ioError("write u32", err)
}

func readI32(r io.Reader) (int32, error) {
	v, err := readU32(r)
	return int32(v), err
}

func writeI32(w io.Writer, v int32) error {
	return writeU32(w, uint32(v))
}

func readF32(r io.Reader) (float32, error) {
	v, err := readU32(r)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

func writeF32(w io.Writer, v float32) error {
	return writeU32(w, math.Float32bits(v))
}

// readI32Array4 reads the fixed-width [4]int32 version tuple shared by
// ModInfo.ModVersion and BlotterFile.GameVersion.
func readI32Array4(r io.Reader) ([4]int32, error) {
	var out [4]int32
	for i := range out {
		v, err := readI32(r)
		if err != nil {
			return out, err
		}
		out[i] = v
	}
	return out, nil
}

func writeI32Array4(w io.Writer, v [4]int32) error {
	for _, e := range v {
		if err := writeI32(w, e); err != nil {
			return err
		}
	}
	return nil
}

// readString decodes an i32-length-prefixed UTF-8 string. A negative length
// is a decode failure, as is a length that overflows int on 32-bit hosts,
// as is invalid UTF-8.
func readString(r io.Reader) (string, error) {
	n, err := readSeqLen(r)
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if n > 0 {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", ioError("read string bytes", err)
		}
	}
	if !utf8.Valid(buf) {
		return "", invalidSavef("string is not valid UTF-8")
	}
	return string(buf), nil
}

func writeString(w io.Writer, s string) error {
	if err := writeI32(w, int32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return ioError("write string bytes", err)
}

// readSeqLen decodes the i32 length prefix shared by every length-prefixed
// sequence (strings, mods, component types, components, wires, pegs,
// on_states). A negative count, or one that doesn't fit in int, is
// ErrInvalidSave.
func readSeqLen(r io.Reader) (int, error) {
	raw, err := readI32(r)
	if err != nil {
		return 0, err
	}
	if raw < 0 {
		return 0, invalidSavef("negative sequence length %d", raw)
	}
	n := int(raw)
	if int32(n) != raw {
		return 0, invalidSavef("sequence length %d does not fit in int", raw)
	}
	return n, nil
}

func writeSeqLen(w io.Writer, n int) error {
	return writeI32(w, int32(n))
}

// readMagic consumes magicLen bytes and fails unless they match want.
func readMagic(r io.Reader, want [magicLen]byte) error {
	var got [magicLen]byte
	if _, err := io.ReadFull(r, got[:]); err != nil {
		return ioError("read magic", err)
	}
	if got != want {
		return invalidSavef("magic marker mismatch: got %q, want %q", got[:], want[:])
	}
	return nil
}

func writeMagic(w io.Writer, magic [magicLen]byte) error {
	_, err := w.Write(magic[:])
	return ioError("write magic", err)
}

// readBytes reads exactly n raw bytes.
func readBytes(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if n > 0 {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, ioError("read bytes", err)
		}
	}
	return buf, nil
}
