// Package buffer implements helpers for writing and reading fixed-width
// integers and length-prefixed byte strings to and from io.Writer and
// io.Reader, used by the binary codecs of the module.
package buffer

import (
	"encoding/binary"
	"io"
)

// WriteUint64 writes c to w as 8 big-endian bytes.
func WriteUint64(w io.Writer, c uint64) (n int64, err error) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], c)
	inc, err := w.Write(buf[:])
	return int64(inc), err
}

// WriteInt writes c to w as a uint64.
// The value must be non-negative.
func WriteInt(w io.Writer, c int) (n int64, err error) {
	return WriteUint64(w, uint64(c))
}

// WriteUint64Slice writes the elements of c to w as consecutive
// big-endian uint64, prefixed by the length of c.
func WriteUint64Slice(w io.Writer, c []uint64) (n int64, err error) {
	if n, err = WriteUint64(w, uint64(len(c))); err != nil {
		return
	}
	var inc int64
	for _, ci := range c {
		if inc, err = WriteUint64(w, ci); err != nil {
			return
		}
		n += inc
	}
	return
}

// WriteBytes writes c to w prefixed by its length.
func WriteBytes(w io.Writer, c []byte) (n int64, err error) {
	if n, err = WriteUint64(w, uint64(len(c))); err != nil {
		return
	}
	inc, err := w.Write(c)
	return n + int64(inc), err
}

// ReadUint64 reads 8 big-endian bytes from r into c.
func ReadUint64(r io.Reader, c *uint64) (n int64, err error) {
	var buf [8]byte
	inc, err := io.ReadFull(r, buf[:])
	if err != nil {
		return int64(inc), err
	}
	*c = binary.BigEndian.Uint64(buf[:])
	return int64(inc), nil
}

// ReadInt reads a uint64 from r into c.
func ReadInt(r io.Reader, c *int) (n int64, err error) {
	var v uint64
	if n, err = ReadUint64(r, &v); err != nil {
		return
	}
	*c = int(v)
	return
}

// readChunk bounds the allocation made up front for a length-prefixed read:
// the length prefix is untrusted input, so buffers grow with the bytes that
// actually arrive rather than with the announced size.
const readChunk = 1 << 16

// ReadUint64Slice reads a length-prefixed slice of big-endian uint64 from r.
// A length prefix exceeding the available input yields an error, not a
// partial result.
func ReadUint64Slice(r io.Reader, c *[]uint64) (n int64, err error) {
	var size uint64
	if n, err = ReadUint64(r, &size); err != nil {
		return
	}
	s := make([]uint64, 0, min(size, readChunk/8))
	var inc int64
	var v uint64
	for i := uint64(0); i < size; i++ {
		if inc, err = ReadUint64(r, &v); err != nil {
			return
		}
		n += inc
		s = append(s, v)
	}
	*c = s
	return
}

// ReadBytes reads a length-prefixed byte string from r.
// A length prefix exceeding the available input yields an error, not a
// partial result.
func ReadBytes(r io.Reader, c *[]byte) (n int64, err error) {
	var size uint64
	if n, err = ReadUint64(r, &size); err != nil {
		return
	}
	b := make([]byte, 0, min(size, readChunk))
	for remaining := size; remaining > 0; {
		step := min(remaining, readChunk)
		buf := make([]byte, step)
		inc, err := io.ReadFull(r, buf)
		if err != nil {
			return n + int64(inc), err
		}
		n += int64(inc)
		b = append(b, buf...)
		remaining -= step
	}
	*c = b
	return n, nil
}

// BinarySizeUint64Slice returns the serialized size in bytes of a
// length-prefixed uint64 slice of the given length.
func BinarySizeUint64Slice(length int) int {
	return 8 + 8*length
}
