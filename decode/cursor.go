// Package decode implements the bunaudit binary lockfile decoder: a single
// forward pass over a byte buffer that produces a *bunaudit.Lockfile or a
// fatal *bunaudit.Error. Every read is bounds-checked against the buffer
// before it is used to allocate or sub-slice, per spec.md §9 "Columnar
// decoding without trusting offsets".
package decode

import (
	"encoding/binary"
	"fmt"

	"github.com/bunaudit/bunaudit"
)

// Cursor is a bounds-checked forward reader over an in-memory byte buffer.
// Grounded on internal/rpm/bdb's io.SectionReader-based page walking and
// internal/rpm/rpmdb/header.go's offset arithmetic, adapted from
// io.ReaderAt-over-a-file to a plain []byte since the core never touches a
// file handle (spec.md §7 "Shared resources: none").
type Cursor struct {
	buf []byte
	pos int
	op  string // current high-level operation, for error messages
}

// NewCursor returns a Cursor positioned at the start of buf. op names the
// decode phase for error messages (e.g. "header", "package table").
func NewCursor(buf []byte, op string) *Cursor {
	return &Cursor{buf: buf, pos: 0, op: op}
}

// Pos reports the current byte offset.
func (c *Cursor) Pos() int { return c.pos }

// Len reports the total buffer length.
func (c *Cursor) Len() int { return len(c.buf) }

// Remaining reports the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.buf) - c.pos }

// WithOp returns a shallow copy of c with a different op label, used when
// entering a new decode phase without losing position.
func (c *Cursor) WithOp(op string) *Cursor {
	return &Cursor{buf: c.buf, pos: c.pos, op: op}
}

func (c *Cursor) shortRead(need int) error {
	return &bunaudit.Error{
		Op:      c.op,
		Kind:    bunaudit.ErrShortRead,
		Message: fmt.Sprintf("need %d bytes at offset %d, only %d remain", need, c.pos, c.Remaining()),
	}
}

func (c *Cursor) badOffset(msg string) error {
	return &bunaudit.Error{
		Op:      c.op,
		Kind:    bunaudit.ErrBadOffset,
		Message: msg,
	}
}

// Bytes returns the next n bytes without copying and advances the cursor.
// The returned slice aliases the input buffer (spec.md §4 "Borrowed vs
// owned strings").
func (c *Cursor) Bytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, c.badOffset(fmt.Sprintf("negative length %d", n))
	}
	if n > c.Remaining() {
		return nil, c.shortRead(n)
	}
	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// Skip advances the cursor by n bytes without returning them.
func (c *Cursor) Skip(n int) error {
	_, err := c.Bytes(n)
	return err
}

// U8 reads one byte.
func (c *Cursor) U8() (uint8, error) {
	b, err := c.Bytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// U16 reads a little-endian uint16.
func (c *Cursor) U16() (uint16, error) {
	b, err := c.Bytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// U32 reads a little-endian uint32.
func (c *Cursor) U32() (uint32, error) {
	b, err := c.Bytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// I32 reads a little-endian int32.
func (c *Cursor) I32() (int32, error) {
	v, err := c.U32()
	return int32(v), err
}

// U64 reads a little-endian uint64.
func (c *Cursor) U64() (uint64, error) {
	b, err := c.Bytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// SeekAbsolute repositions the cursor to offset from the start of the
// buffer. It fails with ErrBadOffset rather than silently clamping when
// offset falls outside [0, len(buf)].
func (c *Cursor) SeekAbsolute(offset int) error {
	if offset < 0 || offset > len(c.buf) {
		return c.badOffset(fmt.Sprintf("seek_absolute(%d) out of range [0, %d]", offset, len(c.buf)))
	}
	c.pos = offset
	return nil
}

// AlignTo advances the cursor to the next multiple of k (k must be one of
// 2, 4, 8), skipping the padding bytes in between. It fails with
// ErrBadOffset if the padding would read past the end of the buffer.
func (c *Cursor) AlignTo(k int) error {
	pad := (k - c.pos%k) % k
	if pad == 0 {
		return nil
	}
	if pad > c.Remaining() {
		return c.badOffset(fmt.Sprintf("align_to(%d) padding of %d bytes exceeds remaining buffer", k, pad))
	}
	return c.Skip(pad)
}

// CheckedRange validates that [start, start+count*elemSize) lies within a buffer of
// the given total length, guarding the multiplication and addition against
// overflow before any allocation or sub-slice sized by it (spec.md §7
// "Memory discipline").
func CheckedRange(start, count, elemSize, bufLen uint64) (ok bool) {
	if elemSize != 0 && count > (^uint64(0))/elemSize {
		return false
	}
	span := count * elemSize
	if start > bufLen {
		return false
	}
	if span > bufLen-start {
		return false
	}
	return true
}
