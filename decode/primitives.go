package decode

import "github.com/bunaudit/bunaudit"

// ExternalStr is an {offset, length} reference into the decoder's string
// bytes buffer (spec.md §4.2 "External string").
type ExternalStr struct {
	Offset uint32
	Length uint32
}

// ReadExternalStr reads an 8-byte external-string reference. It does not
// validate the reference against the string buffer — that buffer hasn't
// necessarily been read yet — so validation happens in resolveString.
func (c *Cursor) ReadExternalStr() (ExternalStr, error) {
	off, err := c.U32()
	if err != nil {
		return ExternalStr{}, err
	}
	length, err := c.U32()
	if err != nil {
		return ExternalStr{}, err
	}
	return ExternalStr{Offset: off, Length: length}, nil
}

// resolveString resolves an ExternalStr against the decoder's string bytes
// buffer, bounds-checking offset+length against its size first.
func resolveString(strBuf []byte, s ExternalStr) (string, error) {
	if !CheckedRange(uint64(s.Offset), uint64(s.Length), 1, uint64(len(strBuf))) {
		return "", &bunaudit.Error{
			Op:      "string buffer",
			Kind:    bunaudit.ErrBadOffset,
			Message: "external string reference out of range",
		}
	}
	return string(strBuf[s.Offset : s.Offset+s.Length]), nil
}

// ArrayHeader is a {count, item_stride} pair preceding a columnar array
// (spec.md §4.2 "Array header").
type ArrayHeader struct {
	Count  uint32
	Stride uint32
}

// ReadArrayHeader reads an 8-byte array header and validates that
// count*stride does not overflow or exceed the buffer's remaining bytes.
func (c *Cursor) ReadArrayHeader() (ArrayHeader, error) {
	count, err := c.U32()
	if err != nil {
		return ArrayHeader{}, err
	}
	stride, err := c.U32()
	if err != nil {
		return ArrayHeader{}, err
	}
	if !CheckedRange(0, uint64(count), uint64(stride), uint64(c.Remaining())) {
		return ArrayHeader{}, c.badOffset("array header count*stride exceeds remaining buffer")
	}
	return ArrayHeader{Count: count, Stride: stride}, nil
}
