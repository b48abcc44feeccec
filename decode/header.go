package decode

import (
	"bytes"

	"github.com/bunaudit/bunaudit"
)

// magic is the 8-byte file signature. The real Bun v3 binary lockfile
// format's magic bytes are not part of this project's retrieval pack;
// this value is this project's own normative choice for the format it
// decodes (see DESIGN.md).
var magic = [8]byte{'B', 'U', 'N', 'l', 'b', 0, 0, 0}

// Header is the fixed 16-byte prefix: magic, format_version, flags.
type Header struct {
	FormatVersion uint32
	Flags         uint32
}

// FlagVerbose marks a lockfile produced with Bun's verbose-trailer option
// set; it does not change decode behavior, only what trailers to expect.
const FlagVerbose uint32 = 1 << 0

// ReadHeader reads and validates the 16-byte header. An unsupported
// format_version is fatal by default (spec.md §4.1); callers that want a
// partial report for a future-versioned lockfile should catch
// bunaudit.ErrUnsupportedVersion and surface it as the
// lockfile_version_unsupported finding themselves rather than aborting.
func (c *Cursor) ReadHeader() (Header, error) {
	magicBytes, err := c.Bytes(len(magic))
	if err != nil {
		return Header{}, err
	}
	if !bytes.Equal(magicBytes, magic[:]) {
		return Header{}, &bunaudit.Error{
			Op:      "header",
			Kind:    bunaudit.ErrBadMagic,
			Message: "magic bytes did not match",
		}
	}
	ver, err := c.U32()
	if err != nil {
		return Header{}, err
	}
	flags, err := c.U32()
	if err != nil {
		return Header{}, err
	}
	if ver < bunaudit.FormatVersionMin || ver > bunaudit.FormatVersionMax {
		return Header{FormatVersion: ver, Flags: flags}, &bunaudit.Error{
			Op:      "header",
			Kind:    bunaudit.ErrUnsupportedVersion,
			Message: "format_version outside supported range",
		}
	}
	return Header{FormatVersion: ver, Flags: flags}, nil
}
