package decode

import (
	"encoding/base64"

	"github.com/bunaudit/bunaudit"
)

// Integrity tag values (spec.md §4.6 "Integrity record layout").
const (
	integrityTagAbsent uint8 = iota
	integrityTagSHA1
	integrityTagSHA256
	integrityTagSHA384
	integrityTagSHA512
)

// integrityDigestMax is the widest digest this decoder ever reads (sha512,
// 64 bytes); every integrity record occupies a fixed 1+64 = 65-byte stride
// regardless of the algorithm actually used, with trailing bytes unused.
const integrityDigestMax = 64

const integrityRecordSize = 1 + integrityDigestMax

var integrityAlgoByTag = map[uint8]bunaudit.Algorithm{
	integrityTagSHA1:   bunaudit.SHA1,
	integrityTagSHA256: bunaudit.SHA256,
	integrityTagSHA384: bunaudit.SHA384,
	integrityTagSHA512: bunaudit.SHA512,
}

var integrityDigestLen = map[uint8]int{
	integrityTagSHA1:   20,
	integrityTagSHA256: 32,
	integrityTagSHA384: 48,
	integrityTagSHA512: 64,
}

// readIntegrityRecord reads one fixed-width integrity record and resolves
// it directly (it carries no external string references, so there's no
// second pass needed).
func (c *Cursor) readIntegrityRecord() (bunaudit.Integrity, string, error) {
	tag, err := c.U8()
	if err != nil {
		return bunaudit.Integrity{}, "", err
	}
	raw, err := c.Bytes(integrityDigestMax)
	if err != nil {
		return bunaudit.Integrity{}, "", err
	}

	switch tag {
	case integrityTagAbsent:
		return bunaudit.Integrity{Kind: bunaudit.IntegrityAbsent}, "", nil
	case integrityTagSHA1, integrityTagSHA256, integrityTagSHA384, integrityTagSHA512:
		n := integrityDigestLen[tag]
		algo := integrityAlgoByTag[tag]
		digest := base64.StdEncoding.EncodeToString(raw[:n])
		return bunaudit.Integrity{
			Kind:      bunaudit.IntegritySRI,
			Algorithm: algo,
			Digest:    digest,
			RawTag:    tag,
		}, "", nil
	default:
		return bunaudit.Integrity{Kind: bunaudit.IntegrityMalformed, RawTag: tag}, warnMalformedIntegrityTag(tag), nil
	}
}
