package bunaudit

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"fmt"
	"hash"
)

// IntegrityKind discriminates the Integrity tagged union (spec.md §3).
type IntegrityKind uint8

const (
	// IntegrityAbsent means the package row carried no integrity record at
	// all.
	IntegrityAbsent IntegrityKind = iota
	// IntegritySRI means the record decoded to a recognized algorithm and
	// digest.
	IntegritySRI
	// IntegrityMalformed means the record's tag byte was outside the known
	// algorithm set.
	IntegrityMalformed
)

// Algorithm is an SRI hash algorithm name, one of the four Bun supports.
type Algorithm string

const (
	SHA1   Algorithm = "sha1"
	SHA256 Algorithm = "sha256"
	SHA384 Algorithm = "sha384"
	SHA512 Algorithm = "sha512"
)

// digestLen is the fixed byte length of each algorithm's raw digest.
var digestLen = map[Algorithm]int{
	SHA1:   sha1.Size,
	SHA256: sha256.Size,
	SHA384: sha512.Size384,
	SHA512: sha512.Size,
}

// New returns a fresh hash.Hash for the algorithm, or nil if unknown.
func (a Algorithm) New() hash.Hash {
	switch a {
	case SHA1:
		return sha1.New()
	case SHA256:
		return sha256.New()
	case SHA384:
		return sha512.New384()
	case SHA512:
		return sha512.New()
	default:
		return nil
	}
}

// Integrity is the decoded form of a package's integrity record: one of
// "sri{algorithm, base64 digest}", "absent", or "malformed{raw_tag}".
//
// It is deliberately a plain struct rather than an interface-backed sum
// type: the set of recognized algorithms is fixed and small, and callers
// almost always just want the SRI string form.
type Integrity struct {
	Kind      IntegrityKind
	Algorithm Algorithm
	Digest    string // base64, only meaningful when Kind == IntegritySRI
	RawTag    uint8  // only meaningful when Kind == IntegrityMalformed
}

// String renders the SRI form "algo-base64digest", or the empty string for
// IntegrityAbsent, or "malformed(0xNN)" for IntegrityMalformed.
func (i Integrity) String() string {
	switch i.Kind {
	case IntegritySRI:
		return fmt.Sprintf("%s-%s", i.Algorithm, i.Digest)
	case IntegrityMalformed:
		return fmt.Sprintf("malformed(0x%02x)", i.RawTag)
	default:
		return ""
	}
}

// NewIntegrity constructs a well-formed SRI Integrity from an algorithm and
// raw digest bytes, validating the digest length against the algorithm.
func NewIntegrity(algo Algorithm, sum []byte) (Integrity, error) {
	sz, ok := digestLen[algo]
	if !ok {
		return Integrity{}, fmt.Errorf("bunaudit: unknown integrity algorithm %q", algo)
	}
	if len(sum) != sz {
		return Integrity{}, fmt.Errorf("bunaudit: bad digest length for %s: got %d, want %d", algo, len(sum), sz)
	}
	return Integrity{
		Kind:      IntegritySRI,
		Algorithm: algo,
		Digest:    base64.StdEncoding.EncodeToString(sum),
	}, nil
}
