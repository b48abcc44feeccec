package decode

import (
	"iter"

	"github.com/bunaudit/bunaudit"
)

// Trailer kind tags (spec.md §4.6).
const (
	trailerTrustedHashes uint8 = iota
	trailerOverrides
	trailerPatched
	trailerCatalogDefault
	trailerCatalogNamed
	trailerWorkspacesCount
	trailerConfigVersion
)

// rawTrailer is one length-prefixed trailer record, not yet interpreted.
type rawTrailer struct {
	Kind    uint8
	Payload []byte
}

// scanTrailers walks the trailer records after the body sentinel, one at a
// time, stopping cleanly at end of buffer. Grounded on
// internal/rpm/bdb.PackageDB.Headers's iter.Seq2 walk: each record is
// yielded with its own error so the caller can keep the last-known-good
// Trailers on a truncated tail instead of discarding everything decoded so
// far (spec.md §7 "decoding continues").
func scanTrailers(c *Cursor) iter.Seq2[rawTrailer, error] {
	return func(yield func(rawTrailer, error) bool) {
		for c.Remaining() > 0 {
			kind, err := c.U8()
			if err != nil {
				yield(rawTrailer{}, err)
				return
			}
			if err := c.Skip(3); err != nil {
				yield(rawTrailer{}, err)
				return
			}
			length, err := c.U32()
			if err != nil {
				yield(rawTrailer{}, err)
				return
			}
			if int(length) > c.Remaining() {
				yield(rawTrailer{Kind: kind}, errTrailerTruncated)
				return
			}
			payload, err := c.Bytes(int(length))
			if err != nil {
				yield(rawTrailer{}, err)
				return
			}
			if !yield(rawTrailer{Kind: kind, Payload: payload}, nil) {
				return
			}
		}
	}
}

// errTrailerTruncated is a sentinel recognized by readTrailers to convert a
// declared-but-unavailable trailer length into a warning instead of a
// fatal decode error.
var errTrailerTruncated = &sentinelErr{warnTrailerTruncated}

type sentinelErr struct{ s string }

func (e *sentinelErr) Error() string { return e.s }

// singletonTrailerKinds are the trailer kinds that may appear at most once:
// a second occurrence is a DuplicateTrailer warning, the first-decoded
// value is kept, and the scanner stops entirely. Every other recognized
// kind accumulates across however many records appear (spec.md §4.6
// "Multiple records accumulate").
var singletonTrailerKinds = map[uint8]bool{
	trailerTrustedHashes: true,
	trailerConfigVersion: true,
}

// readTrailers consumes every trailer record in the remainder of c and
// returns the assembled Trailers plus any recoverable warnings. packageCount
// is the number of rows in the package table, used to validate any
// dependency-id reference a trailer payload carries.
func readTrailers(c *Cursor, strBuf []byte, packageCount int) (bunaudit.Trailers, []string, error) {
	var out bunaudit.Trailers
	var warnings []string
	seenSingleton := make(map[uint8]bool)

	for rec, err := range scanTrailers(c) {
		if err != nil {
			if err == errTrailerTruncated {
				warnings = append(warnings, warnTrailerTruncated)
				break
			}
			return out, warnings, err
		}

		if singletonTrailerKinds[rec.Kind] {
			if seenSingleton[rec.Kind] {
				warnings = append(warnings, warnDuplicateTrailer(rec.Kind))
				break
			}
			seenSingleton[rec.Kind] = true
		}

		inner := NewCursor(rec.Payload, "trailer")
		switch rec.Kind {
		case trailerTrustedHashes:
			hashes, err := readU64List(inner)
			if err != nil {
				return out, warnings, err
			}
			out.TrustedHashes = hashes
			out.HasEmptyTrusted = len(hashes) == 0

		case trailerOverrides:
			overrides, depWarnings, err := readOverrides(inner, strBuf, packageCount)
			if err != nil {
				return out, warnings, err
			}
			warnings = append(warnings, depWarnings...)
			out.Overrides = append(out.Overrides, overrides...)

		case trailerPatched:
			patched, err := readPatched(inner, strBuf)
			if err != nil {
				return out, warnings, err
			}
			out.Patched = append(out.Patched, patched...)

		case trailerCatalogDefault:
			deps, depWarnings, err := readDependencyList(inner, strBuf, packageCount)
			if err != nil {
				return out, warnings, err
			}
			warnings = append(warnings, depWarnings...)
			out.DefaultCatalog = append(out.DefaultCatalog, deps...)

		case trailerCatalogNamed:
			catalog, depWarnings, err := readCatalogs(inner, strBuf, packageCount)
			if err != nil {
				return out, warnings, err
			}
			warnings = append(warnings, depWarnings...)
			out.NamedCatalogs = append(out.NamedCatalogs, catalog)

		case trailerWorkspacesCount:
			v, err := inner.U32()
			if err != nil {
				return out, warnings, err
			}
			out.WorkspacesCount = v

		case trailerConfigVersion:
			v, err := inner.I32()
			if err != nil {
				return out, warnings, err
			}
			out.ConfigVersion = v
			out.ConfigVersionSet = true

		default:
			warnings = append(warnings, warnUnknownTrailerKind(rec.Kind))
		}
	}

	return out, warnings, nil
}

func readU64List(c *Cursor) ([]uint64, error) {
	count, err := c.U32()
	if err != nil {
		return nil, err
	}
	if !CheckedRange(0, uint64(count), 8, uint64(c.Remaining())) {
		return nil, c.badOffset("u64 list count exceeds remaining buffer")
	}
	out := make([]uint64, 0, count)
	for i := uint32(0); i < count; i++ {
		v, err := c.U64()
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func readDependencyList(c *Cursor, strBuf []byte, packageCount int) ([]bunaudit.Dependency, []string, error) {
	count, err := c.U32()
	if err != nil {
		return nil, nil, err
	}
	if !CheckedRange(0, uint64(count), dependencyRecordSize, uint64(c.Remaining())) {
		return nil, nil, c.badOffset("dependency list count exceeds remaining buffer")
	}
	var warnings []string
	out := make([]bunaudit.Dependency, 0, count)
	for i := uint32(0); i < count; i++ {
		rec, err := c.readDependencyRecord()
		if err != nil {
			return nil, nil, err
		}
		dep, warn, err := resolveDependency(strBuf, rec, packageCount)
		if err != nil {
			return nil, nil, err
		}
		if warn != "" {
			warnings = append(warnings, warn)
		}
		out = append(out, dep)
	}
	return out, warnings, nil
}

func readOverrides(c *Cursor, strBuf []byte, packageCount int) ([]bunaudit.Override, []string, error) {
	count, err := c.U32()
	if err != nil {
		return nil, nil, err
	}
	if !CheckedRange(0, uint64(count), 8+dependencyRecordSize, uint64(c.Remaining())) {
		return nil, nil, c.badOffset("overrides count exceeds remaining buffer")
	}
	var warnings []string
	out := make([]bunaudit.Override, 0, count)
	for i := uint32(0); i < count; i++ {
		hash, err := c.U64()
		if err != nil {
			return nil, nil, err
		}
		rec, err := c.readDependencyRecord()
		if err != nil {
			return nil, nil, err
		}
		dep, warn, err := resolveDependency(strBuf, rec, packageCount)
		if err != nil {
			return nil, nil, err
		}
		if warn != "" {
			warnings = append(warnings, warn)
		}
		out = append(out, bunaudit.Override{NameHash: hash, Dep: dep})
	}
	return out, warnings, nil
}

func readPatched(c *Cursor, strBuf []byte) ([]bunaudit.Patch, error) {
	count, err := c.U32()
	if err != nil {
		return nil, err
	}
	const patchEntrySize = 8 + 8 + 8 // name_version_hash + path ExternalStr + patch_hash
	if !CheckedRange(0, uint64(count), patchEntrySize, uint64(c.Remaining())) {
		return nil, c.badOffset("patched count exceeds remaining buffer")
	}
	out := make([]bunaudit.Patch, 0, count)
	for i := uint32(0); i < count; i++ {
		nvHash, err := c.U64()
		if err != nil {
			return nil, err
		}
		pathRef, err := c.ReadExternalStr()
		if err != nil {
			return nil, err
		}
		patchHash, err := c.U64()
		if err != nil {
			return nil, err
		}
		path, err := resolveString(strBuf, pathRef)
		if err != nil {
			return nil, err
		}
		out = append(out, bunaudit.Patch{NameVersionHash: nvHash, Path: path, PatchHash: patchHash})
	}
	return out, nil
}

// readCatalogs decodes a single catalog_named record's payload: the name as
// an 8-byte external-string reference into strBuf, then a u32 count and
// count dependency_edge records. Each trailer record carries
// exactly one catalog; a lockfile with multiple named catalogs simply
// emits one trailer record per catalog, and readTrailers accumulates them.
func readCatalogs(c *Cursor, strBuf []byte, packageCount int) (bunaudit.Catalog, []string, error) {
	nameRef, err := c.ReadExternalStr()
	if err != nil {
		return bunaudit.Catalog{}, nil, err
	}
	name, err := resolveString(strBuf, nameRef)
	if err != nil {
		return bunaudit.Catalog{}, nil, err
	}
	deps, warnings, err := readDependencyList(c, strBuf, packageCount)
	if err != nil {
		return bunaudit.Catalog{}, nil, err
	}
	return bunaudit.Catalog{Name: name, Deps: deps}, warnings, nil
}
