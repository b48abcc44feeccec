package decode

import "github.com/bunaudit/bunaudit"

// idRange is the raw {start, count} column entry referencing a shared
// buffer; it becomes a bunaudit.IDRange once validated against that
// buffer's length.
type idRange struct {
	Start uint32
	Count uint32
}

func (c *Cursor) readIDRange() (idRange, error) {
	start, err := c.U32()
	if err != nil {
		return idRange{}, err
	}
	count, err := c.U32()
	if err != nil {
		return idRange{}, err
	}
	return idRange{Start: start, Count: count}, nil
}

func (r idRange) toModel() bunaudit.IDRange {
	return bunaudit.IDRange{Start: r.Start, Count: r.Count}
}

func checkRange(r idRange, bufLen int) bool {
	return CheckedRange(uint64(r.Start), uint64(r.Count), 1, uint64(bufLen))
}

// dependencyRecord is the raw, string-reference form of one dependency
// buffer entry (spec.md §3 "Dependency edge"): 24 bytes (name 8 + constraint
// 8 + behavior/pad 4 + resolved_id 4).
type dependencyRecord struct {
	Name       ExternalStr
	Constraint ExternalStr
	Behavior   uint8
	ResolvedID int32 // -1 means unresolved
}

const dependencyRecordSize = 24

func (c *Cursor) readDependencyRecord() (dependencyRecord, error) {
	name, err := c.ReadExternalStr()
	if err != nil {
		return dependencyRecord{}, err
	}
	constraint, err := c.ReadExternalStr()
	if err != nil {
		return dependencyRecord{}, err
	}
	behavior, err := c.U8()
	if err != nil {
		return dependencyRecord{}, err
	}
	if err := c.Skip(3); err != nil {
		return dependencyRecord{}, err
	}
	resolvedID, err := c.I32()
	if err != nil {
		return dependencyRecord{}, err
	}
	return dependencyRecord{Name: name, Constraint: constraint, Behavior: behavior, ResolvedID: resolvedID}, nil
}

// resolveDependency turns a raw record into a bunaudit.Dependency against
// an already-available string buffer, validating ResolvedID against
// packageCount (spec.md §3: "every dependency id points to a valid package
// id in the same table"). Used for trailer payloads, which are read after
// the string buffer; the package table's own dependency buffer is resolved
// in a second pass by decode.go since it precedes the string buffer in
// declared order.
//
// A ResolvedID of -1 means the edge is deliberately unresolved (e.g. an
// optional peer that wasn't installed) and is left alone. A ResolvedID
// that is non-negative but outside [0, packageCount) points nowhere; it's
// downgraded to Resolved: false and reported as a parser warning rather
// than trusted as a package-table index.
func resolveDependency(strBuf []byte, d dependencyRecord, packageCount int) (bunaudit.Dependency, string, error) {
	name, err := resolveString(strBuf, d.Name)
	if err != nil {
		return bunaudit.Dependency{}, "", err
	}
	constraint, err := resolveString(strBuf, d.Constraint)
	if err != nil {
		return bunaudit.Dependency{}, "", err
	}
	dep := bunaudit.Dependency{
		Name:       name,
		Constraint: constraint,
		Behavior:   bunaudit.Behavior(d.Behavior),
		ResolvedID: int(d.ResolvedID),
		Resolved:   d.ResolvedID >= 0,
	}
	var warn string
	if dep.Resolved && (dep.ResolvedID < 0 || dep.ResolvedID >= packageCount) {
		dep.Resolved = false
		warn = warnDependencyIDOutOfRange(dep.ResolvedID)
	}
	return dep, warn, nil
}

// readRawDependencyBuffer reads the length-prefixed dependency buffer: u32
// count followed by count fixed-width records, without resolving string
// references (the string buffer hasn't been read yet at this point in
// declared order).
func (c *Cursor) readRawDependencyBuffer() ([]dependencyRecord, error) {
	count, err := c.U32()
	if err != nil {
		return nil, err
	}
	if !CheckedRange(0, uint64(count), dependencyRecordSize, uint64(c.Remaining())) {
		return nil, c.badOffset("dependency buffer count exceeds remaining buffer")
	}
	out := make([]dependencyRecord, 0, count)
	for i := uint32(0); i < count; i++ {
		rec, err := c.readDependencyRecord()
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// readResolvedPeersBuffer reads the length-prefixed buffer of resolved peer
// package ids. It carries no string references, so it's resolved in place.
func (c *Cursor) readResolvedPeersBuffer() ([]int, error) {
	count, err := c.U32()
	if err != nil {
		return nil, err
	}
	if !CheckedRange(0, uint64(count), 4, uint64(c.Remaining())) {
		return nil, c.badOffset("resolved-peers buffer count exceeds remaining buffer")
	}
	out := make([]int, 0, count)
	for i := uint32(0); i < count; i++ {
		id, err := c.I32()
		if err != nil {
			return nil, err
		}
		out = append(out, int(id))
	}
	return out, nil
}

// binRecord/scriptRecord are the raw, string-reference form of one
// bin/script buffer entry: {name ExternalStr, value ExternalStr}, 16 bytes.
type binRecord struct {
	Name ExternalStr
	Path ExternalStr
}

type scriptRecord struct {
	Name  ExternalStr
	Value ExternalStr
}

const binScriptEntrySize = 16

func (c *Cursor) readRawBinBuffer() ([]binRecord, error) {
	count, err := c.U32()
	if err != nil {
		return nil, err
	}
	if !CheckedRange(0, uint64(count), binScriptEntrySize, uint64(c.Remaining())) {
		return nil, c.badOffset("bin buffer count exceeds remaining buffer")
	}
	out := make([]binRecord, 0, count)
	for i := uint32(0); i < count; i++ {
		nameRef, err := c.ReadExternalStr()
		if err != nil {
			return nil, err
		}
		pathRef, err := c.ReadExternalStr()
		if err != nil {
			return nil, err
		}
		out = append(out, binRecord{Name: nameRef, Path: pathRef})
	}
	return out, nil
}

func (c *Cursor) readRawScriptBuffer() ([]scriptRecord, error) {
	count, err := c.U32()
	if err != nil {
		return nil, err
	}
	if !CheckedRange(0, uint64(count), binScriptEntrySize, uint64(c.Remaining())) {
		return nil, c.badOffset("script buffer count exceeds remaining buffer")
	}
	out := make([]scriptRecord, 0, count)
	for i := uint32(0); i < count; i++ {
		nameRef, err := c.ReadExternalStr()
		if err != nil {
			return nil, err
		}
		valRef, err := c.ReadExternalStr()
		if err != nil {
			return nil, err
		}
		out = append(out, scriptRecord{Name: nameRef, Value: valRef})
	}
	return out, nil
}

// readStringBuffer reads the length-prefixed string bytes buffer: u32
// length followed by raw UTF-8 bytes. The returned slice aliases the input
// buffer.
func (c *Cursor) readStringBuffer() ([]byte, error) {
	length, err := c.U32()
	if err != nil {
		return nil, err
	}
	return c.Bytes(int(length))
}
