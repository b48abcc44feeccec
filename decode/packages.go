package decode

import "github.com/bunaudit/bunaudit"

const metaRecordSize = 1 + 8 + 8 + 8 // behavior_flags + arch + os + man

type metaRecord struct {
	Behavior uint8
	Arch     ExternalStr
	OS       ExternalStr
	Man      ExternalStr
}

func (c *Cursor) readMetaRecord() (metaRecord, error) {
	behavior, err := c.U8()
	if err != nil {
		return metaRecord{}, err
	}
	arch, err := c.ReadExternalStr()
	if err != nil {
		return metaRecord{}, err
	}
	os, err := c.ReadExternalStr()
	if err != nil {
		return metaRecord{}, err
	}
	man, err := c.ReadExternalStr()
	if err != nil {
		return metaRecord{}, err
	}
	return metaRecord{Behavior: behavior, Arch: arch, OS: os, Man: man}, nil
}

// packageTable holds the columnar package-table decode results before the
// shared buffers (which the IDRange columns reference) have been read.
type packageTable struct {
	names       []ExternalStr
	versions    []ExternalStr
	nameHashes  []uint64
	resolutions []resolutionRecord
	integrities []bunaudit.Integrity
	metas       []metaRecord
	depRanges   []idRange
	resRanges   []idRange
	binRanges   []idRange
	scriptRanges []idRange
	warnings    []string
}

// readPackageTable reads the package table's 10 columns (names, versions,
// name hashes, resolutions, integrities, metas, and the dependency,
// resolved-peer, bin, and script id-range columns), in declared order. Each column is length-prefixed by an ArrayHeader so an
// unrecognized future column could be skipped by stride alone; this
// decoder recognizes every column it reads.
func (c *Cursor) readPackageTable() (packageTable, error) {
	var t packageTable

	namesHdr, err := c.ReadArrayHeader()
	if err != nil {
		return t, err
	}
	n := int(namesHdr.Count)
	t.names = make([]ExternalStr, n)
	for i := range t.names {
		s, err := c.ReadExternalStr()
		if err != nil {
			return t, err
		}
		t.names[i] = s
	}

	versHdr, err := c.ReadArrayHeader()
	if err != nil {
		return t, err
	}
	if int(versHdr.Count) != n {
		return t, c.badOffset("version column count does not match names column count")
	}
	t.versions = make([]ExternalStr, n)
	for i := range t.versions {
		s, err := c.ReadExternalStr()
		if err != nil {
			return t, err
		}
		t.versions[i] = s
	}

	hashHdr, err := c.ReadArrayHeader()
	if err != nil {
		return t, err
	}
	if int(hashHdr.Count) != n {
		return t, c.badOffset("name-hash column count does not match names column count")
	}
	t.nameHashes = make([]uint64, n)
	for i := range t.nameHashes {
		v, err := c.U64()
		if err != nil {
			return t, err
		}
		t.nameHashes[i] = v
	}

	resHdr, err := c.ReadArrayHeader()
	if err != nil {
		return t, err
	}
	if int(resHdr.Count) != n {
		return t, c.badOffset("resolutions column count does not match names column count")
	}
	t.resolutions = make([]resolutionRecord, n)
	for i := range t.resolutions {
		r, err := c.readResolutionRecord()
		if err != nil {
			return t, err
		}
		t.resolutions[i] = r
	}

	intHdr, err := c.ReadArrayHeader()
	if err != nil {
		return t, err
	}
	if int(intHdr.Count) != n {
		return t, c.badOffset("integrity column count does not match names column count")
	}
	t.integrities = make([]bunaudit.Integrity, n)
	for i := range t.integrities {
		integ, warn, err := c.readIntegrityRecord()
		if err != nil {
			return t, err
		}
		t.integrities[i] = integ
		if warn != "" {
			t.warnings = append(t.warnings, warn)
		}
	}

	metaHdr, err := c.ReadArrayHeader()
	if err != nil {
		return t, err
	}
	if int(metaHdr.Count) != n {
		return t, c.badOffset("meta column count does not match names column count")
	}
	t.metas = make([]metaRecord, n)
	for i := range t.metas {
		m, err := c.readMetaRecord()
		if err != nil {
			return t, err
		}
		t.metas[i] = m
	}

	t.depRanges, err = c.readIDRangeColumn(n)
	if err != nil {
		return t, err
	}
	t.resRanges, err = c.readIDRangeColumn(n)
	if err != nil {
		return t, err
	}
	t.binRanges, err = c.readIDRangeColumn(n)
	if err != nil {
		return t, err
	}
	t.scriptRanges, err = c.readIDRangeColumn(n)
	if err != nil {
		return t, err
	}

	return t, nil
}

func (c *Cursor) readIDRangeColumn(n int) ([]idRange, error) {
	hdr, err := c.ReadArrayHeader()
	if err != nil {
		return nil, err
	}
	if int(hdr.Count) != n {
		return nil, c.badOffset("id-range column count does not match names column count")
	}
	out := make([]idRange, n)
	for i := range out {
		r, err := c.readIDRange()
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

// buildPackages resolves every string reference and shared-buffer range in
// t against strBuf and the already-decoded shared buffers, producing the
// final []*bunaudit.Package. It also validates that every name is
// non-empty and that every dependency, resolved-peer, bin, and script range
// lies within its buffer. Dependency ids are not checked here; each edge's
// resolved id has already been checked against the package count by
// resolveDependency.
func buildPackages(c *Cursor, t packageTable, strBuf []byte, deps []bunaudit.Dependency, peers []int, bins []bunaudit.Bin, scripts []bunaudit.Script) ([]*bunaudit.Package, []string, error) {
	n := len(t.names)
	pkgs := make([]*bunaudit.Package, n)
	var warnings []string
	warnings = append(warnings, t.warnings...)

	for i := 0; i < n; i++ {
		name, err := resolveString(strBuf, t.names[i])
		if err != nil {
			return nil, nil, err
		}
		if name == "" {
			return nil, nil, c.badOffset("package name is empty")
		}

		resolution, warn, err := resolveResolution(strBuf, t.resolutions[i])
		if err != nil {
			return nil, nil, err
		}
		if warn != "" {
			warnings = append(warnings, warn)
		}

		if !checkRange(t.depRanges[i], len(deps)) {
			return nil, nil, c.badOffset("dependency range out of bounds")
		}
		if !checkRange(t.resRanges[i], len(peers)) {
			return nil, nil, c.badOffset("resolved-peer range out of bounds")
		}
		if !checkRange(t.binRanges[i], len(bins)) {
			return nil, nil, c.badOffset("bin range out of bounds")
		}
		if !checkRange(t.scriptRanges[i], len(scripts)) {
			return nil, nil, c.badOffset("script range out of bounds")
		}

		m := t.metas[i]
		arch, err := resolveString(strBuf, m.Arch)
		if err != nil {
			return nil, nil, err
		}
		os, err := resolveString(strBuf, m.OS)
		if err != nil {
			return nil, nil, err
		}
		man, err := resolveString(strBuf, m.Man)
		if err != nil {
			return nil, nil, err
		}

		version, err := resolveString(strBuf, t.versions[i])
		if err != nil {
			return nil, nil, err
		}

		pkgs[i] = &bunaudit.Package{
			ID:          i,
			Name:        name,
			Version:     version,
			NameHash:    t.nameHashes[i],
			Resolution:  resolution,
			Integrity:   t.integrities[i],
			Behavior:    bunaudit.Behavior(m.Behavior),
			Dependencies: t.depRanges[i].toModel(),
			Resolutions: t.resRanges[i].toModel(),
			Bin:         bins[t.binRanges[i].Start : t.binRanges[i].Start+t.binRanges[i].Count],
			Scripts:     scripts[t.scriptRanges[i].Start : t.scriptRanges[i].Start+t.scriptRanges[i].Count],
			Arch:        arch,
			OS:          os,
			Man:         man,
		}
	}
	return pkgs, warnings, nil
}
