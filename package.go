package bunaudit

import "github.com/Masterminds/semver"

// Behavior is a bitfield describing how a package or dependency edge
// participates in the graph: production, development, optional, peer, and/or
// workspace-local.
type Behavior uint8

const (
	Prod Behavior = 1 << iota
	Dev
	Optional
	Peer
	Workspace
)

// Has reports whether every bit in want is set in b.
func (b Behavior) Has(want Behavior) bool { return b&want == want }

// Bin is a single "bin" entry: the name npm/bun exposes on $PATH mapped to
// the path within the package that implements it.
type Bin struct {
	Name string
	Path string
}

// Script is a single "scripts" entry: a named lifecycle or custom script and
// its shell command.
type Script struct {
	Name    string
	Command string
}

// IDRange is a half-open [Start, Start+Count) slice into a shared buffer,
// used for both a package's dependency range and its resolved-peer range.
type IDRange struct {
	Start uint32
	Count uint32
}

// Package is a single row of the decoded package table (spec.md §3).
//
// A Package's NameHash is the author-declared value from the lockfile; it is
// never recomputed from Name, so a forged table that carries a mismatched
// hash decodes without complaint — it is the finding engine's rules, not the
// decoder, that pass judgment on a lockfile's contents.
type Package struct {
	// ID is this package's index into the Lockfile's Packages slice; 0 is
	// always the root package (spec.md §3's "root" resolution variant).
	ID int

	Name     string
	Version  string
	NameHash uint64

	Resolution Resolution
	Integrity  Integrity
	Behavior   Behavior

	Dependencies IDRange
	Resolutions  IDRange

	Bin     []Bin
	Scripts []Script

	// Arch, OS, and Man are opaque constraint strings carried verbatim from
	// the meta column; they may be empty.
	Arch string
	OS   string
	Man  string

	// PURL and ParsedVersion are derived views, never part of the decoded
	// wire format (SPEC_FULL.md §3 "Derived, non-authoritative view
	// fields"). They are populated by Project after a successful decode and
	// are the zero value otherwise.
	purl          string
	parsedVersion *semver.Version
}

// PURL returns the package's derived "pkg:npm/..." Package URL, or the empty
// string when one could not be derived (non-npm/tarball resolutions, or a
// name/version that doesn't fit the PURL grammar).
func (p *Package) PURL() string { return p.purl }

// ParsedVersion returns the best-effort semver parse of Version, or nil when
// Version isn't valid semver (e.g. a git-committish-derived display
// version). A nil return is unremarkable and never itself a parser warning.
func (p *Package) ParsedVersion() *semver.Version { return p.parsedVersion }

// IsRoot reports whether this package is the project root (ID 0, Resolution
// kind ResolutionRoot).
func (p *Package) IsRoot() bool { return p.Resolution.Kind == ResolutionRoot }
