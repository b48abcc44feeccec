package bunaudit

// Override is one entry of the "overrides" trailer: a name hash and the
// dependency edge substituted in during resolution.
type Override struct {
	NameHash uint64
	Dep      Dependency
}

// Patch is one entry of the "patched" trailer: a package identity hash, the
// patch file applied to it, and a hash of the patch's own contents.
type Patch struct {
	NameVersionHash uint64
	Path            string
	PatchHash       uint64
}

// Catalog is a named (or, for the default catalog, unnamed) set of
// dependency edges referenced by workspaces.
type Catalog struct {
	Name string // empty for the default catalog
	Deps []Dependency
}

// Trailers holds every trailer-derived value decoded after the lockfile
// body's zero sentinel (spec.md §3, §4.6).
type Trailers struct {
	TrustedHashes    []uint64
	HasEmptyTrusted  bool
	Overrides        []Override
	Patched          []Patch
	DefaultCatalog   []Dependency
	NamedCatalogs    []Catalog
	WorkspacesCount  uint32
	ConfigVersion    int32
	ConfigVersionSet bool
}
