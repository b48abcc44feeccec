package bunaudit

// Dependency is a single edge in the shared dependency buffer (spec.md §3):
// a named, versioned requirement with a behavior bitfield and an optional
// resolved package id.
type Dependency struct {
	Name       string
	Constraint string
	Behavior   Behavior

	// ResolvedID points into the Lockfile's Packages slice. Resolved is
	// false when the dependency carries no resolved package id (e.g. an
	// override or catalog entry, which is a template, not yet bound to a
	// concrete package row).
	ResolvedID int
	Resolved   bool
}
