package bunaudit

// Manifest is the external manifest collaborator's output: the four
// dependency-section name sets declared by a package.json (spec.md §6).
// The core never parses JSON itself — callers hand it an already-extracted
// Manifest.
//
// A nil Manifest means "no manifest was provided"; the phantom_dependency
// rule is skipped entirely in that case (spec.md §4.7 rule 3).
type Manifest interface {
	// Direct reports whether name is declared in the manifest's
	// "dependencies" section.
	Direct(name string) bool
	// Dev reports whether name is declared in "devDependencies".
	Dev(name string) bool
	// Optional reports whether name is declared in
	// "optionalDependencies".
	Optional(name string) bool
	// Peer reports whether name is declared in "peerDependencies".
	Peer(name string) bool
}

// Declared is the straightforward, in-memory Manifest implementation: four
// name sets built once and queried by membership.
type Declared struct {
	direct, dev, optional, peer map[string]struct{}
}

var _ Manifest = (*Declared)(nil)

// NewDeclared builds a Declared manifest from four name lists. Duplicate or
// overlapping names across sections are permitted — a package.json may
// legitimately list the same name in both "dependencies" and
// "optionalDependencies" during a migration, for instance.
func NewDeclared(direct, dev, optional, peer []string) *Declared {
	d := &Declared{
		direct:   toSet(direct),
		dev:      toSet(dev),
		optional: toSet(optional),
		peer:     toSet(peer),
	}
	return d
}

func toSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

func (d *Declared) Direct(name string) bool   { _, ok := d.direct[name]; return ok }
func (d *Declared) Dev(name string) bool      { _, ok := d.dev[name]; return ok }
func (d *Declared) Optional(name string) bool { _, ok := d.optional[name]; return ok }
func (d *Declared) Peer(name string) bool     { _, ok := d.peer[name]; return ok }

// Declares reports whether name appears in any of the manifest's four
// sections — the union used by the phantom_dependency rule.
func Declares(m Manifest, name string) bool {
	return m.Direct(name) || m.Dev(name) || m.Optional(name) || m.Peer(name)
}
