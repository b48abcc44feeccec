package bunaudit

import (
	"strings"

	"github.com/Masterminds/semver"
)

// Project computes Package's derived view fields (PURL, ParsedVersion) from
// its decoded data. It is called once by decode.Decode after the package
// table finishes, and is otherwise side-effect free — it never fails the
// decode: a package whose version doesn't parse as semver, or whose
// resolution can't be expressed as a PURL, simply gets zero values back.
func (p *Package) Project() {
	if v, err := semver.NewVersion(p.Version); err == nil {
		p.parsedVersion = v
	}
	p.purl = projectPURL(p)
}

// isPrerelease reports whether p's parsed version carries a prerelease
// identifier, per the suspicious_version heuristic in spec.md §4.7 rule 5.
func (p *Package) isPrerelease() bool {
	if p.parsedVersion == nil {
		// Fall back to a syntactic check: any "-" after the first
		// character, so that non-semver display versions (e.g.
		// git-committish-derived strings) aren't silently excluded from
		// the heuristic.
		if i := strings.IndexByte(p.Version, '-'); i > 0 {
			return true
		}
		return false
	}
	return p.parsedVersion.Prerelease() != ""
}
