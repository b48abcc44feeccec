package bunaudit

import (
	"strings"

	"github.com/package-url/packageurl-go"
)

// purlTypeNPM is the PURL "type" component for npm packages.
// See https://github.com/package-url/purl-spec.
const purlTypeNPM = "npm"

// projectPURL derives a "pkg:npm/..." Package URL for p, grounded on
// nodejs/purl.go's GeneratePURL: only npm and tarball resolutions carry
// enough identity to be expressed as an npm PURL; everything else (git,
// github, workspace, file, symlink, root, unknown) yields the empty string.
//
// This is a report-fidelity projection only — it is never consulted during
// decode or by any finding rule, and never round-trips back into a
// Lockfile.
func projectPURL(p *Package) string {
	switch p.Resolution.Kind {
	case ResolutionNPM, ResolutionTarball:
	default:
		return ""
	}
	if p.Name == "" || p.Version == "" {
		return ""
	}
	name := p.Name
	namespace := ""
	if strings.HasPrefix(name, "@") {
		if i := strings.IndexByte(name, '/'); i >= 0 {
			namespace = name[:i]
			name = name[i+1:]
		}
	}
	u := packageurl.PackageURL{
		Type:      purlTypeNPM,
		Namespace: namespace,
		Name:      name,
		Version:   p.Version,
	}
	return u.ToString()
}
