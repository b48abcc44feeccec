package bunaudit

import "fmt"

// ResolutionKind discriminates the Resolution tagged union (spec.md §3).
type ResolutionKind uint8

const (
	ResolutionNPM ResolutionKind = iota
	ResolutionGit
	ResolutionGitHub
	ResolutionTarball
	ResolutionWorkspace
	ResolutionFile
	ResolutionSymlink
	ResolutionRoot
	// ResolutionUnknown preserves a reserved tag byte encountered in the
	// wild, rather than coercing it to a default — fidelity matters for
	// forensic output (spec.md §9).
	ResolutionUnknown
)

// String names the resolution kind, matching the lowercase tag names used in
// spec.md §3.
func (k ResolutionKind) String() string {
	switch k {
	case ResolutionNPM:
		return "npm"
	case ResolutionGit:
		return "git"
	case ResolutionGitHub:
		return "github"
	case ResolutionTarball:
		return "tarball"
	case ResolutionWorkspace:
		return "workspace"
	case ResolutionFile:
		return "file"
	case ResolutionSymlink:
		return "symlink"
	case ResolutionRoot:
		return "root"
	case ResolutionUnknown:
		return "unknown"
	default:
		return "unknown"
	}
}

// Resolution is how a package's contents are obtained: one variant of the
// closed sum described in spec.md §3, modeled as a single struct with
// kind-specific fields left zero rather than as an interface hierarchy —
// the payload shapes are small, fixed, and never grow new cases at runtime.
type Resolution struct {
	Kind ResolutionKind

	// npm: TarballURL is the tarball URL recorded with the registry
	// resolution, empty when none was recorded. RegistryHost is derived
	// from TarballURL's scheme://host, or npmjs.org when TarballURL is
	// empty or lacks a scheme or host.
	RegistryHost string
	TarballURL   string

	// git / github / tarball
	URL        string
	Committish string
	Owner      string
	Repo       string
	Commit     string

	// workspace / file / symlink
	Path string

	// unknown
	RawTag uint8
}

// String renders a short human-readable form.
func (r Resolution) String() string {
	switch r.Kind {
	case ResolutionNPM:
		if r.TarballURL != "" {
			return fmt.Sprintf("npm(%s, %s)", r.RegistryHost, r.TarballURL)
		}
		return fmt.Sprintf("npm(%s)", r.RegistryHost)
	case ResolutionGit:
		return fmt.Sprintf("git(%s#%s)", r.URL, r.Committish)
	case ResolutionGitHub:
		return fmt.Sprintf("github(%s/%s#%s)", r.Owner, r.Repo, r.Commit)
	case ResolutionTarball:
		return fmt.Sprintf("tarball(%s)", r.URL)
	case ResolutionWorkspace:
		return fmt.Sprintf("workspace(%s)", r.Path)
	case ResolutionFile:
		return fmt.Sprintf("file(%s)", r.Path)
	case ResolutionSymlink:
		return fmt.Sprintf("symlink(%s)", r.Path)
	case ResolutionRoot:
		return "root"
	case ResolutionUnknown:
		return fmt.Sprintf("unknown(0x%02x)", r.RawTag)
	default:
		return "invalid"
	}
}
