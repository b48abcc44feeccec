package bunaudit

import "fmt"

// Kind identifies which rule produced an Issue. The string values are the
// stable, wire-visible kind names from spec.md §6.
type Kind string

const (
	KindLockfileVersionUnsupported Kind = "lockfile_version_unsupported"
	KindParserWarning              Kind = "parser_warning"
	KindPhantomDependency          Kind = "phantom_dependency"
	KindUntrustedRegistry          Kind = "untrusted_registry"
	KindSuspiciousVersion          Kind = "suspicious_version"
	KindIntegrityAbsent            Kind = "integrity_absent"
	KindIntegrityMismatch          Kind = "integrity_mismatch"
	KindIntegrityMalformed         Kind = "integrity_malformed"
	KindOverrideApplied            Kind = "override_applied"
	KindPatchedDependency          Kind = "patched_dependency"
)

// Issue is one finding emitted by the engine.
type Issue struct {
	ID       int      `json:"id"`
	Severity Severity `json:"severity"`
	Kind     Kind     `json:"kind"`
	Package  string   `json:"package"`
	Version  string   `json:"version"`
	Detail   string   `json:"detail"`

	// PURL is the package's derived Package URL, carried only in verbose
	// reports (SPEC_FULL.md §6 "Report JSON contract addition"). The
	// engine clears it on non-verbose reports; rules may always populate
	// it since doing so is free.
	PURL string `json:"purl,omitempty"`
}

func (i Issue) String() string {
	return fmt.Sprintf("#%d %s %s %s@%s: %s", i.ID, i.Severity, i.Kind, i.Package, i.Version, i.Detail)
}

// Summary is the report's aggregate view (spec.md §6).
type Summary struct {
	TotalPackages  int      `json:"total_packages"`
	IssuesTotal    int      `json:"issues_total"`
	HighCount      int      `json:"high_count"`
	WarnCount      int      `json:"warn_count"`
	InfoCount      int      `json:"info_count"`
	ExitCode       int      `json:"exit_code"`
	ParserWarnings []string `json:"parser_warnings"`
}

// TrailerView is the verbose-only structured projection of Trailers into
// the report (spec.md §6).
type TrailerView struct {
	TrustedHashes   []uint64     `json:"trusted_hashes"`
	HasEmptyTrusted bool         `json:"has_empty_trusted"`
	Overrides       []Override   `json:"overrides"`
	Patched         []Patch      `json:"patched"`
	DefaultCatalog  []Dependency `json:"default_catalog"`
	Catalogs        []Catalog    `json:"catalogs"`
	WorkspacesCount uint32       `json:"workspaces_count"`
}

// Report is the finding engine's sole output: summary, ordered issues, and
// an optional verbose trailer view (spec.md §4.8).
type Report struct {
	Summary  Summary      `json:"summary"`
	Issues   []Issue      `json:"issues"`
	Trailers *TrailerView `json:"trailers,omitempty"`

	// ID stamps this report with a stable run identity for audit trails;
	// it is not part of the comparison the determinism property checks
	// (spec.md §8) and is assigned by the caller, not the engine.
	ID string `json:"id,omitempty"`
}

// ExitCode thresholds: 0 clean, 1 info or warn present (and no high), 2 high
// present — counting only findings at or above the policy threshold.
const (
	ExitClean = 0
	ExitWarn  = 1
	ExitHigh  = 2
)

// ExitCodeFor derives the CI exit code from per-severity counts that have
// already been filtered to the policy's severity threshold (spec.md §4.7
// "Exit code computation", §8 "Threshold monotonicity"): high findings at
// or above threshold yield 2; any info-or-warn finding at or above
// threshold yields 1; none yields 0.
func ExitCodeFor(high, warn, info int) int {
	switch {
	case high > 0:
		return ExitHigh
	case warn > 0 || info > 0:
		return ExitWarn
	default:
		return ExitClean
	}
}
