package findings

import (
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/bunaudit/bunaudit"
	"github.com/bunaudit/bunaudit/internal/mocks"
)

// rootPlusOne builds the smallest lockfile possible: a root package at id 0
// depending on one package at id 1.
func rootPlusOne(dep bunaudit.Package) *bunaudit.Lockfile {
	dep.ID = 1
	dep.Project()
	return &bunaudit.Lockfile{
		FormatVersion: bunaudit.FormatVersionMin,
		Packages: []*bunaudit.Package{
			{ID: 0, Name: "root", Resolution: bunaudit.Resolution{Kind: bunaudit.ResolutionRoot}, Dependencies: bunaudit.IDRange{Start: 0, Count: 1}},
			&dep,
		},
		Dependencies: []bunaudit.Dependency{
			{Name: dep.Name, Constraint: dep.Version, ResolvedID: 1, Resolved: true},
		},
	}
}

func npmPackage(name, version, host string) bunaudit.Package {
	return bunaudit.Package{
		Name:       name,
		Version:    version,
		Resolution: bunaudit.Resolution{Kind: bunaudit.ResolutionNPM, RegistryHost: host},
		Integrity:  mustIntegrity("sha512", 64),
	}
}

func mustIntegrity(algo string, n int) bunaudit.Integrity {
	sum := make([]byte, n)
	in, err := bunaudit.NewIntegrity(bunaudit.Algorithm(algo), sum)
	if err != nil {
		panic(err)
	}
	return in
}

func TestEvaluateDeterministic(t *testing.T) {
	t.Parallel()
	lf := rootPlusOne(npmPackage("left-pad", "1.3.0", "evil.com"))
	r1 := Evaluate(lf, nil, bunaudit.Policy{})
	r2 := Evaluate(lf, nil, bunaudit.Policy{})
	if len(r1.Issues) != len(r2.Issues) {
		t.Fatalf("issue count differs across runs: %d vs %d", len(r1.Issues), len(r2.Issues))
	}
	for i := range r1.Issues {
		if r1.Issues[i] != r2.Issues[i] {
			t.Fatalf("issue %d differs across runs: %+v vs %+v", i, r1.Issues[i], r2.Issues[i])
		}
	}
}

func TestEvaluateUntrustedRegistry(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		host     string
		policy   bunaudit.Policy
		wantKind bunaudit.Kind
		wantSev  bunaudit.Severity
		wantNone bool
	}{
		{name: "builtin-suspicious", host: "evil.com", wantKind: bunaudit.KindUntrustedRegistry, wantSev: bunaudit.High},
		{name: "builtin-trusted", host: "registry.npmjs.org", wantNone: true},
		{name: "unknown-host-is-warn", host: "mirror.example.com", wantKind: bunaudit.KindUntrustedRegistry, wantSev: bunaudit.Warn},
		{
			name:     "allow-listed",
			host:     "mirror.example.com",
			policy:   bunaudit.Policy{AllowRegistry: []string{"mirror.example.com"}},
			wantNone: true,
		},
		{
			name:     "ignore-listed-even-if-suspicious",
			host:     "evil.com",
			policy:   bunaudit.Policy{IgnoreRegistry: []string{"evil.com"}},
			wantNone: true,
		},
		{
			// RegistryHost as produced by decode is scheme-prefixed
			// (spec.md §4.5); the allowlist is still matched on the bare
			// hostname it carries.
			name:     "builtin-trusted-with-scheme",
			host:     "https://registry.npmjs.org",
			wantNone: true,
		},
		{
			name:     "allow-listed-with-scheme",
			host:     "https://mirror.example.com",
			policy:   bunaudit.Policy{AllowRegistry: []string{"mirror.example.com"}},
			wantNone: true,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			lf := rootPlusOne(npmPackage("left-pad", "1.3.0", tc.host))
			r := Evaluate(lf, nil, tc.policy)
			var found *bunaudit.Issue
			for i := range r.Issues {
				if r.Issues[i].Kind == bunaudit.KindUntrustedRegistry {
					found = &r.Issues[i]
				}
			}
			if tc.wantNone {
				if found != nil {
					t.Fatalf("expected no untrusted_registry issue, got %+v", *found)
				}
				return
			}
			if found == nil {
				t.Fatalf("expected an untrusted_registry issue, got none")
			}
			if found.Severity != tc.wantSev {
				t.Errorf("severity = %s, want %s", found.Severity, tc.wantSev)
			}
		})
	}
}

func TestEvaluateIgnorePackageSuppressesEveryRule(t *testing.T) {
	t.Parallel()
	lf := rootPlusOne(npmPackage("left-pad", "1.3.0", "evil.com"))
	r := Evaluate(lf, nil, bunaudit.Policy{IgnorePackage: []string{"left-pad"}})
	for _, iss := range r.Issues {
		if iss.Package == "left-pad" {
			t.Fatalf("ignored package still produced an issue: %+v", iss)
		}
	}
}

func TestEvaluatePhantomDependencyScopedToDirectRoot(t *testing.T) {
	t.Parallel()
	lf := rootPlusOne(npmPackage("left-pad", "1.3.0", "registry.npmjs.org"))
	// Add a transitive-only package, id 2, not reachable from root.Dependencies.
	transitive := npmPackage("nested-dep", "2.0.0", "registry.npmjs.org")
	transitive.ID = 2
	transitive.Project()
	lf.Packages = append(lf.Packages, &transitive)

	ctrl := gomock.NewController(t)
	m := mocks.NewMockManifest(ctrl)
	m.EXPECT().Direct(gomock.Any()).Return(false).AnyTimes()
	m.EXPECT().Dev(gomock.Any()).Return(false).AnyTimes()
	m.EXPECT().Optional(gomock.Any()).Return(false).AnyTimes()
	m.EXPECT().Peer(gomock.Any()).Return(false).AnyTimes()

	r := Evaluate(lf, m, bunaudit.Policy{})
	var phantoms []string
	for _, iss := range r.Issues {
		if iss.Kind == bunaudit.KindPhantomDependency {
			phantoms = append(phantoms, iss.Package)
		}
	}
	if len(phantoms) != 1 || phantoms[0] != "left-pad" {
		t.Fatalf("phantom_dependency issues = %v, want exactly [left-pad]", phantoms)
	}
}

func TestEvaluatePhantomDependencySkippedWithoutManifest(t *testing.T) {
	t.Parallel()
	lf := rootPlusOne(npmPackage("left-pad", "1.3.0", "registry.npmjs.org"))
	r := Evaluate(lf, nil, bunaudit.Policy{})
	for _, iss := range r.Issues {
		if iss.Kind == bunaudit.KindPhantomDependency {
			t.Fatalf("phantom_dependency fired with a nil manifest: %+v", iss)
		}
	}
}

func TestEvaluatePhantomDependencyDeclared(t *testing.T) {
	t.Parallel()
	lf := rootPlusOne(npmPackage("left-pad", "1.3.0", "registry.npmjs.org"))

	ctrl := gomock.NewController(t)
	m := mocks.NewMockManifest(ctrl)
	m.EXPECT().Direct("left-pad").Return(true)
	m.EXPECT().Dev(gomock.Any()).Return(false).AnyTimes()
	m.EXPECT().Optional(gomock.Any()).Return(false).AnyTimes()
	m.EXPECT().Peer(gomock.Any()).Return(false).AnyTimes()

	r := Evaluate(lf, m, bunaudit.Policy{})
	for _, iss := range r.Issues {
		if iss.Kind == bunaudit.KindPhantomDependency {
			t.Fatalf("declared dependency still flagged phantom: %+v", iss)
		}
	}
}

func TestEvaluateIntegrityAbsent(t *testing.T) {
	t.Parallel()
	pkg := bunaudit.Package{
		Name:       "left-pad",
		Version:    "1.3.0",
		Resolution: bunaudit.Resolution{Kind: bunaudit.ResolutionNPM, RegistryHost: "registry.npmjs.org"},
	}
	lf := rootPlusOne(pkg)
	r := Evaluate(lf, nil, bunaudit.Policy{})
	if !hasKind(r.Issues, bunaudit.KindIntegrityAbsent) {
		t.Fatalf("expected integrity_absent, got %v", r.Issues)
	}
}

func TestEvaluateSuspiciousVersionResolutions(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		res  bunaudit.Resolution
	}{
		{name: "git", res: bunaudit.Resolution{Kind: bunaudit.ResolutionGit, URL: "https://example.com/x.git"}},
		{name: "file", res: bunaudit.Resolution{Kind: bunaudit.ResolutionFile, Path: "../local"}},
		{name: "symlink", res: bunaudit.Resolution{Kind: bunaudit.ResolutionSymlink, Path: "../local"}},
		{name: "tarball", res: bunaudit.Resolution{Kind: bunaudit.ResolutionTarball, URL: "https://example.com/x.tgz"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			pkg := bunaudit.Package{Name: "left-pad", Version: "1.3.0", Resolution: tc.res}
			lf := rootPlusOne(pkg)
			r := Evaluate(lf, nil, bunaudit.Policy{})
			if !hasKind(r.Issues, bunaudit.KindSuspiciousVersion) {
				t.Fatalf("resolution %s did not trigger suspicious_version: %v", tc.name, r.Issues)
			}
		})
	}
}

func TestEvaluateLockfileVersionUnsupported(t *testing.T) {
	t.Parallel()
	lf := rootPlusOne(npmPackage("left-pad", "1.3.0", "registry.npmjs.org"))
	lf.FormatVersion = bunaudit.FormatVersionMax + 1
	r := Evaluate(lf, nil, bunaudit.Policy{})
	if !hasKind(r.Issues, bunaudit.KindLockfileVersionUnsupported) {
		t.Fatalf("expected lockfile_version_unsupported, got %v", r.Issues)
	}
	if r.Summary.ExitCode != bunaudit.ExitHigh {
		t.Errorf("ExitCode = %d, want %d", r.Summary.ExitCode, bunaudit.ExitHigh)
	}
}

// TestThresholdMonotonicity checks spec.md §8's invariant directly: the
// issue set never changes with SeverityThreshold, and the exit code only
// moves in the direction threshold moves.
func TestThresholdMonotonicity(t *testing.T) {
	t.Parallel()
	lf := rootPlusOne(npmPackage("left-pad", "1.3.0", "mirror.example.com")) // warn-level untrusted_registry

	base := Evaluate(lf, nil, bunaudit.Policy{SeverityThreshold: bunaudit.Info})
	high := Evaluate(lf, nil, bunaudit.Policy{SeverityThreshold: bunaudit.High})

	if len(base.Issues) != len(high.Issues) {
		t.Fatalf("issue count changed with threshold: %d vs %d", len(base.Issues), len(high.Issues))
	}
	if base.Summary.ExitCode < high.Summary.ExitCode {
		t.Fatalf("raising threshold increased exit code: info=%d high=%d", base.Summary.ExitCode, high.Summary.ExitCode)
	}
}

func TestEvaluateVerboseClearsPURLWhenNotVerbose(t *testing.T) {
	t.Parallel()
	lf := rootPlusOne(npmPackage("left-pad", "1.3.0", "evil.com"))

	quiet := Evaluate(lf, nil, bunaudit.Policy{Verbose: false})
	for _, iss := range quiet.Issues {
		if iss.PURL != "" {
			t.Fatalf("non-verbose report carried a PURL: %+v", iss)
		}
	}

	loud := Evaluate(lf, nil, bunaudit.Policy{Verbose: true})
	var sawPURL bool
	for _, iss := range loud.Issues {
		if iss.Kind == bunaudit.KindUntrustedRegistry && iss.PURL != "" {
			sawPURL = true
		}
	}
	if !sawPURL {
		t.Fatalf("verbose report missing expected PURL on untrusted_registry issue")
	}
	if loud.Trailers == nil {
		t.Fatalf("verbose report missing trailer view")
	}
}

func TestEvaluateOverrideAndPatchedTrailers(t *testing.T) {
	t.Parallel()
	lf := rootPlusOne(npmPackage("left-pad", "1.3.0", "registry.npmjs.org"))
	lf.Trailers.Overrides = []bunaudit.Override{
		{NameHash: 1, Dep: bunaudit.Dependency{Name: "left-pad", Constraint: "2.0.0"}},
	}
	lf.Trailers.Patched = []bunaudit.Patch{
		{NameVersionHash: 0xdeadbeef, Path: "patches/left-pad@1.3.0.patch"},
	}
	r := Evaluate(lf, nil, bunaudit.Policy{})
	if !hasKind(r.Issues, bunaudit.KindOverrideApplied) {
		t.Errorf("expected override_applied, got %v", r.Issues)
	}
	if !hasKind(r.Issues, bunaudit.KindPatchedDependency) {
		t.Errorf("expected patched_dependency, got %v", r.Issues)
	}
}

func hasKind(issues []bunaudit.Issue, k bunaudit.Kind) bool {
	for _, iss := range issues {
		if iss.Kind == k {
			return true
		}
	}
	return false
}
