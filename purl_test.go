package bunaudit

import (
	"strings"
	"testing"
)

func TestProjectPURL(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		pkg  Package
		want string
	}{
		{
			name: "npm-unscoped",
			pkg:  Package{Name: "left-pad", Version: "1.3.0", Resolution: Resolution{Kind: ResolutionNPM, RegistryHost: "registry.npmjs.org"}},
			want: "pkg:npm/left-pad@1.3.0",
		},
		{
			name: "tarball-carries-identity",
			pkg:  Package{Name: "left-pad", Version: "1.3.0", Resolution: Resolution{Kind: ResolutionTarball, URL: "https://example.com/left-pad.tgz"}},
			want: "pkg:npm/left-pad@1.3.0",
		},
		{
			name: "git-has-no-npm-purl",
			pkg:  Package{Name: "left-pad", Version: "1.3.0", Resolution: Resolution{Kind: ResolutionGit, URL: "https://example.com/left-pad.git", Committish: "abc123"}},
			want: "",
		},
		{
			name: "github-has-no-npm-purl",
			pkg:  Package{Name: "left-pad", Version: "1.3.0", Resolution: Resolution{Kind: ResolutionGitHub, Owner: "foo", Repo: "bar", Commit: "deadbeef"}},
			want: "",
		},
		{
			name: "workspace-has-no-npm-purl",
			pkg:  Package{Name: "my-lib", Version: "0.0.0", Resolution: Resolution{Kind: ResolutionWorkspace, Path: "packages/my-lib"}},
			want: "",
		},
		{
			name: "file-has-no-npm-purl",
			pkg:  Package{Name: "my-lib", Version: "0.0.0", Resolution: Resolution{Kind: ResolutionFile, Path: "../my-lib"}},
			want: "",
		},
		{
			name: "symlink-has-no-npm-purl",
			pkg:  Package{Name: "my-lib", Version: "0.0.0", Resolution: Resolution{Kind: ResolutionSymlink, Path: "../my-lib"}},
			want: "",
		},
		{
			name: "root-has-no-npm-purl",
			pkg:  Package{Name: "my-app", Version: "1.0.0", Resolution: Resolution{Kind: ResolutionRoot}},
			want: "",
		},
		{
			name: "unknown-has-no-npm-purl",
			pkg:  Package{Name: "weird", Version: "1.0.0", Resolution: Resolution{Kind: ResolutionUnknown, RawTag: 0xfe}},
			want: "",
		},
		{
			name: "npm-missing-version-yields-empty",
			pkg:  Package{Name: "left-pad", Version: "", Resolution: Resolution{Kind: ResolutionNPM, RegistryHost: "registry.npmjs.org"}},
			want: "",
		},
		{
			name: "npm-missing-name-yields-empty",
			pkg:  Package{Name: "", Version: "1.0.0", Resolution: Resolution{Kind: ResolutionNPM, RegistryHost: "registry.npmjs.org"}},
			want: "",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := projectPURL(&tc.pkg)
			if got != tc.want {
				t.Errorf("projectPURL(%+v) = %q, want %q", tc.pkg, got, tc.want)
			}
		})
	}
}

func TestProjectPURLScopedNameSplitsNamespace(t *testing.T) {
	t.Parallel()
	pkg := Package{Name: "@types/node", Version: "20.1.0", Resolution: Resolution{Kind: ResolutionNPM, RegistryHost: "registry.npmjs.org"}}
	got := projectPURL(&pkg)
	if got == "" {
		t.Fatal("projectPURL returned empty for a scoped npm package")
	}
	if !strings.HasPrefix(got, "pkg:npm/") {
		t.Errorf("projectPURL(%q) = %q, want a pkg:npm/ prefix", pkg.Name, got)
	}
	if !strings.Contains(got, "types/node") || !strings.HasSuffix(got, "@20.1.0") {
		t.Errorf("projectPURL(%q) = %q, want it to carry the types/node name and 20.1.0 version", pkg.Name, got)
	}
}

func TestPackageProjectSetsPURLAndParsedVersion(t *testing.T) {
	t.Parallel()
	p := &Package{Name: "left-pad", Version: "1.3.0", Resolution: Resolution{Kind: ResolutionNPM, RegistryHost: "registry.npmjs.org"}}
	p.Project()
	if p.PURL() != "pkg:npm/left-pad@1.3.0" {
		t.Errorf("PURL() = %q, want pkg:npm/left-pad@1.3.0", p.PURL())
	}
	if p.ParsedVersion() == nil {
		t.Fatal("ParsedVersion() = nil, want a parsed semver.Version")
	}
	if p.ParsedVersion().String() != "1.3.0" {
		t.Errorf("ParsedVersion().String() = %q, want 1.3.0", p.ParsedVersion().String())
	}
}

func TestPackageProjectNonSemverVersionLeavesParsedVersionNil(t *testing.T) {
	t.Parallel()
	p := &Package{Name: "left-pad", Version: "not-a-semver-string", Resolution: Resolution{Kind: ResolutionGit}}
	p.Project()
	if p.ParsedVersion() != nil {
		t.Errorf("ParsedVersion() = %v, want nil for a non-semver display version", p.ParsedVersion())
	}
	if p.PURL() != "" {
		t.Errorf("PURL() = %q, want empty for a git resolution", p.PURL())
	}
}

func TestPackageIsRoot(t *testing.T) {
	t.Parallel()
	root := &Package{Resolution: Resolution{Kind: ResolutionRoot}}
	if !root.IsRoot() {
		t.Error("IsRoot() = false for a root resolution")
	}
	npm := &Package{Resolution: Resolution{Kind: ResolutionNPM}}
	if npm.IsRoot() {
		t.Error("IsRoot() = true for an npm resolution")
	}
}
