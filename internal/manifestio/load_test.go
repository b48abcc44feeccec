package manifestio

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "package.json")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadWellFormedJSON(t *testing.T) {
	t.Parallel()
	path := writeManifest(t, `{
		"name": "my-app",
		"dependencies": {"left-pad": "^1.3.0", "express": "^4.18.2"},
		"devDependencies": {"typescript": "^5.0.0"},
		"optionalDependencies": {"fsevents": "^2.3.2"},
		"peerDependencies": {"react": "^18.0.0"}
	}`)

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !m.Direct("left-pad") || !m.Direct("express") {
		t.Errorf("Direct(left-pad/express) = false, want true")
	}
	if m.Direct("typescript") {
		t.Errorf("Direct(typescript) = true, want false (devDependency, not direct)")
	}
	if !m.Dev("typescript") {
		t.Errorf("Dev(typescript) = false, want true")
	}
	if !m.Optional("fsevents") {
		t.Errorf("Optional(fsevents) = false, want true")
	}
	if !m.Peer("react") {
		t.Errorf("Peer(react) = false, want true")
	}
	if m.Direct("left-pad-not-declared") {
		t.Errorf("Direct(left-pad-not-declared) = true, want false")
	}
}

func TestLoadToleratesCommentsAndTrailingCommas(t *testing.T) {
	t.Parallel()
	path := writeManifest(t, `{
		// hand-edited, forgive the comment
		"dependencies": {
			"left-pad": "^1.3.0",
		},
	}`)

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load with JSONC comments/trailing commas: %v", err)
	}
	if !m.Direct("left-pad") {
		t.Error("Direct(left-pad) = false, want true")
	}
}

func TestLoadMissingSectionsYieldEmptyManifest(t *testing.T) {
	t.Parallel()
	path := writeManifest(t, `{"name": "my-app"}`)

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Direct("anything") || m.Dev("anything") || m.Optional("anything") || m.Peer("anything") {
		t.Error("expected an empty manifest for a package.json with no dependency sections")
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.json"))
	if err == nil {
		t.Fatal("expected an error reading a nonexistent file, got nil")
	}
}

func TestLoadMalformedJSON(t *testing.T) {
	t.Parallel()
	path := writeManifest(t, `{"dependencies": {"left-pad": `)
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected an error decoding malformed JSON, got nil")
	}
}
