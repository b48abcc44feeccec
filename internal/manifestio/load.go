// Package manifestio loads a package.json into a bunaudit.Manifest. It is
// the CLI's only collaborator that touches a real file and a real JSON(C)
// parser — the core package never does either (spec.md §7).
package manifestio

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tailscale/hujson"

	"github.com/bunaudit/bunaudit"
)

// packageJSON is the subset of package.json fields this tool cares about.
type packageJSON struct {
	Dependencies         map[string]string `json:"dependencies"`
	DevDependencies      map[string]string `json:"devDependencies"`
	OptionalDependencies map[string]string `json:"optionalDependencies"`
	PeerDependencies     map[string]string `json:"peerDependencies"`
}

// Load reads and parses the package.json at path into a bunaudit.Manifest.
//
// hujson tolerates the comments and trailing commas real-world
// package.json files sometimes carry (most commonly hand-edited ones, or
// ones processed by tools that emit JSON5-ish output); encoding/json alone
// would reject them outright.
func Load(path string) (*bunaudit.Declared, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("manifestio: reading %s: %w", path, err)
	}
	std, err := hujson.Standardize(raw)
	if err != nil {
		return nil, fmt.Errorf("manifestio: parsing %s: %w", path, err)
	}
	var pj packageJSON
	if err := json.Unmarshal(std, &pj); err != nil {
		return nil, fmt.Errorf("manifestio: decoding %s: %w", path, err)
	}
	return bunaudit.NewDeclared(keys(pj.Dependencies), keys(pj.DevDependencies), keys(pj.OptionalDependencies), keys(pj.PeerDependencies)), nil
}

func keys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
