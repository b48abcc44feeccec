// Package findings implements the finding engine: a pure function from a
// decoded lockfile, an optional manifest, and a policy to a
// bunaudit.Report. It never reads a file, opens a socket, or fails with an
// error (spec.md §4.7, §7).
package findings

import (
	"sort"
	"sync"

	"github.com/bunaudit/bunaudit"
)

// ruleFunc evaluates one rule over a Context and appends its issues
// (without ids — those are assigned once, across every rule's output, by
// Evaluate).
type ruleFunc func(ctx *Context) []bunaudit.Issue

// rule pairs a ruleFunc with the fixed emission-order number spec.md §4.7
// assigns it.
type rule struct {
	number int
	kind   bunaudit.Kind
	eval   ruleFunc
}

var registry = struct {
	sync.Mutex
	rules map[int]rule
}{rules: make(map[int]rule)}

// register adds a rule at the given emission-order number.
//
// register panics if the number is already taken — grounded on
// matchers/registry.Register's duplicate-registration panic, which catches
// a copy-paste rule number collision at init time rather than silently
// shadowing a rule.
func register(number int, kind bunaudit.Kind, eval ruleFunc) {
	registry.Lock()
	defer registry.Unlock()
	if _, ok := registry.rules[number]; ok {
		panic("findings: duplicate rule number")
	}
	registry.rules[number] = rule{number: number, kind: kind, eval: eval}
}

// orderedRules returns every registered rule sorted by emission-order
// number, the order spec.md §4.7 calls "deterministic order".
func orderedRules() []rule {
	registry.Lock()
	defer registry.Unlock()
	out := make([]rule, 0, len(registry.rules))
	for _, r := range registry.rules {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].number < out[j].number })
	return out
}
