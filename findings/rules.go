package findings

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/bunaudit/bunaudit"
)

// Built-in untrusted-registry defaults (spec.md §4.7 rule 4).
var (
	builtinSuspiciousHosts = map[string]bool{
		"evil.com": true,
	}
	builtinTrustedHosts = map[string]bool{
		"registry.npmjs.org": true,
		"npmjs.org":          true,
	}
)

func init() {
	register(1, bunaudit.KindLockfileVersionUnsupported, ruleLockfileVersionUnsupported)
	register(2, bunaudit.KindParserWarning, ruleParserWarning)
	register(3, bunaudit.KindPhantomDependency, rulePhantomDependency)
	register(4, bunaudit.KindUntrustedRegistry, ruleUntrustedRegistry)
	register(5, bunaudit.KindSuspiciousVersion, ruleSuspiciousVersion)
	register(6, bunaudit.KindIntegrityAbsent, ruleIntegrityAbsent)
	register(7, bunaudit.KindIntegrityMalformed, ruleIntegrityMalformed)
	register(8, bunaudit.KindOverrideApplied, ruleOverrideApplied)
	register(9, bunaudit.KindPatchedDependency, rulePatchedDependency)
}

// Rule 1: lockfile_version_unsupported.
func ruleLockfileVersionUnsupported(ctx *Context) []bunaudit.Issue {
	if ctx.LF.FormatVersion >= bunaudit.FormatVersionMin && ctx.LF.FormatVersion <= bunaudit.FormatVersionMax {
		return nil
	}
	return []bunaudit.Issue{{
		Severity: bunaudit.High,
		Kind:     bunaudit.KindLockfileVersionUnsupported,
		Detail:   fmt.Sprintf("format_version %d is outside the supported range [%d, %d]", ctx.LF.FormatVersion, bunaudit.FormatVersionMin, bunaudit.FormatVersionMax),
	}}
}

// Rule 2: parser_warning. Only included when the policy asks for verbose
// reporting — otherwise these warnings live only in summary.parser_warnings.
func ruleParserWarning(ctx *Context) []bunaudit.Issue {
	if !ctx.Policy.Verbose {
		return nil
	}
	out := make([]bunaudit.Issue, 0, len(ctx.LF.ParserWarnings))
	for _, w := range ctx.LF.ParserWarnings {
		out = append(out, bunaudit.Issue{
			Severity: bunaudit.Info,
			Kind:     bunaudit.KindParserWarning,
			Detail:   w,
		})
	}
	return out
}

// Rule 3: phantom_dependency. Skipped entirely when no manifest was
// provided.
func rulePhantomDependency(ctx *Context) []bunaudit.Issue {
	if ctx.Manifest == nil {
		return nil
	}
	var out []bunaudit.Issue
	for _, p := range ctx.LF.Packages {
		if p == nil || p.IsRoot() || p.Resolution.Kind == bunaudit.ResolutionWorkspace {
			continue
		}
		if !ctx.directRoot[p.ID] {
			continue // transitive-only packages don't trigger this rule
		}
		if bunaudit.Declares(ctx.Manifest, p.Name) {
			continue
		}
		out = append(out, bunaudit.Issue{
			Severity: bunaudit.Warn,
			Kind:     bunaudit.KindPhantomDependency,
			Package:  p.Name,
			Version:  p.Version,
			Detail:   "not declared in any manifest dependency section",
			PURL:     p.PURL(),
		})
	}
	return out
}

// registryHostname strips a "scheme://" prefix from a RegistryHost value,
// leaving the bare hostname the allowlist and policy host sets are keyed on.
// RegistryHost itself carries the scheme (spec.md §4.5); hosts it is
// compared against here do not.
func registryHostname(host string) string {
	if !strings.Contains(host, "://") {
		return host
	}
	u, err := url.Parse(host)
	if err != nil || u.Host == "" {
		return host
	}
	return u.Host
}

// Rule 4: untrusted_registry.
func ruleUntrustedRegistry(ctx *Context) []bunaudit.Issue {
	var out []bunaudit.Issue
	for _, p := range ctx.LF.Packages {
		if p == nil || p.Resolution.Kind != bunaudit.ResolutionNPM {
			continue
		}
		host := p.Resolution.RegistryHost
		if host == "" {
			continue
		}
		name := registryHostname(host)
		if ctx.Policy.ignoresRegistry(name) {
			continue
		}
		switch {
		case builtinSuspiciousHosts[name]:
			out = append(out, bunaudit.Issue{
				Severity: bunaudit.High,
				Kind:     bunaudit.KindUntrustedRegistry,
				Package:  p.Name,
				Version:  p.Version,
				Detail:   host,
				PURL:     p.PURL(),
			})
		case builtinTrustedHosts[name] || ctx.Policy.allowsRegistry(name):
			// trusted, no finding
		default:
			out = append(out, bunaudit.Issue{
				Severity: bunaudit.Warn,
				Kind:     bunaudit.KindUntrustedRegistry,
				Package:  p.Name,
				Version:  p.Version,
				Detail:   host,
				PURL:     p.PURL(),
			})
		}
	}
	return out
}

// Rule 5: suspicious_version.
func ruleSuspiciousVersion(ctx *Context) []bunaudit.Issue {
	var out []bunaudit.Issue
	for _, p := range ctx.LF.Packages {
		if p == nil {
			continue
		}
		switch p.Resolution.Kind {
		case bunaudit.ResolutionGit, bunaudit.ResolutionFile, bunaudit.ResolutionSymlink, bunaudit.ResolutionTarball:
			out = append(out, bunaudit.Issue{
				Severity: bunaudit.Warn,
				Kind:     bunaudit.KindSuspiciousVersion,
				Package:  p.Name,
				Version:  p.Version,
				Detail:   fmt.Sprintf("resolution is %s", p.Resolution.Kind),
				PURL:     p.PURL(),
			})
		}
	}
	return out
}

// Rule 6: integrity_absent.
func ruleIntegrityAbsent(ctx *Context) []bunaudit.Issue {
	var out []bunaudit.Issue
	for _, p := range ctx.LF.Packages {
		if p == nil {
			continue
		}
		if p.Resolution.Kind != bunaudit.ResolutionNPM && p.Resolution.Kind != bunaudit.ResolutionTarball {
			continue
		}
		if p.Integrity.Kind != bunaudit.IntegrityAbsent {
			continue
		}
		out = append(out, bunaudit.Issue{
			Severity: bunaudit.Warn,
			Kind:     bunaudit.KindIntegrityAbsent,
			Package:  p.Name,
			Version:  p.Version,
			Detail:   "no integrity record",
			PURL:     p.PURL(),
		})
	}
	return out
}

// Rule 7: integrity_malformed.
func ruleIntegrityMalformed(ctx *Context) []bunaudit.Issue {
	var out []bunaudit.Issue
	for _, p := range ctx.LF.Packages {
		if p == nil || p.Integrity.Kind != bunaudit.IntegrityMalformed {
			continue
		}
		out = append(out, bunaudit.Issue{
			Severity: bunaudit.High,
			Kind:     bunaudit.KindIntegrityMalformed,
			Package:  p.Name,
			Version:  p.Version,
			Detail:   p.Integrity.String(),
			PURL:     p.PURL(),
		})
	}
	return out
}

// Rule 8: override_applied.
func ruleOverrideApplied(ctx *Context) []bunaudit.Issue {
	out := make([]bunaudit.Issue, 0, len(ctx.LF.Trailers.Overrides))
	for _, o := range ctx.LF.Trailers.Overrides {
		out = append(out, bunaudit.Issue{
			Severity: bunaudit.Warn,
			Kind:     bunaudit.KindOverrideApplied,
			Package:  o.Dep.Name,
			Version:  o.Dep.Constraint,
			Detail:   "override from overrides trailer",
		})
	}
	return out
}

// Rule 9: patched_dependency. The patched trailer carries only a
// name+version hash, not the strings themselves (spec.md §4.6), so Package
// renders the hash rather than a name this rule has no way to recover.
func rulePatchedDependency(ctx *Context) []bunaudit.Issue {
	out := make([]bunaudit.Issue, 0, len(ctx.LF.Trailers.Patched))
	for _, p := range ctx.LF.Trailers.Patched {
		out = append(out, bunaudit.Issue{
			Severity: bunaudit.Warn,
			Kind:     bunaudit.KindPatchedDependency,
			Package:  fmt.Sprintf("0x%016x", p.NameVersionHash),
			Detail:   fmt.Sprintf("patch applied from %s", p.Path),
		})
	}
	return out
}
