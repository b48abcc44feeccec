package findings

import "github.com/bunaudit/bunaudit"

// Context carries the engine's three inputs plus small precomputed indices
// shared across rules, so no rule recomputes the same lockfile walk.
type Context struct {
	LF       *bunaudit.Lockfile
	Manifest bunaudit.Manifest
	Policy   bunaudit.Policy

	// directRoot is the set of package ids directly reachable from the
	// root package's dependency slice (spec.md §4.7 rule 3).
	directRoot map[int]bool
}

func directRootPackageIDs(lf *bunaudit.Lockfile) map[int]bool {
	ids := make(map[int]bool)
	if lf == nil || len(lf.Packages) == 0 {
		return ids
	}
	root := lf.Packages[0]
	end := root.Dependencies.Start + root.Dependencies.Count
	for i := root.Dependencies.Start; i < end && int(i) < len(lf.Dependencies); i++ {
		d := lf.Dependencies[i]
		if d.Resolved {
			ids[d.ResolvedID] = true
		}
	}
	return ids
}

// Evaluate runs every registered rule over lf in deterministic emission
// order, applies the ignore_package filter, assigns ids starting at 1, and
// assembles the final Report (spec.md §4.7, §4.8). It never returns an
// error: a decode failure is the caller's concern, not the engine's
// (spec.md §7's two-category taxonomy).
func Evaluate(lf *bunaudit.Lockfile, manifest bunaudit.Manifest, policy bunaudit.Policy) bunaudit.Report {
	ctx := &Context{
		LF:         lf,
		Manifest:   manifest,
		Policy:     policy,
		directRoot: directRootPackageIDs(lf),
	}

	var issues []bunaudit.Issue
	for _, r := range orderedRules() {
		for _, iss := range r.eval(ctx) {
			if iss.Package != "" && policy.ignoresPackage(iss.Package) {
				continue
			}
			issues = append(issues, iss)
		}
	}

	var high, warn, info int
	var thHigh, thWarn, thInfo int
	for i := range issues {
		issues[i].ID = i + 1
		if !policy.Verbose {
			issues[i].PURL = ""
		}
		switch issues[i].Severity {
		case bunaudit.High:
			high++
		case bunaudit.Warn:
			warn++
		case bunaudit.Info:
			info++
		}
		if issues[i].Severity >= policy.SeverityThreshold {
			switch issues[i].Severity {
			case bunaudit.High:
				thHigh++
			case bunaudit.Warn:
				thWarn++
			case bunaudit.Info:
				thInfo++
			}
		}
	}

	summary := bunaudit.Summary{
		TotalPackages:  len(lf.Packages),
		IssuesTotal:    len(issues),
		HighCount:      high,
		WarnCount:      warn,
		InfoCount:      info,
		ExitCode:       bunaudit.ExitCodeFor(thHigh, thWarn, thInfo),
		ParserWarnings: lf.ParserWarnings,
	}

	report := bunaudit.Report{Summary: summary, Issues: issues}
	if policy.Verbose {
		report.Trailers = &bunaudit.TrailerView{
			TrustedHashes:   lf.Trailers.TrustedHashes,
			HasEmptyTrusted: lf.Trailers.HasEmptyTrusted,
			Overrides:       lf.Trailers.Overrides,
			Patched:         lf.Trailers.Patched,
			DefaultCatalog:  lf.Trailers.DefaultCatalog,
			Catalogs:        lf.Trailers.NamedCatalogs,
			WorkspacesCount: lf.Trailers.WorkspacesCount,
		}
	}
	return report
}
