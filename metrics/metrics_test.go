package metrics

import (
	"strings"
	"testing"

	"github.com/bunaudit/bunaudit"
)

func sampleReport() *bunaudit.Report {
	return &bunaudit.Report{
		Summary: bunaudit.Summary{
			TotalPackages:  3,
			IssuesTotal:    2,
			HighCount:      1,
			WarnCount:      1,
			InfoCount:      0,
			ExitCode:       bunaudit.ExitHigh,
			ParserWarnings: []string{"MissingSentinel"},
		},
		Issues: []bunaudit.Issue{
			{ID: 1, Severity: bunaudit.High, Kind: bunaudit.KindIntegrityAbsent, Package: "left-pad", Version: "1.3.0"},
			{ID: 2, Severity: bunaudit.Warn, Kind: bunaudit.KindUntrustedRegistry, Package: "left-pad", Version: "1.3.0"},
		},
	}
}

func TestDumpTextContainsExpectedSeries(t *testing.T) {
	t.Parallel()
	out, err := DumpText("bun.lockb", sampleReport())
	if err != nil {
		t.Fatalf("DumpText: %v", err)
	}
	for _, want := range []string{
		`bunaudit_total_packages{lockfile="bun.lockb"} 3`,
		`bunaudit_issues_total{lockfile="bun.lockb"} 2`,
		`bunaudit_issues_by_severity{lockfile="bun.lockb",severity="high"} 1`,
		`bunaudit_issues_by_severity{lockfile="bun.lockb",severity="warn"} 1`,
		`bunaudit_issues_by_severity{lockfile="bun.lockb",severity="info"} 0`,
		`bunaudit_exit_code{lockfile="bun.lockb"} 2`,
		`bunaudit_parser_warnings_total{lockfile="bun.lockb"} 1`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("DumpText output missing %q\ngot:\n%s", want, out)
		}
	}
}

func TestDumpTextCarriesLockfileLabel(t *testing.T) {
	t.Parallel()
	report := sampleReport()
	out, err := DumpText("packages/api/bun.lockb", report)
	if err != nil {
		t.Fatalf("DumpText: %v", err)
	}
	if !strings.Contains(out, `lockfile="packages/api/bun.lockb"`) {
		t.Errorf("DumpText output does not carry the given lockfile label:\n%s", out)
	}
}
