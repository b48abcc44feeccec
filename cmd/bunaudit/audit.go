package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bunaudit/bunaudit"
	"github.com/bunaudit/bunaudit/decode"
	"github.com/bunaudit/bunaudit/findings"
	"github.com/bunaudit/bunaudit/internal/logctx"
	"github.com/bunaudit/bunaudit/internal/manifestio"
	"github.com/bunaudit/bunaudit/metrics"
)

type auditConfig struct {
	json              bool
	packageJSON       string
	allowRegistry     []string
	ignoreRegistry    []string
	ignorePackage     []string
	severityThreshold string
	verbose           bool
	metricsOut        string
	allowUnsupported  bool
}

var auditCfg auditConfig

var auditCmd = &cobra.Command{
	Use:   "audit <path>...",
	Short: "decode and evaluate one or more bun.lockb lockfiles",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAudit,
}

func init() {
	fs := auditCmd.Flags()
	fs.BoolVar(&auditCfg.json, "json", false, "emit the report as JSON instead of a table")
	fs.StringVar(&auditCfg.packageJSON, "package-json", "", "path to a package.json to check declared dependencies against")
	fs.StringArrayVar(&auditCfg.allowRegistry, "allow-registry", nil, "registry host treated as trusted (repeatable)")
	fs.StringArrayVar(&auditCfg.ignoreRegistry, "ignore-registry", nil, "registry host never flagged (repeatable)")
	fs.StringArrayVar(&auditCfg.ignorePackage, "ignore-package", nil, "package name excluded from every rule (repeatable)")
	fs.StringVar(&auditCfg.severityThreshold, "severity-threshold", "warn", "minimum severity that affects the exit code: info|warn|high")
	fs.BoolVar(&auditCfg.verbose, "verbose", false, "include parser warnings, trailer detail, and derived PURLs in the report")
	fs.StringVar(&auditCfg.metricsOut, "metrics-out", "", "write Prometheus text-exposition metrics to this path")
	fs.BoolVar(&auditCfg.allowUnsupported, "allow-unsupported-version", false, "continue decoding past an out-of-range format_version instead of failing")
	rootCmd.AddCommand(auditCmd)
}

type auditResult struct {
	path   string
	report *bunaudit.Report
	err    error
}

func runAudit(cmd *cobra.Command, args []string) error {
	threshold, err := bunaudit.ParseSeverity(auditCfg.severityThreshold)
	if err != nil {
		return &runError{code: 99, err: err}
	}
	policy := bunaudit.Policy{
		AllowRegistry:     auditCfg.allowRegistry,
		IgnoreRegistry:    auditCfg.ignoreRegistry,
		IgnorePackage:     auditCfg.ignorePackage,
		SeverityThreshold: threshold,
		Verbose:           auditCfg.verbose,
	}

	var manifest bunaudit.Manifest
	if auditCfg.packageJSON != "" {
		m, err := manifestio.Load(auditCfg.packageJSON)
		if err != nil {
			return &runError{code: 99, err: err}
		}
		manifest = m
	}

	results := make([]auditResult, len(args))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range args {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return context.Cause(ctx)
			default:
			}
			results[i] = auditOne(logctx.With(ctx, "path", path), path, manifest, policy)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return &runError{code: 99, err: err}
	}

	maxExit := 0
	var metricsText string
	for _, r := range results {
		if r.err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", r.path, r.err)
			if maxExit < bunaudit.ExitHigh {
				maxExit = bunaudit.ExitHigh
			}
			continue
		}
		if r.report.Summary.ExitCode > maxExit {
			maxExit = r.report.Summary.ExitCode
		}
		if auditCfg.metricsOut != "" {
			dump, err := metrics.DumpText(r.path, r.report)
			if err != nil {
				slog.WarnContext(cmd.Context(), "metrics dump failed", "path", r.path, "error", err)
			} else {
				metricsText += dump
			}
		}
	}

	if err := emitAuditResults(results); err != nil {
		return &runError{code: 99, err: err}
	}
	if auditCfg.metricsOut != "" {
		if err := os.WriteFile(auditCfg.metricsOut, []byte(metricsText), 0o644); err != nil {
			return &runError{code: 99, err: fmt.Errorf("writing metrics: %w", err)}
		}
	}

	if maxExit != 0 {
		return &runError{code: maxExit, err: fmt.Errorf("bunaudit: findings at or above threshold %s", threshold)}
	}
	return nil
}

func auditOne(ctx context.Context, path string, manifest bunaudit.Manifest, policy bunaudit.Policy) auditResult {
	buf, err := os.ReadFile(path)
	if err != nil {
		return auditResult{path: path, err: fmt.Errorf("reading %s: %w", path, err)}
	}
	lf, err := decode.DecodeWithOptions(buf, decode.Options{AllowUnsupportedVersion: auditCfg.allowUnsupported})
	if err != nil {
		return auditResult{path: path, err: fmt.Errorf("decoding %s: %w", path, err)}
	}
	if len(lf.ParserWarnings) > 0 {
		slog.WarnContext(ctx, "lockfile decoded with parser warnings", "count", len(lf.ParserWarnings))
	}
	report := findings.Evaluate(lf, manifest, policy)
	report.ID = uuid.New().String()
	slog.InfoContext(ctx, "audit complete", "packages", len(lf.Packages), "issues", len(report.Issues), "exit_code", report.Summary.ExitCode)
	return auditResult{path: path, report: &report}
}

func emitAuditResults(results []auditResult) error {
	if auditCfg.json {
		type jsonResult struct {
			Path   string           `json:"path"`
			Report *bunaudit.Report `json:"report,omitempty"`
			Error  string           `json:"error,omitempty"`
		}
		out := make([]jsonResult, len(results))
		for i, r := range results {
			jr := jsonResult{Path: r.path, Report: r.report}
			if r.err != nil {
				jr.Error = r.err.Error()
			}
			out[i] = jr
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}
	for _, r := range results {
		if r.err != nil {
			continue
		}
		writeTable(os.Stdout, r.path, r.report)
	}
	return nil
}
