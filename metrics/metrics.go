// Package metrics exposes a bunaudit.Report as prometheus gauges, dumped to
// local text exposition format for a CI log or artifact — never served over
// the network (spec.md §7 forbids a listening socket in the core or its
// ambient tooling).
package metrics

import (
	"bytes"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/bunaudit/bunaudit"
)

// Collector is a prometheus.Collector over a single bunaudit.Report.
// Grounded on pkg/poolstats.Collector: a staterFunc-style closure standing
// in for a live pool is replaced here by a *bunaudit.Report snapshot, since
// a report is already a complete, immutable value by the time it's
// collected.
type Collector struct {
	lockfile string
	report   *bunaudit.Report

	totalPackagesDesc *prometheus.Desc
	issuesTotalDesc   *prometheus.Desc
	issuesBySevDesc   *prometheus.Desc
	exitCodeDesc      *prometheus.Desc
	parserWarningDesc *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

var staticLabels = []string{"lockfile"}

// NewCollector returns a Collector over report, labeled with the lockfile
// path it came from.
func NewCollector(lockfile string, report *bunaudit.Report) *Collector {
	return &Collector{
		lockfile: lockfile,
		report:   report,
		totalPackagesDesc: prometheus.NewDesc(
			"bunaudit_total_packages",
			"Number of packages in the decoded lockfile.",
			staticLabels, nil),
		issuesTotalDesc: prometheus.NewDesc(
			"bunaudit_issues_total",
			"Total number of findings in the report.",
			staticLabels, nil),
		issuesBySevDesc: prometheus.NewDesc(
			"bunaudit_issues_by_severity",
			"Number of findings at a given severity.",
			append(append([]string{}, staticLabels...), "severity"), nil),
		exitCodeDesc: prometheus.NewDesc(
			"bunaudit_exit_code",
			"The CI exit code this report would produce.",
			staticLabels, nil),
		parserWarningDesc: prometheus.NewDesc(
			"bunaudit_parser_warnings_total",
			"Number of recoverable parser warnings recorded during decode.",
			staticLabels, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	prometheus.DescribeByCollect(c, ch)
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.report.Summary
	ch <- prometheus.MustNewConstMetric(c.totalPackagesDesc, prometheus.GaugeValue, float64(s.TotalPackages), c.lockfile)
	ch <- prometheus.MustNewConstMetric(c.issuesTotalDesc, prometheus.GaugeValue, float64(s.IssuesTotal), c.lockfile)
	ch <- prometheus.MustNewConstMetric(c.issuesBySevDesc, prometheus.GaugeValue, float64(s.HighCount), c.lockfile, "high")
	ch <- prometheus.MustNewConstMetric(c.issuesBySevDesc, prometheus.GaugeValue, float64(s.WarnCount), c.lockfile, "warn")
	ch <- prometheus.MustNewConstMetric(c.issuesBySevDesc, prometheus.GaugeValue, float64(s.InfoCount), c.lockfile, "info")
	ch <- prometheus.MustNewConstMetric(c.exitCodeDesc, prometheus.GaugeValue, float64(s.ExitCode), c.lockfile)
	ch <- prometheus.MustNewConstMetric(c.parserWarningDesc, prometheus.GaugeValue, float64(len(s.ParserWarnings)), c.lockfile)
}

// DumpText renders report's metrics in Prometheus text exposition format,
// for writing to a CI artifact. It performs no network I/O — there is no
// listener, no push gateway, no scrape endpoint (spec.md §7).
func DumpText(lockfile string, report *bunaudit.Report) (string, error) {
	reg := prometheus.NewPedanticRegistry()
	if err := reg.Register(NewCollector(lockfile, report)); err != nil {
		return "", fmt.Errorf("metrics: registering collector: %w", err)
	}
	var buf bytes.Buffer
	if err := testutil.GatherAndDump(&buf, reg); err != nil {
		return "", fmt.Errorf("metrics: gathering: %w", err)
	}
	return buf.String(), nil
}
