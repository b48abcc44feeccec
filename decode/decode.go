package decode

import (
	"errors"

	"github.com/bunaudit/bunaudit"
)

// Options tunes Decode's tolerance for conditions spec.md §4.1 calls fatal
// by default.
type Options struct {
	// AllowUnsupportedVersion lets decoding continue past a format_version
	// outside [bunaudit.FormatVersionMin, bunaudit.FormatVersionMax]
	// instead of aborting, so the caller can surface
	// lockfile_version_unsupported as a HIGH finding in a partial report
	// (spec.md §4.7 rule 1: "emitted when decode proceeded anyway").
	AllowUnsupportedVersion bool
}

// Decode parses a complete bun.lockb v3 buffer into a *bunaudit.Lockfile
// using the default (strict) Options.
func Decode(buf []byte) (*bunaudit.Lockfile, error) {
	return DecodeWithOptions(buf, Options{})
}

// DecodeWithOptions parses buf per opts.
//
// Decode never touches a file handle or network socket (spec.md §7); buf is
// the caller's responsibility to read. A non-nil error is always a fatal
// *bunaudit.Error — recoverable conditions are recorded on
// Lockfile.ParserWarnings instead of failing the decode (spec.md §7's
// two-category taxonomy).
func DecodeWithOptions(buf []byte, opts Options) (*bunaudit.Lockfile, error) {
	c := NewCursor(buf, "header")
	header, err := c.ReadHeader()
	if err != nil {
		var decErr *bunaudit.Error
		if !(opts.AllowUnsupportedVersion && errors.As(err, &decErr) && decErr.Kind == bunaudit.ErrUnsupportedVersion) {
			return nil, err
		}
	}

	c = c.WithOp("package table")
	table, err := c.readPackageTable()
	if err != nil {
		return nil, err
	}

	// The shared buffers are read in declared order: dependencies,
	// resolved-peers, bins, scripts, then string bytes last. Every other
	// buffer's ExternalStr fields reference the string buffer, so they're
	// read in raw (unresolved) form first and resolved once the string
	// buffer becomes available below.
	c = c.WithOp("dependency buffer")
	rawDeps, err := c.readRawDependencyBuffer()
	if err != nil {
		return nil, err
	}

	c = c.WithOp("resolved-peers buffer")
	peers, err := c.readResolvedPeersBuffer()
	if err != nil {
		return nil, err
	}

	c = c.WithOp("bin buffer")
	rawBins, err := c.readRawBinBuffer()
	if err != nil {
		return nil, err
	}

	c = c.WithOp("script buffer")
	rawScripts, err := c.readRawScriptBuffer()
	if err != nil {
		return nil, err
	}

	c = c.WithOp("string buffer")
	strBuf, err := c.readStringBuffer()
	if err != nil {
		return nil, err
	}

	packageCount := len(table.names)
	var depWarnings []string
	deps := make([]bunaudit.Dependency, len(rawDeps))
	for i, rd := range rawDeps {
		dep, warn, err := resolveDependency(strBuf, rd, packageCount)
		if err != nil {
			return nil, err
		}
		if warn != "" {
			depWarnings = append(depWarnings, warn)
		}
		deps[i] = dep
	}
	bins := make([]bunaudit.Bin, len(rawBins))
	for i, rb := range rawBins {
		name, err := resolveString(strBuf, rb.Name)
		if err != nil {
			return nil, err
		}
		path, err := resolveString(strBuf, rb.Path)
		if err != nil {
			return nil, err
		}
		bins[i] = bunaudit.Bin{Name: name, Path: path}
	}
	scripts := make([]bunaudit.Script, len(rawScripts))
	for i, rs := range rawScripts {
		name, err := resolveString(strBuf, rs.Name)
		if err != nil {
			return nil, err
		}
		cmd, err := resolveString(strBuf, rs.Value)
		if err != nil {
			return nil, err
		}
		scripts[i] = bunaudit.Script{Name: name, Command: cmd}
	}

	pkgs, pkgWarnings, err := buildPackages(c, table, strBuf, deps, peers, bins, scripts)
	if err != nil {
		return nil, err
	}
	for _, p := range pkgs {
		p.Project()
	}

	var warnings []string
	warnings = append(warnings, depWarnings...)
	warnings = append(warnings, pkgWarnings...)

	c = c.WithOp("sentinel")
	if err := c.expectSentinel(); err != nil {
		warnings = append(warnings, warnMissingSentinel)
	}

	c = c.WithOp("trailers")
	trailers, trailerWarnings, err := readTrailers(c, strBuf, packageCount)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, trailerWarnings...)

	lf := &bunaudit.Lockfile{
		FormatVersion:  header.FormatVersion,
		Packages:       pkgs,
		Dependencies:   deps,
		ResolvedPeers:  peers,
		Trailers:       trailers,
		ParserWarnings: dedupe(warnings),
	}
	return lf, nil
}

// expectSentinel reads the 8-byte zero sentinel (a u64) that separates the
// lockfile body from the trailer section. If the buffer runs out before
// the sentinel (or the value isn't zero), it's a recoverable warning, not
// a fatal error (spec.md §7 "MissingSentinel") — the trailer scan simply
// proceeds from wherever the cursor currently sits.
func (c *Cursor) expectSentinel() error {
	if c.Remaining() < 8 {
		return c.badOffset("insufficient bytes for sentinel")
	}
	v, err := c.U64()
	if err != nil {
		return err
	}
	if v != 0 {
		return c.badOffset("sentinel was not zero")
	}
	return nil
}

func dedupe(ss []string) []string {
	if len(ss) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(ss))
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
