package decode

import (
	"net/url"
	"strings"

	"github.com/bunaudit/bunaudit"
)

// defaultNPMRegistryHost is used when an npm resolution carries no tarball
// URL to derive a host from (spec.md §4.5).
const defaultNPMRegistryHost = "npmjs.org"

// npmRegistryHost derives scheme://host from a tarball URL, falling back to
// defaultNPMRegistryHost when tarballURL is empty or fails to parse as a
// URL with both a scheme and a host.
func npmRegistryHost(tarballURL string) string {
	if tarballURL == "" {
		return defaultNPMRegistryHost
	}
	u, err := url.Parse(tarballURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return defaultNPMRegistryHost
	}
	return u.Scheme + "://" + u.Host
}

// Resolution tag values (spec.md §4.5). Fixed at 24 bytes per record: tag
// (1) + pad (3) + strA (8) + strB (8) + extra (4), so the columnar table
// can skip unknown-tagged records by stride alone.
const (
	resTagNPM uint8 = iota
	resTagGit
	resTagGitHub
	resTagTarball
	resTagWorkspace
	resTagFile
	resTagSymlink
	resTagRoot
)

const resolutionRecordSize = 24

// resolutionRecord is the raw, undecoded-to-strings form of a Resolution
// column entry.
type resolutionRecord struct {
	Tag   uint8
	StrA  ExternalStr
	StrB  ExternalStr
	Extra uint32
}

// readResolutionRecord reads one fixed-width resolution record.
func (c *Cursor) readResolutionRecord() (resolutionRecord, error) {
	tag, err := c.U8()
	if err != nil {
		return resolutionRecord{}, err
	}
	if err := c.Skip(3); err != nil {
		return resolutionRecord{}, err
	}
	strA, err := c.ReadExternalStr()
	if err != nil {
		return resolutionRecord{}, err
	}
	strB, err := c.ReadExternalStr()
	if err != nil {
		return resolutionRecord{}, err
	}
	extra, err := c.U32()
	if err != nil {
		return resolutionRecord{}, err
	}
	return resolutionRecord{Tag: tag, StrA: strA, StrB: strB, Extra: extra}, nil
}

// resolveResolution turns a raw record into a bunaudit.Resolution, resolving
// any external string references against strBuf. Unknown tags are preserved
// as ResolutionUnknown and reported via warn, never treated as fatal
// (spec.md §4.5 "unknown tags are preserved ... and recorded as a parser
// warning").
func resolveResolution(strBuf []byte, r resolutionRecord) (bunaudit.Resolution, string, error) {
	str := func(s ExternalStr) (string, error) { return resolveString(strBuf, s) }

	switch r.Tag {
	case resTagNPM:
		tarballURL, err := str(r.StrA)
		if err != nil {
			return bunaudit.Resolution{}, "", err
		}
		return bunaudit.Resolution{
			Kind:         bunaudit.ResolutionNPM,
			RegistryHost: npmRegistryHost(tarballURL),
			TarballURL:   tarballURL,
		}, "", nil
	case resTagGit:
		url, err := str(r.StrA)
		if err != nil {
			return bunaudit.Resolution{}, "", err
		}
		committish, err := str(r.StrB)
		if err != nil {
			return bunaudit.Resolution{}, "", err
		}
		return bunaudit.Resolution{Kind: bunaudit.ResolutionGit, URL: url, Committish: committish}, "", nil
	case resTagGitHub:
		ownerRepo, err := str(r.StrA)
		if err != nil {
			return bunaudit.Resolution{}, "", err
		}
		commit, err := str(r.StrB)
		if err != nil {
			return bunaudit.Resolution{}, "", err
		}
		owner, repo := ownerRepo, ""
		if i := strings.IndexByte(ownerRepo, '/'); i >= 0 {
			owner, repo = ownerRepo[:i], ownerRepo[i+1:]
		}
		return bunaudit.Resolution{Kind: bunaudit.ResolutionGitHub, Owner: owner, Repo: repo, Commit: commit}, "", nil
	case resTagTarball:
		url, err := str(r.StrA)
		if err != nil {
			return bunaudit.Resolution{}, "", err
		}
		return bunaudit.Resolution{Kind: bunaudit.ResolutionTarball, URL: url}, "", nil
	case resTagWorkspace:
		path, err := str(r.StrA)
		if err != nil {
			return bunaudit.Resolution{}, "", err
		}
		return bunaudit.Resolution{Kind: bunaudit.ResolutionWorkspace, Path: path}, "", nil
	case resTagFile:
		path, err := str(r.StrA)
		if err != nil {
			return bunaudit.Resolution{}, "", err
		}
		return bunaudit.Resolution{Kind: bunaudit.ResolutionFile, Path: path}, "", nil
	case resTagSymlink:
		path, err := str(r.StrA)
		if err != nil {
			return bunaudit.Resolution{}, "", err
		}
		return bunaudit.Resolution{Kind: bunaudit.ResolutionSymlink, Path: path}, "", nil
	case resTagRoot:
		return bunaudit.Resolution{Kind: bunaudit.ResolutionRoot}, "", nil
	default:
		return bunaudit.Resolution{Kind: bunaudit.ResolutionUnknown, RawTag: r.Tag}, warnUnknownResolutionTag(r.Tag), nil
	}
}
