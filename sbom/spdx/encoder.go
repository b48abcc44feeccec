package spdx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	spdxjson "github.com/spdx/tools-golang/json"
	"github.com/spdx/tools-golang/spdx/common"
	v2common "github.com/spdx/tools-golang/spdx/v2/common"
	"github.com/spdx/tools-golang/spdx/v2/v2_3"

	"github.com/bunaudit/bunaudit"
)

// Creator identifies a document creator per the SPDX v2 "CreationInfo"
// field: CreatorType should be one of "Person", "Organization", or "Tool".
type Creator struct {
	Creator     string
	CreatorType string
}

// Encoder renders a decoded Lockfile as an SPDX document.
type Encoder struct {
	Version           Version
	Format            Format
	Creators          []Creator
	DocumentName      string
	DocumentNamespace string
	DocumentComment   string
}

// Encode encodes lf to an io.Reader. It first builds an SPDX document of the
// latest version this package knows, then converts to the requested
// version; today that's a no-op since V2_3 is the only version supported.
func (e *Encoder) Encode(ctx context.Context, lf *bunaudit.Lockfile) (io.Reader, error) {
	doc, err := e.parseLockfile(ctx, lf)
	if err != nil {
		return nil, err
	}

	var tmpConverterDoc common.AnyDocument
	switch e.Version {
	case V2_3, "":
		tmpConverterDoc = doc
	default:
		return nil, fmt.Errorf("spdx: unknown SPDX version: %v", e.Version)
	}

	switch e.Format {
	case JSONFormat, "":
		buf := &bytes.Buffer{}
		if err := spdxjson.Write(tmpConverterDoc, buf); err != nil {
			return nil, fmt.Errorf("spdx: writing document: %w", err)
		}
		return buf, nil
	default:
		return nil, fmt.Errorf("spdx: unknown requested format: %v", e.Format)
	}
}

func (e *Encoder) parseLockfile(ctx context.Context, lf *bunaudit.Lockfile) (*v2_3.Document, error) {
	spdxCreators := make([]v2common.Creator, len(e.Creators))
	for i, c := range e.Creators {
		spdxCreators[i].Creator = c.Creator
		spdxCreators[i].CreatorType = c.CreatorType
	}

	out := &v2_3.Document{
		SPDXVersion:       v2_3.Version,
		DataLicense:       v2_3.DataLicense,
		SPDXIdentifier:    "DOCUMENT",
		DocumentName:      e.DocumentName,
		DocumentNamespace: e.DocumentNamespace,
		CreationInfo: &v2_3.CreationInfo{
			Creators: spdxCreators,
			Created:  time.Now().UTC().Format("2006-01-02T15:04:05Z"),
		},
		DocumentComment: e.DocumentComment,
	}

	pkgIds := make([]int, 0, len(lf.Packages))
	for _, p := range lf.Packages {
		pkgIds = append(pkgIds, p.ID)
	}
	sort.Ints(pkgIds)

	var rels []*v2_3.Relationship
	for _, id := range pkgIds {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := lf.Package(id)
		out.Packages = append(out.Packages, newSpdxPackage(p))
		rels = append(rels, dependsOnRelationships(lf, p)...)
	}
	sort.Slice(rels, func(i, j int) bool {
		if rels[i].RefA.ElementRefID != rels[j].RefA.ElementRefID {
			return rels[i].RefA.ElementRefID < rels[j].RefA.ElementRefID
		}
		return rels[i].RefB.ElementRefID < rels[j].RefB.ElementRefID
	})
	out.Relationships = rels

	return out, nil
}

func newSpdxPackage(p *bunaudit.Package) *v2_3.Package {
	var extRefs []*v2_3.PackageExternalReference
	if purl := p.PURL(); purl != "" {
		extRefs = append(extRefs, &v2_3.PackageExternalReference{
			Category: "PACKAGE-MANAGER",
			RefType:  "purl",
			Locator:  purl,
		})
	}
	if p.Integrity.Kind == bunaudit.IntegritySRI {
		extRefs = append(extRefs, &v2_3.PackageExternalReference{
			Category: "SECURITY",
			RefType:  "checksum",
			Locator:  p.Integrity.String(),
		})
	}

	purpose := "LIBRARY"
	if p.IsRoot() {
		purpose = "APPLICATION"
	}

	pkg := &v2_3.Package{
		PackageName:               p.Name,
		PackageSPDXIdentifier:     v2common.ElementID("Package-" + strconv.Itoa(p.ID)),
		PackageVersion:            p.Version,
		PackageDownloadLocation:   downloadLocation(p),
		FilesAnalyzed:             false,
		PackageExternalReferences: extRefs,
		PrimaryPackagePurpose:     purpose,
	}
	return pkg
}

func downloadLocation(p *bunaudit.Package) string {
	switch p.Resolution.Kind {
	case bunaudit.ResolutionGit, bunaudit.ResolutionGitHub, bunaudit.ResolutionTarball:
		if p.Resolution.URL != "" {
			return p.Resolution.URL
		}
	}
	return "NOASSERTION"
}

func dependsOnRelationships(lf *bunaudit.Lockfile, p *bunaudit.Package) []*v2_3.Relationship {
	var rels []*v2_3.Relationship
	start, count := int(p.Dependencies.Start), int(p.Dependencies.Count)
	for i := start; i < start+count && i < len(lf.Dependencies); i++ {
		d := lf.Dependencies[i]
		if !d.Resolved {
			continue
		}
		dep := lf.Package(d.ResolvedID)
		if dep == nil {
			continue
		}
		rels = append(rels, &v2_3.Relationship{
			RefA:         v2common.MakeDocElementID("", "Package-"+strconv.Itoa(p.ID)),
			RefB:         v2common.MakeDocElementID("", "Package-"+strconv.Itoa(dep.ID)),
			Relationship: "DEPENDS_ON",
		})
	}
	return rels
}
