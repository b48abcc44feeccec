// Package sbom defines the encoder contract for rendering a decoded
// lockfile as a software bill of materials document.
package sbom

import (
	"context"
	"io"

	"github.com/bunaudit/bunaudit"
)

// Encoder renders a Lockfile as an SBOM document in some target format.
type Encoder interface {
	Encode(ctx context.Context, lf *bunaudit.Lockfile) (io.Reader, error)
}
