package decode

import "fmt"

// Recoverable parser warning strings (spec.md §7 "Recoverable parser
// warnings"). These never abort decoding; they're collected onto
// Lockfile.ParserWarnings and, under verbose policy, promoted to
// parser_warning issues by the finding engine.
const (
	warnMissingSentinel = "MissingSentinel"
)

func warnUnknownResolutionTag(tag uint8) string {
	return fmt.Sprintf("UnknownResolutionTag(%d)", tag)
}

func warnMalformedIntegrityTag(tag uint8) string {
	return fmt.Sprintf("MalformedIntegrityTag(%d)", tag)
}

func warnUnknownTrailerKind(kind uint8) string {
	return fmt.Sprintf("UnknownTrailerKind(%d)", kind)
}

func warnDuplicateTrailer(kind uint8) string {
	return fmt.Sprintf("DuplicateTrailer(%d)", kind)
}

func warnDependencyIDOutOfRange(id int) string {
	return fmt.Sprintf("DependencyIDOutOfRange(%d)", id)
}

const warnTrailerTruncated = "TrailerTruncated"
