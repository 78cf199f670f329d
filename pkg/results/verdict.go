package results

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Verdict is the outcome for one group.
type Verdict int

// Verdicts.
const (
	// Unchanged is a single best match carrying every applicable comparator's weight.
	Unchanged Verdict = iota
	// Modified is a single best match that some applicable comparator rejected.
	Modified
	// Deleted is a baseline object without any weighted candidate.
	Deleted
	// Ambiguous is a baseline object with several equally weighted best matches.
	Ambiguous
	// Added marks the residual group.
	Added
)

// Verdicts lists every verdict in report order.
var Verdicts = []Verdict{Unchanged, Modified, Deleted, Ambiguous, Added}

// String returns the verdict key.
func (v Verdict) String() string {
	switch v {
	case Unchanged:
		return "unchanged"
	case Modified:
		return "modified"
	case Deleted:
		return "deleted"
	case Ambiguous:
		return "ambiguous"
	case Added:
		return "added"
	default:
		return "unknown"
	}
}

// DisplayName returns the title-cased verdict.
func (v Verdict) DisplayName() string {
	return cases.Title(language.English).String(strings.ReplaceAll(v.String(), "-", " "))
}

// IsMatch reports whether the verdict pairs the baseline with exactly one revision object.
func (v Verdict) IsMatch() bool {
	return v == Unchanged || v == Modified
}
