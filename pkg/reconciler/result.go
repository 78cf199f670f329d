package reconciler

import (
	"fmt"
	"strings"
	"time"

	"github.com/agentstation/bimdiff/pkg/model"
	"github.com/agentstation/bimdiff/pkg/results"
)

// Result represents the outcome of a reconciliation session.
type Result struct {
	SessionID string

	// Set holds the weighted groups and their views.
	Set *results.Set

	// Per-object comparator failures. They never abort a session.
	Errors []error

	Metadata ResultMetadata
}

// ResultMetadata contains metadata about the reconciliation process.
type ResultMetadata struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration

	// Comparators that ran, in the order given.
	Comparators []string
	Workers     int

	Stats ResultStatistics
}

// ResultStatistics contains statistics about the reconciliation.
type ResultStatistics struct {
	BaselineObjects int
	RevisionObjects int

	Unchanged int
	Modified  int
	Deleted   int
	Ambiguous int
	Added     int

	ResolvePasses     int
	ConflictsResolved int
	ComparatorErrors  int
	TotalTimeMs       int64
}

func newResult(sessionID string) *Result {
	return &Result{
		SessionID: sessionID,
		Set:       results.NewSet(),
		Errors:    []error{},
		Metadata: ResultMetadata{
			StartTime: time.Now(),
		},
	}
}

// IsSuccess returns true if no comparator failed on any object.
func (r *Result) IsSuccess() bool {
	return len(r.Errors) == 0
}

// HasChanges returns true if anything other than unchanged matches was found.
func (r *Result) HasChanges() bool {
	s := r.Metadata.Stats
	return s.Modified+s.Deleted+s.Ambiguous+s.Added > 0
}

// Deleted returns the baseline objects without a match.
func (r *Result) Deleted() []model.Object { return r.Set.Deleted() }

// Added returns the revision objects no baseline object matched.
func (r *Result) Added() []model.Object { return r.Set.Added() }

// MatchOneToOne returns the baseline objects with a single best match.
func (r *Result) MatchOneToOne() []results.Match { return r.Set.MatchOneToOne() }

// Ambiguity returns the groups with several best matches.
func (r *Result) Ambiguity() []*results.Group { return r.Set.Ambiguity() }

// Unchanged returns the one-to-one matches every comparator confirmed.
func (r *Result) Unchanged() []results.Match { return r.Set.Unchanged() }

// Modified returns the one-to-one matches some comparator rejected.
func (r *Result) Modified() []results.Match { return r.Set.Modified() }

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	s := r.Metadata.Stats
	var b strings.Builder
	fmt.Fprintf(&b, "Reconciled %d baseline and %d revision objects: ", s.BaselineObjects, s.RevisionObjects)
	fmt.Fprintf(&b, "%d unchanged, %d modified, %d deleted, %d ambiguous, %d added",
		s.Unchanged, s.Modified, s.Deleted, s.Ambiguous, s.Added)
	if s.ConflictsResolved > 0 {
		fmt.Fprintf(&b, "; %d conflicts resolved", s.ConflictsResolved)
	}
	if !r.IsSuccess() {
		fmt.Fprintf(&b, "; %d comparator errors", len(r.Errors))
	}
	return b.String()
}

// finalize fills the statistics and marks completion.
func (r *Result) finalize() {
	counts := r.Set.Counts()
	r.Metadata.Stats.Unchanged = counts[results.Unchanged]
	r.Metadata.Stats.Modified = counts[results.Modified]
	r.Metadata.Stats.Deleted = counts[results.Deleted]
	r.Metadata.Stats.Ambiguous = counts[results.Ambiguous]
	r.Metadata.Stats.Added = counts[results.Added]
	r.Metadata.Stats.ComparatorErrors = len(r.Errors)

	r.Metadata.EndTime = time.Now()
	r.Metadata.Duration = r.Metadata.EndTime.Sub(r.Metadata.StartTime)
	r.Metadata.Stats.TotalTimeMs = r.Metadata.Duration.Milliseconds()
}
