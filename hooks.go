package bimdiff

import (
	"sync"

	"github.com/agentstation/bimdiff/pkg/model"
	"github.com/agentstation/bimdiff/pkg/reconciler"
	"github.com/agentstation/bimdiff/pkg/results"
)

// Hook function types for reconciliation events
type (
	// MatchedHook is called for each baseline object with a single best match,
	// unchanged or modified.
	MatchedHook func(match results.Match)

	// AmbiguousHook is called for each baseline object with several best matches
	AmbiguousHook func(group *results.Group)

	// DeletedHook is called for each baseline object without a match
	DeletedHook func(obj model.Object)

	// AddedHook is called for each revision object no baseline object matched
	AddedHook func(obj model.Object)
)

// hooks manages event callbacks for reconciliation results
type hooks struct {
	mu          sync.RWMutex
	onMatched   []MatchedHook
	onAmbiguous []AmbiguousHook
	onDeleted   []DeletedHook
	onAdded     []AddedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnMatched registers a callback for one-to-one matches
func (h *hooks) OnMatched(fn MatchedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onMatched = append(h.onMatched, fn)
}

// OnAmbiguous registers a callback for ambiguous groups
func (h *hooks) OnAmbiguous(fn AmbiguousHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onAmbiguous = append(h.onAmbiguous, fn)
}

// OnDeleted registers a callback for deleted objects
func (h *hooks) OnDeleted(fn DeletedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onDeleted = append(h.onDeleted, fn)
}

// OnAdded registers a callback for added objects
func (h *hooks) OnAdded(fn AddedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onAdded = append(h.onAdded, fn)
}

// trigger walks the views of a finished result in label order and calls
// the registered hooks.
func (h *hooks) trigger(res *reconciler.Result) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.onMatched) > 0 {
		for _, m := range res.MatchOneToOne() {
			for _, hook := range h.onMatched {
				hook(m)
			}
		}
	}
	if len(h.onAmbiguous) > 0 {
		for _, g := range res.Ambiguity() {
			for _, hook := range h.onAmbiguous {
				hook(g)
			}
		}
	}
	if len(h.onDeleted) > 0 {
		for _, obj := range res.Deleted() {
			for _, hook := range h.onDeleted {
				hook(obj)
			}
		}
	}
	if len(h.onAdded) > 0 {
		for _, obj := range res.Added() {
			for _, hook := range h.onAdded {
				hook(obj)
			}
		}
	}
}
