package comparator

import (
	"fmt"

	"github.com/agentstation/bimdiff/pkg/errors"
	"github.com/agentstation/bimdiff/pkg/model"
)

// Base holds the state every comparator shares: identity, weight, session
// binding and the private set of claimed revision objects. Custom
// comparators embed it.
type Base struct {
	name        string
	description string
	category    Category
	weight      int

	session string
	claimed map[model.Object]struct{}
}

// NewBase creates a Base with the category's default weight.
func NewBase(name, description string, category Category) Base {
	return Base{
		name:        name,
		description: description,
		category:    category,
		weight:      category.DefaultWeight(),
		claimed:     make(map[model.Object]struct{}),
	}
}

// Name returns the comparator name.
func (b *Base) Name() string {
	return b.name
}

// Description returns a human-readable description.
func (b *Base) Description() string {
	return b.description
}

// Category returns the comparator category.
func (b *Base) Category() Category {
	return b.category
}

// Weight returns the ranking weight.
func (b *Base) Weight() int {
	return b.weight
}

// SetWeight sets the ranking weight. Zero disables the comparator's
// contribution to ranking.
func (b *Base) SetWeight(weight int) error {
	if weight < 0 {
		return &errors.ValidationError{Field: "weight", Value: weight, Message: "cannot be negative"}
	}
	b.weight = weight
	return nil
}

// Bind attaches the comparator to a session. Binding to the session it is
// already bound to is a no-op; binding to another one is a fatal state error.
func (b *Base) Bind(sessionID string) error {
	if b.session != "" && b.session != sessionID {
		return errors.NewStateError(b.name,
			fmt.Sprintf("comparator already used by session %s; call Reset before reusing it", b.session))
	}
	b.session = sessionID
	return nil
}

// Session returns the ID of the bound session, empty when unbound.
func (b *Base) Session() string {
	return b.session
}

// Reset clears the session binding and the claimed set.
func (b *Base) Reset() {
	b.session = ""
	clear(b.claimed)
}

// Claim records objects as proposed during this session.
func (b *Base) Claim(objs ...model.Object) {
	if b.claimed == nil {
		b.claimed = make(map[model.Object]struct{})
	}
	for _, obj := range objs {
		b.claimed[obj] = struct{}{}
	}
}

// IsClaimed reports whether obj has been proposed during this session.
func (b *Base) IsClaimed(obj model.Object) bool {
	_, ok := b.claimed[obj]
	return ok
}

// ClaimedCount returns the number of distinct claimed objects.
func (b *Base) ClaimedCount() int {
	return len(b.claimed)
}

// Differences is not supported.
func (b *Base) Differences(_, _ model.Object) ([]Difference, error) {
	return nil, errors.NewUnsupportedError("differences", b.name)
}
