package naming

import (
	"errors"
	"fmt"
)

// ErrCollision marks two different identities sharing one report name.
var ErrCollision = errors.New("report name collision")

// CollisionError reports which owners compete for a report name.
type CollisionError struct {
	Name     string
	Existing string
	Incoming string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("%s: %q is used by both %q and %q", ErrCollision, e.Name, e.Existing, e.Incoming)
}

func (e *CollisionError) Unwrap() error { return ErrCollision }

// Index tracks issued report names. It is not safe for concurrent use.
type Index struct {
	owners map[string]string
	order  []string
}

// NewIndex returns an empty index.
func NewIndex() *Index {
	return &Index{owners: make(map[string]string)}
}

// Claim records that owner uses name. Claiming the same name again with the
// same owner is a no-op; a different owner gets a *CollisionError.
func (x *Index) Claim(name, owner string) error {
	if existing, ok := x.owners[name]; ok {
		if existing == owner {
			return nil
		}
		return &CollisionError{Name: name, Existing: existing, Incoming: owner}
	}
	x.owners[name] = owner
	x.order = append(x.order, name)
	return nil
}

// Names returns claimed names in claim order.
func (x *Index) Names() []string {
	out := make([]string, len(x.order))
	copy(out, x.order)
	return out
}
