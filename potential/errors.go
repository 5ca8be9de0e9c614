package potential

import (
	"errors"
	"fmt"
)

// ErrNilPotential is returned when a nil value is offered where a potential
// is required, for example as an operand of Combine.
var ErrNilPotential = errors.New("not a potential: nil value")

// ShapeError reports a dimensional mismatch detected before any evaluation
// takes place. Batch entry points fail with a ShapeError without writing any
// output.
type ShapeError struct {
	Context string
	Got     string
	Want    string
}

func (e ShapeError) Error() string {
	return fmt.Sprintf("shape mismatch in %s: got %s, want %s", e.Context, e.Got, e.Want)
}

// DuplicateKeyError reports a composite component key collision. The
// composite is left unchanged by the colliding Add.
type DuplicateKeyError struct {
	Key string
}

func (e DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate component key %q", e.Key)
}

// UnknownKindError reports a lookup of a potential kind name that was never
// registered.
type UnknownKindError struct {
	Name string
}

func (e UnknownKindError) Error() string {
	return fmt.Sprintf("unknown potential kind %q", e.Name)
}
