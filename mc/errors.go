package mc

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is classification of the three error kinds.
var (
	ErrInvalidInput           = errors.New("invalid input")
	ErrPhysicsInvariantBroken = errors.New("physics invariant broken")
	ErrGridConsistency        = errors.New("grid consistency error")
)

// InvalidInputError reports a malformed Simulate call: shape mismatches,
// non-positive cell_dim, an empty material table, E_min >= E0, or an entry
// coordinate outside the volume.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s", e.Reason)
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

// PhysicsInvariantBrokenError reports a NaN escaping angle sampling or
// direction update, or energy going negative. The offending electron index
// and its last valid state are attached; the trajectory is not recorded.
type PhysicsInvariantBrokenError struct {
	ElectronIndex int
	LastState     ElectronState
	Reason        string
}

func (e *PhysicsInvariantBrokenError) Error() string {
	return fmt.Sprintf("physics invariant broken for electron %d: %s", e.ElectronIndex, e.Reason)
}

func (e *PhysicsInvariantBrokenError) Unwrap() error { return ErrPhysicsInvariantBroken }

// GridConsistencyError reports that the solid-crossing traversal hit a voxel
// whose grid label has no matching Element.Mark in the material table.
type GridConsistencyError struct {
	ElectronIndex int
	LastState     ElectronState
	Label         float64
}

func (e *GridConsistencyError) Error() string {
	return fmt.Sprintf("grid consistency error for electron %d: no material with mark %v", e.ElectronIndex, e.Label)
}

func (e *GridConsistencyError) Unwrap() error { return ErrGridConsistency }
