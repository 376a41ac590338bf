package cubesim

import "errors"

// Sentinel errors for the cubesim package.
var (
	// Input errors
	ErrInvalidFace     = errors.New("cubesim: invalid face identifier")
	ErrInvalidNotation = errors.New("cubesim: invalid move notation")

	// State errors
	ErrCorruptState = errors.New("cubesim: cubie positions are not a bijection onto the grid")
)
