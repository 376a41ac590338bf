package cubesim

import (
	"fmt"
	"math"
	"strings"
)

// Axis is one of the three cube axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "?"
	}
}

// Valid reports whether a is one of x, y or z.
func (a Axis) Valid() bool {
	return a >= AxisX && a <= AxisZ
}

// Face identifies a turnable layer: one of the six outer faces or one of the
// three middle slices.
type Face string

const (
	FaceR Face = "R" // Right
	FaceL Face = "L" // Left
	FaceU Face = "U" // Up
	FaceD Face = "D" // Down
	FaceF Face = "F" // Front
	FaceB Face = "B" // Back
	FaceM Face = "M" // Middle slice, between L and R
	FaceE Face = "E" // Equator slice, between U and D
	FaceS Face = "S" // Standing slice, between F and B
)

// Faces lists every face and slice identifier.
var Faces = []Face{FaceR, FaceL, FaceU, FaceD, FaceF, FaceB, FaceM, FaceE, FaceS}

// OuterFaces lists the six outer faces.
var OuterFaces = []Face{FaceR, FaceL, FaceU, FaceD, FaceF, FaceB}

// layerSpec binds a face to its axis, the coordinate its cubies share along
// that axis, and the sign of a clockwise turn about the positive axis.
type layerSpec struct {
	axis  Axis
	layer int
	sign  int
}

var layers = map[Face]layerSpec{
	FaceR: {AxisX, 1, -1},
	FaceL: {AxisX, -1, 1},
	FaceM: {AxisX, 0, 1},
	FaceU: {AxisY, 1, -1},
	FaceD: {AxisY, -1, 1},
	FaceE: {AxisY, 0, 1},
	FaceF: {AxisZ, 1, -1},
	FaceB: {AxisZ, -1, 1},
	FaceS: {AxisZ, 0, -1},
}

// Valid reports whether f is one of the nine identifiers.
func (f Face) Valid() bool {
	_, ok := layers[f]
	return ok
}

// Axis returns the rotation axis of the face.
func (f Face) Axis() Axis {
	return layers[f].axis
}

// Layer returns the coordinate along Axis shared by the face's cubies.
func (f Face) Layer() int {
	return layers[f].layer
}

// IsSlice reports whether f is one of the middle slices M, E or S.
func (f Face) IsSlice() bool {
	return f.Valid() && layers[f].layer == 0
}

// Move is a quarter turn of one face or slice.
type Move struct {
	Face      Face // Which layer to turn
	Clockwise bool // Direction, as seen looking at the face (slices follow L, D and F)
}

// Sign returns the signed number of quarter turns about the positive axis:
// +1 is a counter-clockwise turn looking down the axis toward the origin.
func (m Move) Sign() int {
	s := layers[m.Face].sign
	if !m.Clockwise {
		s = -s
	}
	return s
}

// Angle returns the signed target angle of the move in radians.
func (m Move) Angle() float64 {
	return float64(m.Sign()) * math.Pi / 2
}

// Notation returns the standard cube notation string for this move.
// Examples: R, R', M, M'
func (m Move) Notation() string {
	if m.Clockwise {
		return string(m.Face)
	}
	return string(m.Face) + "'"
}

// Inverse returns the inverse of this move.
// R becomes R', R' becomes R.
func (m Move) Inverse() Move {
	m.Clockwise = !m.Clockwise
	return m
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// ParseFace parses a single face or slice letter. Lowercase is accepted.
func ParseFace(s string) (Face, error) {
	f := Face(strings.ToUpper(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidFace, s)
	}
	return f, nil
}

// ParseMove parses a standard notation string into a Move.
// Examples: R, R', M, S'
// Returns an error if the notation is invalid.
func ParseMove(s string) (Move, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return Move{}, ErrInvalidNotation
	}

	face, err := ParseFace(s[:1])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	switch s[1:] {
	case "":
		return Move{Face: face, Clockwise: true}, nil
	case "'", "`":
		return Move{Face: face, Clockwise: false}, nil
	default:
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}
}

// ParseMoves parses a space-separated sequence of moves.
// Example: "R U R' U'"
// A "2" suffix expands to two clockwise quarter turns, so "R2" yields R R.
func ParseMoves(s string) ([]Move, error) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))

	for _, part := range parts {
		if base, ok := strings.CutSuffix(part, "2"); ok || strings.HasSuffix(part, "2'") {
			if !ok {
				base = strings.TrimSuffix(part, "2'")
			}
			// Only a single layer letter may carry the 2.
			if len(base) != 1 {
				return nil, fmt.Errorf("%w: %q", ErrInvalidNotation, part)
			}
			m, err := ParseMove(base)
			if err != nil {
				return nil, err
			}
			moves = append(moves, m, m)
			continue
		}

		m, err := ParseMove(part)
		if err != nil {
			return nil, err
		}
		moves = append(moves, m)
	}

	return moves, nil
}

// FormatMoves formats a slice of moves as a space-separated notation string.
func FormatMoves(moves []Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}

	return strings.Join(parts, " ")
}

// InverseMoves returns the sequence that undoes moves.
func InverseMoves(moves []Move) []Move {
	inv := make([]Move, len(moves))
	for i, m := range moves {
		inv[len(moves)-1-i] = m.Inverse()
	}
	return inv
}
