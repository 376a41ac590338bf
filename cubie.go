package cubesim

import "gonum.org/v1/gonum/num/quat"

// Color represents a sticker color.
type Color byte

const (
	Inner  Color = 0 // No sticker: the side faces into the cube
	White  Color = 1 // Up face when solved
	Yellow Color = 2 // Down face when solved
	Green  Color = 3 // Front face when solved
	Blue   Color = 4 // Back face when solved
	Red    Color = 5 // Right face when solved
	Orange Color = 6 // Left face when solved
)

func (c Color) String() string {
	switch c {
	case Inner:
		return "."
	case White:
		return "W"
	case Yellow:
		return "Y"
	case Green:
		return "G"
	case Blue:
		return "B"
	case Red:
		return "R"
	case Orange:
		return "O"
	default:
		return "?"
	}
}

// Side is one of the six axis directions of a cubie or of the whole cube.
type Side int

const (
	SidePosX Side = iota // +x, the R side
	SideNegX             // -x, the L side
	SidePosY             // +y, the U side
	SideNegY             // -y, the D side
	SidePosZ             // +z, the F side
	SideNegZ             // -z, the B side
)

// Sides lists all six sides in cubie color order.
var Sides = []Side{SidePosX, SideNegX, SidePosY, SideNegY, SidePosZ, SideNegZ}

func (s Side) String() string {
	return string(s.Face())
}

// Normal returns the unit vector pointing out of side s.
func (s Side) Normal() Vec3 {
	var v Vec3
	if s%2 == 0 {
		v[s/2] = 1
	} else {
		v[s/2] = -1
	}
	return v
}

// Face returns the outer face lying on side s.
func (s Side) Face() Face {
	return OuterFaces[s]
}

// SideOf returns the side an axis-aligned unit vector points to.
func SideOf(v Vec3) (Side, bool) {
	for _, s := range Sides {
		if s.Normal() == v {
			return s, true
		}
	}
	return 0, false
}

// solvedColor returns the color of a side when solved.
func solvedColor(s Side) Color {
	switch s {
	case SidePosX:
		return Red
	case SideNegX:
		return Orange
	case SidePosY:
		return White
	case SideNegY:
		return Yellow
	case SidePosZ:
		return Green
	case SideNegZ:
		return Blue
	default:
		return Inner
	}
}

// Cubie is one of the 27 unit sub-cubes.
//
// Colors are bound to the cubie's local sides and never change. A turn moves
// Position and rotates Orientation together, which carries the stickers
// with the piece.
type Cubie struct {
	ID          int      // Index in the canonical layout, stable across turns
	Home        Vec3     // Position in the canonical layout
	Position    Vec3     // Current grid position
	Orientation Mat3     // Local-to-world rotation
	Colors      [6]Color // Sticker per local side, indexed by Side
}

func newCubie(id int, pos Vec3) *Cubie {
	c := &Cubie{ID: id, Home: pos, Position: pos, Orientation: Identity}
	for _, s := range Sides {
		n := s.Normal()
		axis := s / 2
		if pos[axis] != 0 && pos[axis] == n[axis] {
			c.Colors[s] = solvedColor(s)
		}
	}
	return c
}

// ColorFacing returns the sticker currently pointing toward world side s,
// or Inner if no sticker faces that way.
func (c *Cubie) ColorFacing(s Side) Color {
	local := c.Orientation.Transpose().Apply(s.Normal())
	ls, ok := SideOf(local)
	if !ok {
		return Inner
	}
	return c.Colors[ls]
}

// Quaternion returns the committed orientation for renderers.
func (c *Cubie) Quaternion() quat.Number {
	return c.Orientation.Quaternion()
}

// Visible reports whether the cubie carries at least one sticker.
func (c *Cubie) Visible() bool {
	for _, col := range c.Colors {
		if col != Inner {
			return true
		}
	}
	return false
}
