package cubesim

import (
	"fmt"
	"strings"
)

// Cube holds the 27 cubies of a 3x3x3 puzzle.
//
// Between commits every cubie sits on an integer grid point in {-1, 0, 1}^3
// and the 27 positions cover the grid exactly once.
type Cube struct {
	cubies     []*Cubie
	generation int
}

// NewCube creates a solved cube with the standard color scheme:
// White on top, Green in front, Red on the right.
func NewCube() *Cube {
	c := &Cube{}
	c.build()
	return c
}

func (c *Cube) build() {
	c.cubies = make([]*Cubie, 0, 27)
	id := 0
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			for z := -1; z <= 1; z++ {
				c.cubies = append(c.cubies, newCubie(id, Vec3{x, y, z}))
				id++
			}
		}
	}
}

// Reset replaces every cubie with the canonical layout. Cubie pointers
// obtained before the reset are detached and must not be reused.
func (c *Cube) Reset() {
	c.build()
	c.generation++
}

// Generation counts resets; it changes whenever cubie identities do.
func (c *Cube) Generation() int {
	return c.generation
}

// Cubies returns all 27 cubies. The slice is shared; do not modify it.
func (c *Cube) Cubies() []*Cubie {
	return c.cubies
}

// Cubie returns the cubie currently at pos, or nil.
func (c *Cube) Cubie(pos Vec3) *Cubie {
	for _, q := range c.cubies {
		if q.Position == pos {
			return q
		}
	}
	return nil
}

// CubiesOnFace returns the cubies in the layer named by face. Positions are
// rounded before comparison. An unknown face selects nothing.
func (c *Cube) CubiesOnFace(face Face) []*Cubie {
	spec, ok := layers[face]
	if !ok {
		return nil
	}

	cubies := make([]*Cubie, 0, 9)
	for _, q := range c.cubies {
		if Round(q.Position.Float())[spec.axis] == spec.layer {
			cubies = append(cubies, q)
		}
	}
	return cubies
}

// Rotate commits a quarter turn instantly, without animation.
func (c *Cube) Rotate(m Move) error {
	if !m.Face.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidFace, string(m.Face))
	}
	c.commit(newRotationFrame(m, c.CubiesOnFace(m.Face)))
	return nil
}

// commit bakes a frame's full turn into the model.
func (c *Cube) commit(f *rotationFrame) {
	f.bake()
}

// Apply applies moves in order. Moves with an unknown face are skipped.
func (c *Cube) Apply(moves ...Move) {
	for _, m := range moves {
		_ = c.Rotate(m)
	}
}

// ApplyNotation parses and applies a move sequence such as "R U R' U'".
func (c *Cube) ApplyNotation(s string) error {
	moves, err := ParseMoves(s)
	if err != nil {
		return err
	}
	c.Apply(moves...)
	return nil
}

// IsSolved returns true if each of the six outer faces shows one color.
// A face that does not select exactly nine cubies counts as unsolved.
func (c *Cube) IsSolved() bool {
	for _, s := range Sides {
		cubies := c.CubiesOnFace(s.Face())
		if len(cubies) != 9 {
			return false
		}

		want := cubies[0].ColorFacing(s)
		for _, q := range cubies[1:] {
			if q.ColorFacing(s) != want {
				return false
			}
		}
	}
	return true
}

// Validate checks that the cubie positions are a bijection onto the grid.
func (c *Cube) Validate() error {
	if len(c.cubies) != 27 {
		return fmt.Errorf("%w: %d cubies", ErrCorruptState, len(c.cubies))
	}

	seen := make(map[Vec3]bool, 27)
	for _, q := range c.cubies {
		p := q.Position
		for _, v := range p {
			if v < -1 || v > 1 {
				return fmt.Errorf("%w: cubie %d at %v", ErrCorruptState, q.ID, p)
			}
		}
		if seen[p] {
			return fmt.Errorf("%w: two cubies at %v", ErrCorruptState, p)
		}
		seen[p] = true
	}
	return nil
}

// Clone creates a deep copy of the cube. Cubie IDs are preserved.
func (c *Cube) Clone() *Cube {
	clone := &Cube{generation: c.generation, cubies: make([]*Cubie, len(c.cubies))}
	for i, q := range c.cubies {
		cp := *q
		clone.cubies[i] = &cp
	}
	return clone
}

// stickerPosition returns the grid position of the cubie carrying sticker
// index i (row-major, 0..8) of side s, viewing the side from outside with
// U above F, R, B and L, and F above D.
func stickerPosition(s Side, i int) Vec3 {
	row, col := i/3, i%3
	switch s {
	case SidePosX:
		return Vec3{1, 1 - row, 1 - col}
	case SideNegX:
		return Vec3{-1, 1 - row, col - 1}
	case SidePosY:
		return Vec3{col - 1, 1, row - 1}
	case SideNegY:
		return Vec3{col - 1, -1, 1 - row}
	case SidePosZ:
		return Vec3{col - 1, 1 - row, 1}
	default:
		return Vec3{1 - col, 1 - row, -1}
	}
}

// StickerAt maps an outer-face sticker to the cubie under it. It is the
// inverse of the net layout used by Facelets.
func (c *Cube) StickerAt(s Side, i int) *Cubie {
	return c.Cubie(stickerPosition(s, i))
}

// Facelets returns the sticker colors of each outer face, indexed by Side
// then row-major sticker:
//
//	0 1 2
//	3 4 5
//	6 7 8
func (c *Cube) Facelets() [6][9]Color {
	var f [6][9]Color
	for _, s := range Sides {
		for i := 0; i < 9; i++ {
			if q := c.StickerAt(s, i); q != nil {
				f[s][i] = q.ColorFacing(s)
			}
		}
	}
	return f
}

// String returns a text representation of the cube as an unfolded net.
func (c *Cube) String() string {
	f := c.Facelets()
	var b strings.Builder

	// U face (indented)
	for row := 0; row < 3; row++ {
		b.WriteString("      ")
		for col := 0; col < 3; col++ {
			b.WriteString(f[SidePosY][row*3+col].String() + " ")
		}
		b.WriteString("\n")
	}

	// L, F, R, B faces (side by side)
	for row := 0; row < 3; row++ {
		for _, s := range []Side{SideNegX, SidePosZ, SidePosX, SideNegZ} {
			for col := 0; col < 3; col++ {
				b.WriteString(f[s][row*3+col].String() + " ")
			}
		}
		b.WriteString("\n")
	}

	// D face (indented)
	for row := 0; row < 3; row++ {
		b.WriteString("      ")
		for col := 0; col < 3; col++ {
			b.WriteString(f[SideNegY][row*3+col].String() + " ")
		}
		b.WriteString("\n")
	}

	return b.String()
}
