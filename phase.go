package cubesim

// Phase is a stage of the layer-by-layer method. Phases are ordered, so
// they compare with < and >.
//
// The first layer is the U layer. Stickers are compared with the center of
// their face rather than with fixed colors, so a cube turned as a whole
// reads the same.
type Phase int

const (
	PhaseScrambled Phase = iota

	// The four U edges are placed: U color on top, side color matching the
	// side center.
	PhaseCross

	// The whole U layer is placed.
	PhaseFirstLayer

	// The four middle edges are placed as well.
	PhaseSecondLayer

	// The four D edges show the D color, in any position.
	PhaseLastCross

	// Each D corner sits in its slot, possibly twisted.
	PhaseLastCornersPositioned

	// The D corners are oriented; only the D edges may be permuted.
	PhaseLastCornersOriented

	PhaseSolved
)

// String returns a short identifier for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseScrambled:
		return "scrambled"
	case PhaseCross:
		return "cross"
	case PhaseFirstLayer:
		return "first_layer"
	case PhaseSecondLayer:
		return "second_layer"
	case PhaseLastCross:
		return "last_cross"
	case PhaseLastCornersPositioned:
		return "last_corners_positioned"
	case PhaseLastCornersOriented:
		return "last_corners_oriented"
	case PhaseSolved:
		return "solved"
	default:
		return "unknown"
	}
}

// ParsePhase returns the phase whose String is s.
func ParsePhase(s string) (Phase, bool) {
	for p := PhaseScrambled; p <= PhaseSolved; p++ {
		if p.String() == s {
			return p, true
		}
	}
	return PhaseScrambled, false
}

// DisplayName returns a human-readable name for the phase.
func (p Phase) DisplayName() string {
	switch p {
	case PhaseScrambled:
		return "Scrambled"
	case PhaseCross:
		return "Cross"
	case PhaseFirstLayer:
		return "First Layer"
	case PhaseSecondLayer:
		return "Second Layer"
	case PhaseLastCross:
		return "Last Layer Cross"
	case PhaseLastCornersPositioned:
		return "Last Corners Positioned"
	case PhaseLastCornersOriented:
		return "Last Corners Oriented"
	case PhaseSolved:
		return "Solved"
	default:
		return "Unknown"
	}
}

// Progress records which phases are complete.
type Progress struct {
	Cross                 bool
	FirstLayer            bool
	SecondLayer           bool
	LastCross             bool
	LastCornersPositioned bool
	LastCornersOriented   bool
	Solved                bool
}

// Phase returns the highest phase whose conditions hold.
func (p Progress) Phase() Phase {
	switch {
	case p.Solved:
		return PhaseSolved
	case p.LastCornersOriented:
		return PhaseLastCornersOriented
	case p.LastCornersPositioned:
		return PhaseLastCornersPositioned
	case p.LastCross:
		return PhaseLastCross
	case p.SecondLayer:
		return PhaseSecondLayer
	case p.FirstLayer:
		return PhaseFirstLayer
	case p.Cross:
		return PhaseCross
	default:
		return PhaseScrambled
	}
}

// ringSides are the side faces in F R B L order.
var ringSides = [4]Side{SidePosZ, SidePosX, SideNegZ, SideNegX}

// lastCorners lists the three [side, sticker] pairs of each D corner and the
// side faces whose centers it must match.
var lastCorners = [4]struct {
	stickers [3][2]int
	sides    [2]Side
}{
	{[3][2]int{{int(SidePosZ), 8}, {int(SidePosX), 6}, {int(SideNegY), 2}}, [2]Side{SidePosZ, SidePosX}},
	{[3][2]int{{int(SidePosX), 8}, {int(SideNegZ), 6}, {int(SideNegY), 8}}, [2]Side{SidePosX, SideNegZ}},
	{[3][2]int{{int(SideNegZ), 8}, {int(SideNegX), 6}, {int(SideNegY), 6}}, [2]Side{SideNegZ, SideNegX}},
	{[3][2]int{{int(SideNegX), 8}, {int(SidePosZ), 6}, {int(SideNegY), 0}}, [2]Side{SideNegX, SidePosZ}},
}

// Progress evaluates every phase. Each phase requires the ones before it.
func (c *Cube) Progress() Progress {
	f := c.Facelets()
	center := func(s Side) Color { return f[s][4] }
	match := func(s Side, idx ...int) bool {
		for _, i := range idx {
			if f[s][i] != center(s) {
				return false
			}
		}
		return true
	}

	var p Progress

	p.Cross = match(SidePosY, 1, 3, 5, 7)
	for _, s := range ringSides {
		p.Cross = p.Cross && match(s, 1)
	}

	p.FirstLayer = p.Cross && match(SidePosY, 0, 2, 6, 8)
	for _, s := range ringSides {
		p.FirstLayer = p.FirstLayer && match(s, 0, 2)
	}

	p.SecondLayer = p.FirstLayer
	for _, s := range ringSides {
		p.SecondLayer = p.SecondLayer && match(s, 3, 5)
	}

	p.LastCross = p.SecondLayer && match(SideNegY, 1, 3, 5, 7)

	p.LastCornersPositioned = p.LastCross
	for _, corner := range lastCorners {
		var got [3]Color
		for i, st := range corner.stickers {
			got[i] = f[st[0]][st[1]]
		}
		want := [3]Color{center(corner.sides[0]), center(corner.sides[1]), center(SideNegY)}
		p.LastCornersPositioned = p.LastCornersPositioned && sameColors(got, want)
	}

	p.LastCornersOriented = p.LastCornersPositioned && match(SideNegY, 0, 2, 6, 8)
	for _, s := range ringSides {
		p.LastCornersOriented = p.LastCornersOriented && match(s, 6, 8)
	}

	p.Solved = c.IsSolved()
	return p
}

// Phase returns the current layer-by-layer phase.
func (c *Cube) Phase() Phase {
	return c.Progress().Phase()
}

// sameColors reports whether a and b hold the same colors in any order.
func sameColors(a, b [3]Color) bool {
	count := make(map[Color]int, 3)
	for i := range a {
		count[a[i]]++
		count[b[i]]--
	}
	for _, v := range count {
		if v != 0 {
			return false
		}
	}
	return true
}
