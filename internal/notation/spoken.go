// Package notation turns moves into spoken phrases for someone holding the
// cube White on top, Green in front.
package notation

import (
	"fmt"
	"strings"

	"github.com/SeamusWaldron/cubesim"
)

// phrases maps each layer to its clockwise and counter-clockwise phrase.
var phrases = map[cubesim.Face][2]string{
	cubesim.FaceR: {"R up", "R down"},
	cubesim.FaceL: {"L down", "L up"},
	cubesim.FaceU: {"T rotate right", "T rotate left"},
	cubesim.FaceD: {"B rotate right", "B rotate left"},
	cubesim.FaceF: {"F rotate clockwise", "F rotate anti-clockwise"},
	cubesim.FaceB: {"Back rotate clockwise", "Back rotate anti-clockwise"},
	cubesim.FaceM: {"Middle down", "Middle up"},
	cubesim.FaceE: {"Equator rotate right", "Equator rotate left"},
	cubesim.FaceS: {"Standing rotate clockwise", "Standing rotate anti-clockwise"},
}

// Spoken returns the phrase for m, or its standard notation for an unknown
// layer.
func Spoken(m cubesim.Move) string {
	p, ok := phrases[m.Face]
	if !ok {
		return m.Notation()
	}
	if m.Clockwise {
		return p[0]
	}
	return p[1]
}

// SpokenSequence phrases moves one by one. A move repeated back to back is
// folded into a single "x N" phrase.
func SpokenSequence(moves []cubesim.Move) []string {
	var out []string
	for i := 0; i < len(moves); {
		j := i + 1
		for j < len(moves) && moves[j] == moves[i] {
			j++
		}
		s := Spoken(moves[i])
		if n := j - i; n > 1 {
			s = fmt.Sprintf("%s x %d", s, n)
		}
		out = append(out, s)
		i = j
	}
	return out
}

// FormatSpoken joins SpokenSequence with commas.
func FormatSpoken(moves []cubesim.Move) string {
	return strings.Join(SpokenSequence(moves), ", ")
}
