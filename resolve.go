package cubesim

import "math"

// Drag thresholds in screen pixels.
const (
	DragPreviewDistance = 5  // Past this a drag shows which layer it will turn
	DragCommitDistance  = 30 // Past this a drag commits its turn
)

// ClickedFace describes the surface under the pointer when a drag starts:
// the axis of the face's outward normal, the sign of that normal, and the
// position of the clicked cubie.
type ClickedFace struct {
	Axis      Axis
	Direction int // +1 or -1
	Position  [3]float64
}

// ClickedFaceFromNormal builds a ClickedFace from a hit test. The dominant
// component of normal (magnitude above 0.9) picks the axis. It returns false
// for a normal that is not close to axis aligned.
func ClickedFaceFromNormal(normal, pos [3]float64) (ClickedFace, bool) {
	for i, n := range normal {
		if math.Abs(n) > 0.9 {
			dir := 1
			if n < 0 {
				dir = -1
			}
			return ClickedFace{Axis: Axis(i), Direction: dir, Position: pos}, true
		}
	}
	return ClickedFace{}, false
}

// DragKind is the dominant screen direction of a drag.
type DragKind int

const (
	DragVertical DragKind = iota
	DragHorizontal
)

func (k DragKind) String() string {
	if k == DragHorizontal {
		return "horizontal"
	}
	return "vertical"
}

// DragKindOf classifies a drag vector. Ties count as vertical.
func DragKindOf(dx, dy float64) DragKind {
	if math.Abs(dx) > math.Abs(dy) {
		return DragHorizontal
	}
	return DragVertical
}

// ResolveDrag maps a drag that started on hit to the turn that follows the
// pointer. The drag's dominant screen direction and the clicked face's axis
// choose the row, column or depth layer; the clicked cubie's coordinate on
// that layer's axis chooses between the two outer layers and the slice.
//
// It returns false only if hit has an unknown axis.
func ResolveDrag(hit ClickedFace, dx, dy float64) (Move, bool) {
	out := hit.Direction > 0
	row := int(math.Round(hit.Position[1]))
	col := int(math.Round(hit.Position[0]))
	depth := int(math.Round(hit.Position[2]))
	horizontal := DragKindOf(dx, dy) == DragHorizontal

	switch hit.Axis {
	case AxisZ:
		if horizontal {
			return pickLayer(row, FaceU, FaceD, FaceE, (dx < 0) == out, (dx > 0) == out), true
		}
		return pickLayer(col, FaceR, FaceL, FaceM, (dy < 0) == out, (dy > 0) == out), true

	case AxisX:
		if horizontal {
			// Side faces turn the row the same way whichever side was clicked.
			return pickLayer(row, FaceU, FaceD, FaceE, dx < 0, dx > 0), true
		}
		return pickLayer(depth, FaceF, FaceB, FaceS, (dy > 0) == out, (dy < 0) == out), true

	case AxisY:
		if horizontal {
			return pickLayer(depth, FaceF, FaceB, FaceS, (dx < 0) == out, (dx > 0) == out), true
		}
		return pickLayer(col, FaceR, FaceL, FaceM, (dy < 0) == out, (dy > 0) == out), true
	}

	return Move{}, false
}

// pickLayer selects pos (layer 1), neg (layer -1) or mid (anything else).
// The positive layer uses posCW; the other two share restCW.
func pickLayer(layer int, pos, neg, mid Face, posCW, restCW bool) Move {
	switch layer {
	case 1:
		return Move{Face: pos, Clockwise: posCW}
	case -1:
		return Move{Face: neg, Clockwise: restCW}
	default:
		return Move{Face: mid, Clockwise: restCW}
	}
}
