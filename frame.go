package cubesim

import "gonum.org/v1/gonum/num/quat"

// Pose is the visual transform of a cubie: where to draw it and how it is
// rotated.
type Pose struct {
	Position [3]float64
	Rotation quat.Number
}

// rotationFrame is the transient parent of the cubies in one turning layer.
// Only its angle changes while a turn animates; bake folds the final turn
// into each cubie and the frame is dropped.
type rotationFrame struct {
	move   Move
	axis   Axis
	target float64 // Signed final angle in radians
	angle  float64 // Current angle in radians
	cubies []*Cubie
	member map[*Cubie]bool
}

func newRotationFrame(m Move, cubies []*Cubie) *rotationFrame {
	f := &rotationFrame{
		move:   m,
		axis:   m.Face.Axis(),
		target: m.Angle(),
		cubies: cubies,
		member: make(map[*Cubie]bool, len(cubies)),
	}
	for _, c := range cubies {
		f.member[c] = true
	}
	return f
}

// setProgress sets the frame angle from an eased progress in [0, 1].
func (f *rotationFrame) setProgress(eased float64) {
	f.angle = f.target * eased
}

// pose returns the visual pose of c with the frame's current rotation
// applied on top of its committed transform.
func (f *rotationFrame) pose(c *Cubie) Pose {
	q := axisAngle(f.axis, f.angle)
	return Pose{
		Position: rotatePoint(q, c.Position.Float()),
		Rotation: quat.Mul(q, c.Quaternion()),
	}
}

// bake commits the full turn into every cubie of the frame, snapping the
// result back onto the integer grid.
func (f *rotationFrame) bake() {
	q := axisAngle(f.axis, f.target)
	for _, c := range f.cubies {
		c.Position = Round(rotatePoint(q, c.Position.Float()))
		c.Orientation = snapRotation(quat.Mul(q, c.Quaternion()))
	}
	f.angle = 0
}

// EaseOutCubic maps linear progress p in [0, 1] to 1 - (1-p)^3.
func EaseOutCubic(p float64) float64 {
	r := 1 - p
	return 1 - r*r*r
}
