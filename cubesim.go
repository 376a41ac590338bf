// Package cubesim models a 3x3x3 Rubik's cube as 27 cubies in space, turns
// its faces and slices in animated quarter turns, and translates pointer
// drags over a rendered cube into moves.
//
// # Features
//
//   - Cubie model with integer positions and exact orientations
//   - Face (R, L, U, D, F, B) and slice (M, E, S) quarter turns
//   - Animation sequencer with a single in-flight rotation and a FIFO queue
//   - Drag-to-move resolution for pointer input
//   - Solved detection, scrambling and a solve timer
//
// # Quick Start
//
// Turn the cube instantly, without animation:
//
//	cube := cubesim.NewCube()
//	cube.Apply(cubesim.R, cubesim.U, cubesim.RPrime, cubesim.UPrime)
//	fmt.Println("Solved:", cube.IsSolved())
//
// # Animated Turns
//
// A Sequencer owns the cube while animations run. Drive it from the render
// loop, one Tick per frame:
//
//	seq := cubesim.NewSequencer(cube)
//	p, _ := seq.Enqueue(cubesim.U, 300*time.Millisecond)
//	for !p.Resolved() {
//	    seq.Tick(time.Now())
//	    // draw every cubie at seq.Pose(c)
//	}
//
// Requests made while a rotation is in flight are queued and committed in
// arrival order.
//
// # Drag Input
//
// A renderer's hit test describes the clicked sticker; the resolver turns a
// drag over it into a move:
//
//	hit := cubesim.ClickedFace{Axis: cubesim.AxisZ, Direction: 1, Position: [3]float64{1, 1, 1}}
//	if m, ok := cubesim.ResolveDrag(hit, 40, 0); ok {
//	    seq.Enqueue(m, 300*time.Millisecond) // U'
//	}
package cubesim
