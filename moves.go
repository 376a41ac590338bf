package cubesim

// Predefined moves for convenience.
// Use these instead of constructing Move structs manually.
//
// Example:
//
//	cube.Apply(cubesim.R, cubesim.U, cubesim.RPrime, cubesim.UPrime)
var (
	R      = Move{Face: FaceR, Clockwise: true}  // Right clockwise
	RPrime = Move{Face: FaceR, Clockwise: false} // Right counter-clockwise

	L      = Move{Face: FaceL, Clockwise: true}
	LPrime = Move{Face: FaceL, Clockwise: false}

	U      = Move{Face: FaceU, Clockwise: true}
	UPrime = Move{Face: FaceU, Clockwise: false}

	D      = Move{Face: FaceD, Clockwise: true}
	DPrime = Move{Face: FaceD, Clockwise: false}

	F      = Move{Face: FaceF, Clockwise: true}
	FPrime = Move{Face: FaceF, Clockwise: false}

	B      = Move{Face: FaceB, Clockwise: true}
	BPrime = Move{Face: FaceB, Clockwise: false}

	// Slice moves. M turns like L, E like D, S like F.
	M      = Move{Face: FaceM, Clockwise: true}
	MPrime = Move{Face: FaceM, Clockwise: false}
	E      = Move{Face: FaceE, Clockwise: true}
	EPrime = Move{Face: FaceE, Clockwise: false}
	S      = Move{Face: FaceS, Clockwise: true}
	SPrime = Move{Face: FaceS, Clockwise: false}
)

// Sexy move: R U R' U' - one of the most common algorithms
var SexyMove = []Move{R, U, RPrime, UPrime}

// Checkerboard pattern from the solved state: M2 E2 S2. Centers and
// corners stay home; every edge sticker takes the opposite face's color.
var Checkerboard = []Move{M, M, E, E, S, S}
