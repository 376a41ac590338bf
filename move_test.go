package cubesim

import (
	"errors"
	"math"
	"testing"
)

func TestParseMove(t *testing.T) {
	tests := []struct {
		in   string
		want Move
	}{
		{"R", R},
		{"R'", RPrime},
		{"u", U},
		{"M`", MPrime},
		{" S ", S},
	}

	for _, tt := range tests {
		got, err := ParseMove(tt.in)
		if err != nil {
			t.Errorf("ParseMove(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMove(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseMove_Invalid(t *testing.T) {
	for _, in := range []string{"", "X", "R''", "Rw", "x'"} {
		if _, err := ParseMove(in); !errors.Is(err, ErrInvalidNotation) {
			t.Errorf("ParseMove(%q) err = %v, want ErrInvalidNotation", in, err)
		}
	}
}

func TestParseMoves_DoubleTurns(t *testing.T) {
	moves, err := ParseMoves("R2 U F2' M")
	if err != nil {
		t.Fatalf("ParseMoves: %v", err)
	}
	if got := FormatMoves(moves); got != "R R U F F M" {
		t.Errorf("got %q", got)
	}
}

func TestParseMoves_RejectsMalformedDoubleTurns(t *testing.T) {
	for _, in := range []string{"Rx2", "R22", "Rxyz2", "U3'2", "2", "2'", "X2", "R'2"} {
		moves, err := ParseMoves("U " + in)
		if !errors.Is(err, ErrInvalidNotation) {
			t.Errorf("ParseMoves(%q) = %v, %v, want ErrInvalidNotation", in, FormatMoves(moves), err)
		}
	}
}

func TestFormatMoves_RoundTrip(t *testing.T) {
	in := "R U R' U' M E' S"
	moves, err := ParseMoves(in)
	if err != nil {
		t.Fatalf("ParseMoves: %v", err)
	}
	if got := FormatMoves(moves); got != in {
		t.Errorf("FormatMoves = %q, want %q", got, in)
	}
	if FormatMoves(nil) != "" {
		t.Error("FormatMoves(nil) should be empty")
	}
}

func TestInverseMoves(t *testing.T) {
	if got := FormatMoves(InverseMoves(SexyMove)); got != "U R U' R'" {
		t.Errorf("InverseMoves = %q", got)
	}
}

func TestMoveAngle_Handedness(t *testing.T) {
	tests := []struct {
		face Face
		axis Axis
		sign int
	}{
		{FaceR, AxisX, -1},
		{FaceL, AxisX, 1},
		{FaceM, AxisX, 1},
		{FaceU, AxisY, -1},
		{FaceD, AxisY, 1},
		{FaceE, AxisY, 1},
		{FaceF, AxisZ, -1},
		{FaceB, AxisZ, 1},
		{FaceS, AxisZ, -1},
	}

	for _, tt := range tests {
		cw := Move{Face: tt.face, Clockwise: true}
		if cw.Face.Axis() != tt.axis {
			t.Errorf("%s axis = %s, want %s", tt.face, cw.Face.Axis(), tt.axis)
		}
		if want := float64(tt.sign) * math.Pi / 2; cw.Angle() != want {
			t.Errorf("%s angle = %v, want %v", cw, cw.Angle(), want)
		}
		if ccw := cw.Inverse(); ccw.Angle() != -cw.Angle() {
			t.Errorf("%s angle = %v, want %v", ccw, ccw.Angle(), -cw.Angle())
		}
	}
}

func TestFace_LayerAndSlice(t *testing.T) {
	for _, f := range Faces {
		slice := f == FaceM || f == FaceE || f == FaceS
		if f.IsSlice() != slice {
			t.Errorf("%s IsSlice = %v", f, f.IsSlice())
		}
		if slice != (f.Layer() == 0) {
			t.Errorf("%s layer = %d", f, f.Layer())
		}
	}
	if Face("Q").Valid() {
		t.Error("Q should not be valid")
	}
}
