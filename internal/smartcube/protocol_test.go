package smartcube

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/SeamusWaldron/cubesim"
	"github.com/sirupsen/logrus"
)

// frame builds a valid notification frame around payload.
func frame(typ byte, payload ...byte) []byte {
	data := []byte{framePrefix, byte(len(payload) + 4), typ}
	data = append(data, payload...)
	var sum byte
	for _, b := range data {
		sum += b
	}
	return append(data, sum, frameSuffix1, frameSuffix2)
}

func TestParseMessage_Valid(t *testing.T) {
	msg, err := ParseMessage(frame(MsgTypeRotation, 0x04, 0x00))
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}
	if msg.Type != MsgTypeRotation {
		t.Errorf("Type = 0x%02X, want 0x%02X", msg.Type, MsgTypeRotation)
	}
	if len(msg.Payload) != 2 || msg.Payload[0] != 0x04 {
		t.Errorf("Payload = %v, want [4 0]", msg.Payload)
	}
}

func TestParseMessage_Errors(t *testing.T) {
	good := frame(MsgTypeBattery, 80)

	badPrefix := append([]byte(nil), good...)
	badPrefix[0] = 0x00

	badSum := append([]byte(nil), good...)
	badSum[len(badSum)-3]++

	badSuffix := append([]byte(nil), good...)
	badSuffix[len(badSuffix)-1] = 0x00

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"short", []byte{0x2A, 0x01}, ErrMessageTooShort},
		{"prefix", badPrefix, ErrInvalidPrefix},
		{"checksum", badSum, ErrInvalidChecksum},
		{"suffix", badSuffix, ErrInvalidSuffix},
		{"truncated", good[:len(good)-1], ErrInvalidLength},
	}

	for _, tt := range tests {
		if _, err := ParseMessage(tt.data); !errors.Is(err, tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, err, tt.want)
		}
	}
}

func TestBuildCommand(t *testing.T) {
	got := BuildCommand(CmdRequestBattery)
	want := []byte{0x2A, 0x01, 0x32, 0x5D, 0x0D, 0x0A}
	if string(got) != string(want) {
		t.Errorf("BuildCommand = % X, want % X", got, want)
	}
}

func TestDecodeRotation_ColorsToFaces(t *testing.T) {
	tests := []struct {
		code byte
		want cubesim.Move
	}{
		{0x00, cubesim.B},
		{0x01, cubesim.BPrime},
		{0x02, cubesim.F},
		{0x04, cubesim.U},
		{0x07, cubesim.DPrime},
		{0x08, cubesim.R},
		{0x0B, cubesim.LPrime},
	}

	for _, tt := range tests {
		moves, err := DecodeRotation([]byte{tt.code, 0x00})
		if err != nil {
			t.Fatalf("code 0x%02X: %v", tt.code, err)
		}
		if len(moves) != 1 || moves[0] != tt.want {
			t.Errorf("code 0x%02X: got %v, want %v", tt.code, moves, tt.want)
		}
	}
}

func TestDecodeRotation_Invalid(t *testing.T) {
	if _, err := DecodeRotation([]byte{0x00}); !errors.Is(err, ErrInvalidPayload) {
		t.Errorf("odd payload: got %v", err)
	}
	if _, err := DecodeRotation([]byte{0x0C, 0x00}); !errors.Is(err, ErrInvalidPayload) {
		t.Errorf("code 0x0C: got %v", err)
	}
}

func TestDecodeOrientation(t *testing.T) {
	// Identity, with trailing junk after w.
	o, err := DecodeOrientation([]byte("0#0#0#1000\x1f"))
	if err != nil {
		t.Fatalf("DecodeOrientation: %v", err)
	}
	if o.UpFace != cubesim.FaceU || o.FrontFace != cubesim.FaceF {
		t.Errorf("identity: up %s front %s, want U F", o.UpFace, o.FrontFace)
	}

	// Half turn about x flips up and front.
	o, err = DecodeOrientation([]byte("1#0#0#0"))
	if err != nil {
		t.Fatalf("DecodeOrientation: %v", err)
	}
	if o.UpFace != cubesim.FaceD || o.FrontFace != cubesim.FaceB {
		t.Errorf("x2: up %s front %s, want D B", o.UpFace, o.FrontFace)
	}

	if _, err := DecodeOrientation([]byte("1#2#3")); !errors.Is(err, ErrInvalidPayload) {
		t.Errorf("three parts: got %v", err)
	}
}

func TestClientDispatch_ForwardsMoves(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	c := &Client{log: log, battery: -1}

	var got []cubesim.Move
	var types []string
	c.OnMove(func(m cubesim.Move) { got = append(got, m) })
	c.OnMessage(func(m *Message) { types = append(types, MessageTypeName(m.Type)) })

	msg, err := ParseMessage(frame(MsgTypeRotation, 0x08, 0x00, 0x05, 0x00))
	if err != nil {
		t.Fatalf("ParseMessage: %v", err)
	}
	c.dispatch(msg)

	if cubesim.FormatMoves(got) != "R U'" {
		t.Errorf("moves = %q, want %q", cubesim.FormatMoves(got), "R U'")
	}

	msg, _ = ParseMessage(frame(MsgTypeBattery, 73))
	c.dispatch(msg)
	if c.Battery() != 73 {
		t.Errorf("Battery = %d, want 73", c.Battery())
	}
	if strings.Join(types, ",") != "rotation,battery" {
		t.Errorf("raw messages = %v", types)
	}
}
