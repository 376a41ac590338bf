// Package smartcube reads turns from a GoCube smart cube over Bluetooth LE
// and translates them into cubesim moves.
package smartcube

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/SeamusWaldron/cubesim"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/num/quat"
)

// GoCube BLE service and characteristic UUIDs.
var (
	ServiceUUID = uuid.MustParse("6e400001-b5a3-f393-e0a9-e50e24dcca9e")
	TxCharUUID  = uuid.MustParse("6e400003-b5a3-f393-e0a9-e50e24dcca9e") // Notify
	RxCharUUID  = uuid.MustParse("6e400002-b5a3-f393-e0a9-e50e24dcca9e") // Write
)

// Message types.
const (
	MsgTypeRotation     byte = 0x01
	MsgTypeState        byte = 0x02
	MsgTypeOrientation  byte = 0x03
	MsgTypeBattery      byte = 0x05
	MsgTypeOfflineStats byte = 0x07
	MsgTypeCubeType     byte = 0x08
)

// Commands written to the RX characteristic.
const (
	CmdRequestBattery     byte = 0x32
	CmdRequestState       byte = 0x33
	CmdResetSolved        byte = 0x35
	CmdDisableOrientation byte = 0x37
	CmdEnableOrientation  byte = 0x38
	CmdFlashBacklight     byte = 0x41
)

// Frame layout: [0x2A] [length] [type] [payload...] [checksum] [0x0D 0x0A].
// length counts the bytes from type through the suffix.
const (
	framePrefix  byte = 0x2A
	frameSuffix1 byte = 0x0D
	frameSuffix2 byte = 0x0A
)

var (
	ErrMessageTooShort = errors.New("smartcube: message too short")
	ErrInvalidPrefix   = errors.New("smartcube: invalid message prefix")
	ErrInvalidSuffix   = errors.New("smartcube: invalid message suffix")
	ErrInvalidChecksum = errors.New("smartcube: invalid checksum")
	ErrInvalidLength   = errors.New("smartcube: invalid message length")
	ErrInvalidPayload  = errors.New("smartcube: invalid payload")
)

// Message is one decoded notification frame.
type Message struct {
	Type    byte
	Payload []byte
}

// ParseMessage validates a raw notification and extracts its payload.
func ParseMessage(data []byte) (*Message, error) {
	if len(data) < 5 {
		return nil, ErrMessageTooShort
	}
	if data[0] != framePrefix {
		return nil, ErrInvalidPrefix
	}

	length := int(data[1])
	if len(data) < 2+length {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrInvalidLength, 2+length, len(data))
	}

	sumIdx := length - 1
	if sumIdx < 3 {
		return nil, ErrMessageTooShort
	}
	if data[sumIdx+1] != frameSuffix1 || data[sumIdx+2] != frameSuffix2 {
		return nil, ErrInvalidSuffix
	}

	var sum byte
	for _, b := range data[:sumIdx] {
		sum += b
	}
	if sum != data[sumIdx] {
		return nil, fmt.Errorf("%w: expected 0x%02X, got 0x%02X", ErrInvalidChecksum, data[sumIdx], sum)
	}

	return &Message{Type: data[2], Payload: data[3:sumIdx]}, nil
}

// BuildCommand frames a payload-free command.
func BuildCommand(cmd byte) []byte {
	length := byte(0x01)
	return []byte{framePrefix, length, cmd, framePrefix + length + cmd, frameSuffix1, frameSuffix2}
}

// MessageTypeName returns a readable name for a message type.
func MessageTypeName(t byte) string {
	switch t {
	case MsgTypeRotation:
		return "rotation"
	case MsgTypeState:
		return "state"
	case MsgTypeOrientation:
		return "orientation"
	case MsgTypeBattery:
		return "battery"
	case MsgTypeOfflineStats:
		return "offline_stats"
	case MsgTypeCubeType:
		return "cube_type"
	default:
		return fmt.Sprintf("unknown_0x%02X", t)
	}
}

// faceByColor maps the cube's color index to the face whose center carries
// that color in the standard scheme.
var faceByColor = [6]cubesim.Face{
	cubesim.FaceB, // blue
	cubesim.FaceF, // green
	cubesim.FaceU, // white
	cubesim.FaceD, // yellow
	cubesim.FaceR, // red
	cubesim.FaceL, // orange
}

// DecodeRotation decodes a rotation payload of [code, center] byte pairs.
// Even codes are clockwise turns, odd codes counter-clockwise.
func DecodeRotation(payload []byte) ([]cubesim.Move, error) {
	if len(payload)%2 != 0 {
		return nil, fmt.Errorf("%w: rotation payload has odd length %d", ErrInvalidPayload, len(payload))
	}

	moves := make([]cubesim.Move, 0, len(payload)/2)
	for i := 0; i < len(payload); i += 2 {
		code := payload[i]
		idx := int(code / 2)
		if idx >= len(faceByColor) {
			return nil, fmt.Errorf("%w: face code 0x%02X", ErrInvalidPayload, code)
		}
		moves = append(moves, cubesim.Move{Face: faceByColor[idx], Clockwise: code%2 == 0})
	}
	return moves, nil
}

// DecodeBattery returns the battery level percentage.
func DecodeBattery(payload []byte) (int, error) {
	if len(payload) < 1 {
		return 0, fmt.Errorf("%w: battery payload empty", ErrInvalidPayload)
	}
	return int(payload[0]), nil
}

// Orientation is the physical attitude of the cube.
type Orientation struct {
	Rotation  quat.Number
	UpFace    cubesim.Face // Face pointing up
	FrontFace cubesim.Face // Face pointing at the solver
}

// DecodeOrientation decodes an "x#y#z#w" quaternion payload. Anything after
// the numeric part of w is ignored.
func DecodeOrientation(payload []byte) (*Orientation, error) {
	parts := strings.Split(string(payload), "#")
	if len(parts) != 4 {
		return nil, fmt.Errorf("%w: orientation has %d parts", ErrInvalidPayload, len(parts))
	}
	parts[3] = leadingNumber(parts[3])

	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: orientation component %d: %v", ErrInvalidPayload, i, err)
		}
		v[i] = f
	}

	q := quat.Number{Real: v[3], Imag: v[0], Jmag: v[1], Kmag: v[2]}
	if n := quat.Abs(q); n > 0 {
		q = quat.Scale(1/n, q)
	}

	return &Orientation{
		Rotation:  q,
		UpFace:    dominantFace(rotate(q, [3]float64{0, 1, 0})),
		FrontFace: dominantFace(rotate(q, [3]float64{0, 0, 1})),
	}, nil
}

func leadingNumber(s string) string {
	end := 0
	for i, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || (r == '-' && i == 0) {
			end = i + 1
			continue
		}
		break
	}
	return s[:end]
}

func rotate(q quat.Number, p [3]float64) [3]float64 {
	r := quat.Mul(quat.Mul(q, quat.Number{Imag: p[0], Jmag: p[1], Kmag: p[2]}), quat.Conj(q))
	return [3]float64{r.Imag, r.Jmag, r.Kmag}
}

// dominantFace returns the outer face a vector points at most. Ties prefer
// y, then z.
func dominantFace(v [3]float64) cubesim.Face {
	axis := 1
	if math.Abs(v[2]) > math.Abs(v[axis]) {
		axis = 2
	}
	if math.Abs(v[0]) > math.Abs(v[axis]) {
		axis = 0
	}

	var n cubesim.Vec3
	if v[axis] >= 0 {
		n[axis] = 1
	} else {
		n[axis] = -1
	}
	s, _ := cubesim.SideOf(n)
	return s.Face()
}
