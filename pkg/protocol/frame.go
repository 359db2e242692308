package protocol

import (
	"encoding/binary"
	"errors"
	"io"
)

const (
	// FrameHeaderSize is type, flags and a big-endian uint16 length.
	FrameHeaderSize = 4

	// MaxPayloadSize is the largest payload the length field can carry.
	MaxPayloadSize = 1<<16 - 1
)

// FrameType says how to read a frame's payload.
type FrameType uint8

const (
	FrameInput   FrameType = 0x01 // browser to server
	FramePatches FrameType = 0x02 // server to browser
	FrameControl FrameType = 0x03
	FrameError   FrameType = 0x05
)

var frameTypeNames = map[FrameType]string{
	FrameInput:   "Input",
	FramePatches: "Patches",
	FrameControl: "Control",
	FrameError:   "Error",
}

func (ft FrameType) String() string {
	if name, ok := frameTypeNames[ft]; ok {
		return name
	}
	return "Unknown"
}

// FrameFlags qualify a frame.
type FrameFlags uint8

const (
	// FlagSequenced marks a payload that starts with the pass sequence
	// number.
	FlagSequenced FrameFlags = 0x02

	// FlagFinal marks the last frame of a pass. Browsers advance their
	// sequence number only on it.
	FlagFinal FrameFlags = 0x04
)

func (ff FrameFlags) Has(flag FrameFlags) bool { return ff&flag != 0 }

var (
	ErrFrameTooLarge    = errors.New("protocol: frame payload too large")
	ErrInvalidFrameType = errors.New("protocol: invalid frame type")
)

// Frame is one WebSocket message: a 4-byte header followed by the payload.
//
//	+------+-------+----------------+---------
//	| type | flags | length (BE16)  | payload
//	+------+-------+----------------+---------
type Frame struct {
	Type    FrameType
	Flags   FrameFlags
	Payload []byte
}

func NewFrame(ft FrameType, payload []byte) *Frame {
	return &Frame{Type: ft, Payload: payload}
}

// Encode returns the header and payload as one message. The payload must
// not exceed MaxPayloadSize.
func (f *Frame) Encode() []byte {
	buf := make([]byte, 0, FrameHeaderSize+len(f.Payload))
	buf = append(buf, byte(f.Type), byte(f.Flags))
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(f.Payload)))
	return append(buf, f.Payload...)
}

// DecodeFrame reads a frame from one complete message. The payload is
// copied out of data.
func DecodeFrame(data []byte) (*Frame, error) {
	ft, flags, n, err := DecodeFrameHeader(data)
	if err != nil {
		return nil, err
	}
	body := data[FrameHeaderSize:]
	if len(body) < n {
		return nil, ErrBufferTooShort
	}
	return &Frame{Type: ft, Flags: flags, Payload: append([]byte(nil), body[:n]...)}, nil
}

// DecodeFrameHeader returns the type, flags and payload length at the start
// of data.
func DecodeFrameHeader(data []byte) (FrameType, FrameFlags, int, error) {
	if len(data) < FrameHeaderSize {
		return 0, 0, 0, ErrBufferTooShort
	}
	ft := FrameType(data[0])
	if _, ok := frameTypeNames[ft]; !ok {
		return 0, 0, 0, ErrInvalidFrameType
	}
	return ft, FrameFlags(data[1]), int(binary.BigEndian.Uint16(data[2:4])), nil
}

// ReadFrame reads the next frame of a stream. It returns io.EOF when the
// stream ends cleanly between frames.
func ReadFrame(r io.Reader) (*Frame, error) {
	var header [FrameHeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, unexpectedEOF(err)
	}
	ft, flags, n, err := DecodeFrameHeader(header[:])
	if err != nil {
		return nil, err
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, unexpectedEOF(err)
	}
	return &Frame{Type: ft, Flags: flags, Payload: payload}, nil
}

func WriteFrame(w io.Writer, f *Frame) error {
	if len(f.Payload) > MaxPayloadSize {
		return ErrFrameTooLarge
	}
	_, err := w.Write(f.Encode())
	return err
}
