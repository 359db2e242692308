package protocol

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestUvarintRoundTrip(t *testing.T) {
	tests := []uint64{0, 1, 127, 128, 255, 300, 16383, 16384, 1 << 32, 1<<64 - 1}
	buf := make([]byte, MaxVarintLen)
	for _, v := range tests {
		n := EncodeUvarint(buf, v)
		if n != UvarintLen(v) {
			t.Errorf("EncodeUvarint(%d) wrote %d bytes, UvarintLen = %d", v, n, UvarintLen(v))
		}
		got, m := DecodeUvarint(buf[:n])
		if got != v || m != n {
			t.Errorf("DecodeUvarint = (%d, %d), want (%d, %d)", got, m, v, n)
		}
	}
}

func TestDecodeUvarintErrors(t *testing.T) {
	if _, n := DecodeUvarint([]byte{0x80, 0x80}); n != -1 {
		t.Errorf("incomplete varint: n = %d, want -1", n)
	}
	overflow := bytes.Repeat([]byte{0xff}, MaxVarintLen+1)
	if _, n := DecodeUvarint(overflow); n != -2 {
		t.Errorf("overflow: n = %d, want -2", n)
	}
}

func TestZigZag(t *testing.T) {
	tests := []struct {
		in   int64
		want uint64
	}{
		{0, 0}, {-1, 1}, {1, 2}, {-2, 3}, {2, 4},
	}
	for _, tt := range tests {
		if got := zigzag(tt.in); got != tt.want {
			t.Errorf("zigzag(%d) = %d, want %d", tt.in, got, tt.want)
		}
		if got := unzigzag(tt.want); got != tt.in {
			t.Errorf("unzigzag(%d) = %d, want %d", tt.want, got, tt.in)
		}
	}
}

func TestEncoderDecoder(t *testing.T) {
	e := NewEncoder()
	e.WriteByte(0x42)
	e.WriteUvarint(300)
	e.WriteSvarint(-5)
	e.WriteString("héllo")
	e.WriteBool(true)
	e.WriteUint16(0xBEEF)
	e.WriteFloat64(3.5)

	d := NewDecoder(e.Bytes())
	if b, err := d.ReadByte(); err != nil || b != 0x42 {
		t.Fatalf("ReadByte = %x, %v", b, err)
	}
	if v, err := d.ReadUvarint(); err != nil || v != 300 {
		t.Fatalf("ReadUvarint = %d, %v", v, err)
	}
	if v, err := d.ReadSvarint(); err != nil || v != -5 {
		t.Fatalf("ReadSvarint = %d, %v", v, err)
	}
	if s, err := d.ReadString(); err != nil || s != "héllo" {
		t.Fatalf("ReadString = %q, %v", s, err)
	}
	if b, err := d.ReadBool(); err != nil || !b {
		t.Fatalf("ReadBool = %v, %v", b, err)
	}
	if v, err := d.ReadUint16(); err != nil || v != 0xBEEF {
		t.Fatalf("ReadUint16 = %x, %v", v, err)
	}
	if v, err := d.ReadFloat64(); err != nil || v != 3.5 {
		t.Fatalf("ReadFloat64 = %v, %v", v, err)
	}
	if !d.EOF() {
		t.Errorf("expected EOF, %d bytes remaining", d.Remaining())
	}

	e.Reset()
	if e.Len() != 0 {
		t.Errorf("Len after Reset = %d", e.Len())
	}
}

func TestDecoderErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		read func(*Decoder) error
		want error
	}{
		{"byte", nil, func(d *Decoder) error { _, err := d.ReadByte(); return err }, ErrBufferTooShort},
		{"uvarint", []byte{0x80}, func(d *Decoder) error { _, err := d.ReadUvarint(); return err }, ErrBufferTooShort},
		{"overflow", bytes.Repeat([]byte{0xff}, 11), func(d *Decoder) error { _, err := d.ReadUvarint(); return err }, ErrVarintOverflow},
		{"string", []byte{0x05, 'a'}, func(d *Decoder) error { _, err := d.ReadString(); return err }, ErrBufferTooShort},
		{"huge string", []byte{0xff, 0xff, 0xff, 0xff, 0x0f}, func(d *Decoder) error { _, err := d.ReadString(); return err }, ErrAllocationTooLarge},
		{"uint16", []byte{0x01}, func(d *Decoder) error { _, err := d.ReadUint16(); return err }, ErrBufferTooShort},
		{"float", []byte{0x01, 0x02}, func(d *Decoder) error { _, err := d.ReadFloat64(); return err }, ErrBufferTooShort},
		{"count", []byte{0x05}, func(d *Decoder) error { _, err := d.ReadCollectionCount(); return err }, ErrBufferTooShort},
		{"value tag", []byte{0x09}, func(d *Decoder) error { _, err := d.ReadValue(); return err }, ErrInvalidValueType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.read(NewDecoder(tt.data))
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestValues(t *testing.T) {
	tests := []struct {
		in   any
		want any
	}{
		{nil, nil},
		{true, true},
		{42, int64(42)},
		{int64(-7), int64(-7)},
		{1.25, 1.25},
		{"text", "text"},
		{[]string{"a"}, "[a]"},
	}
	for _, tt := range tests {
		e := NewEncoder()
		e.WriteValue(tt.in)
		got, err := NewDecoder(e.Bytes()).ReadValue()
		if err != nil {
			t.Fatalf("ReadValue(%v): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("value %v decoded as %#v, want %#v", tt.in, got, tt.want)
		}
	}
}

func TestFrameEncodeDecode(t *testing.T) {
	f := &Frame{Type: FramePatches, Flags: FlagFinal, Payload: []byte{1, 2, 3}}
	data := f.Encode()
	if len(data) != FrameHeaderSize+3 {
		t.Fatalf("encoded length = %d", len(data))
	}
	got, err := DecodeFrame(data)
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if diff := cmp.Diff(f, got); diff != "" {
		t.Errorf("frame mismatch (-want +got):\n%s", diff)
	}
	if !got.Flags.Has(FlagFinal) || got.Flags.Has(FlagSequenced) {
		t.Errorf("flags = %b", got.Flags)
	}
}

func TestFrameErrors(t *testing.T) {
	if _, err := DecodeFrame([]byte{0x02, 0x00}); !errors.Is(err, ErrBufferTooShort) {
		t.Errorf("short header: %v", err)
	}
	if _, err := DecodeFrame([]byte{0x02, 0x00, 0x00, 0x05, 0x01}); !errors.Is(err, ErrBufferTooShort) {
		t.Errorf("short payload: %v", err)
	}
	if _, err := DecodeFrame([]byte{0x7f, 0x00, 0x00, 0x00}); !errors.Is(err, ErrInvalidFrameType) {
		t.Errorf("bad type: %v", err)
	}
	if err := WriteFrame(io.Discard, NewFrame(FramePatches, make([]byte, MaxPayloadSize+1))); !errors.Is(err, ErrFrameTooLarge) {
		t.Errorf("oversized: %v", err)
	}
}

func TestReadWriteFrames(t *testing.T) {
	var buf bytes.Buffer
	frames := []*Frame{
		NewFrame(FrameInput, []byte("a")),
		NewFrame(FrameControl, nil),
		NewFrame(FramePatches, []byte("patches")),
	}
	for _, f := range frames {
		if err := WriteFrame(&buf, f); err != nil {
			t.Fatal(err)
		}
	}
	for _, want := range frames {
		got, err := ReadFrame(&buf)
		if err != nil {
			t.Fatalf("ReadFrame: %v", err)
		}
		if got.Type != want.Type || string(got.Payload) != string(want.Payload) {
			t.Errorf("got %v %q, want %v %q", got.Type, got.Payload, want.Type, want.Payload)
		}
	}
	if _, err := ReadFrame(&buf); err != io.EOF {
		t.Errorf("end of stream: %v, want io.EOF", err)
	}
	if _, err := ReadFrame(bytes.NewReader([]byte{0x01, 0x00})); !errors.Is(err, ErrBufferTooShort) {
		t.Errorf("truncated header: %v", err)
	}
}

func TestFrameTypeString(t *testing.T) {
	tests := map[FrameType]string{
		FrameInput:     "Input",
		FramePatches:   "Patches",
		FrameControl:   "Control",
		FrameError:     "Error",
		FrameType(0xF): "Unknown",
	}
	for ft, want := range tests {
		if got := ft.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", ft, got, want)
		}
	}
}
