package protocol

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
	"math/bits"
)

const (
	// MaxVarintLen is the longest a varint may be on the wire.
	MaxVarintLen = binary.MaxVarintLen64

	// DefaultMaxAllocation bounds decoded strings (4MB).
	DefaultMaxAllocation = 4 << 20

	// MaxCollectionCount bounds decoded collections.
	MaxCollectionCount = 100_000
)

var (
	ErrBufferTooShort     = errors.New("protocol: buffer too short")
	ErrVarintOverflow     = errors.New("protocol: varint overflow")
	ErrAllocationTooLarge = errors.New("protocol: allocation size exceeds limit")
	ErrCollectionTooLarge = errors.New("protocol: collection count exceeds limit")
)

// EncodeUvarint writes v into buf, which must hold MaxVarintLen bytes, and
// returns the number of bytes used.
func EncodeUvarint(buf []byte, v uint64) int {
	return binary.PutUvarint(buf, v)
}

// DecodeUvarint reads a varint from the start of buf and returns it with the
// number of bytes consumed. The count is -1 when buf ends inside the varint
// and -2 when the varint does not fit in 64 bits.
func DecodeUvarint(buf []byte) (uint64, int) {
	v, n := binary.Uvarint(buf)
	switch {
	case n == 0:
		return 0, -1
	case n < 0:
		return 0, -2
	}
	return v, n
}

// UvarintLen returns the encoded size of v.
func UvarintLen(v uint64) int {
	return (bits.Len64(v|1) + 6) / 7
}

// zigzag folds the sign into the low bit: 0, -1, 1, -2 map to 0, 1, 2, 3.
func zigzag(v int64) uint64 { return uint64(v<<1) ^ uint64(v>>63) }

func unzigzag(u uint64) int64 { return int64(u>>1) ^ -int64(u&1) }

// Encoder builds a payload in memory. Writes never fail.
type Encoder struct {
	buf []byte
}

func NewEncoder() *Encoder {
	return &Encoder{buf: make([]byte, 0, 256)}
}

// Reset empties the encoder and keeps its buffer.
func (e *Encoder) Reset() { e.buf = e.buf[:0] }

// Bytes returns the payload. It aliases the encoder's buffer until the next
// write or Reset.
func (e *Encoder) Bytes() []byte { return e.buf }

func (e *Encoder) Len() int { return len(e.buf) }

func (e *Encoder) WriteByte(b byte)    { e.buf = append(e.buf, b) }
func (e *Encoder) WriteBytes(b []byte) { e.buf = append(e.buf, b...) }

func (e *Encoder) WriteUvarint(v uint64) { e.buf = binary.AppendUvarint(e.buf, v) }
func (e *Encoder) WriteSvarint(v int64)  { e.WriteUvarint(zigzag(v)) }

// WriteString writes a length-prefixed string.
func (e *Encoder) WriteString(s string) {
	e.WriteUvarint(uint64(len(s)))
	e.buf = append(e.buf, s...)
}

func (e *Encoder) WriteBool(b bool) {
	var v byte
	if b {
		v = 1
	}
	e.buf = append(e.buf, v)
}

func (e *Encoder) WriteUint16(v uint16) { e.buf = binary.BigEndian.AppendUint16(e.buf, v) }

func (e *Encoder) WriteFloat64(v float64) {
	e.buf = binary.BigEndian.AppendUint64(e.buf, math.Float64bits(v))
}

// Decoder reads a payload produced by Encoder.
type Decoder struct {
	buf []byte
	pos int
}

func NewDecoder(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

// Remaining returns the number of unread bytes.
func (d *Decoder) Remaining() int { return len(d.buf) - d.pos }

// EOF reports whether every byte was read.
func (d *Decoder) EOF() bool { return d.pos >= len(d.buf) }

// take consumes the next n bytes.
func (d *Decoder) take(n int) ([]byte, error) {
	if n > d.Remaining() {
		return nil, ErrBufferTooShort
	}
	b := d.buf[d.pos : d.pos+n]
	d.pos += n
	return b, nil
}

func (d *Decoder) ReadByte() (byte, error) {
	b, err := d.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d *Decoder) ReadUvarint() (uint64, error) {
	v, n := DecodeUvarint(d.buf[d.pos:])
	switch n {
	case -1:
		return 0, ErrBufferTooShort
	case -2:
		return 0, ErrVarintOverflow
	}
	d.pos += n
	return v, nil
}

func (d *Decoder) ReadSvarint() (int64, error) {
	u, err := d.ReadUvarint()
	return unzigzag(u), err
}

// ReadString reads a length-prefixed string of at most DefaultMaxAllocation
// bytes.
func (d *Decoder) ReadString() (string, error) {
	n, err := d.ReadUvarint()
	if err != nil {
		return "", err
	}
	if n > DefaultMaxAllocation {
		return "", ErrAllocationTooLarge
	}
	b, err := d.take(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// ReadBool treats any non-zero byte as true.
func (d *Decoder) ReadBool() (bool, error) {
	b, err := d.ReadByte()
	return b != 0, err
}

func (d *Decoder) ReadUint16() (uint16, error) {
	b, err := d.take(2)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (d *Decoder) ReadFloat64() (float64, error) {
	b, err := d.take(8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
}

// ReadCollectionCount reads an item count, rejecting counts that exceed
// MaxCollectionCount or the bytes left (every item takes at least one).
func (d *Decoder) ReadCollectionCount() (int, error) {
	n, err := d.ReadUvarint()
	if err != nil {
		return 0, err
	}
	if n > MaxCollectionCount {
		return 0, ErrCollectionTooLarge
	}
	if n > uint64(d.Remaining()) {
		return 0, ErrBufferTooShort
	}
	return int(n), nil
}

// unexpectedEOF maps a truncated read to ErrBufferTooShort.
func unexpectedEOF(err error) error {
	if errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrBufferTooShort
	}
	return err
}
