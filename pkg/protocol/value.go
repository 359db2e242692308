package protocol

import (
	"errors"
	"fmt"
)

// ValueType tags a dynamically typed value on the wire.
type ValueType uint8

const (
	ValueNull   ValueType = 0x00
	ValueBool   ValueType = 0x01
	ValueInt    ValueType = 0x02
	ValueFloat  ValueType = 0x03
	ValueString ValueType = 0x04
)

// ErrInvalidValueType is returned for an unknown value tag.
var ErrInvalidValueType = errors.New("protocol: invalid value type")

// WriteValue appends a tagged value. Integers become ValueInt, other
// non-primitive values are sent as their string form.
func (e *Encoder) WriteValue(v any) {
	switch val := v.(type) {
	case nil:
		e.WriteByte(byte(ValueNull))
	case bool:
		e.WriteByte(byte(ValueBool))
		e.WriteBool(val)
	case int:
		e.WriteByte(byte(ValueInt))
		e.WriteSvarint(int64(val))
	case int32:
		e.WriteByte(byte(ValueInt))
		e.WriteSvarint(int64(val))
	case int64:
		e.WriteByte(byte(ValueInt))
		e.WriteSvarint(val)
	case float32:
		e.WriteByte(byte(ValueFloat))
		e.WriteFloat64(float64(val))
	case float64:
		e.WriteByte(byte(ValueFloat))
		e.WriteFloat64(val)
	case string:
		e.WriteByte(byte(ValueString))
		e.WriteString(val)
	default:
		e.WriteByte(byte(ValueString))
		e.WriteString(fmt.Sprint(val))
	}
}

// ReadValue reads a tagged value as nil, bool, int64, float64 or string.
func (d *Decoder) ReadValue() (any, error) {
	tag, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	switch ValueType(tag) {
	case ValueNull:
		return nil, nil
	case ValueBool:
		return d.ReadBool()
	case ValueInt:
		return d.ReadSvarint()
	case ValueFloat:
		return d.ReadFloat64()
	case ValueString:
		return d.ReadString()
	default:
		return nil, fmt.Errorf("%w: 0x%02x", ErrInvalidValueType, tag)
	}
}
