package protocol

import "errors"

// InputFrame reports a user interaction on a node.
//
// For input and change events Key names the property the user changed
// (value or checked) and Value carries its new content. For events such as
// click Key is empty.
type InputFrame struct {
	Seq    uint64
	Target uint64 // Node ID from the data-wid attribute
	Event  string // DOM event type, e.g. "input", "change", "click"
	Key    string
	Value  any
}

// ErrMissingEvent is returned when an input frame carries no event type.
var ErrMissingEvent = errors.New("protocol: input without event type")

// EncodeInput encodes an input frame to bytes.
func EncodeInput(in *InputFrame) []byte {
	e := NewEncoder()
	EncodeInputTo(e, in)
	return e.Bytes()
}

// EncodeInputTo encodes an input frame using the provided encoder.
func EncodeInputTo(e *Encoder, in *InputFrame) {
	e.WriteUvarint(in.Seq)
	e.WriteUvarint(in.Target)
	e.WriteString(in.Event)
	e.WriteString(in.Key)
	e.WriteValue(in.Value)
}

// DecodeInput decodes an input frame from bytes.
func DecodeInput(data []byte) (*InputFrame, error) {
	d := NewDecoder(data)
	in := &InputFrame{}
	var err error
	if in.Seq, err = d.ReadUvarint(); err != nil {
		return nil, err
	}
	if in.Target, err = d.ReadUvarint(); err != nil {
		return nil, err
	}
	if in.Event, err = d.ReadString(); err != nil {
		return nil, err
	}
	if in.Event == "" {
		return nil, ErrMissingEvent
	}
	if in.Key, err = d.ReadString(); err != nil {
		return nil, err
	}
	if in.Value, err = d.ReadValue(); err != nil {
		return nil, err
	}
	return in, nil
}
