package protocol

import (
	"errors"
	"fmt"

	"github.com/vango-dev/weave/pkg/dom"
)

// PatchOp is the type of patch operation. Values match dom.PatchOp.
type PatchOp uint8

const (
	PatchSetText     PatchOp = 0x01 // Update text content
	PatchSetAttr     PatchOp = 0x02 // Set attribute
	PatchRemoveAttr  PatchOp = 0x03 // Remove attribute
	PatchInsertNode  PatchOp = 0x04 // Insert rendered subtree
	PatchRemoveNode  PatchOp = 0x05 // Remove node
	PatchMoveNode    PatchOp = 0x06 // Move node
	PatchSetProp     PatchOp = 0x07 // Set generic property
	PatchSetValue    PatchOp = 0x08 // Set input value
	PatchSetChecked  PatchOp = 0x09 // Set checkbox checked
	PatchAddClass    PatchOp = 0x10 // Add CSS class
	PatchRemoveClass PatchOp = 0x11 // Remove CSS class
	PatchSetStyle    PatchOp = 0x13 // Set style property
	PatchRemoveStyle PatchOp = 0x14 // Remove style property
)

// String returns the string representation of the patch operation.
func (op PatchOp) String() string {
	return dom.PatchOp(op).String()
}

// Patch is the wire form of one write. Elements are found by Target; text
// and comment nodes, which carry no ID attribute, by Parent and Index.
type Patch struct {
	Op        PatchOp
	Target    uint64 // Target node ID
	Parent    uint64 // Parent node ID
	Index     int    // Child index of Target within Parent
	From      uint64 // Previous parent for MoveNode
	FromIndex int    // Previous child index for MoveNode
	Key       string // Attribute/property/style/class key
	Value     any    // Text, attribute, style or property value
	HTML      string // Rendered subtree for InsertNode
}

// FromDOM converts a write log entry. html renders the inserted subtree of
// an InsertNode patch.
func FromDOM(p dom.Patch, html func(*dom.Node) string) Patch {
	out := Patch{
		Op:     PatchOp(p.Op),
		Target: p.Target,
		Parent: p.Parent,
		Index:  p.Index,
		Key:    p.Key,
		Value:  p.Value,
	}
	switch p.Op {
	case dom.PatchInsertNode:
		if html != nil && p.Node != nil {
			out.HTML = html(p.Node)
		}
	case dom.PatchMoveNode:
		out.From, out.FromIndex = p.From, p.FromIndex
	}
	return out
}

// PatchesFrame is the batch of patches produced by one update pass.
type PatchesFrame struct {
	Seq     uint64
	Patches []Patch
}

// EncodePatches encodes a patches frame to bytes.
func EncodePatches(pf *PatchesFrame) []byte {
	e := NewEncoder()
	EncodePatchesTo(e, pf)
	return e.Bytes()
}

// EncodePatchesTo encodes a patches frame using the provided encoder.
func EncodePatchesTo(e *Encoder, pf *PatchesFrame) {
	e.WriteUvarint(pf.Seq)
	e.WriteUvarint(uint64(len(pf.Patches)))
	for i := range pf.Patches {
		encodePatch(e, &pf.Patches[i])
	}
}

// ErrPatchTooLarge is returned when a single encoded patch cannot fit in
// one frame.
var ErrPatchTooLarge = errors.New("protocol: patch exceeds frame payload limit")

// EncodePatchFrames encodes the patches of one pass into frames whose
// payloads stay within MaxPayloadSize. Every frame carries seq and is
// flagged FlagSequenced; the last one is also flagged FlagFinal.
func EncodePatchFrames(seq uint64, patches []Patch) ([]*Frame, error) {
	header := UvarintLen(seq) + MaxVarintLen
	scratch := NewEncoder()

	var (
		frames []*Frame
		chunk  [][]byte
		size   int
	)
	emit := func() {
		e := NewEncoder()
		e.WriteUvarint(seq)
		e.WriteUvarint(uint64(len(chunk)))
		for _, b := range chunk {
			e.WriteBytes(b)
		}
		frames = append(frames, &Frame{Type: FramePatches, Flags: FlagSequenced, Payload: e.Bytes()})
		chunk, size = nil, 0
	}

	for i := range patches {
		scratch.Reset()
		encodePatch(scratch, &patches[i])
		b := append([]byte(nil), scratch.Bytes()...)
		if header+len(b) > MaxPayloadSize {
			return nil, fmt.Errorf("patch %d (%s): %w", i, patches[i].Op, ErrPatchTooLarge)
		}
		if header+size+len(b) > MaxPayloadSize {
			emit()
		}
		chunk = append(chunk, b)
		size += len(b)
	}
	if len(chunk) > 0 || len(frames) == 0 {
		emit()
	}
	frames[len(frames)-1].Flags |= FlagFinal
	return frames, nil
}

func encodePatch(e *Encoder, p *Patch) {
	e.WriteByte(byte(p.Op))
	e.WriteUvarint(p.Target)
	e.WriteUvarint(p.Parent)
	e.WriteUvarint(uint64(p.Index))

	switch p.Op {
	case PatchSetText:
		e.WriteString(stringValue(p.Value))

	case PatchSetAttr, PatchSetStyle:
		e.WriteString(p.Key)
		e.WriteString(stringValue(p.Value))

	case PatchRemoveAttr, PatchRemoveStyle, PatchAddClass, PatchRemoveClass:
		e.WriteString(p.Key)

	case PatchInsertNode:
		e.WriteString(p.HTML)

	case PatchRemoveNode:
		// Target is sufficient

	case PatchMoveNode:
		e.WriteUvarint(p.From)
		e.WriteUvarint(uint64(p.FromIndex))

	case PatchSetProp:
		e.WriteString(p.Key)
		e.WriteValue(p.Value)

	case PatchSetValue, PatchSetChecked:
		e.WriteValue(p.Value)
	}
}

func stringValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

// DecodePatches decodes a patches frame from bytes.
func DecodePatches(data []byte) (*PatchesFrame, error) {
	return DecodePatchesFrom(NewDecoder(data))
}

// DecodePatchesFrom decodes a patches frame from a decoder.
func DecodePatchesFrom(d *Decoder) (*PatchesFrame, error) {
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}
	count, err := d.ReadCollectionCount()
	if err != nil {
		return nil, err
	}

	patches := make([]Patch, count)
	for i := range patches {
		if err := decodePatch(d, &patches[i]); err != nil {
			return nil, fmt.Errorf("patch %d: %w", i, err)
		}
	}
	return &PatchesFrame{Seq: seq, Patches: patches}, nil
}

func decodePatch(d *Decoder, p *Patch) error {
	opByte, err := d.ReadByte()
	if err != nil {
		return err
	}
	p.Op = PatchOp(opByte)

	if p.Target, err = d.ReadUvarint(); err != nil {
		return err
	}
	if p.Parent, err = d.ReadUvarint(); err != nil {
		return err
	}
	if p.Index, err = readIndex(d); err != nil {
		return err
	}

	switch p.Op {
	case PatchSetText:
		p.Value, err = d.ReadString()

	case PatchSetAttr, PatchSetStyle:
		if p.Key, err = d.ReadString(); err != nil {
			return err
		}
		p.Value, err = d.ReadString()

	case PatchRemoveAttr, PatchRemoveStyle, PatchAddClass, PatchRemoveClass:
		p.Key, err = d.ReadString()

	case PatchInsertNode:
		p.HTML, err = d.ReadString()

	case PatchRemoveNode:

	case PatchMoveNode:
		if p.From, err = d.ReadUvarint(); err != nil {
			return err
		}
		p.FromIndex, err = readIndex(d)

	case PatchSetProp:
		if p.Key, err = d.ReadString(); err != nil {
			return err
		}
		p.Value, err = d.ReadValue()

	case PatchSetValue, PatchSetChecked:
		p.Value, err = d.ReadValue()

	default:
		return fmt.Errorf("protocol: unknown patch op 0x%02x", opByte)
	}
	return err
}

func readIndex(d *Decoder) (int, error) {
	v, err := d.ReadUvarint()
	if err != nil {
		return 0, err
	}
	if v > MaxCollectionCount {
		return 0, ErrCollectionTooLarge
	}
	return int(v), nil
}
