// Package protocol implements the binary wire format spoken on the live
// WebSocket between a weave server and the browser.
//
// The server streams the write log of each update pass as a PatchesFrame;
// the browser answers with InputFrames when the user types, toggles or
// clicks. Nodes are addressed by the IDs the renderer writes into the
// data-wid attribute.
//
// # Wire Format
//
// All messages are framed with a 4-byte header:
//
//	+------+-------+----------------+---------
//	| type | flags | length (BE16)  | payload
//	+------+-------+----------------+---------
//
// # Frame Types
//
//   - FrameInput (0x01): Client → Server input
//   - FramePatches (0x02): Server → Client patches
//   - FrameControl (0x03): Ping, pong and close
//   - FrameError (0x05): Error message
//
// # Encoding
//
//   - Varint: Compact encoding for small integers (protobuf-style)
//   - ZigZag: Signed integers encoded as unsigned varints
//   - Length-prefixed: Strings prefixed with varint length
//   - Tagged values: one type byte followed by the value
//
// # Patches
//
// A patch carries its op, the target node ID, the parent ID and the child
// index of the target, then op-specific data. Elements are looked up by ID;
// text and comment nodes by parent and index. Inserts carry the rendered
// HTML of the inserted subtree:
//
//	[Op: 0x04][Target: varint][Parent: varint][Index: varint][HTML: len-prefixed]
//
// # Usage Example
//
//	pf := &PatchesFrame{Seq: 1, Patches: []Patch{{Op: PatchSetText, Target: 7, Value: "hi"}}}
//	frame := NewFrame(FramePatches, EncodePatches(pf))
//	err := WriteFrame(w, frame)
package protocol
