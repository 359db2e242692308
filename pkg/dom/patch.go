package dom

// PatchOp is the type of a platform write.
type PatchOp uint8

const (
	PatchSetText     PatchOp = 0x01 // Update text node data
	PatchSetAttr     PatchOp = 0x02 // Set/update attribute
	PatchRemoveAttr  PatchOp = 0x03 // Remove attribute
	PatchInsertNode  PatchOp = 0x04 // Insert new node
	PatchRemoveNode  PatchOp = 0x05 // Remove node
	PatchMoveNode    PatchOp = 0x06 // Move node to new position
	PatchSetProp     PatchOp = 0x07 // Set generic property
	PatchSetValue    PatchOp = 0x08 // Set input value
	PatchSetChecked  PatchOp = 0x09 // Set checkbox checked
	PatchAddClass    PatchOp = 0x10 // Add class token
	PatchRemoveClass PatchOp = 0x11 // Remove class token
	PatchSetStyle    PatchOp = 0x13 // Set style property
	PatchRemoveStyle PatchOp = 0x14 // Remove style property
)

// String returns the string representation of the PatchOp.
func (op PatchOp) String() string {
	switch op {
	case PatchSetText:
		return "SetText"
	case PatchSetAttr:
		return "SetAttr"
	case PatchRemoveAttr:
		return "RemoveAttr"
	case PatchInsertNode:
		return "InsertNode"
	case PatchRemoveNode:
		return "RemoveNode"
	case PatchMoveNode:
		return "MoveNode"
	case PatchSetProp:
		return "SetProp"
	case PatchSetValue:
		return "SetValue"
	case PatchSetChecked:
		return "SetChecked"
	case PatchAddClass:
		return "AddClass"
	case PatchRemoveClass:
		return "RemoveClass"
	case PatchSetStyle:
		return "SetStyle"
	case PatchRemoveStyle:
		return "RemoveStyle"
	default:
		return "Unknown"
	}
}

// IsStructural reports whether the op changes the shape of the tree.
func (op PatchOp) IsStructural() bool {
	return op == PatchInsertNode || op == PatchRemoveNode || op == PatchMoveNode
}

// Patch describes a single write applied to a connected node.
type Patch struct {
	Op        PatchOp
	Target    uint64 // ID of the written node
	Parent    uint64 // ID of the parent of Target
	Before    uint64 // Reference sibling ID for InsertNode/MoveNode, 0 appends
	Index     int    // Child index of Target within its parent
	From      uint64 // Previous parent ID for MoveNode
	FromIndex int    // Previous child index for MoveNode
	Key       string // Attribute/property/style/class key
	Value     any    // New value
	Node      *Node  // The node itself, for InsertNode/MoveNode
}
