package protocol

import "fmt"

// ControlType selects the body of a control frame.
type ControlType uint8

const (
	ControlPing  ControlType = 0x01
	ControlPong  ControlType = 0x02
	ControlClose ControlType = 0x20
)

func (ct ControlType) String() string {
	switch ct {
	case ControlPing:
		return "Ping"
	case ControlPong:
		return "Pong"
	case ControlClose:
		return "Close"
	}
	return "Unknown"
}

// CloseReason travels with ControlClose.
type CloseReason uint8

const (
	CloseNormal         CloseReason = 0x00
	CloseGoingAway      CloseReason = 0x01
	CloseServerShutdown CloseReason = 0x03
	// CloseError carries a message; "stale" asks the browser to reload.
	CloseError CloseReason = 0x04
)

func (cr CloseReason) String() string {
	switch cr {
	case CloseNormal:
		return "Normal"
	case CloseGoingAway:
		return "GoingAway"
	case CloseServerShutdown:
		return "ServerShutdown"
	case CloseError:
		return "Error"
	}
	return "Unknown"
}

// Control is a keepalive or close message. Pings and pongs carry a Unix
// millisecond timestamp; closes carry a reason and message.
type Control struct {
	Type      ControlType
	Timestamp uint64
	Reason    CloseReason
	Message   string
}

func EncodeControl(c *Control) []byte {
	e := NewEncoder()
	e.WriteByte(byte(c.Type))
	if c.Type == ControlClose {
		e.WriteByte(byte(c.Reason))
		e.WriteString(c.Message)
	} else {
		e.WriteUvarint(c.Timestamp)
	}
	return e.Bytes()
}

func DecodeControl(data []byte) (*Control, error) {
	d := NewDecoder(data)
	t, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	c := &Control{Type: ControlType(t)}
	switch c.Type {
	case ControlPing, ControlPong:
		if c.Timestamp, err = d.ReadUvarint(); err != nil {
			return nil, err
		}
	case ControlClose:
		reason, err := d.ReadByte()
		if err != nil {
			return nil, err
		}
		c.Reason = CloseReason(reason)
		if c.Message, err = d.ReadString(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("protocol: unknown control type 0x%02x", t)
	}
	return c, nil
}

// NewPong echoes the timestamp of ping.
func NewPong(ping *Control) *Control {
	return &Control{Type: ControlPong, Timestamp: ping.Timestamp}
}
