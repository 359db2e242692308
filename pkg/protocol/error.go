package protocol

// ErrorCode classifies an error frame.
type ErrorCode uint16

const (
	ErrUnknown      ErrorCode = 0x0000
	ErrInvalidFrame ErrorCode = 0x0001
	ErrInvalidInput ErrorCode = 0x0002
	// ErrNodeNotFound answers input aimed at a node that is no longer live.
	ErrNodeNotFound ErrorCode = 0x0003
	ErrServerError  ErrorCode = 0x0100
)

var errorCodeNames = map[ErrorCode]string{
	ErrInvalidFrame: "InvalidFrame",
	ErrInvalidInput: "InvalidInput",
	ErrNodeNotFound: "NodeNotFound",
	ErrServerError:  "ServerError",
}

func (ec ErrorCode) String() string {
	if name, ok := errorCodeNames[ec]; ok {
		return name
	}
	return "Unknown"
}

// ErrorMessage is the payload of an error frame. The connection stays open
// unless Fatal is set.
type ErrorMessage struct {
	Code    ErrorCode
	Message string
	Fatal   bool
}

func NewError(code ErrorCode, message string) *ErrorMessage {
	return &ErrorMessage{Code: code, Message: message}
}

func (em *ErrorMessage) Error() string {
	s := em.Code.String() + ": " + em.Message
	if em.Fatal {
		return "fatal: " + s
	}
	return s
}

func EncodeErrorMessage(em *ErrorMessage) []byte {
	e := NewEncoder()
	e.WriteUint16(uint16(em.Code))
	e.WriteString(em.Message)
	e.WriteBool(em.Fatal)
	return e.Bytes()
}

func DecodeErrorMessage(data []byte) (*ErrorMessage, error) {
	d := NewDecoder(data)
	em := &ErrorMessage{}
	code, err := d.ReadUint16()
	if err != nil {
		return nil, err
	}
	em.Code = ErrorCode(code)
	if em.Message, err = d.ReadString(); err != nil {
		return nil, err
	}
	if em.Fatal, err = d.ReadBool(); err != nil {
		return nil, err
	}
	return em, nil
}
