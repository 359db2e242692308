package server

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/weave/pkg/protocol"
)

// conn is one browser attached to the live endpoint. The read and write
// loops run on their own goroutines; input is handed to the frame loop.
type conn struct {
	s    *Server
	ws   *websocket.Conn
	send chan []byte
	done chan struct{}

	closeOnce sync.Once
}

func newConn(s *Server, ws *websocket.Conn) *conn {
	return &conn{
		s:    s,
		ws:   ws,
		send: make(chan []byte, s.config.SendQueue),
		done: make(chan struct{}),
	}
}

// enqueue queues an encoded frame. It reports false when the queue is full.
func (c *conn) enqueue(frame []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

// close stops the write loop after it flushed what is queued.
func (c *conn) close() {
	c.closeOnce.Do(func() { close(c.done) })
}

// closeWith queues a close control frame and closes the connection.
func (c *conn) closeWith(reason protocol.CloseReason, message string) {
	ctrl := &protocol.Control{Type: protocol.ControlClose, Reason: reason, Message: message}
	c.enqueue(protocol.NewFrame(protocol.FrameControl, protocol.EncodeControl(ctrl)).Encode())
	c.close()
}

func (c *conn) sendError(code protocol.ErrorCode, message string) {
	em := protocol.NewError(code, message)
	c.enqueue(protocol.NewFrame(protocol.FrameError, protocol.EncodeErrorMessage(em)).Encode())
}

func (c *conn) write(frame []byte) error {
	_ = c.ws.SetWriteDeadline(time.Now().Add(c.s.config.WriteTimeout))
	return c.ws.WriteMessage(websocket.BinaryMessage, frame)
}

func (c *conn) writeLoop() {
	ticker := time.NewTicker(c.s.config.PingInterval)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()

	for {
		select {
		case frame := <-c.send:
			if err := c.write(frame); err != nil {
				c.s.logger.Debug("write failed", "error", err)
				c.close()
				return
			}
		case <-ticker.C:
			ping := &protocol.Control{Type: protocol.ControlPing, Timestamp: uint64(time.Now().UnixMilli())}
			if err := c.write(protocol.NewFrame(protocol.FrameControl, protocol.EncodeControl(ping)).Encode()); err != nil {
				c.close()
				return
			}
		case <-c.done:
			for {
				select {
				case frame := <-c.send:
					if c.write(frame) != nil {
						return
					}
				default:
					_ = c.ws.WriteControl(websocket.CloseMessage,
						websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
						time.Now().Add(c.s.config.WriteTimeout))
					return
				}
			}
		}
	}
}

func (c *conn) readLoop() {
	defer func() {
		c.close()
		c.s.loop.Post(func() { c.s.detach(c) })
	}()

	c.ws.SetReadLimit(c.s.config.MaxMessageSize)
	deadline := 2 * c.s.config.PingInterval
	_ = c.ws.SetReadDeadline(time.Now().Add(deadline))

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.s.logger.Debug("read failed", "error", err)
			}
			return
		}
		_ = c.ws.SetReadDeadline(time.Now().Add(deadline))

		f, err := protocol.DecodeFrame(data)
		if err != nil {
			c.s.metrics.input("invalid")
			c.sendError(protocol.ErrInvalidFrame, err.Error())
			continue
		}

		switch f.Type {
		case protocol.FrameInput:
			in, err := protocol.DecodeInput(f.Payload)
			if err != nil {
				c.s.metrics.input("invalid")
				c.sendError(protocol.ErrInvalidInput, err.Error())
				continue
			}
			c.s.loop.Post(func() { c.s.handleInput(c, in) })

		case protocol.FrameControl:
			ctrl, err := protocol.DecodeControl(f.Payload)
			if err != nil {
				c.sendError(protocol.ErrInvalidFrame, err.Error())
				continue
			}
			switch ctrl.Type {
			case protocol.ControlPing:
				c.enqueue(protocol.NewFrame(protocol.FrameControl, protocol.EncodeControl(protocol.NewPong(ctrl))).Encode())
			case protocol.ControlClose:
				return
			}

		default:
			c.sendError(protocol.ErrInvalidFrame, "unexpected "+f.Type.String()+" frame")
		}
	}
}
