package server

import (
	"fmt"

	werrors "github.com/vango-dev/weave/internal/errors"
	"github.com/vango-dev/weave/pkg/dom"
	"github.com/vango-dev/weave/pkg/protocol"
)

// StaleMessage is the close message telling a client its copy of the page
// cannot be caught up and must be reloaded.
const StaleMessage = "stale"

// attach registers c after catching it up from resume. Runs on the loop.
func (s *Server) attach(c *conn, resume uint64, hasSeq bool) {
	if hasSeq && resume != s.seq {
		frames, ok := s.history.Since(resume)
		if resume > s.seq || !ok {
			s.metrics.resync("stale")
			s.logger.Debug("client too far behind", "client_seq", resume, "seq", s.seq)
			c.closeWith(protocol.CloseError, StaleMessage)
			return
		}
		for _, f := range frames {
			if !c.enqueue(f) {
				s.metrics.dropped()
				c.closeWith(protocol.CloseError, StaleMessage)
				return
			}
		}
		s.metrics.resync("replayed")
	}
	s.conns[c] = struct{}{}
	s.metrics.connOpened()
	s.logger.Debug("client attached", "seq", s.seq, "connections", len(s.conns))
}

// detach forgets c. Runs on the loop.
func (s *Server) detach(c *conn) {
	if _, ok := s.conns[c]; !ok {
		return
	}
	delete(s.conns, c)
	s.metrics.connClosed()
}

// broadcast sends the writes recorded since the last broadcast as one
// sequenced pass. Runs on the loop, after every update pass and after input.
func (s *Server) broadcast() error {
	if len(s.pending) == 0 {
		return nil
	}
	patches := s.pending
	s.pending = nil

	s.seq++
	frames, err := protocol.EncodePatchFrames(s.seq, patches)
	if err != nil {
		// Clients can no longer follow the document.
		s.history.Clear(s.seq)
		for c := range s.conns {
			c.closeWith(protocol.CloseError, StaleMessage)
			s.detach(c)
		}
		return werrors.New("W304").Wrap(fmt.Errorf("pass %d: %w", s.seq, err))
	}

	encoded := make([][]byte, len(frames))
	size := 0
	for i, f := range frames {
		encoded[i] = f.Encode()
		size += len(encoded[i])
	}
	s.history.Add(s.seq, encoded)

	for c := range s.conns {
		for _, f := range encoded {
			if !c.enqueue(f) {
				s.logger.Warn("dropping slow client", "seq", s.seq)
				s.metrics.dropped()
				c.close()
				s.detach(c)
				break
			}
		}
		s.metrics.sent(len(encoded), size)
	}
	return nil
}

// handleInput applies one input frame to the document. Runs on the loop.
func (s *Server) handleInput(c *conn, in *protocol.InputFrame) {
	n := s.page.Root.Document().NodeByID(in.Target)
	if n == nil {
		s.metrics.input("unknown_node")
		c.sendError(protocol.ErrNodeNotFound, fmt.Sprintf("node %d not found", in.Target))
		return
	}
	switch in.Key {
	case "", "value", "checked":
	default:
		s.metrics.input("invalid_key")
		c.sendError(protocol.ErrInvalidInput, fmt.Sprintf("input key %q is not writable", in.Key))
		return
	}

	defer func() {
		if r := recover(); r != nil {
			s.metrics.input("panic")
			s.logger.Error("input handler panicked", "node", in.Target, "event", in.Event, "panic", r)
			c.sendError(protocol.ErrServerError, "input handler failed")
		}
		if err := s.broadcast(); err != nil {
			s.logger.Error("broadcast failed", "error", err)
		}
	}()

	if in.Key != "" {
		n.ApplyInput(in.Key, in.Value, in.Event)
	} else {
		n.Dispatch(dom.NewEvent(in.Event))
	}
	s.metrics.input("applied")
}
