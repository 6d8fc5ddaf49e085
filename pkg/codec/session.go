package codec

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/nilium/snowball/internal/logger"
	"github.com/nilium/snowball/pkg/allocator"
	"github.com/nilium/snowball/pkg/stream"
	"github.com/nilium/snowball/pkg/wire"
)

type mode int

const (
	modeClosed mode = iota
	modeReader
	modeWriter
)

// session is the bind/open/close lifecycle shared by Writer and Reader: a
// stream may only be bound while closed, and every read/write operation
// requires the session to be open in the matching mode.
type session struct {
	ctx       context.Context
	stream    stream.Stream
	allocator allocator.Allocator
	mode      mode
	origin    int64
	id        string
}

func (s *session) bind(st stream.Stream) error {
	if s.mode != modeClosed {
		return ErrContextOpen
	}
	s.stream = st
	return nil
}

func (s *session) beginOpen() error {
	if s.mode != modeClosed {
		return ErrContextOpen
	}
	if s.stream == nil {
		return ErrInvalidStream
	}
	if s.ctx == nil {
		s.ctx = context.Background()
	}
	s.id = uuid.NewString()
	return nil
}

func (s *session) checkMode(want mode) error {
	if s.mode != want {
		return ErrContextClosed
	}
	return nil
}

// wrapStreamErr maps a pkg/wire or pkg/stream error onto the matching
// codec.Error, preserving the underlying error via errors.Is-compatible
// sentinels.
func wrapStreamErr(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, wire.ErrCannotRead):
		return ErrCannotRead
	case errors.Is(err, wire.ErrCannotWrite):
		return ErrCannotWrite
	case errors.Is(err, wire.ErrEOF):
		return ErrEOF
	default:
		return newErrorf(CodeInvalidStream, "%v", err)
	}
}

func asCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return int(e.Code)
	}
	return -1
}

func (s *session) logOpen(kind string) {
	logger.InfoCtx(s.ctx, "codec session opened",
		logger.SessionID(s.id),
		logger.StreamKind(kind),
	)
}

func (s *session) logClose(err error) {
	if err != nil {
		logger.WarnCtx(s.ctx, "codec session close failed",
			logger.SessionID(s.id),
			logger.Err(err),
			logger.ErrorCode(asCode(err)),
		)
		return
	}
	logger.InfoCtx(s.ctx, "codec session closed", logger.SessionID(s.id))
}
