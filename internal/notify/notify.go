// Package notify turns cart operation results into user-facing messages.
package notify

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"rocketshoes/internal/domain"
	"rocketshoes/internal/service/cart"
)

// User-facing messages, one per failure.
const (
	MsgOutOfStock   = "Quantidade solicitada fora de estoque"
	MsgAddFailed    = "Erro na adição do produto"
	MsgRemoveFailed = "Erro na remoção do produto"
	MsgUpdateFailed = "Erro na alteração de quantidade do produto"
)

// Sink receives error messages for display. Implementations must not block.
type Sink interface {
	Error(message string)
}

// Message maps a cart operation error to its user-facing message. It returns
// "" for a nil error.
func Message(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, domain.ErrInsufficientStock) {
		return MsgOutOfStock
	}
	var opErr *cart.OpError
	if errors.As(err, &opErr) {
		switch opErr.Op {
		case cart.OpAdd:
			return MsgAddFailed
		case cart.OpRemove:
			return MsgRemoveFailed
		case cart.OpUpdateAmount:
			return MsgUpdateFailed
		}
	}
	return MsgUpdateFailed
}

// Reporter forwards exactly one message to the sink for every failed result.
type Reporter struct {
	sink Sink
}

func NewReporter(sink Sink) *Reporter {
	return &Reporter{sink: sink}
}

// Report emits the message for err, if any, and returns err unchanged.
func (r *Reporter) Report(err error) error {
	if msg := Message(err); msg != "" {
		r.sink.Error(msg)
	}
	return err
}

// WriterSink prints messages as lines to w.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Error(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "✖ %s\n", message)
}

// LogSink records messages through a zap logger.
type LogSink struct {
	logger *zap.Logger
}

func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Error(message string) {
	s.logger.Error("notification", zap.String("message", message))
}

// Multi fans a message out to several sinks.
type Multi []Sink

func (m Multi) Error(message string) {
	for _, s := range m {
		s.Error(message)
	}
}
