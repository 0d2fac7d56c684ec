package notify

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"rocketshoes/internal/domain"
	"rocketshoes/internal/service/cart"
)

type recordingSink struct {
	messages []string
}

func (r *recordingSink) Error(message string) {
	r.messages = append(r.messages, message)
}

func TestMessage(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"add lookup", &cart.OpError{Op: cart.OpAdd, Err: domain.ErrUpstream}, MsgAddFailed},
		{"add persist", &cart.OpError{Op: cart.OpAdd, Err: errors.New("disk full")}, MsgAddFailed},
		{"remove missing", &cart.OpError{Op: cart.OpRemove, Err: domain.ErrNotFound}, MsgRemoveFailed},
		{"update invalid", &cart.OpError{Op: cart.OpUpdateAmount, Err: domain.ErrInvalidQuantity}, MsgUpdateFailed},
		{"update upstream", &cart.OpError{Op: cart.OpUpdateAmount, Err: domain.ErrUpstream}, MsgUpdateFailed},
		{"out of stock", &cart.OpError{Op: cart.OpUpdateAmount, Err: domain.ErrInsufficientStock}, MsgOutOfStock},
		{"wrapped", fmt.Errorf("cli: %w", &cart.OpError{Op: cart.OpRemove, Err: domain.ErrNotFound}), MsgRemoveFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Message(tc.err); got != tc.want {
				t.Fatalf("Message() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestReporter_OneMessagePerFailure(t *testing.T) {
	sink := &recordingSink{}
	r := NewReporter(sink)

	if err := r.Report(nil); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(sink.messages) != 0 {
		t.Fatalf("success must not notify, got %v", sink.messages)
	}

	in := &cart.OpError{Op: cart.OpAdd, ProductID: 5, Err: domain.ErrUpstream}
	if err := r.Report(in); err != in {
		t.Fatalf("expected error returned unchanged")
	}
	if len(sink.messages) != 1 || sink.messages[0] != MsgAddFailed {
		t.Fatalf("unexpected messages %v", sink.messages)
	}
}

func TestSinks(t *testing.T) {
	var buf bytes.Buffer
	core, logs := observer.New(zap.ErrorLevel)
	sink := Multi{NewWriterSink(&buf), NewLogSink(zap.New(core))}

	sink.Error(MsgRemoveFailed)

	if buf.String() != "✖ "+MsgRemoveFailed+"\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
	entries := logs.All()
	if len(entries) != 1 || entries[0].ContextMap()["message"] != MsgRemoveFailed {
		t.Fatalf("unexpected log entries %+v", entries)
	}
}
