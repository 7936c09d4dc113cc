package mailer

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type fakeSender struct {
	mu   sync.Mutex
	sent []Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return f.err
}

func (f *fakeSender) messages() []Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Message(nil), f.sent...)
}

func TestDispatcherDeliversQueuedMessages(t *testing.T) {
	sender := &fakeSender{}
	d := NewDispatcher(sender, 8)

	d.Enqueue("guest@x.com", "booking successful!", "body one")
	d.Enqueue("host@x.com", "Your Coffee got ordered!", "body two")
	d.Close()

	sent := sender.messages()
	if len(sent) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(sent))
	}
	if sent[0].To != "guest@x.com" || sent[1].To != "host@x.com" {
		t.Fatalf("unexpected delivery order: %v", sent)
	}
}

func TestDispatcherSenderFailureDoesNotPropagate(t *testing.T) {
	sender := &fakeSender{err: errors.New("relay down")}
	d := NewDispatcher(sender, 8)

	// Enqueue must stay fire-and-forget even when every send fails.
	d.Enqueue("guest@x.com", "subject", "body")
	d.Close()

	if len(sender.messages()) != 1 {
		t.Fatal("expected one send attempt despite the failure")
	}
}

func TestEnqueueAfterCloseDrops(t *testing.T) {
	sender := &fakeSender{}
	d := NewDispatcher(sender, 8)
	d.Close()

	d.Enqueue("late@x.com", "subject", "body")

	if len(sender.messages()) != 0 {
		t.Fatal("expected no delivery after close")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	d := NewDispatcher(&fakeSender{}, 8)
	d.Close()
	d.Close()
}
