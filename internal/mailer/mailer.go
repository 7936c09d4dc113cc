package mailer

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Message is one transactional email to deliver.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Sender delivers a single message. Implementations are expected to be safe
// for use from the dispatcher goroutine.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type job struct {
	id  string
	msg Message
}

// Dispatcher queues messages for background delivery. Enqueue never blocks
// and never reports failure to the caller: delivery is at-most-once,
// best-effort, with failures logged only.
type Dispatcher struct {
	sender  Sender
	jobs    chan job
	timeout time.Duration
	wg      sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

func NewDispatcher(sender Sender, queueSize int) *Dispatcher {
	if queueSize <= 0 {
		queueSize = 64
	}
	d := &Dispatcher{
		sender:  sender,
		jobs:    make(chan job, queueSize),
		timeout: 15 * time.Second,
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// Enqueue schedules a message for delivery. A full queue drops the message
// with a log line rather than blocking the request handler.
func (d *Dispatcher) Enqueue(to, subject, html string) {
	j := job{id: uuid.NewString(), msg: Message{To: to, Subject: subject, HTML: html}}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		log.Printf("[MAIL] [ERROR] job=%s dropped: dispatcher closed", j.id)
		return
	}

	select {
	case d.jobs <- j:
		log.Printf("[MAIL] [INFO] job=%s queued to=%s subject=%q", j.id, to, subject)
	default:
		log.Printf("[MAIL] [ERROR] job=%s dropped: queue full", j.id)
	}
}

// Close stops accepting messages and waits for queued ones to drain.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.jobs)
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Dispatcher) run() {
	defer d.wg.Done()
	for j := range d.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		if err := d.sender.Send(ctx, j.msg); err != nil {
			log.Printf("[MAIL] [ERROR] job=%s send failed: %v", j.id, err)
		} else {
			log.Printf("[MAIL] [INFO] job=%s sent to=%s", j.id, j.msg.To)
		}
		cancel()
	}
}
