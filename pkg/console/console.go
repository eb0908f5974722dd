// Package console hosts the serial-console sink task: short strings
// in, one printed line per message out.
package console

import (
	"context"
	"fmt"
	"io"
)

// QueueCap is the console queue depth.
const QueueCap = 4

// BufSize bounds one console message, terminator included.
const BufSize = 34

// Sink receives strings and prints them with a trailing newline.
type Sink struct {
	w  io.Writer
	ch chan string
}

// NewSink creates a Sink over a writer.
func NewSink(w io.Writer) *Sink {
	return &Sink{w: w, ch: make(chan string, QueueCap)}
}

// Name implements Named.
func (s *Sink) Name() string { return "console" }

// Chan exposes the event queue.
func (s *Sink) Chan() <-chan string { return s.ch }

// Send enqueues a message without waiting, truncating to BufSize-1
// characters. It reports false if the queue is full and the message
// was dropped.
func (s *Sink) Send(msg string) bool {
	if len(msg) > BufSize-1 {
		msg = msg[:BufSize-1]
	}
	select {
	case s.ch <- msg:
		return true
	default:
		return false
	}
}

// Run implements Runnable.
func (s *Sink) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-s.ch:
			if _, err := fmt.Fprintf(s.w, "%s\n", msg); err != nil {
				return err
			}
		}
	}
}
