// Package cls drives a 16x2 character LCD and hosts the sink task
// that applies two-line text update events.
package cls

import (
	"context"
	"fmt"
	"io"
)

// QueueCap is the display update queue depth.
const QueueCap = 4

// LineLen is the character width of one display line.
const LineLen = 16

// Lines is a two-line text update. Both lines empty clears the display.
type Lines struct {
	Line1 string
	Line2 string
}

// TextDisplay is the dot-matrix display driver seam.
type TextDisplay interface {
	Clear() error
	// WriteAt writes s starting at the given row (0 or 1), column 0.
	WriteAt(row int, s string) error
}

// Sink receives Lines and applies them to the display.
type Sink struct {
	display TextDisplay
	ch      chan Lines
}

// NewSink creates a Sink over a display.
func NewSink(d TextDisplay) *Sink {
	return &Sink{display: d, ch: make(chan Lines, QueueCap)}
}

// Name implements Named.
func (s *Sink) Name() string { return "cls" }

// Chan exposes the event queue.
func (s *Sink) Chan() <-chan Lines { return s.ch }

// Send enqueues an update without waiting. It reports false if the
// queue is full and the update was dropped.
func (s *Sink) Send(l Lines) bool {
	select {
	case s.ch <- l:
		return true
	default:
		return false
	}
}

// Run implements Runnable.
func (s *Sink) Run(ctx context.Context) error {
	if err := s.display.Clear(); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l := <-s.ch:
			if err := s.apply(l); err != nil {
				return err
			}
		}
	}
}

func (s *Sink) apply(l Lines) error {
	if err := s.display.Clear(); err != nil {
		return err
	}
	if l.Line1 == "" && l.Line2 == "" {
		return nil
	}
	if err := s.display.WriteAt(0, clip(l.Line1)); err != nil {
		return err
	}
	return s.display.WriteAt(1, clip(l.Line2))
}

func clip(s string) string {
	if len(s) > LineLen {
		return s[:LineLen]
	}
	return s
}

// WriterDisplay renders display updates as text lines on a writer,
// standing in for the LCD in host-side simulation.
type WriterDisplay struct {
	W io.Writer
}

// Clear implements TextDisplay.
func (d *WriterDisplay) Clear() error { return nil }

// WriteAt implements TextDisplay.
func (d *WriterDisplay) WriteAt(row int, s string) error {
	_, err := fmt.Fprintf(d.W, "cls%d| %s\n", row, s)
	return err
}
