package leds

import "context"

// QueueCap is the LED update queue depth.
const QueueCap = 10

// Update is a palette event for one LED slot. Slots 0-1 use the full
// RGB palette; slots 2-5 honor only Green as a 0/100 intensity.
type Update struct {
	Slot  uint8
	Red   uint8
	Green uint8
	Blue  uint8
}

// Sink receives Updates and applies them to the PWM bank. It is a
// fire-and-forget consumer: producers never block on it.
type Sink struct {
	bank *Bank
	ch   chan Update
}

// NewSink creates a Sink over a PWM bank.
func NewSink(bank *Bank) *Sink {
	return &Sink{bank: bank, ch: make(chan Update, QueueCap)}
}

// Name implements Named.
func (s *Sink) Name() string { return "leds" }

// Chan exposes the event queue.
func (s *Sink) Chan() <-chan Update { return s.ch }

// Send enqueues an update without waiting. It reports false if the
// queue is full and the update was dropped.
func (s *Sink) Send(u Update) bool {
	select {
	case s.ch <- u:
		return true
	default:
		return false
	}
}

// Run implements Runnable: block for an event, write registers, repeat.
func (s *Sink) Run(ctx context.Context) error {
	s.bank.InitAllOff()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case u := <-s.ch:
			if u.Slot < NumColorSlots {
				s.bank.SetRgbPalette(int(u.Slot), u.Red, u.Green, u.Blue)
			} else if u.Slot < NumSlots {
				s.bank.SetBasicPercent(int(u.Slot), u.Green)
			}
		}
	}
}
