// Package experiment implements the flash test experiment: a finite
// state machine sequencing erase, program, and verify over a serial
// NOR flash one scheduler cycle at a time, projecting progress onto
// the LED, display, and console sinks.
package experiment

import (
	"sync/atomic"

	"github.com/benchkit/sftest.go/pkg/cls"
	"github.com/benchkit/sftest.go/pkg/console"
	"github.com/benchkit/sftest.go/pkg/flash"
	fx "github.com/benchkit/sftest.go/pkg/framework"
	"github.com/benchkit/sftest.go/pkg/input"
	"github.com/benchkit/sftest.go/pkg/leds"
	"github.com/benchkit/sftest.go/pkg/telemetry"
)

// Controller owns the experiment state and drives it through the
// scheduler loop. It is the only component with cross-cutting state;
// the sinks are reached through one-way queues and never block it.
type Controller struct {
	State  *State
	Device flash.Device

	Leds    *leds.Sink
	Display *cls.Sink
	Console *console.Sink

	Inputs input.Source

	// Telemetry is optional; nil disables publishing.
	Telemetry *telemetry.Sink

	sim      *input.SimSource
	ledState [leds.NumSlots]leds.Update
	latest   atomic.Value
}

// NewController creates a Controller in the power-on state.
func NewController(dev flash.Device, src input.Source,
	ledSink *leds.Sink, displaySink *cls.Sink, consoleSink *console.Sink) *Controller {
	c := &Controller{
		State:   NewState(),
		Device:  dev,
		Leds:    ledSink,
		Display: displaySink,
		Console: consoleSink,
		Inputs:  src,
	}
	c.sim, _ = src.(*input.SimSource)
	c.latest.Store(c.State.snapshot())
	return c
}

// Name implements Named.
func (c *Controller) Name() string { return "experiment" }

// AddToLoop implements LoopAdder. Registration realizes the cycle
// order: render projections first (observing state latched by the
// previous cycle), then input sampling, one FSM step, and timer
// advancement. The loop interval is the cycle sleep.
func (c *Controller) AddToLoop(l *fx.Loop) {
	l.AddController(fx.PrLvRender,
		fx.ControlFunc(c.renderModeLeds),
		fx.ControlFunc(c.renderStatusLeds),
		fx.ControlFunc(c.renderProgress))
	l.AddController(fx.PrLvSense, fx.ControlFunc(c.sampleInputs))
	l.AddController(fx.PrLvControl, fx.ControlFunc(c.stepFSM))
	l.AddController(fx.PrLvPostProc, fx.ControlFunc(c.advanceTimers))
}

// Latest returns the most recently latched state snapshot. It is safe
// to call from outside the loop (the operator shell does).
func (c *Controller) Latest() Snapshot {
	return c.latest.Load().(Snapshot)
}

func (c *Controller) stepFSM(fx.ControlContext) error {
	c.step()
	return nil
}

func (c *Controller) advanceTimers(fx.ControlContext) error {
	c.latchTimers()
	return nil
}

// latchTimers advances the mode-duration and free-run timers and
// latches the previous mode, once per cycle after the FSM step.
func (c *Controller) latchTimers() {
	s := c.State
	if s.Mode != s.PrevMode {
		s.TicksInMode = 0
	} else {
		s.TicksInMode = (s.TicksInMode + 1) % ModeTimeout
	}
	s.FreeRun = (s.FreeRun + 1) % ModeTimeout
	s.PrevMode = s.Mode
	c.latest.Store(s.snapshot())
}
