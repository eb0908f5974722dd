package experiment

import (
	fx "github.com/benchkit/sftest.go/pkg/framework"
	"github.com/benchkit/sftest.go/pkg/leds"
)

func (c *Controller) setLed(slot int, red, green, blue uint8) {
	if slot < leds.NumSlots {
		c.ledState[slot] = leds.Update{Slot: uint8(slot), Red: red, Green: green, Blue: blue}
	}
}

func (c *Controller) sendLed(slot int) {
	if slot < leds.NumSlots {
		c.Leds.Send(c.ledState[slot])
	}
}

func onIf(cond bool) uint8 {
	if cond {
		return 0xFF
	}
	return 0
}

// renderModeLeds projects the operating mode onto the two selector
// color LEDs. The palette table is fixed per mode.
func (c *Controller) renderModeLeds(fx.ControlContext) error {
	s := c.State
	switch s.Mode {
	case ModeWaitButtonRel, ModeSetPattern, ModeSetStartAddr, ModeSetStartWait:
		c.setLed(0, 0, onIf(s.Pattern == PatternA), onIf(s.Pattern == PatternC))
		c.setLed(1, 0, onIf(s.Pattern == PatternB), onIf(s.Pattern == PatternD))
	case ModeCmdEraseStart:
		c.setLed(0, 0x80, 0x80, 0x80)
		c.setLed(1, 0, 0, 0)
	case ModeCmdEraseDone:
		c.setLed(0, 0x70, 0x10, 0x00)
		c.setLed(1, 0, 0, 0)
	case ModeCmdPageStart:
		c.setLed(0, 0, 0, 0)
		c.setLed(1, 0x80, 0x80, 0x80)
	case ModeCmdPageDone:
		c.setLed(0, 0, 0, 0)
		c.setLed(1, 0x70, 0x10, 0x00)
	case ModeCmdReadStart:
		c.setLed(0, 0, 0x80, 0x80)
		c.setLed(1, 0, 0, 0)
	case ModeCmdReadDone:
		c.setLed(0, 0x70, 0x10, 0x00)
		c.setLed(1, 0, 0, 0)
	case ModeDisplayFinal:
		c.setLed(0, 0, 0, 0)
		c.setLed(1, 0, 0x80, 0x80)
	default:
		// Idle: both selector LEDs red, waiting for a depress.
		c.setLed(0, 0xFF, 0, 0)
		c.setLed(1, 0xFF, 0, 0)
	}

	for slot := 0; slot < leds.NumColorSlots; slot++ {
		c.sendLed(slot)
	}
	return nil
}

// renderStatusLeds projects the pass/done latches onto the basic LEDs.
// Slots 4 and 5 are forced off.
func (c *Controller) renderStatusLeds(fx.ControlContext) error {
	s := c.State
	c.setLed(2, 0, percentIf(s.Passed), 0)
	c.setLed(3, 0, percentIf(s.Done), 0)
	c.setLed(4, 0, 0, 0)
	c.setLed(5, 0, 0, 0)

	for slot := leds.NumColorSlots; slot < leds.NumSlots; slot++ {
		c.sendLed(slot)
	}
	return nil
}

func percentIf(cond bool) uint8 {
	if cond {
		return 100
	}
	return 0
}
