package experiment

import (
	fx "github.com/benchkit/sftest.go/pkg/framework"
)

// ButtonMsg is posted into the loop to press or release simulated
// buttons, e.g. from the operator shell.
type ButtonMsg struct {
	Mask  uint8
	Press bool
}

// SwitchMsg is posted into the loop to drive a simulated switch.
type SwitchMsg struct {
	Mask uint8
	On   bool
}

// sampleInputs applies pending simulated-input messages, then latches
// one snapshot of the button and switch levels for this cycle.
func (c *Controller) sampleInputs(cc fx.ControlContext) error {
	cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mc fx.MessageProcessingContext) {
		switch msg := mc.CurrentMessage().(type) {
		case ButtonMsg:
			mc.MessageTaken()
			if c.sim == nil {
				break
			}
			if msg.Press {
				c.sim.Press(msg.Mask)
			} else {
				c.sim.Release(msg.Mask)
			}
		case SwitchMsg:
			mc.MessageTaken()
			if c.sim != nil {
				c.sim.SetSwitch(msg.Mask, msg.On)
			}
		}
	}))

	c.State.IO.Buttons = c.Inputs.Buttons()
	c.State.IO.Switches = c.Inputs.Switches()
	return nil
}
