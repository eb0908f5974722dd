package input

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSimSourceButtons(t *testing.T) {
	s := NewSimSource()
	require.Zero(t, s.Buttons())

	s.Press(Button0 | Button2)
	require.Equal(t, Button0|Button2, s.Buttons())
	s.Release(Button0)
	require.Equal(t, Button2, s.Buttons())
	s.Release(Mask)
	require.Zero(t, s.Buttons())

	// Bits outside the valid mask never latch.
	s.Press(0xF0)
	require.Zero(t, s.Buttons())
}

func TestSimSourceSwitches(t *testing.T) {
	s := NewSimSource()
	s.SetSwitch(Switch1, true)
	s.SetSwitch(Switch3, true)
	require.Equal(t, Switch1|Switch3, s.Switches())
	s.SetSwitch(Switch1, false)
	require.Equal(t, Switch3, s.Switches())
}
