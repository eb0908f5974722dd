package experiment

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/benchkit/sftest.go/pkg/leds"
)

func drainLeds(h *harness) []leds.Update {
	var got []leds.Update
	for {
		select {
		case u := <-h.c.Leds.Chan():
			got = append(got, u)
		default:
			return got
		}
	}
}

func TestModeLedPalette(t *testing.T) {
	testCases := []struct {
		name    string
		mode    OperatingMode
		pattern PatternID
		led0    leds.Update
		led1    leds.Update
	}{
		{
			name: "idle", mode: ModeWaitButtonDep,
			led0: leds.Update{Slot: 0, Red: 0xFF},
			led1: leds.Update{Slot: 1, Red: 0xFF},
		},
		{
			name: "selected A", mode: ModeSetStartWait, pattern: PatternA,
			led0: leds.Update{Slot: 0, Green: 0xFF},
			led1: leds.Update{Slot: 1},
		},
		{
			name: "selected B", mode: ModeSetStartWait, pattern: PatternB,
			led0: leds.Update{Slot: 0},
			led1: leds.Update{Slot: 1, Green: 0xFF},
		},
		{
			name: "selected C", mode: ModeSetStartWait, pattern: PatternC,
			led0: leds.Update{Slot: 0, Blue: 0xFF},
			led1: leds.Update{Slot: 1},
		},
		{
			name: "selected D", mode: ModeSetStartWait, pattern: PatternD,
			led0: leds.Update{Slot: 0},
			led1: leds.Update{Slot: 1, Blue: 0xFF},
		},
		{
			name: "erasing", mode: ModeCmdEraseStart,
			led0: leds.Update{Slot: 0, Red: 0x80, Green: 0x80, Blue: 0x80},
			led1: leds.Update{Slot: 1},
		},
		{
			name: "erase done", mode: ModeCmdEraseDone,
			led0: leds.Update{Slot: 0, Red: 0x70, Green: 0x10},
			led1: leds.Update{Slot: 1},
		},
		{
			name: "programming", mode: ModeCmdPageStart,
			led0: leds.Update{Slot: 0},
			led1: leds.Update{Slot: 1, Red: 0x80, Green: 0x80, Blue: 0x80},
		},
		{
			name: "program done", mode: ModeCmdPageDone,
			led0: leds.Update{Slot: 0},
			led1: leds.Update{Slot: 1, Red: 0x70, Green: 0x10},
		},
		{
			name: "verifying", mode: ModeCmdReadStart,
			led0: leds.Update{Slot: 0, Green: 0x80, Blue: 0x80},
			led1: leds.Update{Slot: 1},
		},
		{
			name: "verify done", mode: ModeCmdReadDone,
			led0: leds.Update{Slot: 0, Red: 0x70, Green: 0x10},
			led1: leds.Update{Slot: 1},
		},
		{
			name: "final", mode: ModeDisplayFinal,
			led0: leds.Update{Slot: 0},
			led1: leds.Update{Slot: 1, Green: 0x80, Blue: 0x80},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness()
			h.c.State.Mode = tc.mode
			h.c.State.Pattern = tc.pattern
			require.NoError(t, h.c.renderModeLeds(nil))
			require.Equal(t, []leds.Update{tc.led0, tc.led1}, drainLeds(h))
		})
	}
}

func TestStatusLeds(t *testing.T) {
	h := newHarness()
	h.c.State.Passed = true
	require.NoError(t, h.c.renderStatusLeds(nil))
	require.Equal(t, []leds.Update{
		{Slot: 2, Green: 100},
		{Slot: 3},
		{Slot: 4},
		{Slot: 5},
	}, drainLeds(h))

	h.c.State.Done = true
	require.NoError(t, h.c.renderStatusLeds(nil))
	require.Equal(t, []leds.Update{
		{Slot: 2, Green: 100},
		{Slot: 3, Green: 100},
		{Slot: 4},
		{Slot: 5},
	}, drainLeds(h))
}
