package leds

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInitAllOff(t *testing.T) {
	color, basic := &MemRegisters{}, &MemRegisters{}
	bank := NewBank(color, basic)
	bank.InitAllOff()

	require.Equal(t, PeriodTenMillisecond, color.Period)
	require.Equal(t, PeriodTenMillisecond, basic.Period)
	require.True(t, color.Enabled)
	require.True(t, basic.Enabled)
	for _, d := range color.Duty {
		require.Zero(t, d)
	}
	for _, d := range basic.Duty {
		require.Zero(t, d)
	}
}

func TestSetRgbPalette(t *testing.T) {
	color := &MemRegisters{}
	bank := NewBank(color, &MemRegisters{})

	bank.SetRgbPalette(1, 255, 0, 128)
	require.Zero(t, color.Duty[0])
	require.Equal(t, DutyCycleSevenMillisecond, color.Duty[3])
	require.Zero(t, color.Duty[4])
	require.Equal(t, DutyCycleSevenMillisecond*128/255, color.Duty[5])

	// Out-of-range slots are ignored.
	bank.SetRgbPalette(2, 255, 255, 255)
	require.Zero(t, color.Duty[0])
}

func TestSetBasicPercent(t *testing.T) {
	basic := &MemRegisters{}
	bank := NewBank(&MemRegisters{}, basic)

	bank.SetBasicPercent(2, 100)
	require.Equal(t, DutyCycleNineMillisecond, basic.Duty[0])
	bank.SetBasicPercent(5, 50)
	require.Equal(t, DutyCycleNineMillisecond/2, basic.Duty[3])
	bank.SetBasicPercent(3, 200)
	require.Equal(t, DutyCycleNineMillisecond, basic.Duty[1])

	// Color slots are not basic slots.
	before := basic.Duty
	bank.SetBasicPercent(1, 100)
	require.Equal(t, before, basic.Duty)
}

func TestSinkDropsWhenFull(t *testing.T) {
	s := NewSink(NewBank(&MemRegisters{}, &MemRegisters{}))
	for i := 0; i < QueueCap; i++ {
		require.True(t, s.Send(Update{Slot: uint8(i % NumSlots)}))
	}
	require.False(t, s.Send(Update{}))
}

func TestSinkApplies(t *testing.T) {
	color, basic := &MemRegisters{}, &MemRegisters{}
	s := NewSink(NewBank(color, basic))
	require.True(t, s.Send(Update{Slot: 0, Red: 255}))
	require.True(t, s.Send(Update{Slot: 3, Green: 100}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	applied := func() bool {
		s.bank.lock.Lock()
		defer s.bank.lock.Unlock()
		return color.Duty[0] == DutyCycleSevenMillisecond &&
			basic.Duty[1] == DutyCycleNineMillisecond
	}
	deadline := time.Now().Add(time.Second)
	for !applied() && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	require.True(t, applied())

	cancel()
	require.Equal(t, context.Canceled, <-done)
}
