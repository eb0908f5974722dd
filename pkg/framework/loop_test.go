package framework

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestCyclePriorityOrder(t *testing.T) {
	l := NewLoop()
	var order []int
	record := func(level int) ControlFunc {
		return func(cc ControlContext) error {
			require.Equal(t, level, cc.PriorityLevel())
			order = append(order, level)
			return nil
		}
	}
	l.AddController(PrLvControl, record(PrLvControl))
	l.AddController(PrLvRender, record(PrLvRender), record(PrLvRender))
	l.AddController(PrLvPostProc, record(PrLvPostProc))
	l.AddController(PrLvSense, record(PrLvSense))

	l.runCycle(context.Background())
	require.Equal(t, []int{
		PrLvRender, PrLvRender, PrLvSense, PrLvControl, PrLvPostProc,
	}, order)
}

func TestCycleMessages(t *testing.T) {
	l := NewLoop()
	var seen []Message
	l.AddController(PrLvNormal, ControlFunc(func(cc ControlContext) error {
		cc.Messages().ProcessMessages(ProcessMessageFunc(func(mc MessageProcessingContext) {
			seen = append(seen, mc.CurrentMessage())
			if mc.CurrentMessage() == "take" {
				mc.MessageTaken()
			}
		}))
		return nil
	}))

	l.PostMessage("take")
	l.PostMessage("leave")
	l.runCycle(context.Background())
	require.Equal(t, []Message{"take", "leave"}, seen)

	// Untaken messages are re-examined within the same cycle's later
	// processors, not carried to the next cycle.
	seen = nil
	l.runCycle(context.Background())
	require.Empty(t, seen)
}

func TestCycleAddMessages(t *testing.T) {
	l := NewLoop()
	var got []Message
	l.AddController(PrLvHigh, ControlFunc(func(cc ControlContext) error {
		cc.Messages().AddMessages("from-high")
		return nil
	}))
	l.AddController(PrLvNormal, ControlFunc(func(cc ControlContext) error {
		cc.Messages().ProcessMessages(ProcessMessageFunc(func(mc MessageProcessingContext) {
			got = append(got, mc.CurrentMessage())
			mc.MessageTaken()
		}))
		return nil
	}))
	l.runCycle(context.Background())
	require.Equal(t, []Message{"from-high"}, got)
}

func TestLoopTriggerNext(t *testing.T) {
	l := NewLoop()
	l.Interval = time.Hour
	ran := make(chan struct{}, 1)
	l.AddController(PrLvNormal, ControlFunc(func(cc ControlContext) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()

	// Nudge until the loop goroutine has its wake channel ready.
	deadline := time.After(5 * time.Second)
	for {
		l.TriggerNext()
		select {
		case <-ran:
		case <-time.After(10 * time.Millisecond):
			continue
		case <-deadline:
			t.Fatal("loop never cycled on TriggerNext")
		}
		break
	}

	cancel()
	require.Equal(t, context.Canceled, <-done)
}
