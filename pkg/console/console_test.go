package console

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSendTruncates(t *testing.T) {
	s := NewSink(&bytes.Buffer{})
	long := strings.Repeat("x", BufSize+10)
	require.True(t, s.Send(long))
	require.Equal(t, long[:BufSize-1], <-s.Chan())
}

func TestSendDropsWhenFull(t *testing.T) {
	s := NewSink(&bytes.Buffer{})
	for i := 0; i < QueueCap; i++ {
		require.True(t, s.Send("x"))
	}
	require.False(t, s.Send("dropped"))
}

func TestRunPrintsLines(t *testing.T) {
	var buf bytes.Buffer
	s := NewSink(&buf)
	require.True(t, s.Send("one"))
	require.True(t, s.Send("two"))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	deadline := time.Now().Add(time.Second)
	for len(s.ch) > 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	require.Zero(t, len(s.ch))
	cancel()
	require.Equal(t, context.Canceled, <-done)
	require.Equal(t, "one\ntwo\n", buf.String())
}
