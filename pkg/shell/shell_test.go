package shell

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/benchkit/sftest.go/pkg/experiment"
	fx "github.com/benchkit/sftest.go/pkg/framework"
	"github.com/benchkit/sftest.go/pkg/input"
)

func TestButtonMask(t *testing.T) {
	testCases := []struct {
		arg  string
		mask uint8
		ok   bool
	}{
		{"a", input.Button0, true},
		{"B", input.Button1, true},
		{"c", input.Button2, true},
		{"D", input.Button3, true},
		{"e", 0, false},
		{"", 0, false},
	}
	for _, tc := range testCases {
		mask, ok := buttonMask(tc.arg)
		require.Equal(t, tc.ok, ok, tc.arg)
		require.Equal(t, tc.mask, mask, tc.arg)
	}
}

func TestSwitchMask(t *testing.T) {
	for i, expect := range []uint8{input.Switch0, input.Switch1, input.Switch2, input.Switch3} {
		mask, ok := switchMask(string(rune('0' + i)))
		require.True(t, ok)
		require.Equal(t, expect, mask)
	}
	_, ok := switchMask("4")
	require.False(t, ok)
}

type recordLoop struct {
	msgs      []fx.Message
	triggered int
}

func (l *recordLoop) PostMessage(msg fx.Message) { l.msgs = append(l.msgs, msg) }
func (l *recordLoop) TriggerNext()               { l.triggered++ }

func TestPostTriggersCycle(t *testing.T) {
	loop := &recordLoop{}
	s := New(loop, func() experiment.Snapshot { return experiment.Snapshot{} })
	s.post(experiment.ButtonMsg{Mask: input.Button0, Press: true})
	require.Equal(t, []fx.Message{
		experiment.ButtonMsg{Mask: input.Button0, Press: true},
	}, loop.msgs)
	require.Equal(t, 1, loop.triggered)
}
