// Package shell provides the interactive operator console standing in
// for the board's physical buttons and switches.
package shell

import (
	"context"
	"fmt"
	"time"

	"github.com/abiosoft/ishell"

	"github.com/benchkit/sftest.go/pkg/experiment"
	fx "github.com/benchkit/sftest.go/pkg/framework"
	"github.com/benchkit/sftest.go/pkg/input"
)

// tapDuration is how long a momentary "press" stays asserted. A few
// scheduler cycles is enough for the FSM to latch the depress and
// then observe the release.
const tapDuration = 80 * time.Millisecond

// Shell is the ishell-backed operator console. Input commands are
// posted into the loop as messages; status reads the controller's
// latest latched snapshot.
type Shell struct {
	Shell *ishell.Shell

	loop   fx.LoopControl
	status func() experiment.Snapshot
}

// New creates a Shell attached to a loop and a status source.
func New(loop fx.LoopControl, status func() experiment.Snapshot) *Shell {
	s := &Shell{
		Shell:  ishell.New(),
		loop:   loop,
		status: status,
	}
	s.Shell.SetPrompt("sftest > ")
	s.Shell.AddCmd(&ishell.Cmd{
		Name: "press",
		Help: "a|b|c|d  momentary press selecting a test pattern",
		Func: s.cmdPress,
	})
	s.Shell.AddCmd(&ishell.Cmd{
		Name: "hold",
		Help: "a|b|c|d  press and hold a button",
		Func: s.cmdHold,
	})
	s.Shell.AddCmd(&ishell.Cmd{
		Name: "release",
		Help: "release all held buttons",
		Func: s.cmdRelease,
	})
	s.Shell.AddCmd(&ishell.Cmd{
		Name: "switch",
		Help: "0|1|2|3 on|off  drive a selector switch",
		Func: s.cmdSwitch,
	})
	s.Shell.AddCmd(&ishell.Cmd{
		Name: "status",
		Help: "show the experiment state",
		Func: s.cmdStatus,
	})
	return s
}

// Name implements Named.
func (s *Shell) Name() string { return "shell" }

// Run implements Runnable.
func (s *Shell) Run(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.Shell.Run()
		close(done)
	}()
	select {
	case <-ctx.Done():
		s.Shell.Stop()
		<-done
		return ctx.Err()
	case <-done:
		return nil
	}
}

func buttonMask(arg string) (uint8, bool) {
	switch arg {
	case "a", "A":
		return input.Button0, true
	case "b", "B":
		return input.Button1, true
	case "c", "C":
		return input.Button2, true
	case "d", "D":
		return input.Button3, true
	}
	return 0, false
}

func switchMask(arg string) (uint8, bool) {
	switch arg {
	case "0":
		return input.Switch0, true
	case "1":
		return input.Switch1, true
	case "2":
		return input.Switch2, true
	case "3":
		return input.Switch3, true
	}
	return 0, false
}

func (s *Shell) post(msg fx.Message) {
	s.loop.PostMessage(msg)
	s.loop.TriggerNext()
}

func (s *Shell) cmdPress(c *ishell.Context) {
	if len(c.Args) != 1 {
		c.Err(fmt.Errorf("usage: press a|b|c|d"))
		return
	}
	mask, ok := buttonMask(c.Args[0])
	if !ok {
		c.Err(fmt.Errorf("no such button %q", c.Args[0]))
		return
	}
	s.post(experiment.ButtonMsg{Mask: mask, Press: true})
	go func() {
		time.Sleep(tapDuration)
		s.post(experiment.ButtonMsg{Mask: mask, Press: false})
	}()
}

func (s *Shell) cmdHold(c *ishell.Context) {
	if len(c.Args) != 1 {
		c.Err(fmt.Errorf("usage: hold a|b|c|d"))
		return
	}
	mask, ok := buttonMask(c.Args[0])
	if !ok {
		c.Err(fmt.Errorf("no such button %q", c.Args[0]))
		return
	}
	s.post(experiment.ButtonMsg{Mask: mask, Press: true})
}

func (s *Shell) cmdRelease(c *ishell.Context) {
	s.post(experiment.ButtonMsg{Mask: input.Mask, Press: false})
}

func (s *Shell) cmdSwitch(c *ishell.Context) {
	if len(c.Args) != 2 || (c.Args[1] != "on" && c.Args[1] != "off") {
		c.Err(fmt.Errorf("usage: switch 0|1|2|3 on|off"))
		return
	}
	mask, ok := switchMask(c.Args[0])
	if !ok {
		c.Err(fmt.Errorf("no such switch %q", c.Args[0]))
		return
	}
	s.post(experiment.SwitchMsg{Mask: mask, On: c.Args[1] == "on"})
}

func (s *Shell) cmdStatus(c *ishell.Context) {
	st := s.status()
	c.Printf("mode    %s\n", st.Mode)
	c.Printf("pattern %c\n", st.Pattern.Tag())
	c.Printf("region  %08x\n", st.RegionStart)
	c.Printf("errors  %d\n", st.ErrCount)
	c.Printf("passed  %v  done %v\n", st.Passed, st.Done)
}
