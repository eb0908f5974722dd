package experiment

import (
	"fmt"
	"strings"

	"github.com/benchkit/sftest.go/pkg/cls"
	fx "github.com/benchkit/sftest.go/pkg/framework"
	"github.com/benchkit/sftest.go/pkg/telemetry/msgs"
)

// renderProgress refreshes the display and console at ~5 Hz, gated by
// the free-run timer so the rate is independent of mode transitions.
// All sends are non-waiting; a full queue drops the update.
func (c *Controller) renderProgress(fx.ControlContext) error {
	s := c.State
	if s.FreeRun%displayDivisor != 0 {
		return nil
	}

	lines := cls.Lines{
		Line1: fmt.Sprintf("SF3 P%c h%08x", s.Pattern.Tag(), s.RegionStart),
		Line2: fmt.Sprintf("%s ERR %08d", s.Mode.PhaseTag(), s.ErrCount),
	}
	c.Display.Send(lines)
	c.Console.Send(lines.Line1 + " " + lines.Line2)

	if c.Telemetry != nil {
		c.Telemetry.Send(&msgs.Progress{
			Pattern:   string(s.Pattern.Tag()),
			Phase:     strings.TrimSpace(s.Mode.PhaseTag()),
			StartAddr: s.RegionStart,
			ErrCount:  s.ErrCount,
			Passed:    s.Passed,
			Done:      s.Done,
		})
	}
	return nil
}
