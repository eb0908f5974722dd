package experiment

import (
	"fmt"

	"github.com/benchkit/sftest.go/pkg/flash"
	"github.com/benchkit/sftest.go/pkg/input"
)

// step runs one FSM step. Device calls are synchronous and bounded; a
// failed command is logged to the console sink and the step proceeds
// as if it had completed, keeping the bus timing deterministic.
func (c *Controller) step() {
	s := c.State

	switch s.Mode {
	case ModeWaitButtonDep:
		if s.RegionStart < flash.LastRegionStart {
			s.Done = false
			// First matching input wins, in fixed A, B, C, D order.
			switch {
			case s.IO.Buttons == input.Button0 || s.IO.Switches == input.Switch0:
				s.Mode, s.Pattern = ModeWaitButtonRel, PatternA
			case s.IO.Buttons == input.Button1 || s.IO.Switches == input.Switch1:
				s.Mode, s.Pattern = ModeWaitButtonRel, PatternB
			case s.IO.Buttons == input.Button2 || s.IO.Switches == input.Switch2:
				s.Mode, s.Pattern = ModeWaitButtonRel, PatternC
			case s.IO.Buttons == input.Button3 || s.IO.Switches == input.Switch3:
				s.Mode, s.Pattern = ModeWaitButtonRel, PatternD
			}
		} else {
			s.Done = true
		}

	case ModeWaitButtonRel:
		if s.IO.Buttons == 0 {
			s.Mode = ModeSetPattern
		}

	case ModeSetPattern:
		seed := s.Pattern.Seed()
		s.patternStart, s.patternStride = seed.Start, seed.Stride
		s.ErrCount = 0
		s.Mode = ModeSetStartAddr

	case ModeSetStartAddr:
		if s.StartAtZero {
			s.RegionStart = 0
			s.Done = false
			s.Mode = ModeSetStartWait
		} else if s.RegionStart < flash.LastRegionStart {
			s.RegionStart += flash.RegionBytes
			s.Done = false
			s.Mode = ModeSetStartWait
		} else {
			s.Done = true
			s.Mode = ModeWaitButtonDep
		}
		s.StartAtZero = false
		s.SubOp = 0

	case ModeSetStartWait:
		// Half dwell so the operator can register the chosen address.
		if s.TicksInMode == ModeTimeout/2 {
			s.Mode = ModeCmdEraseStart
		}

	case ModeCmdEraseStart:
		s.CmdAddr = s.RegionStart + s.SubOp*flash.SubsectorBytes
		if err := c.Device.WriteEnable(); err != nil {
			c.logf("WEN Fail")
		}
		if err := c.Device.EraseSector(s.CmdAddr); err != nil {
			c.logf("Ers Fail %08x", s.CmdAddr)
		}
		s.SubOp++
		if s.SubOp >= flash.SubsectorsPerRegion {
			s.Mode = ModeCmdEraseDone
		}

	case ModeCmdEraseDone:
		s.patternCursor = s.patternStart
		s.SubOp = 0
		if s.TicksInMode >= ModeTimeout-1 {
			s.Mode = ModeCmdPageStart
		}

	case ModeCmdPageStart:
		for j := 0; j < pageBatch; j++ {
			s.CmdAddr = s.RegionStart + s.SubOp*flash.PageBytes
			if err := c.Device.WriteEnable(); err != nil {
				c.logf("WEN Fail")
			}
			for i := range s.writeBuf {
				s.writeBuf[i] = s.patternCursor
				s.patternCursor += s.patternStride
			}
			if err := c.Device.ProgramPage(s.CmdAddr, s.writeBuf[:]); err != nil {
				c.logf("PRO Fail %08x", s.CmdAddr)
			}
			// The cursor restarts every page; pages verify independently.
			s.patternCursor = s.patternStart
			s.SubOp++
			if s.SubOp >= flash.PagesPerRegion {
				s.Mode = ModeCmdPageDone
				break
			}
		}

	case ModeCmdPageDone:
		s.patternCursor = s.patternStart
		s.SubOp = 0
		if s.TicksInMode >= ModeTimeout-1 {
			s.Mode = ModeCmdReadStart
		}

	case ModeCmdReadStart:
		for j := 0; j < pageBatch; j++ {
			s.CmdAddr = s.RegionStart + s.SubOp*flash.PageBytes
			for i := range s.readBuf {
				s.readBuf[i] = 0
			}
			if err := c.Device.ReadPage(s.CmdAddr, s.readBuf[:]); err != nil {
				c.logf("RD  Fail %08x", s.CmdAddr)
			}
			s.patternCursor = s.patternStart
			for i := range s.readBuf {
				if s.readBuf[i] != s.patternCursor {
					s.ErrCount++
				}
				s.patternCursor += s.patternStride
			}
			s.patternCursor = s.patternStart
			s.SubOp++
			if s.SubOp >= flash.PagesPerRegion {
				s.Mode = ModeCmdReadDone
				break
			}
		}

	case ModeCmdReadDone:
		s.patternCursor = s.patternStart
		s.SubOp = 0
		if s.TicksInMode >= ModeTimeout-1 {
			s.Mode = ModeDisplayFinal
		}

	case ModeDisplayFinal:
		s.Passed = s.ErrCount == 0
		if s.TicksInMode == ModeTimeout-1 {
			s.Mode = ModeWaitButtonDep
		}

	default:
		// Unknown or corrupt mode: fall back to idle waiting.
		s.Mode = ModeWaitButtonDep
	}
}

// logf sends a short failure line to the console sink, dropping it if
// the queue is full.
func (c *Controller) logf(format string, args ...interface{}) {
	c.Console.Send(fmt.Sprintf(format, args...))
}
