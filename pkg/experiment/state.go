package experiment

import "github.com/benchkit/sftest.go/pkg/flash"

// OperatingMode is the experiment FSM state.
type OperatingMode int

// FSM states. ModeNone is the defensive fallback origin; any unknown
// value transitions to ModeWaitButtonDep on the next step.
const (
	ModeWaitButtonDep OperatingMode = iota
	ModeWaitButtonRel
	ModeSetPattern
	ModeSetStartAddr
	ModeSetStartWait
	ModeCmdEraseStart
	ModeCmdEraseDone
	ModeCmdPageStart
	ModeCmdPageDone
	ModeCmdReadStart
	ModeCmdReadDone
	ModeDisplayFinal
	ModeNone
)

// Timing constants, in 10 ms scheduler cycles.
const (
	// ModeTimeout is the 3 second dwell used to pace operator-visible
	// phases. It is UX pacing, not a hardware requirement.
	ModeTimeout uint32 = 100 * 3

	// displayDivisor throttles display/console refresh to ~5 Hz.
	displayDivisor = ModeTimeout / 15

	// pageBatch is how many page commands are issued per cycle during
	// the program and read phases.
	pageBatch = 32
)

// IOSnapshot is the per-cycle sample of the discrete inputs.
type IOSnapshot struct {
	Buttons  uint8
	Switches uint8
}

// State is the experiment state, owned by the controller and mutated
// only on the scheduler cycle.
type State struct {
	Mode     OperatingMode
	PrevMode OperatingMode

	// Region under test.
	StartAtZero bool
	RegionStart uint32

	// Selected pattern and its generator.
	Pattern       PatternID
	patternStart  uint8
	patternStride uint8
	patternCursor uint8

	// Result latches for the most recent region test.
	Passed bool
	Done   bool

	ErrCount uint32

	// SubOp counts subsectors (erase) or pages (program/read) done
	// within the current region.
	SubOp uint32
	// CmdAddr is the absolute address of the sub-operation being issued.
	CmdAddr uint32

	TicksInMode uint32
	FreeRun     uint32

	IO IOSnapshot

	writeBuf [flash.PageBytes]byte
	readBuf  [flash.PageBytes]byte
}

// NewState creates the power-on state: counters zeroed, no pattern,
// waiting for a button, first pass pinned to offset zero.
func NewState() *State {
	seed := PatternA.Seed()
	return &State{
		Mode:          ModeWaitButtonDep,
		PrevMode:      ModeWaitButtonDep,
		StartAtZero:   true,
		Pattern:       PatternNone,
		patternStart:  seed.Start,
		patternStride: seed.Stride,
	}
}

// Snapshot is a copy of the operator-visible state, safe to read
// outside the scheduler cycle.
type Snapshot struct {
	Mode        OperatingMode
	Pattern     PatternID
	RegionStart uint32
	ErrCount    uint32
	Passed      bool
	Done        bool
}

func (s *State) snapshot() Snapshot {
	return Snapshot{
		Mode:        s.Mode,
		Pattern:     s.Pattern,
		RegionStart: s.RegionStart,
		ErrCount:    s.ErrCount,
		Passed:      s.Passed,
		Done:        s.Done,
	}
}

// String implements Stringer for logs and the operator shell.
func (m OperatingMode) String() string {
	switch m {
	case ModeWaitButtonDep:
		return "wait-button-dep"
	case ModeWaitButtonRel:
		return "wait-button-rel"
	case ModeSetPattern:
		return "set-pattern"
	case ModeSetStartAddr:
		return "set-start-addr"
	case ModeSetStartWait:
		return "set-start-wait"
	case ModeCmdEraseStart:
		return "cmd-erase-start"
	case ModeCmdEraseDone:
		return "cmd-erase-done"
	case ModeCmdPageStart:
		return "cmd-page-start"
	case ModeCmdPageDone:
		return "cmd-page-done"
	case ModeCmdReadStart:
		return "cmd-read-start"
	case ModeCmdReadDone:
		return "cmd-read-done"
	case ModeDisplayFinal:
		return "display-final"
	}
	return "none"
}

// PhaseTag is the three-letter phase shown on display line 2.
func (m OperatingMode) PhaseTag() string {
	switch m {
	case ModeWaitButtonRel, ModeSetPattern, ModeSetStartAddr, ModeSetStartWait:
		return "GO "
	case ModeCmdEraseStart, ModeCmdEraseDone:
		return "ERS"
	case ModeCmdPageStart, ModeCmdPageDone:
		return "PRO"
	case ModeCmdReadStart, ModeCmdReadDone:
		return "TST"
	case ModeDisplayFinal:
		return "END"
	}
	return "GO "
}
