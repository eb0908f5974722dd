// Package input samples the operator's discrete inputs: four buttons
// and four switches, each a 4-bit mask.
package input

import "sync"

// Button and switch bit masks.
const (
	Button0 uint8 = 0x01
	Button1 uint8 = 0x02
	Button2 uint8 = 0x04
	Button3 uint8 = 0x08

	Switch0 uint8 = 0x01
	Switch1 uint8 = 0x02
	Switch2 uint8 = 0x04
	Switch3 uint8 = 0x08

	// Mask covers the valid input bits.
	Mask uint8 = 0x0F
)

// Source reads the current digital input levels. Readings are raw;
// debounce is the consumer's concern.
type Source interface {
	Buttons() uint8
	Switches() uint8
}

// SimSource is a concurrency-safe in-memory Source driven by the
// operator shell in place of physical inputs.
type SimSource struct {
	buttons  uint8
	switches uint8
	lock     sync.Mutex
}

// NewSimSource creates a SimSource with all inputs released.
func NewSimSource() *SimSource {
	return &SimSource{}
}

// Buttons implements Source.
func (s *SimSource) Buttons() uint8 {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.buttons
}

// Switches implements Source.
func (s *SimSource) Switches() uint8 {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.switches
}

// Press asserts the button bits in mask.
func (s *SimSource) Press(mask uint8) {
	s.lock.Lock()
	s.buttons |= mask & Mask
	s.lock.Unlock()
}

// Release deasserts the button bits in mask.
func (s *SimSource) Release(mask uint8) {
	s.lock.Lock()
	s.buttons &^= mask
	s.lock.Unlock()
}

// SetSwitch drives one switch bit to on or off.
func (s *SimSource) SetSwitch(mask uint8, on bool) {
	s.lock.Lock()
	if on {
		s.switches |= mask & Mask
	} else {
		s.switches &^= mask
	}
	s.lock.Unlock()
}
