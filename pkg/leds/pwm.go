// Package leds drives the board LEDs through PWM duty-cycle registers
// and hosts the sink task that applies palette update events.
package leds

import "sync"

// PWM period/duty constants, in timer cycles. The period is 10 ms; the
// color filaments saturate at a 7 ms duty and the basic LEDs at 9 ms.
const (
	PeriodTenMillisecond      uint32 = 500000
	DutyCycleNineMillisecond  uint32 = PeriodTenMillisecond * 9 / 10
	DutyCycleSevenMillisecond uint32 = PeriodTenMillisecond * 7 / 10
)

// LED bank layout: slots 0-1 are RGB color LEDs fed by one PWM block
// with one channel per filament (r,g,b per LED); slots 2-5 are basic
// single-filament LEDs fed by a second block.
const (
	NumSlots      = 6
	NumColorSlots = 2

	colorChannels = 6
	basicChannels = 4
)

// Registers is the duty-cycle register interface of one PWM block.
// Implementations write hardware registers; writes must be cheap since
// callers hold a lock across one LED's channel updates.
type Registers interface {
	SetPeriod(cycles uint32)
	SetDuty(channel int, cycles uint32)
	Enable()
}

// Bank groups the two PWM blocks and serializes register access.
type Bank struct {
	Color Registers
	Basic Registers

	lock sync.Mutex
}

// NewBank creates a Bank over two PWM blocks.
func NewBank(color, basic Registers) *Bank {
	return &Bank{Color: color, Basic: basic}
}

// InitAllOff presets both blocks: period set, every duty zeroed,
// outputs enabled. All filaments hold low.
func (b *Bank) InitAllOff() {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.Color.SetPeriod(PeriodTenMillisecond)
	for ch := 0; ch < colorChannels; ch++ {
		b.Color.SetDuty(ch, 0)
	}
	b.Color.Enable()
	b.Basic.SetPeriod(PeriodTenMillisecond)
	for ch := 0; ch < basicChannels; ch++ {
		b.Basic.SetDuty(ch, 0)
	}
	b.Basic.Enable()
}

// SetRgbPalette scales an 8-bit RGB palette onto the three filament
// channels of color slot 0 or 1.
func (b *Bank) SetRgbPalette(slot int, red, green, blue uint8) {
	if slot < 0 || slot >= NumColorSlots {
		return
	}
	b.lock.Lock()
	base := slot * 3
	b.Color.SetDuty(base+0, scalePalette(red))
	b.Color.SetDuty(base+1, scalePalette(green))
	b.Color.SetDuty(base+2, scalePalette(blue))
	b.lock.Unlock()
}

// SetBasicPercent sets a basic slot (2..5) to a 0..100 intensity.
func (b *Bank) SetBasicPercent(slot int, percent uint8) {
	if slot < NumColorSlots || slot >= NumSlots {
		return
	}
	if percent > 100 {
		percent = 100
	}
	b.lock.Lock()
	b.Basic.SetDuty(slot-NumColorSlots, DutyCycleNineMillisecond*uint32(percent)/100)
	b.lock.Unlock()
}

func scalePalette(v uint8) uint32 {
	return DutyCycleSevenMillisecond * uint32(v) / 255
}

// MemRegisters is an in-memory PWM block used in simulation and tests.
type MemRegisters struct {
	Period  uint32
	Duty    [colorChannels]uint32
	Enabled bool
}

// SetPeriod implements Registers.
func (m *MemRegisters) SetPeriod(cycles uint32) { m.Period = cycles }

// SetDuty implements Registers.
func (m *MemRegisters) SetDuty(channel int, cycles uint32) {
	if channel >= 0 && channel < len(m.Duty) {
		m.Duty[channel] = cycles
	}
}

// Enable implements Registers.
func (m *MemRegisters) Enable() { m.Enabled = true }
