package flash

import "sync"

// MemDevice simulates the NOR flash array in memory. Erase fills the
// subsector with 0xFF; programming can only clear bits (the result is
// the bitwise AND of the old and new contents), so a page programmed
// without a prior erase reads back corrupted, exactly as the physical
// part would. Each mutating command consumes one write enable latch.
type MemDevice struct {
	cells []byte
	wel   bool
	lock  sync.Mutex
}

// NewMemDevice creates a MemDevice with every cell erased.
func NewMemDevice() *MemDevice {
	d := &MemDevice{cells: make([]byte, DeviceBytes)}
	for i := range d.cells {
		d.cells[i] = 0xFF
	}
	return d
}

// WriteEnable implements Device.
func (d *MemDevice) WriteEnable() error {
	d.lock.Lock()
	d.wel = true
	d.lock.Unlock()
	return nil
}

// EraseSector implements Device.
func (d *MemDevice) EraseSector(addr uint32) error {
	d.lock.Lock()
	defer d.lock.Unlock()
	if addr >= DeviceBytes {
		return ErrOutOfRange
	}
	if addr%SubsectorBytes != 0 {
		return ErrMisaligned
	}
	if !d.wel {
		return ErrWriteDisabled
	}
	d.wel = false
	for i := addr; i < addr+SubsectorBytes; i++ {
		d.cells[i] = 0xFF
	}
	return nil
}

// ProgramPage implements Device.
func (d *MemDevice) ProgramPage(addr uint32, buf []byte) error {
	d.lock.Lock()
	defer d.lock.Unlock()
	if uint32(len(buf)) > PageBytes {
		return ErrPageSize
	}
	if addr >= DeviceBytes || addr+uint32(len(buf)) > DeviceBytes {
		return ErrOutOfRange
	}
	if addr%PageBytes != 0 {
		return ErrMisaligned
	}
	if !d.wel {
		return ErrWriteDisabled
	}
	d.wel = false
	for i, b := range buf {
		d.cells[addr+uint32(i)] &= b
	}
	return nil
}

// ReadPage implements Device.
func (d *MemDevice) ReadPage(addr uint32, buf []byte) error {
	d.lock.Lock()
	defer d.lock.Unlock()
	if uint32(len(buf)) > PageBytes {
		return ErrPageSize
	}
	if addr >= DeviceBytes || addr+uint32(len(buf)) > DeviceBytes {
		return ErrOutOfRange
	}
	copy(buf, d.cells[addr:addr+uint32(len(buf))])
	return nil
}

// Poke overwrites a single cell directly, bypassing NOR program rules.
// It exists for fault-injection in simulations.
func (d *MemDevice) Poke(addr uint32, value byte) {
	d.lock.Lock()
	if addr < DeviceBytes {
		d.cells[addr] = value
	}
	d.lock.Unlock()
}
