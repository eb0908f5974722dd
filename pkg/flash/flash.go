// Package flash defines the serial NOR flash device contract consumed
// by the experiment controller, along with the fixed device geometry
// the harness is built for.
package flash

import "errors"

// Geometry of the device under test (256 Mbit serial NOR).
// The test plan divides the array into RegionCount equal regions and
// exercises one region per pass.
const (
	// DeviceBytes is the total byte capacity of the flash array.
	DeviceBytes uint32 = 33554432 // 256 Mbit

	// SubsectorBytes is the smallest erasable unit.
	SubsectorBytes uint32 = 4096
	// PageBytes is the smallest programmable/readable unit.
	PageBytes uint32 = 256

	// RegionCount is the number of equal regions the array is split into.
	RegionCount uint32 = 32
	// RegionBytes is the span of one region.
	RegionBytes uint32 = DeviceBytes / RegionCount
	// LastRegionStart is the byte offset of the final region.
	LastRegionStart uint32 = RegionBytes * (RegionCount - 1)

	// SubsectorsPerRegion is the erase sub-operation count per region.
	SubsectorsPerRegion uint32 = (DeviceBytes / SubsectorBytes) / RegionCount
	// PagesPerRegion is the program/read sub-operation count per region.
	PagesPerRegion uint32 = (DeviceBytes / PageBytes) / RegionCount
)

// Device command errors.
var (
	// ErrOutOfRange indicates an address beyond the device capacity.
	ErrOutOfRange = errors.New("address out of range")
	// ErrMisaligned indicates an address not aligned to the unit the
	// command operates on.
	ErrMisaligned = errors.New("address misaligned")
	// ErrPageSize indicates a buffer longer than one page.
	ErrPageSize = errors.New("buffer exceeds page size")
	// ErrWriteDisabled indicates a mutating command issued without a
	// preceding write enable.
	ErrWriteDisabled = errors.New("write not enabled")
)

// Device is the wire-protocol driver seam. All calls are synchronous
// with bounded latency; a non-nil error is the command failure status
// and is never fatal to the caller.
type Device interface {
	// WriteEnable latches the write enable required before each
	// mutating command.
	WriteEnable() error
	// EraseSector erases the subsector containing addr.
	EraseSector(addr uint32) error
	// ProgramPage programs len(buf) bytes starting at addr within a
	// single page.
	ProgramPage(addr uint32, buf []byte) error
	// ReadPage reads len(buf) bytes starting at addr into buf.
	ReadPage(addr uint32, buf []byte) error
}
