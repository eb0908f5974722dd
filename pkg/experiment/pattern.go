package experiment

// PatternID selects one of the four fixed test patterns.
type PatternID int

// Test patterns. Each is a start byte plus a stride; the byte at
// position i of a page is (start + i*stride) mod 256. The constants
// are chosen so no two patterns generate the same page contents.
const (
	PatternA PatternID = iota
	PatternB
	PatternC
	PatternD
	PatternNone
)

// Seed holds the generator constants of one pattern.
type Seed struct {
	Start  uint8
	Stride uint8
}

var patternSeeds = [...]Seed{
	PatternA: {Start: 0x00, Stride: 0x01},
	PatternB: {Start: 0x08, Stride: 0x07},
	PatternC: {Start: 0x10, Stride: 0x0F},
	PatternD: {Start: 0x18, Stride: 0x17},
}

// Seed returns the generator constants. PatternNone yields pattern A's
// constants, mirroring the power-on defaults.
func (p PatternID) Seed() Seed {
	if p < PatternA || p > PatternD {
		return patternSeeds[PatternA]
	}
	return patternSeeds[p]
}

// Tag is the single display letter, '*' when no pattern is selected.
func (p PatternID) Tag() byte {
	switch p {
	case PatternA:
		return 'A'
	case PatternB:
		return 'B'
	case PatternC:
		return 'C'
	case PatternD:
		return 'D'
	}
	return '*'
}
