package experiment

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPatternSeeds(t *testing.T) {
	testCases := []struct {
		pattern PatternID
		start   uint8
		stride  uint8
		tag     byte
	}{
		{PatternA, 0x00, 0x01, 'A'},
		{PatternB, 0x08, 0x07, 'B'},
		{PatternC, 0x10, 0x0F, 'C'},
		{PatternD, 0x18, 0x17, 'D'},
	}
	for _, tc := range testCases {
		t.Run(string(tc.tag), func(t *testing.T) {
			seed := tc.pattern.Seed()
			require.Equal(t, tc.start, seed.Start)
			require.Equal(t, tc.stride, seed.Stride)
			require.Equal(t, tc.tag, tc.pattern.Tag())
		})
	}
}

func TestPatternNoneDefaults(t *testing.T) {
	require.Equal(t, PatternA.Seed(), PatternNone.Seed())
	require.Equal(t, byte('*'), PatternNone.Tag())
	require.Equal(t, PatternA.Seed(), PatternID(-1).Seed())
}

func TestPatternBytes(t *testing.T) {
	// Byte i of a page is (start + i*stride) mod 256, restarting on
	// every page boundary.
	for _, p := range []PatternID{PatternA, PatternB, PatternC, PatternD} {
		seed := p.Seed()
		cursor := seed.Start
		for i := 0; i < 256; i++ {
			require.Equal(t, uint8(seed.Start+uint8(i)*seed.Stride), cursor)
			cursor += seed.Stride
		}
	}
}
