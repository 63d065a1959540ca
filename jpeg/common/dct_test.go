package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFDCTConstantBlock(t *testing.T) {
	for _, c := range []int32{-128, -37, 0, 1, 50, 127} {
		var b [64]int32
		for i := range b {
			b[i] = c
		}
		FDCT(&b)

		assert.Equal(t, 64*c, b[0], "DC for level %d", c)
		for i := 1; i < 64; i++ {
			assert.Zero(t, b[i], "AC %d for level %d", i, c)
		}
	}
}

func TestFDCTHorizontalRamp(t *testing.T) {
	var b [64]int32
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			b[y*8+x] = int32(x*16 - 56)
		}
	}
	FDCT(&b)

	// Only the first row carries energy; the ramp is odd about the center
	assert.Zero(t, b[0])
	assert.Less(t, b[1], int32(0))
	for y := 1; y < 8; y++ {
		for x := 0; x < 8; x++ {
			assert.Zero(t, b[y*8+x], "coefficient (%d,%d)", x, y)
		}
	}
}

func TestQuantize(t *testing.T) {
	tests := []struct {
		v, d, want int32
	}{
		{12, 8, 2},
		{11, 8, 1},
		{4, 8, 1},
		{3, 8, 0},
		{0, 8, 0},
		{-3, 8, 0},
		{-4, 8, -1},
		{-12, 8, -2},
		{800, 16, 50},
		{-808, 16, -51},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Quantize(tt.v, tt.d), "Quantize(%d, %d)", tt.v, tt.d)
	}
}

func TestQuantizeBlockZigZag(t *testing.T) {
	var coef, div, out [64]int32
	for i := range coef {
		coef[i] = int32(i) * 8
		div[i] = 8
	}
	QuantizeBlock(&coef, &div, &out)

	for k := range out {
		assert.Equal(t, int32(ZigZag[k]), out[k], "zigzag position %d", k)
	}
}

func TestZigZagIsPermutation(t *testing.T) {
	var seen [64]bool
	for _, i := range ZigZag {
		assert.False(t, seen[i], "index %d repeated", i)
		seen[i] = true
	}
}
