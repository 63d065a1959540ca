package baseline

import "github.com/cocosip/go-jpeg-baseline/jpeg/common"

// transformBlock level-shifts the 8x8 samples at (row, col) of buf, applies
// the forward DCT and quantizes into out in zigzag order.
func transformBlock(buf []byte, stride, row, col int, divisors *[64]int32, work, out *[64]int32) {
	for y := 0; y < blockSize; y++ {
		line := buf[(row+y)*stride+col : (row+y)*stride+col+blockSize]
		for x, v := range line {
			work[y*blockSize+x] = int32(v) - 128
		}
	}
	common.FDCT(work)
	common.QuantizeBlock(work, divisors, out)
}
