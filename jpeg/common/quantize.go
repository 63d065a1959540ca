package common

// Quantize divides v by divisor, rounding half away from zero.
func Quantize(v, divisor int32) int32 {
	if v < 0 {
		return -((-v + divisor>>1) / divisor)
	}
	return (v + divisor>>1) / divisor
}

// QuantizeBlock quantizes a natural-order coefficient block and writes the
// result in zigzag order.
func QuantizeBlock(coef *[64]int32, divisors *[64]int32, out *[64]int32) {
	for k := 0; k < 64; k++ {
		i := ZigZag[k]
		out[k] = Quantize(coef[i], divisors[i])
	}
}
