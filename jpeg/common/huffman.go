package common

import (
	"fmt"
	"math/bits"
)

// HuffmanSpec is the DHT form of a Huffman table.
type HuffmanSpec struct {
	// Number of codes of each length (1-16 bits)
	Bits [16]byte
	// Symbols in order of increasing code length
	Values []byte
}

// NumValues returns the number of symbols the counts describe.
func (h *HuffmanSpec) NumValues() int {
	n := 0
	for _, c := range h.Bits {
		n += int(c)
	}
	return n
}

// Validate checks that the counts match the symbols and form a prefix code.
func (h *HuffmanSpec) Validate() error {
	n := h.NumValues()
	if n == 0 || n > 256 || n != len(h.Values) {
		return fmt.Errorf("%w: %d counted codes for %d values", ErrInvalidDHT, n, len(h.Values))
	}
	code := 0
	for l := 0; l < 16; l++ {
		code += int(h.Bits[l])
		if code > 1<<(l+1) {
			return fmt.Errorf("%w: too many codes of length %d", ErrInvalidDHT, l+1)
		}
		code <<= 1
	}
	return nil
}

// HuffmanCode represents a Huffman code
type HuffmanCode struct {
	Code uint16 // The Huffman code
	Len  int    // Code length in bits, 0 when the symbol is absent
}

// BuildHuffmanCodes builds the symbol-indexed code lookup for a table
func BuildHuffmanCodes(table *HuffmanSpec) [256]HuffmanCode {
	var codes [256]HuffmanCode

	code := uint16(0)
	p := 0

	for l := 0; l < 16; l++ {
		for i := 0; i < int(table.Bits[l]); i++ {
			if p < len(table.Values) {
				codes[table.Values[p]] = HuffmanCode{
					Code: code,
					Len:  l + 1,
				}
				code++
				p++
			}
		}
		code <<= 1
	}

	return codes
}

// Category returns the magnitude category of a coefficient (or DC
// difference) and the low-order bits that follow its Huffman code.
// Negative values are sent as val-1 in category bits.
func Category(val int32) (cat int, mag uint32) {
	if val == 0 {
		return 0, 0
	}
	abs := val
	if abs < 0 {
		abs = -abs
		val--
	}
	cat = bits.Len32(uint32(abs))
	return cat, uint32(val) & (1<<uint(cat) - 1)
}

// Histogram counts symbol frequencies for optimal table generation.
type Histogram [256]int64

// Add counts one occurrence of a symbol.
func (h *Histogram) Add(symbol byte) {
	h[symbol]++
}

// maxCodeLen bounds intermediate code lengths before the 16-bit limit is enforced.
const maxCodeLen = 32

// OptimalHuffmanSpec generates a length-limited Huffman table for the given
// symbol frequencies (ITU T.81 Annex K.2). A reserved pseudo-symbol keeps
// the all-ones codeword out of the table.
func OptimalHuffmanSpec(hist *Histogram) HuffmanSpec {
	var freq [257]int64
	copy(freq[:256], hist[:])
	freq[256] = 1

	var codesize [257]int
	var others [257]int
	for i := range others {
		others[i] = -1
	}

	for {
		// c1 takes the least frequent symbol, c2 the next least; ties go to the larger index
		c1, c2 := -1, -1
		var v1, v2 int64
		for i := 0; i <= 256; i++ {
			if freq[i] != 0 && (c1 < 0 || freq[i] <= v1) {
				v1 = freq[i]
				c1 = i
			}
		}
		for i := 0; i <= 256; i++ {
			if freq[i] != 0 && i != c1 && (c2 < 0 || freq[i] <= v2) {
				v2 = freq[i]
				c2 = i
			}
		}
		if c2 < 0 {
			break
		}

		freq[c1] += freq[c2]
		freq[c2] = 0

		codesize[c1]++
		for others[c1] >= 0 {
			c1 = others[c1]
			codesize[c1]++
		}
		others[c1] = c2

		codesize[c2]++
		for others[c2] >= 0 {
			c2 = others[c2]
			codesize[c2]++
		}
	}

	var count [maxCodeLen + 1]int
	for i := 0; i <= 256; i++ {
		if codesize[i] != 0 {
			count[codesize[i]]++
		}
	}

	// Shorten codes longer than 16 bits
	for i := maxCodeLen; i > 16; i-- {
		for count[i] > 0 {
			j := i - 2
			for count[j] == 0 {
				j--
			}
			count[i] -= 2
			count[i-1]++
			count[j+1] += 2
			count[j]--
		}
	}

	// Drop the reserved symbol from the longest length in use
	i := 16
	for i > 0 && count[i] == 0 {
		i--
	}
	if i > 0 {
		count[i]--
	}

	var spec HuffmanSpec
	for l := 1; l <= 16; l++ {
		spec.Bits[l-1] = byte(count[l])
	}
	for l := 1; l <= maxCodeLen; l++ {
		for sym := 0; sym < 256; sym++ {
			if codesize[sym] == l {
				spec.Values = append(spec.Values, byte(sym))
			}
		}
	}
	return spec
}
