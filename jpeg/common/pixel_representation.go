package common

// ConvertSignedToUnsigned8 re-biases two's-complement samples of bitsStored
// (1-8) bits into the unsigned range [0, 2^bitsStored-1], in place.
func ConvertSignedToUnsigned8(pixelData []byte, bitsStored int) {
	if bitsStored <= 0 || bitsStored > 8 {
		return
	}

	offset := int32(1) << (bitsStored - 1)
	mask := int32(1)<<bitsStored - 1

	for i, b := range pixelData {
		val := int32(b) & mask
		// Interpret as signed
		if val >= offset {
			val -= 1 << bitsStored
		}
		pixelData[i] = byte(val + offset)
	}
}

// ConvertUnsignedToSigned8 undoes ConvertSignedToUnsigned8, in place.
func ConvertUnsignedToSigned8(pixelData []byte, bitsStored int) {
	if bitsStored <= 0 || bitsStored > 8 {
		return
	}

	offset := int32(1) << (bitsStored - 1)

	for i, b := range pixelData {
		val := int32(b) - offset
		// Wrap to unsigned byte range for storage
		if val < 0 {
			val += 1 << bitsStored
		}
		pixelData[i] = byte(val)
	}
}
