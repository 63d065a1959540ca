package common

import (
	"testing"
)

func TestConvertSignedToUnsigned8(t *testing.T) {
	tests := []struct {
		name       string
		input      []byte
		bitsStored int
		expected   []byte
	}{
		{"8-bit: -128, -1, 0, 127", []byte{0x80, 0xFF, 0x00, 0x7F}, 8, []byte{0, 127, 128, 255}},
		{"7-bit: -64, 0, 63", []byte{0x40, 0x00, 0x3F}, 7, []byte{0, 64, 127}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]byte, len(tt.input))
			copy(data, tt.input)

			ConvertSignedToUnsigned8(data, tt.bitsStored)

			for i := range data {
				if data[i] != tt.expected[i] {
					t.Errorf("Byte %d: got 0x%02x, want 0x%02x", i, data[i], tt.expected[i])
				}
			}
		})
	}
}

func TestRoundTrip_SignedUnsignedConversion8(t *testing.T) {
	// Test that converting signed->unsigned->signed gives back original
	original := []byte{0x80, 0x9C, 0xFF, 0x00, 0x01, 0x64, 0x7F}
	data := make([]byte, len(original))
	copy(data, original)

	ConvertSignedToUnsigned8(data, 8)
	ConvertUnsignedToSigned8(data, 8)

	for i := range data {
		if data[i] != original[i] {
			t.Errorf("Round-trip failed at byte %d: got 0x%02x, want 0x%02x", i, data[i], original[i])
		}
	}
}
