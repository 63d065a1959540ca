package common

// JPEG marker constants
const (
	// Start of Image
	MarkerSOI = 0xFFD8

	// End of Image
	MarkerEOI = 0xFFD9

	// Start of Frame, Baseline DCT
	MarkerSOF0 = 0xFFC0

	// Define Huffman Table
	MarkerDHT = 0xFFC4

	// Define Quantization Table
	MarkerDQT = 0xFFDB

	// Start of Scan
	MarkerSOS = 0xFFDA

	// JFIF application segment
	MarkerAPP0 = 0xFFE0

	// Comment
	MarkerCOM = 0xFFFE
)

// MaxSegmentPayload is the largest payload a length-prefixed segment can carry.
const MaxSegmentPayload = 0xFFFF - 2

// JFIF density units
const (
	DensityUnitsNone          = 0
	DensityUnitsPerInch       = 1
	DensityUnitsPerCentimeter = 2
)
