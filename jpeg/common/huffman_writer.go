package common

// Huffman table classes of a DHT segment
const (
	TableClassDC = 0
	TableClassAC = 1
)

// WriteHuffmanTable writes spec as a DHT segment with table class class
// (TableClassDC or TableClassAC) and destination id (0-3).
func WriteHuffmanTable(writer *Writer, class byte, id byte, spec *HuffmanSpec) error {
	n := spec.NumValues()
	data := make([]byte, 0, 17+n)
	data = append(data, class<<4|id)
	data = append(data, spec.Bits[:]...)
	data = append(data, spec.Values[:n]...)
	return writer.WriteSegment(MarkerDHT, data)
}
