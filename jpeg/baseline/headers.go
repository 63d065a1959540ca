package baseline

import (
	"encoding/binary"

	"github.com/cocosip/go-jpeg-baseline/jpeg/common"
)

// writeHeaders writes everything from SOI up to and including SOS
func writeHeaders(writer *common.Writer, ctx *EncodeContext, opts *Options) error {
	if err := writer.WriteMarker(common.MarkerSOI); err != nil {
		return err
	}
	if opts.WriteJFIF {
		if err := writeJFIF(writer, opts); err != nil {
			return err
		}
	}
	if opts.Comment != "" {
		if err := writer.WriteSegment(common.MarkerCOM, []byte(opts.Comment)); err != nil {
			return err
		}
	}
	if err := writeDQT(writer, ctx); err != nil {
		return err
	}
	if err := writeSOF0(writer, ctx); err != nil {
		return err
	}
	if err := writeDHT(writer, ctx); err != nil {
		return err
	}
	return writeSOS(writer, ctx)
}

// writeJFIF writes the JFIF 1.01 APP0 segment without thumbnail
func writeJFIF(writer *common.Writer, opts *Options) error {
	data := []byte{
		'J', 'F', 'I', 'F', 0,
		1, 1, // Version 1.01
		opts.DensityUnits,
		0, 0, // X density
		0, 0, // Y density
		0, 0, // No thumbnail
	}
	binary.BigEndian.PutUint16(data[8:], opts.XDensity)
	binary.BigEndian.PutUint16(data[10:], opts.YDensity)
	return writer.WriteSegment(common.MarkerAPP0, data)
}

// writeDQT writes one Define Quantization Table segment per table
func writeDQT(writer *common.Writer, ctx *EncodeContext) error {
	for i := 0; i < ctx.numTables(); i++ {
		data := make([]byte, 1+64)
		data[0] = byte(i) // Precision=0 (8-bit), Table ID=i

		// Write in zigzag order
		for j := 0; j < 64; j++ {
			data[1+j] = byte(ctx.QuantTables[i][common.ZigZag[j]])
		}

		if err := writer.WriteSegment(common.MarkerDQT, data); err != nil {
			return err
		}
	}
	return nil
}

// writeSOF0 writes Start of Frame (Baseline DCT)
func writeSOF0(writer *common.Writer, ctx *EncodeContext) error {
	data := make([]byte, 6+len(ctx.Components)*3)

	data[0] = 8 // Precision: 8 bits
	binary.BigEndian.PutUint16(data[1:], uint16(ctx.Height))
	binary.BigEndian.PutUint16(data[3:], uint16(ctx.Width))
	data[5] = byte(len(ctx.Components))

	for i, comp := range ctx.Components {
		data[6+i*3] = byte(comp.ID)
		data[7+i*3] = byte(comp.HSampFactor<<4 | comp.VSampFactor)
		data[8+i*3] = byte(comp.QuantTable)
	}

	return writer.WriteSegment(common.MarkerSOF0, data)
}

// writeDHT writes one Define Huffman Table segment per table
func writeDHT(writer *common.Writer, ctx *EncodeContext) error {
	for i := 0; i < ctx.numTables(); i++ {
		if err := common.WriteHuffmanTable(writer, common.TableClassDC, byte(i), ctx.DCTables[i]); err != nil {
			return err
		}
		if err := common.WriteHuffmanTable(writer, common.TableClassAC, byte(i), ctx.ACTables[i]); err != nil {
			return err
		}
	}
	return nil
}

// writeSOS writes the Start of Scan header for the single interleaved scan
func writeSOS(writer *common.Writer, ctx *EncodeContext) error {
	n := len(ctx.Components)
	data := make([]byte, 1+n*2+3)
	data[0] = byte(n)

	for i, comp := range ctx.Components {
		data[1+i*2] = byte(comp.ID)
		data[2+i*2] = byte(comp.DCTable<<4 | comp.ACTable)
	}

	data[1+n*2] = 0  // Start of spectral selection
	data[2+n*2] = 63 // End of spectral selection
	data[3+n*2] = 0  // Successive approximation

	return writer.WriteSegment(common.MarkerSOS, data)
}
