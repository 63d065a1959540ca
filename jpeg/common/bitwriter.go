package common

import (
	"errors"
	"fmt"
	"io"
)

const bitWriterBufSize = 4096

// BitWriter packs Huffman codes into entropy-coded bytes, stuffing a 0x00
// after every 0xFF. Bytes are staged in a buffer and handed to the
// underlying writer in chunks.
type BitWriter struct {
	w     io.Writer
	acc   uint64 // Bit accumulator, the low nBits are pending
	nBits uint
	buf   []byte
	err   error
}

// NewBitWriter creates a new bit writer
func NewBitWriter(w io.Writer) *BitWriter {
	return &BitWriter{
		w:   w,
		buf: make([]byte, 0, bitWriterBufSize+2),
	}
}

// WriteBits writes the low n bits of code, most significant first
func (bw *BitWriter) WriteBits(code uint32, n int) error {
	if bw.err != nil {
		return bw.err
	}
	if n == 0 {
		return nil
	}

	bw.acc = bw.acc<<uint(n) | uint64(code&(1<<uint(n)-1))
	bw.nBits += uint(n)

	for bw.nBits >= 8 {
		bw.emit(byte(bw.acc >> (bw.nBits - 8)))
		bw.nBits -= 8
	}

	if len(bw.buf) >= bitWriterBufSize {
		return bw.drain()
	}
	return nil
}

// WriteCode writes a Huffman code
func (bw *BitWriter) WriteCode(c HuffmanCode) error {
	return bw.WriteBits(uint32(c.Code), c.Len)
}

func (bw *BitWriter) emit(b byte) {
	bw.buf = append(bw.buf, b)
	if b == 0xFF {
		bw.buf = append(bw.buf, 0x00)
	}
}

func (bw *BitWriter) drain() error {
	if len(bw.buf) == 0 {
		return nil
	}
	if _, err := bw.w.Write(bw.buf); err != nil {
		if !errors.Is(err, ErrIO) {
			err = fmt.Errorf("%w: %w", ErrIO, err)
		}
		bw.err = err
		return err
	}
	bw.buf = bw.buf[:0]
	return nil
}

// Flush pads the last partial byte with 1 bits and writes everything out.
// The writer is left byte aligned with no pending bits.
func (bw *BitWriter) Flush() error {
	if bw.err != nil {
		return bw.err
	}
	if bw.nBits > 0 {
		pad := 8 - bw.nBits
		bw.emit(byte(bw.acc<<pad) | byte(1<<pad-1))
		bw.nBits = 0
	}
	bw.acc = 0
	return bw.drain()
}

// Err returns the first write error, if any
func (bw *BitWriter) Err() error {
	return bw.err
}

// Pending returns the number of bits not yet packed into a byte
func (bw *BitWriter) Pending() int {
	return int(bw.nBits)
}
