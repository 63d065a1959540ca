package common

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Writer provides utilities for writing JPEG data.
// The first write error is kept and returned by every later call, so a
// failed stream is never completed.
type Writer struct {
	w   io.Writer
	buf [2]byte
	n   int64
	err error
}

// NewWriter creates a new JPEG writer
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write writes raw bytes
func (w *Writer) Write(data []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.w.Write(data)
	w.n += int64(n)
	if err == nil && n < len(data) {
		err = io.ErrShortWrite
	}
	if err != nil {
		w.err = fmt.Errorf("%w: %w", ErrIO, err)
		return n, w.err
	}
	return n, nil
}

// WriteByte writes a single byte
func (w *Writer) WriteByte(b byte) error {
	w.buf[0] = b
	_, err := w.Write(w.buf[:1])
	return err
}

// WriteUint16 writes a 16-bit big-endian value
func (w *Writer) WriteUint16(v uint16) error {
	binary.BigEndian.PutUint16(w.buf[:2], v)
	_, err := w.Write(w.buf[:2])
	return err
}

// WriteMarker writes a JPEG marker
func (w *Writer) WriteMarker(marker uint16) error {
	return w.WriteUint16(marker)
}

// WriteSegment writes a segment with length
// The length field is automatically calculated and includes itself (2 bytes)
func (w *Writer) WriteSegment(marker uint16, data []byte) error {
	if len(data) > MaxSegmentPayload {
		return fmt.Errorf("%w: marker 0x%04X with %d bytes", ErrSegmentTooLarge, marker, len(data))
	}
	if err := w.WriteMarker(marker); err != nil {
		return err
	}
	if err := w.WriteUint16(uint16(len(data) + 2)); err != nil {
		return err
	}
	_, err := w.Write(data)
	return err
}

// Err returns the first write error, if any
func (w *Writer) Err() error {
	return w.err
}

// Written returns the number of bytes accepted by the underlying writer
func (w *Writer) Written() int64 {
	return w.n
}
