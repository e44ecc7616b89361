package persistence

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Writer writes a tree snapshot in the structural binary format.
type Writer struct {
	w         *ChecksumWriter
	byteOrder binary.ByteOrder
}

// NewWriter wraps w, computing a running CRC32 checksum as bytes are
// written. Call Finish after the tree has been written to flush the
// checksum trailer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: NewChecksumWriter(w), byteOrder: binary.LittleEndian}
}

// WriteHeader writes the file header, filling in Magic and Version.
func (bw *Writer) WriteHeader(h *FileHeader) error {
	h.Magic = MagicNumber
	h.Version = Version
	return binary.Write(bw.w, bw.byteOrder, h)
}

// WriteNodeHeader writes one node's fixed-size header.
func (bw *Writer) WriteNodeHeader(h *NodeHeader) error {
	return binary.Write(bw.w, bw.byteOrder, h)
}

// WriteFloat32Slice writes vec as a length-prefixed slice of float32s.
func (bw *Writer) WriteFloat32Slice(vec []float32) error {
	if err := binary.Write(bw.w, bw.byteOrder, uint32(len(vec))); err != nil {
		return err
	}
	for _, v := range vec {
		if err := binary.Write(bw.w, bw.byteOrder, v); err != nil {
			return err
		}
	}
	return nil
}

// WriteIndices writes idx as a length-prefixed slice of int64s.
func (bw *Writer) WriteIndices(idx []int) error {
	if err := binary.Write(bw.w, bw.byteOrder, uint32(len(idx))); err != nil {
		return err
	}
	for _, v := range idx {
		if err := binary.Write(bw.w, bw.byteOrder, int64(v)); err != nil {
			return err
		}
	}
	return nil
}

// Finish writes the trailing CRC32 checksum of everything written so far.
func (bw *Writer) Finish() error {
	return binary.Write(bw.w.w, bw.byteOrder, bw.w.Sum())
}

// Reader reads a tree snapshot written by Writer.
type Reader struct {
	r         *ChecksumReader
	byteOrder binary.ByteOrder
}

// NewReader wraps r, computing a running CRC32 checksum as bytes are read.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: NewChecksumReader(r), byteOrder: binary.LittleEndian}
}

// ReadHeader reads the file header and validates Magic/Version.
func (br *Reader) ReadHeader() (*FileHeader, error) {
	h := &FileHeader{}
	if err := binary.Read(br.r, br.byteOrder, h); err != nil {
		return nil, fmt.Errorf("persistence: read header: %w", err)
	}
	if h.Magic != MagicNumber {
		return nil, ErrInvalidMagic
	}
	if h.Version != Version {
		return nil, ErrInvalidVersion
	}
	return h, nil
}

// ReadNodeHeader reads one node's fixed-size header.
func (br *Reader) ReadNodeHeader() (*NodeHeader, error) {
	h := &NodeHeader{}
	if err := binary.Read(br.r, br.byteOrder, h); err != nil {
		return nil, err
	}
	return h, nil
}

// ReadFloat32Slice reads a length-prefixed slice of float32s.
func (br *Reader) ReadFloat32Slice() ([]float32, error) {
	var n uint32
	if err := binary.Read(br.r, br.byteOrder, &n); err != nil {
		return nil, err
	}
	out := make([]float32, n)
	for i := range out {
		if err := binary.Read(br.r, br.byteOrder, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// ReadIndices reads a length-prefixed slice of int64s back into []int.
func (br *Reader) ReadIndices() ([]int, error) {
	var n uint32
	if err := binary.Read(br.r, br.byteOrder, &n); err != nil {
		return nil, err
	}
	out := make([]int, n)
	for i := range out {
		var v int64
		if err := binary.Read(br.r, br.byteOrder, &v); err != nil {
			return nil, err
		}
		out[i] = int(v)
	}
	return out, nil
}

// VerifyChecksum reads the trailing CRC32 and compares it against
// everything read so far.
func (br *Reader) VerifyChecksum() error {
	var expected uint32
	if err := binary.Read(br.r.r, br.byteOrder, &expected); err != nil {
		return fmt.Errorf("persistence: read checksum: %w", err)
	}
	return br.r.Verify(expected)
}
