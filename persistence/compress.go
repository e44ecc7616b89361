package persistence

import (
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
)

// CompressWriter wraps w with a zstd encoder, the same role zstd plays
// around a write-ahead log segment: a snapshot is itself a write-once
// byte stream, so it compresses the same way.
func CompressWriter(w io.Writer) (io.WriteCloser, error) {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return nil, fmt.Errorf("persistence: create zstd encoder: %w", err)
	}
	return enc, nil
}

// DecompressReader wraps r with a zstd decoder matching CompressWriter.
func DecompressReader(r io.Reader) (*zstd.Decoder, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("persistence: create zstd decoder: %w", err)
	}
	return dec, nil
}
