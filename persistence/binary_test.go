package persistence

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterReaderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.WriteHeader(&FileHeader{
		Dimension:     2,
		Size:          3,
		SizeAtBuild:   3,
		Branching:     4,
		Iterations:    11,
		MemoryCounter: 128,
		CBIndex:       0.4,
	}))
	require.NoError(t, w.WriteNodeHeader(&NodeHeader{Radius: 1.5, Variance: 0.5, Size: 3, ChildCount: 0}))
	require.NoError(t, w.WriteFloat32Slice([]float32{1, 2}))
	require.NoError(t, w.WriteIndices([]int{0, 1, 2}))
	require.NoError(t, w.Finish())

	r := NewReader(&buf)
	h, err := r.ReadHeader()
	require.NoError(t, err)
	assert.Equal(t, uint32(2), h.Dimension)
	assert.Equal(t, int32(4), h.Branching)

	nh, err := r.ReadNodeHeader()
	require.NoError(t, err)
	assert.Equal(t, uint32(0), nh.ChildCount)

	vec, err := r.ReadFloat32Slice()
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2}, vec)

	idx, err := r.ReadIndices()
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, idx)

	require.NoError(t, r.VerifyChecksum())
}

func TestReaderInvalidMagic(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(make([]byte, 64))
	r := NewReader(&buf)
	_, err := r.ReadHeader()
	assert.ErrorIs(t, err, ErrInvalidMagic)
}

func TestChecksumMismatch(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteHeader(&FileHeader{Dimension: 1}))
	require.NoError(t, w.Finish())

	corrupted := buf.Bytes()
	corrupted[len(corrupted)-1] ^= 0xFF

	r := NewReader(bytes.NewReader(corrupted))
	_, err := r.ReadHeader()
	require.NoError(t, err)
	err = r.VerifyChecksum()
	var mismatch *ChecksumMismatchError
	assert.ErrorAs(t, err, &mismatch)
}
