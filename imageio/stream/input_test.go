package stream

import (
	"bytes"
	"io"
	"testing"
	"testing/iotest"

	imgio "github.com/patrickhuang888/goimageio/imageio/io"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	SetLogLevel(log.TraceLevel)
}

// seekable and sized
func newMemStream(t *testing.T, data []byte, bufferSize int) *InputStream {
	s, err := NewInputStream(imgio.NewMemFile(data), bufferSize)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	return s
}

// sequential source returning one byte per read
func newTrickleStream(t *testing.T, data []byte, bufferSize int) *InputStream {
	src := imgio.NewSequential(iotest.OneByteReader(bytes.NewReader(data)))
	s, err := NewInputStream(src, bufferSize)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	return s
}

func requireCause(t *testing.T, err error, cause error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, cause, errors.Cause(err), "%+v", err)
}

func position(t *testing.T, s *InputStream) int64 {
	t.Helper()
	p, err := s.StreamPosition()
	require.NoError(t, err)
	return p
}

func bitOffset(t *testing.T, s *InputStream) int {
	t.Helper()
	o, err := s.BitOffset()
	require.NoError(t, err)
	return o
}

func sequence(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i)
	}
	return data
}

type countingSource struct {
	io.Reader
	closes int
}

func (c *countingSource) Close() error {
	c.closes++
	return nil
}

func TestNewInputStreamBufferSize(t *testing.T) {
	_, err := NewInputStream(imgio.NewMemFile(nil), 15)
	requireCause(t, err, ErrInvalidArgument)

	_, err = NewInputStreamBuffer(imgio.NewMemFile(nil), make([]byte, 8))
	requireCause(t, err, ErrInvalidArgument)

	_, err = NewInputStream(nil, 16)
	requireCause(t, err, ErrInvalidArgument)

	// content of a caller buffer is not data
	buf := bytes.Repeat([]byte{0xFF}, 16)
	s, err := NewInputStreamBuffer(imgio.NewMemFile([]byte{7}), buf)
	require.NoError(t, err)
	b, err := s.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(7), b)
	_, err = s.ReadByte()
	requireCause(t, err, ErrEndOfStream)
}

func TestSourceOrigin(t *testing.T) {
	f := imgio.NewMemFile(sequence(10))
	_, err := f.Seek(4, io.SeekStart)
	require.NoError(t, err)

	s, err := NewInputStream(f, 16)
	require.NoError(t, err)
	l, err := s.Length()
	require.NoError(t, err)
	assert.Equal(t, int64(6), l)

	b, err := s.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(4), b)

	require.NoError(t, s.Seek(5))
	b, err = s.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(9), b)
}

func TestLengthUnknown(t *testing.T) {
	s := newTrickleStream(t, sequence(4), 16)
	l, err := s.Length()
	require.NoError(t, err)
	assert.Equal(t, int64(-1), l)
}

func TestSeekSeekable(t *testing.T) {
	s := newMemStream(t, sequence(100), 16)

	require.NoError(t, s.Seek(90))
	b, err := s.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(90), b)

	require.NoError(t, s.Seek(5))
	b, err = s.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(5), b)

	// inside buffered window
	require.NoError(t, s.Seek(12))
	b, err = s.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(12), b)

	require.NoError(t, s.Seek(150))
	assert.Equal(t, int64(150), position(t, s))
	_, err = s.ReadByte()
	requireCause(t, err, ErrEndOfStream)
}

func TestSeekSequential(t *testing.T) {
	s := newTrickleStream(t, sequence(100), 16)

	require.NoError(t, s.Seek(50))
	b, err := s.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(50), b)

	requireCause(t, s.Seek(10), ErrPositionOutOfBounds)

	require.NoError(t, s.Seek(51))
	b, err = s.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(51), b)

	requireCause(t, s.Seek(200), ErrEndOfStream)
}

func TestSeekResetsBitOffset(t *testing.T) {
	s := newMemStream(t, []byte{0xFF, 0x00}, 16)
	_, err := s.ReadBits(3)
	require.NoError(t, err)
	assert.Equal(t, 3, bitOffset(t, s))

	require.NoError(t, s.Seek(1))
	assert.Equal(t, 0, bitOffset(t, s))
}

func TestSkipBytes(t *testing.T) {
	s := newMemStream(t, sequence(100), 16)
	n, err := s.SkipBytes(10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), n)
	n, err = s.SkipBytes(200)
	require.NoError(t, err)
	assert.Equal(t, int64(90), n)
	assert.Equal(t, int64(100), position(t, s))

	s = newTrickleStream(t, sequence(100), 16)
	n, err = s.SkipBytes(30)
	require.NoError(t, err)
	assert.Equal(t, int64(30), n)
	b, err := s.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(30), b)

	n, err = s.SkipBytes(100)
	require.NoError(t, err)
	assert.Equal(t, int64(69), n)
	assert.Equal(t, int64(100), position(t, s))

	n, err = s.SkipBytes(-3)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestMarkReset(t *testing.T) {
	s := newMemStream(t, sequence(16), 16)

	_, err := s.ReadBits(3)
	require.NoError(t, err)
	require.NoError(t, s.Mark())

	_, err = s.ReadInt32()
	require.NoError(t, err)
	require.NoError(t, s.Mark())

	_, err = s.ReadInt16()
	require.NoError(t, err)
	_, err = s.ReadBit()
	require.NoError(t, err)
	assert.Equal(t, int64(6), position(t, s))
	assert.Equal(t, 1, bitOffset(t, s))

	require.NoError(t, s.Reset())
	assert.Equal(t, int64(4), position(t, s))
	assert.Equal(t, 0, bitOffset(t, s))

	require.NoError(t, s.Reset())
	assert.Equal(t, int64(0), position(t, s))
	assert.Equal(t, 3, bitOffset(t, s))

	requireCause(t, s.Reset(), ErrNoMarkedPosition)
}

func TestMarkResetReadInt(t *testing.T) {
	for _, s := range []*InputStream{newMemStream(t, sequence(40), 16), newTrickleStream(t, sequence(40), 16)} {
		_, err := s.SkipBytes(7)
		require.NoError(t, err)

		require.NoError(t, s.Mark())
		v1, err := s.ReadInt32()
		require.NoError(t, err)
		require.NoError(t, s.Reset())
		assert.Equal(t, int64(7), position(t, s))

		v2, err := s.ReadInt32()
		require.NoError(t, err)
		assert.Equal(t, v1, v2)
	}
}

func TestResetAfterRefill(t *testing.T) {
	data := sequence(40)

	s := newMemStream(t, data, 16)
	require.NoError(t, s.Mark())
	require.NoError(t, s.ReadFully(make([]byte, 30)))
	require.NoError(t, s.Reset())
	b, err := s.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0), b)

	// dropped bytes of a sequential source cannot be read again
	s = newTrickleStream(t, data, 16)
	require.NoError(t, s.Mark())
	require.NoError(t, s.ReadFully(make([]byte, 30)))
	requireCause(t, s.Reset(), ErrPositionOutOfBounds)
}

func TestFlushBefore(t *testing.T) {
	s := newMemStream(t, sequence(32), 16)
	require.NoError(t, s.ReadFully(make([]byte, 4)))

	require.NoError(t, s.FlushBefore(2))
	assert.Equal(t, int64(2), s.FlushedPosition())

	requireCause(t, s.Seek(1), ErrPositionOutOfBounds)
	require.NoError(t, s.Seek(2))
	b, err := s.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(2), b)

	requireCause(t, s.FlushBefore(1), ErrPositionOutOfBounds)
	requireCause(t, s.FlushBefore(10), ErrPositionOutOfBounds)

	require.NoError(t, s.Flush())
	assert.Equal(t, int64(3), s.FlushedPosition())
	requireCause(t, s.Seek(2), ErrPositionOutOfBounds)

	// reads continue across the flushed buffer
	b, err = s.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(3), b)
	v, err := s.ReadInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(0x04050607), v)
}

func TestBitOffsetArgument(t *testing.T) {
	s := newMemStream(t, []byte{0x5A}, 16)
	requireCause(t, s.SetBitOffset(8), ErrInvalidArgument)
	requireCause(t, s.SetBitOffset(-1), ErrInvalidArgument)

	require.NoError(t, s.SetBitOffset(4))
	v, err := s.ReadBits(4)
	require.NoError(t, err)
	assert.Equal(t, uint64(0xA), v)
}

func TestClose(t *testing.T) {
	src := &countingSource{Reader: bytes.NewReader(sequence(8))}
	s, err := NewInputStream(src, 16)
	require.NoError(t, err)
	require.NoError(t, s.Mark())

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.Equal(t, 1, src.closes)

	_, err = s.ReadInt32()
	requireCause(t, err, ErrStreamClosed)
	_, err = s.ReadByte()
	requireCause(t, err, ErrStreamClosed)
	_, err = s.ReadBits(3)
	requireCause(t, err, ErrStreamClosed)
	_, err = s.Read(make([]byte, 2))
	requireCause(t, err, ErrStreamClosed)
	_, err = s.StreamPosition()
	requireCause(t, err, ErrStreamClosed)
	_, err = s.ReadLine()
	requireCause(t, err, ErrStreamClosed)
	requireCause(t, s.ReadFullyInt32(make([]int32, 1)), ErrStreamClosed)
	requireCause(t, s.Seek(0), ErrStreamClosed)
	requireCause(t, s.Reset(), ErrStreamClosed)
	requireCause(t, s.Mark(), ErrStreamClosed)
	requireCause(t, s.Flush(), ErrStreamClosed)
}

type emptySource struct{}

func (emptySource) Read(p []byte) (int, error) { return 0, nil }
func (emptySource) Close() error               { return nil }

func TestNoProgress(t *testing.T) {
	s, err := NewInputStream(emptySource{}, 16)
	require.NoError(t, err)
	_, err = s.ReadByte()
	requireCause(t, err, io.ErrNoProgress)
}

func TestSourceError(t *testing.T) {
	src := imgio.NewSequential(iotest.TimeoutReader(bytes.NewReader(sequence(32))))
	s, err := NewInputStream(src, 16)
	require.NoError(t, err)

	require.NoError(t, s.ReadFully(make([]byte, 16)))
	_, err = s.ReadByte()
	requireCause(t, err, iotest.ErrTimeout)
}
