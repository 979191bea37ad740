package stream

import (
	"io"

	"github.com/pkg/errors"
)

// Read copies up to len(p) buffered bytes, refilling only when the buffer is
// empty. It returns io.EOF at the end of the stream.
func (s *InputStream) Read(p []byte) (int, error) {
	if err := s.ensureOpen(); err != nil {
		return 0, err
	}
	if len(p) == 0 {
		return 0, nil
	}
	s.bitOffset = 0
	if err := s.ensureNonEmpty(); err != nil {
		if errors.Cause(err) == ErrEndOfStream {
			return 0, io.EOF
		}
		return 0, err
	}
	return s.buf.Take(p), nil
}

// ReadFully fills p or fails with ErrEndOfStream.
func (s *InputStream) ReadFully(p []byte) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	s.bitOffset = 0
	for len(p) > 0 {
		if err := s.ensureNonEmpty(); err != nil {
			return err
		}
		p = p[s.buf.Take(p):]
	}
	return nil
}

func (s *InputStream) ReadFullyInt16(dst []int16) error {
	return readFully(s, dst, 2, (*views).int16s)
}

// ReadFullyUint16 reads UTF-16 code units or unsigned shorts.
func (s *InputStream) ReadFullyUint16(dst []uint16) error {
	return readFully(s, dst, 2, func(v *views) func([]byte) uint16 { return v.uint16 })
}

func (s *InputStream) ReadFullyInt32(dst []int32) error {
	return readFully(s, dst, 4, (*views).int32s)
}

func (s *InputStream) ReadFullyInt64(dst []int64) error {
	return readFully(s, dst, 8, (*views).int64s)
}

func (s *InputStream) ReadFullyFloat32(dst []float32) error {
	return readFully(s, dst, 4, (*views).float32s)
}

func (s *InputStream) ReadFullyFloat64(dst []float64) error {
	return readFully(s, dst, 8, (*views).float64s)
}

// readFully decodes dst from runs of resident bytes, realigning the buffer
// on an element boundary before each run.
func readFully[T any](s *InputStream, dst []T, size int, decoder func(*views) func([]byte) T) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	get := decoder(s.view())
	for len(dst) > 0 {
		v, err := syncView(s, size, get)
		if err != nil {
			return err
		}
		n := v.copyTo(dst)
		s.buf.Next(n * size)
		dst = dst[n:]
	}
	return nil
}

func syncView[T any](s *InputStream, size int, get func([]byte) T) (typedView[T], error) {
	if s.buf.Position()%size != 0 {
		s.compact()
	}
	if err := s.ensureBufferContains(size); err != nil {
		return typedView[T]{}, err
	}
	return typedView[T]{b: s.buf.Bytes(), size: size, get: get}, nil
}
