package io

import (
	"bytes"
	"io"

	"github.com/pkg/errors"
)

// memFile is a File over a byte slice, used for in-memory images and tests.
type memFile struct {
	*bytes.Reader
	closed bool
}

func NewMemFile(data []byte) File {
	return &memFile{Reader: bytes.NewReader(data)}
}

func (m *memFile) Size() (int64, error) {
	return m.Reader.Size(), nil
}

func (m *memFile) Read(p []byte) (int, error) {
	if m.closed {
		return 0, errors.New("read on closed memory file")
	}
	return m.Reader.Read(p)
}

func (m *memFile) Close() error {
	m.closed = true
	return nil
}

// sequential hides every capability of the wrapped reader except reading,
// so streams over it can only move forward.
type sequential struct {
	r io.Reader
}

// NewSequential adapts a plain reader, such as a pipe or a socket, into a Source.
// Close closes r when it is an io.Closer.
func NewSequential(r io.Reader) Source {
	return &sequential{r: r}
}

func (s *sequential) Read(p []byte) (int, error) {
	return s.r.Read(p)
}

func (s *sequential) Close() error {
	if c, ok := s.r.(io.Closer); ok {
		return errors.WithStack(c.Close())
	}
	return nil
}
