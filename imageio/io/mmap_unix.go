//go:build linux || darwin

package io

import (
	"bytes"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// mappedFile serves reads from a read-only shared mapping of the whole file.
type mappedFile struct {
	*bytes.Reader
	f    *os.File
	data []byte
}

func openMapped(path string) (File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, errors.WithStack(err)
	}

	var data []byte
	if st.Size() > 0 {
		data, err = unix.Mmap(int(f.Fd()), 0, int(st.Size()), unix.PROT_READ, unix.MAP_SHARED)
		if err != nil {
			_ = f.Close()
			return nil, errors.Wrapf(err, "mmap %s", path)
		}
	}
	logger.Debugf("mapped file %s, %d bytes", path, len(data))
	return &mappedFile{Reader: bytes.NewReader(data), f: f, data: data}, nil
}

func (m *mappedFile) Size() (int64, error) {
	return int64(len(m.data)), nil
}

func (m *mappedFile) Close() error {
	if m.f == nil {
		return nil
	}
	var err error
	if m.data != nil {
		if err = unix.Munmap(m.data); err != nil {
			err = errors.WithStack(err)
		}
		m.data = nil
	}
	if cerr := m.f.Close(); cerr != nil && err == nil {
		err = errors.WithStack(cerr)
	}
	logger.Debugf("unmapped file %s", m.f.Name())
	m.f = nil
	m.Reader = bytes.NewReader(nil)
	return err
}
