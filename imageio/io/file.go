package io

import (
	"io"
	"os"

	"github.com/patrickhuang888/goimageio/imageio/config"
	"github.com/pkg/errors"
)

type fileFile struct {
	f      *os.File
	closed bool
}

func (fr *fileFile) Size() (int64, error) {
	fi, err := fr.f.Stat()
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return fi.Size(), nil
}

func (fr *fileFile) Read(p []byte) (n int, err error) {
	n, err = fr.f.Read(p)
	if err != nil && err != io.EOF {
		return n, errors.WithStack(err)
	}
	return
}

func (fr *fileFile) Seek(offset int64, whence int) (int64, error) {
	n, err := fr.f.Seek(offset, whence)
	if err != nil {
		return n, errors.WithStack(err)
	}
	return n, nil
}

// Close releases the handle once, later calls are no-ops.
func (fr *fileFile) Close() error {
	if fr.closed {
		return nil
	}
	fr.closed = true
	logger.Debugf("closing file %s", fr.f.Name())
	if err := fr.f.Close(); err != nil {
		return errors.WithStack(err)
	}
	return nil
}

func OpenOsFile(f *os.File) File {
	return &fileFile{f: f}
}

func Open(opts *config.ReaderOptions, path string) (in File, err error) {
	if opts != nil && opts.Mmap {
		return openMapped(path)
	}

	var f *os.File
	if f, err = os.Open(path); err != nil {
		return nil, errors.WithStack(err)
	}
	logger.Debugf("opened file %s", path)
	return OpenOsFile(f), nil
}
