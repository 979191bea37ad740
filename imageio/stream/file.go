package stream

import (
	"github.com/patrickhuang888/goimageio/imageio/config"
	imgio "github.com/patrickhuang888/goimageio/imageio/io"
)

// FileInputStream is an InputStream owning a file handle.
type FileInputStream struct {
	*InputStream
	file   imgio.File
	closed bool
}

// OpenFile opens path read only, memory mapped when opts.Mmap is set. A nil
// opts means the defaults.
func OpenFile(opts *config.ReaderOptions, path string) (*FileInputStream, error) {
	if opts == nil {
		o := config.DefaultReaderOptions()
		opts = &o
	}
	f, err := imgio.Open(opts, path)
	if err != nil {
		return nil, err
	}
	fs, err := NewFileInputStream(f, opts.BufferSize)
	if err != nil {
		if cerr := f.Close(); cerr != nil {
			logger.Errorf("closing %s: %+v", path, cerr)
		}
		return nil, err
	}
	if opts.ByteOrder != nil {
		fs.SetByteOrder(opts.ByteOrder)
	}
	return fs, nil
}

func NewFileInputStream(f imgio.File, bufferSize int) (*FileInputStream, error) {
	in, err := NewInputStream(f, bufferSize)
	if err != nil {
		return nil, err
	}
	return &FileInputStream{InputStream: in, file: f}, nil
}

// Length is the current file size.
func (fs *FileInputStream) Length() (int64, error) {
	if err := fs.ensureOpen(); err != nil {
		return 0, err
	}
	size, err := fs.file.Size()
	if err != nil {
		return 0, err
	}
	return size - fs.origin, nil
}

// Close releases the buffer and closes the file once, extra calls are no-ops.
// The file is the stream source, so the embedded stream closes it.
func (fs *FileInputStream) Close() error {
	if fs.closed {
		return nil
	}
	fs.closed = true
	return fs.InputStream.Close()
}
