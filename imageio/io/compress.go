package io

import (
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/patrickhuang888/goimageio/imageio/config"
	"github.com/pkg/errors"
)

// decompressor is a sequential source inflating the bytes of another source.
// It cannot seek and has no known size.
type decompressor struct {
	r     io.Reader
	codec io.Closer
	in    Source
}

// NewDecompressor wraps in so reads return decompressed bytes. Closing the
// result closes the codec and then in.
func NewDecompressor(kind config.CompressionKind, in Source) (Source, error) {
	var d *decompressor

	switch kind {
	case config.NONE:
		return in, nil

	case config.ZLIB:
		r, err := zlib.NewReader(in)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		d = &decompressor{r: r, codec: r}

	case config.DEFLATE:
		r := flate.NewReader(in)
		d = &decompressor{r: r, codec: r}

	case config.SNAPPY:
		// s2 readers decode snappy framed streams as well
		d = &decompressor{r: s2.NewReader(in)}

	case config.ZSTD:
		zr, err := zstd.NewReader(in)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		rc := zr.IOReadCloser()
		d = &decompressor{r: rc, codec: rc}

	default:
		return nil, errors.Errorf("unsupported compression kind %s", kind)
	}

	d.in = in
	logger.Tracef("decompressing source with %s", kind)
	return d, nil
}

func (d *decompressor) Read(p []byte) (int, error) {
	n, err := d.r.Read(p)
	if err != nil && err != io.EOF {
		return n, errors.WithStack(err)
	}
	return n, err
}

func (d *decompressor) Close() error {
	var err error
	if d.codec != nil {
		if err = d.codec.Close(); err != nil {
			err = errors.WithStack(err)
		}
		d.codec = nil
	}
	if d.in != nil {
		if cerr := d.in.Close(); cerr != nil {
			if err != nil {
				logger.Errorf("closing compressed source: %+v", cerr)
			} else {
				err = cerr
			}
		}
		d.in = nil
	}
	return err
}
