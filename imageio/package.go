package imageio

import (
	"encoding/binary"
	"io"

	"github.com/patrickhuang888/goimageio/imageio/config"
	imgio "github.com/patrickhuang888/goimageio/imageio/io"
	"github.com/patrickhuang888/goimageio/imageio/stream"
	log "github.com/sirupsen/logrus"
)

var logger = log.New()

func SetLogLevel(level log.Level) {
	logger.SetLevel(level)
	imgio.SetLogLevel(level)
	stream.SetLogLevel(level)
}

// ImageInputStream is the random access reader format parsers are written
// against.
type ImageInputStream interface {
	io.Reader
	io.ByteReader
	io.Closer

	ByteOrder() binary.ByteOrder
	SetByteOrder(order binary.ByteOrder)

	ReadBit() (int, error)
	ReadBits(numBits int) (uint64, error)
	ReadBool() (bool, error)
	ReadInt8() (int8, error)
	ReadUint8() (uint8, error)
	ReadInt16() (int16, error)
	ReadUint16() (uint16, error)
	ReadChar() (uint16, error)
	ReadInt32() (int32, error)
	ReadUint32() (uint32, error)
	ReadInt64() (int64, error)
	ReadUint64() (uint64, error)
	ReadFloat32() (float32, error)
	ReadFloat64() (float64, error)
	ReadUvarint() (uint64, error)
	ReadVarint() (int64, error)
	ReadLine() (string, error)
	ReadUTF() (string, error)

	ReadFully(p []byte) error
	ReadFullyInt16(dst []int16) error
	ReadFullyUint16(dst []uint16) error
	ReadFullyInt32(dst []int32) error
	ReadFullyInt64(dst []int64) error
	ReadFullyFloat32(dst []float32) error
	ReadFullyFloat64(dst []float64) error

	StreamPosition() (int64, error)
	FlushedPosition() int64
	Length() (int64, error)
	Seek(pos int64) error
	SkipBytes(n int64) (int64, error)
	Mark() error
	Reset() error
	Flush() error
	FlushBefore(pos int64) error
	BitOffset() (int, error)
	SetBitOffset(offset int) error
}

var (
	_ ImageInputStream = (*stream.InputStream)(nil)
	_ ImageInputStream = (*stream.FileInputStream)(nil)
)

// NewReader buffers r according to opts, decompressing it first when
// opts.CompressionKind is set. The stream owns r.
func NewReader(opts *config.ReaderOptions, r io.Reader) (ImageInputStream, error) {
	opts = withDefaults(opts)

	src, ok := r.(imgio.Source)
	if !ok {
		src = imgio.NewSequential(r)
	}
	dec, err := imgio.NewDecompressor(opts.CompressionKind, src)
	if err != nil {
		if cerr := src.Close(); cerr != nil {
			logger.Errorf("closing source: %+v", cerr)
		}
		return nil, err
	}
	src = dec

	in, err := stream.NewInputStream(src, opts.BufferSize)
	if err != nil {
		if cerr := src.Close(); cerr != nil {
			logger.Errorf("closing source: %+v", cerr)
		}
		return nil, err
	}
	in.SetByteOrder(opts.ByteOrder)
	return in, nil
}

// Open opens the file at path. Uncompressed files are seekable and sized,
// compressed ones are read sequentially.
func Open(opts *config.ReaderOptions, path string) (ImageInputStream, error) {
	opts = withDefaults(opts)
	if opts.CompressionKind == config.NONE {
		fs, err := stream.OpenFile(opts, path)
		if err != nil {
			return nil, err
		}
		return fs, nil
	}

	f, err := imgio.Open(opts, path)
	if err != nil {
		return nil, err
	}
	logger.Debugf("opening %s compressed with %s", path, opts.CompressionKind)
	return NewReader(opts, imgio.NewSequential(f))
}

func withDefaults(opts *config.ReaderOptions) *config.ReaderOptions {
	d := config.DefaultReaderOptions()
	if opts == nil {
		return &d
	}
	o := *opts
	if o.BufferSize == 0 {
		o.BufferSize = d.BufferSize
	}
	if o.ByteOrder == nil {
		o.ByteOrder = d.ByteOrder
	}
	return &o
}
