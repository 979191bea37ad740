package config

import (
	"encoding/binary"
	"fmt"
)

const (
	NONE CompressionKind = iota
	ZLIB
	DEFLATE
	SNAPPY
	ZSTD
	LZO
	LZ4
)

// CompressionKind selects the codec wrapped around a source before buffering.
type CompressionKind int

func (k CompressionKind) String() string {
	switch k {
	case NONE:
		return "NONE"
	case ZLIB:
		return "ZLIB"
	case DEFLATE:
		return "DEFLATE"
	case SNAPPY:
		return "SNAPPY"
	case ZSTD:
		return "ZSTD"
	case LZO:
		return "LZO"
	case LZ4:
		return "LZ4"
	}
	return fmt.Sprintf("CompressionKind(%d)", int(k))
}

const (
	// two 8 bytes primitives
	MinBufferSize     = 16
	DefaultBufferSize = 8192
)

type ReaderOptions struct {
	BufferSize int
	ByteOrder  binary.ByteOrder

	CompressionKind CompressionKind

	// map the whole file into memory instead of reading through the descriptor
	Mmap bool
}

func DefaultReaderOptions() ReaderOptions {
	return ReaderOptions{BufferSize: DefaultBufferSize, ByteOrder: binary.BigEndian, CompressionKind: NONE}
}
