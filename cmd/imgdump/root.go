package main

import (
	"encoding/binary"
	"fmt"
	"os"
	"strings"

	"github.com/patrickhuang888/goimageio/imageio"
	"github.com/patrickhuang888/goimageio/imageio/config"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose     bool
	byteOrder   string
	bufferSize  int
	compression string
	useMmap     bool
)

var rootCmd = &cobra.Command{
	Use:   "imgdump",
	Short: "Decode typed values from binary image files",
	Long: `imgdump reads raster and image files through a buffered, seekable
binary stream and prints values decoded as primitives, bit fields, text lines
or arrays. It is useful to inspect headers and directories of tagged formats.`,
	Version: "0.1.0",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			imageio.SetLogLevel(log.TraceLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Trace buffer refills and seeks")
	rootCmd.PersistentFlags().StringVarP(&byteOrder, "order", "o", "big", "Byte order, big or little")
	rootCmd.PersistentFlags().IntVar(&bufferSize, "buffer-size", config.DefaultBufferSize, "Stream buffer size in bytes")
	rootCmd.PersistentFlags().StringVarP(&compression, "compression", "c", "none", "Source compression: none, zlib, deflate, snappy, zstd")
	rootCmd.PersistentFlags().BoolVar(&useMmap, "mmap", false, "Memory map the file")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func readerOptions() (*config.ReaderOptions, error) {
	opts := config.DefaultReaderOptions()
	opts.BufferSize = bufferSize
	opts.Mmap = useMmap

	switch strings.ToLower(byteOrder) {
	case "big", "be", "mm":
		opts.ByteOrder = binary.BigEndian
	case "little", "le", "ii":
		opts.ByteOrder = binary.LittleEndian
	default:
		return nil, errors.Errorf("unknown byte order %q", byteOrder)
	}

	kind, err := parseCompression(compression)
	if err != nil {
		return nil, err
	}
	opts.CompressionKind = kind
	return &opts, nil
}

func parseCompression(name string) (config.CompressionKind, error) {
	for _, k := range []config.CompressionKind{config.NONE, config.ZLIB, config.DEFLATE, config.SNAPPY, config.ZSTD} {
		if strings.EqualFold(name, k.String()) {
			return k, nil
		}
	}
	return config.NONE, errors.Errorf("unknown compression %q", name)
}
