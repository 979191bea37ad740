package main

import (
	"fmt"
	"io"
	"os"

	"github.com/patrickhuang888/goimageio/imageio"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	valueType string
	offset    int64
	bitWidth  int

	valueCount int
	bitCount   int
	lineCount  int
)

func init() {
	rootCmd.AddCommand(newValuesCmd(), newBitsCmd(), newLinesCmd(), newInfoCmd())
}

func newValuesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "values <file>",
		Short: "Print values of one primitive type",
		Long: `The values command seeks to an offset and decodes count values of the
given type in the selected byte order.

Types: int8, uint8, int16, uint16, char, int32, uint32, int64, uint64,
float32, float64, bool, uvarint, varint, utf

Example:
  imgdump values image.tif --type uint16 --count 1
  imgdump values image.tif --order little --offset 8 --type uint32 --count 4`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStream(args[0], func(in imageio.ImageInputStream) error {
				return dumpValues(in, valueType, valueCount, os.Stdout)
			})
		},
	}
	cmd.Flags().StringVarP(&valueType, "type", "t", "uint8", "Value type")
	cmd.Flags().Int64Var(&offset, "offset", 0, "Stream position to start at")
	cmd.Flags().IntVarP(&valueCount, "count", "n", 16, "Number of values")
	return cmd
}

func newBitsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bits <file>",
		Short: "Print fixed width bit fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStream(args[0], func(in imageio.ImageInputStream) error {
				return dumpBits(in, bitWidth, bitCount, os.Stdout)
			})
		},
	}
	cmd.Flags().IntVarP(&bitWidth, "width", "w", 8, "Bits per field, 0 to 64")
	cmd.Flags().Int64Var(&offset, "offset", 0, "Stream position to start at")
	cmd.Flags().IntVarP(&bitCount, "count", "n", 16, "Number of fields")
	return cmd
}

func newLinesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lines <file>",
		Short: "Print ISO-8859-1 text lines, as found in world files and headers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStream(args[0], func(in imageio.ImageInputStream) error {
				return dumpLines(in, lineCount, os.Stdout)
			})
		},
	}
	cmd.Flags().Int64Var(&offset, "offset", 0, "Stream position to start at")
	cmd.Flags().IntVarP(&lineCount, "count", "n", -1, "Number of lines, negative for all")
	return cmd
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <file>",
		Short: "Print the stream length and byte order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStream(args[0], func(in imageio.ImageInputStream) error {
				length, err := in.Length()
				if err != nil {
					return err
				}
				fmt.Printf("length: %d\nbyte order: %s\n", length, in.ByteOrder())
				return nil
			})
		},
	}
}

func withStream(path string, f func(in imageio.ImageInputStream) error) error {
	opts, err := readerOptions()
	if err != nil {
		return err
	}
	in, err := imageio.Open(opts, path)
	if err != nil {
		return err
	}
	if offset > 0 {
		if _, err = in.SkipBytes(offset); err != nil {
			in.Close()
			return err
		}
	}
	if err = f(in); err != nil {
		in.Close()
		return err
	}
	return in.Close()
}

func dumpValues(in imageio.ImageInputStream, typ string, count int, w io.Writer) error {
	read, err := valueReader(in, typ)
	if err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		pos, err := in.StreamPosition()
		if err != nil {
			return err
		}
		v, err := read()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%08x: %v\n", pos, v)
	}
	return nil
}

func valueReader(in imageio.ImageInputStream, typ string) (func() (interface{}, error), error) {
	switch typ {
	case "int8":
		return func() (interface{}, error) { return in.ReadInt8() }, nil
	case "uint8", "byte":
		return func() (interface{}, error) { return in.ReadUint8() }, nil
	case "bool":
		return func() (interface{}, error) { return in.ReadBool() }, nil
	case "int16":
		return func() (interface{}, error) { return in.ReadInt16() }, nil
	case "uint16":
		return func() (interface{}, error) { return in.ReadUint16() }, nil
	case "char":
		return func() (interface{}, error) {
			c, err := in.ReadChar()
			return string(rune(c)), err
		}, nil
	case "int32":
		return func() (interface{}, error) { return in.ReadInt32() }, nil
	case "uint32":
		return func() (interface{}, error) { return in.ReadUint32() }, nil
	case "int64":
		return func() (interface{}, error) { return in.ReadInt64() }, nil
	case "uint64":
		return func() (interface{}, error) { return in.ReadUint64() }, nil
	case "float32":
		return func() (interface{}, error) { return in.ReadFloat32() }, nil
	case "float64":
		return func() (interface{}, error) { return in.ReadFloat64() }, nil
	case "uvarint":
		return func() (interface{}, error) { return in.ReadUvarint() }, nil
	case "varint":
		return func() (interface{}, error) { return in.ReadVarint() }, nil
	case "utf":
		return func() (interface{}, error) { return in.ReadUTF() }, nil
	}
	return nil, errors.Errorf("unknown value type %q", typ)
}

func dumpBits(in imageio.ImageInputStream, width int, count int, w io.Writer) error {
	for i := 0; i < count; i++ {
		v, err := in.ReadBits(width)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%0*b\n", width, v)
	}
	return nil
}

func dumpLines(in imageio.ImageInputStream, count int, w io.Writer) error {
	for i := 0; count < 0 || i < count; i++ {
		line, err := in.ReadLine()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(w, line)
	}
	return nil
}
