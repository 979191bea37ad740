package stream

import (
	"encoding/binary"
	"io"

	"github.com/patrickhuang888/goimageio/imageio/encoding"
	"github.com/pkg/errors"
)

// ReadLine reads bytes as ISO-8859-1 characters up to "\n", "\r" or "\r\n",
// the terminator is not returned. At the end of the stream with nothing read
// it returns io.EOF.
func (s *InputStream) ReadLine() (string, error) {
	if err := s.ensureOpen(); err != nil {
		return "", err
	}
	if s.line == nil {
		s.line = make([]byte, 0, 80)
	}
	s.line = s.line[:0]

loop:
	for {
		b, err := s.ReadByte()
		if err != nil {
			if errors.Cause(err) != ErrEndOfStream {
				return "", err
			}
			if len(s.line) == 0 {
				return "", io.EOF
			}
			break
		}

		switch b {
		case '\n':
			break loop
		case '\r':
			c, err := s.ReadByte()
			if err != nil {
				if errors.Cause(err) != ErrEndOfStream {
					return "", err
				}
			} else if c != '\n' {
				s.buf.Unget()
			}
			break loop
		}
		s.line = append(s.line, b)
	}
	return encoding.DecodeLatin1(s.line)
}

// ReadUTF reads a big endian unsigned 16 bits length followed by that many
// bytes of modified UTF-8, whatever the stream byte order is.
func (s *InputStream) ReadUTF() (string, error) {
	order := s.order
	s.SetByteOrder(binary.BigEndian)
	defer s.SetByteOrder(order)

	n, err := s.ReadUint16()
	if err != nil {
		return "", err
	}
	data := make([]byte, n)
	if err := s.ReadFully(data); err != nil {
		return "", err
	}
	return encoding.DecodeModifiedUTF8(data)
}
