package stream

import (
	"github.com/patrickhuang888/goimageio/imageio/encoding"
	"github.com/pkg/errors"
)

// ReadUvarint reads a base 128 varint, least significant group first.
func (s *InputStream) ReadUvarint() (uint64, error) {
	b, err := s.readVarintBytes()
	if err != nil {
		return 0, err
	}
	return encoding.DecodeUvarint(b)
}

// ReadVarint reads a zigzag encoded signed varint.
func (s *InputStream) ReadVarint() (int64, error) {
	b, err := s.readVarintBytes()
	if err != nil {
		return 0, err
	}
	return encoding.DecodeZigzag(b)
}

func (s *InputStream) readVarintBytes() ([]byte, error) {
	var tmp [encoding.MaxVarintLen]byte
	for i := range tmp {
		b, err := s.ReadByte()
		if err != nil {
			return nil, err
		}
		tmp[i] = b
		if b < 0x80 {
			return tmp[:i+1], nil
		}
	}
	return nil, errors.Wrapf(encoding.ErrMalformedInput, "varint longer than %d bytes", encoding.MaxVarintLen)
}
