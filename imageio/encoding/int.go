package encoding

import (
	"github.com/golang/protobuf/proto"
	"github.com/pkg/errors"
)

// longest base 128 encoding of a 64 bits value
const MaxVarintLen = 10

// DecodeUvarint decodes a complete base 128 varint, b must hold exactly its bytes.
func DecodeUvarint(b []byte) (uint64, error) {
	x, n := proto.DecodeVarint(b)
	if n == 0 || n != len(b) {
		return 0, errors.Wrapf(ErrMalformedInput, "varint % x", b)
	}
	return x, nil
}

// DecodeZigzag decodes a complete zigzag encoded varint.
func DecodeZigzag(b []byte) (int64, error) {
	if _, err := DecodeUvarint(b); err != nil {
		return 0, err
	}
	x, err := proto.NewBuffer(b).DecodeZigzag64()
	if err != nil {
		return 0, errors.WithStack(err)
	}
	return int64(x), nil
}
