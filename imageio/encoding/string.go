package encoding

import (
	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"
)

// DecodeLatin1 maps every byte to the code point of the same value.
func DecodeLatin1(b []byte) (string, error) {
	for _, c := range b {
		if c >= 0x80 {
			decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
			if err != nil {
				return "", errors.WithStack(err)
			}
			return string(decoded), nil
		}
	}
	return string(b), nil
}
