package encoding

import (
	"unicode/utf16"

	"github.com/pkg/errors"
)

var ErrMalformedInput = errors.New("malformed input")

/*
	Modified UTF-8 as written by DataOutput.writeUTF: NUL is encoded on two
	bytes, supplementary characters as two 3 bytes surrogates, no 4 bytes form.
*/
func DecodeModifiedUTF8(b []byte) (string, error) {
	units := make([]uint16, 0, len(b))

	for i := 0; i < len(b); {
		c := b[i]
		switch c >> 4 {
		case 0, 1, 2, 3, 4, 5, 6, 7: // 0xxxxxxx
			units = append(units, uint16(c))
			i++

		case 12, 13: // 110x xxxx 10xx xxxx
			if i+2 > len(b) {
				return "", errors.Wrap(ErrMalformedInput, "partial character at end")
			}
			c2 := b[i+1]
			if c2&0xC0 != 0x80 {
				return "", errors.Wrapf(ErrMalformedInput, "around byte %d", i+1)
			}
			units = append(units, uint16(c&0x1F)<<6|uint16(c2&0x3F))
			i += 2

		case 14: // 1110 xxxx 10xx xxxx 10xx xxxx
			if i+3 > len(b) {
				return "", errors.Wrap(ErrMalformedInput, "partial character at end")
			}
			c2, c3 := b[i+1], b[i+2]
			if c2&0xC0 != 0x80 || c3&0xC0 != 0x80 {
				return "", errors.Wrapf(ErrMalformedInput, "around byte %d", i+2)
			}
			units = append(units, uint16(c&0x0F)<<12|uint16(c2&0x3F)<<6|uint16(c3&0x3F))
			i += 3

		default: // 10xx xxxx, 1111 xxxx
			return "", errors.Wrapf(ErrMalformedInput, "around byte %d", i)
		}
	}
	return string(utf16.Decode(units)), nil
}
