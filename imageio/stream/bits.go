package stream

import "github.com/pkg/errors"

// Bits are consumed most significant first within each byte whatever the
// byte order is. A partially consumed byte stays in the buffer, the bit
// offset telling how many of its bits are gone.

// ReadBit returns the next bit, 0 or 1.
func (s *InputStream) ReadBit() (int, error) {
	if err := s.ensureNonEmpty(); err != nil {
		return 0, err
	}
	offset := s.bitOffset
	bit := int(s.buf.Get()>>(7-offset)) & 1
	if offset++; offset == 8 {
		offset = 0
	} else {
		s.buf.Unget()
	}
	s.bitOffset = offset
	return bit, nil
}

// ReadBits returns the next numBits bits, 0 to 64, right aligned.
func (s *InputStream) ReadBits(numBits int) (uint64, error) {
	if numBits < 0 || numBits > 64 {
		return 0, errors.Wrapf(ErrInvalidArgument, "%d bits", numBits)
	}
	if err := s.ensureOpen(); err != nil {
		return 0, err
	}

	var value uint64
	remaining := numBits
	for remaining > 0 {
		if err := s.ensureNonEmpty(); err != nil {
			return 0, err
		}
		available := 8 - s.bitOffset
		bits := uint64(s.buf.Get() & (0xFF >> s.bitOffset))

		if remaining >= available {
			value = value<<available | bits
			remaining -= available
			s.bitOffset = 0
			continue
		}

		// last byte gives more than needed, drop its low bits and keep the byte
		value = value<<remaining | bits>>(available-remaining)
		s.bitOffset += remaining
		s.buf.Unget()
		remaining = 0
	}
	return value, nil
}
