package stream

import (
	"math"
)

// ReadByte reads one unsigned byte, it makes the stream an io.ByteReader.
func (s *InputStream) ReadByte() (byte, error) {
	if err := s.ensureNonEmpty(); err != nil {
		return 0, err
	}
	s.bitOffset = 0
	return s.buf.Get(), nil
}

func (s *InputStream) ReadInt8() (int8, error) {
	b, err := s.ReadByte()
	return int8(b), err
}

func (s *InputStream) ReadUint8() (uint8, error) {
	v, err := s.ReadInt8()
	return uint8(v), err
}

// ReadBool reads one byte, any non zero value is true.
func (s *InputStream) ReadBool() (bool, error) {
	b, err := s.ReadByte()
	return b != 0, err
}

func (s *InputStream) ReadInt16() (int16, error) {
	if err := s.ensureBufferContains(2); err != nil {
		return 0, err
	}
	return int16(s.view().uint16(s.buf.Next(2))), nil
}

func (s *InputStream) ReadUint16() (uint16, error) {
	v, err := s.ReadInt16()
	return uint16(v), err
}

// ReadChar reads one UTF-16 code unit.
func (s *InputStream) ReadChar() (uint16, error) {
	if err := s.ensureBufferContains(2); err != nil {
		return 0, err
	}
	return s.view().uint16(s.buf.Next(2)), nil
}

func (s *InputStream) ReadInt32() (int32, error) {
	if err := s.ensureBufferContains(4); err != nil {
		return 0, err
	}
	return int32(s.view().uint32(s.buf.Next(4))), nil
}

func (s *InputStream) ReadUint32() (uint32, error) {
	v, err := s.ReadInt32()
	return uint32(v), err
}

func (s *InputStream) ReadInt64() (int64, error) {
	if err := s.ensureBufferContains(8); err != nil {
		return 0, err
	}
	return int64(s.view().uint64(s.buf.Next(8))), nil
}

func (s *InputStream) ReadUint64() (uint64, error) {
	v, err := s.ReadInt64()
	return uint64(v), err
}

/*
	IEEE754 does not specify endianness, floats follow the stream byte order
*/
func (s *InputStream) ReadFloat32() (float32, error) {
	if err := s.ensureBufferContains(4); err != nil {
		return 0, err
	}
	return math.Float32frombits(s.view().uint32(s.buf.Next(4))), nil
}

func (s *InputStream) ReadFloat64() (float64, error) {
	if err := s.ensureBufferContains(8); err != nil {
		return 0, err
	}
	return math.Float64frombits(s.view().uint64(s.buf.Next(8))), nil
}
