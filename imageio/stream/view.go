package stream

import (
	"encoding/binary"
	"math"
)

// views holds the element decoders of one byte order. Resolving the order
// once keeps the per element path free of interface dispatch for the two
// standard orders.
type views struct {
	uint16 func([]byte) uint16
	uint32 func([]byte) uint32
	uint64 func([]byte) uint64
}

func newViews(order binary.ByteOrder) *views {
	switch order {
	case binary.BigEndian:
		return &views{uint16: binary.BigEndian.Uint16, uint32: binary.BigEndian.Uint32, uint64: binary.BigEndian.Uint64}
	case binary.LittleEndian:
		return &views{uint16: binary.LittleEndian.Uint16, uint32: binary.LittleEndian.Uint32, uint64: binary.LittleEndian.Uint64}
	}
	return &views{uint16: order.Uint16, uint32: order.Uint32, uint64: order.Uint64}
}

func (s *InputStream) view() *views {
	if s.views == nil {
		s.views = newViews(s.order)
	}
	return s.views
}

// typedView reinterprets a byte range as elements of size bytes each.
type typedView[T any] struct {
	b    []byte
	size int
	get  func([]byte) T
}

func (v typedView[T]) len() int {
	return len(v.b) / v.size
}

func (v typedView[T]) copyTo(dst []T) int {
	n := v.len()
	if n > len(dst) {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		dst[i] = v.get(v.b[i*v.size:])
	}
	return n
}

func (v *views) int16s() func([]byte) int16 {
	u := v.uint16
	return func(b []byte) int16 { return int16(u(b)) }
}

func (v *views) int32s() func([]byte) int32 {
	u := v.uint32
	return func(b []byte) int32 { return int32(u(b)) }
}

func (v *views) int64s() func([]byte) int64 {
	u := v.uint64
	return func(b []byte) int64 { return int64(u(b)) }
}

func (v *views) float32s() func([]byte) float32 {
	u := v.uint32
	return func(b []byte) float32 { return math.Float32frombits(u(b)) }
}

func (v *views) float64s() func([]byte) float64 {
	u := v.uint64
	return func(b []byte) float64 { return math.Float64frombits(u(b)) }
}
