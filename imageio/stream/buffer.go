package stream

import (
	"io"
)

// ByteBuffer is a fixed capacity byte window, bytes in [position, limit) are
// readable and [limit, capacity) is free for the next fill.
type ByteBuffer struct {
	buf      []byte
	position int
	limit    int
}

// NewByteBuffer uses buf as storage, the buffer starts empty.
func NewByteBuffer(buf []byte) *ByteBuffer {
	return &ByteBuffer{buf: buf}
}

func (bb *ByteBuffer) Capacity() int {
	return len(bb.buf)
}

func (bb *ByteBuffer) Position() int {
	return bb.position
}

func (bb *ByteBuffer) SetPosition(p int) {
	if p < 0 || p > bb.limit {
		panic("buffer position out of window")
	}
	bb.position = p
}

func (bb *ByteBuffer) Limit() int {
	return bb.limit
}

func (bb *ByteBuffer) HasRemaining() bool {
	return bb.position < bb.limit
}

func (bb *ByteBuffer) Remaining() int {
	return bb.limit - bb.position
}

// Clear drops every byte, read or not.
func (bb *ByteBuffer) Clear() {
	bb.position = 0
	bb.limit = 0
}

// Compact moves the unread bytes to index 0 and returns how many bytes were
// dropped in front of them.
func (bb *ByteBuffer) Compact() int {
	return bb.Discard(bb.position)
}

// Discard drops the first n bytes, n must not exceed position.
func (bb *ByteBuffer) Discard(n int) int {
	if n <= 0 {
		return 0
	}
	copy(bb.buf, bb.buf[n:bb.limit])
	bb.limit -= n
	bb.position -= n
	return n
}

// Fill reads once from r into the free tail.
func (bb *ByteBuffer) Fill(r io.Reader) (int, error) {
	n, err := r.Read(bb.buf[bb.limit:])
	if n > 0 {
		bb.limit += n
	}
	return n, err
}

// Get returns the next byte, the caller ensures one is remaining.
func (bb *ByteBuffer) Get() byte {
	b := bb.buf[bb.position]
	bb.position++
	return b
}

// Unget steps back over the byte returned by the last Get.
func (bb *ByteBuffer) Unget() {
	if bb.position == 0 {
		panic("unread at buffer start")
	}
	bb.position--
}

// Next returns the next n bytes and advances past them, the slice is only
// valid until the next fill or compaction.
func (bb *ByteBuffer) Next(n int) []byte {
	b := bb.buf[bb.position : bb.position+n]
	bb.position += n
	return b
}

// Take copies as many unread bytes as fit in p.
func (bb *ByteBuffer) Take(p []byte) int {
	n := copy(p, bb.buf[bb.position:bb.limit])
	bb.position += n
	return n
}

// Bytes returns the unread bytes without consuming them.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.buf[bb.position:bb.limit]
}
