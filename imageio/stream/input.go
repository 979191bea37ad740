package stream

import (
	"encoding/binary"
	"io"

	"github.com/patrickhuang888/goimageio/imageio/config"
	imgio "github.com/patrickhuang888/goimageio/imageio/io"
	"github.com/pkg/errors"
)

// same limit bufio uses before giving up on a reader returning (0, nil)
const maxConsecutiveEmptyReads = 100

type mark struct {
	position  int64
	bitOffset int
	next      *mark
}

// InputStream reads primitives, bits, text and arrays from a Source through a
// fixed size buffer. It is not safe for concurrent use.
type InputStream struct {
	in imgio.Source

	// source offset of stream position 0, non zero only for seekable sources
	origin int64

	buf   *ByteBuffer
	order binary.ByteOrder

	// stream position of buf index 0
	bufferPosition  int64
	flushedPosition int64
	bitOffset       int

	marks *mark

	// lazily allocated, dropped on byte order change or close
	views *views
	line  []byte

	closed bool
}

// NewInputStream creates a stream over in with a buffer of bufferSize bytes.
// The stream owns in and closes it on Close.
func NewInputStream(in imgio.Source, bufferSize int) (*InputStream, error) {
	if bufferSize < config.MinBufferSize {
		return nil, errors.Wrapf(ErrInvalidArgument, "buffer size %d less than %d", bufferSize, config.MinBufferSize)
	}
	return newInputStream(in, make([]byte, bufferSize))
}

// NewInputStreamBuffer creates a stream using buf as working buffer, buf
// content is ignored and the buffer starts empty.
func NewInputStreamBuffer(in imgio.Source, buf []byte) (*InputStream, error) {
	if len(buf) < config.MinBufferSize {
		return nil, errors.Wrapf(ErrInvalidArgument, "buffer size %d less than %d", len(buf), config.MinBufferSize)
	}
	return newInputStream(in, buf)
}

func newInputStream(in imgio.Source, buf []byte) (*InputStream, error) {
	if in == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "nil source")
	}
	s := &InputStream{in: in, buf: NewByteBuffer(buf), order: binary.BigEndian}
	if seeker, ok := in.(io.Seeker); ok {
		off, err := seeker.Seek(0, io.SeekCurrent)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		s.origin = off
	}
	return s, nil
}

func (s *InputStream) ensureOpen() error {
	if s.closed {
		return errors.WithStack(ErrStreamClosed)
	}
	return nil
}

// fill reads once from the source into the free part of the buffer.
func (s *InputStream) fill() (int, error) {
	for i := 0; i < maxConsecutiveEmptyReads; i++ {
		n, err := s.buf.Fill(s.in)
		if n > 0 {
			logger.Tracef("filled %d bytes at position %d", n, s.bufferPosition+int64(s.buf.Limit()-n))
			if err != nil && errors.Cause(err) != io.EOF {
				return n, errors.WithStack(err)
			}
			return n, nil
		}
		if err != nil {
			if errors.Cause(err) == io.EOF {
				return 0, errors.WithStack(ErrEndOfStream)
			}
			return 0, errors.WithStack(err)
		}
	}
	return 0, errors.WithStack(io.ErrNoProgress)
}

// ensureNonEmpty makes at least one byte readable, refilling from the start
// of the buffer when everything was consumed. Bit offset is left untouched.
func (s *InputStream) ensureNonEmpty() error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	if s.buf.HasRemaining() {
		return nil
	}
	s.bufferPosition += int64(s.buf.Position())
	s.buf.Clear()
	_, err := s.fill()
	return err
}

// ensureBufferContains makes n bytes readable, keeping the unread ones, and
// resets the bit offset since it only serves byte aligned reads.
func (s *InputStream) ensureBufferContains(n int) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	if n > s.buf.Capacity() {
		return errors.Wrapf(ErrInvalidArgument, "%d bytes requested, buffer capacity is %d", n, s.buf.Capacity())
	}
	s.bitOffset = 0
	if s.buf.Remaining() >= n {
		return nil
	}
	s.compact()
	for s.buf.Remaining() < n {
		if _, err := s.fill(); err != nil {
			return err
		}
	}
	return nil
}

func (s *InputStream) compact() {
	if n := s.buf.Compact(); n > 0 {
		s.bufferPosition += int64(n)
		logger.Tracef("compacted buffer, dropped %d bytes, buffer now starts at %d", n, s.bufferPosition)
	}
}

func (s *InputStream) ByteOrder() binary.ByteOrder {
	return s.order
}

// SetByteOrder sets the order of multi-byte reads, a nil order is ignored.
func (s *InputStream) SetByteOrder(order binary.ByteOrder) {
	if order == nil {
		return
	}
	if order != s.order {
		s.views = nil
		s.order = order
	}
}

func (s *InputStream) StreamPosition() (int64, error) {
	if err := s.ensureOpen(); err != nil {
		return 0, err
	}
	return s.position(), nil
}

func (s *InputStream) position() int64 {
	return s.bufferPosition + int64(s.buf.Position())
}

// FlushedPosition is the earliest position Seek accepts.
func (s *InputStream) FlushedPosition() int64 {
	return s.flushedPosition
}

// Length returns the source size from stream position 0, or -1 when the source
// cannot tell.
func (s *InputStream) Length() (int64, error) {
	if err := s.ensureOpen(); err != nil {
		return 0, err
	}
	sizer, ok := s.in.(imgio.Sizer)
	if !ok {
		return -1, nil
	}
	size, err := sizer.Size()
	if err != nil {
		return 0, err
	}
	return size - s.origin, nil
}

func (s *InputStream) BitOffset() (int, error) {
	if err := s.ensureOpen(); err != nil {
		return 0, err
	}
	return s.bitOffset, nil
}

func (s *InputStream) SetBitOffset(offset int) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	if offset < 0 || offset > 7 {
		return errors.Wrapf(ErrInvalidArgument, "bit offset %d", offset)
	}
	s.bitOffset = offset
	return nil
}

// Seek moves to pos, which must not precede the flushed position. Positions
// inside the buffered window only move the cursor, others reposition seekable
// sources or read forward through sequential ones.
func (s *InputStream) Seek(pos int64) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	if pos < s.flushedPosition {
		return errors.Wrapf(ErrPositionOutOfBounds, "seek to %d before flushed position %d", pos, s.flushedPosition)
	}
	s.bitOffset = 0

	p := pos - s.bufferPosition
	if p >= 0 && p <= int64(s.buf.Limit()) {
		s.buf.SetPosition(int(p))
		return nil
	}

	if seeker, ok := s.in.(io.Seeker); ok {
		logger.Tracef("seeking source to %d", pos)
		if _, err := seeker.Seek(s.origin+pos, io.SeekStart); err != nil {
			return errors.WithStack(err)
		}
		s.buf.Clear()
		s.bufferPosition = pos
		return nil
	}

	if p < 0 {
		return errors.Wrapf(ErrPositionOutOfBounds, "seek back to %d, sequential source buffered from %d", pos, s.bufferPosition)
	}
	return s.skipTo(pos)
}

// skipTo reads and drops bytes of a sequential source until pos is buffered.
func (s *InputStream) skipTo(pos int64) error {
	logger.Tracef("skipping sequential source from %d to %d", s.position(), pos)
	for {
		s.bufferPosition += int64(s.buf.Limit())
		s.buf.Clear()
		if _, err := s.fill(); err != nil {
			return err
		}
		if p := pos - s.bufferPosition; p <= int64(s.buf.Limit()) {
			s.buf.SetPosition(int(p))
			return nil
		}
	}
}

// SkipBytes moves n bytes forward and returns how many were skipped, which is
// less than n only when the end of the stream is reached.
func (s *InputStream) SkipBytes(n int64) (int64, error) {
	if err := s.ensureOpen(); err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, nil
	}
	start := s.position()
	target := start + n

	length, err := s.Length()
	if err != nil {
		return 0, err
	}
	if length >= 0 && target > length {
		target = length
		if target < start {
			target = start
		}
	}

	if err := s.Seek(target); err != nil {
		if errors.Cause(err) != ErrEndOfStream {
			return 0, err
		}
	}
	return s.position() - start, nil
}

// Mark pushes the current position and bit offset, Reset pops them back.
func (s *InputStream) Mark() error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	s.marks = &mark{position: s.position(), bitOffset: s.bitOffset, next: s.marks}
	return nil
}

func (s *InputStream) Reset() error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	m := s.marks
	if m == nil {
		return errors.WithStack(ErrNoMarkedPosition)
	}
	s.marks = m.next
	if err := s.Seek(m.position); err != nil {
		return err
	}
	s.bitOffset = m.bitOffset
	return nil
}

func (s *InputStream) Flush() error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	return s.FlushBefore(s.position())
}

// FlushBefore drops buffered bytes before pos, later seeks before pos fail.
func (s *InputStream) FlushBefore(pos int64) error {
	if err := s.ensureOpen(); err != nil {
		return err
	}
	if pos < s.flushedPosition || pos > s.position() {
		return errors.Wrapf(ErrPositionOutOfBounds, "flush before %d outside [%d, %d]", pos, s.flushedPosition, s.position())
	}
	s.flushedPosition = pos
	if p := pos - s.bufferPosition; p > 0 {
		s.bufferPosition += int64(s.buf.Discard(int(p)))
	}
	return nil
}

// Close releases the source. Calling Close again does nothing, every other
// method fails with ErrStreamClosed.
func (s *InputStream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.marks = nil
	s.views = nil
	s.line = nil
	s.buf = NewByteBuffer(nil)
	logger.Debugf("closing stream")
	if err := s.in.Close(); err != nil {
		return errors.WithStack(err)
	}
	return nil
}
