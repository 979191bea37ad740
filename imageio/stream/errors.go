package stream

import "github.com/pkg/errors"

// Errors returned by streams, compare with errors.Cause. Any other cause is
// an I/O failure of the underlying source.
var (
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrEndOfStream         = errors.New("end of stream")
	ErrPositionOutOfBounds = errors.New("position out of bounds")
	ErrNoMarkedPosition    = errors.New("no marked position")
	ErrStreamClosed        = errors.New("stream closed")
)
