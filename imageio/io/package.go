package io

import (
	"io"

	log "github.com/sirupsen/logrus"
)

var logger = log.New()

func SetLogLevel(level log.Level) {
	logger.SetLevel(level)
}

// Source is what a stream pulls its bytes from. Sources that also implement
// io.Seeker are positioned directly, sources implementing Sizer report a length.
type Source interface {
	io.Reader
	io.Closer
}

type Sizer interface {
	Size() (int64, error)
}

// File is a seekable, sized source owning an OS handle or a mapping.
type File interface {
	io.ReadSeeker
	io.Closer
	Size() (int64, error)
}
