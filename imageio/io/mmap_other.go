//go:build !linux && !darwin

package io

import (
	"os"

	"github.com/pkg/errors"
)

// no mapping support, fall back to descriptor reads
func openMapped(path string) (File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	logger.Debugf("mmap unavailable, opened file %s", path)
	return OpenOsFile(f), nil
}
