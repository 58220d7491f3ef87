//go:build !unix

package rewrite

import (
	"io"
	"os"

	"gitlab.com/tozd/go/errors"
)

// mapView reads the file into memory on platforms without mmap support in
// golang.org/x/sys/unix. The view keeps the same release contract.
func mapView(f *os.File, size int64) (*view, error) {
	data := make([]byte, size)
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	return &view{data: data}, nil
}
