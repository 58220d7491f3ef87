//go:build unix

package rewrite

import (
	"os"

	"gitlab.com/tozd/go/errors"
	"golang.org/x/sys/unix"
)

// 🗺️ mapView maps the first size bytes of f read-only.
// The returned view must be closed before f is closed or its path is replaced.
func mapView(f *os.File, size int64) (*view, error) {
	if size == 0 {
		return &view{}, nil
	}
	if int64(int(size)) != size {
		return nil, errors.Errorf("file too large to map: %d bytes", size)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, errors.Errorf("mapping file: %w", err)
	}

	return &view{data: data, release: unix.Munmap}, nil
}
