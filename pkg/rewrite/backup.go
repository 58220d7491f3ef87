package rewrite

import (
	"os"

	"gitlab.com/tozd/go/errors"
)

// 💾 BackupPath returns where the original of path is kept for suffix
func BackupPath(path, suffix string) string {
	return path + suffix
}

// 💾 Backup renames path to path+suffix. An empty suffix is a no-op.
//
// Callers must run it while the bytes at path are still the original ones and
// before anything is written over path.
func Backup(path, suffix string) (string, error) {
	if suffix == "" {
		return "", nil
	}

	backup := BackupPath(path, suffix)
	if err := os.Rename(path, backup); err != nil {
		return backup, errors.Errorf("renaming to backup: %w", err)
	}
	return backup, nil
}
