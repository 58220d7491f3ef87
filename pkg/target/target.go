// Package target turns file operands into the ordered list of paths to rewrite.
package target

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options configures operand expansion
type Options struct {
	// Glob treats every operand as a doublestar pattern
	Glob bool
	// Exclude drops glob results matching any of these patterns
	Exclude []string
}

// 🔍 Expand returns the paths named by operands, in operand order.
//
// Without Glob the operands are returned as given, duplicates included. With
// Glob each pattern expands to its sorted regular-file matches; a pattern that
// matches nothing is kept as a literal path so it fails like any missing file.
func Expand(ctx context.Context, operands []string, opts Options) ([]string, error) {
	if !opts.Glob {
		return operands, nil
	}

	logger := zerolog.Ctx(ctx)
	paths := make([]string, 0, len(operands))

	for _, operand := range operands {
		if !doublestar.ValidatePattern(filepath.ToSlash(operand)) {
			return nil, errors.Errorf("invalid glob pattern %q", operand)
		}

		matches, err := doublestar.FilepathGlob(operand, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Errorf("expanding %q: %w", operand, err)
		}
		if len(matches) == 0 {
			logger.Debug().Str("pattern", operand).Msg("pattern matched nothing, keeping it literally")
			paths = append(paths, operand)
			continue
		}

		sort.Strings(matches)
		for _, m := range matches {
			excluded, err := isExcluded(m, opts.Exclude)
			if err != nil {
				return nil, err
			}
			if excluded {
				logger.Debug().Str("file", m).Msg("excluded by pattern")
				continue
			}
			paths = append(paths, m)
		}
	}

	return paths, nil
}

func isExcluded(path string, patterns []string) (bool, error) {
	for _, pattern := range patterns {
		matched, err := doublestar.PathMatch(pattern, path)
		if err != nil {
			return false, errors.Errorf("matching exclude %q: %w", pattern, err)
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}
