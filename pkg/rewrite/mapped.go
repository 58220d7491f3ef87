// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rewrite

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/walteh/sr/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// ErrInvalidText is returned for content that is not valid UTF-8
var ErrInvalidText = errors.Base("stream did not contain valid UTF-8")

var newline = []byte{'\n'}

// 🗺️ rewriteMapped transforms a large file line by line from a read-only mapping
// into a temporary file next to it, then renames the temporary file over path.
//
// The original is never written to. The mapping and f are released before the
// backup rename and the publish rename.
func (r *Rewriter) rewriteMapped(ctx context.Context, path string, f *os.File, info fs.FileInfo) Outcome {
	logger := zerolog.Ctx(ctx)

	v, err := mapView(f, info.Size())
	if err != nil {
		_ = f.Close()
		return failed(path, Mapped, StageRead, path, err)
	}

	released := false
	release := func() {
		if released {
			return
		}
		released = true
		if err := v.Close(); err != nil {
			logger.Debug().Err(err).Msg("unmapping file")
		}
		_ = f.Close()
	}
	defer release()

	content := v.Bytes()
	if !utf8.Valid(content) {
		return failed(path, Mapped, StageRead, path, ErrInvalidText)
	}

	if !r.replacer.IsMatch(content) {
		logger.Debug().Msg("no match, leaving file untouched")
		return unchanged(path, Mapped)
	}

	if r.previewer != nil {
		var buf bytes.Buffer
		buf.Grow(len(content))
		if err := writeLines(&buf, content, r.replacer); err != nil {
			return failed(path, Mapped, StageWrite, path, err)
		}
		if err := r.previewer.Preview(ctx, path, content, buf.Bytes()); err != nil {
			return failed(path, Mapped, StageWrite, path, err)
		}
		return previewed(path, Mapped)
	}

	dir, err := parentDir(path)
	if err != nil {
		return failed(path, Mapped, StageTempCreate, path, err)
	}

	tmp, err := os.CreateTemp(dir, ".sr-*.tmp")
	if err != nil {
		return failed(path, Mapped, StageTempCreate, dir, err)
	}
	discard := func() {
		_ = tmp.Close()
		if err := os.Remove(tmp.Name()); err != nil {
			logger.Debug().Err(err).Str("tmp", tmp.Name()).Msg("removing temp file")
		}
	}

	if err := tmp.Chmod(permBits(info)); err != nil {
		logger.Debug().Err(err).Msg("copying permissions to temp file")
	}

	w := bufio.NewWriter(tmp)
	if err := writeLines(w, content, r.replacer); err != nil {
		discard()
		return failed(path, Mapped, StageWrite, path, err)
	}
	if err := w.Flush(); err != nil {
		discard()
		return failed(path, Mapped, StageWrite, path, err)
	}
	if err := tmp.Close(); err != nil {
		discard()
		return failed(path, Mapped, StageWrite, path, err)
	}

	release()

	if backup, err := Backup(path, r.suffix); err != nil {
		discard()
		return failed(path, Mapped, StageBackup, backup, err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		discard()
		return failed(path, Mapped, StagePublish, path, errors.Errorf("publishing temp file: %w", err))
	}

	logger.Debug().Str("tmp", tmp.Name()).Msg("published rewritten file")
	return rewritten(path, Mapped)
}

// writeLines writes every transformed line of content to w, each followed by "\n"
func writeLines(w io.Writer, content []byte, r *text.Replacer) error {
	return text.EachLine(content, func(line []byte) error {
		if _, err := w.Write(r.ReplaceLine(line)); err != nil {
			return err
		}
		_, err := w.Write(newline)
		return err
	})
}

// parentDir returns the directory a temporary file for path should live in
func parentDir(path string) (string, error) {
	dir := filepath.Dir(path)
	if dir == filepath.Clean(path) {
		return "", ErrNoParentDir
	}
	return dir, nil
}
