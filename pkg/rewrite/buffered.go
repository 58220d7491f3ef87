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
	"bytes"
	"context"
	"io/fs"
	"os"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// 📄 rewriteBuffered reads a small file fully, then truncates path and writes the
// result of one whole-content replacement pass.
//
// Not atomic: a write failure can leave path partially written.
func (r *Rewriter) rewriteBuffered(ctx context.Context, path string, f *os.File, info fs.FileInfo) Outcome {
	logger := zerolog.Ctx(ctx)

	var buf bytes.Buffer
	buf.Grow(int(info.Size()))
	_, err := buf.ReadFrom(f)
	_ = f.Close()
	if err != nil {
		return failed(path, Buffered, StageRead, path, err)
	}

	content := buf.Bytes()
	if !utf8.Valid(content) {
		return failed(path, Buffered, StageRead, path, ErrInvalidText)
	}

	if !r.replacer.IsMatch(content) {
		logger.Debug().Msg("no match, leaving file untouched")
		return unchanged(path, Buffered)
	}

	result := r.replacer.ReplaceAll(content)

	if r.previewer != nil {
		if err := r.previewer.Preview(ctx, path, content, result); err != nil {
			return failed(path, Buffered, StageWrite, path, err)
		}
		return previewed(path, Buffered)
	}

	if backup, err := Backup(path, r.suffix); err != nil {
		return failed(path, Buffered, StageBackup, backup, err)
	}

	dest, err := os.Create(path)
	if err != nil {
		return failed(path, Buffered, StageCreate, path, err)
	}

	if err := dest.Chmod(permBits(info)); err != nil {
		logger.Debug().Err(err).Msg("copying permissions")
	}

	if _, err := dest.Write(result); err != nil {
		_ = dest.Close()
		return failed(path, Buffered, StageWrite, path, err)
	}
	if err := dest.Close(); err != nil {
		return failed(path, Buffered, StageWrite, path, err)
	}

	logger.Debug().Int("bytes", len(result)).Msg("rewrote file")
	return rewritten(path, Buffered)
}
