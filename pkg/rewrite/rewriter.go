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
	"context"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
	"github.com/walteh/sr/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 👀 Previewer receives the would-be content of a matching file during a dry run
type Previewer interface {
	Preview(ctx context.Context, path string, before, after []byte) error
}

// 🔧 Options configures a Rewriter
type Options struct {
	// Replacer is the pattern and template applied to file content
	Replacer *text.Replacer
	// BackupSuffix, when not empty, keeps the original at path+BackupSuffix
	BackupSuffix string
	// Previewer, when set, turns the run into a dry run
	Previewer Previewer
}

// ✏️ Rewriter rewrites single files in place
type Rewriter struct {
	replacer  *text.Replacer
	suffix    string
	previewer Previewer
}

// 🏭 New creates a new Rewriter
func New(opts Options) (*Rewriter, error) {
	if opts.Replacer == nil {
		return nil, errors.Errorf("replacer is required")
	}
	return &Rewriter{
		replacer:  opts.Replacer,
		suffix:    opts.BackupSuffix,
		previewer: opts.Previewer,
	}, nil
}

// 🏃 Rewrite opens path, picks a strategy from its size and runs it.
// Every failure is returned as a Failed outcome, never as a panic or error.
func (r *Rewriter) Rewrite(ctx context.Context, path string) Outcome {
	logger := zerolog.Ctx(ctx).With().Str("file", path).Logger()

	f, err := os.Open(path)
	if err != nil {
		return failed(path, Buffered, StageOpen, path, err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return failed(path, Buffered, StageStat, path, err)
	}

	strategy := SelectStrategy(info.Size())
	logger.Debug().Int64("size", info.Size()).Stringer("strategy", strategy).Msg("rewriting file")

	ctx = logger.WithContext(ctx)
	switch strategy {
	case Mapped:
		return r.rewriteMapped(ctx, path, f, info)
	default:
		return r.rewriteBuffered(ctx, path, f, info)
	}
}

// permBits returns the mode bits that chmod carries over
func permBits(info fs.FileInfo) fs.FileMode {
	return info.Mode() & (fs.ModePerm | fs.ModeSetuid | fs.ModeSetgid | fs.ModeSticky)
}
