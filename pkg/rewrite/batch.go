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

	"github.com/rs/zerolog"
)

// 📢 Reporter is told about every outcome as soon as it is known
type Reporter interface {
	Report(ctx context.Context, o Outcome)
}

// 🏃 BatchRunner rewrites a list of files one after the other
type BatchRunner struct {
	rewriter *Rewriter
	reporter Reporter
}

// 🏗️ NewBatchRunner creates a new runner. reporter may be nil.
func NewBatchRunner(rewriter *Rewriter, reporter Reporter) *BatchRunner {
	return &BatchRunner{
		rewriter: rewriter,
		reporter: reporter,
	}
}

// 🏃 Run processes paths in order. A failed file is recorded and reported,
// and processing continues with the next one.
func (b *BatchRunner) Run(ctx context.Context, paths []string) *BatchResult {
	logger := zerolog.Ctx(ctx)
	result := &BatchResult{Outcomes: make([]Outcome, 0, len(paths))}

	for _, path := range paths {
		outcome := b.rewriter.Rewrite(ctx, path)
		result.Outcomes = append(result.Outcomes, outcome)

		if b.reporter != nil {
			b.reporter.Report(ctx, outcome)
		}
	}

	logger.Debug().
		Int("files", len(paths)).
		Int("rewritten", result.Count(Rewritten)).
		Int("unchanged", result.Count(Unchanged)).
		Int("failed", result.Count(Failed)).
		Msg("batch complete")

	return result
}
