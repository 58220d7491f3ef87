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

package main

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"github.com/walteh/sr/pkg/rewrite"
	"github.com/walteh/sr/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// outputError marks a failure writing to stdout, as opposed to reading stdin
type outputError struct {
	err error
}

func (e *outputError) Error() string {
	return "writing output: " + e.err.Error()
}

func (e *outputError) Unwrap() error {
	return e.err
}

// 📥 runStdin streams in line by line, writing each replaced line plus a
// newline to out. Lines written before an error are flushed.
func runStdin(ctx context.Context, in io.Reader, out io.Writer, r *text.Replacer) (err error) {
	reader := bufio.NewReader(in)
	writer := bufio.NewWriter(out)
	defer func() {
		if ferr := writer.Flush(); ferr != nil && err == nil {
			err = &outputError{err: ferr}
		}
	}()

	lines := 0
	for {
		line, rerr := reader.ReadBytes('\n')
		if len(line) > 0 {
			if bytes.HasSuffix(line, []byte{'\n'}) {
				line = bytes.TrimSuffix(line[:len(line)-1], []byte{'\r'})
			}
			if !utf8.Valid(line) {
				return rewrite.ErrInvalidText
			}
			if _, werr := writer.Write(r.ReplaceLine(line)); werr != nil {
				return &outputError{err: werr}
			}
			if werr := writer.WriteByte('\n'); werr != nil {
				return &outputError{err: werr}
			}
			lines++
		}

		if errors.Is(rerr, io.EOF) {
			zerolog.Ctx(ctx).Debug().Int("lines", lines).Msg("stdin done")
			return nil
		}
		if rerr != nil {
			return rerr
		}
	}
}
