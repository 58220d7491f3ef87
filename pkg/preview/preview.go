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

// Package preview renders the changes a dry run would make as a line diff.
package preview

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/walteh/sr/pkg/rewrite"
	"gitlab.com/tozd/go/errors"
)

// contextLines is how many unchanged lines are kept around each change
const contextLines = 2

// 👀 Renderer writes a diff per previewed file
type Renderer struct {
	out    io.Writer
	header *color.Color
	del    *color.Color
	ins    *color.Color
}

var _ rewrite.Previewer = (*Renderer)(nil)

// 🏭 New creates a renderer writing to out
func New(out io.Writer, noColor bool) *Renderer {
	r := &Renderer{
		out:    out,
		header: color.New(color.Bold),
		del:    color.New(color.FgRed),
		ins:    color.New(color.FgGreen),
	}
	for _, c := range []*color.Color{r.header, r.del, r.ins} {
		if noColor {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
	}
	return r
}

// 📝 Preview implements rewrite.Previewer
func (r *Renderer) Preview(ctx context.Context, path string, before, after []byte) error {
	diff := Compute(string(before), string(after))
	zerolog.Ctx(ctx).Debug().Str("file", path).Int("lines", len(diff)).Msg("rendering preview")

	var b strings.Builder
	b.WriteString(r.header.Sprintf("--- %s", path) + "\n")
	b.WriteString(r.header.Sprintf("+++ %s", path) + "\n")
	for _, l := range diff {
		switch l.Op {
		case OpDelete:
			b.WriteString(r.del.Sprint("-"+l.Text) + "\n")
		case OpInsert:
			b.WriteString(r.ins.Sprint("+"+l.Text) + "\n")
		case OpSkip:
			b.WriteString(fmt.Sprintf("@@ %d unchanged lines @@\n", l.Skipped))
		default:
			b.WriteString(" " + l.Text + "\n")
		}
	}

	if _, err := io.WriteString(r.out, b.String()); err != nil {
		return errors.Errorf("writing preview: %w", err)
	}
	return nil
}

// Op is the kind of a diff line
type Op int

const (
	OpEqual Op = iota
	OpDelete
	OpInsert
	OpSkip // a collapsed run of equal lines
)

// 📄 Line is one rendered line of a diff
type Line struct {
	Op      Op
	Text    string
	Skipped int // number of equal lines collapsed, for OpSkip
}

// 🔍 Compute returns a line diff of before and after, with long runs of
// unchanged lines collapsed to contextLines on each side
func Compute(before, after string) []Line {
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var out []Line
	for i, d := range diffs {
		text := splitLines(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			for _, l := range text {
				out = append(out, Line{Op: OpDelete, Text: l})
			}
		case diffmatchpatch.DiffInsert:
			for _, l := range text {
				out = append(out, Line{Op: OpInsert, Text: l})
			}
		case diffmatchpatch.DiffEqual:
			out = append(out, collapse(text, i == 0, i == len(diffs)-1)...)
		}
	}
	return out
}

// collapse keeps contextLines of an equal run next to each neighbouring change
func collapse(text []string, first, last bool) []Line {
	head, tail := contextLines, contextLines
	if first {
		head = 0
	}
	if last {
		tail = 0
	}

	if len(text) <= head+tail+1 {
		out := make([]Line, 0, len(text))
		for _, l := range text {
			out = append(out, Line{Op: OpEqual, Text: l})
		}
		return out
	}

	out := make([]Line, 0, head+tail+1)
	for _, l := range text[:head] {
		out = append(out, Line{Op: OpEqual, Text: l})
	}
	out = append(out, Line{Op: OpSkip, Skipped: len(text) - head - tail})
	for _, l := range text[len(text)-tail:] {
		out = append(out, Line{Op: OpEqual, Text: l})
	}
	return out
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return []string{""}
	}
	return strings.Split(s, "\n")
}
