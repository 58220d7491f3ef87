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

package log

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
	"github.com/walteh/sr/pkg/rewrite"
)

// 🔧 Options configures a Reporter
type Options struct {
	Quiet   bool // suppress failure diagnostics
	Verbose bool // print a line for every file, not only failures
	NoColor bool
}

// 🎯 Reporter writes operator-facing output to the error channel
type Reporter struct {
	console io.Writer
	opts    Options
	mu      sync.Mutex

	subject *color.Color
	failure *color.Color
}

var _ rewrite.Reporter = (*Reporter)(nil)

// 🏭 New creates a new reporter writing to console
func New(console io.Writer, opts Options) *Reporter {
	r := &Reporter{
		console: console,
		opts:    opts,
		subject: color.New(color.Bold),
		failure: color.New(color.FgRed),
	}
	if opts.NoColor {
		r.subject.DisableColor()
		r.failure.DisableColor()
	} else {
		r.subject.EnableColor()
		r.failure.EnableColor()
	}
	return r
}

// 📝 Report prints the diagnostic for a failed file unless quiet, and a status
// line for every file when verbose
func (r *Reporter) Report(ctx context.Context, o rewrite.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()

	logger := zerolog.Ctx(ctx)
	logger.Debug().
		Str("file", o.Path).
		Stringer("kind", o.Kind).
		Stringer("strategy", o.Strategy).
		Stringer("stage", o.Stage).
		AnErr("cause", o.Err).
		Msg("file processed")

	if o.Kind == rewrite.Failed {
		if !r.opts.Quiet {
			fmt.Fprintln(r.console, r.formatDiagnostic(o))
		}
		return
	}

	if r.opts.Verbose {
		r.printStatus(o)
	}
}

// 📝 Errorf prints a run-level error unless quiet
func (r *Reporter) Errorf(format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.opts.Quiet {
		return
	}
	fmt.Fprintln(r.console, r.failure.Sprintf(format, args...))
}

// formatDiagnostic colors the subject of a diagnostic and leaves the rest plain
func (r *Reporter) formatDiagnostic(o rewrite.Outcome) string {
	msg := o.Diagnostic()
	prefix := o.Subject + ":"
	if !strings.HasPrefix(msg, prefix) {
		return r.failure.Sprint(msg)
	}
	return r.subject.Sprint(prefix) + r.failure.Sprint(strings.TrimPrefix(msg, prefix))
}

// printStatus prints a per-file status line the way pterm prefix printers do
func (r *Reporter) printStatus(o rewrite.Outcome) {
	var printer pterm.PrefixPrinter
	var action string
	switch o.Kind {
	case rewrite.Rewritten:
		printer = *pterm.Success.WithPrefix(pterm.Prefix{Text: "REWRITTEN", Style: pterm.Success.Prefix.Style})
		action = "rewritten"
	case rewrite.Previewed:
		printer = *pterm.Info.WithPrefix(pterm.Prefix{Text: "PREVIEW", Style: pterm.Info.Prefix.Style})
		action = "would rewrite"
	default:
		printer = *pterm.Description.WithPrefix(pterm.Prefix{Text: "UNCHANGED", Style: pterm.Description.Prefix.Style})
		action = "no match"
	}

	printer = *printer.WithWriter(r.console)
	if r.opts.NoColor {
		printer = *printer.WithMessageStyle(pterm.NewStyle())
		printer.Prefix.Style = pterm.NewStyle()
	}
	printer.Printfln("%s (%s, %s)", o.Path, action, o.Strategy)
}
