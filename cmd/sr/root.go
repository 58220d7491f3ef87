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
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/walteh/sr/pkg/config"
	"github.com/walteh/sr/pkg/log"
	"github.com/walteh/sr/pkg/preview"
	"github.com/walteh/sr/pkg/rewrite"
	"github.com/walteh/sr/pkg/target"
	"github.com/walteh/sr/pkg/text"
	"gitlab.com/tozd/go/errors"
)

const usage = `Search and replace

USAGE:
    sr [options] <pattern> <replace> [file]...

OPTIONS:
    -i, --in-place SUFFIX - Modifies files in place. If SUFFIX is not empty creates backup with it.
    -q, --quiet           - Specifies silent mode. Default false.
    -n, --dry-run         - Prints a diff of matching files instead of rewriting them.
    -g, --glob            - Treats file operands as glob patterns (** allowed).
    -v, --verbose         - Prints a status line for every file.
    -c, --config FILE     - Reads defaults from FILE (default: .srrc.hcl, .srrc.yaml or .srrc.yml).
        --debug           - Enables debug logging.
    -h, --help            - Prints this help message.

ARGS:
    <pattern> - Specifies regex to look for.
    <replace> - Specifies expression to replace with. captured values like $1 are allowed
    [file]... - Optionally specifies list of files. If omitted reads from STDIN.
`

// Process exit codes
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// 🚪 exitError carries the process exit code for an error
type exitError struct {
	code      int
	msg       string // printed to stderr when not empty
	showUsage bool   // print usage to stdout after msg
}

func (e *exitError) Error() string {
	if e.msg != "" {
		return e.msg
	}
	return fmt.Sprintf("exit status %d", e.code)
}

func usageError(format string, args ...interface{}) *exitError {
	return &exitError{code: exitUsage, msg: fmt.Sprintf(format, args...), showUsage: true}
}

// 🔧 rootOpts holds flag values for one invocation
type rootOpts struct {
	suffix     string
	quiet      bool
	verbose    bool
	dryRun     bool
	glob       bool
	debug      bool
	configFile string
}

// 🏗️ newRootCmd creates the sr command bound to the given streams
func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	opts := &rootOpts{}

	cmd := &cobra.Command{
		Use:           "sr [options] <pattern> <replace> [file]...",
		Short:         "Search and replace",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoot(cmd.Context(), cmd.Flags(), opts, args, stdin, stdout, stderr)
		},
	}

	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		fmt.Fprint(stdout, usage)
	})
	cmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError("Invalid flag is specified: %v", err)
	})

	flags := cmd.Flags()
	flags.SortFlags = false
	flags.StringVarP(&opts.suffix, "in-place", "i", "", "backup suffix for rewritten files")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "suppress per-file error diagnostics")
	flags.BoolVarP(&opts.dryRun, "dry-run", "n", false, "print a diff instead of rewriting")
	flags.BoolVarP(&opts.glob, "glob", "g", false, "treat file operands as glob patterns")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "print a status line for every file")
	flags.StringVarP(&opts.configFile, "config", "c", "", "config file path")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")

	return cmd
}

// 🏃 runRoot is the body of the sr command
func runRoot(ctx context.Context, flags *pflag.FlagSet, opts *rootOpts, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	ctx = setupLogging(ctx, stderr, opts.debug)
	logger := zerolog.Ctx(ctx)

	if len(args) == 0 {
		return usageError("Missing <search> pattern")
	}
	if len(args) == 1 {
		return usageError("Missing <replace> pattern")
	}

	replacer, err := text.Compile(args[0], args[1])
	if err != nil {
		return &exitError{code: exitUsage, msg: fmt.Sprintf("Unable to compile '%s' into regex expression. Error: %v", args[0], errors.Unwrap(err))}
	}
	logger.Debug().
		Stringer("pattern", replacer.Pattern()).
		Str("template", replacer.Template()).
		Msg("compiled pattern")

	operands := args[2:]

	// a config file in the working directory only applies to file mode
	cfg, err := loadConfig(ctx, opts.configFile, len(operands) > 0)
	if err != nil {
		return &exitError{code: exitUsage, msg: fmt.Sprintf("Unable to load config. Error: %v", err)}
	}
	excludes := applyConfig(flags, opts, cfg)

	reporter := log.New(stderr, log.Options{
		Quiet:   opts.quiet,
		Verbose: opts.verbose,
		NoColor: noColor(stderr),
	})

	if len(operands) == 0 {
		logger.Debug().Msg("no files given, reading stdin")
		if err := runStdin(ctx, stdin, stdout, replacer); err != nil {
			var out *outputError
			if errors.As(err, &out) {
				reporter.Errorf("Error writing stdout: %v", out.err)
			} else {
				reporter.Errorf("Error reading stdin: %v", err)
			}
			return &exitError{code: exitFailure}
		}
		return nil
	}

	paths, err := target.Expand(ctx, operands, target.Options{Glob: opts.glob, Exclude: excludes})
	if err != nil {
		return &exitError{code: exitUsage, msg: err.Error()}
	}

	rwOpts := rewrite.Options{
		Replacer:     replacer,
		BackupSuffix: opts.suffix,
	}
	if opts.dryRun {
		rwOpts.Previewer = preview.New(stdout, noColor(stdout))
	}

	rw, err := rewrite.New(rwOpts)
	if err != nil {
		return errors.Errorf("creating rewriter: %w", err)
	}

	result := rewrite.NewBatchRunner(rw, reporter).Run(ctx, paths)
	if !result.OK() {
		return &exitError{code: exitFailure}
	}
	return nil
}

// 📚 loadConfig loads the explicit config file, or a discovered one when
// discover is set, or nothing
func loadConfig(ctx context.Context, path string, discover bool) (*config.Config, error) {
	if path == "" {
		if !discover {
			return &config.Config{}, nil
		}
		found, ok := config.Discover(".")
		if !ok {
			return &config.Config{}, nil
		}
		path = found
	}

	cfg, err := config.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	zerolog.Ctx(ctx).Debug().Str("config", cfg.Location()).Msg("loaded config")
	return cfg, nil
}

// applyConfig fills options the command line left unset and returns the
// exclude patterns for glob expansion
func applyConfig(flags *pflag.FlagSet, opts *rootOpts, cfg *config.Config) []string {
	if !flags.Changed("in-place") && cfg.BackupSuffix != nil {
		opts.suffix = *cfg.BackupSuffix
	}
	if !flags.Changed("quiet") {
		opts.quiet = opts.quiet || cfg.Quiet
	}
	if !flags.Changed("verbose") {
		opts.verbose = opts.verbose || cfg.Verbose
	}
	if !flags.Changed("glob") {
		opts.glob = opts.glob || cfg.Glob
	}
	return cfg.Exclude
}

// setupLogging configures zerolog based on flags and stores it in ctx
func setupLogging(ctx context.Context, stderr io.Writer, debug bool) context.Context {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: stderr, NoColor: noColor(stderr)}
	logger := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return logger.WithContext(ctx)
}

// noColor reports whether w should get plain text
func noColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return true
	}
	return color.NoColor || !isatty.IsTerminal(f.Fd())
}
