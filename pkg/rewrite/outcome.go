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
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// ErrNoParentDir is returned when a path has no directory a temporary file can be placed in
var ErrNoParentDir = errors.Base("no parent directory")

// 📊 Kind is the result class of processing one file
type Kind int

const (
	Unchanged Kind = iota // no match, file untouched
	Rewritten             // content replaced, backup taken if configured
	Previewed             // dry run, changes shown but not written
	Failed                // see Outcome.Stage and Outcome.Err
)

// String returns a string representation of Kind
func (k Kind) String() string {
	switch k {
	case Unchanged:
		return "unchanged"
	case Rewritten:
		return "rewritten"
	case Previewed:
		return "previewed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// 🚧 Stage identifies the step a file failed at
type Stage int

const (
	StageNone Stage = iota
	StageOpen
	StageStat
	StageRead
	StageMatch // reserved, the regexp engine's match test cannot fail
	StageTempCreate
	StageWrite
	StageBackup
	StageCreate
	StagePublish
)

// String returns a string representation of Stage
func (s Stage) String() string {
	switch s {
	case StageOpen:
		return "open"
	case StageStat:
		return "stat"
	case StageRead:
		return "read"
	case StageMatch:
		return "match-check"
	case StageTempCreate:
		return "temp-create"
	case StageWrite:
		return "write"
	case StageBackup:
		return "backup-rename"
	case StageCreate:
		return "create"
	case StagePublish:
		return "publish"
	default:
		return "none"
	}
}

// 📄 Outcome is the result of processing one file
type Outcome struct {
	Path     string
	Kind     Kind
	Strategy Strategy
	Stage    Stage  // set when Kind is Failed
	Subject  string // path the failure is about; may be the temp dir or the backup path
	Err      error
}

func unchanged(path string, s Strategy) Outcome {
	return Outcome{Path: path, Kind: Unchanged, Strategy: s}
}

func rewritten(path string, s Strategy) Outcome {
	return Outcome{Path: path, Kind: Rewritten, Strategy: s}
}

func previewed(path string, s Strategy) Outcome {
	return Outcome{Path: path, Kind: Previewed, Strategy: s}
}

func failed(path string, s Strategy, stage Stage, subject string, err error) Outcome {
	return Outcome{Path: path, Kind: Failed, Strategy: s, Stage: stage, Subject: subject, Err: err}
}

// OK reports whether the file reached a non-failed outcome
func (o Outcome) OK() bool {
	return o.Kind != Failed
}

// 📝 Diagnostic renders the operator-facing line for a failed outcome
func (o Outcome) Diagnostic() string {
	if o.Kind != Failed {
		return ""
	}
	switch o.Stage {
	case StageOpen:
		return fmt.Sprintf("%s: Unable to open. Error %v", o.Subject, o.Err)
	case StageStat, StageRead, StageMatch:
		return fmt.Sprintf("%s: Unable to read. Error %v", o.Subject, o.Err)
	case StageTempCreate:
		if errors.Is(o.Err, ErrNoParentDir) {
			return fmt.Sprintf("%s: Unable to get parent dir", o.Subject)
		}
		return fmt.Sprintf("%s: Unable to create tmp file. Error %v", o.Subject, o.Err)
	case StageWrite:
		return fmt.Sprintf("%s: Unable to write. Error %v", o.Subject, o.Err)
	case StageBackup:
		return fmt.Sprintf("%s: Unable to create backup. Error %v", o.Subject, o.Err)
	case StageCreate:
		return fmt.Sprintf("%s: Unable to create. Error %v", o.Subject, o.Err)
	default:
		return fmt.Sprintf("%s: %v", o.Subject, o.Err)
	}
}

// 📦 BatchResult aggregates the outcome of every file in a run
type BatchResult struct {
	Outcomes []Outcome
}

// OK reports whether no file failed
func (b *BatchResult) OK() bool {
	for _, o := range b.Outcomes {
		if !o.OK() {
			return false
		}
	}
	return true
}

// Count returns the number of outcomes of the given kind
func (b *BatchResult) Count(k Kind) int {
	n := 0
	for _, o := range b.Outcomes {
		if o.Kind == k {
			n++
		}
	}
	return n
}
