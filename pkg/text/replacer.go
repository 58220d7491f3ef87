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

package text

import (
	"regexp"

	"gitlab.com/tozd/go/errors"
)

// 🔄 Replacer applies one compiled pattern and one replacement template to text.
//
// The template may reference capture groups as $1, ${1} or ${name}. A group that
// did not participate in the match expands to the empty string. $$ is a literal $.
type Replacer struct {
	pattern  *regexp.Regexp
	template []byte
}

// 🏭 Compile compiles pattern and pairs it with the replacement template
func Compile(pattern, template string) (*Replacer, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Errorf("compiling pattern %q: %w", pattern, err)
	}
	return New(re, template), nil
}

// 🏭 New creates a Replacer from an already compiled pattern
func New(re *regexp.Regexp, template string) *Replacer {
	return &Replacer{
		pattern:  re,
		template: []byte(template),
	}
}

// Pattern returns the compiled pattern
func (r *Replacer) Pattern() *regexp.Regexp {
	return r.pattern
}

// Template returns the replacement template
func (r *Replacer) Template() string {
	return string(r.template)
}

// 🔍 IsMatch reports whether content holds at least one match anywhere
func (r *Replacer) IsMatch(content []byte) bool {
	return r.pattern.Match(content)
}

// 📝 ReplaceLine transforms a single line with no trailing newline.
// Matches cannot cross a line boundary since the line is all the engine sees.
func (r *Replacer) ReplaceLine(line []byte) []byte {
	return r.pattern.ReplaceAll(line, r.template)
}

// 📝 ReplaceAll replaces every non-overlapping match in content in one pass
func (r *Replacer) ReplaceAll(content []byte) []byte {
	return r.pattern.ReplaceAll(content, r.template)
}
