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

package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// DefaultFileNames are looked up, in order, when no config file is given
var DefaultFileNames = []string{".srrc.hcl", ".srrc.yaml", ".srrc.yml"}

// 📚 Config holds defaults for command line options.
// The pattern, the replacement and the file list never come from here.
type Config struct {
	BackupSuffix *string  `yaml:"backup_suffix"` // nil when unset, "" disables backups
	Quiet        bool     `yaml:"quiet"`
	Verbose      bool     `yaml:"verbose"`
	Glob         bool     `yaml:"glob"`
	Exclude      []string `yaml:"exclude"` // doublestar patterns dropped from glob results

	location string
}

// Location returns the file the config was loaded from
func (cfg *Config) Location() string {
	return cfg.location
}

// 🔍 Discover looks for a default config file in dir
func Discover(dir string) (string, bool) {
	for _, name := range DefaultFileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			return path, true
		}
	}
	return "", false
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	cfg.location = path
	return cfg, nil
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	for i, pattern := range cfg.Exclude {
		if pattern == "" {
			return errors.Errorf("exclude %d: pattern is empty", i)
		}
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("exclude %d: invalid pattern %q", i, pattern)
		}
	}
	return nil
}
