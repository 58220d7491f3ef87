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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		file        string
		config      string
		wantErr     bool
		errContains string
		check       func(t *testing.T, cfg *Config)
	}{
		{
			name: "yaml_full",
			file: ".srrc.yaml",
			config: `
backup_suffix: .bak
quiet: true
verbose: true
glob: true
exclude:
  - "**/vendor/**"
  - "*.min.js"
`,
			check: func(t *testing.T, cfg *Config) {
				require.NotNil(t, cfg.BackupSuffix, "backup suffix should be set")
				assert.Equal(t, ".bak", *cfg.BackupSuffix, "backup suffix should match")
				assert.True(t, cfg.Quiet, "quiet should be true")
				assert.True(t, cfg.Verbose, "verbose should be true")
				assert.True(t, cfg.Glob, "glob should be true")
				assert.Equal(t, []string{"**/vendor/**", "*.min.js"}, cfg.Exclude, "exclude should match")
			},
		},
		{
			name:   "yaml_empty",
			file:   ".srrc.yml",
			config: "",
			check: func(t *testing.T, cfg *Config) {
				assert.Nil(t, cfg.BackupSuffix, "backup suffix should be unset")
				assert.False(t, cfg.Quiet, "quiet should default to false")
			},
		},
		{
			name:        "yaml_unknown_key",
			file:        ".srrc.yaml",
			config:      "pattern: foo\n",
			wantErr:     true,
			errContains: "parsing YAML",
		},
		{
			name: "hcl_full",
			file: ".srrc.hcl",
			config: `
backup_suffix = ".orig"
verbose       = true
glob          = true
exclude       = ["**/testdata/**"]
`,
			check: func(t *testing.T, cfg *Config) {
				require.NotNil(t, cfg.BackupSuffix, "backup suffix should be set")
				assert.Equal(t, ".orig", *cfg.BackupSuffix, "backup suffix should match")
				assert.False(t, cfg.Quiet, "quiet should default to false")
				assert.True(t, cfg.Verbose, "verbose should be true")
				assert.Equal(t, []string{"**/testdata/**"}, cfg.Exclude, "exclude should match")
			},
		},
		{
			name:   "hcl_env_interpolation",
			file:   ".srrc.hcl",
			config: `backup_suffix = ".${env.SR_TEST_SUFFIX}"`,
			check: func(t *testing.T, cfg *Config) {
				require.NotNil(t, cfg.BackupSuffix, "backup suffix should be set")
				assert.Equal(t, ".keep", *cfg.BackupSuffix, "env value should be interpolated")
			},
		},
		{
			name:        "hcl_syntax_error",
			file:        ".srrc.hcl",
			config:      `backup_suffix = `,
			wantErr:     true,
			errContains: "parsing HCL",
		},
		{
			name:        "hcl_unknown_attribute",
			file:        ".srrc.hcl",
			config:      `replace = "x"`,
			wantErr:     true,
			errContains: "decoding HCL",
		},
		{
			name:        "invalid_exclude",
			file:        ".srrc.yaml",
			config:      "exclude: [\"[\"]\n",
			wantErr:     true,
			errContains: "invalid pattern",
		},
		{
			name:        "unsupported_extension",
			file:        "srrc.toml",
			config:      "quiet = true",
			wantErr:     true,
			errContains: "no parser found",
		},
	}

	t.Setenv("SR_TEST_SUFFIX", "keep")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, tt.file)
			require.NoError(t, os.WriteFile(path, []byte(tt.config), 0644), "writing config file")

			cfg, err := Load(context.Background(), path)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, cfg)
			assert.Equal(t, path, cfg.Location(), "location should be recorded")
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), ".srrc.hcl"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()

	_, ok := Discover(dir)
	assert.False(t, ok, "nothing to discover in an empty dir")

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".srrc.yml"), nil, 0644))
	path, ok := Discover(dir)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, ".srrc.yml"), path)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".srrc.hcl"), nil, 0644))
	path, ok = Discover(dir)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, ".srrc.hcl"), path, "hcl takes precedence")

	other := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(other, ".srrc.hcl"), 0755))
	_, ok = Discover(other)
	assert.False(t, ok, "directories are not config files")
}

func TestGetParser(t *testing.T) {
	assert.IsType(t, &HCLParser{}, GetParser("a.hcl"))
	assert.IsType(t, &YAMLParser{}, GetParser("a.yaml"))
	assert.IsType(t, &YAMLParser{}, GetParser("a.yml"))
	assert.Nil(t, GetParser("a.json"))
}
