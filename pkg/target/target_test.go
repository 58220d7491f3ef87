package target

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a/x.txt", "a/b/y.txt", "a/y.go", "a/vendor/z.txt", "c.txt"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	}
	j := func(name string) string { return filepath.Join(dir, name) }

	tests := []struct {
		name        string
		operands    []string
		opts        Options
		want        []string
		errContains string
	}{
		{
			name:     "literal_operands_pass_through",
			operands: []string{j("c.txt"), "*.nothing", j("c.txt")},
			want:     []string{j("c.txt"), "*.nothing", j("c.txt")},
		},
		{
			name:     "recursive_glob_sorted",
			operands: []string{j("a/**/*.txt")},
			opts:     Options{Glob: true},
			want:     []string{j("a/b/y.txt"), j("a/vendor/z.txt"), j("a/x.txt")},
		},
		{
			name:     "exclude_drops_matches",
			operands: []string{j("a/**/*.txt")},
			opts:     Options{Glob: true, Exclude: []string{"**/vendor/**"}},
			want:     []string{j("a/b/y.txt"), j("a/x.txt")},
		},
		{
			name:     "operand_order_kept",
			operands: []string{j("c.txt"), j("a/*.go")},
			opts:     Options{Glob: true},
			want:     []string{j("c.txt"), j("a/y.go")},
		},
		{
			name:     "directories_are_not_matched",
			operands: []string{j("a/*")},
			opts:     Options{Glob: true},
			want:     []string{j("a/x.txt"), j("a/y.go")},
		},
		{
			name:     "no_match_kept_literally",
			operands: []string{j("*.md")},
			opts:     Options{Glob: true},
			want:     []string{j("*.md")},
		},
		{
			name:        "bad_pattern",
			operands:    []string{j("[")},
			opts:        Options{Glob: true},
			errContains: "invalid glob pattern",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Expand(context.Background(), tt.operands, tt.opts)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
