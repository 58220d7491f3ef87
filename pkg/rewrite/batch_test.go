package rewrite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingReporter struct {
	outcomes []Outcome
}

func (r *recordingReporter) Report(ctx context.Context, o Outcome) {
	r.outcomes = append(r.outcomes, o)
}

func TestBatchRunner_Run(t *testing.T) {
	tests := []struct {
		name      string
		files     map[string]string
		paths     []string
		wantOK    bool
		wantKinds []Kind
		wantFiles map[string]string
	}{
		{
			name:      "single_rewrite",
			files:     map[string]string{"a.txt": "foo\nbar\nfoobar\n"},
			paths:     []string{"a.txt"},
			wantOK:    true,
			wantKinds: []Kind{Rewritten},
			wantFiles: map[string]string{"a.txt": "baz\nbar\nbazbar\n"},
		},
		{
			name:      "failure_does_not_stop_batch",
			files:     map[string]string{"b.txt": "foo\n"},
			paths:     []string{"missing.txt", "b.txt"},
			wantOK:    false,
			wantKinds: []Kind{Failed, Rewritten},
			wantFiles: map[string]string{"b.txt": "baz\n"},
		},
		{
			name:      "unchanged_is_success",
			files:     map[string]string{"c.txt": "nothing here\n", "d.txt": "foo"},
			paths:     []string{"c.txt", "d.txt"},
			wantOK:    true,
			wantKinds: []Kind{Unchanged, Rewritten},
			wantFiles: map[string]string{"c.txt": "nothing here\n", "d.txt": "baz"},
		},
		{
			name:      "duplicates_processed_twice",
			files:     map[string]string{"e.txt": "foo\n"},
			paths:     []string{"e.txt", "e.txt"},
			wantOK:    true,
			wantKinds: []Kind{Rewritten, Unchanged},
			wantFiles: map[string]string{"e.txt": "baz\n"},
		},
		{
			name:   "empty_list",
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tt.files {
				writeTestFile(t, dir, name, content, 0644)
			}
			paths := make([]string, 0, len(tt.paths))
			for _, p := range tt.paths {
				paths = append(paths, filepath.Join(dir, p))
			}

			reporter := &recordingReporter{}
			runner := NewBatchRunner(newTestRewriter(t, "foo", "baz", ""), reporter)
			result := runner.Run(context.Background(), paths)

			require.Len(t, result.Outcomes, len(paths), "one outcome per path")
			assert.Equal(t, tt.wantOK, result.OK(), "batch status should match")
			assert.Equal(t, result.Outcomes, reporter.outcomes, "every outcome is reported in order")

			for i, want := range tt.wantKinds {
				assert.Equal(t, paths[i], result.Outcomes[i].Path)
				assert.Equal(t, want, result.Outcomes[i].Kind, "kind of %s", tt.paths[i])
			}
			for name, want := range tt.wantFiles {
				assert.Equal(t, want, readTestFile(t, filepath.Join(dir, name)))
			}
		})
	}
}

func TestBatchResult_Count(t *testing.T) {
	result := &BatchResult{Outcomes: []Outcome{
		{Kind: Rewritten}, {Kind: Unchanged}, {Kind: Rewritten}, {Kind: Failed},
	}}
	assert.Equal(t, 2, result.Count(Rewritten))
	assert.Equal(t, 1, result.Count(Unchanged))
	assert.Equal(t, 1, result.Count(Failed))
	assert.False(t, result.OK())
}

func TestBatchRunner_NilReporter(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "a.txt", "foo\n", 0644)

	result := NewBatchRunner(newTestRewriter(t, "foo", "bar", ""), nil).Run(context.Background(), []string{path})
	assert.True(t, result.OK())
}
