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

package selector

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0755))
		require.NoError(t, os.WriteFile(p, []byte("<x/>"), 0644))
	}
}

func drain(ctx context.Context, root, pattern string) ([]string, error) {
	var out []string
	for p, err := range Select(ctx, root, pattern) {
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name    string
		files   []string
		pattern string
		want    []string
	}{
		{
			name: "default_pattern_recursive",
			files: []string{
				"1001-user.cfg",
				"site-a/1002-user.cfg",
				"site-a/deep/1003-user.cfg",
				"site-a/1002-phone.cfg",
				"notes.txt",
			},
			want: []string{
				"1001-user.cfg",
				"site-a/1002-user.cfg",
				"site-a/deep/1003-user.cfg",
			},
		},
		{
			name:    "custom_pattern",
			files:   []string{"a-phone.cfg", "b/c-phone.cfg", "d-user.cfg"},
			pattern: "*-phone.cfg",
			want:    []string{"a-phone.cfg", "b/c-phone.cfg"},
		},
		{
			name:  "directory_named_like_pattern_is_skipped",
			files: []string{"dir-user.cfg/inner-user.cfg"},
			want:  []string{"dir-user.cfg/inner-user.cfg"},
		},
		{
			name:  "no_matches",
			files: []string{"readme.md"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeTree(t, root, tt.files...)
			ctx := zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())

			got, err := drain(ctx, root, tt.pattern)
			require.NoError(t, err, "selection should succeed")

			var want []string
			for _, w := range tt.want {
				want = append(want, filepath.Join(root, filepath.FromSlash(w)))
			}
			assert.Equal(t, want, got, "selected files should match")
			for _, p := range got {
				assert.True(t, filepath.IsAbs(p), "paths should be absolute: %s", p)
			}
		})
	}
}

func TestSelectStopsEarly(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a-user.cfg", "b-user.cfg", "c-user.cfg")

	var got []string
	for p, err := range Select(context.Background(), root, "") {
		require.NoError(t, err)
		got = append(got, p)
		if len(got) == 2 {
			break
		}
	}

	assert.Len(t, got, 2, "breaking out of the loop should stop the walk")
}

func TestSelectErrors(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "file-user.cfg")

	tests := []struct {
		name        string
		root        string
		pattern     string
		errContains string
	}{
		{
			name:        "missing_root",
			root:        filepath.Join(root, "missing"),
			errContains: "reading root",
		},
		{
			name:        "root_is_file",
			root:        filepath.Join(root, "file-user.cfg"),
			errContains: "is not a directory",
		},
		{
			name:        "bad_pattern",
			root:        root,
			pattern:     "[-user.cfg",
			errContains: "invalid pattern",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := drain(context.Background(), tt.root, tt.pattern)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestSelectCancelled(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a-user.cfg")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := drain(ctx, root, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
