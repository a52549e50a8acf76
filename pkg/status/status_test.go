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

package status

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func TestFileManager(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T, dir string)
		check func(t *testing.T, ctx context.Context, mgr *Manager, dir string)
	}{
		{
			name: "write_atomic_replaces_content",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "a-user.cfg"), []byte("old"), 0600))
			},
			check: func(t *testing.T, ctx context.Context, mgr *Manager, dir string) {
				require.NoError(t, mgr.WriteFileAtomic(ctx, "a-user.cfg", []byte("new")))

				got, err := mgr.ReadFile(ctx, filepath.Join(dir, "a-user.cfg"))
				require.NoError(t, err)
				assert.Equal(t, "new", string(got), "content should be replaced")

				info, err := os.Stat(filepath.Join(dir, "a-user.cfg"))
				require.NoError(t, err)
				assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "permissions should be kept")

				_, err = os.Stat(filepath.Join(dir, "a-user.cfg.tmp"))
				assert.True(t, os.IsNotExist(err), "temp file should be gone")
			},
		},
		{
			name: "write_atomic_creates_parents",
			check: func(t *testing.T, ctx context.Context, mgr *Manager, dir string) {
				require.NoError(t, mgr.WriteFileAtomic(ctx, "nested/dir/b-user.cfg", []byte("x")))

				exists, err := mgr.FileExists(ctx, "nested/dir/b-user.cfg")
				require.NoError(t, err)
				assert.True(t, exists)
			},
		},
		{
			name: "backup_and_restore",
			setup: func(t *testing.T, dir string) {
				require.NoError(t, os.WriteFile(filepath.Join(dir, "c-user.cfg"), []byte("original"), 0644))
			},
			check: func(t *testing.T, ctx context.Context, mgr *Manager, dir string) {
				require.NoError(t, mgr.BackupFile(ctx, "c-user.cfg"))
				require.NoError(t, mgr.WriteFileAtomic(ctx, "c-user.cfg", []byte("changed")))

				bak, err := os.ReadFile(filepath.Join(dir, "c-user.cfg.bak"))
				require.NoError(t, err)
				assert.Equal(t, "original", string(bak), "backup should hold the original content")

				require.NoError(t, mgr.RestoreFile(ctx, "c-user.cfg"))
				got, err := mgr.ReadFile(ctx, "c-user.cfg")
				require.NoError(t, err)
				assert.Equal(t, "original", string(got), "restore should bring back the original")

				exists, err := mgr.FileExists(ctx, "c-user.cfg.bak")
				require.NoError(t, err)
				assert.False(t, exists, "backup should be removed after restore")
			},
		},
		{
			name: "backup_missing_file_is_noop",
			check: func(t *testing.T, ctx context.Context, mgr *Manager, dir string) {
				require.NoError(t, mgr.BackupFile(ctx, "missing-user.cfg"))
				err := mgr.RestoreFile(ctx, "missing-user.cfg")
				require.Error(t, err)
				assert.Contains(t, err.Error(), "backup file does not exist")
			},
		},
		{
			name: "read_missing_file",
			check: func(t *testing.T, ctx context.Context, mgr *Manager, dir string) {
				_, err := mgr.ReadFile(ctx, "missing-user.cfg")
				require.Error(t, err)
				assert.Contains(t, err.Error(), "reading file")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.setup != nil {
				tt.setup(t, dir)
			}
			mgr := NewManager(dir, nil)
			tt.check(t, testContext(t), mgr, dir)
		})
	}
}

func TestStatusReporter(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	mgr := NewManager(dir, NewDefaultFileFormatter())

	mgr.StartOperation(ctx)
	mgr.TrackFile(ctx, FileInfo{Path: filepath.Join(dir, "b-user.cfg"), Status: StatusModified, Replacements: 2})
	mgr.TrackFile(ctx, FileInfo{Path: filepath.Join(dir, "a-user.cfg"), Status: StatusFailed, Error: errors.New("boom")})
	mgr.UpdateProgress(ctx, 2)
	mgr.FinishOperation(ctx)

	assert.Equal(t, 2, mgr.Processed())

	files, err := mgr.ListFiles(ctx)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(dir, "a-user.cfg"), files[0].Path, "files should be ordered by path")
	assert.Equal(t, StatusFailed, files[0].Status)

	assert.Equal(t, 2, files[1].Replacements)

	mgr.TrackFile(ctx, FileInfo{Path: "b-user.cfg", Status: StatusUnchanged})
	files, err = mgr.ListFiles(ctx)
	require.NoError(t, err)
	require.Len(t, files, 2, "relative paths should resolve against the base dir")
	assert.Equal(t, StatusUnchanged, files[1].Status)
}

func TestDefaultFileFormatter(t *testing.T) {
	f := NewDefaultFileFormatter()

	tests := []struct {
		name string
		info FileInfo
		want string
	}{
		{
			name: "modified",
			info: FileInfo{Path: "a-user.cfg", Status: StatusModified, Replacements: 3, Skips: 1},
			want: "📝 Normalized a-user.cfg (3 replaced, 1 skipped)",
		},
		{
			name: "pending",
			info: FileInfo{Path: "a-user.cfg", Status: StatusPending, Replacements: 1},
			want: "🔎 Would normalize a-user.cfg (1 to replace, 0 skipped)",
		},
		{
			name: "failed",
			info: FileInfo{Path: "a-user.cfg", Status: StatusFailed},
			want: "❌ Failed a-user.cfg",
		},
		{
			name: "unchanged",
			info: FileInfo{Path: "a-user.cfg", Status: StatusUnchanged, Skips: 2},
			want: "👍 Unchanged a-user.cfg (2 skipped)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, f.FormatFileOperation(tt.info))
		})
	}

	assert.Equal(t, "⏳ Processed 4 files", f.FormatProgress(4, false))
	assert.Equal(t, "✅ Processed 4 files", f.FormatProgress(4, true))
	assert.Equal(t, "❌ Error: boom", f.FormatError(errors.New("boom")))
	assert.Empty(t, f.FormatError(nil))
	assert.Equal(t, "pending", StatusPending.String())
}
