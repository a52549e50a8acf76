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

package settings

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	tests := []struct {
		name        string
		setup       func(t *testing.T, path string)
		wantFolder  string
		wantErr     bool
		errContains string
	}{
		{
			name: "missing_file",
		},
		{
			name: "empty_file",
			setup: func(t *testing.T, path string) {
				require.NoError(t, os.WriteFile(path, nil, 0644))
			},
		},
		{
			name: "stored_folder",
			setup: func(t *testing.T, path string) {
				require.NoError(t, os.WriteFile(path, []byte("default_folder: /srv/phones\n"), 0644))
			},
			wantFolder: "/srv/phones",
		},
		{
			name: "unknown_field",
			setup: func(t *testing.T, path string) {
				require.NoError(t, os.WriteFile(path, []byte("search_folder: /srv\n"), 0644))
			},
			wantErr:     true,
			errContains: "parsing settings",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.yaml")
			if tt.setup != nil {
				tt.setup(t, path)
			}

			st, err := NewStore(path).Load(context.Background())
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantFolder, st.DefaultFolder)
		})
	}
}

func TestSetDefaultFolder(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := NewStore(filepath.Join(dir, "cfg", "regnorm", "settings.yaml"))

	phones := filepath.Join(dir, "phones")
	require.NoError(t, os.Mkdir(phones, 0755))

	got, err := store.SetDefaultFolder(ctx, phones)
	require.NoError(t, err)
	assert.Equal(t, phones, got)

	st, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, phones, st.DefaultFolder, "folder should persist")

	_, err = store.SetDefaultFolder(ctx, filepath.Join(dir, "missing"))
	require.Error(t, err, "missing directory should be rejected")

	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	_, err = store.SetDefaultFolder(ctx, file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a directory")
}

func TestSaveReplacesFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("default_folder: /old\n"), 0600))

	store := NewStore(path)
	require.NoError(t, store.Save(ctx, &Settings{DefaultFolder: "/srv/phones"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "default_folder: /srv/phones\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm(), "permissions should survive the rewrite")

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "no temp file should be left behind")
}

func TestResolveFolder(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		name        string
		settings    Settings
		arg         string
		want        string
		errContains string
	}{
		{name: "default_only", settings: Settings{DefaultFolder: "/srv/phones"}, want: "/srv/phones"},
		{name: "absolute_arg", settings: Settings{DefaultFolder: "/srv/phones"}, arg: "/other/site", want: "/other/site"},
		{name: "relative_to_default", settings: Settings{DefaultFolder: "/srv/phones"}, arg: "site-a", want: "/srv/phones/site-a"},
		{name: "relative_to_working_dir", arg: "site-a", want: filepath.Join(wd, "site-a")},
		{name: "nothing", errContains: "no default folder set"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.settings.ResolveFolder(tt.arg)
			if tt.errContains != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.FromSlash(tt.want), got)
		})
	}
}
