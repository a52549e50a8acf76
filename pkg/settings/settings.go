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
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/regnorm/pkg/status"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🗂️ Settings holds user preferences that outlive a run
type Settings struct {
	DefaultFolder string `yaml:"default_folder,omitempty"`
}

// 💾 Store reads and writes Settings as a YAML file
type Store struct {
	path  string
	files status.FileManager
}

// NewStore creates a store backed by path
func NewStore(path string) *Store {
	return &Store{path: path, files: status.NewManager(filepath.Dir(path), nil)}
}

// DefaultPath returns <user config dir>/regnorm/settings.yaml
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Errorf("locating user config directory: %w", err)
	}
	return filepath.Join(dir, "regnorm", "settings.yaml"), nil
}

// Path returns the backing file
func (s *Store) Path() string {
	return s.path
}

// 📖 Load reads the settings. A missing file yields empty settings.
func (s *Store) Load(ctx context.Context) (*Settings, error) {
	exists, err := s.files.FileExists(ctx, s.path)
	if err != nil {
		return nil, errors.Errorf("reading settings: %w", err)
	}
	if !exists {
		zerolog.Ctx(ctx).Debug().Str("path", s.path).Msg("no settings file, using defaults")
		return &Settings{}, nil
	}

	data, err := s.files.ReadFile(ctx, s.path)
	if err != nil {
		return nil, errors.Errorf("reading settings: %w", err)
	}

	var out Settings
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&out); err != nil && len(bytes.TrimSpace(data)) > 0 {
		return nil, errors.Errorf("parsing settings: %w", err)
	}

	return &out, nil
}

// 📝 Save replaces the settings file atomically, creating the parent directory
func (s *Store) Save(ctx context.Context, st *Settings) error {
	data, err := yaml.Marshal(st)
	if err != nil {
		return errors.Errorf("marshaling settings: %w", err)
	}

	if err := s.files.WriteFileAtomic(ctx, s.path, data); err != nil {
		return errors.Errorf("writing settings: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", s.path).Msg("saved settings")
	return nil
}

// SetDefaultFolder stores dir as the default folder. dir must be an existing directory.
func (s *Store) SetDefaultFolder(ctx context.Context, dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Errorf("resolving %s: %w", dir, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", errors.Errorf("checking default folder: %w", err)
	}
	if !info.IsDir() {
		return "", errors.Errorf("default folder %s is not a directory", abs)
	}

	st, err := s.Load(ctx)
	if err != nil {
		return "", err
	}
	st.DefaultFolder = abs

	if err := s.Save(ctx, st); err != nil {
		return "", err
	}
	return abs, nil
}

// 🧭 ResolveFolder picks the search folder for a run.
//
// An empty arg falls back to the default folder. A relative arg is joined onto
// the default folder when one is set, otherwise onto the working directory.
func (st *Settings) ResolveFolder(arg string) (string, error) {
	switch {
	case arg == "" && st.DefaultFolder == "":
		return "", errors.New("no folder given and no default folder set")
	case arg == "":
		return st.DefaultFolder, nil
	case filepath.IsAbs(arg):
		return filepath.Clean(arg), nil
	case st.DefaultFolder != "":
		return filepath.Join(st.DefaultFolder, arg), nil
	}

	abs, err := filepath.Abs(arg)
	if err != nil {
		return "", errors.Errorf("resolving %s: %w", arg, err)
	}
	return abs, nil
}
