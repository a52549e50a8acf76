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

package runlog

import (
	"context"
	"os/exec"
	"runtime"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// openCommand returns the file browser invocation for goos.
func openCommand(goos, dir string) (string, []string) {
	switch goos {
	case "windows":
		return "explorer.exe", []string{dir}
	case "darwin":
		return "open", []string{dir}
	default:
		return "xdg-open", []string{dir}
	}
}

// 📂 Open shows dir in the platform file browser without waiting for it.
func Open(ctx context.Context, dir string) error {
	name, args := openCommand(runtime.GOOS, dir)

	cmd := exec.CommandContext(ctx, name, args...)
	if err := cmd.Start(); err != nil {
		return errors.Errorf("starting %s: %w", name, err)
	}

	zerolog.Ctx(ctx).Debug().Str("command", name).Str("dir", dir).Msg("opened logs directory")

	// explorer.exe exits non-zero even on success, so the exit status is ignored
	go func() { _ = cmd.Wait() }()
	return nil
}
