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
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DateLayout is the month-day-year stamp used in run log file names.
const DateLayout = "1-2-2006"

// DirName is the default logs directory name next to the executable.
const DirName = "Logs"

// Writer persists rendered run logs.
type Writer interface {
	WriteFileAtomic(ctx context.Context, path string, content []byte) error
}

// 📛 FileName returns the run log file name for a search folder,
// `{base name}-{M-D-YYYY}.txt`.
func FileName(searchFolder string, now time.Time) string {
	base := filepath.Base(filepath.Clean(searchFolder))
	if base == string(filepath.Separator) || base == "." {
		base = "root"
	}
	return fmt.Sprintf("%s-%s.txt", base, now.Format(DateLayout))
}

// TotalLine renders the trailing summary of a run log.
func TotalLine(total int) string {
	return fmt.Sprintf("Total Replacements: %d.", total)
}

// 📝 Render joins the run lines, one per line, followed by the total line.
func Render(lines []string, total int) string {
	var b strings.Builder
	for _, line := range lines {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	b.WriteString(TotalLine(total))
	return b.String()
}

// 💾 Write renders the run log into dir and returns the written path.
func Write(ctx context.Context, w Writer, dir, searchFolder string, now time.Time, lines []string, total int) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Errorf("creating logs directory: %w", err)
	}

	path := filepath.Join(dir, FileName(searchFolder, now))
	if err := w.WriteFileAtomic(ctx, path, []byte(Render(lines, total))); err != nil {
		return "", errors.Errorf("writing run log: %w", err)
	}

	zerolog.Ctx(ctx).Debug().Str("path", path).Int("lines", len(lines)).Int("total", total).Msg("wrote run log")
	return path, nil
}

// DefaultDir returns the Logs directory next to the running executable.
func DefaultDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", errors.Errorf("locating executable: %w", err)
	}
	return filepath.Join(filepath.Dir(exe), DirName), nil
}
