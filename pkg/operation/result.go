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

package operation

import (
	"fmt"

	"github.com/walteh/regnorm/pkg/normalize"
	"github.com/walteh/regnorm/pkg/status"
)

// 📄 FileResult is the outcome of one file
type FileResult struct {
	Path         string
	Status       status.FileStatus
	Decisions    []normalize.Decision
	Replacements int
	Diff         string
	Err          error
}

// FailureLine renders a fatal file error as a run log line.
func FailureLine(path string, err error) string {
	return fmt.Sprintf("For file %s, processing failed: %v", path, err)
}

// Lines renders the file's run log lines. A failed file contributes only
// its failure line.
func (f FileResult) Lines() []string {
	if f.Err != nil {
		return []string{FailureLine(f.Path, f.Err)}
	}
	lines := make([]string, len(f.Decisions))
	for i, d := range f.Decisions {
		lines[i] = d.String()
	}
	return lines
}

func (f FileResult) fail(err error) FileResult {
	f.Status = status.StatusFailed
	f.Decisions = nil
	f.Replacements = 0
	f.Diff = ""
	f.Err = err
	return f
}

// 📊 RunResult is the outcome of a full run
type RunResult struct {
	RunID   string
	Folder  string
	DryRun  bool
	LogPath string // empty when no run log was written

	Files        []FileResult // selection order
	Replacements int          // labels rewritten, or that would be in a dry run
	Modified     int          // files rewritten, or that would be in a dry run
	Failed       int
}

// Lines returns every file's run log lines in selection order.
func (r *RunResult) Lines() []string {
	var lines []string
	for _, f := range r.Files {
		lines = append(lines, f.Lines()...)
	}
	return lines
}

// Skips returns the number of skip decisions across the run.
func (r *RunResult) Skips() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Decisions)
	}
	return n
}

func (r *RunResult) tally() {
	r.Replacements, r.Modified, r.Failed = 0, 0, 0
	for _, f := range r.Files {
		r.Replacements += f.Replacements
		switch f.Status {
		case status.StatusModified, status.StatusPending:
			r.Modified++
		case status.StatusFailed:
			r.Failed++
		}
	}
}
