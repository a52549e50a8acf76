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

package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/rs/zerolog"
)

// 📢 UserLogger provides user-friendly feedback about a run
type UserLogger struct {
	log zerolog.Logger // for debug/error logging
	out io.Writer
}

// 📊 Summary is the end-of-run report
type Summary struct {
	RunID        string
	Folder       string
	Files        int
	Modified     int
	Failed       int
	Replacements int
	Skips        int
	LogPath      string
	DryRun       bool
}

// 🎯 NewUserLogger creates a new user logger writing to out (stdout when nil)
func NewUserLogger(ctx context.Context, out io.Writer) *UserLogger {
	if out == nil {
		out = os.Stdout
	}
	return &UserLogger{
		log: *zerolog.Ctx(ctx),
		out: out,
	}
}

func (u *UserLogger) printer(base pterm.PrefixPrinter, prefix string) *pterm.PrefixPrinter {
	return base.WithPrefix(pterm.Prefix{Text: prefix, Style: base.Prefix.Style}).WithWriter(u.out)
}

// 📊 LogStateChange logs a change to the overall run
func (u *UserLogger) LogStateChange(description string) {
	u.printer(pterm.Info, "📦").Println(description)
	u.log.Info().Msg(description)
}

// 🔍 LogValidation logs validation results
func (u *UserLogger) LogValidation(valid bool, description string, err error) {
	switch {
	case valid:
		u.printer(pterm.Success, "✅").Println(description)
		u.log.Info().Msg(description)
	case err != nil:
		u.printer(pterm.Error, "❌").Println(description)
		u.printer(pterm.Error, "ERROR").Println(err.Error())
		u.log.Error().Err(err).Msg(description)
	default:
		u.printer(pterm.Warning, "⚠️").Println(description)
		u.log.Warn().Msg(description)
	}
}

// 🔎 LogDiff prints the pending changes for a file
func (u *UserLogger) LogDiff(path, diff string) {
	if diff == "" {
		return
	}
	u.printer(pterm.Info, "🔎").Println(path)
	fmt.Fprintln(u.out, diff)
	u.log.Debug().Str("file", path).Msg("diff printed")
}

// 📊 LogSummary renders the end-of-run table
func (u *UserLogger) LogSummary(s Summary) error {
	mode := "write"
	if s.DryRun {
		mode = "dry run"
	}

	data := pterm.TableData{
		{"Run", "Folder", "Mode", "Files", "Modified", "Failed", "Replacements", "Skipped"},
		{
			s.RunID,
			s.Folder,
			mode,
			strconv.Itoa(s.Files),
			strconv.Itoa(s.Modified),
			strconv.Itoa(s.Failed),
			strconv.Itoa(s.Replacements),
			strconv.Itoa(s.Skips),
		},
	}

	if err := pterm.DefaultTable.WithHasHeader().WithData(data).WithWriter(u.out).Render(); err != nil {
		return err
	}

	if s.LogPath != "" {
		u.printer(pterm.Info, "📄").Printfln("Run log written to %s", s.LogPath)
	}

	u.log.Info().
		Str("run", s.RunID).
		Str("folder", s.Folder).
		Int("files", s.Files).
		Int("modified", s.Modified).
		Int("failed", s.Failed).
		Int("replacements", s.Replacements).
		Int("skips", s.Skips).
		Str("log", s.LogPath).
		Msg("run summary")

	return nil
}
