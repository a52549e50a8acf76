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
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/regnorm/pkg/config"
	"github.com/walteh/regnorm/pkg/log"
	"github.com/walteh/regnorm/pkg/normalize"
	"github.com/walteh/regnorm/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 📄 processFile normalizes one file and reports its outcome. The returned
// error is non-nil only when the failure must stop the run.
func (o *operator) processFile(ctx context.Context, path string) (FileResult, error) {
	res := o.normalizeFile(ctx, path)

	o.status.TrackFile(ctx, status.FileInfo{
		Path:         res.Path,
		Status:       res.Status,
		Replacements: res.Replacements,
		Skips:        len(res.Decisions),
		Error:        res.Err,
	})

	if o.console != nil {
		o.console.LogFileOperation(ctx, log.FileOperation{
			Path:         res.Path,
			Status:       res.Status,
			Replacements: res.Replacements,
			Skips:        len(res.Decisions),
			Err:          res.Err,
		})
	}

	o.status.UpdateProgress(ctx, int(o.processed.Add(1)))

	if res.Err != nil && o.cfg.OnError == config.PolicyAbort {
		return res, errors.Errorf("processing %s: %w", path, res.Err)
	}
	return res, nil
}

func (o *operator) normalizeFile(ctx context.Context, path string) FileResult {
	logger := zerolog.Ctx(ctx).With().Str("file", path).Logger()
	res := FileResult{Path: path}

	content, err := o.files.ReadFile(ctx, path)
	if err != nil {
		return res.fail(err)
	}

	out, err := normalize.Normalize(string(content), path)
	if err != nil {
		logger.Debug().Err(err).Msg("normalize failed")
		return res.fail(err)
	}

	res.Decisions = out.Decisions
	res.Replacements = out.Replacements

	logger.Debug().
		Int("replacements", out.Replacements).
		Int("skip_empty", out.Count(normalize.SkipEmpty)).
		Int("skip_non_numeric", out.Count(normalize.SkipNonNumeric)).
		Int("skip_too_short", out.Count(normalize.SkipTooShort)).
		Msg("normalized")

	if !out.Changed() {
		res.Status = status.StatusUnchanged
		return res
	}

	if o.diff {
		res.Diff = Diff(string(content), out.Text)
	}

	if o.cfg.DryRun {
		res.Status = status.StatusPending
		return res
	}

	if o.cfg.Backup {
		if err := o.files.BackupFile(ctx, path); err != nil {
			return res.fail(errors.Errorf("backing up file: %w", err))
		}
	}

	if err := o.files.WriteFileAtomic(ctx, path, []byte(out.Text)); err != nil {
		if o.cfg.Backup {
			// 🔄 put the original back so a failed write never leaves a stray .bak
			if rerr := o.files.RestoreFile(ctx, path); rerr != nil {
				logger.Warn().Err(rerr).Msg("restoring backup failed")
			}
		}
		return res.fail(err)
	}

	logger.Debug().Int("replacements", res.Replacements).Msg("file normalized")
	res.Status = status.StatusModified
	return res
}
