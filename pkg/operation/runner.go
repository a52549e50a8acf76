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
	"iter"

	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🔨 processFunc handles a single selected file
type processFunc func(ctx context.Context, path string) (FileResult, error)

// 🏃 runner drains the file sequence and keeps results in selection order
type runner struct {
	workers int
}

// 🏗️ newRunner creates a new runner, sequential unless workers > 1
func newRunner(workers int) *runner {
	if workers < 1 {
		workers = 1
	}
	return &runner{workers: workers}
}

// 🏃 run processes every path, stopping at the first error fn returns
func (r *runner) run(ctx context.Context, paths iter.Seq2[string, error], fn processFunc) ([]FileResult, error) {
	if r.workers > 1 {
		return r.runAsync(ctx, paths, fn)
	}
	return r.runSync(ctx, paths, fn)
}

// 🔄 runSync processes files one after the other
func (r *runner) runSync(ctx context.Context, paths iter.Seq2[string, error], fn processFunc) ([]FileResult, error) {
	var results []FileResult
	for path, err := range paths {
		if err != nil {
			return results, errors.Errorf("selecting files: %w", err)
		}
		if err := ctx.Err(); err != nil {
			return results, errors.Errorf("run cancelled: %w", err)
		}

		res, err := fn(ctx, path)
		results = append(results, res)
		if err != nil {
			return results, err
		}
	}
	return results, nil
}

// ⚡ runAsync processes up to r.workers files at once. Every started file
// owns a slot appended in selection order, so the merge never depends on
// completion order.
func (r *runner) runAsync(ctx context.Context, paths iter.Seq2[string, error], fn processFunc) ([]FileResult, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	var slots []*FileResult
	var selectErr error

	for path, err := range paths {
		if err != nil {
			selectErr = errors.Errorf("selecting files: %w", err)
			break
		}
		if gctx.Err() != nil {
			break
		}

		slot := &FileResult{Path: path}
		slots = append(slots, slot)

		g.Go(func() error {
			res, err := fn(gctx, path)
			*slot = res
			return err
		})
	}

	waitErr := g.Wait()

	results := make([]FileResult, len(slots))
	for i, slot := range slots {
		results[i] = *slot
	}

	switch {
	case waitErr != nil:
		return results, waitErr
	case selectErr != nil:
		return results, selectErr
	case ctx.Err() != nil:
		return results, errors.Errorf("run cancelled: %w", ctx.Err())
	}
	return results, nil
}
