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
	"io/fs"
	"iter"
	"os"
	"path"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// DefaultPattern matches the per-user phone configuration files.
const DefaultPattern = "*-user.cfg"

// errStop ends a walk early when the consumer stops ranging.
var errStop = errors.New("selector: stopped")

// 🔍 Select lazily yields the absolute path of every regular file under root
// whose base name matches pattern, walking subdirectories in lexical order.
//
// An empty pattern means DefaultPattern. A walk or pattern error is yielded
// once as the last element of the sequence.
func Select(ctx context.Context, root, pattern string) iter.Seq2[string, error] {
	if pattern == "" {
		pattern = DefaultPattern
	}

	return func(yield func(string, error) bool) {
		abs, err := filepath.Abs(root)
		if err != nil {
			yield("", errors.Errorf("resolving root %s: %w", root, err))
			return
		}

		info, err := os.Stat(abs)
		if err != nil {
			yield("", errors.Errorf("reading root %s: %w", abs, err))
			return
		}
		if !info.IsDir() {
			yield("", errors.Errorf("root %s is not a directory", abs))
			return
		}

		if !doublestar.ValidatePattern(pattern) {
			yield("", errors.Errorf("invalid pattern %q", pattern))
			return
		}

		logger := zerolog.Ctx(ctx)
		glob := path.Join("**", pattern)

		err = doublestar.GlobWalk(os.DirFS(abs), glob, func(p string, d fs.DirEntry) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}

			full := filepath.Join(abs, filepath.FromSlash(p))
			logger.Trace().Str("path", full).Msg("selected file")

			if !yield(full, nil) {
				return errStop
			}
			return nil
		})
		if err != nil && !errors.Is(err, errStop) {
			yield("", errors.Errorf("walking %s: %w", abs, err))
		}
	}
}
