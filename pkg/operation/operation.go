package operation

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/walteh/regnorm/pkg/config"
	"github.com/walteh/regnorm/pkg/log"
	"github.com/walteh/regnorm/pkg/runlog"
	"github.com/walteh/regnorm/pkg/selector"
	"github.com/walteh/regnorm/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// 🎯 Operator defines the main interface for regnorm runs
type Operator interface {
	// Run normalizes every selected file and returns the ordered results.
	// The result is non-nil even when an error is returned.
	Run(ctx context.Context) (*RunResult, error)
}

// 🔧 Options contains configuration for the operator
type Options struct {
	// Config is the run configuration
	Config *config.Config
	// Files performs all file I/O
	Files status.FileManager
	// Status tracks per-file outcomes and progress
	Status status.StatusReporter
	// Console prints one row per file, optional
	Console *log.Logger
	// Diff attaches a line diff to every file that changes
	Diff bool
	// RunID identifies the run, generated when empty
	RunID string
	// Now stamps the run log, defaults to time.Now
	Now func() time.Time
}

// 🏭 New creates a new operator with the given options
func New(opts Options) (Operator, error) {
	if opts.Config == nil {
		return nil, errors.Errorf("config is required")
	}
	if opts.Files == nil {
		return nil, errors.Errorf("file manager is required")
	}
	if opts.Status == nil {
		return nil, errors.Errorf("status reporter is required")
	}

	cfg := *opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}
	if cfg.SearchFolder == "" {
		return nil, errors.Errorf("search folder is required")
	}

	runID := opts.RunID
	if runID == "" {
		runID = uuid.New().String()
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &operator{
		cfg:     &cfg,
		files:   opts.Files,
		status:  opts.Status,
		console: opts.Console,
		diff:    opts.Diff,
		runID:   runID,
		now:     now,
		runner:  newRunner(cfg.Workers),
	}, nil
}

// 🎮 operator implements the Operator interface
type operator struct {
	cfg     *config.Config
	files   status.FileManager
	status  status.StatusReporter
	console *log.Logger
	diff    bool
	runID   string
	now     func() time.Time
	runner  *runner

	processed atomic.Int64
}

// 🏃 Run executes a full pass over the search folder
func (o *operator) Run(ctx context.Context) (*RunResult, error) {
	logger := zerolog.Ctx(ctx).With().Str("run", o.runID).Logger()
	ctx = logger.WithContext(ctx)

	result := &RunResult{
		RunID:  o.runID,
		Folder: o.cfg.SearchFolder,
		DryRun: o.cfg.DryRun,
	}

	if o.console != nil {
		o.console.StartRun(ctx, log.RunOperation{
			ID:      o.runID,
			Folder:  o.cfg.SearchFolder,
			Pattern: o.cfg.Pattern,
			DryRun:  o.cfg.DryRun,
		})
		defer o.console.EndRun(ctx)
	}

	o.processed.Store(0)
	o.status.StartOperation(ctx)

	files, runErr := o.runner.run(ctx, selector.Select(ctx, o.cfg.SearchFolder, o.cfg.Pattern), o.processFile)
	result.Files = files
	result.tally()

	o.status.FinishOperation(ctx)

	if o.cfg.LogsDir != "" {
		path, err := runlog.Write(ctx, o.files, o.cfg.LogsDir, o.cfg.SearchFolder, o.now(), result.Lines(), result.Replacements)
		if err != nil {
			if runErr != nil {
				logger.Warn().Err(err).Msg("run log not written")
				return result, runErr
			}
			return result, errors.Errorf("writing run log: %w", err)
		}
		result.LogPath = path
	}

	logger.Info().
		Int("files", len(result.Files)).
		Int("modified", result.Modified).
		Int("failed", result.Failed).
		Int("replacements", result.Replacements).
		Msg("run finished")

	return result, runErr
}
