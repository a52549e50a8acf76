package commands

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/regnorm/cmd/regnorm/opts"
	"github.com/walteh/regnorm/pkg/config"
	"github.com/walteh/regnorm/pkg/log"
	"github.com/walteh/regnorm/pkg/operation"
	"github.com/walteh/regnorm/pkg/runlog"
	"github.com/walteh/regnorm/pkg/status"
	"gitlab.com/tozd/go/errors"
)

// runFlags are the per-command overrides applied on top of the loaded config
type runFlags struct {
	pattern string
	logsDir string
	onError string
	workers int
	backup  bool
	dryRun  bool
	diff    bool
	noLog   bool
}

func (f *runFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.pattern, "pattern", "p", "", "file name pattern (default \""+config.DefaultPattern+"\")")
	cmd.Flags().StringVar(&f.logsDir, "logs-dir", "", "directory for run logs (default: Logs next to the executable)")
	cmd.Flags().StringVar(&f.onError, "on-error", "", "what to do when a file cannot be processed: skip or abort")
	cmd.Flags().IntVarP(&f.workers, "workers", "w", 0, "number of files processed at once")
	cmd.Flags().BoolVar(&f.diff, "diff", false, "print a diff for every file that changes")
}

// apply copies cfg and overrides every flag the user set
func (f *runFlags) apply(cmd *cobra.Command, cfg *config.Config) *config.Config {
	out := *cfg
	if f.pattern != "" {
		out.Pattern = f.pattern
	}
	if f.logsDir != "" {
		out.LogsDir = f.logsDir
	}
	if f.onError != "" {
		out.OnError = config.ErrorPolicy(f.onError)
	}
	if cmd.Flags().Changed("workers") {
		out.Workers = f.workers
	}
	if cmd.Flags().Changed("backup") {
		out.Backup = f.backup
	}
	if cmd.Flags().Changed("dry-run") {
		out.DryRun = f.dryRun
	}
	return &out
}

func NewRunCmd(o *opts.RootOpts) *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run [folder]",
		Short: "Normalize registration labels under a folder",
		Long: `Run rewrites reg.N.label from reg.N.auth.userId in every matching file.
It will:
1. Resolve the folder (argument, config search_folder, or the default folder)
2. Normalize each matching file and save the ones that changed
3. Write the run log with every skipped entry and the total replacements`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "run").Logger().WithContext(cmd.Context())

			cfg := flags.apply(cmd, o.Config)
			if flags.noLog {
				cfg.LogsDir = ""
			} else if err := defaultLogsDir(cfg); err != nil {
				return err
			}

			_, err := normalizeFolder(ctx, o, cfg, args, flags.diff)
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&flags.backup, "backup", false, "keep a .bak copy of every rewritten file")
	cmd.Flags().BoolVarP(&flags.dryRun, "dry-run", "n", false, "report changes without writing files")
	cmd.Flags().BoolVar(&flags.noLog, "no-log", false, "do not write a run log")

	return cmd
}

func defaultLogsDir(cfg *config.Config) error {
	if cfg.LogsDir != "" {
		return nil
	}
	dir, err := runlog.DefaultDir()
	if err != nil {
		return errors.Errorf("locating logs directory: %w", err)
	}
	cfg.LogsDir = dir
	return nil
}

// resolveFolder picks the search folder: the argument, then the config file's
// search_folder, then the saved default folder.
func resolveFolder(ctx context.Context, o *opts.RootOpts, cfg *config.Config, args []string) (string, error) {
	if len(args) == 0 && cfg.SearchFolder != "" {
		return cfg.SearchFolder, nil
	}

	st, err := o.Settings.Load(ctx)
	if err != nil {
		return "", errors.Errorf("loading settings: %w", err)
	}

	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}

	folder, err := st.ResolveFolder(arg)
	if err != nil {
		return "", errors.Errorf("resolving folder: %w", err)
	}
	return folder, nil
}

func normalizeFolder(ctx context.Context, o *opts.RootOpts, cfg *config.Config, args []string, diff bool) (*operation.RunResult, error) {
	folder, err := resolveFolder(ctx, o, cfg, args)
	if err != nil {
		return nil, err
	}
	cfg.SearchFolder = filepath.Clean(folder)
	zerolog.Ctx(ctx).Debug().Str("config", cfg.String()).Str("source", o.ConfigPath).Msg("resolved run config")

	o.Console.Header("normalizing registration labels")

	mgr := status.NewManager(cfg.SearchFolder, nil)
	op, err := operation.New(operation.Options{
		Config:  cfg,
		Files:   mgr,
		Status:  mgr,
		Console: o.Console,
		Diff:    diff,
	})
	if err != nil {
		return nil, errors.Errorf("creating operator: %w", err)
	}

	res, runErr := op.Run(ctx)

	if diff {
		o.Console.LogNewline()
		for _, f := range res.Files {
			o.UserLogger.LogDiff(f.Path, f.Diff)
		}
	}

	if err := reportFailures(ctx, o, mgr); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("listing failed files")
	}

	o.Console.LogNewline()
	if err := o.UserLogger.LogSummary(log.Summary{
		RunID:        res.RunID,
		Folder:       res.Folder,
		Files:        len(res.Files),
		Modified:     res.Modified,
		Failed:       res.Failed,
		Replacements: res.Replacements,
		Skips:        res.Skips(),
		LogPath:      res.LogPath,
		DryRun:       res.DryRun,
	}); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("rendering summary")
	}

	if runErr != nil {
		return res, errors.Errorf("running normalizer: %w", runErr)
	}
	return res, nil
}

// reportFailures lists every file the run could not process
func reportFailures(ctx context.Context, o *opts.RootOpts, reporter status.StatusReporter) error {
	files, err := reporter.ListFiles(ctx)
	if err != nil {
		return err
	}

	failed := 0
	for _, f := range files {
		if f.Status != status.StatusFailed {
			continue
		}
		if failed == 0 {
			o.Console.LogNewline()
		}
		failed++
		o.UserLogger.LogValidation(false, f.Path, f.Error)
	}
	return nil
}
