package commands

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/regnorm/cmd/regnorm/opts"
)

func NewCheckCmd(o *opts.RootOpts) *cobra.Command {
	flags := &runFlags{}
	var writeLog bool

	cmd := &cobra.Command{
		Use:   "check [folder]",
		Short: "Show which labels would change without writing anything",
		Long: `Check performs a dry run over the folder and prints a diff for every
file whose labels would be rewritten. No file is modified and, unless --log is
given, no run log is written.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := zerolog.Ctx(cmd.Context()).With().Str("command", "check").Logger().WithContext(cmd.Context())

			cfg := flags.apply(cmd, o.Config)
			cfg.DryRun = true
			cfg.Backup = false
			if !writeLog {
				cfg.LogsDir = ""
			} else if err := defaultLogsDir(cfg); err != nil {
				return err
			}

			res, err := normalizeFolder(ctx, o, cfg, args, !cmd.Flags().Changed("diff") || flags.diff)
			if err != nil {
				return err
			}

			if res.Modified > 0 {
				o.UserLogger.LogValidation(false, "Labels need to be normalized", nil)
			} else {
				o.UserLogger.LogValidation(true, "Labels are normalized", nil)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&writeLog, "log", false, "write the run log for the dry run")

	return cmd
}
