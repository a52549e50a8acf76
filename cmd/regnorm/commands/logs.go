package commands

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/walteh/regnorm/cmd/regnorm/opts"
	"github.com/walteh/regnorm/pkg/runlog"
	"gitlab.com/tozd/go/errors"
)

func NewLogsCmd(o *opts.RootOpts) *cobra.Command {
	var open bool

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the run log directory",
		Long:  `Logs prints the directory run logs are written to. With --open it opens the directory in the file browser.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg := *o.Config
			if err := defaultLogsDir(&cfg); err != nil {
				return err
			}

			o.UserLogger.LogStateChange("Run logs: " + cfg.LogsDir)
			if !open {
				return nil
			}

			if err := os.MkdirAll(cfg.LogsDir, 0755); err != nil {
				return errors.Errorf("creating logs directory: %w", err)
			}
			if err := runlog.Open(ctx, cfg.LogsDir); err != nil {
				return errors.Errorf("opening logs directory: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&open, "open", false, "open the directory in the file browser")

	return cmd
}
