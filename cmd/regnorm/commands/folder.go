package commands

import (
	"github.com/spf13/cobra"
	"github.com/walteh/regnorm/cmd/regnorm/opts"
	"gitlab.com/tozd/go/errors"
)

func NewFolderCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folder [path]",
		Short: "Show or set the default folder",
		Long: `Folder prints the saved default folder. With a path it saves that
directory as the default folder used by run and check when no folder is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if len(args) == 1 {
				dir, err := o.Settings.SetDefaultFolder(ctx, args[0])
				if err != nil {
					return errors.Errorf("setting default folder: %w", err)
				}
				o.UserLogger.LogValidation(true, "Default folder set to "+dir, nil)
				return nil
			}

			st, err := o.Settings.Load(ctx)
			if err != nil {
				return errors.Errorf("loading settings: %w", err)
			}
			if st.DefaultFolder == "" {
				o.UserLogger.LogValidation(false, "No default folder set", nil)
				return nil
			}
			o.UserLogger.LogStateChange("Default folder: " + st.DefaultFolder)
			return nil
		},
	}

	return cmd
}
