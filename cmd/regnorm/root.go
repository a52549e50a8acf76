package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/regnorm/cmd/regnorm/opts"
	"github.com/walteh/regnorm/pkg/config"
	"github.com/walteh/regnorm/pkg/log"
	"github.com/walteh/regnorm/pkg/settings"
	"gitlab.com/tozd/go/errors"
)

var (
	// Flags
	configFile   string
	settingsFile string
	debug        bool
)

// defaultConfigFiles are looked up in the working directory when --config is not set
var defaultConfigFiles = []string{
	".regnorm.yaml",
	".regnorm.yml",
	".regnorm.hcl",
	".regnorm.json",
	".regnorm.toml",
}

func newRootCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "regnorm",
		Short: "Normalize registration labels in phone user configuration files",
		Long: `regnorm walks a folder for *-user.cfg files and rewrites every
reg.N.label attribute to the last five digits of reg.N.auth.userId.

Every skipped entry is written to a run log next to the executable, along with
the total number of labels replaced.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := setupLogging(cmd.Context())
			cmd.SetContext(ctx)
			return loadRootOpts(ctx, o)
		},
	}

	addRootFlags(cmd)
	return cmd
}

func loadRootOpts(ctx context.Context, o *opts.RootOpts) error {
	o.UserLogger = log.NewUserLogger(ctx, os.Stdout)

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	o.Console = log.NewWithZerolog(os.Stdout, zerolog.Ctx(ctx).Level(level))

	path, err := findConfigFile()
	if err != nil {
		return err
	}

	cfg := config.Default()
	if path != "" {
		cfg, err = config.Load(ctx, path)
		if err != nil {
			return errors.Errorf("loading config: %w", err)
		}
	}
	o.Config = cfg
	o.ConfigPath = path

	storePath := settingsFile
	if storePath == "" {
		storePath, err = settings.DefaultPath()
		if err != nil {
			return errors.Errorf("locating settings: %w", err)
		}
	}
	o.Settings = settings.NewStore(storePath)

	zerolog.Ctx(ctx).Debug().Str("config", path).Str("settings", storePath).Msg("root options loaded")
	return nil
}

// findConfigFile returns the --config value, or the first default config file
// present in the working directory, or "" when there is none.
func findConfigFile() (string, error) {
	if configFile != "" {
		if _, err := os.Stat(configFile); err != nil {
			return "", errors.Errorf("reading config file: %w", err)
		}
		return configFile, nil
	}
	for _, name := range defaultConfigFiles {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}
	return "", nil
}

func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path (default: .regnorm.{yaml,yml,hcl,json,toml} if present)")
	cmd.PersistentFlags().StringVar(&settingsFile, "settings", "", "settings file path (default: user config dir)")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

func setupLogging(ctx context.Context) context.Context {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &logger
	return logger.WithContext(ctx)
}
