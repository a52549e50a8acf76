package opts

import (
	"github.com/walteh/regnorm/pkg/config"
	"github.com/walteh/regnorm/pkg/log"
	"github.com/walteh/regnorm/pkg/settings"
)

// RootOpts carries the dependencies shared by every command. It is filled
// by the root command before any subcommand runs.
type RootOpts struct {
	Config     *config.Config
	ConfigPath string // empty when no config file was found
	Settings   *settings.Store
	Console    *log.Logger
	UserLogger *log.UserLogger
}
