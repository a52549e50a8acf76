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

package main

import (
	"context"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/walteh/regnorm/cmd/regnorm/commands"
	"github.com/walteh/regnorm/cmd/regnorm/opts"
	rlog "github.com/walteh/regnorm/pkg/log"
)

func main() {
	ctx := log.Logger.WithContext(context.Background())

	rootOpts := &opts.RootOpts{}
	rootCmd := newRootCmd(rootOpts)

	rootCmd.AddCommand(
		commands.NewRunCmd(rootOpts),
		commands.NewCheckCmd(rootOpts),
		commands.NewFolderCmd(rootOpts),
		commands.NewLogsCmd(rootOpts),
		newVersionCmd(),
	)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		userLogger := rootOpts.UserLogger
		if userLogger == nil {
			userLogger = rlog.NewUserLogger(ctx, os.Stderr)
		}
		userLogger.LogValidation(false, "Command failed", err)
		os.Exit(1)
	}
}
