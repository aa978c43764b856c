// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SteamLua Contributors

package main

import (
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the steamlua CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "steamlua",
		Short: "steamlua - Steamworks scripting bridge for Lua",
		Long: `steamlua exposes Steamworks (achievements, leaderboards, stats,
overlays, avatars, microtransactions) to Lua scripts as the
plugin.steamworks module. The run command executes a script against a
simulated Steam client so the full event surface can be exercised
without a running Steam installation.`,
	}

	// Global flag for config file path
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (default: XDG_CONFIG_HOME/steamlua/config.yaml)")

	cmd.AddCommand(NewRunCmd())

	return cmd
}
