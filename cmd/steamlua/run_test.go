// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SteamLua Contributors

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     runConfig
		wantErr string
	}{
		{
			name: "valid",
			cfg:  runConfig{frameRate: 30, logFormat: "json"},
		},
		{
			name:    "frame rate too low",
			cfg:     runConfig{frameRate: 0, logFormat: "json"},
			wantErr: "frame-rate",
		},
		{
			name:    "frame rate too high",
			cfg:     runConfig{frameRate: 1000, logFormat: "json"},
			wantErr: "frame-rate",
		},
		{
			name:    "negative frames",
			cfg:     runConfig{frameRate: 30, frames: -1, logFormat: "json"},
			wantErr: "frames",
		},
		{
			name:    "bad log format",
			cfg:     runConfig{frameRate: 30, logFormat: "xml"},
			wantErr: "log-format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func runFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("run", pflag.ContinueOnError)
	flags.Uint32("app-id", defaultAppID, "")
	flags.Int("frame-rate", defaultFrameRate, "")
	flags.Int("frames", 0, "")
	flags.String("metrics-addr", defaultMetricsAddr, "")
	flags.String("log-format", defaultLogFormat, "")
	return flags
}

func TestLoadRunConfig_Defaults(t *testing.T) {
	cfg, err := loadRunConfig(runFlags())
	require.NoError(t, err)

	assert.Equal(t, uint32(defaultAppID), cfg.appID)
	assert.Equal(t, defaultFrameRate, cfg.frameRate)
	assert.Equal(t, "json", cfg.logFormat)
}

func TestLoadRunConfig_FileThenFlagPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("frame-rate: 60\napp-id: 220\n"), 0o600))

	prev := configFile
	configFile = path
	t.Cleanup(func() { configFile = prev })

	flags := runFlags()
	require.NoError(t, flags.Set("app-id", "400"))

	cfg, err := loadRunConfig(flags)
	require.NoError(t, err)

	// File supplies values the flags left at defaults.
	assert.Equal(t, 60, cfg.frameRate)
	// An explicitly set flag wins over the file.
	assert.Equal(t, uint32(400), cfg.appID)
}

func TestLoadRunConfig_MissingFileFails(t *testing.T) {
	prev := configFile
	configFile = filepath.Join(t.TempDir(), "nope.yaml")
	t.Cleanup(func() { configFile = prev })

	_, err := loadRunConfig(runFlags())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file")
}

func TestRunCmd_ExecutesScript(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "demo.lua")
	code := `
local steamworks = require("plugin.steamworks")

seen = nil
steamworks.addEventListener("microtransactionAuthorization", function(event)
	seen = event.orderId
end)
`
	require.NoError(t, os.WriteFile(script, []byte(code), 0o600))

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"run", script, "--frames", "3", "--frame-rate", "120", "--log-format", "text"})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, out.String(), "done")
}

func TestRunCmd_ScriptErrorPropagates(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "bad.lua")
	require.NoError(t, os.WriteFile(script, []byte(`error("boom")`), 0o600))

	cmd := NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"run", script, "--log-format", "text"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "script failed")
}

func TestRunCmd_RejectsBadFlags(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"run", "whatever.lua", "--frame-rate", "0"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
