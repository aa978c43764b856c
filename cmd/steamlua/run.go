// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SteamLua Contributors

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	lua "github.com/yuin/gopher-lua"

	"github.com/steamlua/steamlua/internal/bridge"
	"github.com/steamlua/steamlua/internal/logging"
	"github.com/steamlua/steamlua/internal/observability"
	"github.com/steamlua/steamlua/internal/xdg"
	"github.com/steamlua/steamlua/pkg/steam"
	"github.com/steamlua/steamlua/pkg/steamlua"
)

// runConfig holds configuration for the run command.
type runConfig struct {
	appID       uint32
	frameRate   int
	frames      int
	metricsAddr string
	logFormat   string
}

// Validate checks that the configuration is valid.
func (cfg *runConfig) Validate() error {
	if cfg.frameRate < 1 || cfg.frameRate > 240 {
		return fmt.Errorf("frame-rate must be between 1 and 240, got %d", cfg.frameRate)
	}
	if cfg.frames < 0 {
		return fmt.Errorf("frames must be >= 0, got %d", cfg.frames)
	}
	if cfg.logFormat != "json" && cfg.logFormat != "text" {
		return fmt.Errorf("log-format must be 'json' or 'text', got %q", cfg.logFormat)
	}
	return nil
}

// Default values for run command flags.
const (
	defaultAppID       = 480 // Spacewar, Valve's test app
	defaultFrameRate   = 30
	defaultLogFormat   = "json"
	defaultMetricsAddr = ""
)

// NewRunCmd creates the run subcommand.
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <script.lua>",
		Short: "Run a Lua script against a simulated Steam client",
		Long: `Run a Lua script with the plugin.steamworks module preloaded.
The script talks to an in-memory Steam client seeded with demo data
(a logged-on user, friends, achievements, a leaderboard). After the
script returns, frames are pumped at a fixed rate so queued events
reach the script's listeners.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadRunConfig(cmd.Flags())
			if err != nil {
				return err
			}
			return runScript(cmd.Context(), cfg, args[0], cmd)
		},
	}

	cmd.Flags().Uint32("app-id", defaultAppID, "Steam application ID")
	cmd.Flags().Int("frame-rate", defaultFrameRate, "frames pumped per second")
	cmd.Flags().Int("frames", 0, "stop after this many frames (0 = run until interrupted)")
	cmd.Flags().String("metrics-addr", defaultMetricsAddr, "metrics/health HTTP address (empty = disabled)")
	cmd.Flags().String("log-format", defaultLogFormat, "log format (json or text)")

	return cmd
}

// loadRunConfig merges the YAML config file and command-line flags.
// Flags that were explicitly set win over file values.
func loadRunConfig(flags *pflag.FlagSet) (*runConfig, error) {
	k := koanf.New(".")

	path := configFile
	if path == "" {
		candidate := filepath.Join(xdg.ConfigDir(), "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			path = candidate
		}
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
		return nil, fmt.Errorf("failed to load flags: %w", err)
	}

	cfg := &runConfig{
		appID:       uint32(k.Int("app-id")),
		frameRate:   k.Int("frame-rate"),
		frames:      k.Int("frames"),
		metricsAddr: k.String("metrics-addr"),
		logFormat:   k.String("log-format"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// runScript executes the script and pumps the frame loop.
func runScript(ctx context.Context, cfg *runConfig, script string, cmd *cobra.Command) error {
	logging.SetDefault("steamlua", version, cfg.logFormat)

	sim := demoWorld(steam.AppID(cfg.appID))

	// Start observability server if configured
	var obsServer *observability.Server
	var metrics *bridge.Metrics
	if cfg.metricsAddr != "" {
		obsServer = observability.NewServer(cfg.metricsAddr, func() bool { return true })
		metrics = bridge.NewMetrics(obsServer.Registry())
		obsErrChan, err := obsServer.Start()
		if err != nil {
			return fmt.Errorf("failed to start observability server: %w", err)
		}
		go func() {
			if serveErr, ok := <-obsErrChan; ok && serveErr != nil {
				slog.Error("observability server failed", "error", serveErr)
			}
		}()
		slog.Info("observability server started", "addr", obsServer.Addr())
	}

	L := lua.NewState()
	defer L.Close()

	plugin, err := steamlua.New(steamlua.Config{
		Client:   sim,
		Lua:      L,
		AppID:    steam.AppID(cfg.appID),
		Metrics:  metrics,
		Registry: bridge.NewRegistry(),
	})
	if err != nil {
		return fmt.Errorf("failed to create plugin: %w", err)
	}
	defer plugin.Close()

	plugin.Preload(L)

	slog.Info("running script",
		"script", script,
		"app_id", cfg.appID,
		"frame_rate", cfg.frameRate,
	)

	if err := L.DoFile(script); err != nil {
		return fmt.Errorf("script failed: %w", err)
	}

	// Handle signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	ticker := time.NewTicker(time.Second / time.Duration(cfg.frameRate))
	defer ticker.Stop()

	frame := 0
loop:
	for {
		select {
		case sig := <-sigChan:
			slog.Info("received shutdown signal", "signal", sig)
			break loop
		case <-ctx.Done():
			break loop
		case <-ticker.C:
			plugin.Poll()
			frame++
			if cfg.frames > 0 && frame >= cfg.frames {
				break loop
			}
		}
	}

	slog.Info("shutting down", "frames", frame)

	if obsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := obsServer.Stop(shutdownCtx); err != nil {
			slog.Warn("error stopping observability server", "error", err)
		}
	}

	cmd.Println("done")
	return nil
}
