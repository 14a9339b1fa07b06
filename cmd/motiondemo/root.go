package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phanxgames/motion"
)

var rootCmd = &cobra.Command{
	Use:   "motiondemo",
	Short: "motiondemo plays scroll-triggered animation scenes",
	Long: `motiondemo mounts a scene of staggered groups, segmented text reveals and
path-following borders, and plays it in a window or headless.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("presets", "", "YAML preset table layered over the built-in presets")
}

// newLogger builds the stderr logger for --log-level.
func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	name, _ := cmd.Flags().GetString("log-level")
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(name))); err != nil {
		return nil, fmt.Errorf("log level %q: %w", name, err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})), nil
}

// loadRegistry returns the built-in presets, layered with --presets or
// extra when set. The flag wins over extra.
func loadRegistry(cmd *cobra.Command, extra string) (*motion.Registry, error) {
	path, _ := cmd.Flags().GetString("presets")
	if path == "" {
		path = extra
	}
	if path == "" {
		return motion.DefaultPresets(), nil
	}
	return motion.LoadPresetFile(path, motion.DefaultPresets())
}
