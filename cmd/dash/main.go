// dash is a terminal side-scrolling runner whose levels are plain JSON (or
// YAML) level descriptors.
//
// Usage:
//
//	dash play [level]        - Play a level by catalog ID or file path
//	dash menu                - Pick levels from an interactive browser
//	dash levels              - List available levels
//	dash validate FILE...    - Check descriptors and print obstacle placements
//	dash import FILE         - Copy a descriptor into the level library
//	dash remove ID           - Delete a level from the library
//	dash serve               - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--config <path>       - Tuning YAML (physics, view, difficulty)
//	--difficulty <name>   - easy, normal, hard or fixed
//	--levels <dir>        - Extra level directory
//	--db <path>           - Level library (default: ~/.dash/levels.db)
//	--log-level <level>   - debug, info, warn, error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-dash/internal/catalog"
	"github.com/vovakirdan/tui-dash/internal/config"
	"github.com/vovakirdan/tui-dash/internal/core"
	"github.com/vovakirdan/tui-dash/internal/storage"
)

var (
	// Global flags
	flagFPS        int
	flagConfig     string
	flagDifficulty string
	flagLevelsDir  string
	flagDBPath     string
	flagLogLevel   string
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "dash",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dash",
	Short: "Dash - a side-scrolling runner for your terminal",
	Long: `Dash is a terminal runner: the player runs automatically and jumps
over obstacles laid out by a level descriptor file.

Available commands:
  play      - Play a level directly
  menu      - Interactive level browser
  levels    - Show all available levels
  validate  - Check level descriptors
  import    - Add a level to the library
  remove    - Delete a level from the library
  serve     - Start SSH server for remote play

Examples:
  dash play
  dash play level2
  dash play ./my-level.json --watch
  dash menu --levels ./levels
  dash validate ./levels/*.json
  dash serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		logger.SetLevel(level)
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tuning config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "", "Directory with extra level descriptors")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.dash/levels.db", "Path to the level library database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(serveCmd)
}

// runtimeConfig sizes the simulation to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.TickRate = flagFPS
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	return cfg
}

// runnerConfig loads tuning and applies the --difficulty preset.
func runnerConfig() (config.RunnerConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagDifficulty != "" {
		preset := config.ParsePreset(flagDifficulty)
		if preset == "" {
			return cfg, fmt.Errorf("unknown difficulty %q (use easy, normal, hard or fixed)", flagDifficulty)
		}
		config.ApplyPreset(&cfg, preset)
	}

	logger.Debug("tuning loaded",
		"config", flagConfig,
		"difficulty", flagDifficulty,
		"gravity", cfg.Physics.Gravity,
		"jump_velocity", cfg.Physics.JumpVelocity,
	)
	return cfg, nil
}

// openCatalog builds the level catalog. The level library is optional: if it
// cannot be opened the catalog is built without it.
// The returned function closes the library.
func openCatalog() (*catalog.Catalog, func(), error) {
	var lib catalog.Library
	closeFn := func() {}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open level library", "path", flagDBPath, "error", err)
	} else {
		lib = store
		closeFn = func() {
			//nolint:errcheck // Read-only use, nothing to flush
			store.Close()
		}
	}

	cat, err := catalog.New(flagLevelsDir, lib)
	if err != nil {
		closeFn()
		return nil, nil, err
	}

	for _, p := range cat.Problems() {
		logger.Debug("skipped level", "path", p.Path, "error", p.Err)
	}
	return cat, closeFn, nil
}

// fatal logs err and exits.
func fatal(msg string, keyvals ...any) {
	logger.Error(msg, keyvals...)
	os.Exit(1)
}
