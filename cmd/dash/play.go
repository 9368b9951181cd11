package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dash/internal/platform/tui"
	"github.com/vovakirdan/tui-dash/internal/session"
	"github.com/vovakirdan/tui-dash/internal/watch"
)

var flagWatch bool

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Start playing a level. The argument is a descriptor file path or a
catalog ID (see 'dash levels'); without it the built-in level1 is played.

If the level cannot be loaded, the built-in level1 is played instead.
With --watch, edits to the level file restart the run with the new layout;
an invalid edit is shown on screen and the current run keeps going.

Controls:
  Space/Up/W - Jump
  P/Esc      - Pause / resume
  R          - Restart (re-reads the level)
  M          - Title screen
  Enter      - Start from the title screen
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Scroll speed starts at the level's speed and ramps up
  normal - Starts 30% into the ramp
  hard   - Starts 70% into the ramp
  fixed  - Always the level's own speed

Examples:
  dash play
  dash play level3 --difficulty hard
  dash play ./levels/cliffs.json --watch`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Restart the level when its file changes")
}

func runPlay(_ *cobra.Command, args []string) {
	runner, err := runnerConfig()
	if err != nil {
		fatal("could not load tuning", "error", err)
	}

	cat, closeCatalog, err := openCatalog()
	if err != nil {
		fatal("could not build level catalog", "error", err)
	}
	defer closeCatalog()

	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}
	src, err := cat.Resolve(arg)
	if err != nil {
		fatal("unknown level", "level", arg, "error", err)
	}

	sess := session.New(src, runner)
	watching := flagWatch && src.FilePath() != ""
	if flagWatch && !watching {
		logger.Warn("only level files can be watched", "level", src.ID())
	}

	if err := sess.Start(); err != nil {
		if watching {
			// Stay on the title screen so the file can be fixed in place.
			logger.Warn("level failed to load; waiting for a fix", "level", src.ID(), "error", err)
		} else {
			logger.Warn("level failed to load, falling back", "level", src.ID(), "fallback", cat.Default().ID(), "error", err)
			sess.SetSource(cat.Default())
			if err := sess.Start(); err != nil {
				fatal("fallback level failed to load", "error", err)
			}
		}
	}

	var changes <-chan string
	if watching {
		w, err := watch.NewWatcher(src.FilePath())
		if err != nil {
			fatal("could not watch level file", "path", src.FilePath(), "error", err)
		}
		defer w.Close()
		changes = w.Events
	}

	if err := tui.Run(sess, runtimeConfig(), changes); err != nil {
		fatal("error running game", "error", err)
	}

	snap := sess.Snapshot()
	logger.Info("run finished",
		"level", snap.LevelID,
		"mode", snap.Mode,
		"score", snap.Score,
		"coins", snap.Coins,
		"elapsed", snap.Elapsed,
	)
}
