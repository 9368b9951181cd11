package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-dash/internal/level"
	"github.com/vovakirdan/tui-dash/internal/storage"
)

var (
	flagImportID    string
	flagImportTitle string
)

var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Add a level descriptor to the library",
	Long: `Validate a descriptor and store a copy in the level library so it can
be played by ID from anywhere (including over SSH). Importing an ID that
already exists replaces it.

Examples:
  dash import ./cliffs.json
  dash import ./draft.yaml --id night-run --title "Night Run"`,
	Args: cobra.ExactArgs(1),
	Run:  runImport,
}

var removeCmd = &cobra.Command{
	Use:   "remove ID",
	Short: "Delete a level from the library",
	Args:  cobra.ExactArgs(1),
	Run:   runRemove,
}

func init() {
	importCmd.Flags().StringVar(&flagImportID, "id", "", "Library ID (default: file name without extension)")
	importCmd.Flags().StringVar(&flagImportTitle, "title", "", "Display title (default: the descriptor's name)")
}

func runImport(_ *cobra.Command, args []string) {
	path := args[0]

	data, err := os.ReadFile(path)
	if err != nil {
		fatal("could not read level", "path", path, "error", err)
	}

	id := flagImportID
	if id == "" {
		base := filepath.Base(path)
		id = strings.TrimSuffix(base, filepath.Ext(base))
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal("could not open level library", "path", flagDBPath, "error", err)
	}
	defer store.Close()

	if err := store.ImportLevel(id, flagImportTitle, level.FormatFromPath(path), data); err != nil {
		store.Close()
		fatal("import failed", "path", path, "error", err)
	}

	logger.Info("level imported", "id", id, "path", path, "db", flagDBPath)
	fmt.Printf("Run 'dash play %s' to play it.\n", id)
}

func runRemove(_ *cobra.Command, args []string) {
	id := args[0]

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal("could not open level library", "path", flagDBPath, "error", err)
	}
	defer store.Close()

	if err := store.DeleteLevel(id); err != nil {
		store.Close()
		fatal("remove failed", "id", id, "error", err)
	}

	logger.Info("level removed", "id", id)
}
