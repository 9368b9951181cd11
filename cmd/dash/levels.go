package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all available levels",
	Long: `Shows built-in levels, levels found under --levels and levels in the
library, followed by any descriptor files that were skipped and why.`,
	Run: runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	cat, closeCatalog, err := openCatalog()
	if err != nil {
		fatal("could not build level catalog", "error", err)
	}
	defer closeCatalog()

	entries := cat.List()
	if len(entries) == 0 {
		fmt.Println("No levels available.")
		return
	}

	fmt.Println("Available levels:")
	fmt.Println()

	// Calculate column widths
	maxIDLen, maxTitleLen := 2, 5
	for _, e := range entries {
		maxIDLen = max(maxIDLen, len(e.ID))
		maxTitleLen = max(maxTitleLen, len(e.Title))
	}

	fmt.Printf("  %-*s  %-*s  %-8s  %9s  %8s\n", maxIDLen, "ID", maxTitleLen, "Title", "Source", "Obstacles", "Length")
	fmt.Printf("  %-*s  %-*s  %-8s  %9s  %8s\n", maxIDLen, "--", maxTitleLen, "-----", "------", "---------", "------")

	for _, e := range entries {
		spec, err := cat.Load(e.ID)
		if err != nil {
			fmt.Printf("  %-*s  %-*s  %-8s  %9s  %8s\n", maxIDLen, e.ID, maxTitleLen, e.Title, e.Origin, "invalid", "-")
			logger.Warn("level does not load", "level", e.ID, "error", err)
			continue
		}
		fmt.Printf("  %-*s  %-*s  %-8s  %9d  %8.0f\n", maxIDLen, e.ID, maxTitleLen, e.Title, e.Origin, spec.Len(), spec.Length())
	}

	if problems := cat.Problems(); len(problems) > 0 {
		fmt.Println()
		fmt.Println("Skipped files:")
		for _, p := range problems {
			fmt.Printf("  %s\n", p)
		}
	}

	fmt.Println()
	fmt.Println("Run 'dash play <id>' to play a level.")
}
