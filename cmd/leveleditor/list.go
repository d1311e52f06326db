package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List levels in the levels directory",
	Long: `Shows every level file found under the configured levels directory
(files.levels_dir, default ~/.leveleditor/levels). Files that fail to parse
are skipped.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	addSizeFlags(listCmd)
}

func runList(_ *cobra.Command, _ []string) error {
	loader := newLoader(gridSize())

	if _, err := os.Stat(loader.Root); errors.Is(err, os.ErrNotExist) {
		fmt.Printf("No levels in %s yet.\n", loader.Root)
		return nil
	}

	lvls, err := loader.LoadAll()
	if err != nil {
		return err
	}

	if len(lvls) == 0 {
		fmt.Printf("No levels in %s yet.\n", loader.Root)
		return nil
	}

	fmt.Printf("Levels in %s:\n", loader.Root)
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, lvl := range lvls {
		if len(lvl.Name) > maxNameLen {
			maxNameLen = len(lvl.Name)
		}
	}

	// Print header
	fmt.Printf("  %-*s  %-10s  %-6s  %s\n", maxNameLen, "Name", "Size", "Tiles", "File")
	fmt.Printf("  %-*s  %-10s  %-6s  %s\n", maxNameLen, "----", "----", "-----", "----")

	for _, lvl := range lvls {
		g := lvl.Grid
		fmt.Printf("  %-*s  %-10s  %-6d  %s\n",
			maxNameLen,
			lvl.Name,
			fmt.Sprintf("%dx%dx%d", g.Width(), g.Height(), g.Layers()),
			g.FilledCount(),
			lvl.FilePath,
		)
	}

	fmt.Println()
	fmt.Println("Run 'leveleditor edit <file>' or 'leveleditor show <name>' to open one.")
	return nil
}

// completeLevelNames offers level names from the levels directory.
func completeLevelNames(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	names, err := newLoader(gridSize()).ListNames()
	if err != nil {
		return nil, cobra.ShellCompDirectiveDefault
	}
	return names, cobra.ShellCompDirectiveDefault
}
