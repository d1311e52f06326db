package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hnjm/2DTileMapLevelEditor/internal/levels"
	"github.com/hnjm/2DTileMapLevelEditor/internal/storage"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Manage the level library",
	Long: `The level library is a SQLite database of named levels, stored
zstd-compressed. The editor opens it with Ctrl+L and SSH sessions save into it.

Examples:
  leveleditor library list
  leveleditor library save castle.lvl
  leveleditor library save castle.lvl castle-v2
  leveleditor library export castle castle.yaml
  leveleditor library delete castle`,
}

var libraryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored levels",
	Args:  cobra.NoArgs,
	RunE:  runLibraryList,
}

var librarySaveCmd = &cobra.Command{
	Use:   "save <file> [name]",
	Short: "Store a level file in the library",
	Long: `Store a level file in the library under name (default: the file name
without extension). A level with the same name is replaced.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runLibrarySave,
}

var libraryExportCmd = &cobra.Command{
	Use:   "export <name> <file>",
	Short: "Write a stored level to a file",
	Args:  cobra.ExactArgs(2),
	RunE:  runLibraryExport,
}

var libraryDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Remove a level from the library",
	Args:  cobra.ExactArgs(1),
	RunE:  runLibraryDelete,
}

func init() {
	addSizeFlags(librarySaveCmd)

	libraryCmd.AddCommand(libraryListCmd)
	libraryCmd.AddCommand(librarySaveCmd)
	libraryCmd.AddCommand(libraryExportCmd)
	libraryCmd.AddCommand(libraryDeleteCmd)
}

// withStore opens the library, runs fn and closes it.
func withStore(fn func(*storage.Store) error) error {
	store, err := openStore()
	if err != nil {
		return fmt.Errorf("opening level library: %w", err)
	}
	defer store.Close()
	return fn(store)
}

func runLibraryList(_ *cobra.Command, _ []string) error {
	return withStore(func(store *storage.Store) error {
		infos, err := store.ListLevels()
		if err != nil {
			return err
		}

		if len(infos) == 0 {
			fmt.Println("No levels in the library yet.")
			fmt.Println()
			fmt.Println("Run 'leveleditor library save <file>' to store one.")
			return nil
		}

		// Calculate column widths
		maxNameLen := 4 // "Name" header
		for _, info := range infos {
			if len(info.Name) > maxNameLen {
				maxNameLen = len(info.Name)
			}
		}

		// Print header
		fmt.Printf("  %-*s  %-10s  %-13s  %s\n", maxNameLen, "Name", "Size", "Bytes", "Updated")
		fmt.Printf("  %-*s  %-10s  %-13s  %s\n", maxNameLen, "----", "----", "-----", "-------")

		for _, info := range infos {
			fmt.Printf("  %-*s  %-10s  %-13s  %s\n",
				maxNameLen,
				info.Name,
				fmt.Sprintf("%dx%dx%d", info.Width, info.Height, info.Layers),
				fmt.Sprintf("%d/%d", info.StoredSize, info.RawSize),
				info.UpdatedAt.Format("2006-01-02 15:04"),
			)
		}

		stats, err := store.Stats()
		if err == nil {
			fmt.Println()
			fmt.Printf("%d levels, %d bytes stored for %d bytes of level text\n",
				stats.Count, stats.StoredBytes, stats.RawBytes)
		}
		return nil
	})
}

func runLibrarySave(_ *cobra.Command, args []string) error {
	path := args[0]
	name := levels.NameFromPath(path)
	if len(args) == 2 {
		name = args[1]
	}

	lvl, err := levels.LoadFile(path, gridSize())
	if err != nil {
		return err
	}
	text, err := levels.Encode(lvl.Grid)
	if err != nil {
		return err
	}

	return withStore(func(store *storage.Store) error {
		g := lvl.Grid
		id, err := store.SaveLevel(name, g.Width(), g.Height(), g.Layers(), text)
		if err != nil {
			return err
		}
		logger.Info("level stored", "name", name, "id", id, "file", path)
		fmt.Printf("Stored %s as %q\n", path, name)
		return nil
	})
}

func runLibraryExport(_ *cobra.Command, args []string) error {
	name, path := args[0], args[1]

	return withStore(func(store *storage.Store) error {
		rec, err := store.LoadLevel(name)
		if err != nil {
			return err
		}
		g, err := levels.Decode(rec.Text, rec.Width, rec.Height, rec.Layers)
		if err != nil {
			return fmt.Errorf("decoding stored level %s: %w", name, err)
		}

		path = levels.EnsureExtension(path, appConfig.Files.Extension)
		if err := levels.SaveFile(path, levels.Level{Name: rec.Name, Grid: g}); err != nil {
			return err
		}
		fmt.Printf("Exported %q to %s\n", name, path)
		return nil
	})
}

func runLibraryDelete(_ *cobra.Command, args []string) error {
	return withStore(func(store *storage.Store) error {
		if err := store.DeleteLevel(args[0]); err != nil {
			return err
		}
		logger.Info("level deleted", "name", args[0])
		fmt.Printf("Deleted %q\n", args[0])
		return nil
	})
}
