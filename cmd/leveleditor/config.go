package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hnjm/2DTileMapLevelEditor/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration after merging the config file over the
built-in defaults. Redirect it to a file to start a custom config:

  leveleditor config > ~/.leveleditor/configs/editor.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(_ *cobra.Command, _ []string) error {
	data, err := config.Marshal(appConfig)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}
