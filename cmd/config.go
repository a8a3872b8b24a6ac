package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/fc-cli/pkg/config"
	"github.com/kamal-hamza/fc-cli/pkg/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Edit the fc configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := appVault.ConfigPath

		// Create it with defaults first so the user edits real keys.
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := config.DefaultConfig().Save(path); err != nil {
				return fmt.Errorf("failed to create config file: %w", err)
			}
		}

		fmt.Println(ui.FormatInfo("Opening config: " + path))

		editor := appConfig.Editor
		if editor == "" {
			editor = os.Getenv("EDITOR")
		}
		if editor == "" {
			editor = "vi"
		}

		c := exec.Command(editor, path)
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		return c.Run()
	},
}
