package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/fc-cli/pkg/ui"
)

var backupList bool

// backupCmd represents the backup command
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Create a backup of the vault",
	Long: `Snapshot the deck store and every referenced image into the
vault's backups directory. Old backups beyond the configured retention
are pruned automatically.

Examples:
  fc backup
  fc backup --list`,
	Args: cobra.NoArgs,
	RunE: runBackup,
}

func init() {
	backupCmd.Flags().BoolVarP(&backupList, "list", "l", false, "List existing backups instead of creating one")
}

func runBackup(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	if backupList {
		resp, err := backupService.List(ctx)
		if err != nil {
			fmt.Println(ui.FormatError("Failed to list backups"))
			return err
		}
		if len(resp.Backups) == 0 {
			fmt.Println(ui.FormatWarning("No backups yet"))
			fmt.Println(ui.FormatInfo("Create one with: fc backup"))
			return nil
		}

		fmt.Println(ui.FormatTitle(fmt.Sprintf("Backups (%d)", len(resp.Backups))))
		fmt.Println()
		table := ui.NewTable([]ui.TableColumn{
			{Header: "Timestamp", Width: 16},
			{Header: "Created", Width: 17},
			{Header: "Size", Width: 10, Align: "right"},
		})
		for _, b := range resp.Backups {
			table.AddRow([]string{
				b.Timestamp,
				b.Created.Local().Format("2006-01-02 15:04"),
				formatBytes(b.Size),
			})
		}
		fmt.Print(table.Render())
		return nil
	}

	resp, err := backupService.Backup(ctx)
	if err != nil {
		fmt.Println(ui.FormatError("Backup failed"))
		return err
	}

	fmt.Println(ui.FormatSuccess("Backup created!"))
	fmt.Println()
	fmt.Println(ui.RenderKeyValue("Timestamp", resp.Timestamp))
	fmt.Println(ui.RenderKeyValue("Data file", resp.DataPath))
	fmt.Println(ui.RenderKeyValue("Images copied", fmt.Sprintf("%d", resp.ImagesCopied)))
	if resp.Pruned > 0 {
		fmt.Println(ui.RenderKeyValue("Old backups pruned", fmt.Sprintf("%d", resp.Pruned)))
	}

	return nil
}

func formatBytes(size int64) string {
	switch {
	case size >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(size)/(1<<20))
	case size >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(size)/(1<<10))
	}
	return fmt.Sprintf("%d B", size)
}
