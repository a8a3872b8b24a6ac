package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/fc-cli/internal/core/services"
	"github.com/kamal-hamza/fc-cli/pkg/ui"
)

var sweepDryRun bool

// sweepCmd represents the sweep command
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Delete orphaned image files",
	Long: `Scan the images directory and delete files no card references.
Orphans are left behind when a crash interrupts an attachment
operation; sweeping them is always safe.

Examples:
  fc sweep --dry-run
  fc sweep`,
	Args: cobra.NoArgs,
	RunE: runSweep,
}

func init() {
	sweepCmd.Flags().BoolVar(&sweepDryRun, "dry-run", false, "Report orphans without deleting them")
}

func runSweep(cmd *cobra.Command, args []string) error {
	ctx := getContext()
	resp, err := sweepService.Execute(ctx, services.SweepRequest{DryRun: sweepDryRun})
	if err != nil {
		fmt.Println(ui.FormatError("Sweep failed"))
		return err
	}

	fmt.Println(ui.RenderKeyValue("Files scanned", fmt.Sprintf("%d", resp.Scanned)))
	fmt.Println(ui.RenderKeyValue("Referenced", fmt.Sprintf("%d", resp.Reachable)))
	fmt.Println(ui.RenderKeyValue("Orphans", fmt.Sprintf("%d", len(resp.Orphans))))

	if len(resp.Orphans) == 0 {
		fmt.Println()
		fmt.Println(ui.FormatSuccess("Nothing to sweep."))
		return nil
	}

	fmt.Println()
	for _, name := range resp.Orphans {
		fmt.Println(ui.FormatMuted("  " + name))
	}
	fmt.Println()

	if sweepDryRun {
		fmt.Println(ui.FormatInfo("Dry run: nothing was deleted."))
		return nil
	}

	fmt.Println(ui.FormatSuccess(fmt.Sprintf("Deleted %d orphaned file(s).", resp.Deleted)))
	if resp.Cancelled {
		fmt.Println(ui.FormatWarning("Sweep was cancelled before finishing; run it again."))
	}
	return nil
}
