package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/fc-cli/internal/adapters/repository"
	"github.com/kamal-hamza/fc-cli/internal/core/services"
	"github.com/kamal-hamza/fc-cli/pkg/ui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the health of your fc installation",
	Long: `Diagnose issues with your FC setup.

Checks for:
  - Vault directory integrity (including images and backups)
  - Configuration file existence
  - Deck store parseability
  - Dangling image references and orphaned files`,
	Run: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) {
	fmt.Println(ui.FormatTitle("🏥 FC Doctor"))
	fmt.Println()

	// 1. Check Vault Structure
	checkStep("Vault Directory", func() error {
		if !appVault.Exists() {
			return fmt.Errorf("not found at %s", appVault.RootPath)
		}
		return nil
	})

	checkStep("Images Directory", func() error {
		if _, err := os.Stat(appVault.ImagesPath); os.IsNotExist(err) {
			return fmt.Errorf("missing at %s", appVault.ImagesPath)
		}
		return nil
	})

	checkStep("Backups Directory", func() error {
		if _, err := os.Stat(appVault.BackupsPath); os.IsNotExist(err) {
			return fmt.Errorf("missing at %s", appVault.BackupsPath)
		}
		return nil
	})

	// 2. Check Config
	checkStep("Configuration File", func() error {
		if _, err := os.Stat(appVault.ConfigPath); os.IsNotExist(err) {
			return fmt.Errorf("missing at %s (run 'fc config' to create it)", appVault.ConfigPath)
		}
		return nil
	})

	// 3. Check Data Integrity
	checkStep("Deck Store", func() error {
		data, err := os.ReadFile(appVault.DataFilePath())
		if os.IsNotExist(err) {
			return fmt.Errorf("not created yet (made on first 'fc new')")
		}
		if err != nil {
			return err
		}
		if _, err := repository.DecodeStore(data); err != nil {
			return fmt.Errorf("unparseable: %v", err)
		}
		return nil
	})

	fmt.Println()
	fmt.Println(ui.FormatInfo("Checking attachment integrity..."))

	checkStep("Image References", func() error {
		store, err := storeRepo.Load(getContext())
		if err != nil {
			return err
		}

		dangling := 0
		for name := range store.ImageRefCounts() {
			if _, err := os.Stat(appVault.GetImagePath(name)); os.IsNotExist(err) {
				if dangling == 0 {
					fmt.Println()
				}
				fmt.Printf("    %s (Missing)\n", name)
				dangling++
			}
		}
		if dangling > 0 {
			return fmt.Errorf("found %d dangling reference(s); on the next save they are dropped", dangling)
		}
		return nil
	})

	checkStep("Orphaned Files", func() error {
		resp, err := sweepService.Execute(getContext(), services.SweepRequest{DryRun: true})
		if err != nil {
			return err
		}
		if len(resp.Orphans) > 0 {
			return fmt.Errorf("found %d orphaned file(s) (run 'fc sweep')", len(resp.Orphans))
		}
		return nil
	})

	// 4. Check Environment
	checkStep("EDITOR Variable", func() error {
		if os.Getenv("EDITOR") == "" {
			return fmt.Errorf("not set (using fallback 'vi')")
		}
		return nil
	})
}

// checkStep runs a check function and prints the result nicely
func checkStep(name string, check func() error) {
	err := check()
	if err == nil {
		fmt.Printf("%s %s\n", ui.FormatSuccess("✔"), name)
	} else {
		fmt.Printf("%s %s\n", ui.FormatError("✘"), name)
		fmt.Printf("    %s\n", ui.StyleMuted.Render(err.Error()))
	}
}
