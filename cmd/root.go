package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/fc-cli/internal/adapters/imaging"
	"github.com/kamal-hamza/fc-cli/internal/adapters/repository"
	"github.com/kamal-hamza/fc-cli/internal/core/services"
	"github.com/kamal-hamza/fc-cli/pkg/config"
	"github.com/kamal-hamza/fc-cli/pkg/ui"
	"github.com/kamal-hamza/fc-cli/pkg/vault"
)

var (
	// Global vault and config instances
	appVault  *vault.Vault
	appConfig *config.Config

	// Services
	deckService       *services.DeckService
	cardService       *services.CardService
	attachmentService *services.AttachmentService
	studyService      *services.StudyService
	searchService     *services.SearchService
	tagService        *services.TagService
	statsService      *services.StatsService
	sweepService      *services.SweepService
	backupService     *services.BackupService
	exportService     *services.ExportService

	// Repositories
	storeRepo  *repository.FileStoreRepository
	imageStore *repository.FileImageStore

	// Imaging
	imageDecoder *imaging.Decoder
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fc",
	Short: "FC - A flashcard manager for the terminal",
	Long: ui.StyleTitle.Render("FC") + " - Flashcard Manager\n\n" +
		"Create decks, attach images, study in the terminal and track your\n" +
		"progress over time. All data lives in a single local vault.",
	PersistentPreRunE: initializeApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(newCmd)
	rootCmd.AddCommand(decksCmd)
	rootCmd.AddCommand(deleteDeckCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(cardsCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(removeCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(attachCmd)
	rootCmd.AddCommand(studyCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(sweepCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(watchCmd)
}

// initializeApp initializes the application components
func initializeApp(cmd *cobra.Command, args []string) error {
	// Skip initialization for init command
	if cmd.Name() == "init" {
		return nil
	}

	// Create vault instance
	v, err := vault.New()
	if err != nil {
		return fmt.Errorf("failed to initialize vault: %w", err)
	}
	appVault = v

	// Check if vault exists
	if !appVault.Exists() {
		fmt.Println(ui.FormatError("Vault not initialized"))
		fmt.Println(ui.FormatInfo("Run 'fc init' to initialize the vault"))
		os.Exit(1)
	}

	// Load config
	cfg, err := config.Load(appVault.ConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	appConfig = cfg
	ui.SetTheme(cfg.ColorTheme)

	// Initialize repositories
	storeRepo = repository.NewFileStoreRepository(appVault)
	imageStore = repository.NewFileImageStore(appVault)

	// Initialize imaging
	imageDecoder = imaging.NewDecoder()

	// Initialize services
	attachmentService = services.NewAttachmentService(imageStore)
	deckService = services.NewDeckService(storeRepo, attachmentService)
	cardService = services.NewCardService(storeRepo, attachmentService)
	studyService = services.NewStudyService(storeRepo)
	searchService = services.NewSearchService(storeRepo)
	tagService = services.NewTagService(storeRepo)
	statsService = services.NewStatsService(storeRepo)
	sweepService = services.NewSweepService(storeRepo, imageStore)
	backupService = services.NewBackupService(appVault, storeRepo, imageStore, repository.Decoder{}, cfg.BackupRetention)
	exportService = services.NewExportService(storeRepo, imageStore)

	return nil
}

// getContext returns a context for operations
func getContext() context.Context {
	return context.Background()
}

// resolveDeckArg expands configured aliases in deck name arguments.
func resolveDeckArg(name string) string {
	if appConfig == nil {
		return name
	}
	if target, ok := appConfig.Aliases[name]; ok {
		return target
	}
	return name
}
