package cmd

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/fc-cli/pkg/ui"
)

var watchNoBackup bool

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the vault and back up on change",
	Long: `Run a foreground daemon that watches the deck store file. Every
change (from another fc process, a sync tool, or a manual edit) is
logged, and when auto_backup is enabled in the config a backup is
created after the changes settle.

Use --no-backup to only log changes.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchNoBackup, "no-backup", false, "Log changes without creating backups")
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := getContext()

	logger := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the vault root, not the file: atomic saves replace the
	// data file by rename, which would drop a file-level watch.
	if err := watcher.Add(appVault.RootPath); err != nil {
		return fmt.Errorf("failed to watch vault: %w", err)
	}

	dataFile := filepath.Base(appVault.DataFilePath())
	backup := appConfig.AutoBackup && !watchNoBackup

	fmt.Println(ui.FormatRocket("Starting fc watch..."))
	fmt.Println(ui.FormatMuted("Watching: " + appVault.DataFilePath()))
	if backup {
		fmt.Println(ui.FormatMuted(fmt.Sprintf("Auto-backup on, retention %d", appConfig.BackupRetention)))
	}
	fmt.Println(ui.FormatMuted("Press Ctrl+C to stop"))
	fmt.Println()

	// Debounce timer so a burst of writes triggers one backup
	var debounceTimer *time.Timer
	debounceDuration := time.Duration(appConfig.WatchDebounceMS) * time.Millisecond
	pending := false

	onSettled := func() {
		if !pending {
			return
		}
		pending = false

		store, err := storeRepo.Load(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("store changed but failed to load")
			return
		}

		cards := 0
		for _, deck := range store.Decks {
			cards += deck.CardCount()
		}
		logger.Info().
			Int("decks", len(store.Decks)).
			Int("cards", cards).
			Msg("store changed")

		if !backup {
			return
		}
		resp, err := backupService.Backup(ctx)
		if err != nil {
			logger.Error().Err(err).Msg("auto-backup failed")
			return
		}
		logger.Info().
			Str("timestamp", resp.Timestamp).
			Int("images", resp.ImagesCopied).
			Int("pruned", resp.Pruned).
			Msg("backup created")
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// Only the data file matters; ignore temp files from
			// in-flight atomic saves.
			baseName := filepath.Base(event.Name)
			if baseName != dataFile {
				continue
			}
			if strings.HasPrefix(baseName, ".") {
				continue
			}

			if event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Write) ||
				event.Has(fsnotify.Rename) {

				pending = true

				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounceDuration, onSettled)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error().Err(err).Msg("watcher error")

		case <-ctx.Done():
			fmt.Println()
			fmt.Println(ui.FormatMuted("Watch stopped"))
			return nil
		}
	}
}
