package vault

import (
	"fmt"
	"os"
	"path/filepath"
)

// Vault represents the managed storage directory for fc:
//
//	<root>/flashcards.json   the deck store document
//	<root>/images/           flat attachment directory
//	<root>/backups/          timestamped backup archives
type Vault struct {
	RootPath    string
	ImagesPath  string
	BackupsPath string
	ConfigPath  string
}

const dataFileName = "flashcards.json"

// New creates a new Vault instance with XDG-compliant paths
func New() (*Vault, error) {
	rootPath, rootErr := getVaultRoot()
	configPath, configErr := getConfigPath()
	if rootErr != nil {
		return nil, fmt.Errorf("failed to determine vault root: %w", rootErr)
	}
	if configErr != nil {
		return nil, fmt.Errorf("failed to determine config path: %w", configErr)
	}

	return &Vault{
		RootPath:    rootPath,
		ImagesPath:  filepath.Join(rootPath, "images"),
		BackupsPath: filepath.Join(rootPath, "backups"),
		ConfigPath:  configPath,
	}, nil
}

// getVaultRoot returns the vault root directory path
// Follows XDG Base Directory specification on Unix and uses AppData on Windows
func getVaultRoot() (string, error) {
	if xdgDataHome := os.Getenv("XDG_DATA_HOME"); xdgDataHome != "" {
		return filepath.Join(xdgDataHome, "fc"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, "fc"), nil
	}

	return filepath.Join(homeDir, ".local", "share", "fc"), nil
}

func getConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "fc", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	if appData := os.Getenv("APPDATA"); appData != "" {
		return filepath.Join(appData, "fc-config", "config.yaml"), nil
	}

	return filepath.Join(homeDir, ".config", "fc", "config.yaml"), nil
}

// Initialize creates the vault directory structure if it doesn't exist
func (v *Vault) Initialize() error {
	directories := []string{
		v.RootPath,
		v.ImagesPath,
		v.BackupsPath,
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// Exists checks if the vault has been initialized
func (v *Vault) Exists() bool {
	info, err := os.Stat(v.RootPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// DataFilePath returns the path of the deck store document.
func (v *Vault) DataFilePath() string {
	return filepath.Join(v.RootPath, dataFileName)
}

// GetImagePath returns the full path for an attachment file.
func (v *Vault) GetImagePath(filename string) string {
	return filepath.Join(v.ImagesPath, filename)
}

// GetBackupDataPath returns the data-file path of a backup archive.
func (v *Vault) GetBackupDataPath(timestamp string) string {
	return filepath.Join(v.BackupsPath, fmt.Sprintf("backup_%s.json", timestamp))
}

// GetBackupImagesPath returns the image-directory path of a backup archive.
func (v *Vault) GetBackupImagesPath(timestamp string) string {
	return filepath.Join(v.BackupsPath, fmt.Sprintf("images_%s", timestamp))
}
