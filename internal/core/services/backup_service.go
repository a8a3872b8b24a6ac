package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/kamal-hamza/fc-cli/internal/core/domain"
	"github.com/kamal-hamza/fc-cli/internal/core/ports"
	"github.com/kamal-hamza/fc-cli/pkg/vault"
)

// backupTimestampLayout names backup archives: backup_<ts>.json plus a
// sibling images_<ts>/ directory holding every reachable attachment.
const backupTimestampLayout = "20060102_150405"

// BackupService creates and restores timestamped backup archives. An
// archive is self-contained: the data file snapshot plus copies of all
// attachments reachable from it at backup time.
type BackupService struct {
	vault     *vault.Vault
	repo      ports.StoreRepository
	images    ports.ImageStore
	decoder   ports.StoreDecoder
	retention int // archives to keep, 0 disables pruning
}

// NewBackupService creates a new backup service.
func NewBackupService(v *vault.Vault, repo ports.StoreRepository, images ports.ImageStore, decoder ports.StoreDecoder, retention int) *BackupService {
	return &BackupService{
		vault:     v,
		repo:      repo,
		images:    images,
		decoder:   decoder,
		retention: retention,
	}
}

// BackupResponse represents the result of creating a backup
type BackupResponse struct {
	Timestamp    string
	DataPath     string
	ImagesCopied int
	Pruned       int
}

// Backup snapshots the current state into a new archive.
func (s *BackupService) Backup(ctx context.Context) (*BackupResponse, error) {
	data, err := os.ReadFile(s.vault.DataFilePath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: no data file to back up", domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	// Decode to compute the reachable attachment set. This also
	// guarantees the archive we write is a parseable document.
	store, err := s.decoder.Decode(data)
	if err != nil {
		return nil, err
	}

	ts := time.Now().Format(backupTimestampLayout)
	dataPath := s.vault.GetBackupDataPath(ts)
	imagesPath := s.vault.GetBackupImagesPath(ts)

	if err := os.MkdirAll(imagesPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create backup images directory: %w", err)
	}
	if err := os.WriteFile(dataPath, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write backup data file: %w", err)
	}

	resp := &BackupResponse{Timestamp: ts, DataPath: dataPath}

	for name := range store.ImageRefCounts() {
		src := s.images.Path(name)
		if err := copyFile(src, filepath.Join(imagesPath, name)); err != nil {
			// The reference may be dangling on disk; the snapshot is
			// still usable because restore repairs such references.
			continue
		}
		resp.ImagesCopied++
	}

	if s.retention > 0 {
		pruned, err := s.prune(ctx)
		if err != nil {
			return resp, err
		}
		resp.Pruned = pruned
	}

	return resp, nil
}

// BackupInfo describes one archive in the backups directory.
type BackupInfo struct {
	Timestamp string
	DataPath  string
	Size      int64
	Created   time.Time
}

// ListBackupsResponse represents the response from listing backups
type ListBackupsResponse struct {
	Backups []BackupInfo
}

// List returns the available archives, newest first.
func (s *BackupService) List(ctx context.Context) (*ListBackupsResponse, error) {
	timestamps, err := s.listTimestamps()
	if err != nil {
		return nil, err
	}

	resp := &ListBackupsResponse{}
	for _, ts := range timestamps {
		path := s.vault.GetBackupDataPath(ts)
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		created, _ := time.ParseInLocation(backupTimestampLayout, ts, time.Local)
		resp.Backups = append(resp.Backups, BackupInfo{
			Timestamp: ts,
			DataPath:  path,
			Size:      info.Size(),
			Created:   created,
		})
	}

	sort.Slice(resp.Backups, func(i, j int) bool {
		return resp.Backups[i].Timestamp > resp.Backups[j].Timestamp
	})
	return resp, nil
}

// RestoreRequest represents a request to restore a backup archive.
// An empty Timestamp restores the most recent archive.
type RestoreRequest struct {
	Timestamp string
}

// RestoreResponse represents the result of a restore
type RestoreResponse struct {
	Timestamp      string
	Decks          int
	Cards          int
	ImagesRestored int
}

// Restore replaces the current state with an archive's contents. The
// archive is fully validated first; a validation failure leaves the
// current state untouched. Attachment files are staged into the live
// images directory before the store document is swapped in, so at no
// point does the committed store reference a file that is not there.
// Files made unreachable by the restore are released afterwards.
func (s *BackupService) Restore(ctx context.Context, req RestoreRequest) (*RestoreResponse, error) {
	ts := req.Timestamp
	if ts == "" {
		latest, err := s.latestTimestamp()
		if err != nil {
			return nil, err
		}
		ts = latest
	}

	dataPath := s.vault.GetBackupDataPath(ts)
	imagesPath := s.vault.GetBackupImagesPath(ts)

	data, err := os.ReadFile(dataPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: backup %s", domain.ErrNotFound, ts)
		}
		return nil, fmt.Errorf("failed to read backup data file: %w", err)
	}

	// 1. Validate: the document must parse and every image it
	// references must be present in the archive.
	restored, err := s.decoder.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: backup %s is not restorable: %v", domain.ErrValidation, ts, err)
	}

	var missing []string
	for name := range restored.ImageRefCounts() {
		if _, err := os.Stat(filepath.Join(imagesPath, name)); err != nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("%w: backup %s is missing attachments: %s",
			domain.ErrValidation, ts, strings.Join(missing, ", "))
	}

	// 2. Stage: copy the archive's attachments into the live images
	// directory. Additive only, nothing is removed yet.
	resp := &RestoreResponse{Timestamp: ts}
	for name := range restored.ImageRefCounts() {
		dst := s.vault.GetImagePath(name)
		if _, err := os.Stat(dst); err == nil {
			continue
		}
		if err := copyFile(filepath.Join(imagesPath, name), dst); err != nil {
			return nil, fmt.Errorf("failed to stage attachment %s: %w", name, err)
		}
		resp.ImagesRestored++
	}

	// 3. Commit: atomically swap the store document.
	if err := s.repo.Save(ctx, restored); err != nil {
		return nil, err
	}

	// 4. Release: delete files the restored store does not reference.
	names, err := s.images.List(ctx)
	if err == nil {
		reachable := restored.ImageRefCounts()
		for _, name := range names {
			if reachable[name] == 0 {
				s.images.Delete(ctx, name)
			}
		}
	}

	resp.Decks = len(restored.Decks)
	resp.Cards = restored.TotalCards()
	return resp, nil
}

// prune removes the oldest archives beyond the retention count.
func (s *BackupService) prune(ctx context.Context) (int, error) {
	timestamps, err := s.listTimestamps()
	if err != nil {
		return 0, err
	}
	if len(timestamps) <= s.retention {
		return 0, nil
	}

	// Ascending, so the oldest come first.
	sort.Strings(timestamps)
	pruned := 0
	for _, ts := range timestamps[:len(timestamps)-s.retention] {
		if err := os.Remove(s.vault.GetBackupDataPath(ts)); err != nil {
			continue
		}
		os.RemoveAll(s.vault.GetBackupImagesPath(ts))
		pruned++
	}
	return pruned, nil
}

// listTimestamps scans the backups directory for archive data files.
func (s *BackupService) listTimestamps() ([]string, error) {
	entries, err := os.ReadDir(s.vault.BackupsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read backups directory: %w", err)
	}

	var timestamps []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "backup_") || !strings.HasSuffix(name, ".json") {
			continue
		}
		timestamps = append(timestamps, strings.TrimSuffix(strings.TrimPrefix(name, "backup_"), ".json"))
	}
	return timestamps, nil
}

func (s *BackupService) latestTimestamp() (string, error) {
	timestamps, err := s.listTimestamps()
	if err != nil {
		return "", err
	}
	if len(timestamps) == 0 {
		return "", fmt.Errorf("%w: no backups available", domain.ErrNotFound)
	}
	sort.Strings(timestamps)
	return timestamps[len(timestamps)-1], nil
}

// copyFile copies src to dst, creating or truncating dst.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}
