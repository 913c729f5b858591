// Package backup keeps copies of gfxwrap config and profile files before
// they are overwritten, so that a forced init or a restore can be undone.
package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/klauern/gfxwrap/internal/logging"
	"github.com/klauern/gfxwrap/internal/util"
)

const (
	// DirPerm is the permission for the backups directory (rwxr-x---)
	DirPerm = 0o750
	// FilePerm is the permission for backup files (rw-r-----)
	FilePerm = 0o640

	// DefaultKeep is how many backups Prune leaves per source file.
	DefaultKeep = 10
)

// ErrNotFound is returned for a backup ID missing from the index.
var ErrNotFound = errors.New("backup not found")

// Create copies sourcePath into the backups directory and records it in the
// index.
func Create(sourcePath, description string) (*Metadata, error) {
	dir := util.BackupsPath()
	if err := os.MkdirAll(dir, DirPerm); err != nil {
		return nil, fmt.Errorf("failed to create backups directory: %w", err)
	}

	info, err := os.Stat(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat source path %q: %w", sourcePath, err)
	}
	// #nosec G304 - sourcePath is one of gfxwrap's own config files
	content, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read source file %q: %w", sourcePath, err)
	}

	hash := hashOf(content)
	now := time.Now()
	id := now.Format("20060102-150405-") + hash[:8]
	backupPath := filepath.Join(dir, id+filepath.Ext(sourcePath))
	if err := os.WriteFile(backupPath, content, FilePerm); err != nil {
		return nil, fmt.Errorf("failed to write backup file: %w", err)
	}

	meta := Metadata{
		ID:          id,
		SourcePath:  sourcePath,
		BackupPath:  backupPath,
		CreatedAt:   now,
		ModifiedAt:  info.ModTime(),
		Hash:        hash,
		Size:        info.Size(),
		Description: description,
	}

	index, err := LoadIndex()
	if err != nil {
		return nil, fmt.Errorf("failed to load backup index: %w", err)
	}
	if err := index.Add(meta); err != nil {
		return nil, fmt.Errorf("failed to add backup to index: %w", err)
	}

	logging.Info("backup created", logging.Path(sourcePath), logging.Operation("backup"))
	return &meta, nil
}

// Restore writes backup id back over targetPath, or over its original
// location when targetPath is empty. The content hash is checked first.
func Restore(id, targetPath string) (*Metadata, error) {
	index, err := LoadIndex()
	if err != nil {
		return nil, fmt.Errorf("failed to load backup index: %w", err)
	}
	meta, ok := index.Backups[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}

	content, err := os.ReadFile(meta.BackupPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup file: %w", err)
	}
	if got := hashOf(content); got != meta.Hash {
		return nil, fmt.Errorf("backup file corrupted: hash mismatch (expected %s, got %s)", meta.Hash, got)
	}

	if targetPath == "" {
		targetPath = meta.SourcePath
	}
	if err := os.MkdirAll(filepath.Dir(targetPath), DirPerm); err != nil {
		return nil, fmt.Errorf("failed to create target directory: %w", err)
	}
	if err := os.WriteFile(targetPath, content, FilePerm); err != nil {
		return nil, fmt.Errorf("failed to write target file: %w", err)
	}

	logging.Info("backup restored", logging.Path(targetPath), logging.Operation("restore"))
	return &meta, nil
}

// Get returns the metadata for backup id.
func Get(id string) (*Metadata, error) {
	index, err := LoadIndex()
	if err != nil {
		return nil, fmt.Errorf("failed to load backup index: %w", err)
	}
	meta, ok := index.Backups[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return &meta, nil
}

// Delete removes backup id and its index entry.
func Delete(id string) error {
	index, err := LoadIndex()
	if err != nil {
		return fmt.Errorf("failed to load backup index: %w", err)
	}
	meta, ok := index.Backups[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if err := os.Remove(meta.BackupPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete backup file: %w", err)
	}
	delete(index.Backups, id)
	return SaveIndex(index)
}

// List returns every backup, newest first.
func List() ([]Metadata, error) {
	index, err := LoadIndex()
	if err != nil {
		return nil, fmt.Errorf("failed to load backup index: %w", err)
	}
	return index.List(), nil
}

// Prune deletes all but the keep newest backups of each source file and
// returns the IDs it removed.
func Prune(keep int) ([]string, error) {
	index, err := LoadIndex()
	if err != nil {
		return nil, fmt.Errorf("failed to load backup index: %w", err)
	}

	seen := make(map[string]int)
	var removed []string
	for _, meta := range index.List() {
		seen[meta.SourcePath]++
		if seen[meta.SourcePath] <= keep {
			continue
		}
		if err := os.Remove(meta.BackupPath); err != nil && !os.IsNotExist(err) {
			return removed, fmt.Errorf("failed to delete backup file: %w", err)
		}
		delete(index.Backups, meta.ID)
		removed = append(removed, meta.ID)
	}

	if len(removed) == 0 {
		return nil, nil
	}
	logging.Debug("pruned backups", logging.Count(len(removed)))
	return removed, SaveIndex(index)
}

func hashOf(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
