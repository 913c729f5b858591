package backup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/klauern/gfxwrap/internal/util"
)

// Metadata describes a single backup.
type Metadata struct {
	ID          string    `json:"id"`          // timestamp plus hash prefix
	SourcePath  string    `json:"source_path"` // file that was copied
	BackupPath  string    `json:"backup_path"`
	CreatedAt   time.Time `json:"created_at"`
	ModifiedAt  time.Time `json:"modified_at"` // source modification time
	Hash        string    `json:"hash"`        // SHA256 of the content
	Size        int64     `json:"size"`
	Description string    `json:"description,omitempty"`
}

// Index records every backup by ID.
type Index struct {
	Version string              `json:"version"`
	Updated time.Time           `json:"updated"`
	Backups map[string]Metadata `json:"backups"`
}

const (
	// IndexVersion is the current index format.
	IndexVersion = "1.0"
	// IndexFilename is the index file inside the backups directory.
	IndexFilename = "index.json"
)

// LoadIndex reads the backup index, or returns an empty one.
func LoadIndex() (*Index, error) {
	path := filepath.Join(util.BackupsPath(), IndexFilename)

	// #nosec G304 - path is built from util.BackupsPath()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Index{Version: IndexVersion, Backups: make(map[string]Metadata)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read index file: %w", err)
	}

	var index Index
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("failed to parse index file: %w", err)
	}
	if index.Backups == nil {
		index.Backups = make(map[string]Metadata)
	}
	return &index, nil
}

// SaveIndex writes the index to disk.
func SaveIndex(index *Index) error {
	dir := util.BackupsPath()
	if err := os.MkdirAll(dir, DirPerm); err != nil {
		return fmt.Errorf("failed to create backups directory: %w", err)
	}

	index.Updated = time.Now()
	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal index: %w", err)
	}

	// #nosec G306 - the index holds paths and hashes only
	if err := os.WriteFile(filepath.Join(dir, IndexFilename), data, FilePerm); err != nil {
		return fmt.Errorf("failed to write index file: %w", err)
	}
	return nil
}

// Add records meta and saves the index.
func (idx *Index) Add(meta Metadata) error {
	if idx.Backups == nil {
		idx.Backups = make(map[string]Metadata)
	}
	idx.Backups[meta.ID] = meta
	return SaveIndex(idx)
}

// List returns the backups newest first.
func (idx *Index) List() []Metadata {
	out := make([]Metadata, 0, len(idx.Backups))
	for _, m := range idx.Backups {
		out = append(out, m)
	}
	slices.SortFunc(out, func(a, b Metadata) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})
	return out
}
