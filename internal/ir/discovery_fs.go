package ir

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hzsweers/apollo-android/internal/schema"
)

// FileSystemDiscovery implements Discovery over a directory tree of
// .graphql operation/fragment files.
type FileSystemDiscovery struct {
	filePaths map[DocumentID]string
	metas     map[DocumentID]*DocumentMetadata
}

// NewFileSystemDiscovery walks rootDir and registers every .graphql file
// found under it as a document, keyed by its path relative to rootDir.
func NewFileSystemDiscovery(rootDir string) (*FileSystemDiscovery, error) {
	discovery := &FileSystemDiscovery{
		filePaths: make(map[DocumentID]string),
		metas:     make(map[DocumentID]*DocumentMetadata),
	}

	err := filepath.WalkDir(rootDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(d.Name()) != ".graphql" {
			return nil
		}
		relPath, err := filepath.Rel(rootDir, path)
		if err != nil {
			return fmt.Errorf("resolve relative path for %q: %w", path, err)
		}
		id := DocumentID(relPath)
		discovery.filePaths[id] = path
		discovery.metas[id] = &DocumentMetadata{ID: id, FilePath: relPath}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk root directory %q: %w", rootDir, err)
	}
	return discovery, nil
}

func (d *FileSystemDiscovery) ListMetadata(ctx context.Context) ([]*DocumentMetadata, error) {
	metas := make([]*DocumentMetadata, 0, len(d.metas))
	for _, m := range d.metas {
		metas = append(metas, m)
	}
	return metas, nil
}

func (d *FileSystemDiscovery) ReadDocument(ctx context.Context, id DocumentID) (string, error) {
	fp, ok := d.filePaths[id]
	if !ok {
		return "", fmt.Errorf("document %q not found", id)
	}
	content, err := os.ReadFile(fp)
	if err != nil {
		return "", fmt.Errorf("read document %q: %w", id, err)
	}
	return string(content), nil
}

// Load is a convenience function that walks rootDir, parses every .graphql
// file found there as an operation/fragment document, and builds the IR
// against sch.
func Load(ctx context.Context, sch *schema.Schema, rootDir string) (*CodeGenerationIR, error) {
	discovery, err := NewFileSystemDiscovery(rootDir)
	if err != nil {
		return nil, err
	}
	return Build(ctx, sch, discovery)
}
