package ir

import (
	"context"
	"fmt"
)

// InMemoryDocument is a test fixture: a document's file path and its raw
// GraphQL source, bypassing the filesystem entirely.
type InMemoryDocument struct {
	FilePath string
	Content  string
}

// InMemoryDiscovery is a Discovery backed by an in-memory fixture list, used
// by the package's snapshot tests.
type InMemoryDiscovery struct {
	metas    map[DocumentID]*DocumentMetadata
	contents map[DocumentID]string
}

func NewInMemoryDiscovery(docs []InMemoryDocument) *InMemoryDiscovery {
	d := &InMemoryDiscovery{
		metas:    make(map[DocumentID]*DocumentMetadata),
		contents: make(map[DocumentID]string),
	}
	for _, doc := range docs {
		id := DocumentID(doc.FilePath)
		d.metas[id] = &DocumentMetadata{ID: id, FilePath: doc.FilePath}
		d.contents[id] = doc.Content
	}
	return d
}

func (d *InMemoryDiscovery) ListMetadata(ctx context.Context) ([]*DocumentMetadata, error) {
	metas := make([]*DocumentMetadata, 0, len(d.metas))
	for _, m := range d.metas {
		metas = append(metas, m)
	}
	return metas, nil
}

func (d *InMemoryDiscovery) ReadDocument(ctx context.Context, id DocumentID) (string, error) {
	content, ok := d.contents[id]
	if !ok {
		return "", fmt.Errorf("document %q not found", id)
	}
	return content, nil
}
