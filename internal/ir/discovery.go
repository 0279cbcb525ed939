package ir

import "context"

// DocumentID names a document independent of where it physically lives,
// used to key duplicate-detection and cross-document fragment lookups.
type DocumentID string

// DocumentMetadata identifies one GraphQL executable document (a .graphql
// file containing operations and/or fragments) before it has been read.
type DocumentMetadata struct {
	ID       DocumentID
	FilePath string
}

// Discovery enumerates and reads the operation/fragment documents a build
// should compile. The schema itself is never discovered this way — callers
// supply an already-built schema.Schema to Build.
type Discovery interface {
	ListMetadata(ctx context.Context) ([]*DocumentMetadata, error)
	ReadDocument(ctx context.Context, id DocumentID) (string, error)
}
