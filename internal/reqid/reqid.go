package reqid

import (
	"context"

	"github.com/google/uuid"
)

// key is the context key for the build correlation ID.
type key struct{}

// NewContext returns a copy of parent with a new build correlation ID
// stored, used to tie together the log lines and trace spans emitted while
// compiling a single CodeGenerationIR. It also returns the generated ID.
func NewContext(parent context.Context) (context.Context, string) {
	id := uuid.NewString()
	return context.WithValue(parent, key{}, id), id
}

// FromContext extracts the build correlation ID from ctx.
// It returns the ID and whether it was present.
func FromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(key{})
	id, ok := v.(string)
	return id, ok
}
