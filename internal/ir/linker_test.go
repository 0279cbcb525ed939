package ir

import (
	"strings"
	"testing"

	"github.com/hzsweers/apollo-android/internal/schema"
)

func buildSimpleSchema(t *testing.T) *schema.Schema {
	t.Helper()
	sch, err := schema.BuildFromSDL("t.graphql", `type Query { greeting: String }`)
	if err != nil {
		t.Fatalf("build schema: %v", err)
	}
	return sch
}

func TestDuplicateFragmentNameRejected(t *testing.T) {
	sch := buildSimpleSchema(t)
	docs := []InMemoryDocument{
		{FilePath: "a.graphql", Content: "fragment Shared on Query { greeting }"},
		{FilePath: "b.graphql", Content: "fragment Shared on Query { greeting }"},
	}
	l := &linker{schema: sch}
	_, _, err := l.link(t.Context(), NewInMemoryDiscovery(docs))
	if err == nil || !strings.Contains(err.Error(), "already defined") {
		t.Fatalf("expected duplicate-fragment error, got %v", err)
	}
}

func TestOperationsScopedByDirectoryNotGlobal(t *testing.T) {
	sch := buildSimpleSchema(t)
	docs := []InMemoryDocument{
		{FilePath: "pkgA/q.graphql", Content: "query Q { greeting }"},
		{FilePath: "pkgB/q.graphql", Content: "query Q { greeting }"},
	}
	l := &linker{schema: sch}
	ops, _, err := l.link(t.Context(), NewInMemoryDiscovery(docs))
	if err != nil {
		t.Fatalf("expected same operation name to coexist across packages, got error: %v", err)
	}
	if len(ops) != 2 {
		t.Fatalf("expected 2 operations, got %d", len(ops))
	}
}

func TestAnonymousOperationRejected(t *testing.T) {
	sch := buildSimpleSchema(t)
	docs := []InMemoryDocument{
		{FilePath: "a.graphql", Content: "{ greeting }"},
	}
	l := &linker{schema: sch}
	_, _, err := l.link(t.Context(), NewInMemoryDiscovery(docs))
	if err == nil || !strings.Contains(err.Error(), "Anonymous") {
		t.Fatalf("expected anonymous-operation error, got %v", err)
	}
}

func TestSourceWithFragmentsOneLevelOnly(t *testing.T) {
	sch := buildSimpleSchema(t)
	docs := []InMemoryDocument{
		{FilePath: "a.graphql", Content: "query Q { ...Inner }\nfragment Inner on Query { greeting }"},
	}
	l := &linker{schema: sch}
	ops, _, err := l.link(t.Context(), NewInMemoryDiscovery(docs))
	if err != nil {
		t.Fatalf("link: %v", err)
	}
	if !strings.Contains(ops[0].SourceWithFragments, "fragment Inner") {
		t.Fatalf("expected directly-spread fragment source inlined, got %q", ops[0].SourceWithFragments)
	}
}
