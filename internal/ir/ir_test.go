package ir_test

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/hzsweers/apollo-android/internal/ir"
	"github.com/hzsweers/apollo-android/internal/schema"
)

func mustBuildSchema(t *testing.T) *schema.Schema {
	t.Helper()
	sdl := mustReadData("testdata/starwars.graphql")
	sch, err := schema.BuildFromSDL("starwars.graphql", sdl)
	if err != nil {
		t.Fatalf("build schema: %v", err)
	}
	return sch
}

func TestGoodSnapshot(t *testing.T) {
	type testCase struct {
		name     string
		snapshot string
		docs     []ir.InMemoryDocument
	}

	for _, tc := range []testCase{
		{
			name:     "hero_basic",
			snapshot: "testdata/good/hero_basic.json",
			docs: []ir.InMemoryDocument{
				{FilePath: "hero_basic.graphql", Content: mustReadData("testdata/good/hero_basic.graphql")},
			},
		},
		{
			name:     "hero_type_specific",
			snapshot: "testdata/good/hero_type_specific.json",
			docs: []ir.InMemoryDocument{
				{FilePath: "hero_type_specific.graphql", Content: mustReadData("testdata/good/hero_type_specific.graphql")},
			},
		},
		{
			name:     "merged_fields",
			snapshot: "testdata/good/merged_fields.json",
			docs: []ir.InMemoryDocument{
				{FilePath: "merged_fields.graphql", Content: mustReadData("testdata/good/merged_fields.graphql")},
			},
		},
		{
			name:     "create_review",
			snapshot: "testdata/good/create_review.json",
			docs: []ir.InMemoryDocument{
				{FilePath: "create_review.graphql", Content: mustReadData("testdata/good/create_review.graphql")},
			},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			sch := mustBuildSchema(t)
			disc := ir.NewInMemoryDiscovery(tc.docs)

			result, err := ir.Build(t.Context(), sch, disc)
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}

			if _, err := os.Stat(tc.snapshot); os.IsNotExist(err) {
				file, err := os.Create(tc.snapshot)
				if err != nil {
					t.Fatalf("failed to create snapshot file: %v", err)
				}
				defer file.Close()
				enc := json.NewEncoder(file)
				enc.SetIndent("", "  ")
				if err := enc.Encode(result); err != nil {
					t.Fatalf("failed to write snapshot: %v", err)
				}
				t.Logf("snapshot created: %s", tc.snapshot)
				return
			}

			file, err := os.Open(tc.snapshot)
			if err != nil {
				t.Fatalf("failed to open snapshot file: %v", err)
			}
			defer file.Close()
			var expected *ir.CodeGenerationIR
			if err := json.NewDecoder(file).Decode(&expected); err != nil {
				t.Fatalf("failed to decode snapshot: %v", err)
			}

			if diff := cmp.Diff(expected, result); diff != "" {
				t.Errorf("CodeGenerationIR mismatch (-expected +got):\n%s", diff)
			}
		})
	}
}

func TestBadSnapshot(t *testing.T) {
	type testCase struct {
		name    string
		docs    []ir.InMemoryDocument
		wantErr string
	}

	for _, tc := range []testCase{
		{
			name: "unknown_field",
			docs: []ir.InMemoryDocument{
				{FilePath: "unknown_field.graphql", Content: mustReadData("testdata/bad/unknown_field.graphql")},
			},
			wantErr: `is not defined on type`,
		},
		{
			name: "response_key_conflict",
			docs: []ir.InMemoryDocument{
				{FilePath: "response_key_conflict.graphql", Content: mustReadData("testdata/bad/response_key_conflict.graphql")},
			},
			wantErr: "selected twice with different arguments",
		},
		{
			name: "unresolved_fragment",
			docs: []ir.InMemoryDocument{
				{FilePath: "unresolved_fragment.graphql", Content: mustReadData("testdata/bad/unresolved_fragment.graphql")},
			},
			wantErr: "Unresolved fragment reference",
		},
		{
			name: "duplicate_operation",
			docs: []ir.InMemoryDocument{
				{FilePath: "duplicate_operation_a.graphql", Content: mustReadData("testdata/bad/duplicate_operation_a.graphql")},
				{FilePath: "duplicate_operation_b.graphql", Content: mustReadData("testdata/bad/duplicate_operation_b.graphql")},
			},
			wantErr: "is already defined in",
		},
		{
			name: "variable_type_mismatch",
			docs: []ir.InMemoryDocument{
				{FilePath: "variable_type_mismatch.graphql", Content: mustReadData("testdata/bad/variable_type_mismatch.graphql")},
			},
			wantErr: "used in position expecting type",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			sch := mustBuildSchema(t)
			disc := ir.NewInMemoryDiscovery(tc.docs)

			_, err := ir.Build(t.Context(), sch, disc)
			if err == nil {
				t.Fatal("expected error but got none")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func mustReadData(filename string) string {
	data, err := os.ReadFile(filename)
	if err != nil {
		panic(fmt.Sprintf("failed to read test data file %s: %v", filename, err))
	}
	return string(data)
}
