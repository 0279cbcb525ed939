package ir

import (
	"testing"

	"github.com/hzsweers/apollo-android/internal/schema"
)

func TestCollectTypesUsedExcludesCompositeTypes(t *testing.T) {
	sdl := `
	type Query { hero: Character }
	interface Character { id: ID! }
	type Human implements Character { id: ID! }
	`
	sch, err := schema.BuildFromSDL("t.graphql", sdl)
	if err != nil {
		t.Fatalf("build schema: %v", err)
	}

	ops := []*Operation{{
		Fields: []*Field{
			{ResponseName: "hero", FieldName: "hero", Type: "Character", Fields: []*Field{
				{ResponseName: "id", FieldName: "id", Type: "ID!"},
			}},
		},
	}}

	decls := collectTypesUsed(sch, ops, nil)
	for _, d := range decls {
		if d.Name == "Character" || d.Name == "Human" {
			t.Errorf("expected composite type %q to be excluded from TypesUsed", d.Name)
		}
	}
}

func TestCollectTypesUsedFollowsInputObjectFields(t *testing.T) {
	sdl := `
	type Query { review(input: ReviewInput!): Boolean }
	input ReviewInput { stars: Int! favoriteEpisode: Episode }
	enum Episode { NEWHOPE JEDI }
	`
	sch, err := schema.BuildFromSDL("t.graphql", sdl)
	if err != nil {
		t.Fatalf("build schema: %v", err)
	}

	ops := []*Operation{{
		Fields: []*Field{
			{ResponseName: "review", FieldName: "review", Type: "Boolean", Arguments: []*Argument{
				{Name: "input", Type: "ReviewInput!"},
			}},
		},
	}}

	decls := collectTypesUsed(sch, ops, nil)
	names := make(map[string]bool)
	for _, d := range decls {
		names[d.Name] = true
	}
	if !names["ReviewInput"] {
		t.Error("expected ReviewInput in TypesUsed")
	}
	if !names["Episode"] {
		t.Error("expected transitively-reached Episode in TypesUsed")
	}
}

func TestCollectTypesUsedSkipsBuiltinScalars(t *testing.T) {
	sdl := `type Query { name(id: ID!): String }`
	sch, err := schema.BuildFromSDL("t.graphql", sdl)
	if err != nil {
		t.Fatalf("build schema: %v", err)
	}
	ops := []*Operation{{
		Fields: []*Field{
			{ResponseName: "name", FieldName: "name", Type: "String", Arguments: []*Argument{
				{Name: "id", Type: "ID!"},
			}},
		},
	}}
	decls := collectTypesUsed(sch, ops, nil)
	if len(decls) != 0 {
		t.Errorf("expected no TypeDeclarations for builtin scalars, got %#v", decls)
	}
}
