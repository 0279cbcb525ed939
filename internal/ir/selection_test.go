package ir

import (
	"testing"

	"github.com/hzsweers/apollo-android/internal/language"
	"github.com/hzsweers/apollo-android/internal/schema"
)

func buildStarWarsSchema(t *testing.T) *schema.Schema {
	t.Helper()
	sdl := `
	type Query { hero(episode: Episode): Character }
	interface Character { id: ID! name: String! }
	type Human implements Character { id: ID! name: String! homePlanet: String }
	type Droid implements Character { id: ID! name: String! primaryFunction: String }
	enum Episode { NEWHOPE EMPIRE JEDI }
	`
	sch, err := schema.BuildFromSDL("t.graphql", sdl)
	if err != nil {
		t.Fatalf("build schema: %v", err)
	}
	return sch
}

func flattenQuery(t *testing.T, sch *schema.Schema, src string) []*Field {
	t.Helper()
	doc, err := language.ParseQuery(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	ctx := newSelectionContext(sch, map[string]*language.FragmentDefinition{}, map[string]*Variable{}, false)
	fields, _, _, err := ctx.flattenSelectionSet(doc.Operations[0].SelectionSet, "Query")
	if err != nil {
		t.Fatalf("flatten: %v", err)
	}
	return fields
}

func TestInjectTypenameOnComposite(t *testing.T) {
	sch := buildStarWarsSchema(t)
	fields := flattenQuery(t, sch, `{ hero { id } }`)
	hero := fields[0]
	if len(hero.Fields) == 0 || hero.Fields[0].FieldName != "__typename" {
		t.Fatalf("expected synthetic __typename prepended, got %#v", hero.Fields)
	}
}

func TestInjectTypenameNotDuplicated(t *testing.T) {
	sch := buildStarWarsSchema(t)
	fields := flattenQuery(t, sch, `{ hero { __typename id } }`)
	hero := fields[0]
	count := 0
	for _, f := range hero.Fields {
		if f.FieldName == "__typename" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one __typename, got %d in %#v", count, hero.Fields)
	}
}

func TestInjectTypenameSkippedForEmptySelection(t *testing.T) {
	got := injectTypename(buildStarWarsSchema(t), "Human", nil)
	if len(got) != 0 {
		t.Fatalf("expected no synthetic field for empty selection, got %#v", got)
	}
}

func TestSameTypeInlineFragmentMerges(t *testing.T) {
	sch := buildStarWarsSchema(t)
	doc, err := language.ParseQuery(`{ hero { ... on Character { id } ... on Character { name } } }`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	ctx := newSelectionContext(sch, map[string]*language.FragmentDefinition{}, map[string]*Variable{}, false)
	fields, _, _, err := ctx.flattenSelectionSet(doc.Operations[0].SelectionSet, "Query")
	if err != nil {
		t.Fatalf("flatten: %v", err)
	}
	hero := fields[0]
	var names []string
	for _, f := range hero.Fields {
		names = append(names, f.FieldName)
	}
	if len(names) != 3 { // __typename, id, name
		t.Fatalf("expected same-type inline fragments merged into parent, got %v", names)
	}
}

func TestDifferingTypeInlineFragmentsPreserved(t *testing.T) {
	sch := buildStarWarsSchema(t)
	fields := flattenQuery(t, sch, `{ hero { id ... on Human { homePlanet } ... on Droid { primaryFunction } } }`)
	hero := fields[0]
	if len(hero.InlineFragments) != 2 {
		t.Fatalf("expected 2 distinct-type inline fragments, got %d", len(hero.InlineFragments))
	}
	byType := map[string]*InlineFragment{}
	for _, inl := range hero.InlineFragments {
		byType[inl.TypeCondition] = inl
	}
	if byType["Human"] == nil || byType["Droid"] == nil {
		t.Fatalf("expected Human and Droid inline fragments, got %#v", hero.InlineFragments)
	}
}

func TestFragmentSpreadCycleDetected(t *testing.T) {
	sch := buildStarWarsSchema(t)
	fragA := &language.FragmentDefinition{
		Name:          "A",
		TypeCondition: "Character",
		SelectionSet: language.SelectionSet{
			&language.FragmentSpread{Name: "B"},
		},
	}
	fragB := &language.FragmentDefinition{
		Name:          "B",
		TypeCondition: "Character",
		SelectionSet: language.SelectionSet{
			&language.FragmentSpread{Name: "A"},
		},
	}
	fragments := map[string]*language.FragmentDefinition{"A": fragA, "B": fragB}
	ctx := newSelectionContext(sch, fragments, map[string]*Variable{}, false)
	_, _, _, err := ctx.flattenSelectionSet(language.SelectionSet{&language.FragmentSpread{Name: "A"}}, "Character")
	if err == nil {
		t.Fatal("expected cycle detection error")
	}
}

func TestSkipDirective(t *testing.T) {
	sch := buildStarWarsSchema(t)
	doc, err := language.ParseQuery(`query Q($skipIt: Boolean!) { hero { id @skip(if: $skipIt) } }`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	vars := map[string]*Variable{"skipIt": {Name: "skipIt", Type: "Boolean!"}}
	ctx := newSelectionContext(sch, map[string]*language.FragmentDefinition{}, vars, false)
	fields, _, _, err := ctx.flattenSelectionSet(doc.Operations[0].SelectionSet, "Query")
	if err != nil {
		t.Fatalf("flatten: %v", err)
	}
	var id *Field
	for _, f := range fields[0].Fields {
		if f.FieldName == "id" {
			id = f
		}
	}
	if id == nil || len(id.Conditions) != 1 || !id.Conditions[0].Inverted || id.Conditions[0].VariableName != "skipIt" {
		t.Fatalf("expected inverted skip condition on id, got %#v", id)
	}
}
