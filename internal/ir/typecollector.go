package ir

import (
	"sort"
	"strings"

	"github.com/hzsweers/apollo-android/internal/schema"
)

// collectTypesUsed derives the transitive closure of custom scalar, enum and
// input-object types reachable from operations and fragments: every field's
// return type, every argument's declared type, and every variable's
// declared type, expanded through input-object fields until no new type
// name is discovered. Object, interface and union types are deliberately
// excluded — their shape is already fully described by the flattened Field
// tree itself, so a code generator never needs a separate declaration for
// them.
func collectTypesUsed(sch *schema.Schema, operations []*Operation, fragments []*Fragment) []*TypeDeclaration {
	seed := make(map[string]bool)
	for _, op := range operations {
		for _, v := range op.Variables {
			seed[unwrapTypeName(v.Type)] = true
		}
		collectFieldTypes(op.Fields, seed)
		collectInlineFragmentTypes(op.InlineFragments, seed)
	}
	for _, f := range fragments {
		for _, v := range f.Variables {
			seed[unwrapTypeName(v.Type)] = true
		}
		collectFieldTypes(f.Fields, seed)
		collectInlineFragmentTypes(f.InlineFragments, seed)
	}

	queue := make([]string, 0, len(seed))
	for name := range seed {
		queue = append(queue, name)
	}
	sort.Strings(queue)

	visited := make(map[string]bool)
	var decls []*TypeDeclaration

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if visited[name] || name == "" || schema.IsBuiltinScalar(name) {
			continue
		}
		visited[name] = true

		t, ok := sch.GetType(name)
		if !ok {
			continue
		}
		switch t.Kind {
		case schema.TypeKindScalar:
			decls = append(decls, &TypeDeclaration{Name: t.Name, Kind: t.Kind, Description: t.Description})
		case schema.TypeKindEnum:
			decl := &TypeDeclaration{Name: t.Name, Kind: t.Kind, Description: t.Description}
			for _, ev := range t.EnumValues {
				decl.EnumValues = append(decl.EnumValues, &TypeDeclEnumValue{
					Name: ev.Name, Description: ev.Description, IsDeprecated: ev.IsDeprecated,
				})
			}
			decls = append(decls, decl)
		case schema.TypeKindInputObject:
			decl := &TypeDeclaration{Name: t.Name, Kind: t.Kind, Description: t.Description}
			for _, f := range t.InputFields {
				fieldTypeName := f.Type.GetNamedType()
				if !visited[fieldTypeName] {
					queue = append(queue, fieldTypeName)
				}
				decl.InputFields = append(decl.InputFields, &TypeDeclInputField{
					Name: f.Name, Type: f.Type.String(), DefaultValue: f.DefaultValue,
				})
			}
			decls = append(decls, decl)
		default:
			// OBJECT/INTERFACE/UNION, reached through the return types of
			// composite fields: skipped without a declaration and without
			// expanding their fields.
		}
	}

	sort.Slice(decls, func(i, j int) bool { return decls[i].Name < decls[j].Name })
	return decls
}

func collectFieldTypes(fields []*Field, seed map[string]bool) {
	for _, f := range fields {
		seed[unwrapTypeName(f.Type)] = true
		for _, a := range f.Arguments {
			seed[unwrapTypeName(a.Type)] = true
		}
		collectFieldTypes(f.Fields, seed)
		collectInlineFragmentTypes(f.InlineFragments, seed)
	}
}

func collectInlineFragmentTypes(inlines []*InlineFragment, seed map[string]bool) {
	for _, inl := range inlines {
		collectFieldTypes(inl.Fields, seed)
		collectInlineFragmentTypes(inl.InlineFragments, seed)
	}
}

// unwrapTypeName strips List/NonNull SDL wrapping ("[String!]!" -> "String")
// from a rendered type string.
func unwrapTypeName(t string) string {
	return strings.Trim(t, "[]!")
}
