package ir

import (
	"fmt"

	language "github.com/hzsweers/apollo-android/internal/language"
	"github.com/hzsweers/apollo-android/internal/schema"
)

// selectionContext carries everything selection flattening needs beyond the
// selection set itself: the schema oracle to resolve field/argument
// definitions, every fragment definition known across the whole document
// set (populated by the linker before any operation or fragment is
// flattened), and the variable registry of whichever operation or fragment
// is currently being built.
type selectionContext struct {
	schema         *schema.Schema
	fragments      map[string]*language.FragmentDefinition
	variables      map[string]*Variable
	inferVariables bool // true while flattening a fragment: unseen $vars are inferred, not rejected
	spreading      map[string]bool
	referenced     map[string]bool // transitive fragment names touched while flattening
}

func newSelectionContext(sch *schema.Schema, fragments map[string]*language.FragmentDefinition, variables map[string]*Variable, inferVariables bool) *selectionContext {
	return &selectionContext{
		schema:         sch,
		fragments:      fragments,
		variables:      variables,
		inferVariables: inferVariables,
		spreading:      make(map[string]bool),
		referenced:     make(map[string]bool),
	}
}

// flattenSelectionSet walks set against parentTypeName and returns the
// merged fields, the differing-type inline fragments and the direct named
// fragment spreads found at this level.
func (c *selectionContext) flattenSelectionSet(set language.SelectionSet, parentTypeName string) ([]*Field, []*InlineFragment, []string, error) {
	var fields []*Field
	var inlines []*InlineFragment
	var spreads []string

	for _, sel := range set {
		switch s := sel.(type) {
		case *language.Field:
			f, err := c.buildField(s, parentTypeName)
			if err != nil {
				return nil, nil, nil, err
			}
			fields, err = mergeField(fields, f)
			if err != nil {
				return nil, nil, nil, err
			}

		case *language.InlineFragment:
			typeCond := s.TypeCondition
			if typeCond == "" || typeCond == parentTypeName {
				conds, err := c.parseConditions(s.Directives)
				if err != nil {
					return nil, nil, nil, err
				}
				childFields, childInlines, childSpreads, err := c.flattenSelectionSet(s.SelectionSet, parentTypeName)
				if err != nil {
					return nil, nil, nil, err
				}
				applyConditions(childFields, conds)
				fields, err = mergeFields(fields, childFields)
				if err != nil {
					return nil, nil, nil, err
				}
				inlines = mergeInlineFragments(inlines, childInlines)
				spreads = mergeStrings(spreads, childSpreads)
				continue
			}
			conds, err := c.parseConditions(s.Directives)
			if err != nil {
				return nil, nil, nil, err
			}
			childFields, childInlines, childSpreads, err := c.flattenSelectionSet(s.SelectionSet, typeCond)
			if err != nil {
				return nil, nil, nil, err
			}
			childFields = injectTypename(c.schema, typeCond, childFields)
			inlines = mergeInlineFragments(inlines, []*InlineFragment{{
				TypeCondition:   typeCond,
				PossibleTypes:   c.schema.PossibleTypes(typeCond),
				Conditions:      conds,
				Fields:          childFields,
				InlineFragments: childInlines,
				FragmentSpreads: childSpreads,
			}})

		case *language.FragmentSpread:
			def, ok := c.fragments[s.Name]
			if !ok {
				return nil, nil, nil, newGraphQLParseException("Unresolved fragment reference %q", s.Name)
			}
			if c.spreading[s.Name] {
				return nil, nil, nil, newGraphQLParseException("Fragment %q spreads itself", s.Name)
			}
			c.spreading[s.Name] = true
			c.referenced[s.Name] = true

			conds, err := c.parseConditions(s.Directives)
			if err != nil {
				delete(c.spreading, s.Name)
				return nil, nil, nil, err
			}
			spreadCtx := &selectionContext{
				schema:         c.schema,
				fragments:      c.fragments,
				variables:      c.variables,
				inferVariables: c.inferVariables,
				spreading:      c.spreading,
				referenced:     c.referenced,
			}
			childFields, childInlines, childSpreads, err := spreadCtx.flattenSelectionSet(def.SelectionSet, def.TypeCondition)
			delete(c.spreading, s.Name)
			if err != nil {
				return nil, nil, nil, err
			}
			applyConditions(childFields, conds)

			if def.TypeCondition == "" || def.TypeCondition == parentTypeName {
				fields, err = mergeFields(fields, childFields)
				if err != nil {
					return nil, nil, nil, err
				}
				inlines = mergeInlineFragments(inlines, childInlines)
				spreads = mergeStrings(spreads, childSpreads)
			} else {
				inlines = mergeInlineFragments(inlines, []*InlineFragment{{
					TypeCondition:   def.TypeCondition,
					PossibleTypes:   c.schema.PossibleTypes(def.TypeCondition),
					Conditions:      conds,
					Fields:          injectTypename(c.schema, def.TypeCondition, childFields),
					InlineFragments: childInlines,
					FragmentSpreads: childSpreads,
				}})
			}
			spreads = mergeStrings(spreads, []string{s.Name})
		}
	}

	return fields, inlines, spreads, nil
}

// buildField resolves a single selected field against parentTypeName,
// converts its arguments and directive conditions, and recursively flattens
// its own selection set, injecting a synthetic __typename sibling when the
// child type is a composite type and the selection is non-empty.
func (c *selectionContext) buildField(f *language.Field, parentTypeName string) (*Field, error) {
	if f.Name == "__typename" {
		conds, err := c.parseConditions(f.Directives)
		if err != nil {
			return nil, err
		}
		return &Field{
			ResponseName: responseName(f),
			FieldName:    "__typename",
			Type:         "String!",
			Conditions:   conds,
		}, nil
	}

	fieldDef, ok := c.schema.GetField(parentTypeName, f.Name)
	if !ok {
		return nil, newDocumentParseException(
			fmt.Sprintf("Field %q is not defined on type %q", f.Name, parentTypeName), f.Position)
	}

	args, err := buildArguments(f.Arguments, fieldDef.Arguments, c.variables, c.inferVariables)
	if err != nil {
		return nil, err
	}
	conds, err := c.parseConditions(f.Directives)
	if err != nil {
		return nil, err
	}

	out := &Field{
		ResponseName: responseName(f),
		FieldName:    f.Name,
		Type:         fieldDef.Type.String(),
		Description:  fieldDef.Description,
		IsDeprecated: fieldDef.IsDeprecated,
		Arguments:    args,
		Conditions:   conds,
	}

	if len(f.SelectionSet) == 0 {
		return out, nil
	}

	childType := fieldDef.Type.GetNamedType()
	childFields, childInlines, childSpreads, err := c.flattenSelectionSet(f.SelectionSet, childType)
	if err != nil {
		return nil, err
	}
	childFields = injectTypename(c.schema, childType, childFields)
	out.Fields = childFields
	out.InlineFragments = childInlines
	out.FragmentSpreads = childSpreads
	return out, nil
}

func responseName(f *language.Field) string {
	if f.Alias != "" {
		return f.Alias
	}
	return f.Name
}

// injectTypename prepends a synthetic __typename selection to a non-empty
// selection against a composite (object, interface or union) type, unless
// the selection already asked for it explicitly.
func injectTypename(sch *schema.Schema, typeName string, fields []*Field) []*Field {
	if len(fields) == 0 {
		return fields
	}
	t, ok := sch.GetType(typeName)
	if !ok {
		return fields
	}
	switch t.Kind {
	case schema.TypeKindObject, schema.TypeKindInterface, schema.TypeKindUnion:
	default:
		return fields
	}
	for _, f := range fields {
		if f.FieldName == "__typename" {
			return fields
		}
	}
	synthetic := &Field{ResponseName: "__typename", FieldName: "__typename", Type: "String!"}
	return append([]*Field{synthetic}, fields...)
}

// parseConditions converts @skip/@include directives into IR conditions.
// An "if" value that is a variable reference becomes a variable condition;
// any other literal becomes a boolean condition that is true only for the
// literal true (the literal's kind is not checked). Any other directive
// present is ignored, since arbitrary custom directives are outside this
// package's scope.
func (c *selectionContext) parseConditions(directives language.DirectiveList) ([]*Condition, error) {
	var conds []*Condition
	for _, d := range directives {
		var inverted bool
		switch d.Name {
		case "skip":
			inverted = true
		case "include":
			inverted = false
		default:
			continue
		}
		var ifArg *language.Argument
		for _, a := range d.Arguments {
			if a.Name == "if" {
				ifArg = a
			}
		}
		if ifArg == nil {
			return nil, newDocumentParseException(fmt.Sprintf("Directive @%s requires an \"if\" argument", d.Name), d.Position)
		}
		cond := &Condition{Inverted: inverted}
		if ifArg.Value.Kind == language.Variable {
			v, ok := c.variables[ifArg.Value.Raw]
			if !ok {
				if !c.inferVariables {
					return nil, newDocumentParseException(fmt.Sprintf("Variable %q is not defined", ifArg.Value.Raw), ifArg.Value.Position)
				}
				v = &Variable{Name: ifArg.Value.Raw, Type: "Boolean!"}
				c.variables[ifArg.Value.Raw] = v
			}
			cond.VariableName = v.Name
		} else {
			b := ifArg.Value.Raw == "true"
			cond.BooleanValue = &b
		}
		conds = append(conds, cond)
	}
	return conds, nil
}

func applyConditions(fields []*Field, conds []*Condition) {
	if len(conds) == 0 {
		return
	}
	for _, f := range fields {
		f.Conditions = append(append([]*Condition{}, conds...), f.Conditions...)
	}
}

func mergeStrings(existing, incoming []string) []string {
	seen := make(map[string]bool, len(existing))
	for _, s := range existing {
		seen[s] = true
	}
	for _, s := range incoming {
		if !seen[s] {
			existing = append(existing, s)
			seen[s] = true
		}
	}
	return existing
}
