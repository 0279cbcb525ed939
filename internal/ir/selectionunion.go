package ir

import "fmt"

// mergeField folds incoming into fields, keyed by response name. A second
// selection under the same response name is only legal when it names the
// same underlying field with the same declared type and identical
// arguments; anything else is a response-key conflict and aborts the build.
func mergeField(fields []*Field, incoming *Field) ([]*Field, error) {
	for _, existing := range fields {
		if existing.ResponseName != incoming.ResponseName {
			continue
		}
		if err := conflictCheck(existing, incoming); err != nil {
			return nil, err
		}
		merged, err := mergeFields(existing.Fields, incoming.Fields)
		if err != nil {
			return nil, err
		}
		existing.Fields = merged
		existing.InlineFragments = mergeInlineFragments(existing.InlineFragments, incoming.InlineFragments)
		existing.FragmentSpreads = mergeStrings(existing.FragmentSpreads, incoming.FragmentSpreads)
		return fields, nil
	}
	return append(fields, incoming), nil
}

// mergeFields unions two already-flattened field lists produced at the same
// selection level (e.g. from two arms of a same-type inline fragment merge).
func mergeFields(a, b []*Field) ([]*Field, error) {
	var err error
	for _, f := range b {
		a, err = mergeField(a, f)
		if err != nil {
			return nil, err
		}
	}
	return a, nil
}

func conflictCheck(existing, incoming *Field) error {
	if existing.FieldName != incoming.FieldName {
		return newGraphQLParseException(
			"Fields %q and %q are both aliased to %q but reference different fields",
			existing.FieldName, incoming.FieldName, existing.ResponseName)
	}
	if existing.Type != incoming.Type {
		return newGraphQLParseException(
			"Field %q has conflicting types %q and %q across merged selections",
			existing.ResponseName, existing.Type, incoming.Type)
	}
	if !argumentsEqual(existing.Arguments, incoming.Arguments) {
		return newGraphQLParseException(
			"Field %q is selected twice with different arguments", existing.ResponseName)
	}
	return nil
}

func argumentsEqual(a, b []*Argument) bool {
	if len(a) != len(b) {
		return false
	}
	byName := make(map[string]*Argument, len(a))
	for _, arg := range a {
		byName[arg.Name] = arg
	}
	for _, arg := range b {
		other, ok := byName[arg.Name]
		if !ok || other.VariableName != arg.VariableName || fmt.Sprint(other.Value) != fmt.Sprint(arg.Value) {
			return false
		}
	}
	return true
}

// mergeInlineFragments unions two inline-fragment lists keyed by type
// condition, recursively unioning the fields each side contributed.
func mergeInlineFragments(a, b []*InlineFragment) []*InlineFragment {
	for _, incoming := range b {
		merged := false
		for _, existing := range a {
			if existing.TypeCondition != incoming.TypeCondition {
				continue
			}
			existing.Fields, _ = mergeFields(existing.Fields, incoming.Fields)
			existing.InlineFragments = mergeInlineFragments(existing.InlineFragments, incoming.InlineFragments)
			existing.FragmentSpreads = mergeStrings(existing.FragmentSpreads, incoming.FragmentSpreads)
			merged = true
			break
		}
		if !merged {
			a = append(a, incoming)
		}
	}
	return a
}
