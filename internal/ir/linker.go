package ir

import (
	"context"
	"fmt"
	"sort"

	language "github.com/hzsweers/apollo-android/internal/language"
	"github.com/hzsweers/apollo-android/internal/schema"
)

type parsedDocument struct {
	filePath string
	doc      *language.QueryDocument
}

// linker reads and parses every document Discovery reports, then correlates
// operation and fragment definitions across all of them: it rejects
// duplicate names, resolves every fragment spread transitively, and hands
// back the flattened Operation and Fragment records ready for the type
// collector.
type linker struct {
	schema *schema.Schema
}

func (l *linker) link(ctx context.Context, disc Discovery) ([]*Operation, []*Fragment, error) {
	metas, err := disc.ListMetadata(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list documents: %w", err)
	}
	sort.Slice(metas, func(i, j int) bool { return metas[i].FilePath < metas[j].FilePath })

	var parsed []*parsedDocument
	for _, m := range metas {
		content, err := disc.ReadDocument(ctx, m.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("read document %q: %w", m.FilePath, err)
		}
		doc, err := parseDocument(m.FilePath, content)
		if err != nil {
			return nil, nil, err
		}
		parsed = append(parsed, &parsedDocument{filePath: m.FilePath, doc: doc})
	}

	fragmentDefs := make(map[string]*language.FragmentDefinition)
	fragmentFiles := make(map[string]string)
	operationKeys := make(map[string]string) // qualifiedName -> file path, for duplicate detection

	for _, p := range parsed {
		for _, frag := range p.doc.Fragments {
			if existing, ok := fragmentFiles[frag.Name]; ok {
				return nil, nil, newGraphQLParseException(
					"Fragment %q is already defined in %q and cannot be redefined in %q", frag.Name, existing, p.filePath)
			}
			fragmentDefs[frag.Name] = frag
			fragmentFiles[frag.Name] = p.filePath
		}
	}
	for _, p := range parsed {
		for _, op := range p.doc.Operations {
			if op.Name == "" {
				return nil, nil, newDocumentParseException("Anonymous operations are not supported", op.Position)
			}
			key := qualifiedName(p.filePath, op.Name)
			if existing, ok := operationKeys[key]; ok {
				return nil, nil, newGraphQLParseException(
					"Operation %q is already defined in %q and cannot be redefined in %q", op.Name, existing, p.filePath)
			}
			operationKeys[key] = p.filePath
		}
	}

	// Undefined fragment references are caught lazily during flattening, but
	// checking them here first gives a document-wide error for the common
	// case of a typo'd spread that is never actually reached by any operation.
	for _, p := range parsed {
		for _, frag := range p.doc.Fragments {
			if err := checkFragmentSpreadsResolve(frag.SelectionSet, fragmentDefs); err != nil {
				return nil, nil, err
			}
		}
		for _, op := range p.doc.Operations {
			if err := checkFragmentSpreadsResolve(op.SelectionSet, fragmentDefs); err != nil {
				return nil, nil, err
			}
		}
	}

	fragments := make([]*Fragment, 0, len(fragmentDefs))
	fragmentByName := make(map[string]*Fragment, len(fragmentDefs))
	for _, p := range parsed {
		for _, def := range p.doc.Fragments {
			frag, err := l.buildFragment(def, p.filePath, fragmentDefs)
			if err != nil {
				return nil, nil, err
			}
			fragments = append(fragments, frag)
			fragmentByName[frag.Name] = frag
		}
	}
	sort.Slice(fragments, func(i, j int) bool { return fragments[i].Name < fragments[j].Name })

	var operations []*Operation
	for _, p := range parsed {
		for _, def := range p.doc.Operations {
			op, err := l.buildOperation(def, p.filePath, fragmentDefs, fragmentByName)
			if err != nil {
				return nil, nil, err
			}
			operations = append(operations, op)
		}
	}
	sort.Slice(operations, func(i, j int) bool { return operations[i].Name < operations[j].Name })

	return operations, fragments, nil
}

func (l *linker) buildOperation(def *language.OperationDefinition, filePath string, fragmentDefs map[string]*language.FragmentDefinition, fragmentByName map[string]*Fragment) (*Operation, error) {
	rootType, err := l.rootTypeFor(def.Operation)
	if err != nil {
		return nil, newDocumentParseException(err.Error(), def.Position)
	}

	variables := make(map[string]*Variable, len(def.VariableDefinitions))
	for _, v := range def.VariableDefinitions {
		variables[v.Variable] = &Variable{
			Name:         v.Variable,
			Type:         v.Type.String(),
			DefaultValue: defaultValueOf(v.DefaultValue),
		}
	}

	ctx := newSelectionContext(l.schema, fragmentDefs, variables, false)
	fields, inlines, spreads, err := ctx.flattenSelectionSet(def.SelectionSet, rootType)
	if err != nil {
		return nil, err
	}
	fields = injectTypename(l.schema, rootType, fields)

	referenced := transitiveFragmentRefs(spreads, fragmentByName, ctx.referenced)

	source := printOperationSource(def)
	op := &Operation{
		Name:                def.Name,
		OperationType:       string(def.Operation),
		OperationID:         qualifiedName(filePath, def.Name),
		Filepath:            filePath,
		Source:              source,
		SourceWithFragments: sourceWithFragments(source, def.SelectionSet, fragmentDefs),
		Variables:           sortedVariables(variables),
		Fields:              fields,
		InlineFragments:     inlines,
		FragmentSpreads:     spreads,
		FragmentsReferenced: referenced,
	}
	return op, nil
}

func (l *linker) buildFragment(def *language.FragmentDefinition, filePath string, fragmentDefs map[string]*language.FragmentDefinition) (*Fragment, error) {
	variables := make(map[string]*Variable)
	ctx := newSelectionContext(l.schema, fragmentDefs, variables, true)
	fields, inlines, spreads, err := ctx.flattenSelectionSet(def.SelectionSet, def.TypeCondition)
	if err != nil {
		return nil, err
	}
	fields = injectTypename(l.schema, def.TypeCondition, fields)

	source := printFragmentSource(def)
	frag := &Fragment{
		Name:                def.Name,
		Filepath:            filePath,
		TypeCondition:       def.TypeCondition,
		PossibleTypes:       l.schema.PossibleTypes(def.TypeCondition),
		Source:              source,
		SourceWithFragments: sourceWithFragments(source, def.SelectionSet, fragmentDefs),
		Variables:           sortedVariables(variables),
		Fields:              fields,
		InlineFragments:     inlines,
		FragmentSpreads:     spreads,
		FragmentsReferenced: sortedStrings(ctx.referenced),
	}
	return frag, nil
}

func (l *linker) rootTypeFor(op language.Operation) (string, error) {
	switch op {
	case language.Query:
		if l.schema.QueryType == "" {
			return "", fmt.Errorf("schema declares no query root type")
		}
		return l.schema.QueryType, nil
	case language.Mutation:
		if l.schema.MutationType == "" {
			return "", fmt.Errorf("schema declares no mutation root type")
		}
		return l.schema.MutationType, nil
	case language.Subscription:
		if l.schema.SubscriptionType == "" {
			return "", fmt.Errorf("schema declares no subscription root type")
		}
		return l.schema.SubscriptionType, nil
	default:
		return "", fmt.Errorf("unknown operation type %q", op)
	}
}

// sourceWithFragments concatenates a definition's own printed source with
// the printed source of every fragment spread anywhere in its own selection
// set (at the root, inside a field or inside an inline fragment), each once,
// in order of first appearance. A fragment spread only from inside one of
// those fragments is not itself expanded here.
func sourceWithFragments(own string, set language.SelectionSet, fragmentDefs map[string]*language.FragmentDefinition) string {
	src := own
	seen := make(map[string]bool)
	var walk func(language.SelectionSet)
	walk = func(set language.SelectionSet) {
		for _, sel := range set {
			switch s := sel.(type) {
			case *language.Field:
				walk(s.SelectionSet)
			case *language.InlineFragment:
				walk(s.SelectionSet)
			case *language.FragmentSpread:
				if def, ok := fragmentDefs[s.Name]; ok && !seen[s.Name] {
					seen[s.Name] = true
					src += "\n" + printFragmentSource(def)
				}
			}
		}
	}
	walk(set)
	return src
}

func transitiveFragmentRefs(direct []string, fragmentByName map[string]*Fragment, referenced map[string]bool) []string {
	all := make(map[string]bool, len(referenced))
	for name := range referenced {
		all[name] = true
	}
	for _, name := range direct {
		all[name] = true
	}
	return sortedStrings(all)
}

func sortedStrings(set map[string]bool) []string {
	var out []string
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func sortedVariables(vars map[string]*Variable) []*Variable {
	var out []*Variable
	for _, v := range vars {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// checkFragmentSpreadsResolve walks set looking only for fragment spreads,
// verifying each one names a fragment that exists somewhere in the compiled
// document set.
func checkFragmentSpreadsResolve(set language.SelectionSet, fragmentDefs map[string]*language.FragmentDefinition) error {
	for _, sel := range set {
		switch s := sel.(type) {
		case *language.Field:
			if err := checkFragmentSpreadsResolve(s.SelectionSet, fragmentDefs); err != nil {
				return err
			}
		case *language.InlineFragment:
			if err := checkFragmentSpreadsResolve(s.SelectionSet, fragmentDefs); err != nil {
				return err
			}
		case *language.FragmentSpread:
			if _, ok := fragmentDefs[s.Name]; !ok {
				return newDocumentParseException(fmt.Sprintf("Unresolved fragment reference %q", s.Name), s.Position)
			}
		}
	}
	return nil
}

func parseDocument(filePath, content string) (*language.QueryDocument, error) {
	doc, err := language.ParseQueryFile(filePath, content)
	if err == nil {
		return doc, nil
	}
	return nil, wrapParseError(filePath, content, err)
}
