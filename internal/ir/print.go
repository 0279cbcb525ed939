package ir

import (
	"fmt"
	"strings"

	language "github.com/hzsweers/apollo-android/internal/language"
)

// printOperationSource re-serializes a parsed operation definition back into
// GraphQL text. sourceWithFragments needs the operation's own source
// concatenated with the fragments it spreads; re-printing from the AST
// avoids depending on exact byte offsets into the original file, which the
// parser does not expose for a single definition inside a multi-definition
// document.
func printOperationSource(op *language.OperationDefinition) string {
	var b strings.Builder
	b.WriteString(string(op.Operation))
	if op.Name != "" {
		b.WriteString(" ")
		b.WriteString(op.Name)
	}
	if len(op.VariableDefinitions) > 0 {
		b.WriteString("(")
		for i, v := range op.VariableDefinitions {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "$%s: %s", v.Variable, v.Type.String())
			if v.DefaultValue != nil {
				fmt.Fprintf(&b, " = %s", printValue(v.DefaultValue))
			}
		}
		b.WriteString(")")
	}
	b.WriteString(" ")
	printSelectionSet(&b, op.SelectionSet, 0)
	return b.String()
}

func printFragmentSource(f *language.FragmentDefinition) string {
	var b strings.Builder
	fmt.Fprintf(&b, "fragment %s on %s ", f.Name, f.TypeCondition)
	printSelectionSet(&b, f.SelectionSet, 0)
	return b.String()
}

func printSelectionSet(b *strings.Builder, set language.SelectionSet, indent int) {
	pad := strings.Repeat("  ", indent)
	childPad := strings.Repeat("  ", indent+1)
	b.WriteString("{\n")
	for _, sel := range set {
		switch s := sel.(type) {
		case *language.Field:
			b.WriteString(childPad)
			if s.Alias != "" && s.Alias != s.Name {
				fmt.Fprintf(b, "%s: %s", s.Alias, s.Name)
			} else {
				b.WriteString(s.Name)
			}
			if len(s.Arguments) > 0 {
				b.WriteString("(")
				for i, a := range s.Arguments {
					if i > 0 {
						b.WriteString(", ")
					}
					fmt.Fprintf(b, "%s: %s", a.Name, printValue(a.Value))
				}
				b.WriteString(")")
			}
			printDirectives(b, s.Directives)
			if len(s.SelectionSet) > 0 {
				b.WriteString(" ")
				printSelectionSet(b, s.SelectionSet, indent+1)
			} else {
				b.WriteString("\n")
			}
		case *language.InlineFragment:
			b.WriteString(childPad)
			b.WriteString("...")
			if s.TypeCondition != "" {
				fmt.Fprintf(b, " on %s", s.TypeCondition)
			}
			printDirectives(b, s.Directives)
			b.WriteString(" ")
			printSelectionSet(b, s.SelectionSet, indent+1)
		case *language.FragmentSpread:
			b.WriteString(childPad)
			fmt.Fprintf(b, "...%s", s.Name)
			printDirectives(b, s.Directives)
			b.WriteString("\n")
		}
	}
	b.WriteString(pad)
	b.WriteString("}\n")
}

func printDirectives(b *strings.Builder, directives language.DirectiveList) {
	for _, d := range directives {
		fmt.Fprintf(b, " @%s", d.Name)
		if len(d.Arguments) > 0 {
			b.WriteString("(")
			for i, a := range d.Arguments {
				if i > 0 {
					b.WriteString(", ")
				}
				fmt.Fprintf(b, "%s: %s", a.Name, printValue(a.Value))
			}
			b.WriteString(")")
		}
	}
}

func printValue(v *language.Value) string {
	switch v.Kind {
	case language.Variable:
		return "$" + v.Raw
	case language.StringValue, language.BlockValue:
		return fmt.Sprintf("%q", v.Raw)
	case language.ListValue:
		parts := make([]string, len(v.Children))
		for i, c := range v.Children {
			parts[i] = printValue(c.Value)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case language.ObjectValue:
		parts := make([]string, len(v.Children))
		for i, c := range v.Children {
			parts[i] = fmt.Sprintf("%s: %s", c.Name, printValue(c.Value))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return v.Raw
	}
}
