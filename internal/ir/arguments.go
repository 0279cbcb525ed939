package ir

import (
	"fmt"
	"strings"

	language "github.com/hzsweers/apollo-android/internal/language"
	"github.com/hzsweers/apollo-android/internal/schema"
)

// buildArguments converts a parsed argument list into IR arguments, resolving
// each value against variables (the enclosing operation's declared
// variables, or a fragment's inferred ones) and rejecting a variable
// reference whose declared type is incompatible with the argument it is
// bound to. argDefs supplies the schema's declared type for each argument
// name, used both to stamp Argument.Type and, when inferVariables is true,
// to infer the type of a variable a fragment uses but never declares itself.
func buildArguments(list language.ArgumentList, argDefs []*schema.InputValue, variables map[string]*Variable, inferVariables bool) ([]*Argument, error) {
	if len(list) == 0 {
		return nil, nil
	}
	args := make([]*Argument, 0, len(list))
	for _, a := range list {
		var argDef *schema.InputValue
		for _, d := range argDefs {
			if d.Name == a.Name {
				argDef = d
				break
			}
		}
		if argDef == nil {
			return nil, newDocumentParseException(fmt.Sprintf("Unknown argument %q", a.Name), a.Position)
		}
		arg := &Argument{Name: a.Name, Type: argDef.Type.String()}

		if a.Value.Kind == language.Variable {
			v, ok := variables[a.Value.Raw]
			if !ok {
				if !inferVariables {
					return nil, newDocumentParseException(
						fmt.Sprintf("Variable %q is not defined", a.Value.Raw), a.Value.Position)
				}
				v = &Variable{Name: a.Value.Raw, Type: argDef.Type.String()}
				variables[a.Value.Raw] = v
			} else if !variableTypeCompatible(v.Type, argDef.Type.String()) {
				return nil, newDocumentParseException(
					fmt.Sprintf("Variable %q of type %q used in position expecting type %q", v.Name, v.Type, argDef.Type.String()),
					a.Value.Position)
			}
			arg.VariableName = v.Name
		} else {
			val, err := convertLiteral(a.Value)
			if err != nil {
				return nil, err
			}
			arg.Value = val
		}
		args = append(args, arg)
	}
	return args, nil
}

// convertLiteral converts a parsed literal into the plain Go value stored in
// the IR: numbers become float64, booleans bool, strings/enum names string,
// lists []any and input objects map[string]any. A variable referenced
// somewhere inside a list or object literal is preserved as its raw "$name"
// form since the IR has no slot for a nested variable reference.
func convertLiteral(v *language.Value) (any, error) {
	switch v.Kind {
	case language.Variable:
		return "$" + v.Raw, nil
	case language.IntValue, language.FloatValue:
		val, err := v.Value(nil)
		if err != nil {
			return nil, newDocumentParseException(err.Error(), v.Position)
		}
		switch n := val.(type) {
		case int64:
			return float64(n), nil
		default:
			return val, nil
		}
	case language.BooleanValue:
		return v.Raw == "true", nil
	case language.NullValue:
		return nil, nil
	case language.StringValue, language.BlockValue, language.EnumValue:
		return v.Raw, nil
	case language.ListValue:
		result := make([]any, 0, len(v.Children))
		for _, c := range v.Children {
			elem, err := convertLiteral(c.Value)
			if err != nil {
				return nil, err
			}
			result = append(result, elem)
		}
		return result, nil
	case language.ObjectValue:
		result := make(map[string]any, len(v.Children))
		for _, c := range v.Children {
			elem, err := convertLiteral(c.Value)
			if err != nil {
				return nil, err
			}
			result[c.Name] = elem
		}
		return result, nil
	default:
		return nil, newDocumentParseException(fmt.Sprintf("unsupported value kind %v", v.Kind), v.Position)
	}
}

// defaultValueOf converts a variable declaration's default value literal,
// discarding (as nil) anything that fails to convert rather than aborting
// the whole build over a cosmetic default.
func defaultValueOf(v *language.Value) any {
	if v == nil {
		return nil
	}
	val, err := convertLiteral(v)
	if err != nil {
		return nil
	}
	return val
}

// variableTypeCompatible reports whether a variable declared with type
// varType may be passed as an argument whose declared type is argType.
// The two must match exactly, or match after stripping one trailing "!"
// from the variable's type — a nullable variable is never accepted for a
// non-null argument, but a non-null variable satisfies a nullable argument.
func variableTypeCompatible(varType, argType string) bool {
	if varType == argType {
		return true
	}
	return strings.TrimSuffix(varType, "!") == argType
}
