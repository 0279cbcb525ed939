package schema

import (
	"fmt"
	"sort"

	language "github.com/hzsweers/apollo-android/internal/language"
)

// BuildFromSDL parses an SDL document and returns the Schema oracle it describes.
// It is the in-repo counterpart to loading a previously introspected schema: tests and
// the CLI use it to construct a Schema value from hand-written fixtures instead of a
// JSON introspection payload.
func BuildFromSDL(name, sdl string) (*Schema, error) {
	doc, err := language.ParseSchema(name, sdl)
	if err != nil {
		return nil, err
	}
	return buildFromDocument(doc)
}

func buildFromDocument(doc *language.SchemaDocument) (*Schema, error) {
	s := NewSchema("")
	s.AddType(stringType).AddType(intType).AddType(floatType).AddType(booleanType).AddType(idType)
	s.AddDirective(includeDirective).AddDirective(skipDirective)

	for _, def := range doc.Definitions {
		t, err := buildType(def)
		if err != nil {
			return nil, err
		}
		s.AddType(t)
	}
	for _, dir := range doc.Directives {
		s.AddDirective(buildDirectiveDef(dir))
	}

	if len(doc.Schema) > 0 {
		for _, opType := range doc.Schema[0].OperationTypes {
			switch opType.Operation {
			case language.Query:
				s.SetQueryType(opType.Type)
			case language.Mutation:
				s.SetMutationType(opType.Type)
			case language.Subscription:
				s.SetSubscriptionType(opType.Type)
			}
		}
	} else if q, ok := s.Types["Query"]; ok && q.Kind == TypeKindObject {
		s.SetQueryType("Query")
		if m, ok := s.Types["Mutation"]; ok && m.Kind == TypeKindObject {
			s.SetMutationType("Mutation")
		}
		if sub, ok := s.Types["Subscription"]; ok && sub.Kind == TypeKindObject {
			s.SetSubscriptionType("Subscription")
		}
	}

	populatePossibleTypes(s)
	return s, nil
}

func buildType(def *language.Definition) (*Type, error) {
	switch def.Kind {
	case language.Object:
		return buildObjectLike(def, TypeKindObject)
	case language.Interface:
		return buildObjectLike(def, TypeKindInterface)
	case language.Union:
		t := NewType(def.Name, TypeKindUnion, def.Description)
		for _, member := range def.Types {
			t.AddPossibleType(member)
		}
		return t, nil
	case language.Enum:
		t := NewType(def.Name, TypeKindEnum, def.Description)
		for _, v := range def.EnumValues {
			ev := NewEnumValue(v.Name, v.Description)
			if dep := deprecation(v.Directives); dep != nil {
				ev.Deprecate(*dep)
			}
			t.AddEnumValue(ev)
		}
		return t, nil
	case language.InputObject:
		t := NewType(def.Name, TypeKindInputObject, def.Description)
		for _, f := range def.Fields {
			iv := NewInputValue(f.Name, f.Description, buildTypeRef(f.Type)).SetDefault(defaultValueOf(f.DefaultValue))
			t.AddInputField(iv)
		}
		return t, nil
	case language.Scalar:
		return NewType(def.Name, TypeKindScalar, def.Description), nil
	default:
		return nil, fmt.Errorf("unsupported definition kind %q for type %q", def.Kind, def.Name)
	}
}

func buildObjectLike(def *language.Definition, kind TypeKind) (*Type, error) {
	t := NewType(def.Name, kind, def.Description)
	names := append([]string{}, def.Interfaces...)
	sort.Strings(names)
	for _, name := range names {
		t.AddInterface(name)
	}
	for _, f := range def.Fields {
		field := NewField(f.Name, f.Description, buildTypeRef(f.Type))
		if dep := deprecation(f.Directives); dep != nil {
			field.Deprecate(*dep)
		}
		for _, a := range f.Arguments {
			iv := NewInputValue(a.Name, a.Description, buildTypeRef(a.Type)).SetDefault(defaultValueOf(a.DefaultValue))
			field.AddArgument(iv)
		}
		t.AddField(field)
	}
	return t, nil
}

func buildDirectiveDef(dir *language.DirectiveDefinition) *Directive {
	d := NewDirective(dir.Name, dir.Description).SetRepeatable(dir.IsRepeatable)
	for _, loc := range dir.Locations {
		d.Locations = append(d.Locations, string(loc))
	}
	for _, a := range dir.Arguments {
		iv := NewInputValue(a.Name, a.Description, buildTypeRef(a.Type)).SetDefault(defaultValueOf(a.DefaultValue))
		d.AddArgument(iv)
	}
	return d
}

func buildTypeRef(t *language.Type) *TypeRef {
	if t.NonNull {
		inner := &language.Type{NamedType: t.NamedType, Elem: t.Elem, Position: t.Position}
		return NonNullType(buildTypeRef(inner))
	}
	if t.Elem != nil {
		return ListType(buildTypeRef(t.Elem))
	}
	return NamedType(t.NamedType)
}

func defaultValueOf(v *language.Value) any {
	if v == nil {
		return nil
	}
	val, err := v.Value(nil)
	if err != nil {
		return nil
	}
	return val
}

func deprecation(directives language.DirectiveList) *string {
	for _, d := range directives {
		if d.Name != "deprecated" {
			continue
		}
		reason := "No longer supported"
		for _, arg := range d.Arguments {
			if arg.Name == "reason" {
				if v, err := arg.Value.Value(nil); err == nil {
					if s, ok := v.(string); ok {
						reason = s
					}
				}
			}
		}
		return &reason
	}
	return nil
}

// populatePossibleTypes fills in PossibleTypes for every interface by scanning
// object types that declare it, mirroring what an introspection response precomputes.
func populatePossibleTypes(s *Schema) {
	names := make([]string, 0, len(s.Types))
	for name := range s.Types {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		t := s.Types[name]
		if t.Kind != TypeKindObject {
			continue
		}
		for _, ifaceName := range t.Interfaces {
			iface, ok := s.Types[ifaceName]
			if !ok || iface.Kind != TypeKindInterface {
				continue
			}
			iface.PossibleTypes = append(iface.PossibleTypes, t.Name)
		}
	}
}
