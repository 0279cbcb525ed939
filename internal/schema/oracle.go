package schema

// NewSchema constructs an empty Schema ready to be populated by a builder
// (BuildFromSDL) or by a caller that already has an introspection result decoded.
func NewSchema(description string) *Schema {
	return &Schema{
		Types:       make(map[string]*Type),
		Directives:  make(map[string]*Directive),
		Description: description,
	}
}

func (s *Schema) SetQueryType(name string) *Schema {
	s.QueryType = name
	return s
}

func (s *Schema) SetMutationType(name string) *Schema {
	s.MutationType = name
	return s
}

func (s *Schema) SetSubscriptionType(name string) *Schema {
	s.SubscriptionType = name
	return s
}

func (s *Schema) AddType(t *Type) *Schema {
	s.Types[t.Name] = t
	return s
}

func (s *Schema) AddDirective(d *Directive) *Schema {
	s.Directives[d.Name] = d
	return s
}

// GetType looks up a named type. The ok result distinguishes "not found" from a
// nil-valued entry, matching the total/partial lookup split the oracle contract needs.
func (s *Schema) GetType(name string) (*Type, bool) {
	t, ok := s.Types[name]
	return t, ok
}

// GetField looks up a field declared directly on an OBJECT or INTERFACE type.
// UNION types never carry fields of their own; callers asking for a field on one
// always get ok=false, matching the GraphQL rule that only introspection fields
// may be selected there.
func (s *Schema) GetField(typeName, fieldName string) (*Field, bool) {
	t, ok := s.Types[typeName]
	if !ok {
		return nil, false
	}
	for _, f := range t.Fields {
		if f.Name == fieldName {
			return f, true
		}
	}
	return nil, false
}

// PossibleTypes returns the concrete object type names a selection against typeName
// may resolve to: the type itself for OBJECT, or its declared possible types for
// INTERFACE and UNION.
func (s *Schema) PossibleTypes(typeName string) []string {
	t, ok := s.Types[typeName]
	if !ok {
		return nil
	}
	switch t.Kind {
	case TypeKindInterface, TypeKindUnion:
		return t.PossibleTypes
	default:
		return []string{t.Name}
	}
}

// builtinScalarNames are the scalars every GraphQL schema carries implicitly;
// they are never emitted as TypeDeclaration records.
var builtinScalarNames = map[string]bool{
	"Int": true, "Float": true, "String": true, "Boolean": true, "ID": true,
}

// IsBuiltinScalar reports whether name is one of the five spec-defined scalars.
func IsBuiltinScalar(name string) bool { return builtinScalarNames[name] }

func NewType(name string, kind TypeKind, description string) *Type {
	return &Type{Name: name, Kind: kind, Description: description}
}

func (t *Type) AddField(f *Field) *Type {
	t.Fields = append(t.Fields, f)
	return t
}

func (t *Type) AddInterface(name string) *Type {
	t.Interfaces = append(t.Interfaces, name)
	return t
}

func (t *Type) AddEnumValue(v *EnumValue) *Type {
	t.EnumValues = append(t.EnumValues, v)
	return t
}

func (t *Type) AddInputField(v *InputValue) *Type {
	t.InputFields = append(t.InputFields, v)
	return t
}

func (t *Type) AddPossibleType(name string) *Type {
	t.PossibleTypes = append(t.PossibleTypes, name)
	return t
}

func NewField(name, description string, t *TypeRef) *Field {
	return &Field{Name: name, Description: description, Type: t}
}

func (f *Field) AddArgument(v *InputValue) *Field {
	f.Arguments = append(f.Arguments, v)
	return f
}

func (f *Field) Deprecate(reason string) *Field {
	f.IsDeprecated = true
	f.DeprecationReason = reason
	return f
}

func NewInputValue(name, description string, t *TypeRef) *InputValue {
	return &InputValue{Name: name, Description: description, Type: t}
}

func (v *InputValue) SetDefault(value any) *InputValue {
	v.DefaultValue = value
	return v
}

func (v *InputValue) Deprecate(reason string) *InputValue {
	v.IsDeprecated = true
	v.DeprecationReason = reason
	return v
}

func NewEnumValue(name, description string) *EnumValue {
	return &EnumValue{Name: name, Description: description}
}

func (v *EnumValue) Deprecate(reason string) *EnumValue {
	v.IsDeprecated = true
	v.DeprecationReason = reason
	return v
}

func NewDirective(name, description string) *Directive {
	return &Directive{Name: name, Description: description}
}

func (d *Directive) SetRepeatable(repeatable bool) *Directive {
	d.IsRepeatable = repeatable
	return d
}

func (d *Directive) AddArgument(v *InputValue) *Directive {
	d.Arguments = append(d.Arguments, v)
	return d
}
