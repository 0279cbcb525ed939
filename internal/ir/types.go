package ir

import "github.com/hzsweers/apollo-android/internal/schema"

// CodeGenerationIR is the immutable output of Build: every operation and
// fragment declared across the input documents, flattened and resolved
// against a schema, plus the transitive closure of schema types they touch.
// Downstream code generation consumes this value and nothing else; it never
// re-reads the source documents.
type CodeGenerationIR struct {
	Operations []*Operation       `json:"operations"`
	Fragments  []*Fragment        `json:"fragments"`
	TypesUsed  []*TypeDeclaration `json:"typesUsed"`
}

// Operation is a single named query, mutation or subscription with its
// selection set fully flattened and its fragment spreads resolved.
type Operation struct {
	Name                string            `json:"name"`
	OperationType       string            `json:"operationType"` // "query" | "mutation" | "subscription"
	OperationID         string            `json:"operationId"`
	Filepath            string            `json:"filePath"`
	Source              string            `json:"source"`
	SourceWithFragments string            `json:"sourceWithFragments"`
	Variables           []*Variable       `json:"variables,omitempty"`
	Fields              []*Field          `json:"fields"`
	InlineFragments     []*InlineFragment `json:"inlineFragments,omitempty"`
	FragmentSpreads     []string          `json:"fragmentSpreads,omitempty"`
	FragmentsReferenced []string          `json:"fragmentsReferenced,omitempty"`
}

// Fragment is a named fragment definition with its own selection set
// flattened the same way an operation's is.
type Fragment struct {
	Name                string            `json:"name"`
	Filepath            string            `json:"filePath"`
	TypeCondition       string            `json:"typeCondition"`
	PossibleTypes       []string          `json:"possibleTypes"`
	Source              string            `json:"source"`
	SourceWithFragments string            `json:"sourceWithFragments"`
	Variables           []*Variable       `json:"variables,omitempty"`
	Fields              []*Field          `json:"fields"`
	InlineFragments     []*InlineFragment `json:"inlineFragments,omitempty"`
	FragmentSpreads     []string          `json:"fragmentSpreads,omitempty"`
	FragmentsReferenced []string          `json:"fragmentsReferenced,omitempty"`
}

// Variable is an operation-level $variable declaration.
type Variable struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	DefaultValue any    `json:"defaultValue,omitempty"`
}

// Argument is a single field argument, already converted to a literal value
// or a reference to one of the enclosing operation's variables.
type Argument struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	Value        any    `json:"value,omitempty"`
	VariableName string `json:"variableName,omitempty"`
}

// Condition is a boolean @skip/@include directive attached to a field,
// inline fragment or fragment spread.
type Condition struct {
	VariableName string `json:"variableName,omitempty"`
	BooleanValue *bool  `json:"booleanValue,omitempty"`
	Inverted     bool   `json:"inverted"` // true for @skip, false for @include
}

// Field is a single selected field after flattening: same-type inline
// fragments have been merged into it, and a synthetic __typename sibling has
// been injected into any non-empty object-typed selection.
type Field struct {
	ResponseName    string            `json:"responseName"`
	FieldName       string            `json:"fieldName"`
	Type            string            `json:"type"`
	Description     string            `json:"description,omitempty"`
	IsDeprecated    bool              `json:"isDeprecated,omitempty"`
	Arguments       []*Argument       `json:"arguments,omitempty"`
	Conditions      []*Condition      `json:"conditions,omitempty"`
	Fields          []*Field          `json:"fields,omitempty"`
	InlineFragments []*InlineFragment `json:"inlineFragments,omitempty"`
	FragmentSpreads []string          `json:"fragmentSpreads,omitempty"`
}

// InlineFragment holds the selections that apply only when the runtime type
// of the enclosing field differs from its declared type — typically a
// concrete member of an interface or union that was not merged into the
// parent selection because its type condition does not match the parent's.
type InlineFragment struct {
	TypeCondition   string            `json:"typeCondition"`
	PossibleTypes   []string          `json:"possibleTypes"`
	Conditions      []*Condition      `json:"conditions,omitempty"`
	Fields          []*Field          `json:"fields"`
	InlineFragments []*InlineFragment `json:"inlineFragments,omitempty"`
	FragmentSpreads []string          `json:"fragmentSpreads,omitempty"`
}

// TypeDeclaration describes one schema type reachable from the operations
// and fragments being compiled — the subset of the schema a code generator
// actually needs to emit types for.
type TypeDeclaration struct {
	Name        string                 `json:"name"`
	Kind        schema.TypeKind        `json:"kind"`
	Description string                 `json:"description,omitempty"`
	EnumValues  []*TypeDeclEnumValue   `json:"enumValues,omitempty"`
	InputFields []*TypeDeclInputField  `json:"inputFields,omitempty"`
}

// TypeDeclEnumValue mirrors schema.EnumValue for the subset of enums that
// are actually used.
type TypeDeclEnumValue struct {
	Name         string `json:"name"`
	Description  string `json:"description,omitempty"`
	IsDeprecated bool   `json:"isDeprecated,omitempty"`
}

// TypeDeclInputField mirrors schema.InputValue for the fields of an input
// object that is actually used, expanded one level deep so a code generator
// can emit a concrete struct without re-querying the schema.
type TypeDeclInputField struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	DefaultValue any    `json:"defaultValue,omitempty"`
}
