// Package schema holds the reduced, in-memory representation of an upstream
// GraphQL schema that the bridge understands: scalars, enums, objects, input
// objects, and the query/mutation root fields. It intentionally drops
// unions, interfaces, and subscriptions.
package schema

import "fmt"

// TypeRefKind tags the variant of a TypeRef.
type TypeRefKind int

const (
	// KindNamed references a type by name, e.g. "String" or "User".
	KindNamed TypeRefKind = iota
	// KindList wraps another TypeRef in a GraphQL list.
	KindList
	// KindNonNull wraps another TypeRef marking it non-nullable.
	KindNonNull
)

// TypeRef is the recursive Named | List | NonNull sum over GraphQL type
// references. A doubly-nested NonNull(NonNull(t)) is illegal and is
// collapsed at construction time by NonNullOf.
type TypeRef struct {
	Kind TypeRefKind
	Name string   // valid when Kind == KindNamed
	Of   *TypeRef // valid when Kind == KindList or KindNonNull
}

// NamedTypeRef builds a Named type reference.
func NamedTypeRef(name string) *TypeRef {
	return &TypeRef{Kind: KindNamed, Name: name}
}

// ListOf builds a List type reference wrapping inner.
func ListOf(inner *TypeRef) *TypeRef {
	return &TypeRef{Kind: KindList, Of: inner}
}

// NonNullOf builds a NonNull type reference wrapping inner, collapsing an
// illegal NonNull(NonNull(t)) down to a single NonNull(t).
func NonNullOf(inner *TypeRef) *TypeRef {
	if inner != nil && inner.Kind == KindNonNull {
		return inner
	}
	return &TypeRef{Kind: KindNonNull, Of: inner}
}

// UnwrapName returns the Named type name at the bottom of any nesting of
// List/NonNull wrappers, or "" if the reference is malformed.
func (t *TypeRef) UnwrapName() string {
	for t != nil {
		switch t.Kind {
		case KindNamed:
			return t.Name
		case KindList, KindNonNull:
			t = t.Of
		}
	}
	return ""
}

// IsNonNull reports whether the top-level wrapper is NonNull.
func (t *TypeRef) IsNonNull() bool {
	return t != nil && t.Kind == KindNonNull
}

func (t *TypeRef) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case KindNamed:
		return t.Name
	case KindList:
		return fmt.Sprintf("[%s]", t.Of)
	case KindNonNull:
		return fmt.Sprintf("%s!", t.Of)
	default:
		return "<invalid>"
	}
}

// ArgumentDefinition is the declared shape of one field argument.
type ArgumentDefinition struct {
	Type        *TypeRef
	Description string
}

// FieldDefinition is a field on an Object, Input Object, or root type.
type FieldDefinition struct {
	Type        *TypeRef
	Arguments   map[string]*ArgumentDefinition
	Description string
}

// InputFieldDefinition is a field on an Input Object; input fields carry no
// arguments of their own.
type InputFieldDefinition struct {
	Type        *TypeRef
	Description string
}

// EnumValue is one member of an Enum Type Definition.
type EnumValue struct {
	Name        string
	Description string
}

// TypeDefKind tags the variant of a TypeDefinition.
type TypeDefKind int

const (
	TypeKindScalar TypeDefKind = iota
	TypeKindEnum
	TypeKindObject
	TypeKindInputObject
)

// TypeDefinition is one named type from the upstream schema, reduced to the
// subset the bridge understands. Unions and interfaces are dropped during
// ingestion and never appear here.
type TypeDefinition struct {
	Kind        TypeDefKind
	Name        string
	Description string

	// Valid when Kind == TypeKindEnum. Order is preserved from the SDL
	// declaration, not re-sorted.
	EnumValues []EnumValue

	// Valid when Kind == TypeKindObject.
	Fields map[string]*FieldDefinition

	// Valid when Kind == TypeKindInputObject.
	InputFields map[string]*InputFieldDefinition
}

// Model is the immutable, reduced schema built once at startup from the
// upstream SDL. It is safe for concurrent read access; nothing mutates it
// after construction.
type Model struct {
	QueryTypeName    string // "" if the upstream has no query root
	MutationTypeName string // "" if the upstream has no mutation root

	// QueryFields maps root query field name -> Field Definition (functions).
	QueryFields map[string]*FieldDefinition
	// QueryFieldOrder preserves the SDL declaration order of QueryFields, so
	// that the NDC projection (ndcschema.Project) can emit functions in the
	// same order the upstream declared them, rather than map iteration order.
	QueryFieldOrder []string

	// MutationFields maps root mutation field name -> Field Definition (procedures).
	MutationFields map[string]*FieldDefinition
	// MutationFieldOrder preserves SDL declaration order, mirroring QueryFieldOrder.
	MutationFieldOrder []string

	// Types maps type name -> Type Definition. The query/mutation/subscription
	// root object types themselves are never present in this map.
	Types map[string]*TypeDefinition
}

// LookupObject returns the Object or Input Object type definition called
// name, or nil if there is none or it is not an object-shaped type.
func (m *Model) LookupObject(name string) *TypeDefinition {
	td, ok := m.Types[name]
	if !ok {
		return nil
	}
	if td.Kind != TypeKindObject && td.Kind != TypeKindInputObject {
		return nil
	}
	return td
}
