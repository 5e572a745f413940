// Package ndcschema projects a schema.Model into the NDC-facing schema
// response: scalar types, object types, functions, procedures, and (when
// header forwarding is enabled) synthesized {headers, response} wrapper
// types.
//
// The NDC wire shapes here are a narrow stand-in for
// github.com/hasura/ndc-sdk-go/schema's generated types (SchemaResponse,
// ScalarType, ObjectType, FunctionInfo, ProcedureInfo, Type); bridge.Connector
// is responsible for encoding these into the real SDK types at the NDC
// surface.
package ndcschema

// Type is the NDC-facing type reference: Named | Nullable | Array.
type Type struct {
	Kind    TypeKind
	Name    string // valid when Kind == TypeKindNamed
	Element *Type  // valid when Kind == TypeKindNullable or TypeKindArray
}

type TypeKind int

const (
	TypeKindNamed TypeKind = iota
	TypeKindNullable
	TypeKindArray
)

func NamedType(name string) *Type  { return &Type{Kind: TypeKindNamed, Name: name} }
func NullableOf(inner *Type) *Type { return &Type{Kind: TypeKindNullable, Element: inner} }
func ArrayOf(inner *Type) *Type    { return &Type{Kind: TypeKindArray, Element: inner} }

// ScalarType is a leaf NDC type. Representation is left as a free-form tag
// ("json", "enum", or "") since the bridge does not need the full NDC
// TypeRepresentation union.
type ScalarType struct {
	Representation string
	OneOf          []string // valid when Representation == "enum"
}

type ObjectField struct {
	Description string
	Type        *Type
}

type ObjectType struct {
	Description string
	Fields      map[string]ObjectField
}

type ArgumentInfo struct {
	Description string
	Type        *Type
}

type OperationInfo struct {
	Description string
	Arguments   map[string]ArgumentInfo
	ResultType  *Type
}

// SchemaResponse is the NDC /schema payload. Functions and Procedures are
// keyed by name for lookup; FunctionOrder and ProcedureOrder preserve the
// root types' field declaration order, which the wire encoding must keep
// because the NDC response carries them as arrays.
type SchemaResponse struct {
	ScalarTypes map[string]ScalarType
	ObjectTypes map[string]ObjectType
	Collections []string // always empty: the bridge exposes no collections, only functions/procedures

	Functions     map[string]OperationInfo
	FunctionOrder []string

	Procedures     map[string]OperationInfo
	ProcedureOrder []string
}
