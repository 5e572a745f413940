package querybuilder

// This file holds the ephemeral, per-call NDC request/response entities.
// They are a narrow, self-contained model of the NDC wire
// protocol, not the full github.com/hasura/ndc-sdk-go/schema types, so
// that the translation core (components C-G) depends on nothing from the
// connector-facing adapter layer. bridge.Connector is the only place that
// converts between this model and the real NDC SDK types.

// ArgumentKind tags the variant of an Argument.
type ArgumentKind int

const (
	ArgumentLiteral ArgumentKind = iota
	ArgumentVariable
)

// Argument is an NDC query-field argument: either a literal JSON value or a
// reference into the current variable-set binding map.
type Argument struct {
	Kind  ArgumentKind
	Value any    // valid when Kind == ArgumentLiteral
	Name  string // valid when Kind == ArgumentVariable
}

// NestedFieldKind tags the variant of a NestedField.
type NestedFieldKind int

const (
	NestedFieldObject NestedFieldKind = iota
	NestedFieldArray
	NestedFieldCollection
)

// NestedField is the sub-selection attached to a Column field.
type NestedField struct {
	Kind NestedFieldKind

	// Valid when Kind == NestedFieldObject: alias -> sub-field.
	Fields map[string]Field

	// Valid when Kind == NestedFieldArray.
	ArrayFields *NestedField
}

// FieldKind tags the variant of a Field. Only Column fields are modeled;
// Relationship fields are accepted only far enough to be rejected with
// NotSupported.
type FieldKind int

const (
	FieldColumn FieldKind = iota
	FieldRelationship
)

// Field is one entry of a selection-set field map.
type Field struct {
	Kind FieldKind

	// Valid when Kind == FieldColumn.
	Column    string
	Fields    *NestedField
	Arguments map[string]Argument
}

// Query is the query body of an NDC Query Request: a field map that must
// contain the distinguished "__value" key.
type Query struct {
	Fields map[string]Field
}

// QueryRequest is the NDC Query Request entity.
type QueryRequest struct {
	Collection       string
	Query            Query
	Arguments        map[string]Argument
	Variables        []map[string]any // nil means "no variable sets attached"; non-nil (possibly empty) means multiplexed
	RequestArguments map[string]any
}

// Procedure is one mutation operation.
type Procedure struct {
	Name      string
	Arguments map[string]any // already resolved JSON values, unlike query Arguments
	Fields    *NestedField
}

// MutationRequest is the NDC Mutation Request entity.
type MutationRequest struct {
	Operations       []Procedure
	RequestArguments map[string]any
}

// Operation is the artifact produced by the document builders: a GraphQL
// document plus its variable bindings and the outbound header map.
type Operation struct {
	Query     string
	Variables map[string]any
	Headers   map[string]string
}

// requestArgumentsHeaders extracts and type-asserts
// request_arguments["headers"]. These headers were already authorized by
// the caller's infrastructure, so they bypass glob filtering and win over
// every other header source.
func requestArgumentsHeaders(requestArguments map[string]any) (map[string]string, error) {
	raw, ok := requestArguments["headers"]
	if !ok || raw == nil {
		return nil, nil
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil, unexpectedHeadersShape(raw)
	}
	out := make(map[string]string, len(obj))
	for k, v := range obj {
		s, ok := v.(string)
		if !ok {
			return nil, unexpectedHeadersShape(raw)
		}
		out[k] = s
	}
	return out, nil
}
