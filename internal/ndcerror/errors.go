// Package ndcerror defines the bridge's error taxonomy. Every distinct
// failure mode is its own Go type so that callers can switch on concrete
// types instead of parsing strings, and each carries the information needed
// to render both a human-readable message and an NDC error response.
// Callers at the NDC surface map each kind to an HTTP status via Status();
// everything else is an internal error.
package ndcerror

import "fmt"

// Status is the HTTP status an error kind maps to on the NDC surface.
type Status int

const (
	StatusBadRequest          Status = 400
	StatusUnprocessableEntity Status = 422
	StatusInternalServerError Status = 500
)

// Kind identifies the taxonomy member independent of its rendered message,
// so that non-Go callers (tests, logs) can compare on a stable identifier.
type Kind string

const (
	KindMissingSchemaType              Kind = "missing_schema_type"
	KindHeaderTypeNameConflict         Kind = "header_type_name_conflict"
	KindQueryHeaderArgumentConflict    Kind = "query_header_argument_conflict"
	KindMutationHeaderArgumentConflict Kind = "mutation_header_argument_conflict"
	KindQueryResponseTypeConflict      Kind = "query_response_type_conflict"
	KindMutationResponseTypeConflict   Kind = "mutation_response_type_conflict"

	KindNoQueryType              Kind = "no_query_type"
	KindNoMutationType           Kind = "no_mutation_type"
	KindNoRequestQueryFields     Kind = "no_request_query_fields"
	KindNotSupported             Kind = "not_supported"
	KindQueryFieldNotFound       Kind = "query_field_not_found"
	KindMutationFieldNotFound    Kind = "mutation_field_not_found"
	KindObjectTypeNotFound       Kind = "object_type_not_found"
	KindObjectFieldNotFound      Kind = "object_field_not_found"
	KindInputObjectTypeNotFound  Kind = "input_object_type_not_found"
	KindInputObjectFieldNotFound Kind = "input_object_field_not_found"
	KindArgumentNotFound         Kind = "argument_not_found"
	KindMisshapenHeadersArgument Kind = "misshapen_headers_argument"
	KindMissingVariable          Kind = "missing_variable"
	KindUnexpected               Kind = "unexpected"

	KindUpstreamRequest        Kind = "upstream_request_failed"
	KindUpstreamNon2xx         Kind = "upstream_non_2xx"
	KindUpstreamJSONDecode     Kind = "upstream_json_decode_failed"
	KindUpstreamGraphQLErrors  Kind = "upstream_graphql_errors"
	KindUpstreamNoDataOrErrors Kind = "upstream_no_data_or_errors"
)

// Error is implemented by every member of the taxonomy.
type Error interface {
	error
	Kind() Kind
	Status() Status
}

// --- Schema construction errors (abort startup; Status is nominal) ---

type MissingSchemaType struct{}

func (MissingSchemaType) Error() string {
	return "upstream SDL has no schema definition with a query or mutation root type"
}
func (MissingSchemaType) Kind() Kind     { return KindMissingSchemaType }
func (MissingSchemaType) Status() Status { return StatusInternalServerError }

type HeaderTypeNameConflict struct {
	TypeName string
}

func (e HeaderTypeNameConflict) Error() string {
	return fmt.Sprintf("configured headers type name %q collides with an existing type definition", e.TypeName)
}
func (HeaderTypeNameConflict) Kind() Kind     { return KindHeaderTypeNameConflict }
func (HeaderTypeNameConflict) Status() Status { return StatusInternalServerError }

type QueryHeaderArgumentConflict struct {
	Field    string
	Argument string
}

func (e QueryHeaderArgumentConflict) Error() string {
	return fmt.Sprintf("query field %q already declares an argument named %q", e.Field, e.Argument)
}
func (QueryHeaderArgumentConflict) Kind() Kind     { return KindQueryHeaderArgumentConflict }
func (QueryHeaderArgumentConflict) Status() Status { return StatusInternalServerError }

type MutationHeaderArgumentConflict struct {
	Field    string
	Argument string
}

func (e MutationHeaderArgumentConflict) Error() string {
	return fmt.Sprintf("mutation field %q already declares an argument named %q", e.Field, e.Argument)
}
func (MutationHeaderArgumentConflict) Kind() Kind     { return KindMutationHeaderArgumentConflict }
func (MutationHeaderArgumentConflict) Status() Status { return StatusInternalServerError }

type QueryResponseTypeConflict struct {
	Field    string
	TypeName string
}

func (e QueryResponseTypeConflict) Error() string {
	return fmt.Sprintf("synthesized response type %q for query field %q collides with an existing type definition", e.TypeName, e.Field)
}
func (QueryResponseTypeConflict) Kind() Kind     { return KindQueryResponseTypeConflict }
func (QueryResponseTypeConflict) Status() Status { return StatusInternalServerError }

type MutationResponseTypeConflict struct {
	Field    string
	TypeName string
}

func (e MutationResponseTypeConflict) Error() string {
	return fmt.Sprintf("synthesized response type %q for mutation field %q collides with an existing type definition", e.TypeName, e.Field)
}
func (MutationResponseTypeConflict) Kind() Kind     { return KindMutationResponseTypeConflict }
func (MutationResponseTypeConflict) Status() Status { return StatusInternalServerError }

// --- Request translation errors (400, except the two *NotFound variants
// that indicate schema/config inconsistency and map to 500) ---

type NoQueryType struct{}

func (NoQueryType) Error() string  { return "upstream schema has no query root type" }
func (NoQueryType) Kind() Kind     { return KindNoQueryType }
func (NoQueryType) Status() Status { return StatusBadRequest }

type NoMutationType struct{}

func (NoMutationType) Error() string  { return "upstream schema has no mutation root type" }
func (NoMutationType) Kind() Kind     { return KindNoMutationType }
func (NoMutationType) Status() Status { return StatusBadRequest }

type NoRequestQueryFields struct{}

func (NoRequestQueryFields) Error() string {
	return "query request is missing the __value field selection"
}
func (NoRequestQueryFields) Kind() Kind     { return KindNoRequestQueryFields }
func (NoRequestQueryFields) Status() Status { return StatusBadRequest }

type NotSupported struct {
	Feature string
}

func (e NotSupported) Error() string { return fmt.Sprintf("unsupported NDC feature: %s", e.Feature) }
func (NotSupported) Kind() Kind      { return KindNotSupported }
func (NotSupported) Status() Status  { return StatusBadRequest }

type QueryFieldNotFound struct {
	Field string
}

func (e QueryFieldNotFound) Error() string {
	return fmt.Sprintf("query field %q not found in upstream schema", e.Field)
}
func (QueryFieldNotFound) Kind() Kind     { return KindQueryFieldNotFound }
func (QueryFieldNotFound) Status() Status { return StatusBadRequest }

type MutationFieldNotFound struct {
	Field string
}

func (e MutationFieldNotFound) Error() string {
	return fmt.Sprintf("mutation field %q not found in upstream schema", e.Field)
}
func (MutationFieldNotFound) Kind() Kind     { return KindMutationFieldNotFound }
func (MutationFieldNotFound) Status() Status { return StatusBadRequest }

// ObjectTypeNotFound and InputObjectTypeNotFound indicate the Document
// Builder resolved a field's declared type to a name absent from the Schema
// Model: a schema/config inconsistency, not a malformed request.
type ObjectTypeNotFound struct {
	TypeName string
}

func (e ObjectTypeNotFound) Error() string {
	return fmt.Sprintf("object type %q not found in configuration", e.TypeName)
}
func (ObjectTypeNotFound) Kind() Kind     { return KindObjectTypeNotFound }
func (ObjectTypeNotFound) Status() Status { return StatusInternalServerError }

type ObjectFieldNotFound struct {
	Object string
	Field  string
}

func (e ObjectFieldNotFound) Error() string {
	return fmt.Sprintf("object type %q has no field %q", e.Object, e.Field)
}
func (ObjectFieldNotFound) Kind() Kind     { return KindObjectFieldNotFound }
func (ObjectFieldNotFound) Status() Status { return StatusBadRequest }

type InputObjectTypeNotFound struct {
	TypeName string
}

func (e InputObjectTypeNotFound) Error() string {
	return fmt.Sprintf("input object type %q not found in configuration", e.TypeName)
}
func (InputObjectTypeNotFound) Kind() Kind     { return KindInputObjectTypeNotFound }
func (InputObjectTypeNotFound) Status() Status { return StatusInternalServerError }

type InputObjectFieldNotFound struct {
	Object string
	Field  string
}

func (e InputObjectFieldNotFound) Error() string {
	return fmt.Sprintf("input object type %q has no field %q", e.Object, e.Field)
}
func (InputObjectFieldNotFound) Kind() Kind     { return KindInputObjectFieldNotFound }
func (InputObjectFieldNotFound) Status() Status { return StatusBadRequest }

type ArgumentNotFound struct {
	Object   string
	Field    string
	Argument string
}

func (e ArgumentNotFound) Error() string {
	return fmt.Sprintf("field %q on %q declares no argument %q", e.Field, e.Object, e.Argument)
}
func (ArgumentNotFound) Kind() Kind     { return KindArgumentNotFound }
func (ArgumentNotFound) Status() Status { return StatusBadRequest }

type MisshapenHeadersArgument struct {
	Value any
}

func (e MisshapenHeadersArgument) Error() string {
	return fmt.Sprintf("headers argument must be an object of strings, got %#v", e.Value)
}
func (MisshapenHeadersArgument) Kind() Kind     { return KindMisshapenHeadersArgument }
func (MisshapenHeadersArgument) Status() Status { return StatusBadRequest }

type MissingVariable struct {
	Name string
}

func (e MissingVariable) Error() string {
	return fmt.Sprintf("variable set has no binding named %q", e.Name)
}
func (MissingVariable) Kind() Kind     { return KindMissingVariable }
func (MissingVariable) Status() Status { return StatusBadRequest }

type Unexpected struct {
	Message string
}

func (e Unexpected) Error() string { return e.Message }
func (Unexpected) Kind() Kind      { return KindUnexpected }
func (Unexpected) Status() Status  { return StatusBadRequest }

// --- Execution / upstream semantics errors ---

type UpstreamRequestError struct {
	Cause error
}

func (e UpstreamRequestError) Error() string {
	return fmt.Sprintf("upstream request failed: %v", e.Cause)
}
func (e UpstreamRequestError) Unwrap() error { return e.Cause }
func (UpstreamRequestError) Kind() Kind      { return KindUpstreamRequest }
func (UpstreamRequestError) Status() Status  { return StatusUnprocessableEntity }

type UpstreamNon2xx struct {
	StatusCode int
	Body       string // truncated
}

func (e UpstreamNon2xx) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Body)
}
func (UpstreamNon2xx) Kind() Kind     { return KindUpstreamNon2xx }
func (UpstreamNon2xx) Status() Status { return StatusUnprocessableEntity }

type UpstreamJSONDecodeError struct {
	Cause error
}

func (e UpstreamJSONDecodeError) Error() string {
	return fmt.Sprintf("failed to decode upstream response: %v", e.Cause)
}
func (e UpstreamJSONDecodeError) Unwrap() error { return e.Cause }
func (UpstreamJSONDecodeError) Kind() Kind      { return KindUpstreamJSONDecode }
func (UpstreamJSONDecodeError) Status() Status  { return StatusUnprocessableEntity }

// GraphQLError is one element of an upstream errors[] array.
type GraphQLError struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

type UpstreamGraphQLErrors struct {
	Errors []GraphQLError
}

func (e UpstreamGraphQLErrors) Error() string {
	if len(e.Errors) == 0 {
		return "upstream returned GraphQL errors"
	}
	return e.Errors[0].Message
}
func (UpstreamGraphQLErrors) Kind() Kind     { return KindUpstreamGraphQLErrors }
func (UpstreamGraphQLErrors) Status() Status { return StatusUnprocessableEntity }

// Details renders the {errors: [...]} payload surfaced under the NDC error
// response's "details" key.
func (e UpstreamGraphQLErrors) Details() map[string]any {
	return map[string]any{"errors": e.Errors}
}

type UpstreamNoDataOrErrors struct{}

func (UpstreamNoDataOrErrors) Error() string  { return "No data or errors in response" }
func (UpstreamNoDataOrErrors) Kind() Kind     { return KindUpstreamNoDataOrErrors }
func (UpstreamNoDataOrErrors) Status() Status { return StatusInternalServerError }
