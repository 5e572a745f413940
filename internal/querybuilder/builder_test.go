package querybuilder_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hasura/ndc-graphql/internal/ndcerror"
	"github.com/hasura/ndc-graphql/internal/querybuilder"
	"github.com/hasura/ndc-graphql/internal/schema"
)

func buildModel(t *testing.T) *schema.Model {
	t.Helper()
	sdl := `
	schema { query: Query mutation: Mutation }
	type Query {
		user(id: ID!): User
	}
	type Mutation {
		insert(name: String!): User
		delete(id: ID!): User
	}
	type User {
		id: ID!
		name: String
	}
	`
	model, err := schema.BuildModel(sdl, schema.DefaultIngestConfig())
	require.NoError(t, err)
	return model
}

func TestBuildQueryDocumentSingleVariableSet(t *testing.T) {
	model := buildModel(t)

	req := &querybuilder.QueryRequest{
		Collection: "user",
		Query: querybuilder.Query{
			Fields: map[string]querybuilder.Field{
				"__value": {
					Kind:   querybuilder.FieldColumn,
					Column: "__value",
					Fields: &querybuilder.NestedField{
						Kind: querybuilder.NestedFieldObject,
						Fields: map[string]querybuilder.Field{
							"id":   {Kind: querybuilder.FieldColumn, Column: "id"},
							"name": {Kind: querybuilder.FieldColumn, Column: "name"},
						},
					},
				},
			},
		},
		Arguments: map[string]querybuilder.Argument{
			"id": {Kind: querybuilder.ArgumentLiteral, Value: "42"},
		},
	}

	op, err := querybuilder.BuildQueryDocument(model, req, querybuilder.Config{HeadersArgumentName: "_headers"})
	require.NoError(t, err)

	require.Contains(t, op.Query, "$arg_1_id: ID")
	require.Contains(t, op.Query, "__value: user(id: $arg_1_id)")
	require.Equal(t, "42", op.Variables["arg_1_id"])
}

func TestBuildQueryDocumentMultiplexesVariableSets(t *testing.T) {
	model := buildModel(t)

	req := &querybuilder.QueryRequest{
		Collection: "user",
		Query: querybuilder.Query{
			Fields: map[string]querybuilder.Field{
				"__value": {Kind: querybuilder.FieldColumn, Column: "__value"},
			},
		},
		Arguments: map[string]querybuilder.Argument{
			"id": {Kind: querybuilder.ArgumentVariable, Name: "userId"},
		},
		Variables: []map[string]any{
			{"userId": "1"},
			{"userId": "2"},
		},
	}

	op, err := querybuilder.BuildQueryDocument(model, req, querybuilder.Config{HeadersArgumentName: "_headers"})
	require.NoError(t, err)

	require.Contains(t, op.Query, "q1__value: user(id: $q1_arg_1_id)")
	require.Contains(t, op.Query, "q2__value: user(id: $q2_arg_1_id)")
	require.Equal(t, "1", op.Variables["q1_arg_1_id"])
	require.Equal(t, "2", op.Variables["q2_arg_1_id"])
}

func TestBuildQueryDocumentRejectsMissingVariableBinding(t *testing.T) {
	model := buildModel(t)

	req := &querybuilder.QueryRequest{
		Collection: "user",
		Query: querybuilder.Query{
			Fields: map[string]querybuilder.Field{"__value": {Kind: querybuilder.FieldColumn, Column: "__value"}},
		},
		Arguments: map[string]querybuilder.Argument{
			"id": {Kind: querybuilder.ArgumentVariable, Name: "missing"},
		},
		Variables: []map[string]any{{}},
	}

	_, err := querybuilder.BuildQueryDocument(model, req, querybuilder.Config{HeadersArgumentName: "_headers"})
	require.Error(t, err)
	require.Equal(t, ndcerror.KindMissingVariable, err.(ndcerror.Error).Kind())
}

func TestBuildQueryDocumentRequiresValueField(t *testing.T) {
	model := buildModel(t)

	req := &querybuilder.QueryRequest{
		Collection: "user",
		Query:      querybuilder.Query{Fields: map[string]querybuilder.Field{}},
	}

	_, err := querybuilder.BuildQueryDocument(model, req, querybuilder.Config{HeadersArgumentName: "_headers"})
	require.Error(t, err)
	require.Equal(t, ndcerror.KindNoRequestQueryFields, err.(ndcerror.Error).Kind())
}

func TestBuildMutationDocumentOrdersProceduresPositionally(t *testing.T) {
	model := buildModel(t)

	req := &querybuilder.MutationRequest{
		Operations: []querybuilder.Procedure{
			{Name: "insert", Arguments: map[string]any{"name": "alice"}},
			{Name: "delete", Arguments: map[string]any{"id": "1"}},
		},
	}

	op, err := querybuilder.BuildMutationDocument(model, req, querybuilder.Config{HeadersArgumentName: "_headers"})
	require.NoError(t, err)

	require.Contains(t, op.Query, "procedure_0: insert(")
	require.Contains(t, op.Query, "procedure_1: delete(")
}

func TestBuildMutationDocumentExtractsHeadersPerOperation(t *testing.T) {
	model := buildModel(t)

	req := &querybuilder.MutationRequest{
		Operations: []querybuilder.Procedure{
			{Name: "insert", Arguments: map[string]any{
				"name":     "alice",
				"_headers": map[string]any{"X-Trace-Id": "abc"},
			}},
		},
	}

	cfg := querybuilder.Config{
		HeadersArgumentName: "_headers",
		ForwardHeaders:      []string{"x-trace-*"},
		ConnectionHeaders:   map[string]string{"X-Static": "1"},
	}

	op, err := querybuilder.BuildMutationDocument(model, req, cfg)
	require.NoError(t, err)

	require.Equal(t, map[string]string{"X-Static": "1", "X-Trace-Id": "abc"}, op.Headers)
	require.NotContains(t, op.Query, "_headers")
}

func TestBuildQueryDocumentRequestArgumentHeadersWinUnfiltered(t *testing.T) {
	model := buildModel(t)

	req := &querybuilder.QueryRequest{
		Collection: "user",
		Query: querybuilder.Query{
			Fields: map[string]querybuilder.Field{"__value": {Kind: querybuilder.FieldColumn, Column: "__value"}},
		},
		Arguments: map[string]querybuilder.Argument{
			"_headers": {Kind: querybuilder.ArgumentLiteral, Value: map[string]any{"X-Role": "viewer"}},
		},
		RequestArguments: map[string]any{
			"headers": map[string]any{"X-Role": "admin", "X-Unfiltered": "kept"},
		},
	}

	cfg := querybuilder.Config{
		HeadersArgumentName: "_headers",
		ForwardHeaders:      []string{"X-Role"},
	}

	op, err := querybuilder.BuildQueryDocument(model, req, cfg)
	require.NoError(t, err)

	// Request-level headers are already authorized upstream: they skip glob
	// filtering and override the glob-filtered headers argument.
	require.Equal(t, map[string]string{"X-Role": "admin", "X-Unfiltered": "kept"}, op.Headers)
}

func TestBuildMutationDocumentRejectsUnknownField(t *testing.T) {
	model := buildModel(t)
	req := &querybuilder.MutationRequest{
		Operations: []querybuilder.Procedure{{Name: "doesNotExist"}},
	}
	_, err := querybuilder.BuildMutationDocument(model, req, querybuilder.Config{HeadersArgumentName: "_headers"})
	require.Error(t, err)
	require.Equal(t, ndcerror.KindMutationFieldNotFound, err.(ndcerror.Error).Kind())
}
