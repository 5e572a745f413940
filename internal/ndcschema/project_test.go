package ndcschema_test

import (
	"testing"

	"github.com/kylelemons/godebug/pretty"
	"github.com/stretchr/testify/require"

	"github.com/hasura/ndc-graphql/internal/ndcschema"
	"github.com/hasura/ndc-graphql/internal/schema"
)

func buildModel(t *testing.T) *schema.Model {
	t.Helper()
	sdl := `
	schema { query: Query mutation: Mutation }
	type Query { user(id: ID!): User }
	type Mutation { createUser(name: String!): User }
	type User { id: ID! name: String }
	`
	model, err := schema.BuildModel(sdl, schema.DefaultIngestConfig())
	require.NoError(t, err)
	return model
}

func TestProjectIsIdempotent(t *testing.T) {
	model := buildModel(t)
	cfg := ndcschema.Config{HeadersTypeName: "_HeaderMap", HeadersArgumentName: "_headers"}

	a, err := ndcschema.Project(model, cfg)
	require.NoError(t, err)
	b, err := ndcschema.Project(model, cfg)
	require.NoError(t, err)

	if diff := pretty.Compare(a, b); diff != "" {
		t.Errorf("projection diff: (-first +second)\n%s", diff)
	}
}

func TestProjectKeepsRootFieldDeclarationOrder(t *testing.T) {
	sdl := `
	schema { query: Query }
	type Query {
		zebra: String
		apple: String
		mango: String
	}
	`
	model, err := schema.BuildModel(sdl, schema.DefaultIngestConfig())
	require.NoError(t, err)

	projection, err := ndcschema.Project(model, ndcschema.Config{})
	require.NoError(t, err)
	require.Equal(t, []string{"zebra", "apple", "mango"}, projection.FunctionOrder)
}

func TestProjectMapsNonNullToNamedOrArrayNeverNullable(t *testing.T) {
	model := buildModel(t)
	projection, err := ndcschema.Project(model, ndcschema.Config{})
	require.NoError(t, err)

	userType, ok := projection.ObjectTypes["User"]
	require.True(t, ok)

	idType := userType.Fields["id"].Type
	require.Equal(t, ndcschema.TypeKindNamed, idType.Kind, "NonNull(Named) must map straight to Named, never wrapped in Nullable")

	nameType := userType.Fields["name"].Type
	require.Equal(t, ndcschema.TypeKindNullable, nameType.Kind)
}

func TestProjectSynthesizesHeadersArgumentWhenRequestForwardingEnabled(t *testing.T) {
	model := buildModel(t)
	projection, err := ndcschema.Project(model, ndcschema.Config{
		HeadersTypeName:              "_HeaderMap",
		HeadersArgumentName:          "_headers",
		RequestForwardHeadersEnabled: true,
	})
	require.NoError(t, err)

	_, ok := projection.ScalarTypes["_HeaderMap"]
	require.True(t, ok)

	userFn, ok := projection.Functions["user"]
	require.True(t, ok)
	_, ok = userFn.Arguments["_headers"]
	require.True(t, ok)
}

func TestProjectWrapsResponseWhenResponseForwardingEnabled(t *testing.T) {
	model := buildModel(t)
	projection, err := ndcschema.Project(model, ndcschema.Config{
		HeadersTypeName:               "_HeaderMap",
		ResponseHeadersField:          "headers",
		ResponseResultField:           "response",
		ResponseTypeNamePrefix:        "_",
		ResponseTypeNameSuffix:        "Response",
		ResponseForwardHeadersEnabled: true,
	})
	require.NoError(t, err)

	userFn, ok := projection.Functions["user"]
	require.True(t, ok)
	require.Equal(t, ndcschema.TypeKindNamed, userFn.ResultType.Kind)
	require.Equal(t, "_userQueryResponse", userFn.ResultType.Name)

	wrapper, ok := projection.ObjectTypes["_userQueryResponse"]
	require.True(t, ok)
	require.Contains(t, wrapper.Fields, "headers")
	require.Contains(t, wrapper.Fields, "response")
}
