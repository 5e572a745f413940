package ndcerror_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hasura/ndc-graphql/internal/ndcerror"
)

func TestSchemaConstructionErrorsMapToInternalServerError(t *testing.T) {
	for _, err := range []ndcerror.Error{
		ndcerror.MissingSchemaType{},
		ndcerror.HeaderTypeNameConflict{TypeName: "_HeaderMap"},
		ndcerror.QueryHeaderArgumentConflict{Field: "user", Argument: "_headers"},
		ndcerror.MutationHeaderArgumentConflict{Field: "insert", Argument: "_headers"},
		ndcerror.QueryResponseTypeConflict{Field: "user", TypeName: "_userQueryResponse"},
		ndcerror.MutationResponseTypeConflict{Field: "insert", TypeName: "_insertMutationResponse"},
	} {
		require.Equal(t, ndcerror.StatusInternalServerError, err.Status())
		require.NotEmpty(t, err.Error())
	}
}

func TestTranslationErrorsMapToBadRequestExceptNotFoundVariants(t *testing.T) {
	badRequest := []ndcerror.Error{
		ndcerror.NoQueryType{},
		ndcerror.NoMutationType{},
		ndcerror.NoRequestQueryFields{},
		ndcerror.NotSupported{Feature: "relationships"},
		ndcerror.QueryFieldNotFound{Field: "user"},
		ndcerror.MutationFieldNotFound{Field: "insert"},
		ndcerror.ObjectFieldNotFound{Object: "User", Field: "bogus"},
		ndcerror.InputObjectFieldNotFound{Object: "CreateUserInput", Field: "bogus"},
		ndcerror.ArgumentNotFound{Object: "User", Field: "user", Argument: "bogus"},
		ndcerror.MisshapenHeadersArgument{Value: "not-an-object"},
		ndcerror.MissingVariable{Name: "userId"},
		ndcerror.Unexpected{Message: "something odd"},
	}
	for _, err := range badRequest {
		require.Equal(t, ndcerror.StatusBadRequest, err.Status())
	}

	// ObjectTypeNotFound and InputObjectTypeNotFound indicate a schema/config
	// inconsistency, not a malformed client request, so they map to 500
	// instead of the 400 every other translation error uses.
	require.Equal(t, ndcerror.StatusInternalServerError, ndcerror.ObjectTypeNotFound{TypeName: "User"}.Status())
	require.Equal(t, ndcerror.StatusInternalServerError, ndcerror.InputObjectTypeNotFound{TypeName: "CreateUserInput"}.Status())
}

func TestUpstreamErrorsMapToUnprocessableEntity(t *testing.T) {
	for _, err := range []ndcerror.Error{
		ndcerror.UpstreamRequestError{Cause: errors.New("connection refused")},
		ndcerror.UpstreamNon2xx{StatusCode: 502, Body: "bad gateway"},
		ndcerror.UpstreamJSONDecodeError{Cause: errors.New("unexpected EOF")},
		ndcerror.UpstreamGraphQLErrors{Errors: []ndcerror.GraphQLError{{Message: "boom"}}},
	} {
		require.Equal(t, ndcerror.StatusUnprocessableEntity, err.Status())
	}
}

func TestUpstreamGraphQLErrorsSurfacesFirstMessageAndFullDetails(t *testing.T) {
	err := ndcerror.UpstreamGraphQLErrors{Errors: []ndcerror.GraphQLError{
		{Message: "field not found"},
		{Message: "second error"},
	}}

	require.Equal(t, "field not found", err.Error())
	require.Equal(t, map[string]any{"errors": err.Errors}, err.Details())
}

func TestUpstreamNoDataOrErrorsIsInternalServerError(t *testing.T) {
	err := ndcerror.UpstreamNoDataOrErrors{}
	require.Equal(t, ndcerror.StatusInternalServerError, err.Status())
	require.Equal(t, "No data or errors in response", err.Error())
}

func TestUpstreamRequestErrorUnwraps(t *testing.T) {
	cause := ndcerror.UpstreamNoDataOrErrors{}
	err := ndcerror.UpstreamRequestError{Cause: cause}
	require.ErrorIs(t, err, cause)
}
