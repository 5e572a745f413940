package response_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hasura/ndc-graphql/internal/ndcerror"
	"github.com/hasura/ndc-graphql/internal/response"
)

func TestAssembleMutationOrdersResultsPositionally(t *testing.T) {
	data := map[string]any{
		"procedure_0": map[string]any{"id": "1"},
		"procedure_1": map[string]any{"id": "2"},
	}

	results, err := response.AssembleMutation(response.Config{}, data, nil, 2, nil)
	require.NoError(t, err)
	require.Equal(t, []any{
		map[string]any{"id": "1"},
		map[string]any{"id": "2"},
	}, results)
}

func TestAssembleMutationDefaultsMissingOperationToNil(t *testing.T) {
	data := map[string]any{"procedure_0": map[string]any{"id": "1"}}

	results, err := response.AssembleMutation(response.Config{}, data, nil, 2, nil)
	require.NoError(t, err)
	require.Equal(t, []any{map[string]any{"id": "1"}, nil}, results)
}

func TestAssembleMutationWrapsWithCapturedHeaders(t *testing.T) {
	data := map[string]any{"procedure_0": "value"}
	cfg := response.Config{HeadersField: "headers", ResponseField: "response", ForwardHeadersEnabled: true}

	results, err := response.AssembleMutation(cfg, data, nil, 1, map[string]string{"X-Trace-Id": "abc"})
	require.NoError(t, err)
	require.Equal(t, []any{map[string]any{
		"headers":  map[string]string{"X-Trace-Id": "abc"},
		"response": "value",
	}}, results)
}

func TestAssembleQuerySingleRowWithoutVariables(t *testing.T) {
	data := map[string]any{"__value": map[string]any{"id": "1"}}

	rowSets, err := response.AssembleQuery(response.Config{}, data, nil, nil, nil)
	require.NoError(t, err)
	require.Len(t, rowSets, 1)
	require.Equal(t, []any{map[string]any{"__value": map[string]any{"id": "1"}}}, rowSets[0].Rows)
	require.Nil(t, rowSets[0].Aggregates)
}

func TestAssembleQueryMultiplexedRowsFollowVariableSetOrder(t *testing.T) {
	data := map[string]any{
		"q1__value": map[string]any{"id": "1"},
		"q2__value": map[string]any{"id": "2"},
	}

	variables := []map[string]any{{"x": 1}, {"x": 2}}
	rowSets, err := response.AssembleQuery(response.Config{}, data, nil, variables, nil)
	require.NoError(t, err)
	require.Equal(t, []any{
		map[string]any{"__value": map[string]any{"id": "1"}},
		map[string]any{"__value": map[string]any{"id": "2"}},
	}, rowSets[0].Rows)
}

func TestAssembleQueryEmptyVariableSetsYieldZeroRows(t *testing.T) {
	rowSets, err := response.AssembleQuery(response.Config{}, map[string]any{}, nil, []map[string]any{}, nil)
	require.NoError(t, err)
	require.Len(t, rowSets, 1)
	require.Empty(t, rowSets[0].Rows)
}

func TestAssembleQuerySurfacesGraphQLErrors(t *testing.T) {
	errs := []ndcerror.GraphQLError{{Message: "boom"}}
	_, err := response.AssembleQuery(response.Config{}, nil, errs, nil, nil)
	require.Error(t, err)
	require.Equal(t, ndcerror.KindUpstreamGraphQLErrors, err.(ndcerror.Error).Kind())
	require.Equal(t, "boom", err.Error())
}

func TestAssembleQueryMissingDataAndErrorsIsInternalError(t *testing.T) {
	_, err := response.AssembleQuery(response.Config{}, nil, nil, nil, nil)
	require.Error(t, err)
	require.Equal(t, ndcerror.KindUpstreamNoDataOrErrors, err.(ndcerror.Error).Kind())
	require.Equal(t, ndcerror.StatusInternalServerError, err.(ndcerror.Error).Status())
}
