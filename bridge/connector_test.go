package bridge

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hasura/ndc-graphql/internal/config"
	"github.com/hasura/ndc-graphql/internal/ndcerror"
)

func TestAsNDCErrorPreservesMessageForEachStatusClass(t *testing.T) {
	cases := []ndcerror.Error{
		ndcerror.QueryFieldNotFound{Field: "user"},
		ndcerror.ObjectTypeNotFound{TypeName: "User"},
		ndcerror.UpstreamGraphQLErrors{Errors: []ndcerror.GraphQLError{{Message: "boom"}}},
	}

	for _, tc := range cases {
		got := asNDCError(tc)
		require.Error(t, got)
		require.Contains(t, got.Error(), tc.Error())
	}
}

func TestAsNDCErrorWrapsNonTaxonomyErrorsAsInternal(t *testing.T) {
	got := asNDCError(errors.New("unexpected panic recovery"))
	require.Error(t, got)
	require.Contains(t, got.Error(), "unexpected panic recovery")
}

func TestDocumentBuilderConfigCarriesRequestKnobs(t *testing.T) {
	cfg := config.ServerConfig{
		Request: config.RequestConfig{
			HeadersArgument: "_headers",
			ForwardHeaders:  []string{"Authorization"},
		},
		Connection: config.ConnectionConfig{
			Headers: map[string]string{"X-Static": "1"},
		},
	}

	dbc := documentBuilderConfig(cfg)
	require.Equal(t, "_headers", dbc.HeadersArgumentName)
	require.Equal(t, []string{"Authorization"}, dbc.ForwardHeaders)
	require.Equal(t, map[string]string{"X-Static": "1"}, dbc.ConnectionHeaders)
}

func TestResponseConfigEnablesWrappingOnlyWhenForwardHeadersNonEmpty(t *testing.T) {
	enabled := responseConfig(config.ServerConfig{Response: config.ResponseConfig{ForwardHeaders: []string{"X-Hasura-*"}}})
	require.True(t, enabled.ForwardHeadersEnabled)

	disabled := responseConfig(config.ServerConfig{})
	require.False(t, disabled.ForwardHeadersEnabled)
}
