package headers_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hasura/ndc-graphql/internal/headers"
	"github.com/hasura/ndc-graphql/internal/ndcerror"
)

func TestExtractMergesConnectionForwardedAndRequestHeaders(t *testing.T) {
	arguments := map[string]any{
		"id": 1,
		"_headers": map[string]any{
			"X-Trace-Id":    "abc",
			"Authorization": "should-not-forward",
		},
	}

	outbound, remaining, err := headers.Extract(
		arguments,
		"_headers",
		headers.IdentityMapper,
		map[string]string{"X-Static": "1"},
		[]string{"x-trace-*"},
		map[string]string{"X-Request": "2"},
	)
	require.NoError(t, err)

	require.Equal(t, map[string]string{
		"X-Static":   "1",
		"X-Trace-Id": "abc",
		"X-Request":  "2",
	}, outbound)

	require.Equal(t, map[string]any{"id": 1}, remaining)
}

func TestExtractRequestArgumentsWinsOverForwarded(t *testing.T) {
	arguments := map[string]any{
		"_headers": map[string]any{"X-Trace-Id": "forwarded"},
	}

	outbound, _, err := headers.Extract(
		arguments, "_headers", headers.IdentityMapper,
		nil, []string{"*"}, map[string]string{"X-Trace-Id": "authoritative"},
	)
	require.NoError(t, err)
	require.Equal(t, "authoritative", outbound["X-Trace-Id"])
}

func TestExtractGlobMatchIsCaseInsensitive(t *testing.T) {
	arguments := map[string]any{
		"_headers": map[string]any{"X-CUSTOM-HEADER": "v"},
	}
	outbound, _, err := headers.Extract(arguments, "_headers", headers.IdentityMapper, nil, []string{"x-custom-*"}, nil)
	require.NoError(t, err)
	require.Equal(t, "v", outbound["X-CUSTOM-HEADER"])
}

func TestExtractRejectsMisshapenHeaders(t *testing.T) {
	arguments := map[string]any{"_headers": "not-an-object"}
	_, _, err := headers.Extract(arguments, "_headers", headers.IdentityMapper, nil, nil, nil)
	require.Error(t, err)
	require.Equal(t, ndcerror.KindMisshapenHeadersArgument, err.(ndcerror.Error).Kind())
}

func TestExtractWithoutHeadersArgumentPassesArgumentsThrough(t *testing.T) {
	arguments := map[string]any{"id": 7}
	outbound, remaining, err := headers.Extract(arguments, "_headers", headers.IdentityMapper, map[string]string{"X-Static": "s"}, nil, nil)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"X-Static": "s"}, outbound)
	require.Equal(t, arguments, remaining)
}
