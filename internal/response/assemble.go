// Package response converts the upstream data payload into NDC row-sets or
// procedure-operation results, optionally wrapping each row/result with
// {headers_field, response_field}.
package response

import (
	"fmt"

	"github.com/hasura/ndc-graphql/internal/ndcerror"
)

// Config carries the response wrapper field names and whether wrapping is
// enabled at all, mirroring ServerConfig.Response.
type Config struct {
	HeadersField          string
	ResponseField         string
	ForwardHeadersEnabled bool // len(response.forward_headers) > 0
}

// RowSet is the NDC query-result shape; a query response is a
// single-element slice containing one row-set.
type RowSet struct {
	Rows       []any `json:"rows"`
	Aggregates any   `json:"aggregates"`
}

// wrap applies the optional {headers_field, response_field} envelope around
// value, per cfg.
func wrap(cfg Config, capturedHeaders map[string]string, value any) any {
	if !cfg.ForwardHeadersEnabled {
		return value
	}
	return map[string]any{
		cfg.HeadersField:  capturedHeaders,
		cfg.ResponseField: value,
	}
}

// checkDataOrErrors surfaces upstream GraphQL errors first, then treats a
// response with neither data nor errors as an internal failure. Shared by
// AssembleMutation and AssembleQuery.
func checkDataOrErrors(data map[string]any, errs []ndcerror.GraphQLError) error {
	if len(errs) > 0 {
		return ndcerror.UpstreamGraphQLErrors{Errors: errs}
	}
	if data == nil {
		return ndcerror.UpstreamNoDataOrErrors{}
	}
	return nil
}

// AssembleMutation correlates data, an object keyed by procedure_{i}
// aliases, back into operationCount positional results. capturedHeaders is
// the glob-filtered response-header map from the executor, shared across
// every operation in the request.
func AssembleMutation(cfg Config, data map[string]any, errs []ndcerror.GraphQLError, operationCount int, capturedHeaders map[string]string) ([]any, error) {
	if err := checkDataOrErrors(data, errs); err != nil {
		return nil, err
	}

	results := make([]any, operationCount)
	for i := 0; i < operationCount; i++ {
		key := fmt.Sprintf("procedure_%d", i)
		value, ok := data[key]
		if !ok {
			value = nil
		} else {
			delete(data, key)
		}
		results[i] = wrap(cfg, capturedHeaders, value)
	}
	return results, nil
}

// AssembleQuery shapes data into a single row-set. A nil variables slice
// means the request had no attached variable sets ("__value" alias, one
// row); a non-nil slice means the request was multiplexed across its
// entries ("q{k}__value" aliases, k = 1..len(variables), one row each, in
// variable-set order; an empty slice yields zero rows).
func AssembleQuery(cfg Config, data map[string]any, errs []ndcerror.GraphQLError, variables []map[string]any, capturedHeaders map[string]string) ([]RowSet, error) {
	if err := checkDataOrErrors(data, errs); err != nil {
		return nil, err
	}

	var rows []any
	if variables == nil {
		rows = []any{wrap(cfg, capturedHeaders, map[string]any{"__value": data["__value"]})}
	} else {
		rows = make([]any, len(variables))
		for k := 1; k <= len(variables); k++ {
			key := fmt.Sprintf("q%d__value", k)
			rows[k-1] = wrap(cfg, capturedHeaders, map[string]any{"__value": data[key]})
		}
	}

	return []RowSet{{Rows: rows, Aggregates: nil}}, nil
}
