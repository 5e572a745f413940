// Package explain backs query_explain and mutation_explain: the document
// builders run as normal but nothing is executed upstream, and the built
// operation is rendered into a details map suitable for the NDC
// ExplainResponse.
package explain

import (
	"encoding/json"

	"github.com/samsarahq/go/oops"

	"github.com/hasura/ndc-graphql/internal/querybuilder"
)

// Details is the {"SQL Query", "Execution Plan", "Headers"} map returned
// to explain callers. A plain map is sufficient here because the NDC
// ExplainResponse itself has no ordering requirement on its details keys.
type Details map[string]string

const (
	keyQuery   = "SQL Query"
	keyPlan    = "Execution Plan"
	keyHeaders = "Headers"
)

// FromOperation renders op's details without ever contacting the upstream:
// the raw document text, the {query, variables} pair as indented JSON, and
// the outbound header map as JSON.
func FromOperation(op *querybuilder.Operation) (Details, error) {
	plan, err := json.MarshalIndent(struct {
		Query     string         `json:"query"`
		Variables map[string]any `json:"variables"`
	}{Query: op.Query, Variables: op.Variables}, "", "  ")
	if err != nil {
		return nil, oops.Wrapf(err, "encoding execution plan")
	}

	headers, err := json.Marshal(op.Headers)
	if err != nil {
		return nil, oops.Wrapf(err, "encoding outbound headers")
	}

	return Details{
		keyQuery:   op.Query,
		keyPlan:    string(plan),
		keyHeaders: string(headers),
	}, nil
}
