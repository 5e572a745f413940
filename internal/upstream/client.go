// Package upstream executes GraphQL operations against the configured
// endpoint: it takes a querybuilder.Operation, issues it as a single HTTP
// POST, and decodes the upstream's {data, errors} envelope.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/hasura/ndc-graphql/internal/headers"
	"github.com/hasura/ndc-graphql/internal/ndcerror"
	"github.com/hasura/ndc-graphql/internal/querybuilder"
)

// maxErrorBodyBytes bounds how much of a non-2xx response body is kept for
// the UpstreamNon2xx error, so a misbehaving upstream can't blow up memory.
const maxErrorBodyBytes = 4096

// Client executes GraphQL operations against a single upstream endpoint.
type Client struct {
	httpClient *http.Client
	endpoint   string
}

// New returns a Client posting to endpoint using httpClient. httpClient must
// not be nil; New does not set a timeout on it. bridge.Connector.TryInitState
// passes a client with a fixed 30-second timeout, which is not read from the
// configuration.
func New(httpClient *http.Client, endpoint string) *Client {
	return &Client{httpClient: httpClient, endpoint: endpoint}
}

type requestBody struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// Response is the decoded upstream GraphQL envelope, kept close to the
// wire shape so response assembly can make its own judgment calls about
// partial success.
type Response struct {
	Data   map[string]any          `json:"data"`
	Errors []ndcerror.GraphQLError `json:"errors"`
}

// Execute issues op as a single POST, attaching op.Headers, and decodes
// the response envelope. returnHeaderPatterns is
// ServerConfig.Response.ForwardHeaders; the second return value is the
// case-insensitive glob-filtered subset of upstream response headers that
// response assembly wraps each row/result with. Execute never itself
// inspects Response.Data/Errors beyond ensuring the body decodes as JSON.
func (c *Client) Execute(ctx context.Context, op *querybuilder.Operation, returnHeaderPatterns []string) (*Response, map[string]string, error) {
	payload, err := json.Marshal(requestBody{Query: op.Query, Variables: op.Variables})
	if err != nil {
		return nil, nil, ndcerror.UpstreamRequestError{Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, nil, ndcerror.UpstreamRequestError{Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range op.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, ndcerror.UpstreamRequestError{Cause: err}
	}
	defer resp.Body.Close()

	captured := headers.FilterResponseHeaders(resp.Header, returnHeaderPatterns)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, captured, ndcerror.UpstreamRequestError{Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		truncated := body
		if len(truncated) > maxErrorBodyBytes {
			truncated = truncated[:maxErrorBodyBytes]
		}
		return nil, captured, ndcerror.UpstreamNon2xx{StatusCode: resp.StatusCode, Body: string(truncated)}
	}

	var decoded Response
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, captured, ndcerror.UpstreamJSONDecodeError{Cause: err}
	}

	return &decoded, captured, nil
}
