// Package bridge implements github.com/hasura/ndc-sdk-go/connector's
// Connector interface, converting between the real NDC SDK wire types and
// the narrow internal request/response/schema models the translation core
// (internal/schema, internal/ndcschema, internal/querybuilder,
// internal/response) depends on. ParseConfiguration and TryInitState build
// a State once at startup; Query, QueryExplain, Mutation, and
// MutationExplain then operate against that State on every request.
package bridge

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	ndcconnector "github.com/hasura/ndc-sdk-go/connector"
	ndcsdkschema "github.com/hasura/ndc-sdk-go/schema"
	"github.com/samsarahq/go/oops"

	"github.com/hasura/ndc-graphql/internal/config"
	"github.com/hasura/ndc-graphql/internal/explain"
	"github.com/hasura/ndc-graphql/internal/ndcerror"
	"github.com/hasura/ndc-graphql/internal/ndcschema"
	"github.com/hasura/ndc-graphql/internal/querybuilder"
	"github.com/hasura/ndc-graphql/internal/response"
	"github.com/hasura/ndc-graphql/internal/schema"
	"github.com/hasura/ndc-graphql/internal/upstream"
	"github.com/hasura/ndc-graphql/logger"
)

// Configuration is the parsed, on-disk configuration directory's contents.
type Configuration struct {
	Server config.ServerConfig
	SDL    string
}

// State is everything built once at startup from Configuration: the
// reduced schema model, its pre-encoded NDC projection, and a pooled
// upstream client. It is immutable and safe for concurrent use by every
// in-flight request.
type State struct {
	Model     *schema.Model
	RawSchema *ndcsdkschema.RawSchemaResponse
	Client    *upstream.Client
	ServerCfg config.ServerConfig
	Log       logger.Logger
}

// Connector implements github.com/hasura/ndc-sdk-go/connector.Connector.
type Connector struct {
	capabilities *ndcsdkschema.RawCapabilitiesResponse
}

var _ ndcconnector.Connector[Configuration, State] = (*Connector)(nil)

// ParseConfiguration reads configuration.json and schema.graphql from
// configurationDir and pre-serializes the static capabilities payload.
func (c *Connector) ParseConfiguration(ctx context.Context, configurationDir string) (*Configuration, error) {
	rawCapabilities, err := json.Marshal(capabilitiesDoc)
	if err != nil {
		return nil, oops.Wrapf(err, "encoding capabilities")
	}
	c.capabilities = ndcsdkschema.NewRawCapabilitiesResponseUnsafe(rawCapabilities)

	cfg, sdl, err := config.Load(configurationDir)
	if err != nil {
		return nil, err
	}
	return &Configuration{Server: cfg, SDL: sdl}, nil
}

// TryInitState builds the reduced schema model, projects and encodes the
// NDC schema once, and constructs the pooled HTTP client.
func (c *Connector) TryInitState(ctx context.Context, configuration *Configuration, _ *ndcconnector.TelemetryState) (*State, error) {
	ingestCfg := schema.IngestConfig{
		HeadersTypeName:        configuration.Server.Request.HeadersTypeName,
		HeadersArgumentName:    configuration.Server.Request.HeadersArgument,
		ResponseTypeNamePrefix: configuration.Server.Response.TypeNamePrefix,
		ResponseTypeNameSuffix: configuration.Server.Response.TypeNameSuffix,
	}

	model, err := schema.BuildModel(configuration.SDL, ingestCfg)
	if err != nil {
		return nil, asNDCError(err)
	}

	projection, err := ndcschema.Project(model, ndcschema.Config{
		HeadersTypeName:               configuration.Server.Request.HeadersTypeName,
		HeadersArgumentName:           configuration.Server.Request.HeadersArgument,
		ResponseHeadersField:          configuration.Server.Response.HeadersField,
		ResponseResultField:           configuration.Server.Response.ResponseField,
		ResponseTypeNamePrefix:        configuration.Server.Response.TypeNamePrefix,
		ResponseTypeNameSuffix:        configuration.Server.Response.TypeNameSuffix,
		RequestForwardHeadersEnabled:  len(configuration.Server.Request.ForwardHeaders) > 0,
		ResponseForwardHeadersEnabled: len(configuration.Server.Response.ForwardHeaders) > 0,
	})
	if err != nil {
		return nil, err
	}

	rawSchema, err := json.Marshal(encodeSchemaResponse(projection))
	if err != nil {
		return nil, oops.Wrapf(err, "encoding NDC schema")
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}

	return &State{
		Model:     model,
		RawSchema: ndcsdkschema.NewRawSchemaResponseUnsafe(rawSchema),
		Client:    upstream.New(httpClient, configuration.Server.Connection.Endpoint),
		ServerCfg: configuration.Server,
		Log:       logger.New(),
	}, nil
}

// HealthCheck is a no-op: the bridge has no readiness signal of its own
// beyond having loaded the schema at startup.
func (c *Connector) HealthCheck(ctx context.Context, _ *Configuration, _ *State) error {
	return nil
}

// capabilitiesDoc is the static capabilities payload this connector
// advertises: variables and explain on queries, explain on mutations, and
// empty nested_fields and exists entries with none of their
// sub-capabilities set. No aggregates, filtering, ordering, relationships,
// or transactional mutations.
var capabilitiesDoc = map[string]any{
	"version": "0.1.6",
	"capabilities": map[string]any{
		"query": map[string]any{
			"variables":     map[string]any{},
			"explain":       map[string]any{},
			"nested_fields": map[string]any{},
			"exists":        map[string]any{},
		},
		"mutation": map[string]any{
			"explain": map[string]any{},
		},
	},
}

// GetCapabilities returns the pre-serialized static capabilities payload.
func (c *Connector) GetCapabilities(_ *Configuration) ndcsdkschema.CapabilitiesResponseMarshaler {
	return c.capabilities
}

// GetSchema serves the NDC schema projection, pre-encoded once at startup.
func (c *Connector) GetSchema(ctx context.Context, _ *Configuration, state *State) (ndcsdkschema.SchemaResponseMarshaler, error) {
	return state.RawSchema, nil
}

// Query translates, executes, and assembles a Query Request.
func (c *Connector) Query(ctx context.Context, _ *Configuration, state *State, request *ndcsdkschema.QueryRequest) (ndcsdkschema.QueryResponse, error) {
	log := logger.ForOperation(state.Log, "query", request.Collection)

	req, err := decodeQueryRequest(request)
	if err != nil {
		return nil, asNDCError(err)
	}

	op, err := querybuilder.BuildQueryDocument(state.Model, req, documentBuilderConfig(state.ServerCfg))
	if err != nil {
		log.Error("failed to build query document", "error", err)
		return nil, asNDCError(err)
	}

	upstreamResp, captured, err := state.Client.Execute(ctx, op, state.ServerCfg.Response.ForwardHeaders)
	if err != nil {
		log.Error("upstream query execution failed", "error", err)
		return nil, asNDCError(err)
	}

	rowSets, err := response.AssembleQuery(responseConfig(state.ServerCfg), upstreamResp.Data, upstreamResp.Errors, req.Variables, captured)
	if err != nil {
		log.Error("failed to assemble query response", "error", err)
		return nil, asNDCError(err)
	}

	log.Debug("query completed", "variable_sets", len(req.Variables))
	return encodeQueryResponse(rowSets), nil
}

// QueryExplain builds the query document without executing upstream.
func (c *Connector) QueryExplain(ctx context.Context, _ *Configuration, state *State, request *ndcsdkschema.QueryRequest) (*ndcsdkschema.ExplainResponse, error) {
	req, err := decodeQueryRequest(request)
	if err != nil {
		return nil, asNDCError(err)
	}

	op, err := querybuilder.BuildQueryDocument(state.Model, req, documentBuilderConfig(state.ServerCfg))
	if err != nil {
		return nil, asNDCError(err)
	}

	details, err := explain.FromOperation(op)
	if err != nil {
		return nil, asNDCError(err)
	}

	return encodeExplainResponse(details), nil
}

// Mutation translates, executes, and assembles a Mutation Request.
func (c *Connector) Mutation(ctx context.Context, _ *Configuration, state *State, request *ndcsdkschema.MutationRequest) (*ndcsdkschema.MutationResponse, error) {
	log := logger.ForOperation(state.Log, "mutation", fmt.Sprintf("%d operations", len(request.Operations)))

	req, err := decodeMutationRequest(request)
	if err != nil {
		return nil, asNDCError(err)
	}

	op, err := querybuilder.BuildMutationDocument(state.Model, req, documentBuilderConfig(state.ServerCfg))
	if err != nil {
		log.Error("failed to build mutation document", "error", err)
		return nil, asNDCError(err)
	}

	upstreamResp, captured, err := state.Client.Execute(ctx, op, state.ServerCfg.Response.ForwardHeaders)
	if err != nil {
		log.Error("upstream mutation execution failed", "error", err)
		return nil, asNDCError(err)
	}

	results, err := response.AssembleMutation(responseConfig(state.ServerCfg), upstreamResp.Data, upstreamResp.Errors, len(req.Operations), captured)
	if err != nil {
		log.Error("failed to assemble mutation response", "error", err)
		return nil, asNDCError(err)
	}

	log.Debug("mutation completed", "operations", len(req.Operations))
	return encodeMutationResponse(results), nil
}

// MutationExplain builds the mutation document without executing upstream.
func (c *Connector) MutationExplain(ctx context.Context, _ *Configuration, state *State, request *ndcsdkschema.MutationRequest) (*ndcsdkschema.ExplainResponse, error) {
	req, err := decodeMutationRequest(request)
	if err != nil {
		return nil, asNDCError(err)
	}

	op, err := querybuilder.BuildMutationDocument(state.Model, req, documentBuilderConfig(state.ServerCfg))
	if err != nil {
		return nil, asNDCError(err)
	}

	details, err := explain.FromOperation(op)
	if err != nil {
		return nil, asNDCError(err)
	}

	return encodeExplainResponse(details), nil
}

func documentBuilderConfig(cfg config.ServerConfig) querybuilder.Config {
	return querybuilder.Config{
		HeadersArgumentName: cfg.Request.HeadersArgument,
		ForwardHeaders:      cfg.Request.ForwardHeaders,
		ConnectionHeaders:   cfg.Connection.Headers,
	}
}

func responseConfig(cfg config.ServerConfig) response.Config {
	return response.Config{
		HeadersField:          cfg.Response.HeadersField,
		ResponseField:         cfg.Response.ResponseField,
		ForwardHeadersEnabled: len(cfg.Response.ForwardHeaders) > 0,
	}
}

// asNDCError renders any ndcerror.Error as the matching SDK error
// constructor, so each taxonomy kind keeps its HTTP status at the NDC
// surface.
func asNDCError(err error) error {
	ndcErr, ok := err.(ndcerror.Error)
	if !ok {
		return ndcsdkschema.InternalServerError(oops.Wrapf(err, "unexpected bridge error").Error(), nil)
	}

	switch ndcErr.Status() {
	case ndcerror.StatusBadRequest:
		return ndcsdkschema.BadRequestError(ndcErr.Error(), nil)
	case ndcerror.StatusUnprocessableEntity:
		details := map[string]any{}
		if withDetails, ok := err.(interface{ Details() map[string]any }); ok {
			details = withDetails.Details()
		}
		return ndcsdkschema.UnprocessableContentError(ndcErr.Error(), details)
	default:
		return ndcsdkschema.InternalServerError(ndcErr.Error(), nil)
	}
}
