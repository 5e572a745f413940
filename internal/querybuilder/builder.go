// Package querybuilder is the core translator: it walks an NDC request
// tree and produces a GraphQL operation document, its variable bindings,
// and an outbound header map.
package querybuilder

import (
	"fmt"

	"github.com/hasura/ndc-graphql/internal/headers"
	"github.com/hasura/ndc-graphql/internal/ndcerror"
	"github.com/hasura/ndc-graphql/internal/paramtable"
	"github.com/hasura/ndc-graphql/internal/schema"
)

// Config carries the naming knobs the document builders must honor,
// mirroring ServerConfig's request and connection sub-structs.
type Config struct {
	HeadersArgumentName string
	ForwardHeaders      []string // request.forward_headers glob patterns
	ConnectionHeaders   map[string]string
}

func unexpectedHeadersShape(raw any) error {
	return ndcerror.MisshapenHeadersArgument{Value: raw}
}

// BuildMutationDocument translates an NDC mutation request into a single
// GraphQL mutation whose root selections are aliased procedure_{i} in
// operation order.
func BuildMutationDocument(model *schema.Model, req *MutationRequest, cfg Config) (*Operation, error) {
	if model.MutationTypeName == "" {
		return nil, ndcerror.NoMutationType{}
	}

	table := paramtable.New("")
	outboundHeaders := map[string]string{}
	for k, v := range cfg.ConnectionHeaders {
		outboundHeaders[k] = v
	}

	selections := make([]*selectionNode, len(req.Operations))

	for i, op := range req.Operations {
		fieldDef, ok := model.MutationFields[op.Name]
		if !ok {
			return nil, ndcerror.MutationFieldNotFound{Field: op.Name}
		}

		extractedHeaders, remainingArgs, err := headers.Extract(
			op.Arguments,
			cfg.HeadersArgumentName,
			headers.IdentityMapper,
			nil,
			cfg.ForwardHeaders,
			nil,
		)
		if err != nil {
			return nil, err
		}
		for k, v := range extractedHeaders {
			outboundHeaders[k] = v
		}

		sel, err := buildRootSelection(model, model.MutationTypeName, fmt.Sprintf("procedure_%d", i), op.Name, fieldDef, remainingArgs, headers.IdentityMapper, op.Fields, table)
		if err != nil {
			return nil, err
		}
		selections[i] = sel
	}

	reqArgHeaders, err := requestArgumentsHeaders(req.RequestArguments)
	if err != nil {
		return nil, err
	}
	for k, v := range reqArgHeaders {
		outboundHeaders[k] = v
	}

	values, defs := table.Finalize()

	doc := &document{
		operation:  "mutation",
		varDefs:    toVarDefs(defs),
		selections: selections,
	}

	return &Operation{
		Query:     doc.print(),
		Variables: values,
		Headers:   outboundHeaders,
	}, nil
}

// BuildQueryDocument translates an NDC query request into a single GraphQL
// query. When variable sets are attached, the root selection is repeated
// once per set, aliased q{k}__value, each with its own disjoint variable
// namespace.
func BuildQueryDocument(model *schema.Model, req *QueryRequest, cfg Config) (*Operation, error) {
	if model.QueryTypeName == "" {
		return nil, ndcerror.NoQueryType{}
	}

	valueField, ok := req.Query.Fields["__value"]
	if !ok {
		return nil, ndcerror.NoRequestQueryFields{}
	}
	if valueField.Kind != FieldColumn || valueField.Column != "__value" {
		return nil, ndcerror.NotSupported{Feature: "non-column __value field"}
	}
	if len(valueField.Arguments) != 0 {
		return nil, ndcerror.Unexpected{Message: "__value field must not declare arguments"}
	}

	fieldDef, ok := model.QueryFields[req.Collection]
	if !ok {
		return nil, ndcerror.QueryFieldNotFound{Field: req.Collection}
	}

	outboundHeaders := map[string]string{}
	for k, v := range cfg.ConnectionHeaders {
		outboundHeaders[k] = v
	}

	var (
		selections []*selectionNode
		allValues  = map[string]any{}
		allDefs    []paramtable.VariableDefinition
	)

	buildOne := func(namespace, alias string, mapper headers.Mapper) error {
		table := paramtable.New(namespace)

		extracted, remainingArgs, err := headers.Extract(
			argumentsToAny(req.Arguments),
			cfg.HeadersArgumentName,
			mapper,
			nil,
			cfg.ForwardHeaders,
			nil,
		)
		if err != nil {
			return err
		}
		for k, v := range extracted {
			outboundHeaders[k] = v
		}

		sel, err := buildRootSelection(model, model.QueryTypeName, alias, req.Collection, fieldDef, remainingArgs, mapper, valueField.Fields, table)
		if err != nil {
			return err
		}
		selections = append(selections, sel)

		values, defs := table.Finalize()
		for k, v := range values {
			allValues[k] = v
		}
		allDefs = append(allDefs, defs...)
		return nil
	}

	if req.Variables == nil {
		if err := buildOne("", "__value", literalOnlyMapper()); err != nil {
			return nil, err
		}
	} else {
		for k := 1; k <= len(req.Variables); k++ {
			binding := req.Variables[k-1]
			namespace := fmt.Sprintf("q%d_", k)
			alias := fmt.Sprintf("q%d__value", k)
			if err := buildOne(namespace, alias, variableBindingMapper(binding)); err != nil {
				return nil, err
			}
		}
	}

	reqArgHeaders, err := requestArgumentsHeaders(req.RequestArguments)
	if err != nil {
		return nil, err
	}
	for k, v := range reqArgHeaders {
		outboundHeaders[k] = v
	}

	doc := &document{
		operation:  "query",
		varDefs:    toVarDefs(allDefs),
		selections: selections,
	}

	return &Operation{
		Query:     doc.print(),
		Variables: allValues,
		Headers:   outboundHeaders,
	}, nil
}

// literalOnlyMapper resolves Argument values when no variable set is
// attached: every Argument must already be a Literal.
func literalOnlyMapper() headers.Mapper {
	return func(_ string, value any) (any, error) {
		arg, ok := value.(Argument)
		if !ok {
			return value, nil
		}
		if arg.Kind == ArgumentVariable {
			return nil, ndcerror.MissingVariable{Name: arg.Name}
		}
		return arg.Value, nil
	}
}

// variableBindingMapper resolves Argument values against one variable set's
// binding map.
func variableBindingMapper(binding map[string]any) headers.Mapper {
	return func(_ string, value any) (any, error) {
		arg, ok := value.(Argument)
		if !ok {
			return value, nil
		}
		if arg.Kind == ArgumentLiteral {
			return arg.Value, nil
		}
		v, ok := binding[arg.Name]
		if !ok {
			return nil, ndcerror.MissingVariable{Name: arg.Name}
		}
		return v, nil
	}
}

// argumentsToAny re-boxes a map[string]Argument as map[string]any so it can
// flow through the same headers.Extract used by mutations (whose arguments
// are already map[string]any of JSON literals).
func argumentsToAny(args map[string]Argument) map[string]any {
	out := make(map[string]any, len(args))
	for k, v := range args {
		out[k] = v
	}
	return out
}

// buildRootSelection builds one field selection, hoisting every
// caller-supplied argument through table (resolving it through mapper
// first) and recursing into the sub-selection.
func buildRootSelection(
	model *schema.Model,
	objectName string,
	alias string,
	fieldName string,
	fieldDef *schema.FieldDefinition,
	rawArgs map[string]any,
	mapper headers.Mapper,
	nested *NestedField,
	table *paramtable.Table,
) (*selectionNode, error) {
	argNodes, err := hoistArguments(objectName, fieldName, fieldDef, rawArgs, mapper, table)
	if err != nil {
		return nil, err
	}

	var subSelections []*selectionNode
	if nested != nil {
		objName := fieldDef.Type.UnwrapName()
		objDef := model.LookupObject(objName)
		if objDef == nil {
			return nil, ndcerror.ObjectTypeNotFound{TypeName: objName}
		}
		subSelections, err = buildSubSelections(model, objDef, nested, mapper, table)
		if err != nil {
			return nil, err
		}
	}

	return &selectionNode{
		alias:      alias,
		name:       fieldName,
		args:       argNodes,
		selections: subSelections,
	}, nil
}

// hoistArguments resolves and hoists every caller-supplied argument for a
// field in stable, sorted-by-name order.
func hoistArguments(
	objectName, fieldName string,
	fieldDef *schema.FieldDefinition,
	rawArgs map[string]any,
	mapper headers.Mapper,
	table *paramtable.Table,
) ([]argNode, error) {
	names := sortedKeys(rawArgs)

	nodes := make([]argNode, 0, len(rawArgs))
	for _, name := range names {
		declared, ok := fieldDef.Arguments[name]
		if !ok {
			return nil, ndcerror.ArgumentNotFound{Object: objectName, Field: fieldName, Argument: name}
		}

		resolved, err := mapper(name, rawArgs[name])
		if err != nil {
			return nil, err
		}

		ref := table.Insert(name, resolved, declared.Type)
		nodes = append(nodes, argNode{name: name, value: ref.String()})
	}
	return nodes, nil
}

// buildSubSelections recurses through a NestedField tree, resolving each
// column against the declaring object type.
func buildSubSelections(
	model *schema.Model,
	objDef *schema.TypeDefinition,
	nested *NestedField,
	mapper headers.Mapper,
	table *paramtable.Table,
) ([]*selectionNode, error) {
	switch nested.Kind {
	case NestedFieldArray:
		return buildSubSelections(model, objDef, nested.ArrayFields, mapper, table)
	case NestedFieldCollection:
		return nil, ndcerror.NotSupported{Feature: "relationships"}
	case NestedFieldObject:
		// fall through
	default:
		return nil, ndcerror.Unexpected{Message: "unknown nested field kind"}
	}

	aliases := sortedKeys(nested.Fields)

	selections := make([]*selectionNode, 0, len(nested.Fields))
	for _, alias := range aliases {
		field := nested.Fields[alias]
		if field.Kind != FieldColumn {
			return nil, ndcerror.NotSupported{Feature: "relationships"}
		}

		columnFieldDef, ok := objDef.Fields[field.Column]
		if !ok {
			return nil, ndcerror.ObjectFieldNotFound{Object: objDef.Name, Field: field.Column}
		}

		sel, err := buildRootSelection(
			model,
			objDef.Name,
			alias,
			field.Column,
			columnFieldDef,
			argumentsToAny(field.Arguments),
			mapper,
			field.Fields,
			table,
		)
		if err != nil {
			return nil, err
		}
		selections = append(selections, sel)
	}

	return selections, nil
}

func toVarDefs(defs []paramtable.VariableDefinition) []varDef {
	out := make([]varDef, len(defs))
	for i, d := range defs {
		out[i] = varDef{name: d.Name, typ: d.Type}
	}
	return out
}
