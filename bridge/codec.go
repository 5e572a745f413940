package bridge

import (
	"encoding/json"

	ndcsdkschema "github.com/hasura/ndc-sdk-go/schema"

	"github.com/hasura/ndc-graphql/internal/explain"
	"github.com/hasura/ndc-graphql/internal/ndcerror"
	"github.com/hasura/ndc-graphql/internal/ndcschema"
	"github.com/hasura/ndc-graphql/internal/querybuilder"
	"github.com/hasura/ndc-graphql/internal/response"
)

// decodeQueryRequest converts the real SDK's wire QueryRequest into the
// narrow querybuilder.QueryRequest the document builders operate on. The
// NDC wire Argument is itself a {type: "literal"|"variable", value|name}
// tagged union, mirrored directly by querybuilder.Argument.
func decodeQueryRequest(req *ndcsdkschema.QueryRequest) (*querybuilder.QueryRequest, error) {
	args, err := decodeArguments(req.Arguments)
	if err != nil {
		return nil, err
	}

	query, err := decodeQueryBody(req.Query)
	if err != nil {
		return nil, err
	}

	// The wire protocol revision the SDK pins (NDC 0.1.6) has no
	// request-level arguments, so RequestArguments stays nil here; the
	// translation core still honors it for callers constructing requests
	// directly.
	return &querybuilder.QueryRequest{
		Collection: req.Collection,
		Query:      query,
		Arguments:  args,
		Variables:  decodeVariables(req.Variables),
	}, nil
}

// decodeVariables re-boxes the wire variable sets as plain binding maps,
// keeping nil (no variables attached) distinct from empty (multiplexed with
// zero sets).
func decodeVariables[T ~map[string]any](vars []T) []map[string]any {
	if vars == nil {
		return nil
	}
	out := make([]map[string]any, len(vars))
	for i, v := range vars {
		out[i] = map[string]any(v)
	}
	return out
}

func decodeQueryBody(q ndcsdkschema.Query) (querybuilder.Query, error) {
	if len(q.Aggregates) > 0 {
		return querybuilder.Query{}, ndcerror.NotSupported{Feature: "aggregates"}
	}
	if q.Predicate != nil {
		return querybuilder.Query{}, ndcerror.NotSupported{Feature: "filtering"}
	}
	if q.OrderBy != nil {
		return querybuilder.Query{}, ndcerror.NotSupported{Feature: "order_by"}
	}

	fields, err := decodeFieldMap(q.Fields)
	if err != nil {
		return querybuilder.Query{}, err
	}
	return querybuilder.Query{Fields: fields}, nil
}

func decodeFieldMap(raw map[string]ndcsdkschema.Field) (map[string]querybuilder.Field, error) {
	out := make(map[string]querybuilder.Field, len(raw))
	for alias, f := range raw {
		field, err := decodeField(f)
		if err != nil {
			return nil, err
		}
		out[alias] = field
	}
	return out, nil
}

func decodeField(f ndcsdkschema.Field) (querybuilder.Field, error) {
	columnField, err := f.AsColumn()
	if err != nil {
		// Not a Column field: Relationship, handled generically as
		// NotSupported by the document builder once it recurses into it.
		return querybuilder.Field{Kind: querybuilder.FieldRelationship}, nil
	}

	args, err := decodeArguments(columnField.Arguments)
	if err != nil {
		return querybuilder.Field{}, err
	}

	nested, err := decodeNestedField(columnField.Fields)
	if err != nil {
		return querybuilder.Field{}, err
	}

	return querybuilder.Field{
		Kind:      querybuilder.FieldColumn,
		Column:    columnField.Column,
		Arguments: args,
		Fields:    nested,
	}, nil
}

func decodeNestedField(nf ndcsdkschema.NestedField) (*querybuilder.NestedField, error) {
	if nf == nil {
		return nil, nil
	}

	if obj, err := nf.AsObject(); err == nil {
		fields, err := decodeFieldMap(obj.Fields)
		if err != nil {
			return nil, err
		}
		return &querybuilder.NestedField{Kind: querybuilder.NestedFieldObject, Fields: fields}, nil
	}

	if arr, err := nf.AsArray(); err == nil {
		inner, err := decodeNestedField(arr.Fields)
		if err != nil {
			return nil, err
		}
		return &querybuilder.NestedField{Kind: querybuilder.NestedFieldArray, ArrayFields: inner}, nil
	}

	return &querybuilder.NestedField{Kind: querybuilder.NestedFieldCollection}, nil
}

func decodeArguments(raw map[string]ndcsdkschema.Argument) (map[string]querybuilder.Argument, error) {
	out := make(map[string]querybuilder.Argument, len(raw))
	for name, a := range raw {
		if lit, err := a.AsLiteral(); err == nil {
			out[name] = querybuilder.Argument{Kind: querybuilder.ArgumentLiteral, Value: lit.Value}
			continue
		}
		if v, err := a.AsVariable(); err == nil {
			out[name] = querybuilder.Argument{Kind: querybuilder.ArgumentVariable, Name: v.Name}
			continue
		}
		return nil, ndcerror.Unexpected{Message: "argument " + name + " is neither literal nor variable"}
	}
	return out, nil
}

func decodeMutationRequest(req *ndcsdkschema.MutationRequest) (*querybuilder.MutationRequest, error) {
	ops := make([]querybuilder.Procedure, len(req.Operations))
	for i, o := range req.Operations {
		var args map[string]any
		if err := json.Unmarshal(o.Arguments, &args); err != nil {
			return nil, ndcerror.Unexpected{Message: "failed to decode mutation operation arguments: " + err.Error()}
		}

		nested, err := decodeNestedField(o.Fields)
		if err != nil {
			return nil, err
		}

		ops[i] = querybuilder.Procedure{Name: o.Name, Arguments: args, Fields: nested}
	}

	return &querybuilder.MutationRequest{Operations: ops}, nil
}

// --- Encoders: internal result shapes -> real SDK wire shapes ---

func encodeSchemaResponse(s *ndcschema.SchemaResponse) ndcsdkschema.SchemaResponse {
	resp := ndcsdkschema.SchemaResponse{
		ScalarTypes: map[string]ndcsdkschema.ScalarType{},
		ObjectTypes: map[string]ndcsdkschema.ObjectType{},
		Collections: []ndcsdkschema.CollectionInfo{},
		Functions:   []ndcsdkschema.FunctionInfo{},
		Procedures:  []ndcsdkschema.ProcedureInfo{},
	}

	for name, st := range s.ScalarTypes {
		resp.ScalarTypes[name] = encodeScalarType(st)
	}
	for name, ot := range s.ObjectTypes {
		resp.ObjectTypes[name] = encodeObjectType(ot)
	}
	for _, name := range s.FunctionOrder {
		op := s.Functions[name]
		resp.Functions = append(resp.Functions, ndcsdkschema.FunctionInfo{
			Name:        name,
			Description: stringPtr(op.Description),
			Arguments:   encodeArgumentInfoMap(op.Arguments),
			ResultType:  encodeType(op.ResultType),
		})
	}
	for _, name := range s.ProcedureOrder {
		op := s.Procedures[name]
		resp.Procedures = append(resp.Procedures, ndcsdkschema.ProcedureInfo{
			Name:        name,
			Description: stringPtr(op.Description),
			Arguments:   encodeArgumentInfoMap(op.Arguments),
			ResultType:  encodeType(op.ResultType),
		})
	}

	return resp
}

func encodeScalarType(st ndcschema.ScalarType) ndcsdkschema.ScalarType {
	switch st.Representation {
	case "json":
		return ndcsdkschema.ScalarType{
			AggregateFunctions:  ndcsdkschema.ScalarTypeAggregateFunctions{},
			ComparisonOperators: map[string]ndcsdkschema.ComparisonOperatorDefinition{},
			Representation:      ndcsdkschema.NewTypeRepresentationJSON().Encode(),
		}
	case "enum":
		return ndcsdkschema.ScalarType{
			AggregateFunctions:  ndcsdkschema.ScalarTypeAggregateFunctions{},
			ComparisonOperators: map[string]ndcsdkschema.ComparisonOperatorDefinition{},
			Representation:      ndcsdkschema.NewTypeRepresentationEnum(st.OneOf).Encode(),
		}
	default:
		return ndcsdkschema.ScalarType{
			AggregateFunctions:  ndcsdkschema.ScalarTypeAggregateFunctions{},
			ComparisonOperators: map[string]ndcsdkschema.ComparisonOperatorDefinition{},
		}
	}
}

func encodeObjectType(ot ndcschema.ObjectType) ndcsdkschema.ObjectType {
	fields := make(map[string]ndcsdkschema.ObjectField, len(ot.Fields))
	for name, f := range ot.Fields {
		fields[name] = ndcsdkschema.ObjectField{
			Description: stringPtr(f.Description),
			Type:        encodeType(f.Type),
		}
	}
	return ndcsdkschema.ObjectType{Description: stringPtr(ot.Description), Fields: fields}
}

func encodeArgumentInfoMap(args map[string]ndcschema.ArgumentInfo) map[string]ndcsdkschema.ArgumentInfo {
	out := make(map[string]ndcsdkschema.ArgumentInfo, len(args))
	for name, a := range args {
		out[name] = ndcsdkschema.ArgumentInfo{Description: stringPtr(a.Description), Type: encodeType(a.Type)}
	}
	return out
}

func encodeType(t *ndcschema.Type) ndcsdkschema.Type {
	return encodeTypeEncoder(t).Encode()
}

func encodeTypeEncoder(t *ndcschema.Type) ndcsdkschema.TypeEncoder {
	if t == nil {
		return ndcsdkschema.NewNamedType("Unknown")
	}
	switch t.Kind {
	case ndcschema.TypeKindNamed:
		return ndcsdkschema.NewNamedType(t.Name)
	case ndcschema.TypeKindNullable:
		return ndcsdkschema.NewNullableType(encodeTypeEncoder(t.Element))
	case ndcschema.TypeKindArray:
		return ndcsdkschema.NewArrayType(encodeTypeEncoder(t.Element))
	default:
		return ndcsdkschema.NewNamedType("Unknown")
	}
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func encodeQueryResponse(rowSets []response.RowSet) ndcsdkschema.QueryResponse {
	out := make(ndcsdkschema.QueryResponse, len(rowSets))
	for i, rs := range rowSets {
		out[i] = ndcsdkschema.RowSet{Rows: encodeRows(rs.Rows), Aggregates: nil}
	}
	return out
}

func encodeRows(rows []any) []map[string]any {
	out := make([]map[string]any, len(rows))
	for i, r := range rows {
		out[i] = r.(map[string]any)
	}
	return out
}

func encodeMutationResponse(results []any) *ndcsdkschema.MutationResponse {
	opResults := make([]ndcsdkschema.MutationOperationResults, len(results))
	for i, r := range results {
		opResults[i] = ndcsdkschema.NewProcedureResult(r).Encode()
	}
	return &ndcsdkschema.MutationResponse{OperationResults: opResults}
}

func encodeExplainResponse(d explain.Details) *ndcsdkschema.ExplainResponse {
	out := make(map[string]string, len(d))
	for k, v := range d {
		out[k] = v
	}
	return &ndcsdkschema.ExplainResponse{Details: out}
}
