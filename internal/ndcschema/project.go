package ndcschema

import (
	"sort"

	schemamodel "github.com/hasura/ndc-graphql/internal/schema"
)

// Config carries the header-forwarding and naming knobs that change the
// shape of the projected schema.
type Config struct {
	HeadersTypeName     string
	HeadersArgumentName string

	ResponseHeadersField   string // default "headers"
	ResponseResultField    string // default "response"
	ResponseTypeNamePrefix string // default "_"
	ResponseTypeNameSuffix string // default "Response"

	RequestForwardHeadersEnabled  bool // len(request.forward_headers) > 0
	ResponseForwardHeadersEnabled bool // len(response.forward_headers) > 0
}

// Project builds the NDC schema response from model. It is a pure function
// of (model, cfg): calling it twice with the same inputs produces
// byte-for-byte identical output once serialized, because every map it
// walks is converted into name-sorted output and functions/procedures are
// emitted in the root type's original field order.
func Project(model *schemamodel.Model, cfg Config) (*SchemaResponse, error) {
	resp := &SchemaResponse{
		ScalarTypes: map[string]ScalarType{},
		ObjectTypes: map[string]ObjectType{},
		Collections: []string{},
		Functions:   map[string]OperationInfo{},
		Procedures:  map[string]OperationInfo{},
	}

	for _, name := range sortedTypeNames(model.Types) {
		td := model.Types[name]
		switch td.Kind {
		case schemamodel.TypeKindScalar:
			resp.ScalarTypes[name] = ScalarType{}
		case schemamodel.TypeKindEnum:
			values := make([]string, len(td.EnumValues))
			for i, v := range td.EnumValues {
				values[i] = v.Name
			}
			resp.ScalarTypes[name] = ScalarType{Representation: "enum", OneOf: values}
		case schemamodel.TypeKindObject, schemamodel.TypeKindInputObject:
			resp.ObjectTypes[name] = projectObjectType(td)
		}
	}

	if cfg.RequestForwardHeadersEnabled {
		resp.ScalarTypes[cfg.HeadersTypeName] = ScalarType{Representation: "json"}
	}

	for _, name := range model.QueryFieldOrder {
		fd := model.QueryFields[name]
		op := projectOperation(fd, cfg)
		if cfg.ResponseForwardHeadersEnabled {
			wrapperName := cfg.ResponseTypeNamePrefix + name + "Query" + cfg.ResponseTypeNameSuffix
			resp.ObjectTypes[wrapperName] = wrapperObjectType(op.ResultType, cfg)
			op.ResultType = NamedType(wrapperName)
		}
		resp.Functions[name] = op
		resp.FunctionOrder = append(resp.FunctionOrder, name)
	}

	for _, name := range model.MutationFieldOrder {
		fd := model.MutationFields[name]
		op := projectOperation(fd, cfg)
		if cfg.ResponseForwardHeadersEnabled {
			wrapperName := cfg.ResponseTypeNamePrefix + name + "Mutation" + cfg.ResponseTypeNameSuffix
			resp.ObjectTypes[wrapperName] = wrapperObjectType(op.ResultType, cfg)
			op.ResultType = NamedType(wrapperName)
		}
		resp.Procedures[name] = op
		resp.ProcedureOrder = append(resp.ProcedureOrder, name)
	}

	return resp, nil
}

func projectObjectType(td *schemamodel.TypeDefinition) ObjectType {
	fields := map[string]ObjectField{}
	switch td.Kind {
	case schemamodel.TypeKindObject:
		for name, fd := range td.Fields {
			fields[name] = ObjectField{Description: fd.Description, Type: mapTypeRef(fd.Type)}
		}
	case schemamodel.TypeKindInputObject:
		for name, fd := range td.InputFields {
			fields[name] = ObjectField{Description: fd.Description, Type: mapTypeRef(fd.Type)}
		}
	}
	return ObjectType{Description: td.Description, Fields: fields}
}

func projectOperation(fd *schemamodel.FieldDefinition, cfg Config) OperationInfo {
	args := map[string]ArgumentInfo{}
	for name, a := range fd.Arguments {
		args[name] = ArgumentInfo{Description: a.Description, Type: mapTypeRef(a.Type)}
	}
	if cfg.RequestForwardHeadersEnabled {
		args[cfg.HeadersArgumentName] = ArgumentInfo{Type: NamedType(cfg.HeadersTypeName)}
	}
	return OperationInfo{
		Description: fd.Description,
		Arguments:   args,
		ResultType:  mapTypeRef(fd.Type),
	}
}

func wrapperObjectType(resultType *Type, cfg Config) ObjectType {
	return ObjectType{
		Fields: map[string]ObjectField{
			cfg.ResponseHeadersField: {Type: NullableOf(NamedType(cfg.HeadersTypeName))},
			cfg.ResponseResultField:  {Type: resultType},
		},
	}
}

// mapTypeRef maps a GraphQL type reference to its NDC counterpart: named
// and list references are nullable unless wrapped in NonNull, and a
// doubly-nested NonNull(NonNull(t)) collapses to a single non-null.
func mapTypeRef(t *schemamodel.TypeRef) *Type {
	if t == nil {
		return nil
	}
	switch t.Kind {
	case schemamodel.KindNamed:
		return NullableOf(NamedType(t.Name))
	case schemamodel.KindList:
		return NullableOf(ArrayOf(mapTypeRef(t.Of)))
	case schemamodel.KindNonNull:
		return mapNonNull(t.Of)
	default:
		return nil
	}
}

// mapNonNull maps the inner reference of a NonNull wrapper, collapsing a
// doubly-nested NonNull(NonNull(t)) by simply mapping t's NonNull form once.
func mapNonNull(inner *schemamodel.TypeRef) *Type {
	if inner == nil {
		return nil
	}
	switch inner.Kind {
	case schemamodel.KindNamed:
		return NamedType(inner.Name)
	case schemamodel.KindList:
		return ArrayOf(mapTypeRef(inner.Of))
	case schemamodel.KindNonNull:
		// NonNull(NonNull(t)): collapse to a single non-null wrapper.
		return mapNonNull(inner.Of)
	default:
		return nil
	}
}

func sortedTypeNames(types map[string]*schemamodel.TypeDefinition) []string {
	names := make([]string, 0, len(types))
	for name := range types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
