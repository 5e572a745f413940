package schema

import (
	"strings"

	"github.com/samsarahq/go/oops"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/hasura/ndc-graphql/internal/ndcerror"
)

// IngestConfig carries the naming knobs that ingestion must avoid colliding
// with while synthesizing response-wrapper types and headers arguments.
type IngestConfig struct {
	HeadersTypeName        string // default "_HeaderMap"
	HeadersArgumentName    string // default "_headers"
	ResponseTypeNamePrefix string // default "_"
	ResponseTypeNameSuffix string // default "Response"
}

// DefaultIngestConfig returns the default naming knobs.
func DefaultIngestConfig() IngestConfig {
	return IngestConfig{
		HeadersTypeName:        "_HeaderMap",
		HeadersArgumentName:    "_headers",
		ResponseTypeNamePrefix: "_",
		ResponseTypeNameSuffix: "Response",
	}
}

// BuildModel parses sdl and reduces it into a Model. The SDL is parsed
// without full GraphQL schema validation on purpose: duplicate top-level
// type definitions are tolerated (last writer wins) and dangling type
// references only surface later, as translation errors, matching how the
// configuration CLI writes schema.graphql without revalidating it.
func BuildModel(sdl string, cfg IngestConfig) (*Model, error) {
	source := &ast.Source{Name: "schema.graphql", Input: sdl}

	doc, err := parser.ParseSchema(source)
	if err != nil {
		return nil, oops.Wrapf(err, "parsing upstream GraphQL SDL")
	}

	if len(doc.Schema) == 0 {
		return nil, ndcerror.MissingSchemaType{}
	}

	var queryTypeName, mutationTypeName, subscriptionTypeName string
	for _, sd := range doc.Schema {
		for _, op := range sd.OperationTypes {
			switch op.Operation {
			case ast.Query:
				queryTypeName = op.Type
			case ast.Mutation:
				mutationTypeName = op.Type
			case ast.Subscription:
				subscriptionTypeName = op.Type
			}
		}
	}

	// Collect the last definition seen for every name. The root object types
	// are kept aside: their fields become functions/procedures, not object
	// types, and the subscription root is dropped entirely.
	defs := make(map[string]*ast.Definition)
	var queryRootDef, mutationRootDef *ast.Definition
	for _, def := range doc.Definitions {
		switch {
		case def.Name == queryTypeName:
			if def.Kind == ast.Object {
				queryRootDef = def
			}
		case def.Name == mutationTypeName:
			if def.Kind == ast.Object {
				mutationRootDef = def
			}
		case def.Name == subscriptionTypeName:
		case shouldSkipTypeDef(def):
		default:
			defs[def.Name] = def
		}
	}

	types := make(map[string]*TypeDefinition, len(defs))
	for name, def := range defs {
		switch def.Kind {
		case ast.Scalar:
			types[name] = &TypeDefinition{Kind: TypeKindScalar, Name: name, Description: def.Description}
		case ast.Enum:
			td := &TypeDefinition{Kind: TypeKindEnum, Name: name, Description: def.Description}
			for _, v := range def.EnumValues {
				td.EnumValues = append(td.EnumValues, EnumValue{Name: v.Name, Description: v.Description})
			}
			types[name] = td
		case ast.Object:
			td := &TypeDefinition{Kind: TypeKindObject, Name: name, Description: def.Description, Fields: map[string]*FieldDefinition{}}
			for _, f := range def.Fields {
				if strings.HasPrefix(f.Name, "__") {
					continue
				}
				td.Fields[f.Name] = buildFieldDefinition(f)
			}
			types[name] = td
		case ast.InputObject:
			td := &TypeDefinition{Kind: TypeKindInputObject, Name: name, Description: def.Description, InputFields: map[string]*InputFieldDefinition{}}
			for _, f := range def.Fields {
				td.InputFields[f.Name] = &InputFieldDefinition{
					Type:        convertType(f.Type),
					Description: f.Description,
				}
			}
			types[name] = td
		}
	}

	if _, ok := types[cfg.HeadersTypeName]; ok {
		return nil, ndcerror.HeaderTypeNameConflict{TypeName: cfg.HeadersTypeName}
	}

	model := &Model{
		QueryTypeName:    queryTypeName,
		MutationTypeName: mutationTypeName,
		Types:            types,
		QueryFields:      map[string]*FieldDefinition{},
		MutationFields:   map[string]*FieldDefinition{},
	}

	if queryRootDef != nil {
		for _, f := range queryRootDef.Fields {
			if strings.HasPrefix(f.Name, "__") {
				continue
			}
			responseTypeName := cfg.ResponseTypeNamePrefix + f.Name + "Query" + cfg.ResponseTypeNameSuffix
			if _, exists := types[responseTypeName]; exists {
				return nil, ndcerror.QueryResponseTypeConflict{Field: f.Name, TypeName: responseTypeName}
			}

			fd := buildFieldDefinition(f)
			if _, exists := fd.Arguments[cfg.HeadersArgumentName]; exists {
				return nil, ndcerror.QueryHeaderArgumentConflict{Field: f.Name, Argument: cfg.HeadersArgumentName}
			}

			model.QueryFields[f.Name] = fd
			model.QueryFieldOrder = append(model.QueryFieldOrder, f.Name)
		}
	}

	if mutationRootDef != nil {
		for _, f := range mutationRootDef.Fields {
			if strings.HasPrefix(f.Name, "__") {
				continue
			}
			responseTypeName := cfg.ResponseTypeNamePrefix + f.Name + "Mutation" + cfg.ResponseTypeNameSuffix
			if _, exists := types[responseTypeName]; exists {
				return nil, ndcerror.MutationResponseTypeConflict{Field: f.Name, TypeName: responseTypeName}
			}

			fd := buildFieldDefinition(f)
			if _, exists := fd.Arguments[cfg.HeadersArgumentName]; exists {
				return nil, ndcerror.MutationHeaderArgumentConflict{Field: f.Name, Argument: cfg.HeadersArgumentName}
			}

			model.MutationFields[f.Name] = fd
			model.MutationFieldOrder = append(model.MutationFieldOrder, f.Name)
		}
	}

	return model, nil
}

func buildFieldDefinition(f *ast.FieldDefinition) *FieldDefinition {
	args := make(map[string]*ArgumentDefinition, len(f.Arguments))
	for _, a := range f.Arguments {
		args[a.Name] = &ArgumentDefinition{
			Type:        convertType(a.Type),
			Description: a.Description,
		}
	}
	return &FieldDefinition{
		Type:        convertType(f.Type),
		Arguments:   args,
		Description: f.Description,
	}
}

// convertType maps a gqlparser AST type reference to our TypeRef, collapsing
// the Named | List | NonNull structure 1:1.
func convertType(t *ast.Type) *TypeRef {
	if t == nil {
		return nil
	}
	var ref *TypeRef
	if t.NamedType != "" {
		ref = NamedTypeRef(t.NamedType)
	} else {
		ref = ListOf(convertType(t.Elem))
	}
	if t.NonNull {
		ref = NonNullOf(ref)
	}
	return ref
}

// shouldSkipTypeDef drops the definitions the bridge does not model:
// introspection types, unions, and interfaces.
func shouldSkipTypeDef(def *ast.Definition) bool {
	if strings.HasPrefix(def.Name, "__") {
		return true
	}
	switch def.Kind {
	case ast.Union, ast.Interface:
		return true
	}
	return false
}
