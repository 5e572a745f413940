// Package paramtable implements the per-request parameter table: an
// append-only table that hoists every argument value encountered while
// building a GraphQL document into a named variable, so that no literal
// value ever appears inline in the emitted operation text.
package paramtable

import (
	"fmt"

	"github.com/hasura/ndc-graphql/internal/schema"
)

// VariableRef is the placeholder emitted into the GraphQL AST in place of a
// literal value, e.g. "$arg_1_id".
type VariableRef string

// String renders the reference including its leading "$", as it appears in
// a GraphQL document.
func (v VariableRef) String() string { return "$" + string(v) }

// Name returns the bare variable name, without the leading "$".
func (v VariableRef) Name() string { return string(v) }

// VariableDefinition is one entry of a GraphQL operation's variable
// definition list: "$name: Type".
type VariableDefinition struct {
	Name string
	Type *schema.TypeRef
}

// Table is owned exclusively by one document-builder invocation and
// discarded once the operation is finalized.
type Table struct {
	namespace string
	counter   int
	values    map[string]any
	defs      []VariableDefinition
}

// New creates a Table whose variable names are prefixed with namespace, used
// to keep variables unique across multiplexed operations.
func New(namespace string) *Table {
	return &Table{
		namespace: namespace,
		values:    map[string]any{},
	}
}

// Insert records value under a freshly minted variable name derived from
// name and returns the placeholder to emit into the GraphQL AST.
func (t *Table) Insert(name string, value any, typ *schema.TypeRef) VariableRef {
	t.counter++
	varName := fmt.Sprintf("%sarg_%d_%s", t.namespace, t.counter, name)

	t.values[varName] = value
	t.defs = append(t.defs, VariableDefinition{Name: varName, Type: typ})

	return VariableRef(varName)
}

// Finalize returns the accumulated variable value map and variable
// definition list. The Table must not be used after calling Finalize.
func (t *Table) Finalize() (map[string]any, []VariableDefinition) {
	return t.values, t.defs
}
