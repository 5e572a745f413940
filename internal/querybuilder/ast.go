package querybuilder

import (
	"fmt"
	"strings"

	"github.com/hasura/ndc-graphql/internal/schema"
)

// document is a minimal GraphQL operation document AST: just enough to
// render the shapes the document builders produce. It is printed with
// two-space indentation.
type document struct {
	operation  string // "query" or "mutation"
	varDefs    []varDef
	selections []*selectionNode
}

type varDef struct {
	name string
	typ  *schema.TypeRef
}

type argNode struct {
	name  string
	value string // already-rendered GraphQL value text, e.g. "$arg_1_id"
}

type selectionNode struct {
	alias      string // "" means no alias (alias == field name)
	name       string
	args       []argNode
	selections []*selectionNode
}

func (d *document) print() string {
	var b strings.Builder
	b.WriteString(d.operation)
	if len(d.varDefs) > 0 {
		b.WriteString("(")
		for i, vd := range d.varDefs {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "$%s: %s", vd.name, renderGraphQLType(vd.typ))
		}
		b.WriteString(")")
	}
	b.WriteString(" ")
	printSelectionSet(&b, d.selections, 0)
	return b.String()
}

func printSelectionSet(b *strings.Builder, selections []*selectionNode, depth int) {
	b.WriteString("{")
	if len(selections) == 0 {
		b.WriteString(" }")
		return
	}
	b.WriteString("\n")
	indent := strings.Repeat("  ", depth+1)
	for _, sel := range selections {
		b.WriteString(indent)
		if sel.alias != "" && sel.alias != sel.name {
			fmt.Fprintf(b, "%s: %s", sel.alias, sel.name)
		} else {
			b.WriteString(sel.name)
		}
		if len(sel.args) > 0 {
			b.WriteString("(")
			for i, a := range sel.args {
				if i > 0 {
					b.WriteString(", ")
				}
				fmt.Fprintf(b, "%s: %s", a.name, a.value)
			}
			b.WriteString(")")
		}
		if len(sel.selections) > 0 {
			b.WriteString(" ")
			printSelectionSet(b, sel.selections, depth+1)
		}
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString("}")
}

// renderGraphQLType prints a TypeRef in SDL type-reference syntax, e.g.
// "[Int!]!".
func renderGraphQLType(t *schema.TypeRef) string {
	if t == nil {
		return ""
	}
	switch t.Kind {
	case schema.KindNamed:
		return t.Name
	case schema.KindList:
		return "[" + renderGraphQLType(t.Of) + "]"
	case schema.KindNonNull:
		return renderGraphQLType(t.Of) + "!"
	default:
		return ""
	}
}
