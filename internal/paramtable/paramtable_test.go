package paramtable_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hasura/ndc-graphql/internal/paramtable"
	"github.com/hasura/ndc-graphql/internal/schema"
)

func TestInsertMintsUniqueSequentialNames(t *testing.T) {
	table := paramtable.New("")

	ref1 := table.Insert("id", 1, schema.NamedTypeRef("ID"))
	ref2 := table.Insert("id", 2, schema.NamedTypeRef("ID"))

	require.Equal(t, "$arg_1_id", ref1.String())
	require.Equal(t, "$arg_2_id", ref2.String())
	require.NotEqual(t, ref1.Name(), ref2.Name())

	values, defs := table.Finalize()
	require.Equal(t, 1, values["arg_1_id"])
	require.Equal(t, 2, values["arg_2_id"])
	require.Len(t, defs, 2)
}

func TestNamespacePrefixesEveryVariable(t *testing.T) {
	table := paramtable.New("q1_")
	ref := table.Insert("name", "alice", schema.NamedTypeRef("String"))

	require.Equal(t, "$q1_arg_1_name", ref.String())
}
