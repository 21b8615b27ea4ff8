package marker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/restdata/typeindex"
)

func TestDefault(t *testing.T) {
	contracts := Default().Contracts()
	require.Len(t, contracts, 2)

	assert.Equal(t, "EntityResource", contracts[0].Name())
	assert.Equal(t, 2, contracts[0].Arity())
	assert.Equal(t, []Role{RoleEntity, RoleID}, contracts[0].Roles)

	assert.Equal(t, "RepositoryResource", contracts[1].Name())
	assert.Equal(t, 3, contracts[1].Arity())
	assert.Equal(t, []Role{RoleRepository, RoleEntity, RoleID}, contracts[1].Roles)
}

func TestTable_Immutable(t *testing.T) {
	contracts := Default().Contracts()
	contracts[0].Roles[0] = "Mutated"

	c, ok := Default().Lookup(EntityResource.ID)
	require.True(t, ok)
	assert.Equal(t, RoleEntity, c.Roles[0])

	c.Roles[1] = "Mutated"
	assert.Equal(t, RoleID, Default().Contracts()[0].Roles[1])
}

func TestTable_Lookup(t *testing.T) {
	_, ok := Default().Lookup(typeindex.Ref(Path, "Operations"))
	assert.False(t, ok)

	c, ok := Default().Lookup(typeindex.Ref(Path, "RepositoryResource"))
	require.True(t, ok)
	assert.Equal(t, RepositoryResource.ID, c.ID)
}

func TestNewTable_Panics(t *testing.T) {
	id := typeindex.Ref("example.com/m", "M")
	tests := []struct {
		name      string
		contracts []Contract
		want      string
	}{
		{"no identity", []Contract{{Roles: []Role{RoleEntity, RoleID}}}, "marker: contract without identity"},
		{"duplicate", []Contract{EntityResource, EntityResource}, "marker: duplicate contract github.com/broady/restdata.EntityResource"},
		{"arity one", []Contract{{ID: id, Roles: []Role{RoleEntity}}}, "marker: contract example.com/m.M has arity 1, want 2 or 3"},
		{"repeated role", []Contract{{ID: id, Roles: []Role{RoleEntity, RoleEntity}}}, "marker: contract example.com/m.M repeats role EntityType"},
		{"missing id", []Contract{{ID: id, Roles: []Role{RoleEntity, RoleRepository}}}, "marker: contract example.com/m.M needs roles EntityType and IdType"},
		{"arity three without repository", []Contract{{ID: id, Roles: []Role{RoleEntity, RoleID, "Extra"}}}, "marker: contract example.com/m.M of arity 3 needs role RepositoryType"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.PanicsWithValue(t, tt.want, func() { NewTable(tt.contracts...) })
		})
	}
}
