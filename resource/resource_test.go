package resource

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/broady/restdata/typeindex"
)

func ref(name string) typeindex.TypeRef {
	return typeindex.Ref("example.com/shop", name)
}

func TestMarshalJSON(t *testing.T) {
	d := &EntityAccess{
		Interface: ref("UserResource"),
		Entity:    ref("User"),
		ID:        typeindex.TypeRef{Name: "int64"},
		Path:      "user",
	}
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"kind": "entity",
		"declaringInterface": "example.com/shop.UserResource",
		"entityType": "example.com/shop.User",
		"idType": "int64",
		"path": "user"
	}`, string(data))

	r := &RepositoryAccess{
		Interface:  ref("UserRepoResource"),
		Repository: ref("UserRepository"),
		Entity:     ref("User"),
		ID:         typeindex.TypeRef{Name: "int64"},
		Path:       "user-repo",
	}
	data, err = json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"kind": "repository",
		"declaringInterface": "example.com/shop.UserRepoResource",
		"repositoryType": "example.com/shop.UserRepository",
		"entityType": "example.com/shop.User",
		"idType": "int64",
		"path": "user-repo"
	}`, string(data))
}

func TestUnmarshalJSON(t *testing.T) {
	in := []Descriptor{
		&EntityAccess{Interface: ref("A"), Entity: ref("User"), ID: typeindex.TypeRef{Name: "string"}, Path: "a"},
		&RepositoryAccess{Interface: ref("B"), Repository: ref("Repo"), Entity: ref("User"), ID: typeindex.TypeRef{Name: "int"}, Path: "b"},
	}
	for _, want := range in {
		data, err := json.Marshal(want)
		require.NoError(t, err)

		got, err := UnmarshalJSON(data)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := UnmarshalJSON([]byte(`{"kind":"graph"}`))
	assert.EqualError(t, err, `unknown descriptor kind "graph"`)
}

func TestMarshalYAML(t *testing.T) {
	d := &RepositoryAccess{
		Interface:  ref("OrderResource"),
		Repository: ref("Orders"),
		Entity:     ref("Order"),
		ID:         typeindex.TypeRef{Name: "string"},
		Path:       "orders",
	}
	data, err := yaml.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `kind: repository
declaringInterface: example.com/shop.OrderResource
repositoryType: example.com/shop.Orders
entityType: example.com/shop.Order
idType: string
path: orders
`, string(data))
}

func TestValidate(t *testing.T) {
	valid := &EntityAccess{Interface: ref("A"), Entity: ref("User"), ID: typeindex.TypeRef{Name: "int"}, Path: "a"}
	assert.NoError(t, Validate(valid))

	tests := []struct {
		name string
		d    Descriptor
		want string
	}{
		{
			name: "type parameter",
			d:    &EntityAccess{Interface: ref("A"), Entity: typeindex.TypeRef{Name: "T", Param: true}, ID: typeindex.TypeRef{Name: "int"}, Path: "a"},
			want: "invalid entity descriptor for example.com/shop.A: entityType must be a concrete type",
		},
		{
			name: "missing repository",
			d:    &RepositoryAccess{Interface: ref("B"), Entity: ref("User"), ID: typeindex.TypeRef{Name: "int"}, Path: "b"},
			want: "invalid repository descriptor for example.com/shop.B: repositoryType must be a concrete type",
		},
		{
			name: "empty path",
			d:    &EntityAccess{Interface: ref("A"), Entity: ref("User"), ID: typeindex.TypeRef{Name: "int"}},
			want: "invalid entity descriptor for example.com/shop.A: path must not be empty",
		},
		{
			name: "nested path",
			d:    &EntityAccess{Interface: ref("A"), Entity: ref("User"), ID: typeindex.TypeRef{Name: "int"}, Path: "a/b"},
			want: "invalid entity descriptor for example.com/shop.A: path must be a single path segment",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, Validate(tt.d), tt.want)
		})
	}

	assert.EqualError(t, Validate(nil), "nil descriptor")
}
