package discover

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/broady/restdata/resource"
	"github.com/broady/restdata/typeindex"
)

const testdata = "github.com/broady/restdata/discover/testdata/"

func find(t *testing.T, pkg string, opts ...Option) (*Result, error) {
	t.Helper()
	opts = append([]Option{quiet()}, opts...)
	return Find(context.Background(), typeindex.LoadConfig{Patterns: []string{testdata + pkg}}, opts...)
}

func TestFind_Shop(t *testing.T) {
	res, err := find(t, "shop")
	require.NoError(t, err)
	require.Len(t, res.Descriptors, 2)

	pkg := testdata + "shop"

	user, ok := res.Descriptors[0].(*resource.EntityAccess)
	require.True(t, ok, "got %T", res.Descriptors[0])
	assert.Equal(t, &resource.EntityAccess{
		Interface: typeindex.Ref(pkg, "UserResource"),
		Entity:    typeindex.Ref(pkg, "User"),
		ID:        typeindex.TypeRef{Name: "int64"},
		Path:      "user",
	}, user)

	order, ok := res.Descriptors[1].(*resource.RepositoryAccess)
	require.True(t, ok, "got %T", res.Descriptors[1])
	assert.Equal(t, &resource.RepositoryAccess{
		Interface:  typeindex.Ref(pkg, "OrderResource"),
		Repository: typeindex.Ref(pkg, "OrderRepository"),
		Entity:     typeindex.Ref(pkg, "Order"),
		ID:         typeindex.TypeRef{Name: "string"},
		Path:       "orders",
	}, order)

	assert.Equal(t, []typeindex.TypeRef{typeindex.Ref(pkg, "OrderRepository")}, res.Unremovable)
}

func TestFind_StructDeclaration(t *testing.T) {
	_, err := find(t, "classdecl")
	require.ErrorIs(t, err, ErrNotAnInterface)

	var derr *Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, typeindex.Ref(testdata+"classdecl", "UserStore"), derr.Decl)
	assert.True(t, derr.Pos.IsValid(), "error should carry the declaration position")
	assert.Contains(t, derr.Pos.Filename, "classdecl.go")
}

func TestFind_Extended(t *testing.T) {
	_, err := find(t, "extended")
	require.ErrorIs(t, err, ErrMultipleSuperInterfaces)
	assert.Contains(t, err.Error(), "ClosableUserResource")
	assert.Contains(t, err.Error(), "io.Closer")

	_, err = find(t, "extended", WithCollectAll())
	require.ErrorIs(t, err, ErrMultipleSuperInterfaces)
	require.ErrorIs(t, err, ErrIllegallyExtended)
	assert.Contains(t, err.Error(), "embedded by "+testdata+"extended.AdminResource")
}

func TestFind_GenericDeclaration(t *testing.T) {
	_, err := find(t, "generic")
	require.ErrorIs(t, err, ErrMissingGenericArguments)
	assert.Contains(t, err.Error(), "AnyResource")
	assert.Contains(t, err.Error(), "unbound type parameter T")

	_, err = find(t, "generic", WithCollectAll())
	require.ErrorIs(t, err, ErrMissingGenericArguments)
	for _, name := range []string{"AnyResource", "BoxResource", "FnResource"} {
		assert.Contains(t, err.Error(), testdata+"generic."+name)
	}
	assert.Contains(t, err.Error(), "unbound type parameter struct{V T}")
	assert.Contains(t, err.Error(), "unbound type parameter func() T")
}

func TestFind_NoPackage(t *testing.T) {
	_, err := find(t, "does-not-exist")
	require.Error(t, err)
}
