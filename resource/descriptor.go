// Package resource defines the descriptors produced by resource discovery.
//
// A Descriptor is a tagged union of EntityAccess and RepositoryAccess. Both
// carry fully resolved type references; downstream generators materialize
// the REST endpoints from them.
package resource

import "github.com/broady/restdata/typeindex"

// Kind identifies the variant of a Descriptor.
type Kind int

const (
	KindEntityAccess     Kind = iota // operations invoked on the entity type
	KindRepositoryAccess             // operations mediated by a repository type
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindEntityAccess:
		return "entity"
	case KindRepositoryAccess:
		return "repository"
	default:
		return "unknown"
	}
}

// Descriptor describes one discovered REST resource.
type Descriptor interface {
	// Kind returns the variant for type switching.
	Kind() Kind

	// DeclaringInterface returns the user interface that declared the
	// resource.
	DeclaringInterface() typeindex.TypeRef

	// EntityType returns the exposed entity type.
	EntityType() typeindex.TypeRef

	// IDType returns the identifier type of the entity.
	IDType() typeindex.TypeRef

	// ResourcePath returns the REST path segment.
	ResourcePath() string

	// Ensure only types in this package can implement Descriptor.
	sealed()
}

// EntityAccess is a resource whose operations are invoked on the entity.
type EntityAccess struct {
	Interface typeindex.TypeRef `json:"declaringInterface" yaml:"declaringInterface" validate:"required"`
	Entity    typeindex.TypeRef `json:"entityType" yaml:"entityType" validate:"required"`
	ID        typeindex.TypeRef `json:"idType" yaml:"idType" validate:"required"`
	Path      string            `json:"path" yaml:"path" validate:"required,excludesall=/ "`
}

func (*EntityAccess) Kind() Kind                                { return KindEntityAccess }
func (d *EntityAccess) DeclaringInterface() typeindex.TypeRef { return d.Interface }
func (d *EntityAccess) EntityType() typeindex.TypeRef         { return d.Entity }
func (d *EntityAccess) IDType() typeindex.TypeRef             { return d.ID }
func (d *EntityAccess) ResourcePath() string                  { return d.Path }
func (*EntityAccess) sealed()                                 {}

// RepositoryAccess is a resource whose operations go through a repository.
type RepositoryAccess struct {
	Interface  typeindex.TypeRef `json:"declaringInterface" yaml:"declaringInterface" validate:"required"`
	Repository typeindex.TypeRef `json:"repositoryType" yaml:"repositoryType" validate:"required"`
	Entity     typeindex.TypeRef `json:"entityType" yaml:"entityType" validate:"required"`
	ID         typeindex.TypeRef `json:"idType" yaml:"idType" validate:"required"`
	Path       string            `json:"path" yaml:"path" validate:"required,excludesall=/ "`
}

func (*RepositoryAccess) Kind() Kind                                { return KindRepositoryAccess }
func (d *RepositoryAccess) DeclaringInterface() typeindex.TypeRef { return d.Interface }
func (d *RepositoryAccess) EntityType() typeindex.TypeRef         { return d.Entity }
func (d *RepositoryAccess) IDType() typeindex.TypeRef             { return d.ID }
func (d *RepositoryAccess) ResourcePath() string                  { return d.Path }
func (*RepositoryAccess) sealed()                                 {}

// RepositoryType returns the repository that must stay reachable for the
// generated endpoints.
func (d *RepositoryAccess) RepositoryType() typeindex.TypeRef { return d.Repository }

// Compare orders descriptors by declaring interface.
func Compare(a, b Descriptor) int {
	return typeindex.Compare(a.DeclaringInterface(), b.DeclaringInterface())
}
