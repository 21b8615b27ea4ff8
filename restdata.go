// Package restdata declares the marker contracts that expose a persistence
// type as a REST resource.
//
// A resource is declared by an interface that embeds exactly one marker:
//
//	type UserResource interface {
//	    restdata.EntityResource[User, int64]
//	}
//
//	type OrderResource interface {
//	    restdata.RepositoryResource[OrderRepository, Order, string]
//	}
//
// The declaring interface is never implemented by hand. The restdata tool
// discovers it at build time, and a generator supplies the implementation.
// See package discover for the rules a declaration must follow.
package restdata

import "context"

// Feature is the name under which discovered resources are registered with
// downstream generators.
const Feature = "rest-data"

// Page selects a window of a listing.
type Page struct {
	// Index is the zero-based page number.
	Index int `json:"index"`

	// Size is the maximum number of items returned. Zero means the
	// generator's default.
	Size int `json:"size"`

	// Sort lists property names to order by. A leading "-" sorts descending.
	Sort []string `json:"sort,omitempty"`
}

// Operations is the set of REST operations every resource exposes.
type Operations[Entity any, ID comparable] interface {
	List(ctx context.Context, page Page) ([]Entity, error)
	Get(ctx context.Context, id ID) (Entity, error)
	Add(ctx context.Context, entity Entity) (Entity, error)
	Update(ctx context.Context, id ID, entity Entity) (Entity, error)
	Delete(ctx context.Context, id ID) (bool, error)
}

// EntityResource marks a resource whose persistence operations are invoked on
// the entity type directly.
//
// Type parameters, in order: the entity type and its identifier type.
type EntityResource[Entity any, ID comparable] interface {
	Operations[Entity, ID]
}

// RepositoryResource marks a resource whose persistence operations go through
// a separate repository type. The repository is only referenced by generated
// code, so the tool reports it as a type that must not be eliminated.
//
// Type parameters, in order: the repository type, the entity type and the
// identifier type.
type RepositoryResource[Repository any, Entity any, ID comparable] interface {
	Operations[Entity, ID]
}
