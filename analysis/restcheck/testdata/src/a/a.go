package a

import (
	"io"

	"github.com/broady/restdata"
)

type User struct{ ID int64 }

type UserRepository struct{}

type UserResource interface {
	restdata.EntityResource[User, int64]
}

type UserRepoResource interface {
	restdata.RepositoryResource[UserRepository, User, int64]
}

type UserStore struct { // want `UserStore has to be an interface, not a struct`
	restdata.EntityResource[User, string]
}

type ClosableResource interface { // want `ClosableResource should only embed the resource marker, but embeds github.com/broady/restdata.EntityResource, io.Closer`
	restdata.EntityResource[User, int]
	io.Closer
}

type BaseResource interface { // want `BaseResource should not be embedded or implemented, but is embedded by a.AdminResource`
	restdata.EntityResource[User, uint]
}

type AdminResource interface {
	BaseResource
}

type AnyResource[T any] interface { // want `AnyResource binds EntityType of EntityResource to unbound type parameter T`
	restdata.EntityResource[T, int64]
}

//restdata:path api/users
type NestedResource interface { // want `NestedResource //restdata:path "api/users" is not a single path segment`
	restdata.EntityResource[User, int8]
}
