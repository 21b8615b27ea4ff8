// Package extended refines a resource declaration a second time.
package extended

import (
	"io"

	"github.com/broady/restdata"
)

type User struct{ ID int64 }

type UserResource interface {
	restdata.EntityResource[User, int64]
}

type AdminResource interface {
	UserResource
}

type ClosableUserResource interface {
	restdata.EntityResource[User, int64]
	io.Closer
}
