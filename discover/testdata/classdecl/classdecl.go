// Package classdecl embeds a marker in a struct.
package classdecl

import "github.com/broady/restdata"

type User struct{ ID int64 }

type UserStore struct {
	restdata.EntityResource[User, int64]
}
