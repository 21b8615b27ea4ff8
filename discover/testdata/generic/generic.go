// Package generic declares resources that depend on their own type
// parameter.
package generic

import "github.com/broady/restdata"

type AnyResource[T any] interface {
	restdata.EntityResource[T, int64]
}

type BoxResource[T any] interface {
	restdata.EntityResource[struct{ V T }, int64]
}

type FnResource[T any] interface {
	restdata.EntityResource[func() T, int64]
}
