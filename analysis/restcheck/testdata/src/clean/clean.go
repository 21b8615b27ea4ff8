package clean

import "github.com/broady/restdata"

type Order struct{ ID string }

type Orders struct{}

// OrderResource exposes orders.
//
//restdata:path orders
type OrderResource interface {
	restdata.RepositoryResource[Orders, Order, string]
}

type Closer interface {
	Close() error
}

type closerImpl struct {
	Closer
}
