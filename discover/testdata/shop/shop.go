// Package shop declares resources the way an application would.
package shop

import (
	"context"

	"github.com/broady/restdata"
)

type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Order struct {
	ID    string `json:"id"`
	Total int64  `json:"total"`
}

type OrderRepository struct{}

func (OrderRepository) FindByID(ctx context.Context, id string) (Order, error) {
	return Order{ID: id}, nil
}

// UserResource exposes users.
type UserResource interface {
	restdata.EntityResource[User, int64]
}

// OrderResource exposes orders through their repository.
//
//restdata:path orders
type OrderResource interface {
	restdata.RepositoryResource[OrderRepository, Order, string]
}

// Auditable is unrelated to resources and must be ignored.
type Auditable interface {
	Audit(ctx context.Context) error
}
