package api

import (
	"context"

	"github.com/broady/restdata"
)

type Book struct {
	ISBN  string
	Title string
}

type Shelf struct{}

func (Shelf) Find(ctx context.Context, isbn string) (Book, error) {
	return Book{ISBN: isbn}, nil
}

type BookResource interface {
	restdata.EntityResource[Book, string]
}

// ShelfResource exposes books through the shelf.
//
//restdata:path shelf
type ShelfResource interface {
	restdata.RepositoryResource[Shelf, Book, string]
}
