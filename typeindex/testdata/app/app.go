// Package app is loaded by the typeindex tests.
package app

import "github.com/broady/restdata"

type Note struct {
	ID   string
	Body string
}

//restdata:path notes
type NoteResource interface {
	restdata.EntityResource[Note, string]
}
