package app

import "github.com/broady/restdata"

type fixtureResource interface {
	restdata.EntityResource[Note, int]
}
