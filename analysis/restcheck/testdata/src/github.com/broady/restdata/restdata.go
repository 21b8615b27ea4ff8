package restdata

type EntityResource[Entity any, ID comparable] interface {
	Get(id ID) (Entity, error)
}

type RepositoryResource[Repository any, Entity any, ID comparable] interface {
	Get(id ID) (Entity, error)
}
