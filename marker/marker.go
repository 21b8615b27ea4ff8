// Package marker is the registry of marker contracts that resource
// declarations embed.
//
// Markers differ only in their identity and the roles of their type
// parameters, so they are data: adding a marker kind is a table entry.
package marker

import (
	"fmt"

	"github.com/broady/restdata/typeindex"
)

// Role names the meaning of a marker's type parameter.
type Role string

const (
	RoleRepository Role = "RepositoryType"
	RoleEntity     Role = "EntityType"
	RoleID         Role = "IdType"
)

// Path is the import path of the package declaring the default markers.
const Path = "github.com/broady/restdata"

// Contract is one marker contract.
type Contract struct {
	// ID is the generic marker interface.
	ID typeindex.TypeRef

	// Roles lists the role of each type parameter, in declared order.
	Roles []Role
}

// Arity returns the number of type parameters.
func (c Contract) Arity() int {
	return len(c.Roles)
}

// Name returns the marker's unqualified name.
func (c Contract) Name() string {
	return c.ID.Name
}

func (c Contract) String() string {
	return fmt.Sprintf("%s%v", c.ID, c.Roles)
}

var (
	// EntityResource exposes an entity whose persistence operations are
	// invoked on the entity type.
	EntityResource = Contract{
		ID:    typeindex.Ref(Path, "EntityResource"),
		Roles: []Role{RoleEntity, RoleID},
	}

	// RepositoryResource exposes an entity through a repository type.
	RepositoryResource = Contract{
		ID:    typeindex.Ref(Path, "RepositoryResource"),
		Roles: []Role{RoleRepository, RoleEntity, RoleID},
	}
)

// Table is an immutable, ordered set of contracts.
type Table struct {
	contracts []Contract
	byID      map[typeindex.TypeRef]int
}

var defaultTable = NewTable(EntityResource, RepositoryResource)

// Default returns the table of the two built-in markers.
func Default() *Table {
	return defaultTable
}

// NewTable builds a table. It panics on an empty identity, a duplicate
// identity, an arity other than 2 or 3, a repeated role, or a contract
// lacking the entity and id roles.
func NewTable(contracts ...Contract) *Table {
	t := &Table{
		contracts: make([]Contract, 0, len(contracts)),
		byID:      make(map[typeindex.TypeRef]int, len(contracts)),
	}
	for _, c := range contracts {
		if c.ID.IsZero() {
			panic("marker: contract without identity")
		}
		if _, dup := t.byID[c.ID]; dup {
			panic(fmt.Sprintf("marker: duplicate contract %s", c.ID))
		}
		if n := c.Arity(); n != 2 && n != 3 {
			panic(fmt.Sprintf("marker: contract %s has arity %d, want 2 or 3", c.ID, n))
		}
		roles := make(map[Role]bool, len(c.Roles))
		for _, r := range c.Roles {
			if roles[r] {
				panic(fmt.Sprintf("marker: contract %s repeats role %s", c.ID, r))
			}
			roles[r] = true
		}
		if !roles[RoleEntity] || !roles[RoleID] {
			panic(fmt.Sprintf("marker: contract %s needs roles %s and %s", c.ID, RoleEntity, RoleID))
		}
		if c.Arity() == 3 && !roles[RoleRepository] {
			panic(fmt.Sprintf("marker: contract %s of arity 3 needs role %s", c.ID, RoleRepository))
		}

		c.Roles = append([]Role(nil), c.Roles...)
		t.byID[c.ID] = len(t.contracts)
		t.contracts = append(t.contracts, c)
	}
	return t
}

// Contracts returns the contracts in table order.
func (t *Table) Contracts() []Contract {
	out := make([]Contract, len(t.contracts))
	for i, c := range t.contracts {
		c.Roles = append([]Role(nil), c.Roles...)
		out[i] = c
	}
	return out
}

// Lookup returns the contract with the given identity.
func (t *Table) Lookup(id typeindex.TypeRef) (Contract, bool) {
	i, ok := t.byID[id]
	if !ok {
		return Contract{}, false
	}
	c := t.contracts[i]
	c.Roles = append([]Role(nil), c.Roles...)
	return c, true
}

// Len returns the number of contracts.
func (t *Table) Len() int {
	return len(t.contracts)
}
