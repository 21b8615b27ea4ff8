package discover

import (
	"github.com/broady/restdata/marker"
	"github.com/broady/restdata/typeindex"
)

// Extract returns the type arguments that d binds to the parameters of c,
// in declared order. d must have passed Validate.
//
// Arguments are matched to roles by position only, so they must appear in
// the marker's parameter order.
func Extract(d *typeindex.Decl, c marker.Contract) ([]typeindex.TypeRef, error) {
	if len(d.Supers) == 0 {
		return nil, newError(CodeMissingGenericArguments, d, "does not embed %s", c.ID)
	}

	s := d.Supers[0]
	if s.Raw() {
		return nil, newError(CodeMissingGenericArguments, d,
			"does not have generic types: %s is referenced without type arguments", s.ID)
	}
	if len(s.Args) != c.Arity() {
		return nil, newError(CodeMissingGenericArguments, d,
			"binds %d type arguments to %s, which takes %d (%v)", len(s.Args), c.ID.Name, c.Arity(), c.Roles)
	}
	for i, arg := range s.Args {
		if arg.Param {
			return nil, newError(CodeMissingGenericArguments, d,
				"binds %s of %s to unbound type parameter %s", c.Roles[i], c.ID.Name, arg)
		}
	}

	args := make([]typeindex.TypeRef, len(s.Args))
	copy(args, s.Args)
	return args, nil
}
