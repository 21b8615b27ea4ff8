package discover

import (
	"strings"

	"github.com/broady/restdata/typeindex"
)

// Validate checks the shape of a declaration found under a marker:
//
//  1. it is an interface, since the implementation is generated later;
//  2. it embeds exactly one interface, the marker, which is the single
//     source of type arguments;
//  3. nothing in idx embeds it, since only one level of refinement below a
//     marker is supported.
func Validate(idx typeindex.Index, d *typeindex.Decl) error {
	if !d.IsInterface() {
		return newError(CodeNotAnInterface, d,
			"has to be an interface, not a %s", d.Kind)
	}

	if len(d.Supers) > 1 {
		names := make([]string, len(d.Supers))
		for i, s := range d.Supers {
			names[i] = s.ID.String()
		}
		return newError(CodeMultipleSuperInterfaces, d,
			"should only embed the resource marker, but embeds %s", strings.Join(names, ", "))
	}

	if impls := idx.DirectImplementors(d.ID); len(impls) > 0 {
		names := make([]string, len(impls))
		for i, impl := range impls {
			names[i] = impl.ID.String()
		}
		return newError(CodeIllegallyExtended, d,
			"should not be embedded or implemented, but is embedded by %s", strings.Join(names, ", "))
	}

	return nil
}
