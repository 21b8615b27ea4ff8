// Package typeindex is a read-only index of the named types in a Go program.
//
// The index answers the two structural questions resource discovery needs:
// which declarations directly embed a given interface, and what a
// declaration looks like (its kind, the interfaces it embeds and the type
// arguments of each).
//
// "Directly" means named in the declaration itself. An interface that embeds
// another interface which in turn embeds X is not a direct implementor of X.
package typeindex

import (
	"go/token"
	"strings"
)

// TypeRef identifies a type.
//
// Named types carry their package path and name. Predeclared and unnamed
// types (int64, []byte, map[string]T) have an empty Package and their Go
// spelling as Name, with named components fully qualified.
type TypeRef struct {
	// Package is the import path of the declaring package.
	Package string

	// Name is the type name. Instantiated generic types include their
	// type arguments, e.g. "Box[example.com/app.User]".
	Name string

	// Param is true if the type is, or contains, an unbound type parameter.
	Param bool
}

// Ref returns a TypeRef for the named type pkg.name.
func Ref(pkg, name string) TypeRef {
	return TypeRef{Package: pkg, Name: name}
}

// String returns "Package.Name", or Name for predeclared and unnamed types.
func (r TypeRef) String() string {
	if r.Package == "" {
		return r.Name
	}
	return r.Package + "." + r.Name
}

// IsZero reports whether r is the zero TypeRef.
func (r TypeRef) IsZero() bool {
	return r.Package == "" && r.Name == "" && !r.Param
}

// Short returns the name without its package path.
func (r TypeRef) Short() string {
	return r.Name
}

// MarshalText renders r in its String form.
func (r TypeRef) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText parses the String form. The split happens at the last "."
// that precedes any type argument list. Type literals (pointers, slices,
// structs, funcs, chans) keep their whole spelling as Name.
func (r *TypeRef) UnmarshalText(text []byte) error {
	s := string(text)
	head := s
	if i := strings.IndexByte(s, '['); i >= 0 {
		head = s[:i]
	}
	if i := strings.LastIndexByte(head, '.'); i >= 0 && !strings.ContainsAny(head[:i], "[]*({ ") {
		*r = TypeRef{Package: s[:i], Name: s[i+1:]}
		return nil
	}
	*r = TypeRef{Name: s}
	return nil
}

// Compare orders TypeRefs by their String form.
func Compare(a, b TypeRef) int {
	return strings.Compare(a.String(), b.String())
}

// DeclKind is the shape of a declaration's underlying type.
type DeclKind int

const (
	KindInterface DeclKind = iota // type T interface{ ... }
	KindStruct                    // type T struct{ ... }
	KindOther                     // any other defined type
)

func (k DeclKind) String() string {
	switch k {
	case KindInterface:
		return "interface"
	case KindStruct:
		return "struct"
	case KindOther:
		return "other"
	default:
		return "unknown"
	}
}

// Super is an interface named directly by a declaration: an embedded
// interface, or an embedded struct field of interface type.
type Super struct {
	// ID is the embedded interface. For generic interfaces this is the
	// uninstantiated origin, so it matches the interface's own identity.
	ID TypeRef

	// Args holds the type arguments in declared order. It is nil for a
	// reference without type arguments.
	Args []TypeRef
}

// Raw reports whether the reference carries no type arguments.
func (s Super) Raw() bool {
	return len(s.Args) == 0
}

// Directive is a "//restdata:name args..." line from a declaration's doc
// comment.
type Directive struct {
	Name string
	Args []string
	Pos  token.Position
}

// Decl is the structural view of one package-level type declaration.
type Decl struct {
	ID         TypeRef
	Kind       DeclKind
	Generic    bool // declares its own type parameters
	Supers     []Super
	Directives []Directive
	Pos        token.Position
}

// IsInterface reports whether the declaration is an interface.
func (d *Decl) IsInterface() bool {
	return d.Kind == KindInterface
}

// Index is a read-only view of the program's type declarations.
// Implementations must be safe for concurrent use.
type Index interface {
	// DirectImplementors returns the declarations that directly embed the
	// interface id, ordered by identity.
	DirectImplementors(id TypeRef) []*Decl
}

// directivePrefix starts every restdata directive comment.
const directivePrefix = "//restdata:"
