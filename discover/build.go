package discover

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/broady/restdata/marker"
	"github.com/broady/restdata/resource"
	"github.com/broady/restdata/typeindex"
)

// Build zips args with the roles of c into a descriptor. Arity 2 yields an
// *resource.EntityAccess and arity 3 a *resource.RepositoryAccess.
//
// The resource path comes from a "//restdata:path" directive on d, or is
// derived from the interface name.
func Build(d *typeindex.Decl, c marker.Contract, args []typeindex.TypeRef) (resource.Descriptor, error) {
	if len(args) != c.Arity() {
		return nil, newError(CodeMissingGenericArguments, d,
			"has %d type arguments for %s, which takes %d", len(args), c.ID.Name, c.Arity())
	}

	path, err := resourcePath(d)
	if err != nil {
		return nil, err
	}

	bound := make(map[marker.Role]typeindex.TypeRef, len(args))
	for i, role := range c.Roles {
		bound[role] = args[i]
	}

	var desc resource.Descriptor
	switch c.Arity() {
	case 2:
		desc = &resource.EntityAccess{
			Interface: d.ID,
			Entity:    bound[marker.RoleEntity],
			ID:        bound[marker.RoleID],
			Path:      path,
		}
	case 3:
		desc = &resource.RepositoryAccess{
			Interface:  d.ID,
			Repository: bound[marker.RoleRepository],
			Entity:     bound[marker.RoleEntity],
			ID:         bound[marker.RoleID],
			Path:       path,
		}
	default:
		panic(fmt.Sprintf("discover: contract %s has arity %d", c.ID, c.Arity()))
	}

	if err := resource.Validate(desc); err != nil {
		return nil, newError(CodeMissingGenericArguments, d, "%v", err)
	}
	return desc, nil
}

// Directive names understood on resource declarations.
const directivePath = "path"

// resourcePath returns the path segment for d.
func resourcePath(d *typeindex.Decl) (string, error) {
	var path string
	for _, dir := range d.Directives {
		switch dir.Name {
		case directivePath:
			if path != "" {
				return "", directiveError(d, dir, "repeats //restdata:path")
			}
			if len(dir.Args) != 1 {
				return "", directiveError(d, dir, "//restdata:path takes exactly one segment")
			}
			seg := strings.Trim(dir.Args[0], "/")
			if seg == "" || strings.Contains(seg, "/") {
				return "", directiveError(d, dir, "//restdata:path %q is not a single path segment", dir.Args[0])
			}
			path = seg
		default:
			return "", directiveError(d, dir, "unknown directive //restdata:%s", dir.Name)
		}
	}
	if path != "" {
		return path, nil
	}
	return DefaultPath(d.ID.Name), nil
}

func directiveError(d *typeindex.Decl, dir typeindex.Directive, format string, args ...any) *Error {
	e := newError(CodeInvalidDirective, d, format, args...)
	if dir.Pos.IsValid() {
		e.Pos = dir.Pos
	}
	return e
}

// DefaultPath derives a path segment from an interface name: a trailing
// "Resource" or "Controller" is dropped, and the remaining camel-case words
// are lowercased and joined with "-".
//
//	UserResource      -> user
//	OrderLineResource -> order-line
//	HTTPLogController -> http-log
func DefaultPath(name string) string {
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}
	for _, suffix := range []string{"Resource", "Controller"} {
		if trimmed, ok := strings.CutSuffix(name, suffix); ok && trimmed != "" {
			name = trimmed
			break
		}
	}

	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte('-')
			}
		}
		if r == '_' {
			b.WriteByte('-')
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
