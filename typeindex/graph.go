package typeindex

import (
	"go/ast"
	"go/token"
	"go/types"
	"slices"
	"strings"
	"sync"
)

// Graph is an Index over an explicit set of declarations.
//
// Populate it with AddPackage or Add, then share it read-only. All methods
// are safe for concurrent use.
type Graph struct {
	mu          sync.RWMutex
	decls       map[TypeRef]*Decl
	implementor map[TypeRef][]*Decl // super origin -> direct implementors
}

// NewGraph returns an empty Graph.
func NewGraph() *Graph {
	return &Graph{
		decls:       make(map[TypeRef]*Decl),
		implementor: make(map[TypeRef][]*Decl),
	}
}

// Add records d. Adding a declaration with an identity already present
// replaces the earlier one.
func (g *Graph) Add(d *Decl) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if old, ok := g.decls[d.ID]; ok {
		for _, s := range old.Supers {
			g.implementor[s.ID] = slices.DeleteFunc(g.implementor[s.ID], func(x *Decl) bool { return x == old })
		}
	}
	g.decls[d.ID] = d

	seen := make(map[TypeRef]bool, len(d.Supers))
	for _, s := range d.Supers {
		if seen[s.ID] {
			continue
		}
		seen[s.ID] = true
		list := append(g.implementor[s.ID], d)
		slices.SortFunc(list, func(a, b *Decl) int { return Compare(a.ID, b.ID) })
		g.implementor[s.ID] = list
	}
}

// DirectImplementors implements Index.
func (g *Graph) DirectImplementors(id TypeRef) []*Decl {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return slices.Clone(g.implementor[id])
}

// Decl returns the declaration with the given identity.
func (g *Graph) Decl(id TypeRef) (*Decl, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	d, ok := g.decls[id]
	return d, ok
}

// Len returns the number of indexed declarations.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.decls)
}

// AddPackage indexes every package-level type declared in pkg.
//
// files and info are optional. When both are given, "//restdata:" directives
// in the doc comments of type declarations are recorded on the Decl.
func (g *Graph) AddPackage(fset *token.FileSet, pkg *types.Package, files []*ast.File, info *types.Info) {
	var directives map[types.Object][]Directive
	if files != nil && info != nil {
		directives = collectDirectives(fset, files, info)
	}

	scope := pkg.Scope()
	for _, name := range scope.Names() {
		tn, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || tn.IsAlias() {
			continue
		}
		named, ok := tn.Type().(*types.Named)
		if !ok {
			continue
		}

		d := declOf(named)
		if fset != nil {
			d.Pos = fset.Position(tn.Pos())
		}
		d.Directives = directives[tn]
		g.Add(d)
	}
}

// declOf builds the structural view of a named type.
func declOf(named *types.Named) *Decl {
	d := &Decl{
		ID:      RefOf(named),
		Generic: named.TypeParams().Len() > 0,
	}

	switch u := named.Underlying().(type) {
	case *types.Interface:
		d.Kind = KindInterface
		for i := range u.NumEmbeddeds() {
			if s, ok := superOf(u.EmbeddedType(i)); ok {
				d.Supers = append(d.Supers, s)
			}
		}
	case *types.Struct:
		d.Kind = KindStruct
		for i := range u.NumFields() {
			f := u.Field(i)
			if !f.Embedded() {
				continue
			}
			if s, ok := superOf(f.Type()); ok {
				d.Supers = append(d.Supers, s)
			}
		}
	default:
		d.Kind = KindOther
	}
	return d
}

// superOf returns the Super for an embedded type if it names an interface.
// Type set elements such as ~string or unions are not supers.
func superOf(t types.Type) (Super, bool) {
	named, ok := types.Unalias(t).(*types.Named)
	if !ok {
		return Super{}, false
	}
	if _, ok := named.Underlying().(*types.Interface); !ok {
		return Super{}, false
	}

	s := Super{ID: RefOf(named.Origin())}
	args := named.TypeArgs()
	for i := range args.Len() {
		s.Args = append(s.Args, RefOf(args.At(i)))
	}
	return s, true
}

// RefOf returns the TypeRef for t.
func RefOf(t types.Type) TypeRef {
	t = types.Unalias(t)
	switch t := t.(type) {
	case *types.TypeParam:
		return TypeRef{Name: t.Obj().Name(), Param: true}
	case *types.Named:
		obj := t.Obj()
		ref := TypeRef{Name: obj.Name(), Param: hasTypeParam(t)}
		if obj.Pkg() != nil {
			ref.Package = obj.Pkg().Path()
		}
		if args := t.TypeArgs(); args.Len() > 0 {
			parts := make([]string, args.Len())
			for i := range args.Len() {
				parts[i] = RefOf(args.At(i)).String()
			}
			ref.Name += "[" + strings.Join(parts, ", ") + "]"
		}
		return ref
	default:
		return TypeRef{
			Name:  types.TypeString(t, (*types.Package).Path),
			Param: hasTypeParam(t),
		}
	}
}

// hasTypeParam reports whether t mentions an unbound type parameter.
// For a generic named type that has not been instantiated, the answer is
// about its use as a type argument, so only instantiation arguments count.
func hasTypeParam(t types.Type) bool {
	switch t := types.Unalias(t).(type) {
	case *types.TypeParam:
		return true
	case *types.Named:
		args := t.TypeArgs()
		for i := range args.Len() {
			if hasTypeParam(args.At(i)) {
				return true
			}
		}
		return false
	case *types.Pointer:
		return hasTypeParam(t.Elem())
	case *types.Slice:
		return hasTypeParam(t.Elem())
	case *types.Array:
		return hasTypeParam(t.Elem())
	case *types.Chan:
		return hasTypeParam(t.Elem())
	case *types.Map:
		return hasTypeParam(t.Key()) || hasTypeParam(t.Elem())
	case *types.Struct:
		for i := range t.NumFields() {
			if hasTypeParam(t.Field(i).Type()) {
				return true
			}
		}
		return false
	case *types.Signature:
		// The receiver of an interface method is the interface itself.
		return hasTypeParam(t.Params()) || hasTypeParam(t.Results())
	case *types.Tuple:
		if t == nil {
			return false
		}
		for i := range t.Len() {
			if hasTypeParam(t.At(i).Type()) {
				return true
			}
		}
		return false
	case *types.Interface:
		for i := range t.NumExplicitMethods() {
			if hasTypeParam(t.ExplicitMethod(i).Type()) {
				return true
			}
		}
		for i := range t.NumEmbeddeds() {
			if hasTypeParam(t.EmbeddedType(i)) {
				return true
			}
		}
		return false
	case *types.Union:
		for i := range t.Len() {
			if hasTypeParam(t.Term(i).Type()) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// collectDirectives maps type names to the directives in their doc comments.
func collectDirectives(fset *token.FileSet, files []*ast.File, info *types.Info) map[types.Object][]Directive {
	out := make(map[types.Object][]Directive)
	for _, f := range files {
		for _, decl := range f.Decls {
			gd, ok := decl.(*ast.GenDecl)
			if !ok || gd.Tok != token.TYPE {
				continue
			}
			for _, spec := range gd.Specs {
				ts := spec.(*ast.TypeSpec)
				doc := ts.Doc
				if doc == nil && len(gd.Specs) == 1 {
					doc = gd.Doc
				}
				dirs := parseDirectives(fset, doc)
				if len(dirs) == 0 {
					continue
				}
				if obj := info.Defs[ts.Name]; obj != nil {
					out[obj] = dirs
				}
			}
		}
	}
	return out
}

// parseDirectives extracts restdata directives from a comment group.
func parseDirectives(fset *token.FileSet, cg *ast.CommentGroup) []Directive {
	if cg == nil {
		return nil
	}
	var dirs []Directive
	for _, c := range cg.List {
		if !strings.HasPrefix(c.Text, directivePrefix) {
			continue
		}
		parts := strings.Fields(strings.TrimPrefix(c.Text, directivePrefix))
		d := Directive{}
		if fset != nil {
			d.Pos = fset.Position(c.Pos())
		}
		if len(parts) > 0 {
			d.Name = parts[0]
			d.Args = parts[1:]
		}
		dirs = append(dirs, d)
	}
	return dirs
}
