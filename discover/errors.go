package discover

import (
	"errors"
	"fmt"
	"go/token"

	"github.com/broady/restdata/typeindex"
)

// Code is a machine-readable error code for a malformed resource
// declaration.
type Code string

const (
	CodeNotAnInterface          Code = "not_an_interface"
	CodeMultipleSuperInterfaces Code = "multiple_super_interfaces"
	CodeIllegallyExtended       Code = "illegally_extended"
	CodeMissingGenericArguments Code = "missing_generic_arguments"
	CodeInvalidDirective        Code = "invalid_directive"
)

// Sentinels for errors.Is. An *Error matches the sentinel of its code.
var (
	ErrNotAnInterface          = errors.New("resource declaration is not an interface")
	ErrMultipleSuperInterfaces = errors.New("resource declaration embeds more than one interface")
	ErrIllegallyExtended       = errors.New("resource declaration is embedded elsewhere")
	ErrMissingGenericArguments = errors.New("resource declaration lacks generic arguments")
	ErrInvalidDirective        = errors.New("resource declaration has an invalid directive")
)

var sentinels = map[Code]error{
	CodeNotAnInterface:          ErrNotAnInterface,
	CodeMultipleSuperInterfaces: ErrMultipleSuperInterfaces,
	CodeIllegallyExtended:       ErrIllegallyExtended,
	CodeMissingGenericArguments: ErrMissingGenericArguments,
	CodeInvalidDirective:        ErrInvalidDirective,
}

// Error reports a malformed resource declaration. These are authoring
// defects; discovery never retries or skips them.
type Error struct {
	Code    Code
	Decl    typeindex.TypeRef
	Pos     token.Position
	Message string
}

func (e *Error) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s: %s: %s", e.Pos, e.Decl, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Decl, e.Message)
}

// Is reports whether target is the sentinel for e's code.
func (e *Error) Is(target error) bool {
	s, ok := sentinels[e.Code]
	return ok && s == target
}

func newError(code Code, d *typeindex.Decl, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Decl:    d.ID,
		Pos:     d.Pos,
		Message: fmt.Sprintf(format, args...),
	}
}

// CodeOf returns the code of the first *Error in err's tree.
func CodeOf(err error) (Code, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Code, true
	}
	return "", false
}
