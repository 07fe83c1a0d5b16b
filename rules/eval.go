package rules

import (
	"strings"

	"github.com/cottand/manifold/registry"
	"github.com/pkg/errors"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// CompileImpl evaluates src as a Go expression and adapts it into a
// dispatch implementation. The snippet must evaluate to either
// func(args ...interface{}) interface{} or
// func(args ...interface{}) (interface{}, error).
func CompileImpl(src string) (registry.Impl, error) {
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, errors.Wrap(err, "loading interpreter stdlib")
	}
	// Parenthesize so yaegi parses src in expression position: a bare func
	// literal is otherwise treated as a statement and its value is lost.
	// Trim surrounding whitespace first, or a trailing newline (e.g. from a
	// YAML block scalar) triggers semicolon insertion before the closing ")".
	v, err := i.Eval("(" + strings.TrimSpace(src) + ")")
	if err != nil {
		return nil, errors.Wrap(err, "evaluating implementation snippet")
	}
	switch fn := v.Interface().(type) {
	case func(...any) (any, error):
		return registry.Impl(fn), nil
	case func(...any) any:
		return func(args ...any) (any, error) {
			return fn(args...), nil
		}, nil
	default:
		return nil, errors.Errorf(
			"implementation must be func(args ...interface{}) interface{}, got %T",
			v.Interface())
	}
}
