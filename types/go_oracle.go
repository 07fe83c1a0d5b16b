package types

import (
	"fmt"
	"reflect"
)

// GoOracle dispatches on Go's own runtime types: a descriptor is a
// reflect.Type, subtyping is interface satisfaction, and TypeOf is
// reflect.TypeOf. This is the oracle behind the process-wide default
// registry.
type GoOracle struct{}

func (GoOracle) Subtype(sub, super Type) bool {
	if _, isAny := super.(anyType); isAny {
		return true
	}
	if _, isAny := sub.(anyType); isAny {
		return false
	}
	gsub, ok := sub.(goType)
	gsuper, ok2 := super.(goType)
	if !ok || !ok2 || gsub.rt == nil || gsuper.rt == nil {
		return false
	}
	if gsub.rt == gsuper.rt {
		return true
	}
	if gsuper.rt.Kind() == reflect.Interface {
		return gsub.rt.Implements(gsuper.rt)
	}
	return false
}

func (GoOracle) Validate(t Type) error {
	switch ty := t.(type) {
	case anyType:
		return nil
	case goType:
		if ty.rt == nil {
			return fmt.Errorf("descriptor wraps a nil reflect.Type")
		}
		return nil
	default:
		return fmt.Errorf("descriptor %q is not a Go runtime type", t.TypeName())
	}
}

func (GoOracle) TypeOf(v any) (Type, error) {
	if v == nil {
		return nil, fmt.Errorf("cannot dispatch on an untyped nil argument")
	}
	return goType{rt: reflect.TypeOf(v)}, nil
}
