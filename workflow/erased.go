package workflow

import (
	"fmt"

	"github.com/linkedapi/linkedapi-go/internal/config"
)

// ErasedMapper is a Mapper with its type parameters erased, used where the
// operation is only known by name at runtime.
type ErasedMapper interface {
	MapRequest(params any) (Definition, error)
	MapResponse(completion *Completion) (MappedResponse[any], error)
}

// Erase wraps a typed mapper. The erased MapRequest accepts P, *P or a
// map[string]any. Every form is checked against P's validation rules; maps
// are shaped from the map itself so key presence is preserved.
func Erase[P, R any](m Mapper[P, R]) ErasedMapper {
	return erased[P, R]{m: m}
}

type erased[P, R any] struct {
	m Mapper[P, R]
}

func (e erased[P, R]) MapRequest(params any) (Definition, error) {
	switch p := params.(type) {
	case P:
		return e.fromTyped(p)
	case *P:
		if p == nil {
			var zero P
			return e.fromTyped(zero)
		}
		return e.fromTyped(*p)
	case Definition:
		return e.fromMap(p)
	case map[string]any:
		return e.fromMap(p)
	default:
		var zero P
		return nil, fmt.Errorf("unsupported params type %T, expected %T", params, zero)
	}
}

func (e erased[P, R]) fromTyped(p P) (Definition, error) {
	if err := config.Validate(p); err != nil {
		return nil, err
	}
	return e.m.MapRequest(p)
}

func (e erased[P, R]) fromMap(m map[string]any) (Definition, error) {
	var typed P
	if err := mapToStruct(m, &typed); err != nil {
		return nil, err
	}
	if err := config.Validate(typed); err != nil {
		return nil, err
	}

	if raw, ok := e.m.(mapRequester); ok {
		return raw.mapRequest(m)
	}
	return e.m.MapRequest(typed)
}

func (e erased[P, R]) MapResponse(completion *Completion) (MappedResponse[any], error) {
	typed, err := e.m.MapResponse(completion)
	return eraseResponse(typed), err
}

// Unwrap returns the typed mapper behind an erased one.
func (e erased[P, R]) Unwrap() any { return e.m }
