// Package filter selects items of array results with expr-lang
// expressions, e.g. `location contains "London" && headline != null`.
package filter

import (
	"encoding/json"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Filter is a compiled boolean expression evaluated against each item.
// Item fields are top-level variables; the whole item is also bound to
// "item".
type Filter struct {
	source  string
	program *vm.Program
}

// Compile parses expression. Unknown fields evaluate to nil.
func Compile(expression string) (*Filter, error) {
	program, err := expr.Compile(expression,
		expr.Env(map[string]any{}),
		// NOTE: AllowUndefinedVariables must come after Env.
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid filter %q: %w", expression, err)
	}
	return &Filter{source: expression, program: program}, nil
}

func (f *Filter) String() string { return f.source }

// Match reports whether item satisfies the filter.
func (f *Filter) Match(item any) (bool, error) {
	env, err := environment(item)
	if err != nil {
		return false, err
	}
	out, err := expr.Run(f.program, env)
	if err != nil {
		return false, fmt.Errorf("filter %q: %w", f.source, err)
	}
	matched, _ := out.(bool)
	return matched, nil
}

// Apply returns the items of data that match. data must be a slice once
// converted to JSON; a single object is treated as a one element list.
func (f *Filter) Apply(data any) ([]any, error) {
	items, err := toItems(data)
	if err != nil {
		return nil, err
	}

	out := []any{}
	for i, item := range items {
		ok, err := f.Match(item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		if ok {
			out = append(out, item)
		}
	}
	return out, nil
}

func environment(item any) (map[string]any, error) {
	var generic any
	if err := roundTrip(item, &generic); err != nil {
		return nil, err
	}

	env := map[string]any{"null": nil}
	if fields, ok := generic.(map[string]any); ok {
		for k, v := range fields {
			env[k] = v
		}
	}
	env["item"] = generic
	return env, nil
}

func toItems(data any) ([]any, error) {
	var generic any
	if err := roundTrip(data, &generic); err != nil {
		return nil, err
	}
	switch v := generic.(type) {
	case []any:
		return v, nil
	case nil:
		return []any{}, nil
	default:
		return []any{v}, nil
	}
}

func roundTrip(in any, out any) error {
	raw, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode filter input: %w", err)
	}
	return json.Unmarshal(raw, out)
}
