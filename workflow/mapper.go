package workflow

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Jeffail/gabs/v2"
)

// Mapper translates typed params into a workflow definition and a terminal
// completion back into a typed result. MapResponse only fails on payloads
// that cannot be decoded; action failures are reported in Errors.
type Mapper[P, R any] interface {
	MapRequest(params P) (Definition, error)
	MapResponse(completion *Completion) (MappedResponse[R], error)
}

// mapRequester is implemented by mappers that can shape a request from raw
// map params without going through P, keeping key presence intact.
type mapRequester interface {
	mapRequest(params map[string]any) (Definition, error)
}

func newResponse[T any]() MappedResponse[T] {
	return MappedResponse[T]{Errors: []ActionError{}}
}

// baseDefinition merges {actionType} + defaults + params. Params override
// defaults; the action type always wins.
func baseDefinition(actionType string, defaults, params map[string]any) Definition {
	def := make(Definition, len(defaults)+len(params)+1)
	for k, v := range defaults {
		def[k] = v
	}
	for k, v := range params {
		def[k] = v
	}
	def["actionType"] = actionType
	return def
}

// SimpleMapper maps operations that run a single action.
type SimpleMapper[P, R any] struct {
	actionType string
	defaults   map[string]any
}

// NewSimpleMapper creates a mapper for actionType. defaults are merged
// into every request underneath the caller's params.
func NewSimpleMapper[P, R any](actionType string, defaults map[string]any) *SimpleMapper[P, R] {
	return &SimpleMapper[P, R]{actionType: actionType, defaults: defaults}
}

func (m *SimpleMapper[P, R]) ActionType() string { return m.actionType }

func (m *SimpleMapper[P, R]) Erased() ErasedMapper { return Erase[P, R](m) }

func (m *SimpleMapper[P, R]) MapRequest(params P) (Definition, error) {
	values, err := toMap(params)
	if err != nil {
		return nil, err
	}
	return m.mapRequest(values)
}

func (m *SimpleMapper[P, R]) mapRequest(params map[string]any) (Definition, error) {
	return baseDefinition(m.actionType, m.defaults, params), nil
}

func (m *SimpleMapper[P, R]) MapResponse(completion *Completion) (MappedResponse[R], error) {
	res := newResponse[R]()
	action := completion.Primary()
	if action.Error != nil {
		res.Errors = append(res.Errors, *action.Error)
		return res, nil
	}

	data, err := decodeData[R](action.Data)
	if err != nil {
		return res, err
	}
	res.Data = data
	return res, nil
}

// ArrayMapper maps operations whose result is a list. Completions carrying
// several actions yield one item per successful action.
type ArrayMapper[P, R any] struct {
	actionType string
	defaults   map[string]any
}

func NewArrayMapper[P, R any](actionType string, defaults map[string]any) *ArrayMapper[P, R] {
	return &ArrayMapper[P, R]{actionType: actionType, defaults: defaults}
}

func (m *ArrayMapper[P, R]) ActionType() string { return m.actionType }

func (m *ArrayMapper[P, R]) Erased() ErasedMapper { return Erase[P, []R](m) }

func (m *ArrayMapper[P, R]) MapRequest(params P) (Definition, error) {
	values, err := toMap(params)
	if err != nil {
		return nil, err
	}
	return m.mapRequest(values)
}

func (m *ArrayMapper[P, R]) mapRequest(params map[string]any) (Definition, error) {
	return baseDefinition(m.actionType, m.defaults, params), nil
}

func (m *ArrayMapper[P, R]) MapResponse(completion *Completion) (MappedResponse[[]R], error) {
	res := newResponse[[]R]()
	items := []R{}

	if completion != nil && completion.Multi {
		for _, action := range completion.Actions {
			if action.Error != nil {
				res.Errors = append(res.Errors, *action.Error)
				continue
			}
			decoded, err := decodeItems[R](action.Data)
			if err != nil {
				return res, err
			}
			items = append(items, decoded...)
		}
		res.Data = &items
		return res, nil
	}

	action := completion.Primary()
	if action.Error != nil {
		res.Errors = append(res.Errors, *action.Error)
		return res, nil
	}

	decoded, err := decodeItems[R](action.Data)
	if err != nil {
		return res, err
	}
	items = append(items, decoded...)
	res.Data = &items
	return res, nil
}

// decodeItems accepts either an array payload or a single object, which is
// wrapped into a one element slice.
func decodeItems[R any](raw json.RawMessage) ([]R, error) {
	if isNull(raw) {
		return nil, nil
	}

	parsed, err := parseData(raw)
	if err != nil {
		return nil, err
	}

	if _, isArray := parsed.Data().([]any); isArray {
		var items []R
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("decode %T: %w", items, err)
		}
		return items, nil
	}

	var item R
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, fmt.Errorf("decode %T: %w", item, err)
	}
	return []R{item}, nil
}

// ChainedAction describes an optional child action of a ThenMapper.
type ChainedAction struct {
	// Param is the boolean flag in the params that requests the child.
	Param string
	// ActionType is the child's action type.
	ActionType string
	// ConfigSource optionally names the params key whose object fields are
	// copied onto the child action.
	ConfigSource string
	// Target is the key under which the child's data is placed on the result.
	Target string
}

// ThenMapper maps operations built from a base action and optional
// chained child actions, such as fetching a person with their experience.
type ThenMapper[P, R any] struct {
	actionType string
	defaults   map[string]any
	chain      []ChainedAction
}

func NewThenMapper[P, R any](actionType string, defaults map[string]any, chain []ChainedAction) *ThenMapper[P, R] {
	return &ThenMapper[P, R]{actionType: actionType, defaults: defaults, chain: chain}
}

func (m *ThenMapper[P, R]) ActionType() string { return m.actionType }

func (m *ThenMapper[P, R]) Erased() ErasedMapper { return Erase[P, R](m) }

// Chain returns the configured child actions.
func (m *ThenMapper[P, R]) Chain() []ChainedAction { return m.chain }

func (m *ThenMapper[P, R]) MapRequest(params P) (Definition, error) {
	values, err := toMap(params)
	if err != nil {
		return nil, err
	}
	return m.mapRequest(values)
}

func (m *ThenMapper[P, R]) mapRequest(params map[string]any) (Definition, error) {
	rest := cloneMap(params)
	then := make([]Definition, 0, len(m.chain))

	for _, chained := range m.chain {
		flag, present := rest[chained.Param]
		delete(rest, chained.Param)

		var childConfig any
		if chained.ConfigSource != "" {
			childConfig = rest[chained.ConfigSource]
			delete(rest, chained.ConfigSource)
		}

		// Presence, not truthiness: an explicit false still requests the child.
		if !present || flag == nil {
			continue
		}

		child := Definition{"actionType": chained.ActionType}
		if childConfig != nil {
			cfg, err := toMap(childConfig)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", chained.ConfigSource, err)
			}
			for k, v := range cfg {
				child[k] = v
			}
			child["actionType"] = chained.ActionType
		}
		then = append(then, child)
	}

	def := baseDefinition(m.actionType, m.defaults, rest)
	if len(then) > 0 {
		def["then"] = then
	}
	return def, nil
}

func (m *ThenMapper[P, R]) MapResponse(completion *Completion) (MappedResponse[R], error) {
	res := newResponse[R]()
	action := completion.Primary()
	if action.Error != nil {
		res.Errors = append(res.Errors, *action.Error)
		return res, nil
	}
	if !action.HasData() {
		return res, nil
	}

	parsed, err := parseData(action.Data)
	if err != nil {
		return res, err
	}

	if parsed.Exists("then") {
		for _, child := range parsed.S("then").Children() {
			actionType, _ := child.S("actionType").Data().(string)
			chained, ok := m.chainedFor(actionType)
			if !ok {
				continue
			}

			if child.Exists("error") && child.S("error").Data() != nil {
				var actionErr ActionError
				if err := json.Unmarshal(child.S("error").Bytes(), &actionErr); err != nil {
					return res, fmt.Errorf("decode %s error: %w", actionType, err)
				}
				res.Errors = append(res.Errors, actionErr)
				continue
			}

			if child.Exists("data") && child.S("data").Data() != nil {
				if _, err := parsed.Set(child.S("data").Data(), chained.Target); err != nil {
					return res, fmt.Errorf("attach %s: %w", chained.Target, err)
				}
			}
		}

		if err := parsed.Delete("then"); err != nil {
			return res, fmt.Errorf("strip then: %w", err)
		}
	}

	data, err := decodeData[R](parsed.Bytes())
	if err != nil {
		return res, err
	}
	res.Data = data
	return res, nil
}

// parseData keeps numbers as json.Number so ids past 2^53 survive the
// re-encode in ThenMapper.
func parseData(raw json.RawMessage) (*gabs.Container, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	parsed, err := gabs.ParseJSONDecoder(dec)
	if err != nil {
		return nil, fmt.Errorf("decode action data: %w", err)
	}
	return parsed, nil
}

func (m *ThenMapper[P, R]) chainedFor(actionType string) (ChainedAction, bool) {
	for _, chained := range m.chain {
		if chained.ActionType == actionType {
			return chained, true
		}
	}
	return ChainedAction{}, false
}

// PassthroughMapper runs caller-built workflow definitions and returns the
// raw completion.
type PassthroughMapper struct{}

func (PassthroughMapper) MapRequest(def Definition) (Definition, error) {
	if def.ActionType() == "" {
		return nil, fmt.Errorf("workflow definition requires an actionType")
	}
	return Definition(cloneMap(def)), nil
}

func (PassthroughMapper) mapRequest(params map[string]any) (Definition, error) {
	return PassthroughMapper{}.MapRequest(Definition(params))
}

func (PassthroughMapper) MapResponse(completion *Completion) (MappedResponse[Completion], error) {
	res := newResponse[Completion]()
	if completion == nil {
		return res, nil
	}
	for _, action := range completion.Actions {
		if action.Error != nil {
			res.Errors = append(res.Errors, *action.Error)
		}
	}
	c := *completion
	res.Data = &c
	return res, nil
}
