// Package tools exposes the ledger as a fixed set of named tool calls with
// JSON arguments and JSON results, the shape an agent framework expects.
package tools

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/willfong/mockbank/internal/ledger"
)

var (
	ErrUnknownTool  = errors.New("unknown tool")
	ErrBadArguments = errors.New("bad arguments")
)

// Kind tells callers whether a tool changes ledger state
type Kind string

const (
	KindRead  Kind = "read"
	KindWrite Kind = "write"
)

// Schema is the JSON Schema object describing a tool's arguments.
type Schema struct {
	Type       string              `json:"type"`
	Properties map[string]Property `json:"properties"`
	Required   []string            `json:"required"`
}

// Property describes one argument.
type Property struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Default     any    `json:"default,omitempty"`
}

// Param declares an argument when building a tool.
type Param struct {
	Name        string
	Type        string
	Description string
	Required    bool
	Default     any
}

// Definition is the public description of a tool.
type Definition struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Kind        Kind   `json:"kind"`
	InputSchema Schema `json:"input_schema"`
}

// Tool is a registered tool.
type Tool struct {
	Definition
	invoke func(r *Registry, args json.RawMessage) (any, error)
}

// Registry binds the tool set to one engine.
type Registry struct {
	engine       *ledger.Engine
	historyLimit int
	log          *zap.Logger
	tools        map[string]*Tool
	order        []string
}

// Option configures a Registry.
type Option func(*Registry)

// WithHistoryLimit sets the page size used when a history call omits limit.
func WithHistoryLimit(n int) Option {
	return func(r *Registry) {
		if n > 0 {
			r.historyLimit = n
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(r *Registry) { r.log = log }
}

// NewRegistry registers every ledger tool against e.
func NewRegistry(e *ledger.Engine, opts ...Option) *Registry {
	r := &Registry{
		engine:       e,
		historyLimit: ledger.DefaultHistoryLimit,
		log:          zap.NewNop(),
		tools:        make(map[string]*Tool),
	}
	for _, opt := range opts {
		opt(r)
	}
	for _, t := range catalog(r.historyLimit) {
		r.tools[t.Name] = t
		r.order = append(r.order, t.Name)
	}
	return r
}

// Engine returns the engine the tools run against.
func (r *Registry) Engine() *ledger.Engine { return r.engine }

// Definitions lists the tools in registration order.
func (r *Registry) Definitions() []Definition {
	defs := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].Definition)
	}
	return defs
}

// Lookup returns a tool by name.
func (r *Registry) Lookup(name string) (*Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Call invokes a tool with raw JSON arguments. Business failures are not Go
// errors: they come back as a result carrying an "error" key. The returned
// error is reserved for unknown tools, malformed arguments and failures that
// did not come from the ledger.
func (r *Registry) Call(name string, args json.RawMessage) (any, error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTool, name)
	}
	result, err := t.invoke(r, args)
	if err != nil {
		if errors.Is(err, ErrBadArguments) {
			return nil, err
		}
		r.log.Debug("tool call failed", zap.String("tool", name), zap.Error(err))
		return failure(err)
	}
	r.log.Debug("tool call", zap.String("tool", name), zap.String("kind", string(t.Kind)))
	return result, nil
}

// CallJSON is Call with the result encoded as JSON.
func (r *Registry) CallJSON(name string, args json.RawMessage) (json.RawMessage, error) {
	result, err := r.Call(name, args)
	if err != nil {
		return nil, err
	}
	return json.Marshal(result)
}

// ErrorResult is the failure shape shared by every tool.
type ErrorResult struct {
	Error string `json:"error"`
}

// IdentityFailure is returned when identity verification does not match.
type IdentityFailure struct {
	Verified bool   `json:"verified"`
	Error    string `json:"error"`
}

// AmbiguousResult lists the candidates of an ambiguous customer search.
type AmbiguousResult struct {
	Error     string                 `json:"error"`
	Customers []ledger.CustomerMatch `json:"customers"`
}

// IsError reports whether a tool result is a failure.
func IsError(result any) bool {
	switch result.(type) {
	case ErrorResult, IdentityFailure, AmbiguousResult:
		return true
	default:
		return false
	}
}

func failure(err error) (any, error) {
	var ambiguous *ledger.AmbiguousMatchError
	if errors.As(err, &ambiguous) {
		return AmbiguousResult{Error: ambiguous.Error(), Customers: ambiguous.Candidates}, nil
	}
	var opErr *ledger.OpError
	if !errors.As(err, &opErr) {
		return nil, err
	}
	if errors.Is(err, ledger.ErrIdentityMismatch) {
		return IdentityFailure{Verified: false, Error: opErr.Error()}, nil
	}
	return ErrorResult{Error: opErr.Error()}, nil
}

// define builds a tool whose arguments decode into A.
func define[A any](name, description string, kind Kind, params []Param, call func(r *Registry, args A) (any, error)) *Tool {
	schema := Schema{Type: "object", Properties: make(map[string]Property, len(params)), Required: []string{}}
	for _, p := range params {
		schema.Properties[p.Name] = Property{Type: p.Type, Description: p.Description, Default: p.Default}
		if p.Required {
			schema.Required = append(schema.Required, p.Name)
		}
	}

	return &Tool{
		Definition: Definition{Name: name, Description: description, Kind: kind, InputSchema: schema},
		invoke: func(r *Registry, raw json.RawMessage) (any, error) {
			args, err := decodeArgs[A](raw, schema.Required)
			if err != nil {
				return nil, fmt.Errorf("%w for %s: %v", ErrBadArguments, name, err)
			}
			return call(r, args)
		},
	}
}

func decodeArgs[A any](raw json.RawMessage, required []string) (A, error) {
	var args A
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		raw = []byte("{}")
	}

	var present map[string]json.RawMessage
	if err := json.Unmarshal(raw, &present); err != nil {
		return args, fmt.Errorf("arguments must be a JSON object: %w", err)
	}
	for _, name := range required {
		v, ok := present[name]
		if !ok || bytes.Equal(v, []byte("null")) {
			return args, fmt.Errorf("missing required argument %q", name)
		}
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&args); err != nil {
		return args, err
	}
	return args, nil
}
