// Package format applies named display transforms to cell values.
//
// A transform is a Lua chunk run with two arguments, the cell value and
// the property name, available as the locals value and property. The
// chunk returns the display string:
//
//	return string.format("$%.2f", tonumber(value) or 0)
//
// Chunks run in a restricted state: only the base, table, string and math
// libraries are loaded and every loader function is removed.
package format

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	lua "github.com/yuin/gopher-lua"
)

// Errors returned by the registry.
var (
	// ErrUnknownTransform indicates a transform name that was never registered.
	ErrUnknownTransform = errors.New("unknown transform")

	// ErrCompile indicates a transform chunk failed to compile.
	ErrCompile = errors.New("transform does not compile")

	// ErrClosed indicates the registry was closed.
	ErrClosed = errors.New("format registry closed")
)

// DefaultTimeout bounds a single transform call.
const DefaultTimeout = 50 * time.Millisecond

// Builtins are always registered; configured scripts with the same name
// replace them.
var Builtins = map[string]string{
	"upper":   "return string.upper(tostring(value))",
	"lower":   "return string.lower(tostring(value))",
	"fixed2":  "local n = tonumber(value) if n == nil then return tostring(value) end return string.format('%.2f', n)",
	"percent": "local n = tonumber(value) if n == nil then return tostring(value) end return string.format('%.1f', n * 100) .. '%'",
}

// TransformError reports a runtime failure of a transform.
type TransformError struct {
	Name string
	Err  error
}

// Error implements the error interface.
func (e *TransformError) Error() string {
	return fmt.Sprintf("transform %q: %v", e.Name, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransformError) Unwrap() error {
	return e.Err
}

// Option configures a Registry.
type Option func(*Registry)

// WithTimeout sets the per-call time limit. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(r *Registry) {
		if d >= 0 {
			r.timeout = d
		}
	}
}

// Registry holds compiled transforms sharing one Lua state.
// It is safe for concurrent use; calls are serialized.
type Registry struct {
	mu      sync.Mutex
	L       *lua.LState
	fns     map[string]*lua.LFunction
	timeout time.Duration
	closed  bool
}

// New compiles the builtins and scripts.
func New(scripts map[string]string, opts ...Option) (*Registry, error) {
	r := &Registry{
		L:       newSandbox(),
		fns:     make(map[string]*lua.LFunction),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(r)
	}

	for name, src := range Builtins {
		if err := r.compile(name, src); err != nil {
			r.L.Close()
			return nil, err
		}
	}
	for name, src := range scripts {
		if err := r.compile(name, src); err != nil {
			r.L.Close()
			return nil, err
		}
	}
	return r, nil
}

func newSandbox() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

func (r *Registry) compile(name, src string) error {
	fn, err := r.L.LoadString("local value, property = ...\n" + src)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCompile, name, err)
	}
	r.fns[name] = fn
	return nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.fns[name]
	return ok
}

// Names returns the registered transform names, sorted.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, 0, len(r.fns))
	for name := range r.fns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply runs the named transform on value.
func (r *Registry) Apply(name string, value any, property string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return "", ErrClosed
	}
	fn, ok := r.fns[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTransform, name)
	}

	if r.timeout > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()
		r.L.SetContext(ctx)
		defer r.L.RemoveContext()
	}

	err := r.L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, toLua(value), lua.LString(property))
	if err != nil {
		return "", &TransformError{Name: name, Err: err}
	}
	ret := r.L.Get(-1)
	r.L.Pop(1)
	return fromLua(ret), nil
}

// Close releases the Lua state.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.closed = true
	r.L.Close()
}

func toLua(v any) lua.LValue {
	switch x := v.(type) {
	case nil:
		return lua.LNil
	case string:
		return lua.LString(x)
	case bool:
		return lua.LBool(x)
	case float64:
		return lua.LNumber(x)
	case float32:
		return lua.LNumber(x)
	case int:
		return lua.LNumber(x)
	case int64:
		return lua.LNumber(x)
	case int32:
		return lua.LNumber(x)
	default:
		return lua.LString(fmt.Sprint(x))
	}
}

func fromLua(v lua.LValue) string {
	switch v.Type() {
	case lua.LTNil:
		return ""
	case lua.LTString, lua.LTNumber:
		return lua.LVAsString(v)
	default:
		return v.String()
	}
}
