// Package luaif provides event filters written as Lua expressions.
//
// A filter is compiled once from source such as
//
//	ev.class == "stmi::Keys:KeyEvent" and ev.key == "Q"
//
// and evaluated for each event with the event exposed as the global table
// ev. Sources that are not expressions are run as chunks and their first
// return value is used. Any Lua truthy value accepts the event; errors,
// including timeouts, reject it.
//
// ev.device is the id of the device that generated the event, -1 for events
// of a device manager capability. Device management events name the device
// they are about in ev.subject and ev.subject_name.
//
// The Lua state is sandboxed: only the base, table, string and math
// libraries are available and file loading functions are removed.
package luaif

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"
)

// DefaultTimeout bounds a single filter evaluation.
const DefaultTimeout = 50 * time.Millisecond

var (
	// ErrStateClosed is returned when compiling on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrCompile is returned when a filter source does not compile.
	ErrCompile = errors.New("lua filter does not compile")
)

// State is a sandboxed Lua state hosting compiled filters. Evaluations are
// serialized by a mutex since the underlying Lua state is not goroutine-safe.
type State struct {
	L *lua.LState

	mu      sync.Mutex
	timeout time.Duration
	logger  zerolog.Logger
	closed  bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithTimeout sets the evaluation timeout. Zero disables it.
func WithTimeout(d time.Duration) StateOption {
	return func(s *State) {
		s.timeout = d
	}
}

// WithLogger sets the logger used to report failing evaluations.
func WithLogger(l zerolog.Logger) StateOption {
	return func(s *State) {
		s.logger = l
	}
}

// NewState creates a sandboxed Lua state.
func NewState(opts ...StateOption) *State {
	s := &State{
		timeout: DefaultTimeout,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.L = lua.NewState(lua.Options{SkipOpenLibs: true})
	openSafeLibraries(s.L)
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		s.L.SetGlobal(name, lua.LNil)
	}
	return s
}

func openSafeLibraries(L *lua.LState) {
	for _, lib := range []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}
}

// Compile compiles src into a filter. name identifies the filter in logs
// and in its String form.
func (s *State) Compile(name, src string) (*Predicate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStateClosed
	}
	fn, err := s.L.LoadString("return " + src)
	if err != nil {
		var chunkErr error
		fn, chunkErr = s.L.LoadString(src)
		if chunkErr != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrCompile, name, chunkErr)
		}
	}
	return &Predicate{state: s, name: name, src: src, fn: fn}, nil
}

// Close releases the Lua state. Filters compiled on it reject every event
// afterwards.
func (s *State) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	s.L.Close()
	s.closed = true
}
