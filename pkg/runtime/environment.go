package runtime

import "sort"

type binding struct {
	value       Value
	mutable     bool
	initialized bool
}

// Scope is one link in the chain of binding tables.
type Scope struct {
	bindings map[string]*binding
	parent   *Scope

	// exitTo remembers the caller's frame for function scopes, whose parent
	// link points at the captured defining scope instead.
	exitTo *Scope
}

// NewScope creates a scope, optionally nested under a parent.
func NewScope(parent *Scope) *Scope {
	return &Scope{
		bindings: make(map[string]*binding),
		parent:   parent,
	}
}

// Parent exposes the lexical parent (nil for the global scope).
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Keys returns binding names in sorted order (useful for determinism in tests).
func (s *Scope) Keys() []string {
	keys := make([]string, 0, len(s.bindings))
	for k := range s.bindings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *Scope) lookup(name string) *binding {
	for scope := s; scope != nil; scope = scope.parent {
		if b, ok := scope.bindings[name]; ok {
			return b
		}
	}
	return nil
}

// LexicalEnvironment tracks the currently active scope frame, the global
// frame, and the global object the engine hangs builtins off.
type LexicalEnvironment struct {
	current      *Scope
	global       *Scope
	globalObject *ObjectValue
}

// NewLexicalEnvironment builds the environment with a single global frame.
func NewLexicalEnvironment(globalObject *ObjectValue) *LexicalEnvironment {
	scope := NewScope(nil)
	return &LexicalEnvironment{
		current:      scope,
		global:       scope,
		globalObject: globalObject,
	}
}

// GlobalObject returns the object builtins are registered on.
func (e *LexicalEnvironment) GlobalObject() *ObjectValue {
	return e.globalObject
}

// CurrentScope returns the active frame; regular callables capture it at
// declaration time.
func (e *LexicalEnvironment) CurrentScope() *Scope {
	return e.current
}

// PushScope enters a fresh frame parented to the active one.
func (e *LexicalEnvironment) PushScope() *Scope {
	e.current = NewScope(e.current)
	return e.current
}

// PushFunctionScope enters a call frame parented to the callable's captured
// defining scope rather than the caller's active frame.
func (e *LexicalEnvironment) PushFunctionScope(captured *Scope) *Scope {
	saved := e.current
	frame := NewScope(captured)
	frame.exitTo = saved
	e.current = frame
	return frame
}

// Pop leaves the active frame. Popping a function frame restores the
// caller's frame, not the captured parent.
func (e *LexicalEnvironment) Pop() {
	if e.current == e.global {
		return
	}
	if e.current.exitTo != nil {
		e.current = e.current.exitTo
		return
	}
	e.current = e.current.parent
}

// GetBindingValue resolves a name through the active scope chain, falling
// back to the global object's own properties so registered builtins resolve
// as plain identifiers. Unresolved names surface on the failure channel.
func (e *LexicalEnvironment) GetBindingValue(name string) (Value, error) {
	b := e.current.lookup(name)
	if b == nil {
		if e.globalObject != nil {
			if v, ok := e.globalObject.GetOwnField(name); ok {
				return v, nil
			}
		}
		return nil, Throwf("%s is not defined", name)
	}
	if !b.initialized {
		return UndefinedValue{}, nil
	}
	return b.value, nil
}

// CreateMutableBinding declares an uninitialized mutable binding in the
// active frame, shadowing any outer binding of the same name.
func (e *LexicalEnvironment) CreateMutableBinding(name string) {
	e.current.bindings[name] = &binding{mutable: true}
}

// CreateImmutableBinding declares an uninitialized immutable binding in the
// active frame.
func (e *LexicalEnvironment) CreateImmutableBinding(name string) {
	e.current.bindings[name] = &binding{mutable: false}
}

// InitializeBinding gives a declared binding its first value; initialization
// is permitted exactly once for immutable bindings.
func (e *LexicalEnvironment) InitializeBinding(name string, v Value) error {
	b := e.current.lookup(name)
	if b == nil {
		return Throwf("%s is not declared", name)
	}
	if b.initialized && !b.mutable {
		return Throwf("assignment to constant %s", name)
	}
	b.value = v
	b.initialized = true
	return nil
}

// DefineOrUpdate is the single declare-or-update operation assignments use:
// an existing binding in the active frame is overwritten, anything else
// becomes a fresh mutable binding there. Overwriting an immutable binding is
// a failure.
func (e *LexicalEnvironment) DefineOrUpdate(name string, v Value) error {
	if b, ok := e.current.bindings[name]; ok {
		if !b.mutable && b.initialized {
			return Throwf("assignment to constant %s", name)
		}
		b.value = v
		b.initialized = true
		return nil
	}
	e.current.bindings[name] = &binding{value: v, mutable: true, initialized: true}
	return nil
}
