package class

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

// Registry maps qualified names to classes. It is populated at startup and
// read afterwards; every name can be defined once.
type Registry struct {
	mu      sync.RWMutex
	classes map[string]*Class
	frozen  bool
	logger  *slog.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger handed to instances.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		classes: make(map[string]*Class),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Logger returns the registry's logger.
func (r *Registry) Logger() *slog.Logger {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.logger
}

// SetLogger replaces the logger used for instances created from now on.
func (r *Registry) SetLogger(logger *slog.Logger) {
	if logger == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
}

// Define registers a class. Parents and mixins are looked up lazily, so
// classes may be defined in any order.
func (r *Registry) Define(name string, d Descriptor) (*Class, error) {
	if !ValidName(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen {
		return nil, fmt.Errorf("define %q: %w", name, ErrFrozen)
	}
	if _, exists := r.classes[name]; exists {
		return nil, &DuplicateDefinitionError{Name: name}
	}

	c := &Class{name: name, desc: d.clone()}
	r.classes[name] = c
	r.logger.Debug("Registering class.", "name", name, "extend", d.Extend)
	return c, nil
}

// Freeze rejects further definitions.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen = true
}

// Lookup returns the class registered under name.
func (r *Registry) Lookup(name string) (*Class, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.classes[name]
	if !ok {
		return nil, notFound(name)
	}
	return c, nil
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.classes[name]
	return ok
}

// Names returns every registered name, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.classes))
	for name := range r.classes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Resolve computes (once) and returns the class's merged tables.
func (r *Registry) Resolve(name string) (*Class, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.classes[name]
	if !ok {
		return nil, notFound(name)
	}
	if err := c.resolve(r, make(map[*Class]bool)); err != nil {
		return nil, err
	}
	return c, nil
}

// New builds an instance of name. Config defaults are merged and cfg is
// applied on top. The instance's init method is not called.
func (r *Registry) New(name string, cfg map[string]any) (*Instance, error) {
	c, err := r.Resolve(name)
	if err != nil {
		return nil, err
	}
	return newInstance(r, c, cfg), nil
}

// Create builds an instance and runs its init method when it has one.
func (r *Registry) Create(name string, cfg map[string]any) (*Instance, error) {
	inst, err := r.New(name, cfg)
	if err != nil {
		return nil, err
	}
	if inst.Has(MethodInit) {
		inst.Call(MethodInit)
	}
	return inst, nil
}

func notFound(name string) error {
	return fmt.Errorf("%w: %q", ErrNotFound, name)
}
