// Package cmdreg implements a name-to-command registry so that
// string-keyed collaborators (path files, dashboards, gamepad menus) can
// look up and schedule commands without holding a direct reference.
package cmdreg

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"go.pedropathing.dev/plus/cmdadapt"
	"go.pedropathing.dev/plus/command"
	"go.pedropathing.dev/plus/logging"
)

// ErrInvalidName is returned when a name is empty or all whitespace.
var ErrInvalidName = errors.New("cmdreg: name must not be empty")

// ErrInvalidCommand is returned when a nil command/object is registered.
var ErrInvalidCommand = errors.New("cmdreg: command must not be nil")

// Registry is a name -> Command map with parallel descriptions. Registries
// are independent: application code may keep a private Registry for tests,
// while Default() provides the process-wide instance used by collaborators
// (path files, event markers) that only have a string to go on, per §9's
// "thin process-wide accessor" guidance.
type Registry struct {
	mu           sync.RWMutex
	logger       logging.Logger
	commands     map[string]command.Command
	descriptions map[string]string
}

// New builds an empty, independently owned Registry.
func New(logger logging.Logger) *Registry {
	if logger == nil {
		logger = logging.Global()
	}
	return &Registry{
		logger:       logger,
		commands:     make(map[string]command.Command),
		descriptions: make(map[string]string),
	}
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// Default returns the process-wide Registry, lazily constructed.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultReg = New(logging.Global())
	})
	return defaultReg
}

// Register binds obj (a Command, a bare func(), or a structurally-matching
// object per cmdadapt) to name, replacing any prior binding. name is
// trimmed; empty names and nil objects are rejected.
func (r *Registry) Register(name string, obj any, description ...string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrInvalidName
	}
	if obj == nil {
		return ErrInvalidCommand
	}

	cmd, err := cmdadapt.Adapt(obj)
	if err != nil {
		return errors.Wrap(err, "cmdreg: adapting registered object")
	}

	desc := describe(obj)
	if len(description) > 0 {
		desc = description[0]
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands[trimmed] = cmd
	r.descriptions[trimmed] = desc
	return nil
}

func describe(obj any) string {
	if s, ok := obj.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", obj)
}

// Get returns the command registered under name, or a safe no-op command
// that logs a warning if name is unknown. It never fails the caller.
func (r *Registry) Get(name string) command.Command {
	trimmed := strings.TrimSpace(name)
	r.mu.RLock()
	cmd, ok := r.commands[trimmed]
	r.mu.RUnlock()
	if ok {
		return cmd
	}
	r.logger.Warnw("no command registered under name", "name", trimmed)
	return command.NewInstant(func() {
		r.logger.Warnw("attempted to execute unregistered command", "name", trimmed)
	})
}

// Has reports whether name is currently registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.commands[strings.TrimSpace(name)]
	return ok
}

// Remove deletes name from the registry, reporting whether it was present.
func (r *Registry) Remove(name string) bool {
	trimmed := strings.TrimSpace(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.commands[trimmed]
	delete(r.commands, trimmed)
	delete(r.descriptions, trimmed)
	return ok
}

// Clear removes every registered command.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.commands = make(map[string]command.Command)
	r.descriptions = make(map[string]string)
}

// Names returns every currently registered name, in no particular order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	return names
}

// Description returns the description registered for name, or "" if name is
// unknown.
func (r *Registry) Description(name string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.descriptions[strings.TrimSpace(name)]
}

// Count returns the number of registered commands.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.commands)
}
