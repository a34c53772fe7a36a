package switchboard

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/switchboard-dev/switchboard/internal/graph"
)

// Sentinel errors. These are matched with errors.Is; the typed errors
// below carry the per-failure context.
var (
	ErrNotFound      = errors.New("service not found")
	ErrSymbolUnknown = errors.New("symbol not registered")
)

var (
	_ error = NotFoundError{}
	_ error = CycleError{}
	_ error = LoadError{}
	_ error = ConfigError{}
	_ error = FactoryError{}
	_ error = ResolutionError{}
	_ error = TypeMismatchError{}
)

// CycleError reports a circular reference chain, e.g. a -> b -> a.
// The chain always starts and ends with the same service name.
type CycleError = graph.CycleError

// NotFoundError indicates a requested service has no definition.
type NotFoundError struct {
	Name string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("service %q not found", e.Name)
}

func (e NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// LoadError indicates a dotted symbol path could not be resolved to an
// invocable target.
type LoadError struct {
	Path  string
	Cause error
}

func (e LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cannot load symbol %q: %v", e.Path, e.Cause)
	}
	return fmt.Sprintf("cannot load symbol %q", e.Path)
}

func (e LoadError) Unwrap() error {
	return e.Cause
}

// ConfigError indicates a definition document or a definition itself is
// structurally invalid.
type ConfigError struct {
	Source string // file path, "stream", or the offending definition
	Reason string
	Cause  error
}

func (e ConfigError) Error() string {
	msg := "invalid configuration"
	if e.Source != "" {
		msg = fmt.Sprintf("invalid configuration in %s", e.Source)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e ConfigError) Unwrap() error {
	return e.Cause
}

// FactoryError wraps an error returned by an invoked factory. The cause is
// preserved verbatim and reachable through errors.Is and errors.As.
type FactoryError struct {
	Factory string // symbol path, or a type description for inline invocables
	Cause   error
}

func (e FactoryError) Error() string {
	return fmt.Sprintf("factory %s: %v", e.Factory, e.Cause)
}

func (e FactoryError) Unwrap() error {
	return e.Cause
}

// ResolutionError annotates a failure with the service that was being
// resolved when it happened, so a deep misconfiguration is diagnosable
// from the error message alone.
type ResolutionError struct {
	Name  string
	Cause error
}

func (e ResolutionError) Error() string {
	return fmt.Sprintf("resolving service %q: %v", e.Name, e.Cause)
}

func (e ResolutionError) Unwrap() error {
	return e.Cause
}

// TypeMismatchError indicates a built instance does not have the type the
// caller asked for.
type TypeMismatchError struct {
	Name     string
	Expected reflect.Type
	Actual   reflect.Type
}

func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("service %q: expected %v, got %v", e.Name, e.Expected, e.Actual)
}
