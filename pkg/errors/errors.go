// Package errors provides structured error handling for the fieldkit toolkit.
package errors

import (
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindHost indicates a host backend or platform view error.
	KindHost
	// KindInit indicates an initialization or configuration error.
	KindInit
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindBuild indicates a build-time widget error.
	KindBuild
)

func (k ErrorKind) String() string {
	switch k {
	case KindHost:
		return "host"
	case KindInit:
		return "init"
	case KindPanic:
		return "panic"
	case KindBuild:
		return "build"
	default:
		return "unknown"
	}
}

// KitError represents a structured error in the fieldkit toolkit.
type KitError struct {
	// Op is the operation that failed (e.g., "platform.CreateView").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Err is the underlying error.
	Err error
	// View is the platform view type, if applicable.
	View string
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *KitError) Error() string {
	if e.View != "" {
		return fmt.Sprintf("%s [%s] view=%s: %v", e.Op, e.Kind, e.View, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *KitError) Unwrap() error {
	return e.Err
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "widgets.commitBufferedText").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// BuildError represents a failure during widget build.
type BuildError struct {
	// Widget is the type name of the widget that failed.
	Widget string
	// Element is the element type (StatelessElement, StatefulElement, etc.).
	Element string
	// Recovered is the panic value (nil for regular errors).
	Recovered any
	// Err is the underlying error (nil for panics).
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *BuildError) Error() string {
	if e.Recovered != nil {
		return fmt.Sprintf("panic in %s.Build(): %v", e.Widget, e.Recovered)
	}
	if e.Err != nil {
		return fmt.Sprintf("error in %s.Build(): %v", e.Widget, e.Err)
	}
	return fmt.Sprintf("unknown error in %s.Build()", e.Widget)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// ErrorHandler receives errors reported by the toolkit.
type ErrorHandler interface {
	// HandleError is called when an error occurs.
	HandleError(err *KitError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
	// HandleBuildError is called when a widget build fails.
	HandleBuildError(err *BuildError)
}
