package orders

import (
	"errors"
	"fmt"
)

var (
	// ErrLoad matches any failure to fetch work orders from the store.
	ErrLoad = errors.New("load work orders")
	// ErrLaunch matches any failure to build the editor.
	ErrLaunch = errors.New("open editor")
	// ErrEditorOpen is returned when an editor is already open.
	ErrEditorOpen = errors.New("an editor is already open")
	// ErrCreateNotAllowed is returned by create requests while the session may not create.
	ErrCreateNotAllowed = errors.New("not allowed to create work orders")
	// ErrUnknownStatus is returned for a status filter outside StatusChoices.
	ErrUnknownStatus = errors.New("unknown status")
)

// LoadError wraps a record store failure.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string { return fmt.Sprintf("%v: %v", ErrLoad, e.Err) }

func (e *LoadError) Unwrap() error { return e.Err }

func (e *LoadError) Is(target error) bool { return target == ErrLoad }

// LaunchError wraps an editor construction failure.
type LaunchError struct {
	Err error
}

func (e *LaunchError) Error() string { return fmt.Sprintf("%v: %v", ErrLaunch, e.Err) }

func (e *LaunchError) Unwrap() error { return e.Err }

func (e *LaunchError) Is(target error) bool { return target == ErrLaunch }
