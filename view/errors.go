package view

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"time"
)

// LifecycleError reports a panic raised while building, rebuilding or razing a view.
type LifecycleError struct {
	// Op is the lifecycle phase that failed ("build", "rebuild" or "raze").
	Op string
	// View is the type name of the root view.
	View string
	// Recovered is the value passed to panic.
	Recovered any
	// StackTrace is the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic was recovered.
	Timestamp time.Time
}

func (e *LifecycleError) Error() string {
	return fmt.Sprintf("view %s: %s panicked: %v", e.View, e.Op, e.Recovered)
}

// Unwrap returns the recovered value when it is an error.
func (e *LifecycleError) Unwrap() error {
	if err, ok := e.Recovered.(error); ok {
		return err
	}
	return nil
}

// guard runs fn and converts a panic into a LifecycleError.
func guard(op string, v View, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &LifecycleError{
				Op:         op,
				View:       reflect.TypeOf(v).String(),
				Recovered:  r,
				StackTrace: captureStack(),
				Timestamp:  time.Now(),
			}
		}
	}()
	fn()
	return nil
}

func captureStack() string {
	buf := make([]byte, 8192)
	n := runtime.Stack(buf, false)
	return strings.TrimSpace(string(buf[:n]))
}
