package resp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// TerminalFailure carries a failure result that should be rendered as is,
// skipping the rest of the handler.
type TerminalFailure struct {
	Result *Result
}

// Error implements error
func (e *TerminalFailure) Error() string {
	if e.Result == nil || e.Result.Body == nil {
		return "terminal failure"
	}
	return fmt.Sprintf("terminal failure: status=%d code=%d message=%s", e.Result.Status, e.Result.Body.Code, e.Result.Body.Message)
}

// AsTerminal extracts the result of a *TerminalFailure anywhere in err's chain.
func AsTerminal(err error) (*Result, bool) {
	var tf *TerminalFailure
	if errors.As(err, &tf) && tf.Result != nil {
		return tf.Result, true
	}
	return nil, false
}

func (d *Dispatcher) terminal(ctx context.Context, message string, code int) error {
	_, err := d.Fail(ctx, message, code, nil, nil, 0)
	return err
}

// ErrorBadRequest returns a terminal 400 failure.
func (d *Dispatcher) ErrorBadRequest(ctx context.Context, message string) error {
	return d.terminal(ctx, message, http.StatusBadRequest)
}

// ErrorUnauthorized returns a terminal 401 failure.
func (d *Dispatcher) ErrorUnauthorized(ctx context.Context, message string) error {
	return d.terminal(ctx, message, http.StatusUnauthorized)
}

// ErrorForbidden returns a terminal 403 failure.
func (d *Dispatcher) ErrorForbidden(ctx context.Context, message string) error {
	return d.terminal(ctx, message, http.StatusForbidden)
}

// ErrorNotFound returns a terminal 404 failure.
func (d *Dispatcher) ErrorNotFound(ctx context.Context, message string) error {
	return d.terminal(ctx, message, http.StatusNotFound)
}

// ErrorMethodNotAllowed returns a terminal 405 failure.
func (d *Dispatcher) ErrorMethodNotAllowed(ctx context.Context, message string) error {
	return d.terminal(ctx, message, http.StatusMethodNotAllowed)
}

// ErrorInternal returns a terminal failure, 500 when code is zero.
func (d *Dispatcher) ErrorInternal(ctx context.Context, message string, code ...int) error {
	c := http.StatusInternalServerError
	if len(code) > 0 && code[0] != 0 {
		c = code[0]
	}
	return d.terminal(ctx, message, c)
}
