// Package log defines the logger used by the server, storage and CLI.
package log

import "context"

// Kv is a helper type for structured logging key-value pairs.
type Kv = map[string]any

// Logger is the interface the application logs through.
type Logger interface {
	Infof(format string, args ...any)
	Warningf(format string, args ...any)
	Errorf(format string, args ...any)
	Debugf(format string, args ...any)
	WithValues(values Kv) Logger
	WithCtxValues(ctx context.Context) Logger
}

type contextKey struct{}

// CtxWithValues returns a context carrying values that WithCtxValues adds to
// every entry. Values already on ctx are kept unless overwritten.
func CtxWithValues(ctx context.Context, values Kv) context.Context {
	merged := Kv{}
	for k, v := range ValuesFromCtx(ctx) {
		merged[k] = v
	}
	for k, v := range values {
		merged[k] = v
	}
	return context.WithValue(ctx, contextKey{}, merged)
}

// ValuesFromCtx returns the values stored with CtxWithValues.
func ValuesFromCtx(ctx context.Context) Kv {
	if ctx == nil {
		return nil
	}
	values, _ := ctx.Value(contextKey{}).(Kv)
	return values
}

// Noop is a logger that discards everything.
const Noop = noop(0)

type noop int

func (noop) Infof(string, ...any)                   {}
func (noop) Warningf(string, ...any)                {}
func (noop) Errorf(string, ...any)                  {}
func (noop) Debugf(string, ...any)                  {}
func (n noop) WithValues(Kv) Logger                 { return n }
func (n noop) WithCtxValues(context.Context) Logger { return n }
