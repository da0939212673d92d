// Package logging is the structured-logging seam of the account server.
// Services, stores and transports depend on Logger; main wires a slog
// JSON implementation and tests pass Nop.
package logging

import "context"

// Logger takes a message plus alternating key/value args:
//
//	log.Info(ctx, "account created", "user_id", id)
//
// Plaintext passwords and password hashes must never be passed as args.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)

	// Warn is for degraded but working states, e.g. the in-memory store.
	Warn(ctx context.Context, msg string, args ...any)

	// Error is for failures that surface to the client as an internal error.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that adds args to every record.
	With(args ...any) Logger
}

// Nop discards everything.
type Nop struct{}

func (Nop) Debug(context.Context, string, ...any) {}
func (Nop) Info(context.Context, string, ...any)  {}
func (Nop) Warn(context.Context, string, ...any)  {}
func (Nop) Error(context.Context, string, ...any) {}
func (n Nop) With(...any) Logger                  { return n }
