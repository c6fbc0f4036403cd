package cider

import (
	"context"
	"database/sql"
)

// Session is a wrapper of sql.DB and sql.Tx
type Session interface {
	// QueryContext executes the query and returns the direct result.
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)

	// ExecContext executes a query without returning any rows.
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)

	// PrepareContext creates a prepared statement for later queries or executions.
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

// sessionKey is the key of the session in the context.
type sessionKey struct{}

// SessionWithContext returns a new context with the session.
func SessionWithContext(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}

// SessionFromContext returns the session from the context.
func SessionFromContext(ctx context.Context) Session {
	sess, _ := ctx.Value(sessionKey{}).(Session)
	return sess
}

var (
	// ensure that the sql.DB implements the Session interface.
	_ Session = (*sql.DB)(nil)

	// ensure that the sql.Tx implements the Session interface.
	_ Session = (*sql.Tx)(nil)
)
