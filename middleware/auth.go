// Package middleware wraps menu actions with the session and role checks
// that must pass before the action runs.
package middleware

import (
	"context"

	"pizzastore/models"
	"pizzastore/session"
)

// Action is one menu option bound to the caller's session.
type Action func(ctx context.Context, sess *session.Session) error

// Middleware decorates an Action.
type Middleware func(Action) Action

// AuthRequired rejects callers without a valid session
func AuthRequired() Middleware {
	return func(next Action) Action {
		return func(ctx context.Context, sess *session.Session) error {
			if _, err := sess.Require(); err != nil {
				return err
			}
			return next(ctx, sess)
		}
	}
}

// RoleRequired probes the caller's live role and enforces that it is one of
// the allowed roles
func RoleRequired(p session.Prober, roles ...models.UserRole) Middleware {
	return func(next Action) Action {
		return func(ctx context.Context, sess *session.Session) error {
			if _, err := sess.Authorize(ctx, p, roles...); err != nil {
				return err
			}
			return next(ctx, sess)
		}
	}
}

// Chain applies mws so that the first one runs first.
func Chain(a Action, mws ...Middleware) Action {
	for i := len(mws) - 1; i >= 0; i-- {
		a = mws[i](a)
	}
	return a
}
