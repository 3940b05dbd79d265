package composables

import (
	"context"
	"errors"

	"github.com/iota-uz/taskboard/modules/core/domain/aggregates/user"
	"github.com/iota-uz/taskboard/pkg/constants"
)

var (
	ErrNoUserFound = errors.New("no user found in context")
)

// WithUser returns a new context carrying the authenticated caller.
func WithUser(ctx context.Context, u user.User) context.Context {
	return context.WithValue(ctx, constants.UserKey, u)
}

// UseUser returns the authenticated caller from the context.
func UseUser(ctx context.Context) (user.User, error) {
	u, ok := ctx.Value(constants.UserKey).(user.User)
	if !ok {
		return user.User{}, ErrNoUserFound
	}
	return u, nil
}
