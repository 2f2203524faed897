// Package auth carries the authenticated account identity through request
// contexts. The verification itself lives in the server middleware; this
// package only owns the context plumbing so module handlers do not depend on
// the server package.
package auth

import (
	"context"

	"github.com/jstrader/tradejournal/internal/domain"
)

type contextKey struct{}

// WithAccount returns a context carrying the authenticated account.
func WithAccount(ctx context.Context, account domain.Account) context.Context {
	return context.WithValue(ctx, contextKey{}, account)
}

// Account extracts the authenticated account from the context. The zero value
// means the request never passed the auth middleware.
func Account(ctx context.Context) domain.Account {
	account, _ := ctx.Value(contextKey{}).(domain.Account)
	return account
}

// WithUserID returns a context carrying only the account ID. Test helper for
// handlers that read nothing else.
func WithUserID(ctx context.Context, userID string) context.Context {
	return WithAccount(ctx, domain.Account{UserID: userID})
}

// UserID extracts the authenticated account ID from the context. The empty
// string means the request never passed the auth middleware.
func UserID(ctx context.Context) string {
	return Account(ctx).UserID
}
