package domain

import "context"

// EntryStore is the consumed interface of the trade record store. It is a
// pure adapter over the document database: request shaping only, no business
// logic. Any call may fail with a transport error; callers treat fetch
// failures as recoverable (empty result) and save failures as surfaced
// errors.
type EntryStore interface {
	// Range returns the date-key -> TradeDay mapping for one user, bounded
	// inclusively by start/end date keys. Empty bounds mean unbounded.
	// Records flagged deleted are excluded.
	Range(ctx context.Context, userID, start, end string) (TradeDataStore, error)

	// Save creates or overwrites the entry for one date wholesale.
	Save(ctx context.Context, userID, dateKey string, day TradeDay) error

	// Delete removes the underlying record entirely (hard delete).
	Delete(ctx context.Context, userID, dateKey string) error
}

// ProfileStore is the consumed interface of the user profile store.
type ProfileStore interface {
	// Get returns the profile document, or (nil, nil) when absent.
	Get(ctx context.Context, userID string) (*UserProfile, error)

	// Put merges a partial update into the stored profile and refreshes
	// updatedAt. Unspecified fields are preserved.
	Put(ctx context.Context, userID string, update ProfileUpdate) (*UserProfile, error)

	// Create writes a full profile document (sign-up path).
	Create(ctx context.Context, userID string, profile UserProfile) error
}

// Account is the identity provider's view of an authenticated user.
type Account struct {
	UserID        string
	Email         string
	EmailVerified bool
}

// TokenVerifier is the consumed interface of the managed identity provider.
// Sign-up, sign-in and password reset flows live entirely in the provider;
// the service only verifies presented tokens and sends verification mail.
type TokenVerifier interface {
	// Verify resolves an ID token to an account, or an error when the token
	// is invalid or expired.
	Verify(ctx context.Context, idToken string) (*Account, error)

	// SendVerificationEmail re-sends the address verification message for
	// the account behind the token. Courtesy action, failures are logged
	// and not surfaced.
	SendVerificationEmail(ctx context.Context, idToken string) error
}
