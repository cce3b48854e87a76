// Package auth issues and verifies the credentials behind every
// acting user id in the service layer: bcrypt passwords for accounts
// and HS256 JWTs for sessions.
package auth

import (
	"context"

	"github.com/mmynk/divvy/internal/models"
)

// Authenticator abstracts how an account proves itself. The password
// implementation is the only one today; the interface keeps the
// service layer ignorant of the credential format so passkeys or
// OAuth can slot in without touching it.
type Authenticator interface {
	// Register creates an account from an email, display name, and
	// credential, returning the stored user.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies a credential against the stored account
	// and returns the matching user.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks the credential against the
	// implementation's strength rules before any storage work happens.
	ValidateCredential(credential string) error
}
