// Package identity wraps the external auth service. The service owns
// session state; this boundary yields the current viewer snapshot and
// notifies listeners whenever the identity changes, which is what drives
// feed reloads.
package identity

import (
	"context"

	"ripple/internal/models"
)

// Provider is the auth boundary.
type Provider interface {
	// Current returns the viewer snapshot, or nil when anonymous.
	Current() *models.User
	// SignIn validates the access token with the auth service and
	// installs the resulting identity.
	SignIn(ctx context.Context, accessToken string) (*models.User, error)
	// SignOut clears the current identity.
	SignOut(ctx context.Context) error
	// OnChange registers a listener invoked with the new snapshot (nil
	// on sign-out) after every identity change.
	OnChange(fn func(*models.User))
}
