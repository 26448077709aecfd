package identity

import (
	"context"
	"fmt"
	"sync"

	"github.com/supabase-community/supabase-go"

	"ripple/internal/models"
)

// SupabaseProvider validates access tokens against Supabase auth and
// holds the resulting viewer session.
type SupabaseProvider struct {
	client *supabase.Client

	mu        sync.Mutex
	current   *models.User
	listeners []func(*models.User)
}

// NewSupabaseProvider creates a provider for the given project URL and
// anon key.
func NewSupabaseProvider(url, anonKey string) (*SupabaseProvider, error) {
	client, err := supabase.NewClient(url, anonKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}
	return &SupabaseProvider{client: client}, nil
}

// Current returns the viewer snapshot, or nil when anonymous.
func (p *SupabaseProvider) Current() *models.User {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return nil
	}
	snapshot := *p.current
	return &snapshot
}

// SignIn validates the token with the auth service and installs the
// identity. The token's own claims fill in display name and avatar when
// the service response omits them.
func (p *SupabaseProvider) SignIn(_ context.Context, accessToken string) (*models.User, error) {
	// GetUser takes no context; the underlying HTTP request uses the
	// client's own.
	resp, err := p.client.Auth.WithToken(accessToken).GetUser()
	if err != nil {
		return nil, models.NewUnauthorizedError("Invalid or expired access token")
	}

	user := &models.User{
		ID:    resp.ID.String(),
		Email: resp.Email,
	}
	if name, ok := resp.UserMetadata["full_name"].(string); ok {
		user.DisplayName = name
	}
	if avatar, ok := resp.UserMetadata["avatar_url"].(string); ok {
		user.AvatarURL = avatar
	}

	if claims, err := claimsFromToken(accessToken); err == nil {
		if user.DisplayName == "" {
			user.DisplayName = claims.DisplayName
		}
		if user.AvatarURL == "" {
			user.AvatarURL = claims.AvatarURL
		}
		if user.Email == "" {
			user.Email = claims.Email
		}
	}

	p.setCurrent(user)
	snapshot := *user
	return &snapshot, nil
}

// SignOut clears the current identity and notifies listeners.
func (p *SupabaseProvider) SignOut(_ context.Context) error {
	p.setCurrent(nil)
	return nil
}

// OnChange registers an identity-change listener.
func (p *SupabaseProvider) OnChange(fn func(*models.User)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, fn)
}

func (p *SupabaseProvider) setCurrent(user *models.User) {
	p.mu.Lock()
	p.current = user
	listeners := make([]func(*models.User), len(p.listeners))
	copy(listeners, p.listeners)
	p.mu.Unlock()

	for _, fn := range listeners {
		var snapshot *models.User
		if user != nil {
			u := *user
			snapshot = &u
		}
		fn(snapshot)
	}
}
