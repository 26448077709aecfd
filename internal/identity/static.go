package identity

import (
	"context"
	"sync"

	"ripple/internal/models"
)

// StaticProvider is a fixed-identity Provider for dev mode and tests.
// SignIn always yields the configured user regardless of token.
type StaticProvider struct {
	mu        sync.Mutex
	user      models.User
	signedIn  bool
	listeners []func(*models.User)
}

// NewStaticProvider creates a provider that will yield the given user
// once signed in.
func NewStaticProvider(user models.User) *StaticProvider {
	return &StaticProvider{user: user}
}

func (p *StaticProvider) Current() *models.User {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.signedIn {
		return nil
	}
	snapshot := p.user
	return &snapshot
}

func (p *StaticProvider) SignIn(_ context.Context, _ string) (*models.User, error) {
	p.mu.Lock()
	p.signedIn = true
	snapshot := p.user
	listeners := make([]func(*models.User), len(p.listeners))
	copy(listeners, p.listeners)
	p.mu.Unlock()

	for _, fn := range listeners {
		u := snapshot
		fn(&u)
	}
	return &snapshot, nil
}

func (p *StaticProvider) SignOut(_ context.Context) error {
	p.mu.Lock()
	p.signedIn = false
	listeners := make([]func(*models.User), len(p.listeners))
	copy(listeners, p.listeners)
	p.mu.Unlock()

	for _, fn := range listeners {
		fn(nil)
	}
	return nil
}

func (p *StaticProvider) OnChange(fn func(*models.User)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, fn)
}
