// Package profile is the boundary contract with the external identity
// collaborator. The store engine never touches it; the HTTP layer surfaces it
// to callers alongside engine state.
package profile

import (
	"context"
	"sync"

	"github.com/go-faster/errors"
)

// ErrNotSignedIn is returned when no user identity is available.
var ErrNotSignedIn = errors.New("not signed in")

// Profile holds the account fields supplied by the identity collaborator.
type Profile struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	AvatarURL string
}

// Update carries profile fields to change. Empty fields are left as they are.
type Update struct {
	FirstName string
	LastName  string
	Phone     string
	Address   string
	AvatarURL string
}

// Provider supplies the current user identity and a profile update operation.
// Implementations live outside this repo in a real deployment; StaticProvider
// stands in for development and tests.
type Provider interface {
	Current(ctx context.Context) (Profile, error)
	UpdateProfile(ctx context.Context, u Update) (Profile, error)
}

// StaticProvider is an in-memory Provider holding a single profile.
type StaticProvider struct {
	mu sync.Mutex
	p  Profile
}

// NewStaticProvider returns a provider seeded with the given profile.
func NewStaticProvider(p Profile) *StaticProvider {
	return &StaticProvider{p: p}
}

// NewGuestProvider returns a provider seeded with the default guest profile.
func NewGuestProvider() *StaticProvider {
	return NewStaticProvider(Profile{
		FirstName: "Guest",
		LastName:  "User",
		Email:     "guest@example.com",
		Phone:     "(555) 123-4567",
		Address:   "123 Shop Street, Market City, ST 12345",
	})
}

// Current returns the stored profile.
func (s *StaticProvider) Current(_ context.Context) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p, nil
}

// UpdateProfile applies the non-empty fields of u and returns the result.
func (s *StaticProvider) UpdateProfile(_ context.Context, u Update) (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.FirstName != "" {
		s.p.FirstName = u.FirstName
	}
	if u.LastName != "" {
		s.p.LastName = u.LastName
	}
	if u.Phone != "" {
		s.p.Phone = u.Phone
	}
	if u.Address != "" {
		s.p.Address = u.Address
	}
	if u.AvatarURL != "" {
		s.p.AvatarURL = u.AvatarURL
	}
	return s.p, nil
}
