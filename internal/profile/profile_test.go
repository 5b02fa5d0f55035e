package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuestProvider_Current(t *testing.T) {
	p, err := NewGuestProvider().Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Guest", p.FirstName)
	assert.Equal(t, "guest@example.com", p.Email)
}

func TestUpdateProfile_AppliesNonEmptyFields(t *testing.T) {
	s := NewGuestProvider()

	p, err := s.UpdateProfile(context.Background(), Update{
		FirstName: "Ada",
		Phone:     "555-0100",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ada", p.FirstName)
	assert.Equal(t, "555-0100", p.Phone)
	assert.Equal(t, "User", p.LastName) // untouched
	assert.Equal(t, "guest@example.com", p.Email)

	// The change is visible on the next read.
	got, err := s.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestUpdateProfile_EmptyUpdateIsNoOp(t *testing.T) {
	s := NewGuestProvider()
	before, _ := s.Current(context.Background())

	after, err := s.UpdateProfile(context.Background(), Update{})
	require.NoError(t, err)
	assert.Equal(t, before, after)
}
