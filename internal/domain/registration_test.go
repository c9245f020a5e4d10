package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistrationState(t *testing.T) {
	t.Run("fresh registration is registered", func(t *testing.T) {
		r := Registration{ID: 1, EventID: 2, UserID: 3}
		assert.Equal(t, StateRegistered, r.State())
	})

	t.Run("checked-in registration reports checked_in", func(t *testing.T) {
		now := time.Now()
		r := Registration{ID: 1, CheckedIn: true, CheckedInAt: &now}
		assert.Equal(t, StateCheckedIn, r.State())
	})
}

func TestRegistrationCheckIn(t *testing.T) {
	t.Run("first check-in sets flag and timestamp", func(t *testing.T) {
		r := Registration{ID: 1, EventID: 2, UserID: 3}
		now := time.Date(2025, 3, 14, 19, 0, 0, 0, time.UTC)

		require.NoError(t, r.CheckIn(now))
		assert.True(t, r.CheckedIn)
		require.NotNil(t, r.CheckedInAt)
		assert.Equal(t, now, *r.CheckedInAt)
	})

	t.Run("second check-in is rejected and timestamp preserved", func(t *testing.T) {
		r := Registration{ID: 1, EventID: 2, UserID: 3}
		first := time.Date(2025, 3, 14, 19, 0, 0, 0, time.UTC)
		require.NoError(t, r.CheckIn(first))

		err := r.CheckIn(first.Add(5 * time.Minute))
		assert.ErrorIs(t, err, ErrAlreadyCheckedIn)
		require.NotNil(t, r.CheckedInAt)
		assert.Equal(t, first, *r.CheckedInAt)
	})
}
