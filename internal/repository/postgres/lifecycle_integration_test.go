package postgres

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"campushub/internal/checkin"
	"campushub/internal/domain"
	"campushub/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestStorage connects to the database named by DATABASE_URL and resets
// it. Tests are skipped when the variable is unset so the unit suite stays
// runnable without infrastructure.
func newTestStorage(t *testing.T) *Storage {
	t.Helper()

	connString := os.Getenv("DATABASE_URL")
	if connString == "" {
		t.Skip("DATABASE_URL not set")
	}

	storage, err := NewConnection(connString)
	require.NoError(t, err)
	t.Cleanup(storage.Close)

	ctx := context.Background()
	require.NoError(t, storage.EnsureSchema(ctx))
	_, err = storage.pool.Exec(ctx, `TRUNCATE users RESTART IDENTITY CASCADE;`)
	require.NoError(t, err)

	return storage
}

func createTestUser(t *testing.T, s *Storage, i int) *domain.User {
	t.Helper()

	user, err := s.CreateUser(context.Background(), &domain.RegisterRequest{
		StudentID: fmt.Sprintf("S%04d", i),
		Username:  fmt.Sprintf("user%d", i),
		FullName:  fmt.Sprintf("Test User %d", i),
	}, "hash")
	require.NoError(t, err)
	return user
}

func createTestEvent(t *testing.T, s *Storage, createdBy, maxAttendees int) *domain.Event {
	t.Helper()

	event, err := s.CreateEvent(context.Background(), createdBy, &domain.CreateEventRequest{
		Title:        "Hack Night",
		EventDate:    time.Now().Add(24 * time.Hour),
		Location:     "Main Hall",
		MaxAttendees: maxAttendees,
	})
	require.NoError(t, err)
	return event
}

func register(t *testing.T, s *Storage, eventID, userID int) *domain.Registration {
	t.Helper()

	code, err := checkin.NewCode()
	require.NoError(t, err)
	reg, err := s.CreateRegistration(context.Background(), eventID, userID, code, checkin.NewQRCredential())
	require.NoError(t, err)
	return reg
}

func TestRegistrationLifecycle(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	organizer := createTestUser(t, s, 1)
	attendee := createTestUser(t, s, 2)
	event := createTestEvent(t, s, organizer.ID, 50)

	reg := register(t, s, event.ID, attendee.ID)
	assert.Equal(t, domain.StateRegistered, reg.State())
	assert.False(t, reg.CheckedIn)

	t.Run("duplicate registration leaves one row", func(t *testing.T) {
		code, err := checkin.NewCode()
		require.NoError(t, err)
		_, err = s.CreateRegistration(ctx, event.ID, attendee.ID, code, checkin.NewQRCredential())
		assert.ErrorIs(t, err, domain.ErrAlreadyRegistered)

		attendees, err := s.ListRegistrations(ctx, event.ID)
		require.NoError(t, err)
		assert.Len(t, attendees, 1)

		surviving, err := s.GetRegistration(ctx, event.ID, attendee.ID)
		require.NoError(t, err)
		assert.Equal(t, reg.ID, surviving.ID)
	})

	t.Run("registering for a missing event reports not found", func(t *testing.T) {
		code, err := checkin.NewCode()
		require.NoError(t, err)
		_, err = s.CreateRegistration(ctx, 9999, attendee.ID, code, checkin.NewQRCredential())
		assert.ErrorIs(t, err, utils.ErrNotFound)
	})

	t.Run("code lookup is case-insensitive", func(t *testing.T) {
		found, err := s.GetRegistrationByCode(ctx, checkin.NormalizeCode(strings.ToLower(reg.CheckInCode)))
		require.NoError(t, err)
		assert.Equal(t, reg.ID, found.ID)
	})

	t.Run("check-in transitions once and keeps the first timestamp", func(t *testing.T) {
		first := time.Now().UTC().Truncate(time.Microsecond)
		checked, err := s.CheckInRegistration(ctx, reg.ID, first)
		require.NoError(t, err)
		assert.True(t, checked.CheckedIn)
		require.NotNil(t, checked.CheckedInAt)

		again, err := s.CheckInRegistration(ctx, reg.ID, first.Add(5*time.Minute))
		assert.ErrorIs(t, err, domain.ErrAlreadyCheckedIn)
		require.NotNil(t, again.CheckedInAt)
		assert.Equal(t, checked.CheckedInAt.UTC(), again.CheckedInAt.UTC())
	})

	t.Run("unregistering when absent is a no-op", func(t *testing.T) {
		other := createTestUser(t, s, 3)
		assert.NoError(t, s.DeleteRegistration(ctx, event.ID, other.ID))
	})
}

func TestRegistrationCapacity(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	organizer := createTestUser(t, s, 1)
	event := createTestEvent(t, s, organizer.ID, 5)

	const userCount = 20
	users := make([]*domain.User, 0, userCount)
	for i := 0; i < userCount; i++ {
		users = append(users, createTestUser(t, s, 100+i))
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	successes, fulls := 0, 0

	wg.Add(userCount)
	for _, u := range users {
		go func(userID int) {
			defer wg.Done()
			code, err := checkin.NewCode()
			if err != nil {
				t.Error(err)
				return
			}
			_, err = s.CreateRegistration(ctx, event.ID, userID, code, checkin.NewQRCredential())
			mu.Lock()
			defer mu.Unlock()
			switch err {
			case nil:
				successes++
			case domain.ErrEventFull:
				fulls++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(u.ID)
	}
	wg.Wait()

	attendees, err := s.ListRegistrations(ctx, event.ID)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(attendees), event.MaxAttendees, "overbooking detected")
	assert.Equal(t, successes, len(attendees))
	assert.Equal(t, userCount, successes+fulls)

	t.Run("a registered user retrying on a full event stays registered", func(t *testing.T) {
		require.NotEmpty(t, attendees)
		code, err := checkin.NewCode()
		require.NoError(t, err)
		_, err = s.CreateRegistration(ctx, event.ID, attendees[0].UserID, code, checkin.NewQRCredential())
		assert.ErrorIs(t, err, domain.ErrAlreadyRegistered)
	})
}

func TestAppInteractions(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	author := createTestUser(t, s, 1)
	fan := createTestUser(t, s, 2)

	app, err := s.CreateApp(ctx, author.ID, &domain.CreateAppRequest{
		Title: "Campus Maps",
		Tags:  []string{"maps", "go"},
	})
	require.NoError(t, err)

	t.Run("publishing awarded app points", func(t *testing.T) {
		u, err := s.GetUserByID(ctx, author.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.PointsPerApp, u.TotalPoints)
	})

	t.Run("liking twice keeps the count at one", func(t *testing.T) {
		count, err := s.LikeApp(ctx, app.ID, fan.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		count, err = s.LikeApp(ctx, app.ID, fan.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("unliking when not liked keeps the count at zero", func(t *testing.T) {
		count, err := s.UnlikeApp(ctx, app.ID, fan.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, count)

		count, err = s.UnlikeApp(ctx, app.ID, fan.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, count)
	})

	t.Run("re-rating overwrites instead of duplicating", func(t *testing.T) {
		require.NoError(t, s.RateApp(ctx, app.ID, fan.ID, 3))
		require.NoError(t, s.RateApp(ctx, app.ID, fan.ID, 5))

		stats, err := s.GetAppWithStats(ctx, app.ID, fan.ID)
		require.NoError(t, err)
		require.NotNil(t, stats.AverageRating)
		assert.Equal(t, 5.0, *stats.AverageRating)
		require.NotNil(t, stats.MyRating)
		assert.Equal(t, 5, *stats.MyRating)
	})
}
