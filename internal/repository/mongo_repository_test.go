package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

func setupContentDB(t *testing.T) (*MongoRepository, func()) {
	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	db, err := ConnectMongoDB(ctx, uri, "testdb")
	require.NoError(t, err)

	repo := NewMongoRepository(db)
	require.NoError(t, repo.CreateIndexes(ctx))

	cleanup := func() {
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	}

	return repo, cleanup
}

func TestAnnouncements_CRUD(t *testing.T) {
	repo, cleanup := setupContentDB(t)
	defer cleanup()

	ctx := context.Background()
	older := &domain.Announcement{
		ID:          uuid.NewString(),
		Title:       "Admissions open",
		Description: "New session starts in April",
		Active:      true,
		PublishedAt: time.Now().Add(-48 * time.Hour).UTC(),
	}
	newer := &domain.Announcement{
		ID:          uuid.NewString(),
		Title:       "Book fair",
		Description: "Visit our stall",
		Link:        "https://example.com/fair",
		Active:      true,
	}
	hidden := &domain.Announcement{
		ID:          uuid.NewString(),
		Title:       "Draft",
		Description: "Not yet",
		Active:      false,
	}
	require.NoError(t, repo.CreateAnnouncement(ctx, older))
	require.NoError(t, repo.CreateAnnouncement(ctx, newer))
	require.NoError(t, repo.CreateAnnouncement(ctx, hidden))
	assert.False(t, newer.PublishedAt.IsZero(), "published_at defaults to now")

	active, err := repo.ListAnnouncements(ctx, true)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, newer.ID, active[0].ID, "latest first")
	assert.Equal(t, older.ID, active[1].ID)

	all, err := repo.ListAnnouncements(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	hidden.Active = true
	hidden.Title = "Published"
	require.NoError(t, repo.UpdateAnnouncement(ctx, hidden))

	got, err := repo.GetAnnouncement(ctx, hidden.ID)
	require.NoError(t, err)
	assert.Equal(t, "Published", got.Title)
	assert.True(t, got.Active)
	assert.WithinDuration(t, hidden.UpdatedAt, got.UpdatedAt, time.Millisecond)

	require.NoError(t, repo.DeleteAnnouncement(ctx, hidden.ID))
	_, err = repo.GetAnnouncement(ctx, hidden.ID)
	assert.ErrorIs(t, err, ErrAnnouncementNotFound)
}

func TestAnnouncements_NotFound(t *testing.T) {
	repo, cleanup := setupContentDB(t)
	defer cleanup()

	ctx := context.Background()
	_, err := repo.GetAnnouncement(ctx, "missing")
	assert.ErrorIs(t, err, ErrAnnouncementNotFound)

	err = repo.UpdateAnnouncement(ctx, &domain.Announcement{ID: "missing", Title: "x"})
	assert.ErrorIs(t, err, ErrAnnouncementNotFound)

	err = repo.DeleteAnnouncement(ctx, "missing")
	assert.ErrorIs(t, err, ErrAnnouncementNotFound)
}

func TestEvents_CRUD(t *testing.T) {
	repo, cleanup := setupContentDB(t)
	defer cleanup()

	ctx := context.Background()
	now := time.Now().UTC()
	ends := now.Add(50 * time.Hour)

	later := &domain.Event{
		ID:       uuid.NewString(),
		Title:    "School workshop",
		Location: "Karachi",
		StartsAt: now.Add(72 * time.Hour),
	}
	sooner := &domain.Event{
		ID:       uuid.NewString(),
		Title:    "Author visit",
		Location: "Lahore",
		StartsAt: now.Add(48 * time.Hour),
		EndsAt:   &ends,
		Featured: true,
	}
	require.NoError(t, repo.CreateEvent(ctx, later))
	require.NoError(t, repo.CreateEvent(ctx, sooner))

	events, err := repo.ListEvents(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, sooner.ID, events[0].ID, "soonest first")
	require.NotNil(t, events[0].EndsAt)
	assert.WithinDuration(t, ends, *events[0].EndsAt, time.Millisecond)
	assert.Nil(t, events[1].EndsAt)

	later.Location = "Islamabad"
	require.NoError(t, repo.UpdateEvent(ctx, later))
	got, err := repo.GetEvent(ctx, later.ID)
	require.NoError(t, err)
	assert.Equal(t, "Islamabad", got.Location)

	require.NoError(t, repo.DeleteEvent(ctx, sooner.ID))
	assert.ErrorIs(t, repo.DeleteEvent(ctx, sooner.ID), ErrEventNotFound)

	_, err = repo.GetEvent(ctx, "missing")
	assert.ErrorIs(t, err, ErrEventNotFound)
	assert.ErrorIs(t, repo.UpdateEvent(ctx, &domain.Event{ID: "missing"}), ErrEventNotFound)
}
