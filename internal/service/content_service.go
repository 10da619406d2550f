package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/domain"
	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/repository"
)

// ContentService manages announcements and events.
type ContentService struct {
	repo repository.ContentRepository
}

func NewContentService(repo repository.ContentRepository) *ContentService {
	return &ContentService{repo: repo}
}

func (s *ContentService) ListAnnouncements(ctx context.Context, activeOnly bool) ([]*domain.Announcement, error) {
	return s.repo.ListAnnouncements(ctx, activeOnly)
}

func (s *ContentService) GetAnnouncement(ctx context.Context, id string) (*domain.Announcement, error) {
	return s.repo.GetAnnouncement(ctx, id)
}

func (s *ContentService) CreateAnnouncement(ctx context.Context, a *domain.Announcement) error {
	if err := validateAnnouncement(a); err != nil {
		return err
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return s.repo.CreateAnnouncement(ctx, a)
}

func (s *ContentService) UpdateAnnouncement(ctx context.Context, a *domain.Announcement) error {
	if err := validateAnnouncement(a); err != nil {
		return err
	}
	return s.repo.UpdateAnnouncement(ctx, a)
}

func (s *ContentService) DeleteAnnouncement(ctx context.Context, id string) error {
	return s.repo.DeleteAnnouncement(ctx, id)
}

func (s *ContentService) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	return s.repo.ListEvents(ctx)
}

func (s *ContentService) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	return s.repo.GetEvent(ctx, id)
}

func (s *ContentService) CreateEvent(ctx context.Context, e *domain.Event) error {
	if err := validateEvent(e); err != nil {
		return err
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return s.repo.CreateEvent(ctx, e)
}

func (s *ContentService) UpdateEvent(ctx context.Context, e *domain.Event) error {
	if err := validateEvent(e); err != nil {
		return err
	}
	return s.repo.UpdateEvent(ctx, e)
}

func (s *ContentService) DeleteEvent(ctx context.Context, id string) error {
	return s.repo.DeleteEvent(ctx, id)
}

func validateAnnouncement(a *domain.Announcement) error {
	a.Title = strings.TrimSpace(a.Title)
	a.Description = strings.TrimSpace(a.Description)
	if a.Title == "" {
		return invalid("title", "is required")
	}
	if a.Description == "" {
		return invalid("description", "is required")
	}
	return nil
}

func validateEvent(e *domain.Event) error {
	e.Title = strings.TrimSpace(e.Title)
	e.Location = strings.TrimSpace(e.Location)
	if e.Title == "" {
		return invalid("title", "is required")
	}
	if e.Location == "" {
		return invalid("location", "is required")
	}
	if e.StartsAt.IsZero() {
		return invalid("startsAt", "is required")
	}
	if e.EndsAt != nil && e.EndsAt.Before(e.StartsAt) {
		return invalid("endsAt", "must not be before startsAt")
	}
	return nil
}
