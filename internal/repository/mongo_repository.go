package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/saadrehman171000/Homage-Publisher-sub000/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepository stores announcements and events.
type MongoRepository struct {
	announcements *mongo.Collection
	events        *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		announcements: db.Collection("announcements"),
		events:        db.Collection("events"),
	}
}

func (m *MongoRepository) CreateIndexes(ctx context.Context) error {
	_, err := m.announcements.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "active", Value: 1}, {Key: "published_at", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create announcement indexes: %w", err)
	}
	_, err = m.events.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "starts_at", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create event indexes: %w", err)
	}
	return nil
}

func (m *MongoRepository) ListAnnouncements(ctx context.Context, activeOnly bool) ([]*domain.Announcement, error) {
	filter := bson.M{}
	if activeOnly {
		filter["active"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "published_at", Value: -1}})

	cursor, err := m.announcements.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	defer cursor.Close(ctx)

	out := make([]*domain.Announcement, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode announcements: %w", err)
	}
	return out, nil
}

func (m *MongoRepository) GetAnnouncement(ctx context.Context, id string) (*domain.Announcement, error) {
	var a domain.Announcement
	err := m.announcements.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrAnnouncementNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get announcement: %w", err)
	}
	return &a, nil
}

func (m *MongoRepository) CreateAnnouncement(ctx context.Context, a *domain.Announcement) error {
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	if a.PublishedAt.IsZero() {
		a.PublishedAt = now
	}
	if _, err := m.announcements.InsertOne(ctx, a); err != nil {
		return fmt.Errorf("failed to create announcement: %w", err)
	}
	return nil
}

func (m *MongoRepository) UpdateAnnouncement(ctx context.Context, a *domain.Announcement) error {
	a.UpdatedAt = time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"title":        a.Title,
		"description":  a.Description,
		"link":         a.Link,
		"active":       a.Active,
		"published_at": a.PublishedAt,
		"updated_at":   a.UpdatedAt,
	}}
	result, err := m.announcements.UpdateOne(ctx, bson.M{"_id": a.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update announcement: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrAnnouncementNotFound
	}
	return nil
}

func (m *MongoRepository) DeleteAnnouncement(ctx context.Context, id string) error {
	result, err := m.announcements.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete announcement: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrAnnouncementNotFound
	}
	return nil
}

func (m *MongoRepository) ListEvents(ctx context.Context) ([]*domain.Event, error) {
	opts := options.Find().SetSort(bson.D{{Key: "starts_at", Value: 1}})

	cursor, err := m.events.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer cursor.Close(ctx)

	out := make([]*domain.Event, 0)
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode events: %w", err)
	}
	return out, nil
}

func (m *MongoRepository) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	var e domain.Event
	err := m.events.FindOne(ctx, bson.M{"_id": id}).Decode(&e)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return &e, nil
}

func (m *MongoRepository) CreateEvent(ctx context.Context, e *domain.Event) error {
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now
	if _, err := m.events.InsertOne(ctx, e); err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

func (m *MongoRepository) UpdateEvent(ctx context.Context, e *domain.Event) error {
	e.UpdatedAt = time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"title":       e.Title,
		"description": e.Description,
		"location":    e.Location,
		"starts_at":   e.StartsAt,
		"ends_at":     e.EndsAt,
		"featured":    e.Featured,
		"image_url":   e.ImageURL,
		"updated_at":  e.UpdatedAt,
	}}
	result, err := m.events.UpdateOne(ctx, bson.M{"_id": e.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrEventNotFound
	}
	return nil
}

func (m *MongoRepository) DeleteEvent(ctx context.Context, id string) error {
	result, err := m.events.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrEventNotFound
	}
	return nil
}
