package domain

import "time"

type Announcement struct {
	ID          string    `bson:"_id" json:"id"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	Link        string    `bson:"link,omitempty" json:"link,omitempty"`
	Active      bool      `bson:"active" json:"active"`
	PublishedAt time.Time `bson:"published_at" json:"publishedAt"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

type Event struct {
	ID          string     `bson:"_id" json:"id"`
	Title       string     `bson:"title" json:"title"`
	Description string     `bson:"description" json:"description"`
	Location    string     `bson:"location" json:"location"`
	StartsAt    time.Time  `bson:"starts_at" json:"startsAt"`
	EndsAt      *time.Time `bson:"ends_at,omitempty" json:"endsAt,omitempty"`
	Featured    bool       `bson:"featured" json:"featured"`
	ImageURL    string     `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	CreatedAt   time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updatedAt"`
}
