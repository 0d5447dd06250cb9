package domain

import "time"

// Post is an article published by a user. Tags are attached by name and created
// on first use.
type Post struct {
	ID         int64
	Title      string
	Body       string
	UserID     int64
	CategoryID int64
	Tags       []Tag
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Category groups posts. CreatedBy records the owning user for authorization.
type Category struct {
	ID        int64
	Name      string
	CreatedBy int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Tag is a free-form label shared across posts.
type Tag struct {
	ID        int64
	Name      string
	CreatedBy int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Comment is attached to exactly one post.
type Comment struct {
	ID        int64
	PostID    int64
	UserID    int64
	Name      string
	Email     string
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Album is a photo collection owned by a user.
type Album struct {
	ID        int64
	Title     string
	UserID    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Photo belongs to an album; ownership follows the album's owner.
type Photo struct {
	ID           int64
	Title        string
	URL          string
	ThumbnailURL string
	AlbumID      int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Todo is a private task item; titles are unique per user.
type Todo struct {
	ID        int64
	Title     string
	Completed bool
	UserID    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
