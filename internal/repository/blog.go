package repository

import (
	"context"

	"blog-api/internal/domain"
)

// PostRepository exposes persistence operations for Post aggregates. Listing
// methods return the page content plus the unpaged total, newest first.
type PostRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, post *domain.Post) (int64, error)
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.Post, error)
	List(ctx context.Context, offset, limit int) ([]domain.Post, int64, error)
	ListByUser(ctx context.Context, userID int64, offset, limit int) ([]domain.Post, int64, error)
	ListByCategory(ctx context.Context, categoryID int64, offset, limit int) ([]domain.Post, int64, error)
	ListByTag(ctx context.Context, tagID int64, offset, limit int) ([]domain.Post, int64, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
	SetTags(ctx context.Context, postID int64, tagIDs []int64) error
}

// CategoryRepository manages post categories.
type CategoryRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, category *domain.Category) (int64, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.Category, error)
	List(ctx context.Context, offset, limit int) ([]domain.Category, int64, error)
}

// TagRepository manages tags; GetByName backs tag auto-creation on post writes.
type TagRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, tag *domain.Tag) (int64, error)
	Update(ctx context.Context, tag *domain.Tag) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.Tag, error)
	GetByName(ctx context.Context, name string) (*domain.Tag, error)
	List(ctx context.Context, offset, limit int) ([]domain.Tag, int64, error)
}

// CommentRepository manages comments scoped to posts.
type CommentRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, comment *domain.Comment) (int64, error)
	Update(ctx context.Context, comment *domain.Comment) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.Comment, error)
	ListByPost(ctx context.Context, postID int64, offset, limit int) ([]domain.Comment, int64, error)
}

// AlbumRepository manages photo albums.
type AlbumRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, album *domain.Album) (int64, error)
	Update(ctx context.Context, album *domain.Album) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.Album, error)
	List(ctx context.Context, offset, limit int) ([]domain.Album, int64, error)
	ListByUser(ctx context.Context, userID int64, offset, limit int) ([]domain.Album, int64, error)
}

// PhotoRepository manages photos within albums.
type PhotoRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, photo *domain.Photo) (int64, error)
	Update(ctx context.Context, photo *domain.Photo) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.Photo, error)
	List(ctx context.Context, offset, limit int) ([]domain.Photo, int64, error)
	ListByAlbum(ctx context.Context, albumID int64, offset, limit int) ([]domain.Photo, int64, error)
}

// TodoRepository manages per-user todo items.
type TodoRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, todo *domain.Todo) (int64, error)
	Update(ctx context.Context, todo *domain.Todo) error
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*domain.Todo, error)
	ListByUser(ctx context.Context, userID int64, offset, limit int) ([]domain.Todo, int64, error)
}
