package service

import (
	"context"
	"errors"
	"strings"

	"blog-api/internal/auth"
	"blog-api/internal/domain"
	"blog-api/internal/repository"
)

// AlbumService manages photo albums.
type AlbumService interface {
	List(ctx context.Context, page, size int) (Page[domain.Album], error)
	ListByUser(ctx context.Context, username string, page, size int) (Page[domain.Album], error)
	Get(ctx context.Context, id int64) (*domain.Album, error)
	Add(ctx context.Context, current *domain.User, title string) (*domain.Album, error)
	Update(ctx context.Context, current *domain.User, id int64, title string) (*domain.Album, error)
	Delete(ctx context.Context, current *domain.User, id int64) error
}

type albumService struct {
	albums repository.AlbumRepository
	users  repository.UserRepository
}

func NewAlbumService(albums repository.AlbumRepository, users repository.UserRepository) AlbumService {
	return &albumService{
		albums: albums,
		users:  users,
	}
}

func (s *albumService) List(ctx context.Context, page, size int) (Page[domain.Album], error) {
	if err := ValidatePage(page, size); err != nil {
		return Page[domain.Album]{}, err
	}
	albums, total, err := s.albums.List(ctx, page*size, size)
	if err != nil {
		return Page[domain.Album]{}, err
	}
	return newPage(albums, page, size, total), nil
}

func (s *albumService) ListByUser(ctx context.Context, username string, page, size int) (Page[domain.Album], error) {
	if err := ValidatePage(page, size); err != nil {
		return Page[domain.Album]{}, err
	}
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Page[domain.Album]{}, notFound("User", "username", username)
		}
		return Page[domain.Album]{}, err
	}
	albums, total, err := s.albums.ListByUser(ctx, user.ID, page*size, size)
	if err != nil {
		return Page[domain.Album]{}, err
	}
	return newPage(albums, page, size, total), nil
}

func (s *albumService) Get(ctx context.Context, id int64) (*domain.Album, error) {
	album, err := s.albums.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Album", "id", id)
		}
		return nil, err
	}
	return album, nil
}

func (s *albumService) Add(ctx context.Context, current *domain.User, title string) (*domain.Album, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, invalid("title", "Title is required")
	}
	album := &domain.Album{Title: title, UserID: current.ID}
	if _, err := s.albums.Create(ctx, album); err != nil {
		return nil, err
	}
	return album, nil
}

func (s *albumService) Update(ctx context.Context, current *domain.User, id int64, title string) (*domain.Album, error) {
	album, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanModify(current, album.UserID) {
		return nil, ErrNoPermission
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, invalid("title", "Title is required")
	}

	album.Title = title
	if err := s.albums.Update(ctx, album); err != nil {
		return nil, err
	}
	return album, nil
}

func (s *albumService) Delete(ctx context.Context, current *domain.User, id int64) error {
	album, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CanModify(current, album.UserID) {
		return ErrNoPermission
	}
	return s.albums.Delete(ctx, id)
}
