package service

import (
	"context"
	"errors"
	"strings"

	"blog-api/internal/auth"
	"blog-api/internal/domain"
	"blog-api/internal/repository"
)

// PhotoRequest carries photo creation/update input.
type PhotoRequest struct {
	Title        string
	URL          string
	ThumbnailURL string
	AlbumID      int64
}

// PhotoService manages photos. Ownership follows the containing album: adding
// requires being the album's owner, updating and deleting allow owner or admin.
type PhotoService interface {
	List(ctx context.Context, page, size int) (Page[domain.Photo], error)
	ListByAlbum(ctx context.Context, albumID int64, page, size int) (Page[domain.Photo], error)
	Get(ctx context.Context, id int64) (*domain.Photo, error)
	Add(ctx context.Context, current *domain.User, req PhotoRequest) (*domain.Photo, error)
	Update(ctx context.Context, current *domain.User, id int64, req PhotoRequest) (*domain.Photo, error)
	Delete(ctx context.Context, current *domain.User, id int64) error
}

type photoService struct {
	photos repository.PhotoRepository
	albums repository.AlbumRepository
}

func NewPhotoService(photos repository.PhotoRepository, albums repository.AlbumRepository) PhotoService {
	return &photoService{
		photos: photos,
		albums: albums,
	}
}

func (s *photoService) List(ctx context.Context, page, size int) (Page[domain.Photo], error) {
	if err := ValidatePage(page, size); err != nil {
		return Page[domain.Photo]{}, err
	}
	photos, total, err := s.photos.List(ctx, page*size, size)
	if err != nil {
		return Page[domain.Photo]{}, err
	}
	return newPage(photos, page, size, total), nil
}

func (s *photoService) ListByAlbum(ctx context.Context, albumID int64, page, size int) (Page[domain.Photo], error) {
	if err := ValidatePage(page, size); err != nil {
		return Page[domain.Photo]{}, err
	}
	if _, err := s.getAlbum(ctx, albumID); err != nil {
		return Page[domain.Photo]{}, err
	}
	photos, total, err := s.photos.ListByAlbum(ctx, albumID, page*size, size)
	if err != nil {
		return Page[domain.Photo]{}, err
	}
	return newPage(photos, page, size, total), nil
}

func (s *photoService) Get(ctx context.Context, id int64) (*domain.Photo, error) {
	photo, err := s.photos.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Photo", "id", id)
		}
		return nil, err
	}
	return photo, nil
}

func (s *photoService) Add(ctx context.Context, current *domain.User, req PhotoRequest) (*domain.Photo, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, invalid("title", "Title is required")
	}
	if strings.TrimSpace(req.URL) == "" {
		return nil, invalid("url", "URL is required")
	}
	album, err := s.getAlbum(ctx, req.AlbumID)
	if err != nil {
		return nil, err
	}
	// only the album's owner may add into it; admin does not override here
	if current == nil || album.UserID != current.ID {
		return nil, ErrNoPermission
	}

	photo := &domain.Photo{
		Title:        req.Title,
		URL:          req.URL,
		ThumbnailURL: req.ThumbnailURL,
		AlbumID:      album.ID,
	}
	if _, err := s.photos.Create(ctx, photo); err != nil {
		return nil, err
	}
	return photo, nil
}

func (s *photoService) Update(ctx context.Context, current *domain.User, id int64, req PhotoRequest) (*domain.Photo, error) {
	photo, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	album, err := s.getAlbum(ctx, req.AlbumID)
	if err != nil {
		return nil, err
	}
	owner, err := s.getAlbum(ctx, photo.AlbumID)
	if err != nil {
		return nil, err
	}
	if !auth.CanModify(current, owner.UserID) {
		return nil, ErrNoPermission
	}

	photo.Title = req.Title
	photo.ThumbnailURL = req.ThumbnailURL
	photo.AlbumID = album.ID
	if req.URL != "" {
		photo.URL = req.URL
	}
	if err := s.photos.Update(ctx, photo); err != nil {
		return nil, err
	}
	return photo, nil
}

func (s *photoService) Delete(ctx context.Context, current *domain.User, id int64) error {
	photo, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	album, err := s.getAlbum(ctx, photo.AlbumID)
	if err != nil {
		return err
	}
	if !auth.CanModify(current, album.UserID) {
		return ErrNoPermission
	}
	return s.photos.Delete(ctx, id)
}

func (s *photoService) getAlbum(ctx context.Context, id int64) (*domain.Album, error) {
	album, err := s.albums.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Album", "id", id)
		}
		return nil, err
	}
	return album, nil
}
