package service

import (
	"context"
	"errors"
	"strings"

	"blog-api/internal/auth"
	"blog-api/internal/domain"
	"blog-api/internal/repository"
)

// TagService manages tags independently of posts.
type TagService interface {
	List(ctx context.Context, page, size int) (Page[domain.Tag], error)
	Get(ctx context.Context, id int64) (*domain.Tag, error)
	Add(ctx context.Context, current *domain.User, name string) (*domain.Tag, error)
	Update(ctx context.Context, current *domain.User, id int64, name string) (*domain.Tag, error)
	Delete(ctx context.Context, current *domain.User, id int64) error
}

type tagService struct {
	tags repository.TagRepository
}

func NewTagService(tags repository.TagRepository) TagService {
	return &tagService{tags: tags}
}

func (s *tagService) List(ctx context.Context, page, size int) (Page[domain.Tag], error) {
	if err := ValidatePage(page, size); err != nil {
		return Page[domain.Tag]{}, err
	}
	tags, total, err := s.tags.List(ctx, page*size, size)
	if err != nil {
		return Page[domain.Tag]{}, err
	}
	return newPage(tags, page, size, total), nil
}

func (s *tagService) Get(ctx context.Context, id int64) (*domain.Tag, error) {
	tag, err := s.tags.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Tag", "id", id)
		}
		return nil, err
	}
	return tag, nil
}

func (s *tagService) Add(ctx context.Context, current *domain.User, name string) (*domain.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name", "Name is required")
	}
	tag := &domain.Tag{Name: name, CreatedBy: current.ID}
	if _, err := s.tags.Create(ctx, tag); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, invalid("name", "Tag name is already in use")
		}
		return nil, err
	}
	return tag, nil
}

func (s *tagService) Update(ctx context.Context, current *domain.User, id int64, name string) (*domain.Tag, error) {
	tag, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanModify(current, tag.CreatedBy) {
		return nil, ErrNoPermission
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name", "Name is required")
	}

	tag.Name = name
	if err := s.tags.Update(ctx, tag); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, invalid("name", "Tag name is already in use")
		}
		return nil, err
	}
	return tag, nil
}

func (s *tagService) Delete(ctx context.Context, current *domain.User, id int64) error {
	tag, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CanModify(current, tag.CreatedBy) {
		return ErrNoPermission
	}
	return s.tags.Delete(ctx, id)
}
