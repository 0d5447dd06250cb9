package service

import (
	"context"
	"errors"
	"strings"

	"blog-api/internal/auth"
	"blog-api/internal/domain"
	"blog-api/internal/repository"
)

// CategoryService manages post categories.
type CategoryService interface {
	List(ctx context.Context, page, size int) (Page[domain.Category], error)
	Get(ctx context.Context, id int64) (*domain.Category, error)
	Add(ctx context.Context, current *domain.User, name string) (*domain.Category, error)
	Update(ctx context.Context, current *domain.User, id int64, name string) (*domain.Category, error)
	Delete(ctx context.Context, current *domain.User, id int64) error
}

type categoryService struct {
	categories repository.CategoryRepository
}

func NewCategoryService(categories repository.CategoryRepository) CategoryService {
	return &categoryService{categories: categories}
}

func (s *categoryService) List(ctx context.Context, page, size int) (Page[domain.Category], error) {
	if err := ValidatePage(page, size); err != nil {
		return Page[domain.Category]{}, err
	}
	categories, total, err := s.categories.List(ctx, page*size, size)
	if err != nil {
		return Page[domain.Category]{}, err
	}
	return newPage(categories, page, size, total), nil
}

func (s *categoryService) Get(ctx context.Context, id int64) (*domain.Category, error) {
	category, err := s.categories.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Category", "id", id)
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Add(ctx context.Context, current *domain.User, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name", "Name is required")
	}
	category := &domain.Category{Name: name, CreatedBy: current.ID}
	if _, err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Update(ctx context.Context, current *domain.User, id int64, name string) (*domain.Category, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanModify(current, category.CreatedBy) {
		return nil, ErrNoPermission
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name", "Name is required")
	}

	category.Name = name
	if err := s.categories.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Delete(ctx context.Context, current *domain.User, id int64) error {
	category, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CanModify(current, category.CreatedBy) {
		return ErrNoPermission
	}
	return s.categories.Delete(ctx, id)
}
