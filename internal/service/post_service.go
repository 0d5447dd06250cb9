package service

import (
	"context"
	"errors"
	"strings"

	"blog-api/internal/auth"
	"blog-api/internal/domain"
	"blog-api/internal/repository"
)

// PostRequest carries post creation/update input. Tags are referenced by name
// and created on first use.
type PostRequest struct {
	Title      string
	Body       string
	CategoryID int64
	Tags       []string
}

// PostService coordinates post operations, applying the ownership guard before
// every mutation.
type PostService interface {
	List(ctx context.Context, page, size int) (Page[domain.Post], error)
	ListByUser(ctx context.Context, username string, page, size int) (Page[domain.Post], error)
	ListByCategory(ctx context.Context, categoryID int64, page, size int) (Page[domain.Post], error)
	ListByTag(ctx context.Context, tagID int64, page, size int) (Page[domain.Post], error)
	Get(ctx context.Context, id int64) (*domain.Post, error)
	Add(ctx context.Context, current *domain.User, req PostRequest) (*domain.Post, error)
	Update(ctx context.Context, current *domain.User, id int64, req PostRequest) (*domain.Post, error)
	Delete(ctx context.Context, current *domain.User, id int64) error
}

type postService struct {
	posts      repository.PostRepository
	users      repository.UserRepository
	categories repository.CategoryRepository
	tags       repository.TagRepository
}

func NewPostService(posts repository.PostRepository, users repository.UserRepository,
	categories repository.CategoryRepository, tags repository.TagRepository) PostService {
	return &postService{
		posts:      posts,
		users:      users,
		categories: categories,
		tags:       tags,
	}
}

func (s *postService) List(ctx context.Context, page, size int) (Page[domain.Post], error) {
	if err := ValidatePage(page, size); err != nil {
		return Page[domain.Post]{}, err
	}
	posts, total, err := s.posts.List(ctx, page*size, size)
	if err != nil {
		return Page[domain.Post]{}, err
	}
	return newPage(posts, page, size, total), nil
}

func (s *postService) ListByUser(ctx context.Context, username string, page, size int) (Page[domain.Post], error) {
	if err := ValidatePage(page, size); err != nil {
		return Page[domain.Post]{}, err
	}
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Page[domain.Post]{}, notFound("User", "username", username)
		}
		return Page[domain.Post]{}, err
	}
	posts, total, err := s.posts.ListByUser(ctx, user.ID, page*size, size)
	if err != nil {
		return Page[domain.Post]{}, err
	}
	return newPage(posts, page, size, total), nil
}

func (s *postService) ListByCategory(ctx context.Context, categoryID int64, page, size int) (Page[domain.Post], error) {
	if err := ValidatePage(page, size); err != nil {
		return Page[domain.Post]{}, err
	}
	if _, err := s.categories.Get(ctx, categoryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Page[domain.Post]{}, notFound("Category", "id", categoryID)
		}
		return Page[domain.Post]{}, err
	}
	posts, total, err := s.posts.ListByCategory(ctx, categoryID, page*size, size)
	if err != nil {
		return Page[domain.Post]{}, err
	}
	return newPage(posts, page, size, total), nil
}

func (s *postService) ListByTag(ctx context.Context, tagID int64, page, size int) (Page[domain.Post], error) {
	if err := ValidatePage(page, size); err != nil {
		return Page[domain.Post]{}, err
	}
	if _, err := s.tags.Get(ctx, tagID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Page[domain.Post]{}, notFound("Tag", "id", tagID)
		}
		return Page[domain.Post]{}, err
	}
	posts, total, err := s.posts.ListByTag(ctx, tagID, page*size, size)
	if err != nil {
		return Page[domain.Post]{}, err
	}
	return newPage(posts, page, size, total), nil
}

func (s *postService) Get(ctx context.Context, id int64) (*domain.Post, error) {
	post, err := s.posts.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Post", "id", id)
		}
		return nil, err
	}
	return post, nil
}

func (s *postService) Add(ctx context.Context, current *domain.User, req PostRequest) (*domain.Post, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, invalid("title", "Title is required")
	}
	if _, err := s.categories.Get(ctx, req.CategoryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Category", "id", req.CategoryID)
		}
		return nil, err
	}

	tagIDs, err := s.resolveTags(ctx, current, req.Tags)
	if err != nil {
		return nil, err
	}

	post := &domain.Post{
		Title:      req.Title,
		Body:       req.Body,
		UserID:     current.ID,
		CategoryID: req.CategoryID,
	}
	if _, err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}
	if err := s.posts.SetTags(ctx, post.ID, tagIDs); err != nil {
		return nil, err
	}
	return s.Get(ctx, post.ID)
}

func (s *postService) Update(ctx context.Context, current *domain.User, id int64, req PostRequest) (*domain.Post, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, invalid("title", "Title is required")
	}
	post, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := s.categories.Get(ctx, req.CategoryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Category", "id", req.CategoryID)
		}
		return nil, err
	}
	if !auth.CanModify(current, post.UserID) {
		return nil, ErrNoPermission
	}

	post.Title = req.Title
	post.Body = req.Body
	post.CategoryID = req.CategoryID
	if err := s.posts.Update(ctx, post); err != nil {
		return nil, err
	}
	if req.Tags != nil {
		tagIDs, err := s.resolveTags(ctx, current, req.Tags)
		if err != nil {
			return nil, err
		}
		if err := s.posts.SetTags(ctx, post.ID, tagIDs); err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, post.ID)
}

func (s *postService) Delete(ctx context.Context, current *domain.User, id int64) error {
	post, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CanModify(current, post.UserID) {
		return ErrNoPermission
	}
	return s.posts.Delete(ctx, id)
}

// resolveTags maps tag names to ids, creating missing tags. A concurrent
// create losing the uniqueness race falls back to a fresh lookup.
func (s *postService) resolveTags(ctx context.Context, current *domain.User, names []string) ([]int64, error) {
	var ids []int64
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}

		tag, err := s.tags.GetByName(ctx, name)
		if err == nil {
			ids = append(ids, tag.ID)
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}

		created := &domain.Tag{Name: name, CreatedBy: current.ID}
		if _, err := s.tags.Create(ctx, created); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				existing, err := s.tags.GetByName(ctx, name)
				if err != nil {
					return nil, err
				}
				ids = append(ids, existing.ID)
				continue
			}
			return nil, err
		}
		ids = append(ids, created.ID)
	}
	return ids, nil
}
