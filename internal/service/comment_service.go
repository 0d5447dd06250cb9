package service

import (
	"context"
	"errors"
	"strings"

	"blog-api/internal/auth"
	"blog-api/internal/domain"
	"blog-api/internal/repository"
)

// CommentService manages comments scoped to a post.
type CommentService interface {
	ListByPost(ctx context.Context, postID int64, page, size int) (Page[domain.Comment], error)
	Get(ctx context.Context, postID, id int64) (*domain.Comment, error)
	Add(ctx context.Context, current *domain.User, postID int64, body string) (*domain.Comment, error)
	Update(ctx context.Context, current *domain.User, postID, id int64, body string) (*domain.Comment, error)
	Delete(ctx context.Context, current *domain.User, postID, id int64) error
}

type commentService struct {
	comments repository.CommentRepository
	posts    repository.PostRepository
}

func NewCommentService(comments repository.CommentRepository, posts repository.PostRepository) CommentService {
	return &commentService{
		comments: comments,
		posts:    posts,
	}
}

func (s *commentService) ListByPost(ctx context.Context, postID int64, page, size int) (Page[domain.Comment], error) {
	if err := ValidatePage(page, size); err != nil {
		return Page[domain.Comment]{}, err
	}
	if err := s.ensurePost(ctx, postID); err != nil {
		return Page[domain.Comment]{}, err
	}
	comments, total, err := s.comments.ListByPost(ctx, postID, page*size, size)
	if err != nil {
		return Page[domain.Comment]{}, err
	}
	return newPage(comments, page, size, total), nil
}

func (s *commentService) Get(ctx context.Context, postID, id int64) (*domain.Comment, error) {
	if err := s.ensurePost(ctx, postID); err != nil {
		return nil, err
	}
	comment, err := s.comments.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Comment", "id", id)
		}
		return nil, err
	}
	if comment.PostID != postID {
		return nil, invalid("postId", "Comment does not belong to post")
	}
	return comment, nil
}

func (s *commentService) Add(ctx context.Context, current *domain.User, postID int64, body string) (*domain.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, invalid("body", "Body is required")
	}
	if err := s.ensurePost(ctx, postID); err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		PostID: postID,
		UserID: current.ID,
		Name:   current.Username,
		Email:  current.Email,
		Body:   body,
	}
	if _, err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Update(ctx context.Context, current *domain.User, postID, id int64, body string) (*domain.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, invalid("body", "Body is required")
	}
	comment, err := s.Get(ctx, postID, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanModify(current, comment.UserID) {
		return nil, ErrNoPermission
	}

	comment.Body = body
	if err := s.comments.Update(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *commentService) Delete(ctx context.Context, current *domain.User, postID, id int64) error {
	comment, err := s.Get(ctx, postID, id)
	if err != nil {
		return err
	}
	if !auth.CanModify(current, comment.UserID) {
		return ErrNoPermission
	}
	return s.comments.Delete(ctx, id)
}

func (s *commentService) ensurePost(ctx context.Context, postID int64) error {
	if _, err := s.posts.Get(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("Post", "id", postID)
		}
		return err
	}
	return nil
}
