package service

import (
	"context"
	"errors"
	"strings"

	"blog-api/internal/domain"
	"blog-api/internal/repository"
)

// TodoService manages private per-user todo items. A user only ever sees and
// mutates their own todos; there is no admin override on this resource.
type TodoService interface {
	List(ctx context.Context, current *domain.User, page, size int) (Page[domain.Todo], error)
	Get(ctx context.Context, current *domain.User, id int64) (*domain.Todo, error)
	Add(ctx context.Context, current *domain.User, title string) (*domain.Todo, error)
	Update(ctx context.Context, current *domain.User, id int64, title string, completed bool) (*domain.Todo, error)
	Complete(ctx context.Context, current *domain.User, id int64) (*domain.Todo, error)
	Uncomplete(ctx context.Context, current *domain.User, id int64) (*domain.Todo, error)
	Delete(ctx context.Context, current *domain.User, id int64) error
}

type todoService struct {
	todos repository.TodoRepository
}

func NewTodoService(todos repository.TodoRepository) TodoService {
	return &todoService{todos: todos}
}

func (s *todoService) List(ctx context.Context, current *domain.User, page, size int) (Page[domain.Todo], error) {
	if err := ValidatePage(page, size); err != nil {
		return Page[domain.Todo]{}, err
	}
	todos, total, err := s.todos.ListByUser(ctx, current.ID, page*size, size)
	if err != nil {
		return Page[domain.Todo]{}, err
	}
	return newPage(todos, page, size, total), nil
}

func (s *todoService) Get(ctx context.Context, current *domain.User, id int64) (*domain.Todo, error) {
	todo, err := s.todos.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("Todo", "id", id)
		}
		return nil, err
	}
	if todo.UserID != current.ID {
		return nil, ErrNoPermission
	}
	return todo, nil
}

func (s *todoService) Add(ctx context.Context, current *domain.User, title string) (*domain.Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, invalid("title", "Title is required")
	}
	todo := &domain.Todo{Title: title, UserID: current.ID}
	if _, err := s.todos.Create(ctx, todo); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, invalid("title", "Todo title is already in use")
		}
		return nil, err
	}
	return todo, nil
}

func (s *todoService) Update(ctx context.Context, current *domain.User, id int64, title string, completed bool) (*domain.Todo, error) {
	todo, err := s.Get(ctx, current, id)
	if err != nil {
		return nil, err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, invalid("title", "Title is required")
	}
	todo.Title = title
	todo.Completed = completed
	if err := s.todos.Update(ctx, todo); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, invalid("title", "Todo title is already in use")
		}
		return nil, err
	}
	return todo, nil
}

func (s *todoService) Complete(ctx context.Context, current *domain.User, id int64) (*domain.Todo, error) {
	return s.setCompleted(ctx, current, id, true)
}

func (s *todoService) Uncomplete(ctx context.Context, current *domain.User, id int64) (*domain.Todo, error) {
	return s.setCompleted(ctx, current, id, false)
}

func (s *todoService) setCompleted(ctx context.Context, current *domain.User, id int64, completed bool) (*domain.Todo, error) {
	todo, err := s.Get(ctx, current, id)
	if err != nil {
		return nil, err
	}
	todo.Completed = completed
	if err := s.todos.Update(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

func (s *todoService) Delete(ctx context.Context, current *domain.User, id int64) error {
	todo, err := s.Get(ctx, current, id)
	if err != nil {
		return err
	}
	return s.todos.Delete(ctx, todo.ID)
}
