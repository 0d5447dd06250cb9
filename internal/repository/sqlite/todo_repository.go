package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"blog-api/internal/domain"
	"blog-api/internal/repository"
)

const createTodosTable = `
CREATE TABLE IF NOT EXISTS todos (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	completed INTEGER NOT NULL DEFAULT 0,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL,
	UNIQUE (user_id, title)
);
`

type TodoRepository struct {
	db *sql.DB
}

func NewTodoRepository(db *sql.DB) repository.TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTodosTable); err != nil {
		return fmt.Errorf("create todos table: %w", err)
	}
	return nil
}

func (r *TodoRepository) Create(ctx context.Context, todo *domain.Todo) (int64, error) {
	now := time.Now().UTC()
	todo.CreatedAt = now
	todo.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO todos (title, completed, user_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		todo.Title,
		todo.Completed,
		todo.UserID,
		todo.CreatedAt,
		todo.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, repository.ErrDuplicate
		}
		return 0, fmt.Errorf("insert todo: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("todo last insert id: %w", err)
	}
	todo.ID = id
	return id, nil
}

func (r *TodoRepository) Update(ctx context.Context, todo *domain.Todo) error {
	todo.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE todos SET title = ?, completed = ?, updated_at = ? WHERE id = ?`,
		todo.Title, todo.Completed, todo.UpdatedAt, todo.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("update todo: %w", err)
	}
	return checkAffected(res)
}

func (r *TodoRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	return checkAffected(res)
}

func (r *TodoRepository) Get(ctx context.Context, id int64) (*domain.Todo, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, title, completed, user_id, created_at, updated_at FROM todos WHERE id = ?`, id)
	return scanTodo(row)
}

func (r *TodoRepository) ListByUser(ctx context.Context, userID int64, offset, limit int) ([]domain.Todo, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM todos WHERE user_id = ?`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count todos: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, title, completed, user_id, created_at, updated_at
FROM todos
WHERE user_id = ?
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?`, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	var todos []domain.Todo
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, 0, err
		}
		todos = append(todos, *todo)
	}
	return todos, total, rows.Err()
}

func scanTodo(row interface {
	Scan(dest ...any) error
}) (*domain.Todo, error) {
	var todo domain.Todo
	if err := row.Scan(
		&todo.ID,
		&todo.Title,
		&todo.Completed,
		&todo.UserID,
		&todo.CreatedAt,
		&todo.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan todo: %w", err)
	}
	return &todo, nil
}
