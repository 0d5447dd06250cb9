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

const createCommentsTable = `
CREATE TABLE IF NOT EXISTS comments (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	post_id INTEGER NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	body TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type CommentRepository struct {
	db *sql.DB
}

func NewCommentRepository(db *sql.DB) repository.CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createCommentsTable); err != nil {
		return fmt.Errorf("create comments table: %w", err)
	}
	return nil
}

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) (int64, error) {
	now := time.Now().UTC()
	comment.CreatedAt = now
	comment.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO comments (post_id, user_id, name, email, body, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		comment.PostID,
		comment.UserID,
		comment.Name,
		comment.Email,
		comment.Body,
		comment.CreatedAt,
		comment.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert comment: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("comment last insert id: %w", err)
	}
	comment.ID = id
	return id, nil
}

func (r *CommentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	comment.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `UPDATE comments SET body = ?, updated_at = ? WHERE id = ?`,
		comment.Body, comment.UpdatedAt, comment.ID)
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	return checkAffected(res)
}

func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	return checkAffected(res)
}

func (r *CommentRepository) Get(ctx context.Context, id int64) (*domain.Comment, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, post_id, user_id, name, email, body, created_at, updated_at
FROM comments WHERE id = ?`, id)
	return scanComment(row)
}

func (r *CommentRepository) ListByPost(ctx context.Context, postID int64, offset, limit int) ([]domain.Comment, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM comments WHERE post_id = ?`, postID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count comments: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, post_id, user_id, name, email, body, created_at, updated_at
FROM comments
WHERE post_id = ?
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?`, postID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list comments: %w", err)
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, 0, err
		}
		comments = append(comments, *comment)
	}
	return comments, total, rows.Err()
}

func scanComment(row interface {
	Scan(dest ...any) error
}) (*domain.Comment, error) {
	var comment domain.Comment
	if err := row.Scan(
		&comment.ID,
		&comment.PostID,
		&comment.UserID,
		&comment.Name,
		&comment.Email,
		&comment.Body,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan comment: %w", err)
	}
	return &comment, nil
}
