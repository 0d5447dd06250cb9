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

const createPostsTables = `
CREATE TABLE IF NOT EXISTS posts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	body TEXT NOT NULL,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	category_id INTEGER NOT NULL REFERENCES categories(id) ON DELETE CASCADE,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS post_tags (
	post_id INTEGER NOT NULL REFERENCES posts(id) ON DELETE CASCADE,
	tag_id INTEGER NOT NULL REFERENCES tags(id) ON DELETE CASCADE,
	PRIMARY KEY (post_id, tag_id)
);
`

const postColumns = `id, title, body, user_id, category_id, created_at, updated_at`

type PostRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) repository.PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createPostsTables); err != nil {
		return fmt.Errorf("create posts tables: %w", err)
	}
	return nil
}

func (r *PostRepository) Create(ctx context.Context, post *domain.Post) (int64, error) {
	now := time.Now().UTC()
	post.CreatedAt = now
	post.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO posts (title, body, user_id, category_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		post.Title,
		post.Body,
		post.UserID,
		post.CategoryID,
		post.CreatedAt,
		post.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert post: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("post last insert id: %w", err)
	}
	post.ID = id
	return id, nil
}

func (r *PostRepository) Update(ctx context.Context, post *domain.Post) error {
	post.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE posts SET title = ?, body = ?, category_id = ?, updated_at = ? WHERE id = ?`,
		post.Title,
		post.Body,
		post.CategoryID,
		post.UpdatedAt,
		post.ID,
	)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	return checkAffected(res)
}

func (r *PostRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	return checkAffected(res)
}

func (r *PostRepository) Get(ctx context.Context, id int64) (*domain.Post, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE id = ?`, id)
	post, err := scanPost(row)
	if err != nil {
		return nil, err
	}
	tags, err := r.loadTags(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	post.Tags = tags
	return post, nil
}

func (r *PostRepository) List(ctx context.Context, offset, limit int) ([]domain.Post, int64, error) {
	return r.list(ctx,
		`SELECT `+postColumns+` FROM posts ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		`SELECT COUNT(*) FROM posts`,
		nil, offset, limit)
}

func (r *PostRepository) ListByUser(ctx context.Context, userID int64, offset, limit int) ([]domain.Post, int64, error) {
	return r.list(ctx,
		`SELECT `+postColumns+` FROM posts WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		`SELECT COUNT(*) FROM posts WHERE user_id = ?`,
		[]any{userID}, offset, limit)
}

func (r *PostRepository) ListByCategory(ctx context.Context, categoryID int64, offset, limit int) ([]domain.Post, int64, error) {
	return r.list(ctx,
		`SELECT `+postColumns+` FROM posts WHERE category_id = ? ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		`SELECT COUNT(*) FROM posts WHERE category_id = ?`,
		[]any{categoryID}, offset, limit)
}

func (r *PostRepository) ListByTag(ctx context.Context, tagID int64, offset, limit int) ([]domain.Post, int64, error) {
	return r.list(ctx,
		`SELECT p.id, p.title, p.body, p.user_id, p.category_id, p.created_at, p.updated_at FROM posts p
JOIN post_tags pt ON pt.post_id = p.id
WHERE pt.tag_id = ? ORDER BY p.created_at DESC, p.id DESC LIMIT ? OFFSET ?`,
		`SELECT COUNT(*) FROM post_tags WHERE tag_id = ?`,
		[]any{tagID}, offset, limit)
}

func (r *PostRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts WHERE user_id = ?`, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count posts: %w", err)
	}
	return n, nil
}

func (r *PostRepository) SetTags(ctx context.Context, postID int64, tagIDs []int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM post_tags WHERE post_id = ?`, postID); err != nil {
		return fmt.Errorf("clear post tags: %w", err)
	}
	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx, `INSERT INTO post_tags (post_id, tag_id) VALUES (?, ?)`, postID, tagID); err != nil {
			return fmt.Errorf("insert post tag: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit post tags: %w", err)
	}
	return nil
}

func (r *PostRepository) list(ctx context.Context, query, countQuery string, args []any, offset, limit int) ([]domain.Post, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count posts: %w", err)
	}

	queryArgs := append(append([]any{}, args...), limit, offset)
	rows, err := r.db.QueryContext(ctx, query, queryArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []domain.Post
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, 0, err
		}
		posts = append(posts, *post)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate posts: %w", err)
	}

	for i := range posts {
		tags, err := r.loadTags(ctx, posts[i].ID)
		if err != nil {
			return nil, 0, err
		}
		posts[i].Tags = tags
	}
	return posts, total, nil
}

func (r *PostRepository) loadTags(ctx context.Context, postID int64) ([]domain.Tag, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT t.id, t.name, t.created_by, t.created_at, t.updated_at
FROM tags t
JOIN post_tags pt ON pt.tag_id = t.id
WHERE pt.post_id = ?
ORDER BY t.name`, postID)
	if err != nil {
		return nil, fmt.Errorf("load post tags: %w", err)
	}
	defer rows.Close()

	var tags []domain.Tag
	for rows.Next() {
		var tag domain.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.CreatedBy, &tag.CreatedAt, &tag.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan post tag: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

func scanPost(row interface {
	Scan(dest ...any) error
}) (*domain.Post, error) {
	var post domain.Post
	if err := row.Scan(
		&post.ID,
		&post.Title,
		&post.Body,
		&post.UserID,
		&post.CategoryID,
		&post.CreatedAt,
		&post.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan post: %w", err)
	}
	return &post, nil
}
