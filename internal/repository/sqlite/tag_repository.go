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

const createTagsTable = `
CREATE TABLE IF NOT EXISTS tags (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	created_by INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type TagRepository struct {
	db *sql.DB
}

func NewTagRepository(db *sql.DB) repository.TagRepository {
	return &TagRepository{db: db}
}

func (r *TagRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createTagsTable); err != nil {
		return fmt.Errorf("create tags table: %w", err)
	}
	return nil
}

func (r *TagRepository) Create(ctx context.Context, tag *domain.Tag) (int64, error) {
	now := time.Now().UTC()
	tag.CreatedAt = now
	tag.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO tags (name, created_by, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		tag.Name,
		tag.CreatedBy,
		tag.CreatedAt,
		tag.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, repository.ErrDuplicate
		}
		return 0, fmt.Errorf("insert tag: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("tag last insert id: %w", err)
	}
	tag.ID = id
	return id, nil
}

func (r *TagRepository) Update(ctx context.Context, tag *domain.Tag) error {
	tag.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `UPDATE tags SET name = ?, updated_at = ? WHERE id = ?`,
		tag.Name, tag.UpdatedAt, tag.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("update tag: %w", err)
	}
	return checkAffected(res)
}

func (r *TagRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tags WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	return checkAffected(res)
}

func (r *TagRepository) Get(ctx context.Context, id int64) (*domain.Tag, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, created_by, created_at, updated_at FROM tags WHERE id = ?`, id)
	return scanTag(row)
}

func (r *TagRepository) GetByName(ctx context.Context, name string) (*domain.Tag, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, created_by, created_at, updated_at FROM tags WHERE name = ?`, name)
	return scanTag(row)
}

func (r *TagRepository) List(ctx context.Context, offset, limit int) ([]domain.Tag, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tags`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tags: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, created_by, created_at, updated_at
FROM tags
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list tags: %w", err)
	}
	defer rows.Close()

	var tags []domain.Tag
	for rows.Next() {
		tag, err := scanTag(rows)
		if err != nil {
			return nil, 0, err
		}
		tags = append(tags, *tag)
	}
	return tags, total, rows.Err()
}

func scanTag(row interface {
	Scan(dest ...any) error
}) (*domain.Tag, error) {
	var tag domain.Tag
	if err := row.Scan(
		&tag.ID,
		&tag.Name,
		&tag.CreatedBy,
		&tag.CreatedAt,
		&tag.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan tag: %w", err)
	}
	return &tag, nil
}
