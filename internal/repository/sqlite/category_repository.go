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

const createCategoriesTable = `
CREATE TABLE IF NOT EXISTS categories (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	created_by INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type CategoryRepository struct {
	db *sql.DB
}

func NewCategoryRepository(db *sql.DB) repository.CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createCategoriesTable); err != nil {
		return fmt.Errorf("create categories table: %w", err)
	}
	return nil
}

func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) (int64, error) {
	now := time.Now().UTC()
	category.CreatedAt = now
	category.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO categories (name, created_by, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		category.Name,
		category.CreatedBy,
		category.CreatedAt,
		category.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert category: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("category last insert id: %w", err)
	}
	category.ID = id
	return id, nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	category.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `UPDATE categories SET name = ?, updated_at = ? WHERE id = ?`,
		category.Name, category.UpdatedAt, category.ID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return checkAffected(res)
}

func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return checkAffected(res)
}

func (r *CategoryRepository) Get(ctx context.Context, id int64) (*domain.Category, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, name, created_by, created_at, updated_at FROM categories WHERE id = ?`, id)
	return scanCategory(row)
}

func (r *CategoryRepository) List(ctx context.Context, offset, limit int) ([]domain.Category, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count categories: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, created_by, created_at, updated_at
FROM categories
ORDER BY created_at DESC, id DESC
LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, 0, err
		}
		categories = append(categories, *category)
	}
	return categories, total, rows.Err()
}

func scanCategory(row interface {
	Scan(dest ...any) error
}) (*domain.Category, error) {
	var category domain.Category
	if err := row.Scan(
		&category.ID,
		&category.Name,
		&category.CreatedBy,
		&category.CreatedAt,
		&category.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan category: %w", err)
	}
	return &category, nil
}
