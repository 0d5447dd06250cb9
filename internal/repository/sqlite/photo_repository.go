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

const createPhotosTable = `
CREATE TABLE IF NOT EXISTS photos (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	url TEXT NOT NULL,
	thumbnail_url TEXT NOT NULL,
	album_id INTEGER NOT NULL REFERENCES albums(id) ON DELETE CASCADE,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type PhotoRepository struct {
	db *sql.DB
}

func NewPhotoRepository(db *sql.DB) repository.PhotoRepository {
	return &PhotoRepository{db: db}
}

func (r *PhotoRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createPhotosTable); err != nil {
		return fmt.Errorf("create photos table: %w", err)
	}
	return nil
}

func (r *PhotoRepository) Create(ctx context.Context, photo *domain.Photo) (int64, error) {
	now := time.Now().UTC()
	photo.CreatedAt = now
	photo.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO photos (title, url, thumbnail_url, album_id, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		photo.Title,
		photo.URL,
		photo.ThumbnailURL,
		photo.AlbumID,
		photo.CreatedAt,
		photo.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert photo: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("photo last insert id: %w", err)
	}
	photo.ID = id
	return id, nil
}

func (r *PhotoRepository) Update(ctx context.Context, photo *domain.Photo) error {
	photo.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE photos SET title = ?, url = ?, thumbnail_url = ?, album_id = ?, updated_at = ? WHERE id = ?`,
		photo.Title,
		photo.URL,
		photo.ThumbnailURL,
		photo.AlbumID,
		photo.UpdatedAt,
		photo.ID,
	)
	if err != nil {
		return fmt.Errorf("update photo: %w", err)
	}
	return checkAffected(res)
}

func (r *PhotoRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM photos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete photo: %w", err)
	}
	return checkAffected(res)
}

func (r *PhotoRepository) Get(ctx context.Context, id int64) (*domain.Photo, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, title, url, thumbnail_url, album_id, created_at, updated_at FROM photos WHERE id = ?`, id)
	return scanPhoto(row)
}

func (r *PhotoRepository) List(ctx context.Context, offset, limit int) ([]domain.Photo, int64, error) {
	return r.list(ctx,
		`SELECT id, title, url, thumbnail_url, album_id, created_at, updated_at FROM photos ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		`SELECT COUNT(*) FROM photos`,
		nil, offset, limit)
}

func (r *PhotoRepository) ListByAlbum(ctx context.Context, albumID int64, offset, limit int) ([]domain.Photo, int64, error) {
	return r.list(ctx,
		`SELECT id, title, url, thumbnail_url, album_id, created_at, updated_at FROM photos WHERE album_id = ? ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		`SELECT COUNT(*) FROM photos WHERE album_id = ?`,
		[]any{albumID}, offset, limit)
}

func (r *PhotoRepository) list(ctx context.Context, query, countQuery string, args []any, offset, limit int) ([]domain.Photo, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count photos: %w", err)
	}

	queryArgs := append(append([]any{}, args...), limit, offset)
	rows, err := r.db.QueryContext(ctx, query, queryArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list photos: %w", err)
	}
	defer rows.Close()

	var photos []domain.Photo
	for rows.Next() {
		photo, err := scanPhoto(rows)
		if err != nil {
			return nil, 0, err
		}
		photos = append(photos, *photo)
	}
	return photos, total, rows.Err()
}

func scanPhoto(row interface {
	Scan(dest ...any) error
}) (*domain.Photo, error) {
	var photo domain.Photo
	if err := row.Scan(
		&photo.ID,
		&photo.Title,
		&photo.URL,
		&photo.ThumbnailURL,
		&photo.AlbumID,
		&photo.CreatedAt,
		&photo.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan photo: %w", err)
	}
	return &photo, nil
}
