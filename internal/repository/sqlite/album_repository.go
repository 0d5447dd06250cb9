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

const createAlbumsTable = `
CREATE TABLE IF NOT EXISTS albums (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	title TEXT NOT NULL,
	user_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type AlbumRepository struct {
	db *sql.DB
}

func NewAlbumRepository(db *sql.DB) repository.AlbumRepository {
	return &AlbumRepository{db: db}
}

func (r *AlbumRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createAlbumsTable); err != nil {
		return fmt.Errorf("create albums table: %w", err)
	}
	return nil
}

func (r *AlbumRepository) Create(ctx context.Context, album *domain.Album) (int64, error) {
	now := time.Now().UTC()
	album.CreatedAt = now
	album.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO albums (title, user_id, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		album.Title,
		album.UserID,
		album.CreatedAt,
		album.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert album: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("album last insert id: %w", err)
	}
	album.ID = id
	return id, nil
}

func (r *AlbumRepository) Update(ctx context.Context, album *domain.Album) error {
	album.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `UPDATE albums SET title = ?, updated_at = ? WHERE id = ?`,
		album.Title, album.UpdatedAt, album.ID)
	if err != nil {
		return fmt.Errorf("update album: %w", err)
	}
	return checkAffected(res)
}

func (r *AlbumRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM albums WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete album: %w", err)
	}
	return checkAffected(res)
}

func (r *AlbumRepository) Get(ctx context.Context, id int64) (*domain.Album, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, title, user_id, created_at, updated_at FROM albums WHERE id = ?`, id)
	return scanAlbum(row)
}

func (r *AlbumRepository) List(ctx context.Context, offset, limit int) ([]domain.Album, int64, error) {
	return r.list(ctx,
		`SELECT id, title, user_id, created_at, updated_at FROM albums ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		`SELECT COUNT(*) FROM albums`,
		nil, offset, limit)
}

func (r *AlbumRepository) ListByUser(ctx context.Context, userID int64, offset, limit int) ([]domain.Album, int64, error) {
	return r.list(ctx,
		`SELECT id, title, user_id, created_at, updated_at FROM albums WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`,
		`SELECT COUNT(*) FROM albums WHERE user_id = ?`,
		[]any{userID}, offset, limit)
}

func (r *AlbumRepository) list(ctx context.Context, query, countQuery string, args []any, offset, limit int) ([]domain.Album, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count albums: %w", err)
	}

	queryArgs := append(append([]any{}, args...), limit, offset)
	rows, err := r.db.QueryContext(ctx, query, queryArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list albums: %w", err)
	}
	defer rows.Close()

	var albums []domain.Album
	for rows.Next() {
		album, err := scanAlbum(rows)
		if err != nil {
			return nil, 0, err
		}
		albums = append(albums, *album)
	}
	return albums, total, rows.Err()
}

func scanAlbum(row interface {
	Scan(dest ...any) error
}) (*domain.Album, error) {
	var album domain.Album
	if err := row.Scan(
		&album.ID,
		&album.Title,
		&album.UserID,
		&album.CreatedAt,
		&album.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan album: %w", err)
	}
	return &album, nil
}
