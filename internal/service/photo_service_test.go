package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-api/internal/domain"
)

type photoFixture struct {
	albums  AlbumService
	photos  PhotoService
	admin   *domain.User
	alice   *domain.User
	bob     *domain.User
	albumID int64
}

func newPhotoFixture(t *testing.T) *photoFixture {
	t.Helper()
	users := newMemUserRepo()
	posts := newMemPostRepo()
	albumRepo := newMemAlbumRepo()
	photoRepo := newMemPhotoRepo()

	userSvc := NewUserService(users, posts)
	f := &photoFixture{
		albums: NewAlbumService(albumRepo, users),
		photos: NewPhotoService(photoRepo, albumRepo),
	}
	f.admin = registerUser(t, userSvc, "admin", "admin@example.com")
	f.alice = registerUser(t, userSvc, "alice", "alice@example.com")
	f.bob = registerUser(t, userSvc, "bob", "bob@example.com")

	album, err := f.albums.Add(context.Background(), f.alice, "holiday")
	require.NoError(t, err)
	f.albumID = album.ID
	return f
}

func TestAddPhotoOnlyAlbumOwner(t *testing.T) {
	f := newPhotoFixture(t)

	req := PhotoRequest{Title: "beach", URL: "https://img/1.jpg", AlbumID: f.albumID}

	_, err := f.photos.Add(context.Background(), f.bob, req)
	assert.ErrorIs(t, err, ErrNoPermission)

	// not even an admin may add into somebody else's album
	_, err = f.photos.Add(context.Background(), f.admin, req)
	assert.ErrorIs(t, err, ErrNoPermission)

	photo, err := f.photos.Add(context.Background(), f.alice, req)
	require.NoError(t, err)
	assert.Equal(t, f.albumID, photo.AlbumID)
}

func TestAddPhotoUnknownAlbum(t *testing.T) {
	f := newPhotoFixture(t)

	_, err := f.photos.Add(context.Background(), f.alice, PhotoRequest{
		Title:   "beach",
		URL:     "https://img/1.jpg",
		AlbumID: 999,
	})
	var nfErr *NotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, "Album", nfErr.Resource)
}

func TestUpdatePhotoAllowsAdmin(t *testing.T) {
	f := newPhotoFixture(t)

	photo, err := f.photos.Add(context.Background(), f.alice, PhotoRequest{
		Title:   "beach",
		URL:     "https://img/1.jpg",
		AlbumID: f.albumID,
	})
	require.NoError(t, err)

	req := PhotoRequest{Title: "renamed", URL: "https://img/1.jpg", AlbumID: f.albumID}

	_, err = f.photos.Update(context.Background(), f.bob, photo.ID, req)
	assert.ErrorIs(t, err, ErrNoPermission)

	updated, err := f.photos.Update(context.Background(), f.admin, photo.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
}

func TestDeletePhotoPermissions(t *testing.T) {
	f := newPhotoFixture(t)

	photo, err := f.photos.Add(context.Background(), f.alice, PhotoRequest{
		Title:   "beach",
		URL:     "https://img/1.jpg",
		AlbumID: f.albumID,
	})
	require.NoError(t, err)

	assert.ErrorIs(t, f.photos.Delete(context.Background(), f.bob, photo.ID), ErrNoPermission)
	require.NoError(t, f.photos.Delete(context.Background(), f.alice, photo.ID))
}

func TestListPhotosByAlbum(t *testing.T) {
	f := newPhotoFixture(t)

	for i := 0; i < 3; i++ {
		_, err := f.photos.Add(context.Background(), f.alice, PhotoRequest{
			Title:   "photo",
			URL:     "https://img/x.jpg",
			AlbumID: f.albumID,
		})
		require.NoError(t, err)
	}

	page, err := f.photos.ListByAlbum(context.Background(), f.albumID, 0, 10)
	require.NoError(t, err)
	assert.Len(t, page.Content, 3)

	var nfErr *NotFoundError
	_, err = f.photos.ListByAlbum(context.Background(), 999, 0, 10)
	assert.ErrorAs(t, err, &nfErr)
}

func TestAlbumOwnership(t *testing.T) {
	f := newPhotoFixture(t)

	_, err := f.albums.Update(context.Background(), f.bob, f.albumID, "stolen")
	assert.ErrorIs(t, err, ErrNoPermission)

	updated, err := f.albums.Update(context.Background(), f.admin, f.albumID, "moderated")
	require.NoError(t, err)
	assert.Equal(t, "moderated", updated.Title)

	assert.ErrorIs(t, f.albums.Delete(context.Background(), f.bob, f.albumID), ErrNoPermission)
	require.NoError(t, f.albums.Delete(context.Background(), f.alice, f.albumID))
}

func TestAddAlbumRequiresTitle(t *testing.T) {
	f := newPhotoFixture(t)

	_, err := f.albums.Add(context.Background(), f.alice, "   ")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "title", vErr.Field)
}

func TestUpdateAlbumRequiresTitle(t *testing.T) {
	f := newPhotoFixture(t)

	// whitespace passes transport-level required binding but must not blank the title
	_, err := f.albums.Update(context.Background(), f.alice, f.albumID, "   ")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "title", vErr.Field)

	kept, err := f.albums.Get(context.Background(), f.albumID)
	require.NoError(t, err)
	assert.Equal(t, "holiday", kept.Title)
}

func TestListAlbumsByUser(t *testing.T) {
	f := newPhotoFixture(t)

	_, err := f.albums.Add(context.Background(), f.bob, "bobs")
	require.NoError(t, err)

	page, err := f.albums.ListByUser(context.Background(), "alice", 0, 10)
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, f.alice.ID, page.Content[0].UserID)

	var nfErr *NotFoundError
	_, err = f.albums.ListByUser(context.Background(), "nobody", 0, 10)
	assert.ErrorAs(t, err, &nfErr)
}
