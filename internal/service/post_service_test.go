package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-api/internal/domain"
)

type postFixture struct {
	svc        PostService
	users      *memUserRepo
	posts      *memPostRepo
	categories *memCategoryRepo
	tags       *memTagRepo
	admin      *domain.User
	alice      *domain.User
	bob        *domain.User
	category   *domain.Category
}

func newPostFixture(t *testing.T) *postFixture {
	t.Helper()
	f := &postFixture{
		users:      newMemUserRepo(),
		posts:      newMemPostRepo(),
		categories: newMemCategoryRepo(),
		tags:       newMemTagRepo(),
	}
	f.svc = NewPostService(f.posts, f.users, f.categories, f.tags)

	userSvc := NewUserService(f.users, f.posts)
	f.admin = registerUser(t, userSvc, "admin", "admin@example.com")
	f.alice = registerUser(t, userSvc, "alice", "alice@example.com")
	f.bob = registerUser(t, userSvc, "bob", "bob@example.com")

	f.category = &domain.Category{Name: "tech", CreatedBy: f.admin.ID}
	_, err := f.categories.Create(context.Background(), f.category)
	require.NoError(t, err)
	return f
}

func TestAddPostCreatesTagsByName(t *testing.T) {
	f := newPostFixture(t)

	post, err := f.svc.Add(context.Background(), f.alice, PostRequest{
		Title:      "Hello",
		Body:       "world",
		CategoryID: f.category.ID,
		Tags:       []string{"go", "sql"},
	})
	require.NoError(t, err)
	assert.Equal(t, f.alice.ID, post.UserID)
	require.Len(t, post.Tags, 2)

	// a second post reuses the existing tags rather than duplicating them
	_, err = f.svc.Add(context.Background(), f.bob, PostRequest{
		Title:      "Again",
		Body:       "more",
		CategoryID: f.category.ID,
		Tags:       []string{"go"},
	})
	require.NoError(t, err)

	_, total, err := f.tags.List(context.Background(), 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

func TestAddPostUnknownCategory(t *testing.T) {
	f := newPostFixture(t)

	_, err := f.svc.Add(context.Background(), f.alice, PostRequest{
		Title:      "Hello",
		Body:       "world",
		CategoryID: 999,
	})
	var nfErr *NotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, "Category", nfErr.Resource)
}

func TestUpdatePostOwnership(t *testing.T) {
	f := newPostFixture(t)

	post, err := f.svc.Add(context.Background(), f.alice, PostRequest{
		Title:      "Hello",
		Body:       "world",
		CategoryID: f.category.ID,
	})
	require.NoError(t, err)

	req := PostRequest{Title: "Edited", Body: "changed", CategoryID: f.category.ID}

	_, err = f.svc.Update(context.Background(), f.bob, post.ID, req)
	assert.ErrorIs(t, err, ErrNoPermission)

	updated, err := f.svc.Update(context.Background(), f.alice, post.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Edited", updated.Title)

	adminReq := PostRequest{Title: "Moderated", Body: "changed", CategoryID: f.category.ID}
	updated, err = f.svc.Update(context.Background(), f.admin, post.ID, adminReq)
	require.NoError(t, err)
	assert.Equal(t, "Moderated", updated.Title)
}

func TestUpdatePostRequiresTitle(t *testing.T) {
	f := newPostFixture(t)

	post, err := f.svc.Add(context.Background(), f.alice, PostRequest{
		Title:      "Hello",
		Body:       "world",
		CategoryID: f.category.ID,
	})
	require.NoError(t, err)

	_, err = f.svc.Update(context.Background(), f.alice, post.ID, PostRequest{
		Title:      "   ",
		Body:       "world",
		CategoryID: f.category.ID,
	})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "title", vErr.Field)
}

func TestDeletePostOwnership(t *testing.T) {
	f := newPostFixture(t)

	post, err := f.svc.Add(context.Background(), f.alice, PostRequest{
		Title:      "Hello",
		Body:       "world",
		CategoryID: f.category.ID,
	})
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.Delete(context.Background(), f.bob, post.ID), ErrNoPermission)
	require.NoError(t, f.svc.Delete(context.Background(), f.alice, post.ID))

	var nfErr *NotFoundError
	_, err = f.svc.Get(context.Background(), post.ID)
	assert.ErrorAs(t, err, &nfErr)
}

func TestListPostsValidatesPaging(t *testing.T) {
	f := newPostFixture(t)

	var vErr *ValidationError

	_, err := f.svc.List(context.Background(), -1, 10)
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "Page number cannot be less than zero.", vErr.Message)

	_, err = f.svc.List(context.Background(), 0, MaxPageSize+1)
	require.ErrorAs(t, err, &vErr)

	_, err = f.svc.List(context.Background(), 0, 0)
	assert.ErrorAs(t, err, &vErr)
}

func TestListPostsPaging(t *testing.T) {
	f := newPostFixture(t)

	for i := 0; i < 5; i++ {
		_, err := f.svc.Add(context.Background(), f.alice, PostRequest{
			Title:      "post",
			Body:       "body",
			CategoryID: f.category.ID,
		})
		require.NoError(t, err)
	}

	page, err := f.svc.List(context.Background(), 0, 2)
	require.NoError(t, err)
	assert.Len(t, page.Content, 2)
	assert.Equal(t, int64(5), page.TotalElements)
	assert.Equal(t, 3, page.TotalPages)
	assert.False(t, page.Last)

	last, err := f.svc.List(context.Background(), 2, 2)
	require.NoError(t, err)
	assert.Len(t, last.Content, 1)
	assert.True(t, last.Last)
}

func TestListByUserUnknownUser(t *testing.T) {
	f := newPostFixture(t)

	_, err := f.svc.ListByUser(context.Background(), "nobody", 0, 10)
	var nfErr *NotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, "User", nfErr.Resource)
}

func TestListByTag(t *testing.T) {
	f := newPostFixture(t)

	tagged, err := f.svc.Add(context.Background(), f.alice, PostRequest{
		Title:      "tagged",
		Body:       "body",
		CategoryID: f.category.ID,
		Tags:       []string{"go"},
	})
	require.NoError(t, err)
	_, err = f.svc.Add(context.Background(), f.alice, PostRequest{
		Title:      "untagged",
		Body:       "body",
		CategoryID: f.category.ID,
	})
	require.NoError(t, err)

	tag, err := f.tags.GetByName(context.Background(), "go")
	require.NoError(t, err)

	page, err := f.svc.ListByTag(context.Background(), tag.ID, 0, 10)
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, tagged.ID, page.Content[0].ID)
}
