package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-api/internal/domain"
)

type commentFixture struct {
	svc    CommentService
	postID int64
	alice  *domain.User
	bob    *domain.User
	admin  *domain.User
}

func newCommentFixture(t *testing.T) *commentFixture {
	t.Helper()
	users := newMemUserRepo()
	posts := newMemPostRepo()
	comments := newMemCommentRepo()

	userSvc := NewUserService(users, posts)
	f := &commentFixture{svc: NewCommentService(comments, posts)}
	f.admin = registerUser(t, userSvc, "admin", "admin@example.com")
	f.alice = registerUser(t, userSvc, "alice", "alice@example.com")
	f.bob = registerUser(t, userSvc, "bob", "bob@example.com")

	post := &domain.Post{Title: "post", Body: "body", UserID: f.alice.ID, CategoryID: 1}
	_, err := posts.Create(context.Background(), post)
	require.NoError(t, err)
	f.postID = post.ID
	return f
}

func TestAddCommentUsesCallerIdentity(t *testing.T) {
	f := newCommentFixture(t)

	comment, err := f.svc.Add(context.Background(), f.bob, f.postID, "nice post")
	require.NoError(t, err)
	assert.Equal(t, f.bob.ID, comment.UserID)
	assert.Equal(t, "bob", comment.Name)
	assert.Equal(t, "bob@example.com", comment.Email)
}

func TestAddCommentUnknownPost(t *testing.T) {
	f := newCommentFixture(t)

	_, err := f.svc.Add(context.Background(), f.bob, 999, "hello")
	var nfErr *NotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, "Post", nfErr.Resource)
}

func TestGetCommentWrongPost(t *testing.T) {
	f := newCommentFixture(t)

	comment, err := f.svc.Add(context.Background(), f.bob, f.postID, "hello")
	require.NoError(t, err)

	_, err = f.svc.Get(context.Background(), f.postID+1, comment.ID)
	var nfErr *NotFoundError
	assert.ErrorAs(t, err, &nfErr)
}

func TestCommentPostMismatchIsRejected(t *testing.T) {
	users := newMemUserRepo()
	posts := newMemPostRepo()
	comments := newMemCommentRepo()
	svc := NewCommentService(comments, posts)

	userSvc := NewUserService(users, posts)
	alice := registerUser(t, userSvc, "alice", "alice@example.com")

	first := &domain.Post{Title: "one", UserID: alice.ID, CategoryID: 1}
	second := &domain.Post{Title: "two", UserID: alice.ID, CategoryID: 1}
	_, err := posts.Create(context.Background(), first)
	require.NoError(t, err)
	_, err = posts.Create(context.Background(), second)
	require.NoError(t, err)

	comment, err := svc.Add(context.Background(), alice, first.ID, "hello")
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), second.ID, comment.ID)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "postId", vErr.Field)
}

func TestUpdateCommentPermissions(t *testing.T) {
	f := newCommentFixture(t)

	comment, err := f.svc.Add(context.Background(), f.bob, f.postID, "original")
	require.NoError(t, err)

	_, err = f.svc.Update(context.Background(), f.alice, f.postID, comment.ID, "edited")
	assert.ErrorIs(t, err, ErrNoPermission)

	updated, err := f.svc.Update(context.Background(), f.bob, f.postID, comment.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Body)

	moderated, err := f.svc.Update(context.Background(), f.admin, f.postID, comment.ID, "moderated")
	require.NoError(t, err)
	assert.Equal(t, "moderated", moderated.Body)
}

func TestUpdateCommentRequiresBody(t *testing.T) {
	f := newCommentFixture(t)

	comment, err := f.svc.Add(context.Background(), f.bob, f.postID, "original")
	require.NoError(t, err)

	_, err = f.svc.Update(context.Background(), f.bob, f.postID, comment.ID, "   ")
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "body", vErr.Field)
}

func TestDeleteCommentPermissions(t *testing.T) {
	f := newCommentFixture(t)

	comment, err := f.svc.Add(context.Background(), f.bob, f.postID, "hello")
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.Delete(context.Background(), f.alice, f.postID, comment.ID), ErrNoPermission)
	require.NoError(t, f.svc.Delete(context.Background(), f.admin, f.postID, comment.ID))
}

func TestListCommentsByPost(t *testing.T) {
	f := newCommentFixture(t)

	for i := 0; i < 3; i++ {
		_, err := f.svc.Add(context.Background(), f.bob, f.postID, "hello")
		require.NoError(t, err)
	}

	page, err := f.svc.ListByPost(context.Background(), f.postID, 0, 2)
	require.NoError(t, err)
	assert.Len(t, page.Content, 2)
	assert.Equal(t, int64(3), page.TotalElements)
	assert.False(t, page.Last)
}
