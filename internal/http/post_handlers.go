package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"blog-api/internal/domain"
	"blog-api/internal/service"
)

type postRequest struct {
	Title      string   `json:"title" binding:"required"`
	Body       string   `json:"body" binding:"required"`
	CategoryID int64    `json:"categoryId" binding:"required"`
	Tags       []string `json:"tags"`
}

type PostResponse struct {
	ID         int64    `json:"id"`
	Title      string   `json:"title"`
	Body       string   `json:"body"`
	UserID     int64    `json:"userId"`
	CategoryID int64    `json:"categoryId"`
	Tags       []string `json:"tags"`
	CreatedAt  string   `json:"createdAt"`
	UpdatedAt  string   `json:"updatedAt"`
}

func postToResponse(post domain.Post) PostResponse {
	tags := make([]string, len(post.Tags))
	for i := range post.Tags {
		tags[i] = post.Tags[i].Name
	}
	return PostResponse{
		ID:         post.ID,
		Title:      post.Title,
		Body:       post.Body,
		UserID:     post.UserID,
		CategoryID: post.CategoryID,
		Tags:       tags,
		CreatedAt:  post.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  post.UpdatedAt.Format(time.RFC3339),
	}
}

func pagedPosts(page service.Page[domain.Post]) service.Page[PostResponse] {
	return mapPage(page, postToResponse)
}

func (h *Handler) listPosts(c *gin.Context) {
	page, size, ok := pageParams(c)
	if !ok {
		return
	}
	posts, err := h.posts.List(c.Request.Context(), page, size)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pagedPosts(posts))
}

func (h *Handler) listPostsByCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	page, size, ok := pageParams(c)
	if !ok {
		return
	}
	posts, err := h.posts.ListByCategory(c.Request.Context(), id, page, size)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pagedPosts(posts))
}

func (h *Handler) listPostsByTag(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	page, size, ok := pageParams(c)
	if !ok {
		return
	}
	posts, err := h.posts.ListByTag(c.Request.Context(), id, page, size)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pagedPosts(posts))
}

func (h *Handler) getPost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	post, err := h.posts.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, postToResponse(*post))
}

func (h *Handler) addPost(c *gin.Context) {
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": err.Error()})
		return
	}

	post, err := h.posts.Add(c.Request.Context(), currentUser(c), service.PostRequest{
		Title:      req.Title,
		Body:       req.Body,
		CategoryID: req.CategoryID,
		Tags:       req.Tags,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, postToResponse(*post))
}

func (h *Handler) updatePost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": err.Error()})
		return
	}

	post, err := h.posts.Update(c.Request.Context(), currentUser(c), id, service.PostRequest{
		Title:      req.Title,
		Body:       req.Body,
		CategoryID: req.CategoryID,
		Tags:       req.Tags,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, postToResponse(*post))
}

func (h *Handler) deletePost(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.posts.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "You successfully deleted post"})
}

type commentRequest struct {
	Body string `json:"body" binding:"required"`
}

type commentResponse struct {
	ID        int64  `json:"id"`
	PostID    int64  `json:"postId"`
	UserID    int64  `json:"userId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Body      string `json:"body"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func commentToResponse(comment domain.Comment) commentResponse {
	return commentResponse{
		ID:        comment.ID,
		PostID:    comment.PostID,
		UserID:    comment.UserID,
		Name:      comment.Name,
		Email:     comment.Email,
		Body:      comment.Body,
		CreatedAt: comment.CreatedAt.Format(time.RFC3339),
		UpdatedAt: comment.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *Handler) listComments(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	page, size, ok := pageParams(c)
	if !ok {
		return
	}
	comments, err := h.comments.ListByPost(c.Request.Context(), postID, page, size)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapPage(comments, commentToResponse))
}

func (h *Handler) getComment(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}
	comment, err := h.comments.Get(c.Request.Context(), postID, commentID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, commentToResponse(*comment))
}

func (h *Handler) addComment(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": err.Error()})
		return
	}

	comment, err := h.comments.Add(c.Request.Context(), currentUser(c), postID, req.Body)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, commentToResponse(*comment))
}

func (h *Handler) updateComment(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": err.Error()})
		return
	}

	comment, err := h.comments.Update(c.Request.Context(), currentUser(c), postID, commentID, req.Body)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, commentToResponse(*comment))
}

func (h *Handler) deleteComment(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	commentID, ok := pathID(c, "commentId")
	if !ok {
		return
	}
	if err := h.comments.Delete(c.Request.Context(), currentUser(c), postID, commentID); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "You successfully deleted comment"})
}
