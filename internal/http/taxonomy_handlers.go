package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"blog-api/internal/domain"
)

type nameRequest struct {
	Name string `json:"name" binding:"required"`
}

type categoryResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedBy int64  `json:"createdBy"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func categoryToResponse(category domain.Category) categoryResponse {
	return categoryResponse{
		ID:        category.ID,
		Name:      category.Name,
		CreatedBy: category.CreatedBy,
		CreatedAt: category.CreatedAt.Format(time.RFC3339),
		UpdatedAt: category.UpdatedAt.Format(time.RFC3339),
	}
}

type tagResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedBy int64  `json:"createdBy"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func tagToResponse(tag domain.Tag) tagResponse {
	return tagResponse{
		ID:        tag.ID,
		Name:      tag.Name,
		CreatedBy: tag.CreatedBy,
		CreatedAt: tag.CreatedAt.Format(time.RFC3339),
		UpdatedAt: tag.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *Handler) listCategories(c *gin.Context) {
	page, size, ok := pageParams(c)
	if !ok {
		return
	}
	categories, err := h.categories.List(c.Request.Context(), page, size)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapPage(categories, categoryToResponse))
}

func (h *Handler) getCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	category, err := h.categories.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categoryToResponse(*category))
}

func (h *Handler) addCategory(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": err.Error()})
		return
	}

	category, err := h.categories.Add(c.Request.Context(), currentUser(c), req.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, categoryToResponse(*category))
}

func (h *Handler) updateCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": err.Error()})
		return
	}

	category, err := h.categories.Update(c.Request.Context(), currentUser(c), id, req.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, categoryToResponse(*category))
}

func (h *Handler) deleteCategory(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.categories.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "You successfully deleted category"})
}

func (h *Handler) listTags(c *gin.Context) {
	page, size, ok := pageParams(c)
	if !ok {
		return
	}
	tags, err := h.tags.List(c.Request.Context(), page, size)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapPage(tags, tagToResponse))
}

func (h *Handler) getTag(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	tag, err := h.tags.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tagToResponse(*tag))
}

func (h *Handler) addTag(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": err.Error()})
		return
	}

	tag, err := h.tags.Add(c.Request.Context(), currentUser(c), req.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tagToResponse(*tag))
}

func (h *Handler) updateTag(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": err.Error()})
		return
	}

	tag, err := h.tags.Update(c.Request.Context(), currentUser(c), id, req.Name)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tagToResponse(*tag))
}

func (h *Handler) deleteTag(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.tags.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "You successfully deleted tag"})
}
