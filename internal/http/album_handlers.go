package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"blog-api/internal/domain"
)

type albumRequest struct {
	Title string `json:"title" binding:"required"`
}

type albumResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	UserID    int64  `json:"userId"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func albumToResponse(album domain.Album) albumResponse {
	return albumResponse{
		ID:        album.ID,
		Title:     album.Title,
		UserID:    album.UserID,
		CreatedAt: album.CreatedAt.Format(time.RFC3339),
		UpdatedAt: album.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *Handler) listAlbums(c *gin.Context) {
	page, size, ok := pageParams(c)
	if !ok {
		return
	}
	albums, err := h.albums.List(c.Request.Context(), page, size)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapPage(albums, albumToResponse))
}

func (h *Handler) getAlbum(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	album, err := h.albums.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, albumToResponse(*album))
}

func (h *Handler) addAlbum(c *gin.Context) {
	var req albumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": err.Error()})
		return
	}

	album, err := h.albums.Add(c.Request.Context(), currentUser(c), req.Title)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, albumToResponse(*album))
}

func (h *Handler) updateAlbum(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req albumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": err.Error()})
		return
	}

	album, err := h.albums.Update(c.Request.Context(), currentUser(c), id, req.Title)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, albumToResponse(*album))
}

func (h *Handler) deleteAlbum(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.albums.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "You successfully deleted album"})
}

func (h *Handler) listAlbumPhotos(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	page, size, ok := pageParams(c)
	if !ok {
		return
	}
	photos, err := h.photos.ListByAlbum(c.Request.Context(), id, page, size)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapPage(photos, photoToResponse))
}
