package http

import (
	"net/http"
	"path"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"blog-api/internal/domain"
	"blog-api/internal/service"
	"blog-api/internal/storage"
)

type photoRequest struct {
	Title        string `json:"title" binding:"required"`
	URL          string `json:"url" binding:"required"`
	ThumbnailURL string `json:"thumbnailUrl"`
	AlbumID      int64  `json:"albumId" binding:"required"`
}

type photoResponse struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnailUrl"`
	AlbumID      int64  `json:"albumId"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

func photoToResponse(photo domain.Photo) photoResponse {
	return photoResponse{
		ID:           photo.ID,
		Title:        photo.Title,
		URL:          photo.URL,
		ThumbnailURL: photo.ThumbnailURL,
		AlbumID:      photo.AlbumID,
		CreatedAt:    photo.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    photo.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *Handler) listPhotos(c *gin.Context) {
	page, size, ok := pageParams(c)
	if !ok {
		return
	}
	photos, err := h.photos.List(c.Request.Context(), page, size)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapPage(photos, photoToResponse))
}

func (h *Handler) getPhoto(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	photo, err := h.photos.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, photoToResponse(*photo))
}

func (h *Handler) addPhoto(c *gin.Context) {
	var req photoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": err.Error()})
		return
	}

	photo, err := h.photos.Add(c.Request.Context(), currentUser(c), service.PhotoRequest{
		Title:        req.Title,
		URL:          req.URL,
		ThumbnailURL: req.ThumbnailURL,
		AlbumID:      req.AlbumID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, photoToResponse(*photo))
}

// uploadPhoto stores the raw file in object storage and returns a presigned
// URL the caller can put into a subsequent POST /photos request.
func (h *Handler) uploadPhoto(c *gin.Context) {
	if h.media == nil || h.bucket == "" {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Internal Server Error",
			"message": "media storage is not configured",
		})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": "missing file"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		h.respondError(c, err)
		return
	}
	defer file.Close()

	key := path.Join(h.keyPrefix, uuid.NewString()+filepath.Ext(fileHeader.Filename))
	location, err := h.media.PutObject(c.Request.Context(), file, storage.PutOptions{
		Bucket:      h.bucket,
		Key:         key,
		ContentType: fileHeader.Header.Get("Content-Type"),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	url, err := h.media.GetObjectURL(c.Request.Context(), h.bucket, key, time.Hour)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"key":      key,
		"location": location,
		"url":      url,
	})
}

func (h *Handler) updatePhoto(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req photoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": err.Error()})
		return
	}

	photo, err := h.photos.Update(c.Request.Context(), currentUser(c), id, service.PhotoRequest{
		Title:        req.Title,
		URL:          req.URL,
		ThumbnailURL: req.ThumbnailURL,
		AlbumID:      req.AlbumID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, photoToResponse(*photo))
}

func (h *Handler) deletePhoto(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.photos.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "You successfully deleted photo"})
}
