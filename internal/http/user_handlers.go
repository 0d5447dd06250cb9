package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"blog-api/internal/domain"
	"blog-api/internal/service"
)

type userSummary struct {
	ID        int64         `json:"id"`
	Username  string        `json:"username"`
	FirstName string        `json:"firstName"`
	LastName  string        `json:"lastName"`
	Email     string        `json:"email"`
	Roles     []domain.Role `json:"roles"`
	CreatedAt string        `json:"createdAt"`
}

type updateUserRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

func userToSummary(user *domain.User) userSummary {
	return userSummary{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Roles:     user.Roles,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

func (h *Handler) currentUserInfo(c *gin.Context) {
	c.JSON(http.StatusOK, userToSummary(currentUser(c)))
}

func (h *Handler) checkUsernameAvailability(c *gin.Context) {
	available, err := h.users.UsernameAvailable(c.Request.Context(), c.Query("username"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": available})
}

func (h *Handler) checkEmailAvailability(c *gin.Context) {
	available, err := h.users.EmailAvailable(c.Request.Context(), c.Query("email"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"available": available})
}

func (h *Handler) userProfile(c *gin.Context) {
	profile, err := h.users.GetProfile(c.Request.Context(), c.Param("username"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *Handler) listUserPosts(c *gin.Context) {
	page, size, ok := pageParams(c)
	if !ok {
		return
	}
	posts, err := h.posts.ListByUser(c.Request.Context(), c.Param("username"), page, size)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pagedPosts(posts))
}

func (h *Handler) listUserAlbums(c *gin.Context) {
	page, size, ok := pageParams(c)
	if !ok {
		return
	}
	albums, err := h.albums.ListByUser(c.Request.Context(), c.Param("username"), page, size)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapPage(albums, albumToResponse))
}

func (h *Handler) updateUser(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": err.Error()})
		return
	}

	user, err := h.users.Update(c.Request.Context(), currentUser(c), c.Param("username"), service.RegisterRequest{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToSummary(user))
}

func (h *Handler) deleteUser(c *gin.Context) {
	if err := h.users.Delete(c.Request.Context(), currentUser(c), c.Param("username")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "You successfully deleted profile of: " + c.Param("username"),
	})
}

func (h *Handler) giveAdmin(c *gin.Context) {
	if err := h.users.GiveAdmin(c.Request.Context(), currentUser(c), c.Param("username")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "You gave ADMIN role to user: " + c.Param("username"),
	})
}

func (h *Handler) takeAdmin(c *gin.Context) {
	if err := h.users.TakeAdmin(c.Request.Context(), currentUser(c), c.Param("username")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "You took ADMIN role from user: " + c.Param("username"),
	})
}
