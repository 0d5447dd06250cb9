package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"blog-api/internal/domain"
)

type addTodoRequest struct {
	Title string `json:"title" binding:"required"`
}

type updateTodoRequest struct {
	Title     string `json:"title" binding:"required"`
	Completed bool   `json:"completed"`
}

type todoResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	UserID    int64  `json:"userId"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func todoToResponse(todo domain.Todo) todoResponse {
	return todoResponse{
		ID:        todo.ID,
		Title:     todo.Title,
		Completed: todo.Completed,
		UserID:    todo.UserID,
		CreatedAt: todo.CreatedAt.Format(time.RFC3339),
		UpdatedAt: todo.UpdatedAt.Format(time.RFC3339),
	}
}

func (h *Handler) listTodos(c *gin.Context) {
	page, size, ok := pageParams(c)
	if !ok {
		return
	}
	todos, err := h.todos.List(c.Request.Context(), currentUser(c), page, size)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, mapPage(todos, todoToResponse))
}

func (h *Handler) getTodo(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	todo, err := h.todos.Get(c.Request.Context(), currentUser(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, todoToResponse(*todo))
}

func (h *Handler) addTodo(c *gin.Context) {
	var req addTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": err.Error()})
		return
	}

	todo, err := h.todos.Add(c.Request.Context(), currentUser(c), req.Title)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, todoToResponse(*todo))
}

func (h *Handler) updateTodo(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req updateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": err.Error()})
		return
	}

	todo, err := h.todos.Update(c.Request.Context(), currentUser(c), id, req.Title, req.Completed)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, todoToResponse(*todo))
}

func (h *Handler) completeTodo(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	todo, err := h.todos.Complete(c.Request.Context(), currentUser(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, todoToResponse(*todo))
}

func (h *Handler) uncompleteTodo(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	todo, err := h.todos.Uncomplete(c.Request.Context(), currentUser(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, todoToResponse(*todo))
}

func (h *Handler) deleteTodo(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.todos.Delete(c.Request.Context(), currentUser(c), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "You successfully deleted todo"})
}
