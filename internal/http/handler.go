package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"blog-api/internal/auth"
	"blog-api/internal/service"
	"blog-api/internal/storage"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users      service.UserService
	posts      service.PostService
	comments   service.CommentService
	albums     service.AlbumService
	photos     service.PhotoService
	categories service.CategoryService
	tags       service.TagService
	todos      service.TodoService
	tokens     *auth.TokenService
	media      storage.Service
	bucket     string
	keyPrefix  string
	logger     *logrus.Logger
}

// Deps bundles everything the handler needs.
type Deps struct {
	Users      service.UserService
	Posts      service.PostService
	Comments   service.CommentService
	Albums     service.AlbumService
	Photos     service.PhotoService
	Categories service.CategoryService
	Tags       service.TagService
	Todos      service.TodoService
	Tokens     *auth.TokenService
	Media      storage.Service
	Bucket     string
	KeyPrefix  string
	Logger     *logrus.Logger
}

func NewHandler(deps Deps) *Handler {
	logger := deps.Logger
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		users:      deps.Users,
		posts:      deps.Posts,
		comments:   deps.Comments,
		albums:     deps.Albums,
		photos:     deps.Photos,
		categories: deps.Categories,
		tags:       deps.Tags,
		todos:      deps.Todos,
		tokens:     deps.Tokens,
		media:      deps.Media,
		bucket:     deps.Bucket,
		keyPrefix:  deps.KeyPrefix,
		logger:     logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())

	api := router.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", h.signUp)
		authGroup.POST("/signin", h.signIn)
	}

	users := api.Group("/users")
	{
		users.GET("/me", h.requireAuth(), h.currentUserInfo)
		users.GET("/checkUsernameAvailability", h.checkUsernameAvailability)
		users.GET("/checkEmailAvailability", h.checkEmailAvailability)
		users.GET("/:username/profile", h.userProfile)
		users.GET("/:username/posts", h.listUserPosts)
		users.GET("/:username/albums", h.listUserAlbums)
		users.PUT("/:username", h.requireAuth(), h.updateUser)
		users.DELETE("/:username", h.requireAuth(), h.deleteUser)
		users.PUT("/:username/giveAdmin", h.requireAuth(), h.giveAdmin)
		users.PUT("/:username/takeAdmin", h.requireAuth(), h.takeAdmin)
	}

	posts := api.Group("/posts")
	{
		posts.GET("", h.listPosts)
		posts.GET("/:id", h.getPost)
		posts.GET("/category/:id", h.listPostsByCategory)
		posts.GET("/tag/:id", h.listPostsByTag)
		posts.POST("", h.requireAuth(), h.addPost)
		posts.PUT("/:id", h.requireAuth(), h.updatePost)
		posts.DELETE("/:id", h.requireAuth(), h.deletePost)

		posts.GET("/:id/comments", h.listComments)
		posts.GET("/:id/comments/:commentId", h.getComment)
		posts.POST("/:id/comments", h.requireAuth(), h.addComment)
		posts.PUT("/:id/comments/:commentId", h.requireAuth(), h.updateComment)
		posts.DELETE("/:id/comments/:commentId", h.requireAuth(), h.deleteComment)
	}

	albums := api.Group("/albums")
	{
		albums.GET("", h.listAlbums)
		albums.GET("/:id", h.getAlbum)
		albums.GET("/:id/photos", h.listAlbumPhotos)
		albums.POST("", h.requireAuth(), h.addAlbum)
		albums.PUT("/:id", h.requireAuth(), h.updateAlbum)
		albums.DELETE("/:id", h.requireAuth(), h.deleteAlbum)
	}

	photos := api.Group("/photos")
	{
		photos.GET("", h.listPhotos)
		photos.GET("/:id", h.getPhoto)
		photos.POST("", h.requireAuth(), h.addPhoto)
		photos.POST("/upload", h.requireAuth(), h.uploadPhoto)
		photos.PUT("/:id", h.requireAuth(), h.updatePhoto)
		photos.DELETE("/:id", h.requireAuth(), h.deletePhoto)
	}

	categories := api.Group("/categories")
	{
		categories.GET("", h.listCategories)
		categories.GET("/:id", h.getCategory)
		categories.POST("", h.requireAuth(), h.addCategory)
		categories.PUT("/:id", h.requireAuth(), h.updateCategory)
		categories.DELETE("/:id", h.requireAuth(), h.deleteCategory)
	}

	tags := api.Group("/tags")
	{
		tags.GET("", h.listTags)
		tags.GET("/:id", h.getTag)
		tags.POST("", h.requireAuth(), h.addTag)
		tags.PUT("/:id", h.requireAuth(), h.updateTag)
		tags.DELETE("/:id", h.requireAuth(), h.deleteTag)
	}

	todos := api.Group("/todos", h.requireAuth())
	{
		todos.GET("", h.listTodos)
		todos.GET("/:id", h.getTodo)
		todos.POST("", h.addTodo)
		todos.PUT("/:id", h.updateTodo)
		todos.PUT("/:id/complete", h.completeTodo)
		todos.PUT("/:id/unComplete", h.uncompleteTodo)
		todos.DELETE("/:id", h.deleteTodo)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": "invalid " + name})
		return 0, false
	}
	return id, true
}

// mapPage converts a paged service result into its response representation
// while keeping the envelope fields intact.
func mapPage[T, U any](page service.Page[T], convert func(T) U) service.Page[U] {
	content := make([]U, len(page.Content))
	for i := range page.Content {
		content[i] = convert(page.Content[i])
	}
	return service.Page[U]{
		Content:       content,
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
		Last:          page.Last,
	}
}

func pageParams(c *gin.Context) (int, int, bool) {
	page, err := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(service.DefaultPageNumber)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": "invalid page"})
		return 0, 0, false
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(service.DefaultPageSize)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bad Request", "message": "invalid size"})
		return 0, 0, false
	}
	return page, size, true
}
