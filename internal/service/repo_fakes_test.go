package service

import (
	"context"
	"sort"
	"time"

	"blog-api/internal/domain"
	"blog-api/internal/repository"
)

// In-memory repositories backing the service tests. They honor the same
// contracts as the sqlite implementations: sentinel errors, first-admin role
// assignment, unique constraints.

type memUserRepo struct {
	nextID int64
	users  map[int64]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[int64]*domain.User{}}
}

func (r *memUserRepo) Init(ctx context.Context) error { return nil }

func (r *memUserRepo) Create(ctx context.Context, user *domain.User) (int64, error) {
	for _, existing := range r.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return 0, repository.ErrDuplicate
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt

	roles := []domain.Role{domain.RoleUser}
	if len(r.users) == 0 {
		roles = append(roles, domain.RoleAdmin)
	}
	user.Roles = roles

	clone := *user
	r.users[user.ID] = &clone
	return user.ID, nil
}

func (r *memUserRepo) Update(ctx context.Context, user *domain.User) error {
	stored, ok := r.users[user.ID]
	if !ok {
		return repository.ErrNotFound
	}
	for id, existing := range r.users {
		if id != user.ID && existing.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	clone := *user
	clone.Roles = stored.Roles
	r.users[user.ID] = &clone
	return nil
}

func (r *memUserRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *memUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) GetByUsernameOrEmail(ctx context.Context, usernameOrEmail string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Username == usernameOrEmail || user.Email == usernameOrEmail {
			clone := *user
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memUserRepo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.GetByUsername(ctx, username)
	if err == nil {
		return true, nil
	}
	return false, nil
}

func (r *memUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, user := range r.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *memUserRepo) SetRoles(ctx context.Context, userID int64, roles []domain.Role) error {
	user, ok := r.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	user.Roles = append([]domain.Role(nil), roles...)
	return nil
}

type memPostRepo struct {
	nextID int64
	posts  map[int64]*domain.Post
	tags   map[int64][]int64
}

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{posts: map[int64]*domain.Post{}, tags: map[int64][]int64{}}
}

func (r *memPostRepo) Init(ctx context.Context) error { return nil }

func (r *memPostRepo) Create(ctx context.Context, post *domain.Post) (int64, error) {
	r.nextID++
	post.ID = r.nextID
	post.CreatedAt = time.Now().UTC()
	post.UpdatedAt = post.CreatedAt
	clone := *post
	r.posts[post.ID] = &clone
	return post.ID, nil
}

func (r *memPostRepo) Update(ctx context.Context, post *domain.Post) error {
	if _, ok := r.posts[post.ID]; !ok {
		return repository.ErrNotFound
	}
	clone := *post
	r.posts[post.ID] = &clone
	return nil
}

func (r *memPostRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.posts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.posts, id)
	delete(r.tags, id)
	return nil
}

func (r *memPostRepo) Get(ctx context.Context, id int64) (*domain.Post, error) {
	post, ok := r.posts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *post
	clone.Tags = r.tagsFor(id)
	return &clone, nil
}

func (r *memPostRepo) tagsFor(postID int64) []domain.Tag {
	var tags []domain.Tag
	for _, tagID := range r.tags[postID] {
		tags = append(tags, domain.Tag{ID: tagID})
	}
	return tags
}

func (r *memPostRepo) List(ctx context.Context, offset, limit int) ([]domain.Post, int64, error) {
	return r.filter(offset, limit, func(*domain.Post) bool { return true })
}

func (r *memPostRepo) ListByUser(ctx context.Context, userID int64, offset, limit int) ([]domain.Post, int64, error) {
	return r.filter(offset, limit, func(p *domain.Post) bool { return p.UserID == userID })
}

func (r *memPostRepo) ListByCategory(ctx context.Context, categoryID int64, offset, limit int) ([]domain.Post, int64, error) {
	return r.filter(offset, limit, func(p *domain.Post) bool { return p.CategoryID == categoryID })
}

func (r *memPostRepo) ListByTag(ctx context.Context, tagID int64, offset, limit int) ([]domain.Post, int64, error) {
	return r.filter(offset, limit, func(p *domain.Post) bool {
		for _, id := range r.tags[p.ID] {
			if id == tagID {
				return true
			}
		}
		return false
	})
}

func (r *memPostRepo) CountByUser(ctx context.Context, userID int64) (int64, error) {
	_, total, err := r.ListByUser(ctx, userID, 0, len(r.posts)+1)
	return total, err
}

func (r *memPostRepo) SetTags(ctx context.Context, postID int64, tagIDs []int64) error {
	r.tags[postID] = append([]int64(nil), tagIDs...)
	return nil
}

func (r *memPostRepo) filter(offset, limit int, keep func(*domain.Post) bool) ([]domain.Post, int64, error) {
	var all []domain.Post
	for _, post := range r.posts {
		if keep(post) {
			clone := *post
			clone.Tags = r.tagsFor(post.ID)
			all = append(all, clone)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

type memCategoryRepo struct {
	nextID     int64
	categories map[int64]*domain.Category
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{categories: map[int64]*domain.Category{}}
}

func (r *memCategoryRepo) Init(ctx context.Context) error { return nil }

func (r *memCategoryRepo) Create(ctx context.Context, category *domain.Category) (int64, error) {
	r.nextID++
	category.ID = r.nextID
	clone := *category
	r.categories[category.ID] = &clone
	return category.ID, nil
}

func (r *memCategoryRepo) Update(ctx context.Context, category *domain.Category) error {
	if _, ok := r.categories[category.ID]; !ok {
		return repository.ErrNotFound
	}
	clone := *category
	r.categories[category.ID] = &clone
	return nil
}

func (r *memCategoryRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.categories[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.categories, id)
	return nil
}

func (r *memCategoryRepo) Get(ctx context.Context, id int64) (*domain.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *category
	return &clone, nil
}

func (r *memCategoryRepo) List(ctx context.Context, offset, limit int) ([]domain.Category, int64, error) {
	var all []domain.Category
	for _, category := range r.categories {
		all = append(all, *category)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

type memTagRepo struct {
	nextID int64
	tags   map[int64]*domain.Tag
}

func newMemTagRepo() *memTagRepo {
	return &memTagRepo{tags: map[int64]*domain.Tag{}}
}

func (r *memTagRepo) Init(ctx context.Context) error { return nil }

func (r *memTagRepo) Create(ctx context.Context, tag *domain.Tag) (int64, error) {
	for _, existing := range r.tags {
		if existing.Name == tag.Name {
			return 0, repository.ErrDuplicate
		}
	}
	r.nextID++
	tag.ID = r.nextID
	clone := *tag
	r.tags[tag.ID] = &clone
	return tag.ID, nil
}

func (r *memTagRepo) Update(ctx context.Context, tag *domain.Tag) error {
	if _, ok := r.tags[tag.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, existing := range r.tags {
		if id != tag.ID && existing.Name == tag.Name {
			return repository.ErrDuplicate
		}
	}
	clone := *tag
	r.tags[tag.ID] = &clone
	return nil
}

func (r *memTagRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.tags[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.tags, id)
	return nil
}

func (r *memTagRepo) Get(ctx context.Context, id int64) (*domain.Tag, error) {
	tag, ok := r.tags[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *tag
	return &clone, nil
}

func (r *memTagRepo) GetByName(ctx context.Context, name string) (*domain.Tag, error) {
	for _, tag := range r.tags {
		if tag.Name == name {
			clone := *tag
			return &clone, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memTagRepo) List(ctx context.Context, offset, limit int) ([]domain.Tag, int64, error) {
	var all []domain.Tag
	for _, tag := range r.tags {
		all = append(all, *tag)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

type memCommentRepo struct {
	nextID   int64
	comments map[int64]*domain.Comment
}

func newMemCommentRepo() *memCommentRepo {
	return &memCommentRepo{comments: map[int64]*domain.Comment{}}
}

func (r *memCommentRepo) Init(ctx context.Context) error { return nil }

func (r *memCommentRepo) Create(ctx context.Context, comment *domain.Comment) (int64, error) {
	r.nextID++
	comment.ID = r.nextID
	clone := *comment
	r.comments[comment.ID] = &clone
	return comment.ID, nil
}

func (r *memCommentRepo) Update(ctx context.Context, comment *domain.Comment) error {
	if _, ok := r.comments[comment.ID]; !ok {
		return repository.ErrNotFound
	}
	clone := *comment
	r.comments[comment.ID] = &clone
	return nil
}

func (r *memCommentRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.comments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.comments, id)
	return nil
}

func (r *memCommentRepo) Get(ctx context.Context, id int64) (*domain.Comment, error) {
	comment, ok := r.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *comment
	return &clone, nil
}

func (r *memCommentRepo) ListByPost(ctx context.Context, postID int64, offset, limit int) ([]domain.Comment, int64, error) {
	var all []domain.Comment
	for _, comment := range r.comments {
		if comment.PostID == postID {
			all = append(all, *comment)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

type memAlbumRepo struct {
	nextID int64
	albums map[int64]*domain.Album
}

func newMemAlbumRepo() *memAlbumRepo {
	return &memAlbumRepo{albums: map[int64]*domain.Album{}}
}

func (r *memAlbumRepo) Init(ctx context.Context) error { return nil }

func (r *memAlbumRepo) Create(ctx context.Context, album *domain.Album) (int64, error) {
	r.nextID++
	album.ID = r.nextID
	clone := *album
	r.albums[album.ID] = &clone
	return album.ID, nil
}

func (r *memAlbumRepo) Update(ctx context.Context, album *domain.Album) error {
	if _, ok := r.albums[album.ID]; !ok {
		return repository.ErrNotFound
	}
	clone := *album
	r.albums[album.ID] = &clone
	return nil
}

func (r *memAlbumRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.albums[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.albums, id)
	return nil
}

func (r *memAlbumRepo) Get(ctx context.Context, id int64) (*domain.Album, error) {
	album, ok := r.albums[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *album
	return &clone, nil
}

func (r *memAlbumRepo) List(ctx context.Context, offset, limit int) ([]domain.Album, int64, error) {
	return r.filter(offset, limit, func(*domain.Album) bool { return true })
}

func (r *memAlbumRepo) ListByUser(ctx context.Context, userID int64, offset, limit int) ([]domain.Album, int64, error) {
	return r.filter(offset, limit, func(a *domain.Album) bool { return a.UserID == userID })
}

func (r *memAlbumRepo) filter(offset, limit int, keep func(*domain.Album) bool) ([]domain.Album, int64, error) {
	var all []domain.Album
	for _, album := range r.albums {
		if keep(album) {
			all = append(all, *album)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

type memPhotoRepo struct {
	nextID int64
	photos map[int64]*domain.Photo
}

func newMemPhotoRepo() *memPhotoRepo {
	return &memPhotoRepo{photos: map[int64]*domain.Photo{}}
}

func (r *memPhotoRepo) Init(ctx context.Context) error { return nil }

func (r *memPhotoRepo) Create(ctx context.Context, photo *domain.Photo) (int64, error) {
	r.nextID++
	photo.ID = r.nextID
	clone := *photo
	r.photos[photo.ID] = &clone
	return photo.ID, nil
}

func (r *memPhotoRepo) Update(ctx context.Context, photo *domain.Photo) error {
	if _, ok := r.photos[photo.ID]; !ok {
		return repository.ErrNotFound
	}
	clone := *photo
	r.photos[photo.ID] = &clone
	return nil
}

func (r *memPhotoRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.photos[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.photos, id)
	return nil
}

func (r *memPhotoRepo) Get(ctx context.Context, id int64) (*domain.Photo, error) {
	photo, ok := r.photos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *photo
	return &clone, nil
}

func (r *memPhotoRepo) List(ctx context.Context, offset, limit int) ([]domain.Photo, int64, error) {
	return r.filter(offset, limit, func(*domain.Photo) bool { return true })
}

func (r *memPhotoRepo) ListByAlbum(ctx context.Context, albumID int64, offset, limit int) ([]domain.Photo, int64, error) {
	return r.filter(offset, limit, func(p *domain.Photo) bool { return p.AlbumID == albumID })
}

func (r *memPhotoRepo) filter(offset, limit int, keep func(*domain.Photo) bool) ([]domain.Photo, int64, error) {
	var all []domain.Photo
	for _, photo := range r.photos {
		if keep(photo) {
			all = append(all, *photo)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

type memTodoRepo struct {
	nextID int64
	todos  map[int64]*domain.Todo
}

func newMemTodoRepo() *memTodoRepo {
	return &memTodoRepo{todos: map[int64]*domain.Todo{}}
}

func (r *memTodoRepo) Init(ctx context.Context) error { return nil }

func (r *memTodoRepo) Create(ctx context.Context, todo *domain.Todo) (int64, error) {
	for _, existing := range r.todos {
		if existing.UserID == todo.UserID && existing.Title == todo.Title {
			return 0, repository.ErrDuplicate
		}
	}
	r.nextID++
	todo.ID = r.nextID
	clone := *todo
	r.todos[todo.ID] = &clone
	return todo.ID, nil
}

func (r *memTodoRepo) Update(ctx context.Context, todo *domain.Todo) error {
	if _, ok := r.todos[todo.ID]; !ok {
		return repository.ErrNotFound
	}
	for id, existing := range r.todos {
		if id != todo.ID && existing.UserID == todo.UserID && existing.Title == todo.Title {
			return repository.ErrDuplicate
		}
	}
	clone := *todo
	r.todos[todo.ID] = &clone
	return nil
}

func (r *memTodoRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.todos[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.todos, id)
	return nil
}

func (r *memTodoRepo) Get(ctx context.Context, id int64) (*domain.Todo, error) {
	todo, ok := r.todos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *todo
	return &clone, nil
}

func (r *memTodoRepo) ListByUser(ctx context.Context, userID int64, offset, limit int) ([]domain.Todo, int64, error) {
	var all []domain.Todo
	for _, todo := range r.todos {
		if todo.UserID == userID {
			all = append(all, *todo)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

var (
	_ repository.UserRepository     = (*memUserRepo)(nil)
	_ repository.PostRepository     = (*memPostRepo)(nil)
	_ repository.CategoryRepository = (*memCategoryRepo)(nil)
	_ repository.TagRepository      = (*memTagRepo)(nil)
	_ repository.CommentRepository  = (*memCommentRepo)(nil)
	_ repository.AlbumRepository    = (*memAlbumRepo)(nil)
	_ repository.PhotoRepository    = (*memPhotoRepo)(nil)
	_ repository.TodoRepository     = (*memTodoRepo)(nil)
)
