package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"blog-api/internal/auth"
	"blog-api/internal/domain"
	"blog-api/internal/repository"
)

// RegisterRequest carries validated signup input.
type RegisterRequest struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Password  string
}

// UserProfile is the public view of a user.
type UserProfile struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	JoinedAt  time.Time `json:"joinedAt"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Website   string    `json:"website,omitempty"`
	PostCount int64     `json:"postCount"`
}

// UserService describes identity lifecycle and resolution operations.
type UserService interface {
	Register(ctx context.Context, req RegisterRequest) (*domain.User, error)
	Authenticate(ctx context.Context, usernameOrEmail, password string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetProfile(ctx context.Context, username string) (*UserProfile, error)
	UsernameAvailable(ctx context.Context, username string) (bool, error)
	EmailAvailable(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, current *domain.User, username string, req RegisterRequest) (*domain.User, error)
	Delete(ctx context.Context, current *domain.User, username string) error
	GiveAdmin(ctx context.Context, current *domain.User, username string) error
	TakeAdmin(ctx context.Context, current *domain.User, username string) error
}

type userService struct {
	users repository.UserRepository
	posts repository.PostRepository
}

func NewUserService(users repository.UserRepository, posts repository.PostRepository) UserService {
	return &userService{
		users: users,
		posts: posts,
	}
}

func (s *userService) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)

	if req.Username == "" {
		return nil, invalid("username", "Username is required")
	}
	if req.Email == "" {
		return nil, invalid("email", "Email is required")
	}
	if len(req.Password) < 6 {
		return nil, invalid("password", "Password must be at least 6 characters")
	}

	if taken, err := s.users.ExistsByUsername(ctx, req.Username); err != nil {
		return nil, err
	} else if taken {
		return nil, invalid("username", "Username is already in use")
	}
	if taken, err := s.users.ExistsByEmail(ctx, req.Email); err != nil {
		return nil, err
	} else if taken {
		return nil, invalid("email", "Email is already in use")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Credential:   domain.CredentialLocal,
	}

	// the store assigns roles transactionally; a concurrent duplicate insert
	// surfaces here through the uniqueness constraint
	if _, err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, invalid("username", "Username or email is already in use")
		}
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) Authenticate(ctx context.Context, usernameOrEmail, password string) (*domain.User, error) {
	usernameOrEmail = strings.TrimSpace(usernameOrEmail)
	if usernameOrEmail == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByUsernameOrEmail(ctx, usernameOrEmail)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// same outcome as a wrong password so usernames cannot be enumerated
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return sanitizeUser(user), nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("User", "id", id)
		}
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("User", "username", username)
		}
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *userService) GetProfile(ctx context.Context, username string) (*UserProfile, error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	postCount, err := s.posts.CountByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &UserProfile{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		JoinedAt:  user.CreatedAt,
		Email:     user.Email,
		Phone:     user.Phone,
		Website:   user.Website,
		PostCount: postCount,
	}, nil
}

func (s *userService) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	taken, err := s.users.ExistsByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	return !taken, nil
}

func (s *userService) EmailAvailable(ctx context.Context, email string) (bool, error) {
	taken, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	return !taken, nil
}

func (s *userService) Update(ctx context.Context, current *domain.User, username string, req RegisterRequest) (*domain.User, error) {
	target, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, notFound("User", "username", username)
		}
		return nil, err
	}

	if !auth.CanModify(current, target.ID) {
		return nil, ErrNoPermission
	}

	if v := strings.TrimSpace(req.FirstName); v != "" {
		target.FirstName = v
	}
	if v := strings.TrimSpace(req.LastName); v != "" {
		target.LastName = v
	}
	if v := strings.TrimSpace(strings.ToLower(req.Email)); v != "" {
		target.Email = v
	}
	if req.Password != "" {
		if len(req.Password) < 6 {
			return nil, invalid("password", "Password must be at least 6 characters")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		target.PasswordHash = string(hash)
	}

	if err := s.users.Update(ctx, target); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, invalid("email", "Email is already in use")
		}
		return nil, err
	}
	return sanitizeUser(target), nil
}

func (s *userService) Delete(ctx context.Context, current *domain.User, username string) error {
	target, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("User", "username", username)
		}
		return err
	}
	if !auth.CanModify(current, target.ID) {
		return ErrNoPermission
	}
	return s.users.Delete(ctx, target.ID)
}

func (s *userService) GiveAdmin(ctx context.Context, current *domain.User, username string) error {
	return s.setAdmin(ctx, current, username, true)
}

func (s *userService) TakeAdmin(ctx context.Context, current *domain.User, username string) error {
	return s.setAdmin(ctx, current, username, false)
}

func (s *userService) setAdmin(ctx context.Context, current *domain.User, username string, grant bool) error {
	if current == nil || !current.IsAdmin() {
		return ErrNoPermission
	}
	target, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound("User", "username", username)
		}
		return err
	}

	roles := []domain.Role{domain.RoleUser}
	if grant {
		roles = append(roles, domain.RoleAdmin)
	}
	return s.users.SetRoles(ctx, target.ID, roles)
}

func sanitizeUser(user *domain.User) *domain.User {
	if user == nil {
		return nil
	}
	clone := *user
	clone.PasswordHash = ""
	return &clone
}
