package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"contact_manager/internal/apperror"
	"contact_manager/internal/domain"
	"contact_manager/internal/utils"
	"contact_manager/internal/validation"
)

// RegisterUserRequest is the payload of POST /api/users
type RegisterUserRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=72"`
	Name     string `json:"name" validate:"required,max=100"`
}

// LoginUserRequest is the payload of POST /api/users/login
type LoginUserRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=72"`
}

// UpdateUserRequest is the payload of PATCH /api/users/current. Empty fields are left unchanged.
type UpdateUserRequest struct {
	Name     string `json:"name" validate:"omitempty,max=100"`
	Password string `json:"password" validate:"omitempty,max=72"`
}

// UserResponse is the public view of a user; the password never leaves the service
type UserResponse struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

// TokenResponse carries a freshly issued session token
type TokenResponse struct {
	Token string `json:"token"`
}

// cachedUser is what the token cache stores for an authenticated session
type cachedUser struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

// UserService handles registration, sessions and self-service account operations
type UserService struct {
	db       *gorm.DB
	rdb      *redis.Client
	secret   string
	cacheTTL time.Duration
}

// NewUserService creates a UserService. rdb may be nil, which disables the token cache.
func NewUserService(db *gorm.DB, rdb *redis.Client, secret string, cacheTTL time.Duration) *UserService {
	return &UserService{db: db, rdb: rdb, secret: secret, cacheTTL: cacheTTL}
}

func toUserResponse(u *domain.User) *UserResponse {
	return &UserResponse{Username: u.Username, Name: u.Name}
}

// Register creates a new user with a bcrypt-hashed password
func (s *UserService) Register(ctx context.Context, req RegisterUserRequest) (*UserResponse, error) {
	if err := validation.Struct(&req); err != nil {
		return nil, err
	}
	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := domain.User{Username: req.Username, Password: hash, Name: req.Name}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var total int64
		if err := tx.Model(&domain.User{}).Where("username = ?", req.Username).Count(&total).Error; err != nil {
			return err
		}
		if total > 0 {
			return errUsernameTaken()
		}
		return insertUser(tx, &user)
	})
	if err != nil {
		return nil, err
	}
	logrus.WithField("username", user.Username).Info("User registered")
	return toUserResponse(&user), nil
}

// Login checks the credentials and stores a new session token on the user,
// replacing any previous one.
func (s *UserService) Login(ctx context.Context, req LoginUserRequest) (*TokenResponse, error) {
	if err := validation.Struct(&req); err != nil {
		return nil, err
	}
	wrongCredentials := &apperror.UnauthorizedError{Message: "Username or password wrong"}

	var user domain.User
	if err := s.db.WithContext(ctx).Where("username = ?", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, wrongCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, wrongCredentials
	}

	token, err := utils.GenerateToken(s.secret)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	if err := s.db.WithContext(ctx).Model(&domain.User{}).
		Where("username = ?", user.Username).
		Update("token", token).Error; err != nil {
		return nil, err
	}
	s.forgetToken(ctx, user.Token)
	logrus.WithField("username", user.Username).Info("User logged in")
	return &TokenResponse{Token: token}, nil
}

// Authenticate resolves a session token to its user. Tokens that were not
// minted with the configured secret are rejected without touching the store.
func (s *UserService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" || utils.VerifyToken(token, s.secret) != nil {
		return nil, apperror.Unauthorized()
	}

	key := utils.TokenCacheKey(token)
	var cached cachedUser
	found, err := utils.GetCache(ctx, s.rdb, key, &cached)
	if err != nil {
		logrus.WithError(err).Warn("Token cache lookup failed")
	}
	if err == nil && found {
		return &domain.User{Username: cached.Username, Name: cached.Name, Token: &token}, nil
	}

	var users []domain.User
	if err := s.db.WithContext(ctx).Where("token = ?", token).Limit(2).Find(&users).Error; err != nil {
		return nil, err
	}
	if len(users) != 1 {
		return nil, apperror.Unauthorized()
	}
	user := users[0]
	if err := utils.SetCache(ctx, s.rdb, key, cachedUser{Username: user.Username, Name: user.Name}, s.cacheTTL); err != nil {
		logrus.WithError(err).Warn("Token cache store failed")
	}
	return &user, nil
}

// Get returns the current user's profile
func (s *UserService) Get(ctx context.Context, user *domain.User) (*UserResponse, error) {
	var found domain.User
	if err := s.db.WithContext(ctx).Where("username = ?", user.Username).First(&found).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, err
	}
	return toUserResponse(&found), nil
}

// Update changes the current user's name and/or password
func (s *UserService) Update(ctx context.Context, user *domain.User, req UpdateUserRequest) (*UserResponse, error) {
	if err := validation.Struct(&req); err != nil {
		return nil, err
	}
	updates := map[string]any{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Password != "" {
		hash, err := hashPassword(req.Password)
		if err != nil {
			return nil, err
		}
		updates["password"] = hash
	}

	var updated domain.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("username = ?", user.Username).First(&updated).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("User not found")
			}
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&domain.User{}).Where("username = ?", user.Username).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Where("username = ?", user.Username).First(&updated).Error
	})
	if err != nil {
		return nil, err
	}
	s.forgetToken(ctx, user.Token)
	return toUserResponse(&updated), nil
}

// Logout clears the current user's session token
func (s *UserService) Logout(ctx context.Context, user *domain.User) error {
	if err := s.db.WithContext(ctx).Model(&domain.User{}).
		Where("username = ?", user.Username).
		Update("token", nil).Error; err != nil {
		return err
	}
	s.forgetToken(ctx, user.Token)
	logrus.WithField("username", user.Username).Info("User logged out")
	return nil
}

// Delete removes the current user together with all of their contacts and addresses
func (s *UserService) Delete(ctx context.Context, user *domain.User) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		owned := tx.Model(&domain.Contact{}).Select("id").Where("username = ?", user.Username)
		if err := tx.Where("contact_id IN (?)", owned).Delete(&domain.Address{}).Error; err != nil {
			return err
		}
		if err := tx.Where("username = ?", user.Username).Delete(&domain.Contact{}).Error; err != nil {
			return err
		}
		result := tx.Where("username = ?", user.Username).Delete(&domain.User{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return apperror.NotFound("User not found")
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.forgetToken(ctx, user.Token)
	logrus.WithField("username", user.Username).Info("User deleted")
	return nil
}

func errUsernameTaken() error {
	return apperror.Validation("Username already exists")
}

// insertUser creates user. A concurrent registration that slipped past the
// existence check surfaces as a primary key violation.
func insertUser(tx *gorm.DB, user *domain.User) error {
	err := tx.Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return errUsernameTaken()
	}
	return err
}

// hashPassword bcrypt-hashes a password. bcrypt only accepts 72 bytes, which
// multi-byte input can exceed even within the character limit.
func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", apperror.ValidationFields([]apperror.FieldError{
			{Field: "password", Message: "password must be at most 72 bytes long"},
		})
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// forgetToken drops a token from the cache so the store decides again on next use
func (s *UserService) forgetToken(ctx context.Context, token *string) {
	if token == nil || *token == "" {
		return
	}
	if err := utils.DeleteCache(ctx, s.rdb, utils.TokenCacheKey(*token)); err != nil {
		logrus.WithError(err).Warn("Token cache invalidation failed")
	}
}
