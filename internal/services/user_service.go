package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bracken1022/prompt-museum/internal/models"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const (
	UserCacheKeyPrefix = "user:"
	UserCacheDuration  = time.Hour
)

// UserService reads the credential store. Lookups by ID are cached because
// the access guard resolves a user on every protected request.
type UserService struct {
	db    *gorm.DB
	cache jsonCache
}

func NewUserService(db *gorm.DB, rdb *redis.Client) *UserService {
	return &UserService{db: db, cache: jsonCache{rdb: rdb}}
}

// FindUserByID returns the user or ErrUserNotFound.
func (s *UserService) FindUserByID(ctx context.Context, userID uint) (*models.User, error) {
	cacheKey := fmt.Sprintf("%s%d", UserCacheKeyPrefix, userID)

	var user models.User
	if s.cache.get(ctx, cacheKey, &user) {
		return &user, nil
	}

	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user %d: %w", userID, err)
	}

	s.cache.set(ctx, cacheKey, user, UserCacheDuration)
	return &user, nil
}

// FindUserByEmail bypasses the cache: the caller needs the password hash,
// which is never serialized.
func (s *UserService) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

// EmailTaken reports whether any user is registered with email.
func (s *UserService) EmailTaken(ctx context.Context, email string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", NormalizeEmail(email)).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("count users by email: %w", err)
	}
	return count > 0, nil
}

// NormalizeEmail trims and lower-cases an address so lookups and the unique
// index agree.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
