package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bracken1022/prompt-museum/internal/models"
	"github.com/bracken1022/prompt-museum/internal/utils"
	"github.com/bracken1022/prompt-museum/pkg/logger"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// AuthResult is the body of every auth endpoint. Business failures are
// reported with Success=false rather than an HTTP error status.
type AuthResult struct {
	Success     bool                `json:"success"`
	Message     string              `json:"message"`
	User        *models.UserProfile `json:"user,omitempty"`
	AccessToken string              `json:"access_token,omitempty"`
}

// AuthService handles registration, login and session token verification.
type AuthService struct {
	db         *gorm.DB
	users      *UserService
	tokens     *utils.TokenManager
	denylist   *TokenDenylist
	bcryptCost int
}

func NewAuthService(db *gorm.DB, users *UserService, tokens *utils.TokenManager, denylist *TokenDenylist, bcryptCost int) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{
		db:         db,
		users:      users,
		tokens:     tokens,
		denylist:   denylist,
		bcryptCost: bcryptCost,
	}
}

// RegisterUser creates an account and signs the user in.
func (s *AuthService) RegisterUser(ctx context.Context, name, email, password string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, newError(KindValidation, "Name, email and password are required")
	}
	if len(password) > MaxPasswordBytes {
		return nil, newError(KindValidation, "Password must be at most %d bytes", MaxPasswordBytes)
	}

	taken, err := s.users.EmailTaken(ctx, email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hashedPassword),
	}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		// Lost a race with a concurrent registration for the same address.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	logger.Log.Info("user registered", zap.Uint("user_id", user.ID))
	return s.signIn(user, "Registration successful")
}

// LoginUser verifies credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.signIn(user, "Login successful")
}

// ForgotPassword only confirms that the account exists. No reset token is
// generated and no email is sent.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (*AuthResult, error) {
	if _, err := s.users.FindUserByEmail(ctx, email); err != nil {
		return nil, err
	}
	return &AuthResult{
		Success: true,
		Message: "Password reset email sent (simulated)",
	}, nil
}

// Authenticate resolves a bearer token to its user, rejecting revoked,
// malformed or expired tokens and tokens whose user no longer exists.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	isDenylisted, err := s.denylist.IsDenylisted(ctx, tokenString)
	if err != nil {
		return nil, fmt.Errorf("check token status: %w", err)
	}
	if isDenylisted {
		return nil, ErrTokenRevoked
	}

	claims, err := s.tokens.ValidateToken(tokenString)
	if err != nil {
		return nil, ErrInvalidToken
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.users.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUnknownSubject
		}
		return nil, err
	}
	return user, nil
}

// Logout revokes tokenString for the rest of its lifetime.
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.tokens.ValidateToken(tokenString)
	if err != nil {
		return ErrInvalidToken
	}
	if claims.ExpiresAt == nil {
		return ErrInvalidToken
	}
	if err := s.denylist.AddToDenylist(ctx, tokenString, time.Until(claims.ExpiresAt.Time)); err != nil {
		return fmt.Errorf("denylist token: %w", err)
	}
	return nil
}

func (s *AuthService) signIn(user *models.User, message string) (*AuthResult, error) {
	token, err := s.tokens.GenerateToken(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &AuthResult{
		Success:     true,
		Message:     message,
		User:        user.Profile(),
		AccessToken: token,
	}, nil
}
