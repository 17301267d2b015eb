package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lostfound/internal/models"
	"lostfound/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	resetTokenTTL = time.Hour
	resetPurpose  = "password-reset"
)

// AccountService handles registration, login verification and password resets.
type AccountService struct {
	users      repository.Users
	signingKey []byte
}

func NewAccountService(users repository.Users, signingKey string) *AccountService {
	return &AccountService{users: users, signingKey: []byte(signingKey)}
}

var _ Account = (*AccountService)(nil)

// Register hashes the password and creates a new user. The email must not
// already be registered.
func (s *AccountService) Register(ctx context.Context, name, email, password string) (int, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return 0, ErrInvalidInput
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, ErrDuplicateEmail
	}

	hash, err := hashPassword(password)
	if err != nil {
		return 0, fmt.Errorf("invalid password: %w", err)
	}
	return s.users.Create(ctx, name, email, hash)
}

// Authenticate verifies the credentials and returns the user id. Unknown
// email and wrong password report the same error.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (int, error) {
	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return 0, err
	}
	if u == nil {
		return 0, ErrInvalidCredentials
	}
	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return 0, ErrInvalidCredentials
	}
	return u.ID, nil
}

// UserByID re-resolves a session identity. A dangling id (deleted user)
// resolves to (nil, nil), i.e. anonymous.
func (s *AccountService) UserByID(ctx context.Context, id int) (*models.User, error) {
	return s.users.GetByID(ctx, id)
}

// resetClaims bind a token to one user and to the reset purpose, so a token
// minted for one flow cannot be replayed in another.
type resetClaims struct {
	jwt.RegisteredClaims
	UserID  int    `json:"user_id"`
	Purpose string `json:"purpose"`
}

// IssueResetToken produces a signed token valid for one hour. The token is
// delivered out-of-band; it is never rendered in a page.
func (s *AccountService) IssueResetToken(ctx context.Context, email string) (string, error) {
	u, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrEmailNotFound
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &resetClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(resetTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID:  u.ID,
		Purpose: resetPurpose,
	})
	return token.SignedString(s.signingKey)
}

// ConsumeResetToken verifies the token and replaces the stored password hash.
// Tokens are time-bound, not revocation-tracked: an unexpired token can be
// consumed more than once.
func (s *AccountService) ConsumeResetToken(ctx context.Context, token, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return ErrPasswordMismatch
	}

	userID, err := s.parseResetToken(token)
	if err != nil {
		return err
	}

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrTokenInvalid
	}

	hash, err := hashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("invalid password: %w", err)
	}
	return s.users.UpdatePasswordHash(ctx, u.ID, hash)
}

func (s *AccountService) parseResetToken(raw string) (int, error) {
	token, err := jwt.ParseWithClaims(raw, &resetClaims{}, func(t *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, ErrTokenExpired
		}
		return 0, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*resetClaims)
	if !ok || !token.Valid || claims.Purpose != resetPurpose {
		return 0, ErrTokenInvalid
	}
	return claims.UserID, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
