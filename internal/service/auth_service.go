package service

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	apperrors "wellspace/backend/internal/errors"
	"wellspace/backend/internal/model"
	"wellspace/backend/internal/repository"
)

// AuthService owns sign-up, login and the bearer-token session context.
// Unlike the product it grew out of, passwords are bcrypt-hashed before they
// reach the store.
type AuthService struct {
	userRepo    *repository.UserRepository
	sessionRepo *repository.SessionRepository
	jwtSecret   []byte
	tokenTTL    time.Duration
}

func NewAuthService(
	userRepo *repository.UserRepository,
	sessionRepo *repository.SessionRepository,
	jwtSecret string,
	tokenTTL time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		jwtSecret:   []byte(jwtSecret),
		tokenTTL:    tokenTTL,
	}
}

type AuthResult struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

func (s *AuthService) SignUp(ctx context.Context, name, email, password string) (*AuthResult, *apperrors.APIError) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return nil, apperrors.BadRequest("invalid_name", "name is required")
	}
	if email == "" {
		return nil, apperrors.BadRequest("invalid_email", "email is required")
	}
	if len(password) < 6 {
		return nil, apperrors.BadRequest("invalid_password", "password must be at least 6 characters")
	}

	// Email uniqueness is case-insensitive; the stored casing is whatever the
	// user typed at sign-up.
	_, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		return nil, apperrors.Conflict("email_exists", "an account with this email already exists", nil)
	}
	if err != repository.ErrNotFound {
		return nil, apperrors.Internal("failed to query users")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("failed to secure password")
	}

	cred := model.Credential{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.Append(ctx, cred); err != nil {
		return nil, apperrors.Internal("failed to create user")
	}

	user := cred.User()
	if err := s.sessionRepo.SetCurrent(ctx, user); err != nil {
		return nil, apperrors.Internal("failed to save session")
	}

	token, apiErr := s.issueToken(user)
	if apiErr != nil {
		return nil, apiErr
	}
	return &AuthResult{Token: token, User: user}, nil
}

// Login fails uniformly for an unknown email and a wrong password so callers
// cannot probe which accounts exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, *apperrors.APIError) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperrors.BadRequest("invalid_credentials", "email and password are required")
	}

	cred, err := s.userRepo.GetByEmail(ctx, email)
	if err == repository.ErrNotFound {
		return nil, apperrors.Unauthorized("invalid email or password")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to query users")
	}

	if bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(password)) != nil {
		return nil, apperrors.Unauthorized("invalid email or password")
	}

	user := cred.User()
	if err := s.sessionRepo.SetCurrent(ctx, user); err != nil {
		return nil, apperrors.Internal("failed to save session")
	}

	token, apiErr := s.issueToken(user)
	if apiErr != nil {
		return nil, apiErr
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) Logout(ctx context.Context) *apperrors.APIError {
	if err := s.sessionRepo.Clear(ctx); err != nil {
		return apperrors.Internal("failed to clear session")
	}
	return nil
}

// CurrentSession returns the persisted current user, if any. It is not
// revalidated against the credential list.
func (s *AuthService) CurrentSession(ctx context.Context) (*model.User, *apperrors.APIError) {
	user, err := s.sessionRepo.Current(ctx)
	if err == repository.ErrNotFound {
		return nil, apperrors.NotFound("no_session", "no active session")
	}
	if err != nil {
		return nil, apperrors.Internal("failed to load session")
	}
	return user, nil
}

// ParseToken returns the email the token was issued for.
func (s *AuthService) ParseToken(tokenString string) (string, *apperrors.APIError) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", apperrors.Unauthorized("invalid token")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", apperrors.Unauthorized("invalid token")
	}
	return claims.Subject, nil
}

func (s *AuthService) issueToken(user model.User) (string, *apperrors.APIError) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   user.Email,
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", apperrors.Internal("failed to sign token")
	}
	return signed, nil
}
