package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/shopstack/backend/internal/db"
	"github.com/shopstack/backend/internal/model"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidEmail       = errors.New("invalid email format")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoToken            = errors.New("no refresh token provided")
	ErrInvalidToken       = errors.New("invalid token")
	ErrMisconfigured      = errors.New("auth config invalid")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UserStore is the persistent user storage collaborator. Email uniqueness
// is enforced by the store itself (unique index), not by a read-then-write
// check here.
type UserStore interface {
	CreateUser(ctx context.Context, name, email, passwordHash, role string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// SessionStore holds the currently valid refresh token per identity.
// Writes replace any previous entry, so at most one session is live per
// user at a time.
type SessionStore interface {
	Get(ctx context.Context, userID uuid.UUID) (string, error)
	SetWithExpiry(ctx context.Context, userID uuid.UUID, token string) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// TokenPair is what Establish hands back for transport binding.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthService struct {
	users    UserStore
	sessions SessionStore
	tokens   *TokenIssuer
}

func NewAuthService(users UserStore, sessions SessionStore, tokens *TokenIssuer) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		tokens:   tokens,
	}
}

// Signup validates the email format, creates the user record and
// establishes a session. A duplicate email surfaces as ErrEmailTaken via
// the store's unique constraint.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*model.User, *TokenPair, error) {
	if !emailPattern.MatchString(email) {
		return nil, nil, ErrInvalidEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	user, err := s.users.CreateUser(ctx, name, email, string(hash), model.RoleCustomer)
	if err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, nil, ErrEmailTaken
		}
		return nil, nil, err
	}

	pair, err := s.establish(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Login verifies the credentials and establishes a session. Lookup misses
// and password mismatches are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.User, *TokenPair, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.establish(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh verifies the presented refresh token against its signature and
// the session store, then mints a new access token. The refresh token and
// its store entry are deliberately left untouched.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if strings.TrimSpace(refreshToken) == "" {
		return "", ErrNoToken
	}

	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return "", ErrInvalidToken
	}

	stored, err := s.sessions.Get(ctx, claims.UserID)
	if err != nil {
		return "", err
	}
	if stored == "" || stored != refreshToken {
		// Stale session: replaced by a newer login or already revoked.
		return "", ErrInvalidToken
	}

	return s.tokens.IssueAccessToken(claims.UserID, claims.Role)
}

// Logout revokes the session for the token's identity. A missing or
// unverifiable token is not an error; the caller clears transport state
// regardless.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return nil
	}

	claims, err := s.tokens.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil
	}

	return s.sessions.Delete(ctx, claims.UserID)
}

func (s *AuthService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.users.GetUserByID(ctx, id)
}

func (s *AuthService) VerifyAccessToken(token string) (*TokenClaims, error) {
	return s.tokens.VerifyAccessToken(token)
}

func (s *AuthService) establish(ctx context.Context, user *model.User) (*TokenPair, error) {
	access, refresh, err := s.tokens.IssueTokenPair(user.ID, user.Role)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.SetWithExpiry(ctx, user.ID, refresh); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
