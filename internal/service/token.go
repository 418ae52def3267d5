package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenClaims is the verified content of an access or refresh token.
type TokenClaims struct {
	UserID uuid.UUID
	Role   string
}

// TokenIssuer signs and verifies the access/refresh token pair. The two
// token kinds use independent secrets so possession of one cannot forge
// the other.
type TokenIssuer struct {
	accessSecret  []byte
	refreshSecret []byte
	now           func() time.Time
}

func NewTokenIssuer(accessSecret, refreshSecret string) (*TokenIssuer, error) {
	if accessSecret == "" || refreshSecret == "" {
		return nil, fmt.Errorf("%w: ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET are required", ErrMisconfigured)
	}
	return &TokenIssuer{
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		now:           time.Now,
	}, nil
}

// IssueTokenPair mints an access token (15m) and a refresh token (7d) for
// the given identity. Pure computation, no side effects.
func (t *TokenIssuer) IssueTokenPair(userID uuid.UUID, role string) (string, string, error) {
	access, err := t.sign(userID, role, t.accessSecret, AccessTokenTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err := t.sign(userID, role, t.refreshSecret, RefreshTokenTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func (t *TokenIssuer) IssueAccessToken(userID uuid.UUID, role string) (string, error) {
	return t.sign(userID, role, t.accessSecret, AccessTokenTTL)
}

func (t *TokenIssuer) VerifyAccessToken(token string) (*TokenClaims, error) {
	return t.verify(token, t.accessSecret)
}

func (t *TokenIssuer) VerifyRefreshToken(token string) (*TokenClaims, error) {
	return t.verify(token, t.refreshSecret)
}

func (t *TokenIssuer) sign(userID uuid.UUID, role string, secret []byte, ttl time.Duration) (string, error) {
	now := t.now()
	claims := tokenClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func (t *TokenIssuer) verify(tokenStr string, secret []byte) (*TokenClaims, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &TokenClaims{UserID: userID, Role: claims.Role}, nil
}
