package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopstack/backend/internal/db"
	"github.com/shopstack/backend/internal/model"
	"github.com/shopstack/backend/internal/service"
)

type fakeUserStore struct {
	byEmail map[string]*model.User
}

func (f *fakeUserStore) CreateUser(ctx context.Context, name, email, passwordHash, role string) (*model.User, error) {
	if _, ok := f.byEmail[email]; ok {
		return nil, db.ErrDuplicate
	}
	user := &model.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
	}
	f.byEmail[email] = user
	return user, nil
}

func (f *fakeUserStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	if user, ok := f.byEmail[email]; ok {
		return user, nil
	}
	return nil, db.ErrNotFound
}

func (f *fakeUserStore) GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	for _, user := range f.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, db.ErrNotFound
}

type fakeSessionStore struct {
	tokens map[uuid.UUID]string
}

func (f *fakeSessionStore) Get(ctx context.Context, userID uuid.UUID) (string, error) {
	return f.tokens[userID], nil
}

func (f *fakeSessionStore) SetWithExpiry(ctx context.Context, userID uuid.UUID, token string) error {
	f.tokens[userID] = token
	return nil
}

func (f *fakeSessionStore) Delete(ctx context.Context, userID uuid.UUID) error {
	delete(f.tokens, userID)
	return nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	issuer, err := service.NewTokenIssuer("access-secret", "refresh-secret")
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}

	svc := service.NewAuthService(
		&fakeUserStore{byEmail: map[string]*model.User{}},
		&fakeSessionStore{tokens: map[uuid.UUID]string{}},
		issuer,
	)
	h := NewAuthHandler(svc, false)

	router := gin.New()
	auth := router.Group("/api/auth")
	auth.POST("/signup", h.Signup)
	auth.POST("/login", h.Login)
	auth.POST("/logout", h.Logout)
	auth.POST("/refresh", h.Refresh)
	auth.GET("/profile", AuthMiddleware(svc), h.Profile)
	return router
}

func doJSON(router *gin.Engine, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestSignupSetsAuthCookies(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/auth/signup", `{"name":"Ann","email":"a@b.com","password":"secret123"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	access := findCookie(w, "accessToken")
	refresh := findCookie(w, "refreshToken")
	if access == nil || refresh == nil {
		t.Fatalf("expected both auth cookies to be set")
	}
	for _, cookie := range []*http.Cookie{access, refresh} {
		if !cookie.HttpOnly {
			t.Fatalf("cookie %s not HttpOnly", cookie.Name)
		}
		if cookie.SameSite != http.SameSiteStrictMode {
			t.Fatalf("cookie %s not SameSite=Strict", cookie.Name)
		}
		if cookie.Secure {
			t.Fatalf("cookie %s Secure outside production", cookie.Name)
		}
	}
	if access.MaxAge != int(service.AccessTokenTTL.Seconds()) {
		t.Fatalf("access cookie MaxAge = %d", access.MaxAge)
	}
	if refresh.MaxAge != int(service.RefreshTokenTTL.Seconds()) {
		t.Fatalf("refresh cookie MaxAge = %d", refresh.MaxAge)
	}
}

func TestSignupMalformedEmail(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/auth/signup", `{"name":"Ann","email":"bad-email","password":"secret123"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid email format") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestSignupDuplicate(t *testing.T) {
	router := newTestRouter(t)

	body := `{"name":"Ann","email":"a@b.com","password":"secret123"}`
	if w := doJSON(router, http.MethodPost, "/api/auth/signup", body); w.Code != http.StatusCreated {
		t.Fatalf("first signup: %d", w.Code)
	}
	w := doJSON(router, http.MethodPost, "/api/auth/signup", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "User already exists") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	router := newTestRouter(t)

	doJSON(router, http.MethodPost, "/api/auth/signup", `{"name":"Ann","email":"a@b.com","password":"secret123"}`)

	w := doJSON(router, http.MethodPost, "/api/auth/login", `{"email":"a@b.com","password":"wrong"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid email or password") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestRefreshWithoutCookie(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(router, http.MethodPost, "/api/auth/refresh", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "No refresh token provided") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestRefreshMismatchedToken(t *testing.T) {
	router := newTestRouter(t)

	// Well-signed token, but no matching session in the store.
	issuer, err := service.NewTokenIssuer("access-secret", "refresh-secret")
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	_, refresh, err := issuer.IssueTokenPair(uuid.New(), "customer")
	if err != nil {
		t.Fatalf("IssueTokenPair: %v", err)
	}

	w := doJSON(router, http.MethodPost, "/api/auth/refresh", "", &http.Cookie{Name: "refreshToken", Value: refresh})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid refresh token") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestRefreshReissuesAccessCookieOnly(t *testing.T) {
	router := newTestRouter(t)

	signup := doJSON(router, http.MethodPost, "/api/auth/signup", `{"name":"Ann","email":"a@b.com","password":"secret123"}`)
	refreshCookie := findCookie(signup, "refreshToken")
	if refreshCookie == nil {
		t.Fatalf("no refresh cookie after signup")
	}

	w := doJSON(router, http.MethodPost, "/api/auth/refresh", "", &http.Cookie{Name: "refreshToken", Value: refreshCookie.Value})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if findCookie(w, "accessToken") == nil {
		t.Fatalf("no access cookie after refresh")
	}
	if findCookie(w, "refreshToken") != nil {
		t.Fatalf("refresh cookie rewritten during refresh")
	}
}

func TestLogoutAlwaysClearsCookies(t *testing.T) {
	router := newTestRouter(t)

	// No cookie at all still succeeds and clears transport state.
	w := doJSON(router, http.MethodPost, "/api/auth/logout", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	for _, name := range []string{"accessToken", "refreshToken"} {
		cookie := findCookie(w, name)
		if cookie == nil {
			t.Fatalf("cookie %s not cleared", name)
		}
		if cookie.Value != "" || cookie.MaxAge >= 0 {
			t.Fatalf("cookie %s not expired: value=%q maxAge=%d", name, cookie.Value, cookie.MaxAge)
		}
	}

	// A garbage token is swallowed, never a 4xx/5xx.
	w = doJSON(router, http.MethodPost, "/api/auth/logout", "", &http.Cookie{Name: "refreshToken", Value: "garbage"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for garbage token, got %d", w.Code)
	}
}

func TestProfileRequiresAccessToken(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(router, http.MethodGet, "/api/auth/profile", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	signup := doJSON(router, http.MethodPost, "/api/auth/signup", `{"name":"Ann","email":"a@b.com","password":"secret123"}`)
	accessCookie := findCookie(signup, "accessToken")
	if accessCookie == nil {
		t.Fatalf("no access cookie after signup")
	}

	w = doJSON(router, http.MethodGet, "/api/auth/profile", "", &http.Cookie{Name: "accessToken", Value: accessCookie.Value})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "a@b.com") {
		t.Fatalf("profile missing user email: %s", w.Body.String())
	}
}
