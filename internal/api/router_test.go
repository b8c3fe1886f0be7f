package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/burgerqueen/pos-api/internal/core/domain"
	"github.com/burgerqueen/pos-api/internal/core/service"
	"github.com/burgerqueen/pos-api/internal/infrastructure/crypto"
	"github.com/burgerqueen/pos-api/internal/infrastructure/token"
)

// memUsers is an in-memory credential store keyed by insertion order.
type memUsers struct {
	mu    sync.Mutex
	users []*domain.User
	seq   int
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *memUsers) FindByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *memUsers) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	cp := *user
	cp.ID = fmt.Sprintf("%024x", m.seq)
	m.users = append(m.users, &cp)
	out := cp
	return &out, nil
}

func (m *memUsers) indexOf(ref domain.TargetRef) int {
	for i, u := range m.users {
		if (ref.Kind == domain.TargetByID && u.ID == ref.Value) ||
			(ref.Kind == domain.TargetByEmail && u.Email == ref.Value) {
			return i
		}
	}
	return -1
}

func (m *memUsers) UpdateByTarget(_ context.Context, ref domain.TargetRef, update domain.UserUpdate) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(ref)
	if i < 0 {
		return nil, domain.ErrUserNotFound
	}
	u := m.users[i]
	if update.Email != nil {
		u.Email = *update.Email
	}
	if update.PasswordHash != nil {
		u.PasswordHash = *update.PasswordHash
	}
	if update.Role != nil {
		u.Role = *update.Role
	}
	u.UpdatedAt = update.UpdatedAt
	cp := *u
	return &cp, nil
}

func (m *memUsers) DeleteByTarget(_ context.Context, ref domain.TargetRef) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := m.indexOf(ref)
	if i < 0 {
		return nil, domain.ErrUserNotFound
	}
	removed := m.users[i]
	m.users = append(m.users[:i], m.users[i+1:]...)
	return removed, nil
}

func (m *memUsers) List(_ context.Context, page domain.Page) ([]*domain.User, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	total := int64(len(m.users))
	start := min(int(page.Skip()), len(m.users))
	end := min(start+page.Limit, len(m.users))
	out := make([]*domain.User, 0, end-start)
	for _, u := range m.users[start:end] {
		cp := *u
		out = append(out, &cp)
	}
	return out, total, nil
}

type testServer struct {
	e     *echo.Echo
	users *service.UserService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	repo := &memUsers{}
	hasher := crypto.NewBcryptHasher(4)
	tokens := token.NewJWTService("test-secret", time.Hour)
	users := service.NewUserService(repo, hasher, zerolog.Nop())

	ctx := context.Background()
	if _, err := users.EnsureAdmin(ctx, "admin@x.com", "admin-pw"); err != nil {
		t.Fatalf("bootstrap admin: %v", err)
	}
	admin := domain.Claims{Role: domain.RoleAdmin, Email: "admin@x.com"}
	for _, email := range []string{"a@x.com", "b@x.com"} {
		if _, err := users.Create(ctx, admin, domain.NewUser{Email: email, Password: "pw", Role: "standard"}); err != nil {
			t.Fatalf("seed %s: %v", email, err)
		}
	}

	reg := prometheus.NewRegistry()
	e := NewRouter(Services{
		Auth:   service.NewAuthService(repo, hasher, tokens),
		Users:  users,
		Tokens: tokens,
	}, Options{
		Log:        zerolog.Nop(),
		Registerer: reg,
		Gatherer:   reg,
	})

	return &testServer{e: e, users: users}
}

func (s *testServer) do(t *testing.T, method, path, tok, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if tok != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+tok)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(t *testing.T, email, password string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/login", "", fmt.Sprintf(`{"email":%q,"password":%q}`, email, password))
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d (%s)", email, rec.Code, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Token == "" {
		t.Fatalf("login %s: no token in %s", email, rec.Body.String())
	}
	return resp.Token
}

func TestRouter_Login(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name     string
		body     string
		wantCode int
	}{
		{"missing password", `{"email":"a@x.com"}`, http.StatusBadRequest},
		{"unknown email", `{"email":"ghost@x.com","password":"pw"}`, http.StatusNotFound},
		{"wrong password", `{"email":"a@x.com","password":"nope"}`, http.StatusUnauthorized},
		{"valid", `{"email":"a@x.com","password":"pw"}`, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/login", "", tt.body)
			if rec.Code != tt.wantCode {
				t.Fatalf("expected %d, got %d (%s)", tt.wantCode, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRouter_UserScenarios(t *testing.T) {
	s := newTestServer(t)
	alice := s.login(t, "a@x.com", "pw")
	admin := s.login(t, "admin@x.com", "admin-pw")

	t.Run("self password change", func(t *testing.T) {
		rec := s.do(t, http.MethodPatch, "/users/a@x.com", alice, `{"password":"new"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
		}
		var body map[string]any
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if _, ok := body["password"]; ok {
			t.Fatalf("response leaks password: %v", body)
		}
		if body["email"] != "a@x.com" {
			t.Fatalf("unexpected body: %v", body)
		}
		s.login(t, "a@x.com", "new")
	})

	t.Run("other user is forbidden", func(t *testing.T) {
		rec := s.do(t, http.MethodPatch, "/users/b@x.com", alice, `{"password":"x"}`)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("self role change is forbidden", func(t *testing.T) {
		rec := s.do(t, http.MethodPatch, "/users/a@x.com", alice, `{"role":"admin"}`)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("empty update", func(t *testing.T) {
		rec := s.do(t, http.MethodPatch, "/users/a@x.com", alice, `{}`)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "cannot update to empty values") {
			t.Fatalf("unexpected body: %s", rec.Body.String())
		}
	})

	t.Run("admin deletes unknown user", func(t *testing.T) {
		for _, target := range []string{"nobody@x.com", "ffffffffffffffffffffffff", "not-an-id"} {
			rec := s.do(t, http.MethodDelete, "/users/"+target, admin, "")
			if rec.Code != http.StatusNotFound {
				t.Fatalf("%s: expected 404, got %d", target, rec.Code)
			}
		}
	})

	t.Run("standard user cannot list", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/users", alice, "")
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("duplicate account", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/users", admin, `{"email":"b@x.com","password":"pw","role":"standard"}`)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("non-admin create is forbidden before validation", func(t *testing.T) {
		rec := s.do(t, http.MethodPost, "/users", alice, `{}`)
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("missing token", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/users/a@x.com", "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestRouter_ListUsersPagination(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(t, "admin@x.com", "admin-pw")

	rec := s.do(t, http.MethodGet, "/users?page=2&limit=1", admin, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	var users []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &users); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(users) != 1 || users[0]["email"] != "a@x.com" {
		t.Fatalf("unexpected page: %v", users)
	}
	if got := rec.Header().Get("X-Total-Count"); got != "3" {
		t.Fatalf("expected total 3, got %q", got)
	}
	link := rec.Header().Get("Link")
	for _, rel := range []string{`rel="first"`, `rel="prev"`, `rel="next"`, `rel="last"`} {
		if !strings.Contains(link, rel) {
			t.Fatalf("link header %q missing %s", link, rel)
		}
	}
}

func TestRouter_ProductWritesRequireAdmin(t *testing.T) {
	s := newTestServer(t)
	alice := s.login(t, "a@x.com", "pw")

	rec := s.do(t, http.MethodPost, "/products", alice, `{}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRouter_Health(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
