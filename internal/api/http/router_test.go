package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Potism/studiomain/internal/api/dto"
	httptransport "github.com/Potism/studiomain/internal/api/http"
	"github.com/Potism/studiomain/internal/api/http/handlers"
	"github.com/Potism/studiomain/internal/auth"
	"github.com/Potism/studiomain/internal/config"
	"github.com/Potism/studiomain/internal/domain"
	"github.com/Potism/studiomain/internal/events"
	"github.com/Potism/studiomain/internal/observability"
	"github.com/Potism/studiomain/internal/service"
	"github.com/Potism/studiomain/internal/storage"
)

type memIdentityRepo struct {
	identities map[string]*domain.Identity
}

func (m *memIdentityRepo) GetByEmail(_ context.Context, email string) (*domain.Identity, error) {
	if identity, ok := m.identities[email]; ok {
		return identity, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memIdentityRepo) Create(_ context.Context, identity *domain.Identity) error {
	m.identities[identity.Email] = identity
	return nil
}

type memAdminRepo struct {
	admins map[string]*domain.AdminUser
}

func (m *memAdminRepo) GetByEmail(_ context.Context, email string) (*domain.AdminUser, error) {
	if admin, ok := m.admins[email]; ok {
		return admin, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memAdminRepo) Create(_ context.Context, admin *domain.AdminUser) error {
	m.admins[admin.Email] = admin
	return nil
}

// memContentRepo counts upserts so tests can prove a refused request never
// reached storage.
type memContentRepo struct {
	entries map[string]domain.ContentEntry
	upserts int
}

func (m *memContentRepo) ListAll(_ context.Context) ([]domain.ContentEntry, error) {
	out := make([]domain.ContentEntry, 0, len(m.entries))
	for _, e := range m.entries {
		out = append(out, e)
	}
	return out, nil
}

func (m *memContentRepo) Upsert(_ context.Context, entry *domain.ContentEntry) error {
	m.upserts++
	m.entries[entry.Section+"/"+entry.Key] = *entry
	return nil
}

type memContactRepo struct {
	submissions []domain.ContactSubmission
}

func (m *memContactRepo) Create(_ context.Context, submission *domain.ContactSubmission) error {
	submission.ID = "sub-1"
	submission.CreatedAt = time.Now()
	m.submissions = append(m.submissions, *submission)
	return nil
}

func (m *memContactRepo) List(_ context.Context) ([]domain.ContactSubmission, error) {
	return m.submissions, nil
}

type memPortfolioRepo struct {
	items map[string]*domain.PortfolioItem
}

func (m *memPortfolioRepo) Create(_ context.Context, item *domain.PortfolioItem) error {
	item.ID = "item-1"
	m.items[item.ID] = item
	return nil
}

func (m *memPortfolioRepo) CreateBatch(ctx context.Context, items []*domain.PortfolioItem) error {
	for _, item := range items {
		if err := m.Create(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

func (m *memPortfolioRepo) Update(_ context.Context, item *domain.PortfolioItem) error {
	m.items[item.ID] = item
	return nil
}

func (m *memPortfolioRepo) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}

func (m *memPortfolioRepo) GetByID(_ context.Context, id string) (*domain.PortfolioItem, error) {
	if item, ok := m.items[id]; ok {
		clone := *item
		return &clone, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memPortfolioRepo) List(_ context.Context) ([]domain.PortfolioItem, error) {
	out := make([]domain.PortfolioItem, 0, len(m.items))
	for _, item := range m.items {
		out = append(out, *item)
	}
	return out, nil
}

func (m *memPortfolioRepo) ListFileURLs(_ context.Context) ([]string, error) {
	urls := make([]string, 0, len(m.items))
	for _, item := range m.items {
		urls = append(urls, item.FileURL)
	}
	return urls, nil
}

type apiFixture struct {
	app     *fiber.App
	content *memContentRepo
}

func newAPIFixture(t *testing.T, allowLegacy bool) *apiFixture {
	t.Helper()

	hash, err := auth.HashPassword("studio pass", bcrypt.MinCost)
	require.NoError(t, err)

	identities := &memIdentityRepo{identities: map[string]*domain.Identity{
		"owner@example.com":  {ID: "ident-owner", Email: "owner@example.com", PasswordHash: hash},
		"editor@example.com": {ID: "ident-editor", Email: "editor@example.com", PasswordHash: hash},
	}}
	admins := &memAdminRepo{admins: map[string]*domain.AdminUser{
		"owner@example.com":  {ID: "admin-owner", Email: "owner@example.com", Name: "Owner", Role: domain.RoleAdmin},
		"editor@example.com": {ID: "admin-editor", Email: "editor@example.com", Name: "Editor", Role: domain.RoleEditor},
	}}

	cfg := config.Config{Auth: config.AuthConfig{
		SessionSecret:       "integration-secret",
		SessionTTL:          24 * time.Hour,
		BcryptCost:          bcrypt.MinCost,
		AllowLegacySessions: allowLegacy,
	}}

	logger := zap.NewNop()
	dispatcher := events.NewInMemoryDispatcher()
	blobs, err := storage.NewFSBlobStore(t.TempDir(), "/media")
	require.NoError(t, err)

	authSvc := service.NewAuthService(cfg, service.AuthDependencies{IdentityRepo: identities, AdminRepo: admins}, logger)
	contentRepo := &memContentRepo{entries: map[string]domain.ContentEntry{}}
	contentSvc := service.NewContentService(contentRepo, nil, dispatcher, logger)
	contactSvc := service.NewContactService(&memContactRepo{}, dispatcher, logger)
	portfolioSvc := service.NewPortfolioService(&memPortfolioRepo{items: map[string]*domain.PortfolioItem{}}, blobs, nil, dispatcher, logger)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, observability.NewMetrics(), 0)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:     handlers.NewHealthHandler("studio-backend", "test", nil, nil),
		Auth:       handlers.NewAuthHandler(authSvc, false),
		Content:    handlers.NewContentHandler(contentSvc),
		Portfolio:  handlers.NewPortfolioHandler(portfolioSvc),
		Contact:    handlers.NewContactHandler(contactSvc),
		AdminPages: handlers.NewAdminPagesHandler(),
		Sessions:   auth.NewMiddleware(authSvc.Gate(), "/admin/login"),
	})

	return &apiFixture{app: app, content: contentRepo}
}

func (f *apiFixture) login(t *testing.T, email, password string) *http.Response {
	t.Helper()
	body, err := json.Marshal(dto.LoginRequest{Email: email, Password: password})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	return resp
}

func sessionCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, cookie := range resp.Cookies() {
		if cookie.Name == auth.SessionCookieName {
			return cookie
		}
	}
	return nil
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	body := decodeBody(t, resp)
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok, "expected error envelope, got %v", body)
	code, _ := errObj["code"].(string)
	return code
}

func TestLoginSetsAdminCookie(t *testing.T) {
	f := newAPIFixture(t, false)

	resp := f.login(t, "owner@example.com", "studio pass")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cookie := sessionCookie(t, resp)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, int((24 * time.Hour).Seconds()), cookie.MaxAge)

	body := decodeBody(t, resp)
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "owner@example.com", user["email"])
	assert.Equal(t, "admin", user["role"])
}

func TestLoginWrongPasswordGivesGeneric401(t *testing.T) {
	f := newAPIFixture(t, false)

	resp := f.login(t, "owner@example.com", "nope")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Nil(t, sessionCookie(t, resp))
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, resp))
}

func TestLoginNonAdminGives403NoCookie(t *testing.T) {
	f := newAPIFixture(t, false)

	resp := f.login(t, "editor@example.com", "studio pass")
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Nil(t, sessionCookie(t, resp))
	assert.Equal(t, "FORBIDDEN", errorCode(t, resp))
}

func TestContentUpdateFlowRecordsActor(t *testing.T) {
	f := newAPIFixture(t, false)

	login := f.login(t, "owner@example.com", "studio pass")
	require.Equal(t, http.StatusOK, login.StatusCode)
	cookie := sessionCookie(t, login)
	require.NotNil(t, cookie)

	value := "Studio Main"
	body, err := json.Marshal(dto.ContentUpdateRequest{Section: "hero", Key: "title", Value: &value})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/api/content", bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.AddCookie(cookie)
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	entry := f.content.entries["hero/title"]
	assert.Equal(t, "Studio Main", entry.Value)
	assert.Equal(t, "owner@example.com", entry.UpdatedBy)

	getReq := httptest.NewRequest(http.MethodGet, "/api/content", nil)
	getResp, err := f.app.Test(getReq)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, getResp.StatusCode)
	content := decodeBody(t, getResp)["content"].(map[string]any)
	assert.Equal(t, "Studio Main", content["hero"].(map[string]any)["title"])
}

func TestMutationWithoutSessionIsRefusedBeforeStorage(t *testing.T) {
	f := newAPIFixture(t, false)

	value := "x"
	body, err := json.Marshal(dto.ContentUpdateRequest{Section: "hero", Key: "title", Value: &value})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/api/content", bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := f.app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHENTICATED", errorCode(t, resp))
	assert.Zero(t, f.content.upserts)
}

func TestMutationWithExpiredSessionIsRefusedBeforeStorage(t *testing.T) {
	f := newAPIFixture(t, false)

	stale, err := auth.NewTokenManager("integration-secret", false).Encode(auth.SessionClaims{
		UserID:   "ident-owner",
		Email:    "owner@example.com",
		Role:     domain.RoleAdmin,
		IssuedAt: time.Now().Add(-25 * time.Hour).UnixMilli(),
	})
	require.NoError(t, err)

	value := "x"
	body, err := json.Marshal(dto.ContentUpdateRequest{Section: "hero", Key: "title", Value: &value})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/api/content", bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: stale})
	resp, err := f.app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "SESSION_EXPIRED", errorCode(t, resp))
	assert.Zero(t, f.content.upserts)
}

// A hand-built legacy token claiming the admin role must be worthless
// under the default configuration; only the explicit compatibility flag
// lets it through.
func TestForgedLegacyTokenRejectedByDefault(t *testing.T) {
	forged, err := auth.EncodeLegacySession(auth.SessionClaims{
		UserID:   "intruder",
		Email:    "intruder@example.com",
		Role:     domain.RoleAdmin,
		IssuedAt: time.Now().UnixMilli(),
	})
	require.NoError(t, err)

	value := "owned"
	body, err := json.Marshal(dto.ContentUpdateRequest{Section: "hero", Key: "title", Value: &value})
	require.NoError(t, err)

	f := newAPIFixture(t, false)
	req := httptest.NewRequest(http.MethodPut, "/api/content", bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: forged})
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Zero(t, f.content.upserts)

	legacy := newAPIFixture(t, true)
	req = httptest.NewRequest(http.MethodPut, "/api/content", bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: forged})
	resp, err = legacy.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, legacy.content.upserts)
}

func TestVerifyReturnsPrincipal(t *testing.T) {
	f := newAPIFixture(t, false)

	login := f.login(t, "owner@example.com", "studio pass")
	cookie := sessionCookie(t, login)
	require.NotNil(t, cookie)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/verify", nil)
	req.AddCookie(cookie)
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	user := decodeBody(t, resp)["user"].(map[string]any)
	assert.Equal(t, "owner@example.com", user["email"])
	assert.Equal(t, "admin", user["role"])
}

func TestLogoutClearsCookie(t *testing.T) {
	f := newAPIFixture(t, false)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/logout", nil)
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cookie := sessionCookie(t, resp)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.True(t, cookie.MaxAge < 0 || cookie.Expires.Before(time.Now()))
}

func TestContactSubmitIsPublic(t *testing.T) {
	f := newAPIFixture(t, false)

	body := []byte(`{"name":"Visitor","email":"v@example.com","phone":"555","service":"Studio Photography"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/contact", bytes.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminContactListRequiresSession(t *testing.T) {
	f := newAPIFixture(t, false)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/contact", nil)
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAdminPageRedirectsToLogin(t *testing.T) {
	f := newAPIFixture(t, false)

	req := httptest.NewRequest(http.MethodGet, "/admin/", nil)
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin/login", resp.Header.Get("Location"))
}
