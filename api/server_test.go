package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/bilingual-portfolio-backend/auth"
	"github.com/rpupo63/bilingual-portfolio-backend/cache"
	"github.com/rpupo63/bilingual-portfolio-backend/database"
	"github.com/rpupo63/bilingual-portfolio-backend/database/databasetest"
	"github.com/rpupo63/bilingual-portfolio-backend/errs"
	"github.com/rpupo63/bilingual-portfolio-backend/models"
	"github.com/rpupo63/bilingual-portfolio-backend/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	adminToken  = "admin-token"
	viewerToken = "viewer-token"
	password    = "correct horse"
)

type fakeProvider struct {
	mu        sync.Mutex
	sessions  map[string]*auth.Session
	signedOut []string
}

func (f *fakeProvider) SignIn(_ context.Context, email, pw string) (*auth.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sessions {
		if s.Email == email && pw == password {
			return s, nil
		}
	}
	return nil, errs.NewInvalidLoginError("Invalid login credentials")
}

func (f *fakeProvider) SessionFromToken(_ context.Context, token string) (*auth.Session, error) {
	if token == "" {
		return nil, errs.NewMissingTokenError()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.sessions[token]
	if !ok {
		return nil, errs.NewInvalidTokenError(nil)
	}
	return s, nil
}

func (f *fakeProvider) SignOut(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signedOut = append(f.signedOut, token)
	return nil
}

type fakeObjects struct {
	mu       sync.Mutex
	uploaded map[string][]byte
}

func (f *fakeObjects) Upload(_ context.Context, path string, body io.Reader, _ int64, _ string) error {
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploaded[path] = b
	return nil
}

func (f *fakeObjects) Delete(_ context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.uploaded, path)
	return nil
}

func (f *fakeObjects) PublicURL(path string) string {
	return "https://cdn.example.com/" + path
}

func (f *fakeObjects) ObjectPath(url string) (string, bool) {
	if !strings.HasPrefix(url, "https://cdn.example.com/") {
		return "", false
	}
	return strings.TrimPrefix(url, "https://cdn.example.com/"), true
}

type testServer struct {
	handler  http.Handler
	db       database.Database
	provider *fakeProvider
	objects  *fakeObjects
}

func newTestServer(t *testing.T) testServer {
	t.Helper()

	db := database.New(databasetest.Open(t))
	c := cache.New(cache.NewMemoryStore(), cache.WithStaleAfter(time.Hour))
	t.Cleanup(c.Wait)

	objects := &fakeObjects{uploaded: map[string][]byte{}}
	svc := services.New(db, c, services.WithObjectStore(objects), services.WithMaxUploadBytes(1024))

	adminID, viewerID := uuid.New(), uuid.New()
	require.NoError(t, db.UserRoleRepo().Grant(context.Background(), adminID, models.RoleAdmin))

	provider := &fakeProvider{sessions: map[string]*auth.Session{
		adminToken:  {AccessToken: adminToken, UserID: adminID, Email: "owner@example.com", ExpiresAt: time.Now().Add(time.Hour)},
		viewerToken: {AccessToken: viewerToken, UserID: viewerID, Email: "viewer@example.com", ExpiresAt: time.Now().Add(time.Hour)},
	}}
	guard := auth.NewGuard(provider, db.UserRoleRepo(), models.RoleAdmin)

	cfg := map[string]string{"SESSION_COOKIE_SECURE": "false", "ACCEPTED_ORIGINS": "https://site.example.com"}
	handler := newRouter(Dependencies{Services: svc, Provider: provider, Guard: guard, DB: db}, withConfig(cfg))

	return testServer{handler: handler, db: db, provider: provider, objects: objects}
}

func (s testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func experienceBody(title string, published bool) map[string]any {
	return map[string]any{
		"title_en":        title,
		"title_vi":        title + " (vi)",
		"company_en":      "Acme",
		"company_vi":      "Công ty Acme",
		"start_date":      "2021-01-01T00:00:00Z",
		"achievements_en": []string{"Shipped"},
		"published":       published,
	}
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/admin/experiences", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodGet, "/admin/experiences", "forged", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodGet, "/admin/experiences", viewerToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, []string{viewerToken}, s.provider.signedOut)

	rec = s.do(t, http.MethodGet, "/admin/experiences", adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdminRoleIsCheckedOnEveryRequest(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/admin/projects", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	session := s.provider.sessions[adminToken]
	require.NoError(t, s.db.UserRoleRepo().Revoke(context.Background(), session.UserID, models.RoleAdmin))

	rec = s.do(t, http.MethodGet, "/admin/projects", adminToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateExperienceShowsOnPublicList(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/experiences", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]ExperienceView](t, rec))

	rec = s.do(t, http.MethodPost, "/admin/experiences", adminToken, experienceBody("Engineer", true))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[services.Mutation[models.Experience]](t, rec)
	assert.Equal(t, "Experience created successfully", created.Message)
	assert.NotEqual(t, uuid.Nil, created.Data.ID)

	rec = s.do(t, http.MethodGet, "/experiences?lang=vi", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "vi", rec.Header().Get("Content-Language"))

	items := decode[[]ExperienceView](t, rec)
	require.Len(t, items, 1)
	assert.Equal(t, "Engineer (vi)", items[0].Title)
	assert.Equal(t, "Công ty Acme", items[0].Company)
	// no Vietnamese achievements, so the English list is used
	assert.Equal(t, []string{"Shipped"}, items[0].Achievements)
}

func TestCreateRejectsMissingFieldsWithNotice(t *testing.T) {
	s := newTestServer(t)

	body := experienceBody("", true)
	rec := s.do(t, http.MethodPost, "/admin/experiences", adminToken, body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decode[ErrorResponse](t, rec)
	assert.Equal(t, "error", resp.Status)
	assert.True(t, strings.HasPrefix(resp.Error, "Failed to create experience"), resp.Error)
}

func TestUpdateMissingRecordIsMutationNotFound(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPut, "/admin/projects/"+uuid.NewString(), adminToken, map[string]any{"title_vi": "Mới"})
	require.Equal(t, http.StatusNotFound, rec.Code)
	resp := decode[ErrorResponse](t, rec)
	assert.True(t, strings.HasPrefix(resp.Error, "Failed to update project"), resp.Error)
}

func TestPublicDetailNotFound(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/projects/missing", "/blog/posts/missing", "/settings/missing"} {
		rec := s.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, path)
		assert.JSONEq(t, `{"status":"not_found"}`, rec.Body.String(), path)
	}
}

func TestProjectDetailBySlug(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/admin/projects", adminToken, map[string]any{
		"title_en":       "Café Ordering",
		"title_vi":       "Đặt món cà phê",
		"description_en": "Orders",
		"published":      true,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[services.Mutation[models.Project]](t, rec)
	assert.Equal(t, "cafe-ordering", created.Data.Slug)

	rec = s.do(t, http.MethodGet, "/projects/cafe-ordering?lang=vi", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[ProjectView](t, rec)
	assert.Equal(t, "Đặt món cà phê", view.Title)
	assert.Equal(t, "Orders", view.Description)
	assert.NotNil(t, view.Tags)
}

func TestBlogPostTagsRelink(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/admin/blog/posts", adminToken, map[string]any{
		"title_en":   "Hello World",
		"title_vi":   "Xin chào",
		"content_en": "one two three",
		"content_vi": "một hai ba",
		"published":  true,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	post := decode[services.Mutation[models.BlogPost]](t, rec).Data

	var tagIDs []uuid.UUID
	for _, name := range []string{"Go", "Cloud"} {
		rec = s.do(t, http.MethodPost, "/admin/blog/tags", adminToken, map[string]any{"name_en": name, "name_vi": name})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		tagIDs = append(tagIDs, decode[services.Mutation[models.BlogTag]](t, rec).Data.ID)
	}

	rec = s.do(t, http.MethodPut, "/admin/blog/posts/"+post.ID.String()+"/tags", adminToken, map[string]any{"tag_ids": tagIDs})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	relinked := decode[services.Mutation[[]models.BlogTag]](t, rec)
	assert.Equal(t, "Post tags updated successfully", relinked.Message)
	assert.Len(t, relinked.Data, 2)

	rec = s.do(t, http.MethodGet, "/blog/posts/hello-world", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[PostView](t, rec)
	assert.Len(t, view.Tags, 2)
	assert.Equal(t, 1, view.Views)
	assert.Equal(t, "one two three", view.Content)

	rec = s.do(t, http.MethodDelete, "/admin/blog/posts/"+post.ID.String()+"/tags/"+tagIDs[0].String(), adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[services.Mutation[[]models.BlogTag]](t, rec).Data, 1)

	rec = s.do(t, http.MethodGet, "/blog/tags/"+tagIDs[1].String()+"/posts", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]PostView](t, rec), 1)
}

func TestBlogSearchShortQueryIsEmpty(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/blog/posts/search?q=go", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestLoginSetsSessionCookie(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/admin/login", "", map[string]string{"email": "owner@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/admin/login", "", map[string]string{"email": "viewer@example.com", "password": password})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, s.provider.signedOut, viewerToken)

	rec = s.do(t, http.MethodPost, "/admin/login", "", map[string]string{"email": "owner@example.com", "password": password})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.Equal(t, adminToken, cookie.Value)
	assert.True(t, cookie.HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/admin/session", nil)
	req.AddCookie(cookie)
	rec = httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, auth.Authorized, decode[SessionResponse](t, rec).State)
}

func TestLogoutClearsCookie(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/admin/logout", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, s.provider.signedOut, adminToken)

	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestSetLanguage(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPut, "/language", "", map[string]string{"lang": "fr"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPut, "/language", "", map[string]string{"lang": "vi-VN"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"lang":"vi"}`, rec.Body.String())
	require.NotEmpty(t, rec.Result().Cookies())
	assert.Equal(t, "vi", rec.Result().Cookies()[0].Value)
}

func TestAcceptLanguageNegotiation(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/pages/home", nil)
	req.Header.Set("Accept-Language", "vi-VN,vi;q=0.9,en;q=0.5")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "vi", rec.Header().Get("Content-Language"))
	page := decode[HomePageView](t, rec)
	assert.Nil(t, page.Profile)
	assert.NotNil(t, page.Projects)
}

func TestMediaUpload(t *testing.T) {
	s := newTestServer(t)

	upload := func(content []byte) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("file", "Photo.PNG")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
		require.NoError(t, mw.WriteField("alt_text_en", "A photo"))
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/admin/media/upload", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+adminToken)
		rec := httptest.NewRecorder()
		s.handler.ServeHTTP(rec, req)
		return rec
	}

	rec := upload(bytes.Repeat([]byte("x"), 2048))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	assert.Empty(t, s.objects.uploaded)

	rec = upload([]byte("png bytes"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	result := decode[services.Mutation[models.MediaItem]](t, rec)
	assert.Equal(t, "File uploaded successfully", result.Message)
	assert.True(t, strings.HasSuffix(result.Data.URL, ".png"), result.Data.URL)
	require.NotNil(t, result.Data.UploadedBy)
	assert.Equal(t, s.provider.sessions[adminToken].UserID, *result.Data.UploadedBy)
	assert.Len(t, s.objects.uploaded, 1)

	rec = s.do(t, http.MethodGet, "/admin/media?type=image&q=photo", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.MediaItem](t, rec), 1)

	rec = s.do(t, http.MethodGet, "/admin/media?type=image/png", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.MediaItem](t, rec), 1)

	rec = s.do(t, http.MethodGet, "/admin/media?type=video/mp4", adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]models.MediaItem](t, rec))

	rec = s.do(t, http.MethodDelete, "/admin/media/"+result.Data.ID.String(), adminToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, s.objects.uploaded)
}

func TestSettingsUpsertAndFooter(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPut, "/admin/settings", adminToken, map[string]any{"key": "footer_text", "value_en": "Built with care"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "Setting saved successfully", decode[services.Mutation[models.Setting]](t, rec).Message)

	rec = s.do(t, http.MethodGet, "/pages/footer?lang=vi", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Built with care", decode[FooterView](t, rec).Text)

	rec = s.do(t, http.MethodPatch, "/admin/settings/footer_text", adminToken, map[string]any{"value_vi": "Làm bằng tâm huyết"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/settings/footer_text?lang=vi", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, SettingView{Key: "footer_text", Value: "Làm bằng tâm huyết"}, decode[SettingView](t, rec))

	// saving only the english text keeps the vietnamese one
	rec = s.do(t, http.MethodPut, "/admin/settings", adminToken, map[string]any{"key": "footer_text", "value_en": "Built with Go"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	saved := decode[services.Mutation[models.Setting]](t, rec).Data
	require.NotNil(t, saved.ValueVi)
	assert.Equal(t, "Làm bằng tâm huyết", *saved.ValueVi)
	assert.Equal(t, "Built with Go", *saved.ValueEn)
}

func TestInvalidJSONBody(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/admin/experiences", strings.NewReader("{not json"))
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "json", decode[ErrorResponse](t, rec).Field)
}

func TestHealthz(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[HealthResponse](t, rec).Database)
}

func TestCORSRejectsUnknownPreflight(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/experiences", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodOptions, "/experiences", nil)
	req.Header.Set("Origin", "https://site.example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	rec = httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, "https://site.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}
