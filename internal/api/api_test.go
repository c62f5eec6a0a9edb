package api

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"flipr/internal/auth"
	"flipr/internal/config"
	"flipr/internal/models"
	"flipr/internal/store"
)

type testEnv struct {
	ts        *httptest.Server
	st        *store.Store
	uploadDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := config.Config{
		DBPath:         filepath.Join(t.TempDir(), "test.db"),
		JWTSecret:      "test-secret",
		AdminEmail:     "admin@example.com",
		AdminPassword:  "admin123",
		UploadDir:      t.TempDir(),
		MaxUploadBytes: 10 << 20,
	}

	st, err := store.Open(cfg.DBPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	log := zap.NewNop()
	require.NoError(t, auth.EnsureAdmin(context.Background(), st, cfg.AdminEmail, cfg.AdminPassword, log))

	a := auth.New(st, auth.NewTokens(cfg.JWTSecret), log)
	ts := httptest.NewServer(NewServer(cfg, st, a, log).Router())
	t.Cleanup(ts.Close)

	return &testEnv{ts: ts, st: st, uploadDir: cfg.UploadDir}
}

func (e *testEnv) postJSON(t *testing.T, path, token string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, e.ts.URL+path, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) get(t *testing.T, path, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, e.ts.URL+path, nil)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) login(t *testing.T) string {
	t.Helper()
	resp := e.postJSON(t, "/api/auth/login", "", map[string]string{
		"email":    "admin@example.com",
		"password": "admin123",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Token string `json:"token"`
		Email string `json:"email"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotEmpty(t, out.Token)
	assert.Equal(t, "admin@example.com", out.Email)
	return out.Token
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 40, G: 90, B: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func (e *testEnv) postMultipart(t *testing.T, path, token string, fields map[string]string, filename string, file []byte) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("image", filename)
		require.NoError(t, err)
		_, err = fw.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, e.ts.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func uploadDirFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestHealth(t *testing.T) {
	e := newTestEnv(t)
	resp := e.get(t, "/api/health", "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	e := newTestEnv(t)

	for _, creds := range []map[string]string{
		{"email": "admin@example.com", "password": "wrong"},
		{"email": "nobody@example.com", "password": "admin123"},
	} {
		resp := e.postJSON(t, "/api/auth/login", "", creds)
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		// Same message either way; nothing leaks which part was wrong.
		assert.Contains(t, string(body), "Invalid credentials")
	}
}

func TestLoginValidatesFields(t *testing.T) {
	e := newTestEnv(t)
	resp := e.postJSON(t, "/api/auth/login", "", map[string]string{"email": "not-an-email", "password": ""})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out struct {
		Errors []FieldError `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	fields := []string{}
	for _, fe := range out.Errors {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"email", "password"}, fields)
}

func TestUnauthenticatedCreateWritesNoFile(t *testing.T) {
	e := newTestEnv(t)

	resp := e.postMultipart(t, "/api/clients", "",
		map[string]string{"name": "jane", "designation": "ceo", "description": "great"},
		"photo.png", pngBytes(t, 1200, 800))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Empty(t, uploadDirFiles(t, e.uploadDir), "rejection must happen before any file is written")
}

func TestCreateClientEndToEnd(t *testing.T) {
	e := newTestEnv(t)
	token := e.login(t)

	resp := e.postMultipart(t, "/api/clients", token,
		map[string]string{"name": "jane", "designation": "ceo", "description": "great"},
		"photo.png", pngBytes(t, 1200, 800))
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var client models.Client
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&client))
	assert.Equal(t, "jane", client.Name)

	// The stored URL is absolute, derived from the request host since no
	// base is configured.
	require.True(t, strings.HasPrefix(client.ImageURL, e.ts.URL+"/uploads/"), "got %q", client.ImageURL)

	// The asset is immediately fetchable and exactly 300x300.
	assetResp, err := http.Get(client.ImageURL)
	require.NoError(t, err)
	defer assetResp.Body.Close()
	require.Equal(t, http.StatusOK, assetResp.StatusCode)
	cfg, _, err := image.DecodeConfig(assetResp.Body)
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.Width)
	assert.Equal(t, 300, cfg.Height)

	// Only the normalized asset remains; the staged original is gone.
	names := uploadDirFiles(t, e.uploadDir)
	require.Len(t, names, 1)
	assert.Contains(t, names[0], "-cropped")
}

func TestCreateProjectDimensions(t *testing.T) {
	e := newTestEnv(t)
	token := e.login(t)

	resp := e.postMultipart(t, "/api/projects", token,
		map[string]string{"name": "site", "description": "a project"},
		"shot.png", pngBytes(t, 800, 800))
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var project models.Project
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&project))

	assetResp, err := http.Get(project.ImageURL)
	require.NoError(t, err)
	defer assetResp.Body.Close()
	cfg, _, err := image.DecodeConfig(assetResp.Body)
	require.NoError(t, err)
	assert.Equal(t, 450, cfg.Width)
	assert.Equal(t, 350, cfg.Height)
}

func TestCreateProjectValidation(t *testing.T) {
	e := newTestEnv(t)
	token := e.login(t)

	// Missing text fields: 400 listing them, and the staged upload is
	// discarded.
	resp := e.postMultipart(t, "/api/projects", token,
		map[string]string{"name": ""}, "shot.png", pngBytes(t, 100, 100))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out struct {
		Errors []FieldError `json:"errors"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Len(t, out.Errors, 2)
	assert.Empty(t, uploadDirFiles(t, e.uploadDir))

	// Missing file.
	resp2 := e.postMultipart(t, "/api/projects", token,
		map[string]string{"name": "site", "description": "d"}, "", nil)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)

	// Unsupported type.
	resp3 := e.postMultipart(t, "/api/projects", token,
		map[string]string{"name": "site", "description": "d"}, "resume.pdf", []byte("%PDF"))
	defer resp3.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp3.StatusCode)
}

func TestDeleteIsIdempotent(t *testing.T) {
	e := newTestEnv(t)
	token := e.login(t)

	client, err := e.st.CreateClient(context.Background(), "jane", "ceo", "great", "/uploads/x.png")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		req, err := http.NewRequest(http.MethodDelete, e.ts.URL+"/api/clients/"+client.ID, nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"success":true}`, string(body))
	}
}

func TestContactsFlow(t *testing.T) {
	e := newTestEnv(t)

	// Submission is public.
	resp := e.postJSON(t, "/api/contacts", "", map[string]string{
		"fullName": "Jane Doe", "email": "jane@example.com", "mobile": "555-0100", "city": "Springfield",
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Reading requires auth.
	unauth := e.get(t, "/api/contacts", "")
	unauth.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, unauth.StatusCode)

	token := e.login(t)
	authed := e.get(t, "/api/contacts", token)
	defer authed.Body.Close()
	require.Equal(t, http.StatusOK, authed.StatusCode)
	var contacts []models.Contact
	require.NoError(t, json.NewDecoder(authed.Body).Decode(&contacts))
	require.Len(t, contacts, 1)
	assert.Equal(t, "Jane Doe", contacts[0].FullName)
}

func TestSubscriptionDuplicate(t *testing.T) {
	e := newTestEnv(t)

	first := e.postJSON(t, "/api/subscriptions", "", map[string]string{"email": "reader@example.com"})
	defer first.Body.Close()
	require.Equal(t, http.StatusCreated, first.StatusCode)
	var created models.Subscription
	require.NoError(t, json.NewDecoder(first.Body).Decode(&created))

	// Signing up again returns the existing record, not an error.
	second := e.postJSON(t, "/api/subscriptions", "", map[string]string{"email": "Reader@Example.com"})
	defer second.Body.Close()
	require.Equal(t, http.StatusOK, second.StatusCode)
	var existing models.Subscription
	require.NoError(t, json.NewDecoder(second.Body).Decode(&existing))
	assert.Equal(t, created.ID, existing.ID)
}

func TestConfiguredBaseURLWins(t *testing.T) {
	cfg := config.Config{
		DBPath:         filepath.Join(t.TempDir(), "test.db"),
		JWTSecret:      "test-secret",
		AdminEmail:     "admin@example.com",
		AdminPassword:  "admin123",
		FileBaseURL:    "https://cdn.example.com/",
		UploadDir:      t.TempDir(),
		MaxUploadBytes: 10 << 20,
	}
	st, err := store.Open(cfg.DBPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	log := zap.NewNop()
	require.NoError(t, auth.EnsureAdmin(context.Background(), st, cfg.AdminEmail, cfg.AdminPassword, log))
	a := auth.New(st, auth.NewTokens(cfg.JWTSecret), log)
	ts := httptest.NewServer(NewServer(cfg, st, a, log).Router())
	t.Cleanup(ts.Close)
	e := &testEnv{ts: ts, st: st, uploadDir: cfg.UploadDir}

	token := e.login(t)
	resp := e.postMultipart(t, "/api/clients", token,
		map[string]string{"name": "jane", "designation": "ceo", "description": "great"},
		"photo.png", pngBytes(t, 400, 400))
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var client models.Client
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&client))
	assert.True(t, strings.HasPrefix(client.ImageURL, "https://cdn.example.com/uploads/"), "got %q", client.ImageURL)
}
