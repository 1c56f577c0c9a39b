package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/bracken1022/prompt-museum/config"
	"github.com/bracken1022/prompt-museum/internal/database"
	"github.com/bracken1022/prompt-museum/internal/models"
	"github.com/bracken1022/prompt-museum/internal/services"
	"github.com/bracken1022/prompt-museum/internal/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Environment:    config.EnvDevelopment,
		DBDriver:       config.DriverSQLite,
		DBSQLitePath:   filepath.Join(t.TempDir(), "museum.db"),
		DBAutoMigrate:  true,
		DBMaxOpenConns: 1,
		DBMaxIdleConns: 1,
		JWTSecret:      "test_secret",
		JWTExpiresIn:   time.Hour,
		BcryptCost:     bcrypt.MinCost,
		CORSOrigins:    []string{"http://localhost:3000"},
	}
	db, err := database.Connect(cfg)
	require.NoError(t, err)
	sqlDB, _ := db.DB()
	t.Cleanup(func() { sqlDB.Close() })

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	users := services.NewUserService(db, rdb)
	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiresIn)
	return NewRouter(Dependencies{
		Config:  cfg,
		Auth:    services.NewAuthService(db, users, tokens, services.NewTokenDenylist(rdb), cfg.BcryptCost),
		Prompts: services.NewPromptService(db, users, rdb),
	})
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func register(t *testing.T, r *gin.Engine, name, email string) services.AuthResult {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/auth/register", "", gin.H{"name": name, "email": email, "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code)

	var result services.AuthResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.True(t, result.Success, result.Message)
	return result
}

func TestHealth(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "Prompt Museum Backend is running!", body["message"])
	assert.Equal(t, config.EnvDevelopment, body["environment"])
	_, err := time.Parse(time.RFC3339, body["timestamp"])
	assert.NoError(t, err)
}

func TestAuthBusinessFailuresAre200(t *testing.T) {
	r := setupRouter(t)
	register(t, r, "Ada", "ada@example.com")

	tests := []struct {
		name    string
		path    string
		body    gin.H
		message string
	}{
		{name: "duplicate register", path: "/auth/register", body: gin.H{"name": "X", "email": "ada@example.com", "password": "pw"}, message: "User already exists"},
		{name: "wrong password", path: "/auth/login", body: gin.H{"email": "ada@example.com", "password": "nope"}, message: "Invalid credentials"},
		{name: "unknown email", path: "/auth/login", body: gin.H{"email": "bob@example.com", "password": "nope"}, message: "Invalid credentials"},
		{name: "forgot unknown", path: "/auth/forgot-password", body: gin.H{"email": "bob@example.com"}, message: "User not found"},
		{name: "password too long", path: "/auth/register", body: gin.H{"name": "Bob", "email": "bob@example.com", "password": strings.Repeat("p", 80)}, message: "Password must be at most 72 bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, http.MethodPost, tt.path, "", tt.body)
			assert.Equal(t, http.StatusOK, w.Code)

			var result services.AuthResult
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
			assert.False(t, result.Success)
			assert.Equal(t, tt.message, result.Message)
			assert.Empty(t, result.AccessToken)
		})
	}
}

func TestRegisterValidation(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/auth/register", "", gin.H{"name": "Ada", "email": "not-an-email", "password": "pw"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp utils.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Field 'email' must be a valid email address", resp.Message)
}

func TestLoginMeAndLogout(t *testing.T) {
	r := setupRouter(t)
	registered := register(t, r, "Ada", "ada@example.com")

	w := doJSON(t, r, http.MethodPost, "/auth/login", "", gin.H{"email": "ada@example.com", "password": "password123"})
	require.Equal(t, http.StatusOK, w.Code)
	var login services.AuthResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	assert.Equal(t, "Login successful", login.Message)

	w = doJSON(t, r, http.MethodGet, "/auth/me", login.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, registered.User.ID, me.ID)
	assert.NotContains(t, w.Body.String(), "password")

	w = doJSON(t, r, http.MethodPost, "/auth/logout", login.AccessToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/auth/me", login.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token has been revoked")
}

func TestPromptEndToEnd(t *testing.T) {
	r := setupRouter(t)
	alice := register(t, r, "Alice", "alice@example.com")
	bob := register(t, r, "Bob", "bob@example.com")

	w := doJSON(t, r, http.MethodPost, "/prompts", alice.AccessToken, gin.H{
		"title":       "Essay outline",
		"description": "Outline an essay",
		"content":     "Write an outline for...",
		"category":    "Writing",
		"agent":       "ChatGPT",
		"tags":        []string{"a", "b"},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Prompt
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.True(t, created.IsPublic)
	assert.Equal(t, models.Tags{"a", "b"}, created.Tags)
	id := strconv.FormatUint(uint64(created.ID), 10)

	w = doJSON(t, r, http.MethodGet, "/prompts?category=Writing", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed []models.Prompt
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)

	w = doJSON(t, r, http.MethodPatch, "/prompts/"+id, bob.AccessToken, gin.H{"title": "Hijacked"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "permission to update")

	w = doJSON(t, r, http.MethodDelete, "/prompts/"+id, bob.AccessToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPatch, "/prompts/"+id, alice.AccessToken, gin.H{"title": "Essay plan", "is_public": false})
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.Prompt
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "Essay plan", updated.Title)
	assert.False(t, updated.IsPublic)

	w = doJSON(t, r, http.MethodGet, "/prompts", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/prompts/my-prompts", alice.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var mine []models.Prompt
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &mine))
	assert.Len(t, mine, 1)

	for i := 1; i <= 3; i++ {
		w = doJSON(t, r, http.MethodPost, "/prompts/"+id+"/like", "", nil)
		require.Equal(t, http.StatusOK, w.Code)
	}
	var liked models.Prompt
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &liked))
	assert.Equal(t, 3, liked.LikesCount)

	w = doJSON(t, r, http.MethodDelete, "/prompts/"+id, alice.AccessToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, "/prompts/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Prompt with ID "+id+" not found")
}

func TestUpdatePromptEmptyBody(t *testing.T) {
	r := setupRouter(t)
	alice := register(t, r, "Alice", "alice@example.com")

	w := doJSON(t, r, http.MethodPost, "/prompts", alice.AccessToken, gin.H{
		"title":    "Essay outline",
		"content":  "Write an outline for...",
		"category": "Writing",
		"agent":    "ChatGPT",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created models.Prompt
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	id := strconv.FormatUint(uint64(created.ID), 10)

	w = doJSON(t, r, http.MethodPatch, "/prompts/"+id, alice.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var unchanged models.Prompt
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &unchanged))
	assert.Equal(t, created.Title, unchanged.Title)
	assert.Equal(t, created.IsPublic, unchanged.IsPublic)

	w = doJSON(t, r, http.MethodPatch, "/prompts/"+id, alice.AccessToken, gin.H{})
	assert.Equal(t, http.StatusOK, w.Code)

	req, _ := http.NewRequest(http.MethodPatch, "/prompts/"+id, strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+alice.AccessToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPromptRoutesRequireAuth(t *testing.T) {
	r := setupRouter(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/prompts"},
		{http.MethodGet, "/prompts/my-prompts"},
		{http.MethodPatch, "/prompts/1"},
		{http.MethodDelete, "/prompts/1"},
		{http.MethodPost, "/auth/logout"},
	} {
		w := doJSON(t, r, tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, tc.method+" "+tc.path)
	}
}

func TestInvalidPromptID(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/prompts/abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid prompt ID")
}

func TestFacetsAndUnknownRoute(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/prompts/categories", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/prompts/agents", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/does-not-exist", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSwaggerIsPublic(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/swagger/doc.json", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Prompt Museum API")
}
