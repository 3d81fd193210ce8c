package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/avenstek/avenstek-api/config"
	"github.com/avenstek/avenstek-api/internal/container"
	"github.com/avenstek/avenstek-api/internal/domain/entity"
	"github.com/avenstek/avenstek-api/internal/infrastructure/memory"
	"github.com/avenstek/avenstek-api/internal/interface/middleware"
	"github.com/avenstek/avenstek-api/pkg/helpers"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		AppName:     "Avenstek",
		Env:         "test",
		StoreDriver: config.StoreDriverMemory,
		JWTSecret:   "router-test-secret",
		TokenTTL:    time.Hour,
		BcryptCost:  bcrypt.MinCost,
		UploadsDir:  t.TempDir(),
	}
}

func newTestEngine(t *testing.T, cfg *config.Config) (*gin.Engine, *container.Container, *memory.AuthEventRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	events := memory.NewAuthEventRecorder()
	c := container.New(cfg, helpers.NewDiscardLogger(), memory.NewUserRepository(), events)
	return NewEngine(c), c, events
}

func do(r http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func TestEngine_HealthRoutes(t *testing.T) {
	r, _, _ := newTestEngine(t, testConfig(t))

	w := do(r, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Avenstek API is running...", decode(t, w)["message"])

	w = do(r, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Server is running!", decode(t, w)["status"])
}

func TestEngine_AuthFlow(t *testing.T) {
	r, c, events := newTestEngine(t, testConfig(t))
	creds := `{"email":"a@x.com","password":"secret123"}`

	w := do(r, http.MethodPost, "/api/auth/register", creds, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	body := decode(t, w)
	assert.Equal(t, "User registered successfully", body["message"])
	assert.Equal(t, w.Header().Get(middleware.HeaderRequestID), body["request_id"])

	w = do(r, http.MethodPost, "/api/auth/register", creds, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "User already exists", decode(t, w)["message"])

	w = do(r, http.MethodPost, "/api/auth/login", creds, nil)
	require.Equal(t, http.StatusOK, w.Code)
	token, _ := decode(t, w)["token"].(string)
	claims, err := c.Tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)

	w = do(r, http.MethodPost, "/api/auth/logout", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Logout successful", decode(t, w)["message"])

	actions := make([]entity.AuthAction, 0, 3)
	for _, ev := range events.Events() {
		actions = append(actions, ev.Action)
		assert.NotEmpty(t, ev.RequestID)
	}
	assert.Equal(t, []entity.AuthAction{entity.ActionRegister, entity.ActionLoginSuccess, entity.ActionLogout}, actions)
}

func TestEngine_RequestIDHeader(t *testing.T) {
	r, _, _ := newTestEngine(t, testConfig(t))

	w := do(r, http.MethodGet, "/api/health", "", nil)
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))

	const id = "2b1f7d3e-6c1a-4f57-9a53-0d7a4e1c9b10"
	w = do(r, http.MethodGet, "/api/health", "", map[string]string{middleware.HeaderRequestID: id})
	assert.Equal(t, id, w.Header().Get(middleware.HeaderRequestID))
}

func TestEngine_PanicIsRecovered(t *testing.T) {
	r, _, _ := newTestEngine(t, testConfig(t))
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	w := do(r, http.MethodGet, "/boom", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Something went wrong!", decode(t, w)["error"])
}

func TestEngine_ServesUploads(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.UploadsDir, "hello.txt"), []byte("hi"), 0o644))
	r, _, _ := newTestEngine(t, cfg)

	w := do(r, http.MethodGet, "/uploads/hello.txt", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "hi", w.Body.String())
}

func TestEngine_CORS(t *testing.T) {
	t.Run("any origin by default", func(t *testing.T) {
		r, _, _ := newTestEngine(t, testConfig(t))
		w := do(r, http.MethodGet, "/api/health", "", map[string]string{"Origin": "http://app.test"})
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("configured origins", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.CORSAllowedOrigins = "http://app.test"
		r, _, _ := newTestEngine(t, cfg)

		w := do(r, http.MethodGet, "/api/health", "", map[string]string{"Origin": "http://app.test"})
		assert.Equal(t, "http://app.test", w.Header().Get("Access-Control-Allow-Origin"))

		w = do(r, http.MethodGet, "/api/health", "", map[string]string{"Origin": "http://evil.test"})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestEngine_NilRecorder(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c := container.New(testConfig(t), helpers.NewDiscardLogger(), memory.NewUserRepository(), nil)
	r := NewEngine(c)

	w := do(r, http.MethodPost, "/api/auth/register", `{"email":"b@x.com","password":"secret123"}`, nil)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestEngine_AccessLogCoversAPIOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig(t)
	cfg.HTTPLogEnabled = true

	var buf bytes.Buffer
	logger := helpers.NewDiscardLogger()
	logger.SetOutput(&buf)
	r := NewEngine(container.New(cfg, logger, memory.NewUserRepository(), nil))

	do(r, http.MethodGet, "/", "", nil)
	assert.NotContains(t, buf.String(), "request handled")

	do(r, http.MethodGet, "/api/health", "", nil)
	assert.Contains(t, buf.String(), "request handled")
	assert.Contains(t, buf.String(), "/api/health")
}
