package web

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

// staticRouter serves dir and treats requests carrying X-Admin: yes as
// authorized.
func staticRouter(t *testing.T, dir string) *gin.Engine {
	authorize := func(c *gin.Context) bool {
		if c.GetHeader("X-Admin") == "yes" {
			return true
		}
		c.AbortWithStatus(http.StatusUnauthorized)
		return false
	}
	s := NewStatic(dir, authorize, zaptest.NewLogger(t).Sugar())

	r := gin.New()
	r.Use(CORS())
	r.GET("/api/ping", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	r.NoRoute(s.Handle)
	return r
}

func get(r http.Handler, method, target string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestStaticServesIndexAtRoot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "index.html", "<h1>Leaderboard</h1>")
	r := staticRouter(t, dir)

	w := get(r, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<h1>Leaderboard</h1>", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
}

func TestStaticContentTypes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.js", "console.log(1)")
	writeFile(t, dir, "blob.unknownext", "raw")
	r := staticRouter(t, dir)

	assert.Contains(t, get(r, http.MethodGet, "/app.js", nil).Header().Get("Content-Type"), "javascript")
	assert.Equal(t, "application/octet-stream", get(r, http.MethodGet, "/blob.unknownext", nil).Header().Get("Content-Type"))
}

func TestStaticMissingFileIs404(t *testing.T) {
	r := staticRouter(t, t.TempDir())

	assert.Equal(t, http.StatusNotFound, get(r, http.MethodGet, "/nope.css", nil).Code)
	assert.Equal(t, http.StatusNotFound, get(r, http.MethodGet, "/", nil).Code)
}

func TestStaticDirectoryIs404(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "img"), 0o755))
	r := staticRouter(t, dir)

	assert.Equal(t, http.StatusNotFound, get(r, http.MethodGet, "/img", nil).Code)
}

func TestStaticRejectsTraversal(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "frontend")
	require.NoError(t, os.Mkdir(root, 0o755))
	writeFile(t, parent, "secret.txt", "top secret")
	r := staticRouter(t, root)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.URL.Path = "/../secret.txt"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NotContains(t, w.Body.String(), "top secret")
}

func TestStaticRejectsSymlinkEscape(t *testing.T) {
	parent := t.TempDir()
	root := filepath.Join(parent, "frontend")
	require.NoError(t, os.Mkdir(root, 0o755))
	writeFile(t, parent, "secret.txt", "top secret")
	if err := os.Symlink(filepath.Join(parent, "secret.txt"), filepath.Join(root, "leak.txt")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	r := staticRouter(t, root)

	w := get(r, http.MethodGet, "/leak.txt", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStaticAdminPathsNeedAuthorization(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "admin.html", "admin")
	writeFile(t, dir, "admin.js", "admin()")
	r := staticRouter(t, dir)

	assert.Equal(t, http.StatusUnauthorized, get(r, http.MethodGet, "/admin.html", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, http.MethodGet, "/admin.js", nil).Code)

	w := get(r, http.MethodGet, "/admin.html", map[string]string{"X-Admin": "yes"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", w.Body.String())
}

func TestUnknownPostIsJSON404(t *testing.T) {
	r := staticRouter(t, t.TempDir())

	w := get(r, http.MethodPost, "/api/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())
}

func TestCORSHeadersOnResponses(t *testing.T) {
	r := staticRouter(t, t.TempDir())

	w := get(r, http.MethodGet, "/api/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Content-Type")
}

func TestCORSOptionsAnyPath(t *testing.T) {
	r := staticRouter(t, t.TempDir())

	for _, target := range []string{"/api/games", "/anything/else"} {
		w := get(r, http.MethodOptions, target, nil)
		assert.Equal(t, http.StatusNoContent, w.Code, target)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"), target)
		assert.Empty(t, w.Body.String(), target)
	}
}

func TestCORSPreflightWithOrigin(t *testing.T) {
	r := staticRouter(t, t.TempDir())

	w := get(r, http.MethodOptions, "/api/games", map[string]string{
		"Origin":                        "http://club.example.org",
		"Access-Control-Request-Method": http.MethodPost,
	})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestLoggerSetsIDAndLogs(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(RequestLogger(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := get(r, http.MethodGet, "/ok", nil)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	w = get(r, http.MethodGet, "/ok", map[string]string{RequestIDHeader: "abc-123"})
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "abc-123", entries[1].ContextMap()["request_id"])
	assert.EqualValues(t, http.StatusOK, entries[1].ContextMap()["status"])
}

func TestRecoveryReturns500(t *testing.T) {
	r := gin.New()
	r.Use(Recovery(zaptest.NewLogger(t)))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := get(r, http.MethodGet, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, w.Body.String())
}
