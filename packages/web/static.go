package web

import (
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminPaths are static files only admins may fetch.
var AdminPaths = []string{"/admin.html", "/admin.js"}

// Static serves files below a root directory for requests no API route
// matched.
type Static struct {
	root      string
	authorize func(*gin.Context) bool
	protected map[string]bool
	logger    *zap.SugaredLogger
}

// NewStatic serves files from root. authorize guards AdminPaths; it must
// write its own rejection.
func NewStatic(root string, authorize func(*gin.Context) bool, logger *zap.SugaredLogger) *Static {
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	} else {
		logger.Warnw("static directory not found", "dir", root, "error", err)
	}

	protected := make(map[string]bool, len(AdminPaths))
	for _, p := range AdminPaths {
		protected[p] = true
	}

	return &Static{
		root:      root,
		authorize: authorize,
		protected: protected,
		logger:    logger,
	}
}

// Handle is meant for gin's NoRoute.
func (s *Static) Handle(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}

	urlPath := path.Clean("/" + c.Request.URL.Path)
	if s.protected[urlPath] && s.authorize != nil && !s.authorize(c) {
		return
	}

	file, ok := s.resolve(urlPath)
	if !ok {
		c.String(http.StatusNotFound, "Not found")
		return
	}

	f, err := os.Open(file)
	if err != nil {
		c.String(http.StatusNotFound, "Not found")
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		c.String(http.StatusNotFound, "Not found")
		return
	}

	contentType := mime.TypeByExtension(filepath.Ext(file))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), f)
}

// resolve maps a cleaned URL path to a regular file inside root. Symlinks are
// followed and must still land inside root.
func (s *Static) resolve(urlPath string) (string, bool) {
	rel := strings.TrimPrefix(urlPath, "/")
	if rel == "" {
		rel = "index.html"
	}

	resolved, err := filepath.EvalSymlinks(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil {
		return "", false
	}
	if resolved != s.root && !strings.HasPrefix(resolved, s.root+string(filepath.Separator)) {
		s.logger.Warnw("static path escapes root", "path", urlPath)
		return "", false
	}

	info, err := os.Stat(resolved)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return resolved, true
}
