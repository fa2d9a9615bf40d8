package middleware

import (
	"crypto/subtle"
	"net/http"

	"club-leaderboard-api/packages/auth/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	Realm = "TexasHoldemClub"

	adminUserKey = "admin_user"
)

// BasicAuth guards admin resources with HTTP Basic credentials. The password
// may be stored as a bcrypt hash. An empty password disables the check.
type BasicAuth struct {
	username string
	password string
	hashed   bool
	logger   *zap.SugaredLogger
}

func NewBasicAuth(username, password string, logger *zap.SugaredLogger) *BasicAuth {
	return &BasicAuth{
		username: username,
		password: password,
		hashed:   utils.IsPasswordHash(password),
		logger:   logger,
	}
}

func (a *BasicAuth) Enabled() bool {
	return a.password != ""
}

// Authorize checks the request credentials. On failure it writes the 401
// challenge, aborts the context and returns false.
func (a *BasicAuth) Authorize(c *gin.Context) bool {
	if !a.Enabled() {
		return true
	}

	username, password, ok := c.Request.BasicAuth()
	if !ok || !a.valid(username, password) {
		if ok {
			a.logger.Warnw("admin authentication failed",
				"username", username,
				"path", c.Request.URL.Path,
				"client_ip", c.ClientIP(),
			)
		}
		c.Header("WWW-Authenticate", `Basic realm="`+Realm+`"`)
		c.Abort()
		c.String(http.StatusUnauthorized, "Authentication required")
		return false
	}

	c.Set(adminUserKey, username)
	return true
}

// Middleware wraps Authorize for use in a gin route chain.
func (a *BasicAuth) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.Authorize(c) {
			return
		}
		c.Next()
	}
}

func (a *BasicAuth) valid(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1

	var passOK bool
	if a.hashed {
		passOK = utils.CheckPassword(password, a.password)
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	}
	return userOK && passOK
}

// GetAdminUser returns the authenticated admin username, if any.
func GetAdminUser(c *gin.Context) (string, bool) {
	v, ok := c.Get(adminUserKey)
	if !ok {
		return "", false
	}
	username, ok := v.(string)
	return username, ok
}
