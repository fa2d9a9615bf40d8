package auth

import (
	"club-leaderboard-api/packages/auth/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Module struct {
	Basic *middleware.BasicAuth
}

func NewModule(username, password string, logger *zap.Logger) *Module {
	return &Module{
		Basic: middleware.NewBasicAuth(username, password, logger.Sugar().Named("auth")),
	}
}

// RequireAdmin returns the middleware that guards admin routes.
func (m *Module) RequireAdmin() gin.HandlerFunc {
	return m.Basic.Middleware()
}

// Authorize checks admin credentials outside a route chain, e.g. for
// protected static files.
func (m *Module) Authorize(c *gin.Context) bool {
	return m.Basic.Authorize(c)
}

func GetAdminUser(c *gin.Context) (string, bool) {
	return middleware.GetAdminUser(c)
}
