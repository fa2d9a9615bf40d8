package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"club-leaderboard-api/packages/core/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func TestRespondError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := zaptest.NewLogger(t).Sugar()

	cases := []struct {
		err  error
		code int
		body string
	}{
		{models.ErrPlayerNotFound, http.StatusNotFound, `{"error":"Player not found"}`},
		{fmt.Errorf("%w: %q", models.ErrDuplicateNickname, "AceHigh"), http.StatusBadRequest, `{"error":"nickname already exists: \"AceHigh\""}`},
		{fmt.Errorf("%w: nickname is required", models.ErrInvalidInput), http.StatusBadRequest, `{"error":"nickname is required"}`},
		{errors.New("disk I/O error"), http.StatusInternalServerError, `{"error":"Internal server error"}`},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/leaderboard", nil)

		respondError(c, logger, tc.err)

		assert.Equal(t, tc.code, w.Code, tc.err.Error())
		assert.JSONEq(t, tc.body, w.Body.String(), tc.err.Error())
	}
}
