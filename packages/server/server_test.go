package server

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"club-leaderboard-api/packages/auth"
	"club-leaderboard-api/packages/core"
	"club-leaderboard-api/packages/core/metrics"
	"club-leaderboard-api/packages/core/models"
	"club-leaderboard-api/packages/testutil"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
)

const (
	adminUser = "admin"
	adminPass = "clubsecret"
)

type ServerSuite struct {
	suite.Suite
	router    *gin.Engine
	staticDir string
}

func TestServerSuite(t *testing.T) {
	gin.SetMode(gin.TestMode)
	suite.Run(t, new(ServerSuite))
}

func (s *ServerSuite) SetupTest() {
	db := testutil.OpenDB(s.T())
	logger := testutil.Logger(s.T())
	reg := prometheus.NewRegistry()

	s.staticDir = s.T().TempDir()
	s.Require().NoError(os.WriteFile(filepath.Join(s.staticDir, "index.html"), []byte("<h1>club</h1>"), 0o644))
	s.Require().NoError(os.WriteFile(filepath.Join(s.staticDir, "admin.html"), []byte("<h1>admin</h1>"), 0o644))

	s.router = NewRouter(RouterConfig{
		Core:      core.NewModule(db, logger, metrics.New(reg), core.Options{}),
		Auth:      auth.NewModule(adminUser, adminPass, logger),
		StaticDir: s.staticDir,
		Gatherer:  reg,
		Logger:    logger,
	})
}

type request struct {
	method string
	path   string
	body   string
	admin  bool
}

func (s *ServerSuite) do(r request) *httptest.ResponseRecorder {
	req := httptest.NewRequest(r.method, r.path, strings.NewReader(r.body))
	if r.body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.admin {
		req.SetBasicAuth(adminUser, adminPass)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *ServerSuite) decode(w *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func (s *ServerSuite) createPlayer(nickname string) uint {
	w := s.do(request{method: http.MethodPost, path: "/api/players", body: `{"nickname":"` + nickname + `"}`})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var resp models.CreatePlayerResponse
	s.decode(w, &resp)
	return resp.PlayerID
}

func playerPath(id uint, suffix string) string {
	return "/api/players/" + strconv.FormatUint(uint64(id), 10) + suffix
}

// Players

func (s *ServerSuite) TestCreatePlayer() {
	w := s.do(request{method: http.MethodPost, path: "/api/players", body: `{"nickname":"AceHigh","slogan":"All in","avatar_url":""}`})
	s.Equal(http.StatusCreated, w.Code)
	s.Equal("*", w.Header().Get("Access-Control-Allow-Origin"))

	var resp models.CreatePlayerResponse
	s.decode(w, &resp)
	s.NotZero(resp.PlayerID)
}

func (s *ServerSuite) TestCreatePlayerValidation() {
	w := s.do(request{method: http.MethodPost, path: "/api/players", body: `{"nickname":"   "}`})
	s.Equal(http.StatusBadRequest, w.Code)
	s.JSONEq(`{"error":"nickname is required"}`, w.Body.String())

	w = s.do(request{method: http.MethodPost, path: "/api/players"})
	s.Equal(http.StatusBadRequest, w.Code)

	w = s.do(request{method: http.MethodPost, path: "/api/players", body: `{"nickname":`})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(w.Body.String(), "Invalid JSON payload")
}

func (s *ServerSuite) TestCreatePlayerDuplicate() {
	s.createPlayer("AceHigh")

	w := s.do(request{method: http.MethodPost, path: "/api/players", body: `{"nickname":"AceHigh"}`})
	s.Equal(http.StatusBadRequest, w.Code)

	var resp map[string]string
	s.decode(w, &resp)
	s.Contains(resp["error"], "AceHigh")
}

func (s *ServerSuite) TestGetPlayerWithHistory() {
	id := s.createPlayer("RiverQueen")
	for _, body := range []string{`{"delta":50,"reason":"first"}`, `{"delta":"-20","reason":"second"}`} {
		w := s.do(request{method: http.MethodPost, path: playerPath(id, "/scores"), body: body})
		s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
		s.JSONEq(`{"status":"ok"}`, w.Body.String())
	}

	w := s.do(request{method: http.MethodGet, path: playerPath(id, "")})
	s.Require().Equal(http.StatusOK, w.Code)

	var resp models.PlayerDetailResponse
	s.decode(w, &resp)
	s.Equal("RiverQueen", resp.Player.Nickname)
	s.EqualValues(30, resp.Player.TotalPoints)
	s.EqualValues(2, resp.Player.FinalsPlayed)
	s.Require().Len(resp.History, 2)
	s.Equal("second", resp.History[0].Reason)
	s.EqualValues(-20, resp.History[0].Delta)
}

func (s *ServerSuite) TestGetPlayerNotFound() {
	for _, path := range []string{"/api/players/999", "/api/players/abc"} {
		w := s.do(request{method: http.MethodGet, path: path})
		s.Equal(http.StatusNotFound, w.Code, path)
		s.JSONEq(`{"error":"Player not found"}`, w.Body.String(), path)
	}
}

func (s *ServerSuite) TestRecordScoreErrors() {
	id := s.createPlayer("LuckyChip")

	w := s.do(request{method: http.MethodPost, path: "/api/players/abc/scores", body: `{"delta":5}`})
	s.Equal(http.StatusBadRequest, w.Code)
	s.JSONEq(`{"error":"Invalid player id"}`, w.Body.String())

	for _, body := range []string{`{"delta":"lots"}`, `{"reason":"no delta"}`, `{"delta":true}`} {
		w = s.do(request{method: http.MethodPost, path: playerPath(id, "/scores"), body: body})
		s.Equal(http.StatusBadRequest, w.Code, body)
		s.JSONEq(`{"error":"delta must be an integer"}`, w.Body.String(), body)
	}

	w = s.do(request{method: http.MethodPost, path: "/api/players/999/scores", body: `{"delta":5}`})
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *ServerSuite) TestRecordScoreOutOfRange() {
	id := s.createPlayer("Big")

	w := s.do(request{method: http.MethodPost, path: playerPath(id, "/scores"), body: `{"delta":9223372036854775807}`})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	for _, body := range []string{`{"delta":1}`, `{"delta":"1"}`} {
		w = s.do(request{method: http.MethodPost, path: playerPath(id, "/scores"), body: body})
		s.Equal(http.StatusBadRequest, w.Code, body)
		s.JSONEq(`{"error":"score total out of range"}`, w.Body.String(), body)
	}

	w = s.do(request{method: http.MethodGet, path: "/api/leaderboard"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var board models.LeaderboardResponse
	s.decode(w, &board)
	s.Require().Len(board.Players, 1)
	s.Equal(int64(math.MaxInt64), board.Players[0].TotalPoints)

	w = s.do(request{method: http.MethodGet, path: playerPath(id, "")})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var detail models.PlayerDetailResponse
	s.decode(w, &detail)
	s.Equal(int64(math.MaxInt64), detail.Player.TotalPoints)
	s.Len(detail.History, 1)

	w = s.do(request{method: http.MethodPost, path: "/api/games", body: `{"placements":[{"nickname":"Big","rank":1},{"nickname":"Small","rank":2}]}`, admin: true})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var result models.GameResult
	s.decode(w, &result)
	s.Equal([]string{"Small (+150)"}, result.Applied)
	s.Equal([]string{"Points out of range for Big"}, result.Errors)
}

// Leaderboard

func (s *ServerSuite) TestLeaderboard() {
	low := s.createPlayer("Low")
	high := s.createPlayer("High")
	s.do(request{method: http.MethodPost, path: playerPath(low, "/scores"), body: `{"delta":10}`})
	s.do(request{method: http.MethodPost, path: playerPath(high, "/scores"), body: `{"delta":100}`})

	w := s.do(request{method: http.MethodGet, path: "/api/leaderboard"})
	s.Require().Equal(http.StatusOK, w.Code)

	var resp models.LeaderboardResponse
	s.decode(w, &resp)
	s.Require().Len(resp.Players, 2)
	s.Equal("High", resp.Players[0].Nickname)
	s.Equal("Low", resp.Players[1].Nickname)

	w = s.do(request{method: http.MethodGet, path: "/api/leaderboard?limit=1"})
	s.decode(w, &resp)
	s.Len(resp.Players, 1)
}

func (s *ServerSuite) TestLeaderboardBadLimit() {
	w := s.do(request{method: http.MethodGet, path: "/api/leaderboard?limit=ten"})
	s.Equal(http.StatusBadRequest, w.Code)
	s.JSONEq(`{"error":"limit must be an integer"}`, w.Body.String())

	w = s.do(request{method: http.MethodGet, path: "/api/leaderboard?limit=0"})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *ServerSuite) TestLeaderboardEmpty() {
	w := s.do(request{method: http.MethodGet, path: "/api/leaderboard"})
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"players":[]}`, w.Body.String())
}

// Profile updates

func (s *ServerSuite) TestUpdateProfileRequiresAdmin() {
	id := s.createPlayer("SilentShark")

	w := s.do(request{method: http.MethodPost, path: playerPath(id, "/profile"), body: `{"slogan":"Quiet"}`})
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal(`Basic realm="TexasHoldemClub"`, w.Header().Get("WWW-Authenticate"))
}

func (s *ServerSuite) TestUpdateProfile() {
	id := s.createPlayer("SilentShark")

	w := s.do(request{method: http.MethodPost, path: playerPath(id, "/profile"), body: `{"nickname":"LoudShark","slogan":"Roar"}`, admin: true})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.JSONEq(`{"status":"updated"}`, w.Body.String())

	w = s.do(request{method: http.MethodGet, path: playerPath(id, "")})
	var resp models.PlayerDetailResponse
	s.decode(w, &resp)
	s.Equal("LoudShark", resp.Player.Nickname)
	s.Equal("Roar", resp.Player.Slogan)
}

func (s *ServerSuite) TestUpdateProfileErrors() {
	id := s.createPlayer("SilentShark")
	s.createPlayer("AceHigh")

	cases := []struct {
		path string
		body string
		code int
	}{
		{playerPath(id, "/profile"), `{}`, http.StatusBadRequest},
		{playerPath(id, "/profile"), `{"nickname":"  "}`, http.StatusBadRequest},
		{playerPath(id, "/profile"), `{"nickname":"AceHigh"}`, http.StatusBadRequest},
		{"/api/players/999/profile", `{"slogan":"x"}`, http.StatusNotFound},
		{"/api/players/abc/profile", `{"slogan":"x"}`, http.StatusBadRequest},
	}
	for _, tc := range cases {
		w := s.do(request{method: http.MethodPost, path: tc.path, body: tc.body, admin: true})
		s.Equal(tc.code, w.Code, tc.body)
	}

	w := s.do(request{method: http.MethodPost, path: playerPath(id, "/profile"), body: `{}`, admin: true})
	s.JSONEq(`{"error":"No fields to update"}`, w.Body.String())
	w = s.do(request{method: http.MethodPost, path: playerPath(id, "/profile"), body: `{"nickname":""}`, admin: true})
	s.JSONEq(`{"error":"nickname cannot be empty"}`, w.Body.String())
}

// Games

func (s *ServerSuite) TestSubmitGame() {
	s.createPlayer("AceHigh")

	body := `{"label":"Friday final","placements":[
		{"nickname":"AceHigh","rank":1},
		{"nickname":"NewFish","rank":"2","notes":"First visit"},
		{"nickname":"Ghost","rank":42},
		{"rank":3}
	]}`
	w := s.do(request{method: http.MethodPost, path: "/api/games", body: body, admin: true})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var result models.GameResult
	s.decode(w, &result)
	s.Equal([]string{"AceHigh (+200)", "NewFish (+150)"}, result.Applied)
	s.Equal([]string{"No point mapping for rank 42 (Ghost)", "Missing nickname in placement entry"}, result.Errors)

	w = s.do(request{method: http.MethodGet, path: "/api/leaderboard"})
	var board models.LeaderboardResponse
	s.decode(w, &board)
	s.Require().Len(board.Players, 2)
	s.Equal("AceHigh", board.Players[0].Nickname)
	s.Equal("NewFish", board.Players[1].Nickname)
	s.Equal("First visit", board.Players[1].Slogan)
}

func (s *ServerSuite) TestSubmitGameMixedFieldTypes() {
	body := `{"placements":[
		{"nickname":"Good","rank":1},
		{"nickname":42,"rank":2},
		{"nickname":true,"rank":3},
		{"nickname":"Odd","rank":3,"slogan":{"text":"hi"}}
	]}`
	w := s.do(request{method: http.MethodPost, path: "/api/games", body: body, admin: true})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var result models.GameResult
	s.decode(w, &result)
	s.Equal([]string{"Good (+200)", "42 (+150)"}, result.Applied)
	s.Equal([]string{"Invalid nickname in placement entry", "Invalid slogan for Odd"}, result.Errors)

	w = s.do(request{method: http.MethodGet, path: "/api/leaderboard"})
	var board models.LeaderboardResponse
	s.decode(w, &board)
	s.Require().Len(board.Players, 2)
	s.Equal("Good", board.Players[0].Nickname)
	s.Equal("42", board.Players[1].Nickname)
}

func (s *ServerSuite) TestSubmitGameNothingApplied() {
	w := s.do(request{method: http.MethodPost, path: "/api/games", body: `{"placements":[{"nickname":"A","rank":"first"}]}`, admin: true})
	s.Equal(http.StatusBadRequest, w.Code)

	var result models.GameResult
	s.decode(w, &result)
	s.Empty(result.Applied)
	s.Equal([]string{"Invalid rank for A"}, result.Errors)
}

func (s *ServerSuite) TestSubmitGameValidation() {
	for _, body := range []string{`{}`, `{"placements":[]}`} {
		w := s.do(request{method: http.MethodPost, path: "/api/games", body: body, admin: true})
		s.Equal(http.StatusBadRequest, w.Code, body)
		s.JSONEq(`{"error":"placements must be a non-empty list"}`, w.Body.String())
	}

	w := s.do(request{method: http.MethodPost, path: "/api/games", body: `{"placements":[{"nickname":"A","rank":1}]}`})
	s.Equal(http.StatusUnauthorized, w.Code)
}

// Admin and ops

func (s *ServerSuite) TestAuditAndStats() {
	id := s.createPlayer("AceHigh")
	s.do(request{method: http.MethodPost, path: playerPath(id, "/scores"), body: `{"delta":10}`})

	w := s.do(request{method: http.MethodGet, path: "/api/admin/audit"})
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.do(request{method: http.MethodGet, path: "/api/admin/audit", admin: true})
	s.Require().Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"drift":[]}`, w.Body.String())

	w = s.do(request{method: http.MethodGet, path: "/api/stats"})
	s.Require().Equal(http.StatusOK, w.Code)
	var stats models.Stats
	s.decode(w, &stats)
	s.EqualValues(1, stats.TotalPlayers)
	s.EqualValues(1, stats.TotalScoreEvents)
}

func (s *ServerSuite) TestHealthAndMetrics() {
	w := s.do(request{method: http.MethodGet, path: "/health"})
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"status":"ok"}`, w.Body.String())

	s.createPlayer("AceHigh")
	w = s.do(request{method: http.MethodGet, path: "/metrics"})
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "leaderboard_players_created_total 1")
}

func (s *ServerSuite) TestOptionsPreflight() {
	w := s.do(request{method: http.MethodOptions, path: "/api/games"})
	s.Equal(http.StatusNoContent, w.Code)
	s.Equal("*", w.Header().Get("Access-Control-Allow-Origin"))
	s.Contains(w.Header().Get("Access-Control-Allow-Headers"), "Content-Type")
}

func (s *ServerSuite) TestStaticFrontend() {
	w := s.do(request{method: http.MethodGet, path: "/"})
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "club")

	w = s.do(request{method: http.MethodGet, path: "/admin.html"})
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.do(request{method: http.MethodGet, path: "/admin.html", admin: true})
	s.Equal(http.StatusOK, w.Code)

	w = s.do(request{method: http.MethodGet, path: "/missing.css"})
	s.Equal(http.StatusNotFound, w.Code)
}
