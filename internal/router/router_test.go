package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/sports-session-scheduler/internal/config"
	"github.com/iliyamo/sports-session-scheduler/internal/database"
	"github.com/iliyamo/sports-session-scheduler/internal/handler"
	"github.com/iliyamo/sports-session-scheduler/internal/middleware"
	"github.com/iliyamo/sports-session-scheduler/internal/model"
	"github.com/iliyamo/sports-session-scheduler/internal/repository"
	"github.com/iliyamo/sports-session-scheduler/internal/service"
)

const secret = "router-test-secret"

// APISuite drives the full route table against SQLite and miniredis.
type APISuite struct {
	suite.Suite
	e  *echo.Echo
	mr *miniredis.Miniredis

	admin, creator, player string
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APISuite))
}

func (s *APISuite) SetupTest() {
	ctx := context.Background()
	db, err := database.OpenMemory("router_" + uuid.NewString())
	s.Require().NoError(err)
	s.T().Cleanup(func() { _ = db.Close() })
	s.Require().NoError(database.Migrate(ctx, db))

	s.mr = miniredis.RunT(s.T())
	rdb := redis.NewClient(&redis.Options{Addr: s.mr.Addr()})
	s.T().Cleanup(func() { _ = rdb.Close() })

	cfg := config.Config{
		JWTSecret:        secret,
		AccessTTLMin:     15,
		RefreshTTLDays:   7,
		BcryptCost:       bcrypt.MinCost,
		AllowAdminSignup: true,
	}
	opts := service.Options{
		Clock:    clockwork.NewFakeClockAt(time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)),
		Location: time.UTC,
		Metrics:  service.NewMetrics(prometheus.NewRegistry()),
		Log:      zerolog.Nop(),
	}
	queries := service.NewQueryService(db, opts)

	s.e = echo.New()
	s.e.Validator = handler.NewValidator()
	s.e.Use(middleware.RequestID())
	s.e.Use(middleware.Metrics())

	cache := middleware.NewRedisCache(config.CacheConfig{
		Enabled: true, TTL: time.Minute, KeyStrategy: "route_query", Prefix: "test:cache", MaxBodyBytes: 1 << 20,
	}, rdb, zerolog.Nop())

	RegisterRoutes(s.e, handler.Health(repository.NewStore(db)))
	RegisterAuth(s.e, handler.NewAuthHandler(cfg, repository.NewUserRepo(db), repository.NewTokenRepo(db), nil, zerolog.Nop()), secret)
	RegisterSessions(s.e, handler.NewSessionHandler(service.NewCapacityManager(db, opts), queries, zerolog.Nop()), secret)
	RegisterSports(s.e, handler.NewSportHandler(repository.NewSportRepo(db), zerolog.Nop()), secret)
	RegisterReports(s.e, handler.NewReportHandler(queries, zerolog.Nop()), secret, cache)

	s.admin = s.signup("admin@example.com", "Admin", model.RoleAdmin)
	s.creator = s.signup("carol@example.com", "Carol", model.RolePlayer)
	s.player = s.signup("pat@example.com", "Pat", model.RolePlayer)
}

func (s *APISuite) do(method, path, auth, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+auth)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *APISuite) decodeJSON(rec *httptest.ResponseRecorder, v interface{}) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func (s *APISuite) signup(email, name, role string) string {
	rec := s.do(http.MethodPost, "/api/auth/signup", "",
		`{"email":"`+email+`","password":"secret1","name":"`+name+`","role":"`+role+`"}`)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var out struct {
		Access struct {
			Token string `json:"token"`
		} `json:"access"`
	}
	s.decodeJSON(rec, &out)
	return out.Access.Token
}

func (s *APISuite) createSport() uint64 {
	rec := s.do(http.MethodPost, "/api/sports", s.admin, `{"name":"Football","description":"Eleven a side","max_players":22}`)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	var sp model.Sport
	s.decodeJSON(rec, &sp)
	return sp.ID
}

func (s *APISuite) createSession(sportID uint64, max int) uint64 {
	body := `{"sport_id":"` + strconv.FormatUint(sportID, 10) +
		`","title":"Sunday league","venue":"Park","date":"2030-07-01","time":"10:00","team_a":"Reds","team_b":"Blues","max_participants":` +
		strconv.Itoa(max) + `}`
	rec := s.do(http.MethodPost, "/api/sessions", s.creator, body)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	s.Contains(rec.Body.String(), `"participants":[]`)
	var sess model.Session
	s.decodeJSON(rec, &sess)
	return sess.ID
}

func (s *APISuite) TestOperationalEndpoints() {
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/api/health", "", "").Code)
	rec := s.do(http.MethodGet, "/metrics", "", "")
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "http_requests_total")
}

func (s *APISuite) TestRoleGating() {
	s.Equal(http.StatusUnauthorized, s.do(http.MethodGet, "/api/sessions", "", "").Code)
	s.Equal(http.StatusForbidden,
		s.do(http.MethodPost, "/api/sports", s.player, `{"name":"Golf","description":"Clubs","max_players":4}`).Code)
	s.Equal(http.StatusForbidden, s.do(http.MethodGet, "/api/reports/sport-popularity", s.player, "").Code)
	s.Equal(http.StatusForbidden, s.do(http.MethodGet, "/api/reports/sessions-by-date", s.player, "").Code)
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/api/reports/stats", s.player, "").Code)
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/api/reports/sport-popularity", s.admin, "").Code)
	s.Equal(http.StatusOK, s.do(http.MethodGet, "/api/sports", s.player, "").Code)

	rec := s.do(http.MethodGet, "/api/auth/me", s.admin, "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"role":"admin"`)
}

func (s *APISuite) TestSessionLifecycle() {
	id := s.createSession(s.createSport(), 1)
	path := "/api/sessions/" + strconv.FormatUint(id, 10)

	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, path+"/join", s.creator, "").Code, "self join")
	s.Equal(http.StatusOK, s.do(http.MethodPost, path+"/join", s.player, "").Code)
	s.Equal(http.StatusBadRequest, s.do(http.MethodPost, path+"/join", s.player, "").Code, "duplicate join")

	var parts []model.Participant
	rec := s.do(http.MethodGet, path+"/participants", s.creator, "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.decodeJSON(rec, &parts)
	s.Require().Len(parts, 1)
	s.Equal("Pat", parts[0].Name)

	var joined []model.Session
	rec = s.do(http.MethodGet, "/api/sessions/my-joined", s.player, "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.decodeJSON(rec, &joined)
	s.Require().Len(joined, 1)
	s.Equal(1, joined[0].CurrentParticipants)

	s.Equal(http.StatusNotFound,
		s.do(http.MethodPut, path+"/cancel", s.admin, `{"cancellation_reason":"storm"}`).Code, "cancel is creator only")
	s.Equal(http.StatusForbidden,
		s.do(http.MethodDelete, path, s.player, `{"deletion_reason":"spam"}`).Code)

	rec = s.do(http.MethodDelete, path+"/leave", s.player, "")
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"left":true`)

	rec = s.do(http.MethodPut, path+"/cancel", s.creator, `{"cancellation_reason":"storm"}`)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"status":"cancelled"`)
	s.Equal(http.StatusNotFound, s.do(http.MethodPost, path+"/join", s.player, "").Code, "cancelled sessions are not joinable")

	s.Equal(http.StatusOK, s.do(http.MethodDelete, path, s.admin, `{"deletion_reason":"cleanup"}`).Code)
	s.Equal(http.StatusNotFound, s.do(http.MethodDelete, path, s.admin, `{"deletion_reason":"cleanup"}`).Code)
}

func (s *APISuite) TestReportCache() {
	s.createSession(s.createSport(), 4)

	first := s.do(http.MethodGet, "/api/reports/stats?start_date=2030-01-01", s.player, "")
	s.Require().Equal(http.StatusOK, first.Code)
	s.Equal("MISS", first.Header().Get("X-Cache"))

	second := s.do(http.MethodGet, "/api/reports/stats?start_date=2030-01-01", s.admin, "")
	s.Require().Equal(http.StatusOK, second.Code)
	s.Equal("HIT", second.Header().Get("X-Cache"))
	s.JSONEq(first.Body.String(), second.Body.String())

	var st model.Stats
	s.decodeJSON(second, &st)
	s.Equal(1, st.TotalSessions)
	s.Equal(1, st.UpcomingSessions)

	bad := s.do(http.MethodGet, "/api/reports/stats?start_date=june", s.player, "")
	s.Equal(http.StatusBadRequest, bad.Code)
	s.Len(s.mr.Keys(), 1, "error responses are not cached")
}
