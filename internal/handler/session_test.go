package handler

import (
    "context"
    "errors"
    "fmt"
    "net/http"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/rs/zerolog"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
    "go.uber.org/mock/gomock"

    "github.com/iliyamo/sports-session-scheduler/internal/handler/mocks"
    "github.com/iliyamo/sports-session-scheduler/internal/model"
    "github.com/iliyamo/sports-session-scheduler/internal/service"
)

type sessionFixture struct {
    e       *echo.Echo
    cmd     *mocks.MockSessionCommands
    queries *mocks.MockSessionQueries
    player  model.Caller
    auth    string
}

func newSessionFixture(t *testing.T) *sessionFixture {
    ctrl := gomock.NewController(t)
    f := &sessionFixture{
        e:       newEcho(),
        cmd:     mocks.NewMockSessionCommands(ctrl),
        queries: mocks.NewMockSessionQueries(ctrl),
        player:  model.Caller{ID: 7, Role: model.RolePlayer},
    }
    f.auth = bearer(t, f.player.ID, f.player.Role)

    h := NewSessionHandler(f.cmd, f.queries, zerolog.Nop())
    g := f.e.Group("/api/sessions", authed())
    g.GET("", h.List)
    g.POST("", h.Create)
    g.GET("/my-created", h.MyCreated)
    g.GET("/my-joined", h.MyJoined)
    g.POST("/:id/join", h.Join)
    g.DELETE("/:id/leave", h.Leave)
    g.PUT("/:id/cancel", h.Cancel)
    g.DELETE("/:id", h.Delete)
    g.GET("/:id/participants", h.Participants)

    r := NewReportHandler(f.queries, zerolog.Nop())
    rg := f.e.Group("/api/reports", authed())
    rg.GET("/stats", r.Stats)
    rg.GET("/sport-popularity", r.SportPopularity)
    rg.GET("/sessions-by-date", r.SessionsByDate)
    return f
}

func TestJoinStatusMapping(t *testing.T) {
    cases := []struct {
        name   string
        err    error
        status int
        msg    string
    }{
        {"ok", nil, http.StatusOK, ""},
        {"not joinable", service.ErrSessionNotJoinable, http.StatusNotFound, service.ErrSessionNotJoinable.Error()},
        {"self join", service.ErrSelfJoin, http.StatusBadRequest, "you cannot join your own session"},
        {"full", service.ErrSessionFull, http.StatusBadRequest, "session is full"},
        {"duplicate", service.ErrAlreadyJoined, http.StatusBadRequest, "already joined this session"},
        {"store failure", errors.New("connection refused"), http.StatusInternalServerError, "internal server error"},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            f := newSessionFixture(t)
            f.cmd.EXPECT().Join(gomock.Any(), uint64(42), f.player).Return(tc.err)

            rec := call(f.e, http.MethodPost, "/api/sessions/42/join", f.auth, "")
            assert.Equal(t, tc.status, rec.Code)
            body := decode(t, rec)
            if tc.err == nil {
                assert.Equal(t, "successfully joined the session", body["message"])
            } else {
                assert.Equal(t, tc.msg, body["error"])
            }
        })
    }
}

func TestMalformedSessionID(t *testing.T) {
    f := newSessionFixture(t)
    // No expectations: the service must not be reached.
    for _, path := range []string{"/api/sessions/abc/join", "/api/sessions/0/join", "/api/sessions/-3/join"} {
        rec := call(f.e, http.MethodPost, path, f.auth, "")
        assert.Equal(t, http.StatusBadRequest, rec.Code, path)
    }
    assert.Equal(t, http.StatusBadRequest, call(f.e, http.MethodDelete, "/api/sessions/x", f.auth, "").Code)
    assert.Equal(t, http.StatusBadRequest, call(f.e, http.MethodGet, "/api/sessions/x/participants", f.auth, "").Code)
}

func TestUnauthenticatedSessionRequest(t *testing.T) {
    f := newSessionFixture(t)
    assert.Equal(t, http.StatusUnauthorized, call(f.e, http.MethodPost, "/api/sessions/1/join", "", "").Code)
}

func TestLeaveReportsWhetherAMembershipWasRemoved(t *testing.T) {
    f := newSessionFixture(t)
    gomock.InOrder(
        f.cmd.EXPECT().Leave(gomock.Any(), uint64(3), f.player).Return(true, nil),
        f.cmd.EXPECT().Leave(gomock.Any(), uint64(3), f.player).Return(false, nil),
    )

    rec := call(f.e, http.MethodDelete, "/api/sessions/3/leave", f.auth, "")
    require.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, true, decode(t, rec)["left"])

    rec = call(f.e, http.MethodDelete, "/api/sessions/3/leave", f.auth, "")
    require.Equal(t, http.StatusOK, rec.Code)
    body := decode(t, rec)
    assert.Equal(t, false, body["left"])
    assert.NotEmpty(t, body["message"])
}

func TestCancelPassesReasonAndMapsErrors(t *testing.T) {
    f := newSessionFixture(t)
    reason := "rain"
    f.cmd.EXPECT().Cancel(gomock.Any(), uint64(5), f.player, "rain").
        Return(&model.Session{ID: 5, Status: model.SessionCancelled, CancellationReason: &reason}, nil)
    f.cmd.EXPECT().Cancel(gomock.Any(), uint64(5), f.player, "").Return(nil, service.ErrCancelReason)
    f.cmd.EXPECT().Cancel(gomock.Any(), uint64(6), f.player, "late").Return(nil, service.ErrCancelNotFound)

    rec := call(f.e, http.MethodPut, "/api/sessions/5/cancel", f.auth, `{"cancellation_reason":"rain"}`)
    require.Equal(t, http.StatusOK, rec.Code)
    body := decode(t, rec)
    assert.Equal(t, model.SessionCancelled, body["status"])
    assert.Equal(t, "rain", body["cancellation_reason"])

    rec = call(f.e, http.MethodPut, "/api/sessions/5/cancel", f.auth, `{}`)
    assert.Equal(t, http.StatusBadRequest, rec.Code)
    assert.Equal(t, "cancellation reason is required", decode(t, rec)["error"])

    rec = call(f.e, http.MethodPut, "/api/sessions/6/cancel", f.auth, `{"cancellation_reason":"late"}`)
    assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteStatusMapping(t *testing.T) {
    f := newSessionFixture(t)
    f.cmd.EXPECT().Delete(gomock.Any(), uint64(1), f.player, "duplicate entry").Return(nil)
    f.cmd.EXPECT().Delete(gomock.Any(), uint64(2), f.player, "").Return(service.ErrDeleteReason)
    f.cmd.EXPECT().Delete(gomock.Any(), uint64(3), f.player, "x").Return(service.ErrSessionNotFound)
    f.cmd.EXPECT().Delete(gomock.Any(), uint64(4), f.player, "x").Return(service.ErrDeleteNotAuthorized)

    rec := call(f.e, http.MethodDelete, "/api/sessions/1", f.auth, `{"deletion_reason":"duplicate entry"}`)
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, "session deleted", decode(t, rec)["message"])

    assert.Equal(t, http.StatusBadRequest, call(f.e, http.MethodDelete, "/api/sessions/2", f.auth, "").Code)
    assert.Equal(t, http.StatusNotFound, call(f.e, http.MethodDelete, "/api/sessions/3", f.auth, `{"deletion_reason":"x"}`).Code)

    rec = call(f.e, http.MethodDelete, "/api/sessions/4", f.auth, `{"deletion_reason":"x"}`)
    assert.Equal(t, http.StatusForbidden, rec.Code)
    assert.Equal(t, "not authorized to delete this session", decode(t, rec)["error"])
}

func TestCreateSession(t *testing.T) {
    f := newSessionFixture(t)
    f.cmd.EXPECT().Create(gomock.Any(), gomock.Any(), f.player).
        DoAndReturn(func(_ context.Context, in service.CreateSessionInput, caller model.Caller) (*model.Session, error) {
            assert.EqualValues(t, 2, in.SportID)
            assert.Equal(t, "Friday hoops", in.Title)
            assert.EqualValues(t, 8, in.MaxParticipants)
            return &model.Session{ID: 11, SportID: uint64(in.SportID), Title: in.Title, CreatedBy: caller.ID,
                MaxParticipants: int(in.MaxParticipants), Status: model.SessionActive}, nil
        })
    f.cmd.EXPECT().Create(gomock.Any(), gomock.Any(), f.player).Return(nil, service.ErrMissingFields)

    rec := call(f.e, http.MethodPost, "/api/sessions", f.auth,
        `{"sport_id":2,"title":"Friday hoops","venue":"Gym","date":"2030-07-01","time":"18:00","team_a":"A","team_b":"B","max_participants":8}`)
    require.Equal(t, http.StatusCreated, rec.Code)
    body := decode(t, rec)
    assert.EqualValues(t, 11, body["id"])
    assert.EqualValues(t, 0, body["current_participants"])

    // whitespace passes the tags but not the trimmed check in the service
    rec = call(f.e, http.MethodPost, "/api/sessions", f.auth,
        `{"sport_id":2,"title":"  ","venue":"Gym","date":"2030-07-01","time":"18:00","team_a":"A","team_b":"B","max_participants":8}`)
    assert.Equal(t, http.StatusBadRequest, rec.Code)
    assert.Equal(t, "all required fields must be provided", decode(t, rec)["error"])

    assert.Equal(t, http.StatusBadRequest, call(f.e, http.MethodPost, "/api/sessions", f.auth, `{"title":`).Code)
}

func TestCreateSessionValidatesBody(t *testing.T) {
    f := newSessionFixture(t)

    cases := []struct {
        body string
        want string
    }{
        {`{"title":"half"}`, "sport_id is required"},
        {`{"sport_id":"x","title":"t","venue":"v","date":"2030-07-01","time":"18:00","team_a":"A","team_b":"B","max_participants":8}`, "invalid body"},
        {`{"sport_id":2,"title":"t","venue":"v","date":"2030-07-01","time":"18:00","team_a":"A","team_b":"B","max_participants":-1}`, "max_participants must be at least 1"},
        {`{"sport_id":2,"title":"t","venue":"v","date":"2030-07-01","time":"18:00","team_a":"A","team_b":"","max_participants":3}`, "team_b is required"},
    }
    for _, tc := range cases {
        rec := call(f.e, http.MethodPost, "/api/sessions", f.auth, tc.body)
        require.Equal(t, http.StatusBadRequest, rec.Code, tc.body)
        assert.Equal(t, tc.want, decode(t, rec)["error"], tc.body)
    }
}

func TestCreateSessionAcceptsStringNumbers(t *testing.T) {
    f := newSessionFixture(t)
    f.cmd.EXPECT().Create(gomock.Any(), gomock.Any(), f.player).
        DoAndReturn(func(_ context.Context, in service.CreateSessionInput, caller model.Caller) (*model.Session, error) {
            return &model.Session{ID: 12, SportID: uint64(in.SportID), Title: in.Title, CreatedBy: caller.ID,
                MaxParticipants: int(in.MaxParticipants), Status: model.SessionActive}, nil
        })

    // the web client posts <select> and <input type=number> values as strings
    rec := call(f.e, http.MethodPost, "/api/sessions", f.auth,
        `{"sport_id":"3","title":"Pickup","venue":"Court 2","date":"2030-07-01","time":"18:00","team_a":"A","team_b":"B","max_participants":"10"}`)
    require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
    body := decode(t, rec)
    assert.EqualValues(t, 3, body["sport_id"])
    assert.EqualValues(t, 10, body["max_participants"])
}

func TestListingsRenderEmptyArrays(t *testing.T) {
    f := newSessionFixture(t)
    f.queries.EXPECT().ListSessions(gomock.Any()).Return(nil, nil)
    f.queries.EXPECT().ListCreatedBy(gomock.Any(), f.player.ID).Return([]*model.Session{{ID: 1, Title: "Mine"}}, nil)
    f.queries.EXPECT().ListJoinedBy(gomock.Any(), f.player.ID).Return(nil, nil)
    f.queries.EXPECT().ListParticipants(gomock.Any(), uint64(9)).Return(nil, nil)

    for _, path := range []string{"/api/sessions", "/api/sessions/my-joined", "/api/sessions/9/participants"} {
        rec := call(f.e, http.MethodGet, path, f.auth, "")
        require.Equal(t, http.StatusOK, rec.Code, path)
        assert.JSONEq(t, `[]`, rec.Body.String(), path)
    }
    rec := call(f.e, http.MethodGet, "/api/sessions/my-created", f.auth, "")
    require.Equal(t, http.StatusOK, rec.Code)
    assert.Contains(t, rec.Body.String(), `"title":"Mine"`)
}

func TestReportsValidateDateRange(t *testing.T) {
    f := newSessionFixture(t)
    f.queries.EXPECT().Stats(gomock.Any(), model.DateRange{From: "2030-01-01", To: "2030-12-31"}).
        Return(model.Stats{TotalSessions: 3, TotalSports: 2}, nil)
    f.queries.EXPECT().SportPopularity(gomock.Any(), model.DateRange{}).
        Return([]model.SportPopularity{{SportID: 1, Name: "Tennis", Count: 4}}, nil)
    f.queries.EXPECT().SessionsByDate(gomock.Any(), model.DateRange{From: "2030-01-01"}).Return(nil, nil)

    rec := call(f.e, http.MethodGet, "/api/reports/stats?start_date=2030-01-01&end_date=2030-12-31", f.auth, "")
    require.Equal(t, http.StatusOK, rec.Code)
    body := decode(t, rec)
    assert.EqualValues(t, 3, body["total_sessions"])
    assert.EqualValues(t, 2, body["total_sports"])

    rec = call(f.e, http.MethodGet, "/api/reports/sport-popularity", f.auth, "")
    require.Equal(t, http.StatusOK, rec.Code)
    assert.Contains(t, rec.Body.String(), `"count":4`)

    rec = call(f.e, http.MethodGet, "/api/reports/sessions-by-date?start_date=2030-01-01", f.auth, "")
    require.Equal(t, http.StatusOK, rec.Code)
    assert.JSONEq(t, `[]`, rec.Body.String())

    for _, q := range []string{"?start_date=01-01-2030", "?end_date=2030-13-01", "?start_date=yesterday"} {
        rec := call(f.e, http.MethodGet, "/api/reports/stats"+q, f.auth, "")
        assert.Equal(t, http.StatusBadRequest, rec.Code, q)
    }
}

func TestStatusOf(t *testing.T) {
    cases := map[error]int{
        service.ErrSessionNotJoinable:  http.StatusNotFound,
        service.ErrCancelNotFound:      http.StatusNotFound,
        service.ErrDeleteNotAuthorized: http.StatusForbidden,
        service.ErrSelfJoin:            http.StatusBadRequest,
        service.ErrSessionFull:         http.StatusBadRequest,
        service.ErrAlreadyJoined:       http.StatusBadRequest,
        service.ErrUnknownSport:        http.StatusBadRequest,
    }
    for err, want := range cases {
        got, ok := statusOf(fmt.Errorf("join 4: %w", err))
        assert.True(t, ok, err.Error())
        assert.Equal(t, want, got, err.Error())
    }
    _, ok := statusOf(errors.New("deadlock found"))
    assert.False(t, ok)
}
