package handler

import (
    "context"
    "net/http"
    "strconv"
    "testing"

    "github.com/rs/zerolog"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/sports-session-scheduler/internal/model"
    "github.com/iliyamo/sports-session-scheduler/internal/repository"
)

func TestSportCatalogue(t *testing.T) {
    db := openTestDB(t)
    ctx := context.Background()
    users := repository.NewUserRepo(db)
    adminID, err := users.Create(ctx, "admin@example.com", "hash", "Admin", model.RoleAdmin)
    require.NoError(t, err)
    otherID, err := users.Create(ctx, "other@example.com", "hash", "Other", model.RoleAdmin)
    require.NoError(t, err)

    e := newEcho()
    h := NewSportHandler(repository.NewSportRepo(db), zerolog.Nop())
    g := e.Group("/api/sports", authed())
    g.GET("", h.List)
    g.POST("", h.Create)
    g.PUT("/:id", h.Update)

    admin := bearer(t, adminID, model.RoleAdmin)
    other := bearer(t, otherID, model.RoleAdmin)

    rec := call(e, http.MethodPost, "/api/sports", admin, `{"name":"Tennis","description":"Racket sport","max_players":4}`)
    require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
    created := decode(t, rec)
    assert.Equal(t, "Tennis", created["name"])
    assert.EqualValues(t, adminID, created["created_by"])

    rec = call(e, http.MethodPost, "/api/sports", other, `{"name":"Tennis","description":"Again","max_players":2}`)
    assert.Equal(t, http.StatusBadRequest, rec.Code)
    assert.Equal(t, "sport name already exists", decode(t, rec)["error"])

    rec = call(e, http.MethodPost, "/api/sports", other, `{"name":"Squash","description":"Walls","max_players":0}`)
    assert.Equal(t, http.StatusBadRequest, rec.Code)
    rec = call(e, http.MethodPost, "/api/sports", other, `{"name":"Squash","description":"Walls","max_players":2}`)
    require.Equal(t, http.StatusCreated, rec.Code)

    rec = call(e, http.MethodGet, "/api/sports", admin, "")
    require.Equal(t, http.StatusOK, rec.Code)
    assert.Contains(t, rec.Body.String(), "Squash")
    assert.Contains(t, rec.Body.String(), "Tennis")

    rec = call(e, http.MethodGet, "/api/sports?created_by=me", admin, "")
    require.Equal(t, http.StatusOK, rec.Code)
    assert.Contains(t, rec.Body.String(), "Tennis")
    assert.NotContains(t, rec.Body.String(), "Squash")

    id := uint64(created["id"].(float64))
    rec = call(e, http.MethodPut, "/api/sports/"+strconv.FormatUint(id, 10), admin, `{"name":"Lawn Tennis","description":"Grass","max_players":4}`)
    require.Equal(t, http.StatusOK, rec.Code)
    assert.Equal(t, "Lawn Tennis", decode(t, rec)["name"])

    rec = call(e, http.MethodPut, "/api/sports/"+strconv.FormatUint(id, 10), admin, `{"name":"Squash","description":"Clash","max_players":4}`)
    assert.Equal(t, http.StatusBadRequest, rec.Code)

    rec = call(e, http.MethodPut, "/api/sports/9999", admin, `{"name":"Ghost","description":"None","max_players":1}`)
    assert.Equal(t, http.StatusNotFound, rec.Code)
    assert.Equal(t, http.StatusBadRequest, call(e, http.MethodPut, "/api/sports/abc", admin, `{}`).Code)
}
