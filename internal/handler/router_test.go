package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/delve/internal/database"
	"github.com/forgo/delve/internal/middleware"
	"github.com/forgo/delve/internal/model"
	"github.com/forgo/delve/internal/service"
	"github.com/forgo/delve/internal/testing/helpers"
	"github.com/forgo/delve/internal/testing/memstore"
)

const testAdminToken = "test-admin-token-0123456789"

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type testAPI struct {
	store   *memstore.Store
	handler http.Handler
}

func newTestAPI(t *testing.T, opts ...func(*RouterConfig)) *testAPI {
	t.Helper()

	store := memstore.New()
	clock := func() time.Time { return time.Date(2024, 3, 14, 9, 0, 0, 0, time.UTC) }
	cfg := RouterConfig{
		Query: service.NewQueryService(service.QueryServiceConfig{
			RoomRepo:    store.Rooms(),
			MonsterRepo: store.Monsters(),
			LootRepo:    store.LootItems(),
			UserRepo:    store.Users(),
		}),
		Mutation: service.NewMutationService(service.MutationServiceConfig{
			RoomRepo:    store.Rooms(),
			MonsterRepo: store.Monsters(),
			LootRepo:    store.LootItems(),
			UserRepo:    store.Users(),
			IDs:         store.Counters(),
			Graph:       store.Graph(),
			Now:         clock,
		}),
		Integrity:      service.NewIntegrityService(service.IntegrityServiceConfig{Graph: store.Graph(), Now: clock}),
		DB:             stubPinger{},
		AdminToken:     testAdminToken,
		AllowedOrigins: []string{"http://localhost:3000"},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &testAPI{store: store, handler: NewRouter(cfg)}
}

func (a *testAPI) createRoom(t *testing.T, name string, connected ...int) int {
	t.Helper()
	if connected == nil {
		connected = []int{}
	}
	rr := helpers.NewRequest(t, http.MethodPost, "/v1/rooms").
		WithBody(model.CreateRoomRequest{
			DungeonID:      1,
			DungeonName:    "Crypt",
			RoomName:       name,
			RoomsConnected: connected,
		}).
		Do(a.handler)
	helpers.AssertStatus(t, rr, http.StatusCreated)

	var status model.Status
	helpers.DecodeResponse(t, rr, &status)
	require.NotNil(t, status.ID)
	return *status.ID
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)
	rr := helpers.NewRequest(t, http.MethodGet, "/health").Do(api.handler)
	helpers.AssertStatus(t, rr, http.StatusOK)
	helpers.AssertJSONContains(t, rr, map[string]interface{}{"status": "healthy"})
}

func TestHealth_DatabaseDown(t *testing.T) {
	api := newTestAPI(t, func(c *RouterConfig) {
		c.DB = stubPinger{err: database.ErrConnection}
	})
	rr := helpers.NewRequest(t, http.MethodGet, "/health").Do(api.handler)
	helpers.AssertStatus(t, rr, http.StatusServiceUnavailable)
}

func TestMonsters_CreateAndRead(t *testing.T) {
	api := newTestAPI(t)

	rr := helpers.NewRequest(t, http.MethodPost, "/v1/monsters").
		WithBody(model.CreateMonsterRequest{Name: "Ghoul", Type: "undead", Level: 3, Exp: 40}).
		Do(api.handler)
	helpers.AssertStatus(t, rr, http.StatusCreated)
	helpers.AssertJSONContains(t, rr, map[string]interface{}{
		"status":  "success",
		"message": "Monster added",
		"id":      1,
	})

	rr = helpers.NewRequest(t, http.MethodGet, "/v1/monsters/1").Do(api.handler)
	helpers.AssertStatus(t, rr, http.StatusOK)
	helpers.AssertJSONContains(t, rr, map[string]interface{}{"name": "Ghoul", "level": 3})

	rr = helpers.NewRequest(t, http.MethodGet, "/v1/monsters").Do(api.handler)
	helpers.AssertStatus(t, rr, http.StatusOK)
	var list []model.MonsterSummary
	helpers.DecodeResponse(t, rr, &list)
	assert.Equal(t, []model.MonsterSummary{{ID: 1, Name: "Ghoul", Level: 3, Type: "undead"}}, list)
}

func TestMonsters_ValidationEnvelope(t *testing.T) {
	api := newTestAPI(t)

	rr := helpers.NewRequest(t, http.MethodPost, "/v1/monsters").
		WithBody(model.CreateMonsterRequest{Level: 1}).
		Do(api.handler)
	helpers.AssertStatus(t, rr, http.StatusUnprocessableEntity)

	var status model.Status
	helpers.DecodeResponse(t, rr, &status)
	assert.Equal(t, model.StatusError, status.Status)
	assert.Contains(t, status.Message, "name")
}

func TestGetByID_BadAndMissingIDs(t *testing.T) {
	api := newTestAPI(t)

	rr := helpers.NewRequest(t, http.MethodGet, "/v1/monsters/abc").Do(api.handler)
	helpers.AssertProblemDetails(t, rr, http.StatusBadRequest, model.ErrCodeInvalidInput)

	rr = helpers.NewRequest(t, http.MethodGet, "/v1/loot/42").Do(api.handler)
	helpers.AssertProblemDetails(t, rr, http.StatusNotFound, model.ErrCodeNotFound)

	rr = helpers.NewRequest(t, http.MethodGet, "/v1/dungeons/9").Do(api.handler)
	helpers.AssertProblemDetails(t, rr, http.StatusNotFound, model.ErrCodeNotFound)

	rr = helpers.NewRequest(t, http.MethodGet, "/v1/users/nobody@example.com").Do(api.handler)
	helpers.AssertProblemDetails(t, rr, http.StatusNotFound, model.ErrCodeNotFound)
}

func TestMalformedBody(t *testing.T) {
	api := newTestAPI(t)

	rr := helpers.NewRequest(t, http.MethodPost, "/v1/loot").
		WithRawBody(`{"name": "Sword", "sharpness": 9}`).
		Do(api.handler)
	helpers.AssertProblemDetails(t, rr, http.StatusBadRequest, model.ErrCodeInvalidInput)

	rr = helpers.NewRequest(t, http.MethodPut, "/v1/rooms/1/loot").
		WithRawBody(`{"ids": [1,`).
		Do(api.handler)
	helpers.AssertProblemDetails(t, rr, http.StatusBadRequest, model.ErrCodeInvalidInput)
}

func TestUsers_DuplicateIsConflict(t *testing.T) {
	api := newTestAPI(t)
	body := model.CreateUserRequest{Email: "ada@example.com", UserName: "ada", Country: "UK"}

	rr := helpers.NewRequest(t, http.MethodPost, "/v1/users").WithBody(body).Do(api.handler)
	helpers.AssertStatus(t, rr, http.StatusCreated)
	helpers.AssertJSONContains(t, rr, map[string]interface{}{"email": "ada@example.com"})

	rr = helpers.NewRequest(t, http.MethodPost, "/v1/users").WithBody(body).Do(api.handler)
	helpers.AssertStatus(t, rr, http.StatusConflict)
	helpers.AssertJSONContains(t, rr, map[string]interface{}{"status": "error"})

	rr = helpers.NewRequest(t, http.MethodGet, "/v1/users/ada@example.com").Do(api.handler)
	helpers.AssertStatus(t, rr, http.StatusOK)
	helpers.AssertJSONContains(t, rr, map[string]interface{}{"user_name": "ada"})
}

func TestRooms_ConnectionsAndDungeon(t *testing.T) {
	api := newTestAPI(t)

	first := api.createRoom(t, "Gate")
	second := api.createRoom(t, "Hall", first)

	gate := api.store.Room(first)
	require.NotNil(t, gate)
	require.Len(t, gate.RoomsConnected, 1)
	assert.Equal(t, second, gate.RoomsConnected[0].RoomID)

	rr := helpers.NewRequest(t, http.MethodGet, fmt.Sprintf("/v1/dungeons/%d", 1)).Do(api.handler)
	helpers.AssertStatus(t, rr, http.StatusOK)
	var detail model.DungeonDetail
	helpers.DecodeResponse(t, rr, &detail)
	assert.Equal(t, "Crypt", detail.Name)
	assert.Len(t, detail.Rooms, 2)

	rr = helpers.NewRequest(t, http.MethodPut, fmt.Sprintf("/v1/rooms/%d/connections", second)).
		WithBody(model.ReplaceIDsRequest{IDs: []int{}}).
		Do(api.handler)
	helpers.AssertStatus(t, rr, http.StatusOK)
	assert.Empty(t, api.store.Room(first).RoomsConnected)

	rr = helpers.NewRequest(t, http.MethodGet, fmt.Sprintf("/v1/rooms/%d", first)).Do(api.handler)
	helpers.AssertStatus(t, rr, http.StatusOK)
	helpers.AssertJSONContains(t, rr, map[string]interface{}{"idR": first, "name": "Gate"})
}

func TestRooms_MissingConnectionIsMismatch(t *testing.T) {
	api := newTestAPI(t)

	rr := helpers.NewRequest(t, http.MethodPost, "/v1/rooms").
		WithBody(model.CreateRoomRequest{
			DungeonID:      1,
			DungeonName:    "Crypt",
			RoomName:       "Vault",
			RoomsConnected: []int{77},
		}).
		Do(api.handler)
	helpers.AssertStatus(t, rr, http.StatusUnprocessableEntity)
	helpers.AssertJSONContains(t, rr, map[string]interface{}{"status": "error"})
	assert.Nil(t, api.store.Room(1))
}

func TestRooms_UpdateMissingRoomIsNotFound(t *testing.T) {
	api := newTestAPI(t)

	rr := helpers.NewRequest(t, http.MethodPut, "/v1/rooms/5/monsters").
		WithBody(model.ReplaceIDsRequest{IDs: []int{1}}).
		Do(api.handler)
	helpers.AssertStatus(t, rr, http.StatusNotFound)
	helpers.AssertJSONContains(t, rr, map[string]interface{}{"status": "error"})

	rr = helpers.NewRequest(t, http.MethodDelete, "/v1/rooms/5").Do(api.handler)
	helpers.AssertStatus(t, rr, http.StatusNotFound)
}

func TestStoreFailureIsProblemDetails(t *testing.T) {
	api := newTestAPI(t)

	api.store.FailWith(fmt.Errorf("%w: socket closed", database.ErrConnection))
	rr := helpers.NewRequest(t, http.MethodGet, "/v1/loot").Do(api.handler)
	helpers.AssertProblemDetails(t, rr, http.StatusServiceUnavailable, model.ErrCodeDatabase)

	api.store.FailWith(fmt.Errorf("%w: transaction failed", database.ErrQuery))
	rr = helpers.NewRequest(t, http.MethodPost, "/v1/loot").
		WithBody(model.CreateLootRequest{Name: "Sword"}).
		Do(api.handler)
	helpers.AssertProblemDetails(t, rr, http.StatusInternalServerError, model.ErrCodeInternal)
}

func TestAdminIntegrity(t *testing.T) {
	api := newTestAPI(t)
	api.createRoom(t, "Gate")

	rr := helpers.NewRequest(t, http.MethodGet, "/v1/admin/integrity").Do(api.handler)
	helpers.AssertProblemDetails(t, rr, http.StatusUnauthorized, model.ErrCodeUnauthorized)

	rr = helpers.NewRequest(t, http.MethodGet, "/v1/admin/integrity?repair=maybe").
		WithHeader("Authorization", "Bearer "+testAdminToken).
		Do(api.handler)
	helpers.AssertProblemDetails(t, rr, http.StatusBadRequest, model.ErrCodeInvalidInput)

	rr = helpers.NewRequest(t, http.MethodGet, "/v1/admin/integrity?repair=true").
		WithHeader("Authorization", "Bearer "+testAdminToken).
		Do(api.handler)
	helpers.AssertStatus(t, rr, http.StatusOK)

	var result service.AuditResult
	helpers.DecodeResponse(t, rr, &result)
	assert.Equal(t, 1, result.Rooms)
	assert.Empty(t, result.Findings)
}

func TestIdempotentCreateReplays(t *testing.T) {
	store := middleware.NewIdempotencyStore(middleware.IdempotencyConfig{})
	t.Cleanup(store.Stop)
	api := newTestAPI(t, func(c *RouterConfig) { c.Idempotency = store })

	send := func() *model.Status {
		rr := helpers.NewRequest(t, http.MethodPost, "/v1/loot").
			WithBody(model.CreateLootRequest{Name: "Lantern", Gold: 4}).
			WithHeader("Idempotency-Key", "lantern-1").
			Do(api.handler)
		helpers.AssertStatus(t, rr, http.StatusCreated)
		var status model.Status
		helpers.DecodeResponse(t, rr, &status)
		return &status
	}

	first, second := send(), send()
	require.NotNil(t, first.ID)
	require.NotNil(t, second.ID)
	assert.Equal(t, *first.ID, *second.ID)

	rr := helpers.NewRequest(t, http.MethodGet, "/v1/loot").Do(api.handler)
	var items []model.ItemRef
	helpers.DecodeResponse(t, rr, &items)
	assert.Len(t, items, 1)
}

func TestMapServiceError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   model.ErrorCode
	}{
		{"room not found", service.ErrRoomNotFound, http.StatusNotFound, model.ErrCodeNotFound},
		{"wrapped not found", fmt.Errorf("loading: %w", service.ErrMonsterNotFound), http.StatusNotFound, model.ErrCodeNotFound},
		{"mismatch", &service.MismatchError{Collection: "rooms", Requested: 2, Found: 1, Missing: []int{4}}, http.StatusUnprocessableEntity, model.ErrCodeMismatch},
		{"validation", &service.ValidationError{Fields: []model.FieldError{{Field: "name", Message: "name is required"}}}, http.StatusUnprocessableEntity, model.ErrCodeValidation},
		{"category", service.ErrInvalidCategory, http.StatusUnprocessableEntity, model.ErrCodeValidation},
		{"conflict", service.ErrUserExists, http.StatusConflict, model.ErrCodeAlreadyExists},
		{"connection", fmt.Errorf("%w: refused", database.ErrConnection), http.StatusServiceUnavailable, model.ErrCodeDatabase},
		{"other", errors.New("boom"), http.StatusInternalServerError, model.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pd := MapServiceError(tt.err)
			require.NotNil(t, pd)
			assert.Equal(t, tt.status, pd.Status)
			assert.Equal(t, tt.code, pd.Code)
		})
	}

	assert.Nil(t, MapServiceError(nil))
}
