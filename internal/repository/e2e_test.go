package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/delve/internal/integrity"
	"github.com/forgo/delve/internal/model"
	"github.com/forgo/delve/internal/repository"
	"github.com/forgo/delve/internal/service"
	"github.com/forgo/delve/internal/testing/fixtures"
	"github.com/forgo/delve/internal/testing/helpers"
	"github.com/forgo/delve/internal/testing/testdb"
)

type e2e struct {
	tdb       *testdb.TestDB
	fixtures  *fixtures.Factory
	query     *service.QueryService
	mutation  *service.MutationService
	integrity *service.IntegrityService
}

func setup(t *testing.T) *e2e {
	tdb := testdb.New(t)
	t.Cleanup(tdb.Close)

	rooms := repository.NewRoomRepository(tdb.DB)
	monsters := repository.NewMonsterRepository(tdb.DB)
	loot := repository.NewLootRepository(tdb.DB)
	users := repository.NewUserRepository(tdb.DB)
	graph := repository.NewGraphRepository(tdb.DB)

	return &e2e{
		tdb:      tdb,
		fixtures: fixtures.New(tdb.DB),
		query: service.NewQueryService(service.QueryServiceConfig{
			RoomRepo: rooms, MonsterRepo: monsters, LootRepo: loot, UserRepo: users,
		}),
		mutation: service.NewMutationService(service.MutationServiceConfig{
			RoomRepo: rooms, MonsterRepo: monsters, LootRepo: loot, UserRepo: users,
			IDs:   repository.NewCounterRepository(tdb.DB),
			Graph: graph,
		}),
		integrity: service.NewIntegrityService(service.IntegrityServiceConfig{Graph: graph}),
	}
}

func requireOK(t *testing.T) func(model.Status, error) model.Status {
	t.Helper()
	return func(status model.Status, err error) model.Status {
		t.Helper()
		require.NoError(t, err)
		require.True(t, status.OK(), "status: %+v", status)
		return status
	}
}

func TestE2E_RoomConnectionsAreReciprocal(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	first := env.fixtures.CreateRoom(t, func(o *fixtures.RoomOpts) { o.RoomName = "Gatehouse" })

	status := requireOK(t)(env.mutation.CreateRoom(ctx, &model.CreateRoomRequest{
		DungeonID: 1, DungeonName: "Test Dungeon", RoomName: "Armory",
		RoomsConnected: []int{first.RoomID},
	}))
	second := *status.ID
	assert.Greater(t, second, first.RoomID, "allocated ids must exceed seeded ids")

	detail, err := env.query.GetRoom(ctx, first.RoomID)
	require.NoError(t, err)
	require.NotNil(t, detail)

	room, err := repository.NewRoomRepository(env.tdb.DB).GetByID(ctx, first.RoomID)
	require.NoError(t, err)
	require.Len(t, room.RoomsConnected, 1)
	assert.Equal(t, model.RoomRef{RoomID: second, RoomName: "Armory"}, room.RoomsConnected[0])

	requireOK(t)(env.mutation.DeleteRoom(ctx, second))

	helpers.AssertRecordNotExists(t, env.tdb.DB, "rooms", second)
	room, err = repository.NewRoomRepository(env.tdb.DB).GetByID(ctx, first.RoomID)
	require.NoError(t, err)
	assert.Empty(t, room.RoomsConnected)
}

func TestE2E_MonsterPlacementLifecycle(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	room := env.fixtures.CreateRoom(t)
	newt := env.fixtures.CreateMonster(t, func(o *fixtures.MonsterOpts) { o.Name = "Newt" })

	requireOK(t)(env.mutation.UpdateRoomMonsters(ctx, room.RoomID, []int{newt.ID, newt.ID}))

	m, err := repository.NewMonsterRepository(env.tdb.DB).GetByID(ctx, newt.ID)
	require.NoError(t, err)
	require.Len(t, m.InRooms, 1)
	assert.Equal(t, room.RoomID, m.InRooms[0].RoomID)
	assert.Equal(t, 2, m.InRooms[0].Amount)

	requireOK(t)(env.mutation.DeleteMonster(ctx, newt.ID))

	helpers.AssertRecordNotExists(t, env.tdb.DB, "monsters", newt.ID)
	r, err := repository.NewRoomRepository(env.tdb.DB).GetByID(ctx, room.RoomID)
	require.NoError(t, err)
	assert.Empty(t, r.Monsters)
}

func TestE2E_CommentCopiesAndRoomDeletion(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	room := env.fixtures.CreateRoom(t)
	user := env.fixtures.CreateUser(t)

	status := requireOK(t)(env.mutation.PostComment(ctx, room.RoomID, &model.PostCommentRequest{
		UserEmail: user.Email, Text: "Pray here", Category: model.HintCategoryHint,
	}))
	require.NotEmpty(t, status.HintID)

	u, err := repository.NewUserRepository(env.tdb.DB).GetByEmail(ctx, user.Email)
	require.NoError(t, err)
	require.Len(t, u.Hints, 1)
	assert.Equal(t, status.HintID, u.Hints[0].HintID)

	requireOK(t)(env.mutation.DeleteRoom(ctx, room.RoomID))

	u, err = repository.NewUserRepository(env.tdb.DB).GetByEmail(ctx, user.Email)
	require.NoError(t, err)
	assert.Empty(t, u.Hints)
}

func TestE2E_AuditRepairsDanglingReferences(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	room := env.fixtures.CreateRoom(t)
	env.tdb.MustExec(`UPDATE type::record('rooms', $room_id) SET rooms_connected = [{ room_id: 999, room_name: 'Nowhere' }]`,
		map[string]interface{}{"room_id": room.RoomID})

	result, err := env.integrity.Audit(ctx, true)
	require.NoError(t, err)
	require.NotEmpty(t, result.Findings)
	assert.Equal(t, integrity.DanglingConnection, result.Findings[0].Kind)
	assert.True(t, result.Repaired)

	result, err = env.integrity.Audit(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, result.Findings)
}

func TestE2E_DuplicateUser(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	user := env.fixtures.CreateUser(t)

	status, err := env.mutation.CreateUser(ctx, &model.CreateUserRequest{Email: user.Email, UserName: "copy"})

	require.NoError(t, err)
	assert.False(t, status.OK())
	assert.ErrorIs(t, status.Cause, service.ErrUserExists)
}

func TestE2E_LootInDungeonAndCounterFloor(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	room := env.fixtures.CreateRoom(t, func(o *fixtures.RoomOpts) { o.DungeonID = 4 })
	lamp := env.fixtures.CreateLoot(t, func(o *fixtures.LootOpts) { o.Name = "Lamp" })

	requireOK(t)(env.mutation.UpdateRoomLoot(ctx, room.RoomID, []int{lamp.ID}))

	dungeon, err := env.query.GetDungeon(ctx, 4)
	require.NoError(t, err)
	require.Len(t, dungeon.Rooms, 1)
	assert.Equal(t, []model.ItemRef{{ID: lamp.ID, Name: "Lamp"}}, dungeon.Rooms[0].Loots)

	status := requireOK(t)(env.mutation.CreateLoot(ctx, &model.CreateLootRequest{Name: "Rope"}))
	require.NotNil(t, status.ID)
	assert.Greater(t, *status.ID, lamp.ID)
	helpers.AssertRecordExists(t, env.tdb.DB, "loot", *status.ID)
}
