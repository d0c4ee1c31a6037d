package service

import (
	"context"
	"testing"
	"time"

	"github.com/forgo/delve/internal/model"
	"github.com/forgo/delve/internal/testing/memstore"
)

var testNow = time.Date(2024, 3, 14, 9, 26, 53, 0, time.UTC)

type services struct {
	store     *memstore.Store
	query     *QueryService
	mutation  *MutationService
	integrity *IntegrityService
}

func newServices(t *testing.T) *services {
	t.Helper()

	store := memstore.New()
	clock := func() time.Time { return testNow }
	return &services{
		store: store,
		query: NewQueryService(QueryServiceConfig{
			RoomRepo:    store.Rooms(),
			MonsterRepo: store.Monsters(),
			LootRepo:    store.LootItems(),
			UserRepo:    store.Users(),
		}),
		mutation: NewMutationService(MutationServiceConfig{
			RoomRepo:    store.Rooms(),
			MonsterRepo: store.Monsters(),
			LootRepo:    store.LootItems(),
			UserRepo:    store.Users(),
			IDs:         store.Counters(),
			Graph:       store.Graph(),
			Now:         clock,
		}),
		integrity: NewIntegrityService(IntegrityServiceConfig{Graph: store.Graph(), Now: clock}),
	}
}

func mustOK(t *testing.T) func(model.Status, error) model.Status {
	t.Helper()
	return func(status model.Status, err error) model.Status {
		t.Helper()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !status.OK() {
			t.Fatalf("expected success, got %+v", status)
		}
		return status
	}
}

func (s *services) createRoom(t *testing.T, dungeonID int, name string, connected ...int) int {
	t.Helper()
	status := mustOK(t)(s.mutation.CreateRoom(context.Background(), &model.CreateRoomRequest{
		DungeonID:      dungeonID,
		DungeonName:    "Dungeon " + name,
		RoomName:       name,
		RoomsConnected: connected,
	}))
	return *status.ID
}

func (s *services) createMonster(t *testing.T, name string) int {
	t.Helper()
	status := mustOK(t)(s.mutation.CreateMonster(context.Background(), &model.CreateMonsterRequest{
		Name: name, Type: "x", Level: 1, Place: "anywhere", Exp: 4, ManPage: name + "(6)",
	}))
	return *status.ID
}

func (s *services) createLoot(t *testing.T, name string) int {
	t.Helper()
	status := mustOK(t)(s.mutation.CreateLoot(context.Background(), &model.CreateLootRequest{
		Name: name, Type1: "armor", Type2: "helmet", Weight: 30, Gold: 10,
	}))
	return *status.ID
}

func (s *services) createUser(t *testing.T, email string) {
	t.Helper()
	mustOK(t)(s.mutation.CreateUser(context.Background(), &model.CreateUserRequest{
		Email: email, UserName: "player", Country: "NL",
	}))
}
