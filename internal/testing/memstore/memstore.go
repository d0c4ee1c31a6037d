// Package memstore is an in-memory catalog store for unit tests.
//
// It implements the repository interfaces of the service package on top of
// an integrity.Snapshot, so plans are applied with the same semantics the
// SurrealDB plan compiler targets. Reads return deep copies.
//
// Usage:
//
//	store := memstore.New()
//	store.SeedRooms(model.Room{RoomID: 1, DungeonID: 1, RoomName: "Gatehouse"})
//	svc := service.NewQueryService(service.QueryServiceConfig{
//	    RoomRepo: store.Rooms(),
//	    ...
//	})
package memstore

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/forgo/delve/internal/database"
	"github.com/forgo/delve/internal/integrity"
	"github.com/forgo/delve/internal/model"
)

// Store holds the catalog in memory
type Store struct {
	mu       sync.Mutex
	snap     integrity.Snapshot
	counters map[integrity.Collection]int
	failErr  error
	applied  []integrity.Plan
}

// New creates an empty store
func New() *Store {
	return &Store{counters: make(map[integrity.Collection]int)}
}

// FailWith makes every subsequent call fail with err until cleared with nil
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failErr = err
}

// Applied returns the plans applied so far
func (s *Store) Applied() []integrity.Plan {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.applied)
}

// ============================================================================
// Seeding
// ============================================================================

// SeedRooms inserts rooms as is, without touching any other document
func (s *Store) SeedRooms(rooms ...model.Room) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range rooms {
		s.snap.Rooms = append(s.snap.Rooms, cloneRoom(r))
	}
}

// SeedMonsters inserts monsters as is
func (s *Store) SeedMonsters(monsters ...model.Monster) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range monsters {
		s.snap.Monsters = append(s.snap.Monsters, cloneMonster(m))
	}
}

// SeedLoot inserts loot as is
func (s *Store) SeedLoot(loot ...model.Loot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range loot {
		s.snap.Loot = append(s.snap.Loot, cloneLoot(l))
	}
}

// SeedUsers inserts users as is
func (s *Store) SeedUsers(users ...model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range users {
		s.snap.Users = append(s.snap.Users, cloneUser(u))
	}
}

// ============================================================================
// Raw access for assertions
// ============================================================================

// Room returns a copy of a room, or nil
func (s *Store) Room(id int) *model.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.snap.Rooms {
		if r.RoomID == id {
			c := cloneRoom(r)
			return &c
		}
	}
	return nil
}

// Monster returns a copy of a monster including placement amounts, or nil
func (s *Store) Monster(id int) *model.Monster {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.snap.Monsters {
		if m.ID == id {
			c := cloneMonster(m)
			return &c
		}
	}
	return nil
}

// Loot returns a copy of a loot item including placement amounts, or nil
func (s *Store) Loot(id int) *model.Loot {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.snap.Loot {
		if l.ID == id {
			c := cloneLoot(l)
			return &c
		}
	}
	return nil
}

// User returns a copy of a user, or nil
func (s *Store) User(email string) *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.snap.Users {
		if u.Email == email {
			c := cloneUser(u)
			return &c
		}
	}
	return nil
}

// ============================================================================
// Repository views
// ============================================================================

// Rooms returns the room repository view
func (s *Store) Rooms() *RoomRepo { return &RoomRepo{s} }

// Monsters returns the monster repository view
func (s *Store) Monsters() *MonsterRepo { return &MonsterRepo{s} }

// LootItems returns the loot repository view
func (s *Store) LootItems() *LootRepo { return &LootRepo{s} }

// Users returns the user repository view
func (s *Store) Users() *UserRepo { return &UserRepo{s} }

// Counters returns the id allocator
func (s *Store) Counters() *CounterRepo { return &CounterRepo{s} }

// Graph returns the plan executor
func (s *Store) Graph() *GraphRepo { return &GraphRepo{s} }

// lock acquires the store and reports an injected failure
func (s *Store) lock(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", database.ErrConnection, err)
	}
	s.mu.Lock()
	if s.failErr != nil {
		err := s.failErr
		s.mu.Unlock()
		return err
	}
	return nil
}

// RoomRepo implements service.RoomRepository
type RoomRepo struct{ s *Store }

func (r *RoomRepo) GetByID(ctx context.Context, roomID int) (*model.Room, error) {
	if err := r.s.lock(ctx); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	for _, room := range r.s.snap.Rooms {
		if room.RoomID == roomID {
			c := cloneRoom(room)
			return &c, nil
		}
	}
	return nil, nil
}

func (r *RoomRepo) GetMany(ctx context.Context, roomIDs []int) ([]model.Room, error) {
	if err := r.s.lock(ctx); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	var out []model.Room
	for _, room := range r.s.snap.Rooms {
		if slices.Contains(roomIDs, room.RoomID) {
			out = append(out, cloneRoom(room))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoomID < out[j].RoomID })
	return out, nil
}

func (r *RoomRepo) ListByDungeon(ctx context.Context, dungeonID int) ([]model.Room, error) {
	if err := r.s.lock(ctx); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	var out []model.Room
	for _, room := range r.s.snap.Rooms {
		if room.DungeonID == dungeonID {
			out = append(out, cloneRoom(room))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoomID < out[j].RoomID })
	return out, nil
}

func (r *RoomRepo) ListLocations(ctx context.Context) ([]model.RoomLocation, error) {
	if err := r.s.lock(ctx); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	out := make([]model.RoomLocation, 0, len(r.s.snap.Rooms))
	for i := range r.s.snap.Rooms {
		out = append(out, r.s.snap.Rooms[i].Location())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RoomID < out[j].RoomID })
	return out, nil
}

// MonsterRepo implements service.MonsterRepository
type MonsterRepo struct{ s *Store }

func (r *MonsterRepo) Create(ctx context.Context, monster *model.Monster) error {
	if err := r.s.lock(ctx); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	for _, m := range r.s.snap.Monsters {
		if m.ID == monster.ID {
			return fmt.Errorf("%w: monsters:%d", database.ErrDuplicate, monster.ID)
		}
	}
	r.s.snap.Monsters = append(r.s.snap.Monsters, cloneMonster(*monster))
	return nil
}

func (r *MonsterRepo) GetByID(ctx context.Context, id int) (*model.Monster, error) {
	if err := r.s.lock(ctx); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	for _, m := range r.s.snap.Monsters {
		if m.ID == id {
			c := cloneMonster(m)
			return &c, nil
		}
	}
	return nil, nil
}

func (r *MonsterRepo) GetMany(ctx context.Context, ids []int) ([]model.Monster, error) {
	if err := r.s.lock(ctx); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	var out []model.Monster
	for _, m := range r.s.snap.Monsters {
		if slices.Contains(ids, m.ID) {
			out = append(out, cloneMonster(m))
		}
	}
	return out, nil
}

func (r *MonsterRepo) List(ctx context.Context) ([]model.MonsterSummary, error) {
	if err := r.s.lock(ctx); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	out := make([]model.MonsterSummary, 0, len(r.s.snap.Monsters))
	for _, m := range r.s.snap.Monsters {
		out = append(out, model.MonsterSummary{ID: m.ID, Name: m.Name, Level: m.Level, Type: m.Type})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// LootRepo implements service.LootRepository
type LootRepo struct{ s *Store }

func (r *LootRepo) Create(ctx context.Context, loot *model.Loot) error {
	if err := r.s.lock(ctx); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	for _, l := range r.s.snap.Loot {
		if l.ID == loot.ID {
			return fmt.Errorf("%w: loot:%d", database.ErrDuplicate, loot.ID)
		}
	}
	r.s.snap.Loot = append(r.s.snap.Loot, cloneLoot(*loot))
	return nil
}

func (r *LootRepo) GetByID(ctx context.Context, id int) (*model.Loot, error) {
	if err := r.s.lock(ctx); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	for _, l := range r.s.snap.Loot {
		if l.ID == id {
			c := cloneLoot(l)
			return &c, nil
		}
	}
	return nil, nil
}

func (r *LootRepo) GetMany(ctx context.Context, ids []int) ([]model.Loot, error) {
	if err := r.s.lock(ctx); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	var out []model.Loot
	for _, l := range r.s.snap.Loot {
		if slices.Contains(ids, l.ID) {
			out = append(out, cloneLoot(l))
		}
	}
	return out, nil
}

func (r *LootRepo) List(ctx context.Context) ([]model.ItemRef, error) {
	if err := r.s.lock(ctx); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	out := make([]model.ItemRef, 0, len(r.s.snap.Loot))
	for _, l := range r.s.snap.Loot {
		out = append(out, model.ItemRef{ID: l.ID, Name: l.Name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// UserRepo implements service.UserRepository
type UserRepo struct{ s *Store }

func (r *UserRepo) Create(ctx context.Context, user *model.User) error {
	if err := r.s.lock(ctx); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	for _, u := range r.s.snap.Users {
		if u.Email == user.Email {
			return fmt.Errorf("%w: users:%s", database.ErrDuplicate, user.Email)
		}
	}
	r.s.snap.Users = append(r.s.snap.Users, cloneUser(*user))
	return nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if err := r.s.lock(ctx); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	for _, u := range r.s.snap.Users {
		if u.Email == email {
			c := cloneUser(u)
			return &c, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) List(ctx context.Context) ([]model.UserRef, error) {
	if err := r.s.lock(ctx); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	out := make([]model.UserRef, 0, len(r.s.snap.Users))
	for i := range r.s.snap.Users {
		out = append(out, r.s.snap.Users[i].Ref())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

// CounterRepo implements service.IDAllocator. Like the SurrealDB counter, the
// next id is never below the largest id already stored.
type CounterRepo struct{ s *Store }

func (r *CounterRepo) Next(ctx context.Context, coll integrity.Collection) (int, error) {
	if err := r.s.lock(ctx); err != nil {
		return 0, err
	}
	defer r.s.mu.Unlock()

	highest := r.s.counters[coll]
	switch coll {
	case integrity.Rooms:
		for _, room := range r.s.snap.Rooms {
			highest = max(highest, room.RoomID)
		}
	case integrity.Monsters:
		for _, m := range r.s.snap.Monsters {
			highest = max(highest, m.ID)
		}
	case integrity.Loot:
		for _, l := range r.s.snap.Loot {
			highest = max(highest, l.ID)
		}
	default:
		return 0, fmt.Errorf("%w: no counter for %s", database.ErrQuery, coll)
	}
	r.s.counters[coll] = highest + 1
	return highest + 1, nil
}

// GraphRepo implements service.GraphRepository
type GraphRepo struct{ s *Store }

func (r *GraphRepo) Apply(ctx context.Context, plan integrity.Plan) error {
	if err := r.s.lock(ctx); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	if err := r.s.snap.Apply(plan); err != nil {
		return fmt.Errorf("%w: %v", database.ErrDuplicate, err)
	}
	r.s.applied = append(r.s.applied, plan)
	return nil
}

func (r *GraphRepo) Snapshot(ctx context.Context) (*integrity.Snapshot, error) {
	if err := r.s.lock(ctx); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	snap := &integrity.Snapshot{}
	for _, room := range r.s.snap.Rooms {
		snap.Rooms = append(snap.Rooms, cloneRoom(room))
	}
	for _, m := range r.s.snap.Monsters {
		snap.Monsters = append(snap.Monsters, cloneMonster(m))
	}
	for _, l := range r.s.snap.Loot {
		snap.Loot = append(snap.Loot, cloneLoot(l))
	}
	for _, u := range r.s.snap.Users {
		snap.Users = append(snap.Users, cloneUser(u))
	}
	return snap, nil
}

func cloneRoom(r model.Room) model.Room {
	r.RoomsConnected = slices.Clone(r.RoomsConnected)
	r.Monsters = slices.Clone(r.Monsters)
	r.Loot = slices.Clone(r.Loot)
	r.Hints = slices.Clone(r.Hints)
	return r
}

func cloneMonster(m model.Monster) model.Monster {
	m.InRooms = slices.Clone(m.InRooms)
	return m
}

func cloneLoot(l model.Loot) model.Loot {
	l.InRooms = slices.Clone(l.InRooms)
	return l
}

func cloneUser(u model.User) model.User {
	u.Hints = slices.Clone(u.Hints)
	return u
}
