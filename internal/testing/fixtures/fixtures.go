package fixtures

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/forgo/delve/internal/database"
	"github.com/forgo/delve/internal/model"
)

// Factory creates test entities in the database
type Factory struct {
	db database.Database

	mu     sync.Mutex
	nextID int
}

// New creates a new fixture factory. Generated ids start at 1000 so they
// never collide with hand-picked ids in a test.
func New(db database.Database) *Factory {
	return &Factory{db: db, nextID: 1000}
}

func (f *Factory) allocate() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	return f.nextID
}

// randomName generates a short unique suffix
func randomName(prefix string) string {
	return prefix + "_" + uuid.NewString()[:8]
}

func (f *Factory) create(t *testing.T, table string, key interface{}, doc map[string]interface{}) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	query := `CREATE type::record($table, $key) CONTENT $doc`
	vars := map[string]interface{}{
		"table": table,
		"key":   key,
		"doc":   doc,
	}
	if err := f.db.Execute(ctx, query, vars); err != nil {
		t.Fatalf("fixtures: failed to create %s:%v: %v", table, key, err)
	}
}

// ============================================================================
// User Fixtures
// ============================================================================

// UserOpts customizes user creation
type UserOpts struct {
	Email    string
	UserName string
	Country  string
}

// CreateUser creates a user with optional customizations
func (f *Factory) CreateUser(t *testing.T, opts ...func(*UserOpts)) *model.User {
	t.Helper()

	name := randomName("user")
	o := &UserOpts{
		Email:    fmt.Sprintf("%s@test.local", name),
		UserName: name,
		Country:  "AQ",
	}
	for _, fn := range opts {
		fn(o)
	}

	f.create(t, "users", o.Email, map[string]interface{}{
		"email":     o.Email,
		"user_name": o.UserName,
		"country":   o.Country,
		"hints":     []interface{}{},
	})

	return &model.User{Email: o.Email, UserName: o.UserName, Country: o.Country}
}

// ============================================================================
// Monster Fixtures
// ============================================================================

// MonsterOpts customizes monster creation
type MonsterOpts struct {
	ID      int
	Name    string
	Type    string
	Level   int
	Exp     int
	ManPage string
}

// CreateMonster creates a monster with optional customizations
func (f *Factory) CreateMonster(t *testing.T, opts ...func(*MonsterOpts)) *model.Monster {
	t.Helper()

	o := &MonsterOpts{
		Name:  randomName("monster"),
		Type:  "r",
		Level: 1,
		Exp:   5,
	}
	for _, fn := range opts {
		fn(o)
	}
	if o.ID == 0 {
		o.ID = f.allocate()
	}

	m := &model.Monster{
		ID:      o.ID,
		Name:    o.Name,
		Type:    o.Type,
		Level:   o.Level,
		Place:   "anywhere",
		Exp:     o.Exp,
		ManPage: o.ManPage,
	}
	f.create(t, "monsters", m.ID, map[string]interface{}{
		"name":     m.Name,
		"type":     m.Type,
		"level":    m.Level,
		"place":    m.Place,
		"exp":      m.Exp,
		"man_page": m.ManPage,
		"in_rooms": []interface{}{},
	})
	return m
}

// ============================================================================
// Loot Fixtures
// ============================================================================

// LootOpts customizes loot creation
type LootOpts struct {
	ID     int
	Name   string
	Weight float64
	Gold   int
}

// CreateLoot creates a loot item with optional customizations
func (f *Factory) CreateLoot(t *testing.T, opts ...func(*LootOpts)) *model.Loot {
	t.Helper()

	o := &LootOpts{
		Name:   randomName("loot"),
		Weight: 1.5,
		Gold:   10,
	}
	for _, fn := range opts {
		fn(o)
	}
	if o.ID == 0 {
		o.ID = f.allocate()
	}

	l := &model.Loot{
		ID:     o.ID,
		Name:   o.Name,
		Type1:  "tool",
		Weight: o.Weight,
		Gold:   o.Gold,
	}
	f.create(t, "loot", l.ID, map[string]interface{}{
		"name":     l.Name,
		"type1":    l.Type1,
		"type2":    l.Type2,
		"weight":   l.Weight,
		"gold":     l.Gold,
		"in_rooms": []interface{}{},
	})
	return l
}

// ============================================================================
// Room Fixtures
// ============================================================================

// RoomOpts customizes room creation
type RoomOpts struct {
	RoomID      int
	RoomName    string
	DungeonID   int
	DungeonName string
}

// CreateRoom creates an unconnected, empty room
func (f *Factory) CreateRoom(t *testing.T, opts ...func(*RoomOpts)) *model.Room {
	t.Helper()

	o := &RoomOpts{
		RoomName:    randomName("room"),
		DungeonID:   1,
		DungeonName: "Test Dungeon",
	}
	for _, fn := range opts {
		fn(o)
	}
	if o.RoomID == 0 {
		o.RoomID = f.allocate()
	}

	r := &model.Room{
		RoomID:         o.RoomID,
		RoomName:       o.RoomName,
		DungeonID:      o.DungeonID,
		DungeonName:    o.DungeonName,
		RoomsConnected: []model.RoomRef{},
		Monsters:       []model.MonsterSnapshot{},
		Loot:           []model.LootSnapshot{},
		Hints:          []model.RoomHint{},
	}
	f.create(t, "rooms", r.RoomID, map[string]interface{}{
		"room_id":         r.RoomID,
		"room_name":       r.RoomName,
		"dungeon_id":      r.DungeonID,
		"dungeon_name":    r.DungeonName,
		"dungeon_lore":    "",
		"rooms_connected": []interface{}{},
		"monsters":        []interface{}{},
		"loot":            []interface{}{},
		"hints":           []interface{}{},
	})
	return r
}
