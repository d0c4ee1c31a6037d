package service

import (
	"context"

	"github.com/forgo/delve/internal/integrity"
	"github.com/forgo/delve/internal/model"
)

// Repositories return (nil, nil) when a single document does not exist.

// RoomRepository defines the interface for room storage
type RoomRepository interface {
	GetByID(ctx context.Context, roomID int) (*model.Room, error)
	GetMany(ctx context.Context, roomIDs []int) ([]model.Room, error)
	ListByDungeon(ctx context.Context, dungeonID int) ([]model.Room, error)
	ListLocations(ctx context.Context) ([]model.RoomLocation, error)
}

// MonsterRepository defines the interface for monster storage
type MonsterRepository interface {
	Create(ctx context.Context, monster *model.Monster) error
	GetByID(ctx context.Context, id int) (*model.Monster, error)
	GetMany(ctx context.Context, ids []int) ([]model.Monster, error)
	List(ctx context.Context) ([]model.MonsterSummary, error)
}

// LootRepository defines the interface for loot storage
type LootRepository interface {
	Create(ctx context.Context, loot *model.Loot) error
	GetByID(ctx context.Context, id int) (*model.Loot, error)
	GetMany(ctx context.Context, ids []int) ([]model.Loot, error)
	List(ctx context.Context) ([]model.ItemRef, error)
}

// UserRepository defines the interface for user storage.
// Create returns database.ErrDuplicate for an existing email.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.UserRef, error)
}

// IDAllocator hands out monotonic ids per collection
type IDAllocator interface {
	Next(ctx context.Context, collection integrity.Collection) (int, error)
}

// GraphRepository applies reference integrity plans atomically and reads the whole catalog
type GraphRepository interface {
	Apply(ctx context.Context, plan integrity.Plan) error
	Snapshot(ctx context.Context) (*integrity.Snapshot, error)
}
