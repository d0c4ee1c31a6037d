package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgo/delve/internal/database"
	"github.com/forgo/delve/internal/model"
)

// RoomRepository handles room data access.
// Rooms are keyed by their numeric room_id (rooms:3).
type RoomRepository struct {
	db database.Database
}

// NewRoomRepository creates a new room repository
func NewRoomRepository(db database.Database) *RoomRepository {
	return &RoomRepository{db: db}
}

// GetByID retrieves a room by its room_id
func (r *RoomRepository) GetByID(ctx context.Context, roomID int) (*model.Room, error) {
	query := `SELECT * FROM type::record('rooms', $room_id)`
	vars := map[string]interface{}{"room_id": roomID}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var room model.Room
	if err := decodeRecord(result, &room); err != nil {
		return nil, fmt.Errorf("room %d: %w", roomID, err)
	}
	return &room, nil
}

// GetMany retrieves the existing rooms among roomIDs, ordered by room_id
func (r *RoomRepository) GetMany(ctx context.Context, roomIDs []int) ([]model.Room, error) {
	if len(roomIDs) == 0 {
		return []model.Room{}, nil
	}

	query := `SELECT * FROM rooms WHERE room_id IN $room_ids ORDER BY room_id`
	vars := map[string]interface{}{"room_ids": roomIDs}

	return r.list(ctx, query, vars)
}

// ListByDungeon retrieves every room of a dungeon, ordered by room_id
func (r *RoomRepository) ListByDungeon(ctx context.Context, dungeonID int) ([]model.Room, error) {
	query := `SELECT * FROM rooms WHERE dungeon_id = $dungeon_id ORDER BY room_id`
	vars := map[string]interface{}{"dungeon_id": dungeonID}

	return r.list(ctx, query, vars)
}

// ListLocations retrieves the location of every room, ordered by room_id
func (r *RoomRepository) ListLocations(ctx context.Context) ([]model.RoomLocation, error) {
	query := `SELECT room_id, room_name, dungeon_id, dungeon_name FROM rooms ORDER BY room_id`

	results, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}
	return decodeRecords[model.RoomLocation](statementRows(results, 0))
}

func (r *RoomRepository) list(ctx context.Context, query string, vars map[string]interface{}) ([]model.Room, error) {
	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	return decodeRecords[model.Room](statementRows(results, 0))
}
