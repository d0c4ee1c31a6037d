package repository

import (
	"context"
	"fmt"

	"github.com/forgo/delve/internal/database"
	"github.com/forgo/delve/internal/integrity"
	"github.com/forgo/delve/internal/model"
)

// GraphRepository applies reference integrity plans as a single transaction
// and reads the whole catalog for audits.
type GraphRepository struct {
	db database.Database
}

// NewGraphRepository creates a new graph repository
func NewGraphRepository(db database.Database) *GraphRepository {
	return &GraphRepository{db: db}
}

// Apply compiles plan into SurrealQL and runs it atomically
func (r *GraphRepository) Apply(ctx context.Context, plan integrity.Plan) error {
	batch, err := Compile(plan)
	if err != nil {
		return err
	}
	return batch.Execute(ctx, r.db)
}

// Snapshot reads every room, monster, loot item and user
func (r *GraphRepository) Snapshot(ctx context.Context) (*integrity.Snapshot, error) {
	query := `
		SELECT * FROM rooms ORDER BY room_id;
		SELECT * FROM monsters ORDER BY id;
		SELECT * FROM loot ORDER BY id;
		SELECT * FROM users ORDER BY email;
	`

	results, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}

	snap := &integrity.Snapshot{}
	if snap.Rooms, err = decodeRecords[model.Room](statementRows(results, 0)); err != nil {
		return nil, fmt.Errorf("rooms: %w", err)
	}
	if snap.Monsters, err = decodeRecords[model.Monster](statementRows(results, 1)); err != nil {
		return nil, fmt.Errorf("monsters: %w", err)
	}
	if snap.Loot, err = decodeRecords[model.Loot](statementRows(results, 2)); err != nil {
		return nil, fmt.Errorf("loot: %w", err)
	}
	if snap.Users, err = decodeRecords[model.User](statementRows(results, 3)); err != nil {
		return nil, fmt.Errorf("users: %w", err)
	}
	return snap, nil
}

// Compile translates plan into one SurrealQL statement per change
// (two for PullPlacementsForRoom). UPDATE on a missing record is a no-op.
func Compile(plan integrity.Plan) (*database.AtomicBatch, error) {
	batch := database.NewAtomicBatch()
	for _, c := range plan {
		if err := compileChange(batch, c); err != nil {
			return nil, fmt.Errorf("%s: %w", c.Describe(), err)
		}
	}
	return batch, nil
}

func compileChange(batch *database.AtomicBatch, c integrity.Change) error {
	switch c := c.(type) {
	case integrity.InsertRoom:
		doc, err := toDocument(c.Room)
		if err != nil {
			return err
		}
		for _, field := range []string{"rooms_connected", "monsters", "loot", "hints"} {
			if doc[field] == nil {
				doc[field] = []interface{}{}
			}
		}
		batch.Add(`CREATE type::record('rooms', $room_id) CONTENT $doc`, map[string]interface{}{
			"room_id": c.Room.RoomID,
			"doc":     doc,
		})

	case integrity.DeleteRoom:
		batch.Add(`DELETE type::record('rooms', $room_id)`, map[string]interface{}{
			"room_id": c.RoomID,
		})

	case integrity.DeleteItem:
		batch.Add(`DELETE type::record($table, $item_id)`, map[string]interface{}{
			"table":   string(c.Collection),
			"item_id": c.ItemID,
		})

	case integrity.PushConnection:
		ref, err := toValue(c.Ref)
		if err != nil {
			return err
		}
		batch.Add(`UPDATE type::record('rooms', $room_id) SET rooms_connected = array::append((rooms_connected ?? [])[WHERE room_id != $peer_id], $ref)`, map[string]interface{}{
			"room_id": c.RoomID,
			"peer_id": c.Ref.RoomID,
			"ref":     ref,
		})

	case integrity.PullConnection:
		batch.Add(`UPDATE type::record('rooms', $room_id) SET rooms_connected = (rooms_connected ?? [])[WHERE room_id != $peer_id]`, map[string]interface{}{
			"room_id": c.RoomID,
			"peer_id": c.PeerID,
		})

	case integrity.PullConnectionsTo:
		batch.Add(`UPDATE rooms SET rooms_connected = rooms_connected[WHERE room_id != $peer_id] WHERE $peer_id IN rooms_connected.room_id`, map[string]interface{}{
			"peer_id": c.PeerID,
		})

	case integrity.SetConnections:
		return setRoomField(batch, c.RoomID, "rooms_connected", emptyIfNil(c.Refs))

	case integrity.SetRoomMonsters:
		return setRoomField(batch, c.RoomID, "monsters", emptyIfNil(c.Monsters))

	case integrity.SetRoomLoot:
		return setRoomField(batch, c.RoomID, "loot", emptyIfNil(c.Loot))

	case integrity.SetPlacement:
		placement, err := toValue(c.Placement)
		if err != nil {
			return err
		}
		batch.Add(`UPDATE type::record($table, $item_id) SET in_rooms = array::append((in_rooms ?? [])[WHERE room_id != $room_id], $placement)`, map[string]interface{}{
			"table":     string(c.Collection),
			"item_id":   c.ItemID,
			"room_id":   c.Placement.RoomID,
			"placement": placement,
		})

	case integrity.PullPlacement:
		batch.Add(`UPDATE type::record($table, $item_id) SET in_rooms = (in_rooms ?? [])[WHERE room_id != $room_id]`, map[string]interface{}{
			"table":   string(c.Collection),
			"item_id": c.ItemID,
			"room_id": c.RoomID,
		})

	case integrity.PullPlacementsForRoom:
		vars := map[string]interface{}{"room_id": c.RoomID}
		batch.Add(`UPDATE monsters SET in_rooms = in_rooms[WHERE room_id != $room_id] WHERE $room_id IN in_rooms.room_id`, vars)
		batch.Add(`UPDATE loot SET in_rooms = in_rooms[WHERE room_id != $room_id] WHERE $room_id IN in_rooms.room_id`, vars)

	case integrity.PullItemFromRooms:
		field, err := roomItemField(c.Collection)
		if err != nil {
			return err
		}
		query := fmt.Sprintf(`UPDATE rooms SET %[1]s = %[1]s[WHERE id != $item_id] WHERE $item_id IN %[1]s.id`, field)
		batch.Add(query, map[string]interface{}{"item_id": c.ItemID})

	case integrity.PushUserHint:
		hint, err := toValue(c.Hint)
		if err != nil {
			return err
		}
		batch.Add(`UPDATE type::record('users', $email) SET hints = array::append(hints ?? [], $hint)`, map[string]interface{}{
			"email": c.Email,
			"hint":  hint,
		})

	case integrity.PushRoomHint:
		hint, err := toValue(c.Hint)
		if err != nil {
			return err
		}
		batch.Add(`UPDATE type::record('rooms', $room_id) SET hints = array::append(hints ?? [], $hint)`, map[string]interface{}{
			"room_id": c.RoomID,
			"hint":    hint,
		})

	case integrity.PullUserHint:
		batch.Add(`UPDATE type::record('users', $email) SET hints = (hints ?? [])[WHERE hint_id != $hint_id]`, map[string]interface{}{
			"email":   c.Email,
			"hint_id": c.HintID,
		})

	case integrity.PullRoomHint:
		batch.Add(`UPDATE type::record('rooms', $room_id) SET hints = (hints ?? [])[WHERE hint_id != $hint_id]`, map[string]interface{}{
			"room_id": c.RoomID,
			"hint_id": c.HintID,
		})

	case integrity.PullUserHintsForRoom:
		batch.Add(`UPDATE users SET hints = hints[WHERE referemces_room.room_id != $room_id] WHERE $room_id IN hints.referemces_room.room_id`, map[string]interface{}{
			"room_id": c.RoomID,
		})

	default:
		return fmt.Errorf("unsupported change %T", c)
	}
	return nil
}

func setRoomField(batch *database.AtomicBatch, roomID int, field string, value interface{}) error {
	v, err := toValue(value)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`UPDATE type::record('rooms', $room_id) SET %s = $value`, field)
	batch.Add(query, map[string]interface{}{
		"room_id": roomID,
		"value":   v,
	})
	return nil
}

func roomItemField(collection integrity.Collection) (string, error) {
	switch collection {
	case integrity.Monsters:
		return "monsters", nil
	case integrity.Loot:
		return "loot", nil
	}
	return "", fmt.Errorf("collection %q is not placed in rooms", collection)
}

// emptyIfNil keeps nil slices from being stored as NULL
func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
