package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/forgo/delve/internal/database"
	"github.com/forgo/delve/internal/integrity"
	"github.com/forgo/delve/internal/model"
)

func TestCompile_NamespacesEachStatement(t *testing.T) {
	t.Parallel()

	plan := integrity.Plan{
		integrity.InsertRoom{Room: model.Room{RoomID: 4, RoomName: "Crypt", DungeonID: 1}},
		integrity.PushConnection{RoomID: 1, Ref: model.RoomRef{RoomID: 4, RoomName: "Crypt"}},
		integrity.PullPlacementsForRoom{RoomID: 2},
	}

	batch, err := Compile(plan)
	require.NoError(t, err)
	assert.Equal(t, 4, batch.Len())

	query, vars := batch.Builder().Build()

	assert.Contains(t, query, "BEGIN TRANSACTION;")
	assert.Contains(t, query, "CREATE type::record('rooms', $v1_room_id) CONTENT $v2_doc;")
	assert.Contains(t, query, "UPDATE type::record('rooms', $v4_room_id) SET rooms_connected = array::append((rooms_connected ?? [])[WHERE room_id != $v3_peer_id], $v5_ref);")
	assert.Contains(t, query, "UPDATE monsters SET in_rooms = in_rooms[WHERE room_id != $v6_room_id] WHERE $v6_room_id IN in_rooms.room_id;")
	assert.Contains(t, query, "UPDATE loot SET in_rooms = in_rooms[WHERE room_id != $v7_room_id] WHERE $v7_room_id IN in_rooms.room_id;")
	assert.Contains(t, query, "COMMIT TRANSACTION;")

	assert.Equal(t, 4, vars["v1_room_id"])
	doc, ok := vars["v2_doc"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Crypt", doc["room_name"])
	assert.Equal(t, int64(4), doc["room_id"])
	assert.Equal(t, []interface{}{}, doc["rooms_connected"])
	assert.Equal(t, []interface{}{}, doc["hints"])

	assert.Equal(t, 4, vars["v3_peer_id"])
	assert.Equal(t, 1, vars["v4_room_id"])
	assert.Equal(t, map[string]interface{}{"room_id": int64(4), "room_name": "Crypt"}, vars["v5_ref"])
}

func TestCompile_ItemChanges(t *testing.T) {
	t.Parallel()

	plan := integrity.Plan{
		integrity.DeleteItem{Collection: integrity.Monsters, ItemID: 3},
		integrity.PullItemFromRooms{Collection: integrity.Loot, ItemID: 8},
		integrity.SetRoomMonsters{RoomID: 2},
	}

	batch, err := Compile(plan)
	require.NoError(t, err)

	query, vars := batch.Builder().Build()

	assert.Contains(t, query, "DELETE type::record($v2_table, $v1_item_id);")
	assert.Contains(t, query, "UPDATE rooms SET loot = loot[WHERE id != $v3_item_id] WHERE $v3_item_id IN loot.id;")
	assert.Contains(t, query, "UPDATE type::record('rooms', $v4_room_id) SET monsters = $v5_value;")
	assert.Equal(t, "monsters", vars["v2_table"])
	assert.Equal(t, []interface{}{}, vars["v5_value"])
}

func TestCompile_HintChanges(t *testing.T) {
	t.Parallel()

	plan := integrity.Plan{
		integrity.PullUserHint{Email: "a@b.com", HintID: "h1"},
		integrity.PullUserHintsForRoom{RoomID: 5},
	}

	batch, err := Compile(plan)
	require.NoError(t, err)

	query, vars := batch.Builder().Build()

	assert.Contains(t, query, "UPDATE type::record('users', $v2_email) SET hints = (hints ?? [])[WHERE hint_id != $v1_hint_id];")
	assert.Contains(t, query, "WHERE $v3_room_id IN hints.referemces_room.room_id;")
	assert.Equal(t, "a@b.com", vars["v2_email"])
}

func TestCompile_RejectsUsersInRooms(t *testing.T) {
	t.Parallel()

	_, err := Compile(integrity.Plan{
		integrity.PullItemFromRooms{Collection: integrity.Users, ItemID: 1},
	})

	assert.Error(t, err)
}

func TestGraphRepository_Apply_RunsOneTransaction(t *testing.T) {
	t.Parallel()

	db := &fakeDB{}
	repo := NewGraphRepository(db)

	err := repo.Apply(context.Background(), integrity.Plan{
		integrity.DeleteRoom{RoomID: 1},
		integrity.PullConnectionsTo{PeerID: 1},
	})

	require.NoError(t, err)
	require.Len(t, db.calls, 1)
	assert.Contains(t, db.calls[0].query, "BEGIN TRANSACTION;")
	assert.Contains(t, db.calls[0].query, "DELETE type::record('rooms', $v1_room_id);")
}

func TestGraphRepository_Apply_EmptyPlan(t *testing.T) {
	t.Parallel()

	db := &fakeDB{}

	require.NoError(t, NewGraphRepository(db).Apply(context.Background(), nil))
	assert.Empty(t, db.calls)
}

func TestGraphRepository_Apply_PropagatesDuplicate(t *testing.T) {
	t.Parallel()

	db := &fakeDB{err: database.ErrDuplicate}

	err := NewGraphRepository(db).Apply(context.Background(), integrity.Plan{
		integrity.InsertRoom{Room: model.Room{RoomID: 1}},
	})

	assert.True(t, errors.Is(err, database.ErrDuplicate))
}

func TestGraphRepository_Snapshot(t *testing.T) {
	t.Parallel()

	db := &fakeDB{results: []interface{}{
		ok(map[string]interface{}{
			"id":      models.RecordID{Table: "rooms", ID: uint64(1)},
			"room_id": uint64(1), "room_name": "Hall", "dungeon_id": uint64(1),
		}),
		ok(map[string]interface{}{"id": models.RecordID{Table: "monsters", ID: uint64(2)}, "name": "Newt"}),
		ok(),
		ok(map[string]interface{}{
			"id": models.RecordID{Table: "users", ID: "a@b.com"}, "email": "a@b.com", "user_name": "rogue",
		}),
	}}

	snap, err := NewGraphRepository(db).Snapshot(context.Background())

	require.NoError(t, err)
	require.Len(t, snap.Rooms, 1)
	assert.Equal(t, "Hall", snap.Rooms[0].RoomName)
	require.Len(t, snap.Monsters, 1)
	assert.Equal(t, 2, snap.Monsters[0].ID)
	assert.Empty(t, snap.Loot)
	require.Len(t, snap.Users, 1)
	assert.Equal(t, "rogue", snap.Users[0].UserName)
}
