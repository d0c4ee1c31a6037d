package integrity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/delve/internal/model"
)

func room(id int, name string, connected ...model.RoomRef) model.Room {
	return model.Room{
		RoomID:         id,
		DungeonID:      1,
		DungeonName:    "Sunken Keep",
		RoomName:       name,
		RoomsConnected: connected,
		Monsters:       []model.MonsterSnapshot{},
		Loot:           []model.LootSnapshot{},
		Hints:          []model.RoomHint{},
	}
}

func monster(id int, name string) model.Monster {
	return model.Monster{ID: id, Name: name, Type: "a", Level: 2, Place: "cave", Exp: 10, ManPage: name + "(6)"}
}

func TestConnectNewRoom_PushesReciprocalRefs(t *testing.T) {
	a := room(1, "Gatehouse")
	b := room(2, "Armory")
	c := room(3, "Well")

	plan := ConnectNewRoom(c, []model.Room{a, b, a})

	require.Len(t, plan, 3)
	ins, ok := plan[0].(InsertRoom)
	require.True(t, ok)
	assert.Equal(t, []model.RoomRef{{RoomID: 1, RoomName: "Gatehouse"}, {RoomID: 2, RoomName: "Armory"}}, ins.Room.RoomsConnected)
	assert.Equal(t, PushConnection{RoomID: 1, Ref: model.RoomRef{RoomID: 3, RoomName: "Well"}}, plan[1])
	assert.Equal(t, PushConnection{RoomID: 2, Ref: model.RoomRef{RoomID: 3, RoomName: "Well"}}, plan[2])
}

func TestConnectNewRoom_InitializesEmbeddedLists(t *testing.T) {
	r := model.Room{RoomID: 4, RoomName: "Crypt"}

	plan := ConnectNewRoom(r, nil)

	ins := plan[0].(InsertRoom)
	assert.NotNil(t, ins.Room.RoomsConnected)
	assert.NotNil(t, ins.Room.Monsters)
	assert.NotNil(t, ins.Room.Loot)
	assert.NotNil(t, ins.Room.Hints)
}

func TestReplaceConnections_PullsDroppedAndPushesNew(t *testing.T) {
	r := room(1, "Gatehouse", model.RoomRef{RoomID: 2, RoomName: "Armory"}, model.RoomRef{RoomID: 3, RoomName: "Well"})
	armory := room(2, "Armory")
	crypt := room(4, "Crypt")

	plan := ReplaceConnections(r, []model.Room{armory, crypt})

	assert.Equal(t, Plan{
		SetConnections{RoomID: 1, Refs: []model.RoomRef{{RoomID: 2, RoomName: "Armory"}, {RoomID: 4, RoomName: "Crypt"}}},
		PullConnection{RoomID: 3, PeerID: 1},
		PushConnection{RoomID: 2, Ref: model.RoomRef{RoomID: 1, RoomName: "Gatehouse"}},
		PushConnection{RoomID: 4, Ref: model.RoomRef{RoomID: 1, RoomName: "Gatehouse"}},
	}, plan)
}

func TestReplaceConnections_IgnoresSelf(t *testing.T) {
	r := room(1, "Gatehouse")

	plan := ReplaceConnections(r, []model.Room{r})

	assert.Equal(t, Plan{SetConnections{RoomID: 1, Refs: []model.RoomRef{}}}, plan)
}

func TestReplaceMonsters_CountsDuplicatesAndPullsRemoved(t *testing.T) {
	newt := monster(1, "newt")
	jackal := monster(2, "jackal")
	r := room(5, "Den")
	r.Monsters = []model.MonsterSnapshot{jackal.Snapshot()}
	catalog := map[int]model.Monster{1: newt, 2: jackal}

	plan := ReplaceMonsters(r, []int{1, 1}, catalog)

	require.Len(t, plan, 3)
	set := plan[0].(SetRoomMonsters)
	assert.Equal(t, []model.MonsterSnapshot{newt.Snapshot(), newt.Snapshot()}, set.Monsters)
	assert.Equal(t, SetPlacement{
		Collection: Monsters,
		ItemID:     1,
		Placement:  model.Placement{RoomLocation: r.Location(), Amount: 2},
	}, plan[1])
	assert.Equal(t, PullPlacement{Collection: Monsters, ItemID: 2, RoomID: 5}, plan[2])
}

func TestReplaceLoot_EmptyListClearsRoom(t *testing.T) {
	ring := model.Loot{ID: 9, Name: "ring"}
	r := room(5, "Den")
	r.Loot = []model.LootSnapshot{ring.Snapshot(), ring.Snapshot()}

	plan := ReplaceLoot(r, nil, map[int]model.Loot{})

	assert.Equal(t, Plan{
		SetRoomLoot{RoomID: 5, Loot: []model.LootSnapshot{}},
		PullPlacement{Collection: Loot, ItemID: 9, RoomID: 5},
	}, plan)
}

func TestRemoveRoom_StripsEveryReference(t *testing.T) {
	plan := RemoveRoom(room(7, "Vault"))

	assert.Equal(t, Plan{
		DeleteRoom{RoomID: 7},
		PullConnectionsTo{PeerID: 7},
		PullPlacementsForRoom{RoomID: 7},
		PullUserHintsForRoom{RoomID: 7},
	}, plan)
}

func TestRemoveMonsterAndLoot(t *testing.T) {
	assert.Equal(t, Plan{DeleteItem{Collection: Monsters, ItemID: 3}, PullItemFromRooms{Collection: Monsters, ItemID: 3}}, RemoveMonster(3))
	assert.Equal(t, Plan{DeleteItem{Collection: Loot, ItemID: 3}, PullItemFromRooms{Collection: Loot, ItemID: 3}}, RemoveLoot(3))
}

func TestComment_SharesHintID(t *testing.T) {
	user := model.User{Email: "rogue@example.com", UserName: "rogue", Country: "FR"}
	r := room(2, "Armory")
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	plan, hintID := Comment(user, r, "watch the floor", model.HintCategoryHint, at)

	_, err := uuid.Parse(hintID)
	require.NoError(t, err)
	require.Len(t, plan, 2)

	uh := plan[0].(PushUserHint)
	rh := plan[1].(PushRoomHint)
	assert.Equal(t, "rogue@example.com", uh.Email)
	assert.Equal(t, hintID, uh.Hint.HintID)
	assert.Equal(t, hintID, rh.Hint.HintID)
	assert.Equal(t, r.Location(), uh.Hint.ReferencesRoom)
	assert.Equal(t, user.Ref(), rh.Hint.PublishedBy)
	assert.Equal(t, at, rh.Hint.CreationDate)
}

func TestPlan_Describe(t *testing.T) {
	got := RemoveMonster(3).Describe()

	assert.Equal(t, []string{"delete monsters:3", "remove monsters:3 from every room"}, got)
}
