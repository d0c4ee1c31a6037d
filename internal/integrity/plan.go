package integrity

import (
	"github.com/forgo/delve/internal/model"
)

// Collection names a catalog table
type Collection string

const (
	Rooms    Collection = "rooms"
	Monsters Collection = "monsters"
	Loot     Collection = "loot"
	Users    Collection = "users"
)

// Change is one step of a Plan
type Change interface {
	// Describe returns a short human readable summary, used in logs and audit reports
	Describe() string
	change()
}

// Plan is an ordered list of changes applied atomically
type Plan []Change

// Describe lists the summary of every change
func (p Plan) Describe() []string {
	out := make([]string, len(p))
	for i, c := range p {
		out[i] = c.Describe()
	}
	return out
}

// ============================================================================
// Documents
// ============================================================================

// InsertRoom creates a room document
type InsertRoom struct {
	Room model.Room
}

// DeleteRoom removes a room document
type DeleteRoom struct {
	RoomID int
}

// DeleteItem removes a monster or loot document
type DeleteItem struct {
	Collection Collection
	ItemID     int
}

// ============================================================================
// Room connections
// ============================================================================

// PushConnection adds ref to a room's rooms_connected, replacing any entry for the same room
type PushConnection struct {
	RoomID int
	Ref    model.RoomRef
}

// PullConnection removes every entry for PeerID from a room's rooms_connected
type PullConnection struct {
	RoomID int
	PeerID int
}

// PullConnectionsTo removes PeerID from the rooms_connected of every room
type PullConnectionsTo struct {
	PeerID int
}

// SetConnections replaces a room's rooms_connected
type SetConnections struct {
	RoomID int
	Refs   []model.RoomRef
}

// ============================================================================
// Monsters and loot
// ============================================================================

// SetRoomMonsters replaces the monster snapshots embedded in a room
type SetRoomMonsters struct {
	RoomID   int
	Monsters []model.MonsterSnapshot
}

// SetRoomLoot replaces the loot snapshots embedded in a room
type SetRoomLoot struct {
	RoomID int
	Loot   []model.LootSnapshot
}

// SetPlacement writes the in_rooms entry of an item for one room, replacing any previous entry
type SetPlacement struct {
	Collection Collection
	ItemID     int
	Placement  model.Placement
}

// PullPlacement removes the in_rooms entry of an item for one room
type PullPlacement struct {
	Collection Collection
	ItemID     int
	RoomID     int
}

// PullPlacementsForRoom removes the in_rooms entries for RoomID from every monster and loot item
type PullPlacementsForRoom struct {
	RoomID int
}

// PullItemFromRooms removes every snapshot of an item from every room
type PullItemFromRooms struct {
	Collection Collection
	ItemID     int
}

// ============================================================================
// Hints
// ============================================================================

// PushUserHint appends a hint to a user
type PushUserHint struct {
	Email string
	Hint  model.UserHint
}

// PushRoomHint appends a hint to a room
type PushRoomHint struct {
	RoomID int
	Hint   model.RoomHint
}

// PullUserHint removes one hint from a user
type PullUserHint struct {
	Email  string
	HintID string
}

// PullRoomHint removes one hint from a room
type PullRoomHint struct {
	RoomID int
	HintID string
}

// PullUserHintsForRoom removes every user hint that references RoomID
type PullUserHintsForRoom struct {
	RoomID int
}

func (InsertRoom) change()            {}
func (DeleteRoom) change()            {}
func (DeleteItem) change()            {}
func (PushConnection) change()        {}
func (PullConnection) change()        {}
func (PullConnectionsTo) change()     {}
func (SetConnections) change()        {}
func (SetRoomMonsters) change()       {}
func (SetRoomLoot) change()           {}
func (SetPlacement) change()          {}
func (PullPlacement) change()         {}
func (PullPlacementsForRoom) change() {}
func (PullItemFromRooms) change()     {}
func (PushUserHint) change()          {}
func (PushRoomHint) change()          {}
func (PullUserHint) change()          {}
func (PullRoomHint) change()          {}
func (PullUserHintsForRoom) change()  {}
