package model

// Room field limits
const (
	MaxRoomNameLength     = 100
	MaxDungeonNameLength  = 100
	MaxDungeonLoreLength  = 4000
	MaxConnectionsPerRoom = 32
)

// RoomRef is the identity of a room as stored in another room's rooms_connected list
type RoomRef struct {
	RoomID   int    `json:"room_id"`
	RoomName string `json:"room_name"`
}

// RoomLocation identifies a room together with the dungeon it belongs to
type RoomLocation struct {
	RoomID      int    `json:"room_id"`
	RoomName    string `json:"room_name"`
	DungeonID   int    `json:"dungeon_id"`
	DungeonName string `json:"dungeon_name"`
}

// Placement is an in_rooms back-reference on a monster or loot document.
// Amount is how many times the room lists the item.
type Placement struct {
	RoomLocation
	Amount int `json:"amount,omitempty"`
}

// Room is a single room of a dungeon.
// Monsters, Loot and Hints are snapshot copies taken at write time.
type Room struct {
	RoomID         int               `json:"room_id"`
	DungeonID      int               `json:"dungeon_id"`
	DungeonName    string            `json:"dungeon_name"`
	DungeonLore    string            `json:"dungeon_lore"`
	RoomName       string            `json:"room_name"`
	RoomsConnected []RoomRef         `json:"rooms_connected"`
	Monsters       []MonsterSnapshot `json:"monsters"`
	Loot           []LootSnapshot    `json:"loot"`
	Hints          []RoomHint        `json:"hints"`
	InWaypoint     *string           `json:"in_waypoint,omitempty"`
	OutWaypoint    *string           `json:"out_waypoint,omitempty"`
}

// Ref returns the back-reference other rooms store for this room
func (r *Room) Ref() RoomRef {
	return RoomRef{RoomID: r.RoomID, RoomName: r.RoomName}
}

// Location returns the room identity used by placements and user hints
func (r *Room) Location() RoomLocation {
	return RoomLocation{
		RoomID:      r.RoomID,
		RoomName:    r.RoomName,
		DungeonID:   r.DungeonID,
		DungeonName: r.DungeonName,
	}
}

// IsConnectedTo reports whether rooms_connected lists roomID
func (r *Room) IsConnectedTo(roomID int) bool {
	for _, ref := range r.RoomsConnected {
		if ref.RoomID == roomID {
			return true
		}
	}
	return false
}

// CreateRoomRequest represents a request to create a room
type CreateRoomRequest struct {
	DungeonID      int     `json:"dungeon_id"`
	DungeonName    string  `json:"dungeon_name"`
	DungeonLore    string  `json:"dungeon_lore"`
	RoomName       string  `json:"room_name"`
	RoomsConnected []int   `json:"rooms_connected"`
	InWaypoint     *string `json:"in_waypoint,omitempty"`
	OutWaypoint    *string `json:"out_waypoint,omitempty"`
}

// Validate checks if the create request is valid
func (r *CreateRoomRequest) Validate() []FieldError {
	var errors []FieldError

	if r.DungeonID <= 0 {
		errors = append(errors, FieldError{Field: "dungeon_id", Message: "dungeon_id must be positive"})
	}
	if r.DungeonName == "" {
		errors = append(errors, FieldError{Field: "dungeon_name", Message: "dungeon_name is required"})
	} else if len(r.DungeonName) > MaxDungeonNameLength {
		errors = append(errors, FieldError{Field: "dungeon_name", Message: "dungeon_name must be 100 characters or less"})
	}
	if len(r.DungeonLore) > MaxDungeonLoreLength {
		errors = append(errors, FieldError{Field: "dungeon_lore", Message: "dungeon_lore must be 4000 characters or less"})
	}
	if r.RoomName == "" {
		errors = append(errors, FieldError{Field: "room_name", Message: "room_name is required"})
	} else if len(r.RoomName) > MaxRoomNameLength {
		errors = append(errors, FieldError{Field: "room_name", Message: "room_name must be 100 characters or less"})
	}
	if len(r.RoomsConnected) > MaxConnectionsPerRoom {
		errors = append(errors, FieldError{Field: "rooms_connected", Message: "too many connected rooms"})
	}

	return errors
}

// ReplaceIDsRequest carries the full replacement list for a room's
// monsters, loot or connections
type ReplaceIDsRequest struct {
	IDs []int `json:"ids"`
}
