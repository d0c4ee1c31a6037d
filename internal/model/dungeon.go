package model

// Dungeon is derived by grouping rooms on dungeon_id
type Dungeon struct {
	DungeonID int    `json:"dungeon_id"`
	Name      string `json:"name"`
}

// DungeonDetail is a dungeon with a summary of each of its rooms
type DungeonDetail struct {
	ID    int           `json:"id"`
	Name  string        `json:"name"`
	Rooms []DungeonRoom `json:"rooms"`
}

// DungeonRoom summarizes a room inside a dungeon detail.
// Monsters and Loots hold each id at most once; the hint fields count hints per category.
type DungeonRoom struct {
	RoomID         int       `json:"room_id"`
	RoomName       string    `json:"room_name"`
	ConnectedRooms []RoomRef `json:"connected_rooms"`
	Monsters       []ItemRef `json:"monsters"`
	Loots          []ItemRef `json:"loots"`
	Bug            int       `json:"bug"`
	Hint           int       `json:"hint"`
	Lore           int       `json:"lore"`
	Suggestion     int       `json:"suggestion"`
}

// RoomDetail is the detail projection of a single room. The abbreviated keys
// are part of the published response format.
type RoomDetail struct {
	IDR      int             `json:"idR"`
	Name     string          `json:"name"`
	InWP     *string         `json:"inWP"`
	OutWP    *string         `json:"outWP"`
	Monsters []MonsterDetail `json:"monsters"`
	Loots    []LootDetail    `json:"loots"`
	Hints    []RoomHint      `json:"hints"`
}

// MonsterDetail is a monster as shown in a room detail
type MonsterDetail struct {
	IDM     int    `json:"idM"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Level   int    `json:"level"`
	Place   string `json:"place"`
	Exp     int    `json:"exp"`
	ManPage string `json:"manPage"`
}

// LootDetail is a loot item as shown in a room detail
type LootDetail struct {
	IDL    int     `json:"idL"`
	Name   string  `json:"name"`
	Type1  string  `json:"type1"`
	Type2  string  `json:"type2"`
	Weight float64 `json:"weight"`
	Gold   int     `json:"gold"`
}
