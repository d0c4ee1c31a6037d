package model

// Loot is a catalog item. InRooms lists every room that embeds it.
type Loot struct {
	ID      int         `json:"id"`
	Name    string      `json:"name"`
	Type1   string      `json:"type1"`
	Type2   string      `json:"type2"`
	Weight  float64     `json:"weight"`
	Gold    int         `json:"gold"`
	InRooms []Placement `json:"in_rooms,omitempty"`
}

// LootSnapshot is the copy of a loot item embedded in a room
type LootSnapshot struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Type1  string  `json:"type1"`
	Type2  string  `json:"type2"`
	Weight float64 `json:"weight"`
	Gold   int     `json:"gold"`
}

// Snapshot copies the loot item without its back-references
func (l *Loot) Snapshot() LootSnapshot {
	return LootSnapshot{
		ID:     l.ID,
		Name:   l.Name,
		Type1:  l.Type1,
		Type2:  l.Type2,
		Weight: l.Weight,
		Gold:   l.Gold,
	}
}

// ItemRef is an {id, name} pair, used for loot listings and dungeon room projections
type ItemRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CreateLootRequest represents a request to add a loot item to the catalog
type CreateLootRequest struct {
	Name   string  `json:"name"`
	Type1  string  `json:"type1"`
	Type2  string  `json:"type2"`
	Weight float64 `json:"weight"`
	Gold   int     `json:"gold"`
}

// Validate checks if the create request is valid
func (r *CreateLootRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Name == "" {
		errors = append(errors, FieldError{Field: "name", Message: "name is required"})
	}
	if r.Weight < 0 {
		errors = append(errors, FieldError{Field: "weight", Message: "weight cannot be negative"})
	}
	if r.Gold < 0 {
		errors = append(errors, FieldError{Field: "gold", Message: "gold cannot be negative"})
	}

	return errors
}
