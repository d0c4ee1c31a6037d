package model

// Monster is a catalog monster. InRooms lists every room that embeds it.
type Monster struct {
	ID      int         `json:"id"`
	Name    string      `json:"name"`
	Type    string      `json:"type"`
	Level   int         `json:"level"`
	Place   string      `json:"place"`
	Exp     int         `json:"exp"`
	ManPage string      `json:"man_page"`
	InRooms []Placement `json:"in_rooms,omitempty"`
}

// MonsterSnapshot is the copy of a monster embedded in a room
type MonsterSnapshot struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Level   int    `json:"level"`
	Place   string `json:"place"`
	Exp     int    `json:"exp"`
	ManPage string `json:"man_page"`
}

// Snapshot copies the monster without its back-references
func (m *Monster) Snapshot() MonsterSnapshot {
	return MonsterSnapshot{
		ID:      m.ID,
		Name:    m.Name,
		Type:    m.Type,
		Level:   m.Level,
		Place:   m.Place,
		Exp:     m.Exp,
		ManPage: m.ManPage,
	}
}

// MonsterSummary is the list projection of a monster
type MonsterSummary struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Level int    `json:"level"`
	Type  string `json:"type"`
}

// CreateMonsterRequest represents a request to add a monster to the catalog
type CreateMonsterRequest struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Level   int    `json:"level"`
	Place   string `json:"place"`
	Exp     int    `json:"exp"`
	ManPage string `json:"man_page"`
}

// Validate checks if the create request is valid
func (r *CreateMonsterRequest) Validate() []FieldError {
	var errors []FieldError

	if r.Name == "" {
		errors = append(errors, FieldError{Field: "name", Message: "name is required"})
	}
	if r.Level < 0 {
		errors = append(errors, FieldError{Field: "level", Message: "level cannot be negative"})
	}
	if r.Exp < 0 {
		errors = append(errors, FieldError{Field: "exp", Message: "exp cannot be negative"})
	}

	return errors
}
