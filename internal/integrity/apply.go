package integrity

import (
	"errors"
	"fmt"
	"slices"

	"github.com/forgo/delve/internal/model"
)

// ErrDocumentExists is returned by Snapshot.Apply when a plan inserts an existing key
var ErrDocumentExists = errors.New("document already exists")

// Snapshot is the full content of the catalog
type Snapshot struct {
	Rooms    []model.Room
	Monsters []model.Monster
	Loot     []model.Loot
	Users    []model.User
}

// Apply runs plan against the snapshot. Either every change is applied or,
// when the plan inserts a room that already exists, none is. Changes that
// target a missing document are no-ops.
func (s *Snapshot) Apply(plan Plan) error {
	for _, c := range plan {
		if ins, ok := c.(InsertRoom); ok && s.roomIndex(ins.Room.RoomID) >= 0 {
			return fmt.Errorf("%w: rooms:%d", ErrDocumentExists, ins.Room.RoomID)
		}
	}
	for _, c := range plan {
		s.apply(c)
	}
	return nil
}

func (s *Snapshot) apply(c Change) {
	switch c := c.(type) {
	case InsertRoom:
		s.Rooms = append(s.Rooms, c.Room)

	case DeleteRoom:
		s.Rooms = slices.DeleteFunc(slices.Clone(s.Rooms), func(r model.Room) bool { return r.RoomID == c.RoomID })

	case DeleteItem:
		switch c.Collection {
		case Monsters:
			s.Monsters = slices.DeleteFunc(slices.Clone(s.Monsters), func(m model.Monster) bool { return m.ID == c.ItemID })
		case Loot:
			s.Loot = slices.DeleteFunc(slices.Clone(s.Loot), func(l model.Loot) bool { return l.ID == c.ItemID })
		}

	case PushConnection:
		s.updateRoom(c.RoomID, func(r *model.Room) {
			r.RoomsConnected = append(withoutRef(r.RoomsConnected, c.Ref.RoomID), c.Ref)
		})

	case PullConnection:
		s.updateRoom(c.RoomID, func(r *model.Room) {
			r.RoomsConnected = withoutRef(r.RoomsConnected, c.PeerID)
		})

	case PullConnectionsTo:
		for i := range s.Rooms {
			if s.Rooms[i].IsConnectedTo(c.PeerID) {
				s.Rooms[i].RoomsConnected = withoutRef(s.Rooms[i].RoomsConnected, c.PeerID)
			}
		}

	case SetConnections:
		s.updateRoom(c.RoomID, func(r *model.Room) { r.RoomsConnected = slices.Clone(c.Refs) })

	case SetRoomMonsters:
		s.updateRoom(c.RoomID, func(r *model.Room) { r.Monsters = slices.Clone(c.Monsters) })

	case SetRoomLoot:
		s.updateRoom(c.RoomID, func(r *model.Room) { r.Loot = slices.Clone(c.Loot) })

	case SetPlacement:
		s.updatePlacements(c.Collection, c.ItemID, func(in []model.Placement) []model.Placement {
			return append(withoutPlacement(in, c.Placement.RoomID), c.Placement)
		})

	case PullPlacement:
		s.updatePlacements(c.Collection, c.ItemID, func(in []model.Placement) []model.Placement {
			return withoutPlacement(in, c.RoomID)
		})

	case PullPlacementsForRoom:
		for i := range s.Monsters {
			s.Monsters[i].InRooms = withoutPlacement(s.Monsters[i].InRooms, c.RoomID)
		}
		for i := range s.Loot {
			s.Loot[i].InRooms = withoutPlacement(s.Loot[i].InRooms, c.RoomID)
		}

	case PullItemFromRooms:
		for i := range s.Rooms {
			r := &s.Rooms[i]
			switch c.Collection {
			case Monsters:
				r.Monsters = slices.DeleteFunc(slices.Clone(r.Monsters), func(m model.MonsterSnapshot) bool { return m.ID == c.ItemID })
			case Loot:
				r.Loot = slices.DeleteFunc(slices.Clone(r.Loot), func(l model.LootSnapshot) bool { return l.ID == c.ItemID })
			}
		}

	case PushUserHint:
		s.updateUser(c.Email, func(u *model.User) {
			u.Hints = append(slices.Clone(u.Hints), c.Hint)
		})

	case PushRoomHint:
		s.updateRoom(c.RoomID, func(r *model.Room) {
			r.Hints = append(slices.Clone(r.Hints), c.Hint)
		})

	case PullUserHint:
		s.updateUser(c.Email, func(u *model.User) {
			u.Hints = slices.DeleteFunc(slices.Clone(u.Hints), func(h model.UserHint) bool { return h.HintID == c.HintID })
		})

	case PullRoomHint:
		s.updateRoom(c.RoomID, func(r *model.Room) {
			r.Hints = slices.DeleteFunc(slices.Clone(r.Hints), func(h model.RoomHint) bool { return h.HintID == c.HintID })
		})

	case PullUserHintsForRoom:
		for i := range s.Users {
			u := &s.Users[i]
			u.Hints = slices.DeleteFunc(slices.Clone(u.Hints), func(h model.UserHint) bool {
				return h.ReferencesRoom.RoomID == c.RoomID
			})
		}
	}
}

func (s *Snapshot) roomIndex(roomID int) int {
	return slices.IndexFunc(s.Rooms, func(r model.Room) bool { return r.RoomID == roomID })
}

func (s *Snapshot) updateRoom(roomID int, fn func(*model.Room)) {
	if i := s.roomIndex(roomID); i >= 0 {
		fn(&s.Rooms[i])
	}
}

func (s *Snapshot) updateUser(email string, fn func(*model.User)) {
	if i := slices.IndexFunc(s.Users, func(u model.User) bool { return u.Email == email }); i >= 0 {
		fn(&s.Users[i])
	}
}

func (s *Snapshot) updatePlacements(coll Collection, id int, fn func([]model.Placement) []model.Placement) {
	switch coll {
	case Monsters:
		if i := slices.IndexFunc(s.Monsters, func(m model.Monster) bool { return m.ID == id }); i >= 0 {
			s.Monsters[i].InRooms = fn(s.Monsters[i].InRooms)
		}
	case Loot:
		if i := slices.IndexFunc(s.Loot, func(l model.Loot) bool { return l.ID == id }); i >= 0 {
			s.Loot[i].InRooms = fn(s.Loot[i].InRooms)
		}
	}
}

// withoutRef returns a new slice without the refs to roomID
func withoutRef(refs []model.RoomRef, roomID int) []model.RoomRef {
	out := make([]model.RoomRef, 0, len(refs))
	for _, ref := range refs {
		if ref.RoomID != roomID {
			out = append(out, ref)
		}
	}
	return out
}

// withoutPlacement returns a new slice without the placements in roomID
func withoutPlacement(in []model.Placement, roomID int) []model.Placement {
	out := make([]model.Placement, 0, len(in))
	for _, p := range in {
		if p.RoomID != roomID {
			out = append(out, p)
		}
	}
	return out
}
