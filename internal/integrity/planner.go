package integrity

import (
	"time"

	"github.com/google/uuid"

	"github.com/forgo/delve/internal/model"
)

// ConnectNewRoom plans the creation of room connected to peers.
// The room stores a ref to every peer and every peer gets the reciprocal ref.
func ConnectNewRoom(room model.Room, peers []model.Room) Plan {
	peers = distinctRooms(peers, room.RoomID)

	room.RoomsConnected = make([]model.RoomRef, 0, len(peers))
	for i := range peers {
		room.RoomsConnected = append(room.RoomsConnected, peers[i].Ref())
	}
	if room.Monsters == nil {
		room.Monsters = []model.MonsterSnapshot{}
	}
	if room.Loot == nil {
		room.Loot = []model.LootSnapshot{}
	}
	if room.Hints == nil {
		room.Hints = []model.RoomHint{}
	}

	plan := Plan{InsertRoom{Room: room}}
	for i := range peers {
		plan = append(plan, PushConnection{RoomID: peers[i].RoomID, Ref: room.Ref()})
	}
	return plan
}

// ReplaceConnections plans replacing the connections of room with peers.
// Peers that are dropped lose their reciprocal ref, new peers gain one.
func ReplaceConnections(room model.Room, peers []model.Room) Plan {
	peers = distinctRooms(peers, room.RoomID)

	refs := make([]model.RoomRef, 0, len(peers))
	keep := make(map[int]bool, len(peers))
	for i := range peers {
		refs = append(refs, peers[i].Ref())
		keep[peers[i].RoomID] = true
	}

	plan := Plan{SetConnections{RoomID: room.RoomID, Refs: refs}}
	for _, old := range room.RoomsConnected {
		if !keep[old.RoomID] && old.RoomID != room.RoomID {
			plan = append(plan, PullConnection{RoomID: old.RoomID, PeerID: room.RoomID})
			keep[old.RoomID] = true // pulled once even if listed twice
		}
	}
	for i := range peers {
		plan = append(plan, PushConnection{RoomID: peers[i].RoomID, Ref: room.Ref()})
	}
	return plan
}

// ReplaceMonsters plans replacing the monsters embedded in room with fresh
// snapshots of ids. Duplicate ids stay duplicated; each listed monster gets a
// placement whose amount is its number of occurrences, and monsters no longer
// listed lose their placement.
func ReplaceMonsters(room model.Room, ids []int, catalog map[int]model.Monster) Plan {
	snapshots := make([]model.MonsterSnapshot, 0, len(ids))
	listed := make([]int, 0, len(ids))
	for _, id := range ids {
		m, ok := catalog[id]
		if !ok {
			continue
		}
		snapshots = append(snapshots, m.Snapshot())
		listed = append(listed, id)
	}

	previous := make([]int, 0, len(room.Monsters))
	for _, m := range room.Monsters {
		previous = append(previous, m.ID)
	}

	plan := Plan{SetRoomMonsters{RoomID: room.RoomID, Monsters: snapshots}}
	return append(plan, placements(Monsters, room, listed, previous)...)
}

// ReplaceLoot is ReplaceMonsters for loot
func ReplaceLoot(room model.Room, ids []int, catalog map[int]model.Loot) Plan {
	snapshots := make([]model.LootSnapshot, 0, len(ids))
	listed := make([]int, 0, len(ids))
	for _, id := range ids {
		l, ok := catalog[id]
		if !ok {
			continue
		}
		snapshots = append(snapshots, l.Snapshot())
		listed = append(listed, id)
	}

	previous := make([]int, 0, len(room.Loot))
	for _, l := range room.Loot {
		previous = append(previous, l.ID)
	}

	plan := Plan{SetRoomLoot{RoomID: room.RoomID, Loot: snapshots}}
	return append(plan, placements(Loot, room, listed, previous)...)
}

// RemoveRoom plans deleting room together with every connection, placement
// and user hint that references it
func RemoveRoom(room model.Room) Plan {
	return Plan{
		DeleteRoom{RoomID: room.RoomID},
		PullConnectionsTo{PeerID: room.RoomID},
		PullPlacementsForRoom{RoomID: room.RoomID},
		PullUserHintsForRoom{RoomID: room.RoomID},
	}
}

// RemoveMonster plans deleting a monster and its snapshots in every room
func RemoveMonster(id int) Plan {
	return Plan{
		DeleteItem{Collection: Monsters, ItemID: id},
		PullItemFromRooms{Collection: Monsters, ItemID: id},
	}
}

// RemoveLoot plans deleting a loot item and its snapshots in every room
func RemoveLoot(id int) Plan {
	return Plan{
		DeleteItem{Collection: Loot, ItemID: id},
		PullItemFromRooms{Collection: Loot, ItemID: id},
	}
}

// Comment plans a hint posted by user on room. Both copies share a new hint id,
// which is returned along with the plan.
func Comment(user model.User, room model.Room, text string, category model.HintCategory, at time.Time) (Plan, string) {
	hintID := uuid.NewString()
	at = at.UTC()

	plan := Plan{
		PushUserHint{
			Email: user.Email,
			Hint: model.UserHint{
				HintID:         hintID,
				Text:           text,
				Category:       category,
				CreationDate:   at,
				ReferencesRoom: room.Location(),
			},
		},
		PushRoomHint{
			RoomID: room.RoomID,
			Hint: model.RoomHint{
				HintID:       hintID,
				Text:         text,
				Category:     category,
				CreationDate: at,
				PublishedBy:  user.Ref(),
			},
		},
	}
	return plan, hintID
}

// placements writes a placement for every listed id and pulls the ones only in previous
func placements(coll Collection, room model.Room, listed, previous []int) Plan {
	order, counts := countIDs(listed)

	var plan Plan
	for _, id := range order {
		plan = append(plan, SetPlacement{
			Collection: coll,
			ItemID:     id,
			Placement:  model.Placement{RoomLocation: room.Location(), Amount: counts[id]},
		})
	}

	pulled := make(map[int]bool)
	for _, id := range previous {
		if counts[id] > 0 || pulled[id] {
			continue
		}
		pulled[id] = true
		plan = append(plan, PullPlacement{Collection: coll, ItemID: id, RoomID: room.RoomID})
	}
	return plan
}

// countIDs returns the distinct ids in first-seen order and their occurrence counts
func countIDs(ids []int) ([]int, map[int]int) {
	counts := make(map[int]int, len(ids))
	order := make([]int, 0, len(ids))
	for _, id := range ids {
		if counts[id] == 0 {
			order = append(order, id)
		}
		counts[id]++
	}
	return order, counts
}

// distinctRooms drops repeated rooms and self, keeping first occurrences
func distinctRooms(rooms []model.Room, self int) []model.Room {
	seen := make(map[int]bool, len(rooms))
	out := make([]model.Room, 0, len(rooms))
	for _, r := range rooms {
		if r.RoomID == self || seen[r.RoomID] {
			continue
		}
		seen[r.RoomID] = true
		out = append(out, r)
	}
	return out
}
