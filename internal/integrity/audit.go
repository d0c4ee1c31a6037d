package integrity

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/forgo/delve/internal/model"
)

// FindingKind classifies a broken reference
type FindingKind string

const (
	// OneSidedConnection: a room lists a peer that does not list it back
	OneSidedConnection FindingKind = "one_sided_connection"
	// DanglingConnection: a room lists a peer that does not exist
	DanglingConnection FindingKind = "dangling_connection"
	// DanglingSnapshot: a room embeds a monster or loot item that does not exist
	DanglingSnapshot FindingKind = "dangling_snapshot"
	// PlacementMismatch: a room lists an item whose in_rooms entry is missing or stale
	PlacementMismatch FindingKind = "placement_mismatch"
	// DanglingPlacement: an in_rooms entry names a room that does not exist
	DanglingPlacement FindingKind = "dangling_placement"
	// UnlistedPlacement: an in_rooms entry names a room that does not list the item
	UnlistedPlacement FindingKind = "unlisted_placement"
	// DanglingUserHint: a user hint references a room that does not exist
	DanglingUserHint FindingKind = "dangling_user_hint"
	// OrphanedHint: one of the two copies of a hint is missing
	OrphanedHint FindingKind = "orphaned_hint"
)

// Finding is one broken reference
type Finding struct {
	Kind       FindingKind `json:"kind"`
	Collection Collection  `json:"collection"`
	Key        string      `json:"key"`
	Detail     string      `json:"detail"`
}

// Report is the result of an audit
type Report struct {
	Findings []Finding
	Repairs  Plan
}

// Clean reports whether the audit found nothing
func (r *Report) Clean() bool {
	return len(r.Findings) == 0
}

// Audit checks every denormalized reference of snap and plans the repairs.
// Applying the repairs to snap yields a snapshot with a clean audit.
func Audit(snap Snapshot) *Report {
	a := &auditor{report: &Report{}}
	a.index(snap)

	for i := range a.rooms {
		room := &a.rooms[i]
		a.connections(room)
		a.monsters(room)
		a.loot(room)
		a.roomHints(room)
	}
	for i := range a.monsterDocs {
		m := &a.monsterDocs[i]
		a.placements(Monsters, m.ID, m.InRooms, a.monsterCounts)
	}
	for i := range a.lootDocs {
		l := &a.lootDocs[i]
		a.placements(Loot, l.ID, l.InRooms, a.lootCounts)
	}
	for i := range a.users {
		a.userHints(&a.users[i])
	}

	return a.report
}

type auditor struct {
	report *Report

	rooms       []model.Room
	monsterDocs []model.Monster
	lootDocs    []model.Loot
	users       []model.User

	roomByID    map[int]*model.Room
	monsterByID map[int]*model.Monster
	lootByID    map[int]*model.Loot
	userByEmail map[string]*model.User
	// hint ids present on each side
	userHintIDs map[string]map[string]bool
	roomHintIDs map[int]map[string]bool
	// per room counts after dangling snapshots are dropped
	monsterCounts map[int]map[int]int
	lootCounts    map[int]map[int]int
}

func (a *auditor) index(snap Snapshot) {
	a.rooms = slices.Clone(snap.Rooms)
	slices.SortFunc(a.rooms, func(x, y model.Room) int { return x.RoomID - y.RoomID })
	a.monsterDocs = slices.Clone(snap.Monsters)
	slices.SortFunc(a.monsterDocs, func(x, y model.Monster) int { return x.ID - y.ID })
	a.lootDocs = slices.Clone(snap.Loot)
	slices.SortFunc(a.lootDocs, func(x, y model.Loot) int { return x.ID - y.ID })
	a.users = slices.Clone(snap.Users)
	slices.SortFunc(a.users, func(x, y model.User) int {
		switch {
		case x.Email < y.Email:
			return -1
		case x.Email > y.Email:
			return 1
		}
		return 0
	})

	a.roomByID = make(map[int]*model.Room, len(a.rooms))
	a.roomHintIDs = make(map[int]map[string]bool, len(a.rooms))
	for i := range a.rooms {
		r := &a.rooms[i]
		a.roomByID[r.RoomID] = r
		ids := make(map[string]bool, len(r.Hints))
		for _, h := range r.Hints {
			ids[h.HintID] = true
		}
		a.roomHintIDs[r.RoomID] = ids
	}
	a.monsterByID = make(map[int]*model.Monster, len(a.monsterDocs))
	for i := range a.monsterDocs {
		a.monsterByID[a.monsterDocs[i].ID] = &a.monsterDocs[i]
	}
	a.lootByID = make(map[int]*model.Loot, len(a.lootDocs))
	for i := range a.lootDocs {
		a.lootByID[a.lootDocs[i].ID] = &a.lootDocs[i]
	}
	a.userByEmail = make(map[string]*model.User, len(a.users))
	a.userHintIDs = make(map[string]map[string]bool, len(a.users))
	for i := range a.users {
		u := &a.users[i]
		a.userByEmail[u.Email] = u
		ids := make(map[string]bool, len(u.Hints))
		for _, h := range u.Hints {
			ids[h.HintID] = true
		}
		a.userHintIDs[u.Email] = ids
	}
	a.monsterCounts = make(map[int]map[int]int)
	a.lootCounts = make(map[int]map[int]int)
}

func (a *auditor) find(kind FindingKind, coll Collection, key, detail string, repairs ...Change) {
	a.report.Findings = append(a.report.Findings, Finding{Kind: kind, Collection: coll, Key: key, Detail: detail})
	a.report.Repairs = append(a.report.Repairs, repairs...)
}

func (a *auditor) connections(room *model.Room) {
	key := strconv.Itoa(room.RoomID)
	seen := make(map[int]bool)
	for _, ref := range room.RoomsConnected {
		if seen[ref.RoomID] {
			continue
		}
		seen[ref.RoomID] = true

		peer, ok := a.roomByID[ref.RoomID]
		if !ok || ref.RoomID == room.RoomID {
			a.find(DanglingConnection, Rooms, key,
				fmt.Sprintf("connected to missing room %d", ref.RoomID),
				PullConnection{RoomID: room.RoomID, PeerID: ref.RoomID})
			continue
		}
		if !peer.IsConnectedTo(room.RoomID) {
			a.find(OneSidedConnection, Rooms, key,
				fmt.Sprintf("room %d does not list room %d back", peer.RoomID, room.RoomID),
				PushConnection{RoomID: peer.RoomID, Ref: room.Ref()})
		}
	}
}

func (a *auditor) monsters(room *model.Room) {
	key := strconv.Itoa(room.RoomID)
	kept := make([]model.MonsterSnapshot, 0, len(room.Monsters))
	for _, m := range room.Monsters {
		if _, ok := a.monsterByID[m.ID]; ok {
			kept = append(kept, m)
		}
	}
	if len(kept) != len(room.Monsters) {
		a.find(DanglingSnapshot, Rooms, key,
			fmt.Sprintf("%d monster snapshots reference deleted monsters", len(room.Monsters)-len(kept)),
			SetRoomMonsters{RoomID: room.RoomID, Monsters: kept})
	}

	ids := make([]int, len(kept))
	for i, m := range kept {
		ids[i] = m.ID
	}
	order, counts := countIDs(ids)
	a.monsterCounts[room.RoomID] = counts
	for _, id := range order {
		a.placement(Monsters, id, a.monsterByID[id].InRooms, room, counts[id])
	}
}

func (a *auditor) loot(room *model.Room) {
	key := strconv.Itoa(room.RoomID)
	kept := make([]model.LootSnapshot, 0, len(room.Loot))
	for _, l := range room.Loot {
		if _, ok := a.lootByID[l.ID]; ok {
			kept = append(kept, l)
		}
	}
	if len(kept) != len(room.Loot) {
		a.find(DanglingSnapshot, Rooms, key,
			fmt.Sprintf("%d loot snapshots reference deleted loot", len(room.Loot)-len(kept)),
			SetRoomLoot{RoomID: room.RoomID, Loot: kept})
	}

	ids := make([]int, len(kept))
	for i, l := range kept {
		ids[i] = l.ID
	}
	order, counts := countIDs(ids)
	a.lootCounts[room.RoomID] = counts
	for _, id := range order {
		a.placement(Loot, id, a.lootByID[id].InRooms, room, counts[id])
	}
}

// placement checks the in_rooms entry an item should carry for room
func (a *auditor) placement(coll Collection, itemID int, inRooms []model.Placement, room *model.Room, amount int) {
	want := model.Placement{RoomLocation: room.Location(), Amount: amount}
	matches := 0
	exact := false
	for _, p := range inRooms {
		if p.RoomID == room.RoomID {
			matches++
			exact = p == want
		}
	}
	if matches == 1 && exact {
		return
	}
	a.find(PlacementMismatch, coll, strconv.Itoa(itemID),
		fmt.Sprintf("in_rooms entry for room %d should have amount %d", room.RoomID, amount),
		SetPlacement{Collection: coll, ItemID: itemID, Placement: want})
}

// placements checks the in_rooms entries of an item against the rooms they name
func (a *auditor) placements(coll Collection, itemID int, inRooms []model.Placement, counts map[int]map[int]int) {
	key := strconv.Itoa(itemID)
	seen := make(map[int]bool)
	for _, p := range inRooms {
		if seen[p.RoomID] {
			continue
		}
		seen[p.RoomID] = true

		if _, ok := a.roomByID[p.RoomID]; !ok {
			a.find(DanglingPlacement, coll, key,
				fmt.Sprintf("placed in missing room %d", p.RoomID),
				PullPlacement{Collection: coll, ItemID: itemID, RoomID: p.RoomID})
			continue
		}
		if counts[p.RoomID][itemID] == 0 {
			a.find(UnlistedPlacement, coll, key,
				fmt.Sprintf("room %d does not list it", p.RoomID),
				PullPlacement{Collection: coll, ItemID: itemID, RoomID: p.RoomID})
		}
	}
}

func (a *auditor) roomHints(room *model.Room) {
	key := strconv.Itoa(room.RoomID)
	for _, h := range room.Hints {
		user, ok := a.userByEmail[h.PublishedBy.Email]
		if !ok {
			a.find(OrphanedHint, Rooms, key,
				fmt.Sprintf("hint %s was posted by missing user %s", h.HintID, h.PublishedBy.Email),
				PullRoomHint{RoomID: room.RoomID, HintID: h.HintID})
			continue
		}
		if !a.userHintIDs[user.Email][h.HintID] {
			a.find(OrphanedHint, Users, user.Email,
				fmt.Sprintf("missing copy of hint %s on room %d", h.HintID, room.RoomID),
				PushUserHint{Email: user.Email, Hint: model.UserHint{
					HintID:         h.HintID,
					Text:           h.Text,
					Category:       h.Category,
					CreationDate:   h.CreationDate,
					ReferencesRoom: room.Location(),
				}})
			a.userHintIDs[user.Email][h.HintID] = true
		}
	}
}

func (a *auditor) userHints(user *model.User) {
	for _, h := range user.Hints {
		room, ok := a.roomByID[h.ReferencesRoom.RoomID]
		if !ok {
			a.find(DanglingUserHint, Users, user.Email,
				fmt.Sprintf("hint %s references missing room %d", h.HintID, h.ReferencesRoom.RoomID),
				PullUserHint{Email: user.Email, HintID: h.HintID})
			continue
		}
		if !a.roomHintIDs[room.RoomID][h.HintID] {
			a.find(OrphanedHint, Rooms, strconv.Itoa(room.RoomID),
				fmt.Sprintf("missing copy of hint %s by %s", h.HintID, user.Email),
				PushRoomHint{RoomID: room.RoomID, Hint: model.RoomHint{
					HintID:       h.HintID,
					Text:         h.Text,
					Category:     h.Category,
					CreationDate: h.CreationDate,
					PublishedBy:  user.Ref(),
				}})
			a.roomHintIDs[room.RoomID][h.HintID] = true
		}
	}
}
