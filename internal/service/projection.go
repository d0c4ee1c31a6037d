package service

import (
	"sort"

	"github.com/forgo/delve/internal/model"
)

// dedupe keeps one entry per key. The entry sits at the position of the first
// occurrence and holds the value of the last one.
func dedupe[T any](items []T, key func(T) int) []T {
	out := make([]T, 0, len(items))
	pos := make(map[int]int, len(items))
	for _, item := range items {
		k := key(item)
		if i, ok := pos[k]; ok {
			out[i] = item
			continue
		}
		pos[k] = len(out)
		out = append(out, item)
	}
	return out
}

// reshapePlacements drops the amount of every placement
func reshapePlacements(in []model.Placement) []model.Placement {
	if in == nil {
		return nil
	}
	out := make([]model.Placement, len(in))
	for i, p := range in {
		out[i] = model.Placement{RoomLocation: p.RoomLocation}
	}
	return out
}

// groupDungeons builds the dungeon list, ordered by dungeon id. The name comes
// from the room with the lowest room id.
func groupDungeons(locations []model.RoomLocation) []model.Dungeon {
	sorted := make([]model.RoomLocation, len(locations))
	copy(sorted, locations)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].RoomID < sorted[j].RoomID })

	seen := make(map[int]bool)
	dungeons := make([]model.Dungeon, 0)
	for _, loc := range sorted {
		if seen[loc.DungeonID] {
			continue
		}
		seen[loc.DungeonID] = true
		dungeons = append(dungeons, model.Dungeon{DungeonID: loc.DungeonID, Name: loc.DungeonName})
	}
	sort.SliceStable(dungeons, func(i, j int) bool { return dungeons[i].DungeonID < dungeons[j].DungeonID })
	return dungeons
}

func dungeonRoom(room *model.Room) model.DungeonRoom {
	dr := model.DungeonRoom{
		RoomID:         room.RoomID,
		RoomName:       room.RoomName,
		ConnectedRooms: room.RoomsConnected,
		Monsters:       make([]model.ItemRef, 0, len(room.Monsters)),
		Loots:          make([]model.ItemRef, 0, len(room.Loot)),
	}
	if dr.ConnectedRooms == nil {
		dr.ConnectedRooms = []model.RoomRef{}
	}

	for _, m := range dedupe(room.Monsters, func(m model.MonsterSnapshot) int { return m.ID }) {
		dr.Monsters = append(dr.Monsters, model.ItemRef{ID: m.ID, Name: m.Name})
	}
	for _, l := range dedupe(room.Loot, func(l model.LootSnapshot) int { return l.ID }) {
		dr.Loots = append(dr.Loots, model.ItemRef{ID: l.ID, Name: l.Name})
	}

	for _, h := range room.Hints {
		switch h.Category {
		case model.HintCategoryBug:
			dr.Bug++
		case model.HintCategoryHint:
			dr.Hint++
		case model.HintCategoryLore:
			dr.Lore++
		case model.HintCategorySuggestion:
			dr.Suggestion++
		}
	}
	return dr
}

func roomDetail(room *model.Room) *model.RoomDetail {
	detail := &model.RoomDetail{
		IDR:      room.RoomID,
		Name:     room.RoomName,
		InWP:     room.InWaypoint,
		OutWP:    room.OutWaypoint,
		Monsters: make([]model.MonsterDetail, 0, len(room.Monsters)),
		Loots:    make([]model.LootDetail, 0, len(room.Loot)),
		Hints:    room.Hints,
	}
	if detail.Hints == nil {
		detail.Hints = []model.RoomHint{}
	}

	for _, m := range dedupe(room.Monsters, func(m model.MonsterSnapshot) int { return m.ID }) {
		detail.Monsters = append(detail.Monsters, model.MonsterDetail{
			IDM:     m.ID,
			Name:    m.Name,
			Type:    m.Type,
			Level:   m.Level,
			Place:   m.Place,
			Exp:     m.Exp,
			ManPage: m.ManPage,
		})
	}
	for _, l := range dedupe(room.Loot, func(l model.LootSnapshot) int { return l.ID }) {
		detail.Loots = append(detail.Loots, model.LootDetail{
			IDL:    l.ID,
			Name:   l.Name,
			Type1:  l.Type1,
			Type2:  l.Type2,
			Weight: l.Weight,
			Gold:   l.Gold,
		})
	}
	return detail
}
