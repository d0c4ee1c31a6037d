package service

import (
	"context"
	"sort"
	"strings"

	"github.com/forgo/delve/internal/model"
)

// QueryService answers read-only catalog lookups. It never writes.
type QueryService struct {
	roomRepo    RoomRepository
	monsterRepo MonsterRepository
	lootRepo    LootRepository
	userRepo    UserRepository
}

// QueryServiceConfig holds configuration for the query service
type QueryServiceConfig struct {
	RoomRepo    RoomRepository
	MonsterRepo MonsterRepository
	LootRepo    LootRepository
	UserRepo    UserRepository
}

// NewQueryService creates a new query service
func NewQueryService(cfg QueryServiceConfig) *QueryService {
	return &QueryService{
		roomRepo:    cfg.RoomRepo,
		monsterRepo: cfg.MonsterRepo,
		lootRepo:    cfg.LootRepo,
		userRepo:    cfg.UserRepo,
	}
}

// ListLoot returns every loot item as {id, name}
func (s *QueryService) ListLoot(ctx context.Context) ([]model.ItemRef, error) {
	return s.lootRepo.List(ctx)
}

// ListMonsters returns every monster as {id, name, level, type}
func (s *QueryService) ListMonsters(ctx context.Context) ([]model.MonsterSummary, error) {
	return s.monsterRepo.List(ctx)
}

// ListUsers returns every user as {email, user_name, country}
func (s *QueryService) ListUsers(ctx context.Context) ([]model.UserRef, error) {
	return s.userRepo.List(ctx)
}

// GetLoot returns a loot item with its room placements, without amounts
func (s *QueryService) GetLoot(ctx context.Context, id int) (*model.Loot, error) {
	loot, err := s.lootRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if loot == nil {
		return nil, ErrLootNotFound
	}
	loot.InRooms = reshapePlacements(loot.InRooms)
	return loot, nil
}

// GetMonster returns a monster with its room placements, without amounts
func (s *QueryService) GetMonster(ctx context.Context, id int) (*model.Monster, error) {
	monster, err := s.monsterRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if monster == nil {
		return nil, ErrMonsterNotFound
	}
	monster.InRooms = reshapePlacements(monster.InRooms)
	return monster, nil
}

// GetUser returns a user by exact email, ignoring surrounding whitespace
func (s *QueryService) GetUser(ctx context.Context, email string) (*model.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// ListDungeons groups rooms by dungeon id. A dungeon is named after its
// lowest numbered room.
func (s *QueryService) ListDungeons(ctx context.Context) ([]model.Dungeon, error) {
	locations, err := s.roomRepo.ListLocations(ctx)
	if err != nil {
		return nil, err
	}
	return groupDungeons(locations), nil
}

// GetDungeon returns a dungeon with a summary of each of its rooms, ordered by room id
func (s *QueryService) GetDungeon(ctx context.Context, dungeonID int) (*model.DungeonDetail, error) {
	rooms, err := s.roomRepo.ListByDungeon(ctx, dungeonID)
	if err != nil {
		return nil, err
	}
	if len(rooms) == 0 {
		return nil, ErrDungeonNotFound
	}
	sort.SliceStable(rooms, func(i, j int) bool { return rooms[i].RoomID < rooms[j].RoomID })

	detail := &model.DungeonDetail{
		ID:    dungeonID,
		Name:  rooms[0].DungeonName,
		Rooms: make([]model.DungeonRoom, 0, len(rooms)),
	}
	for i := range rooms {
		detail.Rooms = append(detail.Rooms, dungeonRoom(&rooms[i]))
	}
	return detail, nil
}

// GetRoom returns the detail projection of a room
func (s *QueryService) GetRoom(ctx context.Context, roomID int) (*model.RoomDetail, error) {
	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	return roomDetail(room), nil
}
