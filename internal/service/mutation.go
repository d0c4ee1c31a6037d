package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/forgo/delve/internal/database"
	"github.com/forgo/delve/internal/integrity"
	"github.com/forgo/delve/internal/model"
)

// MutationService creates, links and deletes catalog documents. Every change
// touching more than one document goes through an integrity plan applied in
// one transaction.
type MutationService struct {
	roomRepo    RoomRepository
	monsterRepo MonsterRepository
	lootRepo    LootRepository
	userRepo    UserRepository
	ids         IDAllocator
	graph       GraphRepository
	now         func() time.Time
}

// MutationServiceConfig holds configuration for the mutation service
type MutationServiceConfig struct {
	RoomRepo    RoomRepository
	MonsterRepo MonsterRepository
	LootRepo    LootRepository
	UserRepo    UserRepository
	IDs         IDAllocator
	Graph       GraphRepository
	// Now defaults to time.Now
	Now func() time.Time
}

// NewMutationService creates a new mutation service
func NewMutationService(cfg MutationServiceConfig) *MutationService {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &MutationService{
		roomRepo:    cfg.RoomRepo,
		monsterRepo: cfg.MonsterRepo,
		lootRepo:    cfg.LootRepo,
		userRepo:    cfg.UserRepo,
		ids:         cfg.IDs,
		graph:       cfg.Graph,
		now:         now,
	}
}

// ============================================================================
// Catalog
// ============================================================================

// CreateMonster adds a monster to the catalog under a new id
func (s *MutationService) CreateMonster(ctx context.Context, req *model.CreateMonsterRequest) (model.Status, error) {
	if err := validationError(req.Validate()); err != nil {
		return StatusFromError(err)
	}

	id, err := s.ids.Next(ctx, integrity.Monsters)
	if err != nil {
		return model.Status{}, err
	}

	monster := &model.Monster{
		ID:      id,
		Name:    req.Name,
		Type:    req.Type,
		Level:   req.Level,
		Place:   req.Place,
		Exp:     req.Exp,
		ManPage: req.ManPage,
	}
	if err := s.monsterRepo.Create(ctx, monster); err != nil {
		return model.Status{}, err
	}

	slog.Info("monster created", slog.Int("monster_id", id), slog.String("name", monster.Name))
	return model.Success("Monster added").WithID(id), nil
}

// CreateLoot adds a loot item to the catalog under a new id
func (s *MutationService) CreateLoot(ctx context.Context, req *model.CreateLootRequest) (model.Status, error) {
	if err := validationError(req.Validate()); err != nil {
		return StatusFromError(err)
	}

	id, err := s.ids.Next(ctx, integrity.Loot)
	if err != nil {
		return model.Status{}, err
	}

	loot := &model.Loot{
		ID:     id,
		Name:   req.Name,
		Type1:  req.Type1,
		Type2:  req.Type2,
		Weight: req.Weight,
		Gold:   req.Gold,
	}
	if err := s.lootRepo.Create(ctx, loot); err != nil {
		return model.Status{}, err
	}

	slog.Info("loot created", slog.Int("loot_id", id), slog.String("name", loot.Name))
	return model.Success("Loot added").WithID(id), nil
}

// CreateUser registers a user. Emails are unique.
func (s *MutationService) CreateUser(ctx context.Context, req *model.CreateUserRequest) (model.Status, error) {
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		return StatusFromError(ErrEmailRequired)
	}
	if err := validationError(req.Validate()); err != nil {
		return StatusFromError(err)
	}

	existing, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return model.Status{}, err
	}
	if existing != nil {
		return StatusFromError(ErrUserExists)
	}

	user := &model.User{
		Email:    req.Email,
		UserName: req.UserName,
		Country:  req.Country,
		Hints:    []model.UserHint{},
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return StatusFromError(ErrUserExists)
		}
		return model.Status{}, err
	}

	slog.Info("user created", slog.String("email", user.Email))
	status := model.Success("User created")
	status.Email = user.Email
	return status, nil
}

// ============================================================================
// Rooms
// ============================================================================

// CreateRoom creates a room connected to existing rooms. Every connected id
// must exist; otherwise nothing is written.
func (s *MutationService) CreateRoom(ctx context.Context, req *model.CreateRoomRequest) (model.Status, error) {
	if err := validationError(req.Validate()); err != nil {
		return StatusFromError(err)
	}

	peers, err := s.resolveRooms(ctx, req.RoomsConnected)
	if err != nil {
		return StatusFromError(err)
	}

	id, err := s.ids.Next(ctx, integrity.Rooms)
	if err != nil {
		return model.Status{}, err
	}

	room := model.Room{
		RoomID:      id,
		DungeonID:   req.DungeonID,
		DungeonName: req.DungeonName,
		DungeonLore: req.DungeonLore,
		RoomName:    req.RoomName,
		InWaypoint:  req.InWaypoint,
		OutWaypoint: req.OutWaypoint,
	}
	if err := s.graph.Apply(ctx, integrity.ConnectNewRoom(room, peers)); err != nil {
		return model.Status{}, err
	}

	slog.Info("room created",
		slog.Int("room_id", id),
		slog.Int("dungeon_id", room.DungeonID),
		slog.Int("connections", len(peers)),
	)
	return model.Success("Room created").WithID(id), nil
}

// UpdateRoomMonsters replaces the monsters of a room with fresh snapshots of ids
func (s *MutationService) UpdateRoomMonsters(ctx context.Context, roomID int, ids []int) (model.Status, error) {
	room, err := s.getRoom(ctx, roomID)
	if err != nil {
		return StatusFromError(err)
	}

	monsters, err := s.monsterRepo.GetMany(ctx, ids)
	if err != nil {
		return model.Status{}, err
	}
	catalog := make(map[int]model.Monster, len(monsters))
	found := make(map[int]bool, len(monsters))
	for _, m := range monsters {
		catalog[m.ID] = m
		found[m.ID] = true
	}
	if mismatch := newMismatch("monsters", ids, found); mismatch != nil {
		return StatusFromError(mismatch)
	}

	if err := s.graph.Apply(ctx, integrity.ReplaceMonsters(*room, ids, catalog)); err != nil {
		return model.Status{}, err
	}

	slog.Info("room monsters replaced", slog.Int("room_id", roomID), slog.Int("count", len(ids)))
	return model.Success("Room monsters updated"), nil
}

// UpdateRoomLoot replaces the loot of a room with fresh snapshots of ids
func (s *MutationService) UpdateRoomLoot(ctx context.Context, roomID int, ids []int) (model.Status, error) {
	room, err := s.getRoom(ctx, roomID)
	if err != nil {
		return StatusFromError(err)
	}

	items, err := s.lootRepo.GetMany(ctx, ids)
	if err != nil {
		return model.Status{}, err
	}
	catalog := make(map[int]model.Loot, len(items))
	found := make(map[int]bool, len(items))
	for _, l := range items {
		catalog[l.ID] = l
		found[l.ID] = true
	}
	if mismatch := newMismatch("loot", ids, found); mismatch != nil {
		return StatusFromError(mismatch)
	}

	if err := s.graph.Apply(ctx, integrity.ReplaceLoot(*room, ids, catalog)); err != nil {
		return model.Status{}, err
	}

	slog.Info("room loot replaced", slog.Int("room_id", roomID), slog.Int("count", len(ids)))
	return model.Success("Room loot updated"), nil
}

// UpdateRoomConnections replaces the connections of a room and keeps both sides in step
func (s *MutationService) UpdateRoomConnections(ctx context.Context, roomID int, ids []int) (model.Status, error) {
	room, err := s.getRoom(ctx, roomID)
	if err != nil {
		return StatusFromError(err)
	}
	for _, id := range ids {
		if id == roomID {
			return StatusFromError(ErrSelfConnection)
		}
	}
	if len(ids) > model.MaxConnectionsPerRoom {
		return StatusFromError(validationError([]model.FieldError{
			{Field: "ids", Message: "too many connected rooms"},
		}))
	}

	peers, err := s.resolveRooms(ctx, ids)
	if err != nil {
		return StatusFromError(err)
	}

	if err := s.graph.Apply(ctx, integrity.ReplaceConnections(*room, peers)); err != nil {
		return model.Status{}, err
	}

	slog.Info("room connections replaced", slog.Int("room_id", roomID), slog.Int("count", len(peers)))
	return model.Success("Room connections updated"), nil
}

// PostComment stores a hint on both the user and the room
func (s *MutationService) PostComment(ctx context.Context, roomID int, req *model.PostCommentRequest) (model.Status, error) {
	if !req.Category.IsValid() {
		return StatusFromError(ErrInvalidCategory)
	}
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return StatusFromError(ErrTextRequired)
	}
	if len(text) > model.MaxHintTextLength {
		return StatusFromError(validationError([]model.FieldError{
			{Field: "text", Message: "text must be 2000 characters or less"},
		}))
	}

	req.UserEmail = strings.TrimSpace(req.UserEmail)
	user, err := s.userRepo.GetByEmail(ctx, req.UserEmail)
	if err != nil {
		return model.Status{}, err
	}
	if user == nil {
		return StatusFromError(ErrUserNotFound)
	}

	room, err := s.getRoom(ctx, roomID)
	if err != nil {
		return StatusFromError(err)
	}

	plan, hintID := integrity.Comment(*user, *room, text, req.Category, s.now())
	if err := s.graph.Apply(ctx, plan); err != nil {
		return model.Status{}, err
	}

	slog.Info("comment posted",
		slog.Int("room_id", roomID),
		slog.String("email", user.Email),
		slog.String("hint_id", hintID),
	)
	status := model.Success("Comment posted")
	status.HintID = hintID
	return status, nil
}

// ============================================================================
// Deletes
// ============================================================================

// DeleteRoom removes a room and every reference to it
func (s *MutationService) DeleteRoom(ctx context.Context, roomID int) (model.Status, error) {
	room, err := s.getRoom(ctx, roomID)
	if err != nil {
		return StatusFromError(err)
	}

	if err := s.graph.Apply(ctx, integrity.RemoveRoom(*room)); err != nil {
		return model.Status{}, err
	}

	slog.Info("room deleted", slog.Int("room_id", roomID))
	return model.Success("Room deleted"), nil
}

// DeleteMonster removes a monster and its snapshots in every room
func (s *MutationService) DeleteMonster(ctx context.Context, id int) (model.Status, error) {
	monster, err := s.monsterRepo.GetByID(ctx, id)
	if err != nil {
		return model.Status{}, err
	}
	if monster == nil {
		return StatusFromError(ErrMonsterNotFound)
	}

	if err := s.graph.Apply(ctx, integrity.RemoveMonster(id)); err != nil {
		return model.Status{}, err
	}

	slog.Info("monster deleted", slog.Int("monster_id", id))
	return model.Success("Monster deleted"), nil
}

// DeleteLoot removes a loot item and its snapshots in every room
func (s *MutationService) DeleteLoot(ctx context.Context, id int) (model.Status, error) {
	loot, err := s.lootRepo.GetByID(ctx, id)
	if err != nil {
		return model.Status{}, err
	}
	if loot == nil {
		return StatusFromError(ErrLootNotFound)
	}

	if err := s.graph.Apply(ctx, integrity.RemoveLoot(id)); err != nil {
		return model.Status{}, err
	}

	slog.Info("loot deleted", slog.Int("loot_id", id))
	return model.Success("Loot deleted"), nil
}

// ============================================================================
// Helpers
// ============================================================================

// getRoom returns ErrRoomNotFound for a missing room; store failures pass through
func (s *MutationService) getRoom(ctx context.Context, roomID int) (*model.Room, error) {
	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

// resolveRooms loads the rooms of ids, failing with a MismatchError if any is missing
func (s *MutationService) resolveRooms(ctx context.Context, ids []int) ([]model.Room, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rooms, err := s.roomRepo.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	found := make(map[int]bool, len(rooms))
	byID := make(map[int]model.Room, len(rooms))
	for _, r := range rooms {
		found[r.RoomID] = true
		byID[r.RoomID] = r
	}
	if mismatch := newMismatch("rooms", ids, found); mismatch != nil {
		return nil, mismatch
	}

	// keep request order
	ordered := make([]model.Room, 0, len(ids))
	for _, id := range ids {
		ordered = append(ordered, byID[id])
	}
	return ordered, nil
}
