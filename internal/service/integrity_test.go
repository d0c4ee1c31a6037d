package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/delve/internal/integrity"
	"github.com/forgo/delve/internal/model"
)

func TestAudit_CleanCatalog(t *testing.T) {
	s := newServices(t)
	a := s.createRoom(t, 1, "A")
	s.createRoom(t, 1, "B", a)

	result, err := s.integrity.Audit(context.Background(), false)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Rooms)
	assert.Empty(t, result.Findings)
	assert.False(t, result.Repaired)
	assert.Equal(t, testNow, result.CheckedAt)
}

func TestAudit_ReportOnlyDoesNotWrite(t *testing.T) {
	s := newServices(t)
	s.store.SeedRooms(
		model.Room{RoomID: 1, RoomName: "A", RoomsConnected: []model.RoomRef{{RoomID: 2, RoomName: "B"}}},
		model.Room{RoomID: 2, RoomName: "B"},
	)

	result, err := s.integrity.Audit(context.Background(), false)

	require.NoError(t, err)
	require.Len(t, result.Findings, 1)
	assert.Equal(t, integrity.OneSidedConnection, result.Findings[0].Kind)
	assert.Equal(t, []string{"connect rooms:2 -> rooms:1"}, result.Repairs)
	assert.Empty(t, s.store.Room(2).RoomsConnected)
}

func TestAudit_RepairRestoresReciprocity(t *testing.T) {
	s := newServices(t)
	s.store.SeedRooms(
		model.Room{RoomID: 1, RoomName: "A", RoomsConnected: []model.RoomRef{{RoomID: 2, RoomName: "B"}, {RoomID: 3, RoomName: "gone"}}},
		model.Room{RoomID: 2, RoomName: "B"},
	)

	result, err := s.integrity.Audit(context.Background(), true)

	require.NoError(t, err)
	assert.True(t, result.Repaired)
	assert.Len(t, result.Findings, 2)
	assert.Equal(t, []model.RoomRef{{RoomID: 1, RoomName: "A"}}, s.store.Room(2).RoomsConnected)
	assert.Equal(t, []model.RoomRef{{RoomID: 2, RoomName: "B"}}, s.store.Room(1).RoomsConnected)

	again, err := s.integrity.Audit(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, again.Findings)
}
