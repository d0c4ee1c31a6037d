// Package model defines the catalog documents, their projections and the
// request and response types shared by every layer.
//
// # Documents
//
//   - Room: a room of a dungeon with denormalized connections, monster and
//     loot snapshots and hints
//   - Monster, Loot: catalog items; InRooms lists the rooms that embed them
//   - User: a player; Hints holds a copy of every hint they posted
//
// Dungeons are not stored. They are grouped from rooms on dungeon_id.
//
// # Validation Constants
//
//	const (
//	    MaxRoomNameLength     = 100
//	    MaxConnectionsPerRoom = 32
//	)
//
// # Errors
//
// RFC 9457 Problem Details are defined in errors.go, the mutation envelope
// in status.go.
package model
