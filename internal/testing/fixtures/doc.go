// Package fixtures provides catalog data factories for e2e tests.
//
// # Factory Pattern
//
//	f := fixtures.New(tdb.DB)
//	user := f.CreateUser(t)
//	room := f.CreateRoom(t, func(o *fixtures.RoomOpts) { o.DungeonID = 2 })
//
// Numeric ids are allocated from 1000 upwards unless an option sets one.
package fixtures
