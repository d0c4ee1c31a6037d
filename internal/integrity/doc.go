// Package integrity keeps the denormalized references of the catalog in step.
//
// Rooms embed copies of the monsters, loot and hints they list, and those
// documents point back at the rooms (in_rooms placements, user hints,
// reciprocal rooms_connected entries). Every relationship change is expressed
// as a Plan: an ordered list of Change values touching both endpoints. A Plan
// is pure data; the repository layer compiles it into one SurrealDB
// transaction and the in-memory test store applies it directly.
//
// # Planners
//
//	plan := integrity.ReplaceMonsters(room, []int{4, 4, 9}, monsters)
//	err := graph.Apply(ctx, plan)
//
// Planners never read the store. Callers load and validate the documents
// first and pass them in.
//
// # Audit
//
// Audit inspects a Snapshot of the whole catalog and reports every reference
// that lost its counterpart, together with a repair Plan.
package integrity
