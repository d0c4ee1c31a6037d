// Package repository implements the SurrealDB data access layer.
//
// Each repository wraps a database.Database and speaks SurrealQL with
// $variable parameters. Numeric catalog keys live in the record id
// (rooms:3, monsters:7, loot:2) and users are keyed by email; records are
// decoded into model structs with the record id reduced to its key.
//
// Single-document reads return (nil, nil) when the record does not exist.
//
// # Reference integrity
//
// GraphRepository is the only writer of denormalized back-references. It
// compiles an integrity.Plan into one transaction:
//
//	plan := integrity.RemoveMonster(7)
//	err := graph.Apply(ctx, plan)
//
// UPDATE statements on missing records are no-ops, matching
// integrity.Snapshot.Apply.
package repository
