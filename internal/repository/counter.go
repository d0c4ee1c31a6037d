package repository

import (
	"context"
	"fmt"

	"github.com/forgo/delve/internal/database"
	"github.com/forgo/delve/internal/integrity"
)

// Highest key currently stored per collection
var maxKeyQueries = map[integrity.Collection]string{
	integrity.Rooms:    `SELECT VALUE room_id FROM rooms`,
	integrity.Monsters: `SELECT VALUE record::id(id) FROM monsters`,
	integrity.Loot:     `SELECT VALUE record::id(id) FROM loot`,
}

// CounterRepository allocates numeric ids from counters:<collection>.
// The counter never hands out an id at or below the highest stored key, so
// seeded data and a fresh counter cannot collide.
type CounterRepository struct {
	db database.Database
}

// NewCounterRepository creates a new counter repository
func NewCounterRepository(db database.Database) *CounterRepository {
	return &CounterRepository{db: db}
}

// Next allocates the next id for collection
func (r *CounterRepository) Next(ctx context.Context, collection integrity.Collection) (int, error) {
	maxKey, ok := maxKeyQueries[collection]
	if !ok {
		return 0, fmt.Errorf("collection %q has no numeric ids", collection)
	}

	query := fmt.Sprintf(`
		BEGIN TRANSACTION;
		LET $floor = math::max(array::concat([0], (%s)));
		UPSERT type::record('counters', $collection) SET value = math::max([value ?? 0, $floor]) + 1;
		COMMIT TRANSACTION;
	`, maxKey)
	vars := map[string]interface{}{"collection": string(collection)}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return 0, fmt.Errorf("failed to allocate %s id: %w", collection, err)
	}

	rows := statementRows(results, len(results)-1)
	if len(rows) == 0 {
		return 0, fmt.Errorf("failed to allocate %s id: empty result", collection)
	}
	rec, ok := rows[0].(map[string]interface{})
	if !ok {
		return 0, fmt.Errorf("failed to allocate %s id: unexpected result %T", collection, rows[0])
	}
	id, ok := toInt(rec["value"])
	if !ok {
		return 0, fmt.Errorf("failed to allocate %s id: unexpected value %v", collection, rec["value"])
	}
	return id, nil
}
