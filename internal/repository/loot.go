package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgo/delve/internal/database"
	"github.com/forgo/delve/internal/model"
)

// LootRepository handles loot data access
type LootRepository struct {
	db database.Database
}

// NewLootRepository creates a new loot repository
func NewLootRepository(db database.Database) *LootRepository {
	return &LootRepository{db: db}
}

// Create stores a loot item under loot:<id>.
// Returns database.ErrDuplicate when the id is taken.
func (r *LootRepository) Create(ctx context.Context, loot *model.Loot) error {
	doc, err := toDocument(loot)
	if err != nil {
		return fmt.Errorf("failed to encode loot: %w", err)
	}

	query := `CREATE type::record('loot', $id) CONTENT $doc`
	vars := map[string]interface{}{
		"id":  loot.ID,
		"doc": doc,
	}

	return r.db.Execute(ctx, query, vars)
}

// GetByID retrieves a loot item by id
func (r *LootRepository) GetByID(ctx context.Context, id int) (*model.Loot, error) {
	query := `SELECT * FROM type::record('loot', $id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var loot model.Loot
	if err := decodeRecord(result, &loot); err != nil {
		return nil, fmt.Errorf("loot %d: %w", id, err)
	}
	return &loot, nil
}

// GetMany retrieves the existing loot among ids, ordered by id
func (r *LootRepository) GetMany(ctx context.Context, ids []int) ([]model.Loot, error) {
	if len(ids) == 0 {
		return []model.Loot{}, nil
	}

	query := `SELECT * FROM loot WHERE record::id(id) IN $ids ORDER BY id`
	vars := map[string]interface{}{"ids": ids}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	return decodeRecords[model.Loot](statementRows(results, 0))
}

// List retrieves the name of every loot item, ordered by id
func (r *LootRepository) List(ctx context.Context) ([]model.ItemRef, error) {
	query := `SELECT id, name FROM loot ORDER BY id`

	results, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}
	return decodeRecords[model.ItemRef](statementRows(results, 0))
}
