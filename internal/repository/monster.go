package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgo/delve/internal/database"
	"github.com/forgo/delve/internal/model"
)

// MonsterRepository handles monster data access
type MonsterRepository struct {
	db database.Database
}

// NewMonsterRepository creates a new monster repository
func NewMonsterRepository(db database.Database) *MonsterRepository {
	return &MonsterRepository{db: db}
}

// Create stores a monster under monsters:<id>.
// Returns database.ErrDuplicate when the id is taken.
func (r *MonsterRepository) Create(ctx context.Context, monster *model.Monster) error {
	doc, err := toDocument(monster)
	if err != nil {
		return fmt.Errorf("failed to encode monster: %w", err)
	}

	query := `CREATE type::record('monsters', $id) CONTENT $doc`
	vars := map[string]interface{}{
		"id":  monster.ID,
		"doc": doc,
	}

	return r.db.Execute(ctx, query, vars)
}

// GetByID retrieves a monster by id
func (r *MonsterRepository) GetByID(ctx context.Context, id int) (*model.Monster, error) {
	query := `SELECT * FROM type::record('monsters', $id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var monster model.Monster
	if err := decodeRecord(result, &monster); err != nil {
		return nil, fmt.Errorf("monster %d: %w", id, err)
	}
	return &monster, nil
}

// GetMany retrieves the existing monsters among ids, ordered by id
func (r *MonsterRepository) GetMany(ctx context.Context, ids []int) ([]model.Monster, error) {
	if len(ids) == 0 {
		return []model.Monster{}, nil
	}

	query := `SELECT * FROM monsters WHERE record::id(id) IN $ids ORDER BY id`
	vars := map[string]interface{}{"ids": ids}

	results, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	return decodeRecords[model.Monster](statementRows(results, 0))
}

// List retrieves a summary of every monster, ordered by id
func (r *MonsterRepository) List(ctx context.Context) ([]model.MonsterSummary, error) {
	query := `SELECT id, name, level, type FROM monsters ORDER BY id`

	results, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, err
	}
	return decodeRecords[model.MonsterSummary](statementRows(results, 0))
}
