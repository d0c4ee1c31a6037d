package repository

import (
	"context"

	"github.com/forgo/delve/internal/database"
)

type call struct {
	query string
	vars  map[string]interface{}
}

// fakeDB records queries and answers every Query with results
type fakeDB struct {
	calls   []call
	results []interface{}
	err     error
}

func (f *fakeDB) Connect(ctx context.Context) error { return nil }
func (f *fakeDB) Close() error                      { return nil }
func (f *fakeDB) Ping(ctx context.Context) error    { return nil }

func (f *fakeDB) Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
	f.calls = append(f.calls, call{query: query, vars: vars})
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func (f *fakeDB) QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error) {
	results, err := f.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	return database.FirstRecord(results)
}

func (f *fakeDB) Execute(ctx context.Context, query string, vars map[string]interface{}) error {
	_, err := f.Query(ctx, query, vars)
	return err
}

func ok(rows ...interface{}) map[string]interface{} {
	return map[string]interface{}{"status": "OK", "result": rows}
}
