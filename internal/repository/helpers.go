package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// recordKey extracts the key part of a record id (monsters:3 -> 3)
func recordKey(id interface{}) interface{} {
	switch v := id.(type) {
	case models.RecordID:
		return v.ID
	case *models.RecordID:
		if v != nil {
			return v.ID
		}
		return nil
	case string:
		if idx := strings.Index(v, ":"); idx >= 0 {
			key := strings.Trim(v[idx+1:], "⟨⟩`")
			if n, err := strconv.Atoi(key); err == nil {
				return n
			}
			return key
		}
		return v
	}
	return id
}

// normalizeRecord copies a record and replaces its id with the key part
func normalizeRecord(rec interface{}) (map[string]interface{}, bool) {
	m, ok := rec.(map[string]interface{})
	if !ok {
		return nil, false
	}
	out := make(map[string]interface{}, len(m))
	for k, v := range m {
		out[k] = v
	}
	if id, ok := out["id"]; ok {
		out["id"] = recordKey(id)
	}
	return out, true
}

// decodeRecord maps a SurrealDB record onto a model struct
func decodeRecord(rec interface{}, out interface{}) error {
	m, ok := normalizeRecord(rec)
	if !ok {
		return fmt.Errorf("unexpected record type %T", rec)
	}
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode record: %w", err)
	}
	return nil
}

// decodeRecords maps every record of a statement result
func decodeRecords[T any](rows []interface{}) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		var v T
		if err := decodeRecord(row, &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// statementRows returns the result rows of the i-th statement
func statementRows(results []interface{}, i int) []interface{} {
	if i < 0 || i >= len(results) {
		return nil
	}
	resp, ok := results[i].(map[string]interface{})
	if !ok {
		return nil
	}
	rows, _ := resp["result"].([]interface{})
	return rows
}

// toValue converts a model value into plain maps, slices and numbers.
// Integral numbers become int64 so SurrealDB stores them as ints.
func toValue(v interface{}) (interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out interface{}
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return convertNumbers(out), nil
}

func convertNumbers(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, inner := range t {
			t[k] = convertNumbers(inner)
		}
		return t
	case []interface{}:
		for i, inner := range t {
			t[i] = convertNumbers(inner)
		}
		return t
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		}
		f, _ := t.Float64()
		return f
	}
	return v
}

// toDocument converts a model into CONTENT for a record. The id lives in the
// record id, so it is not repeated in the body.
func toDocument(v interface{}) (map[string]interface{}, error) {
	out, err := toValue(v)
	if err != nil {
		return nil, err
	}
	doc, ok := out.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("expected an object, got %T", out)
	}
	delete(doc, "id")
	return doc, nil
}

// toInt converts the numeric types the SurrealDB client returns
func toInt(v interface{}) (int, bool) {
	switch c := v.(type) {
	case int:
		return c, true
	case int64:
		return int(c), true
	case uint64:
		return int(c), true
	case float64:
		return int(c), true
	case float32:
		return int(c), true
	}
	return 0, false
}
