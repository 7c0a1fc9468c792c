package sparql

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Row is one result binding. Every column is optional: the endpoint omits
// unbound variables, so consumers must go through Value and handle absence.
type Row map[string]string

// Rows is the tabular result of a SELECT query.
type Rows []Row

// Value returns the bound value of a column, and whether it was bound.
func (r Row) Value(name string) (string, bool) {
	v, ok := r[name]
	return v, ok
}

// ID returns the trailing path segment of the column's value, which for an
// entity URI is the bare external id. It returns the raw value unchanged if
// the column holds no path, and "" if the column is unbound.
func (r Row) ID(name string) string {
	v, ok := r[name]
	if !ok {
		return ""
	}
	if idx := strings.LastIndex(v, "/"); idx >= 0 {
		return v[idx+1:]
	}
	return v
}

// parseRows extracts rows from a SPARQL JSON results document. Malformed or
// non-object bindings are skipped rather than failing the whole response.
func parseRows(resp response) Rows {
	bindings := gjson.GetBytes(resp.data, "results.bindings")
	if !bindings.IsArray() {
		return nil
	}

	var rows Rows
	bindings.ForEach(func(_, binding gjson.Result) bool {
		if !binding.IsObject() {
			return true
		}
		row := make(Row)
		binding.ForEach(func(column, cell gjson.Result) bool {
			value := cell.Get("value")
			if value.Exists() {
				row[column.String()] = value.String()
			}
			return true
		})
		rows = append(rows, row)
		return true
	})
	return rows
}
