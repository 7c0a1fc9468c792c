// Package qids loads the list of work ids the builder runs over.
package qids

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// Load reads work ids from the first column of a CSV file. Rows whose first
// field does not look like an entity id (leading "Q") are skipped, and
// duplicates are dropped while preserving first-seen order.
func Load(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open work id list: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	var ids []string
	seen := make(map[string]struct{})
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read work id list: %w", err)
	}
	for _, record := range records {
		if len(record) == 0 {
			continue
		}
		id := strings.TrimSpace(record[0])
		if !strings.HasPrefix(id, "Q") {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids, nil
}
