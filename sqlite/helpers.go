package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/fwojciec/spicedocs"
)

// parseRFC3339 parses an RFC3339 formatted timestamp string.
// Returns an error if parsing fails with a descriptive message including the field name.
func parseRFC3339(value, fieldName string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse %s: %w", fieldName, err)
	}
	return t, nil
}

// scanResults collects search result rows.
func scanResults(rows *sql.Rows) ([]*spicedocs.SearchResult, error) {
	var results []*spicedocs.SearchResult
	for rows.Next() {
		var r spicedocs.SearchResult
		if err := rows.Scan(&r.Path, &r.Title, &r.URL, &r.Snippet); err != nil {
			return nil, err
		}
		results = append(results, &r)
	}
	return results, rows.Err()
}
