package sqlite

import "fmt"

const (
	tableSnapshot = "rate_snapshot"

	colID      = "id"
	colBuiltAt = "built_at"
	colPayload = "payload"

	keepSnapshots = 5
)

var createTable = fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
  %s INTEGER PRIMARY KEY AUTOINCREMENT,
  %s INTEGER NOT NULL,
  %s TEXT NOT NULL
);`, tableSnapshot, colID, colBuiltAt, colPayload)

var insertSnapshot = fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES (?, ?);`,
	tableSnapshot, colBuiltAt, colPayload)

var pruneSnapshots = fmt.Sprintf(`
DELETE FROM %s WHERE %s NOT IN (
  SELECT %s FROM %s ORDER BY %s DESC LIMIT %d
);`, tableSnapshot, colID,
	colID, tableSnapshot, colID, keepSnapshots,
)

var selectLatest = fmt.Sprintf(`SELECT %s, %s FROM %s ORDER BY %s DESC LIMIT 1;`,
	colBuiltAt, colPayload, tableSnapshot, colID)
