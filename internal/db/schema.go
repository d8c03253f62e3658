package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// recordTable is the layout shared by every record table. %[1]s is the table
// name, %[2]s the primary key type and %[3]s the integer type.
const recordTable = `
CREATE TABLE IF NOT EXISTS %[1]s (
    id          %[2]s,
    name        TEXT NOT NULL,
    surname     TEXT NOT NULL,
    amount      %[3]s NOT NULL CHECK (amount >= 0),
    country     TEXT NOT NULL,
    agent_type  TEXT NOT NULL,
    status      TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'inactive')),
    recorded_at %[3]s NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_%[1]s_recorded_at ON %[1]s(recorded_at);
`

// Tables lists the record tables the schema creates.
var Tables = []string{"items", "users"}

// Schema returns the full schema for driver.
func Schema(driver string) (string, error) {
	var pk, integer string
	switch driver {
	case DriverSQLite:
		pk, integer = "INTEGER PRIMARY KEY", "INTEGER"
	case DriverPostgres:
		pk, integer = "BIGSERIAL PRIMARY KEY", "BIGINT"
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}

	var b strings.Builder
	for _, table := range Tables {
		fmt.Fprintf(&b, recordTable, table, pk, integer)
	}
	return b.String(), nil
}

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB, driver string) error {
	schema, err := Schema(driver)
	if err != nil {
		return err
	}
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
