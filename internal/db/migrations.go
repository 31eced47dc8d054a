package db

import (
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// ApplyMigrations applies the embedded schema SQL to the database and
// performs lightweight post-creation migrations (adding new columns when
// needed on upgrades from older layouts).
func ApplyMigrations(conn *sql.DB) error {
	if _, err := conn.Exec(schemaSQL); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return ensureInvocationColumns(conn)
}

// ensureInvocationColumns checks for optional columns and adds them when
// missing. error_kind and message arrived after the initial schema.
func ensureInvocationColumns(conn *sql.DB) error {
	rows, err := conn.Query("PRAGMA table_info(invocations)")
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()
	cols := map[string]bool{}
	for rows.Next() {
		var cid int
		var name string
		var ctype string
		var notnull int
		var dflt interface{}
		var pk int
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			return err
		}
		cols[name] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if !cols["error_kind"] {
		if _, err := conn.Exec("ALTER TABLE invocations ADD COLUMN error_kind TEXT"); err != nil {
			return err
		}
	}
	if !cols["message"] {
		if _, err := conn.Exec("ALTER TABLE invocations ADD COLUMN message TEXT"); err != nil {
			return err
		}
	}
	return nil
}
