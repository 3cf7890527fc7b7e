package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/Veraticus/calllog/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// ExpectedSchemaVersion is the latest archive schema version.
const ExpectedSchemaVersion = 2

// Migration represents an archive schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`
				CREATE TABLE IF NOT EXISTS calls (
					source TEXT NOT NULL,
					number INTEGER NOT NULL,
					phone TEXT NOT NULL,
					reason TEXT NOT NULL,
					resolved TEXT NOT NULL,
					archived_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					PRIMARY KEY (source, number)
				)
			`)
			return err
		},
	},
	{
		Version:     2,
		Description: "Index calls by reason",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`CREATE INDEX IF NOT EXISTS idx_calls_reason ON calls(source, reason)`)
			return err
		},
	},
}

// Archive mirrors call logs into a SQLite database. Each call log is stored
// under its source path.
type Archive struct {
	db     *sql.DB
	dbPath string
}

// OpenArchive opens (creating if needed) the archive database at dbPath.
// Use ":memory:" for a throwaway archive.
func OpenArchive(dbPath string) (*Archive, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("%w: dbPath", ErrEmptyString)
	}

	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
			return nil, fmt.Errorf("failed to create archive directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	// A single connection keeps ":memory:" databases alive across queries.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping archive: %w", err)
	}

	return &Archive{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (a *Archive) Close() error {
	return a.db.Close()
}

// Migrate brings the archive schema up to ExpectedSchemaVersion.
func (a *Archive) Migrate(ctx context.Context) error {
	var currentVersion int
	if err := a.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion); err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, err := a.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}

		if err := migration.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}

		slog.Debug("Applied archive migration",
			"version", migration.Version,
			"description", migration.Description)
	}

	var finalVersion int
	if err := a.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion); err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}
	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("archive schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}

	return nil
}

// Sync replaces the archived calls of source with calls. A later call with a
// duplicate number overwrites an earlier one. onEach, if set, is invoked after
// every stored call.
func (a *Archive) Sync(ctx context.Context, source string, calls []model.Call, onEach func(model.Call)) (err error) {
	if source == "" {
		return fmt.Errorf("%w: source", ErrEmptyString)
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM calls WHERE source = ?`, source); err != nil {
		return fmt.Errorf("failed to clear archived calls: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO calls (source, number, phone, reason, resolved)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, call := range calls {
		if _, err = stmt.ExecContext(ctx, source, call.Number, call.Phone, call.Reason, call.Resolved); err != nil {
			return fmt.Errorf("failed to archive call %d: %w", call.Number, err)
		}
		if onEach != nil {
			onEach(call)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit archive: %w", err)
	}

	slog.Info("archived call log", "source", source, "calls", len(calls), "archive", a.dbPath)
	return nil
}

// Calls returns the archived calls of source ordered by number.
func (a *Archive) Calls(ctx context.Context, source string) ([]model.Call, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT number, phone, reason, resolved
		FROM calls
		WHERE source = ?
		ORDER BY number
	`, source)
	if err != nil {
		return nil, fmt.Errorf("failed to query archived calls: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var calls []model.Call
	for rows.Next() {
		var call model.Call
		if err := rows.Scan(&call.Number, &call.Phone, &call.Reason, &call.Resolved); err != nil {
			return nil, fmt.Errorf("failed to scan archived call: %w", err)
		}
		calls = append(calls, call)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate archived calls: %w", err)
	}
	return calls, nil
}

// Count returns the number of archived calls of source.
func (a *Archive) Count(ctx context.Context, source string) (int, error) {
	var count int
	err := a.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM calls WHERE source = ?`, source).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count archived calls: %w", err)
	}
	return count, nil
}

// Unresolved returns the archived calls of source whose resolved flag equals
// word, ignoring case. SQLite's lower() only folds ASCII, so filtering happens
// here rather than in SQL.
func (a *Archive) Unresolved(ctx context.Context, source, word string) ([]model.Call, error) {
	calls, err := a.Calls(ctx, source)
	if err != nil {
		return nil, err
	}
	unresolved := IsResolvedAs(word)
	return slices.DeleteFunc(calls, func(c model.Call) bool {
		return !unresolved(c)
	}), nil
}
