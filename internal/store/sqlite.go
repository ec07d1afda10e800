package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"fig-tracker/internal/models"
)

// SQLiteStore implements JournalStore using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite-based journal store.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates all required tables and indexes.
func (s *SQLiteStore) initSchema() error {
	schema := `
	-- Day entries for the active cycle
	CREATE TABLE IF NOT EXISTS entries (
		id INTEGER PRIMARY KEY,
		position INTEGER NOT NULL,
		day_label TEXT NOT NULL,
		date DATETIME NOT NULL,
		daily_value REAL NOT NULL DEFAULT 0,
		max_value REAL NOT NULL DEFAULT 0,
		sentiment TEXT NOT NULL DEFAULT '',
		rating INTEGER NOT NULL DEFAULT 0,
		note TEXT NOT NULL DEFAULT '',
		highlight TEXT NOT NULL DEFAULT '',
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	-- Operator logins
	CREATE TABLE IF NOT EXISTS operators (
		id TEXT PRIMARY KEY,
		login TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	-- Scalar settings (initial capital)
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_entries_position ON entries(position);
	CREATE INDEX IF NOT EXISTS idx_operators_login ON operators(login);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveEntries replaces the persisted snapshot with the given sequence.
// The write is transactional so a failure never leaves a partial snapshot.
func (s *SQLiteStore) SaveEntries(ctx context.Context, entries []models.DayEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM entries"); err != nil {
		return fmt.Errorf("clear entries: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO entries (id, position, day_label, date, daily_value, max_value, sentiment, rating, note, highlight)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range entries {
		_, err := stmt.ExecContext(ctx, e.ID, i, e.DayLabel, e.Date,
			e.DailyValue, e.MaxValue, string(e.Sentiment), e.Rating, e.Note, string(e.Highlight))
		if err != nil {
			return fmt.Errorf("insert entry %d: %w", e.ID, err)
		}
	}

	return tx.Commit()
}

// GetEntries returns the persisted snapshot in its original order.
func (s *SQLiteStore) GetEntries(ctx context.Context) ([]models.DayEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, day_label, date, daily_value, max_value, sentiment, rating, note, highlight
		FROM entries ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []models.DayEntry
	for rows.Next() {
		var e models.DayEntry
		var sentiment, highlight string
		if err := rows.Scan(&e.ID, &e.DayLabel, &e.Date, &e.DailyValue, &e.MaxValue,
			&sentiment, &e.Rating, &e.Note, &highlight); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.Sentiment = models.Sentiment(sentiment)
		e.Highlight = models.Highlight(highlight)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ClearEntries deletes the persisted snapshot.
func (s *SQLiteStore) ClearEntries(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM entries")
	return err
}

// SaveOperator inserts or updates an operator by id.
func (s *SQLiteStore) SaveOperator(ctx context.Context, user models.OperatorUser) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO operators (id, login, password, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET login = excluded.login, password = excluded.password`,
		user.ID, user.Login, user.Password, user.CreatedAt)
	return err
}

// DeleteOperator removes an operator by id.
func (s *SQLiteStore) DeleteOperator(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM operators WHERE id = ?", id)
	return err
}

// GetOperators returns all operators, oldest first.
func (s *SQLiteStore) GetOperators(ctx context.Context) ([]models.OperatorUser, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, login, password, created_at FROM operators ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("query operators: %w", err)
	}
	defer rows.Close()

	var users []models.OperatorUser
	for rows.Next() {
		var u models.OperatorUser
		if err := rows.Scan(&u.ID, &u.Login, &u.Password, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan operator: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

const capitalKey = "initial_capital"

// SetInitialCapital persists the initial-capital scalar.
func (s *SQLiteStore) SetInitialCapital(ctx context.Context, amount float64) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		capitalKey, strconv.FormatFloat(amount, 'f', -1, 64))
	return err
}

// GetInitialCapital returns the persisted capital and whether it was set.
func (s *SQLiteStore) GetInitialCapital(ctx context.Context) (float64, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", capitalKey).Scan(&value)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("query capital: %w", err)
	}

	amount, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false, nil
	}
	return amount, true, nil
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
