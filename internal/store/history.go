// Package store persists analysis sessions and chat transcripts to a local
// SQLite database so past runs can be reviewed with `driftwatch sessions`.
// Persistence is strictly best-effort: the dashboard logs store failures
// and carries on; a missing or unopenable database only disables history.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// HistoryStore records completed analyses and their conversations.
type HistoryStore struct {
	db *sql.DB
	mu sync.Mutex
}

// AnalysisRecord is one saved analysis run.
type AnalysisRecord struct {
	ID                string
	CreatedAt         time.Time
	TotalMonthlyDrift float64
	AnnualizedDrift   float64
	Narrative         string
	Summary           string
}

// TurnRecord is one persisted chat turn.
type TurnRecord struct {
	SessionID string
	Seq       int
	Role      string
	Content   string
	CreatedAt time.Time
}

// Open initializes the history database at path, creating directories and
// schema as needed.
func Open(path string) (*HistoryStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create store directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set busy_timeout: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set journal_mode: %w", err)
	}

	s := &HistoryStore{db: db}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *HistoryStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS analysis_sessions (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		total_monthly_drift REAL NOT NULL,
		annualized_drift REAL NOT NULL,
		narrative TEXT NOT NULL,
		summary TEXT NOT NULL
	);
	CREATE TABLE IF NOT EXISTS chat_turns (
		session_id TEXT NOT NULL REFERENCES analysis_sessions(id),
		seq INTEGER NOT NULL,
		role TEXT NOT NULL,
		content TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (session_id, seq)
	);
	CREATE INDEX IF NOT EXISTS idx_sessions_created ON analysis_sessions(created_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("initialize schema: %w", err)
	}
	return nil
}

// SaveAnalysis stores a completed analysis and returns its new session ID.
func (s *HistoryStore) SaveAnalysis(totalMonthly, annualized float64, narrative, summary string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO analysis_sessions (id, total_monthly_drift, annualized_drift, narrative, summary)
		 VALUES (?, ?, ?, ?, ?)`,
		id, totalMonthly, annualized, narrative, summary,
	)
	if err != nil {
		return "", fmt.Errorf("save analysis: %w", err)
	}
	return id, nil
}

// AppendTurn persists one chat turn under a session. Duplicate sequence
// numbers are ignored so replays after a UI refresh stay idempotent.
func (s *HistoryStore) AppendTurn(sessionID string, seq int, role, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT OR IGNORE INTO chat_turns (session_id, seq, role, content) VALUES (?, ?, ?, ?)`,
		sessionID, seq, role, content,
	)
	if err != nil {
		return fmt.Errorf("append turn: %w", err)
	}
	return nil
}

// ListSessions returns the most recent analysis sessions, newest first.
func (s *HistoryStore) ListSessions(limit int) ([]AnalysisRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, created_at, total_monthly_drift, annualized_drift, narrative, summary
		 FROM analysis_sessions ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var out []AnalysisRecord
	for rows.Next() {
		var rec AnalysisRecord
		if err := rows.Scan(&rec.ID, &rec.CreatedAt, &rec.TotalMonthlyDrift,
			&rec.AnnualizedDrift, &rec.Narrative, &rec.Summary); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// SessionTurns returns a session's chat turns in order.
func (s *HistoryStore) SessionTurns(sessionID string) ([]TurnRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		`SELECT session_id, seq, role, content, created_at
		 FROM chat_turns WHERE session_id = ? ORDER BY seq`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("load turns: %w", err)
	}
	defer rows.Close()

	var out []TurnRecord
	for rows.Next() {
		var rec TurnRecord
		if err := rows.Scan(&rec.SessionID, &rec.Seq, &rec.Role, &rec.Content, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Close releases the database handle.
func (s *HistoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}
