// Package cache holds the single active analysis result per session,
// persisted to sqlite and time-boxed. Writes fully replace prior state;
// expired or corrupt entries are purged on read and never surfaced.
package cache

import (
	"database/sql"
	"encoding/json"
	"log"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/fairlance/clausecheck/internal/analysis"
)

// DefaultTTL is how long a stored result stays valid.
const DefaultTTL = time.Hour

const resultKey = "analysis_result"

type Store struct {
	db  *sql.DB
	ttl time.Duration
}

// NewStore opens (or creates) the cache database. A zero ttl means
// DefaultTTL.
func NewStore(path string, ttl time.Duration) (*Store, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS result_cache (
		session TEXT NOT NULL,
		key TEXT NOT NULL,
		result TEXT NOT NULL,
		created_at DATETIME NOT NULL,
		PRIMARY KEY (session, key)
	)`)
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db, ttl: ttl}, nil
}

// SetResult stamps the result with the current time and replaces any prior
// result for the session.
func (s *Store) SetResult(session string, r *analysis.AnalysisResult) error {
	r.CreatedAt = time.Now().UTC()
	payload, err := json.Marshal(r)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO result_cache (session, key, result, created_at) VALUES (?, ?, ?, ?)`,
		session, resultKey, string(payload), r.CreatedAt,
	)
	return err
}

// GetResult returns the active result for the session, or nil. Expired and
// corrupt entries are dropped rather than returned; storage errors behave
// like a miss.
func (s *Store) GetResult(session string) *analysis.AnalysisResult {
	var payload string
	var createdAt time.Time
	err := s.db.QueryRow(
		`SELECT result, created_at FROM result_cache WHERE session = ? AND key = ?`,
		session, resultKey,
	).Scan(&payload, &createdAt)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Printf("result cache read failed, treating as miss: %v", err)
		}
		return nil
	}

	if time.Since(createdAt) > s.ttl {
		s.ClearResult(session)
		return nil
	}

	var result analysis.AnalysisResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		log.Printf("result cache entry corrupt, dropping: %v", err)
		s.ClearResult(session)
		return nil
	}
	return &result
}

// ClearResult discards the session's stored result.
func (s *Store) ClearResult(session string) {
	if _, err := s.db.Exec(
		`DELETE FROM result_cache WHERE session = ? AND key = ?`,
		session, resultKey,
	); err != nil {
		log.Printf("result cache clear failed: %v", err)
	}
}

// IsExpired reports whether a stored entry exists and has outlived the TTL.
// An absent entry is not expired, just empty.
func (s *Store) IsExpired(session string) bool {
	var createdAt time.Time
	err := s.db.QueryRow(
		`SELECT created_at FROM result_cache WHERE session = ? AND key = ?`,
		session, resultKey,
	).Scan(&createdAt)
	if err != nil {
		return false
	}
	return time.Since(createdAt) > s.ttl
}

func (s *Store) Close() {
	if s.db != nil {
		s.db.Close()
	}
}
