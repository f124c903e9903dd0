package cartstore

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SQLStorage keeps cart blobs in a single key-value table in SQLite.
type SQLStorage struct{ db *sqlx.DB }

func OpenSQL(dsn string) (*SQLStorage, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS cart_blobs(
		  key        TEXT PRIMARY KEY,
		  data       TEXT NOT NULL,
		  updated_at TEXT DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return nil, err
	}
	return &SQLStorage{db: db}, nil
}

func (s *SQLStorage) Load(key string) ([]byte, error) {
	var data []byte
	if err := s.db.Get(&data, `SELECT data FROM cart_blobs WHERE key = ?`, key); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func (s *SQLStorage) Save(key string, data []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO cart_blobs(key, data, updated_at)
		VALUES(?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = CURRENT_TIMESTAMP
	`, key, data)
	return err
}

func (s *SQLStorage) Close() error { return s.db.Close() }
