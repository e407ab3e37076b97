package sqlite

import (
	"database/sql"

	"github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"

	"github.com/hanziflash/hanziflash/internal/logger"
	"github.com/hanziflash/hanziflash/internal/storage"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

const schema = `
CREATE TABLE IF NOT EXISTS session_store (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

type store struct {
	db  *sql.DB
	log *logger.Logger
}

// Open opens (creating if needed) a SQLite-backed key-value store at path.
func Open(path string) (storage.Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &store{db: db, log: logger.Default().WithPrefix("session_db")}, nil
}

// NewWithDB wraps an existing database handle, applying the schema.
func NewWithDB(db *sql.DB) (storage.Store, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, err
	}
	return &store{db: db, log: logger.Default().WithPrefix("session_db")}, nil
}

func (s *store) Get(key string) (string, bool, error) {
	query, args, err := sqlBuilder.
		Select("value").
		From("session_store").
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return "", false, err
	}

	var value string
	err = s.db.QueryRow(query, args...).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		s.log.Error("failed to read key %q: %v", key, err)
		return "", false, err
	}
	return value, true, nil
}

func (s *store) Set(key, value string) error {
	query, args, err := sqlBuilder.
		Insert("session_store").
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP").
		ToSql()
	if err != nil {
		return err
	}

	if _, err := s.db.Exec(query, args...); err != nil {
		s.log.Error("failed to write key %q: %v", key, err)
		return err
	}
	return nil
}

func (s *store) Delete(key string) error {
	query, args, err := sqlBuilder.
		Delete("session_store").
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := s.db.Exec(query, args...); err != nil {
		s.log.Error("failed to delete key %q: %v", key, err)
		return err
	}
	return nil
}

func (s *store) Close() error {
	return s.db.Close()
}
