package localdb

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ibeloyar/taskmarket/internal/model"
	_ "modernc.org/sqlite"
)

// setName - ключ единственного блоба с набором коллекций
const setName = "collections"

const createTableQuery = `
	CREATE TABLE IF NOT EXISTS collection_sets (
		name TEXT PRIMARY KEY,
		data TEXT NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`

// Storage - durable-хранилище на локальном sqlite-файле. Хранит один
// сериализованный блоб на весь набор коллекций, по блобу на сессию.
type Storage struct {
	db *sql.DB
}

func New(path string) (*Storage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}

	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?cache=shared", path))
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(createTableQuery); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Save(ctx context.Context, sets map[string][]model.Order) error {
	data, err := json.Marshal(sets)
	if err != nil {
		return fmt.Errorf("marshal collections: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO collection_sets (name, data, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		setName, string(data), time.Now(),
	)
	return err
}

func (s *Storage) Load(ctx context.Context) (map[string][]model.Order, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM collection_sets WHERE name = $1`, setName,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	sets := make(map[string][]model.Order)
	if err := json.Unmarshal([]byte(data), &sets); err != nil {
		return nil, fmt.Errorf("unmarshal collections: %w", err)
	}
	return sets, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}
