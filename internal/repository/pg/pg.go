package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/ibeloyar/taskmarket/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

const (
	migrationsTable = "schema_migrations"
	schemaName      = "public"
	migrationsPath  = "./migrations"

	// setName - ключ единственного блоба с набором коллекций
	setName = "collections"

	maxAttempts = 3
)

// Repository - durable-хранилище набора коллекций в Postgres, для
// серверных развёртываний, где локальный файл не подходит
type Repository struct {
	databaseURI string
	db          *sql.DB
	classifier  *PostgresErrorClassifier
}

func New(databaseURI string) (*Repository, error) {
	pool, err := pgxpool.New(context.Background(), databaseURI)
	if err != nil {
		return nil, err
	}

	db := stdlib.OpenDBFromPool(pool)

	driver, err := postgres.WithInstance(db, &postgres.Config{
		MigrationsTable: migrationsTable,
		SchemaName:      schemaName,
	})
	if err != nil {
		return nil, err
	}

	absPath, err := filepath.Abs(migrationsPath)
	if err != nil {
		return nil, err
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+absPath, "postgres", driver)
	if err != nil {
		return nil, err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return nil, err
	}

	return &Repository{
		databaseURI: databaseURI,
		db:          db,
		classifier:  NewPostgresErrorClassifier(),
	}, nil
}

// Save пишет весь набор коллекций одним блобом; временные сбои
// соединения ретраятся ограниченное число раз
func (r *Repository) Save(ctx context.Context, sets map[string][]model.Order) error {
	data, err := json.Marshal(sets)
	if err != nil {
		return fmt.Errorf("marshal collections: %w", err)
	}

	for attempt := 1; ; attempt++ {
		_, err = r.db.ExecContext(ctx, `
			INSERT INTO collection_sets (name, data, updated_at) VALUES ($1, $2, now())
			ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
			setName, data,
		)
		if err == nil {
			return nil
		}
		if attempt >= maxAttempts || r.classifier.Classify(err) == NonRetriable {
			return err
		}
	}
}

func (r *Repository) Load(ctx context.Context) (map[string][]model.Order, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT data FROM collection_sets WHERE name = $1`, setName,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	sets := make(map[string][]model.Order)
	if err := json.Unmarshal(data, &sets); err != nil {
		return nil, fmt.Errorf("unmarshal collections: %w", err)
	}
	return sets, nil
}

func (r *Repository) Ping() error {
	return r.db.Ping()
}

func (r *Repository) Close() error {
	return r.db.Close()
}
