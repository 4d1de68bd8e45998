package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/ibeloyar/taskmarket/internal/model"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &Repository{db: db, classifier: NewPostgresErrorClassifier()}, mock
}

func testSets() map[string][]model.Order {
	return map[string][]model.Order{
		model.CollectionOrders: {
			{ID: "o1", Title: "essay", Status: model.OrderStatusAvailable, Pages: 3, PageRate: 100},
		},
	}
}

func TestRepository_Save_Upsert(t *testing.T) {
	repo, mock := newMockRepository(t)

	sets := testSets()
	data, err := json.Marshal(sets)
	require.NoError(t, err)

	mock.ExpectExec("INSERT INTO collection_sets").
		WithArgs(setName, data).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Save(context.Background(), sets)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Save_RetriesConnectionError(t *testing.T) {
	repo, mock := newMockRepository(t)

	// 08006 - connection failure, две неудачи и успех с третьей попытки
	connErr := &pq.Error{Code: "08006"}
	mock.ExpectExec("INSERT INTO collection_sets").WillReturnError(connErr)
	mock.ExpectExec("INSERT INTO collection_sets").WillReturnError(connErr)
	mock.ExpectExec("INSERT INTO collection_sets").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Save(context.Background(), testSets())

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Save_GivesUpAfterMaxAttempts(t *testing.T) {
	repo, mock := newMockRepository(t)

	connErr := &pq.Error{Code: "08006"}
	for i := 0; i < maxAttempts; i++ {
		mock.ExpectExec("INSERT INTO collection_sets").WillReturnError(connErr)
	}

	err := repo.Save(context.Background(), testSets())

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Save_NonRetriableFailsImmediately(t *testing.T) {
	repo, mock := newMockRepository(t)

	// 42P01 - undefined table, ретраить бессмысленно
	mock.ExpectExec("INSERT INTO collection_sets").
		WillReturnError(&pq.Error{Code: "42P01"})

	err := repo.Save(context.Background(), testSets())

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Load_Found(t *testing.T) {
	repo, mock := newMockRepository(t)

	data, err := json.Marshal(testSets())
	require.NoError(t, err)

	mock.ExpectQuery("SELECT data FROM collection_sets WHERE name = \\$1").
		WithArgs(setName).
		WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow(data))

	sets, err := repo.Load(context.Background())

	require.NoError(t, err)
	require.Len(t, sets[model.CollectionOrders], 1)
	assert.Equal(t, "o1", sets[model.CollectionOrders][0].ID)
	assert.Equal(t, model.OrderStatusAvailable, sets[model.CollectionOrders][0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Load_Empty(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("SELECT data FROM collection_sets WHERE name = \\$1").
		WithArgs(setName).
		WillReturnError(sql.ErrNoRows)

	sets, err := repo.Load(context.Background())

	assert.NoError(t, err)
	assert.Nil(t, sets)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Load_CorruptBlob(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("SELECT data FROM collection_sets WHERE name = \\$1").
		WithArgs(setName).
		WillReturnRows(sqlmock.NewRows([]string{"data"}).AddRow([]byte("{broken")))

	_, err := repo.Load(context.Background())

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
