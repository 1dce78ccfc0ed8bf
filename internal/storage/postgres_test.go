package storage

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/factkeeper/internal/common"
	"github.com/dmitrijs2005/factkeeper/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var recordColumns = []string{"id", "text", "category", "submitted_by", "source", "created_at", "approved"}

func newAdapterWithMock(t *testing.T) (*PostgresAdapter, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPostgresAdapter(db), mock, db
}

func TestPostgresList_FiltersAndOrders(t *testing.T) {
	repo, mock, db := newAdapterWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,\s*text,\s*category,\s*submitted_by,\s*source,\s*created_at,\s*approved\s+FROM\s+facts\s+WHERE\s+approved\s*=\s*\$1\s+ORDER\s+BY\s+created_at\s+DESC$`
	t1 := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(q).
		WithArgs(true).
		WillReturnRows(sqlmock.NewRows(recordColumns).
			AddRow("b", "newer", "Space", "", "", t1, true).
			AddRow("a", "older", "Food", "Ann", "wiki", t0, true))

	got, err := repo.List(context.Background(), CollectionFacts)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "Ann", got[1].SubmittedBy)
	assert.Equal(t, "wiki", got[1].Source)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresList_SubmissionsUnapproved(t *testing.T) {
	repo, mock, db := newAdapterWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+submitted_facts\s+WHERE\s+approved\s*=\s*\$1`).
		WithArgs(false).
		WillReturnRows(sqlmock.NewRows(recordColumns))

	got, err := repo.List(context.Background(), CollectionSubmissions)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresList_DBError(t *testing.T) {
	repo, mock, db := newAdapterWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`FROM\s+facts`).WillReturnError(errors.New("db down"))

	_, err := repo.List(context.Background(), CollectionFacts)
	require.Error(t, err)
	assert.Regexp(t, regexp.MustCompile(`db error: .*db down`), err.Error())
}

func TestPostgresGet(t *testing.T) {
	repo, mock, db := newAdapterWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+id,.*FROM\s+submitted_facts\s+WHERE\s+id\s*=\s*\$1$`
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(q).WithArgs("s1").
		WillReturnRows(sqlmock.NewRows(recordColumns).AddRow("s1", "text", "Food", "Ann", "", ts, false))
	mock.ExpectQuery(q).WithArgs("ghost").WillReturnError(sql.ErrNoRows)

	got, err := repo.Get(context.Background(), CollectionSubmissions, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.SubmittedBy)

	_, err = repo.Get(context.Background(), CollectionSubmissions, "ghost")
	require.ErrorIs(t, err, common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresInsert(t *testing.T) {
	repo, mock, db := newAdapterWithMock(t)
	defer db.Close()

	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r := models.Record{ID: "f1", Text: "text", Category: "Food", SubmittedBy: "Ann", CreatedAt: ts, Approved: true}

	q := `(?s)^INSERT\s+INTO\s+facts\s*\(id,\s*text,\s*category,\s*submitted_by,\s*source,\s*created_at,\s*approved\)\s*VALUES\s*\(\$1,\s*\$2,\s*\$3,\s*\$4,\s*\$5,\s*\$6,\s*\$7\)$`
	mock.ExpectExec(q).
		WithArgs("f1", "text", "Food", "Ann", "", ts, true).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})
	mock.ExpectExec(q).
		WillReturnError(errors.New("db down"))

	require.NoError(t, repo.Insert(context.Background(), CollectionFacts, r))
	require.ErrorIs(t, repo.Insert(context.Background(), CollectionFacts, r), common.ErrorAlreadyExists)
	err := repo.Insert(context.Background(), CollectionFacts, r)
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorAlreadyExists)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresReplace(t *testing.T) {
	repo, mock, db := newAdapterWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+facts\s+SET\s+text\s*=\s*\$2.*WHERE\s+id\s*=\s*\$1$`
	mock.ExpectExec(q).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Replace(context.Background(), CollectionFacts, models.Record{ID: "f1"}))
	require.ErrorIs(t, repo.Replace(context.Background(), CollectionFacts, models.Record{ID: "nope"}), common.ErrorNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRemove(t *testing.T) {
	repo, mock, db := newAdapterWithMock(t)
	defer db.Close()

	q := `^DELETE\s+FROM\s+submitted_facts\s+WHERE\s+id\s*=\s*\$1$`
	mock.ExpectExec(q).WithArgs("s1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).WithArgs("s1").WillReturnResult(sqlmock.NewResult(0, 0))

	removed, err := repo.Remove(context.Background(), CollectionSubmissions, "s1")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Remove(context.Background(), CollectionSubmissions, "s1")
	require.NoError(t, err)
	assert.False(t, removed)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPut_RunsInTransaction(t *testing.T) {
	repo, mock, db := newAdapterWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`^DELETE\s+FROM\s+facts$`).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`INSERT\s+INTO\s+facts`).WithArgs("a", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT\s+INTO\s+facts`).WithArgs("b", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Put(context.Background(), CollectionFacts, []models.Record{{ID: "a"}, {ID: "b"}})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresPut_RollsBackOnError(t *testing.T) {
	repo, mock, db := newAdapterWithMock(t)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`^DELETE\s+FROM\s+facts$`).WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`INSERT\s+INTO\s+facts`).WillReturnError(errors.New("db down"))
	mock.ExpectRollback()

	err := repo.Put(context.Background(), CollectionFacts, []models.Record{{ID: "a"}})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoteManager_WithinTx(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()
	m := newRemoteSQLManager(db, "p")

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT\s+INTO\s+facts`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE\s+FROM\s+submitted_facts\s+WHERE\s+id`).WithArgs("s1").WillReturnError(errors.New("db down"))
	mock.ExpectRollback()

	err = m.WithinTx(context.Background(), func(ctx context.Context, s Adapter, _ KV) error {
		if err := s.Insert(ctx, CollectionFacts, models.Record{ID: "f1", Approved: true}); err != nil {
			return err
		}
		_, err := s.Remove(ctx, CollectionSubmissions, "s1")
		return err
	})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRemoteManager_ValuesArePrefixed(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()
	m := newRemoteSQLManager(db, "p")

	mock.ExpectQuery(`SELECT value FROM settings`).WithArgs("p:admin_password").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	v, err := m.Values().GetValue(context.Background(), common.KeyAdminPassword)
	require.NoError(t, err)
	assert.Nil(t, v)
	require.NoError(t, mock.ExpectationsWereMet())
}
