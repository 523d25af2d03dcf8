package database

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saviladev/PhishingDetector/internal/models"
)

func newTestRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "postgres")
	return NewRepository(sqlxDB), mock
}

func urlRowColumns() []string {
	return []string{"id", "url", "domain", "url_hash", "source", "submitted_at", "created_at", "updated_at"}
}

func urlRow(id uuid.UUID, url, domain string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(urlRowColumns()).
		AddRow(id, url, domain, hashURL(url), models.SourceManual, now, now, now)
}

func TestSubmitURL(t *testing.T) {
	existingID := uuid.New()

	testCases := []struct {
		name        string
		req         *models.URLSubmitRequest
		setupMock   func(mock sqlmock.Sqlmock)
		wantCreated bool
		wantErr     error
	}{
		{
			name: "new url inserted",
			req:  &models.URLSubmitRequest{URL: "http://evil.example/login", Domain: "evil.example"},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("UPDATE urls").
					WithArgs("http://evil.example/login", sqlmock.AnyArg()).
					WillReturnError(sql.ErrNoRows)
				mock.ExpectQuery("INSERT INTO urls").
					WillReturnRows(urlRow(uuid.New(), "http://evil.example/login", "evil.example"))
			},
			wantCreated: true,
		},
		{
			name: "existing url refreshed",
			req:  &models.URLSubmitRequest{URL: "http://evil.example/login", Domain: "evil.example"},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("UPDATE urls").
					WithArgs("http://evil.example/login", sqlmock.AnyArg()).
					WillReturnRows(urlRow(existingID, "http://evil.example/login", "evil.example"))
			},
			wantCreated: false,
		},
		{
			name: "lost insert race resolves to surviving row",
			req:  &models.URLSubmitRequest{URL: "http://evil.example/login", Domain: "evil.example"},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("UPDATE urls").
					WillReturnError(sql.ErrNoRows)
				mock.ExpectQuery("INSERT INTO urls").
					WillReturnError(&pq.Error{Code: pgUniqueViolation})
				mock.ExpectQuery("UPDATE urls").
					WillReturnRows(urlRow(existingID, "http://evil.example/login", "evil.example"))
			},
			wantCreated: false,
		},
		{
			name:      "empty url rejected before touching the store",
			req:       &models.URLSubmitRequest{URL: "   ", Domain: "evil.example"},
			setupMock: func(_ sqlmock.Sqlmock) {},
			wantErr:   models.ErrEmptyURL,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock := newTestRepository(t)
			tc.setupMock(mock)

			record, created, err := repo.SubmitURL(context.Background(), tc.req)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, record)
			} else {
				require.NoError(t, err)
				require.NotNil(t, record)
				assert.Equal(t, tc.wantCreated, created)
				assert.Equal(t, "http://evil.example/login", record.URL)
				assert.Equal(t, "evil.example", record.Domain)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSubmitURL_NormalizesDomain(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery("UPDATE urls").
		WithArgs("http://Evil.example/a", sqlmock.AnyArg()).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("INSERT INTO urls").
		WithArgs(
			sqlmock.AnyArg(), "http://Evil.example/a", "evil.example", hashURL("http://Evil.example/a"),
			models.SourceManual, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
		).
		WillReturnRows(urlRow(uuid.New(), "http://Evil.example/a", "evil.example"))

	req := &models.URLSubmitRequest{URL: " http://Evil.example/a ", Domain: "Evil.Example"}
	record, created, err := repo.SubmitURL(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "evil.example", record.Domain)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetURLByID(t *testing.T) {
	id := uuid.New()

	testCases := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   error
	}{
		{
			name: "found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT .+ FROM urls WHERE id").
					WithArgs(id).
					WillReturnRows(urlRow(id, "http://evil.example/a", "evil.example"))
			},
		},
		{
			name: "not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT .+ FROM urls WHERE id").
					WithArgs(id).
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: models.ErrNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock := newTestRepository(t)
			tc.setupMock(mock)

			record, err := repo.GetURLByID(context.Background(), id)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, id, record.ID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGetURLByURL_NotFound(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery("SELECT .+ FROM urls WHERE url").
		WithArgs("http://unknown.example/").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetURLByURL(context.Background(), "http://unknown.example/")

	require.ErrorIs(t, err, models.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListURLsByDomain(t *testing.T) {
	repo, mock := newTestRepository(t)

	rows := sqlmock.NewRows(urlRowColumns())
	now := time.Now()
	rows.AddRow(uuid.New(), "http://evil.example/a", "evil.example", hashURL("http://evil.example/a"), "manual", now, now, now)
	rows.AddRow(uuid.New(), "http://evil.example/b", "evil.example", hashURL("http://evil.example/b"), "crawler", now.Add(-time.Hour), now, now)

	mock.ExpectQuery("SELECT .+ FROM urls").
		WithArgs("evil.example", 100, 0).
		WillReturnRows(rows)

	records, err := repo.ListURLsByDomain(context.Background(), &models.URLFilter{Domain: "evil.example"})

	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListURLsByDomain_ClampsLimit(t *testing.T) {
	repo, mock := newTestRepository(t)

	mock.ExpectQuery("SELECT .+ FROM urls").
		WithArgs("evil.example", 1000, 0).
		WillReturnRows(sqlmock.NewRows(urlRowColumns()))

	_, err := repo.ListURLsByDomain(context.Background(), &models.URLFilter{Domain: "evil.example", Limit: 5000})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteURL(t *testing.T) {
	id := uuid.New()

	testCases := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantErr   error
	}{
		{
			name: "deleted",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("DELETE FROM urls").
					WithArgs(id).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("DELETE FROM urls").
					WithArgs(id).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: models.ErrNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock := newTestRepository(t)
			tc.setupMock(mock)

			err := repo.DeleteURL(context.Background(), id)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestHashURL_Deterministic(t *testing.T) {
	a := hashURL("http://evil.example/a")
	b := hashURL("http://evil.example/a")

	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
	assert.NotEqual(t, a, hashURL("http://evil.example/b"))
}
