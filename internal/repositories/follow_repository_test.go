package repositories

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/spincrate/backend/internal/models"
)

func setupTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
	}

	return gormDB, mock, cleanup
}

func TestFollowRepository_AcceptFollow(t *testing.T) {
	tests := []struct {
		name         string
		mockSetup    func(sqlmock.Sqlmock)
		wantAffected int64
		expectError  bool
	}{
		{
			name: "pending edge transitions",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(
					`UPDATE "follows" SET "status"=$1 WHERE follower_id = $2 AND following_id = $3 AND status = $4`)).
					WithArgs(models.FollowStatusAccepted, 5, 9, models.FollowStatusPending).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
			wantAffected: 1,
		},
		{
			name: "missing or already accepted edge affects zero rows",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE "follows"`)).
					WithArgs(models.FollowStatusAccepted, 5, 9, models.FollowStatusPending).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectCommit()
			},
			wantAffected: 0,
		},
		{
			name: "database error",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE "follows"`)).
					WillReturnError(assert.AnError)
				mock.ExpectRollback()
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := setupTestDB(t)
			defer cleanup()

			tt.mockSetup(mock)

			repo := NewPostgresFollowRepository(db)
			affected, err := repo.AcceptFollow(5, 9)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantAffected, affected)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestFollowRepository_DeleteFollow(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(
		`DELETE FROM "follows" WHERE follower_id = $1 AND following_id = $2`)).
		WithArgs(5, 9).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := NewPostgresFollowRepository(db)
	affected, err := repo.DeleteFollow(5, 9)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowRepository_GetFollowStatus(t *testing.T) {
	tests := []struct {
		name       string
		mockSetup  func(sqlmock.Sqlmock)
		wantStatus string
	}{
		{
			name: "pending edge",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(
					`SELECT "status" FROM "follows" WHERE follower_id = $1 AND following_id = $2`)).
					WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(models.FollowStatusPending))
			},
			wantStatus: models.FollowStatusPending,
		},
		{
			name: "accepted edge",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT "status" FROM "follows"`)).
					WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(models.FollowStatusAccepted))
			},
			wantStatus: models.FollowStatusAccepted,
		},
		{
			name: "no edge maps to none, not an error",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta(`SELECT "status" FROM "follows"`)).
					WillReturnRows(sqlmock.NewRows([]string{"status"}))
			},
			wantStatus: models.FollowStatusNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := setupTestDB(t)
			defer cleanup()

			tt.mockSetup(mock)

			repo := NewPostgresFollowRepository(db)
			status, err := repo.GetFollowStatus(5, 9)

			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, status)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestFollowRepository_CreateFollow(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "follows"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	repo := NewPostgresFollowRepository(db)
	follow := &models.Follow{FollowerID: 5, FollowingID: 9, Status: models.FollowStatusPending}

	require.NoError(t, repo.CreateFollow(follow))
	assert.Equal(t, uint(1), follow.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFollowRepository_GetPendingRequests(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT * FROM "follows" WHERE following_id = $1 AND status = $2 ORDER BY created_at DESC`)).
		WithArgs(9, models.FollowStatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"id", "follower_id", "following_id", "status"}).
			AddRow(1, 5, 9, models.FollowStatusPending).
			AddRow(2, 6, 9, models.FollowStatusPending))

	repo := NewPostgresFollowRepository(db)
	requests, err := repo.GetPendingRequests(9)

	assert.NoError(t, err)
	assert.Len(t, requests, 2)
	assert.Equal(t, uint(5), requests[0].FollowerID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
