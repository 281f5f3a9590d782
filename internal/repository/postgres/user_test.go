package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bloodbridge-backend/internal/domain"
	"bloodbridge-backend/internal/repository"
	"bloodbridge-backend/internal/repository/postgres"
)

var userRows = []string{
	"user_id", "name", "email", "password_hash", "role",
	"phone", "blood_type", "last_donation", "hospital_name", "location", "created_at",
}

func newMockStore(t *testing.T) (*postgres.Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return postgres.NewStore(db), mock
}

func TestCreateUser(t *testing.T) {
	store, mock := newMockStore(t)

	user := &domain.User{
		UserID:       "u1",
		Name:         "Jane Donor",
		Email:        "jane@test.com",
		PasswordHash: "hash",
		Role:         domain.RoleDonor,
		BloodType:    "A+",
		CreatedAt:    time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO users").
		WithArgs(user.UserID, user.Name, user.Email, user.PasswordHash, user.Role,
			user.Phone, user.BloodType, sqlmock.AnyArg(), user.HospitalName, user.Location, user.CreatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.CreateUser(context.Background(), user)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUser_UniqueViolation(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("INSERT INTO users").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})

	err := store.CreateUser(context.Background(), &domain.User{
		UserID: "u2", Email: "jane@test.com", Role: domain.RoleDonor,
	})
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByEmail(t *testing.T) {
	store, mock := newMockStore(t)

	donated := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	created := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(userRows).
		AddRow("u1", "Jane Donor", "jane@test.com", "hash", "donor",
			"555-0100", "A+", donated, "", "", created)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email = \\$1").
		WithArgs("jane@test.com").
		WillReturnRows(rows)

	user, err := store.GetUserByEmail(context.Background(), "jane@test.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.UserID)
	assert.Equal(t, domain.RoleDonor, user.Role)
	assert.Equal(t, "A+", user.BloodType)
	require.NotNil(t, user.LastDonation)
	assert.True(t, user.LastDonation.Equal(donated))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByID_NotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE user_id = \\$1").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	user, err := store.GetUserByID(context.Background(), "missing")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByID_NullOptionals(t *testing.T) {
	store, mock := newMockStore(t)

	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(userRows).
		AddRow("h1", "City Hospital", "hospital@test.com", "hash", "hospital",
			"", "", nil, "City Hospital", "Springfield", created)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE user_id = \\$1").
		WithArgs("h1").
		WillReturnRows(rows)

	user, err := store.GetUserByID(context.Background(), "h1")
	require.NoError(t, err)
	assert.Nil(t, user.LastDonation)
	assert.Empty(t, user.BloodType)
	assert.Equal(t, "City Hospital", user.HospitalName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUser(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("UPDATE users SET phone = \\$1 WHERE user_id = \\$2").
		WithArgs("555-0101", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := store.UpdateUser(context.Background(), "u1", map[string]any{"phone": "555-0101"})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUser_NotFound(t *testing.T) {
	store, mock := newMockStore(t)

	mock.ExpectExec("UPDATE users SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := store.UpdateUser(context.Background(), "missing", map[string]any{"name": "X"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUser_RejectsUnknownField(t *testing.T) {
	store, mock := newMockStore(t)

	err := store.UpdateUser(context.Background(), "u1", map[string]any{"password_hash": "evil"})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, repository.ErrNotFound)
	// Rejected before any SQL runs.
	assert.NoError(t, mock.ExpectationsWereMet())
}
