package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"bloodbridge-backend/internal/domain"
	"bloodbridge-backend/internal/logger"
	"bloodbridge-backend/internal/repository"
)

const pqUniqueViolation = "23505"

// userColumns maps updatable contract field names to their columns.
// Anything outside this list is rejected before reaching SQL.
var userColumns = map[string]string{
	"name":          "name",
	"phone":         "phone",
	"blood_type":    "blood_type",
	"last_donation": "last_donation",
	"hospital_name": "hospital_name",
	"location":      "location",
}

func (s *Store) CreateUser(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (user_id, name, email, password_hash, role, phone, blood_type, last_donation, hospital_name, location, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8, NULLIF($9, ''), NULLIF($10, ''), $11)`
	var lastDonation sql.NullTime
	if u.LastDonation != nil {
		lastDonation = sql.NullTime{Time: *u.LastDonation, Valid: true}
	}
	_, err := s.db.ExecContext(ctx, query,
		u.UserID, u.Name, u.Email, u.PasswordHash, u.Role, u.Phone,
		u.BloodType, lastDonation, u.HospitalName, u.Location, u.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return repository.ErrDuplicateEmail
		}
		logger.Error("failed to insert user", "error", err)
		return err
	}
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT user_id, name, email, password_hash, role, COALESCE(phone, ''), COALESCE(blood_type, ''), last_donation, COALESCE(hospital_name, ''), COALESCE(location, ''), created_at
	          FROM users WHERE user_id = $1`
	return s.scanUser(s.db.QueryRowContext(ctx, query, id))
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	// Byte-exact comparison: email uniqueness is case-sensitive.
	query := `SELECT user_id, name, email, password_hash, role, COALESCE(phone, ''), COALESCE(blood_type, ''), last_donation, COALESCE(hospital_name, ''), COALESCE(location, ''), created_at
	          FROM users WHERE email = $1`
	return s.scanUser(s.db.QueryRowContext(ctx, query, email))
}

func (s *Store) scanUser(row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	var lastDonation sql.NullTime
	err := row.Scan(&u.UserID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
		&u.Phone, &u.BloodType, &lastDonation, &u.HospitalName, &u.Location, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if lastDonation.Valid {
		t := lastDonation.Time
		u.LastDonation = &t
	}
	return u, nil
}

func (s *Store) UpdateUser(ctx context.Context, id string, fields map[string]any) error {
	setClauses := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+1)
	for key, value := range fields {
		column, ok := userColumns[key]
		if !ok {
			return fmt.Errorf("unsupported user field: %q", key)
		}
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE users SET %s WHERE user_id = $%d", strings.Join(setClauses, ", "), len(args))
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.Error("failed to update user", "error", err, "user_id", id)
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
