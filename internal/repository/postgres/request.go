package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"bloodbridge-backend/internal/domain"
	"bloodbridge-backend/internal/logger"
	"bloodbridge-backend/internal/repository"
)

var requestColumns = map[string]string{
	"status":   "status",
	"notes":    "notes",
	"quantity": "quantity",
}

// Request reads join the creator's name into created_by_name. This is
// a relational-only enrichment; the other backends leave it empty.
const requestSelect = `SELECT r.request_id, r.blood_type, r.quantity, r.urgency, r.status, r.created_by,
       COALESCE(u.name, ''), r.created_at, COALESCE(r.hospital_name, ''), COALESCE(r.location, ''), COALESCE(r.notes, '')
FROM blood_requests r
LEFT JOIN users u ON r.created_by = u.user_id`

func (s *Store) CreateRequest(ctx context.Context, req *domain.BloodRequest) error {
	query := `INSERT INTO blood_requests (request_id, blood_type, quantity, urgency, status, created_by, created_at, hospital_name, location, notes)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), NULLIF($9, ''), NULLIF($10, ''))`
	_, err := s.db.ExecContext(ctx, query,
		req.RequestID, req.BloodType, req.Quantity, req.Urgency, req.Status,
		req.CreatedBy, req.Timestamp, req.HospitalName, req.Location, req.Notes)
	if err != nil {
		logger.Error("failed to insert blood request", "error", err)
	}
	return err
}

func (s *Store) GetRequestByID(ctx context.Context, id string) (*domain.BloodRequest, error) {
	row := s.db.QueryRowContext(ctx, requestSelect+" WHERE r.request_id = $1", id)
	req := &domain.BloodRequest{}
	err := row.Scan(&req.RequestID, &req.BloodType, &req.Quantity, &req.Urgency, &req.Status,
		&req.CreatedBy, &req.CreatedByName, &req.Timestamp, &req.HospitalName, &req.Location, &req.Notes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (s *Store) GetRequestsByBloodType(ctx context.Context, bloodType string, status domain.RequestStatus) ([]domain.BloodRequest, error) {
	query := requestSelect + " WHERE r.blood_type = $1"
	args := []any{bloodType}
	if status != "" {
		query += " AND r.status = $2"
		args = append(args, status)
	}
	query += " ORDER BY r.created_at DESC"
	return s.queryRequests(ctx, query, args...)
}

func (s *Store) GetAllRequests(ctx context.Context, status domain.RequestStatus) ([]domain.BloodRequest, error) {
	query := requestSelect
	args := []any{}
	if status != "" {
		query += " WHERE r.status = $1"
		args = append(args, status)
	}
	query += " ORDER BY r.created_at DESC"
	return s.queryRequests(ctx, query, args...)
}

func (s *Store) queryRequests(ctx context.Context, query string, args ...any) ([]domain.BloodRequest, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		logger.Error("failed to query blood requests", "error", err)
		return nil, err
	}
	defer rows.Close()

	results := []domain.BloodRequest{}
	for rows.Next() {
		var req domain.BloodRequest
		if err := rows.Scan(&req.RequestID, &req.BloodType, &req.Quantity, &req.Urgency, &req.Status,
			&req.CreatedBy, &req.CreatedByName, &req.Timestamp, &req.HospitalName, &req.Location, &req.Notes); err != nil {
			return nil, err
		}
		results = append(results, req)
	}
	return results, rows.Err()
}

func (s *Store) UpdateRequest(ctx context.Context, id string, fields map[string]any) error {
	setClauses := make([]string, 0, len(fields))
	args := make([]any, 0, len(fields)+1)
	for key, value := range fields {
		column, ok := requestColumns[key]
		if !ok {
			return fmt.Errorf("unsupported request field: %q", key)
		}
		args = append(args, value)
		setClauses = append(setClauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE blood_requests SET %s WHERE request_id = $%d", strings.Join(setClauses, ", "), len(args))
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.Error("failed to update blood request", "error", err, "request_id", id)
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}
