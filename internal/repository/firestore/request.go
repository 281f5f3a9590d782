package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"bloodbridge-backend/internal/domain"
	"bloodbridge-backend/internal/repository"
)

type requestDoc struct {
	RequestID    string    `firestore:"request_id"`
	BloodType    string    `firestore:"blood_type"`
	Quantity     int       `firestore:"quantity"`
	Urgency      string    `firestore:"urgency"`
	Status       string    `firestore:"status"`
	CreatedBy    string    `firestore:"created_by"`
	Timestamp    time.Time `firestore:"timestamp"`
	HospitalName string    `firestore:"hospital_name"`
	Location     string    `firestore:"location"`
	Notes        string    `firestore:"notes"`
}

func toRequestDoc(r *domain.BloodRequest) requestDoc {
	return requestDoc{
		RequestID:    r.RequestID,
		BloodType:    r.BloodType,
		Quantity:     r.Quantity,
		Urgency:      string(r.Urgency),
		Status:       string(r.Status),
		CreatedBy:    r.CreatedBy,
		Timestamp:    r.Timestamp,
		HospitalName: r.HospitalName,
		Location:     r.Location,
		Notes:        r.Notes,
	}
}

func (d requestDoc) toDomain() domain.BloodRequest {
	return domain.BloodRequest{
		RequestID:    d.RequestID,
		BloodType:    d.BloodType,
		Quantity:     d.Quantity,
		Urgency:      domain.Urgency(d.Urgency),
		Status:       domain.RequestStatus(d.Status),
		CreatedBy:    d.CreatedBy,
		Timestamp:    d.Timestamp,
		HospitalName: d.HospitalName,
		Location:     d.Location,
		Notes:        d.Notes,
	}
}

func (s *Store) CreateRequest(ctx context.Context, req *domain.BloodRequest) error {
	_, err := s.client.Collection(requestsCollection).Doc(req.RequestID).Create(ctx, toRequestDoc(req))
	return err
}

func (s *Store) GetRequestByID(ctx context.Context, id string) (*domain.BloodRequest, error) {
	snap, err := s.client.Collection(requestsCollection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var d requestDoc
	if err := snap.DataTo(&d); err != nil {
		return nil, err
	}
	req := d.toDomain()
	return &req, nil
}

// GetRequestsByBloodType needs the composite blood_type+status index
// when a status filter is given.
func (s *Store) GetRequestsByBloodType(ctx context.Context, bloodType string, reqStatus domain.RequestStatus) ([]domain.BloodRequest, error) {
	q := s.client.Collection(requestsCollection).Where("blood_type", "==", bloodType)
	if reqStatus != "" {
		q = q.Where("status", "==", string(reqStatus))
	}
	return s.queryRequests(ctx, q)
}

func (s *Store) GetAllRequests(ctx context.Context, reqStatus domain.RequestStatus) ([]domain.BloodRequest, error) {
	q := s.client.Collection(requestsCollection).Query
	if reqStatus != "" {
		q = q.Where("status", "==", string(reqStatus))
	}
	return s.queryRequests(ctx, q)
}

func (s *Store) queryRequests(ctx context.Context, q firestore.Query) ([]domain.BloodRequest, error) {
	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	results := make([]domain.BloodRequest, 0, len(snaps))
	for _, snap := range snaps {
		var d requestDoc
		if err := snap.DataTo(&d); err != nil {
			return nil, err
		}
		results = append(results, d.toDomain())
	}
	return results, nil
}

func (s *Store) UpdateRequest(ctx context.Context, id string, fields map[string]any) error {
	updates := make([]firestore.Update, 0, len(fields))
	for key, value := range fields {
		if v, ok := value.(domain.RequestStatus); ok {
			value = string(v)
		}
		updates = append(updates, firestore.Update{Path: key, Value: value})
	}
	_, err := s.client.Collection(requestsCollection).Doc(id).Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		return repository.ErrNotFound
	}
	return err
}
