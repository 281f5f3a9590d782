package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"bloodbridge-backend/internal/domain"
	"bloodbridge-backend/internal/logger"
	"bloodbridge-backend/internal/repository"
	"bloodbridge-backend/internal/security"
)

var (
	// ErrInvalidCredentials is deliberately identical for an unknown
	// email and a wrong password so a caller cannot tell which failed.
	ErrInvalidCredentials = errors.New("invalid credentials")

	errMissingFields   = ValidationError("Missing required fields")
	errInvalidRole     = ValidationError("Invalid role")
	errBloodTypeNeeded = ValidationError("Blood type required for donors")
)

type authService struct {
	store  repository.Store
	tokens security.TokenManager
}

func NewAuthService(store repository.Store, tokens security.TokenManager) AuthService {
	return &authService{store: store, tokens: tokens}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" || in.Role == "" {
		return nil, errMissingFields
	}
	if !domain.IsValidRole(in.Role) {
		return nil, errInvalidRole
	}
	if in.Role == domain.RoleDonor {
		if in.BloodType == "" {
			return nil, errBloodTypeNeeded
		}
		if !domain.IsValidBloodType(in.BloodType) {
			return nil, errInvalidBloodType
		}
	}

	hash, err := security.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		UserID:       uuid.NewString(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		Phone:        in.Phone,
		CreatedAt:    time.Now().UTC(),
	}
	switch in.Role {
	case domain.RoleDonor:
		user.BloodType = in.BloodType
		user.LastDonation = in.LastDonation
	case domain.RoleHospital:
		user.HospitalName = in.HospitalName
		user.Location = in.Location
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	logger.Info("user registered", "user_id", user.UserID, "role", user.Role)
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, ValidationError("Email and password required")
	}

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !security.VerifyPassword(password, user.PasswordHash) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.UserID, user.Email, user.Role)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
