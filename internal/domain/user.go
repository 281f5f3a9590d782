package domain

import "time"

type Role string

const (
	RoleDonor    Role = "donor"
	RoleHospital Role = "hospital"
	RoleManager  Role = "manager"
)

// IsValidRole reports whether r is one of the three account roles.
func IsValidRole(r Role) bool {
	switch r {
	case RoleDonor, RoleHospital, RoleManager:
		return true
	}
	return false
}

// User is an account record. Role-specific fields are populated only
// for the matching role: BloodType/LastDonation for donors,
// HospitalName/Location for hospitals.
type User struct {
	UserID       string     `json:"user_id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	Phone        string     `json:"phone,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	BloodType    string     `json:"blood_type,omitempty"`
	LastDonation *time.Time `json:"last_donation,omitempty"`
	HospitalName string     `json:"hospital_name,omitempty"`
	Location     string     `json:"location,omitempty"`
}
