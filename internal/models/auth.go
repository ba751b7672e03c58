package models

import "github.com/golang-jwt/jwt/v5"

// UserRole represents the available roles for access control.
type UserRole string

const (
	RoleSuperAdmin UserRole = "SUPERADMIN"
	RoleAdmin      UserRole = "ADMIN"
	RoleTeacher    UserRole = "TEACHER"
	RoleStudent    UserRole = "STUDENT"
)

// IsStaff reports whether the role may manage other students' grades.
func (r UserRole) IsStaff() bool {
	return r == RoleTeacher || r == RoleAdmin || r == RoleSuperAdmin
}

// JWTClaims represents the JWT payload for access tokens issued by the
// external identity provider. Email is the key used to locate student
// data across the course documents.
type JWTClaims struct {
	Email    string   `json:"email"`
	Role     UserRole `json:"role"`
	FullName string   `json:"full_name,omitempty"`
	jwt.RegisteredClaims
}
