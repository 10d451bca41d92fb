package model

// User roles
const (
	UserRoleAdmin  = "admin"
	UserRoleDoctor = "doctor"
)

// User is a portal login. DoctorID references a Doctor's employee code when
// the role is "doctor".
type User struct {
	Base
	Email        string  `db:"email" json:"email"`
	PasswordHash string  `db:"password_hash" json:"-"`
	Role         string  `db:"role" json:"role"`
	DoctorID     *string `db:"doctor_id" json:"doctor_id,omitempty"`
	RefreshToken *string `db:"refresh_token" json:"-"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type RegisterRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8"`
	Role     string  `json:"role" binding:"required,oneof=admin doctor"`
	DoctorID *string `json:"doctor_id"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type TokenResponse struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token,omitempty"`
	User         UserInfo `json:"user"`
}
