// internal/domain/profile/entity.go
package profile

import "time"

type Role string

const (
	RoleBuyer   Role = "buyer"
	RoleRealtor Role = "realtor"
	RoleLawyer  Role = "lawyer"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleBuyer, RoleRealtor, RoleLawyer, RoleAdmin:
		return true
	}
	return false
}

type Profile struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	FullName     string    `json:"full_name" db:"full_name"`
	Phone        string    `json:"phone" db:"phone"`
	Role         Role      `json:"role" db:"role"`
	Verified     bool      `json:"verified" db:"verified"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
