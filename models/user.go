package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// User roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User model
type User struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username    string    `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email       string    `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"not null" json:"-"`
	Role        string    `gorm:"type:varchar(50);default:'user'" json:"role"`
	IsSuperuser bool      `gorm:"default:false" json:"-"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"-"`
}

// NormalizeForSave applies the pre-save rules every write path must run:
// an empty role defaults to "user", a superuser is always an admin, and
// the role has to be one of the declared set.
func (u *User) NormalizeForSave() error {
	if u.Role == "" {
		u.Role = RoleUser
	}
	if u.IsSuperuser && u.Role != RoleAdmin {
		u.Role = RoleAdmin
	}
	if u.Role != RoleAdmin && u.Role != RoleUser {
		return fmt.Errorf("unknown role %q", u.Role)
	}
	return nil
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
