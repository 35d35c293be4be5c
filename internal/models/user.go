package models

import (
	"time"

	"gorm.io/gorm"
)

// Role is the policy label an authenticated actor carries. The workflow core
// does not consult roles; handlers gate operations on them.
type Role string

const (
	RoleRequestInitiator   Role = "request_initiator"
	RoleProcurementManager Role = "procurement_manager"
	RoleProcurementOfficer Role = "procurement_officer"
	RoleGeneralUser        Role = "general_user"
)

// Valid reports whether r is one of the recognized roles.
func (r Role) Valid() bool {
	switch r {
	case RoleRequestInitiator, RoleProcurementManager, RoleProcurementOfficer, RoleGeneralUser:
		return true
	}
	return false
}

// User is an authenticated actor in the system.
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Role      Role           `gorm:"size:32;not null;default:general_user" json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
