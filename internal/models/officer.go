package models

import (
	"strings"
	"time"
)

// Officer is a procurement officer who progresses assigned requests through
// sourcing, PO, and payment stages. Referenced, never owned, by Request.
type Officer struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FirstName  string    `gorm:"not null" json:"first_name"`
	MiddleName string    `json:"middle_name,omitempty"`
	LastName   string    `gorm:"not null" json:"last_name"`
	Email      string    `gorm:"uniqueIndex;not null" json:"email"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// FullName returns the officer's display name.
func (o Officer) FullName() string {
	parts := []string{o.FirstName}
	if o.MiddleName != "" {
		parts = append(parts, o.MiddleName)
	}
	parts = append(parts, o.LastName)
	return strings.Join(parts, " ")
}
