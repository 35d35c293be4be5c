// Package models contains data structures for the application's domain models.
package models

import (
	"fmt"
	"time"
)

// Stage is one discrete position in the procurement workflow.
type Stage string

// The nine linear workflow stages, in order, plus the two terminal stages
// reachable only through an administrative override.
const (
	StagePendingAssignment Stage = "pending-assignment"
	StageAssigned          Stage = "assigned-to-officer"
	StageProductSourcing   Stage = "product-sourcing"
	StagePOCreated         Stage = "po-created"
	StageFinanceApproval   Stage = "finance-approval"
	StageMDApproval        Stage = "md-approval"
	StagePaymentProcessing Stage = "payment-processing"
	StageAwaitingDelivery  Stage = "awaiting-delivery"
	StageCompleted         Stage = "completed"

	StageDeclined  Stage = "declined"
	StageCancelled Stage = "cancelled"
)

// Priority is the urgency tier of a request.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityNormal Priority = "normal"
	PriorityLow    Priority = "low"
)

// priorityRanks orders the three tiers for sorting. Higher sorts first.
var priorityRanks = map[Priority]int{
	PriorityHigh:   3,
	PriorityNormal: 2,
	PriorityLow:    1,
}

// Rank returns the sort rank of the priority; unknown values rank below low.
func (p Priority) Rank() int {
	return priorityRanks[p]
}

// Valid reports whether p is one of the recognized tiers.
func (p Priority) Valid() bool {
	_, ok := priorityRanks[p]
	return ok
}

// Urgent reports whether p is the highest urgency tier.
func (p Priority) Urgent() bool {
	return p == PriorityHigh
}

// Request represents a procurement request moving through the workflow.
// Stage and officer assignment change only through the workflow engine;
// handlers never write them directly.
type Request struct {
	ID                uint       `gorm:"primaryKey" json:"id"`
	Item              string     `gorm:"type:text;not null" json:"item"`
	RequestedBy       string     `gorm:"not null" json:"requested_by"`
	DepartmentID      uint       `gorm:"not null;index" json:"department_id"`
	Department        Department `gorm:"foreignKey:DepartmentID" json:"department"`
	Priority          Priority   `gorm:"size:16;not null;default:normal" json:"priority"`
	Stage             Stage      `gorm:"size:32;not null;default:pending-assignment;index" json:"stage"`
	AssignedOfficerID *uint      `gorm:"index" json:"assigned_officer_id,omitempty"`
	Officer           *Officer   `gorm:"foreignKey:AssignedOfficerID" json:"officer,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// ReqNumber returns the display-formatted requisition number for the request.
func (r Request) ReqNumber() string {
	return fmt.Sprintf("%03d", r.ID)
}

// StageEvent records one step of a request's tracking history.
type StageEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RequestID uint      `gorm:"not null;index" json:"request_id"`
	FromStage Stage     `gorm:"size:32" json:"from_stage"`
	ToStage   Stage     `gorm:"size:32;not null" json:"to_stage"`
	Note      string    `gorm:"type:text" json:"note"`
	ActorName string    `json:"actor_name"`
	CreatedAt time.Time `json:"created_at"`
}
