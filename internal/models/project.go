package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProjectStatus tracks the lifecycle of a workshop project.
type ProjectStatus string

const (
	ProjectPlanned    ProjectStatus = "planned"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectOnHold     ProjectStatus = "on_hold"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectCancelled  ProjectStatus = "cancelled"
)

// Valid reports whether s is one of the declared project statuses.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectPlanned, ProjectInProgress, ProjectOnHold, ProjectCompleted, ProjectCancelled:
		return true
	}
	return false
}

// Project is a single piece of commissioned or stock work.
type Project struct {
	ID          uuid.UUID     `json:"id" db:"id"`
	CustomerID  *uuid.UUID    `json:"customer_id" db:"customer_id"`
	PatternID   *uuid.UUID    `json:"pattern_id" db:"pattern_id"`
	Name        string        `json:"name" db:"name"`
	Status      ProjectStatus `json:"status" db:"status"`
	StartDate   *time.Time    `json:"start_date" db:"start_date"`
	DueDate     *time.Time    `json:"due_date" db:"due_date"`
	CompletedAt *time.Time    `json:"completed_at" db:"completed_at"`
	Notes       *string       `json:"notes" db:"notes"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`
}

// ProjectComponent is one part of a project (strap, gusset, body panel) with
// the material quantity it consumes. Components seed picking list items.
type ProjectComponent struct {
	ID         uuid.UUID       `json:"id" db:"id"`
	ProjectID  uuid.UUID       `json:"project_id" db:"project_id"`
	Name       string          `json:"name" db:"name"`
	MaterialID *uuid.UUID      `json:"material_id" db:"material_id"`
	Quantity   decimal.Decimal `json:"quantity" db:"quantity"`
	Unit       MeasurementUnit `json:"unit" db:"unit"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}
