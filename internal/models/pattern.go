package models

import (
	"time"

	"github.com/google/uuid"
)

// SkillLevel rates how demanding a pattern is to work.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
	SkillMaster       SkillLevel = "master"
)

// Valid reports whether l is one of the declared skill levels.
func (l SkillLevel) Valid() bool {
	switch l {
	case SkillBeginner, SkillIntermediate, SkillAdvanced, SkillMaster:
		return true
	}
	return false
}

// Pattern is a reusable design. FileKey points at the design file (PDF or
// image) in object storage when one has been uploaded.
type Pattern struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	SkillLevel  SkillLevel `json:"skill_level" db:"skill_level"`
	PieceCount  *int       `json:"piece_count" db:"piece_count"`
	FileKey     *string    `json:"file_key" db:"file_key"`
	Description *string    `json:"description" db:"description"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}
