package models

import (
	"time"

	"github.com/google/uuid"
)

// CustomerTier groups customers for reporting.
type CustomerTier string

const (
	TierStandard CustomerTier = "standard"
	TierRepeat   CustomerTier = "repeat"
	TierVIP      CustomerTier = "vip"
)

// Valid reports whether t is one of the declared customer tiers.
func (t CustomerTier) Valid() bool {
	switch t {
	case TierStandard, TierRepeat, TierVIP:
		return true
	}
	return false
}

type Customer struct {
	ID        uuid.UUID    `json:"id" db:"id"`
	Name      string       `json:"name" db:"name"`
	Email     *string      `json:"email" db:"email"`
	Phone     *string      `json:"phone" db:"phone"`
	Address   *string      `json:"address" db:"address"`
	Tier      CustomerTier `json:"tier" db:"tier"`
	Notes     *string      `json:"notes" db:"notes"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt time.Time    `json:"updated_at" db:"updated_at"`
}
