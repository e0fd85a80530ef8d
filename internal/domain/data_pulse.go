package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// PulseLevel tags which taxonomy level a pulse targets.
type PulseLevel string

// Known pulse levels.
const (
	PulseLevelConcept PulseLevel = "conceptCategory"
	PulseLevelContent PulseLevel = "contentCategory"
)

// Common validation errors for DataPulse.
var (
	ErrEmptyPulseUserID = errors.New("data pulse user ID cannot be empty")
	ErrEmptyPulseName   = errors.New("data pulse name cannot be empty")
	ErrInvalidPulseLevel = errors.New(
		"data pulse level must be conceptCategory or contentCategory",
	)
	ErrNegativePulseCounts = errors.New("data pulse counts cannot be negative")
)

// DataPulse is an append-only evidence record of a practice outcome, either
// from an external platform or an in-app session. Pulses are immutable once
// created; mastery folding consumes their counts without mutating them.
type DataPulse struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Name      string     `json:"name"`
	Level     PulseLevel `json:"level"`
	Source    string     `json:"source"`
	Weight    int        `json:"weight"`
	Positive  int        `json:"positive"`
	Negative  int        `json:"negative"`
	Notes     string     `json:"notes"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewDataPulse creates a new evidence record with a generated ID and weight 1.
func NewDataPulse(
	userID uuid.UUID,
	name string,
	level PulseLevel,
	source string,
	positive, negative int,
	notes string,
) (*DataPulse, error) {
	pulse := &DataPulse{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      name,
		Level:     level,
		Source:    source,
		Weight:    1,
		Positive:  positive,
		Negative:  negative,
		Notes:     notes,
		CreatedAt: time.Now().UTC(),
	}

	if err := pulse.Validate(); err != nil {
		return nil, err
	}

	return pulse, nil
}

// Validate checks if the DataPulse has valid data.
func (p *DataPulse) Validate() error {
	if p.UserID == uuid.Nil {
		return ErrEmptyPulseUserID
	}
	if p.Name == "" {
		return ErrEmptyPulseName
	}
	if p.Level != PulseLevelConcept && p.Level != PulseLevelContent {
		return ErrInvalidPulseLevel
	}
	if p.Positive < 0 || p.Negative < 0 {
		return ErrNegativePulseCounts
	}
	return nil
}
