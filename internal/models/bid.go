package models

import (
	"time"

	"github.com/google/uuid"
)

// Bid представляет ставку фрилансера на проект.
// Инварианты: не более одной ставки на пару (проект, фрилансер) и не более
// одной ставки с Awarded=true на проект; оба закреплены уникальными
// индексами в базе.
type Bid struct {
	ID           uuid.UUID `db:"id" json:"id"`
	ProjectID    uuid.UUID `db:"project_id" json:"project_id"`
	FreelancerID uuid.UUID `db:"freelancer_id" json:"freelancer_id"`
	Amount       float64   `db:"amount" json:"amount"`
	Description  string    `db:"description" json:"description"`
	Status       string    `db:"status" json:"status"`
	Awarded      bool      `db:"awarded" json:"awarded"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
