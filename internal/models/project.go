package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Project описывает проект, размещённый клиентом.
// Инвариант: AwardedTo заполнен тогда и только тогда, когда проект
// в статусе in_progress, pending_review или completed.
type Project struct {
	ID          uuid.UUID  `db:"id" json:"id"`
	ClientID    uuid.UUID  `db:"client_id" json:"client_id"`
	Title       string     `db:"title" json:"title"`
	Description string     `db:"description" json:"description"`
	Category    string     `db:"category" json:"category"`
	Budget      float64    `db:"budget" json:"budget"`
	DeadlineAt  time.Time  `db:"deadline_at" json:"deadline_at"`
	Status      string     `db:"status" json:"status"`
	AwardedTo   *uuid.UUID `db:"awarded_to" json:"awarded_to,omitempty"`

	DeliverableDescription *string        `db:"deliverable_description" json:"deliverable_description,omitempty"`
	DeliverableFiles       pq.StringArray `db:"deliverable_files" json:"deliverable_files,omitempty"`
	DeliverableNotes       *string        `db:"deliverable_notes" json:"deliverable_notes,omitempty"`
	DeliverableSubmittedAt *time.Time     `db:"deliverable_submitted_at" json:"deliverable_submitted_at,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	BidsCount *int `db:"bids_count" json:"bids_count,omitempty"`
}

// Deliverable описывает результат работы, прикладываемый исполнителем.
type Deliverable struct {
	Description string   `json:"description"`
	Files       []string `json:"files,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
}
