package models

import (
	"time"

	"github.com/google/uuid"
)

// Типы транзакций. При пополнении client_id и freelancer_id равны
// владельцу кошелька (самоперевод).
const (
	TransactionTypeDeposit = "deposit"
	TransactionTypePayment = "payment"
)

// Transaction неизменяемая запись журнала о движении средств.
type Transaction struct {
	ID           uuid.UUID `db:"id" json:"id"`
	ClientID     uuid.UUID `db:"client_id" json:"client_id"`
	FreelancerID uuid.UUID `db:"freelancer_id" json:"freelancer_id"`
	Amount       float64   `db:"amount" json:"amount"`
	Type         string    `db:"type" json:"type"`
	Description  string    `db:"description" json:"description"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// Wallet текущее состояние кошелька пользователя.
type Wallet struct {
	UserID  uuid.UUID `json:"user_id"`
	Balance float64   `json:"balance"`
}
