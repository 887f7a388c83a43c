package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/bidworks/backend/internal/models"
)

const transactionColumns = `
	id, client_id, freelancer_id, amount, type, description, created_at
`

// WalletRepository отвечает за балансы и журнал транзакций.
// Баланс изменяется только здесь и только вместе с записью в журнал,
// в одной транзакции базы.
type WalletRepository struct {
	db *sqlx.DB
}

// NewWalletRepository создаёт новый экземпляр.
func NewWalletRepository(db *sqlx.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

// GetBalance возвращает текущий баланс пользователя.
func (r *WalletRepository) GetBalance(ctx context.Context, userID uuid.UUID) (float64, error) {
	var balance float64
	if err := r.db.GetContext(ctx, &balance,
		`SELECT balance FROM users WHERE id = $1`, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("wallet repository: get balance %w", err)
	}
	return balance, nil
}

// Deposit пополняет кошелёк пользователя и пишет deposit-запись,
// где клиент и фрилансер указывают на самого владельца кошелька.
func (r *WalletRepository) Deposit(ctx context.Context, userID uuid.UUID, amount float64, description string) (float64, *models.Transaction, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("wallet repository: begin tx %w", err)
	}
	defer tx.Rollback()

	var balance float64
	err = tx.GetContext(ctx, &balance, `
		UPDATE users
		SET balance = balance + $1, updated_at = NOW()
		WHERE id = $2
		RETURNING balance
	`, amount, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil, ErrUserNotFound
		}
		return 0, nil, fmt.Errorf("wallet repository: deposit update balance %w", err)
	}

	var transaction models.Transaction
	err = tx.GetContext(ctx, &transaction, `
		INSERT INTO transactions (client_id, freelancer_id, amount, type, description)
		VALUES ($1, $1, $2, 'deposit', $3)
		RETURNING `+transactionColumns, userID, amount, description)
	if err != nil {
		return 0, nil, fmt.Errorf("wallet repository: deposit create transaction %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, nil, fmt.Errorf("wallet repository: commit %w", err)
	}
	return balance, &transaction, nil
}

// Transfer переводит средства от клиента фрилансеру. Списание, зачисление
// и запись в журнал выполняются одной транзакцией; баланс клиента
// блокируется FOR UPDATE, поэтому конкурентные переводы не уводят его
// ниже нуля.
func (r *WalletRepository) Transfer(ctx context.Context, clientID, freelancerID uuid.UUID, amount float64, description string) (float64, *models.Transaction, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, nil, fmt.Errorf("wallet repository: begin tx %w", err)
	}
	defer tx.Rollback()

	var clientBalance float64
	err = tx.GetContext(ctx, &clientBalance,
		`SELECT balance FROM users WHERE id = $1 FOR UPDATE`, clientID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil, ErrUserNotFound
		}
		return 0, nil, fmt.Errorf("wallet repository: lock client balance %w", err)
	}
	if clientBalance < amount {
		return 0, nil, ErrInsufficientFunds
	}

	err = tx.GetContext(ctx, &clientBalance, `
		UPDATE users
		SET balance = balance - $1, updated_at = NOW()
		WHERE id = $2
		RETURNING balance
	`, amount, clientID)
	if err != nil {
		return 0, nil, fmt.Errorf("wallet repository: debit client %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		UPDATE users
		SET balance = balance + $1, updated_at = NOW()
		WHERE id = $2
	`, amount, freelancerID)
	if err != nil {
		return 0, nil, fmt.Errorf("wallet repository: credit freelancer %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, nil, fmt.Errorf("wallet repository: credit rows affected %w", err)
	}
	if affected == 0 {
		return 0, nil, ErrUserNotFound
	}

	var transaction models.Transaction
	err = tx.GetContext(ctx, &transaction, `
		INSERT INTO transactions (client_id, freelancer_id, amount, type, description)
		VALUES ($1, $2, $3, 'payment', $4)
		RETURNING `+transactionColumns, clientID, freelancerID, amount, description)
	if err != nil {
		return 0, nil, fmt.Errorf("wallet repository: create payment transaction %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, nil, fmt.Errorf("wallet repository: commit %w", err)
	}
	return clientBalance, &transaction, nil
}

// ListTransactions возвращает историю транзакций пользователя
// (где он выступает любой из сторон).
func (r *WalletRepository) ListTransactions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Transaction, error) {
	var transactions []models.Transaction
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE client_id = $1 OR freelancer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	if err := r.db.SelectContext(ctx, &transactions, query, userID, limit, offset); err != nil {
		return nil, fmt.Errorf("wallet repository: list transactions %w", err)
	}
	return transactions, nil
}
