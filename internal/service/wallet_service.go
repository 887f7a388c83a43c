package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/bidworks/backend/internal/models"
	"github.com/bidworks/backend/internal/pkg/apperror"
	"github.com/bidworks/backend/internal/repository"
)

// WalletRepository описывает операции с балансами и журналом транзакций.
type WalletRepository interface {
	GetBalance(ctx context.Context, userID uuid.UUID) (float64, error)
	Deposit(ctx context.Context, userID uuid.UUID, amount float64, description string) (float64, *models.Transaction, error)
	Transfer(ctx context.Context, clientID, freelancerID uuid.UUID, amount float64, description string) (float64, *models.Transaction, error)
	ListTransactions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Transaction, error)
}

// WalletUserGetter минимальный контракт для проверки получателя платежа.
type WalletUserGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// WalletService содержит бизнес-логику кошельков: пополнение,
// оплата работы и история транзакций.
type WalletService struct {
	wallets WalletRepository
	users   WalletUserGetter
}

// NewWalletService создаёт сервис кошельков.
func NewWalletService(wallets WalletRepository, users WalletUserGetter) *WalletService {
	return &WalletService{wallets: wallets, users: users}
}

// Balance возвращает текущий баланс пользователя.
func (s *WalletService) Balance(ctx context.Context, actor AuthContext) (*models.Wallet, error) {
	balance, err := s.wallets.GetBalance(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, apperror.ErrUserNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось загрузить баланс")
	}
	return &models.Wallet{UserID: actor.UserID, Balance: balance}, nil
}

// Deposit пополняет баланс вызывающего пользователя.
func (s *WalletService) Deposit(ctx context.Context, actor AuthContext, amount float64) (*models.Wallet, *models.Transaction, error) {
	if amount <= 0 {
		return nil, nil, apperror.New(apperror.ErrCodeValidation, "сумма пополнения должна быть больше нуля")
	}

	balance, tx, err := s.wallets.Deposit(ctx, actor.UserID, amount, "пополнение баланса")
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil, apperror.ErrUserNotFound
		}
		return nil, nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось пополнить баланс")
	}
	return &models.Wallet{UserID: actor.UserID, Balance: balance}, tx, nil
}

// Pay переводит средства от клиента фрилансеру. Списание, зачисление
// и запись в журнал выполняются хранилищем в одной транзакции.
func (s *WalletService) Pay(ctx context.Context, actor AuthContext, freelancerID uuid.UUID, amount float64) (*models.Wallet, *models.Transaction, error) {
	if actor.Role != models.RoleClient {
		return nil, nil, apperror.New(apperror.ErrCodeForbidden, "платить может только клиент")
	}
	if amount <= 0 {
		return nil, nil, apperror.New(apperror.ErrCodeValidation, "сумма платежа должна быть больше нуля")
	}
	if freelancerID == actor.UserID {
		return nil, nil, apperror.New(apperror.ErrCodeValidation, "нельзя перевести средства самому себе")
	}

	recipient, err := s.users.GetByID(ctx, freelancerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, nil, apperror.ErrUserNotFound
		}
		return nil, nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось проверить получателя")
	}
	if recipient.Role != models.RoleFreelancer {
		return nil, nil, apperror.New(apperror.ErrCodeValidation, "получателем платежа может быть только фрилансер")
	}

	description := fmt.Sprintf("оплата работы фрилансера %s", recipient.Username)
	balance, tx, err := s.wallets.Transfer(ctx, actor.UserID, freelancerID, amount, description)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInsufficientFunds):
			return nil, nil, apperror.New(apperror.ErrCodeConflict, "недостаточно средств на балансе")
		case errors.Is(err, repository.ErrUserNotFound):
			return nil, nil, apperror.ErrUserNotFound
		}
		return nil, nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось выполнить платёж")
	}
	return &models.Wallet{UserID: actor.UserID, Balance: balance}, tx, nil
}

// Transactions возвращает страницу журнала транзакций пользователя,
// где он выступал отправителем или получателем.
func (s *WalletService) Transactions(ctx context.Context, actor AuthContext, limit, offset int) ([]models.Transaction, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	items, err := s.wallets.ListTransactions(ctx, actor.UserID, limit, offset)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось загрузить транзакции")
	}
	return items, nil
}
