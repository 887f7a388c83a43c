package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/bidworks/backend/internal/models"
	"github.com/bidworks/backend/internal/pkg/apperror"
	"github.com/bidworks/backend/internal/repository"
)

type mockWalletRepo struct {
	mock.Mock
}

func (m *mockWalletRepo) GetBalance(ctx context.Context, userID uuid.UUID) (float64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *mockWalletRepo) Deposit(ctx context.Context, userID uuid.UUID, amount float64, description string) (float64, *models.Transaction, error) {
	args := m.Called(ctx, userID, amount, description)
	var tx *models.Transaction
	if args.Get(1) != nil {
		tx = args.Get(1).(*models.Transaction)
	}
	return args.Get(0).(float64), tx, args.Error(2)
}

func (m *mockWalletRepo) Transfer(ctx context.Context, clientID, freelancerID uuid.UUID, amount float64, description string) (float64, *models.Transaction, error) {
	args := m.Called(ctx, clientID, freelancerID, amount, description)
	var tx *models.Transaction
	if args.Get(1) != nil {
		tx = args.Get(1).(*models.Transaction)
	}
	return args.Get(0).(float64), tx, args.Error(2)
}

func (m *mockWalletRepo) ListTransactions(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Transaction, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]models.Transaction), args.Error(1)
}

type mockUserGetter struct {
	mock.Mock
}

func (m *mockUserGetter) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestWalletService_Deposit_Success(t *testing.T) {
	wallets := new(mockWalletRepo)
	svc := NewWalletService(wallets, new(mockUserGetter))
	ctx := context.Background()

	actor := AuthContext{UserID: uuid.New(), Role: models.RoleClient}
	expectedTx := &models.Transaction{ID: uuid.New(), Amount: 500, Type: models.TransactionTypeDeposit}
	wallets.On("Deposit", ctx, actor.UserID, float64(500), "пополнение баланса").Return(float64(500), expectedTx, nil)

	wallet, tx, err := svc.Deposit(ctx, actor, 500)
	assert.NoError(t, err)
	assert.Equal(t, float64(500), wallet.Balance)
	assert.Equal(t, expectedTx, tx)
	wallets.AssertExpectations(t)
}

func TestWalletService_Deposit_InvalidAmount(t *testing.T) {
	svc := NewWalletService(new(mockWalletRepo), new(mockUserGetter))
	actor := AuthContext{UserID: uuid.New(), Role: models.RoleClient}

	_, _, err := svc.Deposit(context.Background(), actor, 0)
	assert.True(t, apperror.IsValidation(err))

	_, _, err = svc.Deposit(context.Background(), actor, -100)
	assert.True(t, apperror.IsValidation(err))
}

func TestWalletService_Pay_Success(t *testing.T) {
	wallets := new(mockWalletRepo)
	users := new(mockUserGetter)
	svc := NewWalletService(wallets, users)
	ctx := context.Background()

	actor := AuthContext{UserID: uuid.New(), Role: models.RoleClient}
	freelancerID := uuid.New()

	users.On("GetByID", ctx, freelancerID).Return(&models.User{
		ID:       freelancerID,
		Username: "anna_dev",
		Role:     models.RoleFreelancer,
	}, nil)
	expectedTx := &models.Transaction{
		ID:           uuid.New(),
		ClientID:     actor.UserID,
		FreelancerID: freelancerID,
		Amount:       300,
		Type:         models.TransactionTypePayment,
	}
	wallets.On("Transfer", ctx, actor.UserID, freelancerID, float64(300), mock.AnythingOfType("string")).
		Return(float64(700), expectedTx, nil)

	wallet, tx, err := svc.Pay(ctx, actor, freelancerID, 300)
	assert.NoError(t, err)
	assert.Equal(t, float64(700), wallet.Balance)
	assert.Equal(t, expectedTx, tx)
}

func TestWalletService_Pay_FreelancerRoleForbidden(t *testing.T) {
	svc := NewWalletService(new(mockWalletRepo), new(mockUserGetter))
	actor := AuthContext{UserID: uuid.New(), Role: models.RoleFreelancer}

	_, _, err := svc.Pay(context.Background(), actor, uuid.New(), 100)
	assert.True(t, apperror.IsForbidden(err))
}

func TestWalletService_Pay_SelfTransfer(t *testing.T) {
	svc := NewWalletService(new(mockWalletRepo), new(mockUserGetter))
	actor := AuthContext{UserID: uuid.New(), Role: models.RoleClient}

	_, _, err := svc.Pay(context.Background(), actor, actor.UserID, 100)
	assert.True(t, apperror.IsValidation(err))
}

func TestWalletService_Pay_RecipientNotFreelancer(t *testing.T) {
	wallets := new(mockWalletRepo)
	users := new(mockUserGetter)
	svc := NewWalletService(wallets, users)
	ctx := context.Background()

	actor := AuthContext{UserID: uuid.New(), Role: models.RoleClient}
	recipientID := uuid.New()
	users.On("GetByID", ctx, recipientID).Return(&models.User{
		ID:   recipientID,
		Role: models.RoleClient,
	}, nil)

	_, _, err := svc.Pay(ctx, actor, recipientID, 100)
	assert.True(t, apperror.IsValidation(err))
	wallets.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestWalletService_Pay_InsufficientFunds(t *testing.T) {
	wallets := new(mockWalletRepo)
	users := new(mockUserGetter)
	svc := NewWalletService(wallets, users)
	ctx := context.Background()

	actor := AuthContext{UserID: uuid.New(), Role: models.RoleClient}
	freelancerID := uuid.New()
	users.On("GetByID", ctx, freelancerID).Return(&models.User{
		ID:   freelancerID,
		Role: models.RoleFreelancer,
	}, nil)
	wallets.On("Transfer", ctx, actor.UserID, freelancerID, float64(10000), mock.AnythingOfType("string")).
		Return(float64(0), nil, repository.ErrInsufficientFunds)

	_, _, err := svc.Pay(ctx, actor, freelancerID, 10000)
	assert.True(t, apperror.IsConflict(err))
}

func TestWalletService_Pay_RecipientNotFound(t *testing.T) {
	wallets := new(mockWalletRepo)
	users := new(mockUserGetter)
	svc := NewWalletService(wallets, users)
	ctx := context.Background()

	actor := AuthContext{UserID: uuid.New(), Role: models.RoleClient}
	freelancerID := uuid.New()
	users.On("GetByID", ctx, freelancerID).Return(nil, repository.ErrUserNotFound)

	_, _, err := svc.Pay(ctx, actor, freelancerID, 100)
	assert.True(t, apperror.IsNotFound(err))
}
