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

type mockBidRepo struct {
	mock.Mock
}

func (m *mockBidRepo) Create(ctx context.Context, bid *models.Bid) error {
	args := m.Called(ctx, bid)
	return args.Error(0)
}

func (m *mockBidRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Bid, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Bid), args.Error(1)
}

func (m *mockBidRepo) ListByProject(ctx context.Context, projectID uuid.UUID, limit, offset int) ([]models.Bid, int, error) {
	args := m.Called(ctx, projectID, limit, offset)
	return args.Get(0).([]models.Bid), args.Int(1), args.Error(2)
}

func (m *mockBidRepo) ListByFreelancer(ctx context.Context, freelancerID uuid.UUID, limit, offset int) ([]models.Bid, int, error) {
	args := m.Called(ctx, freelancerID, limit, offset)
	return args.Get(0).([]models.Bid), args.Int(1), args.Error(2)
}

func (m *mockBidRepo) Update(ctx context.Context, bid *models.Bid) error {
	args := m.Called(ctx, bid)
	return args.Error(0)
}

func (m *mockBidRepo) Delete(ctx context.Context, id, freelancerID uuid.UUID) error {
	args := m.Called(ctx, id, freelancerID)
	return args.Error(0)
}

func (m *mockBidRepo) Award(ctx context.Context, bidID, clientID uuid.UUID) (*models.Bid, *models.Project, error) {
	args := m.Called(ctx, bidID, clientID)
	var bid *models.Bid
	var project *models.Project
	if args.Get(0) != nil {
		bid = args.Get(0).(*models.Bid)
	}
	if args.Get(1) != nil {
		project = args.Get(1).(*models.Project)
	}
	return bid, project, args.Error(2)
}

type mockProjectGetter struct {
	mock.Mock
}

func (m *mockProjectGetter) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func freelancerActor() AuthContext {
	return AuthContext{UserID: uuid.New(), Role: models.RoleFreelancer}
}

func TestBidService_Place_Success(t *testing.T) {
	bids := new(mockBidRepo)
	projects := new(mockProjectGetter)
	svc := NewBidService(bids, projects)
	ctx := context.Background()

	actor := freelancerActor()
	projectID := uuid.New()

	projects.On("GetByID", ctx, projectID).Return(&models.Project{
		ID:       projectID,
		ClientID: uuid.New(),
		Status:   models.ProjectStatusOpen,
	}, nil)
	bids.On("Create", ctx, mock.AnythingOfType("*models.Bid")).Return(nil)

	bid, err := svc.Place(ctx, actor, PlaceBidInput{
		ProjectID:   projectID,
		Amount:      1500,
		Description: "сделаю за неделю",
	})
	assert.NoError(t, err)
	assert.Equal(t, actor.UserID, bid.FreelancerID)
	assert.Equal(t, models.BidStatusPending, bid.Status)
	bids.AssertExpectations(t)
}

func TestBidService_Place_ClientForbidden(t *testing.T) {
	svc := NewBidService(new(mockBidRepo), new(mockProjectGetter))

	_, err := svc.Place(context.Background(), AuthContext{UserID: uuid.New(), Role: models.RoleClient}, PlaceBidInput{
		ProjectID:   uuid.New(),
		Amount:      100,
		Description: "попытка клиента",
	})
	assert.True(t, apperror.IsForbidden(err))
}

func TestBidService_Place_ProjectNotOpen(t *testing.T) {
	bids := new(mockBidRepo)
	projects := new(mockProjectGetter)
	svc := NewBidService(bids, projects)
	ctx := context.Background()

	projectID := uuid.New()
	projects.On("GetByID", ctx, projectID).Return(&models.Project{
		ID:       projectID,
		ClientID: uuid.New(),
		Status:   models.ProjectStatusInProgress,
	}, nil)

	_, err := svc.Place(ctx, freelancerActor(), PlaceBidInput{
		ProjectID:   projectID,
		Amount:      100,
		Description: "слишком поздно",
	})
	assert.True(t, apperror.IsValidation(err))
	bids.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestBidService_Place_OwnProject(t *testing.T) {
	bids := new(mockBidRepo)
	projects := new(mockProjectGetter)
	svc := NewBidService(bids, projects)
	ctx := context.Background()

	actor := freelancerActor()
	projectID := uuid.New()
	projects.On("GetByID", ctx, projectID).Return(&models.Project{
		ID:       projectID,
		ClientID: actor.UserID,
		Status:   models.ProjectStatusOpen,
	}, nil)

	_, err := svc.Place(ctx, actor, PlaceBidInput{
		ProjectID:   projectID,
		Amount:      100,
		Description: "ставка на свой проект",
	})
	assert.True(t, apperror.IsForbidden(err))
}

func TestBidService_Place_Duplicate(t *testing.T) {
	bids := new(mockBidRepo)
	projects := new(mockProjectGetter)
	svc := NewBidService(bids, projects)
	ctx := context.Background()

	projectID := uuid.New()
	projects.On("GetByID", ctx, projectID).Return(&models.Project{
		ID:       projectID,
		ClientID: uuid.New(),
		Status:   models.ProjectStatusOpen,
	}, nil)
	bids.On("Create", ctx, mock.AnythingOfType("*models.Bid")).Return(repository.ErrDuplicateBid)

	_, err := svc.Place(ctx, freelancerActor(), PlaceBidInput{
		ProjectID:   projectID,
		Amount:      100,
		Description: "вторая ставка",
	})
	assert.True(t, apperror.IsConflict(err))
}

func TestBidService_Place_InvalidAmount(t *testing.T) {
	svc := NewBidService(new(mockBidRepo), new(mockProjectGetter))

	_, err := svc.Place(context.Background(), freelancerActor(), PlaceBidInput{
		ProjectID:   uuid.New(),
		Amount:      0,
		Description: "бесплатно",
	})
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.Place(context.Background(), freelancerActor(), PlaceBidInput{
		ProjectID:   uuid.New(),
		Amount:      -50,
		Description: "отрицательная сумма",
	})
	assert.True(t, apperror.IsValidation(err))
}

func TestBidService_Award_Success(t *testing.T) {
	bids := new(mockBidRepo)
	projects := new(mockProjectGetter)
	svc := NewBidService(bids, projects)
	ctx := context.Background()

	client := AuthContext{UserID: uuid.New(), Role: models.RoleClient}
	bidID := uuid.New()
	projectID := uuid.New()
	freelancerID := uuid.New()

	awardedBid := &models.Bid{
		ID:           bidID,
		ProjectID:    projectID,
		FreelancerID: freelancerID,
		Status:       models.BidStatusAccepted,
		Awarded:      true,
	}
	project := &models.Project{
		ID:        projectID,
		ClientID:  client.UserID,
		Status:    models.ProjectStatusInProgress,
		AwardedTo: &freelancerID,
	}
	bids.On("Award", ctx, bidID, client.UserID).Return(awardedBid, project, nil)

	result, err := svc.Award(ctx, client, bidID)
	assert.NoError(t, err)
	assert.True(t, result.Bid.Awarded)
	assert.Equal(t, models.ProjectStatusInProgress, result.Project.Status)
	assert.Equal(t, &freelancerID, result.Project.AwardedTo)
}

func TestBidService_Award_NotOwner(t *testing.T) {
	bids := new(mockBidRepo)
	svc := NewBidService(bids, new(mockProjectGetter))
	ctx := context.Background()

	actor := AuthContext{UserID: uuid.New(), Role: models.RoleClient}
	bidID := uuid.New()
	bids.On("Award", ctx, bidID, actor.UserID).Return(nil, nil, repository.ErrNotProjectOwner)

	_, err := svc.Award(ctx, actor, bidID)
	assert.True(t, apperror.IsForbidden(err))
}

func TestBidService_Award_AlreadyAwarded(t *testing.T) {
	bids := new(mockBidRepo)
	svc := NewBidService(bids, new(mockProjectGetter))
	ctx := context.Background()

	actor := AuthContext{UserID: uuid.New(), Role: models.RoleClient}
	bidID := uuid.New()
	bids.On("Award", ctx, bidID, actor.UserID).Return(nil, nil, repository.ErrBidAlreadyAwarded)

	_, err := svc.Award(ctx, actor, bidID)
	assert.True(t, apperror.IsConflict(err))
}

func TestBidService_Award_BidNotFound(t *testing.T) {
	bids := new(mockBidRepo)
	svc := NewBidService(bids, new(mockProjectGetter))
	ctx := context.Background()

	actor := AuthContext{UserID: uuid.New(), Role: models.RoleClient}
	bidID := uuid.New()
	bids.On("Award", ctx, bidID, actor.UserID).Return(nil, nil, repository.ErrBidNotFound)

	_, err := svc.Award(ctx, actor, bidID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestBidService_Delete_Awarded(t *testing.T) {
	bids := new(mockBidRepo)
	svc := NewBidService(bids, new(mockProjectGetter))
	ctx := context.Background()

	actor := freelancerActor()
	bidID := uuid.New()
	bids.On("Delete", ctx, bidID, actor.UserID).Return(repository.ErrBidAlreadyAwarded)

	err := svc.Delete(ctx, actor, bidID)
	assert.True(t, apperror.IsConflict(err))
}

func TestBidService_Update_NotPending(t *testing.T) {
	bids := new(mockBidRepo)
	svc := NewBidService(bids, new(mockProjectGetter))
	ctx := context.Background()

	actor := freelancerActor()
	bidID := uuid.New()
	bids.On("GetByID", ctx, bidID).Return(&models.Bid{
		ID:           bidID,
		FreelancerID: actor.UserID,
		Status:       models.BidStatusRejected,
	}, nil)

	amount := 200.0
	_, err := svc.Update(ctx, actor, UpdateBidInput{BidID: bidID, Amount: &amount})
	assert.True(t, apperror.IsValidation(err))
}

func TestBidService_ListByProject_OnlyOwner(t *testing.T) {
	bids := new(mockBidRepo)
	projects := new(mockProjectGetter)
	svc := NewBidService(bids, projects)
	ctx := context.Background()

	projectID := uuid.New()
	projects.On("GetByID", ctx, projectID).Return(&models.Project{
		ID:       projectID,
		ClientID: uuid.New(),
		Status:   models.ProjectStatusOpen,
	}, nil)

	_, _, err := svc.ListByProject(ctx, freelancerActor(), projectID, 20, 0)
	assert.True(t, apperror.IsForbidden(err))
}
