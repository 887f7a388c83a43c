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

type mockReviewRepo struct {
	mock.Mock
}

func (m *mockReviewRepo) Create(ctx context.Context, review *models.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *mockReviewRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Review, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]models.Review), args.Error(1)
}

func completedProject(clientID, freelancerID uuid.UUID) *models.Project {
	return &models.Project{
		ID:        uuid.New(),
		ClientID:  clientID,
		Status:    models.ProjectStatusCompleted,
		AwardedTo: &freelancerID,
	}
}

func TestReviewService_Create_ClientReviewsFreelancer(t *testing.T) {
	reviews := new(mockReviewRepo)
	projects := new(mockProjectGetter)
	svc := NewReviewService(reviews, projects)
	ctx := context.Background()

	clientID := uuid.New()
	freelancerID := uuid.New()
	project := completedProject(clientID, freelancerID)

	projects.On("GetByID", ctx, project.ID).Return(project, nil)
	reviews.On("Create", ctx, mock.AnythingOfType("*models.Review")).Return(nil)

	review, err := svc.Create(ctx, AuthContext{UserID: clientID, Role: models.RoleClient}, CreateReviewInput{
		ProjectID: project.ID,
		Rating:    5,
	})
	assert.NoError(t, err)
	assert.Equal(t, freelancerID, review.ReviewedID)
	assert.Equal(t, clientID, review.ReviewerID)
}

func TestReviewService_Create_FreelancerReviewsClient(t *testing.T) {
	reviews := new(mockReviewRepo)
	projects := new(mockProjectGetter)
	svc := NewReviewService(reviews, projects)
	ctx := context.Background()

	clientID := uuid.New()
	freelancerID := uuid.New()
	project := completedProject(clientID, freelancerID)

	projects.On("GetByID", ctx, project.ID).Return(project, nil)
	reviews.On("Create", ctx, mock.AnythingOfType("*models.Review")).Return(nil)

	review, err := svc.Create(ctx, AuthContext{UserID: freelancerID, Role: models.RoleFreelancer}, CreateReviewInput{
		ProjectID: project.ID,
		Rating:    4,
	})
	assert.NoError(t, err)
	assert.Equal(t, clientID, review.ReviewedID)
}

func TestReviewService_Create_OutsiderForbidden(t *testing.T) {
	reviews := new(mockReviewRepo)
	projects := new(mockProjectGetter)
	svc := NewReviewService(reviews, projects)
	ctx := context.Background()

	project := completedProject(uuid.New(), uuid.New())
	projects.On("GetByID", ctx, project.ID).Return(project, nil)

	_, err := svc.Create(ctx, AuthContext{UserID: uuid.New(), Role: models.RoleClient}, CreateReviewInput{
		ProjectID: project.ID,
		Rating:    3,
	})
	assert.True(t, apperror.IsForbidden(err))
}

func TestReviewService_Create_ProjectNotCompleted(t *testing.T) {
	reviews := new(mockReviewRepo)
	projects := new(mockProjectGetter)
	svc := NewReviewService(reviews, projects)
	ctx := context.Background()

	clientID := uuid.New()
	freelancerID := uuid.New()
	project := completedProject(clientID, freelancerID)
	project.Status = models.ProjectStatusInProgress
	projects.On("GetByID", ctx, project.ID).Return(project, nil)

	_, err := svc.Create(ctx, AuthContext{UserID: clientID, Role: models.RoleClient}, CreateReviewInput{
		ProjectID: project.ID,
		Rating:    5,
	})
	assert.True(t, apperror.IsValidation(err))
}

func TestReviewService_Create_Duplicate(t *testing.T) {
	reviews := new(mockReviewRepo)
	projects := new(mockProjectGetter)
	svc := NewReviewService(reviews, projects)
	ctx := context.Background()

	clientID := uuid.New()
	project := completedProject(clientID, uuid.New())
	projects.On("GetByID", ctx, project.ID).Return(project, nil)
	reviews.On("Create", ctx, mock.AnythingOfType("*models.Review")).Return(repository.ErrDuplicateReview)

	_, err := svc.Create(ctx, AuthContext{UserID: clientID, Role: models.RoleClient}, CreateReviewInput{
		ProjectID: project.ID,
		Rating:    5,
	})
	assert.True(t, apperror.IsConflict(err))
}

func TestReviewService_Create_InvalidRating(t *testing.T) {
	svc := NewReviewService(new(mockReviewRepo), new(mockProjectGetter))

	_, err := svc.Create(context.Background(), AuthContext{UserID: uuid.New(), Role: models.RoleClient}, CreateReviewInput{
		ProjectID: uuid.New(),
		Rating:    0,
	})
	assert.True(t, apperror.IsValidation(err))

	_, err = svc.Create(context.Background(), AuthContext{UserID: uuid.New(), Role: models.RoleClient}, CreateReviewInput{
		ProjectID: uuid.New(),
		Rating:    6,
	})
	assert.True(t, apperror.IsValidation(err))
}
