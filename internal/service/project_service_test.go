package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/bidworks/backend/internal/models"
	"github.com/bidworks/backend/internal/pkg/apperror"
	"github.com/bidworks/backend/internal/repository"
)

type mockProjectRepo struct {
	mock.Mock
}

func (m *mockProjectRepo) Create(ctx context.Context, project *models.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *mockProjectRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *mockProjectRepo) List(ctx context.Context, params repository.ListFilterParams) (*repository.ListResult, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.ListResult), args.Error(1)
}

func (m *mockProjectRepo) Update(ctx context.Context, project *models.Project) error {
	args := m.Called(ctx, project)
	return args.Error(0)
}

func (m *mockProjectRepo) Delete(ctx context.Context, id, actorID uuid.UUID, isAdmin bool) error {
	args := m.Called(ctx, id, actorID, isAdmin)
	return args.Error(0)
}

func (m *mockProjectRepo) SubmitDeliverable(ctx context.Context, projectID, freelancerID uuid.UUID, d models.Deliverable) (*models.Project, error) {
	args := m.Called(ctx, projectID, freelancerID, d)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *mockProjectRepo) Transition(ctx context.Context, projectID, actorID uuid.UUID, isAdmin bool, event models.ProjectEvent) (*models.Project, error) {
	args := m.Called(ctx, projectID, actorID, isAdmin, event)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func validProjectInput() CreateProjectInput {
	return CreateProjectInput{
		Title:       "Лендинг для студии",
		Description: "Нужен одностраничный сайт с формой заявки и адаптивной вёрсткой.",
		Category:    "web_development",
		Budget:      50000,
		DeadlineAt:  time.Now().Add(14 * 24 * time.Hour),
	}
}

func TestProjectService_Create_Success(t *testing.T) {
	repo := new(mockProjectRepo)
	svc := NewProjectService(repo)
	ctx := context.Background()

	actor := AuthContext{UserID: uuid.New(), Role: models.RoleClient}
	repo.On("Create", ctx, mock.AnythingOfType("*models.Project")).Return(nil)

	project, err := svc.Create(ctx, actor, validProjectInput())
	assert.NoError(t, err)
	assert.Equal(t, models.ProjectStatusOpen, project.Status)
	assert.Equal(t, actor.UserID, project.ClientID)
	assert.Nil(t, project.AwardedTo)
}

func TestProjectService_Create_FreelancerForbidden(t *testing.T) {
	svc := NewProjectService(new(mockProjectRepo))

	actor := AuthContext{UserID: uuid.New(), Role: models.RoleFreelancer}
	_, err := svc.Create(context.Background(), actor, validProjectInput())
	assert.True(t, apperror.IsForbidden(err))
}

func TestProjectService_Create_DeadlineInPast(t *testing.T) {
	svc := NewProjectService(new(mockProjectRepo))

	actor := AuthContext{UserID: uuid.New(), Role: models.RoleClient}
	in := validProjectInput()
	in.DeadlineAt = time.Now().Add(-time.Hour)

	_, err := svc.Create(context.Background(), actor, in)
	assert.True(t, apperror.IsValidation(err))
}

func TestProjectService_Create_UnknownCategory(t *testing.T) {
	svc := NewProjectService(new(mockProjectRepo))

	actor := AuthContext{UserID: uuid.New(), Role: models.RoleClient}
	in := validProjectInput()
	in.Category = "quantum_computing"

	_, err := svc.Create(context.Background(), actor, in)
	assert.True(t, apperror.IsValidation(err))
}

func TestProjectService_Update_NotOwner(t *testing.T) {
	repo := new(mockProjectRepo)
	svc := NewProjectService(repo)
	ctx := context.Background()

	projectID := uuid.New()
	repo.On("GetByID", ctx, projectID).Return(&models.Project{
		ID:       projectID,
		ClientID: uuid.New(),
		Status:   models.ProjectStatusOpen,
	}, nil)

	actor := AuthContext{UserID: uuid.New(), Role: models.RoleClient}
	title := "новое название"
	_, err := svc.Update(ctx, actor, UpdateProjectInput{ProjectID: projectID, Title: &title})
	assert.True(t, apperror.IsForbidden(err))
}

func TestProjectService_Delete_AdminAllowed(t *testing.T) {
	repo := new(mockProjectRepo)
	svc := NewProjectService(repo)
	ctx := context.Background()

	admin := AuthContext{UserID: uuid.New(), Role: models.RoleAdmin}
	projectID := uuid.New()
	repo.On("GetByID", ctx, projectID).Return(&models.Project{
		ID:       projectID,
		ClientID: uuid.New(),
		Status:   models.ProjectStatusOpen,
	}, nil)
	repo.On("Delete", ctx, projectID, admin.UserID, true).Return(nil)

	err := svc.Delete(ctx, admin, projectID)
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestProjectService_SubmitDeliverable_NotAssignee(t *testing.T) {
	repo := new(mockProjectRepo)
	svc := NewProjectService(repo)
	ctx := context.Background()

	actor := AuthContext{UserID: uuid.New(), Role: models.RoleFreelancer}
	projectID := uuid.New()
	d := models.Deliverable{Description: "готово, проверьте"}
	repo.On("SubmitDeliverable", ctx, projectID, actor.UserID, d).
		Return(nil, repository.ErrNotProjectOwner)

	_, err := svc.SubmitDeliverable(ctx, actor, projectID, d)
	assert.True(t, apperror.IsForbidden(err))
}

func TestProjectService_Close_IllegalTransition(t *testing.T) {
	repo := new(mockProjectRepo)
	svc := NewProjectService(repo)
	ctx := context.Background()

	actor := AuthContext{UserID: uuid.New(), Role: models.RoleClient}
	projectID := uuid.New()
	_, fsmErr := models.NextProjectStatus(models.ProjectStatusCompleted, models.EventClose)
	repo.On("Transition", ctx, projectID, actor.UserID, false, models.EventClose).
		Return(nil, fsmErr)

	_, err := svc.Close(ctx, actor, projectID)
	assert.True(t, apperror.IsValidation(err))
}

func TestProjectService_List_UnknownStatus(t *testing.T) {
	svc := NewProjectService(new(mockProjectRepo))

	_, err := svc.List(context.Background(), ListInput{Status: "archived"})
	assert.True(t, apperror.IsValidation(err))
}
