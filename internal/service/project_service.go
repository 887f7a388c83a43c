package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/bidworks/backend/internal/models"
	"github.com/bidworks/backend/internal/pkg/apperror"
	"github.com/bidworks/backend/internal/repository"
	"github.com/bidworks/backend/internal/validation"
)

// ProjectRepository описывает взаимодействие сервиса с хранилищем проектов.
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
	List(ctx context.Context, params repository.ListFilterParams) (*repository.ListResult, error)
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id, actorID uuid.UUID, isAdmin bool) error
	SubmitDeliverable(ctx context.Context, projectID, freelancerID uuid.UUID, d models.Deliverable) (*models.Project, error)
	Transition(ctx context.Context, projectID, actorID uuid.UUID, isAdmin bool, event models.ProjectEvent) (*models.Project, error)
}

// ProjectService содержит бизнес-логику жизненного цикла проектов.
type ProjectService struct {
	repo ProjectRepository
	now  func() time.Time
}

// NewProjectService создаёт новый сервис проектов.
func NewProjectService(repo ProjectRepository) *ProjectService {
	return &ProjectService{repo: repo, now: time.Now}
}

// CreateProjectInput данные нового проекта.
type CreateProjectInput struct {
	Title       string
	Description string
	Category    string
	Budget      float64
	DeadlineAt  time.Time
}

// Create публикует проект клиента в статусе open.
func (s *ProjectService) Create(ctx context.Context, actor AuthContext, in CreateProjectInput) (*models.Project, error) {
	if actor.Role != models.RoleClient {
		return nil, apperror.New(apperror.ErrCodeForbidden, "только клиенты могут публиковать проекты")
	}
	if err := validation.ValidateProjectTitle(in.Title); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateProjectDescription(in.Description); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateCategory(in.Category); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateBudget(in.Budget); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateDeadline(in.DeadlineAt, s.now()); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}

	project := &models.Project{
		ClientID:    actor.UserID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Budget:      in.Budget,
		DeadlineAt:  in.DeadlineAt,
		Status:      models.ProjectStatusOpen,
	}

	if err := s.repo.Create(ctx, project); err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось сохранить проект")
	}
	return project, nil
}

// Get возвращает проект по идентификатору.
func (s *ProjectService) Get(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, apperror.ErrProjectNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось загрузить проект")
	}
	return project, nil
}

// ListInput параметры выборки проектов.
type ListInput struct {
	Status   string
	Category string
	ClientID *uuid.UUID
	Limit    int
	Offset   int
}

// List возвращает страницу проектов.
func (s *ProjectService) List(ctx context.Context, in ListInput) (*repository.ListResult, error) {
	if in.Status != "" {
		if _, ok := models.ValidProjectStatuses[in.Status]; !ok {
			return nil, apperror.New(apperror.ErrCodeValidation, "неизвестный статус проекта")
		}
	}
	if in.Category != "" {
		if err := validation.ValidateCategory(in.Category); err != nil {
			return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
		}
	}
	if in.Limit <= 0 || in.Limit > 100 {
		in.Limit = 20
	}
	if in.Offset < 0 {
		in.Offset = 0
	}

	result, err := s.repo.List(ctx, repository.ListFilterParams{
		Status:   in.Status,
		Category: in.Category,
		ClientID: in.ClientID,
		Limit:    in.Limit,
		Offset:   in.Offset,
	})
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось загрузить проекты")
	}
	return result, nil
}

// UpdateProjectInput изменяемые поля проекта.
type UpdateProjectInput struct {
	ProjectID   uuid.UUID
	Title       *string
	Description *string
	Category    *string
	Budget      *float64
	DeadlineAt  *time.Time
}

// Update изменяет редактируемые поля проекта владельца.
// Статус и исполнитель этим путём не меняются.
func (s *ProjectService) Update(ctx context.Context, actor AuthContext, in UpdateProjectInput) (*models.Project, error) {
	project, err := s.Get(ctx, in.ProjectID)
	if err != nil {
		return nil, err
	}
	if project.ClientID != actor.UserID {
		return nil, apperror.New(apperror.ErrCodeForbidden, "изменять проект может только его владелец")
	}

	if in.Title != nil {
		if err := validation.ValidateProjectTitle(*in.Title); err != nil {
			return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
		}
		project.Title = *in.Title
	}
	if in.Description != nil {
		if err := validation.ValidateProjectDescription(*in.Description); err != nil {
			return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
		}
		project.Description = *in.Description
	}
	if in.Category != nil {
		if err := validation.ValidateCategory(*in.Category); err != nil {
			return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
		}
		project.Category = *in.Category
	}
	if in.Budget != nil {
		if err := validation.ValidateBudget(*in.Budget); err != nil {
			return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
		}
		project.Budget = *in.Budget
	}
	if in.DeadlineAt != nil {
		if err := validation.ValidateDeadline(*in.DeadlineAt, s.now()); err != nil {
			return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
		}
		project.DeadlineAt = *in.DeadlineAt
	}

	if err := s.repo.Update(ctx, project); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, apperror.ErrProjectNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось обновить проект")
	}
	return project, nil
}

// Delete удаляет проект владельца либо любой проект от имени администратора.
func (s *ProjectService) Delete(ctx context.Context, actor AuthContext, projectID uuid.UUID) error {
	// Различаем «не найден» и «чужой проект» до удаления.
	project, err := s.Get(ctx, projectID)
	if err != nil {
		return err
	}
	if project.ClientID != actor.UserID && actor.Role != models.RoleAdmin {
		return apperror.New(apperror.ErrCodeForbidden, "удалять проект может только его владелец")
	}

	if err := s.repo.Delete(ctx, projectID, actor.UserID, actor.Role == models.RoleAdmin); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return apperror.ErrProjectNotFound
		}
		return apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось удалить проект")
	}
	return nil
}

// SubmitDeliverable принимает результат работы от назначенного исполнителя
// и переводит проект в pending_review.
func (s *ProjectService) SubmitDeliverable(ctx context.Context, actor AuthContext, projectID uuid.UUID, d models.Deliverable) (*models.Project, error) {
	if err := validation.ValidateLength("описание результата", d.Description, 1, validation.MaxProjectDescriptionLen); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if d.Notes != nil {
		if err := validation.ValidateLength("заметки", *d.Notes, 0, validation.MaxDeliverableNotesLength); err != nil {
			return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
		}
	}

	project, err := s.repo.SubmitDeliverable(ctx, projectID, actor.UserID, d)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrProjectNotFound):
			return nil, apperror.ErrProjectNotFound
		case errors.Is(err, repository.ErrNotProjectOwner):
			return nil, apperror.New(apperror.ErrCodeForbidden, "сдать результат может только назначенный исполнитель")
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	return project, nil
}

// Close отменяет проект от имени владельца или администратора.
func (s *ProjectService) Close(ctx context.Context, actor AuthContext, projectID uuid.UUID) (*models.Project, error) {
	return s.transition(ctx, actor, projectID, models.EventClose)
}

// ConfirmCompletion подтверждает выполнение проекта владельцем.
func (s *ProjectService) ConfirmCompletion(ctx context.Context, actor AuthContext, projectID uuid.UUID) (*models.Project, error) {
	return s.transition(ctx, actor, projectID, models.EventConfirmCompletion)
}

func (s *ProjectService) transition(ctx context.Context, actor AuthContext, projectID uuid.UUID, event models.ProjectEvent) (*models.Project, error) {
	project, err := s.repo.Transition(ctx, projectID, actor.UserID, actor.Role == models.RoleAdmin, event)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrProjectNotFound):
			return nil, apperror.ErrProjectNotFound
		case errors.Is(err, repository.ErrNotProjectOwner):
			return nil, apperror.New(apperror.ErrCodeForbidden, "менять статус проекта может только его владелец")
		}
		// Нелегальный переход по таблице статусов.
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	return project, nil
}
