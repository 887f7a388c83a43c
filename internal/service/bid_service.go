package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/bidworks/backend/internal/models"
	"github.com/bidworks/backend/internal/pkg/apperror"
	"github.com/bidworks/backend/internal/repository"
	"github.com/bidworks/backend/internal/validation"
)

// AuthContext переносит личность вызывающего через слои явно,
// вместо глобального состояния запроса.
type AuthContext struct {
	UserID uuid.UUID
	Role   string
}

// BidRepository описывает взаимодействие сервиса с хранилищем ставок.
type BidRepository interface {
	Create(ctx context.Context, bid *models.Bid) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Bid, error)
	ListByProject(ctx context.Context, projectID uuid.UUID, limit, offset int) ([]models.Bid, int, error)
	ListByFreelancer(ctx context.Context, freelancerID uuid.UUID, limit, offset int) ([]models.Bid, int, error)
	Update(ctx context.Context, bid *models.Bid) error
	Delete(ctx context.Context, id, freelancerID uuid.UUID) error
	Award(ctx context.Context, bidID, clientID uuid.UUID) (*models.Bid, *models.Project, error)
}

// ProjectGetter минимальный контракт для чтения проектов из сервиса ставок.
type ProjectGetter interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error)
}

// BidService содержит бизнес-логику работы со ставками, включая
// принятие ставки (award).
type BidService struct {
	bids     BidRepository
	projects ProjectGetter
}

// NewBidService создаёт новый сервис ставок.
func NewBidService(bids BidRepository, projects ProjectGetter) *BidService {
	return &BidService{bids: bids, projects: projects}
}

// PlaceBidInput данные новой ставки.
type PlaceBidInput struct {
	ProjectID   uuid.UUID
	Amount      float64
	Description string
}

// Place создаёт ставку фрилансера на открытый проект.
// Дубликат пары (проект, фрилансер) отвергается хранилищем.
func (s *BidService) Place(ctx context.Context, actor AuthContext, in PlaceBidInput) (*models.Bid, error) {
	if actor.Role != models.RoleFreelancer {
		return nil, apperror.New(apperror.ErrCodeForbidden, "только фрилансеры могут делать ставки")
	}
	if err := validation.ValidateBidAmount(in.Amount); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateBidDescription(in.Description); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}

	project, err := s.projects.GetByID(ctx, in.ProjectID)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, apperror.ErrProjectNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось загрузить проект")
	}
	if project.Status != models.ProjectStatusOpen {
		return nil, apperror.New(apperror.ErrCodeValidation, "ставки принимаются только на открытые проекты")
	}
	if project.ClientID == actor.UserID {
		return nil, apperror.New(apperror.ErrCodeForbidden, "нельзя делать ставку на собственный проект")
	}

	bid := &models.Bid{
		ProjectID:    in.ProjectID,
		FreelancerID: actor.UserID,
		Amount:       in.Amount,
		Description:  in.Description,
		Status:       models.BidStatusPending,
	}

	if err := s.bids.Create(ctx, bid); err != nil {
		if errors.Is(err, repository.ErrDuplicateBid) {
			return nil, apperror.New(apperror.ErrCodeConflict, "вы уже сделали ставку на этот проект")
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось сохранить ставку")
	}

	return bid, nil
}

// UpdateBidInput изменяемые поля ставки.
type UpdateBidInput struct {
	BidID       uuid.UUID
	Amount      *float64
	Description *string
}

// Update изменяет сумму или описание собственной ставки, пока она pending.
func (s *BidService) Update(ctx context.Context, actor AuthContext, in UpdateBidInput) (*models.Bid, error) {
	bid, err := s.bids.GetByID(ctx, in.BidID)
	if err != nil {
		if errors.Is(err, repository.ErrBidNotFound) {
			return nil, apperror.ErrBidNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось загрузить ставку")
	}
	if bid.FreelancerID != actor.UserID {
		return nil, apperror.New(apperror.ErrCodeForbidden, "изменять ставку может только её автор")
	}
	if bid.Status != models.BidStatusPending {
		return nil, apperror.New(apperror.ErrCodeValidation, "изменять можно только ожидающую ставку")
	}

	if in.Amount != nil {
		if err := validation.ValidateBidAmount(*in.Amount); err != nil {
			return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
		}
		bid.Amount = *in.Amount
	}
	if in.Description != nil {
		if err := validation.ValidateBidDescription(*in.Description); err != nil {
			return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
		}
		bid.Description = *in.Description
	}

	if err := s.bids.Update(ctx, bid); err != nil {
		switch {
		case errors.Is(err, repository.ErrBidNotFound):
			return nil, apperror.ErrBidNotFound
		case errors.Is(err, repository.ErrNotProjectOwner):
			return nil, apperror.New(apperror.ErrCodeForbidden, "изменять ставку может только её автор")
		case errors.Is(err, repository.ErrBidAlreadyAwarded):
			return nil, apperror.New(apperror.ErrCodeValidation, "изменять можно только ожидающую ставку")
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось обновить ставку")
	}

	return bid, nil
}

// Delete удаляет собственную ставку, если она не принята.
func (s *BidService) Delete(ctx context.Context, actor AuthContext, bidID uuid.UUID) error {
	if err := s.bids.Delete(ctx, bidID, actor.UserID); err != nil {
		switch {
		case errors.Is(err, repository.ErrBidNotFound):
			return apperror.ErrBidNotFound
		case errors.Is(err, repository.ErrNotProjectOwner):
			return apperror.New(apperror.ErrCodeForbidden, "удалять ставку может только её автор")
		case errors.Is(err, repository.ErrBidAlreadyAwarded):
			return apperror.New(apperror.ErrCodeConflict, "принятую ставку удалить нельзя")
		}
		return apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось удалить ставку")
	}
	return nil
}

// AwardResult итог принятия ставки.
type AwardResult struct {
	Bid     *models.Bid
	Project *models.Project
}

// Award принимает ставку от имени владельца проекта. Вся цепочка —
// принятие ставки, перевод проекта и отклонение остальных ставок —
// выполняется хранилищем атомарно.
func (s *BidService) Award(ctx context.Context, actor AuthContext, bidID uuid.UUID) (*AwardResult, error) {
	bid, project, err := s.bids.Award(ctx, bidID, actor.UserID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrBidNotFound):
			return nil, apperror.ErrBidNotFound
		case errors.Is(err, repository.ErrProjectNotFound):
			return nil, apperror.ErrProjectNotFound
		case errors.Is(err, repository.ErrNotProjectOwner):
			return nil, apperror.New(apperror.ErrCodeForbidden, "принять ставку может только владелец проекта")
		case errors.Is(err, repository.ErrBidAlreadyAwarded):
			return nil, apperror.New(apperror.ErrCodeConflict, "ставка уже принята")
		}
		// Нелегальный переход статуса (проект не open) — ошибка запроса.
		return nil, apperror.Wrap(err, apperror.ErrCodeValidation, err.Error())
	}
	return &AwardResult{Bid: bid, Project: project}, nil
}

// ListByProject возвращает ставки проекта. Доступно только владельцу проекта.
func (s *BidService) ListByProject(ctx context.Context, actor AuthContext, projectID uuid.UUID, limit, offset int) ([]models.Bid, int, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, 0, apperror.ErrProjectNotFound
		}
		return nil, 0, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось загрузить проект")
	}
	if project.ClientID != actor.UserID && actor.Role != models.RoleAdmin {
		return nil, 0, apperror.New(apperror.ErrCodeForbidden, "ставки проекта видит только его владелец")
	}

	bids, total, err := s.bids.ListByProject(ctx, projectID, limit, offset)
	if err != nil {
		return nil, 0, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось загрузить ставки")
	}
	return bids, total, nil
}

// ListMy возвращает ставки вызывающего фрилансера.
func (s *BidService) ListMy(ctx context.Context, actor AuthContext, limit, offset int) ([]models.Bid, int, error) {
	bids, total, err := s.bids.ListByFreelancer(ctx, actor.UserID, limit, offset)
	if err != nil {
		return nil, 0, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось загрузить ставки")
	}
	return bids, total, nil
}
