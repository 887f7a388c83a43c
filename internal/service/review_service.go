package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/bidworks/backend/internal/models"
	"github.com/bidworks/backend/internal/pkg/apperror"
	"github.com/bidworks/backend/internal/repository"
)

// ReviewRepository описывает хранилище отзывов.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Review, error)
}

// ReviewService содержит бизнес-логику отзывов по завершённым проектам.
type ReviewService struct {
	reviews  ReviewRepository
	projects ProjectGetter
}

// NewReviewService создаёт сервис отзывов.
func NewReviewService(reviews ReviewRepository, projects ProjectGetter) *ReviewService {
	return &ReviewService{reviews: reviews, projects: projects}
}

// CreateReviewInput данные нового отзыва.
type CreateReviewInput struct {
	ProjectID uuid.UUID
	Rating    int
	Comment   *string
}

// Create оставляет отзыв о второй стороне завершённого проекта.
// Клиент оценивает исполнителя, исполнитель — клиента.
func (s *ReviewService) Create(ctx context.Context, actor AuthContext, in CreateReviewInput) (*models.Review, error) {
	if in.Rating < 1 || in.Rating > 5 {
		return nil, apperror.New(apperror.ErrCodeValidation, "оценка должна быть от 1 до 5")
	}
	if in.Comment != nil && len(*in.Comment) > 2000 {
		return nil, apperror.New(apperror.ErrCodeValidation, "комментарий не должен превышать 2000 символов")
	}

	project, err := s.projects.GetByID(ctx, in.ProjectID)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return nil, apperror.ErrProjectNotFound
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось загрузить проект")
	}
	if project.Status != models.ProjectStatusCompleted {
		return nil, apperror.New(apperror.ErrCodeValidation, "отзыв можно оставить только по завершённому проекту")
	}
	if project.AwardedTo == nil {
		return nil, apperror.New(apperror.ErrCodeValidation, "у проекта нет исполнителя")
	}

	var reviewedID uuid.UUID
	switch actor.UserID {
	case project.ClientID:
		reviewedID = *project.AwardedTo
	case *project.AwardedTo:
		reviewedID = project.ClientID
	default:
		return nil, apperror.New(apperror.ErrCodeForbidden, "отзыв могут оставить только участники проекта")
	}

	review := &models.Review{
		ProjectID:  in.ProjectID,
		ReviewerID: actor.UserID,
		ReviewedID: reviewedID,
		Rating:     in.Rating,
		Comment:    in.Comment,
	}

	if err := s.reviews.Create(ctx, review); err != nil {
		if errors.Is(err, repository.ErrDuplicateReview) {
			return nil, apperror.New(apperror.ErrCodeConflict, "вы уже оставили отзыв по этому проекту")
		}
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось сохранить отзыв")
	}
	return review, nil
}

// ListByUser возвращает отзывы о пользователе.
func (s *ReviewService) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.Review, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	items, err := s.reviews.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось загрузить отзывы")
	}
	return items, nil
}
