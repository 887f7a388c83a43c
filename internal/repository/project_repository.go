package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/bidworks/backend/internal/models"
)

const projectColumns = `
	id, client_id, title, description, category, budget, deadline_at, status, awarded_to,
	deliverable_description, deliverable_files, deliverable_notes, deliverable_submitted_at,
	created_at, updated_at
`

// ProjectRepository отвечает за работу с проектами.
type ProjectRepository struct {
	db *sqlx.DB
}

// NewProjectRepository создаёт новый экземпляр.
func NewProjectRepository(db *sqlx.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// ListFilterParams параметры выборки публичного списка проектов.
type ListFilterParams struct {
	Status   string
	Category string
	ClientID *uuid.UUID
	Limit    int
	Offset   int
}

// ListResult страница проектов с общим количеством.
type ListResult struct {
	Projects []models.Project
	Total    int
}

// Create сохраняет проект.
func (r *ProjectRepository) Create(ctx context.Context, project *models.Project) error {
	query := `
		INSERT INTO projects (client_id, title, description, category, budget, deadline_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowxContext(
		ctx,
		query,
		project.ClientID,
		project.Title,
		project.Description,
		project.Category,
		project.Budget,
		project.DeadlineAt,
		project.Status,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		return fmt.Errorf("project repository: insert %w", err)
	}
	return nil
}

// GetByID возвращает проект по идентификатору.
func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	if err := r.db.GetContext(ctx, &project, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("project repository: get by id %w", err)
	}
	return &project, nil
}

// List возвращает страницу проектов с количеством ставок на каждом.
func (r *ProjectRepository) List(ctx context.Context, params ListFilterParams) (*ListResult, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}

	if params.Status != "" {
		args = append(args, params.Status)
		conditions = append(conditions, fmt.Sprintf("p.status = $%d", len(args)))
	}
	if params.Category != "" {
		args = append(args, params.Category)
		conditions = append(conditions, fmt.Sprintf("p.category = $%d", len(args)))
	}
	if params.ClientID != nil {
		args = append(args, *params.ClientID)
		conditions = append(conditions, fmt.Sprintf("p.client_id = $%d", len(args)))
	}

	where := strings.Join(conditions, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM projects p WHERE ` + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("project repository: count %w", err)
	}

	args = append(args, params.Limit, params.Offset)
	query := fmt.Sprintf(`
		SELECT p.id, p.client_id, p.title, p.description, p.category, p.budget, p.deadline_at,
		       p.status, p.awarded_to, p.deliverable_description, p.deliverable_files,
		       p.deliverable_notes, p.deliverable_submitted_at, p.created_at, p.updated_at,
		       COUNT(b.id)::int AS bids_count
		FROM projects p
		LEFT JOIN bids b ON b.project_id = p.id
		WHERE %s
		GROUP BY p.id
		ORDER BY p.created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, len(args)-1, len(args))

	var projects []models.Project
	if err := r.db.SelectContext(ctx, &projects, query, args...); err != nil {
		return nil, fmt.Errorf("project repository: list %w", err)
	}

	return &ListResult{Projects: projects, Total: total}, nil
}

// Update изменяет редактируемые поля проекта. Разрешено только владельцу.
func (r *ProjectRepository) Update(ctx context.Context, project *models.Project) error {
	query := `
		UPDATE projects
		SET title = $1,
		    description = $2,
		    category = $3,
		    budget = $4,
		    deadline_at = $5,
		    updated_at = NOW()
		WHERE id = $6 AND client_id = $7
		RETURNING updated_at
	`
	err := r.db.QueryRowxContext(
		ctx,
		query,
		project.Title,
		project.Description,
		project.Category,
		project.Budget,
		project.DeadlineAt,
		project.ID,
		project.ClientID,
	).Scan(&project.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("project repository: update %w", err)
	}
	return nil
}

// Delete удаляет проект. Администратор передаёт isAdmin=true и удаляет любой.
func (r *ProjectRepository) Delete(ctx context.Context, id, actorID uuid.UUID, isAdmin bool) error {
	query := `DELETE FROM projects WHERE id = $1 AND (client_id = $2 OR $3)`
	res, err := r.db.ExecContext(ctx, query, id, actorID, isAdmin)
	if err != nil {
		return fmt.Errorf("project repository: delete %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("project repository: delete rows affected %w", err)
	}
	if affected == 0 {
		return ErrProjectNotFound
	}
	return nil
}

// SubmitDeliverable сохраняет результат работы и переводит проект в
// pending_review. Блокирует строку проекта, чтобы конкурирующая смена
// статуса не прошла мимо таблицы переходов.
func (r *ProjectRepository) SubmitDeliverable(ctx context.Context, projectID, freelancerID uuid.UUID, d models.Deliverable) (*models.Project, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("project repository: begin tx %w", err)
	}
	defer tx.Rollback()

	project, err := lockProject(ctx, tx, projectID)
	if err != nil {
		return nil, err
	}

	if project.AwardedTo == nil || *project.AwardedTo != freelancerID {
		return nil, ErrNotProjectOwner
	}

	nextStatus, err := models.NextProjectStatus(project.Status, models.EventSubmitDeliverable)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	query := `
		UPDATE projects
		SET status = $1,
		    deliverable_description = $2,
		    deliverable_files = $3,
		    deliverable_notes = $4,
		    deliverable_submitted_at = $5,
		    updated_at = NOW()
		WHERE id = $6
		RETURNING ` + projectColumns
	var updated models.Project
	if err := tx.GetContext(ctx, &updated, query,
		nextStatus, d.Description, pq.StringArray(d.Files), d.Notes, now, projectID); err != nil {
		return nil, fmt.Errorf("project repository: submit deliverable %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("project repository: commit %w", err)
	}
	return &updated, nil
}

// Transition применяет событие жизненного цикла к проекту через таблицу
// переходов. Используется для close и confirm_completion; award идёт через
// BidRepository.Award, так как затрагивает ещё и ставки.
func (r *ProjectRepository) Transition(ctx context.Context, projectID, actorID uuid.UUID, isAdmin bool, event models.ProjectEvent) (*models.Project, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("project repository: begin tx %w", err)
	}
	defer tx.Rollback()

	project, err := lockProject(ctx, tx, projectID)
	if err != nil {
		return nil, err
	}

	if project.ClientID != actorID && !isAdmin {
		return nil, ErrNotProjectOwner
	}

	nextStatus, err := models.NextProjectStatus(project.Status, event)
	if err != nil {
		return nil, err
	}

	// Отмена снимает назначение, сохраняя инвариант awarded_to/status.
	clearAward := nextStatus == models.ProjectStatusCancelled

	query := `
		UPDATE projects
		SET status = $1,
		    awarded_to = CASE WHEN $2 THEN NULL ELSE awarded_to END,
		    updated_at = NOW()
		WHERE id = $3
		RETURNING ` + projectColumns
	var updated models.Project
	if err := tx.GetContext(ctx, &updated, query, nextStatus, clearAward, projectID); err != nil {
		return nil, fmt.Errorf("project repository: transition %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("project repository: commit %w", err)
	}
	return &updated, nil
}

// lockProject читает проект под блокировкой FOR UPDATE внутри транзакции.
func lockProject(ctx context.Context, tx *sqlx.Tx, id uuid.UUID) (*models.Project, error) {
	var project models.Project
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1 FOR UPDATE`
	if err := tx.GetContext(ctx, &project, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("project repository: lock project %w", err)
	}
	return &project, nil
}
