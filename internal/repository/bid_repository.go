package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/bidworks/backend/internal/models"
)

const bidColumns = `
	id, project_id, freelancer_id, amount, description, status, awarded, created_at, updated_at
`

// BidRepository отвечает за работу со ставками.
type BidRepository struct {
	db *sqlx.DB
}

// NewBidRepository создаёт новый экземпляр.
func NewBidRepository(db *sqlx.DB) *BidRepository {
	return &BidRepository{db: db}
}

// Create сохраняет новую ставку. Дубликат пары (проект, фрилансер)
// отсекается уникальным индексом, а не предварительной проверкой:
// под конкурентными запросами выигрывает ровно один INSERT.
func (r *BidRepository) Create(ctx context.Context, bid *models.Bid) error {
	query := `
		INSERT INTO bids (project_id, freelancer_id, amount, description, status, awarded)
		VALUES ($1, $2, $3, $4, $5, FALSE)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		bid.ProjectID, bid.FreelancerID, bid.Amount, bid.Description, bid.Status).
		Scan(&bid.ID, &bid.CreatedAt, &bid.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrDuplicateBid
		}
		return fmt.Errorf("bid repository: insert %w", err)
	}
	return nil
}

// GetByID возвращает ставку по идентификатору.
func (r *BidRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Bid, error) {
	var bid models.Bid
	query := `SELECT ` + bidColumns + ` FROM bids WHERE id = $1`
	if err := r.db.GetContext(ctx, &bid, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBidNotFound
		}
		return nil, fmt.Errorf("bid repository: get by id %w", err)
	}
	return &bid, nil
}

// ListByProject возвращает страницу ставок проекта.
func (r *BidRepository) ListByProject(ctx context.Context, projectID uuid.UUID, limit, offset int) ([]models.Bid, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM bids WHERE project_id = $1`, projectID); err != nil {
		return nil, 0, fmt.Errorf("bid repository: count by project %w", err)
	}

	var bids []models.Bid
	query := `
		SELECT ` + bidColumns + `
		FROM bids
		WHERE project_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	if err := r.db.SelectContext(ctx, &bids, query, projectID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("bid repository: list by project %w", err)
	}
	return bids, total, nil
}

// ListByFreelancer возвращает страницу ставок фрилансера.
func (r *BidRepository) ListByFreelancer(ctx context.Context, freelancerID uuid.UUID, limit, offset int) ([]models.Bid, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM bids WHERE freelancer_id = $1`, freelancerID); err != nil {
		return nil, 0, fmt.Errorf("bid repository: count by freelancer %w", err)
	}

	var bids []models.Bid
	query := `
		SELECT ` + bidColumns + `
		FROM bids
		WHERE freelancer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	if err := r.db.SelectContext(ctx, &bids, query, freelancerID, limit, offset); err != nil {
		return nil, 0, fmt.Errorf("bid repository: list by freelancer %w", err)
	}
	return bids, total, nil
}

// Update изменяет сумму и описание ставки. Разрешено только владельцу
// и только пока ставка pending.
func (r *BidRepository) Update(ctx context.Context, bid *models.Bid) error {
	query := `
		UPDATE bids
		SET amount = $1,
		    description = $2,
		    updated_at = NOW()
		WHERE id = $3 AND freelancer_id = $4 AND status = $5
		RETURNING updated_at
	`
	err := r.db.QueryRowxContext(ctx, query,
		bid.Amount, bid.Description, bid.ID, bid.FreelancerID, models.BidStatusPending).
		Scan(&bid.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			existing, getErr := r.GetByID(ctx, bid.ID)
			if getErr != nil {
				return getErr
			}
			if existing.FreelancerID != bid.FreelancerID {
				return ErrNotProjectOwner
			}
			return ErrBidAlreadyAwarded
		}
		return fmt.Errorf("bid repository: update %w", err)
	}
	return nil
}

// Delete удаляет ставку владельца. Принятую или выигравшую удалить нельзя.
func (r *BidRepository) Delete(ctx context.Context, id, freelancerID uuid.UUID) error {
	query := `
		DELETE FROM bids
		WHERE id = $1 AND freelancer_id = $2
		  AND NOT awarded AND status <> $3
	`
	res, err := r.db.ExecContext(ctx, query, id, freelancerID, models.BidStatusAccepted)
	if err != nil {
		return fmt.Errorf("bid repository: delete %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("bid repository: delete rows affected %w", err)
	}
	if affected == 0 {
		// Выясняем причину отказа, чтобы отдать точную ошибку.
		bid, err := r.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if bid.FreelancerID != freelancerID {
			return ErrNotProjectOwner
		}
		return ErrBidAlreadyAwarded
	}
	return nil
}

// Award принимает ставку и выполняет весь переход одной транзакцией:
// принятие ставки, перевод проекта в in_progress и отклонение остальных
// ставок либо видны снаружи целиком, либо не видны вовсе. Конкурентные
// попытки награждения на одном проекте сериализуются блокировкой строки
// проекта, так что вторая попытка увидит уже awarded ставку.
//
// Порядок проверок фиксирован: ставка существует → проект существует →
// вызывающий владеет проектом → ставка ещё не принята.
func (r *BidRepository) Award(ctx context.Context, bidID, clientID uuid.UUID) (*models.Bid, *models.Project, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("bid repository: begin tx %w", err)
	}
	defer tx.Rollback()

	var bid models.Bid
	if err := tx.GetContext(ctx, &bid,
		`SELECT `+bidColumns+` FROM bids WHERE id = $1 FOR UPDATE`, bidID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrBidNotFound
		}
		return nil, nil, fmt.Errorf("bid repository: lock bid %w", err)
	}

	project, err := lockProject(ctx, tx, bid.ProjectID)
	if err != nil {
		return nil, nil, err
	}

	if project.ClientID != clientID {
		return nil, nil, ErrNotProjectOwner
	}

	if bid.Awarded {
		return nil, nil, ErrBidAlreadyAwarded
	}

	nextStatus, err := models.NextProjectStatus(project.Status, models.EventAward)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.GetContext(ctx, &bid, `
		UPDATE bids
		SET awarded = TRUE, status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+bidColumns, models.BidStatusAccepted, bidID); err != nil {
		return nil, nil, fmt.Errorf("bid repository: accept bid %w", err)
	}

	if err := tx.GetContext(ctx, project, `
		UPDATE projects
		SET status = $1, awarded_to = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING `+projectColumns, nextStatus, bid.FreelancerID, project.ID); err != nil {
		return nil, nil, fmt.Errorf("bid repository: transition project %w", err)
	}

	// Все остальные ставки проекта отклоняются одним запросом.
	if _, err := tx.ExecContext(ctx, `
		UPDATE bids
		SET status = $1, awarded = FALSE, updated_at = NOW()
		WHERE project_id = $2 AND id <> $3
	`, models.BidStatusRejected, project.ID, bidID); err != nil {
		return nil, nil, fmt.Errorf("bid repository: reject sibling bids %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("bid repository: commit %w", err)
	}

	return &bid, project, nil
}
