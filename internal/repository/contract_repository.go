package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/segyhp/placement-engine/internal/domain"

	"github.com/jmoiron/sqlx"
)

const contractColumns = `id, code, "ownerId", "consultantId", principal, "monthlyRate", "termMonths", "startDate",
	status, "consultantRate", "leaderRate", "createdAt"`

type contractRepository struct {
	db *sqlx.DB
}

func NewContractRepository(db *sqlx.DB) ContractRepository {
	return &contractRepository{db: db}
}

func (r *contractRepository) GetByID(ctx context.Context, id string) (*domain.Contract, error) {
	query := `
		SELECT ` + contractColumns + `
		FROM contracts
		WHERE id = $1
	`

	var contract domain.Contract
	err := r.db.GetContext(ctx, &contract, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &contract, nil
}

func (r *contractRepository) ListByStatus(ctx context.Context, status domain.ContractStatus) ([]*domain.Contract, error) {
	query := `
		SELECT ` + contractColumns + `
		FROM contracts
		WHERE status = $1
		ORDER BY "startDate"
	`

	contracts := []*domain.Contract{}
	err := r.db.SelectContext(ctx, &contracts, query, string(status))
	if err != nil {
		return nil, err
	}

	return contracts, nil
}
