package repository

import (
	"context"
	"time"

	"github.com/repaart/fleet-scheduler/internal/domain"
)

func (r *Repository) GetCouriersByFranchise(franchiseID string) ([]*domain.Courier, error) {
	query := `
		SELECT id, full_name, email, status, contract_hours, created_at, version
		FROM couriers
		WHERE franchise_id = $1
		ORDER BY full_name
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, franchiseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	couriers := []*domain.Courier{}
	for rows.Next() {
		courier := &domain.Courier{FranchiseID: franchiseID}
		dst := []any{&courier.ID, &courier.FullName, &courier.Email, &courier.Status, &courier.ContractHours, &courier.CreatedAt, &courier.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		couriers = append(couriers, courier)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return couriers, nil
}

func (r *Repository) GetCourierByID(id string) (*domain.Courier, error) {
	query := `
		SELECT franchise_id, full_name, email, status, contract_hours, created_at, version
		FROM couriers WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	courier := &domain.Courier{
		ID: id,
	}

	dst := []any{&courier.FranchiseID, &courier.FullName, &courier.Email, &courier.Status, &courier.ContractHours, &courier.CreatedAt, &courier.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return courier, nil
}

func (r *Repository) CreateCourier(courier *domain.Courier) error {
	query := `
		INSERT INTO couriers (id, franchise_id, full_name, email, status, contract_hours)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{courier.ID, courier.FranchiseID, courier.FullName, courier.Email, courier.Status, courier.ContractHours}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&courier.CreatedAt, &courier.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateCourier(courier *domain.Courier) error {
	query := `
		UPDATE couriers
		SET
			full_name = $1,
			email = $2,
			status = $3,
			contract_hours = $4,
			version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{courier.FullName, courier.Email, courier.Status, courier.ContractHours, courier.ID, courier.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&courier.CreatedAt, &courier.Version); err != nil {
		return err
	}

	return nil
}
