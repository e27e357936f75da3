package repository

import (
	"context"
	"time"

	"github.com/repaart/fleet-scheduler/internal/domain"
)

func (r *Repository) GetVehiclesByFranchise(franchiseID string) ([]*domain.Vehicle, error) {
	query := `
		SELECT id, plate, model, is_active, created_at, version
		FROM vehicles
		WHERE franchise_id = $1
		ORDER BY plate
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, franchiseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	vehicles := []*domain.Vehicle{}
	for rows.Next() {
		vehicle := &domain.Vehicle{FranchiseID: franchiseID}
		dst := []any{&vehicle.ID, &vehicle.Plate, &vehicle.Model, &vehicle.IsActive, &vehicle.CreatedAt, &vehicle.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, vehicle)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return vehicles, nil
}

func (r *Repository) GetVehicleByID(id string) (*domain.Vehicle, error) {
	query := `
		SELECT franchise_id, plate, model, is_active, created_at, version
		FROM vehicles WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	vehicle := &domain.Vehicle{
		ID: id,
	}

	dst := []any{&vehicle.FranchiseID, &vehicle.Plate, &vehicle.Model, &vehicle.IsActive, &vehicle.CreatedAt, &vehicle.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return vehicle, nil
}

func (r *Repository) CreateVehicle(vehicle *domain.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, franchise_id, plate, model, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{vehicle.ID, vehicle.FranchiseID, vehicle.Plate, vehicle.Model, vehicle.IsActive}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&vehicle.CreatedAt, &vehicle.Version); err != nil {
		return err
	}

	return nil
}
