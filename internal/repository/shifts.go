package repository

import (
	"context"
	"time"

	"github.com/repaart/fleet-scheduler/internal/domain"
)

// shiftColumns joins the denormalized courier and vehicle labels every
// read path needs. Unassigned shifts yield empty strings.
const shiftColumns = `
	s.id,
	s.franchise_id,
	s.courier_id,
	COALESCE(c.full_name, ''),
	s.vehicle_id,
	COALESCE(v.plate, ''),
	s.start_at,
	s.end_at,
	s.is_confirmed,
	s.change_requested,
	s.change_reason,
	s.created_at,
	s.version
`

const shiftJoins = `
	FROM shifts s
	LEFT JOIN couriers c ON c.id = s.courier_id
	LEFT JOIN vehicles v ON v.id = s.vehicle_id
`

func (r *Repository) scanShift(scan func(dst ...any) error) (*domain.Shift, error) {
	shift := &domain.Shift{}
	dst := []any{
		&shift.ID,
		&shift.FranchiseID,
		&shift.CourierID,
		&shift.CourierName,
		&shift.VehicleID,
		&shift.VehiclePlate,
		&shift.StartAt,
		&shift.EndAt,
		&shift.IsConfirmed,
		&shift.ChangeRequested,
		&shift.ChangeReason,
		&shift.CreatedAt,
		&shift.Version,
	}
	if err := scan(dst...); err != nil {
		return nil, err
	}

	shift.StartAt = shift.StartAt.In(r.loc)
	shift.EndAt = shift.EndAt.In(r.loc)
	return shift, nil
}

func (r *Repository) GetShiftByID(id string) (*domain.Shift, error) {
	query := `SELECT ` + shiftColumns + shiftJoins + `WHERE s.id = $1`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	row := r.dbpool.QueryRowContext(ctx, query, id)
	return r.scanShift(row.Scan)
}

// GetShiftsInRange returns every shift of the franchise that overlaps the
// half-open window [from, to).
func (r *Repository) GetShiftsInRange(franchiseID string, from, to time.Time) ([]domain.Shift, error) {
	query := `SELECT ` + shiftColumns + shiftJoins + `
		WHERE s.franchise_id = $1 AND s.start_at < $3 AND s.end_at > $2
		ORDER BY s.start_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, franchiseID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shifts := []domain.Shift{}
	for rows.Next() {
		shift, err := r.scanShift(rows.Scan)
		if err != nil {
			return nil, err
		}
		shifts = append(shifts, *shift)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return shifts, nil
}

func (r *Repository) CreateShift(shift *domain.Shift) error {
	query := `
		INSERT INTO shifts (id, franchise_id, courier_id, vehicle_id, start_at, end_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{shift.ID, shift.FranchiseID, shift.CourierID, shift.VehicleID, shift.StartAt, shift.EndAt}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&shift.CreatedAt, &shift.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateShift(shift *domain.Shift) error {
	query := `
		UPDATE shifts
		SET
			courier_id = $1,
			vehicle_id = $2,
			start_at = $3,
			end_at = $4,
			is_confirmed = $5,
			change_requested = $6,
			change_reason = $7,
			version = version + 1
		WHERE id = $8 AND version = $9
		RETURNING version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		shift.CourierID,
		shift.VehicleID,
		shift.StartAt,
		shift.EndAt,
		shift.IsConfirmed,
		shift.ChangeRequested,
		shift.ChangeReason,
		shift.ID,
		shift.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&shift.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteShift(id string) error {
	query := `
		DELETE FROM shifts WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, id); err != nil {
		return err
	}

	return nil
}

// ApplyExpansionPlan deletes and creates a batch of shifts in one
// transaction, so bulk fills either land whole or not at all.
func (r *Repository) ApplyExpansionPlan(deleteIDs []string, create []domain.Shift) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if len(deleteIDs) > 0 {
		deleteQuery := `
			DELETE FROM shifts WHERE id = ANY($1)
		`
		if _, err := tx.ExecContext(ctx, deleteQuery, deleteIDs); err != nil {
			return err
		}
	}

	insertQuery := `
		INSERT INTO shifts (id, franchise_id, courier_id, vehicle_id, start_at, end_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, shift := range create {
		args := []any{shift.ID, shift.FranchiseID, shift.CourierID, shift.VehicleID, shift.StartAt, shift.EndAt}
		if _, err := tx.ExecContext(ctx, insertQuery, args...); err != nil {
			return err
		}
	}

	return tx.Commit()
}
