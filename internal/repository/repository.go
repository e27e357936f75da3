package repository

import (
	"database/sql"
	"time"

	"github.com/repaart/fleet-scheduler/internal/config"
)

type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
	loc    *time.Location
}

func NewRepository(cfg *config.Config, dbpool *sql.DB, loc *time.Location) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
		loc:    loc,
	}
}

// Location is the franchise-local timezone all calendar-day math uses.
func (r *Repository) Location() *time.Location {
	return r.loc
}
