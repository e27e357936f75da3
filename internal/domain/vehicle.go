package domain

import "time"

type Vehicle struct {
	ID          string    `json:"id"`
	FranchiseID string    `json:"franchiseId"`
	Plate       string    `json:"plate"`
	Model       string    `json:"model"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	Version     int32     `json:"-"`
}
