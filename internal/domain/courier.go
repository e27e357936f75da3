package domain

import "time"

type CourierStatus string

const (
	CourierActive   CourierStatus = "active"
	CourierOnRoute  CourierStatus = "on_route"
	CourierInactive CourierStatus = "inactive"
)

// IsActive reports whether the courier can currently take shifts.
func (s CourierStatus) IsActive() bool {
	return s == CourierActive || s == CourierOnRoute
}

type Courier struct {
	ID            string        `json:"id"`
	FranchiseID   string        `json:"franchiseId"`
	FullName      string        `json:"fullName"`
	Email         string        `json:"email"`
	Status        CourierStatus `json:"status"`
	ContractHours int32         `json:"contractHours"`
	CreatedAt     time.Time     `json:"createdAt"`
	Version       int32         `json:"-"`
}
