package domain

// CostBreakdown is the estimated monetary cost of a set of shifts.
// SocialSecurity is the employer-burden surcharge on top of the base labor
// cost. Recomputed on demand, never stored.
type CostBreakdown struct {
	TotalHours     float64 `json:"totalHours"`
	BaseCost       float64 `json:"baseCost"`
	SocialSecurity float64 `json:"socialSecurity"`
	TotalCost      float64 `json:"totalCost"`
	RidersCount    int     `json:"ridersCount"`
}

// WeekStats are the aggregate totals stamped on a week of shifts.
type WeekStats struct {
	TotalHours     float64 `json:"totalHours"`
	TotalShifts    int     `json:"totalShifts"`
	AssignedShifts int     `json:"assignedShifts"`
}
