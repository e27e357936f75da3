package domain

// NotificationMessage is the payload published to the shift_notifications
// queue and consumed by cmd/notifier. To is the recipient email address.
type NotificationMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

const (
	NotificationShiftChangeRequest = "shift_change_request"
	NotificationSchedulePublished  = "schedule_published"
)

type ShiftChangeRequestData struct {
	FranchiseID string `json:"franchiseId"`
	ShiftID     string `json:"shiftId"`
	CourierID   string `json:"courierId"`
	CourierName string `json:"courierName"`
	Reason      string `json:"reason"`
}

type SchedulePublishedData struct {
	FranchiseID string `json:"franchiseId"`
	WeekStart   string `json:"weekStart"`
	Created     int    `json:"created"`
	Deleted     int    `json:"deleted"`
}
