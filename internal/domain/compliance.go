package domain

type ComplianceIssueType string

const (
	IssueOverlap     ComplianceIssueType = "overlap"
	IssueDailyLimit  ComplianceIssueType = "daily_limit"
	IssueWeeklyLimit ComplianceIssueType = "weekly_limit"
	IssueRest        ComplianceIssueType = "rest"
)

type ComplianceSeverity string

const (
	SeverityCritical ComplianceSeverity = "critical"
	SeverityWarning  ComplianceSeverity = "warning"
)

// ComplianceIssue is an advisory finding attached to a candidate shift.
// Issues are produced fresh on every validation call and never persisted;
// the caller decides whether to block, prompt, or ignore.
type ComplianceIssue struct {
	Type     ComplianceIssueType `json:"type"`
	Severity ComplianceSeverity  `json:"severity"`
	Message  string              `json:"message"`
}
