package model

// ApplicationStatus is the decision state of a funding application.
type ApplicationStatus string

const (
	// StatusPending is the initial state of every application.
	StatusPending ApplicationStatus = "pending"
	// StatusApproved is set once by an approve decision.
	StatusApproved ApplicationStatus = "approved"
	// StatusRejected is set once by a reject decision.
	StatusRejected ApplicationStatus = "rejected"
)

// DecisionAction is the operator's verdict on a pending application.
type DecisionAction string

const (
	// DecisionApprove approves a pending application.
	DecisionApprove DecisionAction = "approve"
	// DecisionReject rejects a pending application.
	DecisionReject DecisionAction = "reject"
)

// Remark returns the fixed remark text tied to the action.
func (a DecisionAction) Remark() string {
	if a == DecisionApprove {
		return "Approved"
	}
	return "Rejected"
}

// Application joins an investor, a project, and an incentive into a
// funding request. The server may embed the referenced records; the
// client falls back to the raw ids when it does not.
type Application struct {
	ID              int               `json:"id"`
	InvestorID      int               `json:"investor_id"`
	ProjectID       int               `json:"project_id"`
	IncentiveID     int               `json:"incentive_id"`
	RequestedAmount float64           `json:"requested_amount"`
	Status          ApplicationStatus `json:"status"`
	Remarks         string            `json:"remarks,omitempty"`
	Archived        Flag              `json:"archived,omitempty"`

	Investor  *Investor  `json:"investor,omitempty"`
	Project   *Project   `json:"project,omitempty"`
	Incentive *Incentive `json:"incentive,omitempty"`
}

// Pending reports whether the application still awaits a decision.
func (a Application) Pending() bool {
	return a.Status == StatusPending
}

// InvestorName returns the embedded investor name or the raw id.
func (a Application) InvestorName() string {
	if a.Investor != nil && a.Investor.Name != "" {
		return a.Investor.Name
	}
	return itoa(a.InvestorID)
}

// ProjectName returns the embedded project name or the raw id.
func (a Application) ProjectName() string {
	if a.Project != nil && a.Project.Name != "" {
		return a.Project.Name
	}
	return itoa(a.ProjectID)
}

// IncentiveTitle returns the embedded incentive title or the raw id.
func (a Application) IncentiveTitle() string {
	if a.Incentive != nil && a.Incentive.Title != "" {
		return a.Incentive.Title
	}
	return itoa(a.IncentiveID)
}
