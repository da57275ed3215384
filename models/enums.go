package models

type JobStatus string

const (
	JobStatusPending    JobStatus = "Pending"
	JobStatusInProgress JobStatus = "InProgress"
	JobStatusCompleted  JobStatus = "Completed"
	JobStatusDelivered  JobStatus = "Delivered"
	JobStatusCancelled  JobStatus = "Cancelled"
)

func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusPending, JobStatusInProgress, JobStatusCompleted, JobStatusDelivered, JobStatusCancelled:
		return true
	}
	return false
}

type InvoiceStatus string

const (
	InvoiceStatusUninvoiced InvoiceStatus = "uninvoiced"
	InvoiceStatusInvoiced   InvoiceStatus = "invoiced"
	InvoiceStatusPaid       InvoiceStatus = "paid"
)

func (s InvoiceStatus) rank() int {
	switch s {
	case InvoiceStatusUninvoiced:
		return 0
	case InvoiceStatusInvoiced:
		return 1
	case InvoiceStatusPaid:
		return 2
	}
	return -1
}

func (s InvoiceStatus) Valid() bool {
	return s.rank() >= 0
}

// CanTransitionTo enforces the monotonic uninvoiced -> invoiced -> paid
// lifecycle; a status never moves backwards and never skips a stage.
func (s InvoiceStatus) CanTransitionTo(next InvoiceStatus) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	return next.rank() == s.rank()+1
}

type ManufacturingStatus string

const (
	ManufacturingStatusNotStarted ManufacturingStatus = "NotStarted"
	ManufacturingStatusPrepress   ManufacturingStatus = "Prepress"
	ManufacturingStatusPrinting   ManufacturingStatus = "Printing"
	ManufacturingStatusFinishing  ManufacturingStatus = "Finishing"
	ManufacturingStatusShipped    ManufacturingStatus = "Shipped"
)

type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "New"
	LeadStatusContacted LeadStatus = "Contacted"
	LeadStatusQualified LeadStatus = "Qualified"
	LeadStatusProposal  LeadStatus = "Proposal"
	LeadStatusWon       LeadStatus = "Won"
	LeadStatusLost      LeadStatus = "Lost"
)

type EstimateStatus string

const (
	EstimateStatusDraft    EstimateStatus = "Draft"
	EstimateStatusSent     EstimateStatus = "Sent"
	EstimateStatusAccepted EstimateStatus = "Accepted"
	EstimateStatusDeclined EstimateStatus = "Declined"
	EstimateStatusExpired  EstimateStatus = "Expired"
)

// Application statuses keep the store's snake values; the approval walker
// treats approved and rejected as terminal.
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending_approval"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

func (s ApplicationStatus) Terminal() bool {
	return s == ApplicationStatusApproved || s == ApplicationStatusRejected
}

type InboxItemStatus string

const (
	InboxItemStatusProcessing    InboxItemStatus = "processing"
	InboxItemStatusPendingReview InboxItemStatus = "pending_review"
	InboxItemStatusApproved      InboxItemStatus = "approved"
	InboxItemStatusError         InboxItemStatus = "error"
)

type BugReportStatus string

const (
	BugReportStatusOpen       BugReportStatus = "Open"
	BugReportStatusInProgress BugReportStatus = "InProgress"
	BugReportStatusResolved   BugReportStatus = "Resolved"
	BugReportStatusClosed     BugReportStatus = "Closed"
)

type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "Active"
	ProjectStatusOnHold    ProjectStatus = "OnHold"
	ProjectStatusCompleted ProjectStatus = "Completed"
	ProjectStatusCancelled ProjectStatus = "Cancelled"
)

type PurchaseOrderStatus string

const (
	PurchaseOrderStatusOrdered   PurchaseOrderStatus = "Ordered"
	PurchaseOrderStatusReceived  PurchaseOrderStatus = "Received"
	PurchaseOrderStatusCancelled PurchaseOrderStatus = "Cancelled"
)

// CostType marks an expense as variable (V) or fixed (F).
type CostType string

const (
	CostTypeVariable CostType = "V"
	CostTypeFixed    CostType = "F"
)

type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
	UserRoleUser  UserRole = "user"
)
