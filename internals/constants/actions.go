package constants

// Upload-log action kinds. Log rows are append-only; these values are part
// of the persisted data and must not be renamed.
const (
	ActionUpload  = "upload"
	ActionDelete  = "delete"
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// Upload-log outcomes.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
	StatusPending = "pending"
)

// Feedback statuses.
const (
	FeedbackPending  = "pending"
	FeedbackResolved = "resolved"
)

const DefaultExamType = "Regular"
