package models

// SubmissionState is where a submitted item stands in moderation. It is
// never stored: an item is Pending exactly while it is in the pending
// collection.
type SubmissionState string

const (
	StatePending   SubmissionState = "pending"
	StatePublished SubmissionState = "published"
	StateRejected  SubmissionState = "rejected"
)
