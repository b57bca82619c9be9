package types

// EventKind identifies which portal activity a broadcast or popup describes
type EventKind string

const (
	EventKindPush             EventKind = "push"
	EventKindProjectSubmitted EventKind = "project_submitted"
	EventKindProjectApproved  EventKind = "project_approved"
)

// UserID is the portal's numeric user identifier. Zero means "no user".
type UserID int64
