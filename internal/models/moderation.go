package models

// ModerationStatus is the closed set of moderation states a word's message
// can be in. The empty string means the message has never been touched by
// moderation.
type ModerationStatus string

const (
	ModerationUnset     ModerationStatus = ""
	ModerationPending   ModerationStatus = "pending"
	ModerationApproved  ModerationStatus = "approved"
	ModerationRejected  ModerationStatus = "rejected"
	ModerationProtected ModerationStatus = "protected"
)

// Valid reports whether s is one of the known statuses.
func (s ModerationStatus) Valid() bool {
	switch s {
	case ModerationUnset, ModerationPending, ModerationApproved, ModerationRejected, ModerationProtected:
		return true
	}
	return false
}

// CanAutoEscalate reports whether report accumulation may move the word to
// pending. Escalation is one-way: once any status has been set, reports
// never change it again.
func (s ModerationStatus) CanAutoEscalate() bool {
	return s == ModerationUnset
}

// AdjudicationStatus maps a moderation action string to the status it
// produces. The second return is false for unrecognized actions.
func AdjudicationStatus(action string) (ModerationStatus, bool) {
	switch action {
	case "approve":
		return ModerationApproved, true
	case "reject":
		return ModerationRejected, true
	case "protect":
		return ModerationProtected, true
	}
	return ModerationUnset, false
}
