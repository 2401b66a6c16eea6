package event

import "time"

const (
	// PushNotiQueue carries notification events consumed by the
	// notification service.
	PushNotiQueue = "push_noti_events"

	// ProfileEventQueue carries profile lifecycle events published by the
	// profile surface.
	ProfileEventQueue = "profile_events"
)

// NotificationEventType classifies outbound notifications.
type NotificationEventType string

const (
	NotiPurchaseCompleted NotificationEventType = "purchase_completed"
	NotiClaimFiled        NotificationEventType = "claim_filed"
)

// NotificationEventPushModel is the wire shape of one outbound notification.
type NotificationEventPushModel struct {
	ID        string                `json:"id"`
	EventType NotificationEventType `json:"event_type"`
	UserID    string                `json:"user_id"`
	Title     string                `json:"title"`
	Body      string                `json:"body"`
	Timestamp time.Time             `json:"timestamp"`
}

// ProfileEventType classifies inbound profile events.
type ProfileEventType string

const (
	// ProfileCompleted fires once a user finishes the onboarding
	// questionnaire; it triggers a recommendation scoring run.
	ProfileCompleted ProfileEventType = "profile_completed"
	ProfileUpdated   ProfileEventType = "profile_updated"
)

// ProfileEvent is the wire shape of one profile lifecycle event.
type ProfileEvent struct {
	ID        string           `json:"id"`
	EventType ProfileEventType `json:"event_type"`
	UserID    string           `json:"user_id"`
}
