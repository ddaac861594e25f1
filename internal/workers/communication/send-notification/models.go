// internal/workers/communication/send-notification/models.go
package sendnotification

type Input struct {
	UserID           string                 `json:"userId"`
	NotificationType string                 `json:"notificationType"`
	Category         string                 `json:"category,omitempty"`
	Score            int                    `json:"score,omitempty"`
	Rating           string                 `json:"rating,omitempty"`
	CarbonEstimate   float64                `json:"carbonEstimate,omitempty"`
	Priority         string                 `json:"priority,omitempty"`
	Metadata         map[string]interface{} `json:"metadata,omitempty"`
}

type Output struct {
	NotificationID string `json:"notificationId"`
	Status         string `json:"status"` // "sent", "failed", "disabled"
	SentAt         string `json:"sentAt"` // ISO 8601
}

// Notification types
const (
	TypeAssessmentComplete = "assessment_complete"
	TypeAssessmentReminder = "assessment_reminder"
)

// Statuses
const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)
