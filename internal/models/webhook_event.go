package models

import (
	"time"

	"gorm.io/datatypes"
)

// WebhookEvent records a processed payment-processor event. The unique event
// id is what makes webhook re-delivery safe: a second delivery of the same
// event is acknowledged without granting tokens again.
type WebhookEvent struct {
	ID         uint           `gorm:"primarykey" json:"id"`
	EventID    string         `gorm:"uniqueIndex;not null" json:"event_id"`
	Type       string         `gorm:"type:varchar(100)" json:"type"`
	Payload    datatypes.JSON `json:"payload"`
	ReceivedAt time.Time      `gorm:"autoCreateTime" json:"received_at"`
}
