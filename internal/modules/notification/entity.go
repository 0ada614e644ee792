package notification

import "time"

type NotificationType string

const (
	NotifBookingCreated     NotificationType = "booking_created"
	NotifBookingCancelled   NotificationType = "booking_cancelled"
	NotifBookingRescheduled NotificationType = "booking_rescheduled"
	NotifGuestInvited       NotificationType = "guest_invited"
)

type Notification struct {
	ID        int64            `json:"id" gorm:"column:id;primaryKey"`
	UserID    int64            `json:"user_id" gorm:"column:user_id;index"`
	Type      NotificationType `json:"type" gorm:"column:type;type:varchar(32)"`
	Title     string           `json:"title" gorm:"column:title"`
	Message   string           `json:"message" gorm:"column:message"`
	Data      string           `json:"data,omitempty" gorm:"column:data;type:text"` // JSON payload
	IsRead    bool             `json:"is_read" gorm:"column:is_read;not null;default:false"`
	CreatedAt time.Time        `json:"created_at" gorm:"column:created_at"`
}

func (Notification) TableName() string { return "notifications" }
