package domain

import "time"

type BookingStatus string

const (
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
)

// Booking reserves one room instance for a half-open [StartTime, EndTime)
// window. CreditsCharged is the amount actually debited at creation time and
// is the exact amount refunded on cancellation, regardless of later price
// changes on the room type.
type Booking struct {
	ID             int64         `json:"id" gorm:"column:id;primaryKey"`
	RoomInstanceID int64         `json:"room_instance_id" gorm:"column:room_instance_id;index"`
	UserID         int64         `json:"user_id" gorm:"column:user_id;index"`
	StartTime      time.Time     `json:"start_time" gorm:"column:start_time;index"`
	EndTime        time.Time     `json:"end_time" gorm:"column:end_time"`
	Status         BookingStatus `json:"status" gorm:"column:status;type:varchar(16);index"`
	CreditsCharged int64         `json:"credits_charged" gorm:"column:credits_charged;not null"`
	CreatedAt      time.Time     `json:"created_at" gorm:"column:created_at"`
	UpdatedAt      time.Time     `json:"updated_at" gorm:"column:updated_at"`
	CancelledAt    *time.Time    `json:"cancelled_at,omitempty" gorm:"column:cancelled_at"`

	User         *User         `json:"user,omitempty" gorm:"foreignKey:UserID"`
	RoomInstance *RoomInstance `json:"room_instance,omitempty" gorm:"foreignKey:RoomInstanceID"`
}

func (Booking) TableName() string { return "bookings" }
