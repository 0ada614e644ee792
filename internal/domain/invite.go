package domain

import "time"

// GuestInvitation attaches an external guest to a booking. Only the booking's
// requester may send invitations; a guest can be invited to a booking once.
type GuestInvitation struct {
	ID           int64     `json:"id" gorm:"column:id;primaryKey"`
	BookingID    int64     `json:"booking_id" gorm:"column:booking_id;uniqueIndex:idx_booking_guest"`
	SentByUserID int64     `json:"sent_by_user_id" gorm:"column:sent_by_user_id;index"`
	GuestName    string    `json:"guest_name" gorm:"column:guest_name"`
	GuestEmail   string    `json:"guest_email" gorm:"column:guest_email;uniqueIndex:idx_booking_guest"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at"`

	Booking *Booking `json:"booking,omitempty" gorm:"foreignKey:BookingID"`
}

func (GuestInvitation) TableName() string { return "guest_invitations" }
