package domain

import "time"

type Location struct {
	ID        int64     `json:"id" gorm:"column:id;primaryKey"`
	Name      string    `json:"name" gorm:"column:name"`
	Address   string    `json:"address" gorm:"column:address"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (Location) TableName() string { return "locations" }

// RoomType is a bookable category of space. Bookings are priced per
// reservation from CreditsPerBooking, not per hour.
type RoomType struct {
	ID                int64     `json:"id" gorm:"column:id;primaryKey"`
	Name              string    `json:"name" gorm:"column:name"`
	Capacity          int       `json:"capacity" gorm:"column:capacity"`
	CreditsPerBooking int64     `json:"credits_per_booking" gorm:"column:credits_per_booking;not null"`
	LocationID        int64     `json:"location_id" gorm:"column:location_id;index"`
	CreatedAt         time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt         time.Time `json:"updated_at" gorm:"column:updated_at"`

	Location *Location `json:"location,omitempty" gorm:"foreignKey:LocationID"`
}

func (RoomType) TableName() string { return "room_types" }

// RoomInstance is one concrete room of a type; the allocation unit.
// A booking always references an instance, never a type directly.
type RoomInstance struct {
	ID         int64     `json:"id" gorm:"column:id;primaryKey"`
	Name       string    `json:"name" gorm:"column:name"`
	RoomTypeID int64     `json:"room_type_id" gorm:"column:room_type_id;index"`
	IsActive   bool      `json:"is_active" gorm:"column:is_active;not null;default:true"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"column:updated_at"`

	RoomType *RoomType `json:"room_type,omitempty" gorm:"foreignKey:RoomTypeID"`
}

func (RoomInstance) TableName() string { return "room_instances" }
