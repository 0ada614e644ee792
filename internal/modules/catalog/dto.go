package catalog

import "time"

type RoomTypeView struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	Capacity          int    `json:"capacity"`
	CreditsPerBooking int64  `json:"credits_per_booking"`
	LocationName      string `json:"location_name"`
}

type Slot struct {
	StartTime     time.Time `json:"start_time"`
	EndTime       time.Time `json:"end_time"`
	FreeInstances int       `json:"free_instances"`
	IsAvailable   bool      `json:"is_available"`
}

type AvailabilityResponse struct {
	RoomTypeID     int64  `json:"room_type_id"`
	Date           string `json:"date"`
	TotalInstances int    `json:"total_instances"`
	Slots          []Slot `json:"slots"`
}

type CreateLocationRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
}

type CreateRoomTypeRequest struct {
	Name              string `json:"name" binding:"required"`
	Capacity          int    `json:"capacity" binding:"required,gt=0"`
	CreditsPerBooking int64  `json:"credits_per_booking" binding:"gte=0"`
	LocationID        int64  `json:"location_id" binding:"required"`
}

// Update requests use pointers so absent fields stay untouched; the service
// maps them onto an explicit column allow-list.
type UpdateRoomTypeRequest struct {
	Name              *string `json:"name"`
	Capacity          *int    `json:"capacity"`
	CreditsPerBooking *int64  `json:"credits_per_booking"`
	LocationID        *int64  `json:"location_id"`
}

type CreateInstanceRequest struct {
	Name       string `json:"name" binding:"required"`
	RoomTypeID int64  `json:"room_type_id" binding:"required"`
}

type UpdateInstanceRequest struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"is_active"`
}
