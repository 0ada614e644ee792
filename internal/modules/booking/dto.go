package booking

import "time"

type CreateBookingRequest struct {
	RoomTypeID int64     `json:"room_type_id" binding:"required"`
	StartTime  time.Time `json:"start_time" binding:"required"`
	EndTime    time.Time `json:"end_time" binding:"required"`
}

type RescheduleRequest struct {
	NewRoomTypeID int64     `json:"new_room_type_id" binding:"required"`
	NewStartTime  time.Time `json:"new_start_time" binding:"required"`
	NewEndTime    time.Time `json:"new_end_time" binding:"required"`
}
