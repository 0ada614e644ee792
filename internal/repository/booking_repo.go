package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"workspace/internal/domain"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

// UserBookingRow is one row of the requester's booking list, with the
// room/type/location names joined in.
type UserBookingRow struct {
	ID             int64                `json:"id"`
	StartTime      time.Time            `json:"start_time"`
	EndTime        time.Time            `json:"end_time"`
	Status         domain.BookingStatus `json:"status"`
	CreditsCharged int64                `json:"credits_charged"`
	RoomName       string               `json:"room_name"`
	RoomTypeName   string               `json:"room_type_name"`
	LocationName   string               `json:"location_name"`
}

// AdminBookingRow additionally carries the requester's identity.
type AdminBookingRow struct {
	UserBookingRow
	UserID    int64  `json:"user_id"`
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}

func (r *BookingRepository) Create(tx *gorm.DB, b *domain.Booking) error {
	return tx.Create(b).Error
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	tx := r.db.WithContext(ctx).First(&b, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &b, nil
}

// GetForUpdate locks the booking row for the duration of the caller's
// transaction, serializing cancel/reschedule against the same booking.
func (r *BookingRepository) GetForUpdate(tx *gorm.DB, id int64) (*domain.Booking, error) {
	var b domain.Booking
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&b, id).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// CountCooldownConflicts counts the user's CONFIRMED bookings overlapping the
// widened window [from, to]; excludeBookingID skips the booking being
// rescheduled.
//
// Time parameters are normalized to UTC here and in every other query below:
// sqlite stores timestamps as UTC text and compares text lexically, so a
// parameter carrying another offset would compare by string, not by instant.
func (r *BookingRepository) CountCooldownConflicts(tx *gorm.DB, userID int64, from, to time.Time, excludeBookingID int64) (int64, error) {
	var cnt int64
	q := tx.Model(&domain.Booking{}).
		Where("user_id = ? AND status = ?", userID, domain.BookingConfirmed).
		Where("start_time < ? AND end_time > ?", to.UTC(), from.UTC())
	if excludeBookingID > 0 {
		q = q.Where("id <> ?", excludeBookingID)
	}
	if err := q.Count(&cnt).Error; err != nil {
		return 0, err
	}
	return cnt, nil
}

// CountCancellationsBetween counts the user's cancellations whose
// cancelled_at falls inside [from, to).
func (r *BookingRepository) CountCancellationsBetween(tx *gorm.DB, userID int64, from, to time.Time) (int64, error) {
	var cnt int64
	err := tx.Model(&domain.Booking{}).
		Where("user_id = ? AND status = ?", userID, domain.BookingCancelled).
		Where("cancelled_at >= ? AND cancelled_at < ?", from.UTC(), to.UTC()).
		Count(&cnt).Error
	if err != nil {
		return 0, err
	}
	return cnt, nil
}

func (r *BookingRepository) MarkCancelled(tx *gorm.DB, id int64, at time.Time) error {
	return tx.Model(&domain.Booking{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":       domain.BookingCancelled,
		"cancelled_at": at,
	}).Error
}

// SaveReschedule updates the booking row in place: new instance, new window,
// new charge, still CONFIRMED. No intermediate state is ever visible.
func (r *BookingRepository) SaveReschedule(tx *gorm.DB, b *domain.Booking) error {
	return tx.Model(&domain.Booking{}).Where("id = ?", b.ID).Updates(map[string]interface{}{
		"room_instance_id": b.RoomInstanceID,
		"start_time":       b.StartTime,
		"end_time":         b.EndTime,
		"credits_charged":  b.CreditsCharged,
	}).Error
}

// ListConfirmedForInstances returns the CONFIRMED bookings of the given
// instances intersecting [from, to); used for availability grids.
func (r *BookingRepository) ListConfirmedForInstances(ctx context.Context, instanceIDs []int64, from, to time.Time) ([]domain.Booking, error) {
	if len(instanceIDs) == 0 {
		return nil, nil
	}
	var bookings []domain.Booking
	err := r.db.WithContext(ctx).
		Where("room_instance_id IN ? AND status = ?", instanceIDs, domain.BookingConfirmed).
		Where("start_time < ? AND end_time > ?", to.UTC(), from.UTC()).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingRepository) ListForUser(ctx context.Context, userID int64) ([]UserBookingRow, error) {
	var rows []UserBookingRow
	q := `
SELECT b.id, b.start_time, b.end_time, b.status, b.credits_charged,
       ri.name AS room_name,
       rt.name AS room_type_name,
       l.name  AS location_name
FROM bookings b
JOIN room_instances ri ON b.room_instance_id = ri.id
JOIN room_types rt ON ri.room_type_id = rt.id
JOIN locations l ON rt.location_id = l.id
WHERE b.user_id = ?
ORDER BY b.start_time DESC
`
	tx := r.db.WithContext(ctx).Raw(q, userID).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

func (r *BookingRepository) ListAll(ctx context.Context) ([]AdminBookingRow, error) {
	var rows []AdminBookingRow
	q := `
SELECT b.id, b.start_time, b.end_time, b.status, b.credits_charged,
       ri.name AS room_name,
       rt.name AS room_type_name,
       l.name  AS location_name,
       u.id    AS user_id,
       u.name  AS user_name,
       u.email AS user_email
FROM bookings b
JOIN users u ON b.user_id = u.id
JOIN room_instances ri ON b.room_instance_id = ri.id
JOIN room_types rt ON ri.room_type_id = rt.id
JOIN locations l ON rt.location_id = l.id
ORDER BY b.start_time DESC
`
	tx := r.db.WithContext(ctx).Raw(q).Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

// IsNotFound reports whether err is the record-not-found sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
