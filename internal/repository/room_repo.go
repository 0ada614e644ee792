package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"workspace/internal/domain"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) GetRoomType(ctx context.Context, id int64) (*domain.RoomType, error) {
	var rt domain.RoomType
	tx := r.db.WithContext(ctx).Preload("Location").First(&rt, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &rt, nil
}

// FindRoomType reads a room type on the caller's transaction handle, so the
// price seen is the one the transaction commits against.
func (r *RoomRepository) FindRoomType(tx *gorm.DB, id int64) (*domain.RoomType, error) {
	var rt domain.RoomType
	if err := tx.First(&rt, id).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

func (r *RoomRepository) ListRoomTypes(ctx context.Context) ([]domain.RoomType, error) {
	var types []domain.RoomType
	tx := r.db.WithContext(ctx).Preload("Location").Order("name asc").Find(&types)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return types, nil
}

// AllocateInstance picks one free active instance of the given type for the
// half-open window [start, end). Every active instance of the type is locked
// for update first, so two transactions allocating the same type/window
// serialize: the second blocks until the first commits, then re-evaluates
// availability against the committed booking. Instances are tried in id
// order to keep the choice reproducible. Returns (nil, nil) when the type
// has no free instance — an expected outcome, not a fault.
//
// Must be called inside the booking transaction; excludeBookingID skips the
// caller's own reservation during reschedule.
func (r *RoomRepository) AllocateInstance(tx *gorm.DB, roomTypeID int64, start, end time.Time, excludeBookingID int64) (*domain.RoomInstance, error) {
	var instances []domain.RoomInstance
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("room_type_id = ? AND is_active = ?", roomTypeID, true).
		Order("id asc").
		Find(&instances).Error
	if err != nil {
		return nil, err
	}

	// UTC normalization: sqlite compares its UTC-text timestamps lexically,
	// so an offset-carrying parameter would not compare by instant.
	start, end = start.UTC(), end.UTC()

	for i := range instances {
		var cnt int64
		q := tx.Model(&domain.Booking{}).
			Where("room_instance_id = ? AND status = ?", instances[i].ID, domain.BookingConfirmed).
			Where("start_time < ? AND end_time > ?", end, start)
		if excludeBookingID > 0 {
			q = q.Where("id <> ?", excludeBookingID)
		}
		if err := q.Count(&cnt).Error; err != nil {
			return nil, err
		}
		if cnt == 0 {
			return &instances[i], nil
		}
	}
	return nil, nil
}

// AvailableTypeRow is one search result: a room type with enough capacity
// and at least one free active instance for the requested window.
type AvailableTypeRow struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	Capacity          int    `json:"capacity"`
	CreditsPerBooking int64  `json:"credits_per_booking"`
	LocationName      string `json:"location_name"`
}

func (r *RoomRepository) SearchAvailableTypes(ctx context.Context, start, end time.Time, capacity int) ([]AvailableTypeRow, error) {
	var rows []AvailableTypeRow
	q := `
SELECT DISTINCT rt.id, rt.name, rt.capacity, rt.credits_per_booking,
       l.name AS location_name
FROM room_instances ri
JOIN room_types rt ON ri.room_type_id = rt.id
JOIN locations l ON rt.location_id = l.id
LEFT JOIN bookings b ON b.room_instance_id = ri.id
       AND b.status = ?
       AND b.start_time < ? AND b.end_time > ?
WHERE ri.is_active = ? AND rt.capacity >= ? AND b.id IS NULL
ORDER BY rt.capacity ASC
`
	tx := r.db.WithContext(ctx).
		Raw(q, domain.BookingConfirmed, end.UTC(), start.UTC(), true, capacity).
		Scan(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return rows, nil
}

func (r *RoomRepository) GetInstance(ctx context.Context, id int64) (*domain.RoomInstance, error) {
	var inst domain.RoomInstance
	tx := r.db.WithContext(ctx).Preload("RoomType").First(&inst, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &inst, nil
}

func (r *RoomRepository) ListInstancesByType(ctx context.Context, roomTypeID int64, activeOnly bool) ([]domain.RoomInstance, error) {
	q := r.db.WithContext(ctx).Where("room_type_id = ?", roomTypeID)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var instances []domain.RoomInstance
	if err := q.Order("id asc").Find(&instances).Error; err != nil {
		return nil, err
	}
	return instances, nil
}

func (r *RoomRepository) CreateLocation(ctx context.Context, l *domain.Location) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *RoomRepository) ListLocations(ctx context.Context) ([]domain.Location, error) {
	var locations []domain.Location
	if err := r.db.WithContext(ctx).Order("name asc").Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

func (r *RoomRepository) CreateRoomType(ctx context.Context, rt *domain.RoomType) error {
	return r.db.WithContext(ctx).Create(rt).Error
}

// UpdateRoomType applies an explicit column map; callers are responsible for
// allow-listing the fields before building the map.
func (r *RoomRepository) UpdateRoomType(ctx context.Context, id int64, updates map[string]interface{}) (*domain.RoomType, error) {
	tx := r.db.WithContext(ctx).Model(&domain.RoomType{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetRoomType(ctx, id)
}

func (r *RoomRepository) DeleteRoomType(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.RoomType{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *RoomRepository) CreateInstance(ctx context.Context, inst *domain.RoomInstance) error {
	return r.db.WithContext(ctx).Create(inst).Error
}

func (r *RoomRepository) UpdateInstance(ctx context.Context, id int64, updates map[string]interface{}) (*domain.RoomInstance, error) {
	tx := r.db.WithContext(ctx).Model(&domain.RoomInstance{}).Where("id = ?", id).Updates(updates)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.GetInstance(ctx, id)
}

func (r *RoomRepository) DeleteInstance(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&domain.RoomInstance{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
