package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"workspace/internal/domain"
	"workspace/internal/repository"
)

const slotLength = 30 * time.Minute

// Service is the catalog store: read-only type/location lookups for
// everyone, inventory CRUD for admins. Availability is computed per room
// type — a slot is available while at least one active instance is free.
type Service struct {
	rooms    *repository.RoomRepository
	bookings *repository.BookingRepository
	loc      *time.Location
}

func NewService(rooms *repository.RoomRepository, bookings *repository.BookingRepository, loc *time.Location) *Service {
	return &Service{rooms: rooms, bookings: bookings, loc: loc}
}

func (s *Service) ListRoomTypes(ctx context.Context) ([]RoomTypeView, error) {
	types, err := s.rooms.ListRoomTypes(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]RoomTypeView, 0, len(types))
	for _, rt := range types {
		out = append(out, toRoomTypeView(rt))
	}
	return out, nil
}

func (s *Service) GetRoomType(ctx context.Context, id int64) (*RoomTypeView, error) {
	rt, err := s.rooms.GetRoomType(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	v := toRoomTypeView(*rt)
	return &v, nil
}

// Availability builds the 30-minute slot grid for one day of one room type,
// in the canonical booking offset.
func (s *Service) Availability(ctx context.Context, roomTypeID int64, dateStr string) (*AvailabilityResponse, error) {
	day, err := time.ParseInLocation("2006-01-02", dateStr, s.loc)
	if err != nil {
		return nil, ErrValidation
	}

	if _, err := s.rooms.GetRoomType(ctx, roomTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	instances, err := s.rooms.ListInstancesByType(ctx, roomTypeID, true)
	if err != nil {
		return nil, err
	}

	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, s.loc)
	dayEnd := dayStart.Add(24 * time.Hour)

	instanceIDs := make([]int64, 0, len(instances))
	for _, inst := range instances {
		instanceIDs = append(instanceIDs, inst.ID)
	}

	booked, err := s.bookings.ListConfirmedForInstances(ctx, instanceIDs, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	byInstance := make(map[int64][]domain.Booking, len(instances))
	for _, b := range booked {
		byInstance[b.RoomInstanceID] = append(byInstance[b.RoomInstanceID], b)
	}

	slots := make([]Slot, 0, int(24*time.Hour/slotLength))
	for cur := dayStart; cur.Before(dayEnd); cur = cur.Add(slotLength) {
		slotEnd := cur.Add(slotLength)

		free := 0
		for _, inst := range instances {
			busy := false
			for _, b := range byInstance[inst.ID] {
				if b.StartTime.Before(slotEnd) && b.EndTime.After(cur) {
					busy = true
					break
				}
			}
			if !busy {
				free++
			}
		}

		slots = append(slots, Slot{
			StartTime:     cur,
			EndTime:       slotEnd,
			FreeInstances: free,
			IsAvailable:   free > 0,
		})
	}

	return &AvailabilityResponse{
		RoomTypeID:     roomTypeID,
		Date:           dateStr,
		TotalInstances: len(instances),
		Slots:          slots,
	}, nil
}

// SearchAvailable lists room types that seat at least `capacity` people and
// have a free active instance for the whole window, cheapest capacity first.
func (s *Service) SearchAvailable(ctx context.Context, start, end time.Time, capacity int) ([]RoomTypeView, error) {
	if !start.Before(end) || capacity <= 0 {
		return nil, ErrValidation
	}

	rows, err := s.rooms.SearchAvailableTypes(ctx, start, end, capacity)
	if err != nil {
		return nil, err
	}

	out := make([]RoomTypeView, 0, len(rows))
	for _, r := range rows {
		out = append(out, RoomTypeView{
			ID:                r.ID,
			Name:              r.Name,
			Capacity:          r.Capacity,
			CreditsPerBooking: r.CreditsPerBooking,
			LocationName:      r.LocationName,
		})
	}
	return out, nil
}

func (s *Service) CreateLocation(ctx context.Context, req CreateLocationRequest) (*domain.Location, error) {
	l := &domain.Location{Name: req.Name, Address: req.Address}
	if err := s.rooms.CreateLocation(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) ListLocations(ctx context.Context) ([]domain.Location, error) {
	return s.rooms.ListLocations(ctx)
}

func (s *Service) CreateRoomType(ctx context.Context, req CreateRoomTypeRequest) (*domain.RoomType, error) {
	rt := &domain.RoomType{
		Name:              req.Name,
		Capacity:          req.Capacity,
		CreditsPerBooking: req.CreditsPerBooking,
		LocationID:        req.LocationID,
	}
	if err := s.rooms.CreateRoomType(ctx, rt); err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}
	return rt, nil
}

func (s *Service) UpdateRoomType(ctx context.Context, id int64, req UpdateRoomTypeRequest) (*domain.RoomType, error) {
	// Explicit allow-list: only these columns are ever written.
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Capacity != nil {
		updates["capacity"] = *req.Capacity
	}
	if req.CreditsPerBooking != nil {
		updates["credits_per_booking"] = *req.CreditsPerBooking
	}
	if req.LocationID != nil {
		updates["location_id"] = *req.LocationID
	}
	if len(updates) == 0 {
		return nil, ErrValidation
	}

	rt, err := s.rooms.UpdateRoomType(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		if isForeignKeyViolation(err) {
			return nil, ErrLocationNotFound
		}
		return nil, err
	}
	return rt, nil
}

func (s *Service) DeleteRoomType(ctx context.Context, id int64) error {
	if err := s.rooms.DeleteRoomType(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) CreateInstance(ctx context.Context, req CreateInstanceRequest) (*domain.RoomInstance, error) {
	if _, err := s.rooms.GetRoomType(ctx, req.RoomTypeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	inst := &domain.RoomInstance{
		Name:       req.Name,
		RoomTypeID: req.RoomTypeID,
		IsActive:   true,
	}
	if err := s.rooms.CreateInstance(ctx, inst); err != nil {
		return nil, err
	}
	return inst, nil
}

func (s *Service) UpdateInstance(ctx context.Context, id int64, req UpdateInstanceRequest) (*domain.RoomInstance, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return nil, ErrValidation
	}

	inst, err := s.rooms.UpdateInstance(ctx, id, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return inst, nil
}

func (s *Service) DeleteInstance(ctx context.Context, id int64) error {
	if err := s.rooms.DeleteInstance(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func toRoomTypeView(rt domain.RoomType) RoomTypeView {
	v := RoomTypeView{
		ID:                rt.ID,
		Name:              rt.Name,
		Capacity:          rt.Capacity,
		CreditsPerBooking: rt.CreditsPerBooking,
	}
	if rt.Location != nil {
		v.LocationName = rt.Location.Name
	}
	return v
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key")
}
