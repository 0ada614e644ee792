package booking

import (
	"context"
	"time"

	"gorm.io/gorm"

	"workspace/internal/domain"
	"workspace/internal/modules/credits"
	"workspace/internal/repository"
)

// BookingStore is the persistence surface the lifecycle manager drives.
// Methods taking a *gorm.DB handle run inside the manager's transaction.
type BookingStore interface {
	Create(tx *gorm.DB, b *domain.Booking) error
	GetForUpdate(tx *gorm.DB, id int64) (*domain.Booking, error)
	CountCooldownConflicts(tx *gorm.DB, userID int64, from, to time.Time, excludeBookingID int64) (int64, error)
	CountCancellationsBetween(tx *gorm.DB, userID int64, from, to time.Time) (int64, error)
	MarkCancelled(tx *gorm.DB, id int64, at time.Time) error
	SaveReschedule(tx *gorm.DB, b *domain.Booking) error
	ListForUser(ctx context.Context, userID int64) ([]repository.UserBookingRow, error)
	ListAll(ctx context.Context) ([]repository.AdminBookingRow, error)
}

// RoomStore covers the catalog lookups and instance allocation. Both run on
// the lifecycle transaction: the price read is the price committed against.
type RoomStore interface {
	FindRoomType(tx *gorm.DB, id int64) (*domain.RoomType, error)
	AllocateInstance(tx *gorm.DB, roomTypeID int64, start, end time.Time, excludeBookingID int64) (*domain.RoomInstance, error)
}

// CreditLedger applies balance mutations under the caller's transaction.
type CreditLedger interface {
	Debit(tx *gorm.DB, ref credits.AccountRef, amount int64, bookingID *int64) error
	Credit(tx *gorm.DB, ref credits.AccountRef, amount int64, bookingID *int64) error
	AdjustDelta(tx *gorm.DB, ref credits.AccountRef, delta int64, bookingID *int64) error
}

// UserStore resolves booking owners for admin cancellations, on the
// cancellation transaction.
type UserStore interface {
	FindByID(tx *gorm.DB, id int64) (*domain.User, error)
}

// NotificationSender receives lifecycle events after commit. Best effort:
// errors are ignored and never affect the transaction.
type NotificationSender interface {
	NotifyBookingCreated(ctx context.Context, b *domain.Booking) error
	NotifyBookingCancelled(ctx context.Context, b *domain.Booking, refunded int64) error
	NotifyBookingRescheduled(ctx context.Context, b *domain.Booking, guestEmails []string) error
}

// GuestDirectory lists invited guests so reschedules can re-notify them.
type GuestDirectory interface {
	ListEmails(ctx context.Context, bookingID int64) ([]string, error)
}
