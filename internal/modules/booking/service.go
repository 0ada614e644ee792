package booking

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	"workspace/internal/domain"
	"workspace/internal/modules/credits"
	"workspace/internal/repository"
)

// Service is the booking lifecycle manager. Each operation runs in exactly
// one transaction; on any failure the whole transaction rolls back, so
// credits never move without the matching booking row change. Locks are
// acquired in a fixed order — room-instance candidates first, then the
// credit-account row — across create and reschedule.
type Service struct {
	db       *gorm.DB
	bookings BookingStore
	rooms    RoomStore
	ledger   CreditLedger
	users    UserStore
	policy   *Policy
	notifs   NotificationSender
	guests   GuestDirectory
}

func NewService(
	db *gorm.DB,
	bookings BookingStore,
	rooms RoomStore,
	ledger CreditLedger,
	users UserStore,
	policy *Policy,
	notifs NotificationSender,
	guests GuestDirectory,
) *Service {
	return &Service{
		db:       db,
		bookings: bookings,
		rooms:    rooms,
		ledger:   ledger,
		users:    users,
		policy:   policy,
		notifs:   notifs,
		guests:   guests,
	}
}

// Create books one free instance of the requested type and debits the
// requester's resolved account for the type's current price. The price paid
// is stored on the booking row and is what a later cancellation refunds.
func (s *Service) Create(ctx context.Context, sub domain.Subject, req CreateBookingRequest) (*domain.Booking, error) {
	now := time.Now()
	// Clients may express the window in any offset; from here on the
	// instants are canonical UTC.
	req.StartTime, req.EndTime = req.StartTime.UTC(), req.EndTime.UTC()
	if err := s.policy.ValidateWindow(now, req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	ref := credits.ResolveAccount(sub)

	var b *domain.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rt, err := s.rooms.FindRoomType(tx, req.RoomTypeID)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrRoomTypeNotFound
			}
			return err
		}

		from, to := s.policy.CooldownRange(req.StartTime, req.EndTime)
		conflicts, err := s.bookings.CountCooldownConflicts(tx, sub.UserID, from, to, 0)
		if err != nil {
			return err
		}
		if conflicts > 0 {
			return ErrCooldownConflict
		}

		inst, err := s.rooms.AllocateInstance(tx, rt.ID, req.StartTime, req.EndTime, 0)
		if err != nil {
			return err
		}
		if inst == nil {
			return ErrNoAvailability
		}

		b = &domain.Booking{
			RoomInstanceID: inst.ID,
			UserID:         sub.UserID,
			StartTime:      req.StartTime,
			EndTime:        req.EndTime,
			Status:         domain.BookingConfirmed,
			CreditsCharged: rt.CreditsPerBooking,
		}
		if err := s.bookings.Create(tx, b); err != nil {
			return err
		}

		if rt.CreditsPerBooking > 0 {
			if err := s.ledger.Debit(tx, ref, rt.CreditsPerBooking, &b.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifs != nil {
		if err := s.notifs.NotifyBookingCreated(ctx, b); err != nil {
			log.Printf("booking %d: created notification failed: %v", b.ID, err)
		}
	}
	return b, nil
}

// Cancel moves an owned CONFIRMED booking to CANCELLED and refunds exactly
// the credits charged at creation, subject to the cancellation deadline and
// the monthly cancellation quota.
func (s *Service) Cancel(ctx context.Context, sub domain.Subject, bookingID int64) (*domain.Booking, error) {
	now := time.Now()
	ref := credits.ResolveAccount(sub)

	var b *domain.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		b, err = s.bookings.GetForUpdate(tx, bookingID)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrNotFound
			}
			return err
		}
		// Not-owner is indistinguishable from not-found to the caller.
		if b.UserID != sub.UserID {
			return ErrNotFound
		}
		if b.Status != domain.BookingConfirmed {
			return ErrNotConfirmed
		}

		if err := s.policy.ValidateCancellation(now, b.StartTime); err != nil {
			return err
		}

		from, to := s.policy.MonthBounds(now)
		cancellations, err := s.bookings.CountCancellationsBetween(tx, sub.UserID, from, to)
		if err != nil {
			return err
		}
		if s.policy.QuotaExhausted(cancellations) {
			return ErrQuotaExceeded
		}

		if b.CreditsCharged > 0 {
			if err := s.ledger.Credit(tx, ref, b.CreditsCharged, &b.ID); err != nil {
				return err
			}
		}

		if err := s.bookings.MarkCancelled(tx, b.ID, now); err != nil {
			return err
		}
		b.Status = domain.BookingCancelled
		b.CancelledAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifs != nil {
		if err := s.notifs.NotifyBookingCancelled(ctx, b, b.CreditsCharged); err != nil {
			log.Printf("booking %d: cancelled notification failed: %v", b.ID, err)
		}
	}
	return b, nil
}

// Reschedule atomically replaces an owned CONFIRMED booking's instance and
// window: the row is updated in place and no intermediate CANCELLED state is
// ever visible. The account is settled with old_cost - new_cost in one step.
func (s *Service) Reschedule(ctx context.Context, sub domain.Subject, bookingID int64, req RescheduleRequest) (*domain.Booking, error) {
	now := time.Now()
	req.NewStartTime, req.NewEndTime = req.NewStartTime.UTC(), req.NewEndTime.UTC()
	if err := s.policy.ValidateWindow(now, req.NewStartTime, req.NewEndTime); err != nil {
		return nil, err
	}

	ref := credits.ResolveAccount(sub)

	var b *domain.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		b, err = s.bookings.GetForUpdate(tx, bookingID)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrNotFound
			}
			return err
		}
		if b.UserID != sub.UserID {
			return ErrNotFound
		}
		if b.Status != domain.BookingConfirmed {
			return ErrNotConfirmed
		}

		rt, err := s.rooms.FindRoomType(tx, req.NewRoomTypeID)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrRoomTypeNotFound
			}
			return err
		}

		// The booking's own reservation must not block its new window.
		inst, err := s.rooms.AllocateInstance(tx, rt.ID, req.NewStartTime, req.NewEndTime, b.ID)
		if err != nil {
			return err
		}
		if inst == nil {
			return ErrNoAvailability
		}

		delta := b.CreditsCharged - rt.CreditsPerBooking
		if err := s.ledger.AdjustDelta(tx, ref, delta, &b.ID); err != nil {
			return err
		}

		b.RoomInstanceID = inst.ID
		b.StartTime = req.NewStartTime
		b.EndTime = req.NewEndTime
		b.CreditsCharged = rt.CreditsPerBooking
		return s.bookings.SaveReschedule(tx, b)
	})
	if err != nil {
		return nil, err
	}

	if s.notifs != nil {
		var guestEmails []string
		if s.guests != nil {
			guestEmails, _ = s.guests.ListEmails(ctx, b.ID)
		}
		if err := s.notifs.NotifyBookingRescheduled(ctx, b, guestEmails); err != nil {
			log.Printf("booking %d: rescheduled notification failed: %v", b.ID, err)
		}
	}
	return b, nil
}

// CancelAny is the admin override: no ownership, deadline or quota checks.
// The refund goes to the owner's resolved account, not the admin's.
func (s *Service) CancelAny(ctx context.Context, bookingID int64) (*domain.Booking, error) {
	now := time.Now()

	var b *domain.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		b, err = s.bookings.GetForUpdate(tx, bookingID)
		if err != nil {
			if repository.IsNotFound(err) {
				return ErrNotFound
			}
			return err
		}
		if b.Status != domain.BookingConfirmed {
			return ErrNotConfirmed
		}

		owner, err := s.users.FindByID(tx, b.UserID)
		if err != nil {
			return err
		}
		ref := credits.ResolveAccount(domain.Subject{
			UserID:         owner.ID,
			Role:           owner.Role,
			OrganizationID: owner.OrganizationID,
		})

		if now.After(b.StartTime) {
			log.Printf("admin cancelling past booking %d", b.ID)
		}

		if b.CreditsCharged > 0 {
			if err := s.ledger.Credit(tx, ref, b.CreditsCharged, &b.ID); err != nil {
				return err
			}
		}

		if err := s.bookings.MarkCancelled(tx, b.ID, now); err != nil {
			return err
		}
		b.Status = domain.BookingCancelled
		b.CancelledAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifs != nil {
		if err := s.notifs.NotifyBookingCancelled(ctx, b, b.CreditsCharged); err != nil {
			log.Printf("booking %d: cancelled notification failed: %v", b.ID, err)
		}
	}
	return b, nil
}

func (s *Service) ListMine(ctx context.Context, userID int64) ([]repository.UserBookingRow, error) {
	return s.bookings.ListForUser(ctx, userID)
}

func (s *Service) ListAll(ctx context.Context) ([]repository.AdminBookingRow, error) {
	return s.bookings.ListAll(ctx)
}
