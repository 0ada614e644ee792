package guest

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"workspace/internal/domain"
)

// Notifier receives the invitation event; best effort only.
type Notifier interface {
	NotifyGuestInvited(ctx context.Context, inviterID, bookingID int64, guestEmail string) error
}

type Service struct {
	db     *gorm.DB
	notifs Notifier
}

func NewService(db *gorm.DB, notifs Notifier) *Service {
	return &Service{db: db, notifs: notifs}
}

// Invite attaches a guest to a booking. Only the requester may invite, and a
// guest email can appear once per booking — the unique index is the final
// authority under concurrency.
func (s *Service) Invite(ctx context.Context, sub domain.Subject, bookingID int64, guestName, guestEmail string) (*domain.GuestInvitation, error) {
	guestName = strings.TrimSpace(guestName)
	guestEmail = strings.ToLower(strings.TrimSpace(guestEmail))
	if guestName == "" || guestEmail == "" {
		return nil, ErrValidation
	}

	var inv *domain.GuestInvitation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b domain.Booking
		if err := tx.First(&b, bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrBookingNotFound
			}
			return err
		}
		if b.UserID != sub.UserID {
			return ErrForbidden
		}

		inv = &domain.GuestInvitation{
			BookingID:    bookingID,
			SentByUserID: sub.UserID,
			GuestName:    guestName,
			GuestEmail:   guestEmail,
		}
		if err := tx.Create(inv).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrAlreadyInvited
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifs != nil {
		if err := s.notifs.NotifyGuestInvited(ctx, sub.UserID, bookingID, guestEmail); err != nil {
			log.Printf("booking %d: guest invite notification failed: %v", bookingID, err)
		}
	}
	return inv, nil
}

// ListForBooking returns a booking's invitations to its requester.
func (s *Service) ListForBooking(ctx context.Context, sub domain.Subject, bookingID int64) ([]domain.GuestInvitation, error) {
	var b domain.Booking
	if err := s.db.WithContext(ctx).First(&b, bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if b.UserID != sub.UserID {
		return nil, ErrForbidden
	}

	var invites []domain.GuestInvitation
	err := s.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("created_at desc").
		Find(&invites).Error
	if err != nil {
		return nil, err
	}
	return invites, nil
}

// ListEmails feeds reschedule re-notification; no ownership check, internal use.
func (s *Service) ListEmails(ctx context.Context, bookingID int64) ([]string, error) {
	var emails []string
	err := s.db.WithContext(ctx).Model(&domain.GuestInvitation{}).
		Where("booking_id = ?", bookingID).
		Order("created_at asc").
		Pluck("guest_email", &emails).Error
	if err != nil {
		return nil, err
	}
	return emails, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique constraint") || strings.Contains(msg, "unique failed")
}
