package notification

import (
	"context"
	"encoding/json"
	"fmt"

	"workspace/internal/domain"
)

type Service struct {
	repo *Repository
	hub  *Hub
}

func NewService(repo *Repository, hub *Hub) *Service {
	return &Service{repo: repo, hub: hub}
}

func (s *Service) create(ctx context.Context, userID int64, t NotificationType, title, message string, data map[string]any) error {
	n := &Notification{
		UserID:  userID,
		Type:    t,
		Title:   title,
		Message: message,
	}
	if data != nil {
		raw, err := json.Marshal(data)
		if err == nil {
			n.Data = string(raw)
		}
	}
	return s.repo.Create(ctx, n)
}

func (s *Service) ListForUser(ctx context.Context, userID int64, limit int) ([]Notification, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	list, err := s.repo.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, 0, err
	}

	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		unread = 0
	}
	return list, unread, nil
}

func (s *Service) MarkAsRead(ctx context.Context, notificationID, userID int64) error {
	return s.repo.MarkAsRead(ctx, notificationID, userID)
}

func (s *Service) MarkAllAsRead(ctx context.Context, userID int64) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

func (s *Service) NotifyBookingCreated(ctx context.Context, b *domain.Booking) error {
	if s.hub != nil {
		s.hub.SendToUser(b.UserID, &Event{
			Type:           "created",
			BookingID:      b.ID,
			Requester:      b.UserID,
			RoomInstanceID: b.RoomInstanceID,
			StartTime:      b.StartTime,
			EndTime:        b.EndTime,
		})
	}
	return s.create(
		ctx,
		b.UserID,
		NotifBookingCreated,
		"Booking confirmed",
		fmt.Sprintf("Your room is booked for %s", b.StartTime.Format("02 Jan 2006 15:04")),
		map[string]any{
			"booking_id":       b.ID,
			"room_instance_id": b.RoomInstanceID,
		},
	)
}

func (s *Service) NotifyBookingCancelled(ctx context.Context, b *domain.Booking, refunded int64) error {
	if s.hub != nil {
		s.hub.SendToUser(b.UserID, &Event{
			Type:      "cancelled",
			BookingID: b.ID,
			Requester: b.UserID,
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
			Payload:   map[string]int64{"credits_refunded": refunded},
		})
	}
	return s.create(
		ctx,
		b.UserID,
		NotifBookingCancelled,
		"Booking cancelled",
		fmt.Sprintf("Your booking for %s was cancelled, %d credits refunded", b.StartTime.Format("02 Jan 2006 15:04"), refunded),
		map[string]any{
			"booking_id":       b.ID,
			"credits_refunded": refunded,
		},
	)
}

func (s *Service) NotifyBookingRescheduled(ctx context.Context, b *domain.Booking, guestEmails []string) error {
	if s.hub != nil {
		s.hub.SendToUser(b.UserID, &Event{
			Type:           "rescheduled",
			BookingID:      b.ID,
			Requester:      b.UserID,
			RoomInstanceID: b.RoomInstanceID,
			StartTime:      b.StartTime,
			EndTime:        b.EndTime,
		})
	}
	data := map[string]any{
		"booking_id":       b.ID,
		"room_instance_id": b.RoomInstanceID,
		"start_time":       b.StartTime,
		"end_time":         b.EndTime,
	}
	if len(guestEmails) > 0 {
		// Guests of the original slot get re-notified with the new details.
		data["guest_emails"] = guestEmails
	}
	return s.create(
		ctx,
		b.UserID,
		NotifBookingRescheduled,
		"Booking rescheduled",
		fmt.Sprintf("Your booking was moved to %s", b.StartTime.Format("02 Jan 2006 15:04")),
		data,
	)
}

func (s *Service) NotifyGuestInvited(ctx context.Context, inviterID, bookingID int64, guestEmail string) error {
	if s.hub != nil {
		s.hub.SendToUser(inviterID, &Event{
			Type:      "guest_invited",
			BookingID: bookingID,
			Requester: inviterID,
			Payload:   map[string]string{"guest_email": guestEmail},
		})
	}
	return s.create(
		ctx,
		inviterID,
		NotifGuestInvited,
		"Guest invited",
		fmt.Sprintf("Invitation sent to %s", guestEmail),
		map[string]any{
			"booking_id":  bookingID,
			"guest_email": guestEmail,
		},
	)
}
