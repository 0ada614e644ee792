package booking

import (
	"time"

	"workspace/internal/config"
)

// Policy evaluates the time-based booking rules. Every check is pure: it
// depends only on its arguments and the configured limits, so the caller
// supplies "now" explicitly. Day and month boundaries are taken in Location,
// the single canonical offset applied to both now and stored timestamps.
type Policy struct {
	MaxAdvanceDays           int
	CooldownWindow           time.Duration
	CancellationLead         time.Duration
	MaxCancellationsPerMonth int
	Location                 *time.Location
}

func PolicyFromConfig(cfg *config.Config) *Policy {
	return &Policy{
		MaxAdvanceDays:           cfg.MaxBookingDaysAhead,
		CooldownWindow:           cfg.CooldownWindow,
		CancellationLead:         cfg.CancellationLead,
		MaxCancellationsPerMonth: cfg.MaxCancellationsPerMonth,
		Location:                 cfg.BookingLocation,
	}
}

// DefaultPolicy carries the stock limits: 3 days ahead, 30 minute cooldown,
// 15 minute cancellation lead, 5 cancellations a month, +05:30 offset.
func DefaultPolicy() *Policy {
	return &Policy{
		MaxAdvanceDays:           3,
		CooldownWindow:           30 * time.Minute,
		CancellationLead:         15 * time.Minute,
		MaxCancellationsPerMonth: 5,
		Location:                 config.FixedOffset(330),
	}
}

// ValidateWindow checks the proposed interval: well-formed, not in the past,
// and inside the advance-booking window.
func (p *Policy) ValidateWindow(now, start, end time.Time) error {
	if !start.Before(end) {
		return ErrInvalidRange
	}
	if start.Before(now) {
		return ErrPastTime
	}
	if start.After(now.AddDate(0, 0, p.MaxAdvanceDays)) {
		return ErrTooFarAhead
	}
	return nil
}

// CooldownRange widens [start, end] by the cooldown spacing on both sides;
// any CONFIRMED booking of the requester intersecting it is a conflict.
func (p *Policy) CooldownRange(start, end time.Time) (time.Time, time.Time) {
	return start.Add(-p.CooldownWindow), end.Add(p.CooldownWindow)
}

// ValidateCancellation rejects cancellations after the deadline
// (start - CancellationLead).
func (p *Policy) ValidateCancellation(now, start time.Time) error {
	if now.After(start.Add(-p.CancellationLead)) {
		return ErrTooLateToCancel
	}
	return nil
}

// MonthBounds returns the calendar month containing now, in the canonical
// booking offset. Cancellation quotas are counted inside these bounds.
func (p *Policy) MonthBounds(now time.Time) (time.Time, time.Time) {
	local := now.In(p.Location)
	from := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, p.Location)
	return from, from.AddDate(0, 1, 0)
}

func (p *Policy) QuotaExhausted(cancellationsThisMonth int64) bool {
	return cancellationsThisMonth >= int64(p.MaxCancellationsPerMonth)
}
