package booking

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"workspace/internal/domain"
	"workspace/internal/modules/credits"
	"workspace/internal/modules/notification"
	"workspace/internal/repository"

	_ "modernc.org/sqlite"
)

type testEnv struct {
	db      *gorm.DB
	service *Service
	ledger  *credits.Ledger
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:booking_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: dsn}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.Organization{},
		&domain.User{},
		&domain.Location{},
		&domain.RoomType{},
		&domain.RoomInstance{},
		&domain.Booking{},
		&domain.GuestInvitation{},
		&credits.CreditTransaction{},
		&notification.Notification{},
	); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}

	ledger := credits.NewLedger(db)
	service := NewService(
		db,
		repository.NewBookingRepository(db),
		repository.NewRoomRepository(db),
		ledger,
		repository.NewUserRepository(db),
		DefaultPolicy(),
		nil,
		nil,
	)
	return &testEnv{db: db, service: service, ledger: ledger}
}

func (e *testEnv) seedUser(t *testing.T, email string, balance int64) domain.Subject {
	t.Helper()
	u := &domain.User{
		Name:              "Member",
		Email:             email,
		Role:              domain.RoleIndividualUser,
		IndividualCredits: balance,
	}
	if err := e.db.Create(u).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return domain.Subject{UserID: u.ID, Role: u.Role}
}

func (e *testEnv) seedRoomType(t *testing.T, name string, price int64, instances int) *domain.RoomType {
	t.Helper()
	loc := &domain.Location{Name: "Hub " + name, Address: "1 Test Street"}
	if err := e.db.Create(loc).Error; err != nil {
		t.Fatalf("failed to seed location: %v", err)
	}
	rt := &domain.RoomType{Name: name, Capacity: 4, CreditsPerBooking: price, LocationID: loc.ID}
	if err := e.db.Create(rt).Error; err != nil {
		t.Fatalf("failed to seed room type: %v", err)
	}
	for i := 1; i <= instances; i++ {
		inst := &domain.RoomInstance{Name: fmt.Sprintf("%s %d", name, i), RoomTypeID: rt.ID, IsActive: true}
		if err := e.db.Create(inst).Error; err != nil {
			t.Fatalf("failed to seed instance: %v", err)
		}
	}
	return rt
}

func (e *testEnv) balance(t *testing.T, sub domain.Subject) int64 {
	t.Helper()
	b, err := e.ledger.Balance(context.Background(), credits.ResolveAccount(sub))
	if err != nil {
		t.Fatalf("Balance returned error: %v", err)
	}
	return b
}

func futureWindow(offset, length time.Duration) (time.Time, time.Time) {
	start := time.Now().Add(offset).Truncate(time.Minute)
	return start, start.Add(length)
}

func TestCreateDebitsAndConfirms(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	sub := env.seedUser(t, "maya@test.local", 100)
	rt := env.seedRoomType(t, "Meeting Room", 15, 2)

	start, end := futureWindow(24*time.Hour, time.Hour)
	b, err := env.service.Create(ctx, sub, CreateBookingRequest{RoomTypeID: rt.ID, StartTime: start, EndTime: end})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if b.Status != domain.BookingConfirmed {
		t.Fatalf("expected CONFIRMED, got %s", b.Status)
	}
	if b.CreditsCharged != 15 {
		t.Fatalf("expected credits_charged 15, got %d", b.CreditsCharged)
	}
	if b.RoomInstanceID == 0 {
		t.Fatal("expected an allocated instance")
	}
	if got := env.balance(t, sub); got != 85 {
		t.Fatalf("expected balance 85, got %d", got)
	}
}

func TestCreateInsufficientCreditsLeavesNoRow(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	sub := env.seedUser(t, "broke@test.local", 10)
	rt := env.seedRoomType(t, "Meeting Room", 15, 2)

	start, end := futureWindow(24*time.Hour, time.Hour)
	_, err := env.service.Create(ctx, sub, CreateBookingRequest{RoomTypeID: rt.ID, StartTime: start, EndTime: end})
	if !errors.Is(err, credits.ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	var cnt int64
	env.db.Model(&domain.Booking{}).Count(&cnt)
	if cnt != 0 {
		t.Fatalf("expected no booking rows after rollback, got %d", cnt)
	}
	if got := env.balance(t, sub); got != 10 {
		t.Fatalf("expected balance unchanged at 10, got %d", got)
	}

	var txns int64
	env.db.Model(&credits.CreditTransaction{}).Count(&txns)
	if txns != 0 {
		t.Fatalf("expected no journal rows after rollback, got %d", txns)
	}
}

func TestCreateRejectsUnknownRoomType(t *testing.T) {
	env := setupTestEnv(t)
	sub := env.seedUser(t, "maya@test.local", 100)

	start, end := futureWindow(24*time.Hour, time.Hour)
	_, err := env.service.Create(context.Background(), sub, CreateBookingRequest{RoomTypeID: 999, StartTime: start, EndTime: end})
	if !errors.Is(err, ErrRoomTypeNotFound) {
		t.Fatalf("expected ErrRoomTypeNotFound, got %v", err)
	}
}

func TestCreateCooldownConflict(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	sub := env.seedUser(t, "maya@test.local", 100)
	rt := env.seedRoomType(t, "Meeting Room", 15, 3)

	start, end := futureWindow(24*time.Hour, time.Hour)
	if _, err := env.service.Create(ctx, sub, CreateBookingRequest{RoomTypeID: rt.ID, StartTime: start, EndTime: end}); err != nil {
		t.Fatalf("first Create returned error: %v", err)
	}

	// 15 minutes after the first booking ends: inside the 30-minute spacing.
	_, err := env.service.Create(ctx, sub, CreateBookingRequest{
		RoomTypeID: rt.ID,
		StartTime:  end.Add(15 * time.Minute),
		EndTime:    end.Add(75 * time.Minute),
	})
	if !errors.Is(err, ErrCooldownConflict) {
		t.Fatalf("expected ErrCooldownConflict, got %v", err)
	}

	// A full 30-minute gap is fine.
	if _, err := env.service.Create(ctx, sub, CreateBookingRequest{
		RoomTypeID: rt.ID,
		StartTime:  end.Add(30 * time.Minute),
		EndTime:    end.Add(90 * time.Minute),
	}); err != nil {
		t.Fatalf("Create after cooldown gap returned error: %v", err)
	}
}

func TestCreateNoAvailability(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	first := env.seedUser(t, "first@test.local", 100)
	second := env.seedUser(t, "second@test.local", 100)
	rt := env.seedRoomType(t, "Focus Booth", 5, 1)

	start, end := futureWindow(24*time.Hour, time.Hour)
	if _, err := env.service.Create(ctx, first, CreateBookingRequest{RoomTypeID: rt.ID, StartTime: start, EndTime: end}); err != nil {
		t.Fatalf("first Create returned error: %v", err)
	}

	_, err := env.service.Create(ctx, second, CreateBookingRequest{RoomTypeID: rt.ID, StartTime: start, EndTime: end})
	if !errors.Is(err, ErrNoAvailability) {
		t.Fatalf("expected ErrNoAvailability, got %v", err)
	}
	if got := env.balance(t, second); got != 100 {
		t.Fatalf("expected second user's balance unchanged, got %d", got)
	}
}

func TestAdjacentWindowsDoNotOverlap(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	first := env.seedUser(t, "first@test.local", 100)
	second := env.seedUser(t, "second@test.local", 100)
	rt := env.seedRoomType(t, "Focus Booth", 5, 1)

	start, end := futureWindow(24*time.Hour, time.Hour)
	if _, err := env.service.Create(ctx, first, CreateBookingRequest{RoomTypeID: rt.ID, StartTime: start, EndTime: end}); err != nil {
		t.Fatalf("first Create returned error: %v", err)
	}

	// Half-open windows: a booking starting exactly at the other's end shares
	// the instance.
	if _, err := env.service.Create(ctx, second, CreateBookingRequest{
		RoomTypeID: rt.ID,
		StartTime:  end,
		EndTime:    end.Add(time.Hour),
	}); err != nil {
		t.Fatalf("adjacent Create returned error: %v", err)
	}
}

func TestCreateSameInstantDifferentOffsetsContend(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	first := env.seedUser(t, "first@test.local", 100)
	second := env.seedUser(t, "second@test.local", 100)
	rt := env.seedRoomType(t, "Focus Booth", 5, 1)

	// The same instant expressed in UTC and in +05:30 must hit the same
	// instance, not slip past the overlap check as different strings.
	ist := time.FixedZone("UTC+05:30", 330*60)
	start, end := futureWindow(24*time.Hour, time.Hour)
	if _, err := env.service.Create(ctx, first, CreateBookingRequest{
		RoomTypeID: rt.ID,
		StartTime:  start.UTC(),
		EndTime:    end.UTC(),
	}); err != nil {
		t.Fatalf("first Create returned error: %v", err)
	}

	_, err := env.service.Create(ctx, second, CreateBookingRequest{
		RoomTypeID: rt.ID,
		StartTime:  start.In(ist),
		EndTime:    end.In(ist),
	})
	if !errors.Is(err, ErrNoAvailability) {
		t.Fatalf("expected ErrNoAvailability for the offset-shifted duplicate, got %v", err)
	}
	if got := env.balance(t, second); got != 100 {
		t.Fatalf("expected second user's balance unchanged, got %d", got)
	}
}

func TestCooldownSeesOffsetShiftedWindows(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	sub := env.seedUser(t, "maya@test.local", 100)
	rt := env.seedRoomType(t, "Meeting Room", 15, 3)

	ist := time.FixedZone("UTC+05:30", 330*60)
	start, end := futureWindow(24*time.Hour, time.Hour)
	if _, err := env.service.Create(ctx, sub, CreateBookingRequest{
		RoomTypeID: rt.ID,
		StartTime:  start.UTC(),
		EndTime:    end.UTC(),
	}); err != nil {
		t.Fatalf("first Create returned error: %v", err)
	}

	// 15 minutes after the stored booking, but phrased in +05:30.
	_, err := env.service.Create(ctx, sub, CreateBookingRequest{
		RoomTypeID: rt.ID,
		StartTime:  end.Add(15 * time.Minute).In(ist),
		EndTime:    end.Add(75 * time.Minute).In(ist),
	})
	if !errors.Is(err, ErrCooldownConflict) {
		t.Fatalf("expected ErrCooldownConflict across offsets, got %v", err)
	}
}

func TestCancellationCountCrossesUTCMonthBoundary(t *testing.T) {
	env := setupTestEnv(t)
	sub := env.seedUser(t, "maya@test.local", 100)
	env.seedRoomType(t, "Meeting Room", 15, 1)

	var inst domain.RoomInstance
	env.db.First(&inst)

	// 19:13 UTC on Aug 31 is already Sep 1 in the +05:30 booking offset;
	// 18:00 UTC the same evening is still August there.
	sept := time.Date(2026, time.August, 31, 19, 13, 0, 0, time.UTC)
	aug := time.Date(2026, time.August, 31, 18, 0, 0, 0, time.UTC)
	for _, cancelledAt := range []time.Time{sept, aug} {
		at := cancelledAt
		old := domain.Booking{
			RoomInstanceID: inst.ID,
			UserID:         sub.UserID,
			StartTime:      at.Add(24 * time.Hour),
			EndTime:        at.Add(25 * time.Hour),
			Status:         domain.BookingCancelled,
			CreditsCharged: 15,
			CancelledAt:    &at,
		}
		if err := env.db.Create(&old).Error; err != nil {
			t.Fatalf("failed to seed cancelled booking: %v", err)
		}
	}

	policy := DefaultPolicy()
	repo := repository.NewBookingRepository(env.db)

	from, to := policy.MonthBounds(sept)
	cnt, err := repo.CountCancellationsBetween(env.db, sub.UserID, from, to)
	if err != nil {
		t.Fatalf("CountCancellationsBetween returned error: %v", err)
	}
	if cnt != 1 {
		t.Fatalf("expected 1 September cancellation, got %d", cnt)
	}

	from, to = policy.MonthBounds(aug)
	cnt, err = repo.CountCancellationsBetween(env.db, sub.UserID, from, to)
	if err != nil {
		t.Fatalf("CountCancellationsBetween returned error: %v", err)
	}
	if cnt != 1 {
		t.Fatalf("expected 1 August cancellation, got %d", cnt)
	}
}

func TestCancelRefundsExactChargeAfterPriceChange(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	sub := env.seedUser(t, "maya@test.local", 100)
	rt := env.seedRoomType(t, "Meeting Room", 15, 1)

	start, end := futureWindow(24*time.Hour, time.Hour)
	b, err := env.service.Create(ctx, sub, CreateBookingRequest{RoomTypeID: rt.ID, StartTime: start, EndTime: end})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	// Admin raises the price after the booking was made.
	env.db.Model(&domain.RoomType{}).Where("id = ?", rt.ID).Update("credits_per_booking", 40)

	cancelled, err := env.service.Cancel(ctx, sub, b.ID)
	if err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}
	if cancelled.Status != domain.BookingCancelled {
		t.Fatalf("expected CANCELLED, got %s", cancelled.Status)
	}
	if cancelled.CancelledAt == nil {
		t.Fatal("expected cancelled_at to be set")
	}
	// Refund is the 15 originally charged, not the new price.
	if got := env.balance(t, sub); got != 100 {
		t.Fatalf("expected balance restored to 100, got %d", got)
	}
}

func TestCancelAfterDeadline(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	sub := env.seedUser(t, "maya@test.local", 100)
	rt := env.seedRoomType(t, "Meeting Room", 15, 1)

	// Starts in 10 minutes: creatable, but past the 15-minute cancellation
	// deadline.
	start, end := futureWindow(10*time.Minute, time.Hour)
	b, err := env.service.Create(ctx, sub, CreateBookingRequest{RoomTypeID: rt.ID, StartTime: start, EndTime: end})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	_, err = env.service.Cancel(ctx, sub, b.ID)
	if !errors.Is(err, ErrTooLateToCancel) {
		t.Fatalf("expected ErrTooLateToCancel, got %v", err)
	}
	if got := env.balance(t, sub); got != 85 {
		t.Fatalf("expected no refund, balance 85, got %d", got)
	}
}

func TestCancelQuotaExceeded(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	sub := env.seedUser(t, "maya@test.local", 100)
	rt := env.seedRoomType(t, "Meeting Room", 15, 2)

	// Five cancellations already on record this month.
	now := time.Now()
	var inst domain.RoomInstance
	env.db.First(&inst)
	for i := 0; i < 5; i++ {
		old := domain.Booking{
			RoomInstanceID: inst.ID,
			UserID:         sub.UserID,
			StartTime:      now.Add(-time.Duration(i+1) * 24 * time.Hour),
			EndTime:        now.Add(-time.Duration(i+1)*24*time.Hour + time.Hour),
			Status:         domain.BookingCancelled,
			CreditsCharged: 15,
			CancelledAt:    &now,
		}
		if err := env.db.Create(&old).Error; err != nil {
			t.Fatalf("failed to seed cancelled booking: %v", err)
		}
	}

	start, end := futureWindow(24*time.Hour, time.Hour)
	b, err := env.service.Create(ctx, sub, CreateBookingRequest{RoomTypeID: rt.ID, StartTime: start, EndTime: end})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	_, err = env.service.Cancel(ctx, sub, b.ID)
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}
}

func TestCancelTwiceRefundsOnce(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	sub := env.seedUser(t, "maya@test.local", 100)
	rt := env.seedRoomType(t, "Meeting Room", 15, 1)

	start, end := futureWindow(24*time.Hour, time.Hour)
	b, err := env.service.Create(ctx, sub, CreateBookingRequest{RoomTypeID: rt.ID, StartTime: start, EndTime: end})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if _, err := env.service.Cancel(ctx, sub, b.ID); err != nil {
		t.Fatalf("first Cancel returned error: %v", err)
	}
	_, err = env.service.Cancel(ctx, sub, b.ID)
	if !errors.Is(err, ErrNotConfirmed) {
		t.Fatalf("expected ErrNotConfirmed on second cancel, got %v", err)
	}
	if got := env.balance(t, sub); got != 100 {
		t.Fatalf("expected exactly one refund, balance 100, got %d", got)
	}
}

func TestCancelNotOwnerReadsAsNotFound(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	owner := env.seedUser(t, "owner@test.local", 100)
	other := env.seedUser(t, "other@test.local", 100)
	rt := env.seedRoomType(t, "Meeting Room", 15, 1)

	start, end := futureWindow(24*time.Hour, time.Hour)
	b, err := env.service.Create(ctx, owner, CreateBookingRequest{RoomTypeID: rt.ID, StartTime: start, EndTime: end})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	_, err = env.service.Cancel(ctx, other, b.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for non-owner, got %v", err)
	}
}

func TestRescheduleSettlesDelta(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	sub := env.seedUser(t, "maya@test.local", 100)
	cheap := env.seedRoomType(t, "Focus Booth", 15, 1)
	pricey := env.seedRoomType(t, "Conference Hall", 40, 1)

	start, end := futureWindow(24*time.Hour, time.Hour)
	b, err := env.service.Create(ctx, sub, CreateBookingRequest{RoomTypeID: cheap.ID, StartTime: start, EndTime: end})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if got := env.balance(t, sub); got != 85 {
		t.Fatalf("expected balance 85 after create, got %d", got)
	}

	newStart, newEnd := futureWindow(48*time.Hour, time.Hour)
	moved, err := env.service.Reschedule(ctx, sub, b.ID, RescheduleRequest{
		NewRoomTypeID: pricey.ID,
		NewStartTime:  newStart,
		NewEndTime:    newEnd,
	})
	if err != nil {
		t.Fatalf("Reschedule returned error: %v", err)
	}

	if moved.ID != b.ID {
		t.Fatalf("expected the same booking row, got id %d and %d", b.ID, moved.ID)
	}
	if moved.Status != domain.BookingConfirmed {
		t.Fatalf("expected CONFIRMED after reschedule, got %s", moved.Status)
	}
	if moved.CreditsCharged != 40 {
		t.Fatalf("expected credits_charged 40, got %d", moved.CreditsCharged)
	}
	// 15 back, 40 out: 85 - 25 = 60.
	if got := env.balance(t, sub); got != 60 {
		t.Fatalf("expected balance 60 after upgrade, got %d", got)
	}

	// Moving back down refunds the difference.
	backStart, backEnd := futureWindow(26*time.Hour, time.Hour)
	moved, err = env.service.Reschedule(ctx, sub, b.ID, RescheduleRequest{
		NewRoomTypeID: cheap.ID,
		NewStartTime:  backStart,
		NewEndTime:    backEnd,
	})
	if err != nil {
		t.Fatalf("Reschedule back returned error: %v", err)
	}
	if moved.CreditsCharged != 15 {
		t.Fatalf("expected credits_charged 15, got %d", moved.CreditsCharged)
	}
	if got := env.balance(t, sub); got != 85 {
		t.Fatalf("expected balance 85 after downgrade, got %d", got)
	}
}

func TestRescheduleOwnReservationDoesNotBlock(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	sub := env.seedUser(t, "maya@test.local", 100)
	rt := env.seedRoomType(t, "Focus Booth", 5, 1)

	start, end := futureWindow(24*time.Hour, time.Hour)
	b, err := env.service.Create(ctx, sub, CreateBookingRequest{RoomTypeID: rt.ID, StartTime: start, EndTime: end})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	// Shifting 30 minutes overlaps the booking's own current window; only the
	// single instance exists, so the allocation must ignore it.
	moved, err := env.service.Reschedule(ctx, sub, b.ID, RescheduleRequest{
		NewRoomTypeID: rt.ID,
		NewStartTime:  start.Add(30 * time.Minute),
		NewEndTime:    end.Add(30 * time.Minute),
	})
	if err != nil {
		t.Fatalf("Reschedule returned error: %v", err)
	}
	if moved.RoomInstanceID != b.RoomInstanceID {
		t.Fatalf("expected the same instance, got %d and %d", b.RoomInstanceID, moved.RoomInstanceID)
	}
	if got := env.balance(t, sub); got != 95 {
		t.Fatalf("expected balance unchanged by same-price reschedule, got %d", got)
	}
}

func TestRescheduleNoAvailabilityRollsBack(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	sub := env.seedUser(t, "maya@test.local", 100)
	other := env.seedUser(t, "other@test.local", 100)
	rt := env.seedRoomType(t, "Focus Booth", 5, 1)

	start, end := futureWindow(24*time.Hour, time.Hour)
	b, err := env.service.Create(ctx, sub, CreateBookingRequest{RoomTypeID: rt.ID, StartTime: start, EndTime: end})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	takenStart, takenEnd := futureWindow(48*time.Hour, time.Hour)
	if _, err := env.service.Create(ctx, other, CreateBookingRequest{RoomTypeID: rt.ID, StartTime: takenStart, EndTime: takenEnd}); err != nil {
		t.Fatalf("other user's Create returned error: %v", err)
	}

	_, err = env.service.Reschedule(ctx, sub, b.ID, RescheduleRequest{
		NewRoomTypeID: rt.ID,
		NewStartTime:  takenStart,
		NewEndTime:    takenEnd,
	})
	if !errors.Is(err, ErrNoAvailability) {
		t.Fatalf("expected ErrNoAvailability, got %v", err)
	}

	// The original reservation survives untouched.
	var fresh domain.Booking
	if err := env.db.First(&fresh, b.ID).Error; err != nil {
		t.Fatalf("failed to reload booking: %v", err)
	}
	if !fresh.StartTime.Equal(b.StartTime) || fresh.Status != domain.BookingConfirmed {
		t.Fatalf("expected original window kept, got start %v status %s", fresh.StartTime, fresh.Status)
	}
	if got := env.balance(t, sub); got != 95 {
		t.Fatalf("expected balance unchanged, got %d", got)
	}
}

func TestAdminCancelRefundsOwner(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()
	owner := env.seedUser(t, "owner@test.local", 100)
	rt := env.seedRoomType(t, "Meeting Room", 15, 1)

	// Starts in 10 minutes: the owner could no longer cancel this.
	start, end := futureWindow(10*time.Minute, time.Hour)
	b, err := env.service.Create(ctx, owner, CreateBookingRequest{RoomTypeID: rt.ID, StartTime: start, EndTime: end})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	cancelled, err := env.service.CancelAny(ctx, b.ID)
	if err != nil {
		t.Fatalf("CancelAny returned error: %v", err)
	}
	if cancelled.Status != domain.BookingCancelled {
		t.Fatalf("expected CANCELLED, got %s", cancelled.Status)
	}
	if got := env.balance(t, owner); got != 100 {
		t.Fatalf("expected refund to the owner, balance 100, got %d", got)
	}
}
