package credits

import (
	"context"
	"errors"
	"fmt"
	"testing"

	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"workspace/internal/domain"

	_ "modernc.org/sqlite"
)

func setupTestLedger(t *testing.T) (*Ledger, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:ledger_test_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: dsn}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := db.AutoMigrate(&domain.Organization{}, &domain.User{}, &CreditTransaction{}); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}
	return NewLedger(db), db
}

func seedUser(t *testing.T, db *gorm.DB, balance int64) *domain.User {
	t.Helper()
	u := &domain.User{
		Name:              "Test User",
		Email:             fmt.Sprintf("%s@test.local", t.Name()),
		Role:              domain.RoleIndividualUser,
		IndividualCredits: balance,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return u
}

func seedOrg(t *testing.T, db *gorm.DB, pool int64) *domain.Organization {
	t.Helper()
	o := &domain.Organization{Name: "Test Org", CreditsPool: pool}
	if err := db.Create(o).Error; err != nil {
		t.Fatalf("failed to seed organization: %v", err)
	}
	return o
}

func TestDebitAndCreditFlow(t *testing.T) {
	ledger, db := setupTestLedger(t)
	ctx := context.Background()
	u := seedUser(t, db, 100)
	ref := Individual(u.ID)

	err := db.Transaction(func(tx *gorm.DB) error {
		return ledger.Debit(tx, ref, 40, nil)
	})
	if err != nil {
		t.Fatalf("Debit returned error: %v", err)
	}

	balance, err := ledger.Balance(ctx, ref)
	if err != nil {
		t.Fatalf("Balance returned error: %v", err)
	}
	if balance != 60 {
		t.Fatalf("expected balance 60, got %d", balance)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		return ledger.Credit(tx, ref, 40, nil)
	})
	if err != nil {
		t.Fatalf("Credit returned error: %v", err)
	}

	balance, err = ledger.Balance(ctx, ref)
	if err != nil {
		t.Fatalf("Balance returned error: %v", err)
	}
	if balance != 100 {
		t.Fatalf("expected balance 100, got %d", balance)
	}

	txns, err := ledger.ListTransactions(ctx, ref)
	if err != nil {
		t.Fatalf("ListTransactions returned error: %v", err)
	}
	if len(txns) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txns))
	}
}

func TestDebitRejectsNonPositiveAmount(t *testing.T) {
	ledger, db := setupTestLedger(t)
	u := seedUser(t, db, 100)

	err := db.Transaction(func(tx *gorm.DB) error {
		return ledger.Debit(tx, Individual(u.ID), 0, nil)
	})
	if !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
}

func TestDebitInsufficientFundsLeavesNoTrace(t *testing.T) {
	ledger, db := setupTestLedger(t)
	ctx := context.Background()
	u := seedUser(t, db, 30)
	ref := Individual(u.ID)

	err := db.Transaction(func(tx *gorm.DB) error {
		return ledger.Debit(tx, ref, 31, nil)
	})
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}

	balance, err := ledger.Balance(ctx, ref)
	if err != nil {
		t.Fatalf("Balance returned error: %v", err)
	}
	if balance != 30 {
		t.Fatalf("expected balance unchanged at 30, got %d", balance)
	}

	txns, err := ledger.ListTransactions(ctx, ref)
	if err != nil {
		t.Fatalf("ListTransactions returned error: %v", err)
	}
	if len(txns) != 0 {
		t.Fatalf("expected no journal rows, got %d", len(txns))
	}
}

func TestDebitExactBalanceToZero(t *testing.T) {
	ledger, db := setupTestLedger(t)
	u := seedUser(t, db, 50)
	ref := Individual(u.ID)

	err := db.Transaction(func(tx *gorm.DB) error {
		return ledger.Debit(tx, ref, 50, nil)
	})
	if err != nil {
		t.Fatalf("Debit returned error: %v", err)
	}

	balance, err := ledger.Balance(context.Background(), ref)
	if err != nil {
		t.Fatalf("Balance returned error: %v", err)
	}
	if balance != 0 {
		t.Fatalf("expected balance 0, got %d", balance)
	}
}

func TestOrganizationalAccountMutations(t *testing.T) {
	ledger, db := setupTestLedger(t)
	ctx := context.Background()
	o := seedOrg(t, db, 200)
	ref := Organizational(o.ID)

	err := db.Transaction(func(tx *gorm.DB) error {
		return ledger.Debit(tx, ref, 150, nil)
	})
	if err != nil {
		t.Fatalf("Debit returned error: %v", err)
	}

	balance, err := ledger.Balance(ctx, ref)
	if err != nil {
		t.Fatalf("Balance returned error: %v", err)
	}
	if balance != 50 {
		t.Fatalf("expected pool 50, got %d", balance)
	}

	txns, err := ledger.ListTransactions(ctx, ref)
	if err != nil {
		t.Fatalf("ListTransactions returned error: %v", err)
	}
	if len(txns) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txns))
	}
	if txns[0].AccountKind != string(AccountOrganizational) {
		t.Fatalf("expected organizational journal row, got %s", txns[0].AccountKind)
	}
	if txns[0].Amount != -150 {
		t.Fatalf("expected journal amount -150, got %d", txns[0].Amount)
	}
}

func TestAdjustDeltaZeroIsNoOp(t *testing.T) {
	ledger, db := setupTestLedger(t)
	u := seedUser(t, db, 10)
	ref := Individual(u.ID)

	err := db.Transaction(func(tx *gorm.DB) error {
		return ledger.AdjustDelta(tx, ref, 0, nil)
	})
	if err != nil {
		t.Fatalf("AdjustDelta returned error: %v", err)
	}

	txns, err := ledger.ListTransactions(context.Background(), ref)
	if err != nil {
		t.Fatalf("ListTransactions returned error: %v", err)
	}
	if len(txns) != 0 {
		t.Fatalf("expected no journal rows for zero delta, got %d", len(txns))
	}
}

func TestAdjustDeltaNegativeEnforcesFloor(t *testing.T) {
	ledger, db := setupTestLedger(t)
	u := seedUser(t, db, 10)
	ref := Individual(u.ID)

	err := db.Transaction(func(tx *gorm.DB) error {
		return ledger.AdjustDelta(tx, ref, -11, nil)
	})
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("expected ErrInsufficientFunds, got %v", err)
	}
}

func TestAssignTriesUserThenOrganization(t *testing.T) {
	ledger, db := setupTestLedger(t)
	ctx := context.Background()
	u := seedUser(t, db, 5)

	ref, balance, err := ledger.Assign(ctx, u.ID, 20)
	if err != nil {
		t.Fatalf("Assign returned error: %v", err)
	}
	if ref.Kind != AccountIndividual {
		t.Fatalf("expected individual account, got %s", ref.Kind)
	}
	if balance != 25 {
		t.Fatalf("expected balance 25, got %d", balance)
	}

	// An org whose id does not collide with any user id resolves as org.
	o := &domain.Organization{ID: u.ID + 1000, Name: "Acme"}
	if err := db.Create(o).Error; err != nil {
		t.Fatalf("failed to seed organization: %v", err)
	}

	ref, balance, err = ledger.Assign(ctx, o.ID, 70)
	if err != nil {
		t.Fatalf("Assign returned error: %v", err)
	}
	if ref.Kind != AccountOrganizational {
		t.Fatalf("expected organizational account, got %s", ref.Kind)
	}
	if balance != 70 {
		t.Fatalf("expected pool 70, got %d", balance)
	}
}

func TestAssignUnknownIDFails(t *testing.T) {
	ledger, _ := setupTestLedger(t)

	_, _, err := ledger.Assign(context.Background(), 424242, 10)
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}
