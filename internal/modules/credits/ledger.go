package credits

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"workspace/internal/domain"
)

// Ledger is the sole mutator of credit balances. Debit, Credit and
// AdjustDelta run on the caller's transaction handle: the ledger has no
// transaction boundary of its own, the booking lifecycle owns it. The account
// row is locked for update before the balance is read, so concurrent
// mutations of the same account serialize on the row lock.
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// Debit subtracts amount from the account, rejecting any mutation that would
// drive the balance negative.
func (l *Ledger) Debit(tx *gorm.DB, ref AccountRef, amount int64, bookingID *int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	return l.apply(tx, ref, -amount, TransactionTypeDebit, bookingID)
}

// Credit adds amount back to the account. Refunds are not bounded above.
func (l *Ledger) Credit(tx *gorm.DB, ref AccountRef, amount int64, bookingID *int64) error {
	if amount <= 0 {
		return ErrInvalidAmount
	}
	return l.apply(tx, ref, amount, TransactionTypeRefund, bookingID)
}

// AdjustDelta applies old_cost - new_cost in one step during reschedule.
// A negative delta still enforces the non-negative balance invariant.
func (l *Ledger) AdjustDelta(tx *gorm.DB, ref AccountRef, delta int64, bookingID *int64) error {
	if delta == 0 {
		return nil
	}
	return l.apply(tx, ref, delta, TransactionTypeAdjust, bookingID)
}

func (l *Ledger) apply(tx *gorm.DB, ref AccountRef, delta int64, txnType string, bookingID *int64) error {
	balance, err := lockBalance(tx, ref)
	if err != nil {
		return err
	}

	next := balance + delta
	if next < 0 {
		return ErrInsufficientFunds
	}

	if err := updateBalance(tx, ref, next); err != nil {
		return err
	}

	txn := CreditTransaction{
		AccountKind: string(ref.Kind),
		AccountID:   ref.ID,
		BookingID:   bookingID,
		Amount:      delta,
		Type:        txnType,
	}
	return tx.Create(&txn).Error
}

// Balance reads the current balance without locking.
func (l *Ledger) Balance(ctx context.Context, ref AccountRef) (int64, error) {
	return readBalance(l.db.WithContext(ctx), ref)
}

// Assign is the admin grant: the id is tried as a user first, then as an
// organization. Runs in its own transaction.
func (l *Ledger) Assign(ctx context.Context, id int64, amount int64) (AccountRef, int64, error) {
	if amount <= 0 {
		return AccountRef{}, 0, ErrInvalidAmount
	}

	var ref AccountRef
	var balance int64

	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ref = Individual(id)
		current, err := lockBalance(tx, ref)
		if errors.Is(err, ErrAccountNotFound) {
			ref = Organizational(id)
			current, err = lockBalance(tx, ref)
		}
		if err != nil {
			return err
		}

		balance = current + amount
		if err := updateBalance(tx, ref, balance); err != nil {
			return err
		}

		txn := CreditTransaction{
			AccountKind: string(ref.Kind),
			AccountID:   ref.ID,
			Amount:      amount,
			Type:        TransactionTypeGrant,
		}
		return tx.Create(&txn).Error
	})
	if err != nil {
		return AccountRef{}, 0, err
	}
	return ref, balance, nil
}

// ListTransactions returns the journal for one account, newest first.
func (l *Ledger) ListTransactions(ctx context.Context, ref AccountRef) ([]CreditTransaction, error) {
	var txns []CreditTransaction
	err := l.db.WithContext(ctx).
		Where("account_kind = ? AND account_id = ?", string(ref.Kind), ref.ID).
		Order("created_at desc").
		Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}

func lockBalance(tx *gorm.DB, ref AccountRef) (int64, error) {
	locked := tx.Clauses(clause.Locking{Strength: "UPDATE"})
	return balanceFrom(locked, ref)
}

func readBalance(tx *gorm.DB, ref AccountRef) (int64, error) {
	return balanceFrom(tx, ref)
}

func balanceFrom(tx *gorm.DB, ref AccountRef) (int64, error) {
	switch ref.Kind {
	case AccountIndividual:
		var u domain.User
		if err := tx.Select("id", "individual_credits").First(&u, ref.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, ErrAccountNotFound
			}
			return 0, err
		}
		return u.IndividualCredits, nil
	case AccountOrganizational:
		var o domain.Organization
		if err := tx.Select("id", "credits_pool").First(&o, ref.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, ErrAccountNotFound
			}
			return 0, err
		}
		return o.CreditsPool, nil
	}
	return 0, ErrAccountNotFound
}

func updateBalance(tx *gorm.DB, ref AccountRef, balance int64) error {
	switch ref.Kind {
	case AccountIndividual:
		return tx.Model(&domain.User{}).Where("id = ?", ref.ID).
			Update("individual_credits", balance).Error
	case AccountOrganizational:
		return tx.Model(&domain.Organization{}).Where("id = ?", ref.ID).
			Update("credits_pool", balance).Error
	}
	return ErrAccountNotFound
}
