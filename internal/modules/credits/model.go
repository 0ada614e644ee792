package credits

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	TransactionTypeDebit  = "DEBIT"
	TransactionTypeRefund = "REFUND"
	TransactionTypeAdjust = "ADJUST"
	TransactionTypeGrant  = "GRANT"
)

// CreditTransaction is the journal: one row per balance mutation, written in
// the same transaction as the mutation itself.
type CreditTransaction struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	AccountKind string    `json:"account_kind" gorm:"type:varchar(16);not null;index:idx_account"`
	AccountID   int64     `json:"account_id" gorm:"not null;index:idx_account"`
	BookingID   *int64    `json:"booking_id,omitempty" gorm:"index"`
	Amount      int64     `json:"amount" gorm:"not null"` // signed delta applied to the balance
	Type        string    `json:"type" gorm:"type:varchar(16);not null;check:type IN ('DEBIT','REFUND','ADJUST','GRANT')"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (CreditTransaction) TableName() string {
	return "credit_transactions"
}

func (t *CreditTransaction) BeforeCreate(_ *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
