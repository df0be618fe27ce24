// Package ledger holds the read-side records the dashboard consumes from the
// remote ledger API: transactions, bills, and ranking rows. All records are
// immutable once observed; the dashboard only ever reads lists of them.
package ledger

import (
	"time"

	"github.com/copia-dashboard/internal/domain/copia"
	"github.com/copia-dashboard/internal/domain/entity"
	"github.com/google/uuid"
)

// TransactionType discriminates how value moved.
type TransactionType string

const (
	// TransactionTypeTransfer moves value from a project to a user.
	TransactionTypeTransfer TransactionType = "TRANSFER"
	// TransactionTypeBillPayment moves value from a user to a project.
	TransactionTypeBillPayment TransactionType = "BILL_PAYMENT"
	// TransactionTypeSystem credits or debits a single party.
	TransactionTypeSystem TransactionType = "SYSTEM"
)

// Transaction is one settled movement of value. Amount is non-negative; the
// sign of the movement is implied by Type and the perspective of the viewer.
type Transaction struct {
	ID          uuid.UUID          `json:"id"`
	Type        TransactionType    `json:"type"`
	Amount      copia.Copia        `json:"amount"`
	CreatedAt   time.Time          `json:"created_at"`
	User        entity.UserName    `json:"user,omitempty"`
	Project     entity.ProjectName `json:"project,omitempty"`
	Description string             `json:"description,omitempty"`
}

// SignedAmount returns the delta this transaction applies to the charted
// party's balance: bill payments debit, everything else credits.
func (t Transaction) SignedAmount() copia.Copia {
	if t.Type == TransactionTypeBillPayment {
		return t.Amount.Neg()
	}
	return t.Amount
}
