package ledger

import (
	"time"

	"github.com/copia-dashboard/internal/domain/copia"
	"github.com/copia-dashboard/internal/domain/entity"
	"github.com/google/uuid"
)

// BillStatus tracks a bill through its single allowed transition.
type BillStatus string

const (
	BillStatusPending  BillStatus = "PENDING"
	BillStatusApproved BillStatus = "APPROVED"
	BillStatusDeclined BillStatus = "DECLINED"
)

// Bill is a pending request for a user to pay a project. Only the addressed
// user may approve or decline it, exactly once; APPROVED and DECLINED are
// terminal.
type Bill struct {
	ID          uuid.UUID          `json:"id"`
	Project     entity.ProjectName `json:"project"`
	User        entity.UserName    `json:"user"`
	Amount      copia.Copia        `json:"amount"`
	Description string             `json:"description,omitempty"`
	Status      BillStatus         `json:"status"`
	RedirectURL entity.Url         `json:"redirect_url,omitempty"`
	CreatedAt   time.Time          `json:"created_at"`
}

// Processed reports whether the bill has already reached a terminal state.
// A processed bill is a valid informational state for the checkout page,
// not an error.
func (b Bill) Processed() bool {
	return b.Status == BillStatusApproved || b.Status == BillStatusDeclined
}
