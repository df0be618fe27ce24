package service

import (
	"context"
	"errors"
	"time"

	"github.com/copia-dashboard/internal/config"
	"github.com/copia-dashboard/internal/domain/ledger"
	"github.com/copia-dashboard/internal/ledgerapi"
	"github.com/google/uuid"
)

// CheckoutView is everything the checkout page needs: the bill, whether it
// has already been processed (actions disabled, informational message), and
// where plus when to send the user afterwards.
type CheckoutView struct {
	Bill             ledger.Bill
	AlreadyProcessed bool
	RedirectURL      string
	RedirectDelay    time.Duration
}

// CheckoutServiceImpl implements CheckoutService. Bill lookups go straight
// to the ledger: a bill's state must never be served stale from a cache,
// and approve/decline are one-shot mutations that are never retried.
type CheckoutServiceImpl struct {
	client LedgerClient
	cfg    config.CheckoutConfig
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(client LedgerClient, cfg config.CheckoutConfig) CheckoutService {
	return &CheckoutServiceImpl{
		client: client,
		cfg:    cfg,
	}
}

// GetCheckout loads the bill behind a checkout link.
func (s *CheckoutServiceImpl) GetCheckout(ctx context.Context, id uuid.UUID) (CheckoutView, error) {
	bill, err := s.client.Bill(ctx, id)
	if err != nil {
		return CheckoutView{}, err
	}
	return s.view(ctx, bill, bill.Processed()), nil
}

// Approve transitions the bill to APPROVED.
func (s *CheckoutServiceImpl) Approve(ctx context.Context, id uuid.UUID) (CheckoutView, error) {
	return s.transition(ctx, id, s.client.ApproveBill)
}

// Decline transitions the bill to DECLINED.
func (s *CheckoutServiceImpl) Decline(ctx context.Context, id uuid.UUID) (CheckoutView, error) {
	return s.transition(ctx, id, s.client.DeclineBill)
}

// transition runs one bill action. A concurrent or earlier transition that
// already processed the bill is a valid terminal state: the current bill is
// re-fetched and reported with AlreadyProcessed set, not as an error.
func (s *CheckoutServiceImpl) transition(ctx context.Context, id uuid.UUID, action func(context.Context, uuid.UUID) (ledger.Bill, error)) (CheckoutView, error) {
	bill, err := action(ctx, id)
	if err != nil {
		if errors.Is(err, ledgerapi.ErrBillProcessed) {
			current, lookupErr := s.client.Bill(ctx, id)
			if lookupErr != nil {
				return CheckoutView{}, lookupErr
			}
			return s.view(ctx, current, true), nil
		}
		return CheckoutView{}, err
	}
	// The transition just succeeded; the terminal status on the returned
	// bill is the fresh result, not an already-processed case.
	return s.view(ctx, bill, false), nil
}

// view assembles the checkout view, resolving the post-action redirect to
// the bill's project URL or the configured default.
func (s *CheckoutServiceImpl) view(ctx context.Context, bill ledger.Bill, alreadyProcessed bool) CheckoutView {
	redirect := s.cfg.DefaultRedirectURL
	if bill.RedirectURL != "" {
		redirect = string(bill.RedirectURL)
	} else if project, err := s.client.Project(ctx, bill.Project); err == nil && project.RedirectURL != "" {
		redirect = string(project.RedirectURL)
	}

	return CheckoutView{
		Bill:             bill,
		AlreadyProcessed: alreadyProcessed,
		RedirectURL:      redirect,
		RedirectDelay:    s.cfg.RedirectDelay,
	}
}
