package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/copia-dashboard/internal/config"
	"github.com/copia-dashboard/internal/dashboard/middleware"
	"github.com/copia-dashboard/internal/dashboard/service"
	"github.com/copia-dashboard/internal/ledgerapi"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CheckoutHandler handles HTTP requests for the bill approval flow
type CheckoutHandler struct {
	checkoutService service.CheckoutService
	logger          *slog.Logger
	homeURL         string
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(logger *slog.Logger, checkoutService service.CheckoutService, cfg config.CheckoutConfig) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		logger:          logger,
		homeURL:         cfg.DefaultRedirectURL,
	}
}

// Get loads the bill behind a checkout link
func (h *CheckoutHandler) Get(c *gin.Context) {
	id, ok := h.billID(c, c.Query("id"))
	if !ok {
		return
	}

	view, err := h.checkoutService.GetCheckout(c.Request.Context(), id)
	if err != nil {
		h.respondCheckoutError(c, id, err)
		return
	}

	RespondOK(c, mapCheckout(view, amountTag(c)))
}

// Approve handles the approve action on a bill. An already-processed bill
// comes back as a 200 with AlreadyProcessed set, never as an error: the page
// shows an informational message with the actions disabled.
func (h *CheckoutHandler) Approve(c *gin.Context) {
	h.doTransition(c, h.checkoutService.Approve)
}

// Decline handles the decline action on a bill, with the same
// already-processed semantics as Approve
func (h *CheckoutHandler) Decline(c *gin.Context) {
	h.doTransition(c, h.checkoutService.Decline)
}

func (h *CheckoutHandler) doTransition(c *gin.Context, action func(context.Context, uuid.UUID) (service.CheckoutView, error)) {
	id, ok := h.billID(c, c.Param("id"))
	if !ok {
		return
	}

	view, err := action(c.Request.Context(), id)
	if err != nil {
		h.respondCheckoutError(c, id, err)
		return
	}

	RespondOK(c, mapCheckout(view, amountTag(c)))
}

// billID parses the bill id, failing the request itself when it is missing
// or malformed. A checkout link without a usable id is a dead end the user
// cannot fix on this page, so the error body carries a way home rather than
// just a status code.
func (h *CheckoutHandler) billID(c *gin.Context, raw string) (uuid.UUID, bool) {
	if raw == "" {
		h.respondDeadEnd(c, http.StatusBadRequest, "BAD_REQUEST",
			"This checkout link is missing its bill id. Check the link you were given, or head back home.")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		h.logger.Warn("Malformed bill id on checkout link", "id", raw)
		h.respondDeadEnd(c, http.StatusBadRequest, "BAD_REQUEST",
			"This checkout link is not valid. Check the link you were given, or head back home.")
		return uuid.Nil, false
	}
	return id, true
}

func (h *CheckoutHandler) respondDeadEnd(c *gin.Context, statusCode int, code, message string) {
	response := &Response{
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
			HomeURL: h.homeURL,
		},
	}
	response.CorrelationID = middleware.GetCorrelationID(c)
	c.JSON(statusCode, response)
}

func (h *CheckoutHandler) respondCheckoutError(c *gin.Context, id uuid.UUID, err error) {
	if errors.Is(err, ledgerapi.ErrNotFound) {
		h.respondDeadEnd(c, http.StatusNotFound, "NOT_FOUND",
			"This bill does not exist. It may have been cancelled, or the link may be wrong.")
		return
	}
	h.logger.Error("Checkout action failed", "bill_id", id, "error", err)
	RespondLedgerError(c, err)
}
