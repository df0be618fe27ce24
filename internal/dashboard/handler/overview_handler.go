package handler

import (
	"errors"
	"log/slog"

	"github.com/copia-dashboard/internal/dashboard/service"
	"github.com/copia-dashboard/internal/domain/entity"
	"github.com/copia-dashboard/internal/domain/ledger"
	"github.com/copia-dashboard/internal/ledgerapi"
	"github.com/copia-dashboard/internal/suspend"
	"github.com/gin-gonic/gin"
)

// OverviewHandler handles HTTP requests for the dashboard overview
type OverviewHandler struct {
	overviewService service.OverviewService
	logger          *slog.Logger
}

// NewOverviewHandler creates a new overview handler
func NewOverviewHandler(logger *slog.Logger, overviewService service.OverviewService) *OverviewHandler {
	return &OverviewHandler{
		overviewService: overviewService,
		logger:          logger,
	}
}

// Get assembles the overview page. Each section resolves independently: a
// failed or still-pending card is reported inside its section while the rest
// of the page renders, so the response is always 200.
func (h *OverviewHandler) Get(c *gin.Context) {
	overview := h.overviewService.GetOverview(c.Request.Context())
	tag := amountTag(c)

	response := OverviewResponse{
		User: mapSection(overview.User, func(u ledger.User) interface{} {
			return mapUser(u, tag)
		}),
		Projects: mapSection(overview.Projects, func(ps []ledger.Project) interface{} {
			out := make([]ProjectResponse, 0, len(ps))
			for _, p := range ps {
				out = append(out, mapProject(p, tag))
			}
			return out
		}),
		Recent: mapSection(overview.Recent, func(ts []ledger.Transaction) interface{} {
			out := make([]TransactionResponse, 0, len(ts))
			for _, t := range ts {
				out = append(out, mapTransaction(t, tag))
			}
			return out
		}),
		Stats: mapSection(overview.Stats, func(s service.Stats) interface{} {
			return StatsResponse{
				UserCount:        s.UserCount,
				ProjectCount:     s.ProjectCount,
				TransactionCount: s.TransactionCount,
			}
		}),
	}

	for _, section := range []SectionResponse{response.User, response.Projects, response.Recent, response.Stats} {
		if section.Error != "" {
			h.logger.Warn("Overview section failed", "state", section.State, "error", section.Error)
		}
	}

	// Rejected credentials fail every card the same way; surface the log-in
	// prompt instead of four broken sections.
	for _, err := range []error{overview.User.Err, overview.Projects.Err, overview.Recent.Err, overview.Stats.Err} {
		if errors.Is(err, ledgerapi.ErrUnauthorized) {
			RespondLedgerError(c, err)
			return
		}
	}

	RespondOK(c, response)
}

// BalanceSeries charts one user's running balance
func (h *OverviewHandler) BalanceSeries(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		RespondBadRequest(c, "Missing user name")
		return
	}

	series, err := h.overviewService.BalanceSeries(c.Request.Context(), entity.UserName(name))
	if err != nil {
		if errors.Is(err, ledgerapi.ErrNotFound) {
			RespondNotFound(c, "User not found")
			return
		}
		h.logger.Error("Failed to build balance series", "user", name, "error", err)
		RespondLedgerError(c, err)
		return
	}

	tag := amountTag(c)
	points := make([]SeriesPointResponse, 0, len(series.Points))
	for _, p := range series.Points {
		points = append(points, SeriesPointResponse{
			Day:     p.Day.Format("2006-01-02"),
			Label:   p.Label,
			Balance: mapAmount(p.Balance, tag),
		})
	}

	RespondOK(c, BalanceSeriesResponse{
		User:   string(series.User),
		Points: points,
		NoData: len(points) == 0,
	})
}

// mapSection translates one service section into its wire form. Data and
// Error are mutually exclusive; a pending section carries neither.
func mapSection[T any](s service.Section[T], mapData func(T) interface{}) SectionResponse {
	resp := SectionResponse{State: s.State.String()}
	switch s.State {
	case suspend.Fulfilled:
		resp.Data = mapData(s.Data)
	case suspend.Rejected:
		resp.Error = s.Err.Error()
	}
	return resp
}
