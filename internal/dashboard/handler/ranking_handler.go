package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/copia-dashboard/internal/dashboard/service"
	"github.com/copia-dashboard/internal/domain/ledger"
	"github.com/gin-gonic/gin"
)

// RankingHandler handles HTTP requests for ranking pages
type RankingHandler struct {
	rankingService service.RankingService
	logger         *slog.Logger
}

// NewRankingHandler creates a new ranking handler
func NewRankingHandler(logger *slog.Logger, rankingService service.RankingService) *RankingHandler {
	return &RankingHandler{
		rankingService: rankingService,
		logger:         logger,
	}
}

// RankingParams represents the query parameters of a ranking page. Width is
// the client viewport hint deciding the podium arrangement.
type RankingParams struct {
	Period string `form:"period,default=7days"`
	Order  string `form:"order"`
	Limit  int    `form:"limit"`
	Width  int    `form:"width"`
	Podium bool   `form:"podium,default=true"`
}

// Get serves one ranking page. A request without an order parameter is
// redirected to the same URL with order=desc appended, so every ranking URL
// a user can share or bookmark names its sort direction explicitly.
func (h *RankingHandler) Get(c *gin.Context) {
	var params RankingParams
	if err := c.ShouldBindQuery(&params); err != nil {
		RespondBadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	if params.Order == "" {
		q := c.Request.URL.Query()
		q.Set("order", string(ledger.RankingOrderDesc))
		c.Request.URL.RawQuery = q.Encode()
		c.Redirect(http.StatusTemporaryRedirect, c.Request.URL.String())
		return
	}

	query := ledger.RankingQuery{
		Entity: ledger.RankingEntity(c.Param("entity")),
		Metric: ledger.RankingMetric(c.Param("metric")),
		Period: ledger.RankingPeriod(params.Period),
		Order:  ledger.RankingOrder(params.Order),
		Limit:  params.Limit,
	}
	layout := service.RankingLayout{
		Width:  params.Width,
		Podium: params.Podium,
	}

	view, err := h.rankingService.GetRanking(c.Request.Context(), query, layout)
	if err != nil {
		if errors.Is(err, ledger.ErrInvalidRankingQuery) {
			RespondBadRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to get ranking",
			"entity", query.Entity, "metric", query.Metric, "period", query.Period, "error", err)
		RespondLedgerError(c, err)
		return
	}

	RespondOK(c, mapRanking(view, amountTag(c)))
}
