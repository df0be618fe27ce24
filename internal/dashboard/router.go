package dashboard

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/copia-dashboard/internal/dashboard/handler"
	"github.com/copia-dashboard/internal/dashboard/middleware"
	"github.com/gin-gonic/gin"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	overviewHandler *handler.OverviewHandler,
	rankingHandler *handler.RankingHandler,
	checkoutHandler *handler.CheckoutHandler,
	projectHandler *handler.ProjectHandler,
) {
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CorrelationID())

	// API v1 endpoints
	v1 := r.Group("/api/v1")
	{
		v1.GET("/dashboard", overviewHandler.Get)

		// User balance history
		users := v1.Group("/users")
		{
			users.GET("/:name/balance-series", overviewHandler.BalanceSeries)
		}

		// Ranking pages
		rankings := v1.Group("/rankings")
		{
			rankings.GET("/:entity/:metric", rankingHandler.Get)
		}

		// Bill approval flow
		v1.GET("/checkout", checkoutHandler.Get)
		bills := v1.Group("/bills")
		{
			bills.POST("/:id/approve", checkoutHandler.Approve)
			bills.POST("/:id/decline", checkoutHandler.Decline)
		}

		// Project administration
		projects := v1.Group("/projects")
		{
			projects.POST("", projectHandler.Create)
			projects.POST("/:name/admins", projectHandler.AddAdmin)
			projects.DELETE("/:name/admins/:user", projectHandler.RemoveAdmin)
			projects.GET("/:name/api-clients", projectHandler.ListAPIClients)
			projects.POST("/:name/api-clients", projectHandler.CreateAPIClient)
			projects.DELETE("/:name/api-clients/:id", projectHandler.DeleteAPIClient)
		}
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
