package handler

import (
	"time"

	"github.com/copia-dashboard/internal/dashboard/service"
	"github.com/copia-dashboard/internal/domain/copia"
	"github.com/copia-dashboard/internal/domain/entity"
	"github.com/copia-dashboard/internal/domain/ledger"
	"github.com/copia-dashboard/internal/ranking"
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

// AmountResponse carries an amount in every form the UI needs: the compact
// K/M/B badge text, the exact grouped figure for its hover title, and the
// raw integer for client-side math.
type AmountResponse struct {
	Compact string `json:"compact"`
	Exact   string `json:"exact"`
	Raw     string `json:"raw"`
}

// EntityResponse represents a transaction or ranking party in API responses
type EntityResponse struct {
	Kind    string          `json:"kind"`
	Name    string          `json:"name"`
	Balance *AmountResponse `json:"balance,omitempty"`
}

// UserResponse represents a user in API responses
type UserResponse struct {
	Name      string         `json:"name"`
	Balance   AmountResponse `json:"balance"`
	Icon      string         `json:"icon,omitempty"`
	CreatedAt string         `json:"created_at"`
}

// ProjectResponse represents a project in API responses
type ProjectResponse struct {
	Name        string         `json:"name"`
	Balance     AmountResponse `json:"balance"`
	Icon        string         `json:"icon,omitempty"`
	RedirectURL string         `json:"redirect_url,omitempty"`
	Admins      []string       `json:"admins,omitempty"`
	CreatedAt   string         `json:"created_at"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Amount      AmountResponse `json:"amount"`
	User        string         `json:"user,omitempty"`
	Project     string         `json:"project,omitempty"`
	Description string         `json:"description,omitempty"`
	CreatedAt   string         `json:"created_at"`
}

// SectionResponse is one independently-loaded dashboard card: its state plus
// either the data or the failure message, never both
type SectionResponse struct {
	State string      `json:"state"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// StatsResponse represents the overview's stats card in API responses
type StatsResponse struct {
	UserCount        int `json:"user_count"`
	ProjectCount     int `json:"project_count"`
	TransactionCount int `json:"transaction_count"`
}

// OverviewResponse represents the dashboard overview in API responses
type OverviewResponse struct {
	User     SectionResponse `json:"user"`
	Projects SectionResponse `json:"projects"`
	Recent   SectionResponse `json:"recent_transactions"`
	Stats    SectionResponse `json:"stats"`
}

// SeriesPointResponse is one day on the balance chart
type SeriesPointResponse struct {
	Day     string         `json:"day"`
	Label   string         `json:"label"`
	Balance AmountResponse `json:"balance"`
}

// BalanceSeriesResponse represents a user's balance history in API responses.
// NoData distinguishes an empty history from a flat chart; the UI shows its
// empty state instead of axes.
type BalanceSeriesResponse struct {
	User   string                `json:"user"`
	Points []SeriesPointResponse `json:"points"`
	NoData bool                  `json:"no_data"`
}

// RankingItemResponse represents one ranked entry in API responses. Rank is
// the server-assigned rank, untouched by layout or truncation.
type RankingItemResponse struct {
	Rank   int             `json:"rank"`
	Key    string          `json:"key"`
	Trend  string          `json:"trend"`
	Diff   *int            `json:"diff,omitempty"`
	Entity EntityResponse  `json:"entity"`
	Score  *AmountResponse `json:"score,omitempty"`
}

// RankingResponse represents a composed ranking in API responses. Podium is
// in render order, which on wide viewports is 2nd, 1st, 3rd.
type RankingResponse struct {
	Entity string                `json:"entity"`
	Metric string                `json:"metric"`
	Period string                `json:"period"`
	Order  string                `json:"order"`
	State  string                `json:"state"`
	Podium []RankingItemResponse `json:"podium,omitempty"`
	List   []RankingItemResponse `json:"list,omitempty"`
}

// BillResponse represents a bill in API responses
type BillResponse struct {
	ID          string         `json:"id"`
	Project     string         `json:"project"`
	User        string         `json:"user"`
	Amount      AmountResponse `json:"amount"`
	Description string         `json:"description,omitempty"`
	Status      string         `json:"status"`
	CreatedAt   string         `json:"created_at"`
}

// CheckoutResponse represents the checkout page state in API responses.
// AlreadyProcessed true means the action buttons render disabled with an
// informational message instead of an error.
type CheckoutResponse struct {
	Bill             BillResponse `json:"bill"`
	AlreadyProcessed bool         `json:"already_processed"`
	RedirectURL      string       `json:"redirect_url"`
	RedirectDelayMS  int64        `json:"redirect_delay_ms"`
}

// APIClientResponse represents an API credential in API responses. Secret is
// only present on the create response.
type APIClientResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Secret    string `json:"secret,omitempty"`
	CreatedAt string `json:"created_at"`
}

// CreateProjectRequest represents a request to register a new project
type CreateProjectRequest struct {
	Name        string `json:"name" binding:"required"`
	RedirectURL string `json:"redirect_url,omitempty"`
}

// AdminRequest represents a request to grant or revoke project admin rights
type AdminRequest struct {
	User string `json:"user" binding:"required"`
}

// CreateAPIClientRequest represents a request to issue an API credential
type CreateAPIClientRequest struct {
	Name string `json:"name" binding:"required"`
}

// amountTag picks the formatting locale from the request's Accept-Language
// header, defaulting to English.
func amountTag(c *gin.Context) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(c.GetHeader("Accept-Language"))
	if err != nil || len(tags) == 0 {
		return language.English
	}
	return tags[0]
}

func mapAmount(a copia.Copia, tag language.Tag) AmountResponse {
	return AmountResponse{
		Compact: a.Compact(),
		Exact:   a.Grouped(tag),
		Raw:     a.String(),
	}
}

func mapEntity(e entity.Entity, tag language.Tag) EntityResponse {
	resp := EntityResponse{
		Kind: string(e.Kind),
		Name: e.Name(),
	}
	if e.Kind != entity.KindSystem {
		balance := mapAmount(e.Balance, tag)
		resp.Balance = &balance
	}
	return resp
}

func mapUser(u ledger.User, tag language.Tag) UserResponse {
	return UserResponse{
		Name:      string(u.Name),
		Balance:   mapAmount(u.Balance, tag),
		Icon:      string(u.Icon),
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
	}
}

func mapProject(p ledger.Project, tag language.Tag) ProjectResponse {
	admins := make([]string, 0, len(p.Admins))
	for _, a := range p.Admins {
		admins = append(admins, string(a))
	}
	return ProjectResponse{
		Name:        string(p.Name),
		Balance:     mapAmount(p.Balance, tag),
		Icon:        string(p.Icon),
		RedirectURL: string(p.RedirectURL),
		Admins:      admins,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
}

func mapTransaction(t ledger.Transaction, tag language.Tag) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID.String(),
		Type:        string(t.Type),
		Amount:      mapAmount(t.Amount, tag),
		User:        string(t.User),
		Project:     string(t.Project),
		Description: t.Description,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
	}
}

func mapBill(b ledger.Bill, tag language.Tag) BillResponse {
	return BillResponse{
		ID:          b.ID.String(),
		Project:     string(b.Project),
		User:        string(b.User),
		Amount:      mapAmount(b.Amount, tag),
		Description: b.Description,
		Status:      string(b.Status),
		CreatedAt:   b.CreatedAt.Format(time.RFC3339),
	}
}

func mapCheckout(view service.CheckoutView, tag language.Tag) CheckoutResponse {
	return CheckoutResponse{
		Bill:             mapBill(view.Bill, tag),
		AlreadyProcessed: view.AlreadyProcessed,
		RedirectURL:      view.RedirectURL,
		RedirectDelayMS:  view.RedirectDelay.Milliseconds(),
	}
}

func mapAPIClient(a ledger.APIClient) APIClientResponse {
	return APIClientResponse{
		ID:        a.ID.String(),
		Name:      a.Name,
		Secret:    a.Secret,
		CreatedAt: a.CreatedAt.Format(time.RFC3339),
	}
}

func mapRankingItems(items []ranking.Item[entity.Entity], tag language.Tag) []RankingItemResponse {
	if len(items) == 0 {
		return nil
	}
	out := make([]RankingItemResponse, 0, len(items))
	for _, it := range items {
		resp := RankingItemResponse{
			Rank:   it.Rank,
			Key:    it.Key,
			Trend:  it.Trend().String(),
			Diff:   it.Diff,
			Entity: mapEntity(it.Entity, tag),
		}
		if it.Score != nil {
			score := mapAmount(copia.FromBigInt(it.Score), tag)
			resp.Score = &score
		}
		out = append(out, resp)
	}
	return out
}

func mapRanking(view service.RankingView, tag language.Tag) RankingResponse {
	return RankingResponse{
		Entity: string(view.Query.Entity),
		Metric: string(view.Query.Metric),
		Period: string(view.Query.Period),
		Order:  string(view.Query.Order),
		State:  view.Composition.State.String(),
		Podium: mapRankingItems(view.Composition.Podium, tag),
		List:   mapRankingItems(view.Composition.List, tag),
	}
}
