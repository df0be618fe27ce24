// Package ledgerapi is the typed HTTP client for the remote Copia ledger
// API. The dashboard holds no ledger state of its own; every balance,
// transaction, bill, and ranking comes through this client. Reads are
// idempotent GETs; mutations (project create, admin changes, API-client
// create/delete, bill approve/decline) are one-shot calls that are never
// retried client-side.
package ledgerapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/copia-dashboard/internal/domain/entity"
	"github.com/copia-dashboard/internal/domain/ledger"
	"github.com/copia-dashboard/internal/requestid"
	"github.com/google/uuid"
)

// Config holds client configuration.
type Config struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client talks to the ledger API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New creates a ledger API client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("ledger API base URL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		token:      cfg.Token,
		httpClient: httpClient,
	}, nil
}

// envelope is the ledger API's uniform response shape.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta *struct {
		TotalItems int `json:"total_items"`
	} `json:"meta"`
}

// do issues one request and decodes the envelope. Non-2xx responses become
// *APIError carrying the server message when one was provided.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (*envelope, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if id := requestid.FromContext(ctx); id != "" {
		req.Header.Set(requestid.Header, id)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ledger API request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger API response: %w", err)
	}

	var env envelope
	if len(raw) > 0 {
		// A malformed body on an error status should not mask the status.
		if err := json.Unmarshal(raw, &env); err != nil && resp.StatusCode < 300 {
			return nil, fmt.Errorf("failed to decode ledger API response: %w", err)
		}
	}

	if resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
			apiErr.Message = env.Error.Message
		}
		return nil, apiErr
	}

	return &env, nil
}

// get decodes the data field of a GET response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	env, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	return decodeData(env, out)
}

func decodeData(env *envelope, out any) error {
	if out == nil {
		return nil
	}
	if len(env.Data) == 0 {
		return fmt.Errorf("ledger API response has no data")
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode ledger API data: %w", err)
	}
	return nil
}

// CurrentUser fetches the authenticated user.
func (c *Client) CurrentUser(ctx context.Context) (ledger.User, error) {
	var u ledger.User
	err := c.get(ctx, "/api/v1/users/me", nil, &u)
	return u, err
}

// Users lists all users.
func (c *Client) Users(ctx context.Context) ([]ledger.User, error) {
	var users []ledger.User
	err := c.get(ctx, "/api/v1/users", nil, &users)
	return users, err
}

// User fetches one user by name.
func (c *Client) User(ctx context.Context, name entity.UserName) (ledger.User, error) {
	var u ledger.User
	err := c.get(ctx, "/api/v1/users/"+url.PathEscape(string(name)), nil, &u)
	return u, err
}

// Projects lists all projects.
func (c *Client) Projects(ctx context.Context) ([]ledger.Project, error) {
	var projects []ledger.Project
	err := c.get(ctx, "/api/v1/projects", nil, &projects)
	return projects, err
}

// Project fetches one project by name.
func (c *Client) Project(ctx context.Context, name entity.ProjectName) (ledger.Project, error) {
	var p ledger.Project
	err := c.get(ctx, "/api/v1/projects/"+url.PathEscape(string(name)), nil, &p)
	return p, err
}

// CreateProject registers a new project. One-shot; not retried.
func (c *Client) CreateProject(ctx context.Context, name entity.ProjectName, redirectURL entity.Url) (ledger.Project, error) {
	var p ledger.Project
	env, err := c.do(ctx, http.MethodPost, "/api/v1/projects", nil, map[string]string{
		"name":         string(name),
		"redirect_url": string(redirectURL),
	})
	if err != nil {
		return p, err
	}
	err = decodeData(env, &p)
	return p, err
}

// AddAdmin grants a user admin rights on a project. One-shot; not retried.
func (c *Client) AddAdmin(ctx context.Context, project entity.ProjectName, user entity.UserName) error {
	path := "/api/v1/projects/" + url.PathEscape(string(project)) + "/admins"
	_, err := c.do(ctx, http.MethodPost, path, nil, map[string]string{"user": string(user)})
	return err
}

// RemoveAdmin revokes a user's admin rights on a project. One-shot.
func (c *Client) RemoveAdmin(ctx context.Context, project entity.ProjectName, user entity.UserName) error {
	path := "/api/v1/projects/" + url.PathEscape(string(project)) + "/admins/" + url.PathEscape(string(user))
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	return err
}

// APIClients lists a project's API credentials.
func (c *Client) APIClients(ctx context.Context, project entity.ProjectName) ([]ledger.APIClient, error) {
	var clients []ledger.APIClient
	path := "/api/v1/projects/" + url.PathEscape(string(project)) + "/api-clients"
	err := c.get(ctx, path, nil, &clients)
	return clients, err
}

// CreateAPIClient issues a new API credential for a project. The returned
// secret is shown once and never persisted here. One-shot; not retried.
func (c *Client) CreateAPIClient(ctx context.Context, project entity.ProjectName, name string) (ledger.APIClient, error) {
	var client ledger.APIClient
	path := "/api/v1/projects/" + url.PathEscape(string(project)) + "/api-clients"
	env, err := c.do(ctx, http.MethodPost, path, nil, map[string]string{"name": name})
	if err != nil {
		return client, err
	}
	err = decodeData(env, &client)
	return client, err
}

// DeleteAPIClient revokes an API credential. One-shot; not retried.
func (c *Client) DeleteAPIClient(ctx context.Context, project entity.ProjectName, id uuid.UUID) error {
	path := "/api/v1/projects/" + url.PathEscape(string(project)) + "/api-clients/" + id.String()
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	return err
}

// TransactionFilter narrows a transaction listing to one owner and a page.
type TransactionFilter struct {
	OwnerKind entity.Kind
	OwnerName string
	Page      int
	PerPage   int
}

// Transactions lists transactions matching the filter, newest first, along
// with the total item count across all pages.
func (c *Client) Transactions(ctx context.Context, filter TransactionFilter) ([]ledger.Transaction, int, error) {
	query := url.Values{}
	if filter.OwnerKind != "" {
		query.Set("owner_kind", string(filter.OwnerKind))
		query.Set("owner_name", filter.OwnerName)
	}
	if filter.Page > 0 {
		query.Set("page", strconv.Itoa(filter.Page))
	}
	if filter.PerPage > 0 {
		query.Set("per_page", strconv.Itoa(filter.PerPage))
	}

	env, err := c.do(ctx, http.MethodGet, "/api/v1/transactions", query, nil)
	if err != nil {
		return nil, 0, err
	}

	var txs []ledger.Transaction
	if err := decodeData(env, &txs); err != nil {
		return nil, 0, err
	}

	total := len(txs)
	if env.Meta != nil {
		total = env.Meta.TotalItems
	}
	return txs, total, nil
}

// Bill fetches one bill by ID.
func (c *Client) Bill(ctx context.Context, id uuid.UUID) (ledger.Bill, error) {
	var b ledger.Bill
	err := c.get(ctx, "/api/v1/bills/"+id.String(), nil, &b)
	return b, err
}

// ApproveBill approves a pending bill. Exactly one transition is allowed; a
// later attempt fails with ErrBillProcessed. One-shot; not retried.
func (c *Client) ApproveBill(ctx context.Context, id uuid.UUID) (ledger.Bill, error) {
	return c.transitionBill(ctx, id, "approve")
}

// DeclineBill declines a pending bill. Exactly one transition is allowed; a
// later attempt fails with ErrBillProcessed. One-shot; not retried.
func (c *Client) DeclineBill(ctx context.Context, id uuid.UUID) (ledger.Bill, error) {
	return c.transitionBill(ctx, id, "decline")
}

func (c *Client) transitionBill(ctx context.Context, id uuid.UUID, action string) (ledger.Bill, error) {
	var b ledger.Bill
	env, err := c.do(ctx, http.MethodPost, "/api/v1/bills/"+id.String()+"/"+action, nil, nil)
	if err != nil {
		return b, err
	}
	err = decodeData(env, &b)
	return b, err
}

// Rankings fetches an ordered ranking for the query. Ranks in the result are
// server-assigned and authoritative.
func (c *Client) Rankings(ctx context.Context, q ledger.RankingQuery) ([]ledger.RankingRow, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("entity", string(q.Entity))
	query.Set("metric", string(q.Metric))
	query.Set("period", string(q.Period))
	query.Set("order", string(q.Order))
	query.Set("limit", strconv.Itoa(q.Limit))

	var rows []ledger.RankingRow
	err := c.get(ctx, "/api/v1/rankings", query, &rows)
	return rows, err
}
