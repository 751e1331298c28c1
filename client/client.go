package client

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

	"barberbook/models"
	"barberbook/workflow"
)

// Client talks to a running barberbook server. It implements
// workflow.Gateway for the public booking endpoints and also covers the
// staff endpoints used by the CLI. The bearer token is held explicitly on
// the client, never read from ambient state.
type Client struct {
	baseURL string
	hc      *http.Client
	token   string
}

// New builds a client for the given base URL, e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		hc:      &http.Client{Timeout: 10 * time.Second},
	}
}

// SetToken installs the bearer token used for staff endpoints.
func (c *Client) SetToken(token string) {
	c.token = token
}

// apiError mirrors the server's ErrorResponse body.
type apiError struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		var apiErr apiError
		_ = json.Unmarshal(raw, &apiErr)
		if apiErr.Message != "" {
			return fmt.Errorf("%s %s failed: %s (status=%d)", method, path, apiErr.Message, resp.StatusCode)
		}
		return fmt.Errorf("%s %s failed (status=%d)", method, path, resp.StatusCode)
	}
	if out != nil {
		return json.Unmarshal(raw, out)
	}
	return nil
}

// ListBarbers fetches the public roster.
func (c *Client) ListBarbers(ctx context.Context) ([]models.Barber, error) {
	var barbers []models.Barber
	if err := c.do(ctx, http.MethodGet, "/api/barbers", nil, nil, &barbers); err != nil {
		return nil, err
	}
	return barbers, nil
}

// ListSlots fetches the free slot labels for a (barber, date) key.
func (c *Client) ListSlots(ctx context.Context, barberID int, date string) ([]string, error) {
	query := url.Values{}
	query.Set("barber_id", strconv.Itoa(barberID))
	query.Set("date", date)

	var slots []string
	if err := c.do(ctx, http.MethodGet, "/api/slots", query, nil, &slots); err != nil {
		return nil, err
	}
	return slots, nil
}

// SubmitBooking posts the finalized booking as a JSON body. A rejection with
// a server-supplied reason comes back as *workflow.SubmissionError so the
// workflow can surface it verbatim.
func (c *Client) SubmitBooking(ctx context.Context, req models.BookingRequest) error {
	payload, err := json.Marshal(req)
	if err != nil {
		return err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/book", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)
		var apiErr apiError
		_ = json.Unmarshal(raw, &apiErr)
		return &workflow.SubmissionError{Reason: apiErr.Message}
	}
	return nil
}

// ListServices fetches the service catalogue.
func (c *Client) ListServices(ctx context.Context) ([]models.ServiceType, error) {
	var services []models.ServiceType
	if err := c.do(ctx, http.MethodGet, "/api/services", nil, nil, &services); err != nil {
		return nil, err
	}
	return services, nil
}

// LoginResult is the body returned by the login endpoint.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Role        string `json:"role"`
}

// Login exchanges credentials for a token and installs it on the client.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/login",
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		var apiErr apiError
		_ = json.Unmarshal(raw, &apiErr)
		if apiErr.Message != "" {
			return nil, fmt.Errorf("login failed: %s", apiErr.Message)
		}
		return nil, fmt.Errorf("login failed (status=%d)", resp.StatusCode)
	}

	var result LoginResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, err
	}
	c.token = result.AccessToken
	return &result, nil
}

// Me fetches the authenticated account.
func (c *Client) Me(ctx context.Context) (*models.Account, error) {
	var acct models.Account
	if err := c.do(ctx, http.MethodGet, "/api/users/me", nil, nil, &acct); err != nil {
		return nil, err
	}
	return &acct, nil
}

// Appointments fetches the appointments visible to the authenticated account.
func (c *Client) Appointments(ctx context.Context) ([]models.Appointment, error) {
	var appts []models.Appointment
	if err := c.do(ctx, http.MethodGet, "/api/appointments", nil, nil, &appts); err != nil {
		return nil, err
	}
	return appts, nil
}

// MyStats fetches the authenticated barber's dashboard figures.
func (c *Client) MyStats(ctx context.Context) (*models.BarberStats, error) {
	var stats models.BarberStats
	if err := c.do(ctx, http.MethodGet, "/api/barbers/me/stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ToggleCheckIn flips the authenticated barber's availability.
func (c *Client) ToggleCheckIn(ctx context.Context) (bool, error) {
	var result struct {
		IsCheckedIn bool `json:"is_checked_in"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/barbers/me/checkin", nil, nil, &result); err != nil {
		return false, err
	}
	return result.IsCheckedIn, nil
}

// SaveShift saves a barber's shift for one weekday. Owner only.
func (c *Client) SaveShift(ctx context.Context, shift models.Shift) error {
	return c.do(ctx, http.MethodPost, "/api/shifts", nil, shift, nil)
}

// ShopStats fetches the owner dashboard figures.
func (c *Client) ShopStats(ctx context.Context) (*models.ShopStats, error) {
	var stats models.ShopStats
	if err := c.do(ctx, http.MethodGet, "/api/admin/stats", nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
