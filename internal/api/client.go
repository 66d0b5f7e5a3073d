// Package api is a thin HTTP wrapper over the library backend. It knows
// endpoints and wire shapes, not orchestration: callers branch on the
// returned status and body.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/ilibrary/ilibrary-go/internal/errors"
	"github.com/ilibrary/ilibrary-go/internal/ports"
)

const defaultTimeout = 15 * time.Second

// Response carries everything a caller needs to interpret a backend reply.
// Body is fully read and the connection returned to the pool before Response
// is handed out.
type Response struct {
	Status int
	Body   []byte
	Header http.Header
}

// OK reports whether the status is in the 2xx range.
func (r *Response) OK() bool {
	return r.Status >= 200 && r.Status < 300
}

// Text returns the trimmed body, useful for endpoints that answer in plain text.
func (r *Response) Text() string {
	return strings.TrimSpace(string(r.Body))
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Tokens     ports.TokenSource
	Logger     *slog.Logger
}

// Client talks to the library backend. All methods attach the current bearer
// token except the public signup and login endpoints.
type Client struct {
	baseURL string
	client  *http.Client
	tokens  ports.TokenSource
	logger  *slog.Logger
}

// NewClient builds a backend client. BaseURL must be an absolute http(s) URL.
func NewClient(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, apperrors.Validation("api base url is required")
	}
	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, apperrors.Validationf("api base url %q is not an absolute http(s) url", opts.BaseURL)
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL: base,
		client:  hc,
		tokens:  opts.Tokens,
		logger:  logger,
	}, nil
}

// Signup registers a new account. No session state is touched.
func (c *Client) Signup(ctx context.Context, payload map[string]any) (*Response, error) {
	return c.do(ctx, http.MethodPost, "/public/signup", payload, false)
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, username, password string) (*Response, error) {
	body := map[string]any{"username": username, "password": password}
	return c.do(ctx, http.MethodPost, "/public/login", body, false)
}

// AvailableSeats lists seats currently open for booking.
func (c *Client) AvailableSeats(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodGet, "/seat/available", nil, true)
}

// BookSeat requests a seat reservation.
func (c *Client) BookSeat(ctx context.Context, payload any) (*Response, error) {
	return c.do(ctx, http.MethodPost, "/booking/seat", payload, true)
}

// InitSeatPayment starts checkout for a booking. When the booking id is known
// it is posted in the body; otherwise the parameterless variant is used.
func (c *Client) InitSeatPayment(ctx context.Context, bookingID string) (*Response, error) {
	if bookingID == "" {
		return c.do(ctx, http.MethodGet, "/payment/seat", nil, true)
	}
	return c.do(ctx, http.MethodPost, "/payment/seat", map[string]any{"bookingId": bookingID}, true)
}

// PendingBookings lists bookings awaiting payment for the current user.
func (c *Client) PendingBookings(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodGet, "/booking/pending", nil, true)
}

// CancelBooking cancels a booking by id.
func (c *Client) CancelBooking(ctx context.Context, bookingID string) (*Response, error) {
	path := "/booking/cancel?bookingId=" + url.QueryEscape(bookingID)
	return c.do(ctx, http.MethodDelete, path, nil, true)
}

// BuySubscription requests a subscription purchase for the given plan.
func (c *Client) BuySubscription(ctx context.Context, plan string) (*Response, error) {
	return c.do(ctx, http.MethodPost, "/subscription/buy", map[string]any{"type": plan}, true)
}

// InitSubscriptionPayment starts checkout for a pending subscription.
func (c *Client) InitSubscriptionPayment(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodGet, "/payment/subscription", nil, true)
}

// RenewSubscription renews the current subscription.
func (c *Client) RenewSubscription(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodPut, "/subscription/renew", nil, true)
}

// CancelSubscription cancels the current subscription.
func (c *Client) CancelSubscription(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodPut, "/subscription/cancel", nil, true)
}

// SubscriptionStatus fetches the current subscription state.
func (c *Client) SubscriptionStatus(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodGet, "/subscription/status", nil, true)
}

// BookingHistory lists the user's past bookings.
func (c *Client) BookingHistory(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodGet, "/changeDetail/bookingHistory", nil, true)
}

// ActiveSubscription fetches the user's active subscription, if any.
func (c *Client) ActiveSubscription(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodGet, "/changeDetail/activeSubscription", nil, true)
}

// AllSubscriptions lists every subscription the user has held.
func (c *Client) AllSubscriptions(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodGet, "/changeDetail/allSubscription", nil, true)
}

// DeleteAccount removes the current account. Callers are expected to drop the
// local session afterwards.
func (c *Client) DeleteAccount(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodDelete, "/changeDetail/deleteUser", nil, true)
}

// VerifyQR validates a visitor's entry QR token.
func (c *Client) VerifyQR(ctx context.Context, qrToken string) (*Response, error) {
	return c.do(ctx, http.MethodPost, "/librarian/verify-qr", map[string]any{"qrToken": qrToken}, true)
}

// AdminUsers lists all registered users.
func (c *Client) AdminUsers(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodGet, "/admin/allUsers", nil, true)
}

// AdminSeats lists all seats.
func (c *Client) AdminSeats(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodGet, "/admin/allSeats", nil, true)
}

// AdminBookings lists all bookings.
func (c *Client) AdminBookings(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodGet, "/admin/allBooking", nil, true)
}

// AdminSubscriptions lists all subscriptions.
func (c *Client) AdminSubscriptions(ctx context.Context) (*Response, error) {
	return c.do(ctx, http.MethodGet, "/admin/allSubscription", nil, true)
}

func (c *Client) do(ctx context.Context, method, path string, payload any, authed bool) (*Response, error) {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "encode request body")
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "create request")
	}
	req.Header.Set("Accept", "application/json, text/plain")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed && c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	started := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.Wrapf(err, apperrors.ErrCodeTransport, "%s %s failed", method, path)
	}

	body, err := readBody(resp)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("backend call",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("elapsed", time.Since(started)),
	)

	return &Response{Status: resp.StatusCode, Body: body, Header: resp.Header}, nil
}

func readBody(resp *http.Response) ([]byte, error) {
	body, readErr := io.ReadAll(resp.Body)
	closeErr := resp.Body.Close()
	if readErr != nil {
		return nil, apperrors.Wrap(readErr, apperrors.ErrCodeTransport, "read response body")
	}
	if closeErr != nil {
		return nil, apperrors.Wrapf(closeErr, apperrors.ErrCodeTransport, "close response body for %s", resp.Request.URL.Path)
	}
	return body, nil
}
