package service

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ilibrary/ilibrary-go/internal/api"
	domainbooking "github.com/ilibrary/ilibrary-go/internal/domain/booking"
	apperrors "github.com/ilibrary/ilibrary-go/internal/errors"
	"github.com/ilibrary/ilibrary-go/internal/extract"
)

// SubscriptionAPI is the slice of the backend client the subscription
// service consumes.
type SubscriptionAPI interface {
	BuySubscription(ctx context.Context, plan string) (*api.Response, error)
	InitSubscriptionPayment(ctx context.Context) (*api.Response, error)
	RenewSubscription(ctx context.Context) (*api.Response, error)
	CancelSubscription(ctx context.Context) (*api.Response, error)
	SubscriptionStatus(ctx context.Context) (*api.Response, error)
}

// SubscriptionServiceOptions configures a SubscriptionService.
type SubscriptionServiceOptions struct {
	API    SubscriptionAPI
	Logger *slog.Logger
}

// SubscriptionService drives the subscription purchase and lifecycle flow.
type SubscriptionService struct {
	api    SubscriptionAPI
	logger *slog.Logger
}

// NewSubscriptionService builds a SubscriptionService.
func NewSubscriptionService(opts SubscriptionServiceOptions) *SubscriptionService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SubscriptionService{api: opts.API, logger: logger}
}

// Buy requests a subscription purchase. Only an Accepted response means the
// purchase is queued and checkout may proceed; any other success status is a
// contract violation and is surfaced as such.
func (s *SubscriptionService) Buy(ctx context.Context, plan string) error {
	if !domainbooking.ValidPlan(plan) {
		return apperrors.Validationf("unknown subscription plan %q", plan)
	}

	resp, err := s.api.BuySubscription(ctx, plan)
	if err != nil {
		return err
	}
	switch {
	case resp.Status == http.StatusUnauthorized:
		return apperrors.Unauthorized("session expired, please log in again")
	case resp.Status == http.StatusAccepted:
		s.logger.Info("subscription purchase accepted", slog.String("plan", plan))
		return nil
	case resp.OK():
		return apperrors.BadResponse("unexpected response from subscription buy")
	default:
		return statusError(resp, "subscription purchase failed (%d)")
	}
}

// PaymentRedirect fetches the checkout URL for a pending subscription
// purchase. There is no retry here: the purchase was already accepted and the
// user can re-trigger checkout.
func (s *SubscriptionService) PaymentRedirect(ctx context.Context) (string, error) {
	resp, err := s.api.InitSubscriptionPayment(ctx)
	if err != nil {
		return "", err
	}
	if resp.Status == http.StatusUnauthorized {
		return "", apperrors.Unauthorized("session expired, please log in again")
	}
	if !resp.OK() {
		return "", statusError(resp, "payment initialization failed (%d)")
	}

	redirect := extract.RedirectURL(resp.Body, resp.Header)
	if redirect == "" {
		return "", apperrors.BadResponse("payment initialization failed: no redirect URL returned")
	}
	return redirect, nil
}

// Renew renews the active subscription and returns the server's message.
func (s *SubscriptionService) Renew(ctx context.Context) (string, error) {
	resp, err := s.api.RenewSubscription(ctx)
	if err != nil {
		return "", err
	}
	return textResult(resp, "subscription renewal failed (%d)")
}

// Cancel cancels the active subscription and returns the server's message.
func (s *SubscriptionService) Cancel(ctx context.Context) (string, error) {
	resp, err := s.api.CancelSubscription(ctx)
	if err != nil {
		return "", err
	}
	return textResult(resp, "subscription cancellation failed (%d)")
}

// Status returns the server's view of the current subscription state.
func (s *SubscriptionService) Status(ctx context.Context) (string, error) {
	resp, err := s.api.SubscriptionStatus(ctx)
	if err != nil {
		return "", err
	}
	return textResult(resp, "subscription status lookup failed (%d)")
}

// textResult handles the endpoints that answer in plain text.
func textResult(resp *api.Response, fallback string) (string, error) {
	if resp.Status == http.StatusUnauthorized {
		return "", apperrors.Unauthorized("session expired, please log in again")
	}
	if !resp.OK() {
		return "", statusError(resp, fallback)
	}
	return resp.Text(), nil
}
