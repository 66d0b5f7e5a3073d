package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ilibrary/ilibrary-go/internal/api"
	domainbooking "github.com/ilibrary/ilibrary-go/internal/domain/booking"
	apperrors "github.com/ilibrary/ilibrary-go/internal/errors"
)

// ProfileAPI is the slice of the backend client the profile service consumes.
type ProfileAPI interface {
	BookingHistory(ctx context.Context) (*api.Response, error)
	ActiveSubscription(ctx context.Context) (*api.Response, error)
	AllSubscriptions(ctx context.Context) (*api.Response, error)
	CancelBooking(ctx context.Context, bookingID string) (*api.Response, error)
	DeleteAccount(ctx context.Context) (*api.Response, error)
}

// ProfileServiceOptions configures a ProfileService.
type ProfileServiceOptions struct {
	API    ProfileAPI
	Logger *slog.Logger
}

// ProfileService covers the account self-service endpoints: booking history,
// subscription listings, booking cancellation, and account deletion.
type ProfileService struct {
	api    ProfileAPI
	logger *slog.Logger
}

// NewProfileService builds a ProfileService.
func NewProfileService(opts ProfileServiceOptions) *ProfileService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileService{api: opts.API, logger: logger}
}

// BookingHistory lists the user's past bookings.
func (s *ProfileService) BookingHistory(ctx context.Context) ([]domainbooking.Booking, error) {
	resp, err := s.api.BookingHistory(ctx)
	if err != nil {
		return nil, err
	}
	var out []domainbooking.Booking
	if err := decodeList(resp, &out, "booking history lookup failed (%d)"); err != nil {
		return nil, err
	}
	return out, nil
}

// ActiveSubscription returns the user's active subscription, or nil when
// there is none.
func (s *ProfileService) ActiveSubscription(ctx context.Context) (*domainbooking.Subscription, error) {
	resp, err := s.api.ActiveSubscription(ctx)
	if err != nil {
		return nil, err
	}
	if resp.Status == http.StatusUnauthorized {
		return nil, apperrors.Unauthorized("session expired, please log in again")
	}
	if resp.Status == http.StatusNotFound {
		return nil, nil
	}
	if !resp.OK() {
		return nil, statusError(resp, "active subscription lookup failed (%d)")
	}
	if len(resp.Body) == 0 || resp.Text() == "" {
		return nil, nil
	}
	var sub domainbooking.Subscription
	if err := json.Unmarshal(resp.Body, &sub); err != nil {
		return nil, apperrors.BadResponse("unexpected subscription payload")
	}
	return &sub, nil
}

// AllSubscriptions lists every subscription the user has held.
func (s *ProfileService) AllSubscriptions(ctx context.Context) ([]domainbooking.Subscription, error) {
	resp, err := s.api.AllSubscriptions(ctx)
	if err != nil {
		return nil, err
	}
	var out []domainbooking.Subscription
	if err := decodeList(resp, &out, "subscription history lookup failed (%d)"); err != nil {
		return nil, err
	}
	return out, nil
}

// CancelBooking cancels a booking by id and returns the server's message.
func (s *ProfileService) CancelBooking(ctx context.Context, bookingID string) (string, error) {
	if bookingID == "" {
		return "", apperrors.Validation("booking id is required")
	}
	resp, err := s.api.CancelBooking(ctx, bookingID)
	if err != nil {
		return "", err
	}
	return textResult(resp, "booking cancellation failed (%d)")
}

// DeleteAccount removes the account on the server. The caller must log out
// afterwards; the now-invalid session is useless.
func (s *ProfileService) DeleteAccount(ctx context.Context) error {
	resp, err := s.api.DeleteAccount(ctx)
	if err != nil {
		return err
	}
	if resp.Status == http.StatusUnauthorized {
		return apperrors.Unauthorized("session expired, please log in again")
	}
	if !resp.OK() {
		return statusError(resp, "account deletion failed (%d)")
	}
	s.logger.Info("account deleted")
	return nil
}

// decodeList handles the common list-of-records endpoints.
func decodeList(resp *api.Response, out any, fallback string) error {
	if resp.Status == http.StatusUnauthorized {
		return apperrors.Unauthorized("session expired, please log in again")
	}
	if !resp.OK() {
		return statusError(resp, fallback)
	}
	if len(resp.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return apperrors.BadResponse("unexpected list payload")
	}
	return nil
}
