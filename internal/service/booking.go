package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/ilibrary/ilibrary-go/internal/api"
	domainbooking "github.com/ilibrary/ilibrary-go/internal/domain/booking"
	apperrors "github.com/ilibrary/ilibrary-go/internal/errors"
	"github.com/ilibrary/ilibrary-go/internal/extract"
)

const (
	defaultRetryMax       = 3
	defaultRetryBaseDelay = 500 * time.Millisecond
)

// BookingAPI is the slice of the backend client the booking service consumes.
type BookingAPI interface {
	AvailableSeats(ctx context.Context) (*api.Response, error)
	BookSeat(ctx context.Context, payload any) (*api.Response, error)
	InitSeatPayment(ctx context.Context, bookingID string) (*api.Response, error)
	PendingBookings(ctx context.Context) (*api.Response, error)
}

// BookingServiceOptions configures a BookingService.
type BookingServiceOptions struct {
	API BookingAPI
	// RetryMax bounds payment initialization attempts. Zero means the default.
	RetryMax int
	// RetryBaseDelay is multiplied by the attempt number between retries.
	RetryBaseDelay time.Duration
	Logger         *slog.Logger
}

// BookingService drives the booking-to-payment flow: reserve a seat, then
// obtain a checkout redirect URL, reusing an existing pending booking when
// payment initialization reports a conflict.
type BookingService struct {
	api       BookingAPI
	retryMax  int
	baseDelay time.Duration
	logger    *slog.Logger
}

// NewBookingService builds a BookingService.
func NewBookingService(opts BookingServiceOptions) *BookingService {
	retryMax := opts.RetryMax
	if retryMax <= 0 {
		retryMax = defaultRetryMax
	}
	baseDelay := opts.RetryBaseDelay
	if baseDelay <= 0 {
		baseDelay = defaultRetryBaseDelay
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &BookingService{
		api:       opts.API,
		retryMax:  retryMax,
		baseDelay: baseDelay,
		logger:    logger,
	}
}

// AvailableSeats fetches the seats currently open for booking.
func (s *BookingService) AvailableSeats(ctx context.Context) ([]domainbooking.Seat, error) {
	resp, err := s.api.AvailableSeats(ctx)
	if err != nil {
		return nil, err
	}
	if resp.Status == http.StatusUnauthorized {
		return nil, apperrors.Unauthorized("session expired, please log in again")
	}
	if !resp.OK() {
		return nil, statusError(resp, "seat availability lookup failed (%d)")
	}
	var seats []domainbooking.Seat
	if err := json.Unmarshal(resp.Body, &seats); err != nil {
		return nil, apperrors.BadResponse("unexpected seat availability payload")
	}
	return seats, nil
}

// BookAndPay reserves the requested seat and returns the checkout redirect
// URL. A payment conflict resolves to the user's first pending booking; any
// booking-level rejection is terminal.
func (s *BookingService) BookAndPay(ctx context.Context, req domainbooking.Request) (string, error) {
	if req.SeatNumber == "" {
		return "", apperrors.Validation("seat number is required")
	}
	if !domainbooking.ValidSeatNumber(req.SeatNumber) {
		return "", apperrors.Validationf("unknown seat number %q", req.SeatNumber)
	}
	if req.Hours <= 0 {
		return "", apperrors.Validation("booking hours must be positive")
	}

	bookingID, redirect, err := s.createBooking(ctx, req)
	if err != nil {
		return "", err
	}
	if redirect != "" {
		// Server skipped straight to checkout on the booking response.
		return redirect, nil
	}

	return s.initPayment(ctx, bookingID)
}

// createBooking posts the reservation. It returns either a booking id to pay
// for, or a redirect URL when the booking response already carried one. Any
// non-success outcome, conflict included, is terminal.
func (s *BookingService) createBooking(ctx context.Context, req domainbooking.Request) (string, string, error) {
	resp, err := s.api.BookSeat(ctx, req)
	if err != nil {
		return "", "", err
	}

	switch {
	case resp.Status == http.StatusUnauthorized:
		return "", "", apperrors.Unauthorized("session expired, please log in again")
	case !resp.OK():
		return "", "", statusError(resp, "seat booking failed (%d)")
	}

	if redirect := extract.RedirectURL(resp.Body, resp.Header); redirect != "" {
		return "", redirect, nil
	}
	return extract.BookingID(resp.Body, resp.Header), "", nil
}

// initPayment asks for a checkout URL, retrying server errors with linear
// backoff. A conflict on an id-bearing request falls back once to the first
// pending booking; without an id there is nothing to reuse and a conflict is
// terminal.
func (s *BookingService) initPayment(ctx context.Context, bookingID string) (string, error) {
	for attempt := 1; ; attempt++ {
		resp, err := s.api.InitSeatPayment(ctx, bookingID)
		if err != nil {
			return "", err
		}

		switch {
		case resp.Status == http.StatusUnauthorized:
			return "", apperrors.Unauthorized("session expired, please log in again")
		case resp.Status == http.StatusConflict:
			if bookingID == "" {
				return "", apperrors.Conflict("payment already pending for this booking")
			}
			return s.reusePendingPayment(ctx)
		case resp.Status >= 500:
			if attempt >= s.retryMax {
				return "", statusError(resp, "payment initialization failed (%d)")
			}
			s.logger.Warn("payment initialization failed, retrying",
				slog.Int("attempt", attempt),
				slog.Int("status", resp.Status),
			)
			if err := s.sleep(ctx, attempt); err != nil {
				return "", err
			}
		case !resp.OK():
			return "", statusError(resp, "payment initialization failed (%d)")
		default:
			return paymentRedirect(resp)
		}
	}
}

// reusePendingPayment resolves a payment conflict by initializing payment for
// the user's first pending booking. The reused attempt runs exactly once; any
// non-success outcome is terminal.
func (s *BookingService) reusePendingPayment(ctx context.Context) (string, error) {
	id, err := s.pendingBookingID(ctx)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", apperrors.Conflict("payment conflict and no pending booking found")
	}
	s.logger.Info("payment conflict, reusing pending booking", slog.String("bookingId", id))

	resp, err := s.api.InitSeatPayment(ctx, id)
	if err != nil {
		return "", err
	}
	switch {
	case resp.Status == http.StatusUnauthorized:
		return "", apperrors.Unauthorized("session expired, please log in again")
	case !resp.OK():
		return "", statusError(resp, "payment initialization failed (%d)")
	}
	return paymentRedirect(resp)
}

// paymentRedirect pulls the checkout URL off a successful payment response.
func paymentRedirect(resp *api.Response) (string, error) {
	redirect := extract.RedirectURL(resp.Body, resp.Header)
	if redirect == "" {
		return "", apperrors.BadResponse("payment initialization failed: no redirect URL returned")
	}
	return redirect, nil
}

// Pending lists the user's bookings awaiting payment.
func (s *BookingService) Pending(ctx context.Context) ([]domainbooking.Booking, error) {
	resp, err := s.api.PendingBookings(ctx)
	if err != nil {
		return nil, err
	}
	if resp.Status == http.StatusUnauthorized {
		return nil, apperrors.Unauthorized("session expired, please log in again")
	}
	if !resp.OK() {
		return nil, statusError(resp, "pending booking lookup failed (%d)")
	}
	var out []domainbooking.Booking
	if len(resp.Body) > 0 {
		if err := json.Unmarshal(resp.Body, &out); err != nil {
			return nil, apperrors.BadResponse("unexpected pending booking payload")
		}
	}
	return out, nil
}

// pendingBookingID fetches the user's pending bookings and returns the first
// reusable identifier, or "" when none exists.
func (s *BookingService) pendingBookingID(ctx context.Context) (string, error) {
	resp, err := s.api.PendingBookings(ctx)
	if err != nil {
		return "", err
	}
	if resp.Status == http.StatusUnauthorized {
		return "", apperrors.Unauthorized("session expired, please log in again")
	}
	if !resp.OK() {
		return "", statusError(resp, "pending booking lookup failed (%d)")
	}
	return extract.PendingReuseID(resp.Body), nil
}

// sleep waits attempt*baseDelay or until the context is cancelled.
func (s *BookingService) sleep(ctx context.Context, attempt int) error {
	delay := time.Duration(attempt) * s.baseDelay
	timer := time.NewTimer(delay)
	select {
	case <-ctx.Done():
		if !timer.Stop() {
			<-timer.C
		}
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// statusError classifies a non-success response, preferring the server's own
// message over the formatted fallback. The fallback receives the HTTP status.
func statusError(resp *api.Response, fallback string) error {
	msg := resp.Text()
	if msg == "" {
		msg = fmt.Sprintf(fallback, resp.Status)
	}
	return &apperrors.AppError{
		Code:    apperrors.FromStatus(resp.Status),
		Message: msg,
		Status:  resp.Status,
	}
}
