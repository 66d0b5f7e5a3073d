package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilibrary/ilibrary-go/internal/api"
	domainbooking "github.com/ilibrary/ilibrary-go/internal/domain/booking"
	apperrors "github.com/ilibrary/ilibrary-go/internal/errors"
)

func newBookingService(backend *fakeBackend) *BookingService {
	return NewBookingService(BookingServiceOptions{
		API:            backend,
		RetryBaseDelay: time.Millisecond,
	})
}

func seatRequest() domainbooking.Request {
	return domainbooking.Request{SeatNumber: "G-1", Hours: 2}
}

func TestBookAndPay_HappyPath(t *testing.T) {
	var paidID string
	backend := &fakeBackend{
		bookSeatFn: func(context.Context, any) (*api.Response, error) {
			return jsonResponse(http.StatusCreated, `{"bookingId":"b-1"}`), nil
		},
		initSeatPayFn: func(_ context.Context, bookingID string) (*api.Response, error) {
			paidID = bookingID
			return jsonResponse(http.StatusOK, `{"sessionUrl":"https://pay.example.com/s"}`), nil
		},
	}

	url, err := newBookingService(backend).BookAndPay(context.Background(), seatRequest())
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/s", url)
	assert.Equal(t, "b-1", paidID)
}

func TestBookAndPay_BookingResponseCarriesRedirect(t *testing.T) {
	paymentCalled := false
	backend := &fakeBackend{
		bookSeatFn: func(context.Context, any) (*api.Response, error) {
			return jsonResponse(http.StatusOK, `{"checkoutUrl":"https://pay.example.com/direct"}`), nil
		},
		initSeatPayFn: func(context.Context, string) (*api.Response, error) {
			paymentCalled = true
			return nil, nil
		},
	}

	url, err := newBookingService(backend).BookAndPay(context.Background(), seatRequest())
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/direct", url)
	assert.False(t, paymentCalled)
}

func TestBookAndPay_NoIDUsesParameterlessPayment(t *testing.T) {
	var gotID string
	backend := &fakeBackend{
		bookSeatFn: func(context.Context, any) (*api.Response, error) {
			return jsonResponse(http.StatusCreated, `{"status":"PENDING"}`), nil
		},
		initSeatPayFn: func(_ context.Context, bookingID string) (*api.Response, error) {
			gotID = bookingID
			return jsonResponse(http.StatusOK, `{"url":"https://pay.example.com/p"}`), nil
		},
	}

	url, err := newBookingService(backend).BookAndPay(context.Background(), seatRequest())
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/p", url)
	assert.Empty(t, gotID)
}

func TestBookAndPay_BookingConflictIsTerminal(t *testing.T) {
	pendingCalls := 0
	payCalls := 0
	backend := &fakeBackend{
		bookSeatFn: func(context.Context, any) (*api.Response, error) {
			return jsonResponse(http.StatusConflict, `Booking failed (409)`), nil
		},
		pendingFn: func(context.Context) (*api.Response, error) {
			pendingCalls++
			return jsonResponse(http.StatusOK, `[{"bookingId":"pending-7"}]`), nil
		},
		initSeatPayFn: func(context.Context, string) (*api.Response, error) {
			payCalls++
			return jsonResponse(http.StatusOK, `{"sessionUrl":"https://pay.example.com/r"}`), nil
		},
	}

	_, err := newBookingService(backend).BookAndPay(context.Background(), seatRequest())
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Contains(t, err.Error(), "Booking failed (409)")
	assert.Zero(t, pendingCalls)
	assert.Zero(t, payCalls)
}

func TestBookAndPay_PaymentConflictWithoutPendingIsTerminal(t *testing.T) {
	backend := &fakeBackend{
		bookSeatFn: func(context.Context, any) (*api.Response, error) {
			return jsonResponse(http.StatusCreated, `{"bookingId":"b-1"}`), nil
		},
		pendingFn: func(context.Context) (*api.Response, error) {
			return jsonResponse(http.StatusOK, `[]`), nil
		},
		initSeatPayFn: func(context.Context, string) (*api.Response, error) {
			return jsonResponse(http.StatusConflict, ""), nil
		},
	}

	_, err := newBookingService(backend).BookAndPay(context.Background(), seatRequest())
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestBookAndPay_PaymentConflictRetriesOnceWithPendingID(t *testing.T) {
	payCalls := 0
	var ids []string
	backend := &fakeBackend{
		bookSeatFn: func(context.Context, any) (*api.Response, error) {
			return jsonResponse(http.StatusCreated, `{"bookingId":"b-1"}`), nil
		},
		pendingFn: func(context.Context) (*api.Response, error) {
			return jsonResponse(http.StatusOK, `[{"id":9}]`), nil
		},
		initSeatPayFn: func(_ context.Context, bookingID string) (*api.Response, error) {
			payCalls++
			ids = append(ids, bookingID)
			if payCalls == 1 {
				return jsonResponse(http.StatusConflict, ""), nil
			}
			return jsonResponse(http.StatusOK, `{"sessionUrl":"https://pay.example.com/x"}`), nil
		},
	}

	url, err := newBookingService(backend).BookAndPay(context.Background(), seatRequest())
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/x", url)
	assert.Equal(t, []string{"b-1", "9"}, ids)
}

func TestBookAndPay_SecondPaymentConflictIsTerminal(t *testing.T) {
	backend := &fakeBackend{
		bookSeatFn: func(context.Context, any) (*api.Response, error) {
			return jsonResponse(http.StatusCreated, `{"bookingId":"b-1"}`), nil
		},
		pendingFn: func(context.Context) (*api.Response, error) {
			return jsonResponse(http.StatusOK, `[{"id":9}]`), nil
		},
		initSeatPayFn: func(context.Context, string) (*api.Response, error) {
			return jsonResponse(http.StatusConflict, ""), nil
		},
	}

	_, err := newBookingService(backend).BookAndPay(context.Background(), seatRequest())
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
}

func TestBookAndPay_ReusedPaymentFailureIsTerminal(t *testing.T) {
	payCalls := 0
	backend := &fakeBackend{
		bookSeatFn: func(context.Context, any) (*api.Response, error) {
			return jsonResponse(http.StatusCreated, `{"bookingId":"b-1"}`), nil
		},
		pendingFn: func(context.Context) (*api.Response, error) {
			return jsonResponse(http.StatusOK, `[{"id":9}]`), nil
		},
		initSeatPayFn: func(context.Context, string) (*api.Response, error) {
			payCalls++
			if payCalls == 1 {
				return jsonResponse(http.StatusConflict, ""), nil
			}
			return jsonResponse(http.StatusBadGateway, ""), nil
		},
	}

	_, err := newBookingService(backend).BookAndPay(context.Background(), seatRequest())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInternal, apperrors.GetCode(err))
	assert.Equal(t, 2, payCalls)
}

func TestBookAndPay_ConflictOnFinalAttemptStillReuses(t *testing.T) {
	var ids []string
	backend := &fakeBackend{
		bookSeatFn: func(context.Context, any) (*api.Response, error) {
			return jsonResponse(http.StatusCreated, `{"bookingId":"b-1"}`), nil
		},
		pendingFn: func(context.Context) (*api.Response, error) {
			return jsonResponse(http.StatusOK, `[{"id":9}]`), nil
		},
		initSeatPayFn: func(_ context.Context, bookingID string) (*api.Response, error) {
			ids = append(ids, bookingID)
			switch len(ids) {
			case 1, 2:
				return jsonResponse(http.StatusServiceUnavailable, ""), nil
			case 3:
				return jsonResponse(http.StatusConflict, ""), nil
			}
			return jsonResponse(http.StatusOK, `{"sessionUrl":"https://pay.example.com/late"}`), nil
		},
	}

	url, err := newBookingService(backend).BookAndPay(context.Background(), seatRequest())
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/late", url)
	assert.Equal(t, []string{"b-1", "b-1", "b-1", "9"}, ids)
}

func TestBookAndPay_RetriesServerErrors(t *testing.T) {
	payCalls := 0
	backend := &fakeBackend{
		bookSeatFn: func(context.Context, any) (*api.Response, error) {
			return jsonResponse(http.StatusCreated, `{"bookingId":"b-1"}`), nil
		},
		initSeatPayFn: func(context.Context, string) (*api.Response, error) {
			payCalls++
			if payCalls < 3 {
				return jsonResponse(http.StatusBadGateway, ""), nil
			}
			return jsonResponse(http.StatusOK, `{"sessionUrl":"https://pay.example.com/ok"}`), nil
		},
	}

	url, err := newBookingService(backend).BookAndPay(context.Background(), seatRequest())
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/ok", url)
	assert.Equal(t, 3, payCalls)
}

func TestBookAndPay_RetriesAreBounded(t *testing.T) {
	payCalls := 0
	backend := &fakeBackend{
		bookSeatFn: func(context.Context, any) (*api.Response, error) {
			return jsonResponse(http.StatusCreated, `{"bookingId":"b-1"}`), nil
		},
		initSeatPayFn: func(context.Context, string) (*api.Response, error) {
			payCalls++
			return jsonResponse(http.StatusInternalServerError, ""), nil
		},
	}

	_, err := newBookingService(backend).BookAndPay(context.Background(), seatRequest())
	require.Error(t, err)
	assert.Equal(t, 3, payCalls)
	assert.Equal(t, apperrors.ErrCodeInternal, apperrors.GetCode(err))
}

func TestBookAndPay_UnauthorizedIsNotRetried(t *testing.T) {
	payCalls := 0
	backend := &fakeBackend{
		bookSeatFn: func(context.Context, any) (*api.Response, error) {
			return jsonResponse(http.StatusCreated, `{"bookingId":"b-1"}`), nil
		},
		initSeatPayFn: func(context.Context, string) (*api.Response, error) {
			payCalls++
			return jsonResponse(http.StatusUnauthorized, ""), nil
		},
	}

	_, err := newBookingService(backend).BookAndPay(context.Background(), seatRequest())
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Equal(t, 1, payCalls)
}

func TestBookAndPay_MissingRedirectURL(t *testing.T) {
	backend := &fakeBackend{
		bookSeatFn: func(context.Context, any) (*api.Response, error) {
			return jsonResponse(http.StatusCreated, `{"bookingId":"b-1"}`), nil
		},
		initSeatPayFn: func(context.Context, string) (*api.Response, error) {
			return jsonResponse(http.StatusOK, `{"status":"ok"}`), nil
		},
	}

	_, err := newBookingService(backend).BookAndPay(context.Background(), seatRequest())
	require.Error(t, err)
	assert.True(t, apperrors.IsBadResponse(err))
	assert.Contains(t, err.Error(), "no redirect URL returned")
}

func TestBookAndPay_RejectsRelativeRedirect(t *testing.T) {
	backend := &fakeBackend{
		bookSeatFn: func(context.Context, any) (*api.Response, error) {
			return jsonResponse(http.StatusCreated, `{"bookingId":"b-1"}`), nil
		},
		initSeatPayFn: func(context.Context, string) (*api.Response, error) {
			return jsonResponse(http.StatusOK, `{"sessionUrl":"/checkout/relative"}`), nil
		},
	}

	_, err := newBookingService(backend).BookAndPay(context.Background(), seatRequest())
	require.Error(t, err)
	assert.True(t, apperrors.IsBadResponse(err))
}

func TestBookAndPay_ValidatesRequest(t *testing.T) {
	svc := newBookingService(&fakeBackend{})

	_, err := svc.BookAndPay(context.Background(), domainbooking.Request{Hours: 2})
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.BookAndPay(context.Background(), domainbooking.Request{SeatNumber: "G-1"})
	assert.True(t, apperrors.IsValidation(err))

	_, err = svc.BookAndPay(context.Background(), domainbooking.Request{SeatNumber: "Z-99", Hours: 2})
	assert.True(t, apperrors.IsValidation(err))
}

func TestBookAndPay_ContextCancelledDuringBackoff(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	backend := &fakeBackend{
		bookSeatFn: func(context.Context, any) (*api.Response, error) {
			return jsonResponse(http.StatusCreated, `{"bookingId":"b-1"}`), nil
		},
		initSeatPayFn: func(context.Context, string) (*api.Response, error) {
			cancel()
			return jsonResponse(http.StatusInternalServerError, ""), nil
		},
	}
	svc := NewBookingService(BookingServiceOptions{API: backend, RetryBaseDelay: time.Minute})

	_, err := svc.BookAndPay(ctx, seatRequest())
	require.ErrorIs(t, err, context.Canceled)
}

func TestAvailableSeats(t *testing.T) {
	backend := &fakeBackend{
		availableSeatsFn: func(context.Context) (*api.Response, error) {
			return jsonResponse(http.StatusOK, `[{"id":1,"seatNumber":"G-1","location":"GROUND","status":"AVAILABLE"}]`), nil
		},
	}

	seats, err := newBookingService(backend).AvailableSeats(context.Background())
	require.NoError(t, err)
	require.Len(t, seats, 1)
	assert.Equal(t, "G-1", seats[0].SeatNumber)
}

func TestAvailableSeats_Unauthorized(t *testing.T) {
	backend := &fakeBackend{
		availableSeatsFn: func(context.Context) (*api.Response, error) {
			return jsonResponse(http.StatusUnauthorized, ""), nil
		},
	}

	_, err := newBookingService(backend).AvailableSeats(context.Background())
	assert.True(t, apperrors.IsUnauthorized(err))
}
