package service

import (
	"context"
	"net/http"

	"github.com/ilibrary/ilibrary-go/internal/api"
)

// fakeBackend implements the per-service API slices with function fields so
// each test controls exactly the endpoints it touches.
type fakeBackend struct {
	loginFn           func(ctx context.Context, username, password string) (*api.Response, error)
	signupFn          func(ctx context.Context, payload map[string]any) (*api.Response, error)
	availableSeatsFn  func(ctx context.Context) (*api.Response, error)
	bookSeatFn        func(ctx context.Context, payload any) (*api.Response, error)
	initSeatPayFn     func(ctx context.Context, bookingID string) (*api.Response, error)
	pendingFn         func(ctx context.Context) (*api.Response, error)
	buySubFn          func(ctx context.Context, plan string) (*api.Response, error)
	initSubPayFn      func(ctx context.Context) (*api.Response, error)
	renewSubFn        func(ctx context.Context) (*api.Response, error)
	cancelSubFn       func(ctx context.Context) (*api.Response, error)
	subStatusFn       func(ctx context.Context) (*api.Response, error)
	bookingHistoryFn  func(ctx context.Context) (*api.Response, error)
	activeSubFn       func(ctx context.Context) (*api.Response, error)
	allSubsFn         func(ctx context.Context) (*api.Response, error)
	cancelBookingFn   func(ctx context.Context, bookingID string) (*api.Response, error)
	deleteAccountFn   func(ctx context.Context) (*api.Response, error)
	verifyQRFn        func(ctx context.Context, qrToken string) (*api.Response, error)
	adminUsersFn      func(ctx context.Context) (*api.Response, error)
	adminSeatsFn      func(ctx context.Context) (*api.Response, error)
	adminBookingsFn   func(ctx context.Context) (*api.Response, error)
	adminSubsFn       func(ctx context.Context) (*api.Response, error)
}

func (f *fakeBackend) Login(ctx context.Context, username, password string) (*api.Response, error) {
	return f.loginFn(ctx, username, password)
}

func (f *fakeBackend) Signup(ctx context.Context, payload map[string]any) (*api.Response, error) {
	return f.signupFn(ctx, payload)
}

func (f *fakeBackend) AvailableSeats(ctx context.Context) (*api.Response, error) {
	return f.availableSeatsFn(ctx)
}

func (f *fakeBackend) BookSeat(ctx context.Context, payload any) (*api.Response, error) {
	return f.bookSeatFn(ctx, payload)
}

func (f *fakeBackend) InitSeatPayment(ctx context.Context, bookingID string) (*api.Response, error) {
	return f.initSeatPayFn(ctx, bookingID)
}

func (f *fakeBackend) PendingBookings(ctx context.Context) (*api.Response, error) {
	return f.pendingFn(ctx)
}

func (f *fakeBackend) BuySubscription(ctx context.Context, plan string) (*api.Response, error) {
	return f.buySubFn(ctx, plan)
}

func (f *fakeBackend) InitSubscriptionPayment(ctx context.Context) (*api.Response, error) {
	return f.initSubPayFn(ctx)
}

func (f *fakeBackend) RenewSubscription(ctx context.Context) (*api.Response, error) {
	return f.renewSubFn(ctx)
}

func (f *fakeBackend) CancelSubscription(ctx context.Context) (*api.Response, error) {
	return f.cancelSubFn(ctx)
}

func (f *fakeBackend) SubscriptionStatus(ctx context.Context) (*api.Response, error) {
	return f.subStatusFn(ctx)
}

func (f *fakeBackend) BookingHistory(ctx context.Context) (*api.Response, error) {
	return f.bookingHistoryFn(ctx)
}

func (f *fakeBackend) ActiveSubscription(ctx context.Context) (*api.Response, error) {
	return f.activeSubFn(ctx)
}

func (f *fakeBackend) AllSubscriptions(ctx context.Context) (*api.Response, error) {
	return f.allSubsFn(ctx)
}

func (f *fakeBackend) CancelBooking(ctx context.Context, bookingID string) (*api.Response, error) {
	return f.cancelBookingFn(ctx, bookingID)
}

func (f *fakeBackend) DeleteAccount(ctx context.Context) (*api.Response, error) {
	return f.deleteAccountFn(ctx)
}

func (f *fakeBackend) VerifyQR(ctx context.Context, qrToken string) (*api.Response, error) {
	return f.verifyQRFn(ctx, qrToken)
}

func (f *fakeBackend) AdminUsers(ctx context.Context) (*api.Response, error) {
	return f.adminUsersFn(ctx)
}

func (f *fakeBackend) AdminSeats(ctx context.Context) (*api.Response, error) {
	return f.adminSeatsFn(ctx)
}

func (f *fakeBackend) AdminBookings(ctx context.Context) (*api.Response, error) {
	return f.adminBookingsFn(ctx)
}

func (f *fakeBackend) AdminSubscriptions(ctx context.Context) (*api.Response, error) {
	return f.adminSubsFn(ctx)
}

func jsonResponse(status int, body string) *api.Response {
	return &api.Response{Status: status, Body: []byte(body), Header: http.Header{}}
}
