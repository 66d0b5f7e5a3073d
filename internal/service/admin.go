package service

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/ilibrary/ilibrary-go/internal/api"
	domainbooking "github.com/ilibrary/ilibrary-go/internal/domain/booking"
)

// AdminAPI is the slice of the backend client the admin service consumes.
type AdminAPI interface {
	AdminUsers(ctx context.Context) (*api.Response, error)
	AdminSeats(ctx context.Context) (*api.Response, error)
	AdminBookings(ctx context.Context) (*api.Response, error)
	AdminSubscriptions(ctx context.Context) (*api.Response, error)
}

// AdminServiceOptions configures an AdminService.
type AdminServiceOptions struct {
	API    AdminAPI
	Logger *slog.Logger
}

// AdminService assembles the fleet dashboard data.
type AdminService struct {
	api    AdminAPI
	logger *slog.Logger
}

// NewAdminService builds an AdminService.
func NewAdminService(opts AdminServiceOptions) *AdminService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AdminService{api: opts.API, logger: logger}
}

// Snapshot fetches the four fleet listings concurrently. A failure of any one
// listing fails the snapshot; the dashboard is all-or-nothing.
func (s *AdminService) Snapshot(ctx context.Context) (*domainbooking.AdminSnapshot, error) {
	snap := &domainbooking.AdminSnapshot{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		resp, err := s.api.AdminUsers(gctx)
		if err != nil {
			return err
		}
		return decodeList(resp, &snap.Users, "user listing failed (%d)")
	})
	g.Go(func() error {
		resp, err := s.api.AdminSeats(gctx)
		if err != nil {
			return err
		}
		return decodeList(resp, &snap.Seats, "seat listing failed (%d)")
	})
	g.Go(func() error {
		resp, err := s.api.AdminBookings(gctx)
		if err != nil {
			return err
		}
		return decodeList(resp, &snap.Bookings, "booking listing failed (%d)")
	})
	g.Go(func() error {
		resp, err := s.api.AdminSubscriptions(gctx)
		if err != nil {
			return err
		}
		return decodeList(resp, &snap.Subscriptions, "subscription listing failed (%d)")
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}
