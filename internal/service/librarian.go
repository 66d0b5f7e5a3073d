package service

import (
	"context"
	"log/slog"

	"github.com/ilibrary/ilibrary-go/internal/api"
	apperrors "github.com/ilibrary/ilibrary-go/internal/errors"
)

// LibrarianAPI is the slice of the backend client the librarian service
// consumes.
type LibrarianAPI interface {
	VerifyQR(ctx context.Context, qrToken string) (*api.Response, error)
}

// LibrarianServiceOptions configures a LibrarianService.
type LibrarianServiceOptions struct {
	API    LibrarianAPI
	Logger *slog.Logger
}

// LibrarianService covers the front-desk endpoints.
type LibrarianService struct {
	api    LibrarianAPI
	logger *slog.Logger
}

// NewLibrarianService builds a LibrarianService.
func NewLibrarianService(opts LibrarianServiceOptions) *LibrarianService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &LibrarianService{api: opts.API, logger: logger}
}

// VerifyQR checks a visitor's entry QR token and returns the server's verdict
// as text.
func (s *LibrarianService) VerifyQR(ctx context.Context, qrToken string) (string, error) {
	if qrToken == "" {
		return "", apperrors.Validation("qr token is required")
	}
	resp, err := s.api.VerifyQR(ctx, qrToken)
	if err != nil {
		return "", err
	}
	return textResult(resp, "qr verification failed (%d)")
}
