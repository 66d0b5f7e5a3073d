// Package mocks provides generated mocks for the session ports.
//
// Mocks are generated with go.uber.org/mock (gomock). To regenerate after an
// interface change, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	store := mocks.NewMockSessionStore(ctrl)
//	store.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
package mocks

// MockSessionStore covers Load, Save, Clear.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=session_store_mock.go github.com/ilibrary/ilibrary-go/internal/ports SessionStore

// MockClaimDecoder covers Decode.
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=claim_decoder_mock.go github.com/ilibrary/ilibrary-go/internal/ports ClaimDecoder
