package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/ilibrary/ilibrary-go/internal/errors"
)

type staticTokens string

func (s staticTokens) Token() string { return string(s) }

func newTestClient(t *testing.T, handler http.Handler, token string) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Options{
		BaseURL: srv.URL,
		Tokens:  staticTokens(token),
	})
	require.NoError(t, err)
	return client
}

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient(Options{})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	_, err = NewClient(Options{BaseURL: "not-a-url"})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	_, err = NewClient(Options{BaseURL: "ftp://example.com"})
	require.Error(t, err)
}

func TestNewClientTrimsTrailingSlash(t *testing.T) {
	client, err := NewClient(Options{BaseURL: "https://api.example.com/"})
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", client.baseURL)
}

func TestClient_AttachesBearerToken(t *testing.T) {
	var gotAuth, gotRequestID string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.WriteHeader(http.StatusOK)
	})
	client := newTestClient(t, handler, "tok-123")

	resp, err := client.PendingBookings(context.Background())
	require.NoError(t, err)
	assert.True(t, resp.OK())
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestClient_LoginSkipsBearerToken(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	})
	client := newTestClient(t, handler, "tok-123")

	_, err := client.Login(context.Background(), "alice", "s3cret")
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
	assert.Equal(t, "alice", gotBody["username"])
	assert.Equal(t, "s3cret", gotBody["password"])
}

func TestClient_InitSeatPaymentVariants(t *testing.T) {
	var gotMethod string
	var gotBody []byte
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	})
	client := newTestClient(t, handler, "tok")

	_, err := client.InitSeatPayment(context.Background(), "b-9")
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.JSONEq(t, `{"bookingId":"b-9"}`, string(gotBody))

	_, err = client.InitSeatPayment(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, gotMethod)
}

func TestClient_CancelBookingEscapesID(t *testing.T) {
	var gotQuery string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("bookingId")
		w.WriteHeader(http.StatusOK)
	})
	client := newTestClient(t, handler, "tok")

	_, err := client.CancelBooking(context.Background(), "a b&c")
	require.NoError(t, err)
	assert.Equal(t, "a b&c", gotQuery)
}

func TestClient_NonSuccessStillReturnsResponse(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"pending booking exists"}`))
	})
	client := newTestClient(t, handler, "tok")

	resp, err := client.BookSeat(context.Background(), map[string]any{"seatNumber": "G-1"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.Status)
	assert.False(t, resp.OK())
	assert.Contains(t, resp.Text(), "pending booking exists")
}

func TestClient_TransportError(t *testing.T) {
	client, err := NewClient(Options{BaseURL: "http://127.0.0.1:1"})
	require.NoError(t, err)

	_, err = client.SubscriptionStatus(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsTransport(err))
}

func TestResponse_Text(t *testing.T) {
	resp := &Response{Status: 200, Body: []byte("  VALID \n")}
	assert.Equal(t, "VALID", resp.Text())
}
